package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// StatisticsRecord 一次模拟运行的汇总记录
type StatisticsRecord struct {
	RunID             string
	Timestamp         time.Time
	Intersection      string
	Cycles            int
	TotalServed       int
	TotalWaitSecs     int
	AvgWaitPerVehicle float64
}

// NewStatisticsRecord 创建带有新运行ID和当前时间的记录
func NewStatisticsRecord(name string, cycles, served, waitSecs int, avgWait float64) StatisticsRecord {
	return StatisticsRecord{
		RunID:             uuid.New().String(),
		Timestamp:         time.Now(),
		Intersection:      name,
		Cycles:            cycles,
		TotalServed:       served,
		TotalWaitSecs:     waitSecs,
		AvgWaitPerVehicle: avgWait,
	}
}

// Format 将记录格式化为一行文本
func (r StatisticsRecord) Format() string {
	return fmt.Sprintf("[%s] run=%s intersection=%q cycles=%d served=%d waitSecs=%d avgWait=%.2f\n",
		r.Timestamp.Format("2006-01-02 15:04:05"), r.RunID, r.Intersection,
		r.Cycles, r.TotalServed, r.TotalWaitSecs, r.AvgWaitPerVehicle)
}

// AppendStatistics 将记录追加到统计日志，文件不存在时创建，从不截断
func AppendStatistics(filename string, record StatisticsRecord) (err error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filename, cerr)
		}
	}()

	if _, err := file.WriteString(record.Format()); err != nil {
		return fmt.Errorf("append to %s: %w", filename, err)
	}
	return nil
}
