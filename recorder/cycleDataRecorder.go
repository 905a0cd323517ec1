package recorder

import (
	"strconv"

	"intersectionSim/element"
)

// CycleDataRecorder 缓存每个周期结束时的车道数据，并批量追加到CSV文件
type CycleDataRecorder struct {
	filename string
	cache    [][]string
}

var cycleDataHeader = []string{
	"Cycle", "Lane", "LaneName", "GreenSecs", "Arrivals", "Waiting", "Served", "WaitSecs",
}

// NewCycleDataRecorder 创建记录器并写入表头
// 文件已存在时沿用原文件，只追加数据
func NewCycleDataRecorder(filename string) (*CycleDataRecorder, error) {
	if !fileExists(filename) {
		if err := initializeCSV(filename, cycleDataHeader); err != nil {
			return nil, err
		}
	}
	return &CycleDataRecorder{
		filename: filename,
		cache:    make([][]string, 0, element.NumLanes*16),
	}, nil
}

// Filename 返回CSV文件路径
func (r *CycleDataRecorder) Filename() string {
	return r.filename
}

// RecordCycle 记录一个周期结束后各车道的数据
// greens按车道下标排列，arrivals为周期结束后注入的到达车辆数
func (r *CycleDataRecorder) RecordCycle(in *element.Intersection, greens [element.NumLanes]int, arrivals [element.NumLanes]int) {
	cycle := strconv.Itoa(in.Cycles())
	for i, lane := range in.Lanes() {
		waiting, served, waitSecs := lane.Report()
		r.cache = append(r.cache, []string{
			cycle,
			strconv.FormatInt(lane.ID(), 10),
			lane.Name(),
			strconv.Itoa(greens[i]),
			strconv.Itoa(arrivals[i]),
			strconv.Itoa(waiting),
			strconv.Itoa(served),
			strconv.Itoa(waitSecs),
		})
	}
}

// Pending 返回尚未写入文件的记录行数
func (r *CycleDataRecorder) Pending() int {
	return len(r.cache)
}

// Flush 将缓存写入CSV文件并清空缓存
func (r *CycleDataRecorder) Flush() error {
	if len(r.cache) == 0 {
		return nil
	}
	if err := appendToCSV(r.filename, r.cache); err != nil {
		return err
	}
	r.cache = r.cache[:0]
	return nil
}
