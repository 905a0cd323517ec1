package simulator

import (
	"fmt"
	"time"

	"intersectionSim/log"
	"intersectionSim/recorder"
)

// FinishSimulation 将本次运行的汇总统计追加到统计日志
// 写入失败时记录警告并返回错误，调用方不应据此判定模拟失败
func FinishSimulation(statisticsFile, name string, summary Summary) error {
	log.WriteLog("Writing final statistics...")
	startTime := time.Now()

	record := recorder.NewStatisticsRecord(name, summary.Cycles, summary.TotalServed,
		summary.TotalWaitSecs, summary.AvgWaitPerVehicle)
	if err := recorder.AppendStatistics(statisticsFile, record); err != nil {
		log.WarnError(err, "Failed to append statistics")
		return err
	}

	log.WriteLog(fmt.Sprintf("Statistics appended to %s in %v (run %s)",
		statisticsFile, time.Since(startTime), record.RunID))
	return nil
}
