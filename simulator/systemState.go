package simulator

import (
	"fmt"
	"io"

	"intersectionSim/element"

	"gonum.org/v1/gonum/stat"
)

// LaneSummary 单个车道的统计
type LaneSummary struct {
	Name              string
	Served            int
	WaitSecs          int
	AvgWaitPerVehicle float64
}

// Summary 路口的汇总统计，是路口状态的只读投影
type Summary struct {
	Cycles            int
	TotalServed       int
	TotalWaitSecs     int
	AvgWaitPerVehicle float64

	Lanes [element.NumLanes]LaneSummary
	// 各车道驶离车辆数的均值与标准差，用于衡量车道间的放行均衡程度
	MeanServed   float64
	StdDevServed float64
}

// Summarize 汇总路口统计
// 没有车辆驶离时平均等待时间为0
func Summarize(in *element.Intersection) Summary {
	s := Summary{Cycles: in.Cycles()}

	served := make([]float64, 0, element.NumLanes)
	for i, lane := range in.Lanes() {
		s.TotalServed += lane.Served()
		s.TotalWaitSecs += lane.WaitSecs()
		s.Lanes[i] = LaneSummary{
			Name:              lane.Name(),
			Served:            lane.Served(),
			WaitSecs:          lane.WaitSecs(),
			AvgWaitPerVehicle: averageWait(lane.WaitSecs(), lane.Served()),
		}
		served = append(served, float64(lane.Served()))
	}

	s.AvgWaitPerVehicle = averageWait(s.TotalWaitSecs, s.TotalServed)
	s.MeanServed, s.StdDevServed = stat.PopMeanStdDev(served, nil)
	return s
}

func averageWait(waitSecs, served int) float64 {
	if served <= 0 {
		return 0.0
	}
	return float64(waitSecs) / float64(served)
}

// PrintState 输出路口当前状态
func PrintState(w io.Writer, in *element.Intersection) {
	fmt.Fprintf(w, "Intersection: %s | Cycles: %d\n", in.Name(), in.Cycles())
	for _, lane := range in.Lanes() {
		fmt.Fprintf(w, "  %s\n", lane)
	}
}

// LogStatus 输出汇总统计
func (s Summary) LogStatus(w io.Writer) {
	fmt.Fprintf(w, "Cycles: %d, Served: %d, WaitSecs: %d, AvgWait: %.2f s/vehicle, Served per lane: %.2f ± %.2f\n",
		s.Cycles, s.TotalServed, s.TotalWaitSecs, s.AvgWaitPerVehicle, s.MeanServed, s.StdDevServed)
	for i, lane := range s.Lanes {
		fmt.Fprintf(w, "  Lane %d (%s): served=%d waitSecs=%d avgWait=%.2f\n",
			i, lane.Name, lane.Served, lane.WaitSecs, lane.AvgWaitPerVehicle)
	}
}
