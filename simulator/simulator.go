package simulator

import (
	"errors"
	"fmt"
	"io"

	"intersectionSim/element"
	"intersectionSim/log"
	"intersectionSim/recorder"
)

var ErrNegativeCycles = errors.New("simulator: cycle count must be non-negative")

// Simulator 驱动路口按周期运行：报告状态、执行周期、注入到达车辆
type Simulator struct {
	intersection *element.Intersection
	controller   *Controller
	injector     *ArrivalInjector

	report   io.Writer
	recorder *recorder.CycleDataRecorder
}

// NewSimulator 创建模拟器
func NewSimulator(in *element.Intersection, policy GreenPolicy, injector *ArrivalInjector) (*Simulator, error) {
	controller, err := NewController(in, policy)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		intersection: in,
		controller:   controller,
		injector:     injector,
	}, nil
}

// SetReportWriter 设置每个周期前后状态报告的输出，nil 表示不输出
func (s *Simulator) SetReportWriter(w io.Writer) {
	s.report = w
}

// SetCycleRecorder 设置周期数据记录器，nil 表示不记录
func (s *Simulator) SetCycleRecorder(r *recorder.CycleDataRecorder) {
	s.recorder = r
}

// Intersection 返回被模拟的路口
func (s *Simulator) Intersection() *element.Intersection {
	return s.intersection
}

// Run 运行指定数量的周期并返回汇总统计
// 周期数据写入失败只记录警告，不影响模拟结果
func (s *Simulator) Run(cycles int) (Summary, error) {
	if cycles < 0 {
		return Summary{}, fmt.Errorf("%w: %d", ErrNegativeCycles, cycles)
	}

	for i := 0; i < cycles; i++ {
		s.printState()

		greens := s.controller.RunOneCycle()
		arrivals := s.injector.InjectArrivals(s.intersection)

		s.printState()

		if s.recorder != nil {
			s.recorder.RecordCycle(s.intersection, greens, arrivals)
		}
	}

	if s.recorder != nil {
		if err := s.recorder.Flush(); err != nil {
			log.WarnError(err, "Failed to write cycle data")
		}
	}

	return Summarize(s.intersection), nil
}

func (s *Simulator) printState() {
	if s.report == nil {
		return
	}
	PrintState(s.report, s.intersection)
}
