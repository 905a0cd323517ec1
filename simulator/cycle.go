package simulator

import (
	"intersectionSim/element"
)

// Controller 按相位环顺序为各车道分配绿灯
type Controller struct {
	intersection *element.Intersection
	policy       GreenPolicy
	order        []*element.Lane
}

// NewController 为路口创建信号控制器，相位从车道0开始按环形顺序轮转
func NewController(in *element.Intersection, policy GreenPolicy) (*Controller, error) {
	g, err := CreatePhaseRing(in)
	if err != nil {
		return nil, err
	}
	start, err := in.Lane(0)
	if err != nil {
		return nil, err
	}
	order, err := PhaseOrder(g, start)
	if err != nil {
		return nil, err
	}
	return &Controller{intersection: in, policy: policy, order: order}, nil
}

// RunOneCycle 执行一个完整周期，返回按车道下标排列的各车道绿灯秒数
func (c *Controller) RunOneCycle() [element.NumLanes]int {
	return runCycle(c.intersection, c.order, c.policy)
}

// RunOneCycle 使用默认策略和车道0到3的固定顺序执行一个周期
func RunOneCycle(in *element.Intersection) {
	runCycle(in, in.Lanes(), DefaultGreenPolicy())
}

// runCycle 依次给 order 中的车道一次绿灯
//
// 绿灯的每一秒:
//  1. 绿灯车道有车时驶离一辆
//  2. 其余有车的红灯车道按当前队长累加等待秒数
func runCycle(in *element.Intersection, order []*element.Lane, policy GreenPolicy) [element.NumLanes]int {
	lanes := in.Lanes()
	var greens [element.NumLanes]int

	for _, green := range order {
		greenSecs := policy.GreenTime(green.Vehicles())
		if greenSecs < policy.Base {
			greenSecs = policy.Base
		}
		greens[green.ID()] = greenSecs

		for _, lane := range lanes {
			lane.SetPhase(lane == green)
		}

		for tick := 0; tick < greenSecs; tick++ {
			green.Depart()
			for _, lane := range lanes {
				if lane != green {
					lane.AccrueWait()
				}
			}
		}
		green.SetPhase(false)
	}

	in.CompleteCycle()
	return greens
}
