package element

import (
	"errors"
	"fmt"
)

// NumLanes 路口进口车道数，固定为4
const NumLanes = 4

// MaxNameLength 路口名称的最大字符数，超出部分截断
const MaxNameLength = 63

var (
	ErrNegativeVehicles = errors.New("element: vehicle count must be non-negative")
	ErrLaneIndex        = errors.New("element: lane index out of range")
)

// DefaultLaneNames 默认的车道名称，按相位顺序排列
var DefaultLaneNames = [NumLanes]string{"North", "East", "South", "West"}

// Intersection 表示一个四进口路口
// 车道数组由路口独占，只在单个执行流中原地修改
type Intersection struct {
	name   string
	lanes  [NumLanes]Lane
	cycles int
}

// NewIntersection 创建一个车道计数全部为零的路口
func NewIntersection(name string, laneNames [NumLanes]string) *Intersection {
	in := &Intersection{name: truncateName(name)}
	for i := range in.lanes {
		laneName := laneNames[i]
		if laneName == "" {
			laneName = DefaultLaneNames[i]
		}
		in.lanes[i] = Lane{id: int64(i), name: laneName}
	}
	return in
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		return string(runes[:MaxNameLength])
	}
	return name
}

// Name 返回路口名称
func (in *Intersection) Name() string {
	return in.name
}

// Cycles 返回已完成的完整周期数
func (in *Intersection) Cycles() int {
	return in.cycles
}

// CompleteCycle 在四个车道都获得一次绿灯后调用
func (in *Intersection) CompleteCycle() {
	in.cycles++
}

// Lane 按下标返回车道
func (in *Intersection) Lane(i int) (*Lane, error) {
	if i < 0 || i >= NumLanes {
		return nil, fmt.Errorf("%w: %d", ErrLaneIndex, i)
	}
	return &in.lanes[i], nil
}

// Lanes 按下标顺序返回所有车道
func (in *Intersection) Lanes() []*Lane {
	lanes := make([]*Lane, NumLanes)
	for i := range in.lanes {
		lanes[i] = &in.lanes[i]
	}
	return lanes
}

// SeedLanes 设置各车道的初始排队车辆数
// 任一计数为负时不修改任何车道
func (in *Intersection) SeedLanes(counts [NumLanes]int) error {
	for i, n := range counts {
		if n < 0 {
			return fmt.Errorf("lane %d: %w: %d", i, ErrNegativeVehicles, n)
		}
	}
	for i, n := range counts {
		in.lanes[i].vehicles = n
	}
	return nil
}

// LaneState 车道状态快照
type LaneState struct {
	Name     string
	Vehicles int
	Served   int
	WaitSecs int
}

// Snapshot 返回所有车道的状态快照
func (in *Intersection) Snapshot() [NumLanes]LaneState {
	var states [NumLanes]LaneState
	for i := range in.lanes {
		lane := &in.lanes[i]
		states[i] = LaneState{
			Name:     lane.name,
			Vehicles: lane.vehicles,
			Served:   lane.servedCount,
			WaitSecs: lane.waitSecs,
		}
	}
	return states
}
