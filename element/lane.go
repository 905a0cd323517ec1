package element

import "fmt"

// Lane 表示路口的一个进口车道
// vehicles为当前排队车辆数，servedCount与waitSecs为只增不减的累计量
type Lane struct {
	id          int64
	name        string
	vehicles    int
	servedCount int
	waitSecs    int

	// phase表示当前相位状态(true为绿灯，false为红灯)
	phase bool
}

// NewLane 创建一个空车道
func NewLane(id int64, name string) *Lane {
	return &Lane{
		id:   id,
		name: name,
	}
}

// ID 返回车道编号，同时满足 graph.Node 接口
func (lane *Lane) ID() int64 {
	return lane.id
}

// Name 返回车道名称
func (lane *Lane) Name() string {
	return lane.name
}

// Vehicles 返回当前排队车辆数
func (lane *Lane) Vehicles() int {
	return lane.vehicles
}

// Served 返回已驶离的车辆总数
func (lane *Lane) Served() int {
	return lane.servedCount
}

// WaitSecs 返回累计等待秒数
func (lane *Lane) WaitSecs() int {
	return lane.waitSecs
}

// Green 返回当前相位状态
func (lane *Lane) Green() bool {
	return lane.phase
}

// SetPhase 设置相位状态
func (lane *Lane) SetPhase(green bool) {
	lane.phase = green
}

// AddVehicles 向车道追加到达车辆
func (lane *Lane) AddVehicles(n int) error {
	if n < 0 {
		return fmt.Errorf("lane %d: %w: %d", lane.id, ErrNegativeVehicles, n)
	}
	lane.vehicles += n
	return nil
}

// Depart 放行一辆车，车道为空时不做任何事
// 返回是否真的有车驶离
func (lane *Lane) Depart() bool {
	if lane.vehicles <= 0 {
		lane.vehicles = 0
		return false
	}
	lane.vehicles--
	if lane.vehicles < 0 {
		lane.vehicles = 0
	}
	lane.servedCount++
	return true
}

// AccrueWait 红灯的一秒内，按当前队长累加等待秒数
func (lane *Lane) AccrueWait() {
	if lane.phase || lane.vehicles <= 0 {
		return
	}
	lane.waitSecs += lane.vehicles
}

// Report 返回车道的 (排队数, 已驶离数, 累计等待秒数)
func (lane *Lane) Report() (int, int, int) {
	return lane.vehicles, lane.servedCount, lane.waitSecs
}

func (lane *Lane) String() string {
	return fmt.Sprintf("Lane %d (%s): waiting=%d served=%d waitSecs=%d",
		lane.id, lane.name, lane.vehicles, lane.servedCount, lane.waitSecs)
}
