package simulator

import (
	"errors"
	"fmt"
)

const (
	// BaseGreen 最短绿灯时长(秒)
	BaseGreen = 5
	// MaxGreen 最长绿灯时长(秒)
	MaxGreen = 40
	// PerVehicleGreen 每辆排队车辆增加的绿灯秒数
	PerVehicleGreen = 2
)

var ErrInvalidPolicy = errors.New("simulator: invalid green policy")

// GreenPolicy 线性绿灯时长策略
//
// 公式: t = Base + PerVehicle * waiting，结果限制在 [Base, Max]
type GreenPolicy struct {
	Base       int
	Max        int
	PerVehicle int
}

// DefaultGreenPolicy 返回 5 + 2*waiting、上限40秒的默认策略
func DefaultGreenPolicy() GreenPolicy {
	return GreenPolicy{Base: BaseGreen, Max: MaxGreen, PerVehicle: PerVehicleGreen}
}

// NewGreenPolicy 创建并校验绿灯策略
func NewGreenPolicy(base, max, perVehicle int) (GreenPolicy, error) {
	if base <= 0 {
		return GreenPolicy{}, fmt.Errorf("%w: base %d must be positive", ErrInvalidPolicy, base)
	}
	if max < base {
		return GreenPolicy{}, fmt.Errorf("%w: max %d below base %d", ErrInvalidPolicy, max, base)
	}
	if perVehicle < 0 {
		return GreenPolicy{}, fmt.Errorf("%w: perVehicle %d is negative", ErrInvalidPolicy, perVehicle)
	}
	return GreenPolicy{Base: base, Max: max, PerVehicle: perVehicle}, nil
}

// GreenTime 根据排队车辆数计算绿灯秒数
func (p GreenPolicy) GreenTime(waiting int) int {
	if waiting < 0 {
		waiting = 0
	}
	t := p.Base + p.PerVehicle*waiting
	if t < p.Base {
		t = p.Base
	}
	if t > p.Max {
		t = p.Max
	}
	return t
}

// GreenTime 使用默认策略计算绿灯秒数
func GreenTime(waiting int) int {
	return DefaultGreenPolicy().GreenTime(waiting)
}
