package simulator

import (
	"errors"
	"fmt"
	"time"

	"intersectionSim/element"

	"golang.org/x/exp/rand"
)

var ErrInvalidArrivals = errors.New("simulator: max arrivals per lane must be non-negative")

// ArrivalInjector 在周期之间向各车道注入随机到达车辆
// 随机源只在创建时设置一次种子，之后不允许重新设置
type ArrivalInjector struct {
	rng        *rand.Rand
	seed       uint64
	maxPerLane int
}

// NewArrivalInjector 创建到达注入器，每个车道每次到达 [0, maxPerLane] 辆车
func NewArrivalInjector(seed uint64, maxPerLane int) (*ArrivalInjector, error) {
	if maxPerLane < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidArrivals, maxPerLane)
	}
	return &ArrivalInjector{
		rng:        rand.New(rand.NewSource(seed)),
		seed:       seed,
		maxPerLane: maxPerLane,
	}, nil
}

// TimeSeed 返回基于当前时间的种子
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Seed 返回创建时使用的种子
func (a *ArrivalInjector) Seed() uint64 {
	return a.seed
}

// InjectArrivals 为每个车道独立抽取到达车辆数并加入排队，返回各车道到达数
func (a *ArrivalInjector) InjectArrivals(in *element.Intersection) [element.NumLanes]int {
	var arrivals [element.NumLanes]int
	for i, lane := range in.Lanes() {
		n := a.rng.Intn(a.maxPerLane + 1)
		// n 不会为负
		_ = lane.AddVehicles(n)
		arrivals[i] = n
	}
	return arrivals
}
