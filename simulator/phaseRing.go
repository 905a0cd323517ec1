package simulator

import (
	"errors"
	"fmt"

	"intersectionSim/element"
	"intersectionSim/utils"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

var ErrPhaseRing = errors.New("simulator: phase ring does not visit every lane")

// CreatePhaseRing 创建相位环
//
// 每个车道是图中的一个节点，边 i -> i+1 表示车道 i 的绿灯结束后轮到车道 i+1，
// 最后一个车道连回第一个车道形成环形。
//
// 返回:
//   - *simple.DirectedGraph: 相位环
//   - error: 环不强连通时返回 ErrPhaseRing
func CreatePhaseRing(in *element.Intersection) (*simple.DirectedGraph, error) {
	g := simple.NewDirectedGraph()

	lanes := in.Lanes()
	for _, lane := range lanes {
		g.AddNode(lane)
	}

	// 创建边（连接相邻车道）
	for i := 0; i < len(lanes)-1; i++ {
		g.SetEdge(simple.Edge{F: lanes[i], T: lanes[i+1]})
	}
	// 连接最后一个车道到第一个车道，形成环形
	g.SetEdge(simple.Edge{F: lanes[len(lanes)-1], T: lanes[0]})

	if !utils.IsStronglyConnected(g) {
		return nil, ErrPhaseRing
	}
	return g, nil
}

// PhaseOrder 从 start 出发沿相位环走一圈，返回一个周期内的绿灯顺序
func PhaseOrder(g graph.Directed, start graph.Node) ([]*element.Lane, error) {
	n := g.Nodes().Len()
	order := make([]*element.Lane, 0, n)
	visited := make(map[int64]struct{}, n)

	current := start
	for len(order) < n {
		if _, ok := visited[current.ID()]; ok {
			return nil, fmt.Errorf("%w: revisited lane %d after %d phases", ErrPhaseRing, current.ID(), len(order))
		}
		lane, ok := current.(*element.Lane)
		if !ok {
			return nil, fmt.Errorf("%w: node %d is not a lane", ErrPhaseRing, current.ID())
		}
		visited[current.ID()] = struct{}{}
		order = append(order, lane)

		next := g.From(current.ID())
		if next.Len() != 1 {
			return nil, fmt.Errorf("%w: lane %d has %d successors", ErrPhaseRing, current.ID(), next.Len())
		}
		next.Next()
		current = next.Node()
	}

	if current.ID() != start.ID() {
		return nil, fmt.Errorf("%w: ring does not close at lane %d", ErrPhaseRing, start.ID())
	}
	return order, nil
}
