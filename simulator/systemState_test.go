package simulator

import (
	"bytes"
	"math"
	"testing"

	"intersectionSim/element"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_WorkedTrace(t *testing.T) {
	in := newSeededIntersection(t, [element.NumLanes]int{2, 0, 5, 1})
	RunOneCycle(in)

	s := Summarize(in)

	assert.Equal(t, 1, s.Cycles)
	assert.Equal(t, 8, s.TotalServed)
	assert.Equal(t, 99, s.TotalWaitSecs)
	assert.InDelta(t, 99.0/8.0, s.AvgWaitPerVehicle, 1e-9)

	assert.Equal(t, "South", s.Lanes[2].Name)
	assert.InDelta(t, 14.0, s.Lanes[2].AvgWaitPerVehicle, 1e-9)
	assert.Equal(t, 0.0, s.Lanes[1].AvgWaitPerVehicle)

	assert.InDelta(t, 2.0, s.MeanServed, 1e-9)
	assert.InDelta(t, math.Sqrt(3.5), s.StdDevServed, 1e-9)
}

func TestSummarize_NothingServed(t *testing.T) {
	in := newSeededIntersection(t, [element.NumLanes]int{0, 0, 0, 0})

	s := Summarize(in)

	assert.Equal(t, 0, s.TotalServed)
	assert.Equal(t, 0.0, s.AvgWaitPerVehicle)
}

func TestPrintState(t *testing.T) {
	in := newSeededIntersection(t, [element.NumLanes]int{2, 0, 5, 1})
	RunOneCycle(in)

	var buf bytes.Buffer
	PrintState(&buf, in)

	out := buf.String()
	assert.Contains(t, out, "Intersection: test | Cycles: 1")
	assert.Contains(t, out, "Lane 2 (South): waiting=0 served=5 waitSecs=70")
	assert.Contains(t, out, "Lane 3 (West): waiting=0 served=1 waitSecs=29")
}

func TestSummary_LogStatus(t *testing.T) {
	in := newSeededIntersection(t, [element.NumLanes]int{2, 0, 5, 1})
	RunOneCycle(in)

	var buf bytes.Buffer
	Summarize(in).LogStatus(&buf)

	out := buf.String()
	assert.Contains(t, out, "Cycles: 1, Served: 8, WaitSecs: 99")
	assert.Contains(t, out, "Lane 2 (South): served=5 waitSecs=70 avgWait=14.00")
	assert.Contains(t, out, "Lane 1 (East): served=0 waitSecs=0 avgWait=0.00")
}
