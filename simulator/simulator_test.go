package simulator

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"intersectionSim/element"
	"intersectionSim/recorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T, counts [element.NumLanes]int, seed uint64) *Simulator {
	t.Helper()
	injector, err := NewArrivalInjector(seed, 3)
	require.NoError(t, err)
	sim, err := NewSimulator(newSeededIntersection(t, counts), DefaultGreenPolicy(), injector)
	require.NoError(t, err)
	return sim
}

func TestSimulator_ZeroCyclesLeavesStateUnchanged(t *testing.T) {
	sim := newTestSimulator(t, [element.NumLanes]int{2, 0, 5, 1}, 1)
	before := sim.Intersection().Snapshot()

	summary, err := sim.Run(0)
	require.NoError(t, err)

	assert.Equal(t, before, sim.Intersection().Snapshot())
	assert.Equal(t, 0, summary.Cycles)
	assert.Equal(t, 0, summary.TotalServed)
	assert.Equal(t, 0.0, summary.AvgWaitPerVehicle)
}

func TestSimulator_RejectsNegativeCycles(t *testing.T) {
	sim := newTestSimulator(t, [element.NumLanes]int{}, 1)
	_, err := sim.Run(-1)
	assert.ErrorIs(t, err, ErrNegativeCycles)
}

func TestSimulator_SameSeedSameSummary(t *testing.T) {
	a := newTestSimulator(t, [element.NumLanes]int{4, 8, 1, 0}, 2024)
	b := newTestSimulator(t, [element.NumLanes]int{4, 8, 1, 0}, 2024)

	sa, err := a.Run(25)
	require.NoError(t, err)
	sb, err := b.Run(25)
	require.NoError(t, err)

	assert.Equal(t, sa, sb)
	assert.Equal(t, 25, sa.Cycles)
}

func TestSimulator_FirstCycleMatchesWorkedTrace(t *testing.T) {
	sim := newTestSimulator(t, [element.NumLanes]int{2, 0, 5, 1}, 5)

	summary, err := sim.Run(1)
	require.NoError(t, err)

	// arrivals happen after the cycle and add no served or wait time
	assert.Equal(t, 8, summary.TotalServed)
	assert.Equal(t, 99, summary.TotalWaitSecs)
}

func TestSimulator_ReportsBeforeAndAfterEachCycle(t *testing.T) {
	sim := newTestSimulator(t, [element.NumLanes]int{1, 1, 1, 1}, 3)
	var buf bytes.Buffer
	sim.SetReportWriter(&buf)

	_, err := sim.Run(2)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 4, strings.Count(out, "Intersection: test"))
	assert.Equal(t, 1, strings.Count(out, "Cycles: 0\n"))
	assert.Equal(t, 2, strings.Count(out, "Cycles: 1\n"))
	assert.Equal(t, 1, strings.Count(out, "Cycles: 2\n"))
}

func TestSimulator_RecordsCycleData(t *testing.T) {
	sim := newTestSimulator(t, [element.NumLanes]int{2, 0, 5, 1}, 3)
	filename := filepath.Join(t.TempDir(), "data", "cycles.csv")
	r, err := recorder.NewCycleDataRecorder(filename)
	require.NoError(t, err)
	sim.SetCycleRecorder(r)

	_, err = sim.Run(3)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Pending())

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 1+3*element.NumLanes)
	assert.Equal(t, "Cycle", rows[0][0])
	assert.Equal(t, []string{"1", "2", "South", "15"}, rows[3][:4])
	assert.Equal(t, "70", rows[3][7])
}

func TestFinishSimulation(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "statistics.log")
	summary := Summary{Cycles: 2, TotalServed: 8, TotalWaitSecs: 100, AvgWaitPerVehicle: 12.5}

	require.NoError(t, FinishSimulation(filename, "Main St", summary))
	require.NoError(t, FinishSimulation(filename, "Main St", summary))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "runs accumulate, the log is never truncated")
	assert.Contains(t, lines[0], `intersection="Main St" cycles=2 served=8 waitSecs=100 avgWait=12.50`)
}

func TestFinishSimulation_UnwritableLog(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := FinishSimulation(filepath.Join(blocker, "statistics.log"), "x", Summary{})
	assert.Error(t, err)
}
