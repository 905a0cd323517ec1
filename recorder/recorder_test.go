package recorder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"intersectionSim/element"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, filename string) [][]string {
	t.Helper()
	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCycleDataRecorder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "cycles.csv")
	r, err := NewCycleDataRecorder(filename)
	require.NoError(t, err)
	assert.Equal(t, filename, r.Filename())

	in := element.NewIntersection("rec", element.DefaultLaneNames)
	require.NoError(t, in.SeedLanes([element.NumLanes]int{1, 2, 3, 4}))
	in.CompleteCycle()

	r.RecordCycle(in, [element.NumLanes]int{7, 9, 11, 13}, [element.NumLanes]int{0, 1, 2, 3})
	assert.Equal(t, element.NumLanes, r.Pending())
	require.NoError(t, r.Flush())
	assert.Equal(t, 0, r.Pending())
	require.NoError(t, r.Flush(), "flushing an empty cache is a no-op")

	rows := readCSV(t, filename)
	require.Len(t, rows, 1+element.NumLanes)
	assert.Equal(t, cycleDataHeader, rows[0])
	assert.Equal(t, []string{"1", "3", "West", "13", "3", "4", "0", "0"}, rows[4])
}

func TestCycleDataRecorder_ReusesExistingFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cycles.csv")
	in := element.NewIntersection("rec", element.DefaultLaneNames)

	for i := 0; i < 2; i++ {
		r, err := NewCycleDataRecorder(filename)
		require.NoError(t, err)
		r.RecordCycle(in, [element.NumLanes]int{}, [element.NumLanes]int{})
		require.NoError(t, r.Flush())
	}

	rows := readCSV(t, filename)
	assert.Len(t, rows, 1+2*element.NumLanes, "header written once")
}

func TestStatisticsRecord_Format(t *testing.T) {
	record := StatisticsRecord{
		RunID:             "run-1",
		Timestamp:         time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		Intersection:      "Main St",
		Cycles:            10,
		TotalServed:       80,
		TotalWaitSecs:     1000,
		AvgWaitPerVehicle: 12.5,
	}

	assert.Equal(t,
		"[2024-03-01 08:30:00] run=run-1 intersection=\"Main St\" cycles=10 served=80 waitSecs=1000 avgWait=12.50\n",
		record.Format())
}

func TestNewStatisticsRecord(t *testing.T) {
	record := NewStatisticsRecord("x", 1, 2, 3, 1.5)

	_, err := uuid.Parse(record.RunID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), record.Timestamp, time.Minute)
	assert.Equal(t, 2, record.TotalServed)
}

func TestAppendStatistics_Accumulates(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "logs", "statistics.log")

	require.NoError(t, AppendStatistics(filename, NewStatisticsRecord("a", 1, 1, 1, 1)))
	require.NoError(t, AppendStatistics(filename, NewStatisticsRecord("b", 2, 2, 2, 1)))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `intersection="a"`)
	assert.Contains(t, lines[1], `intersection="b"`)
}
