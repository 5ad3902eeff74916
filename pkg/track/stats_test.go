package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trackplay/pkg/model"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func intp(v int) *int { return &v }

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Equal(t, model.Stats{}, s)
}

func TestComputeStats_ElevationAndDuration(t *testing.T) {
	points := []model.TrackPoint{
		{Elevation: 100, Distance: 0, Time: ts("2024-05-04T10:00:00Z")},
		{Elevation: 150, Distance: 2, Time: ts("2024-05-04T10:30:00Z")},
		{Elevation: 120, Distance: 4, Time: ts("2024-05-04T11:00:00Z")},
		{Elevation: 180, Distance: 6, Time: ts("2024-05-04T11:30:00Z")},
	}

	s := ComputeStats(points)

	assert.Equal(t, 6.0, s.TotalDistance)
	assert.Equal(t, 100.0, s.MinElevation)
	assert.Equal(t, 180.0, s.MaxElevation)
	// Only the two ascending legs count: +50 and +60.
	assert.InDelta(t, 110.0, s.ElevationGain, 1e-9)

	assert.True(t, s.HasTimeData)
	assert.InDelta(t, 1.5, s.TotalDuration, 1e-9)
	assert.InDelta(t, 4.0, s.AvgSpeed, 1e-9)
	assert.Equal(t, *ts("2024-05-04T10:00:00Z"), *s.StartTime)
	assert.Equal(t, *ts("2024-05-04T11:30:00Z"), *s.EndTime)
}

func TestComputeStats_TimelessEstimate(t *testing.T) {
	points := []model.TrackPoint{
		{Distance: 0},
		{Distance: 10},
	}

	s := ComputeStats(points)

	assert.False(t, s.HasTimeData)
	assert.InDelta(t, 2.0, s.TotalDuration, 1e-9) // 10 km at 5 km/h
	assert.InDelta(t, 5.0, s.AvgSpeed, 1e-9)
	assert.Nil(t, s.StartTime)
	assert.Nil(t, s.EndTime)
}

func TestComputeStats_PartialTimestamps(t *testing.T) {
	// Leading and trailing points without timestamps are skipped when
	// locating the recording window.
	points := []model.TrackPoint{
		{Distance: 0},
		{Distance: 1, Time: ts("2024-05-04T10:00:00Z")},
		{Distance: 2, Time: ts("2024-05-04T10:15:00Z")},
		{Distance: 3},
	}

	s := ComputeStats(points)

	assert.True(t, s.HasTimeData)
	assert.Equal(t, *ts("2024-05-04T10:00:00Z"), *s.StartTime)
	assert.Equal(t, *ts("2024-05-04T10:15:00Z"), *s.EndTime)
}

func TestComputeStats_HeartRate(t *testing.T) {
	points := []model.TrackPoint{
		{HeartRate: intp(110)},
		{HeartRate: intp(0)},   // implausible, ignored
		{HeartRate: intp(350)}, // implausible, ignored
		{HeartRate: nil},
		{HeartRate: intp(130)},
	}

	s := ComputeStats(points)

	assert.True(t, s.HasHeartRateData)
	assert.Equal(t, 110, s.MinHeartRate)
	assert.Equal(t, 130, s.MaxHeartRate)
	assert.InDelta(t, 120.0, s.AvgHeartRate, 1e-9)
}

func TestComputeStats_NoHeartRate(t *testing.T) {
	s := ComputeStats([]model.TrackPoint{{}, {}})

	assert.False(t, s.HasHeartRateData)
	assert.Equal(t, 0.0, s.AvgHeartRate)
	assert.Equal(t, 0, s.MinHeartRate)
	assert.Equal(t, 0, s.MaxHeartRate)
}
