package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackplay/pkg/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		speed float64
		want  model.Activity
	}{
		{0, model.ActivitySwimming},
		{2.9, model.ActivitySwimming},
		{3, model.ActivityRunning},
		{10, model.ActivityRunning},
		{15, model.ActivityRunning},
		{15.1, model.ActivityCycling},
		{20, model.ActivityCycling}, // 15-30 band resolves to cycling
		{30, model.ActivityCycling},
		{45, model.ActivityCycling},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.speed), "speed %.1f", tc.speed)
	}
}

func TestSegment_Partition(t *testing.T) {
	points := []model.TrackPoint{
		{Speed: 5, Distance: 0},
		{Speed: 6, Distance: 1},
		{Speed: 20, Distance: 2},
		{Speed: 22, Distance: 4},
		{Speed: 2, Distance: 5},
	}

	segs := Segment(points)
	require.Len(t, segs, 3)

	assert.Equal(t, model.ActivityRunning, segs[0].Activity)
	assert.Equal(t, 0, segs[0].StartIndex)
	assert.Equal(t, 1, segs[0].EndIndex)

	assert.Equal(t, model.ActivityCycling, segs[1].Activity)
	assert.Equal(t, 2, segs[1].StartIndex)
	assert.Equal(t, 3, segs[1].EndIndex)
	assert.InDelta(t, 2.0, segs[1].Distance, 1e-9)

	assert.Equal(t, model.ActivitySwimming, segs[2].Activity)
	assert.Equal(t, 4, segs[2].StartIndex)
	assert.Equal(t, 4, segs[2].EndIndex)

	// Every index is covered exactly once, in order.
	next := 0
	for _, s := range segs {
		assert.Equal(t, next, s.StartIndex)
		next = s.EndIndex + 1
	}
	assert.Equal(t, len(points), next)
}

func TestSegment_SinglePoint(t *testing.T) {
	segs := Segment([]model.TrackPoint{{Speed: 10, Distance: 0}})

	require.Len(t, segs, 1)
	assert.Equal(t, 0, segs[0].StartIndex)
	assert.Equal(t, 0, segs[0].EndIndex)
	assert.Equal(t, 0.0, segs[0].Distance)
	assert.Nil(t, segs[0].DurationHours)
}

func TestSegment_Empty(t *testing.T) {
	assert.Nil(t, Segment(nil))
}

func TestSegment_TimedDuration(t *testing.T) {
	t0 := time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(30 * time.Minute)

	points := []model.TrackPoint{
		{Speed: 10, Distance: 0, Time: &t0},
		{Speed: 11, Distance: 5, Time: &t1},
	}

	segs := Segment(points)
	require.Len(t, segs, 1)

	require.NotNil(t, segs[0].DurationHours)
	assert.InDelta(t, 0.5, *segs[0].DurationHours, 1e-9)
	require.NotNil(t, segs[0].AvgSpeed)
	assert.InDelta(t, 10.0, *segs[0].AvgSpeed, 1e-9)
}
