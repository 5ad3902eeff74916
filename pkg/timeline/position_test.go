package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackplay/pkg/geo"
	"trackplay/pkg/journey"
	"trackplay/pkg/model"
)

func eastwardTrack(id string) *model.Track {
	return &model.Track{
		ID: id,
		Points: []model.TrackPoint{
			{Lat: 0, Lon: 0, Elevation: 0, Distance: 0},
			{Lat: 0, Lon: 1, Elevation: 100, Distance: 10, Index: 1},
		},
		Stats: model.Stats{TotalDistance: 10, TotalDuration: 1, HasTimeData: true},
	}
}

func TestPositionAt_TrackInterpolation(t *testing.T) {
	e := NewEngine(mapResolver{}, time.Millisecond)
	e.LoadTrack(eastwardTrack("a"))

	pos, err := e.PositionAt(0.5)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, pos.Lat, 1e-9)
	assert.InDelta(t, 0.5, pos.Lon, 1e-9)
	assert.InDelta(t, 50.0, pos.Elevation, 1e-9)
	assert.InDelta(t, 90.0, pos.Bearing, 0.5)
	assert.Equal(t, 0, pos.PointIndex)
}

func TestPositionAt_Endpoints(t *testing.T) {
	e := NewEngine(mapResolver{}, time.Millisecond)
	e.LoadTrack(eastwardTrack("a"))

	pos, err := e.PositionAt(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pos.Lon)
	assert.Equal(t, 0, pos.PointIndex)
	assert.InDelta(t, 90.0, pos.Bearing, 0.5)

	pos, err = e.PositionAt(1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, pos.Lon)
	assert.Equal(t, 1, pos.PointIndex)

	// Out-of-range progress clamps to the endpoints.
	pos, err = e.PositionAt(1.7)
	require.NoError(t, err)
	assert.Equal(t, 1.0, pos.Lon)
}

func TestPosition_TracksClock(t *testing.T) {
	e := NewEngine(mapResolver{}, time.Millisecond)
	e.LoadTrack(eastwardTrack("a"))

	e.SeekToProgress(0.25)
	pos, err := e.Position()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, pos.Lon, 1e-9)
}

func TestPositionAt_TransportSegment(t *testing.T) {
	e := NewEngine(mapResolver{}, time.Millisecond)

	from := geo.Point{Lat: 0, Lon: 0}
	to := geo.Point{Lat: 0, Lon: 2}
	e.LoadJourney(&journey.Journey{
		ID: "j",
		Segments: []journey.Segment{
			journey.TransportSegment{Mode: journey.TransportPlane, From: from, To: to, PlayDuration: 10 * time.Second},
		},
	})

	pos, err := e.PositionAt(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pos.Lon, 1e-9)
	assert.InDelta(t, 90.0, pos.Bearing, 0.5)
}

func TestPositionAt_JourneyTrackSegments(t *testing.T) {
	res := mapResolver{"a": eastwardTrack("a")}
	e := NewEngine(res, time.Millisecond)

	e.LoadJourney(&journey.Journey{
		ID: "j",
		Segments: []journey.Segment{
			journey.TrackSegment{TrackID: "a", PlayDuration: 10 * time.Second},
			journey.TrackSegment{TrackID: "missing", PlayDuration: 10 * time.Second},
		},
	})

	// First half plays track a.
	pos, err := e.PositionAt(0.25)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pos.Lon, 1e-9)

	// Second half references a track the resolver does not know.
	_, err = e.PositionAt(0.75)
	assert.Error(t, err)
}

func TestPositionAt_NothingLoaded(t *testing.T) {
	e := NewEngine(mapResolver{}, time.Millisecond)
	_, err := e.PositionAt(0.5)
	assert.Error(t, err)
}

func TestPositionAt_EmptyTrack(t *testing.T) {
	e := NewEngine(mapResolver{}, time.Millisecond)
	e.LoadTrack(&model.Track{ID: "empty"})

	_, err := e.PositionAt(0)
	assert.Error(t, err)
}
