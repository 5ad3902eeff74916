package timeline

import (
	"fmt"
	"sort"

	"trackplay/pkg/geo"
	"trackplay/pkg/journey"
	"trackplay/pkg/model"
)

// Position resolves the spatial position at the current playback progress.
func (e *Engine) Position() (*model.Position, error) {
	e.mu.Lock()
	progress := 0.0
	if e.totalMs > 0 {
		progress = e.currentMs / e.totalMs
	}
	e.mu.Unlock()
	return e.PositionAt(progress)
}

// PositionAt resolves the spatial position for an arbitrary progress value
// in [0,1]: locate the containing segment, compute intra-segment progress,
// and interpolate along the segment's track distance.
func (e *Engine) PositionAt(progress float64) (*model.Position, error) {
	e.mu.Lock()
	j := e.journey
	trk := e.track
	idx, segProgress := e.locateLocked(progress)
	e.mu.Unlock()

	if j != nil {
		return e.journeyPosition(j, idx, segProgress)
	}
	if trk != nil {
		return positionOnTrack(trk, segProgress)
	}
	return nil, fmt.Errorf("no track or journey loaded")
}

func (e *Engine) journeyPosition(j *journey.Journey, idx int, segProgress float64) (*model.Position, error) {
	if idx < 0 || idx >= len(j.Segments) {
		return nil, fmt.Errorf("segment index %d out of range", idx)
	}

	switch seg := j.Segments[idx].(type) {
	case journey.TrackSegment:
		trk := e.resolver.Get(seg.TrackID)
		if trk == nil {
			return nil, fmt.Errorf("journey references unknown track %s", seg.TrackID)
		}
		return positionOnTrack(trk, segProgress)

	case journey.TransportSegment:
		pos := geo.Interpolate(seg.From, seg.To, segProgress)
		return &model.Position{
			Lat:     pos.Lat,
			Lon:     pos.Lon,
			Bearing: geo.Bearing(seg.From, seg.To),
		}, nil

	default:
		return nil, fmt.Errorf("unhandled journey segment kind %q", seg.Kind())
	}
}

// positionOnTrack maps intra-segment progress to a point on the track by
// cumulative distance: find the bracketing pair of points and interpolate
// lat/lon/elevation between them.
func positionOnTrack(t *model.Track, progress float64) (*model.Position, error) {
	points := t.Points
	if len(points) == 0 {
		return nil, fmt.Errorf("track %s has no points", t.ID)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	target := progress * t.Stats.TotalDistance

	// First point whose cumulative distance reaches the target.
	i := sort.Search(len(points), func(n int) bool {
		return points[n].Distance >= target
	})

	if i <= 0 {
		return pointPosition(points, 0), nil
	}
	if i >= len(points) {
		return pointPosition(points, len(points)-1), nil
	}

	a, b := points[i-1], points[i]
	span := b.Distance - a.Distance
	frac := 0.0
	if span > 0 {
		frac = (target - a.Distance) / span
	}

	pa := geo.Point{Lat: a.Lat, Lon: a.Lon}
	pb := geo.Point{Lat: b.Lat, Lon: b.Lon}
	pos := geo.Interpolate(pa, pb, frac)

	return &model.Position{
		Lat:        pos.Lat,
		Lon:        pos.Lon,
		Elevation:  geo.Lerp(a.Elevation, b.Elevation, frac),
		Bearing:    geo.Bearing(pa, pb),
		PointIndex: i - 1,
	}, nil
}

func pointPosition(points []model.TrackPoint, idx int) *model.Position {
	p := points[idx]
	pos := &model.Position{
		Lat:        p.Lat,
		Lon:        p.Lon,
		Elevation:  p.Elevation,
		PointIndex: idx,
	}
	// Heading from the surrounding leg, when one exists.
	if idx+1 < len(points) {
		pos.Bearing = geo.Bearing(geo.Point{Lat: p.Lat, Lon: p.Lon}, geo.Point{Lat: points[idx+1].Lat, Lon: points[idx+1].Lon})
	} else if idx > 0 {
		pos.Bearing = geo.Bearing(geo.Point{Lat: points[idx-1].Lat, Lon: points[idx-1].Lon}, geo.Point{Lat: p.Lat, Lon: p.Lon})
	}
	return pos
}
