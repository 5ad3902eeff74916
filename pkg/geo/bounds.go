package geo

import (
	"github.com/paulmach/orb"

	"trackplay/pkg/model"
)

// ComputeBounds reduces a point slice to its bounding box.
// Returns nil for empty input; callers must handle that rather than
// assume a default box.
func ComputeBounds(points []Point) *model.Bounds {
	var bound orb.Bound
	first := true

	for _, p := range points {
		if !p.Valid() {
			continue
		}
		op := orb.Point{p.Lon, p.Lat}
		if first {
			bound = op.Bound()
			first = false
			continue
		}
		bound = bound.Extend(op)
	}

	if first {
		return nil
	}

	center := bound.Center()
	return &model.Bounds{
		North:  bound.Max.Lat(),
		South:  bound.Min.Lat(),
		East:   bound.Max.Lon(),
		West:   bound.Min.Lon(),
		Center: model.LatLon{Lat: center.Lat(), Lon: center.Lon()},
	}
}
