package track

import (
	"trackplay/pkg/model"
)

// Speed synthesis policy. Synthesized speeds are a best-effort visualization
// aid for timeless tracks, not measured data.
const (
	syntheticBaseSpeed = 8.0 // km/h baseline for a track with no time data
	uphillFactor       = 0.7
	downhillFactor     = 1.2
	jitterFraction     = 0.2
)

// fillSpeeds ensures every point carries a positive speed.
//
// If no point has a known positive speed the whole track is synthesized.
// Otherwise gaps are filled by linear interpolation between the nearest
// known neighbors.
func (p *Parser) fillSpeeds(points []model.TrackPoint) {
	hasKnown := false
	for i := range points {
		if points[i].Speed > 0 {
			hasKnown = true
			break
		}
	}

	if !hasKnown {
		p.synthesize(points)
		return
	}
	interpolateSpeeds(points)
}

// synthesize assigns a heuristic speed to every point: the baseline
// modulated by the elevation slope of the incoming leg, plus bounded
// random jitter so the visualization shows plausible variation.
func (p *Parser) synthesize(points []model.TrackPoint) {
	rng := p.newJitter()

	for i := range points {
		base := syntheticBaseSpeed
		if i > 0 {
			delta := points[i].Elevation - points[i-1].Elevation
			switch {
			case delta > 0:
				base *= uphillFactor
			case delta < 0:
				base *= downhillFactor
			}
		}
		jitter := 1 + (rng.Float64()*2-1)*jitterFraction
		points[i].Speed = base * jitter
	}
}

// interpolateSpeeds fills points without a positive speed from their
// nearest known neighbors. Edge points inherit their single neighbor;
// the global fallback is the mean of all known positive speeds.
func interpolateSpeeds(points []model.TrackPoint) {
	var known []int
	sum := 0.0
	for i := range points {
		if points[i].Speed > 0 {
			known = append(known, i)
			sum += points[i].Speed
		}
	}
	mean := sum / float64(len(known))

	for i := range points {
		if points[i].Speed > 0 {
			continue
		}

		prev, next := -1, -1
		for _, k := range known {
			if k < i {
				prev = k
			} else if k > i {
				next = k
				break
			}
		}

		switch {
		case prev >= 0 && next >= 0:
			t := float64(i-prev) / float64(next-prev)
			points[i].Speed = points[prev].Speed + (points[next].Speed-points[prev].Speed)*t
		case prev >= 0:
			points[i].Speed = points[prev].Speed
		case next >= 0:
			points[i].Speed = points[next].Speed
		default:
			points[i].Speed = mean
		}
	}
}
