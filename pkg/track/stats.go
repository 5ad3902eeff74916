package track

import (
	"math"
	"time"

	"trackplay/pkg/model"
)

// assumedAvgSpeed is used to estimate a duration for tracks without time
// data, purely so downstream average-speed stats remain non-degenerate.
const assumedAvgSpeed = 5.0 // km/h

// ComputeStats reduces a finalized point sequence into track-level summary
// statistics. It runs once as the last parsing step; a changed point
// sequence requires a wholesale recompute, never an incremental patch.
func ComputeStats(points []model.TrackPoint) model.Stats {
	var s model.Stats
	if len(points) == 0 {
		return s
	}

	s.TotalDistance = points[len(points)-1].Distance

	minEle := math.Inf(1)
	maxEle := math.Inf(-1)
	for i := range points {
		if points[i].Elevation < minEle {
			minEle = points[i].Elevation
		}
		if points[i].Elevation > maxEle {
			maxEle = points[i].Elevation
		}
		if i > 0 {
			if delta := points[i].Elevation - points[i-1].Elevation; delta > 0 {
				s.ElevationGain += delta
			}
		}
	}
	// Sentinel-safe: never let ±Inf escape into the stats.
	if !math.IsInf(minEle, 1) {
		s.MinElevation = minEle
	}
	if !math.IsInf(maxEle, -1) {
		s.MaxElevation = maxEle
	}

	s.StartTime = firstTimestamp(points)
	s.EndTime = lastTimestamp(points)

	if s.StartTime != nil && s.EndTime != nil && s.EndTime.After(*s.StartTime) {
		s.HasTimeData = true
		s.TotalDuration = s.EndTime.Sub(*s.StartTime).Hours()
	} else {
		// Estimate so average-speed stats stay usable; HasTimeData stays
		// false so consumers can tell this apart from a recorded duration.
		s.TotalDuration = s.TotalDistance / assumedAvgSpeed
	}

	if s.TotalDuration > 0 {
		s.AvgSpeed = s.TotalDistance / s.TotalDuration
	}

	aggregateHeartRate(points, &s)
	return s
}

// aggregateHeartRate summarizes heart rate over points carrying a value in
// (0, 300). With no qualifying points the numeric fields stay at their
// neutral zero defaults rather than NaN.
func aggregateHeartRate(points []model.TrackPoint, s *model.Stats) {
	count := 0
	sum := 0
	minHR := 0
	maxHR := 0

	for i := range points {
		hr := points[i].HeartRate
		if hr == nil || *hr <= 0 || *hr >= 300 {
			continue
		}
		if count == 0 || *hr < minHR {
			minHR = *hr
		}
		if *hr > maxHR {
			maxHR = *hr
		}
		sum += *hr
		count++
	}

	if count == 0 {
		return
	}
	s.HasHeartRateData = true
	s.AvgHeartRate = float64(sum) / float64(count)
	s.MinHeartRate = minHR
	s.MaxHeartRate = maxHR
}

func firstTimestamp(points []model.TrackPoint) *time.Time {
	for i := range points {
		if points[i].Time != nil {
			return points[i].Time
		}
	}
	return nil
}

func lastTimestamp(points []model.TrackPoint) *time.Time {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Time != nil {
			return points[i].Time
		}
	}
	return nil
}
