// Package activity classifies contiguous runs of track points into
// activity types using speed thresholds.
package activity

import (
	"trackplay/pkg/model"
)

// Speed thresholds in km/h. These boundaries are policy, not physics: the
// cycling check deliberately runs before the running upper bound, so the
// 15-30 band classifies as cycling.
const (
	swimmingMaxSpeed = 3.0
	cyclingMinSpeed  = 15.0
	runningMaxSpeed  = 30.0
)

// Classify maps a point speed to an activity type. The check order is part
// of the contract; see the threshold constants.
func Classify(speed float64) model.Activity {
	switch {
	case speed < swimmingMaxSpeed:
		return model.ActivitySwimming
	case speed > cyclingMinSpeed:
		return model.ActivityCycling
	case speed <= runningMaxSpeed:
		return model.ActivityRunning
	default:
		return model.ActivityWalking
	}
}

// Segment partitions a point sequence into maximal contiguous runs sharing
// one classification. The result covers every index exactly once; a
// single-point track yields one degenerate segment.
func Segment(points []model.TrackPoint) []model.ActivitySegment {
	if len(points) == 0 {
		return nil
	}

	var segments []model.ActivitySegment
	current := Classify(points[0].Speed)
	start := 0

	for i := 1; i < len(points); i++ {
		next := Classify(points[i].Speed)
		if next == current {
			continue
		}
		segments = append(segments, finalize(points, current, start, i-1))
		current = next
		start = i
	}

	// The in-flight segment is always flushed.
	segments = append(segments, finalize(points, current, start, len(points)-1))
	return segments
}

func finalize(points []model.TrackPoint, act model.Activity, start, end int) model.ActivitySegment {
	seg := model.ActivitySegment{
		Activity:      act,
		StartIndex:    start,
		EndIndex:      end,
		StartDistance: points[start].Distance,
		EndDistance:   points[end].Distance,
		StartTime:     points[start].Time,
		EndTime:       points[end].Time,
	}

	// Clamp at 0 even if distance data is missing or inverted.
	if d := seg.EndDistance - seg.StartDistance; d > 0 {
		seg.Distance = d
	}

	if seg.StartTime != nil && seg.EndTime != nil && seg.EndTime.After(*seg.StartTime) {
		hours := seg.EndTime.Sub(*seg.StartTime).Hours()
		seg.DurationHours = &hours
		if hours > 0 {
			avg := seg.Distance / hours
			seg.AvgSpeed = &avg
		}
	}

	return seg
}
