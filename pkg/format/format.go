// Package format renders distances, speeds, paces and elevations as
// display labels. It is a presentation layer over Stats and PlaybackState,
// not part of the analytical contract.
package format

import (
	"fmt"
	"math"
)

// Units selects the measurement system for labels.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

const (
	kmPerMile    = 1.609344
	feetPerMeter = 3.28084
)

// Distance renders a distance in km as a label.
func Distance(km float64, u Units) string {
	if u == Imperial {
		return fmt.Sprintf("%.2f mi", km/kmPerMile)
	}
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.2f km", km)
}

// Speed renders a speed in km/h as a label.
func Speed(kmh float64, u Units) string {
	if u == Imperial {
		return fmt.Sprintf("%.1f mph", kmh/kmPerMile)
	}
	return fmt.Sprintf("%.1f km/h", kmh)
}

// Pace renders a speed as minutes per km (or mile). Zero speed renders as
// a placeholder rather than infinity.
func Pace(kmh float64, u Units) string {
	if kmh <= 0 {
		return "--:--"
	}

	perUnit := 60 / kmh // min per km
	suffix := "/km"
	if u == Imperial {
		perUnit = 60 / (kmh / kmPerMile)
		suffix = "/mi"
	}

	mins := int(perUnit)
	secs := int(math.Round((perUnit - float64(mins)) * 60))
	if secs == 60 {
		mins++
		secs = 0
	}
	return fmt.Sprintf("%d:%02d%s", mins, secs, suffix)
}

// Elevation renders an elevation in meters as a label.
func Elevation(meters float64, u Units) string {
	if u == Imperial {
		return fmt.Sprintf("%.0f ft", meters*feetPerMeter)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// ClockDuration renders a duration in hours as h:mm:ss.
func ClockDuration(hours float64) string {
	totalSecs := int(math.Round(hours * 3600))
	h := totalSecs / 3600
	m := (totalSecs % 3600) / 60
	s := totalSecs % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
