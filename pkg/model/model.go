package model

import (
	"time"
)

// TrackPoint is a single accepted GPS sample with its derived fields.
type TrackPoint struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Elevation float64 `json:"elevation"` // meters, 0 when the source had none

	// Time is nil when the source record carried no (parseable) timestamp.
	Time *time.Time `json:"time,omitempty"`
	// HeartRate is nil when the source record carried no heart rate.
	HeartRate *int `json:"heart_rate,omitempty"`

	Index    int     `json:"index"`
	Distance float64 `json:"distance"` // cumulative km from track start
	Speed    float64 `json:"speed"`    // km/h, always populated after fill-in
}

// Bounds is the bounding box of a track.
type Bounds struct {
	North  float64 `json:"north"`
	South  float64 `json:"south"`
	East   float64 `json:"east"`
	West   float64 `json:"west"`
	Center LatLon  `json:"center"`
}

// LatLon is a bare coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Stats holds track-level summary statistics, computed once at parse time.
type Stats struct {
	TotalDistance float64 `json:"total_distance"` // km
	TotalDuration float64 `json:"total_duration"` // hours
	ElevationGain float64 `json:"elevation_gain"` // meters, sum of positive deltas
	AvgSpeed      float64 `json:"avg_speed"`      // km/h
	MinElevation  float64 `json:"min_elevation"`
	MaxElevation  float64 `json:"max_elevation"`

	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// HasTimeData distinguishes a wall-clock duration from the
	// distance-based estimate used for timeless tracks.
	HasTimeData bool `json:"has_time_data"`

	HasHeartRateData bool    `json:"has_heart_rate_data"`
	AvgHeartRate     float64 `json:"avg_heart_rate"`
	MinHeartRate     int     `json:"min_heart_rate"`
	MaxHeartRate     int     `json:"max_heart_rate"`
}

// Activity is a speed-derived classification of a run of points.
type Activity string

const (
	ActivityRunning  Activity = "running"
	ActivityWalking  Activity = "walking"
	ActivityCycling  Activity = "cycling"
	ActivitySwimming Activity = "swimming"
)

// ActivitySegment is a maximal contiguous run of points sharing one
// classification. Segments partition a track's index range exactly.
type ActivitySegment struct {
	Activity      Activity   `json:"activity"`
	StartIndex    int        `json:"start_index"`
	EndIndex      int        `json:"end_index"`
	StartDistance float64    `json:"start_distance"`
	EndDistance   float64    `json:"end_distance"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Distance      float64    `json:"distance"` // km, clamped at 0
	DurationHours *float64   `json:"duration_hours,omitempty"`
	AvgSpeed      *float64   `json:"avg_speed,omitempty"`
}

// Track is a finalized, immutable sequence of points with derived views.
// Consumers reference it, never mutate it.
type Track struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Points           []TrackPoint      `json:"points"`
	Stats            Stats             `json:"stats"`
	Bounds           *Bounds           `json:"bounds"`
	ActivitySegments []ActivitySegment `json:"activity_segments"`
}

// PlaybackState is a read-only snapshot of the timeline engine.
type PlaybackState struct {
	Playing         bool    `json:"playing"`
	CurrentTime     float64 `json:"current_time"`   // ms
	TotalDuration   float64 `json:"total_duration"` // ms
	Progress        float64 `json:"progress"`       // [0,1]
	Speed           float64 `json:"speed"`          // multiplier
	SegmentIndex    int     `json:"segment_index"`
	SegmentProgress float64 `json:"segment_progress"`

	// Estimated is true when TotalDuration was derived from distance at an
	// assumed speed rather than recorded timestamps; UI and export logic
	// should warn the user.
	Estimated bool `json:"estimated"`
}

// Position is the spatial snapshot resolved from a playback progress value.
type Position struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Elevation  float64 `json:"elevation"`
	Bearing    float64 `json:"bearing"`     // degrees, marker heading
	PointIndex int     `json:"point_index"` // index of the bracketing point before the marker
}
