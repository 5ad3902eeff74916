// Package journey models an authored ordered sequence of track and
// transport segments played back as one continuous timeline.
package journey

import (
	"fmt"
	"time"

	"trackplay/pkg/geo"
)

// Kind discriminates the segment variants. Every consumption site must
// switch exhaustively and fail loudly on an unknown kind.
type Kind string

const (
	KindTrack     Kind = "track"
	KindTransport Kind = "transport"
)

// Segment is the tagged union of track and transport legs.
type Segment interface {
	Kind() Kind
	// Duration is the authored playback duration of the segment.
	Duration() time.Duration
}

// TrackSegment plays back a parsed track over its authored duration.
type TrackSegment struct {
	TrackID      string
	PlayDuration time.Duration
}

func (s TrackSegment) Kind() Kind              { return KindTrack }
func (s TrackSegment) Duration() time.Duration { return s.PlayDuration }

// TransportMode is the vehicle used for a transport leg between tracks.
type TransportMode string

const (
	TransportCar   TransportMode = "car"
	TransportTrain TransportMode = "train"
	TransportPlane TransportMode = "plane"
	TransportBoat  TransportMode = "boat"
)

// TransportSegment animates a straight transfer between two coordinates.
type TransportSegment struct {
	Mode         TransportMode
	From         geo.Point
	To           geo.Point
	PlayDuration time.Duration
	DistanceKm   float64
}

func (s TransportSegment) Kind() Kind              { return KindTransport }
func (s TransportSegment) Duration() time.Duration { return s.PlayDuration }

// Journey is an authored ordered segment sequence. Segment order defines
// temporal order during playback.
type Journey struct {
	ID       string
	Segments []Segment
}

// TotalDuration is the sum of the authored segment durations.
func (j *Journey) TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range j.Segments {
		total += s.Duration()
	}
	return total
}

// Locate maps an elapsed playback time to the segment whose time window
// contains it, along with the intra-segment progress in [0,1]. Segments are
// consumed in authored order, each occupying a contiguous slice
// proportional to its duration. Elapsed times at or past the end resolve to
// the last segment at progress 1.
func (j *Journey) Locate(elapsed time.Duration) (index int, progress float64, err error) {
	if len(j.Segments) == 0 {
		return 0, 0, fmt.Errorf("journey %s has no segments", j.ID)
	}
	if elapsed < 0 {
		elapsed = 0
	}

	var offset time.Duration
	for i, s := range j.Segments {
		d := s.Duration()
		if elapsed < offset+d {
			if d <= 0 {
				return i, 0, nil
			}
			return i, float64(elapsed-offset) / float64(d), nil
		}
		offset += d
	}

	return len(j.Segments) - 1, 1, nil
}
