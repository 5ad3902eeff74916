package track

import "errors"

// Parser failures are terminal for an input: the caller receives one of
// these and never a partial track. Individual bad points are skipped, not
// surfaced.
var (
	// ErrInvalidFormat means the input could not be decoded into point
	// records at all.
	ErrInvalidFormat = errors.New("input is not a recognizable GPX document")

	// ErrNoTrackPoints means the input decoded but contained zero usable
	// points across all fallback tiers.
	ErrNoTrackPoints = errors.New("no usable track points found")
)
