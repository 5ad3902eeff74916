package track

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trackplay/pkg/model"
)

func TestInterpolateSpeeds_Gaps(t *testing.T) {
	points := []model.TrackPoint{
		{Speed: 0},  // edge, inherits next known
		{Speed: 10}, // known
		{Speed: 0},  // interpolated
		{Speed: 0},  // interpolated
		{Speed: 16}, // known
		{Speed: 0},  // edge, inherits prev known
	}

	interpolateSpeeds(points)

	assert.Equal(t, 10.0, points[0].Speed)
	assert.InDelta(t, 12.0, points[2].Speed, 1e-9)
	assert.InDelta(t, 14.0, points[3].Speed, 1e-9)
	assert.Equal(t, 16.0, points[5].Speed)
}

func TestInterpolateSpeeds_SingleKnown(t *testing.T) {
	points := []model.TrackPoint{
		{Speed: 0},
		{Speed: 9},
		{Speed: 0},
	}

	interpolateSpeeds(points)

	for i := range points {
		assert.Equal(t, 9.0, points[i].Speed, "point %d", i)
	}
}

func TestSynthesize_SlopeModulation(t *testing.T) {
	p := NewParserWithSeed(3)
	points := []model.TrackPoint{
		{Elevation: 100},
		{Elevation: 120}, // uphill leg
		{Elevation: 90},  // downhill leg
		{Elevation: 90},  // flat leg
	}

	p.synthesize(points)

	// Jitter is bounded, so each point stays inside its slope band.
	assert.InDelta(t, syntheticBaseSpeed, points[0].Speed, syntheticBaseSpeed*jitterFraction)
	up := syntheticBaseSpeed * uphillFactor
	assert.InDelta(t, up, points[1].Speed, up*jitterFraction)
	down := syntheticBaseSpeed * downhillFactor
	assert.InDelta(t, down, points[2].Speed, down*jitterFraction)
	assert.InDelta(t, syntheticBaseSpeed, points[3].Speed, syntheticBaseSpeed*jitterFraction)
}

func TestFillSpeeds_ChoosesPath(t *testing.T) {
	p := NewParserWithSeed(5)

	// One known speed forces the interpolation path, not synthesis.
	points := []model.TrackPoint{{Speed: 0}, {Speed: 12}, {Speed: 0}}
	p.fillSpeeds(points)
	assert.Equal(t, 12.0, points[0].Speed)
	assert.Equal(t, 12.0, points[2].Speed)
}
