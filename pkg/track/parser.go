package track

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tkrajina/gpxgo/gpx"

	"trackplay/pkg/activity"
	"trackplay/pkg/geo"
	"trackplay/pkg/model"
)

// Parser turns raw GPX content into a finalized model.Track with derived
// per-point fields, summary statistics, bounds and activity segments.
type Parser struct {
	// newJitter produces the random source used by the synthetic speed
	// generator. Each Parse call gets its own instance, so a single Parser
	// is safe for concurrent use.
	newJitter func() *rand.Rand
}

// NewParser creates a parser with a time-seeded jitter source.
func NewParser() *Parser {
	return &Parser{
		newJitter: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// NewParserWithSeed creates a parser whose synthetic speeds are
// deterministic. Used by tests to pin exact outputs.
func NewParserWithSeed(seed int64) *Parser {
	return &Parser{
		newJitter: func() *rand.Rand {
			return rand.New(rand.NewSource(seed))
		},
	}
}

// rawRecord is a point record after tier selection, before validation.
type rawRecord struct {
	lat, lon  float64
	elevation float64
	time      *time.Time
	heartRate *int
}

// Parse decodes content and builds the canonical track.
// name overrides the GPX-declared track name when non-empty.
func (p *Parser) Parse(content []byte, name string) (*model.Track, error) {
	doc, err := gpx.ParseBytes(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	records := collectRecords(doc)
	if len(records) == 0 {
		return nil, ErrNoTrackPoints
	}

	points := p.buildPoints(records)
	if len(points) == 0 {
		return nil, ErrNoTrackPoints
	}

	p.fillSpeeds(points)

	if name == "" {
		name = trackName(doc)
	}

	coords := make([]geo.Point, len(points))
	for i, pt := range points {
		coords[i] = geo.Point{Lat: pt.Lat, Lon: pt.Lon}
	}

	return &model.Track{
		ID:               uuid.NewString(),
		Name:             name,
		Points:           points,
		Stats:            ComputeStats(points),
		Bounds:           geo.ComputeBounds(coords),
		ActivitySegments: activity.Segment(points),
	}, nil
}

// collectRecords selects the first non-empty point source among three
// fallback tiers: track points, then route points, then waypoints.
func collectRecords(doc *gpx.GPX) []rawRecord {
	var records []rawRecord

	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				records = append(records, newRecord(pt))
			}
		}
	}
	if len(records) > 0 {
		return records
	}

	for _, rte := range doc.Routes {
		for _, pt := range rte.Points {
			records = append(records, newRecord(pt))
		}
	}
	if len(records) > 0 {
		return records
	}

	for _, pt := range doc.Waypoints {
		records = append(records, newRecord(pt))
	}
	return records
}

func newRecord(pt gpx.GPXPoint) rawRecord {
	r := rawRecord{
		lat: pt.Latitude,
		lon: pt.Longitude,
	}
	// Missing or unparseable elevation defaults to 0.
	if pt.Elevation.NotNull() {
		r.elevation = pt.Elevation.Value()
	}
	// A missing or unparseable timestamp never aborts the point.
	if !pt.Timestamp.IsZero() {
		ts := pt.Timestamp
		r.time = &ts
	}
	r.heartRate = heartRate(pt.Extensions)
	return r
}

// buildPoints validates records and derives cumulative distance and, where
// both neighbors carry time, instantaneous leg speed.
func (p *Parser) buildPoints(records []rawRecord) []model.TrackPoint {
	points := make([]model.TrackPoint, 0, len(records))
	cumulative := 0.0

	for _, r := range records {
		pos := geo.Point{Lat: r.lat, Lon: r.lon}
		if !pos.Valid() || math.IsNaN(r.lat) || math.IsNaN(r.lon) {
			slog.Debug("Parser: Skipping point with invalid coordinates", "lat", r.lat, "lon", r.lon)
			continue
		}

		pt := model.TrackPoint{
			Lat:       r.lat,
			Lon:       r.lon,
			Elevation: r.elevation,
			Time:      r.time,
			HeartRate: r.heartRate,
			Index:     len(points),
		}

		if len(points) > 0 {
			prev := &points[len(points)-1]
			leg := geo.Distance(geo.Point{Lat: prev.Lat, Lon: prev.Lon}, pos)
			cumulative += leg

			if prev.Time != nil && pt.Time != nil && pt.Time.After(*prev.Time) {
				hours := pt.Time.Sub(*prev.Time).Hours()
				if hours > 0 {
					pt.Speed = leg / hours
				}
			}
		}
		pt.Distance = cumulative

		points = append(points, pt)
	}

	return points
}

func trackName(doc *gpx.GPX) string {
	for _, trk := range doc.Tracks {
		if trk.Name != "" {
			return trk.Name
		}
	}
	if doc.Name != "" {
		return doc.Name
	}
	return "Untitled Track"
}

// heartRate digs a heart rate value out of the point's extension nodes.
// Garmin writes gpxtpx:hr, some exporters write heartrate.
func heartRate(ext gpx.Extension) *int {
	if v, ok := findIntNode(ext.Nodes, "hr"); ok {
		return &v
	}
	if v, ok := findIntNode(ext.Nodes, "heartrate"); ok {
		return &v
	}
	return nil
}

func findIntNode(nodes []gpx.ExtensionNode, name string) (int, bool) {
	for _, n := range nodes {
		if strings.EqualFold(n.XMLName.Local, name) {
			if v, err := strconv.Atoi(strings.TrimSpace(n.Data)); err == nil {
				return v, true
			}
		}
		if v, ok := findIntNode(n.Nodes, name); ok {
			return v, true
		}
	}
	return 0, false
}
