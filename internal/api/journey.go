package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"trackplay/pkg/geo"
	"trackplay/pkg/journey"
	"trackplay/pkg/session"
	"trackplay/pkg/timeline"
)

// JourneyHandler builds and activates authored journeys.
type JourneyHandler struct {
	sessions *session.Manager
	engine   *timeline.Engine
}

// NewJourneyHandler creates the journey endpoints handler.
func NewJourneyHandler(sessions *session.Manager, engine *timeline.Engine) *JourneyHandler {
	return &JourneyHandler{sessions: sessions, engine: engine}
}

// segmentRequest is the wire form of a journey segment, tagged by Type.
type segmentRequest struct {
	Type       string  `json:"type"` // "track" or "transport"
	TrackID    string  `json:"track_id,omitempty"`
	Mode       string  `json:"mode,omitempty"`
	From       *latLon `json:"from,omitempty"`
	To         *latLon `json:"to,omitempty"`
	DurationMs float64 `json:"duration_ms"`
	DistanceKm float64 `json:"distance_km,omitempty"`
}

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type journeyRequest struct {
	Segments []segmentRequest `json:"segments"`
}

// HandleSet validates the authored segment sequence and activates it on
// the timeline engine.
func (h *JourneyHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req journeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid journey request")
		return
	}
	if len(req.Segments) == 0 {
		writeError(w, http.StatusBadRequest, "journey requires at least one segment")
		return
	}

	j := &journey.Journey{ID: uuid.NewString()}
	for i, sr := range req.Segments {
		seg, err := h.buildSegment(sr)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("segment %d: %v", i, err))
			return
		}
		j.Segments = append(j.Segments, seg)
	}

	h.sessions.SetJourney(j)
	h.engine.LoadJourney(j)

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":                j.ID,
		"segments":          len(j.Segments),
		"total_duration_ms": float64(j.TotalDuration()) / float64(time.Millisecond),
	})
}

// HandleClear deactivates the journey.
func (h *JourneyHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.sessions.SetJourney(nil)
	h.engine.Stop()
	w.WriteHeader(http.StatusNoContent)
}

func (h *JourneyHandler) buildSegment(sr segmentRequest) (journey.Segment, error) {
	duration := time.Duration(sr.DurationMs * float64(time.Millisecond))
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	switch sr.Type {
	case string(journey.KindTrack):
		if h.sessions.Get(sr.TrackID) == nil {
			return nil, fmt.Errorf("unknown track %q", sr.TrackID)
		}
		return journey.TrackSegment{TrackID: sr.TrackID, PlayDuration: duration}, nil

	case string(journey.KindTransport):
		if sr.From == nil || sr.To == nil {
			return nil, fmt.Errorf("transport segment requires from and to")
		}
		from := geo.Point{Lat: sr.From.Lat, Lon: sr.From.Lon}
		to := geo.Point{Lat: sr.To.Lat, Lon: sr.To.Lon}
		if !from.Valid() || !to.Valid() {
			return nil, fmt.Errorf("transport coordinates out of range")
		}
		dist := sr.DistanceKm
		if dist <= 0 {
			dist = geo.Distance(from, to)
		}
		return journey.TransportSegment{
			Mode:         journey.TransportMode(sr.Mode),
			From:         from,
			To:           to,
			PlayDuration: duration,
			DistanceKm:   dist,
		}, nil

	default:
		return nil, fmt.Errorf("unknown segment type %q", sr.Type)
	}
}
