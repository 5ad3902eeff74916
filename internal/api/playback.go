package api

import (
	"encoding/json"
	"net/http"

	"trackplay/pkg/model"
	"trackplay/pkg/timeline"
)

// PlaybackHandler exposes the timeline engine's control surface.
type PlaybackHandler struct {
	engine *timeline.Engine
}

// NewPlaybackHandler creates the playback endpoints handler.
func NewPlaybackHandler(engine *timeline.Engine) *PlaybackHandler {
	return &PlaybackHandler{engine: engine}
}

func (h *PlaybackHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	h.engine.Play()
	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

func (h *PlaybackHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.engine.Pause()
	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

// seekRequest accepts either an absolute time or a normalized progress.
type seekRequest struct {
	TimeMs   *float64 `json:"time_ms"`
	Progress *float64 `json:"progress"`
}

func (h *PlaybackHandler) HandleSeek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid seek request")
		return
	}

	switch {
	case req.TimeMs != nil:
		h.engine.Seek(*req.TimeMs)
	case req.Progress != nil:
		h.engine.SeekToProgress(*req.Progress)
	default:
		writeError(w, http.StatusBadRequest, "seek requires time_ms or progress")
		return
	}

	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

type speedRequest struct {
	Multiplier float64 `json:"multiplier"`
}

func (h *PlaybackHandler) HandleSpeed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid speed request")
		return
	}
	if req.Multiplier <= 0 {
		writeError(w, http.StatusBadRequest, "multiplier must be positive")
		return
	}

	h.engine.SetSpeed(req.Multiplier)
	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

// stateResponse pairs the playback snapshot with the resolved position so
// rendering collaborators can place the marker in one poll.
type stateResponse struct {
	model.PlaybackState
	Position *model.Position `json:"position,omitempty"`
}

func (h *PlaybackHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{PlaybackState: h.engine.Snapshot()}
	if pos, err := h.engine.Position(); err == nil {
		resp.Position = pos
	}
	writeJSON(w, http.StatusOK, resp)
}
