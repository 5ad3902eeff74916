package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"trackplay/pkg/config"
	"trackplay/pkg/model"
	"trackplay/pkg/session"
	"trackplay/pkg/timeline"
	"trackplay/pkg/track"
)

// TrackHandler serves track upload, retrieval and removal.
type TrackHandler struct {
	loader   *track.Loader
	sessions *session.Manager
	engine   *timeline.Engine
	cfg      config.ParserConfig
}

// NewTrackHandler creates the track endpoints handler.
func NewTrackHandler(loader *track.Loader, sessions *session.Manager, engine *timeline.Engine, cfg config.ParserConfig) *TrackHandler {
	return &TrackHandler{
		loader:   loader,
		sessions: sessions,
		engine:   engine,
		cfg:      cfg,
	}
}

// HandleUpload parses a raw GPX body into a track, registers it in the
// session, and activates it on the timeline engine. The parse runs in the
// background loader; cancelling the request cancels the parse.
func (h *TrackHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	content, err := io.ReadAll(body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	if len(content) == 0 {
		writeError(w, http.StatusBadRequest, "empty body")
		return
	}

	ctx := r.Context()
	if timeout := time.Duration(h.cfg.ParseTimeout); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	name := r.URL.Query().Get("name")

	var res track.Result
	select {
	case res = <-h.loader.Submit(ctx, name, content):
	case <-ctx.Done():
		writeError(w, http.StatusRequestTimeout, "parse cancelled")
		return
	}

	if res.Err != nil {
		switch {
		case errors.Is(res.Err, track.ErrInvalidFormat):
			writeError(w, http.StatusBadRequest, res.Err.Error())
		case errors.Is(res.Err, track.ErrNoTrackPoints):
			writeError(w, http.StatusUnprocessableEntity, res.Err.Error())
		case errors.Is(res.Err, context.Canceled), errors.Is(res.Err, context.DeadlineExceeded):
			writeError(w, http.StatusRequestTimeout, "parse cancelled")
		default:
			slog.Error("Track upload failed", "error", res.Err)
			writeError(w, http.StatusInternalServerError, "parse failed")
		}
		return
	}

	h.sessions.Put(res.Track)
	h.engine.LoadTrack(res.Track)

	writeJSON(w, http.StatusCreated, res.Track)
}

// HandleList returns all session tracks.
func (h *TrackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tracks := h.sessions.List()
	if tracks == nil {
		tracks = []*model.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

// HandleGet returns one track by id.
func (h *TrackHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	trk := h.sessions.Get(id)
	if trk == nil {
		writeError(w, http.StatusNotFound, "unknown track")
		return
	}
	writeJSON(w, http.StatusOK, trk)
}

// HandleDelete removes a track from the session.
func (h *TrackHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.sessions.Remove(id) {
		writeError(w, http.StatusNotFound, "unknown track")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
