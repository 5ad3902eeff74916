package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"trackplay/pkg/version"
)

// NewServer creates and configures the HTTP server.
func NewServer(addr string, tracks *TrackHandler, playback *PlaybackHandler, journeys *JourneyHandler, stream *StreamHandler, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /api/version", handleVersion)

	// Tracks
	mux.HandleFunc("POST /api/tracks", tracks.HandleUpload)
	mux.HandleFunc("GET /api/tracks", tracks.HandleList)
	mux.HandleFunc("GET /api/tracks/{id}", tracks.HandleGet)
	mux.HandleFunc("DELETE /api/tracks/{id}", tracks.HandleDelete)

	// Journey
	mux.HandleFunc("POST /api/journey", journeys.HandleSet)
	mux.HandleFunc("DELETE /api/journey", journeys.HandleClear)

	// Playback controls
	mux.HandleFunc("POST /api/playback/play", playback.HandlePlay)
	mux.HandleFunc("POST /api/playback/pause", playback.HandlePause)
	mux.HandleFunc("POST /api/playback/seek", playback.HandleSeek)
	mux.HandleFunc("POST /api/playback/speed", playback.HandleSpeed)
	mux.HandleFunc("GET /api/playback/state", playback.HandleState)

	// Live state stream
	mux.HandleFunc("GET /api/playback/stream", stream.Handle)

	// Shutdown
	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Call shutdown in a goroutine to allow the response to flush.
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}
