package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"trackplay/pkg/config"
	"trackplay/pkg/model"
	"trackplay/pkg/timeline"
)

// StreamHandler pushes playback state snapshots to WebSocket clients.
// Each client gets a buffered queue fed by an engine subscription; a client
// that falls behind its queue is dropped rather than blocking the engine.
type StreamHandler struct {
	engine   *timeline.Engine
	cfg      config.StreamConfig
	upgrader websocket.Upgrader
}

// NewStreamHandler creates the WebSocket stream handler.
func NewStreamHandler(engine *timeline.Engine, cfg config.StreamConfig) *StreamHandler {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 32
	}
	return &StreamHandler{
		engine: engine,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			// Local tool; the UI is served from the same origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// snapshotMessage is the wire form sent on every committed change.
type snapshotMessage struct {
	model.PlaybackState
	Position *model.Position `json:"position,omitempty"`
}

func (h *StreamHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("Stream: Upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates := make(chan model.PlaybackState, h.cfg.SendBuffer)
	unsubscribe := h.engine.Subscribe(func(st model.PlaybackState) {
		select {
		case updates <- st:
		default:
			// Queue full; a slow client loses intermediate frames
			// rather than blocking the engine.
		}
	})
	defer unsubscribe()

	// Reader goroutine: drain control frames, detect disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Initial state so clients render without waiting for a change.
	if err := h.send(conn, h.engine.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case st := <-updates:
			if err := h.send(conn, st); err != nil {
				slog.Debug("Stream: Dropping client", "error", err)
				return
			}
		}
	}
}

func (h *StreamHandler) send(conn *websocket.Conn, st model.PlaybackState) error {
	msg := snapshotMessage{PlaybackState: st}
	if pos, err := h.engine.Position(); err == nil {
		msg.Position = pos
	}

	if timeout := time.Duration(h.cfg.WriteTimeout); timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return err
		}
	}
	return conn.WriteJSON(msg)
}
