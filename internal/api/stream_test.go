package api

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackplay/pkg/model"
)

func dialStream(t *testing.T, env *testEnv) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/api/playback/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type streamMessage struct {
	model.PlaybackState
	Position *model.Position `json:"position"`
}

func TestStream_InitialSnapshot(t *testing.T) {
	env := newTestEnv(t)
	env.uploadSample(t)

	conn := dialStream(t, env)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg streamMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.False(t, msg.Playing)
	assert.Greater(t, msg.TotalDuration, 0.0)
	assert.NotNil(t, msg.Position)
}

func TestStream_ReceivesSeeks(t *testing.T) {
	env := newTestEnv(t)
	env.uploadSample(t)

	conn := dialStream(t, env)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg streamMessage
	require.NoError(t, conn.ReadJSON(&msg)) // initial snapshot

	env.engine.SeekToProgress(0.5)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.InDelta(t, 0.5, msg.Progress, 1e-9)
}
