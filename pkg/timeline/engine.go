// Package timeline maps a scalar playback progress value onto one track or
// an authored journey, and drives the playback clock.
package timeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"trackplay/pkg/journey"
	"trackplay/pkg/model"
)

// State is the playback state machine state.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateEnded   State = "ended"
)

// estimateSpeed is the assumed average speed used to derive a playback
// duration for tracks without time data.
const estimateSpeed = 10.0 // km/h

// TrackResolver resolves track ids referenced by journey segments.
// session.Manager satisfies it.
type TrackResolver interface {
	Get(id string) *model.Track
}

// Engine owns PlaybackState under single-writer discipline: while playing,
// only the tick loop advances the clock. Seeks and speed changes commit
// immediately and are observed by the next tick; ticks captured before a
// seek are discarded.
type Engine struct {
	mu       sync.Mutex
	resolver TrackResolver
	interval time.Duration
	now      func() time.Time

	state     State
	track     *model.Track
	journey   *journey.Journey
	currentMs float64
	totalMs   float64
	speed     float64
	estimated bool

	// gen is bumped by every committed seek; an in-flight tick whose
	// captured generation no longer matches is stale and must not land.
	gen      uint64
	lastTick time.Time
	cancel   context.CancelFunc

	subMu   sync.RWMutex
	subs    map[int]func(model.PlaybackState)
	nextSub int
}

// NewEngine creates an idle engine. interval is the tick period of the
// playback clock.
func NewEngine(resolver TrackResolver, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return &Engine{
		resolver: resolver,
		interval: interval,
		now:      time.Now,
		state:    StateIdle,
		speed:    1.0,
		subs:     make(map[int]func(model.PlaybackState)),
	}
}

// LoadTrack activates a single track for playback. Total duration is the
// recorded wall-clock duration when present, otherwise an estimate from
// distance at an assumed speed, flagged so consumers can warn the user.
func (e *Engine) LoadTrack(t *model.Track) {
	e.mu.Lock()
	e.stopLocked()

	e.track = t
	e.journey = nil
	e.currentMs = 0
	e.state = StateIdle

	if t.Stats.HasTimeData {
		e.totalMs = t.Stats.TotalDuration * float64(time.Hour/time.Millisecond)
		e.estimated = false
	} else {
		e.totalMs = t.Stats.TotalDistance / estimateSpeed * float64(time.Hour/time.Millisecond)
		e.estimated = true
	}

	st := e.snapshotLocked()
	e.mu.Unlock()
	e.publish(st)
}

// LoadJourney activates an authored journey; total duration is the sum of
// the authored segment durations.
func (e *Engine) LoadJourney(j *journey.Journey) {
	e.mu.Lock()
	e.stopLocked()

	e.journey = j
	e.track = nil
	e.currentMs = 0
	e.totalMs = float64(j.TotalDuration()) / float64(time.Millisecond)
	e.estimated = false
	e.state = StateIdle

	st := e.snapshotLocked()
	e.mu.Unlock()
	e.publish(st)
}

// Play starts the playback clock. No-op with zero total duration or when
// already playing. The loop stops on its own at end of playback; Stop or
// Pause stop it earlier.
func (e *Engine) Play() {
	e.mu.Lock()
	if e.totalMs <= 0 || e.state == StatePlaying {
		e.mu.Unlock()
		return
	}
	if e.state == StateEnded {
		e.currentMs = 0
	}
	e.state = StatePlaying
	e.lastTick = e.now()
	e.gen++

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	st := e.snapshotLocked()
	e.mu.Unlock()
	e.publish(st)

	go e.run(ctx)
}

// Pause halts the clock. Idempotent.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.state != StatePlaying {
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	e.state = StatePaused

	st := e.snapshotLocked()
	e.mu.Unlock()
	e.publish(st)
}

// Stop halts the clock and rewinds to the start.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.stopLocked()
	e.state = StateIdle
	e.currentMs = 0
	e.gen++

	st := e.snapshotLocked()
	e.mu.Unlock()
	e.publish(st)
}

// Seek moves the clock to the given time, clamped to [0, total]. The
// derived position updates immediately; playing/paused is unchanged, except
// that seeking backwards out of the ended state lands in paused.
func (e *Engine) Seek(ms float64) {
	e.mu.Lock()
	if ms < 0 {
		ms = 0
	}
	if ms > e.totalMs {
		ms = e.totalMs
	}

	e.currentMs = ms
	e.gen++
	e.lastTick = e.now()
	if e.state == StateEnded && ms < e.totalMs {
		e.state = StatePaused
	}

	st := e.snapshotLocked()
	e.mu.Unlock()
	e.publish(st)
}

// SeekToProgress seeks to a normalized progress value in [0,1].
func (e *Engine) SeekToProgress(progress float64) {
	e.mu.Lock()
	total := e.totalMs
	e.mu.Unlock()
	e.Seek(progress * total)
}

// SetSpeed changes the rate at which the clock advances per real elapsed
// tick. It never changes total duration. Non-positive values are ignored.
func (e *Engine) SetSpeed(multiplier float64) {
	if multiplier <= 0 {
		return
	}
	e.mu.Lock()
	e.speed = multiplier
	st := e.snapshotLocked()
	e.mu.Unlock()
	e.publish(st)
}

// Snapshot returns a copy of the current playback state.
func (e *Engine) Snapshot() model.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers a callback invoked after every committed state
// change. The returned function unsubscribes. Callbacks receive value
// copies and run outside the engine lock.
func (e *Engine) Subscribe(fn func(model.PlaybackState)) func() {
	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.subMu.Unlock()

	return func() {
		e.subMu.Lock()
		delete(e.subs, id)
		e.subMu.Unlock()
	}
}

// run is the playback clock loop. Each tick advances the clock by the real
// elapsed time since the previous tick, scaled by speed. Every exit path
// stops the ticker, so no orphaned ticks mutate state after the consumer
// stops observing.
func (e *Engine) run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !e.advance() {
				return
			}
		}
	}
}

// advance applies one tick. Returns false when the loop must stop.
func (e *Engine) advance() bool {
	e.mu.Lock()
	if e.state != StatePlaying {
		e.mu.Unlock()
		return false
	}
	start := e.lastTick
	gen := e.gen
	speed := e.speed
	e.mu.Unlock()

	now := e.now()
	delta := now.Sub(start)

	e.mu.Lock()
	if e.state != StatePlaying {
		e.mu.Unlock()
		return false
	}
	if gen != e.gen {
		// A seek committed after this tick captured its start time;
		// its delta is computed from pre-seek state. Discard it.
		e.mu.Unlock()
		return true
	}

	e.lastTick = now
	e.currentMs += delta.Seconds() * 1000 * speed

	ended := false
	if e.currentMs >= e.totalMs {
		// Playback never overshoots.
		e.currentMs = e.totalMs
		e.state = StateEnded
		e.stopLocked()
		ended = true
	}

	st := e.snapshotLocked()
	e.mu.Unlock()
	e.publish(st)

	if ended {
		slog.Debug("Timeline: Playback ended", "total_ms", st.TotalDuration)
	}
	return !ended
}

// stopLocked cancels the tick loop if one is running. Callers hold e.mu.
func (e *Engine) stopLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *Engine) snapshotLocked() model.PlaybackState {
	progress := 0.0
	if e.totalMs > 0 {
		progress = e.currentMs / e.totalMs
	}

	idx, segProgress := e.locateLocked(progress)

	return model.PlaybackState{
		Playing:         e.state == StatePlaying,
		CurrentTime:     e.currentMs,
		TotalDuration:   e.totalMs,
		Progress:        progress,
		Speed:           e.speed,
		SegmentIndex:    idx,
		SegmentProgress: segProgress,
		Estimated:       e.estimated,
	}
}

// locateLocked finds the segment whose time window contains the elapsed
// time for the given progress. A single track behaves as one segment.
func (e *Engine) locateLocked(progress float64) (int, float64) {
	if e.journey == nil {
		return 0, progress
	}
	elapsed := time.Duration(progress * e.totalMs * float64(time.Millisecond))
	idx, p, err := e.journey.Locate(elapsed)
	if err != nil {
		return 0, progress
	}
	return idx, p
}

func (e *Engine) publish(st model.PlaybackState) {
	e.subMu.RLock()
	fns := make([]func(model.PlaybackState), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subMu.RUnlock()

	for _, fn := range fns {
		fn(st)
	}
}

// State returns the current state machine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}
