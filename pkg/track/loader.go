package track

import (
	"context"
	"log/slog"
	"time"

	"trackplay/pkg/model"
)

// Result is the parse outcome delivered across the loader boundary.
// Exactly one of Track or Err is set.
type Result struct {
	Track *model.Track
	Err   error
}

// Loader runs each parse as an isolated background unit so that parsing a
// large point sequence never blocks playback-loop responsiveness. Only
// copies of plain data cross the boundary; cancellation is driven by the
// caller's context.
type Loader struct {
	parser *Parser
}

// NewLoader creates a loader around the given parser.
func NewLoader(p *Parser) *Loader {
	return &Loader{parser: p}
}

// Submit starts parsing content in the background and returns the channel
// the single Result will be delivered on. If ctx is cancelled before the
// parse finishes, the result is discarded and ctx.Err() is delivered
// instead.
func (l *Loader) Submit(ctx context.Context, name string, content []byte) <-chan Result {
	ch := make(chan Result, 1)

	// Copy so the caller may reuse its buffer; no shared mutable memory
	// crosses the boundary.
	data := make([]byte, len(content))
	copy(data, content)

	go func() {
		start := time.Now()
		trk, err := l.parser.Parse(data, name)

		select {
		case <-ctx.Done():
			slog.Debug("Loader: Parse discarded, caller gone", "name", name)
			ch <- Result{Err: ctx.Err()}
			return
		default:
		}

		if err != nil {
			ch <- Result{Err: err}
			return
		}
		slog.Info("Loader: Parsed track", "name", trk.Name, "points", len(trk.Points), "elapsed", time.Since(start))
		ch <- Result{Track: trk}
	}()

	return ch
}
