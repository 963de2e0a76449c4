package llm

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrStopRequested is returned when a cooperative stop signal interrupted an
// execution run. It is never retried against another model and callers must
// propagate it unchanged; detect it with errors.Is.
var ErrStopRequested = errors.New("stop requested")

// StopFunc reports whether the surrounding pipeline asked the run to stop.
// A nil StopFunc never stops.
type StopFunc func() bool

// Executor runs a unit of work against an ordered fallback list of clients.
// Work is attempted with the first client; on failure the next client is
// tried, until one succeeds or the list is exhausted. ErrStopRequested
// terminates the run immediately without fallback.
type Executor struct {
	clients []Client
	stop    StopFunc
}

// NewExecutor builds an executor over a non-empty fallback list.
func NewExecutor(clients []Client, stop StopFunc) (*Executor, error) {
	if len(clients) == 0 {
		return nil, errors.New("executor needs at least one model")
	}
	return &Executor{clients: clients, stop: stop}, nil
}

// ShouldStop reports the current stop signal. Multi-turn sequencers check it
// between turns.
func (e *Executor) ShouldStop() bool {
	return e.stop != nil && e.stop()
}

// Run invokes fn with each client in order until one attempt succeeds.
// fn returning ErrStopRequested (or wrapping it) aborts the whole run and is
// passed through unchanged. When every client fails the joined attempt errors
// are returned.
func (e *Executor) Run(fn func(Client) error) error {
	if e.ShouldStop() {
		return ErrStopRequested
	}
	var attempts []error
	for _, client := range e.clients {
		err := fn(client)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrStopRequested) {
			return err
		}
		log.Warn().
			Str("model", client.Name()).
			Err(err).
			Msg("model attempt failed, falling back")
		attempts = append(attempts, fmt.Errorf("%s: %w", client.Name(), err))
		if e.ShouldStop() {
			return ErrStopRequested
		}
	}
	return fmt.Errorf("all %d models failed: %w", len(e.clients), errors.Join(attempts...))
}
