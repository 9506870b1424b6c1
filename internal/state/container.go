// Package state holds the per-dashboard containers that pair a filter
// selection with its most recent fetch result. Each dashboard owns its
// container independently; nothing is shared across them except the session.
package state

import (
	"context"
	"sync"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/log"
)

// Phase is the container lifecycle state
type Phase int

const (
	// PhaseIdle means no fetch has run yet; payload is absent
	PhaseIdle Phase = iota
	// PhaseLoading means a fetch is in flight
	PhaseLoading
	// PhaseSuccess means the last fetch stored a payload
	PhaseSuccess
	// PhaseError means the last fetch stored an error message
	PhaseError
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// FilterField names one mutable field of the filter selection
type FilterField int

const (
	// FieldPeriod is the aggregation window
	FieldPeriod FilterField = iota
	// FieldRepo is the repository filter
	FieldRepo
	// FieldTeam is the team filter
	FieldTeam
)

// FetchFunc binds a container to its gateway call
type FetchFunc[T any] func(ctx context.Context, f api.Filters) (T, error)

// Container owns one dashboard's filter selection and last fetch result.
//
// Every fetch is stamped with a monotonically increasing generation and the
// previously in-flight request is cancelled; a response whose generation is
// no longer current is discarded. The stored payload therefore always
// reflects the latest selected filters, even when responses complete out of
// order.
type Container[T any] struct {
	name   string
	fetch  FetchFunc[T]
	logger *log.Logger

	mu         sync.Mutex
	filters    api.Filters
	payload    T
	hasPayload bool
	phase      Phase
	errMsg     string
	generation uint64
	cancel     context.CancelFunc
}

// Snapshot is a point-in-time copy of the container state
type Snapshot[T any] struct {
	Phase      Phase
	Filters    api.Filters
	Payload    T
	HasPayload bool
	Err        string
}

// NewContainer creates an idle container bound to a gateway function
func NewContainer[T any](name string, fetch FetchFunc[T], logger *log.Logger) *Container[T] {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Container[T]{
		name:   name,
		fetch:  fetch,
		logger: logger.With("dashboard", name),
	}
}

// Fetch issues a request using the current filter selection. It blocks until
// the response arrives or the request is superseded; a superseded result is
// discarded without touching the stored payload.
func (c *Container[T]) Fetch(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		// The previous request lost the race before it even finished.
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.phase = PhaseLoading
	c.errMsg = ""
	filters := c.filters
	c.mu.Unlock()

	payload, err := c.fetch(reqCtx, filters)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("discarding stale response", "generation", gen, "current", c.generation)
		return
	}
	c.cancel = nil

	if err != nil {
		c.phase = PhaseError
		c.errMsg = humanMessage(err)
		c.logger.WithError(err).Debug("fetch failed")
		return
	}

	// Each fetch replaces the payload wholesale; there is no merging.
	c.payload = payload
	c.hasPayload = true
	c.phase = PhaseSuccess
}

// SetFilter mutates one filter field and immediately refetches, so the next
// stored payload always reflects the updated value.
func (c *Container[T]) SetFilter(ctx context.Context, field FilterField, value string) {
	c.mu.Lock()
	switch field {
	case FieldPeriod:
		c.filters.Period = api.Period(value)
	case FieldRepo:
		c.filters.RepoID = value
	case FieldTeam:
		c.filters.TeamID = value
	}
	c.mu.Unlock()

	c.Fetch(ctx)
}

// SetFilters replaces the whole selection without fetching. Used to seed a
// container from command-line flags before the first fetch.
func (c *Container[T]) SetFilters(f api.Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = f
}

// ClearError resets the error message without refetching
func (c *Container[T]) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
	if c.phase == PhaseError {
		if c.hasPayload {
			c.phase = PhaseSuccess
		} else {
			c.phase = PhaseIdle
		}
	}
}

// Snapshot returns a copy of the current state
func (c *Container[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{
		Phase:      c.phase,
		Filters:    c.filters,
		Payload:    c.payload,
		HasPayload: c.hasPayload,
		Err:        c.errMsg,
	}
}

// Filters returns the current filter selection
func (c *Container[T]) Filters() api.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

func humanMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
