// Package workflow holds the per-form request controllers. A controller
// owns a draft and a request state and allows one request in flight at a time.
// Controllers are not safe for concurrent use; the owning event loop mutates
// them and only Pending.Run leaves that loop.
package workflow

import (
	"context"
	"io"
	"log/slog"

	"toneterm/internal/util"
)

// Request performs one remote call. It must not touch controller state.
type Request[T any] func(ctx context.Context) (T, error)

// Builder turns the draft, exactly as typed, into a Request, capturing any
// other inputs at submit time. Trimming is left to the builder.
type Builder[T any] func(draft string) Request[T]

// Fallback is what a workflow shows when a request fails.
type Fallback[T any] struct {
	Message string
	Result  T
}

type Controller[T any] struct {
	name     string
	build    Builder[T]
	fallback Fallback[T]
	logger   *slog.Logger

	draft string
	state State[T]
	epoch uint64
}

func NewController[T any](name string, build Builder[T], fallback Fallback[T], logger *slog.Logger) *Controller[T] {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller[T]{
		name:     name,
		build:    build,
		fallback: fallback,
		logger:   logger.With("workflow", name),
	}
}

func (c *Controller[T]) Name() string    { return c.name }
func (c *Controller[T]) Draft() string   { return c.draft }
func (c *Controller[T]) State() State[T] { return c.state }

// UpdateDraft sets the draft verbatim.
func (c *Controller[T]) UpdateDraft(text string) { c.draft = text }

func (c *Controller[T]) CanSubmit() bool {
	return !util.IsBlank(c.draft) && c.state.Phase != Loading
}

// Submit moves the workflow to Loading, clears the draft, and returns the
// request to run. It returns false and changes nothing when the draft is
// blank or a request is already in flight.
func (c *Controller[T]) Submit() (*Pending[T], bool) {
	if !c.CanSubmit() {
		c.logger.Debug("submit rejected", "phase", c.state.Phase, "blank", util.IsBlank(c.draft))
		return nil, false
	}
	req := c.build(c.draft)
	c.logger.Info("submitted", "epoch", c.epoch, "chars", len(c.draft))
	c.draft = ""
	c.state = State[T]{Phase: Loading}
	return &Pending[T]{epoch: c.epoch, req: req}, true
}

// Settle applies a finished request. Outcomes from before the last Reset, or
// arriving when nothing is loading, are dropped and Settle returns false.
func (c *Controller[T]) Settle(o Outcome[T]) bool {
	if o.epoch != c.epoch || c.state.Phase != Loading {
		c.logger.Warn("discarding stale outcome", "epoch", o.epoch, "current", c.epoch, "phase", c.state.Phase)
		return false
	}
	if o.Err != nil {
		c.state = State[T]{Phase: Failed, Result: c.fallback.Result, Message: c.fallback.Message}
		c.logger.Error("request failed", "epoch", o.epoch, "err", o.Err)
		return true
	}
	c.state = State[T]{Phase: Resolved, Result: o.Value}
	c.logger.Info("resolved", "epoch", o.epoch)
	return true
}

// Reset returns the workflow to Idle as if freshly mounted. Any request still
// in flight will be discarded when it settles.
func (c *Controller[T]) Reset() {
	c.epoch++
	c.draft = ""
	c.state = State[T]{}
	c.logger.Debug("reset", "epoch", c.epoch)
}

// Pending is one submitted request, not yet run.
type Pending[T any] struct {
	epoch uint64
	req   Request[T]
}

// Run performs the request and always returns an Outcome; errors are carried,
// never panicked or returned separately.
func (p *Pending[T]) Run(ctx context.Context) Outcome[T] {
	v, err := p.req(ctx)
	return Outcome[T]{epoch: p.epoch, Value: v, Err: err}
}

// Outcome is the settled result of a Pending.
type Outcome[T any] struct {
	epoch uint64
	Value T
	Err   error
}
