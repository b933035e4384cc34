// Package scheduler runs a periodic task until its context is cancelled.
//
// The contract is "invoke action every fixed interval until cancelled":
// the action runs once immediately, then on every tick of a time.Ticker.
// Ticks that fire while the action is still running are dropped rather than
// queued, so an overrun simply delays the next invocation. Once the context
// is done the action is never invoked again.
package scheduler

import (
	"context"
	"time"

	apperrors "github.com/agbru/sysgauge/internal/errors"
)

// Action is the periodic task. now is the time of the tick that triggered it.
type Action func(ctx context.Context, now time.Time)

// Ticker abstracts time.Ticker so tests can drive the schedule by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker is the TickerFactory backed by time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Periodic invokes an Action at a fixed interval.
type Periodic struct {
	interval  time.Duration
	newTicker TickerFactory
	now       func() time.Time
}

// Option configures a Periodic.
type Option func(*Periodic)

// WithTicker replaces the ticker factory.
func WithTicker(f TickerFactory) Option {
	return func(p *Periodic) { p.newTicker = f }
}

// WithClock replaces the clock used for the immediate first invocation.
func WithClock(now func() time.Time) Option {
	return func(p *Periodic) { p.now = now }
}

// New creates a Periodic firing every interval.
func New(interval time.Duration, opts ...Option) (*Periodic, error) {
	if interval <= 0 {
		return nil, apperrors.ValidationError{Field: "interval", Message: "must be positive"}
	}
	p := &Periodic{interval: interval, newTicker: NewTicker, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Interval returns the configured period.
func (p *Periodic) Interval() time.Duration {
	return p.interval
}

// Run invokes action immediately and then once per interval until ctx is
// done. It returns nil when stopped by cancellation.
func (p *Periodic) Run(ctx context.Context, action Action) error {
	if ctx.Err() != nil {
		return nil
	}
	action(ctx, p.now())

	ticker := p.newTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C():
			// A tick and the cancellation can be ready together.
			if ctx.Err() != nil {
				return nil
			}
			action(ctx, now)
		}
	}
}

// Run is a shorthand for New(interval) followed by Run.
func Run(ctx context.Context, interval time.Duration, action Action) error {
	p, err := New(interval)
	if err != nil {
		return err
	}
	return p.Run(ctx, action)
}
