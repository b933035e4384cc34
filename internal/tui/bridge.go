package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/sysgauge/internal/errors"
	"github.com/agbru/sysgauge/internal/logging"
	"github.com/agbru/sysgauge/internal/sysmon"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the scheduler goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Observer receives every tick outcome, typically a Prometheus exporter.
type Observer interface {
	ObserveSample(s sysmon.Snapshot)
	ObserveError(err error)
}

type nopObserver struct{}

func (nopObserver) ObserveSample(sysmon.Snapshot) {}
func (nopObserver) ObserveError(error)            {}

// Poller is the tick handler: it samples the source and forwards the
// outcome to the program. Tick is called from a single goroutine.
type Poller struct {
	source   sysmon.Source
	observer Observer
	logger   logging.Logger
	send     func(tea.Msg)
	seq      uint64
}

// NewPoller creates a Poller. observer may be nil.
func NewPoller(source sysmon.Source, observer Observer, logger logging.Logger, send func(tea.Msg)) *Poller {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Poller{source: source, observer: observer, logger: logger, send: send}
}

// Tick samples once and delivers either a SampleMsg or a SampleErrMsg.
// A sample aborted by cancellation delivers nothing.
func (p *Poller) Tick(ctx context.Context, now time.Time) {
	p.seq++
	snap, err := p.source.Sample(ctx)
	if err != nil {
		if ctx.Err() != nil || apperrors.IsContextError(err) {
			p.logger.Debug("sample aborted by shutdown", logging.Uint64("seq", p.seq))
			return
		}
		p.observer.ObserveError(err)
		p.logger.Error("sample failed", err, logging.Uint64("seq", p.seq))
		p.send(SampleErrMsg{Seq: p.seq, Err: err})
		return
	}
	if snap.At.IsZero() {
		snap.At = now
	}

	p.observer.ObserveSample(snap)
	p.logger.Debug("sample",
		logging.Uint64("seq", p.seq),
		logging.Float64("cpu", snap.CPU.Value),
		logging.Float64("ram", snap.RAM.Value),
	)
	p.send(SampleMsg{Seq: p.seq, Snapshot: snap})
}
