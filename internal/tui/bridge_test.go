package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/sysgauge/internal/errors"
	"github.com/agbru/sysgauge/internal/logging"
	"github.com/agbru/sysgauge/internal/scheduler"
	"github.com/agbru/sysgauge/internal/sysmon"
	"github.com/agbru/sysgauge/internal/sysmon/mock_sysmon"
)

// recordingObserver collects everything it is told.
type recordingObserver struct {
	mu      sync.Mutex
	samples []sysmon.Snapshot
	errs    []error
}

func (r *recordingObserver) ObserveSample(s sysmon.Snapshot) {
	r.mu.Lock()
	r.samples = append(r.samples, s)
	r.mu.Unlock()
}

func (r *recordingObserver) ObserveError(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

// collector is a send func that keeps the messages.
type collector struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *collector) send(msg tea.Msg) {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
}

func (c *collector) all() []tea.Msg {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]tea.Msg(nil), c.msgs...)
}

func snapshot(cpu, ram float64) sysmon.Snapshot {
	return sysmon.Snapshot{
		CPU:      sysmon.UtilizationSample{Value: cpu, Label: sysmon.LabelCPU},
		RAM:      sysmon.UtilizationSample{Value: ram, Label: sysmon.LabelRAM},
		Cores:    4,
		MemUsed:  4 << 30,
		MemTotal: 16 << 30,
	}
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{} // program is nil
	// Should not panic
	ref.Send(SampleMsg{})
}

func TestPoller_Tick_SendsSample(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_sysmon.NewMockSource(ctrl)
	source.EXPECT().Sample(gomock.Any()).Return(snapshot(155.7, 42.1), nil)

	obs := &recordingObserver{}
	col := &collector{}
	p := NewPoller(source, obs, logging.NewNopLogger(), col.send)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.Tick(context.Background(), now)

	msgs := col.all()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	msg, ok := msgs[0].(SampleMsg)
	if !ok {
		t.Fatalf("got %T, want SampleMsg", msgs[0])
	}
	if msg.Seq != 1 {
		t.Errorf("Seq = %d, want 1", msg.Seq)
	}
	if msg.Snapshot.CPU.Value != 155.7 || msg.Snapshot.RAM.Value != 42.1 {
		t.Errorf("unexpected snapshot %+v", msg.Snapshot)
	}
	if !msg.Snapshot.At.Equal(now) {
		t.Errorf("At = %v, want tick time %v", msg.Snapshot.At, now)
	}
	if len(obs.samples) != 1 || len(obs.errs) != 0 {
		t.Errorf("observer got %d samples and %d errors, want 1 and 0", len(obs.samples), len(obs.errs))
	}
}

func TestPoller_Tick_SendsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_sysmon.NewMockSource(ctrl)
	sampleErr := apperrors.SampleError{Metric: "memory", Cause: errors.New("no meminfo")}
	gomock.InOrder(
		source.EXPECT().Sample(gomock.Any()).Return(snapshot(10, 20), nil),
		source.EXPECT().Sample(gomock.Any()).Return(sysmon.Snapshot{}, sampleErr),
	)

	obs := &recordingObserver{}
	col := &collector{}
	p := NewPoller(source, obs, nil, col.send)

	p.Tick(context.Background(), time.Now())
	p.Tick(context.Background(), time.Now())

	msgs := col.all()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	errMsg, ok := msgs[1].(SampleErrMsg)
	if !ok {
		t.Fatalf("got %T, want SampleErrMsg", msgs[1])
	}
	if errMsg.Seq != 2 {
		t.Errorf("Seq = %d, want 2", errMsg.Seq)
	}
	var se apperrors.SampleError
	if !errors.As(errMsg.Err, &se) || se.Metric != "memory" {
		t.Errorf("Err = %v, want memory SampleError", errMsg.Err)
	}
	if len(obs.errs) != 1 {
		t.Errorf("observer got %d errors, want 1", len(obs.errs))
	}
}

func TestPoller_Tick_CancelledSampleSendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_sysmon.NewMockSource(ctrl)
	source.EXPECT().Sample(gomock.Any()).Return(sysmon.Snapshot{},
		apperrors.SampleError{Metric: "cpu", Cause: context.Canceled})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	obs := &recordingObserver{}
	col := &collector{}
	p := NewPoller(source, obs, logging.NewNopLogger(), col.send)
	p.Tick(ctx, time.Now())

	if msgs := col.all(); len(msgs) != 0 {
		t.Errorf("got %d messages after cancellation, want 0", len(msgs))
	}
	if len(obs.errs) != 0 {
		t.Errorf("cancellation should not be counted as a sample error")
	}
}

func TestNewPoller_NilObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_sysmon.NewMockSource(ctrl)
	source.EXPECT().Sample(gomock.Any()).Return(snapshot(1, 2), nil)

	col := &collector{}
	NewPoller(source, nil, nil, col.send).Tick(context.Background(), time.Now())
	if len(col.all()) != 1 {
		t.Error("expected one message with a nil observer")
	}
}

// manualTicker is a scheduler.Ticker whose ticks are sent by the test.
type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

// TestRefreshCycle_ThreeTicks drives the scheduler, the poller and the model
// together: each tick's values replace the previous ones.
func TestRefreshCycle_ThreeTicks(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_sysmon.NewMockSource(ctrl)
	values := []sysmon.Snapshot{snapshot(12.5, 33.1), snapshot(47.3, 61.4), snapshot(188.8, 72.9)}
	gomock.InOrder(
		source.EXPECT().Sample(gomock.Any()).Return(values[0], nil),
		source.EXPECT().Sample(gomock.Any()).Return(values[1], nil),
		source.EXPECT().Sample(gomock.Any()).Return(values[2], nil),
	)

	msgs := make(chan tea.Msg, 10)
	p := NewPoller(source, nil, nil, func(msg tea.Msg) { msgs <- msg })

	ticker := &manualTicker{ch: make(chan time.Time)}
	sched, err := scheduler.New(time.Second, scheduler.WithTicker(func(time.Duration) scheduler.Ticker {
		return ticker
	}))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx, p.Tick) }()

	m := newSizedModel(t)
	for i, want := range values {
		if i > 0 {
			ticker.ch <- time.Now()
		}
		var msg tea.Msg
		select {
		case msg = <-msgs:
		case <-time.After(time.Second):
			t.Fatalf("tick %d: no message", i+1)
		}
		m = update(t, m, msg)

		if m.seq != uint64(i+1) {
			t.Errorf("tick %d: seq = %d", i+1, m.seq)
		}
		if m.cpu.Spec().Value != want.CPU.Value || m.ram.Spec().Value != want.RAM.Value {
			t.Errorf("tick %d: gauges show %v/%v, want %v/%v", i+1,
				m.cpu.Spec().Value, m.ram.Spec().Value, want.CPU.Value, want.RAM.Value)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("scheduler returned %v, want nil", err)
	}
	if m.cpuLabel != "CPU: 188.8%" || m.ramLabel != "RAM: 72.9%" {
		t.Errorf("labels = %q, %q", m.cpuLabel, m.ramLabel)
	}
}
