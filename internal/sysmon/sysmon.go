// Package sysmon provides system-wide CPU and memory usage sampling.
//
//go:generate mockgen -destination=mock_sysmon/mock_source.go github.com/agbru/sysgauge/internal/sysmon Source
package sysmon

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/sysgauge/internal/errors"
	"github.com/agbru/sysgauge/internal/format"
)

// Metric labels.
const (
	LabelCPU = "CPU"
	LabelRAM = "RAM"
)

// PrimeInterval is how long Prime measures to establish the CPU baseline.
const PrimeInterval = 250 * time.Millisecond

const tracerName = "github.com/agbru/sysgauge/internal/sysmon"

var errNoMemoryStats = errors.New("provider returned no memory statistics")

// UtilizationSample is one labelled percentage.
type UtilizationSample struct {
	Value float64
	Label string
}

// Snapshot holds a single tick's worth of system-wide resource usage.
type Snapshot struct {
	// CPU is the SUM of the per-core percentages, so it ranges over
	// 0 .. 100*Cores rather than 0 .. 100.
	CPU UtilizationSample
	// RAM is the used share of virtual memory, 0 .. 100.
	RAM      UtilizationSample
	Cores    int
	MemUsed  uint64
	MemTotal uint64
	At       time.Time
}

// Source supplies snapshots. Implementations are synchronous and keep no
// cache; every call reads the provider again.
type Source interface {
	Sample(ctx context.Context) (Snapshot, error)
}

// Primer is implemented by sources whose first reading needs a baseline.
type Primer interface {
	Prime(ctx context.Context) error
}

// Gopsutil reads utilization through gopsutil.
type Gopsutil struct {
	cpuPercent    func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	cpuCounts     func(ctx context.Context, logical bool) (int, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	now           func() time.Time
	tracer        trace.Tracer
}

var (
	_ Source = (*Gopsutil)(nil)
	_ Primer = (*Gopsutil)(nil)
)

// NewGopsutil returns a Source backed by the host's counters.
func NewGopsutil() *Gopsutil {
	return &Gopsutil{
		cpuPercent:    cpu.PercentWithContext,
		cpuCounts:     cpu.CountsWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		now:           time.Now,
		tracer:        otel.Tracer(tracerName),
	}
}

// Prime performs one blocking per-core measurement so the first Sample
// reports a delta over a known window instead of since process start.
func (g *Gopsutil) Prime(ctx context.Context) error {
	if _, err := g.cpuPercent(ctx, PrimeInterval, true); err != nil {
		return apperrors.SampleError{Metric: "cpu", Cause: err}
	}
	return nil
}

// Sample collects a single CPU and memory snapshot. CPU uses interval=0,
// i.e. the delta since the previous call, summed over all logical cores.
func (g *Gopsutil) Sample(ctx context.Context) (Snapshot, error) {
	ctx, span := g.tracer.Start(ctx, "sysmon.Sample")
	defer span.End()

	snap, err := g.sample(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}
	span.SetAttributes(
		attribute.Float64("sysgauge.cpu_percent", snap.CPU.Value),
		attribute.Float64("sysgauge.ram_percent", snap.RAM.Value),
		attribute.Int("sysgauge.cores", snap.Cores),
	)
	return snap, nil
}

func (g *Gopsutil) sample(ctx context.Context) (Snapshot, error) {
	perCore, err := g.cpuPercent(ctx, 0, true)
	if err != nil {
		return Snapshot{}, apperrors.SampleError{Metric: "cpu", Cause: err}
	}
	cores := len(perCore)
	if n, err := g.cpuCounts(ctx, true); err == nil && n > 0 {
		cores = n
	}

	vmem, err := g.virtualMemory(ctx)
	if err != nil {
		return Snapshot{}, apperrors.SampleError{Metric: "memory", Cause: err}
	}
	if vmem == nil {
		return Snapshot{}, apperrors.SampleError{Metric: "memory", Cause: errNoMemoryStats}
	}

	return Snapshot{
		CPU:      UtilizationSample{Value: format.RoundTenth(lo.Sum(perCore)), Label: LabelCPU},
		RAM:      UtilizationSample{Value: format.RoundTenth(vmem.UsedPercent), Label: LabelRAM},
		Cores:    cores,
		MemUsed:  vmem.Used,
		MemTotal: vmem.Total,
		At:       g.now(),
	}, nil
}
