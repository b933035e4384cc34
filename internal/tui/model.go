package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/sysgauge/internal/config"
	apperrors "github.com/agbru/sysgauge/internal/errors"
	"github.com/agbru/sysgauge/internal/format"
	"github.com/agbru/sysgauge/internal/logging"
	"github.com/agbru/sysgauge/internal/scheduler"
	"github.com/agbru/sysgauge/internal/sysmon"
)

// Gauge titles.
const (
	TitleCPU = "CPU Usage"
	TitleRAM = "RAM Usage"
)

// Layout constants for the monitor.
const (
	headerHeight  = 1
	footerHeight  = 1
	labelsHeight  = 2
	minBodyHeight = 4
)

// ExecutionState holds the lifecycle fields of a session.
type ExecutionState struct {
	ctx      context.Context
	cancel   context.CancelFunc
	done     bool
	exitCode int
	err      error
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the height available to the gauge panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight - labelsHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// columnWidth returns the width of one of the two columns. The right
// column absorbs the odd cell.
func (l LayoutManager) columnWidth(right bool) int {
	w := l.width / 2
	if right {
		w = l.width - w
	}
	return w
}

// Model is the application context: it owns the display surface, the two
// labels and the two gauge panels. Only the latest snapshot is kept.
type Model struct {
	header HeaderModel
	cpu    GaugeModel
	ram    GaugeModel
	footer FooterModel
	keymap KeyMap

	cpuLabel  string
	ramLabel  string
	cpuDetail string
	ramDetail string
	seq       uint64

	ExecutionState
	LayoutManager
}

// NewModel creates a new model whose session ends when parentCtx is done.
func NewModel(parentCtx context.Context, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()

	return Model{
		header:   NewHeaderModel(version, time.Now()),
		cpu:      NewGaugeModel(TitleCPU),
		ram:      NewGaugeModel(TitleRAM),
		footer:   NewFooterModel(keymap),
		keymap:   keymap,
		cpuLabel: sysmon.LabelCPU + ": --",
		ramLabel: sysmon.LabelRAM + ": --",
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return watchContextCmd(m.ctx)
}

// ExitCode returns the process exit status the session ended with.
func (m Model) ExitCode() int { return m.exitCode }

// Err returns the error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.cancel()
			m.finish()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case SampleMsg:
		if m.done {
			return m, nil
		}
		m.seq = msg.Seq
		m.applySnapshot(msg.Snapshot)
		return m, nil

	case SampleErrMsg:
		if m.done {
			return m, nil
		}
		m.err = msg.Err
		m.exitCode = apperrors.ExitErrorSample
		m.footer.SetError(true)
		m.cancel()
		m.finish()
		return m, tea.Quit

	case ContextCancelledMsg:
		m.finish()
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) finish() {
	m.done = true
	m.footer.SetDone(true)
}

// applySnapshot replaces both labels and both gauge specs.
func (m *Model) applySnapshot(s sysmon.Snapshot) {
	m.cpuLabel = fmt.Sprintf("%s: %s", s.CPU.Label, format.FormatPercent(s.CPU.Value))
	m.ramLabel = fmt.Sprintf("%s: %s", s.RAM.Label, format.FormatPercent(s.RAM.Value))
	m.cpu.SetValue(s.CPU.Value)
	m.ram.SetValue(s.RAM.Value)

	m.cpuDetail = ""
	if s.Cores > 0 {
		m.cpuDetail = fmt.Sprintf("sum of %d logical cores", s.Cores)
	}
	m.ramDetail = ""
	if s.MemTotal > 0 {
		m.ramDetail = fmt.Sprintf("%s of %s", humanize.IBytes(s.MemUsed), humanize.IBytes(s.MemTotal))
	}
	m.header.SetNow(s.At)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.cpu.SetSize(m.columnWidth(false), m.bodyHeight())
	m.ram.SetSize(m.columnWidth(true), m.bodyHeight())
}

// View renders the entire monitor.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	left := m.column(m.cpuLabel, m.cpuDetail, m.cpu, m.columnWidth(false))
	right := m.column(m.ramLabel, m.ramDetail, m.ram, m.columnWidth(true))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m Model) column(label, detail string, g GaugeModel, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Left,
		center.Render(labelStyle.Render(label)),
		center.Render(detailStyle.Render(detail)),
		g.View(),
	)
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

// Options configures Run.
type Options struct {
	Version  string
	Source   sysmon.Source
	Observer Observer
	Logger   logging.Logger

	// ProgramOptions are appended to the defaults (alternate screen, no
	// signal handler).
	ProgramOptions []tea.ProgramOption
	// SchedulerOptions configure the refresh loop.
	SchedulerOptions []scheduler.Option
}

// Run is the public entry point for the monitor. It owns the terminal until
// the session ends and returns the error that ended it, nil on a clean exit.
func Run(ctx context.Context, opts Options) error {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	model := NewModel(ctx, opts.Version)
	defer model.cancel()

	sched, err := scheduler.New(config.RefreshInterval, opts.SchedulerOptions...)
	if err != nil {
		return err
	}

	ref := &programRef{}
	programOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}, opts.ProgramOptions...)
	p := tea.NewProgram(model, programOpts...)
	// Inject the program reference before running so the scheduler can Send.
	ref.SetProgram(p)
	poller := NewPoller(opts.Source, opts.Observer, logger, ref.Send)

	var final tea.Model
	g, gctx := errgroup.WithContext(model.ctx)
	g.Go(func() error {
		defer model.cancel()
		fm, err := p.Run()
		final = fm
		if err != nil {
			return apperrors.WrapError(err, "terminal session failed")
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("refresh loop started", logging.String("interval", sched.Interval().String()))
		defer logger.Info("refresh loop stopped")
		return sched.Run(gctx, poller.Tick)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
