package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/sysgauge/internal/format"
)

// HeaderModel renders the top bar: title, version, uptime.
type HeaderModel struct {
	startTime time.Time
	now       time.Time
	version   string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, start time.Time) HeaderModel {
	return HeaderModel{
		startTime: start,
		now:       start,
		version:   version,
	}
}

// SetNow advances the uptime clock. Earlier times are ignored.
func (h *HeaderModel) SetNow(t time.Time) {
	if t.After(h.now) {
		h.now = t
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Uptime returns the time elapsed since the session started.
func (h HeaderModel) Uptime() time.Duration {
	return h.now.Sub(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "System Monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := versionStyle.Render(" | ")
	uptime := elapsedStyle.Render(fmt.Sprintf("Uptime: %s", format.FormatUptime(h.Uptime())))

	leftPart := title + pipe + uptime
	leftLen := lipgloss.Width(leftPart)

	innerWidth := h.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	gap := innerWidth - leftLen
	if gap < 0 {
		gap = 0
	}

	row := leftPart + spaces(gap)

	return headerStyle.Width(h.width).Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
