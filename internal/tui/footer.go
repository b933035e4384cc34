package tui

import (
	"github.com/charmbracelet/bubbles/help"
)

// FooterModel renders the status and the key help.
type FooterModel struct {
	help  help.Model
	keys  KeyMap
	width int
	done  bool
	err   bool
}

// NewFooterModel creates a footer for keys.
func NewFooterModel(keys KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = footerDescStyle
	h.Styles.ShortSeparator = footerDescStyle
	return FooterModel{help: h, keys: keys}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// SetDone marks the session as finished.
func (f *FooterModel) SetDone(done bool) { f.done = done }

// SetError marks the session as failed.
func (f *FooterModel) SetError(failed bool) { f.err = failed }

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch {
	case f.err:
		status = statusErrorStyle.Render("ERROR")
	case f.done:
		status = statusDoneStyle.Render("STOPPED")
	default:
		status = statusRunningStyle.Render("LIVE")
	}
	return " " + status + "  " + f.help.View(f.keys)
}
