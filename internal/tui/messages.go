package tui

import (
	"github.com/agbru/sysgauge/internal/sysmon"
)

// SampleMsg carries one successful tick. Seq starts at 1 and increases by
// one per tick.
type SampleMsg struct {
	Seq      uint64
	Snapshot sysmon.Snapshot
}

// SampleErrMsg reports a failed tick. It ends the session.
type SampleErrMsg struct {
	Seq uint64
	Err error
}

// ContextCancelledMsg is sent when the session context is done.
type ContextCancelledMsg struct {
	Err error
}
