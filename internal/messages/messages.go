package messages

import "github.com/cheerioskun/regexblocks/internal/pattern"

// SequenceChangedMsg is sent when blocks were added, moved, removed or edited
type SequenceChangedMsg struct {
	Revision        uint64 // Sequence revision after the change
	SourceComponent string // Which component sent this
}

// PatternUpdatedMsg is sent after the pattern was rebuilt from the sequence
type PatternUpdatedMsg struct {
	Result pattern.Result
}

// RefreshComponentsMsg is sent to trigger component refreshes
type RefreshComponentsMsg struct {
	Reason string // Why the refresh was triggered
}

// CopyResultMsg reports the outcome of a clipboard copy
type CopyResultMsg struct {
	Text   string
	Method string // Mechanism that handled the copy
	Err    error
}
