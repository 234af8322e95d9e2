package ui

import (
	"github.com/phonolab/wordsnip/internal/batch"
)

// FileDoneMsg carries one finished file's outcome. Workers send these
// through tea.Program.Send as they complete, in any order.
type FileDoneMsg struct {
	Outcome batch.Outcome
}

// BatchDoneMsg indicates every file has been processed.
type BatchDoneMsg struct{}

// BatchFailedMsg indicates the batch aborted before finishing.
type BatchFailedMsg struct {
	Err error
}
