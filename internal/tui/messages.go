package tui

import "time"

// StepStartedMsg marks an install step as running.
type StepStartedMsg struct {
	Step string
}

// StepFinishedMsg records how a step ended. A nil Err means success.
type StepFinishedMsg struct {
	Step    string
	Elapsed time.Duration
	Err     error
}

// WorkDoneMsg signals that the background operation has returned.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit and show it.
type ErrorMsg struct {
	Err error
}
