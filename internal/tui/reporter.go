package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pyforge/internal/toolchain"
)

// InstallReporter adapts bubbletea message sending to toolchain.Reporter.
type InstallReporter struct {
	send    func(tea.Msg)
	started map[string]time.Time
	now     func() time.Time
}

var _ toolchain.Reporter = (*InstallReporter)(nil)

// NewInstallReporter returns a reporter that forwards step events to send.
func NewInstallReporter(send func(tea.Msg)) *InstallReporter {
	return &InstallReporter{send: send, started: make(map[string]time.Time), now: time.Now}
}

// Start implements toolchain.Reporter.
func (r *InstallReporter) Start(step string) {
	r.started[step] = r.now()
	r.send(StepStartedMsg{Step: step})
}

// Complete implements toolchain.Reporter.
func (r *InstallReporter) Complete(step string, err error) {
	r.send(StepFinishedMsg{Step: step, Elapsed: r.now().Sub(r.started[step]), Err: err})
}

// PlainReporter writes one line per finished step.
type PlainReporter struct {
	w       io.Writer
	started map[string]time.Time
	now     func() time.Time
}

var _ toolchain.Reporter = (*PlainReporter)(nil)

// NewPlainReporter returns a reporter that writes to w.
func NewPlainReporter(w io.Writer) *PlainReporter {
	return &PlainReporter{w: w, started: make(map[string]time.Time), now: time.Now}
}

// Start implements toolchain.Reporter.
func (r *PlainReporter) Start(step string) {
	r.started[step] = r.now()
}

// Complete implements toolchain.Reporter.
func (r *PlainReporter) Complete(step string, err error) {
	elapsed := formatElapsed(r.now().Sub(r.started[step]))
	if err != nil {
		fmt.Fprintf(r.w, "%-*s  %-*s  %-*s  %v\n", stepWidth, step, statusWidth, StatusFailed, elapsedWidth, elapsed, err)
		return
	}
	fmt.Fprintf(r.w, "%-*s  %-*s  %s\n", stepWidth, step, statusWidth, StatusDone, elapsed)
}
