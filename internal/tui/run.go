package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWithWork creates a bubbletea program, launches workFn in a goroutine,
// and blocks until the program exits. A non-nil error from workFn is shown
// by the model and returned.
func RunWithWork(out io.Writer, model InstallModel, workFn func(send func(tea.Msg)) error) error {
	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))

	var workErr error
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		// Let bubbletea start its event loop and render the initial frame.
		time.Sleep(50 * time.Millisecond)

		workErr = workFn(func(msg tea.Msg) {
			p.Send(msg)
			// Small yield so quick steps still get a frame.
			time.Sleep(5 * time.Millisecond)
		})
		p.Send(WorkDoneMsg{})
	}()

	finalModel, err := p.Run()
	<-finished
	if err != nil {
		return err
	}
	if workErr != nil {
		return workErr
	}
	if m, ok := finalModel.(InstallModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
