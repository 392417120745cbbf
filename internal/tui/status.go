package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// StatusLine redraws a single spinner line on w while one pip command runs.
type StatusLine struct {
	w     io.Writer
	label string
	start time.Time
	frame spinner.Spinner

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// StartStatus begins drawing label on w until Stop is called.
func StartStatus(w io.Writer, label string) *StatusLine {
	s := &StatusLine{
		w:     w,
		label: label,
		start: time.Now(),
		frame: spinner.Dot,
		stop:  make(chan struct{}),
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

// Stop halts drawing and clears the line. It is safe to call twice.
func (s *StatusLine) Stop() {
	s.once.Do(func() {
		close(s.stop)
		s.wg.Wait()
		fmt.Fprint(s.w, "\r\033[K")
	})
}

func (s *StatusLine) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.frame.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			glyph := SpinnerStyle.Render(s.frame.Frames[i%len(s.frame.Frames)])
			fmt.Fprintf(s.w, "\r\033[K%s %s (%s)", glyph, s.label, formatElapsed(time.Since(s.start)))
		}
	}
}
