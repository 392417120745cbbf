package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Column widths of the install table.
const (
	stepWidth    = 22
	statusWidth  = 8
	elapsedWidth = 7
	detailWidth  = 48
)

type stepRow struct {
	name    string
	status  string
	elapsed string
	detail  string
}

// InstallModel renders one row per install step under a title, with a
// spinner footer naming the step in flight.
type InstallModel struct {
	title   string
	rows    []stepRow
	index   map[string]int
	current string
	spinner spinner.Model
	done    bool
	err     error
}

// NewInstallModel builds a model with every step pending.
func NewInstallModel(title string, steps []string) InstallModel {
	m := InstallModel{
		title:   title,
		index:   make(map[string]int, len(steps)),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle)),
	}
	for i, step := range steps {
		m.index[step] = i
		m.rows = append(m.rows, stepRow{name: step, status: StatusPending})
	}
	return m
}

// Init starts the spinner.
func (m InstallModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update applies step events and quits once the work has returned.
func (m InstallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StepStartedMsg:
		if row := m.row(msg.Step); row != nil {
			row.status = StatusRunning
			m.current = msg.Step
		}
		return m, nil

	case StepFinishedMsg:
		if row := m.row(msg.Step); row != nil {
			row.elapsed = formatElapsed(msg.Elapsed)
			row.status = StatusDone
			if msg.Err != nil {
				row.status = StatusFailed
				row.detail = msg.Err.Error()
			}
		}
		return m, nil

	case WorkDoneMsg:
		m.done = true
		m.markSkipped()
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *InstallModel) row(step string) *stepRow {
	i, ok := m.index[step]
	if !ok {
		return nil
	}
	return &m.rows[i]
}

// markSkipped flags the steps a failed install never reached.
func (m *InstallModel) markSkipped() {
	failed := false
	for i := range m.rows {
		switch {
		case m.rows[i].status == StatusFailed:
			failed = true
		case failed && m.rows[i].status == StatusPending:
			m.rows[i].status = StatusSkipped
		}
	}
}

// View renders the table.
func (m InstallModel) View() string {
	if m.done && m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(TitleStyle.Render(m.title))
		b.WriteString("\n\n")
	}

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		stepWidth, "STEP", statusWidth, "STATUS", elapsedWidth, "TIME", "DETAIL")))
	b.WriteByte('\n')

	for _, row := range m.rows {
		fmt.Fprintf(&b, "%-*s  %s  %-*s  %s\n",
			stepWidth, truncate(row.name, stepWidth),
			StatusStyle(row.status).Render(fmt.Sprintf("%-*s", statusWidth, row.status)),
			elapsedWidth, row.elapsed,
			truncate(row.detail, detailWidth))
	}

	if !m.done {
		finished, total := m.progressCounts()
		label := "starting"
		if m.current != "" {
			label = m.current
		}
		fmt.Fprintf(&b, "\n%s %s (%d/%d)\n", m.spinner.View(), label, finished, total)
	}
	return b.String()
}

func (m InstallModel) progressCounts() (finished, total int) {
	for _, row := range m.rows {
		if row.status != StatusPending && row.status != StatusRunning {
			finished++
		}
	}
	return finished, len(m.rows)
}

// Done reports whether the model has stopped.
func (m InstallModel) Done() bool {
	return m.done
}

// Err returns the fatal error shown by the model, if any.
func (m InstallModel) Err() error {
	return m.err
}
