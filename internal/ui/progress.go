package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/fenilsonani/file-organizer/internal/organizer"
	prog "github.com/fenilsonani/file-organizer/internal/progress"
	"github.com/fenilsonani/file-organizer/internal/scanner"
	"github.com/fenilsonani/file-organizer/internal/ui/styles"
)

// moveUpdateMsg carries one progress event into the view
type moveUpdateMsg struct {
	progress *prog.MoveProgress
}

// moveDoneMsg is sent once the organizer has processed every file
type moveDoneMsg struct {
	report *organizer.MoveReport
}

// MoveModel shows a spinner and a progress bar while files are moved
type MoveModel struct {
	org     *organizer.Organizer
	scan    *scanner.ScanResult
	ctx     context.Context
	cancel  context.CancelFunc
	updates <-chan interface{}

	spinner   spinner.Model
	bar       progress.Model
	latest    *prog.MoveProgress
	report    *organizer.MoveReport
	startTime time.Time
	width     int
	cancelled bool
}

// NewMoveModel creates the view for one run. updates is a subscription on
// the organizer's progress reporter.
func NewMoveModel(ctx context.Context, org *organizer.Organizer, scan *scanner.ScanResult, updates <-chan interface{}) *MoveModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	ctx, cancel := context.WithCancel(ctx)

	width := TerminalWidth(os.Stderr)
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = barWidth(width)

	return &MoveModel{
		org:       org,
		scan:      scan,
		ctx:       ctx,
		cancel:    cancel,
		updates:   updates,
		spinner:   s,
		bar:       bar,
		startTime: time.Now(),
		width:     width,
	}
}

// Init starts the spinner and the progress listener. The moves themselves
// run outside the program, see RunMoves.
func (m *MoveModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForUpdate(m.updates),
	)
}

// Update handles messages
func (m *MoveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Files already moved stay moved; the rest are reported as skipped
			m.cancelled = true
			m.cancel()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = barWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case moveUpdateMsg:
		m.latest = msg.progress
		return m, waitForUpdate(m.updates)

	case moveDoneMsg:
		m.report = msg.report
		m.cancel()
		return m, tea.Quit
	}

	return m, nil
}

// View renders the move view
func (m *MoveModel) View() string {
	var b strings.Builder

	title := "Organizing " + m.scan.Directory
	if m.org.DryRun() {
		title = "Planning " + m.scan.Directory + " (dry run)"
	}
	b.WriteString(styles.TitleStyle.Render(truncatePath(title, m.width-2)))
	b.WriteString("\n")

	if m.report != nil {
		moved := len(m.report.Moved())
		b.WriteString(styles.Counts(moved, len(m.report.Skipped()), len(m.report.Failed()), m.org.DryRun()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(prog.FormatMoveProgress(m.latest))
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" (%s)", prog.FormatDuration(time.Since(m.startTime)))))
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(m.latest.Percent()))
	b.WriteString("\n\n")

	if m.latest != nil && m.latest.CurrentFile != "" {
		b.WriteString(styles.FilePathStyle.Render(truncatePath(m.latest.CurrentFile, m.width/2)))
		b.WriteString(styles.DimStyle.Render(" → "))
		b.WriteString(styles.Category(m.latest.Category))
		b.WriteString("\n")
		b.WriteString(styles.Counts(m.latest.Moved, m.latest.Skipped, m.latest.Failed, m.latest.DryRun))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.cancelled {
		b.WriteString(styles.WarningStyle.Render("Cancelling, finishing the current file..."))
	} else {
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("%d files, %s · press ctrl+c to stop",
			m.scan.TotalCount, humanize.Bytes(uint64(m.scan.TotalSize())))))
	}
	b.WriteString("\n")

	return b.String()
}

// Report returns the finished report, or nil while moves are running
func (m *MoveModel) Report() *organizer.MoveReport {
	return m.report
}

// performMoves runs the organizer; it is the only goroutine touching files
func (m *MoveModel) performMoves() tea.Msg {
	return moveDoneMsg{report: m.org.MoveFilesContext(m.ctx, m.scan)}
}

// waitForUpdate blocks until the next progress event
func waitForUpdate(updates <-chan interface{}) tea.Cmd {
	return func() tea.Msg {
		for update := range updates {
			if p, ok := update.(*prog.MoveProgress); ok {
				return moveUpdateMsg{progress: p}
			}
		}
		return nil
	}
}

func barWidth(termWidth int) int {
	w := termWidth - 4
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}

// RunMoves moves the scanned files behind a live progress view on stderr.
// The organizer must have a progress reporter set to pr.
//
// The organizer runs on its own goroutine and RunMoves always waits for it,
// so the report is complete even when the view fails. A view failure is
// returned alongside the report.
func RunMoves(ctx context.Context, org *organizer.Organizer, scan *scanner.ScanResult, pr *prog.ProgressReporter) (*organizer.MoveReport, error) {
	return runMoves(ctx, org, scan, pr, tea.WithOutput(os.Stderr))
}

func runMoves(ctx context.Context, org *organizer.Organizer, scan *scanner.ScanResult, pr *prog.ProgressReporter, opts ...tea.ProgramOption) (*organizer.MoveReport, error) {
	updates := pr.Subscribe()
	defer pr.Unsubscribe(updates)

	m := NewMoveModel(ctx, org, scan, updates)
	defer m.cancel()
	p := tea.NewProgram(m, opts...)

	done := make(chan *organizer.MoveReport, 1)
	go func() {
		msg := m.performMoves().(moveDoneMsg)
		done <- msg.report
		// Returns immediately once the program has exited
		p.Send(msg)
	}()

	_, runErr := p.Run()
	report := <-done
	if runErr != nil {
		return report, fmt.Errorf("progress view failed: %w", runErr)
	}
	return report, nil
}
