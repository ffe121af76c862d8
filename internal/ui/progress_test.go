package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/file-organizer/internal/categories"
	"github.com/fenilsonani/file-organizer/internal/organizer"
	prog "github.com/fenilsonani/file-organizer/internal/progress"
	"github.com/fenilsonani/file-organizer/internal/scanner"
	"github.com/fenilsonani/file-organizer/internal/testutil"
)

// newTestRun scans three files and returns an organizer reporting to pr
func newTestRun(t *testing.T, dryRun bool) (*organizer.Organizer, *scanner.ScanResult, *prog.ProgressReporter, *testutil.TestFixture) {
	t.Helper()
	f := testutil.NewFixture(t)
	f.CreateSourceFiles("a.jpg", "b.pdf", "c.mp3")

	result, err := scanner.New(categories.NewMapper()).Scan(f.SourceDir)
	if err != nil {
		t.Fatal(err)
	}

	pr := prog.NewProgressReporter()
	org := organizer.New(f.OutputDir, dryRun, false)
	org.SetProgressReporter(pr)
	if _, err := org.CreateCategoryDirectories(result); err != nil {
		t.Fatal(err)
	}
	return org, result, pr, f
}

func newTestModel(t *testing.T, dryRun bool) (*MoveModel, *testutil.TestFixture, *prog.ProgressReporter) {
	t.Helper()
	org, result, pr, f := newTestRun(t, dryRun)

	updates := pr.Subscribe()
	t.Cleanup(func() { pr.Unsubscribe(updates) })

	return NewMoveModel(context.Background(), org, result, updates), f, pr
}

func TestMoveModelRunsOrganizer(t *testing.T) {
	m, f, _ := newTestModel(t, false)

	msg := m.performMoves()
	done, ok := msg.(moveDoneMsg)
	if !ok {
		t.Fatalf("performMoves returned %T", msg)
	}
	if len(done.report.Moved()) != 3 {
		t.Fatalf("expected 3 moved, got %+v", done.report.Outcomes)
	}
	f.AssertFileExists(f.Path("output/Images/a.jpg"))

	// Progress events were queued for the view
	next := waitForUpdate(m.updates)()
	update, ok := next.(moveUpdateMsg)
	if !ok || update.progress.Processed != 1 {
		t.Errorf("first update = %#v", next)
	}

	_, cmd := m.Update(done)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit after the run finished")
	}
	if m.Report() != done.report {
		t.Error("Report() should return the finished report")
	}
	if !strings.Contains(m.View(), "3 moved") {
		t.Errorf("final view = %q", m.View())
	}
}

func TestMoveModelShowsProgress(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	if !strings.Contains(m.View(), "Preparing...") {
		t.Errorf("initial view = %q", m.View())
	}

	m.Update(moveUpdateMsg{progress: &prog.MoveProgress{
		Phase:       prog.PhaseMoving,
		CurrentFile: "b.pdf",
		Category:    categories.Documents,
		Processed:   2,
		TotalFiles:  3,
		Moved:       2,
		DryRun:      true,
		StartTime:   time.Now(),
	}})

	view := m.View()
	for _, want := range []string{"Planning", "2/3 files (66%)", "b.pdf", "Documents", "2 to move"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMoveModelCancel(t *testing.T) {
	m, f, _ := newTestModel(t, false)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.cancelled {
		t.Fatal("ctrl+c should cancel the run")
	}
	if !strings.Contains(m.View(), "Cancelling") {
		t.Errorf("view = %q", m.View())
	}

	done := m.performMoves().(moveDoneMsg)
	if len(done.report.Skipped()) != 3 {
		t.Errorf("expected every file skipped after cancel, got %+v", done.report.Outcomes)
	}
	f.AssertFileExists(f.Path("source/a.jpg"))
}

func TestMoveModelResize(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	if m.bar.Width != 60 {
		t.Errorf("bar width = %d, want 60", m.bar.Width)
	}
	m.Update(tea.WindowSizeMsg{Width: 8, Height: 40})
	if m.bar.Width != 10 {
		t.Errorf("bar width = %d, want 10", m.bar.Width)
	}
}

func TestWaitForUpdateEndsWhenClosed(t *testing.T) {
	ch := make(chan interface{}, 2)
	ch <- &prog.ScanProgress{}
	close(ch)

	if msg := waitForUpdate(ch)(); msg != nil {
		t.Errorf("expected nil after close, got %#v", msg)
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path string
		max  int
		want string
	}{
		{"/short", 20, "/short"},
		{"/a/very/long/path/file.txt", 12, ".../file.txt"},
		{"/abc", 2, "/abc"},
	}
	for _, tt := range tests {
		if got := truncatePath(tt.path, tt.max); got != tt.want {
			t.Errorf("truncatePath(%q, %d) = %q, want %q", tt.path, tt.max, got, tt.want)
		}
	}
}

// brokenInput fails every read, like a terminal that went away
type brokenInput struct {
	once sync.Once
	read chan struct{}
}

func (b *brokenInput) Read([]byte) (int, error) {
	b.once.Do(func() { close(b.read) })
	return 0, errors.New("input device gone")
}

func TestRunMovesWithoutInput(t *testing.T) {
	org, result, pr, f := newTestRun(t, false)

	report, err := runMoves(context.Background(), org, result, pr,
		tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	if err != nil {
		t.Fatalf("runMoves failed: %v", err)
	}
	if len(report.Moved()) != 3 {
		t.Errorf("expected 3 moved, got %+v", report.Outcomes)
	}
	f.AssertFileExists(f.Path("output/Audio/c.mp3"))
}

func TestRunMovesKeepsReportWhenViewFails(t *testing.T) {
	org, result, pr, f := newTestRun(t, false)
	in := &brokenInput{read: make(chan struct{})}

	// Hold the run after the first file until the view has hit its error
	pr.OnUpdate(func(update interface{}) {
		if p, ok := update.(*prog.MoveProgress); ok && p.Phase == prog.PhaseMoving && p.Processed == 1 {
			<-in.read
			time.Sleep(200 * time.Millisecond)
		}
	})

	report, err := runMoves(context.Background(), org, result, pr,
		tea.WithInput(in), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	if err == nil {
		t.Fatal("expected the view error to be returned")
	}
	if !strings.Contains(err.Error(), "progress view failed") {
		t.Errorf("err = %v", err)
	}
	if report == nil {
		t.Fatal("report lost after the view failed")
	}
	if len(report.Moved()) != 3 || report.Total() != 3 {
		t.Errorf("expected all 3 files moved, got %+v", report.Outcomes)
	}
	f.AssertFileExists(f.Path("output/Images/a.jpg"))
	f.AssertFileExists(f.Path("output/Documents/b.pdf"))
	f.AssertFileExists(f.Path("output/Audio/c.mp3"))
	if got := len(org.GetManifest().Entries); got != 3 {
		t.Errorf("manifest has %d entries, want 3", got)
	}
}
