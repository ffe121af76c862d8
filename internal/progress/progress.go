// Package progress fans scan and move events out to the CLI and the live
// view. Publishing never blocks the organizer.
package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/fenilsonani/file-organizer/internal/categories"
)

// Phase of a run
type Phase string

const (
	PhaseScanning Phase = "scanning"
	PhaseMoving   Phase = "moving"
	PhaseComplete Phase = "complete"
	PhaseError    Phase = "error"
)

// subscriberBuffer is how many events a slow channel subscriber may lag
// behind before events are dropped for it
const subscriberBuffer = 64

// ScanProgress is published while a directory is listed
type ScanProgress struct {
	Phase      Phase
	Directory  string
	FilesFound int
	TotalSize  int64
	StartTime  time.Time
	Error      error
}

// MoveProgress is published after each file is decided, and once more with
// PhaseComplete when the run ends
type MoveProgress struct {
	Phase       Phase
	CurrentFile string
	Category    categories.Category
	Status      string
	Processed   int
	TotalFiles  int
	Moved       int
	Skipped     int
	Failed      int
	DryRun      bool
	StartTime   time.Time
}

// Handler receives every update synchronously on the publishing goroutine
type Handler func(update interface{})

// ProgressReporter keeps the latest scan and move state and forwards every
// update to handlers and subscribers
type ProgressReporter struct {
	mu        sync.RWMutex
	scan      *ScanProgress
	move      *MoveProgress
	handlers  []Handler
	listeners []chan interface{}
}

func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{}
}

// Subscribe returns a buffered channel of updates. A subscriber that falls
// more than subscriberBuffer events behind misses updates.
func (pr *ProgressReporter) Subscribe() <-chan interface{} {
	ch := make(chan interface{}, subscriberBuffer)

	pr.mu.Lock()
	pr.listeners = append(pr.listeners, ch)
	pr.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe
func (pr *ProgressReporter) Unsubscribe(ch <-chan interface{}) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	for i, listener := range pr.listeners {
		if listener != ch {
			continue
		}
		close(listener)
		pr.listeners = append(pr.listeners[:i], pr.listeners[i+1:]...)
		return
	}
}

// OnUpdate registers h. Handlers see every update in publish order.
func (pr *ProgressReporter) OnUpdate(h Handler) {
	pr.mu.Lock()
	pr.handlers = append(pr.handlers, h)
	pr.mu.Unlock()
}

func (pr *ProgressReporter) UpdateScanProgress(update *ScanProgress) {
	pr.mu.Lock()
	pr.scan = update
	pr.mu.Unlock()

	pr.publish(update)
}

func (pr *ProgressReporter) UpdateMoveProgress(update *MoveProgress) {
	pr.mu.Lock()
	pr.move = update
	pr.mu.Unlock()

	pr.publish(update)
}

func (pr *ProgressReporter) publish(update interface{}) {
	pr.mu.RLock()
	handlers := append([]Handler(nil), pr.handlers...)
	pr.mu.RUnlock()

	for _, h := range handlers {
		h(update)
	}

	// Unsubscribe takes the write lock, so no channel closes mid-send
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	for _, listener := range pr.listeners {
		select {
		case listener <- update:
		default:
		}
	}
}

// GetScanProgress returns the last scan update, or nil
func (pr *ProgressReporter) GetScanProgress() *ScanProgress {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return pr.scan
}

// GetMoveProgress returns the last move update, or nil
func (pr *ProgressReporter) GetMoveProgress() *MoveProgress {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return pr.move
}

// Percent is the processed fraction in [0, 1]
func (p *MoveProgress) Percent() float64 {
	if p == nil || p.TotalFiles == 0 {
		return 0
	}
	return float64(p.Processed) / float64(p.TotalFiles)
}

// FormatMoveProgress renders one status line for p
func FormatMoveProgress(p *MoveProgress) string {
	if p == nil {
		return "Preparing..."
	}

	switch p.Phase {
	case PhaseMoving:
		verb := "Moving"
		if p.DryRun {
			verb = "Planning"
		}
		return fmt.Sprintf("%s... %d/%d files (%d%%)", verb, p.Processed, p.TotalFiles, int(p.Percent()*100))
	case PhaseComplete:
		return fmt.Sprintf("Done: %d moved, %d skipped, %d failed in %s",
			p.Moved, p.Skipped, p.Failed, FormatDuration(time.Since(p.StartTime)))
	default:
		return "Preparing..."
	}
}

// FormatDuration rounds d to whole seconds, e.g. "1m30s"
func FormatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
