package organizer

import (
	"fmt"
	"strings"

	"github.com/fenilsonani/file-organizer/internal/categories"
)

// MoveOperation describes the relocation of one scanned file
type MoveOperation struct {
	Source      string              `json:"source" yaml:"source"`
	Destination string              `json:"destination" yaml:"destination"`
	FileName    string              `json:"file_name" yaml:"file_name"`
	Category    categories.Category `json:"category" yaml:"category"`
}

// Status is the terminal state of a scanned file
type Status int

const (
	StatusMoved Status = iota
	StatusSimulated
	StatusSkipped
	StatusFailed
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusSimulated:
		return "simulated"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusMoved, StatusSimulated, StatusSkipped, StatusFailed} {
		if strings.EqualFold(candidate.String(), string(text)) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status: %q", text)
}

// Outcome is what happened to one scanned file
type Outcome struct {
	Operation MoveOperation
	Status    Status
	Reason    string // set for skipped and failed files
	Err       error
}

// Completed reports whether the file was moved, or would be in a dry run
func (o Outcome) Completed() bool {
	return o.Status == StatusMoved || o.Status == StatusSimulated
}

// MoveReport holds one outcome per scanned file, in scan order
type MoveReport struct {
	Outcomes []Outcome
	DryRun   bool
}

func (r *MoveReport) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Moved returns the operations that completed, or would complete in a dry run
func (r *MoveReport) Moved() []MoveOperation {
	var ops []MoveOperation
	for _, o := range r.Outcomes {
		if o.Completed() {
			ops = append(ops, o.Operation)
		}
	}
	return ops
}

// Skipped returns the outcomes of files that were not admissible
func (r *MoveReport) Skipped() []Outcome {
	return r.filter(StatusSkipped)
}

// Failed returns the outcomes of moves that were attempted and failed
func (r *MoveReport) Failed() []Outcome {
	return r.filter(StatusFailed)
}

// Errors returns the MoveErrors of failed moves
func (r *MoveReport) Errors() []*MoveError {
	var errs []*MoveError
	for _, o := range r.Failed() {
		if moveErr, ok := o.Err.(*MoveError); ok {
			errs = append(errs, moveErr)
		}
	}
	return errs
}

// Total returns the number of files processed
func (r *MoveReport) Total() int {
	return len(r.Outcomes)
}

// CountByCategory returns the number of completed moves per category
func (r *MoveReport) CountByCategory() map[categories.Category]int {
	counts := make(map[categories.Category]int)
	for _, o := range r.Outcomes {
		if o.Completed() {
			counts[o.Operation.Category]++
		}
	}
	return counts
}

func (r *MoveReport) filter(status Status) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// counts returns moved, skipped and failed totals
func (r *MoveReport) counts() (moved, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch {
		case o.Completed():
			moved++
		case o.Status == StatusSkipped:
			skipped++
		default:
			failed++
		}
	}
	return moved, skipped, failed
}
