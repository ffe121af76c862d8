package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Reasons a move is skipped before it is attempted
var (
	ErrSameFile              = errors.New("source and destination are the same")
	ErrDestinationExists     = errors.New("destination file already exists")
	ErrDestinationDirMissing = errors.New("destination directory does not exist")
	ErrDestinationReadOnly   = errors.New("destination directory is read-only")
)

// ErrorReason categorizes why a move failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorNotFound
	ErrorAlreadyExists
	ErrorCrossDevice
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorNotFound:
		return "File not found"
	case ErrorAlreadyExists:
		return "Already exists"
	case ErrorCrossDevice:
		return "Cross-device move"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// MoveError represents a move that was attempted and failed
type MoveError struct {
	Operation MoveOperation
	Reason    ErrorReason
	Original  error
	Message   string

	// SourceRemoveFailed is set when the file was copied to another device but
	// the source could not be deleted afterwards.
	SourceRemoveFailed bool
}

// Error implements the error interface
func (e *MoveError) Error() string {
	return e.Message
}

// Unwrap returns the underlying filesystem error
func (e *MoveError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message with a hint where one helps
func (e *MoveError) UserMessage() string {
	if e.SourceRemoveFailed {
		return fmt.Sprintf("%s (remove %s by hand once the copy is verified)", e.Message, e.Operation.Source)
	}
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("%s (check ownership of the source and target folders)", e.Message)
	case ErrorNotFound:
		return fmt.Sprintf("%s (it was removed or renamed during the run)", e.Message)
	default:
		return e.Message
	}
}

// CategorizeError translates a rename or copy error into a MoveError
func CategorizeError(op MoveOperation, err error) *MoveError {
	if err == nil {
		return nil
	}

	moveErr := &MoveError{
		Operation: op,
		Original:  err,
		Reason:    reasonFor(err),
	}

	switch moveErr.Reason {
	case ErrorPermissionDenied:
		moveErr.Message = fmt.Sprintf("permission denied moving '%s' to '%s'", op.Source, op.Destination)
	case ErrorNotFound:
		moveErr.Message = fmt.Sprintf("source file '%s' not found", op.Source)
	case ErrorAlreadyExists:
		moveErr.Message = fmt.Sprintf("destination '%s' already exists", op.Destination)
	default:
		moveErr.Message = fmt.Sprintf("failed to move '%s': %v", op.FileName, err)
	}

	return moveErr
}

// newSourceRemoveError reports a cross-device copy whose source could not be removed
func newSourceRemoveError(op MoveOperation, err error) *MoveError {
	return &MoveError{
		Operation:          op,
		Original:           err,
		Reason:             reasonFor(err),
		Message:            fmt.Sprintf("copied file but failed to remove source: %v", err),
		SourceRemoveFailed: true,
	}
}

func reasonFor(err error) ErrorReason {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return ErrorPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		return ErrorNotFound
	case errors.Is(err, fs.ErrExist):
		return ErrorAlreadyExists
	case IsCrossDevice(err):
		return ErrorCrossDevice
	default:
		return ErrorUnknown
	}
}

// SkipError explains why an admissibility check rejected a move
type SkipError struct {
	Context string
	Err     error
}

// Error implements the error interface
func (e *SkipError) Error() string {
	switch {
	case errors.Is(e.Err, fs.ErrPermission):
		return e.Context + ": permission denied"
	case errors.Is(e.Err, fs.ErrNotExist):
		return e.Context + ": file not found"
	default:
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
}

// Unwrap returns the underlying filesystem error
func (e *SkipError) Unwrap() error {
	return e.Err
}

// GroupErrors groups move errors by reason
func GroupErrors(errs []*MoveError) map[ErrorReason][]*MoveError {
	grouped := make(map[ErrorReason][]*MoveError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of failed moves
func FormatErrorSummary(errs []*MoveError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)
	var b strings.Builder
	b.WriteString("\nIssues encountered:\n")

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		fmt.Fprintf(&b, "   ├─ Permission denied: %d files\n", len(perms))
		b.WriteString("   │  └─ Tip: check ownership of the source and target folders\n")
	}

	if missing, ok := grouped[ErrorNotFound]; ok {
		fmt.Fprintf(&b, "   ├─ Vanished during run: %d files\n", len(missing))
	}

	if exists, ok := grouped[ErrorAlreadyExists]; ok {
		fmt.Fprintf(&b, "   ├─ Destination appeared during run: %d files\n", len(exists))
	}

	if xdev, ok := grouped[ErrorCrossDevice]; ok {
		fmt.Fprintf(&b, "   ├─ Cross-device moves: %d files\n", len(xdev))
	}

	if unknown, ok := grouped[ErrorUnknown]; ok {
		fmt.Fprintf(&b, "   └─ Other errors: %d files\n", len(unknown))
	}

	var partial int
	for _, err := range errs {
		if err.SourceRemoveFailed {
			partial++
		}
	}
	if partial > 0 {
		fmt.Fprintf(&b, "   ⚠️  %d files were copied but their source could not be removed\n", partial)
	}

	return b.String()
}
