package organizer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fenilsonani/file-organizer/internal/categories"
	"github.com/fenilsonani/file-organizer/internal/progress"
	"github.com/fenilsonani/file-organizer/internal/scanner"
)

// Organizer moves scanned files into per-category folders under an output directory
type Organizer struct {
	outputDir        string
	dryRun           bool
	verbose          bool
	logger           *slog.Logger
	progressReporter *progress.ProgressReporter
	manifest         *Manifest

	rename func(oldpath, newpath string) error
	remove func(name string) error
}

// New creates a new Organizer
func New(outputDir string, dryRun, verbose bool) *Organizer {
	return &Organizer{
		outputDir: outputDir,
		dryRun:    dryRun,
		verbose:   verbose,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		manifest:  NewManifest(outputDir, dryRun),
		rename:    os.Rename,
		remove:    os.Remove,
	}
}

// SetLogger sets the logger used for per-file decisions
func (o *Organizer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		o.logger = logger
	}
}

// SetProgressReporter sets a custom progress reporter
func (o *Organizer) SetProgressReporter(pr *progress.ProgressReporter) {
	o.progressReporter = pr
}

// OutputDir returns the directory category folders are created in
func (o *Organizer) OutputDir() string {
	return o.outputDir
}

// DryRun reports whether the organizer only simulates changes
func (o *Organizer) DryRun() bool {
	return o.dryRun
}

// GetManifest returns the record of this organizer's run
func (o *Organizer) GetManifest() *Manifest {
	return o.manifest
}

// TargetPath returns where a file of the given category ends up
func (o *Organizer) TargetPath(category categories.Category, fileName string) string {
	return filepath.Join(o.outputDir, category.FolderName(), fileName)
}

// NewMoveOperation builds the move for a scanned file
func (o *Organizer) NewMoveOperation(file scanner.FileInfo) MoveOperation {
	return MoveOperation{
		Source:      file.Path,
		Destination: o.TargetPath(file.Category, file.Name),
		FileName:    file.Name,
		Category:    file.Category,
	}
}

// CreateCategoryDirectories makes sure a folder exists for every category in
// the scan. It returns the folders it created, or would create in a dry run;
// folders that already exist are not included. Any creation error is returned
// immediately.
func (o *Organizer) CreateCategoryDirectories(scanResult *scanner.ScanResult) ([]string, error) {
	var created []string

	for _, category := range scanResult.Categories() {
		path := filepath.Join(o.outputDir, category.FolderName())

		if _, err := os.Stat(path); err == nil {
			o.log("directory already exists", "path", path)
			continue
		}

		if o.dryRun {
			o.log("would create directory", "path", path)
			created = append(created, path)
			continue
		}

		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
		}
		o.log("created directory", "path", path)
		created = append(created, path)
	}

	o.manifest.CreatedDirectories = append(o.manifest.CreatedDirectories, created...)
	return created, nil
}

// MoveFiles processes every scanned file in scan order. A file that cannot be
// moved is recorded as skipped or failed and processing continues.
func (o *Organizer) MoveFiles(scanResult *scanner.ScanResult) *MoveReport {
	return o.MoveFilesContext(context.Background(), scanResult)
}

// MoveFilesContext is MoveFiles with cancellation. Once ctx is done, the
// remaining files are recorded as skipped without being touched.
func (o *Organizer) MoveFilesContext(ctx context.Context, scanResult *scanner.ScanResult) *MoveReport {
	report := &MoveReport{
		Outcomes: make([]Outcome, 0, len(scanResult.Files)),
		DryRun:   o.dryRun,
	}
	o.manifest.Source = scanResult.Directory

	startTime := time.Now()
	total := len(scanResult.Files)

	for i, file := range scanResult.Files {
		op := o.NewMoveOperation(file)

		var outcome Outcome
		if err := ctx.Err(); err != nil {
			outcome = Outcome{Operation: op, Status: StatusSkipped, Reason: "run cancelled", Err: err}
		} else {
			outcome = o.process(op)
		}

		report.add(outcome)
		o.manifest.Add(outcome)
		o.logOutcome(i+1, total, outcome)
		o.reportMoveProgress(progress.PhaseMoving, report, outcome, total, startTime)
	}

	o.reportMoveProgress(progress.PhaseComplete, report, Outcome{}, total, startTime)
	o.manifest.FinishedAt = time.Now()

	return report
}

// process takes one file to its terminal state
func (o *Organizer) process(op MoveOperation) Outcome {
	if err := o.checkAdmissible(op); err != nil {
		return Outcome{Operation: op, Status: StatusSkipped, Reason: err.Error(), Err: err}
	}

	if o.dryRun {
		return Outcome{Operation: op, Status: StatusSimulated}
	}

	if moveErr := o.executeMove(op); moveErr != nil {
		return Outcome{Operation: op, Status: StatusFailed, Reason: moveErr.Message, Err: moveErr}
	}

	return Outcome{Operation: op, Status: StatusMoved}
}

// checkAdmissible runs the pre-move checks; the first failing check wins.
// Source and destination are compared as written, so two spellings of the
// same path are not detected.
func (o *Organizer) checkAdmissible(op MoveOperation) error {
	if op.Source == op.Destination {
		return ErrSameFile
	}

	if destinationExists(op.Destination) {
		return ErrDestinationExists
	}

	// Category folders may not exist yet in a dry run
	if o.dryRun {
		return nil
	}

	if err := checkSourceReadable(op.Source); err != nil {
		return err
	}

	return checkDestinationWritable(op.Destination)
}

// executeMove renames the file, falling back to copy and delete when the
// destination is on another filesystem
func (o *Organizer) executeMove(op MoveOperation) *MoveError {
	err := o.rename(op.Source, op.Destination)
	if err == nil {
		return nil
	}

	if IsCrossDevice(err) {
		o.logger.Debug("rename crossed devices, copying instead", "source", op.Source, "destination", op.Destination)
		return o.copyAndDelete(op)
	}

	return CategorizeError(op, err)
}

func (o *Organizer) copyAndDelete(op MoveOperation) *MoveError {
	if err := copyFile(op.Source, op.Destination); err != nil {
		return CategorizeError(op, err)
	}

	if err := o.remove(op.Source); err != nil {
		// Don't leave two copies behind
		if cleanupErr := os.Remove(op.Destination); cleanupErr != nil {
			o.logger.Warn("failed to remove copy after source removal failed",
				"destination", op.Destination, "error", cleanupErr)
		}
		return newSourceRemoveError(op, err)
	}

	return nil
}

// copyFile copies src to a new file at dst, keeping permissions and
// modification time. dst must not exist.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	// Best effort
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

// log writes at info level when verbose, debug otherwise
func (o *Organizer) log(msg string, args ...any) {
	if o.verbose {
		o.logger.Info(msg, args...)
		return
	}
	o.logger.Debug(msg, args...)
}

func (o *Organizer) logOutcome(processed, total int, outcome Outcome) {
	op := outcome.Operation
	step := fmt.Sprintf("%d/%d", processed, total)

	switch outcome.Status {
	case StatusMoved:
		o.log("moved", "step", step, "file", op.FileName, "category", op.Category.FolderName())
	case StatusSimulated:
		o.log("would move", "step", step, "file", op.FileName, "category", op.Category.FolderName())
	case StatusSkipped:
		o.log("skipping", "step", step, "file", op.FileName, "reason", outcome.Reason)
	case StatusFailed:
		o.logger.Warn("failed to move", "step", step, "file", op.FileName, "reason", outcome.Reason)
	}
}

// reportMoveProgress reports move progress to listeners
func (o *Organizer) reportMoveProgress(phase progress.Phase, report *MoveReport, outcome Outcome, total int, startTime time.Time) {
	if o.progressReporter == nil {
		return
	}

	moved, skipped, failed := report.counts()
	update := &progress.MoveProgress{
		Phase:      phase,
		Processed:  report.Total(),
		TotalFiles: total,
		Moved:      moved,
		Skipped:    skipped,
		Failed:     failed,
		DryRun:     o.dryRun,
		StartTime:  startTime,
	}
	if phase == progress.PhaseMoving {
		update.CurrentFile = outcome.Operation.FileName
		update.Category = outcome.Operation.Category
		update.Status = outcome.Status.String()
	}

	o.progressReporter.UpdateMoveProgress(update)
}
