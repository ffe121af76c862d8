package scanner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/file-organizer/internal/categories"
	"github.com/fenilsonani/file-organizer/internal/progress"
)

// ErrNotADirectory is returned when the scanned path is not a directory
var ErrNotADirectory = errors.New("not a directory")

// Scanner lists the immediate files of a directory and categorizes them
type Scanner struct {
	mapper           *categories.Mapper
	excludePatterns  []string
	logger           *slog.Logger
	progressReporter *progress.ProgressReporter
}

// New creates a new Scanner
func New(mapper *categories.Mapper) *Scanner {
	return &Scanner{
		mapper: mapper,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger used for per-entry decisions
func (s *Scanner) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetExcludePatterns sets glob patterns; files whose base name matches any of
// them are left out of the scan
func (s *Scanner) SetExcludePatterns(patterns []string) {
	s.excludePatterns = append([]string(nil), patterns...)
}

// SetProgressReporter sets a progress reporter
func (s *Scanner) SetProgressReporter(pr *progress.ProgressReporter) {
	s.progressReporter = pr
}

// Scan lists dir without descending into subdirectories. Only regular files
// are included, hidden names are skipped. Files keep the order the listing
// returned them in.
func (s *Scanner) Scan(dir string) (*ScanResult, error) {
	startTime := time.Now()

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotADirectory)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotADirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.reportScanProgress(progress.PhaseError, dir, 0, 0, startTime, err)
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]FileInfo, 0, len(entries))
	var totalSize int64
	for _, entry := range entries {
		file, ok, err := s.processEntry(dir, entry)
		if err != nil {
			s.reportScanProgress(progress.PhaseError, dir, len(files), totalSize, startTime, err)
			return nil, err
		}
		if !ok {
			continue
		}
		files = append(files, file)
		totalSize += file.Size
	}

	s.reportScanProgress(progress.PhaseComplete, dir, len(files), totalSize, startTime, nil)

	return &ScanResult{
		Directory:   dir,
		Files:       files,
		Categorized: groupByCategory(files),
		TotalCount:  len(files),
	}, nil
}

func (s *Scanner) processEntry(dir string, entry os.DirEntry) (FileInfo, bool, error) {
	name := entry.Name()

	if !entry.Type().IsRegular() {
		s.logger.Debug("skipping non-regular entry", "name", name, "type", entry.Type().String())
		return FileInfo{}, false, nil
	}

	if strings.HasPrefix(name, ".") {
		s.logger.Debug("skipping hidden file", "name", name)
		return FileInfo{}, false, nil
	}

	if pattern, ok := s.excluded(name); ok {
		s.logger.Debug("skipping excluded file", "name", name, "pattern", pattern)
		return FileInfo{}, false, nil
	}

	info, err := entry.Info()
	if err != nil {
		if os.IsNotExist(err) {
			// Removed between listing and stat
			return FileInfo{}, false, nil
		}
		return FileInfo{}, false, fmt.Errorf("failed to stat %s: %w", filepath.Join(dir, name), err)
	}

	ext := Extension(name)
	category := categories.Other
	if ext != "" {
		category = s.mapper.Categorize(ext)
	}

	return FileInfo{
		Path:      filepath.Join(dir, name),
		Name:      name,
		Extension: ext,
		Category:  category,
		Size:      info.Size(),
		ModTime:   info.ModTime(),
	}, true, nil
}

func (s *Scanner) excluded(name string) (string, bool) {
	for _, pattern := range s.excludePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return pattern, true
		}
	}
	return "", false
}

// Extension returns the text after the last dot of a base name. Names without
// a dot, names whose only dot is the leading one and names ending in a dot have
// no extension.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}
	return name[idx+1:]
}

// reportScanProgress reports scan progress to listeners
func (s *Scanner) reportScanProgress(phase progress.Phase, dir string, filesFound int, totalSize int64, startTime time.Time, err error) {
	if s.progressReporter == nil {
		return
	}

	s.progressReporter.UpdateScanProgress(&progress.ScanProgress{
		Phase:      phase,
		Directory:  dir,
		FilesFound: filesFound,
		TotalSize:  totalSize,
		StartTime:  startTime,
		Error:      err,
	})
}
