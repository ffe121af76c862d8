package scanner

import (
	"time"

	"github.com/fenilsonani/file-organizer/internal/categories"
)

// FileInfo represents a file found during scanning
type FileInfo struct {
	Path      string              `json:"path" yaml:"path"`
	Name      string              `json:"name" yaml:"name"`
	Extension string              `json:"extension,omitempty" yaml:"extension,omitempty"` // empty when the name has none
	Category  categories.Category `json:"category" yaml:"category"`
	Size      int64               `json:"size" yaml:"size"`
	ModTime   time.Time           `json:"mod_time" yaml:"mod_time"`
}

// HasExtension reports whether the file name carries an extension
func (f FileInfo) HasExtension() bool {
	return f.Extension != ""
}

// ScanResult represents the result of a scan operation
type ScanResult struct {
	Directory   string
	Files       []FileInfo
	Categorized map[categories.Category][]FileInfo
	TotalCount  int
}

// CategoryCount returns the number of files in a category
func (r *ScanResult) CategoryCount(category categories.Category) int {
	return len(r.Categorized[category])
}

// Categories returns the categories that have at least one file, in
// declaration order
func (r *ScanResult) Categories() []categories.Category {
	var present []categories.Category
	for _, c := range categories.All() {
		if len(r.Categorized[c]) > 0 {
			present = append(present, c)
		}
	}
	return present
}

// TotalSize returns the combined size of all scanned files
func (r *ScanResult) TotalSize() int64 {
	var total int64
	for _, f := range r.Files {
		total += f.Size
	}
	return total
}

// groupByCategory builds the per-category grouping from the flat file list
func groupByCategory(files []FileInfo) map[categories.Category][]FileInfo {
	grouped := make(map[categories.Category][]FileInfo)
	for _, file := range files {
		grouped[file.Category] = append(grouped[file.Category], file)
	}
	return grouped
}
