package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fenilsonani/file-organizer/internal/categories"
	"github.com/fenilsonani/file-organizer/internal/organizer"
	"github.com/fenilsonani/file-organizer/internal/scanner"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatSummary OutputFormat = "summary"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
)

// ParseFormat converts a format name into an OutputFormat
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatSummary, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use summary, table, json or yaml)", name)
	}
}

// Structured reports whether the format is meant for other programs
func (f OutputFormat) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Reporter handles report generation
type Reporter struct {
	writer  io.Writer
	format  OutputFormat
	verbose bool
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// SetVerbose lists individual files in the scan summary
func (r *Reporter) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// Format returns the reporter's output format
func (r *Reporter) Format() OutputFormat {
	return r.format
}

// =============================================================================
// Scan reports
// =============================================================================

// CategoryBreakdown is the per-category part of a scan report
type CategoryBreakdown struct {
	Category categories.Category `json:"category" yaml:"category"`
	Count    int                 `json:"count" yaml:"count"`
	Size     int64               `json:"size" yaml:"size"`
	Files    []string            `json:"files" yaml:"files"`
}

// ScanReport is the structured form of a scan
type ScanReport struct {
	Timestamp          string              `json:"timestamp" yaml:"timestamp"`
	Directory          string              `json:"directory" yaml:"directory"`
	TotalFiles         int                 `json:"total_files" yaml:"total_files"`
	TotalSize          int64               `json:"total_size" yaml:"total_size"`
	TotalSizeFormatted string              `json:"total_size_formatted" yaml:"total_size_formatted"`
	Categories         []CategoryBreakdown `json:"categories" yaml:"categories"`
}

// BuildScanReport groups a scan by category in declaration order
func BuildScanReport(result *scanner.ScanResult) ScanReport {
	report := ScanReport{
		Timestamp:          time.Now().Format(time.RFC3339),
		Directory:          result.Directory,
		TotalFiles:         result.TotalCount,
		TotalSize:          result.TotalSize(),
		TotalSizeFormatted: formatBytes(result.TotalSize()),
		Categories:         []CategoryBreakdown{},
	}

	for _, c := range result.Categories() {
		breakdown := CategoryBreakdown{Category: c}
		for _, file := range result.Categorized[c] {
			breakdown.Count++
			breakdown.Size += file.Size
			breakdown.Files = append(breakdown.Files, file.Name)
		}
		report.Categories = append(report.Categories, breakdown)
	}

	return report
}

// ReportScan writes the category breakdown of a scan
func (r *Reporter) ReportScan(result *scanner.ScanResult) error {
	report := BuildScanReport(result)

	switch r.format {
	case FormatSummary:
		return r.scanSummary(report)
	case FormatTable:
		return r.scanTable(report)
	case FormatJSON:
		return r.encodeJSON(report)
	case FormatYAML:
		return r.encodeYAML(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) scanSummary(report ScanReport) error {
	fmt.Fprintf(r.writer, "Found %d files to organize (%s)\n", report.TotalFiles, report.TotalSizeFormatted)
	if report.TotalFiles == 0 {
		return nil
	}

	fmt.Fprintf(r.writer, "\nFiles by category:\n")
	for _, b := range report.Categories {
		fmt.Fprintf(r.writer, "  %s: %d file(s), %s\n", b.Category.FolderName(), b.Count, formatBytes(b.Size))
		if r.verbose {
			for _, name := range b.Files {
				fmt.Fprintf(r.writer, "    - %s\n", name)
			}
		}
	}
	return nil
}

func (r *Reporter) scanTable(report ScanReport) error {
	rows := make([][]string, 0, len(report.Categories))
	for _, b := range report.Categories {
		rows = append(rows, []string{b.Category.FolderName(), fmt.Sprintf("%d", b.Count), formatBytes(b.Size)})
	}
	footer := []string{"Total", fmt.Sprintf("%d", report.TotalFiles), report.TotalSizeFormatted}

	fmt.Fprintln(r.writer, renderTable(
		[]string{"Category", "Files", "Size"},
		rows,
		footer,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))
	return nil
}

// =============================================================================
// Directory reports
// =============================================================================

// ReportDirectories writes the outcome of category directory creation. It
// writes nothing for structured formats; ReportMoves carries the list there.
func (r *Reporter) ReportDirectories(created []string, dryRun bool) error {
	if r.format.Structured() {
		return nil
	}

	switch {
	case dryRun:
		fmt.Fprintf(r.writer, "Would create %d directories\n", len(created))
	case len(created) == 0:
		fmt.Fprintf(r.writer, "All directories already exist\n")
	default:
		fmt.Fprintf(r.writer, "Created %d directories\n", len(created))
	}

	if r.verbose {
		for _, dir := range created {
			fmt.Fprintf(r.writer, "  %s\n", dir)
		}
	}
	return nil
}

// =============================================================================
// Move reports
// =============================================================================

// OutcomeEntry is one file in a structured move report
type OutcomeEntry struct {
	File        string              `json:"file" yaml:"file"`
	Source      string              `json:"source" yaml:"source"`
	Destination string              `json:"destination" yaml:"destination"`
	Category    categories.Category `json:"category" yaml:"category"`
	Status      organizer.Status    `json:"status" yaml:"status"`
	Reason      string              `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// MoveSummary is the structured form of a move report
type MoveSummary struct {
	Timestamp          string         `json:"timestamp" yaml:"timestamp"`
	DryRun             bool           `json:"dry_run" yaml:"dry_run"`
	CreatedDirectories []string       `json:"created_directories" yaml:"created_directories"`
	Moved              int            `json:"moved" yaml:"moved"`
	Skipped            int            `json:"skipped" yaml:"skipped"`
	Failed             int            `json:"failed" yaml:"failed"`
	Total              int            `json:"total" yaml:"total"`
	ByCategory         map[string]int `json:"by_category" yaml:"by_category"`
	Outcomes           []OutcomeEntry `json:"outcomes" yaml:"outcomes"`
}

// BuildMoveSummary flattens a move report for encoding
func BuildMoveSummary(report *organizer.MoveReport, created []string) MoveSummary {
	summary := MoveSummary{
		Timestamp:          time.Now().Format(time.RFC3339),
		DryRun:             report.DryRun,
		CreatedDirectories: append([]string{}, created...),
		Moved:              len(report.Moved()),
		Skipped:            len(report.Skipped()),
		Failed:             len(report.Failed()),
		Total:              report.Total(),
		ByCategory:         make(map[string]int),
		Outcomes:           make([]OutcomeEntry, 0, report.Total()),
	}

	for c, n := range report.CountByCategory() {
		summary.ByCategory[c.FolderName()] = n
	}

	for _, o := range report.Outcomes {
		summary.Outcomes = append(summary.Outcomes, OutcomeEntry{
			File:        o.Operation.FileName,
			Source:      o.Operation.Source,
			Destination: o.Operation.Destination,
			Category:    o.Operation.Category,
			Status:      o.Status,
			Reason:      o.Reason,
		})
	}

	return summary
}

// ReportMoves writes the final summary of a run
func (r *Reporter) ReportMoves(report *organizer.MoveReport, created []string) error {
	switch r.format {
	case FormatSummary:
		return r.movesSummary(report)
	case FormatTable:
		return r.movesTable(report)
	case FormatJSON:
		return r.encodeJSON(BuildMoveSummary(report, created))
	case FormatYAML:
		return r.encodeYAML(BuildMoveSummary(report, created))
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) movesSummary(report *organizer.MoveReport) error {
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(r.writer, "\n%s\n", rule)
	if report.DryRun {
		fmt.Fprintf(r.writer, "DRY RUN SUMMARY\n")
	} else {
		fmt.Fprintf(r.writer, "ORGANIZATION COMPLETE\n")
	}
	fmt.Fprintf(r.writer, "%s\n", rule)

	if report.DryRun {
		fmt.Fprintf(r.writer, "Files that would be moved: %d\n", len(report.Moved()))
	} else {
		fmt.Fprintf(r.writer, "Files successfully moved:  %d\n", len(report.Moved()))
	}

	skipped := report.Skipped()
	failed := report.Failed()
	if len(skipped) > 0 {
		fmt.Fprintf(r.writer, "Files skipped:             %d\n", len(skipped))
	}
	if len(failed) > 0 {
		fmt.Fprintf(r.writer, "Files failed:              %d\n", len(failed))
	}
	fmt.Fprintf(r.writer, "Total files processed:     %d\n", report.Total())

	if len(skipped) > 0 {
		fmt.Fprintf(r.writer, "\nSkipped files:\n")
		for _, o := range skipped {
			fmt.Fprintf(r.writer, "  %s - %s\n", o.Operation.FileName, o.Reason)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(r.writer, "\nFailed files:\n")
		for _, o := range failed {
			fmt.Fprintf(r.writer, "  %s - %s\n", o.Operation.FileName, o.Reason)
		}
		fmt.Fprint(r.writer, organizer.FormatErrorSummary(report.Errors()))
	}

	fmt.Fprintf(r.writer, "%s\n", rule)
	return nil
}

func (r *Reporter) movesTable(report *organizer.MoveReport) error {
	rows := make([][]string, 0, report.Total())
	for _, o := range report.Outcomes {
		rows = append(rows, []string{
			o.Operation.FileName,
			o.Operation.Category.FolderName(),
			o.Status.String(),
			o.Reason,
		})
	}

	footer := []string{
		fmt.Sprintf("%d files", report.Total()),
		"",
		fmt.Sprintf("%d moved, %d skipped, %d failed", len(report.Moved()), len(report.Skipped()), len(report.Failed())),
		"",
	}

	fmt.Fprintln(r.writer, renderTable(
		[]string{"File", "Category", "Status", "Detail"},
		rows,
		footer,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
	return nil
}

// =============================================================================
// Encoding
// =============================================================================

func (r *Reporter) encodeJSON(v any) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (r *Reporter) encodeYAML(v any) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(v)
}

// ReportCategories lists every category with its extensions
func (r *Reporter) ReportCategories(mapper *categories.Mapper) error {
	type entry struct {
		Category   categories.Category `json:"category" yaml:"category"`
		Extensions []string            `json:"extensions" yaml:"extensions"`
	}

	entries := make([]entry, 0, len(categories.All()))
	for _, c := range categories.All() {
		entries = append(entries, entry{Category: c, Extensions: mapper.Extensions(c)})
	}

	switch r.format {
	case FormatJSON:
		return r.encodeJSON(entries)
	case FormatYAML:
		return r.encodeYAML(entries)
	case FormatTable:
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{e.Category.FolderName(), strings.Join(e.Extensions, ", ")})
		}
		fmt.Fprintln(r.writer, renderTable([]string{"Category", "Extensions"}, rows, nil, nil))
		return nil
	default:
		for _, e := range entries {
			exts := strings.Join(e.Extensions, ", ")
			if exts == "" {
				exts = "(everything else)"
			}
			fmt.Fprintf(r.writer, "  %-12s %s\n", e.Category.FolderName(), exts)
		}
		return nil
	}
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
