package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fenilsonani/file-organizer/internal/categories"
)

// Palette
var (
	Accent = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#A78BFA"}
	Good   = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	Warn   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	Bad    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	Muted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	Link   = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1)
	SpinnerStyle  = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	FilePathStyle = lipgloss.NewStyle().Foreground(Link)
	DimStyle      = lipgloss.NewStyle().Foreground(Muted)
	HelpStyle     = DimStyle.Italic(true)
	WarningStyle  = lipgloss.NewStyle().Bold(true).Foreground(Warn)

	movedStyle   = lipgloss.NewStyle().Bold(true).Foreground(Good)
	skippedStyle = lipgloss.NewStyle().Foreground(Warn)
	failedStyle  = lipgloss.NewStyle().Bold(true).Foreground(Bad)
)

// categoryColors gives each folder its own hue in the live view
var categoryColors = map[categories.Category]lipgloss.Color{
	categories.Images:      "#EC4899",
	categories.Documents:   "#3B82F6",
	categories.Videos:      "#F97316",
	categories.Audio:       "#14B8A6",
	categories.Archives:    "#A16207",
	categories.Code:        "#22C55E",
	categories.Data:        "#06B6D4",
	categories.Executables: "#EF4444",
	categories.Fonts:       "#8B5CF6",
}

// Category renders a category folder name in its color. Other is muted.
func Category(c categories.Category) string {
	color, ok := categoryColors[c]
	if !ok {
		return DimStyle.Render(c.FolderName())
	}
	return lipgloss.NewStyle().Foreground(color).Italic(true).Render(c.FolderName())
}

// Counts renders the running totals. Skipped and failed only show once
// non-zero.
func Counts(moved, skipped, failed int, dryRun bool) string {
	verb := "moved"
	if dryRun {
		verb = "to move"
	}

	sep := DimStyle.Render("  ·  ")
	out := movedStyle.Render(fmt.Sprintf("%d %s", moved, verb))
	if skipped > 0 {
		out += sep + skippedStyle.Render(fmt.Sprintf("%d skipped", skipped))
	}
	if failed > 0 {
		out += sep + failedStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	return out
}
