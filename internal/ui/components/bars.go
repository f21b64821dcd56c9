package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haru2503/wakatime-log/internal/models"
	"github.com/haru2503/wakatime-log/internal/report"
	"github.com/haru2503/wakatime-log/internal/ui/styles"
)

// FormatDuration renders a seconds figure as a compact human duration.
func FormatDuration(seconds float64) string {
	return report.FormatTimeReadable(seconds)
}

// RenderProgressBar renders a filled/empty percent bar.
func RenderProgressBar(percent float64, width int) string {
	if width < 5 {
		width = 5
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int((percent / 100) * float64(width))
	if filled > width {
		filled = width
	}

	bar := styles.GetActivityStyle(percent).Render(strings.Repeat("█", filled))
	empty := lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat("░", width-filled))

	return bar + empty
}

// RenderBreakdownItem renders one breakdown entry as a labelled percent bar
// with its duration.
func RenderBreakdownItem(item models.BreakdownItem, labelWidth, width int) string {
	name := item.Name
	if len(name) > labelWidth {
		name = name[:labelWidth-1] + "…"
	}

	barWidth := width - labelWidth - 22
	if barWidth < 5 {
		barWidth = 5
	}

	label := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(labelWidth).
		Render(name)

	bar := RenderProgressBar(item.Percent, barWidth)

	detail := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Render(fmt.Sprintf(" %5.1f%% %s", item.Percent, FormatDuration(item.TotalSeconds)))

	return fmt.Sprintf("%s [%s]%s", label, bar, detail)
}

// RenderBreakdownList renders the top entries of a breakdown, one bar per
// line. Limit <= 0 renders everything.
func RenderBreakdownList(items []models.BreakdownItem, width, limit int) string {
	if len(items) == 0 {
		return styles.HelpStyle.Render("No data")
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	labelWidth := 0
	for _, item := range items {
		if len(item.Name) > labelWidth {
			labelWidth = len(item.Name)
		}
	}
	if labelWidth > 16 {
		labelWidth = 16
	}

	var lines []string
	for _, item := range items {
		lines = append(lines, RenderBreakdownItem(item, labelWidth, width))
	}
	return strings.Join(lines, "\n")
}
