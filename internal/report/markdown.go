// Package report renders week and month summaries as markdown files placed
// next to the JSON records they describe.
package report

import (
	"fmt"
	"strings"

	"github.com/haru2503/wakatime-log/internal/models"
)

// FormatTime renders seconds as HH:MM:SS.
func FormatTime(totalSeconds float64) string {
	secs := int(totalSeconds)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatTimeReadable renders seconds as "2h 30m", or "45m" under an hour.
func FormatTimeReadable(totalSeconds float64) string {
	secs := int(totalSeconds)
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// formatBreakdown lists a breakdown's items with time and percentage, most
// time first. Items arrive pre-sorted from aggregation.
func formatBreakdown(items models.Breakdown, title string) string {
	if len(items) == 0 {
		return fmt.Sprintf("**%s**: No data", title)
	}

	lines := []string{fmt.Sprintf("**%s**:", title), ""}
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("  %s - %s (%.2f%%)",
			item.Name, FormatTimeReadable(item.TotalSeconds), item.Percent))
	}
	return strings.Join(lines, "\n")
}

// writeBreakdowns appends each kind's breakdown in canonical kind order.
func writeBreakdowns(b *strings.Builder, breakdowns map[models.BreakdownKind]models.Breakdown) {
	for _, kind := range models.BreakdownKinds() {
		fmt.Fprintf(b, "\n%s\n", formatBreakdown(breakdowns[kind], kind.Title()))
	}
}

// WeekMarkdown renders a week summary in the week_N_summary.md format.
func WeekMarkdown(sum *models.WeekSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Week Summary: %s to %s\n\n", sum.WeekStart, sum.WeekEnd)
	b.WriteString("## Weekly Totals\n")
	fmt.Fprintf(&b, "- **Total Coding Time**: %s\n", FormatTime(sum.TotalSeconds))
	fmt.Fprintf(&b, "- **Daily Average Coding Time**: %s\n", FormatTime(sum.DailyAverageSeconds))

	b.WriteString("\n## Combined Breakdowns\n")
	writeBreakdowns(&b, sum.Breakdowns)

	if chart := weekTrend(sum); chart != "" {
		b.WriteString("\n## Daily Trend\n\n```\n")
		b.WriteString(chart)
		b.WriteString("\n```\n")
	}

	b.WriteString("\n## Daily Breakdown\n")
	for _, day := range sum.Days {
		fmt.Fprintf(&b, "\n### %s\n", day.Date)
		fmt.Fprintf(&b, "- **Total Coding Time**: %s\n", FormatTime(day.TotalSeconds))
		writeBreakdowns(&b, day.Breakdowns)
	}

	fmt.Fprintf(&b, "\n---\n*Generated on: %s*\n*Days with data: %d/%d*\n",
		sum.GeneratedAt.Format("2006-01-02T15:04:05"), sum.DaysWithData, sum.TotalDays)

	return b.String()
}

// weekTrend plots the recorded days of a week as an hours-per-day series.
func weekTrend(sum *models.WeekSummary) string {
	if len(sum.Days) < 2 {
		return ""
	}
	seconds := make([]float64, len(sum.Days))
	for i, day := range sum.Days {
		seconds[i] = day.TotalSeconds
	}
	return DailyTrend(seconds, "hours per recorded day")
}

// MonthMarkdown renders a month summary in the MM_MonthName_summary.md
// format.
func MonthMarkdown(sum *models.MonthSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Month Summary: %s %d\n\n", sum.MonthName, sum.Year)
	b.WriteString("## Monthly Totals\n")
	fmt.Fprintf(&b, "- **Total Coding Time**: %s\n", FormatTime(sum.TotalSeconds))
	fmt.Fprintf(&b, "- **Weekly Average Coding Time**: %s\n", FormatTime(sum.WeeklyAverageSeconds))
	fmt.Fprintf(&b, "- **Daily Average Coding Time**: %s\n", FormatTime(sum.DailyAverageSeconds))

	b.WriteString("\n## Combined Breakdowns\n")
	writeBreakdowns(&b, sum.Breakdowns)

	b.WriteString("\n## Weekly Breakdown\n")
	for i, week := range sum.Weeks {
		fmt.Fprintf(&b, "\n### Week %d (%s to %s)\n", i+1, week.WeekStart, week.WeekEnd)
		fmt.Fprintf(&b, "- **Total Coding Time**: %s\n", FormatTime(week.TotalSeconds))
		fmt.Fprintf(&b, "- **Daily Average Coding Time**: %s\n", FormatTime(week.DailyAverageSeconds))
		fmt.Fprintf(&b, "- **Days with Data**: %d/%d\n", week.DaysWithData, week.TotalDays)
	}

	fmt.Fprintf(&b, "\n---\n*Generated on: %s*\n*Total weeks: %d*\n*Total days with data: %d/%d*\n",
		sum.GeneratedAt.Format("2006-01-02T15:04:05"), sum.TotalWeeks,
		sum.TotalDaysWithData, sum.TotalDaysInMonth)

	return b.String()
}

// DayMarkdown renders a single day record as markdown, mainly for ad-hoc
// inspection via the report command.
func DayMarkdown(rec *models.DayRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Summary: %s\n\n", rec.Summary.Date)
	fmt.Fprintf(&b, "- **Total Coding Time**: %s\n", FormatTime(rec.Summary.TotalSeconds))
	writeBreakdowns(&b, rec.Summary.Breakdowns)

	if langs := rec.Summary.Breakdowns[models.KindLanguages]; len(langs) > 0 {
		labels := make([]string, len(langs))
		values := make([]float64, len(langs))
		for i, item := range langs {
			labels[i] = item.Name
			values[i] = item.TotalSeconds
		}
		b.WriteString("\n```\n")
		b.WriteString(BreakdownBars(labels, values, 70))
		b.WriteString("\n```\n")
	}

	if !rec.FetchedAt.IsZero() {
		fmt.Fprintf(&b, "\n---\n*Fetched at: %s*\n", rec.FetchedAt.Format("2006-01-02T15:04:05"))
	}

	return b.String()
}
