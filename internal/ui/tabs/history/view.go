package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/models"
	"github.com/haru2503/wakatime-log/internal/report"
	"github.com/haru2503/wakatime-log/internal/ui/components"
	"github.com/haru2503/wakatime-log/internal/ui/styles"
)

// View renders the history tab.
func (m *Model) View() string {
	if m.loading {
		return m.renderLoading()
	}
	if m.errorMsg != "" {
		return m.renderError()
	}
	if len(m.points) == 0 && len(m.months) == 0 {
		return m.renderEmpty()
	}

	var sections []string

	sections = append(sections,
		m.renderHeader(),
		m.renderDailyTrend(),
		m.renderWeeklyPattern(),
		m.renderMonthlyTotals(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderLoading() string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(styles.HelpStyle.Render("Loading history..."))
}

func (m *Model) renderError() string {
	content := fmt.Sprintf("%s %s",
		styles.ErrorTextStyle.Render("Error:"),
		m.errorMsg,
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("History"),
		"",
		styles.HelpStyle.Render("No historical data available yet."),
		styles.HelpStyle.Render("Fetch a few days and the index will fill in."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("History")

	// Time range indicator with toggle hint
	rangeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	rangeIndicator := rangeStyle.Render(fmt.Sprintf("[t] %s", m.timeRange.String()))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeIndicator)

	var subtitle string
	if len(m.points) > 0 {
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("Data: %s → %s (%d days)",
			m.points[0].Date,
			m.points[len(m.points)-1].Date,
			len(m.points),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderDailyTrend() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◆")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Daily Trend")), "")

	if len(m.points) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No daily data available"))
	} else {
		hours := make([]float64, len(m.points))
		var total float64
		for i, p := range m.points {
			hours[i] = p.TotalSeconds / 3600
			total += p.TotalSeconds
		}

		chartWidth := max(cardWidth-12, 30)
		chartHeight := 8

		chart := components.RenderLineChart(hours, chartWidth, chartHeight,
			fmt.Sprintf("Hours per day, last %d days", len(m.points)))

		for line := range strings.SplitSeq(chart, "\n") {
			rows = append(rows, "  "+line)
		}

		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("  Range total: %s",
			lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).
				Render(report.FormatTimeReadable(total)),
		))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderWeeklyPattern() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("▣")
	rows = append(rows,
		fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Weekly Pattern")),
		"",
	)

	weekday, counts := weekdayAverages(m.points)
	if counts == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No weekday data available"))
	} else {
		rows = append(rows, "  "+components.RenderWeeklyPattern(weekday, nil))

		peakIdx, peakVal := 0, weekday[0]
		for i, v := range weekday {
			if v > peakVal {
				peakIdx, peakVal = i, v
			}
		}
		dayNames := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
		rows = append(rows,
			"",
			fmt.Sprintf("  Peak day: %s (avg %s)",
				lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render(dayNames[peakIdx]),
				report.FormatTimeReadable(peakVal),
			),
		)
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderMonthlyTotals() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("▤")
	rows = append(rows,
		fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Monthly Totals")),
		"",
	)

	if len(m.months) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No monthly rollups indexed yet"))
	} else {
		values := make([]float64, len(m.months))
		labels := make([]string, len(m.months))
		for i, ms := range m.months {
			values[i] = ms.TotalSeconds
			labels[i] = time.Date(ms.Year, time.Month(ms.Month), 1, 0, 0, 0, 0, time.UTC).
				Format("Jan 2006")
		}

		chartWidth := max(cardWidth-12, 30)
		barChart := components.RenderBarChart(values, labels, chartWidth)

		for line := range strings.SplitSeq(barChart, "\n") {
			rows = append(rows, "  "+line)
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// weekdayAverages buckets the daily series by weekday, Monday first, and
// returns per-day average seconds and the number of points consumed.
func weekdayAverages(points []models.DailyPoint) ([]float64, int) {
	sums := make([]float64, 7)
	counts := make([]int, 7)
	used := 0

	for _, p := range points {
		d, err := time.Parse(calendar.DateFormat, p.Date)
		if err != nil {
			continue
		}
		// time.Weekday is Sunday-first; shift to Monday-first.
		idx := (int(d.Weekday()) + 6) % 7
		sums[idx] += p.TotalSeconds
		counts[idx]++
		used++
	}

	avgs := make([]float64, 7)
	for i := range sums {
		if counts[i] > 0 {
			avgs[i] = sums[i] / float64(counts[i])
		}
	}
	return avgs, used
}
