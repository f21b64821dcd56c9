package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/haru2503/wakatime-log/internal/report"
	"github.com/haru2503/wakatime-log/internal/ui/components"
	"github.com/haru2503/wakatime-log/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderLatestDay())
	sections = append(sections, m.renderTotals())
	sections = append(sections, m.renderPace())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

// renderTitle renders the dashboard title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("WakaTime Log")
	subtitle := styles.HelpStyle.Render("Daily coding activity, archived locally")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderLatestDay renders the most recently recorded day with one of its
// breakdowns.
func (m *Model) renderLatestDay() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Latest Day")))

	latest := m.state.GetLatest()
	if latest == nil {
		rows = append(rows, "")
		emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
		rows = append(rows, fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render("No recorded days yet")))
		rows = append(rows, "")
		rows = append(rows, styles.InfoTextStyle.Render("  ╰─▶ Press 'f' to fetch today from WakaTime"))

		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s  %s",
		lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimary).Render(latest.Summary.Date),
		styles.SuccessTextStyle.Render(report.FormatTimeReadable(latest.Summary.TotalSeconds)),
	))

	kind := m.selectedKind()
	rows = append(rows, "")
	rows = append(rows, "  "+styles.HelpStyle.Render(fmt.Sprintf("%s ('b' to cycle)", kind.Title())))

	breakdown := latest.Summary.Breakdowns[kind]
	if len(breakdown) == 0 {
		rows = append(rows, "  "+styles.HelpStyle.Render("No data for this breakdown"))
	} else {
		bars := components.RenderBreakdownList(breakdown, cardWidth-8, 5)
		rows = append(rows, indentLines(bars, "  ")...)
	}

	if latest.Proof != nil && latest.Proof.ContentHash != "" {
		hash := latest.Proof.ContentHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		rows = append(rows, "")
		rows = append(rows, "  "+styles.HelpStyle.Render("proof "+hash))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderTotals renders the aggregate totals and streaks card.
func (m *Model) renderTotals() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("Σ")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("All Time")), "")

	totals := m.state.GetTotals()
	if totals == nil || totals.DaysWithData == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No activity indexed yet"))
	} else {
		rows = append(rows, m.renderStatRow("Total coding time", report.FormatTimeReadable(totals.TotalSeconds)))
		rows = append(rows, m.renderStatRow("Days with data", fmt.Sprintf("%d", totals.DaysWithData)))
		rows = append(rows, m.renderStatRow("Daily average", report.FormatTimeReadable(totals.AverageSeconds)))
		if totals.FirstDate != "" {
			rows = append(rows, m.renderStatRow("Recorded span", fmt.Sprintf("%s → %s", totals.FirstDate, totals.LastDate)))
		}
	}

	if streaks := m.state.GetStreaks(); streaks != nil {
		rows = append(rows, "")
		currentStyle := styles.StreakBrokenStyle
		if streaks.Current > 0 {
			currentStyle = styles.StreakActiveStyle
		}
		rows = append(rows, m.renderStatRow("Current streak",
			currentStyle.Render(fmt.Sprintf("%d days", streaks.Current))))
		rows = append(rows, m.renderStatRow("Longest streak", fmt.Sprintf("%d days", streaks.Longest)))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderPace renders the current-month projection card.
func (m *Model) renderPace() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("▸")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("This Month")), "")

	pace := m.state.GetPace()
	if pace == nil || pace.DaysElapsed == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No activity this month"))
	} else {
		monthName := time.Date(pace.Year, pace.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
		rows = append(rows, m.renderStatRow("Month", monthName))
		rows = append(rows, m.renderStatRow("So far", report.FormatTimeReadable(pace.SecondsToDate)))
		rows = append(rows, m.renderStatRow("Active days",
			fmt.Sprintf("%d of %d elapsed", pace.DaysWithData, pace.DaysElapsed)))
		rows = append(rows, m.renderStatRow("Daily pace", report.FormatTimeReadable(pace.DailyAverage)))

		projStyle := styles.PaceAheadStyle
		if pace.DaysWithData*2 < pace.DaysElapsed {
			projStyle = styles.PaceBehindStyle
		}
		rows = append(rows, m.renderStatRow("Projected total",
			projStyle.Render(report.FormatTimeReadable(pace.ProjectedSeconds))))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderStatRow renders a label-value stat line.
func (m *Model) renderStatRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	return "  " + labelStyle.Render(label+":") + " " + value
}

// indentLines prefixes each line of a block.
func indentLines(block, prefix string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(block); i++ {
		if i == len(block) || block[i] == '\n' {
			out = append(out, prefix+block[start:i])
			start = i + 1
		}
	}
	return out
}
