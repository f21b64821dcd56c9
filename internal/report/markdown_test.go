package report

import (
	"strings"
	"testing"
	"time"

	"github.com/haru2503/wakatime-log/internal/models"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3600, "01:00:00"},
		{12600.9, "03:30:00"},
		{90061, "25:01:01"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatTimeReadable(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0m"},
		{1800, "30m"},
		{3600, "1h 0m"},
		{9000, "2h 30m"},
	}
	for _, tt := range tests {
		if got := FormatTimeReadable(tt.seconds); got != tt.want {
			t.Errorf("FormatTimeReadable(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func testWeek() *models.WeekSummary {
	return &models.WeekSummary{
		WeekStart:           "2025-01-06",
		WeekEnd:             "2025-01-12",
		TotalSeconds:        12600,
		DailyAverageSeconds: 6300,
		DaysWithData:        2,
		TotalDays:           7,
		Days: []models.DailySummary{
			{
				Date:         "2025-01-06",
				TotalSeconds: 9000,
				Breakdowns: map[models.BreakdownKind]models.Breakdown{
					models.KindLanguages: {
						{Name: "Go", TotalSeconds: 9000, Percent: 100},
					},
				},
			},
			{
				Date:         "2025-01-07",
				TotalSeconds: 3600,
			},
		},
		Breakdowns: map[models.BreakdownKind]models.Breakdown{
			models.KindLanguages: {
				{Name: "Go", TotalSeconds: 12600, Percent: 100},
			},
		},
		GeneratedAt: time.Date(2025, 1, 12, 23, 0, 0, 0, time.UTC),
	}
}

func TestWeekMarkdown(t *testing.T) {
	md := WeekMarkdown(testWeek())

	for _, want := range []string{
		"# Week Summary: 2025-01-06 to 2025-01-12",
		"## Weekly Totals",
		"- **Total Coding Time**: 03:30:00",
		"- **Daily Average Coding Time**: 01:45:00",
		"**Languages**:",
		"  Go - 3h 30m (100.00%)",
		"### 2025-01-06",
		"### 2025-01-07",
		"**Projects**: No data",
		"*Days with data: 2/7*",
		"*Generated on: 2025-01-12T23:00:00*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("week markdown missing %q", want)
		}
	}
}

func TestMonthMarkdown(t *testing.T) {
	sum := &models.MonthSummary{
		Year:                 2025,
		Month:                1,
		MonthName:            "January",
		TotalSeconds:         25200,
		WeeklyAverageSeconds: 12600,
		DailyAverageSeconds:  6300,
		Weeks:                []models.WeekSummary{*testWeek(), *testWeek()},
		TotalWeeks:           2,
		TotalDaysWithData:    4,
		TotalDaysInMonth:     31,
		Breakdowns: map[models.BreakdownKind]models.Breakdown{
			models.KindLanguages: {
				{Name: "Go", TotalSeconds: 25200, Percent: 100},
			},
		},
		GeneratedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	md := MonthMarkdown(sum)

	for _, want := range []string{
		"# Month Summary: January 2025",
		"## Monthly Totals",
		"- **Total Coding Time**: 07:00:00",
		"- **Weekly Average Coding Time**: 03:30:00",
		"### Week 1 (2025-01-06 to 2025-01-12)",
		"### Week 2 (2025-01-06 to 2025-01-12)",
		"- **Days with Data**: 2/7",
		"*Total weeks: 2*",
		"*Total days with data: 4/31*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("month markdown missing %q", want)
		}
	}
}

func TestDayMarkdown(t *testing.T) {
	rec := &models.DayRecord{
		Summary: models.DailySummary{
			Date:         "2025-01-07",
			TotalSeconds: 5400,
			Breakdowns: map[models.BreakdownKind]models.Breakdown{
				models.KindLanguages: {
					{Name: "Go", TotalSeconds: 3600, Percent: 66.67},
					{Name: "Rust", TotalSeconds: 1800, Percent: 33.33},
				},
			},
		},
		FetchedAt: time.Date(2025, 1, 8, 1, 0, 0, 0, time.UTC),
	}

	md := DayMarkdown(rec)

	for _, want := range []string{
		"# Daily Summary: 2025-01-07",
		"- **Total Coding Time**: 01:30:00",
		"  Go - 1h 0m (66.67%)",
		"  Rust - 30m (33.33%)",
		"*Fetched at: 2025-01-08T01:00:00*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("day markdown missing %q", want)
		}
	}
	if !strings.Contains(md, "█") {
		t.Error("day markdown missing breakdown bars")
	}
}

func TestBreakdownBars(t *testing.T) {
	out := BreakdownBars([]string{"Go", "Rust"}, []float64{7200, 3600}, 60)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Go") || !strings.Contains(lines[0], "2h 0m") {
		t.Errorf("first bar = %q", lines[0])
	}
	goBars := strings.Count(lines[0], "█")
	rustBars := strings.Count(lines[1], "█")
	if goBars <= rustBars {
		t.Errorf("bar lengths not scaled: Go %d vs Rust %d", goBars, rustBars)
	}
}

func TestDailyTrend(t *testing.T) {
	if out := DailyTrend([]float64{3600}, "x"); out != "" {
		t.Errorf("single point should produce no chart, got %q", out)
	}

	out := DailyTrend([]float64{3600, 7200, 1800}, "hours per day")
	if out == "" {
		t.Fatal("DailyTrend returned empty chart")
	}
	if !strings.Contains(out, "hours per day") {
		t.Error("chart missing caption")
	}
}
