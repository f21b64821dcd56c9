package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/models"
	"github.com/haru2503/wakatime-log/internal/store"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-11-04")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.November || d.Day() != 4 {
		t.Errorf("parseDate = %v", d)
	}

	if _, err := parseDate("04/11/2025"); err == nil {
		t.Error("expected error for malformed date")
	}

	today, err := parseDate("")
	if err != nil {
		t.Fatalf("parseDate(\"\"): %v", err)
	}
	if today.Format(calendar.DateFormat) != time.Now().Format(calendar.DateFormat) {
		t.Error("empty date should default to today")
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := parseMonth("2025-03")
	if err != nil {
		t.Fatalf("parseMonth: %v", err)
	}
	if year != 2025 || month != time.March {
		t.Errorf("parseMonth = %d %v", year, month)
	}

	if _, _, err := parseMonth("March 2025"); err == nil {
		t.Error("expected error for malformed month")
	}

	year, month, err = parseMonth("")
	if err != nil {
		t.Fatalf("parseMonth(\"\"): %v", err)
	}
	now := time.Now()
	if year != now.Year() || month != now.Month() {
		t.Error("empty month should default to the current month")
	}
}

// pointEnv points the config at a temp tree for one test.
func pointEnv(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("WAKALOG_BASE_DIR", filepath.Join(tmpDir, "logs"))
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "usage.db"))
	t.Setenv("WAKATIME_API_KEY", "")
	return filepath.Join(tmpDir, "logs")
}

// execute runs a command with args and captures its output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func seedWeek(t *testing.T, base string) {
	t.Helper()
	fs, err := store.NewFileStore(base)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	// Monday through Wednesday of a completed week.
	for day := 3; day <= 5; day++ {
		date := calendar.Date(2025, time.November, day)
		rec := &models.DayRecord{
			Summary: models.DailySummary{
				Date:         date.Format(calendar.DateFormat),
				TotalSeconds: 3600,
			},
		}
		if err := fs.WriteDay(date, rec); err != nil {
			t.Fatalf("WriteDay: %v", err)
		}
	}
}

func TestRollupWeekCmd(t *testing.T) {
	base := pointEnv(t)
	seedWeek(t, base)

	out, err := execute(t, RollupCmd, "week", "2025-11-04")
	if err != nil {
		t.Fatalf("rollup week: %v", err)
	}
	if !strings.Contains(out, "week rollup written") {
		t.Errorf("output = %q, want week rollup written", out)
	}
}

func TestRollupDayCmd_NoBoundary(t *testing.T) {
	base := pointEnv(t)
	seedWeek(t, base)

	// A Tuesday is not a week boundary; nothing should be written.
	out, err := execute(t, RollupCmd, "day", "2025-11-04")
	if err != nil {
		t.Fatalf("rollup day: %v", err)
	}
	if strings.Contains(out, "rollup written") {
		t.Errorf("output = %q, expected no rollups on a Tuesday", out)
	}
}

func TestBackfillCmd(t *testing.T) {
	base := pointEnv(t)
	seedWeek(t, base)

	out, err := execute(t, BackfillCmd)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if !strings.Contains(out, "weeks written:  1") {
		t.Errorf("output = %q, want one week written", out)
	}
}

func TestReportWeekCmd(t *testing.T) {
	base := pointEnv(t)
	seedWeek(t, base)

	if _, err := execute(t, RollupCmd, "week", "2025-11-04"); err != nil {
		t.Fatalf("rollup week: %v", err)
	}

	out, err := execute(t, ReportCmd, "week", "2025-11-04")
	if err != nil {
		t.Fatalf("report week: %v", err)
	}
	if !strings.Contains(out, "2025-11-03") {
		t.Errorf("output = %q, want the week start date", out)
	}
}

func TestReportDayCmd_Absent(t *testing.T) {
	pointEnv(t)

	if _, err := execute(t, ReportCmd, "day", "2025-11-04"); err == nil {
		t.Error("expected an error for an absent day")
	}
}

func TestFetchCmd_RequiresAPIKey(t *testing.T) {
	pointEnv(t)

	_, err := execute(t, FetchCmd, "2025-11-04")
	if err == nil || !strings.Contains(err.Error(), "WAKATIME_API_KEY") {
		t.Errorf("err = %v, want missing API key error", err)
	}
}

func TestVerifyCmd_Absent(t *testing.T) {
	pointEnv(t)

	if _, err := execute(t, VerifyCmd, "2025-11-04"); err == nil {
		t.Error("expected an error for an absent day")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, VersionCmd)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "wakalog") {
		t.Errorf("output = %q, want wakalog", out)
	}
}
