package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return s
}

func TestNewFileStore_EmptyBase(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Fatal("NewFileStore(\"\") returned nil error")
	}
}

func TestFileStorePaths(t *testing.T) {
	s := newTestStore(t)

	// 2025-01-07 is a Tuesday in week 2 of January 2025.
	date := calendar.Date(2025, time.January, 7)
	wantDay := filepath.Join(s.Base(), "2025", "01_January", "week_2", "2025-01-07.json")
	if got := s.DayPath(date); got != wantDay {
		t.Errorf("DayPath = %q, want %q", got, wantDay)
	}

	b := calendar.Bucket{Year: 2025, Month: time.January, Week: 2}
	wantWeek := filepath.Join(s.Base(), "2025", "01_January", "week_2", "week_2.json")
	if got := s.WeekPath(b); got != wantWeek {
		t.Errorf("WeekPath = %q, want %q", got, wantWeek)
	}

	wantMonth := filepath.Join(s.Base(), "2025", "01_January", "01_January.json")
	if got := s.MonthPath(2025, time.January); got != wantMonth {
		t.Errorf("MonthPath = %q, want %q", got, wantMonth)
	}
}

func TestDayRoundTrip(t *testing.T) {
	s := newTestStore(t)
	date := calendar.Date(2025, time.January, 7)

	rec := &models.DayRecord{
		Summary: models.DailySummary{
			Date:         "2025-01-07",
			TotalSeconds: 3600,
			Breakdowns: map[models.BreakdownKind]models.Breakdown{
				models.KindLanguages: {
					{Name: "Go", TotalSeconds: 3600, Percent: 100},
				},
			},
		},
		FetcherName: "wakalog",
	}

	if err := s.WriteDay(date, rec); err != nil {
		t.Fatalf("WriteDay failed: %v", err)
	}

	got, err := s.ReadDay(date)
	if err != nil {
		t.Fatalf("ReadDay failed: %v", err)
	}
	if got.Summary.Date != "2025-01-07" {
		t.Errorf("Date = %q, want 2025-01-07", got.Summary.Date)
	}
	if got.Summary.TotalSeconds != 3600 {
		t.Errorf("TotalSeconds = %v, want 3600", got.Summary.TotalSeconds)
	}
	langs := got.Summary.Breakdowns[models.KindLanguages]
	if len(langs) != 1 || langs[0].Name != "Go" {
		t.Errorf("languages breakdown = %+v, want single Go entry", langs)
	}
}

func TestWeekRoundTrip(t *testing.T) {
	s := newTestStore(t)
	b := calendar.Bucket{Year: 2025, Month: time.January, Week: 3}

	sum := &models.WeekSummary{
		WeekStart:    "2025-01-13",
		WeekEnd:      "2025-01-19",
		TotalSeconds: 7200,
		DaysWithData: 2,
		TotalDays:    7,
	}
	if err := s.WriteWeek(b, sum); err != nil {
		t.Fatalf("WriteWeek failed: %v", err)
	}

	got, err := s.ReadWeek(b)
	if err != nil {
		t.Fatalf("ReadWeek failed: %v", err)
	}
	if got.WeekStart != "2025-01-13" || got.WeekEnd != "2025-01-19" {
		t.Errorf("window = %s..%s, want 2025-01-13..2025-01-19", got.WeekStart, got.WeekEnd)
	}
	if got.TotalSeconds != 7200 {
		t.Errorf("TotalSeconds = %v, want 7200", got.TotalSeconds)
	}
}

func TestMonthRoundTrip(t *testing.T) {
	s := newTestStore(t)

	sum := &models.MonthSummary{
		Year:         2025,
		Month:        1,
		MonthName:    "January",
		TotalSeconds: 10800,
		TotalWeeks:   3,
	}
	if err := s.WriteMonth(2025, time.January, sum); err != nil {
		t.Fatalf("WriteMonth failed: %v", err)
	}

	got, err := s.ReadMonth(2025, time.January)
	if err != nil {
		t.Fatalf("ReadMonth failed: %v", err)
	}
	if got.MonthName != "January" || got.TotalWeeks != 3 {
		t.Errorf("got %+v, want January with 3 weeks", got)
	}
}

func TestReadAbsent(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.ReadDay(calendar.Date(2025, time.January, 7)); !errors.Is(err, ErrAbsent) {
		t.Errorf("ReadDay on empty store = %v, want ErrAbsent", err)
	}
	b := calendar.Bucket{Year: 2025, Month: time.January, Week: 2}
	if _, err := s.ReadWeek(b); !errors.Is(err, ErrAbsent) {
		t.Errorf("ReadWeek on empty store = %v, want ErrAbsent", err)
	}
	if _, err := s.ReadMonth(2025, time.January); !errors.Is(err, ErrAbsent) {
		t.Errorf("ReadMonth on empty store = %v, want ErrAbsent", err)
	}
}

func TestReadMalformed(t *testing.T) {
	s := newTestStore(t)
	date := calendar.Date(2025, time.January, 7)
	path := s.DayPath(date)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o640); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := s.ReadDay(date)
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("ReadDay = %v, want MalformedError", err)
	}
	if malformed.Path != path {
		t.Errorf("MalformedError.Path = %q, want %q", malformed.Path, path)
	}
	if errors.Is(err, ErrAbsent) {
		t.Error("malformed record must not satisfy ErrAbsent")
	}
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	s := newTestStore(t)
	date := calendar.Date(2025, time.January, 7)

	rec := &models.DayRecord{Summary: models.DailySummary{Date: "2025-01-07"}}
	if err := s.WriteDay(date, rec); err != nil {
		t.Fatalf("WriteDay failed: %v", err)
	}

	if _, err := os.Stat(s.DayPath(date) + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file still present after write: %v", err)
	}
}

func TestWeekBuckets(t *testing.T) {
	s := newTestStore(t)

	for _, week := range []int{3, 1, 2} {
		b := calendar.Bucket{Year: 2025, Month: time.January, Week: week}
		if err := os.MkdirAll(s.WeekDir(b), 0o750); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
	}
	// Noise that must be ignored.
	if err := os.MkdirAll(filepath.Join(s.MonthDir(2025, time.January), "scratch"), 0o750); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.MonthDir(2025, time.January), "week_note.txt"), []byte("x"), 0o640); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	buckets, err := s.WeekBuckets(2025, time.January)
	if err != nil {
		t.Fatalf("WeekBuckets failed: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}
	for i, want := range []int{1, 2, 3} {
		if buckets[i].Week != want {
			t.Errorf("buckets[%d].Week = %d, want %d", i, buckets[i].Week, want)
		}
	}
}

func TestWeekBuckets_MissingMonth(t *testing.T) {
	s := newTestStore(t)

	buckets, err := s.WeekBuckets(2025, time.March)
	if err != nil {
		t.Fatalf("WeekBuckets on missing month failed: %v", err)
	}
	if len(buckets) != 0 {
		t.Errorf("got %d buckets for missing month, want 0", len(buckets))
	}
}

func TestYearsAndMonths(t *testing.T) {
	s := newTestStore(t)

	for _, b := range []calendar.Bucket{
		{Year: 2024, Month: time.December, Week: 1},
		{Year: 2025, Month: time.January, Week: 1},
		{Year: 2025, Month: time.March, Week: 1},
	} {
		if err := os.MkdirAll(s.WeekDir(b), 0o750); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(s.Base(), "README.md"), []byte("x"), 0o640); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	years, err := s.Years()
	if err != nil {
		t.Fatalf("Years failed: %v", err)
	}
	if len(years) != 2 || years[0] != 2024 || years[1] != 2025 {
		t.Errorf("Years = %v, want [2024 2025]", years)
	}

	months, err := s.Months(2025)
	if err != nil {
		t.Fatalf("Months failed: %v", err)
	}
	if len(months) != 2 || months[0] != time.January || months[1] != time.March {
		t.Errorf("Months(2025) = %v, want [January March]", months)
	}

	none, err := s.Months(2030)
	if err != nil {
		t.Fatalf("Months on missing year failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Months(2030) = %v, want empty", none)
	}
}

func TestWriteReport(t *testing.T) {
	s := newTestStore(t)
	dir := filepath.Join(s.Base(), "2025", "01_January", "week_2")

	if err := s.WriteReport(dir, "week_2_summary.md", []byte("# Week 2\n")); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "week_2_summary.md"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "# Week 2\n" {
		t.Errorf("report content = %q", data)
	}
}
