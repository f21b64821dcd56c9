package calendar

import (
	"testing"
	"time"
)

func TestFirstMonday(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{"january 2025 starts on wednesday", Date(2025, time.January, 1), Date(2025, time.January, 6)},
		{"mid-month input gives same answer", Date(2025, time.January, 20), Date(2025, time.January, 6)},
		{"september 2025 starts on monday", Date(2025, time.September, 1), Date(2025, time.September, 1)},
		{"june 2025 starts on sunday", Date(2025, time.June, 15), Date(2025, time.June, 2)},
		{"february 2025 starts on saturday", Date(2025, time.February, 1), Date(2025, time.February, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstMonday(tt.date)
			if !got.Equal(tt.want) {
				t.Errorf("FirstMonday(%s) = %s, want %s",
					tt.date.Format(DateFormat), got.Format(DateFormat), tt.want.Format(DateFormat))
			}
		})
	}
}

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		// January 2025: the 1st is a Wednesday, first Monday is the 6th.
		{Date(2025, time.January, 1), 1},
		{Date(2025, time.January, 5), 1},
		{Date(2025, time.January, 6), 2},
		{Date(2025, time.January, 7), 2},
		{Date(2025, time.January, 12), 2},
		{Date(2025, time.January, 13), 3},
		{Date(2025, time.January, 31), 5},
		// September 2025 starts on a Monday: no stub week.
		{Date(2025, time.September, 1), 1},
		{Date(2025, time.September, 7), 1},
		{Date(2025, time.September, 8), 2},
		{Date(2025, time.September, 30), 5},
		// Stub week at the start of February 2025 (1st is a Saturday).
		{Date(2025, time.February, 1), 1},
		{Date(2025, time.February, 2), 1},
		{Date(2025, time.February, 3), 2},
	}

	for _, tt := range tests {
		got := WeekNumber(tt.date)
		if got != tt.want {
			t.Errorf("WeekNumber(%s) = %d, want %d", tt.date.Format(DateFormat), got, tt.want)
		}
	}
}

func TestWeekNumberAlwaysPositive(t *testing.T) {
	// Walk several years of dates; every one must land in week >= 1.
	date := Date(2020, time.January, 1)
	end := Date(2026, time.December, 31)
	for !date.After(end) {
		if n := WeekNumber(date); n < 1 {
			t.Fatalf("WeekNumber(%s) = %d, want >= 1", date.Format(DateFormat), n)
		}
		date = date.AddDate(0, 0, 1)
	}
}

func TestWeekNumberStubWeekCoversLeadingDays(t *testing.T) {
	// Every date from the 1st to the day before the first Monday is week 1.
	for month := time.January; month <= time.December; month++ {
		firstMonday := FirstMonday(Date(2025, month, 1))
		for d := Date(2025, month, 1); d.Before(firstMonday); d = d.AddDate(0, 0, 1) {
			if n := WeekNumber(d); n != 1 {
				t.Errorf("WeekNumber(%s) = %d, want 1 (stub week)", d.Format(DateFormat), n)
			}
		}
	}
}

func TestBucketOf(t *testing.T) {
	b := BucketOf(Date(2025, time.January, 15))
	if b.Year != 2025 || b.Month != time.January || b.Week != 3 {
		t.Errorf("BucketOf() = %+v, want {2025 January 3}", b)
	}
	if got := b.MonthFolder(); got != "01_January" {
		t.Errorf("MonthFolder() = %q, want %q", got, "01_January")
	}
	if got := b.WeekFolder(); got != "week_3" {
		t.Errorf("WeekFolder() = %q, want %q", got, "week_3")
	}
	if got := b.String(); got != "2025/01_January/week_3" {
		t.Errorf("String() = %q, want %q", got, "2025/01_January/week_3")
	}
}

func TestBucketOfDeterministic(t *testing.T) {
	// The bucket must not depend on the wall-clock part of the input.
	noon := time.Date(2025, time.March, 9, 12, 30, 45, 0, time.FixedZone("ICT", 7*3600))
	if got, want := BucketOf(noon), BucketOf(Date(2025, time.March, 9)); got != want {
		t.Errorf("BucketOf(noon) = %+v, want %+v", got, want)
	}
}

func TestMonthFolder(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "01_January"},
		{time.February, "02_February"},
		{time.October, "10_October"},
		{time.December, "12_December"},
	}
	for _, tt := range tests {
		if got := MonthFolder(tt.month); got != tt.want {
			t.Errorf("MonthFolder(%s) = %q, want %q", tt.month, got, tt.want)
		}
	}
}
