package calendar

import (
	"testing"
	"time"
)

func TestIsWeekEnd(t *testing.T) {
	if !IsWeekEnd(Date(2025, time.January, 12)) {
		t.Error("2025-01-12 is a Sunday, want IsWeekEnd true")
	}
	if IsWeekEnd(Date(2025, time.January, 13)) {
		t.Error("2025-01-13 is a Monday, want IsWeekEnd false")
	}
}

func TestLastSunday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  time.Time
	}{
		// January 2025 ends on Friday the 31st; last Sunday is the 26th.
		{2025, time.January, Date(2025, time.January, 26)},
		// August 2025 ends on Sunday the 31st.
		{2025, time.August, Date(2025, time.August, 31)},
		{2025, time.February, Date(2025, time.February, 23)},
		{2024, time.February, Date(2024, time.February, 25)},
	}

	for _, tt := range tests {
		got := LastSunday(tt.year, tt.month)
		if !got.Equal(tt.want) {
			t.Errorf("LastSunday(%d, %s) = %s, want %s",
				tt.year, tt.month, got.Format(DateFormat), tt.want.Format(DateFormat))
		}
	}
}

func TestIsMonthEnd(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{Date(2025, time.January, 26), true},   // last Sunday of January
		{Date(2025, time.January, 19), false},  // a Sunday, but not the last
		{Date(2025, time.January, 31), false},  // last day, but a Friday
		{Date(2025, time.August, 31), true},    // month ends on a Sunday
		{Date(2025, time.February, 23), true},
	}

	for _, tt := range tests {
		if got := IsMonthEnd(tt.date); got != tt.want {
			t.Errorf("IsMonthEnd(%s) = %v, want %v", tt.date.Format(DateFormat), got, tt.want)
		}
	}
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		date       time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{Date(2025, time.January, 8), Date(2025, time.January, 6), Date(2025, time.January, 12)},
		{Date(2025, time.January, 6), Date(2025, time.January, 6), Date(2025, time.January, 12)},
		{Date(2025, time.January, 12), Date(2025, time.January, 6), Date(2025, time.January, 12)},
		// Window spanning a month boundary.
		{Date(2025, time.February, 1), Date(2025, time.January, 27), Date(2025, time.February, 2)},
	}

	for _, tt := range tests {
		monday, sunday := WeekWindow(tt.date)
		if !monday.Equal(tt.wantMonday) || !sunday.Equal(tt.wantSunday) {
			t.Errorf("WeekWindow(%s) = (%s, %s), want (%s, %s)",
				tt.date.Format(DateFormat),
				monday.Format(DateFormat), sunday.Format(DateFormat),
				tt.wantMonday.Format(DateFormat), tt.wantSunday.Format(DateFormat))
		}
	}
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(Date(2025, time.January, 9))
	if len(dates) != 7 {
		t.Fatalf("WeekDates() returned %d dates, want 7", len(dates))
	}
	if !dates[0].Equal(Date(2025, time.January, 6)) {
		t.Errorf("first date = %s, want 2025-01-06", dates[0].Format(DateFormat))
	}
	if !dates[6].Equal(Date(2025, time.January, 12)) {
		t.Errorf("last date = %s, want 2025-01-12", dates[6].Format(DateFormat))
	}
}

func TestMonthElapsed(t *testing.T) {
	jan := Date(2025, time.January, 15)
	if MonthElapsed(jan, Date(2025, time.January, 31)) {
		t.Error("month should not be elapsed on its own last day")
	}
	if !MonthElapsed(jan, Date(2025, time.February, 1)) {
		t.Error("month should be elapsed the day after its last day")
	}
}

func TestWeekElapsed(t *testing.T) {
	wed := Date(2025, time.January, 8)
	if WeekElapsed(wed, Date(2025, time.January, 11)) {
		t.Error("week should not be elapsed before its Sunday")
	}
	if !WeekElapsed(wed, Date(2025, time.January, 12)) {
		t.Error("week should be elapsed on its Sunday")
	}
	if !WeekElapsed(wed, Date(2025, time.February, 20)) {
		t.Error("week should be elapsed long after its Sunday")
	}
}

func TestDaysIn(t *testing.T) {
	if got := DaysIn(2025, time.February); got != 28 {
		t.Errorf("DaysIn(2025, February) = %d, want 28", got)
	}
	if got := DaysIn(2024, time.February); got != 29 {
		t.Errorf("DaysIn(2024, February) = %d, want 29", got)
	}
	if got := DaysIn(2025, time.December); got != 31 {
		t.Errorf("DaysIn(2025, December) = %d, want 31", got)
	}
}
