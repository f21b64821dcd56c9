package calendar

import "time"

// IsWeekEnd reports whether date is a Sunday, the trigger for a weekly
// rollup.
func IsWeekEnd(date time.Time) bool {
	return date.Weekday() == time.Sunday
}

// IsMonthEnd reports whether date is the last Sunday that falls within its
// month. Month rollups are built from completed week rollups, so a month is
// finalized the first time a week-ending Sunday is processed after which no
// further Sunday lands inside the month.
func IsMonthEnd(date time.Time) bool {
	date = Normalize(date)
	return date.Weekday() == time.Sunday && date.Equal(LastSunday(date.Year(), date.Month()))
}

// LastSunday returns the last Sunday falling within the given month.
func LastSunday(year int, month time.Month) time.Time {
	last := LastDay(year, month)
	offset := int(last.Weekday()-time.Sunday+7) % 7
	return last.AddDate(0, 0, -offset)
}

// LastDay returns the last calendar day of the given month.
func LastDay(year int, month time.Month) time.Time {
	return Date(year, month+1, 1).AddDate(0, 0, -1)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return LastDay(year, month).Day()
}

// WeekWindow returns the canonical Monday..Sunday window containing date.
// This is the standard Monday-start week used to select rollup content; it
// is independent of the stub-aware bucket week numbering.
func WeekWindow(date time.Time) (monday, sunday time.Time) {
	date = Normalize(date)
	offset := (int(date.Weekday()) + 6) % 7
	monday = date.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// WeekDates returns the seven dates of the Monday..Sunday window
// containing date, in order.
func WeekDates(date time.Time) []time.Time {
	monday, _ := WeekWindow(date)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// MonthElapsed reports whether the month containing date has fully elapsed
// as of today, i.e. today is strictly after the month's last calendar day.
func MonthElapsed(date, today time.Time) bool {
	return Normalize(today).After(LastDay(date.Year(), date.Month()))
}

// WeekElapsed reports whether the Monday..Sunday window containing date has
// fully elapsed as of today.
func WeekElapsed(date, today time.Time) bool {
	_, sunday := WeekWindow(date)
	return !Normalize(today).Before(sunday)
}
