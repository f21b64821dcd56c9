// Package calendar implements the date bucketing scheme used to file
// activity records on disk.
//
// Weeks are numbered within their month, starting from the first Monday of
// the month. Days before the first Monday fall into a short "stub" week 1
// (when the month starts on a Monday there is no stub). This is a filing
// convention, not ISO week numbering: week buckets do not align across month
// boundaries and may hold fewer than seven days.
package calendar

import (
	"fmt"
	"time"
)

// DateFormat is the canonical date layout used in file names and JSON.
const DateFormat = "2006-01-02"

// Bucket identifies the storage location for a date:
// {year}/{MM_MonthName}/week_{N}.
type Bucket struct {
	Year  int
	Month time.Month
	Week  int
}

// MonthFolder returns the month directory name, e.g. "01_January".
func (b Bucket) MonthFolder() string {
	return MonthFolder(b.Month)
}

// WeekFolder returns the week directory name, e.g. "week_2".
func (b Bucket) WeekFolder() string {
	return fmt.Sprintf("week_%d", b.Week)
}

// String returns the bucket as a slash-separated path fragment.
func (b Bucket) String() string {
	return fmt.Sprintf("%d/%s/%s", b.Year, b.MonthFolder(), b.WeekFolder())
}

// MonthFolder returns the directory name for a month, e.g. "02_February".
func MonthFolder(m time.Month) string {
	return fmt.Sprintf("%02d_%s", int(m), m.String())
}

// Date normalizes a time to midnight UTC so that calendar arithmetic is
// independent of the wall-clock time and zone the caller happened to use.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates t to its calendar date in UTC.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// FirstMonday returns the first Monday on or after the 1st of the month
// containing date. If the 1st is a Monday, it is returned unchanged.
func FirstMonday(date time.Time) time.Time {
	first := Date(date.Year(), date.Month(), 1)
	offset := (8 - int(first.Weekday())) % 7
	return first.AddDate(0, 0, offset)
}

// WeekNumber returns the week number of date within its month, always >= 1.
// Dates before the month's first Monday belong to the stub week 1; when a
// stub exists, the first Monday opens week 2, so the stub bucket holds only
// the leading partial days and never a full week.
func WeekNumber(date time.Time) int {
	date = Normalize(date)
	firstMonday := FirstMonday(date)
	if date.Before(firstMonday) {
		return 1
	}
	week := int(date.Sub(firstMonday).Hours())/24/7 + 1
	if firstMonday.Day() != 1 {
		week++ // the stub occupies week 1
	}
	return week
}

// Monday returns the Monday opening the bucket's week window. The stub
// bucket of a month that does not start on a Monday holds only leading
// partial days; its days belong to a window anchored in the previous month,
// so it has no Monday of its own and ok is false.
func (b Bucket) Monday() (monday time.Time, ok bool) {
	firstMonday := FirstMonday(Date(b.Year, b.Month, 1))
	if firstMonday.Day() != 1 {
		if b.Week == 1 {
			return time.Time{}, false
		}
		return firstMonday.AddDate(0, 0, (b.Week-2)*7), true
	}
	return firstMonday.AddDate(0, 0, (b.Week-1)*7), true
}

// BucketOf maps a date to its storage bucket. It is deterministic and
// defined for every valid calendar date.
func BucketOf(date time.Time) Bucket {
	date = Normalize(date)
	return Bucket{
		Year:  date.Year(),
		Month: date.Month(),
		Week:  WeekNumber(date),
	}
}
