// Package store persists day records and rollup summaries keyed by their
// calendar bucket.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/models"
)

// ErrAbsent is returned when no record exists at the requested key. Absence
// is a valid state (e.g. a day with no recorded activity), not a failure.
var ErrAbsent = errors.New("record absent")

// MalformedError reports a record that exists but cannot be parsed into its
// expected shape. Aggregation treats such records as absent data and
// surfaces the skip to the caller instead of aborting.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed record %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// RecordStore is the persistence boundary used by the rollup engine. Keys
// are derived solely from the calendar bucketing scheme; implementations
// never invent their own layout.
type RecordStore interface {
	// ReadDay returns the day record for a date, or ErrAbsent.
	ReadDay(date time.Time) (*models.DayRecord, error)
	// WriteDay persists the day record at the date's bucket key.
	WriteDay(date time.Time, rec *models.DayRecord) error

	// ReadWeek returns the week summary filed under the bucket, or ErrAbsent.
	ReadWeek(b calendar.Bucket) (*models.WeekSummary, error)
	// WriteWeek persists a week summary, overwriting any prior one.
	WriteWeek(b calendar.Bucket, sum *models.WeekSummary) error

	// ReadMonth returns the month summary, or ErrAbsent.
	ReadMonth(year int, month time.Month) (*models.MonthSummary, error)
	// WriteMonth persists a month summary, overwriting any prior one.
	WriteMonth(year int, month time.Month, sum *models.MonthSummary) error

	// WeekBuckets enumerates the week buckets that exist under a month,
	// in week order.
	WeekBuckets(year int, month time.Month) ([]calendar.Bucket, error)
}
