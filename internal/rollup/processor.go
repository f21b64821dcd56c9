package rollup

import (
	"errors"
	"fmt"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/logger"
	"github.com/haru2503/wakatime-log/internal/models"
	"github.com/haru2503/wakatime-log/internal/store"
)

// Skip records a child that was excluded from a rollup, surfaced to the
// caller for diagnostics instead of being silently dropped.
type Skip struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Result reports what Process did for one date.
type Result struct {
	Date         time.Time
	DayPresent   bool
	WeekWritten  bool
	WeekBucket   calendar.Bucket
	MonthWritten bool
	MonthYear    int
	Month        time.Month
	Skips        []Skip
}

// Processor decides, for a processed date, which rollups are due and
// regenerates them through the record store. It is a synchronous batch
// component: callers are responsible for serializing runs against the same
// store, one date at a time.
type Processor struct {
	store store.RecordStore
	now   func() time.Time
}

// NewProcessor creates a processor over the given store.
func NewProcessor(s store.RecordStore) *Processor {
	return &Processor{store: s, now: time.Now}
}

// Process evaluates the rollup boundaries for date. The week rollup fires
// when date is a Sunday; the month rollup fires when date is the last
// Sunday falling within its month. Both regenerate their summary from
// scratch, so re-running any date is safe. Only store I/O failures are
// returned as errors; malformed child records become Skips.
func (p *Processor) Process(date time.Time) (*Result, error) {
	date = calendar.Normalize(date)
	res := &Result{Date: date}

	_, err := p.store.ReadDay(date)
	switch {
	case err == nil:
		res.DayPresent = true
	case errors.Is(err, store.ErrAbsent):
		// A day without data is a valid state.
	default:
		var malformed *store.MalformedError
		if !errors.As(err, &malformed) {
			return nil, fmt.Errorf("failed to read day record: %w", err)
		}
		res.Skips = append(res.Skips, Skip{
			Key:    date.Format(calendar.DateFormat),
			Reason: malformed.Error(),
		})
	}

	if calendar.IsWeekEnd(date) {
		if err := p.rollupWeek(date, res); err != nil {
			return res, err
		}
	}

	if calendar.IsMonthEnd(date) {
		if err := p.rollupMonth(date.Year(), date.Month(), res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// RecomputeWeek regenerates the week summary for the window containing
// date, regardless of whether date is its Sunday. Used by backfill once a
// week is known to have elapsed.
func (p *Processor) RecomputeWeek(date time.Time) (*Result, error) {
	res := &Result{Date: calendar.Normalize(date)}
	if err := p.rollupWeek(date, res); err != nil {
		return res, err
	}
	return res, nil
}

// RecomputeMonth regenerates the month summary, but only once the month has
// fully elapsed as of today; a partial month is better left absent than
// published as final. Returns the result with MonthWritten unset when the
// guard rejects the request.
func (p *Processor) RecomputeMonth(year int, month time.Month, today time.Time) (*Result, error) {
	res := &Result{Date: calendar.Normalize(today), MonthYear: year, Month: month}
	if !calendar.MonthElapsed(calendar.Date(year, month, 1), today) {
		logger.Debug("month not yet elapsed, rollup withheld",
			"year", year, "month", month.String())
		return res, nil
	}
	if err := p.rollupMonth(year, month, res); err != nil {
		return res, err
	}
	return res, nil
}

// rollupWeek loads the day records of the canonical Monday..Sunday window
// containing date, aggregates the ones that are present and parseable, and
// writes the summary to the bucket of the window's Monday. A window with no
// usable days writes nothing.
func (p *Processor) rollupWeek(date time.Time, res *Result) error {
	monday, _ := calendar.WeekWindow(date)

	var days []models.DailySummary
	for _, d := range calendar.WeekDates(date) {
		rec, err := p.store.ReadDay(d)
		if err != nil {
			if errors.Is(err, store.ErrAbsent) {
				continue
			}
			var malformed *store.MalformedError
			if errors.As(err, &malformed) {
				res.Skips = append(res.Skips, Skip{
					Key:    d.Format(calendar.DateFormat),
					Reason: malformed.Error(),
				})
				continue
			}
			return fmt.Errorf("failed to read day record: %w", err)
		}
		if rec.Summary.Date == "" {
			res.Skips = append(res.Skips, Skip{
				Key:    d.Format(calendar.DateFormat),
				Reason: "day record has no summary",
			})
			continue
		}
		days = append(days, rec.Summary)
	}

	if len(days) == 0 {
		logger.Debug("no day records in window, week rollup withheld",
			"monday", monday.Format(calendar.DateFormat))
		return nil
	}

	sum := AggregateWeek(days, monday, p.now())

	// A window spanning two months files under the month containing its
	// Monday.
	bucket := calendar.BucketOf(monday)
	if err := p.store.WriteWeek(bucket, &sum); err != nil {
		return fmt.Errorf("failed to write week summary: %w", err)
	}

	res.WeekWritten = true
	res.WeekBucket = bucket
	logger.Info("week summary written",
		"bucket", bucket.String(), "days_with_data", sum.DaysWithData)
	return nil
}

// rollupMonth aggregates whatever week summaries already exist under the
// month. Absent weeks were never finalized (e.g. still in progress) and are
// skipped; the month rollup never recomputes them from daily data.
func (p *Processor) rollupMonth(year int, month time.Month, res *Result) error {
	res.MonthYear = year
	res.Month = month

	buckets, err := p.store.WeekBuckets(year, month)
	if err != nil {
		return fmt.Errorf("failed to enumerate week buckets: %w", err)
	}

	var weeks []models.WeekSummary
	for _, b := range buckets {
		sum, err := p.store.ReadWeek(b)
		if err != nil {
			if errors.Is(err, store.ErrAbsent) {
				continue
			}
			var malformed *store.MalformedError
			if errors.As(err, &malformed) {
				res.Skips = append(res.Skips, Skip{Key: b.String(), Reason: malformed.Error()})
				continue
			}
			return fmt.Errorf("failed to read week summary: %w", err)
		}
		weeks = append(weeks, *sum)
	}

	if len(weeks) == 0 {
		logger.Debug("no week summaries present, month rollup withheld",
			"year", year, "month", month.String())
		return nil
	}

	sum := AggregateMonth(weeks, year, month, p.now())
	if err := p.store.WriteMonth(year, month, &sum); err != nil {
		return fmt.Errorf("failed to write month summary: %w", err)
	}

	res.MonthWritten = true
	logger.Info("month summary written",
		"year", year, "month", month.String(), "total_weeks", sum.TotalWeeks)
	return nil
}
