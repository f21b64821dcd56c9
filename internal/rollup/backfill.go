package rollup

import (
	"fmt"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/logger"
	"github.com/haru2503/wakatime-log/internal/store"
)

// Walker extends the record store with the enumeration needed to revisit
// everything already on disk.
type Walker interface {
	store.RecordStore
	Years() ([]int, error)
	Months(year int) ([]time.Month, error)
}

// BackfillResult summarizes a backfill pass.
type BackfillResult struct {
	WeeksWritten  int
	MonthsWritten int
	Skips         []Skip
}

// Backfill walks the store and regenerates rollups for every completed
// period: week summaries for windows whose Sunday has passed, month
// summaries for months that have fully elapsed as of today. In-progress
// periods are left untouched so a partial rollup is never published. All
// week windows are recomputed before any month, so a cross-month week
// always reaches the month summary it files under. The pass is idempotent;
// running it twice changes nothing but generation timestamps.
func Backfill(w Walker, today time.Time) (*BackfillResult, error) {
	today = calendar.Normalize(today)
	p := NewProcessor(w)
	out := &BackfillResult{}

	mondays, months, err := collectWindows(w)
	if err != nil {
		return nil, err
	}

	for _, monday := range mondays {
		if !calendar.WeekElapsed(monday, today) {
			continue
		}
		res, err := p.RecomputeWeek(monday)
		if err != nil {
			return out, err
		}
		out.Skips = append(out.Skips, res.Skips...)
		if res.WeekWritten {
			out.WeeksWritten++
		}
	}

	for _, ym := range months {
		res, err := p.RecomputeMonth(ym.year, ym.month, today)
		if err != nil {
			return out, err
		}
		out.Skips = append(out.Skips, res.Skips...)
		if res.MonthWritten {
			out.MonthsWritten++
		}
	}

	logger.Info("backfill complete",
		"weeks_written", out.WeeksWritten, "months_written", out.MonthsWritten,
		"skips", len(out.Skips))
	return out, nil
}

type yearMonth struct {
	year  int
	month time.Month
}

// collectWindows resolves every bucket directory on disk to the Monday of
// its week window, deduplicated, plus the months whose rollups those
// windows feed. A stub bucket has no Monday of its own: its window is the
// one containing the month's 1st, which files under the previous month.
// That month is included even when it has no directories of its own, so a
// record whose only presence on disk is a stub bucket still reaches both a
// week and a month summary.
func collectWindows(w Walker) ([]time.Time, []yearMonth, error) {
	var mondays []time.Time
	seenMonday := make(map[time.Time]bool)
	var months []yearMonth
	seenMonth := make(map[yearMonth]bool)

	addMonth := func(ym yearMonth) {
		if !seenMonth[ym] {
			seenMonth[ym] = true
			months = append(months, ym)
		}
	}

	years, err := w.Years()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enumerate years: %w", err)
	}
	for _, year := range years {
		ms, err := w.Months(year)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to enumerate months: %w", err)
		}
		for _, month := range ms {
			addMonth(yearMonth{year, month})

			buckets, err := w.WeekBuckets(year, month)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to enumerate week buckets: %w", err)
			}
			for _, b := range buckets {
				monday, ok := b.Monday()
				if !ok {
					monday, _ = calendar.WeekWindow(calendar.Date(year, month, 1))
					addMonth(yearMonth{monday.Year(), monday.Month()})
				}
				if !seenMonday[monday] {
					seenMonday[monday] = true
					mondays = append(mondays, monday)
				}
			}
		}
	}
	return mondays, months, nil
}
