package services

import (
	"strings"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/models"
)

// MonthPace estimates where the current month will land if the
// month-to-date daily average holds.
type MonthPace struct {
	Year             int
	Month            time.Month
	SecondsToDate    float64
	DaysElapsed      int
	DaysWithData     int
	DailyAverage     float64
	ProjectedSeconds float64
}

// ProjectMonth computes the running pace for the month containing today
// from the indexed daily series. Days without data still count as elapsed:
// the projection reflects actual habit, not best-case throughput.
func ProjectMonth(points []models.DailyPoint, today time.Time) *MonthPace {
	today = calendar.Normalize(today)
	prefix := today.Format("2006-01") + "-"

	pace := &MonthPace{
		Year:        today.Year(),
		Month:       today.Month(),
		DaysElapsed: today.Day(),
	}

	for _, p := range points {
		if !strings.HasPrefix(p.Date, prefix) {
			continue
		}
		pace.SecondsToDate += p.TotalSeconds
		if p.TotalSeconds > 0 {
			pace.DaysWithData++
		}
	}

	if pace.DaysElapsed > 0 {
		pace.DailyAverage = pace.SecondsToDate / float64(pace.DaysElapsed)
	}
	pace.ProjectedSeconds = pace.DailyAverage * float64(calendar.DaysIn(today.Year(), today.Month()))

	return pace
}
