// Package rollup aggregates daily activity records into weekly and monthly
// summaries and decides when those rollups are due.
package rollup

import (
	"sort"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/models"
)

// AggregateWeek builds a WeekSummary for the Monday..Sunday window starting
// at monday from the day summaries that are present. Missing days are
// simply not members; they are never zero-filled. The result depends only
// on the inputs (plus generatedAt), so regenerating a week is idempotent.
func AggregateWeek(days []models.DailySummary, monday time.Time, generatedAt time.Time) models.WeekSummary {
	monday = calendar.Normalize(monday)
	sunday := monday.AddDate(0, 0, 6)

	var total float64
	for _, d := range days {
		total += d.TotalSeconds
	}

	daysWithData := len(days)
	var dailyAvg float64
	if daysWithData > 0 {
		dailyAvg = total / float64(daysWithData)
	}

	sources := make([]map[models.BreakdownKind]models.Breakdown, 0, len(days))
	for _, d := range days {
		sources = append(sources, d.Breakdowns)
	}

	return models.WeekSummary{
		WeekStart:           monday.Format(calendar.DateFormat),
		WeekEnd:             sunday.Format(calendar.DateFormat),
		TotalSeconds:        total,
		DailyAverageSeconds: dailyAvg,
		Days:                append([]models.DailySummary(nil), days...),
		DaysWithData:        daysWithData,
		TotalDays:           7,
		Breakdowns:          mergeBreakdowns(sources),
		GeneratedAt:         generatedAt,
	}
}

// AggregateMonth builds a MonthSummary from already-persisted week
// summaries. Weeks without any member days contribute nothing and are not
// counted; the aggregator never re-reads daily data to reconstruct them.
func AggregateMonth(weeks []models.WeekSummary, year int, month time.Month, generatedAt time.Time) models.MonthSummary {
	members := make([]models.WeekSummary, 0, len(weeks))
	for _, w := range weeks {
		if w.DaysWithData == 0 {
			continue
		}
		members = append(members, w)
	}

	var total float64
	var daysWithData int
	sources := make([]map[models.BreakdownKind]models.Breakdown, 0, len(members))
	for _, w := range members {
		total += w.TotalSeconds
		daysWithData += w.DaysWithData
		sources = append(sources, w.Breakdowns)
	}

	totalWeeks := len(members)
	var weeklyAvg, dailyAvg float64
	if totalWeeks > 0 {
		weeklyAvg = total / float64(totalWeeks)
	}
	if daysWithData > 0 {
		dailyAvg = total / float64(daysWithData)
	}

	return models.MonthSummary{
		Year:                 year,
		Month:                int(month),
		MonthName:            month.String(),
		TotalSeconds:         total,
		WeeklyAverageSeconds: weeklyAvg,
		DailyAverageSeconds:  dailyAvg,
		Weeks:                members,
		TotalWeeks:           totalWeeks,
		TotalDaysWithData:    daysWithData,
		TotalDaysInMonth:     calendar.DaysIn(year, month),
		Breakdowns:           mergeBreakdowns(sources),
		GeneratedAt:          generatedAt,
	}
}

// mergeBreakdowns unions breakdown entries across child records by name,
// summing seconds per name and recomputing each percent from the merged
// seconds. Child percentages are never averaged: they are not linearly
// averageable when days are missing.
func mergeBreakdowns(sources []map[models.BreakdownKind]models.Breakdown) map[models.BreakdownKind]models.Breakdown {
	merged := make(map[models.BreakdownKind]models.Breakdown)
	for _, kind := range models.BreakdownKinds() {
		totals := make(map[string]float64)
		for _, src := range sources {
			for _, item := range src[kind] {
				totals[item.Name] += item.TotalSeconds
			}
		}
		if len(totals) == 0 {
			continue
		}

		var kindTotal float64
		for _, secs := range totals {
			kindTotal += secs
		}

		items := make(models.Breakdown, 0, len(totals))
		for name, secs := range totals {
			var percent float64
			if kindTotal > 0 {
				percent = secs / kindTotal * 100
			}
			items = append(items, models.BreakdownItem{
				Name:         name,
				TotalSeconds: secs,
				Percent:      percent,
			})
		}
		sortBreakdown(items)
		merged[kind] = items
	}
	return merged
}

// sortBreakdown orders entries by seconds descending, ties broken by name
// ascending, so regenerated output diffs cleanly.
func sortBreakdown(items models.Breakdown) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].TotalSeconds != items[j].TotalSeconds {
			return items[i].TotalSeconds > items[j].TotalSeconds
		}
		return items[i].Name < items[j].Name
	})
}
