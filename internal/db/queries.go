package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/models"
)

// IndexDay upserts one day's totals into the index. The top language and
// project are denormalized for cheap listing queries.
func (db *DB) IndexDay(rec *models.DayRecord) error {
	topLanguage := topName(rec.Summary.Breakdowns[models.KindLanguages])
	topProject := topName(rec.Summary.Breakdowns[models.KindProjects])

	query := `
	INSERT INTO daily_totals (date, total_seconds, top_language, top_project, fetched_at, updated_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(date) DO UPDATE SET
		total_seconds = excluded.total_seconds,
		top_language = excluded.top_language,
		top_project = excluded.top_project,
		fetched_at = excluded.fetched_at,
		updated_at = CURRENT_TIMESTAMP
	`
	_, err := db.ExecContext(context.Background(), query,
		rec.Summary.Date,
		rec.Summary.TotalSeconds,
		nullString(topLanguage),
		nullString(topProject),
		rec.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to index day %s: %w", rec.Summary.Date, err)
	}
	return nil
}

// IndexWeek upserts a week rollup row keyed by its bucket.
func (db *DB) IndexWeek(b calendar.Bucket, sum *models.WeekSummary) error {
	query := `
	INSERT INTO week_rollups (year, month, week, week_start, week_end, total_seconds, days_with_data, generated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(year, month, week) DO UPDATE SET
		week_start = excluded.week_start,
		week_end = excluded.week_end,
		total_seconds = excluded.total_seconds,
		days_with_data = excluded.days_with_data,
		generated_at = excluded.generated_at
	`
	_, err := db.ExecContext(context.Background(), query,
		b.Year, int(b.Month), b.Week,
		sum.WeekStart, sum.WeekEnd,
		sum.TotalSeconds, sum.DaysWithData,
		sum.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to index week %s: %w", b, err)
	}
	return nil
}

// IndexMonth upserts a month rollup row.
func (db *DB) IndexMonth(year int, month time.Month, sum *models.MonthSummary) error {
	query := `
	INSERT INTO month_rollups (year, month, total_seconds, days_with_data, total_weeks, generated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(year, month) DO UPDATE SET
		total_seconds = excluded.total_seconds,
		days_with_data = excluded.days_with_data,
		total_weeks = excluded.total_weeks,
		generated_at = excluded.generated_at
	`
	_, err := db.ExecContext(context.Background(), query,
		year, int(month),
		sum.TotalSeconds, sum.TotalDaysWithData, sum.TotalWeeks,
		sum.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to index month %d-%02d: %w", year, month, err)
	}
	return nil
}

// GetDailySeries returns the last N days of daily totals in date order.
// days <= 0 returns the whole series.
func (db *DB) GetDailySeries(days int) ([]models.DailyPoint, error) {
	query := `
	SELECT date, total_seconds FROM daily_totals
	ORDER BY date DESC
	`
	args := []any{}
	if days > 0 {
		query += " LIMIT ?"
		args = append(args, days)
	}

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []models.DailyPoint
	for rows.Next() {
		var p models.DailyPoint
		if err := rows.Scan(&p.Date, &p.TotalSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan daily point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest-first from the LIMIT query; callers want date order.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

// GetTotals returns the index-wide totals, or zero values on an empty index.
func (db *DB) GetTotals() (*models.IndexTotals, error) {
	query := `
	SELECT
		COALESCE(SUM(total_seconds), 0),
		COUNT(*),
		COALESCE(MIN(date), ''),
		COALESCE(MAX(date), '')
	FROM daily_totals
	WHERE total_seconds > 0
	`
	totals := &models.IndexTotals{}
	err := db.QueryRowContext(context.Background(), query).Scan(
		&totals.TotalSeconds, &totals.DaysWithData, &totals.FirstDate, &totals.LastDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	if totals.DaysWithData > 0 {
		totals.AverageSeconds = totals.TotalSeconds / float64(totals.DaysWithData)
	}
	return totals, nil
}

// GetStreaks computes the current and longest consecutive-day runs of
// nonzero activity. The current streak counts back from today, allowing the
// still-unfetched current day.
func (db *DB) GetStreaks(today time.Time) (*models.Streaks, error) {
	query := `
	SELECT date FROM daily_totals
	WHERE total_seconds > 0
	ORDER BY date
	`
	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query streak dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan streak date: %w", err)
		}
		date, err := time.Parse(calendar.DateFormat, dateStr)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return computeStreaks(dates, calendar.Normalize(today)), nil
}

func computeStreaks(dates []time.Time, today time.Time) *models.Streaks {
	streaks := &models.Streaks{}
	if len(dates) == 0 {
		return streaks
	}

	run := 1
	streaks.Longest = 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > streaks.Longest {
			streaks.Longest = run
		}
	}

	// The trailing run counts as current only if it reaches today or
	// yesterday.
	last := dates[len(dates)-1]
	if gap := today.Sub(last); gap <= 24*time.Hour {
		streaks.Current = run
	}
	return streaks
}

// GetMonthlyStats returns up to limit months of rollup rows, newest first.
func (db *DB) GetMonthlyStats(limit int) ([]models.MonthStat, error) {
	query := `
	SELECT year, month, total_seconds, days_with_data, total_weeks
	FROM month_rollups
	ORDER BY year DESC, month DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []models.MonthStat
	for rows.Next() {
		var s models.MonthStat
		if err := rows.Scan(&s.Year, &s.Month, &s.TotalSeconds, &s.DaysWithData, &s.TotalWeeks); err != nil {
			return nil, fmt.Errorf("failed to scan month stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// topName returns the name of the largest entry in a breakdown, which
// arrives pre-sorted by seconds.
func topName(b models.Breakdown) string {
	if len(b) == 0 {
		return ""
	}
	return b[0].Name
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
