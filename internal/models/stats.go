package models

// DailyPoint is one day of the usage index series.
type DailyPoint struct {
	Date         string
	TotalSeconds float64
}

// IndexTotals summarizes everything the usage index has seen.
type IndexTotals struct {
	TotalSeconds   float64
	DaysWithData   int
	FirstDate      string
	LastDate       string
	AverageSeconds float64
}

// Streaks reports consecutive-day activity runs ending at (or before) today.
type Streaks struct {
	Current int
	Longest int
}

// MonthStat is one month's row from the usage index.
type MonthStat struct {
	Year         int
	Month        int
	TotalSeconds float64
	DaysWithData int
	TotalWeeks   int
}
