// Package models defines the summary record types shared by the fetcher,
// the rollup engine, the store and the UI.
package models

import "time"

// BreakdownKind identifies one of the category dimensions reported for a
// day of activity.
type BreakdownKind string

const (
	// KindLanguages breaks time down by programming language.
	KindLanguages BreakdownKind = "languages"
	// KindCategories breaks time down by activity category (coding, debugging, ...).
	KindCategories BreakdownKind = "categories"
	// KindProjects breaks time down by project.
	KindProjects BreakdownKind = "projects"
	// KindEditors breaks time down by editor.
	KindEditors BreakdownKind = "editors"
	// KindMachines breaks time down by machine.
	KindMachines BreakdownKind = "machines"
	// KindOperatingSystems breaks time down by operating system.
	KindOperatingSystems BreakdownKind = "operating_systems"
)

// BreakdownKinds lists every breakdown dimension in display order.
func BreakdownKinds() []BreakdownKind {
	return []BreakdownKind{
		KindLanguages,
		KindCategories,
		KindProjects,
		KindEditors,
		KindMachines,
		KindOperatingSystems,
	}
}

// Title returns the human-readable heading for a breakdown kind.
func (k BreakdownKind) Title() string {
	switch k {
	case KindLanguages:
		return "Languages"
	case KindCategories:
		return "Categories"
	case KindProjects:
		return "Projects"
	case KindEditors:
		return "Editors"
	case KindMachines:
		return "Machines"
	case KindOperatingSystems:
		return "Operating Systems"
	default:
		return string(k)
	}
}

// BreakdownItem is one named category's share of recorded time.
type BreakdownItem struct {
	Name         string  `json:"name"`
	TotalSeconds float64 `json:"total_seconds"`
	Percent      float64 `json:"percent"`
}

// Breakdown is an ordered list of category shares. Names are unique within
// one breakdown; consumers must look entries up by name, not by position.
type Breakdown []BreakdownItem

// Find returns the entry with the given name, or false if absent.
func (b Breakdown) Find(name string) (BreakdownItem, bool) {
	for _, item := range b {
		if item.Name == name {
			return item, true
		}
	}
	return BreakdownItem{}, false
}

// TotalSeconds sums the recorded seconds across all entries.
func (b Breakdown) TotalSeconds() float64 {
	var total float64
	for _, item := range b {
		total += item.TotalSeconds
	}
	return total
}

// DailySummary is the per-day activity record. It is created by the fetch
// collaborator and treated as immutable once written for a past date.
type DailySummary struct {
	Date         string                     `json:"date"`
	TotalSeconds float64                    `json:"total_seconds"`
	Breakdowns   map[BreakdownKind]Breakdown `json:"breakdowns"`
}

// Time parses the summary's date field.
func (d *DailySummary) Time() (time.Time, error) {
	return time.Parse("2006-01-02", d.Date)
}

// WeekSummary aggregates the daily summaries of one Monday..Sunday window.
// Regenerated wholesale each time its week is rolled up; never patched.
type WeekSummary struct {
	WeekStart           string                     `json:"week_start_date"`
	WeekEnd             string                     `json:"week_end_date"`
	TotalSeconds        float64                    `json:"total_seconds"`
	DailyAverageSeconds float64                    `json:"daily_average_seconds"`
	Days                []DailySummary             `json:"member_days"`
	DaysWithData        int                        `json:"days_with_data"`
	TotalDays           int                        `json:"total_days"`
	Breakdowns          map[BreakdownKind]Breakdown `json:"breakdowns"`
	GeneratedAt         time.Time                  `json:"generated_at"`
}

// MonthSummary aggregates the week summaries filed under one month.
// Built only from already-persisted week rollups.
type MonthSummary struct {
	Year                 int                        `json:"year"`
	Month                int                        `json:"month"`
	MonthName            string                     `json:"month_name"`
	TotalSeconds         float64                    `json:"total_seconds"`
	WeeklyAverageSeconds float64                    `json:"weekly_average_seconds"`
	DailyAverageSeconds  float64                    `json:"daily_average_seconds"`
	Weeks                []WeekSummary              `json:"member_weeks"`
	TotalWeeks           int                        `json:"total_weeks"`
	TotalDaysWithData    int                        `json:"total_days_with_data"`
	TotalDaysInMonth     int                        `json:"total_days_in_month"`
	Breakdowns           map[BreakdownKind]Breakdown `json:"breakdowns"`
	GeneratedAt          time.Time                  `json:"generated_at"`
}
