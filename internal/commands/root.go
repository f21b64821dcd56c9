// Package commands defines the wakalog CLI commands.
package commands

import (
	"fmt"
	"time"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/config"
	"github.com/haru2503/wakatime-log/internal/logger"
	"github.com/haru2503/wakatime-log/internal/services"
)

// setup loads the configuration and builds a service manager for a batch
// command. The caller owns the manager and must Close it.
func setup() (*config.Config, *services.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, mgr, nil
}

// parseDate accepts a YYYY-MM-DD argument, defaulting to today when empty.
func parseDate(arg string) (time.Time, error) {
	if arg == "" {
		return calendar.Normalize(time.Now()), nil
	}
	d, err := time.Parse(calendar.DateFormat, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", arg)
	}
	return d, nil
}

// parseMonth accepts a YYYY-MM argument, defaulting to the current month
// when empty.
func parseMonth(arg string) (int, time.Month, error) {
	if arg == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	d, err := time.Parse("2006-01", arg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", arg)
	}
	return d.Year(), d.Month(), nil
}
