package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/rollup"
)

var fetchDays int

// FetchCmd pulls one or more days from the WakaTime API into the log tree.
var FetchCmd = &cobra.Command{
	Use:   "fetch [YYYY-MM-DD]",
	Short: "Fetch daily activity from WakaTime",
	Long: "Fetch the daily summary for a date (default today), write it to the " +
		"log tree and regenerate any rollups that became due.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		end, err := parseDate(arg)
		if err != nil {
			return err
		}

		cfg, mgr, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = mgr.Close() }()

		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		days := fetchDays
		if days < 1 {
			days = 1
		}

		ctx := context.Background()
		for i := days - 1; i >= 0; i-- {
			date := end.AddDate(0, 0, -i)
			res, err := mgr.FetchDay(ctx, date)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", date.Format(calendar.DateFormat), err)
			}
			printResult(cmd, res)
		}
		return nil
	},
}

func init() {
	FetchCmd.Flags().IntVarP(&fetchDays, "days", "n", 1,
		"fetch this many days ending at the given date")
}

// printResult reports what one processed date produced.
func printResult(cmd *cobra.Command, res *rollup.Result) {
	date := res.Date.Format(calendar.DateFormat)
	switch {
	case res.DayPresent:
		cmd.Printf("%s: recorded\n", date)
	default:
		cmd.Printf("%s: no activity\n", date)
	}
	if res.WeekWritten {
		cmd.Printf("  week rollup written: %s\n", res.WeekBucket)
	}
	if res.MonthWritten {
		cmd.Printf("  month rollup written: %s %d\n", res.Month, res.MonthYear)
	}
	for _, skip := range res.Skips {
		cmd.Printf("  skipped %s: %s\n", skip.Key, skip.Reason)
	}
}
