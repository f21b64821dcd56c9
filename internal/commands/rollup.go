package commands

import (
	"github.com/spf13/cobra"
)

// RollupCmd regenerates week and month summaries on demand.
var RollupCmd = &cobra.Command{
	Use:   "rollup",
	Short: "Regenerate week or month rollups",
	Long: "Regenerate rollup summaries from the day records on disk. Rollups " +
		"are rebuilt from scratch, so re-running is always safe.",
}

var rollupDayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Run the rollup boundaries for a date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		date, err := parseDate(arg)
		if err != nil {
			return err
		}

		_, mgr, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = mgr.Close() }()

		res, err := mgr.ProcessDate(date)
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

var rollupWeekCmd = &cobra.Command{
	Use:   "week [YYYY-MM-DD]",
	Short: "Rebuild the week rollup containing a date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		date, err := parseDate(arg)
		if err != nil {
			return err
		}

		_, mgr, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = mgr.Close() }()

		res, err := mgr.RecomputeWeek(date)
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

var rollupMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Rebuild a month rollup",
	Long: "Rebuild the month summary from its week summaries. A month that " +
		"has not fully elapsed yet is left untouched.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		year, month, err := parseMonth(arg)
		if err != nil {
			return err
		}

		_, mgr, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = mgr.Close() }()

		res, err := mgr.RecomputeMonth(year, month)
		if err != nil {
			return err
		}
		if !res.MonthWritten {
			cmd.Printf("%s %d: not rolled up (month not elapsed or no data)\n", month, year)
			return nil
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	RollupCmd.AddCommand(rollupDayCmd)
	RollupCmd.AddCommand(rollupWeekCmd)
	RollupCmd.AddCommand(rollupMonthCmd)
}
