package commands

import (
	"github.com/spf13/cobra"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/report"
)

// ReportCmd renders markdown reports from stored summaries.
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render markdown reports from stored summaries",
}

var reportDayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Render a day record as markdown",
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

		rec, err := mgr.Store().ReadDay(date)
		if err != nil {
			return err
		}
		cmd.Print(report.DayMarkdown(rec))
		return nil
	},
}

var reportWeekCmd = &cobra.Command{
	Use:   "week [YYYY-MM-DD]",
	Short: "Render the week summary containing a date",
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

		sum, err := mgr.Store().ReadWeek(calendar.BucketOf(date))
		if err != nil {
			return err
		}
		cmd.Print(report.WeekMarkdown(sum))
		return nil
	},
}

var reportMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Render a month summary",
	Args:  cobra.MaximumNArgs(1),
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

		sum, err := mgr.Store().ReadMonth(year, month)
		if err != nil {
			return err
		}
		cmd.Print(report.MonthMarkdown(sum))
		return nil
	},
}

func init() {
	ReportCmd.AddCommand(reportDayCmd)
	ReportCmd.AddCommand(reportWeekCmd)
	ReportCmd.AddCommand(reportMonthCmd)
}
