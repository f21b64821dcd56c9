package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haru2503/wakatime-log/internal/calendar"
	"github.com/haru2503/wakatime-log/internal/wakatime"
)

// VerifyCmd checks the authenticity proof of a stored day record.
var VerifyCmd = &cobra.Command{
	Use:   "verify [YYYY-MM-DD]",
	Short: "Verify the authenticity proof of a day record",
	Long: "Recompute the content hash of a stored day record and compare it " +
		"against the proof captured at fetch time.",
	Args: cobra.MaximumNArgs(1),
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

		ok, err := wakatime.Verify(rec)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: content hash mismatch, record was modified after fetch",
				date.Format(calendar.DateFormat))
		}

		cmd.Printf("%s: proof verified", date.Format(calendar.DateFormat))
		if rec.Proof != nil && len(rec.Proof.Witnesses) > 0 {
			cmd.Printf(" (%d time witnesses)", len(rec.Proof.Witnesses))
		}
		cmd.Println()
		return nil
	},
}
