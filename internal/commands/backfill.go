package commands

import (
	"github.com/spf13/cobra"
)

// BackfillCmd regenerates every elapsed rollup in the log tree.
var BackfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Regenerate all elapsed rollups",
	Long: "Walk the whole log tree and regenerate week summaries for every " +
		"completed week and month summaries for every elapsed month, then " +
		"rebuild the usage index. In-progress periods are skipped.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = mgr.Close() }()

		res, err := mgr.Backfill()
		if err != nil {
			return err
		}

		cmd.Printf("weeks written:  %d\n", res.WeeksWritten)
		cmd.Printf("months written: %d\n", res.MonthsWritten)
		for _, skip := range res.Skips {
			cmd.Printf("skipped %s: %s\n", skip.Key, skip.Reason)
		}
		return nil
	},
}

// ReindexCmd rebuilds the usage index from the log tree.
var ReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the usage index from disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = mgr.Close() }()

		if err := mgr.Reindex(); err != nil {
			return err
		}
		cmd.Println("usage index rebuilt")
		return nil
	},
}
