package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/haru2503/wakatime-log/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "wakalog",
	Short: "Archive WakaTime activity into a local, verifiable log",
	Long: "wakalog fetches daily WakaTime summaries into a plain-file log tree, " +
		"rolls them up into week and month summaries, and serves an interactive " +
		"dashboard over the result.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.RunTUI()
	},
}

func init() {
	rootCmd.AddCommand(commands.FetchCmd)
	rootCmd.AddCommand(commands.RollupCmd)
	rootCmd.AddCommand(commands.BackfillCmd)
	rootCmd.AddCommand(commands.ReindexCmd)
	rootCmd.AddCommand(commands.ReportCmd)
	rootCmd.AddCommand(commands.VerifyCmd)
	rootCmd.AddCommand(commands.TuiCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
