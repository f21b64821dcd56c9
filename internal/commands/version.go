package commands

import (
	"github.com/spf13/cobra"

	"github.com/haru2503/wakatime-log/internal/version"
)

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
