package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/haru2503/wakatime-log/internal/app"
	"github.com/haru2503/wakatime-log/internal/ui/tabs/dashboard"
	"github.com/haru2503/wakatime-log/internal/ui/tabs/history"
	"github.com/haru2503/wakatime-log/internal/ui/tabs/info"
)

// TuiCmd launches the interactive dashboard.
var TuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTUI()
	},
}

// RunTUI builds the service manager and runs the Bubble Tea program until
// the user quits or the process is signalled.
func RunTUI() error {
	cfg, mgr, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()

	if err := mgr.StartWatcher(); err != nil {
		return fmt.Errorf("failed to watch log tree: %w", err)
	}

	model := app.NewModel(mgr)
	state := model.GetState()
	model.SetTabs([]app.Tab{
		dashboard.New(state),
		history.New(state, mgr),
		info.New(state, cfg),
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
