package main

import (
	"fmt"

	"pomodoro/internal/platform"
	"pomodoro/internal/ui/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts, platform.NewService())
			if err != nil {
				return err
			}
			return runTUI(rt)
		},
	}
}

func runTUI(rt *runtime) error {
	// Query the background before the input loop starts reading stdin.
	_ = lipgloss.HasDarkBackground()

	defer rt.keeper.Shutdown()
	events := rt.keeper.Subscribe(32)
	program := tea.NewProgram(terminal.New(rt.keeper, events, rt.config.Presets), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
