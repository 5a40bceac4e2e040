package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/daisen/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// This command is the same as running `daisen` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive timeline viewer",
		Long: `Launch the interactive timeline viewer.

The top pane shows the task hierarchy of the trace. With [view]
component_pane enabled, a second pane shows the tasks of one component
on the same time axis. Both panes pan and zoom together.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
	return cmd
}
