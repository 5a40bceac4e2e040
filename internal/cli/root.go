// Package cli provides the command-line interface for daisen.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/daisen/internal/app"
	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/tui"
)

// Command group IDs.
const (
	groupView  = "view"
	groupSetup = "setup"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// traceFlags holds the persistent flags that override the [trace] section.
type traceFlags struct {
	source string
	path   string
	url    string
}

// apply overrides cfg with the flags that were given.
// --url implies the http source and --trace the file source unless
// --source says otherwise.
func (f traceFlags) apply(cfg *domain.TraceConfig) {
	if f.url != "" {
		cfg.URL = f.url
		cfg.Source = domain.SourceHTTP
	}
	if f.path != "" {
		cfg.Path = f.path
		cfg.Source = domain.SourceFile
	}
	if f.source != "" {
		cfg.Source = f.source
	}
}

// NewRootCommand creates the root command for daisen.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var flags traceFlags

	root := &cobra.Command{
		Use:   "daisen [trace-file]",
		Short: "Terminal timeline viewer for simulation traces",
		Long: `daisen renders the hierarchical task timeline of a simulation trace
in the terminal.

Tasks are nested under their parents and stacked into lanes so that
overlapping siblings never share a row. Drag or scroll to pan, scroll
vertically to zoom, and the view reloads the visible window once the
gesture settles.

Running daisen without a subcommand opens the interactive viewer.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			if cmd == cmd.Root() && len(args) == 1 {
				flags.path = args[0]
			}
			flags.apply(&c.AppConfig.Trace)

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.path, "trace", "", "Trace file to read (implies --source file)")
	pf.StringVar(&flags.url, "url", "", "Trace API base URL (implies --source http)")
	pf.StringVar(&flags.source, "source", "", "Trace source: file or http")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupView, Title: "View Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// View commands
	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupView

	layoutCmd := newLayoutCommand(c)
	layoutCmd.GroupID = groupView

	tasksCmd := newTasksCommand(c)
	tasksCmd.GroupID = groupView

	componentsCmd := newComponentsCommand(c)
	componentsCmd.GroupID = groupView

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		tuiCmd,
		layoutCmd,
		tasksCmd,
		componentsCmd,
		configCmd,
	)

	return root
}

// launchTUI opens the trace and runs the interactive viewer until it quits.
func launchTUI(c *app.Container) error {
	if err := c.OpenTrace(); err != nil {
		return err
	}
	model := tui.New(c)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
