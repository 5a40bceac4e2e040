package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/daisen/internal/app"
)

// newComponentsCommand creates the components command.
func newComponentsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "components",
		Aliases: []string{"comps"},
		Short:   "List component names",
		Long: `List the names of the simulated components that own tasks in the
trace, one per line and sorted. Any of them can be passed to --where.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.OpenTrace(); err != nil {
				return err
			}

			out, err := c.LoadComponentNamesUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			for _, name := range out.Names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	return cmd
}
