package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/daisen/internal/app"
	"github.com/runoshun/daisen/internal/axis"
	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/usecase"
)

// newTasksCommand creates the tasks command for listing raw task records.
func newTasksCommand(c *app.Container) *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List task records",
		Long: `List the task records of a trace, ordered by start time.

Tasks overlapping [--start, --end] are shown. Filters combine with AND.`,
		Example: `  # Children of one task
  daisen tasks --parent 42

  # Tasks of one component in the first millisecond
  daisen tasks --where GPU[0].SA[1] --end 0.001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.OpenTrace(); err != nil {
				return err
			}

			out, err := c.LoadTasksUseCase().Execute(cmd.Context(), usecase.LoadTasksInput{
				Query: query.query(cmd),
			})
			if err != nil {
				return err
			}

			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	query.register(cmd.Flags(), true)

	return cmd
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tPARENT\tLOCATION\tCATEGORY\tSTART\tEND\tDURATION")

	// Rows
	for _, t := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			dashIfEmpty(t.ParentID),
			dashIfEmpty(t.Location),
			t.Category(),
			axis.FormatTime(t.StartTime),
			axis.FormatTime(t.EndTime),
			axis.FormatTime(t.Duration()),
		)
	}
}
