package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/runoshun/daisen/internal/domain"
)

// queryFlags holds the trace query flags shared by the view commands.
type queryFlags struct {
	where    string
	id       string
	parentID string
	start    float64
	end      float64
}

// register adds the flags to fs. withIDs adds --id and --parent.
func (f *queryFlags) register(fs *pflag.FlagSet, withIDs bool) {
	fs.StringVar(&f.where, "where", "", "Only tasks of this component")
	fs.Float64Var(&f.start, "start", 0, "Window start in seconds (default: trace start)")
	fs.Float64Var(&f.end, "end", 0, "Window end in seconds (default: trace end)")
	if withIDs {
		fs.StringVar(&f.id, "id", "", "Only the task with this ID")
		fs.StringVar(&f.parentID, "parent", "", "Only children of this task")
	}
}

// query builds the trace query. Window bounds are set only when the
// corresponding flag was given.
func (f *queryFlags) query(cmd *cobra.Command) domain.TraceQuery {
	q := domain.TraceQuery{
		Where:    f.where,
		ID:       f.id,
		ParentID: f.parentID,
	}
	if cmd.Flags().Changed("start") {
		start := f.start
		q.StartTime = &start
	}
	if cmd.Flags().Changed("end") {
		end := f.end
		q.EndTime = &end
	}
	return q
}
