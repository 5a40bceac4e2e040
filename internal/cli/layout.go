package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/daisen/internal/app"
	"github.com/runoshun/daisen/internal/axis"
	"github.com/runoshun/daisen/internal/domain"
	"github.com/runoshun/daisen/internal/usecase"
)

// Output formats of the layout command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Default container size of the layout command, in pixels.
const (
	defaultLayoutWidth  = 1000
	defaultLayoutHeight = 600
)

// layoutTask is the serialized form of one laid-out task.
// Fields are ordered to minimize memory padding.
type layoutTask struct {
	ID       string     `json:"id" yaml:"id"`
	ParentID string     `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Kind     string     `json:"kind" yaml:"kind"`
	What     string     `json:"what" yaml:"what"`
	Location string     `json:"location" yaml:"location"`
	Dim      domain.Dim `json:"dim" yaml:"dim"`
	Level    int        `json:"level" yaml:"level"`
	Lane     int        `json:"lane" yaml:"lane"`
}

// layoutDocument is the serialized result of the layout command.
type layoutDocument struct {
	Label    string            `json:"label" yaml:"label"`
	Dropped  []string          `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Tasks    []layoutTask      `json:"tasks" yaml:"tasks"`
	Window   domain.TimeWindow `json:"window" yaml:"window"`
	MaxLevel int               `json:"max_level" yaml:"max_level"`
}

// newLayoutCommand creates the layout command.
func newLayoutCommand(c *app.Container) *cobra.Command {
	var opts struct {
		format string
		query  queryFlags
		width  float64
		height float64
	}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed timeline layout",
		Long: `Compute the timeline layout of a trace window and print the
rectangle of every visible task.

The container is --width x --height pixels. Without --start and --end
the window covers every loaded task. Tasks whose rectangles are too small
to see are left out, except for top-level tasks.

Output formats:
  text  Table indented by nesting level (default)
  json  JSON document
  yaml  YAML document`,
		Example: `  # Layout of the whole trace
  daisen layout --trace trace.json

  # Layout of one component between 1ms and 2ms as JSON
  daisen layout --where GPU[0].SA[1] --start 0.001 --end 0.002 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("%w: %q (want text, json or yaml)", domain.ErrInvalidFormat, opts.format)
			}

			if err := c.OpenTrace(); err != nil {
				return err
			}

			out, err := c.ComputeLayoutUseCase().Execute(cmd.Context(), usecase.ComputeLayoutInput{
				Query:  opts.query.query(cmd),
				Width:  opts.width,
				Height: opts.height,
			})
			if err != nil {
				return err
			}

			if len(out.Dropped) > 0 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: dropped tasks in a parent cycle: %s\n",
					strings.Join(out.Dropped, ", "))
			}

			w := cmd.OutOrStdout()
			switch opts.format {
			case formatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(newLayoutDocument(out))
			case formatYAML:
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(newLayoutDocument(out)); err != nil {
					return err
				}
				return enc.Close()
			default:
				printLayout(w, out)
				return nil
			}
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.width, "width", defaultLayoutWidth, "Container width in pixels")
	f.Float64Var(&opts.height, "height", defaultLayoutHeight, "Container height in pixels")
	f.StringVarP(&opts.format, "format", "o", formatText, "Output format: text, json or yaml")
	opts.query.register(f, false)

	return cmd
}

// newLayoutDocument converts the use case output to its serialized form.
func newLayoutDocument(out *usecase.ComputeLayoutOutput) layoutDocument {
	doc := layoutDocument{
		Label:    out.Label,
		Window:   out.Window,
		MaxLevel: out.MaxLevel,
		Dropped:  out.Dropped,
		Tasks:    make([]layoutTask, 0, len(out.Tasks)),
	}
	for _, t := range out.Tasks {
		if t.Dim == nil {
			continue
		}
		doc.Tasks = append(doc.Tasks, layoutTask{
			ID:       t.ID,
			ParentID: t.ParentID,
			Kind:     t.Kind,
			What:     t.What,
			Location: t.Location,
			Dim:      *t.Dim,
			Level:    t.Level,
			Lane:     t.YIndex,
		})
	}
	return doc
}

// printLayout prints the layout as an indented table.
func printLayout(w io.Writer, out *usecase.ComputeLayoutOutput) {
	label := out.Label
	if label == "" {
		label = "-"
	}
	_, _ = fmt.Fprintf(w, "Label:  %s\n", label)
	_, _ = fmt.Fprintf(w, "Window: %s - %s\n\n",
		axis.FormatTime(out.Window.StartTime), axis.FormatTime(out.Window.EndTime))

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tLANE\tLOCATION\tCATEGORY\tX\tY\tWIDTH\tHEIGHT")
	for _, t := range treeOrder(out.Tasks) {
		indent := strings.Repeat("  ", max(t.Level-1, 0))
		_, _ = fmt.Fprintf(tw, "%s%s\t%d\t%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\n",
			indent, t.ID, t.YIndex, dashIfEmpty(t.Location), t.Category(),
			t.Dim.X, t.Dim.Y, t.Dim.Width, t.Dim.Height)
	}
}

// treeOrder returns the visible tasks that have geometry in depth-first
// order, each parent followed by its visible descendants.
func treeOrder(visible []*domain.Task) []*domain.Task {
	keep := make(map[*domain.Task]bool, len(visible))
	for _, t := range visible {
		if t.Dim != nil {
			keep[t] = true
		}
	}

	ordered := make([]*domain.Task, 0, len(keep))
	var visit func(t *domain.Task)
	visit = func(t *domain.Task) {
		if !keep[t] {
			return
		}
		ordered = append(ordered, t)
		for _, child := range t.SubTasks {
			visit(child)
		}
	}
	for _, t := range visible {
		if t.Level == 1 {
			visit(t)
		}
	}
	return ordered
}

// dashIfEmpty returns "-" for an empty string.
func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
