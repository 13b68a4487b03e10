package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/pipeline"
	"github.com/matzehuels/relviz/pkg/types"
)

type typesOpts struct {
	input       inputOpts
	kind        string // only list types of this kind
	interactive bool
}

// typesCommand creates the types command, which lists the loaded type
// hierarchy.
func (c *CLI) typesCommand() *cobra.Command {
	var opts typesOpts

	cmd := &cobra.Command{
		Use:   "types [facts...]",
		Short: "List the type hierarchy with effective attributes",
		Long: `Types loads the styles, plus any fact files given, and lists every type
with its kind, its linearisation (the order in which ancestors contribute
attributes) and its effective attributes and label.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.kind != "" && !slices.Contains(kindNames(), opts.kind) {
				return errors.New(errors.ErrCodeInvalidInput, "unknown kind %q (want %s)", opts.kind, strings.Join(kindNames(), ", "))
			}
			sources, err := c.inputs(cmd, opts.input, args, false)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			rows, err := loadTypeRows(sources, types.Kind(opts.kind))
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d types", len(rows)))

			if opts.interactive {
				_, err := tea.NewProgram(newTypeBrowser(rows), tea.WithAltScreen()).Run()
				return err
			}
			return writeTypeTable(cmd.OutOrStdout(), rows)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "only list types of this kind: "+strings.Join(kindNames(), ", "))
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the types interactively")

	return cmd
}

func kindNames() []string {
	return []string{
		string(types.KindElement), string(types.KindNode), string(types.KindCluster),
		string(types.KindEdge), string(types.KindContainment),
	}
}

// typeRow is one resolved type as the types command shows it.
type typeRow struct {
	Name          string
	Synonyms      []string
	Kind          types.Kind
	Parents       []string
	Linearisation []string
	Attrs         attr.Block // effective
	Label         string
	HasLabel      bool
	Pos           errors.Pos
}

// loadTypeRows registers the type declarations of sources and resolves
// every type, in declaration order. An empty kind keeps all types.
func loadTypeRows(sources []pipeline.Source, kind types.Kind) ([]typeRow, error) {
	files, err := pipeline.Parse(sources)
	if err != nil {
		return nil, err
	}
	reg, err := pipeline.Registry(files)
	if err != nil {
		return nil, err
	}
	res := types.NewResolver(reg)

	var rows []typeRow
	for _, d := range reg.Defs() {
		if kind != "" && d.Kind != kind {
			continue
		}
		anc, err := reg.Ancestors(d.Name())
		if err != nil {
			return nil, err
		}
		attrs, err := res.Attrs(d.Name())
		if err != nil {
			return nil, err
		}
		label, ok, err := res.Label(d.Name())
		if err != nil {
			return nil, err
		}
		lin := make([]string, len(anc))
		for i, a := range anc {
			lin[i] = a.Name()
		}
		rows = append(rows, typeRow{
			Name:          d.Name(),
			Synonyms:      d.Names[1:],
			Kind:          d.Kind,
			Parents:       d.Parents,
			Linearisation: lin,
			Attrs:         attrs,
			Label:         label,
			HasLabel:      ok,
			Pos:           d.Pos,
		})
	}
	return rows, nil
}

// labelText shows a label template with its escapes visible.
func (r typeRow) labelText() string {
	if !r.HasLabel {
		return "-"
	}
	return fmt.Sprintf("%q", r.Label)
}

func writeTypeTable(w io.Writer, rows []typeRow) error {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	data := make([][]string, len(rows))
	for i, r := range rows {
		name := r.Name
		if len(r.Synonyms) > 0 {
			name += " (" + strings.Join(r.Synonyms, ", ") + ")"
		}
		data[i] = []string{name, string(r.Kind), strings.Join(r.Linearisation, " > "), r.Attrs.String(), r.labelText()}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Kind", "Linearisation", "Attributes", "Label").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cell.Foreground(colorAccent)
			}
			return cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
