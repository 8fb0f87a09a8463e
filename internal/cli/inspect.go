package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/layoutkit/rect2lef/pkg/layers"
	"github.com/layoutkit/rect2lef/pkg/layout"
	"github.com/layoutkit/rect2lef/pkg/lef"
	"github.com/layoutkit/rect2lef/pkg/techconf"
)

// inspectCommand creates the inspect command, which shows how each rectangle
// of a cell would be emitted without writing anything.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts techOpts

	cmd := &cobra.Command{
		Use:               "inspect <input.rect>",
		Short:             "Show a cell's rectangles with pin class and output layers",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: rectFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := c.loadTech(&opts)
			if err != nil {
				return err
			}
			cell, err := layout.ReadCell(args[0])
			if err != nil {
				return err
			}
			printCellSummary(cell)
			fmt.Println(renderRectTable(cell, conf))
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

func printCellSummary(cell *layout.Cell) {
	b := cell.BBox
	printKeyValue("cell", cell.Name)
	printKeyValue("class", lef.Class(cell.Kind))
	printKeyValue("bbox", formatBox(b))
	printKeyValue("size", fmt.Sprintf("%d x %d", b.Width(), b.Height()))
	printKeyValue("pins", fmt.Sprintf("%d of %d rects", len(cell.Pins()), len(cell.Rects)))
}

// renderRectTable lays out one row per rectangle.
func renderRectTable(cell *layout.Cell, conf *techconf.Config) string {
	rows := make([][]string, 0, len(cell.Rects))
	unmapped := make(map[int]bool)
	for i, r := range cell.Rects {
		targets := layers.Resolve(r.Layer, conf)
		if len(targets) == 0 {
			unmapped[i] = true
		}
		rows = append(rows, []string{
			labelOrDash(r.Label),
			r.Layer,
			formatBox(r.Bounds),
			pinColumn(r, cell.Kind),
			targetsColumn(targets),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().PaddingRight(1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Label", "Layer", "Bounds", "Pin", "Output layers").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case unmapped[row]:
				return cellStyle.Foreground(colorDim)
			case col == 3 && cell.Rects[row].IsPin():
				return cellStyle.Foreground(colorGreen)
			}
			return cellStyle
		})

	return t.Render()
}

func formatBox(b layout.Box) string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.XMin, b.YMin, b.XMax, b.YMax)
}

func labelOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pinColumn(r layout.Rect, kind layout.Kind) string {
	if !r.IsPin() {
		return "OBS"
	}
	pc := lef.Classify(r, kind)
	s := pc.Direction + " " + pc.Use
	if pc.Abutment {
		s += " abut"
	}
	return s
}

func targetsColumn(targets []layers.Target) string {
	if len(targets) == 0 {
		return "unmapped"
	}
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = t.Name
		if t.Bloat != 0 {
			parts[i] += fmt.Sprintf(" +%d", t.Bloat)
		}
	}
	return strings.Join(parts, ", ")
}
