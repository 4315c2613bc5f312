// Package show prints a whiteboard as a plain table.
package show

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/whiteboard/pkg/board"
	"tableflip.dev/whiteboard/pkg/runner/source"
	"tableflip.dev/whiteboard/pkg/task"
)

// Show renders the board focused on Browse, a path of task identities.
type Show struct {
	File   string
	Demo   bool
	Browse []string
	JSON   bool

	// Output defaults to color.Output.
	Output io.Writer
}

// Do loads the tree and prints the board.
func (s *Show) Do(ctx context.Context) error {
	root, err := source.Load(s.File, s.Demo)
	if err != nil {
		return err
	}
	path, err := source.Browse(root, s.Browse)
	if err != nil {
		return err
	}
	bd := board.New(root, nil)
	for _, node := range path {
		bd.Browse(node)
	}
	if s.JSON {
		return s.PrintJSON(bd.Layout())
	}
	s.Print(bd.Layout())
	return nil
}

// Summary is the JSON form of a layout.
type Summary struct {
	Breadcrumbs []string      `json:"breadcrumbs"`
	Focus       string        `json:"focus"`
	Columns     []ColumnCount `json:"columns"`
	Rows        []RowSummary  `json:"rows"`
}

type ColumnCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type RowSummary struct {
	Task      string              `json:"task"`
	Identity  string              `json:"identity"`
	Collapsed bool                `json:"collapsed,omitempty"`
	Cells     map[string][]string `json:"cells"`
	Done      int                 `json:"done"`
	Total     int                 `json:"total"`
}

// Summarize flattens l to labels.
func Summarize(l board.Layout) Summary {
	sum := Summary{
		Breadcrumbs: make([]string, 0, len(l.Header.Breadcrumbs)),
		Focus:       l.Header.Line,
		Columns:     make([]ColumnCount, 0, len(l.Header.Columns)),
		Rows:        make([]RowSummary, 0, len(l.Rows)),
	}
	for _, c := range l.Header.Breadcrumbs {
		sum.Breadcrumbs = append(sum.Breadcrumbs, c.Label())
	}
	for _, c := range l.Header.Columns {
		sum.Columns = append(sum.Columns, ColumnCount{Status: c.Status, Count: c.Count})
	}
	for _, r := range l.Rows {
		row := RowSummary{
			Task:      r.Line,
			Identity:  r.Node.Identity(),
			Collapsed: r.Collapsed,
			Cells:     make(map[string][]string, len(r.Cells)),
			Done:      r.Done,
			Total:     r.Total,
		}
		for _, cell := range r.Cells {
			labels := make([]string, 0, len(cell.Children))
			for _, c := range cell.Children {
				labels = append(labels, c.Label())
			}
			row.Cells[cell.Status] = labels
		}
		sum.Rows = append(sum.Rows, row)
	}
	return sum
}

// PrintJSON writes the summary of l as indented JSON.
func (s *Show) PrintJSON(l board.Layout) error {
	out := s.Output
	if out == nil {
		out = color.Output
	}
	b, err := sonic.ConfigStd.MarshalIndent(Summarize(l), "", "  ")
	if err != nil {
		return fmt.Errorf("show: encode: %w", err)
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

// Print writes l to the output.
func (s *Show) Print(l board.Layout) {
	out := s.Output
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	crumbs := make([]string, 0, len(l.Header.Breadcrumbs))
	for _, c := range l.Header.Breadcrumbs {
		crumbs = append(crumbs, c.Label())
	}
	_, _ = fmt.Fprintln(out, faint.Sprint(strings.Join(crumbs, " › ")))
	title := l.Header.Line
	if title == "" {
		title = "root"
	}
	if l.Header.ID != "" {
		title += " #" + l.Header.ID
	}
	_, _ = fmt.Fprintln(out, bold.Sprint(title))
	_, _ = fmt.Fprintln(out, "")

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 32

	header := []interface{}{bold.Sprint("TASK")}
	for _, c := range l.Header.Columns {
		header = append(header, bold.Sprintf("%s (%d)", strings.ToUpper(c.Status), c.Count))
	}
	header = append(header, bold.Sprint("DONE"))
	tbl.AddRow(header...)

	for _, r := range l.Rows {
		row := []interface{}{label(r)}
		for _, cell := range r.Cells {
			row = append(row, cards(cell.Children))
		}
		row = append(row, fmt.Sprintf("%d/%d", r.Done, r.Total))
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(out, tbl)
}

func label(r board.Row) string {
	if r.ID != "" {
		return fmt.Sprintf("%s #%s", r.Node.Label(), r.ID)
	}
	return r.Node.Label()
}

func cards(children []*task.Task) string {
	if len(children) == 0 {
		return "-"
	}
	labels := make([]string, 0, len(children))
	for _, c := range children {
		labels = append(labels, c.Label())
	}
	return strings.Join(labels, ", ")
}
