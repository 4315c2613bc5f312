package board

import "tableflip.dev/whiteboard/pkg/task"

// Layout is everything a rendering surface needs to draw the board.
type Layout struct {
	Header          Header
	NumberOfColumns int
	Rows            []Row
}

// Header describes the focus, the breadcrumbs and the column headers.
type Header struct {
	Line        string
	ID          string
	Breadcrumbs []*task.Task
	Columns     []ColumnHeader
}

// ColumnHeader is one status column with its grandchild count.
type ColumnHeader struct {
	Status       string
	Count        int
	WidthPercent int
}

// Row is one child of the focus with its own children bucketed by status.
type Row struct {
	Node      *task.Task
	Line      string
	ID        string
	Group     string
	Collapsed bool
	Cells     []Cell
	Done      int
	Total     int
}

// Cell is the bucket of one row for one status column.
type Cell struct {
	Status   string
	Children []*task.Task
}

// Layout projects the current state. It is recomputed on every call.
func (b *Board) Layout() Layout {
	focus := b.Focus()
	columns := VisibleColumns(focus)
	n := len(columns)
	width := 100 / n

	l := Layout{
		Header: Header{
			Line:        focus.Line,
			ID:          focus.ID,
			Breadcrumbs: b.Breadcrumbs(),
			Columns:     make([]ColumnHeader, 0, n),
		},
		NumberOfColumns: n,
		Rows:            make([]Row, 0, len(focus.Children)),
	}
	for _, status := range columns {
		l.Header.Columns = append(l.Header.Columns, ColumnHeader{
			Status:       status,
			Count:        CountOfGrandchildrenInStatus(focus, status),
			WidthPercent: width,
		})
	}
	for _, child := range focus.Children {
		if child == nil {
			continue
		}
		row := Row{
			Node:      child,
			Line:      child.Line,
			ID:        child.ID,
			Group:     b.GroupID(child),
			Collapsed: b.Collapsed(child),
			Cells:     make([]Cell, 0, n),
			Done:      len(ChildrenInStatus(child, task.StatusDone)),
			Total:     len(child.Children),
		}
		for _, status := range columns {
			row.Cells = append(row.Cells, Cell{
				Status:   status,
				Children: ChildrenInStatus(child, status),
			})
		}
		l.Rows = append(l.Rows, row)
	}
	return l
}
