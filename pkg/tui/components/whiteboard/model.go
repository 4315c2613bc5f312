// Package whiteboard renders a board.Board as a Bubble Tea component: one
// swimlane per child of the focus, one column per visible status.
package whiteboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/whiteboard/pkg/board"
	"tableflip.dev/whiteboard/pkg/task"
	"tableflip.dev/whiteboard/pkg/tui/events"
	"tableflip.dev/whiteboard/pkg/tui/theme"
)

// ComponentID tags events emitted by this component.
const ComponentID events.ComponentID = "whiteboard"

const (
	defaultWidth = 80
	minColumn    = 8
)

// Model is the board component.
type Model struct {
	board *board.Board
	theme theme.Theme
	keys  KeyMap
	help  help.Model

	width  int
	height int

	// row indexes Layout().Rows, card indexes the row's cards in column order.
	row  int
	card int

	// status is the last notice shown above the help bar.
	status string
}

// New wraps b.
func New(b *board.Board) *Model {
	return &Model{
		board: b,
		theme: theme.Default(),
		keys:  DefaultKeyMap(),
		help:  help.New(),
		width: defaultWidth,
	}
}

// SetSize updates the drawing area.
func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	m.width = width
	m.height = height
}

// Board returns the wrapped view-model.
func (m *Model) Board() *board.Board {
	return m.board
}

// Selected returns the highlighted row and card; either may be nil.
func (m *Model) Selected() (row, card *task.Task) {
	l := m.board.Layout()
	r, ok := m.selectedRow(l)
	if !ok {
		return nil, nil
	}
	cards := rowCards(r)
	if m.card < 0 || m.card >= len(cards) {
		return r.Node, nil
	}
	return r.Node, cards[m.card].node
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if d, ok := msg.(interface{ Describe() string }); ok {
		log.WithField("component", ComponentID).Debugf("event %T %s", msg, d.Describe())
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case events.DropMsg:
		if m.board.Drop(board.DropEvent{Group: msg.Group, Node: msg.Node, Status: msg.Status}) {
			m.follow(msg.Node)
		}
		m.clamp()
		return m, nil

	case events.RemoteMsg:
		_, card := m.Selected()
		m.board.Apply(msg.Message)
		m.follow(card)
		m.clamp()
		return m, nil

	case events.AddedMsg:
		parent := msg.Parent.Label
		if parent == "" {
			parent = "root"
		}
		m.status = fmt.Sprintf("added a task under %s", parent)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	l := m.board.Layout()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
			m.card = 0
		}

	case key.Matches(msg, m.keys.Down):
		if m.row < len(l.Rows)-1 {
			m.row++
			m.card = 0
		}

	case key.Matches(msg, m.keys.Left):
		if m.card > 0 {
			m.card--
		}

	case key.Matches(msg, m.keys.Right):
		if r, ok := m.selectedRow(l); ok && m.card < len(rowCards(r))-1 {
			m.card++
		}

	case key.Matches(msg, m.keys.Browse):
		if r, ok := m.selectedRow(l); ok {
			m.board.Browse(r.Node)
			m.row, m.card = 0, 0
		}

	case key.Matches(msg, m.keys.Back):
		prev := m.board.Focus()
		m.board.Back()
		m.row, m.card = 0, 0
		for i, r := range m.board.Layout().Rows {
			if r.Node == prev {
				m.row = i
				break
			}
		}

	case key.Matches(msg, m.keys.AddCard):
		parent := m.board.Focus()
		if r, ok := m.selectedRow(l); ok && !r.Collapsed {
			parent = r.Node
		}
		return m, m.add(parent)

	case key.Matches(msg, m.keys.AddRow):
		return m, m.add(m.board.Focus())

	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.move(l, -1)

	case key.Matches(msg, m.keys.MoveRight):
		return m, m.move(l, 1)

	case key.Matches(msg, m.keys.Collapse):
		if r, ok := m.selectedRow(l); ok {
			m.board.ToggleCollapsed(r.Node)
			m.card = 0
		}
	}
	m.clamp()
	return m, nil
}

func (m *Model) add(parent *task.Task) tea.Cmd {
	child := m.board.AddChild(parent)
	if child == nil {
		return nil
	}
	m.follow(child)
	m.clamp()
	added := events.AddedMsg{
		Component: ComponentID,
		Parent:    events.RefFromTask(parent),
		Child:     events.RefFromTask(child),
	}
	return func() tea.Msg { return added }
}

// move emits a DropMsg for the selected card into the neighbouring column.
func (m *Model) move(l board.Layout, delta int) tea.Cmd {
	r, ok := m.selectedRow(l)
	if !ok || r.Collapsed {
		return nil
	}
	cards := rowCards(r)
	if m.card < 0 || m.card >= len(cards) {
		return nil
	}
	target := cards[m.card].column + delta
	if target < 0 || target >= len(r.Cells) {
		return nil
	}
	return events.DropCmd(ComponentID, r.Group, cards[m.card].node, r.Cells[target].Status)
}

// follow moves the selection onto node when it is a visible card or row.
func (m *Model) follow(node *task.Task) {
	if node == nil {
		return
	}
	for i, r := range m.board.Layout().Rows {
		if r.Node == node {
			m.row, m.card = i, 0
			return
		}
		for j, c := range rowCards(r) {
			if c.node == node {
				m.row, m.card = i, j
				return
			}
		}
	}
}

func (m *Model) clamp() {
	l := m.board.Layout()
	if m.row >= len(l.Rows) {
		m.row = len(l.Rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	r, ok := m.selectedRow(l)
	if !ok {
		m.card = 0
		return
	}
	if n := len(rowCards(r)); m.card >= n {
		m.card = n - 1
	}
	if m.card < 0 {
		m.card = 0
	}
}

func (m *Model) selectedRow(l board.Layout) (board.Row, bool) {
	if m.row < 0 || m.row >= len(l.Rows) {
		return board.Row{}, false
	}
	return l.Rows[m.row], true
}

type card struct {
	column int
	node   *task.Task
}

func rowCards(r board.Row) []card {
	if r.Collapsed {
		return nil
	}
	var out []card
	for i, cell := range r.Cells {
		for _, child := range cell.Children {
			out = append(out, card{column: i, node: child})
		}
	}
	return out
}

// View implements tea.ViewModel.
func (m *Model) View() string {
	l := m.board.Layout()
	colWidth := m.columnWidth(l)

	sections := []string{
		m.renderCrumbs(l),
		m.renderTitle(l),
		m.renderColumns(l, colWidth),
	}
	if len(l.Rows) == 0 {
		sections = append(sections, m.theme.Card.Empty.Render("  nothing here yet, press A to add a row"))
	}
	for i, r := range l.Rows {
		sections = append(sections, m.renderRow(r, i == m.row, colWidth))
	}
	sections = append(sections, "")
	if m.status != "" {
		sections = append(sections, m.theme.Footer.Status.Render(m.status))
	}
	sections = append(sections, m.theme.Footer.Help.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) columnWidth(l board.Layout) int {
	if l.NumberOfColumns == 0 {
		return minColumn
	}
	avail := m.width - m.theme.Row.Frame.GetHorizontalFrameSize()
	width := avail * l.Header.Columns[0].WidthPercent / 100
	if width < minColumn {
		width = minColumn
	}
	return width
}

func (m *Model) renderCrumbs(l board.Layout) string {
	parts := make([]string, 0, len(l.Header.Breadcrumbs))
	for i, crumb := range l.Header.Breadcrumbs {
		style := m.theme.Header.Crumb
		if i == len(l.Header.Breadcrumbs)-1 {
			style = m.theme.Header.CrumbActive
		}
		parts = append(parts, style.Render(crumb.Label()))
	}
	return strings.Join(parts, m.theme.Header.Separator.Render(" › "))
}

func (m *Model) renderTitle(l board.Layout) string {
	title := l.Header.Line
	if title == "" {
		title = "root"
	}
	out := m.theme.Header.Title.Render(title)
	if l.Header.ID != "" {
		out += " " + m.theme.Header.ID.Render("#"+l.Header.ID)
	}
	return out
}

func (m *Model) renderColumns(l board.Layout, width int) string {
	cols := make([]string, 0, len(l.Header.Columns))
	for _, c := range l.Header.Columns {
		label := fmt.Sprintf("%s (%d)", c.Status, c.Count)
		label = truncate.StringWithTail(label, uint(width-1), "…")
		style := m.theme.Header.Column.Inherit(m.theme.StatusStyle(c.Status))
		cols = append(cols, lipgloss.NewStyle().Width(width).Render(style.Render(label)))
	}
	return m.theme.Row.Frame.Render(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

func (m *Model) renderRow(r board.Row, selected bool, width int) string {
	marker := "▾"
	if r.Collapsed {
		marker = "▸"
	}
	cursor := " "
	if selected {
		cursor = ">"
	}
	title := r.Line
	if title == "" {
		title = r.Node.Label()
	}
	head := fmt.Sprintf("%s%s %s %s", cursor, marker,
		m.theme.Row.Title.Render(title),
		m.theme.Row.Stats.Render(fmt.Sprintf("%d/%d", r.Done, r.Total)))
	if r.Collapsed {
		return head
	}

	cellIdx := 0
	cells := make([]string, 0, len(r.Cells))
	for _, cell := range r.Cells {
		lines := make([]string, 0, len(cell.Children))
		for _, child := range cell.Children {
			text := truncate.StringWithTail("• "+child.Label(), uint(width-1), "…")
			style := m.theme.StatusStyle(cell.Status)
			if selected && cellIdx == m.card {
				style = m.theme.Card.Selected
			}
			lines = append(lines, style.Render(text))
			cellIdx++
		}
		if len(lines) == 0 {
			lines = append(lines, m.theme.Card.Empty.Render("·"))
		}
		cells = append(cells, lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n")))
	}
	body := m.theme.Row.Frame.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	return lipgloss.JoinVertical(lipgloss.Left, head, body)
}
