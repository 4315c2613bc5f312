// Package board is the view-model behind the whiteboard: it tracks which task
// is in focus, groups the focus' grandchildren into status columns and turns
// user intents into tree mutations and outbound messages.
package board

import (
	"tableflip.dev/whiteboard/pkg/idgen"
	"tableflip.dev/whiteboard/pkg/task"
)

// Emitter receives every local mutation. protocol.Emitter implements it.
type Emitter interface {
	AddChild(parent, child *task.Task)
	ChangeStatus(node *task.Task, status string)
}

// Option customises New.
type Option func(*options)

type options struct {
	ids idgen.Generator
}

// WithIDGenerator sets the generator used for new tasks and row groups.
func WithIDGenerator(g idgen.Generator) Option {
	return func(o *options) {
		if g != nil {
			o.ids = g
		}
	}
}

// Board holds the navigation state over a caller-owned task tree.
type Board struct {
	root    *task.Task
	crumbs  *Breadcrumbs
	emitter Emitter
	ids     idgen.Generator

	// Presentation state, keyed by task pointer so the tree stays untouched.
	collapsed map[*task.Task]bool
	groups    map[*task.Task]string
}

// New returns a board focused on root. emitter may be nil.
func New(root *task.Task, emitter Emitter, opts ...Option) *Board {
	o := &options{ids: idgen.UUID{}}
	for _, opt := range opts {
		opt(o)
	}
	if root == nil {
		root = &task.Task{}
	}
	return &Board{
		root:      root,
		crumbs:    NewBreadcrumbs(root),
		emitter:   emitter,
		ids:       o.ids,
		collapsed: make(map[*task.Task]bool),
		groups:    make(map[*task.Task]string),
	}
}

// Root returns the task the board was created with.
func (b *Board) Root() *task.Task {
	return b.root
}

// Focus returns the task whose children are the rows of the board.
func (b *Board) Focus() *task.Task {
	return b.crumbs.Top()
}

// Breadcrumbs returns the navigation history, root first.
func (b *Board) Breadcrumbs() []*task.Task {
	return b.crumbs.Items()
}

// Browse moves the focus to node. See Breadcrumbs.Browse.
func (b *Board) Browse(node *task.Task) *task.Task {
	if node == nil {
		return b.Focus()
	}
	return b.crumbs.Browse(node)
}

// Back moves the focus one breadcrumb up. It is a no-op at the root.
func (b *Board) Back() *task.Task {
	if parent := b.crumbs.Parent(); parent != nil {
		return b.crumbs.Browse(parent)
	}
	return b.Focus()
}

// AddChild appends a fresh task in status new to parent and announces it.
func (b *Board) AddChild(parent *task.Task) *task.Task {
	if parent == nil {
		return nil
	}
	child := task.New(b.ids.NewID())
	parent.Children = append(parent.Children, child)
	if b.emitter != nil {
		b.emitter.AddChild(parent, child)
	}
	return child
}

// ChangeStatus sets the status of node and announces it. This is the only
// path through which the board reclassifies a task.
func (b *Board) ChangeStatus(node *task.Task, status string) {
	if node == nil {
		return
	}
	node.Status = status
	if b.emitter != nil {
		b.emitter.ChangeStatus(node, status)
	}
}

// DropEvent describes a card dropped onto a status column.
type DropEvent struct {
	// Group is the GroupID of the row the card was dragged within. Empty
	// skips the check.
	Group string
	// Node is the dragged task.
	Node *task.Task
	// Status is the target column.
	Status string
}

// Drop applies a drag and drop. It changes nothing when the node is missing,
// does not belong to the row named by Group, or already has the status.
func (b *Board) Drop(ev DropEvent) bool {
	if ev.Node == nil || ev.Status == "" || ev.Node.Status == ev.Status {
		return false
	}
	if ev.Group != "" {
		row := b.rowForGroup(ev.Group)
		if row == nil || !containsChild(row, ev.Node) {
			return false
		}
	}
	b.ChangeStatus(ev.Node, ev.Status)
	return true
}

// ToggleCollapsed flips the collapsed flag of a row and returns the new value.
func (b *Board) ToggleCollapsed(row *task.Task) bool {
	if row == nil {
		return false
	}
	b.collapsed[row] = !b.collapsed[row]
	return b.collapsed[row]
}

// Collapsed reports whether row is collapsed.
func (b *Board) Collapsed(row *task.Task) bool {
	return b.collapsed[row]
}

// GroupID returns the drag group of a row, assigning one on first use. Cards
// may only be dropped within the row they belong to.
func (b *Board) GroupID(row *task.Task) string {
	if row == nil {
		return ""
	}
	if id, ok := b.groups[row]; ok {
		return id
	}
	id := b.ids.NewID()
	b.groups[row] = id
	return id
}

func (b *Board) rowForGroup(group string) *task.Task {
	for row, id := range b.groups {
		if id == group {
			return row
		}
	}
	return nil
}

func containsChild(parent, node *task.Task) bool {
	for _, child := range parent.Children {
		if child == node {
			return true
		}
	}
	return false
}
