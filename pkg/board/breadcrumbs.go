package board

import "tableflip.dev/whiteboard/pkg/task"

// Breadcrumbs is the navigation history of the board. It always holds the
// root at index 0 and its last element is the focus.
type Breadcrumbs struct {
	stack []*task.Task
}

// NewBreadcrumbs starts a history at root.
func NewBreadcrumbs(root *task.Task) *Breadcrumbs {
	return &Breadcrumbs{stack: []*task.Task{root}}
}

// Browse pushes node, or when node is already in the history, drops every
// entry after it. Entries are compared by pointer, not by content.
func (b *Breadcrumbs) Browse(node *task.Task) *task.Task {
	if i := b.IndexOf(node); i >= 0 {
		b.stack = b.stack[:i+1]
	} else {
		b.stack = append(b.stack, node)
	}
	return b.Top()
}

// IndexOf returns the position of node in the history or -1.
func (b *Breadcrumbs) IndexOf(node *task.Task) int {
	for i, crumb := range b.stack {
		if crumb == node {
			return i
		}
	}
	return -1
}

// Top returns the focus.
func (b *Breadcrumbs) Top() *task.Task {
	return b.stack[len(b.stack)-1]
}

// Parent returns the entry below the focus, or nil at the root.
func (b *Breadcrumbs) Parent() *task.Task {
	if len(b.stack) < 2 {
		return nil
	}
	return b.stack[len(b.stack)-2]
}

// Len returns the number of entries.
func (b *Breadcrumbs) Len() int {
	return len(b.stack)
}

// Items returns a copy of the history, root first.
func (b *Breadcrumbs) Items() []*task.Task {
	out := make([]*task.Task, len(b.stack))
	copy(out, b.stack)
	return out
}
