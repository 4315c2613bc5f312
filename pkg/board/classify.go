package board

import "tableflip.dev/whiteboard/pkg/task"

// ChildrenInStatus returns the children of node whose status equals status,
// in tree order. The result is recomputed from node.Children on every call.
func ChildrenInStatus(node *task.Task, status string) []*task.Task {
	if node == nil {
		return []*task.Task{}
	}
	matched := make([]*task.Task, 0, len(node.Children))
	for _, child := range node.Children {
		if child != nil && child.Status == status {
			matched = append(matched, child)
		}
	}
	return matched
}

// CountOfGrandchildrenInStatus sums ChildrenInStatus over the children of node.
func CountOfGrandchildrenInStatus(node *task.Task, status string) int {
	if node == nil {
		return 0
	}
	count := 0
	for _, child := range node.Children {
		count += len(ChildrenInStatus(child, status))
	}
	return count
}

// ShowUnknown reports whether the unknown column is rendered for focus.
func ShowUnknown(focus *task.Task) bool {
	return CountOfGrandchildrenInStatus(focus, task.StatusUnknown) > 0
}

// NumberOfColumns is 4 when the unknown column is shown and 3 otherwise.
func NumberOfColumns(focus *task.Task) int {
	if ShowUnknown(focus) {
		return 4
	}
	return 3
}

// VisibleColumns lists the status columns rendered for focus, in order.
func VisibleColumns(focus *task.Task) []string {
	show := ShowUnknown(focus)
	columns := make([]string, 0, len(task.Columns))
	for _, status := range task.Columns {
		if status == task.StatusUnknown && !show {
			continue
		}
		columns = append(columns, status)
	}
	return columns
}
