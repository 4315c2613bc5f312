package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/whiteboard/pkg/protocol"
	"tableflip.dev/whiteboard/pkg/task"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// TaskRef captures what logs need to identify a task.
type TaskRef struct {
	Identity string
	Label    string
}

// RefFromTask converts a task into an event reference.
func RefFromTask(t *task.Task) TaskRef {
	if t == nil {
		return TaskRef{}
	}
	return TaskRef{Identity: t.Identity(), Label: t.Label()}
}

// DropMsg is emitted when a card is released over a status column of a row.
// Group is the row's group id; a drop into another row is refused.
type DropMsg struct {
	Component ComponentID
	Group     string
	Node      *task.Task
	Status    string
}

// Describe renders the drop for logs.
func (m DropMsg) Describe() string {
	ref := RefFromTask(m.Node)
	return fmt.Sprintf(`group:%q task:%q identity:%q status:%q`, m.Group, ref.Label, ref.Identity, m.Status)
}

// DropCmd wraps DropMsg into a tea.Cmd.
func DropCmd(component ComponentID, group string, node *task.Task, status string) tea.Cmd {
	return func() tea.Msg {
		return DropMsg{
			Component: component,
			Group:     group,
			Node:      node,
			Status:    status,
		}
	}
}

// RemoteMsg carries a message received from a peer.
type RemoteMsg struct {
	Message protocol.Message
}

// Describe implements the logging helper.
func (m RemoteMsg) Describe() string {
	return "remote " + m.Message.Describe()
}

// AddedMsg announces a task created from this component.
type AddedMsg struct {
	Component ComponentID
	Parent    TaskRef
	Child     TaskRef
}

func (m AddedMsg) Describe() string {
	return fmt.Sprintf(`parent:%q child:%q`, m.Parent.Label, m.Child.Identity)
}
