// Package protocol describes the messages the whiteboard sends to, and
// receives from, its peers and the emitter that hands them to a transport.
package protocol

import (
	"fmt"

	"tableflip.dev/whiteboard/pkg/task"
)

// EventUpdateTodo is the only event name used on the wire.
const EventUpdateTodo = "update_todo"

// Action names the mutation a message carries.
type Action string

const (
	// ActionAddChild appends Child to the task identified by UUID.
	ActionAddChild Action = "add_child"
	// ActionChangeTag merges Tags into the task identified by UUID.
	ActionChangeTag Action = "change_tag"
)

// TagStatus is the tag key carrying the status label.
const TagStatus = "status"

// Message is one mutation intent.
type Message struct {
	Action Action            `json:"action"`
	UUID   string            `json:"uuid"`
	Child  *task.Task        `json:"child,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// AddChild builds the message announcing child was appended to parent.
func AddChild(parent, child *task.Task) Message {
	return Message{
		Action: ActionAddChild,
		UUID:   parent.Identity(),
		Child:  child,
	}
}

// ChangeStatus builds the message announcing node moved to status.
func ChangeStatus(node *task.Task, status string) Message {
	return Message{
		Action: ActionChangeTag,
		UUID:   node.Identity(),
		Tags:   map[string]string{TagStatus: status},
	}
}

// Describe renders the message for logs.
func (m Message) Describe() string {
	switch m.Action {
	case ActionAddChild:
		return fmt.Sprintf(`action:%q uuid:%q child:%q`, m.Action, m.UUID, m.Child.Identity())
	case ActionChangeTag:
		return fmt.Sprintf(`action:%q uuid:%q tags:%v`, m.Action, m.UUID, m.Tags)
	default:
		return fmt.Sprintf(`action:%q uuid:%q`, m.Action, m.UUID)
	}
}
