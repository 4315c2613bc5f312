package protocol

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/whiteboard/pkg/task"
)

// Handler receives messages published by peers.
type Handler func(Message)

// Transport relays messages to and from peers. Reconnection, batching and
// delivery are the transport's business; Emit must not block on the network.
type Transport interface {
	// On starts delivering inbound messages to handle until ctx is done.
	On(ctx context.Context, handle Handler) error
	// Emit hands one message to the transport.
	Emit(event string, msg Message) error
}

// Emitter turns local mutations into outbound messages. Emission is fire and
// forget: transport failures are logged and never reach the caller.
type Emitter struct {
	transport Transport
	mounted   bool
}

// NewEmitter returns an emitter writing to t. A nil transport discards.
func NewEmitter(t Transport) *Emitter {
	return &Emitter{transport: t}
}

// Mount calls the transport's On hook. Only the first call has an effect.
func (e *Emitter) Mount(ctx context.Context, handle Handler) error {
	if e == nil || e.transport == nil || e.mounted {
		return nil
	}
	e.mounted = true
	if handle == nil {
		handle = func(Message) {}
	}
	if err := e.transport.On(ctx, handle); err != nil {
		return fmt.Errorf("protocol: mount transport: %w", err)
	}
	return nil
}

// AddChild announces that child was appended to parent.
func (e *Emitter) AddChild(parent, child *task.Task) {
	e.Send(AddChild(parent, child))
}

// ChangeStatus announces that node moved to status.
func (e *Emitter) ChangeStatus(node *task.Task, status string) {
	e.Send(ChangeStatus(node, status))
}

// Send emits msg as an update_todo event.
func (e *Emitter) Send(msg Message) {
	if e == nil || e.transport == nil {
		return
	}
	fields := log.Fields{
		"event":  EventUpdateTodo,
		"action": msg.Action,
		"uuid":   msg.UUID,
	}
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(fields).Warnf("protocol: transport panicked: %v", r)
		}
	}()
	if err := e.transport.Emit(EventUpdateTodo, msg); err != nil {
		log.WithFields(fields).WithError(err).Warn("protocol: emit failed")
		return
	}
	log.WithFields(fields).Debug("protocol: emitted")
}
