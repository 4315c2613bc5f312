package board

import "tableflip.dev/whiteboard/pkg/protocol"

// Apply merges a message published by a peer into the tree. It never emits.
// It reports whether the tree changed; messages for tasks that are not in the
// tree are ignored.
func (b *Board) Apply(msg protocol.Message) bool {
	target := b.root.Find(msg.UUID)
	if target == nil {
		return false
	}
	switch msg.Action {
	case protocol.ActionAddChild:
		if msg.Child == nil {
			return false
		}
		if id := msg.Child.Identity(); id != "" && b.root.Find(id) != nil {
			return false
		}
		target.Children = append(target.Children, msg.Child)
		return true
	case protocol.ActionChangeTag:
		changed := false
		for key, value := range msg.Tags {
			if key == protocol.TagStatus && target.Status != value {
				target.Status = value
				changed = true
			}
			if target.Tags == nil {
				target.Tags = make(map[string]string, len(msg.Tags))
			}
			if target.Tags[key] != value {
				target.Tags[key] = value
				changed = true
			}
		}
		return changed
	default:
		return false
	}
}
