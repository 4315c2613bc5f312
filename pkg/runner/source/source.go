// Package source loads the task tree shown by the runners.
package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/whiteboard/pkg/idgen"
	"tableflip.dev/whiteboard/pkg/task"
	"tableflip.dev/whiteboard/pkg/todotxt"
)

// ErrNoSource is returned when neither a file nor the demo board was asked for.
var ErrNoSource = errors.New("source: no file given, use --file or --demo")

// Load reads file, or the built-in sample when demo is set, and gives every
// task without an identity a stable one.
func Load(file string, demo bool) (*task.Task, error) {
	var root *task.Task
	switch {
	case demo:
		root = todotxt.FromLines(todotxt.Sample)
	case file != "":
		var err error
		if root, err = todotxt.Load(file); err != nil {
			return nil, err
		}
	default:
		return nil, ErrNoSource
	}
	AssignIdentities(root, todotxt.Format(root))
	return root, nil
}

// AssignIdentities sets a UUID on every task that has neither a UUID nor a
// tracker id, the root included. The UUID is derived from seed and the task's
// position and line, so peers loading the same source agree on identities
// while different sources never share a root. Load seeds with the formatted
// tree. It returns how many tasks were changed.
func AssignIdentities(root *task.Task, seed string) int {
	return assign(root, idgen.Stable(seed), "")
}

func assign(node *task.Task, ns, path string) int {
	if node == nil {
		return 0
	}
	n := 0
	if node.Identity() == "" {
		node.UUID = idgen.Stable(fmt.Sprintf("%s:%s %s", ns, path, node.Line))
		n++
	}
	for i, child := range node.Children {
		n += assign(child, ns, strings.TrimPrefix(path+"/"+strconv.Itoa(i), "/"))
	}
	return n
}

// Browse follows identities from root, each one looked up below the previous.
func Browse(root *task.Task, identities []string) ([]*task.Task, error) {
	path := make([]*task.Task, 0, len(identities))
	at := root
	for _, id := range identities {
		next := at.Find(id)
		if next == nil {
			return nil, fmt.Errorf("source: no task %q below %q", id, at.Label())
		}
		path = append(path, next)
		at = next
	}
	return path, nil
}
