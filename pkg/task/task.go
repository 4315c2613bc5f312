// Package task defines the nested task tree rendered by the whiteboard.
package task

// Status labels recognised by the board columns.
const (
	StatusNew     = "new"
	StatusUnknown = "unknown"
	StatusDoing   = "doing"
	StatusDone    = "done"
)

// Columns lists the status labels in the order the board displays them.
var Columns = []string{StatusNew, StatusUnknown, StatusDoing, StatusDone}

// Task is one node of the tree. The tree is owned by the caller; the board
// reads it and mutates Status and Children in place.
type Task struct {
	// UUID is the client identity. It is set for every locally created task.
	UUID string `json:"uuid,omitempty"`
	// ID is the tracker id and is empty until the tracker assigns one.
	ID       string            `json:"id"`
	Line     string            `json:"line"`
	Status   string            `json:"status,omitempty"`
	IsDone   bool              `json:"is_done"`
	Projects []string          `json:"projects"`
	Contexts []string          `json:"contexts"`
	Tags     map[string]string `json:"tags"`
	Children []*Task           `json:"children"`
}

// New returns an empty task in status new identified by uuid.
func New(uuid string) *Task {
	return &Task{
		UUID:     uuid,
		Status:   StatusNew,
		Projects: []string{},
		Contexts: []string{},
		Tags:     map[string]string{},
		Children: []*Task{},
	}
}

// Identity returns the UUID, falling back to the tracker id.
func (t *Task) Identity() string {
	if t == nil {
		return ""
	}
	if t.UUID != "" {
		return t.UUID
	}
	return t.ID
}

// Walk visits t and its descendants depth first. Returning false from fn
// stops the walk.
func (t *Task) Walk(fn func(node *Task, depth int) bool) {
	if t == nil {
		return
	}
	t.walk(fn, 0)
}

func (t *Task) walk(fn func(*Task, int) bool, depth int) bool {
	if !fn(t, depth) {
		return false
	}
	for _, child := range t.Children {
		if child == nil {
			continue
		}
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Find returns the first task in the tree whose Identity matches identity.
func (t *Task) Find(identity string) *Task {
	if identity == "" {
		return nil
	}
	var found *Task
	t.Walk(func(node *Task, _ int) bool {
		if node.Identity() == identity {
			found = node
			return false
		}
		return true
	})
	return found
}

// Identities collects every non-empty UUID and tracker id in the tree.
func (t *Task) Identities() map[string]struct{} {
	ids := make(map[string]struct{})
	t.Walk(func(node *Task, _ int) bool {
		if node.UUID != "" {
			ids[node.UUID] = struct{}{}
		}
		if node.ID != "" {
			ids[node.ID] = struct{}{}
		}
		return true
	})
	return ids
}

// Label returns the display text used in breadcrumbs.
func (t *Task) Label() string {
	if t == nil || t.Line == "" {
		return "root"
	}
	return t.Line
}
