package board

import (
	"testing"

	"tableflip.dev/whiteboard/pkg/idgen"
	"tableflip.dev/whiteboard/pkg/task"
)

type call struct {
	action string
	node   *task.Task
	child  *task.Task
	status string
}

type recordingEmitter struct {
	calls []call
}

func (r *recordingEmitter) AddChild(parent, child *task.Task) {
	r.calls = append(r.calls, call{action: "add_child", node: parent, child: child})
}

func (r *recordingEmitter) ChangeStatus(node *task.Task, status string) {
	r.calls = append(r.calls, call{action: "change_tag", node: node, status: status})
}

// fixture builds root -> A [a1 new, a2 doing], B [].
func fixture() (root, a, b, a1, a2 *task.Task) {
	a1 = &task.Task{ID: "3", Line: "a1", Status: "new"}
	a2 = &task.Task{ID: "4", Line: "a2", Status: "doing"}
	a = &task.Task{ID: "1", Line: "A", Status: "new", Children: []*task.Task{a1, a2}}
	b = &task.Task{ID: "2", Line: "B", Status: "new"}
	root = &task.Task{Line: "root", Children: []*task.Task{a, b}}
	return
}

func TestBoardScenario(t *testing.T) {
	root, a, _, a1, _ := fixture()
	bd := New(root, nil)

	if bd.Focus() != root {
		t.Fatalf("expected root focus")
	}
	if got := ChildrenInStatus(a, "new"); len(got) != 1 || got[0] != a1 {
		t.Fatalf("expected [a1], got %v", lines(got))
	}
	if got := CountOfGrandchildrenInStatus(root, "new"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := bd.Layout().NumberOfColumns; got != 3 {
		t.Fatalf("expected 3 columns, got %d", got)
	}

	a.Children = append(a.Children, &task.Task{Line: "a3", Status: "unknown"})
	if got := bd.Layout().NumberOfColumns; got != 4 {
		t.Fatalf("expected 4 columns, got %d", got)
	}

	bd.Browse(a)
	if got := bd.Breadcrumbs(); len(got) != 2 || got[1] != a || bd.Focus() != a {
		t.Fatalf("expected [root A], got %v", lines(got))
	}
	bd.Browse(root)
	if got := bd.Breadcrumbs(); len(got) != 1 || got[0] != root || bd.Focus() != root {
		t.Fatalf("expected [root], got %v", lines(got))
	}
}

func TestBoardBrowseUnrelatedNode(t *testing.T) {
	root, _, _, _, _ := fixture()
	bd := New(root, nil)
	stranger := &task.Task{Line: "elsewhere"}
	if got := bd.Browse(stranger); got != stranger {
		t.Fatalf("browse must accept nodes outside the tree")
	}
	if bd.Back() != root {
		t.Fatalf("expected back to root")
	}
	if bd.Back() != root {
		t.Fatalf("back at the root must stay at the root")
	}
	if bd.Browse(nil) != root {
		t.Fatalf("browse(nil) must keep the focus")
	}
}

func TestBoardAddChild(t *testing.T) {
	root, a, _, _, _ := fixture()
	rec := &recordingEmitter{}
	bd := New(root, rec, WithIDGenerator(&idgen.Sequence{Prefix: "local-"}))

	existing := root.Identities()
	before := len(a.Children)
	child := bd.AddChild(a)

	if len(a.Children) != before+1 || a.Children[before] != child {
		t.Fatalf("expected child appended to A")
	}
	if child.Status != task.StatusNew || child.Line != "" || child.ID != "" {
		t.Fatalf("unexpected child %#v", child)
	}
	if child.Identity() == "" {
		t.Fatalf("expected a generated identity")
	}
	if _, dup := existing[child.Identity()]; dup {
		t.Fatalf("generated identity %q collides with the tree", child.Identity())
	}
	if len(child.Children) != 0 || child.Children == nil || child.Contexts == nil {
		t.Fatalf("expected empty collections, got %#v", child)
	}

	if len(rec.calls) != 1 {
		t.Fatalf("expected one emitted call, got %d", len(rec.calls))
	}
	got := rec.calls[0]
	if got.action != "add_child" || got.node != a || got.child != child {
		t.Fatalf("unexpected call %#v", got)
	}

	if bd.AddChild(nil) != nil {
		t.Fatalf("adding to nil must be a no-op")
	}
}

func TestBoardAddChildDefaultIDsAreUnique(t *testing.T) {
	root, a, _, _, _ := fixture()
	bd := New(root, nil)
	first := bd.AddChild(a)
	second := bd.AddChild(a)
	if first.Identity() == second.Identity() {
		t.Fatalf("expected distinct ids, both %q", first.Identity())
	}
}

func TestBoardChangeStatusKeepsSiblingOrder(t *testing.T) {
	x := &task.Task{Line: "x", Status: "new"}
	y := &task.Task{Line: "y", Status: "new"}
	z := &task.Task{Line: "z", Status: "new"}
	w := &task.Task{Line: "w", Status: "doing"}
	parent := &task.Task{Line: "P", Children: []*task.Task{x, y, z, w}}
	root := &task.Task{Children: []*task.Task{parent}}

	rec := &recordingEmitter{}
	bd := New(root, rec)
	bd.ChangeStatus(y, "doing")

	if got := lines(ChildrenInStatus(parent, "new")); !equal(got, []string{"x", "z"}) {
		t.Fatalf("unexpected new bucket %v", got)
	}
	if got := lines(ChildrenInStatus(parent, "doing")); !equal(got, []string{"y", "w"}) {
		t.Fatalf("unexpected doing bucket %v", got)
	}
	if got := lines(parent.Children); !equal(got, []string{"x", "y", "z", "w"}) {
		t.Fatalf("children order must not change, got %v", got)
	}
	if len(rec.calls) != 1 || rec.calls[0].node != y || rec.calls[0].status != "doing" {
		t.Fatalf("unexpected calls %#v", rec.calls)
	}
}

func TestBoardDrop(t *testing.T) {
	root, a, b, a1, _ := fixture()
	rec := &recordingEmitter{}
	bd := New(root, rec, WithIDGenerator(&idgen.Sequence{Prefix: "g"}))

	groupA := bd.GroupID(a)
	groupB := bd.GroupID(b)

	if bd.Drop(DropEvent{Group: groupB, Node: a1, Status: "done"}) {
		t.Fatalf("drop into another row's group must be refused")
	}
	if bd.Drop(DropEvent{Group: "nope", Node: a1, Status: "done"}) {
		t.Fatalf("drop with an unknown group must be refused")
	}
	if bd.Drop(DropEvent{Group: groupA, Node: a1, Status: "new"}) {
		t.Fatalf("drop onto the current column must be a no-op")
	}
	if bd.Drop(DropEvent{Group: groupA, Status: "done"}) {
		t.Fatalf("drop without a node must be refused")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("refused drops must not emit, got %#v", rec.calls)
	}

	if !bd.Drop(DropEvent{Group: groupA, Node: a1, Status: "done"}) {
		t.Fatalf("expected drop to apply")
	}
	if a1.Status != "done" {
		t.Fatalf("expected a1 done, got %q", a1.Status)
	}
	if len(rec.calls) != 1 || rec.calls[0].action != "change_tag" {
		t.Fatalf("expected one change_tag, got %#v", rec.calls)
	}
	if len(a.Children) != 2 || a.Children[0] != a1 {
		t.Fatalf("drop must not reorder children")
	}
}

func TestBoardGroupIDsAreLocal(t *testing.T) {
	root, a, b, _, _ := fixture()
	bd := New(root, nil)

	ga := bd.GroupID(a)
	if ga == "" || ga != bd.GroupID(a) {
		t.Fatalf("group id must be stable, got %q", ga)
	}
	if ga == bd.GroupID(b) {
		t.Fatalf("rows must have distinct groups")
	}
	if a.UUID != "" || a.Tags != nil {
		t.Fatalf("group ids must not be written to the tree: %#v", a)
	}
	if bd.GroupID(nil) != "" {
		t.Fatalf("nil row has no group")
	}
}

func TestBoardToggleCollapsed(t *testing.T) {
	root, a, b, _, _ := fixture()
	rec := &recordingEmitter{}
	bd := New(root, rec)

	if !bd.ToggleCollapsed(a) || !bd.Collapsed(a) {
		t.Fatalf("expected A collapsed")
	}
	if bd.Collapsed(b) {
		t.Fatalf("collapse is per row")
	}
	if bd.ToggleCollapsed(a) || bd.Collapsed(a) {
		t.Fatalf("expected A expanded again")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("collapse must not emit")
	}
}

func TestBoardLayout(t *testing.T) {
	root, a, _, a1, a2 := fixture()
	a2.Status = "done"
	bd := New(root, nil)
	bd.ToggleCollapsed(a)

	l := bd.Layout()
	if l.Header.Line != "root" || len(l.Header.Breadcrumbs) != 1 {
		t.Fatalf("unexpected header %#v", l.Header)
	}
	if len(l.Header.Columns) != 3 {
		t.Fatalf("expected 3 column headers, got %d", len(l.Header.Columns))
	}
	for _, col := range l.Header.Columns {
		if col.WidthPercent != 33 {
			t.Fatalf("expected 33%% width, got %d", col.WidthPercent)
		}
	}
	if col := l.Header.Columns[0]; col.Status != "new" || col.Count != 1 {
		t.Fatalf("unexpected first column %#v", col)
	}
	if len(l.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(l.Rows))
	}
	row := l.Rows[0]
	if row.Node != a || row.Line != "A" || row.ID != "1" || !row.Collapsed || row.Group == "" {
		t.Fatalf("unexpected row %#v", row)
	}
	if row.Done != 1 || row.Total != 2 {
		t.Fatalf("expected 1/2 done, got %d/%d", row.Done, row.Total)
	}
	if len(row.Cells) != 3 || row.Cells[0].Children[0] != a1 || row.Cells[2].Children[0] != a2 {
		t.Fatalf("unexpected cells %#v", row.Cells)
	}
	if len(l.Rows[1].Cells[0].Children) != 0 {
		t.Fatalf("expected empty cell for B")
	}

	a.Children = append(a.Children, &task.Task{Status: "unknown"})
	l = bd.Layout()
	if l.NumberOfColumns != 4 || l.Header.Columns[1].Status != "unknown" || l.Header.Columns[1].WidthPercent != 25 {
		t.Fatalf("expected unknown column at 25%%, got %#v", l.Header.Columns)
	}
	if len(l.Rows[1].Cells) != 4 {
		t.Fatalf("every row must use the focus-level column set")
	}
}

func TestBoardToleratesEmptyRoot(t *testing.T) {
	bd := New(nil, nil)
	l := bd.Layout()
	if len(l.Rows) != 0 || l.NumberOfColumns != 3 {
		t.Fatalf("unexpected layout for empty root %#v", l)
	}
	if bd.Root() == nil {
		t.Fatalf("expected a placeholder root")
	}
}
