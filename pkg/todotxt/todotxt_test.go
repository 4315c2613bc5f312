package todotxt

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tableflip.dev/whiteboard/pkg/task"
)

func TestSimpleLine(t *testing.T) {
	root := FromLines("I am a simple todo item")
	if len(root.Children) != 1 {
		t.Fatalf("expected one task, got %d", len(root.Children))
	}
	got := root.Children[0]
	if got.Line != "I am a simple todo item" {
		t.Fatalf("unexpected line %q", got.Line)
	}
	if got.Status != task.StatusNew || got.IsDone {
		t.Fatalf("expected new and not done, got %q/%v", got.Status, got.IsDone)
	}
	if root.Line != "" {
		t.Fatalf("root must have an empty line")
	}
}

func TestDoneItem(t *testing.T) {
	root := FromLines("fnord\nx fnord")
	if root.Children[0].IsDone {
		t.Fatalf("fnord is not done")
	}
	done := root.Children[1]
	if !done.IsDone || done.Status != task.StatusDone {
		t.Fatalf("expected x-prefixed task done, got %v/%q", done.IsDone, done.Status)
	}
}

func TestContextsAndProjects(t *testing.T) {
	root := FromLines("foo @context1 baz @context2 +project1 bar +project2")
	got := root.Children[0]
	if !reflect.DeepEqual(got.Contexts, []string{"context1", "context2"}) {
		t.Fatalf("unexpected contexts %v", got.Contexts)
	}
	if !reflect.DeepEqual(got.Projects, []string{"project1", "project2"}) {
		t.Fatalf("unexpected projects %v", got.Projects)
	}

	plain := FromLines("foo").Children[0]
	if len(plain.Contexts) != 0 || plain.Contexts == nil {
		t.Fatalf("expected empty contexts, got %#v", plain.Contexts)
	}
}

func TestTags(t *testing.T) {
	tests := map[string]map[string]string{
		"foo":                                     {},
		"foo id:234 tag2:val2":                    {"id": "234", "tag2": "val2"},
		`foo foo:bar sprint:"fnordy fnord roughnecks"`: {"sprint": "fnordy fnord roughnecks", "foo": "bar"},
		`foo foo:bar sprint:'fnordy fnord roughnecks'`: {"sprint": "fnordy fnord roughnecks", "foo": "bar"},
	}
	for line, want := range tests {
		if got := Tags(line); !reflect.DeepEqual(got, want) {
			t.Fatalf("%q: expected %v, got %v", line, want, got)
		}
	}
}

func TestIDAndStatusTags(t *testing.T) {
	got := FromLines("ship it id:2346 status:doing").Children[0]
	if got.ID != "2346" || got.Status != task.StatusDoing {
		t.Fatalf("unexpected task %#v", got)
	}
}

func TestSubTasks(t *testing.T) {
	root := FromLines(`
	first
	  x second
	    third id:2346 sprint:'fnordy fnord roughnecks'
	  fourth +project1
	`)

	if len(root.Children) != 1 {
		t.Fatalf("expected one top-level task, got %d", len(root.Children))
	}
	parent := root.Children[0]
	if parent.Line != "first" || len(parent.Children) != 2 {
		t.Fatalf("unexpected parent %#v", parent)
	}
	if !parent.Children[0].IsDone {
		t.Fatalf("expected second to be done")
	}
	third := parent.Children[0].Children[0]
	if third.Tags["sprint"] != "fnordy fnord roughnecks" || third.ID != "2346" {
		t.Fatalf("unexpected third %#v", third)
	}
	if !reflect.DeepEqual(parent.Children[1].Projects, []string{"project1"}) {
		t.Fatalf("unexpected projects %v", parent.Children[1].Projects)
	}
}

func TestSample(t *testing.T) {
	root := FromLines(Sample)
	if len(root.Children) != 2 {
		t.Fatalf("expected two top-level tasks, got %d", len(root.Children))
	}
	first := root.Children[0]
	if len(first.Children) != 4 {
		t.Fatalf("expected four children under first task, got %d", len(first.Children))
	}
	if first.Children[1].Children[0].Line != "with children" {
		t.Fatalf("expected nested grandchild, got %#v", first.Children[1].Children)
	}
	if first.Children[2].Status != task.StatusDone || first.Children[3].Status != task.StatusDoing {
		t.Fatalf("unexpected statuses %q %q", first.Children[2].Status, first.Children[3].Status)
	}
}

func TestFormatRestoresIndentation(t *testing.T) {
	text := "first\n  second\n    third\n  fourth\nfifth\n"
	if got := Format(FromLines(text)); got != text {
		t.Fatalf("expected\n%s\ngot\n%s", text, got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	if err := os.WriteFile(path, []byte("a\n\n  b status:done\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(root.Children) != 1 || len(root.Children[0].Children) != 1 {
		t.Fatalf("unexpected tree %#v", root)
	}
	if got := root.Children[0].Children[0]; got.Status != task.StatusDone || strings.HasSuffix(got.Line, "\r") {
		t.Fatalf("unexpected child %#v", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseLongLine(t *testing.T) {
	long := strings.Repeat("word ", 20000) + "status:doing"
	root, err := Parse(strings.NewReader("short\n  " + long + "\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(root.Children) != 1 || len(root.Children[0].Children) != 1 {
		t.Fatalf("expected the long line nested under short, got %#v", root.Children)
	}
	if got := root.Children[0].Children[0]; got.Status != task.StatusDoing || len(got.Line) != len(long) {
		t.Fatalf("unexpected long task status %q length %d", got.Status, len(got.Line))
	}

	if _, err := Parse(strings.NewReader(strings.Repeat("x", MaxLineSize+1))); err == nil {
		t.Fatalf("expected an error past MaxLineSize")
	}
}
