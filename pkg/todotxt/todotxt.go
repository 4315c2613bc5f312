// Package todotxt reads indented todo.txt files into a task tree.
//
// A line indented deeper than the previous task at its level becomes a child
// of that task. Lines may carry @contexts, +projects and key:value tags, and a
// leading "x " marks them done. The id tag becomes the tracker id and the
// status tag the board status.
package todotxt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"tableflip.dev/whiteboard/pkg/task"
)

var (
	donePattern     = regexp.MustCompile(`^\s*(x)\s`)
	contextsPattern = regexp.MustCompile(`@(\w+)`)
	projectsPattern = regexp.MustCompile(`\+(\w+)`)
	tagsPattern     = regexp.MustCompile(`(\w+):(?:(\w+)|'([\w\s]+)'|"([\w\s]+)")`)
)

// MaxLineSize is the longest line Parse accepts.
const MaxLineSize = 1 << 20

type parsed struct {
	task   *task.Task
	indent int
	kids   []*parsed
}

// Load reads the file at path. See Parse.
func Load(path string) (*task.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("todotxt: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads todo.txt lines from r and returns a root task with an empty
// line whose children are the top-level tasks. Blank lines are skipped.
func Parse(r io.Reader) (*task.Task, error) {
	root := &parsed{task: &task.Task{Children: []*task.Task{}}, indent: -1}
	var top []*parsed

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)
	for scanner.Scan() {
		raw := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p := parseLine(raw)
		if p.indent > 0 && len(top) > 0 {
			top[len(top)-1].add(p)
		} else {
			top = append(top, p)
			root.add(p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("todotxt: read: %w", err)
	}
	return root.task, nil
}

// FromLines parses text, typically a raw string literal, after removing the
// indentation common to all of its lines.
func FromLines(text string) *task.Task {
	root, _ := Parse(strings.NewReader(dedent(text)))
	return root
}

func (p *parsed) add(child *parsed) {
	if n := len(p.kids); n > 0 && child.indent > p.kids[n-1].indent {
		p.kids[n-1].add(child)
		return
	}
	p.kids = append(p.kids, child)
	p.task.Children = append(p.task.Children, child.task)
}

func parseLine(raw string) *parsed {
	trimmed := strings.TrimLeft(raw, " \t")
	indent := len(raw) - len(trimmed)

	tags := Tags(raw)
	t := &task.Task{
		ID:       tags["id"],
		Line:     strings.TrimSpace(raw),
		Status:   tags["status"],
		IsDone:   donePattern.MatchString(raw),
		Projects: submatches(projectsPattern, raw),
		Contexts: submatches(contextsPattern, raw),
		Tags:     tags,
		Children: []*task.Task{},
	}
	if t.Status == "" {
		t.Status = task.StatusNew
		if t.IsDone {
			t.Status = task.StatusDone
		}
	}
	return &parsed{task: t, indent: indent}
}

// Tags extracts key:value pairs from a line. Values may be single or double
// quoted to include spaces.
func Tags(line string) map[string]string {
	tags := make(map[string]string)
	for _, m := range tagsPattern.FindAllStringSubmatch(line, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if value == "" {
			value = m[4]
		}
		tags[m[1]] = value
	}
	return tags
}

func submatches(re *regexp.Regexp, line string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(line, -1) {
		out = append(out, m[1])
	}
	return out
}

func dedent(text string) string {
	lines := strings.Split(text, "\n")
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || indent < common {
			common = indent
		}
	}
	if common <= 0 {
		return text
	}
	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// Format writes the children of root back as todo.txt, indenting each level
// by two spaces.
func Format(root *task.Task) string {
	var b strings.Builder
	root.Walk(func(node *task.Task, depth int) bool {
		if depth == 0 {
			return true
		}
		b.WriteString(strings.Repeat("  ", depth-1))
		b.WriteString(node.Line)
		b.WriteString("\n")
		return true
	})
	return b.String()
}

// Sample is a small demo board.
const Sample = `
first task
    second task with a longer description that would surely be shortened
    third task
        with children
    seventh task status:done
    eight task status:doing
fourth task
    fifth task
        sixth task
    ninth task status:doing
`
