package linemark

import (
	"context"
	"slices"
)

// Renderer draws and removes line decorations. Calls are idempotent and
// line-indexed; implementations ignore lines they cannot show.
type Renderer interface {
	RenderMark(line int)
	UnrenderMark(line int)
	ClearAllRenders()
}

// Persistence stores marked lines per document across sessions.
type Persistence interface {
	// Load returns the stored lines for doc, or an empty list when none are stored.
	Load(ctx context.Context, doc string) ([]int, error)
	// Save stores lines for doc. An empty list removes the entry. Entries for
	// documents that no longer exist are pruned.
	Save(ctx context.Context, doc string, lines []int) error
	// Exists reports whether the document still exists.
	Exists(doc string) bool
}

// Cursor reports and moves the host cursor.
type Cursor interface {
	Line() int
	MoveTo(line int)
}

// NopRenderer discards every render call.
type NopRenderer struct{}

func (NopRenderer) RenderMark(int)   {}
func (NopRenderer) UnrenderMark(int) {}
func (NopRenderer) ClearAllRenders() {}

// LineSet is a Renderer that remembers which lines are currently drawn.
// Command line output uses it to print a gutter.
type LineSet struct {
	lines map[int]struct{}
}

// NewLineSet creates an empty LineSet.
func NewLineSet() *LineSet {
	return &LineSet{lines: make(map[int]struct{})}
}

func (r *LineSet) RenderMark(line int)   { r.lines[line] = struct{}{} }
func (r *LineSet) UnrenderMark(line int) { delete(r.lines, line) }
func (r *LineSet) ClearAllRenders()      { clear(r.lines) }

// Has reports whether line is drawn.
func (r *LineSet) Has(line int) bool {
	_, ok := r.lines[line]
	return ok
}

// Lines returns the drawn lines in ascending order.
func (r *LineSet) Lines() []int {
	out := make([]int, 0, len(r.lines))
	for line := range r.lines {
		out = append(out, line)
	}
	slices.Sort(out)
	return out
}

// StaticCursor is a Cursor held in memory. Command line navigation starts
// from a line given by flag and reads the target back after a move.
type StaticCursor struct {
	line int
}

// NewStaticCursor creates a cursor at line.
func NewStaticCursor(line int) *StaticCursor {
	return &StaticCursor{line: line}
}

func (c *StaticCursor) Line() int { return c.line }

func (c *StaticCursor) MoveTo(line int) { c.line = line }
