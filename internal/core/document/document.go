// Package document holds the line-oriented text model that linemark edits.
// Positions are zero-based (line, column) pairs with columns counted in runes.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/linemark/internal/core/marks"
)

// Document is an in-memory text file split into lines.
type Document struct {
	path  string
	lines []string
	dirty bool
}

// New creates a document from text. The text is split on "\n"; a trailing
// newline does not create an extra line.
func New(path, text string) *Document {
	text = strings.TrimSuffix(text, "\n")
	return &Document{
		path:  path,
		lines: strings.Split(text, "\n"),
	}
}

// Open reads the file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return New(path, strings.ReplaceAll(string(data), "\r\n", "\n")), nil
}

// Path returns the file path backing the document.
func (d *Document) Path() string { return d.path }

// Len returns the number of lines. A document always has at least one line.
func (d *Document) Len() int { return len(d.lines) }

// Dirty reports whether the document has unsaved edits.
func (d *Document) Dirty() bool { return d.dirty }

// Line returns the text of line i, or "" when i is out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Lines returns a copy of every line.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// String joins the lines with "\n".
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// Apply applies the edits in order. Each edit is interpreted against the
// document produced by the previous one. Positions beyond the end of the
// document or of a line are clamped.
func (d *Document) Apply(batch marks.Batch) error {
	for _, e := range batch {
		if err := e.Validate(); err != nil {
			return err
		}
		d.replace(e)
	}
	return nil
}

func (d *Document) replace(e marks.Edit) {
	startLine := clamp(e.StartLine, 0, len(d.lines)-1)
	endLine := clamp(e.EndLine, startLine, len(d.lines)-1)

	start := []rune(d.lines[startLine])
	end := []rune(d.lines[endLine])
	startCol := clamp(e.StartCol, 0, len(start))
	endCol := clamp(e.EndCol, 0, len(end))
	if startLine == endLine && endCol < startCol {
		endCol = startCol
	}

	joined := string(start[:startCol]) + e.Text + string(end[endCol:])
	replacement := strings.Split(joined, "\n")

	lines := make([]string, 0, len(d.lines)-(endLine-startLine)+len(replacement)-1)
	lines = append(lines, d.lines[:startLine]...)
	lines = append(lines, replacement...)
	lines = append(lines, d.lines[endLine+1:]...)

	d.lines = lines
	d.dirty = true
}

// Save writes the document back to its path atomically.
func (d *Document) Save() error {
	if d.path == "" {
		return fmt.Errorf("save document: no path")
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(d.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	d.dirty = false
	return nil
}

// InsertLineBelow returns the edit that opens an empty line after line.
func (d *Document) InsertLineBelow(line int) marks.Edit {
	line = clamp(line, 0, len(d.lines)-1)
	col := len([]rune(d.lines[line]))
	return marks.Insert(line, col, "\n")
}

// DeleteLine returns the edit that removes line entirely, including its line
// break. Deleting the only line empties it.
func (d *Document) DeleteLine(line int) marks.Edit {
	line = clamp(line, 0, len(d.lines)-1)
	if line < len(d.lines)-1 {
		return marks.Replace(line, 0, line+1, 0, "")
	}
	if line == 0 {
		return marks.Replace(0, 0, 0, len([]rune(d.lines[0])), "")
	}
	prev := len([]rune(d.lines[line-1]))
	return marks.Replace(line-1, prev, line, len([]rune(d.lines[line])), "")
}

// JoinLines returns the edit that joins line with the one after it,
// separated by a single space. The second result is false on the last line.
func (d *Document) JoinLines(line int) (marks.Edit, bool) {
	if line < 0 || line >= len(d.lines)-1 {
		return marks.Edit{}, false
	}
	col := len([]rune(d.lines[line]))
	next := d.lines[line+1]
	indent := len([]rune(next)) - len([]rune(strings.TrimLeft(next, " \t")))
	return marks.Replace(line, col, line+1, indent, " "), true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
