// Package marks defines the marked-line domain types and the pure algorithms
// that keep a set of marked lines consistent across text edits.
package marks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEdit is returned by Edit.Validate for edits whose coordinates
// cannot describe a range in a document.
var ErrInvalidEdit = errors.New("invalid edit")

// Edit describes a single contiguous replacement. The half-open region from
// (StartLine, StartCol) to (EndLine, EndCol) is deleted and Text is inserted
// in its place. Lines and columns are zero-based.
type Edit struct {
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
	Text      string `json:"text"`
}

// Batch is an ordered sequence of edits reported together for one document
// change. Edits are non-overlapping and applied left to right.
type Batch []Edit

// Insert returns an edit that inserts text at the given position.
func Insert(line, col int, text string) Edit {
	return Edit{StartLine: line, StartCol: col, EndLine: line, EndCol: col, Text: text}
}

// Replace returns an edit that replaces the given range with text.
func Replace(startLine, startCol, endLine, endCol int, text string) Edit {
	return Edit{
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
		Text:      text,
	}
}

// ReplacementLines returns the number of lines the replacement text spans.
// An empty replacement counts as one line.
func (e Edit) ReplacementLines() int {
	return strings.Count(e.Text, "\n") + 1
}

// Span returns the number of line breaks removed by the edit.
func (e Edit) Span() int {
	return e.EndLine - e.StartLine
}

// SingleLine reports whether the edit neither removes nor inserts a line break.
func (e Edit) SingleLine() bool {
	return e.Span() == 0 && e.ReplacementLines() == 1
}

// Validate checks that the edit describes a well-formed range.
func (e Edit) Validate() error {
	switch {
	case e.StartLine < 0 || e.StartCol < 0 || e.EndLine < 0 || e.EndCol < 0:
		return fmt.Errorf("%w: negative position %s", ErrInvalidEdit, e)
	case e.EndLine < e.StartLine:
		return fmt.Errorf("%w: end line before start line %s", ErrInvalidEdit, e)
	case e.EndLine == e.StartLine && e.EndCol < e.StartCol:
		return fmt.Errorf("%w: end column before start column %s", ErrInvalidEdit, e)
	}
	return nil
}

// String renders the edit range as "start:col-end:col".
func (e Edit) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", e.StartLine, e.StartCol, e.EndLine, e.EndCol)
}

// BatchError reports the first malformed edit of a batch.
type BatchError struct {
	Index int
	Edit  Edit
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("edit %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Validate checks every edit and returns a *BatchError for the first
// malformed one.
func (b Batch) Validate() error {
	for i, e := range b {
		if err := e.Validate(); err != nil {
			return &BatchError{Index: i, Edit: e, Err: err}
		}
	}
	return nil
}
