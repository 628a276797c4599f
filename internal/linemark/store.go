// Package linemark coordinates the marked lines of the active document with
// the host's renderer, cursor and persistent storage.
package linemark

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/linemark/internal/core/logging"
	"github.com/hay-kot/linemark/internal/core/marks"
)

// State is the lifecycle state of the active document's marks.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateDirty
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateDirty:
		return "dirty"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// LineRange is an inclusive range of lines from a single selection.
type LineRange struct {
	Start int
	End   int
}

// Multiline reports whether the range covers more than one line.
func (r LineRange) Multiline() bool {
	return r.End > r.Start
}

// Selection is the input of a toggle. Lines holds one line per cursor. Range
// is set when the toggle comes from a single selection spanning lines.
type Selection struct {
	Lines []int
	Range *LineRange
}

// Change lists the lines a toggle added and removed.
type Change struct {
	Added   []int
	Removed []int
}

// MarkStore owns the marked lines of the active document. It is not safe for
// concurrent use; the host feeds it one event at a time.
type MarkStore struct {
	persist Persistence
	render  Renderer
	cursor  Cursor
	log     zerolog.Logger

	doc      string
	marks    *marks.Set
	rendered map[int]struct{}
	state    State
}

// NewMarkStore creates a MarkStore. A nil renderer discards render calls and
// a nil cursor disables navigation.
func NewMarkStore(persist Persistence, render Renderer, cursor Cursor, logger zerolog.Logger) *MarkStore {
	if render == nil {
		render = NopRenderer{}
	}
	return &MarkStore{
		persist:  persist,
		render:   render,
		cursor:   cursor,
		log:      logger,
		marks:    marks.NewSet(),
		rendered: make(map[int]struct{}),
	}
}

// DocumentID returns the active document, or "" when none is active.
func (s *MarkStore) DocumentID() string { return s.doc }

// State returns the lifecycle state of the active document.
func (s *MarkStore) State() State { return s.state }

// Lines returns the marked lines of the active document in ascending order.
func (s *MarkStore) Lines() []int { return s.marks.Lines() }

// Marked reports whether line is marked.
func (s *MarkStore) Marked(line int) bool { return s.marks.Has(line) }

// Activate switches to doc. The marks of the previous document are flushed
// first unless that document no longer exists. The marks of doc are then
// loaded and rendered; load failures leave doc with no marks.
func (s *MarkStore) Activate(ctx context.Context, doc string) {
	if s.doc != "" && s.persist.Exists(s.doc) {
		if err := s.Flush(ctx); err != nil {
			s.log.Warn().Ctx(ctx).Err(err).Str("previous", s.doc).Msg("failed to flush marks before switching document")
		}
	}

	s.unrenderAll()
	s.marks.Clear()
	s.doc = doc
	s.state = StateUnloaded

	if doc == "" {
		return
	}

	ctx = logging.WithDocument(ctx, doc)
	lines, err := s.persist.Load(ctx, doc)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("failed to load marks, starting empty")
		lines = nil
	}

	s.marks.Replace(lines)
	s.renderAll()
	s.state = StateLoaded

	s.log.Debug().Ctx(ctx).Ints("lines", s.marks.Lines()).Msg("document activated")
}

// Reload re-reads the active document's marks from persistence. It is a no-op
// while local changes are pending so they are not overwritten.
func (s *MarkStore) Reload(ctx context.Context) bool {
	if s.doc == "" || s.state == StateDirty {
		return false
	}

	ctx = logging.WithDocument(ctx, s.doc)
	lines, err := s.persist.Load(ctx, s.doc)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("failed to reload marks")
		return false
	}

	s.unrenderAll()
	s.marks.Replace(lines)
	s.renderAll()
	s.state = StateLoaded
	return true
}

// Toggle marks or unmarks the selected lines. A multi-line range whose every
// line is already marked is unmarked as a whole. Otherwise every unmarked
// line in sel.Lines is marked, and only when none was new are all of
// sel.Lines unmarked.
func (s *MarkStore) Toggle(ctx context.Context, sel Selection) Change {
	var change Change
	if s.doc == "" {
		return change
	}

	if r := sel.Range; r != nil && r.Multiline() && s.marks.CoversRange(r.Start, r.End) {
		for _, line := range marks.LinesRange(r.Start, r.End) {
			if s.marks.Remove(line) {
				s.unrender(line)
				change.Removed = append(change.Removed, line)
			}
		}
		s.touch(ctx, change)
		return change
	}

	for _, line := range sel.Lines {
		if s.marks.Add(line) {
			s.renderLine(line)
			change.Added = append(change.Added, line)
		}
	}

	if len(change.Added) == 0 {
		for _, line := range sel.Lines {
			if s.marks.Remove(line) {
				s.unrender(line)
				change.Removed = append(change.Removed, line)
			}
		}
	}

	s.touch(ctx, change)
	return change
}

// ClearAll drops every mark of the active document, releases all renders and
// persists the empty set.
func (s *MarkStore) ClearAll(ctx context.Context) error {
	if s.doc == "" {
		return nil
	}

	s.marks.Clear()
	s.unrenderAll()
	s.render.ClearAllRenders()
	s.state = StateDirty

	return s.Flush(ctx)
}

// ApplyEditBatch remaps the marks through every edit of batch in order and
// redraws them. Malformed edits are skipped.
func (s *MarkStore) ApplyEditBatch(ctx context.Context, batch marks.Batch) []int {
	if s.doc == "" || len(batch) == 0 || s.marks.Empty() {
		return s.marks.Lines()
	}

	ctx = logging.WithDocument(ctx, s.doc)
	valid := make(marks.Batch, 0, len(batch))
	for _, e := range batch {
		if err := e.Validate(); err != nil {
			s.log.Warn().Ctx(ctx).Err(err).Msg("skipping edit")
			continue
		}
		valid = append(valid, e)
	}

	before := s.marks.Lines()
	s.marks.Replace(marks.RemapBatch(before, valid))

	// Decorations are line-indexed and identities may have shifted, so every
	// decoration is rebuilt.
	s.unrenderAll()
	s.render.ClearAllRenders()
	s.renderAll()
	s.state = StateDirty

	s.log.Debug().Ctx(ctx).
		Int("edits", len(valid)).
		Ints("before", before).
		Ints("after", s.marks.Lines()).
		Msg("remapped marks")

	return s.marks.Lines()
}

// NavigateNext moves the cursor to the next mark, wrapping around. It returns
// the target line and false when there is nothing to navigate to.
func (s *MarkStore) NavigateNext() (int, bool) {
	return s.navigate(marks.Next)
}

// NavigatePrev moves the cursor to the previous mark, wrapping around.
func (s *MarkStore) NavigatePrev() (int, bool) {
	return s.navigate(marks.Prev)
}

func (s *MarkStore) navigate(target func([]int, int) int) (int, bool) {
	if s.cursor == nil {
		return 0, false
	}

	current := s.cursor.Line()
	if s.marks.Empty() {
		return current, false
	}

	line := target(s.marks.Lines(), current)
	s.log.Debug().Int("from", current).Int("to", line).Msg("navigate")
	s.cursor.MoveTo(line)
	return line, true
}

// Flush persists the marks of the active document.
func (s *MarkStore) Flush(ctx context.Context) error {
	if s.doc == "" {
		return nil
	}

	if err := s.persist.Save(logging.WithDocument(ctx, s.doc), s.doc, s.marks.Lines()); err != nil {
		return fmt.Errorf("save marks for %s: %w", s.doc, err)
	}

	s.state = StateLoaded
	return nil
}

// Close flushes the active document and unloads it.
func (s *MarkStore) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	s.unrenderAll()
	s.marks.Clear()
	s.doc = ""
	s.state = StateUnloaded
	return err
}

func (s *MarkStore) touch(ctx context.Context, change Change) {
	if len(change.Added) == 0 && len(change.Removed) == 0 {
		return
	}
	s.state = StateDirty
	s.log.Debug().Ctx(logging.WithDocument(ctx, s.doc)).
		Ints("added", change.Added).
		Ints("removed", change.Removed).
		Msg("toggled marks")
}

func (s *MarkStore) renderAll() {
	for _, line := range s.marks.Lines() {
		s.renderLine(line)
	}
}

func (s *MarkStore) renderLine(line int) {
	s.rendered[line] = struct{}{}
	s.render.RenderMark(line)
}

func (s *MarkStore) unrender(line int) {
	if _, ok := s.rendered[line]; !ok {
		return
	}
	delete(s.rendered, line)
	s.render.UnrenderMark(line)
}

func (s *MarkStore) unrenderAll() {
	for line := range s.rendered {
		s.render.UnrenderMark(line)
	}
	clear(s.rendered)
}
