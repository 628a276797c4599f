// Package viewer implements the Bubble Tea document viewer: a read-mostly
// view of one file with a mark gutter, line editing and mark navigation.
package viewer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/hay-kot/linemark/internal/core/config"
	"github.com/hay-kot/linemark/internal/core/document"
	"github.com/hay-kot/linemark/internal/core/marks"
	"github.com/hay-kot/linemark/internal/linemark"
	"github.com/hay-kot/linemark/internal/store/jsonfile"
)

// storeChangedMsg is sent when the marks file changed on disk.
type storeChangedMsg struct {
	event jsonfile.ChangeEvent
}

// Deps are the collaborators of the viewer.
type Deps struct {
	Doc    *document.Document
	Marks  *linemark.MarkStore
	Gutter *Gutter
	Cursor *Cursor
	Config *config.Config
	Log    zerolog.Logger

	// Changes delivers store file changes. Nil disables reloading.
	Changes <-chan jsonfile.ChangeEvent
}

// Model is the viewer's Bubble Tea model.
type Model struct {
	ctx  context.Context
	deps Deps

	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	anchor     *int // start line of an active V selection
	status     string
	confirmQ   bool
	discarded  bool
	height     int
	numWidth   int
	alignTop   bool
	cursorEdge config.CursorPosition
}

// New creates the viewer model. The MarkStore must already be activated for
// the document and wired to deps.Gutter and deps.Cursor.
func New(ctx context.Context, deps Deps) *Model {
	m := &Model{
		ctx:        ctx,
		deps:       deps,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		viewport:   viewport.New(80, 20),
		cursorEdge: config.CursorLineStart,
	}
	if deps.Config != nil {
		m.alignTop = deps.Config.Navigation.AlignTop
		m.cursorEdge = deps.Config.Navigation.CursorPosition
	}
	m.refresh()
	return m
}

// NewCursorFor creates a cursor bounded by the lines of doc.
func NewCursorFor(doc *document.Document) *Cursor {
	return NewCursor(doc.Len)
}

// Discarded reports whether the user quit without writing pending document
// changes. Marks must not be flushed in that case.
func (m *Model) Discarded() bool { return m.discarded }

// Status returns the current status line text.
func (m *Model) Status() string { return m.status }

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.deps.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{event: event}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.help.Width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case storeChangedMsg:
		if m.deps.Marks.Reload(m.ctx) {
			m.deps.Log.Debug().Str("path", msg.event.Path).Msg("marks reloaded from disk")
			m.status = "marks reloaded"
			m.refresh()
		}
		return m, m.waitForChange()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQ = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.deps.Doc.Dirty() && !m.confirmQ {
			m.confirmQ = true
			m.status = "unsaved changes: w to write, q again to discard"
			return m, nil
		}
		m.discarded = m.deps.Doc.Dirty()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.deps.Cursor.Move(-1)
		m.status = ""

	case key.Matches(msg, m.keys.Down):
		m.deps.Cursor.Move(1)
		m.status = ""

	case key.Matches(msg, m.keys.Select):
		if m.anchor != nil {
			m.anchor = nil
			m.status = ""
		} else {
			line := m.deps.Cursor.Line()
			m.anchor = &line
			m.status = "-- SELECT --"
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggle()

	case key.Matches(msg, m.keys.Next):
		m.navigate(m.deps.Marks.NavigateNext)

	case key.Matches(msg, m.keys.Prev):
		m.navigate(m.deps.Marks.NavigatePrev)

	case key.Matches(msg, m.keys.OpenBelow):
		line := m.deps.Cursor.Line()
		m.apply(m.deps.Doc.InsertLineBelow(line))
		m.deps.Cursor.Move(1)

	case key.Matches(msg, m.keys.Delete):
		m.apply(m.deps.Doc.DeleteLine(m.deps.Cursor.Line()))

	case key.Matches(msg, m.keys.Join):
		if e, ok := m.deps.Doc.JoinLines(m.deps.Cursor.Line()); ok {
			m.apply(e)
		}

	case key.Matches(msg, m.keys.ClearAll):
		n := len(m.deps.Marks.Lines())
		if err := m.deps.Marks.ClearAll(m.ctx); err != nil {
			m.status = "clear failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("cleared %d mark(s)", n)
		}

	case key.Matches(msg, m.keys.Write):
		m.write()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()

	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m *Model) toggle() {
	cur := m.deps.Cursor.Line()
	sel := linemark.Selection{Lines: []int{cur}}
	if m.anchor != nil {
		r := linemark.LineRange{Start: min(*m.anchor, cur), End: max(*m.anchor, cur)}
		sel.Range = &r
		m.anchor = nil
	}

	change := m.deps.Marks.Toggle(m.ctx, sel)
	switch {
	case len(change.Added) > 0:
		m.status = fmt.Sprintf("marked %d line(s)", len(change.Added))
	case len(change.Removed) > 0:
		m.status = fmt.Sprintf("unmarked %d line(s)", len(change.Removed))
	}
}

func (m *Model) navigate(fn func() (int, bool)) {
	line, ok := fn()
	if !ok {
		m.status = "no marks"
		return
	}
	m.status = fmt.Sprintf("mark %d/%d", slices.Index(m.deps.Marks.Lines(), line)+1, len(m.deps.Marks.Lines()))
}

func (m *Model) apply(e marks.Edit) {
	batch := marks.Batch{e}
	if err := m.deps.Doc.Apply(batch); err != nil {
		m.status = "edit failed: " + err.Error()
		return
	}
	m.deps.Marks.ApplyEditBatch(m.ctx, batch)
	m.deps.Cursor.Clamp()
	m.status = ""
}

func (m *Model) write() {
	if err := m.deps.Doc.Save(); err != nil {
		m.status = "write failed: " + err.Error()
		return
	}
	if err := m.deps.Marks.Flush(m.ctx); err != nil {
		m.status = "write failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("written %d line(s)", m.deps.Doc.Len())
}

// layout sizes the viewport to the window minus the status and help lines.
func (m *Model) layout() {
	if m.height == 0 {
		return
	}
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	m.viewport.Height = max(m.height-1-helpHeight, 1)
}

// refresh rebuilds the viewport content and scrolls the cursor into view.
func (m *Model) refresh() {
	m.numWidth = len(fmt.Sprint(m.deps.Doc.Len()))
	m.viewport.SetContent(m.renderLines())

	cur := m.deps.Cursor.Line()
	top := m.viewport.YOffset
	switch {
	case m.deps.Cursor.TakeJump() && m.alignTop:
		m.viewport.SetYOffset(cur)
	case cur < top:
		m.viewport.SetYOffset(cur)
	case cur >= top+m.viewport.Height:
		m.viewport.SetYOffset(cur - m.viewport.Height + 1)
	}
}

func (m *Model) renderLines() string {
	var b strings.Builder
	cur := m.deps.Cursor.Line()

	for i, text := range m.deps.Doc.Lines() {
		if i > 0 {
			b.WriteByte('\n')
		}

		pointer := " "
		if i == cur {
			pointer = cursorStyle.Render(m.cursorGlyph())
		}

		num := lineNumberStyle.Render(fmt.Sprintf("%*d", m.numWidth, i+1))
		line := m.deps.Gutter.Line(i, text)
		if m.selected(i) {
			line = selectionStyle.Render(line)
		}

		fmt.Fprintf(&b, "%s%s %s %s", pointer, m.deps.Gutter.Sign(i), num, line)
	}

	return b.String()
}

func (m *Model) cursorGlyph() string {
	if m.cursorEdge == config.CursorLineEnd {
		return "<"
	}
	return ">"
}

func (m *Model) selected(line int) bool {
	if m.anchor == nil {
		return false
	}
	cur := m.deps.Cursor.Line()
	return line >= min(*m.anchor, cur) && line <= max(*m.anchor, cur)
}

func (m *Model) View() string {
	name := m.deps.Doc.Path()
	if m.deps.Doc.Dirty() {
		name += " [+]"
	}

	status := statusStyle.Render(fmt.Sprintf("%s  %d:%d  %d mark(s)",
		name, m.deps.Cursor.Line()+1, m.deps.Doc.Len(), m.deps.Gutter.Count()))
	if m.status != "" {
		status += "  " + messageStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		status,
		m.help.View(m.keys),
	)
}
