package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/linemark/internal/core/config"
)

// Gutter draws the sign column of the viewer. It implements
// linemark.Renderer.
type Gutter struct {
	lines map[int]struct{}

	icon       string
	renderLine bool
	border     string

	signStyle lipgloss.Style
	lineStyle lipgloss.Style
}

// NewGutter creates a gutter styled after cfg.
func NewGutter(cfg config.RenderConfig) *Gutter {
	color := lipgloss.Color(cfg.LineColor)
	return &Gutter{
		lines:      make(map[int]struct{}),
		icon:       cfg.GutterIcon,
		renderLine: cfg.RenderLine,
		border:     lineBorder(cfg.LineStyle),
		signStyle:  lipgloss.NewStyle().Foreground(color).Bold(true),
		lineStyle:  lipgloss.NewStyle().Foreground(color),
	}
}

func lineBorder(style config.LineStyle) string {
	switch style {
	case config.LineStyleDashed:
		return "╎"
	case config.LineStyleDotted:
		return "┆"
	default:
		return "│"
	}
}

func (g *Gutter) RenderMark(line int)   { g.lines[line] = struct{}{} }
func (g *Gutter) UnrenderMark(line int) { delete(g.lines, line) }
func (g *Gutter) ClearAllRenders()      { clear(g.lines) }

// Marked reports whether line currently has a sign.
func (g *Gutter) Marked(line int) bool {
	_, ok := g.lines[line]
	return ok
}

// Count returns the number of drawn signs.
func (g *Gutter) Count() int { return len(g.lines) }

// Sign returns the sign column for line, padded to a fixed width.
func (g *Gutter) Sign(line int) string {
	if g.Marked(line) {
		return g.signStyle.Render(g.icon)
	}
	return strings.Repeat(" ", lipgloss.Width(g.icon))
}

// Line decorates the text of a marked line when whole-line rendering is on.
func (g *Gutter) Line(line int, text string) string {
	if !g.renderLine || !g.Marked(line) {
		return text
	}
	return g.lineStyle.Render(g.border) + " " + text
}
