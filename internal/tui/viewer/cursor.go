package viewer

// Cursor is the viewer's line cursor. It implements linemark.Cursor.
type Cursor struct {
	line   int
	count  func() int
	jumped bool
}

// NewCursor creates a cursor on line 0. count reports the number of lines
// the cursor may move over.
func NewCursor(count func() int) *Cursor {
	return &Cursor{count: count}
}

func (c *Cursor) Line() int { return c.line }

// MoveTo moves the cursor as the result of a jump, such as navigating to a
// mark.
func (c *Cursor) MoveTo(line int) {
	c.set(line)
	c.jumped = true
}

// Move moves the cursor by delta lines.
func (c *Cursor) Move(delta int) {
	c.set(c.line + delta)
}

// Clamp keeps the cursor inside the document after its length changed.
func (c *Cursor) Clamp() {
	c.set(c.line)
}

// TakeJump reports whether the cursor jumped since the last call.
func (c *Cursor) TakeJump() bool {
	j := c.jumped
	c.jumped = false
	return j
}

func (c *Cursor) set(line int) {
	if n := c.count(); line >= n {
		line = n - 1
	}
	c.line = max(line, 0)
}
