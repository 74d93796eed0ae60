package episode

// charsPerLine is the assumed average line width used to estimate a line
// number from a character offset.
const charsPerLine = 80

type cursorKind int

const (
	cursorLine cursorKind = iota
	cursorOffset
)

// Cursor is a cursor position recorded as either a line number or a
// character offset. Construct with CursorAtLine or CursorAtOffset and
// convert with Line; the variant is not re-inspected anywhere else.
type Cursor struct {
	kind  cursorKind
	value int
}

// CursorAtLine returns a cursor positioned at the given line number.
func CursorAtLine(line int) *Cursor {
	return &Cursor{kind: cursorLine, value: line}
}

// CursorAtOffset returns a cursor positioned at the given character offset
// from the start of the buffer.
func CursorAtOffset(offset int) *Cursor {
	return &Cursor{kind: cursorOffset, value: offset}
}

// Line converts the cursor to a line number. Offsets are estimated at
// charsPerLine characters per line, floored at line 1.
func (c *Cursor) Line() int {
	if c.kind == cursorLine {
		return c.value
	}
	line := c.value / charsPerLine
	if line < 1 {
		return 1
	}
	return line
}
