package cursor

import (
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	// EOF is returned by Peek when the input is exhausted.
	EOF rune = -(iota + 1)
)

// The backing store shared by a cursor and all of its forks. Never mutated after creation.
type buffer struct {
	filename string
	text     string
}

// Cursor is a position within a buffered input.
//
// The zero value is not usable; create one with New, NewBytes or Read. Cursors are values:
// assigning one to another variable forks it.
type Cursor struct {
	buf *buffer
	// Byte index into buf.text.
	index int
	pos   Position
}

// New creates a Cursor at the start of input.
//
// Input is not required to be valid UTF-8. Each invalid byte is a single character that
// Peek reports as utf8.RuneError, and text taken from the input keeps the original bytes.
func New(filename string, input string) Cursor {
	return Cursor{
		buf: &buffer{filename: filename, text: input},
		pos: Position{Filename: filename, Line: 1, Column: 1},
	}
}

// NewBytes creates a Cursor at the start of input.
func NewBytes(filename string, input []byte) Cursor {
	return New(filename, string(input))
}

// Read buffers the whole of r and returns a Cursor at its start.
//
// Readers can only be traversed once, so the content is read fully before any matching
// takes place.
func Read(filename string, r io.Reader) (Cursor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Cursor{}, fmt.Errorf("failed to read %q: %w", filename, err)
	}
	return NewBytes(filename, data), nil
}

// Peek at the current character without consuming it.
//
// Returns EOF at the end of the input.
func (c Cursor) Peek() rune {
	rn, _ := c.peek()
	return rn
}

func (c Cursor) peek() (rune, int) {
	if c.index >= len(c.buf.text) {
		return EOF, 0
	}
	return utf8.DecodeRuneInString(c.buf.text[c.index:])
}

// Advance past the current character.
//
// A newline moves to column 1 of the next line. Advancing at EOF does nothing.
func (c *Cursor) Advance() {
	rn, width := c.peek()
	if rn == EOF {
		return
	}
	c.index += width
	c.pos.Offset = c.index
	if rn == '\n' {
		c.pos.Line++
		c.pos.Column = 1
	} else {
		c.pos.Column++
	}
}

// Fork creates an independent Cursor at the current position.
func (c Cursor) Fork() Cursor {
	return c
}

// Commit moves this Cursor to the position of fork.
//
// fork must have been derived from the same input.
func (c *Cursor) Commit(fork Cursor) {
	if fork.buf != c.buf {
		panic("cursor: commit of a fork from a different input")
	}
	if fork.index < c.index {
		panic("cursor: commit would move backwards")
	}
	*c = fork
}

// AtEnd returns true if the input is exhausted.
func (c Cursor) AtEnd() bool {
	return c.Peek() == EOF
}

// Position of the current character.
func (c Cursor) Position() Position {
	return c.pos
}

// Offset in bytes of the current character.
func (c Cursor) Offset() int {
	return c.pos.Offset
}

// Len returns the number of characters in the whole input.
func (c Cursor) Len() int {
	return utf8.RuneCountInString(c.buf.text)
}

// Text returns the input between this Cursor and end, byte for byte.
func (c Cursor) Text(end Cursor) string {
	if end.buf != c.buf || end.index < c.index {
		return ""
	}
	return c.buf.text[c.index:end.index]
}

func (c Cursor) String() string {
	return fmt.Sprintf("%s %s", c.pos, Describe(c.Peek()))
}
