package cursor

import "fmt"

// Position of a character in the input.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Offset: %d, Line: %d, Column: %d}",
		p.Filename, p.Offset, p.Line, p.Column)
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// Describe a rune for use in error messages.
//
// EOF is described as "end of input".
func Describe(rn rune) string {
	if rn == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", rn)
}
