package ebnfkit

import "io"

// Trace the parse to "w".
//
// Each expression evaluated is written on its own line, indented by its depth on the work
// stack, along with the position and character it was evaluated at.
func Trace(w io.Writer) Option {
	return func(p *Parser) error {
		p.trace = w
		return nil
	}
}
