package ebnfkit

import (
	"fmt"
	"strings"
)

// String returns the EBNF for the grammar.
func (p *Parser) String() string {
	return Render(p.root)
}

// Render the EBNF for every Rule reachable from start, one rule per line, in the order they
// are first reached.
//
// Character classes are rendered as their description.
func Render(start Expr) string {
	out := []string{}
	_ = visit(start, func(e Expr, next func() error) error {
		if r, ok := e.(*Rule); ok && r.expr != nil {
			out = append(out, fmt.Sprintf("%s = %s ;", r.name, stringer(r.expr)))
		}
		return next()
	})
	return strings.Join(out, "\n")
}
