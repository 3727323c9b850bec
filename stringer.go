package ebnfkit

import (
	"fmt"
	"strconv"
	"strings"
)

// Binding strength of the context an expression is rendered in.
const (
	precTop = iota
	precChoice
	precSequence
	precExclusion
)

type stringerVisitor struct {
	strings.Builder
}

// Render an expression in EBNF. Rules are referenced by name and not expanded.
func stringer(e Expr) string {
	v := &stringerVisitor{}
	v.visit(e, precTop)
	return v.String()
}

func (s *stringerVisitor) visit(e Expr, prec int) {
	switch e := e.(type) {
	case *Rule:
		s.WriteString(e.name)

	case *literal:
		s.WriteString(strconv.Quote(e.s))

	case *class:
		s.WriteString(e.description)

	case *sequence:
		s.list(e.exprs, " , ", prec >= precSequence, precSequence)

	case *choice:
		s.list(e.exprs, " | ", prec >= precChoice, precChoice)

	case *repetition:
		s.WriteString("{ ")
		s.visit(e.expr, precTop)
		s.WriteString(" }")

	case *optional:
		s.WriteString("[ ")
		s.visit(e.expr, precTop)
		s.WriteString(" ]")

	case *exclusion:
		group := prec >= precExclusion
		if group {
			s.WriteString("( ")
		}
		s.visit(e.expr, precExclusion)
		for _, except := range e.except {
			s.WriteString(" - ")
			s.visit(except, precExclusion)
		}
		if group {
			s.WriteString(" )")
		}

	case nil:
		s.WriteString("<nil>")

	default:
		panic(fmt.Sprintf("unsupported expression type %T", e))
	}
}

func (s *stringerVisitor) list(exprs []Expr, sep string, group bool, prec int) {
	group = group && len(exprs) > 1
	if group {
		s.WriteString("( ")
	}
	for i, e := range exprs {
		if i > 0 {
			s.WriteString(sep)
		}
		s.visit(e, prec)
	}
	if group {
		s.WriteString(" )")
	}
}
