package ebnfkit

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/ebnfkit/cursor"
)

// Expr is a recogniser.
//
// Expressions are built with the constructors in this package and hold no parse state, so a
// single Expr may be shared between grammars and used by concurrent parses.
type Expr interface {
	// Advance the evaluation of f given the outcome of the child most recently evaluated on
	// its behalf (nil when the frame is first entered). Returns either the next child to
	// evaluate at f.at, or the outcome of the frame itself.
	step(f *frame, child *outcome) (Expr, *outcome)
}

// "..."
type literal struct {
	s     string
	runes []rune
}

// Literal matches s exactly.
//
// On failure the error is positioned at the first character that differs from s.
func Literal(s string) Expr {
	return &literal{s: s, runes: []rune(s)}
}

func (l *literal) step(f *frame, _ *outcome) (Expr, *outcome) {
	c := f.at
	for _, rn := range l.runes {
		if c.Peek() != rn {
			return nil, f.fail(c, strconv.Quote(l.s))
		}
		c.Advance()
	}
	return nil, f.leaf(f.at.Text(c), c)
}

// A single character satisfying a predicate.
type class struct {
	description string
	match       func(rn rune) bool
}

// Class matches a single character for which match returns true.
//
// description is used in error messages and when rendering the grammar.
func Class(description string, match func(rn rune) bool) Expr {
	return &class{description: description, match: match}
}

var anyCharacter = &class{description: "character", match: func(rune) bool { return true }}

// Any matches any single character.
func Any() Expr { return anyCharacter }

func (c *class) step(f *frame, _ *outcome) (Expr, *outcome) {
	rn := f.at.Peek()
	if rn == cursor.EOF || !c.match(rn) {
		return nil, f.fail(f.at, c.description)
	}
	end := f.at
	end.Advance()
	return nil, f.leaf(f.at.Text(end), end)
}

// <expr> , <expr> ...
type sequence struct {
	exprs []Expr
}

// Sequence matches each of exprs in order.
//
// If any element fails the whole sequence fails and no input is consumed.
func Sequence(exprs ...Expr) Expr {
	return &sequence{exprs: exprs}
}

func (s *sequence) step(f *frame, child *outcome) (Expr, *outcome) {
	if child != nil {
		if child.err != nil {
			return nil, child
		}
		f.children = append(f.children, child.node)
		f.at = child.end
		f.index++
	}
	if f.index < len(s.exprs) {
		return s.exprs[f.index], nil
	}
	return nil, f.composite(SequenceNode)
}

// <expr> | <expr> ...
type choice struct {
	exprs []Expr
}

// Choice tries each of exprs in order, and matches the first that succeeds.
//
// Once an alternative has matched, later alternatives are never considered, even if
// something following the choice subsequently fails.
func Choice(exprs ...Expr) Expr {
	return &choice{exprs: exprs}
}

func (c *choice) step(f *frame, child *outcome) (Expr, *outcome) {
	if child != nil {
		if child.err == nil {
			return nil, child
		}
		f.failures = append(f.failures, child.err)
		f.index++
	}
	if f.index < len(c.exprs) {
		return c.exprs[f.index], nil
	}
	if len(f.failures) == 0 {
		return nil, f.fail(f.at, "nothing")
	}
	return nil, &outcome{err: mergeFailures(f.failures)}
}

// { <expr> }
type repetition struct {
	expr Expr
}

// Repeat matches expr zero or more times.
//
// Repetition is greedy: it never gives back a match to let a following expression succeed.
// It also stops on a match that consumes no input.
func Repeat(expr Expr) Expr {
	return &repetition{expr: expr}
}

func (r *repetition) step(f *frame, child *outcome) (Expr, *outcome) {
	if child != nil {
		if child.err != nil || child.end.Offset() == f.at.Offset() {
			return nil, f.composite(RepetitionNode)
		}
		f.children = append(f.children, child.node)
		f.at = child.end
	}
	return r.expr, nil
}

// [ <expr> ]
type optional struct {
	expr Expr
}

// Optional matches expr zero or one times. It always succeeds.
func Optional(expr Expr) Expr {
	return &optional{expr: expr}
}

func (o *optional) step(f *frame, child *outcome) (Expr, *outcome) {
	if child == nil {
		return o.expr, nil
	}
	if child.err == nil {
		f.children = append(f.children, child.node)
		f.at = child.end
	}
	return nil, f.composite(OptionalNode)
}

// <expr> - <expr> ...
type exclusion struct {
	expr   Expr
	except []Expr
}

// Exclude matches expr, but only if none of except match at the same position.
//
// eg. Exclude(Any(), Literal(`"`)) matches any character other than a double quote.
func Exclude(expr Expr, except ...Expr) Expr {
	return &exclusion{expr: expr, except: except}
}

func (e *exclusion) step(f *frame, child *outcome) (Expr, *outcome) {
	switch {
	case child == nil:
		return e.expr, nil

	case f.held == nil:
		if child.err != nil {
			return nil, child
		}
		f.held = child
		f.probing = true

	default:
		if child.err == nil {
			return nil, f.fail(f.at, stringer(e.expr)+" excluding "+stringer(e.except[f.index]))
		}
		f.index++
	}
	if f.index < len(e.except) {
		return e.except[f.index], nil
	}
	return nil, f.held
}

// A Rule is a named expression.
//
// Rules may be declared before they are defined, which allows mutually recursive grammars:
//
//	expr := ebnfkit.Declare("Expr")
//	group := ebnfkit.Named("Group", ebnfkit.Sequence(ebnfkit.Literal("("), expr, ebnfkit.Literal(")")))
//	expr.Define(ebnfkit.Choice(group, ebnfkit.Literal("x")))
type Rule struct {
	name    string
	lexical bool
	expr    Expr
}

// Declare a Rule that will be defined later with Define.
func Declare(name string) *Rule {
	return &Rule{name: name}
}

// Named creates a Rule.
func Named(name string, expr Expr) *Rule {
	return Declare(name).Define(expr)
}

// Lexical creates a Rule whose matches are treated as a single string.
//
// Lexical rules export as their matched text rather than as a list of children.
func Lexical(name string, expr Expr) *Rule {
	r := Named(name, expr)
	r.lexical = true
	return r
}

// Define the expression of a declared Rule.
//
// Panics if the Rule is already defined.
func (r *Rule) Define(expr Expr) *Rule {
	if r.expr != nil {
		panic(fmt.Sprintf("rule %s is already defined", r.name))
	}
	r.expr = expr
	return r
}

// Name of the Rule.
func (r *Rule) Name() string { return r.name }

// IsLexical returns true if the Rule was created with Lexical.
func (r *Rule) IsLexical() bool { return r.lexical }

// Expr returns the expression defining the Rule, or nil if it has not been defined.
func (r *Rule) Expr() Expr { return r.expr }

func (r *Rule) String() string { return r.name }

func (r *Rule) step(f *frame, child *outcome) (Expr, *outcome) {
	if child == nil {
		return r.expr, nil
	}
	if child.err != nil {
		return nil, &outcome{err: r.relabel(f, child.err)}
	}
	node := &Node{
		Type:    RuleNode,
		Name:    r.name,
		Lexical: r.lexical,
		Pos:     f.start.Position(),
		EndPos:  child.end.Position(),
	}
	if child.node.Type == SequenceNode {
		node.Children = child.node.Children
	} else {
		node.Children = []*Node{child.node}
	}
	return nil, &outcome{node: node, end: child.end}
}

// A rule that fails before consuming anything describes the failure by its own name, unless
// a more specific non-lexical rule has already done so.
func (r *Rule) relabel(f *frame, err *SyntaxError) *SyntaxError {
	if err.Pos.Offset != f.start.Offset() || err.labelled {
		return err
	}
	relabelled := *err
	relabelled.Expected = r.name
	relabelled.alternatives = []string{r.name}
	relabelled.labelled = !r.lexical
	return &relabelled
}
