package ebnfkit

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/v2/stacks/arraystack"

	"github.com/alecthomas/ebnfkit/cursor"
)

// A pending expression evaluation on the work stack.
type frame struct {
	expr Expr
	// Where evaluation of expr began. Never changes.
	start cursor.Cursor
	// Evolving fork. Children are always evaluated here, and it is only moved forward when a
	// child succeeds.
	at       cursor.Cursor
	index    int
	children []*Node
	failures []*SyntaxError
	held     *outcome
	// Set while the frame is evaluating a lookahead whose failures are expected.
	probing bool
	quiet   bool
	depth   int
}

// The result of evaluating a frame: either a node and the position after it, or an error.
type outcome struct {
	node *Node
	end  cursor.Cursor
	err  *SyntaxError
}

func (f *frame) fail(at cursor.Cursor, expected string) *outcome {
	return &outcome{err: newSyntaxError(at, expected)}
}

func (f *frame) leaf(text string, end cursor.Cursor) *outcome {
	return &outcome{
		node: &Node{Type: LeafNode, Text: text, Pos: f.start.Position(), EndPos: end.Position()},
		end:  end,
	}
}

func (f *frame) composite(typ NodeType) *outcome {
	return &outcome{
		node: &Node{Type: typ, Children: f.children, Pos: f.start.Position(), EndPos: f.at.Position()},
		end:  f.at,
	}
}

// Context for a single parse.
type parseContext struct {
	*Parser
	stack *arraystack.Stack[*frame]
	steps int
	// The failure furthest into the input seen so far.
	deepest *SyntaxError
}

func newParseContext(p *Parser) *parseContext {
	return &parseContext{
		Parser: p,
		stack:  arraystack.New[*frame](),
	}
}

func (p *parseContext) push(expr Expr, at cursor.Cursor, parent *frame) {
	f := &frame{expr: expr, start: at, at: at}
	if parent != nil {
		f.quiet = parent.quiet || parent.probing
		f.depth = parent.depth + 1
	}
	if p.trace != nil {
		fmt.Fprintf(p.trace, "%s%s %s %s\n", strings.Repeat(" ", f.depth*2), at.Position(), cursor.Describe(at.Peek()), stringer(expr))
	}
	p.stack.Push(f)
}

// Record a failure if it is at least as deep as any seen so far. At equal depth the most
// recent failure wins, as it has been described by the outermost expression.
func (p *parseContext) record(err *SyntaxError) {
	if p.deepest == nil || err.Pos.Offset >= p.deepest.Pos.Offset {
		p.deepest = err
	}
}

// Evaluate expr at "at".
//
// Evaluation uses an explicit stack of frames rather than recursion, so the depth of
// nesting in the grammar or the input is bounded only by memory.
func (p *parseContext) run(expr Expr, at cursor.Cursor) (*outcome, error) {
	p.push(expr, at, nil)
	var last *outcome
	for !p.stack.Empty() {
		f, _ := p.stack.Peek()
		p.steps++
		if p.maxSteps > 0 && p.steps > p.maxSteps {
			return nil, &StructuralError{Pos: f.at.Position(), Err: ErrStepLimit, Detail: fmt.Sprintf("limit is %d", p.maxSteps)}
		}
		next, out := f.expr.step(f, last)
		last = nil
		if next != nil {
			p.push(next, f.at, f)
			continue
		}
		if out == nil {
			return nil, &StructuralError{Pos: f.at.Position(), Err: ErrInternal, Detail: fmt.Sprintf("%s produced no outcome", stringer(f.expr))}
		}
		p.stack.Pop()
		if out.err != nil && !f.quiet {
			p.record(out.err)
		}
		last = out
	}
	if last == nil {
		return nil, &StructuralError{Pos: at.Position(), Err: ErrInternal, Detail: "work stack drained without an outcome"}
	}
	return last, nil
}

// Parse the whole of the input from c.
func (p *parseContext) parse(c cursor.Cursor) (*Node, error) {
	out, err := p.run(p.root, c)
	if err != nil {
		return nil, err
	}
	if out.err != nil {
		if p.deepest != nil && p.deepest.Pos.Offset > out.err.Pos.Offset {
			return nil, p.deepest
		}
		return nil, out.err
	}
	c.Commit(out.end)
	if !c.AtEnd() {
		if p.deepest != nil && p.deepest.Pos.Offset > c.Offset() {
			return nil, p.deepest
		}
		err := &StructuralError{Pos: c.Position(), Err: ErrTrailingInput, Detail: "unexpected " + cursor.Describe(c.Peek())}
		if p.deepest != nil && p.deepest.Pos.Offset == c.Offset() {
			err.Cause = p.deepest
		}
		return nil, err
	}
	return out.node, nil
}
