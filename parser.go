package ebnfkit

import (
	"errors"
	"io"

	"github.com/go-logr/logr"

	"github.com/alecthomas/ebnfkit/cursor"
)

// A Parser matches input against a start expression.
//
// A Parser is immutable once built and may be used concurrently.
type Parser struct {
	root     Expr
	trace    io.Writer
	logger   logr.Logger
	maxSteps int
}

// Build a Parser for the grammar reachable from start.
//
// Every Rule reachable from start must have been defined.
func Build(start Expr, options ...Option) (*Parser, error) {
	if start == nil {
		return nil, errors.New("start expression is nil")
	}
	p := &Parser{
		root:   start,
		logger: logr.Discard(),
	}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	if err := validate(start); err != nil {
		return nil, err
	}
	return p, nil
}

// MustBuild calls Build(start, options...) and panics if an error occurs.
func MustBuild(start Expr, options ...Option) *Parser {
	parser, err := Build(start, options...)
	if err != nil {
		panic(err)
	}
	return parser
}

// Root returns the start expression of the Parser.
func (p *Parser) Root() Expr { return p.root }

// Parse from r.
//
// The reader is consumed fully before parsing begins.
func (p *Parser) Parse(filename string, r io.Reader) (*Node, error) {
	c, err := cursor.Read(filename, r)
	if err != nil {
		return nil, err
	}
	return p.parse(c)
}

// ParseString parses s.
func (p *Parser) ParseString(filename string, s string) (*Node, error) {
	return p.parse(cursor.New(filename, s))
}

// ParseBytes parses b.
func (p *Parser) ParseBytes(filename string, b []byte) (*Node, error) {
	return p.parse(cursor.NewBytes(filename, b))
}

func (p *Parser) parse(c cursor.Cursor) (*Node, error) {
	log := p.logger.WithValues("start", stringer(p.root), "filename", c.Position().Filename)
	log.V(1).Info("parse started", "chars", c.Len())
	ctx := newParseContext(p)
	node, err := ctx.parse(c)
	if err != nil {
		log.V(1).Info("parse failed", "steps", ctx.steps, "error", err.Error())
		return nil, err
	}
	log.V(1).Info("parse finished", "steps", ctx.steps, "bytes", node.EndPos.Offset)
	return node, nil
}
