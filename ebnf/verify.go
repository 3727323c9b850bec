package ebnf

import (
	"fmt"
	"strings"
	"text/scanner"

	xebnf "golang.org/x/exp/ebnf"

	"github.com/alecthomas/ebnfkit"
	"github.com/alecthomas/ebnfkit/cursor"
)

// Verify checks a parsed grammar: every production referenced must be defined, and every
// production must be reachable from start.
//
// Verification follows golang.org/x/exp/ebnf, where productions whose names start with a
// lower case letter are lexical and may only refer to other lexical productions.
func Verify(grammar *ebnfkit.Node, start string) error {
	g, err := Convert(grammar)
	if err != nil {
		return err
	}
	return xebnf.Verify(g, start)
}

// Convert a tree produced by the Grammar symbol into golang.org/x/exp/ebnf form.
//
// Escapes in terminals are resolved, so '\'' becomes the token "'".
func Convert(grammar *ebnfkit.Node) (xebnf.Grammar, error) {
	if grammar.Type != ebnfkit.RuleNode || grammar.Name != Grammar.Name() {
		return nil, fmt.Errorf("expected a %s node but got %s", Grammar.Name(), grammar.Kind())
	}
	out := xebnf.Grammar{}
	for _, rule := range grammar.Children[0].Children {
		production := convertRule(rule)
		name := production.Name.String
		if _, ok := out[name]; ok {
			return nil, ebnfkit.Errorf(rule.Pos, "%s declared already", name)
		}
		out[name] = production
	}
	return out, nil
}

func convertRule(rule *ebnfkit.Node) *xebnf.Production {
	identifier := rule.Rule(Identifier.Name())
	return &xebnf.Production{
		Name: &xebnf.Name{StringPos: position(identifier.Pos), String: identifier.String()},
		Expr: convertAlternation(rule.Rule(Alternation.Name())),
	}
}

// Concatenation , Whitespace , { "|" , Whitespace , Concatenation }
//
// Conversion recurses once per level of bracketing in the grammar.
func convertAlternation(alternation *ebnfkit.Node) xebnf.Expression {
	concatenations := []*ebnfkit.Node{alternation.Children[0]}
	for _, branch := range alternation.Children[2].Children {
		concatenations = append(concatenations, branch.Children[2])
	}
	if len(concatenations) == 1 {
		return convertConcatenation(concatenations[0])
	}
	out := xebnf.Alternative{}
	for _, concatenation := range concatenations {
		out = append(out, convertConcatenation(concatenation))
	}
	return out
}

// SingleProduction , Whitespace , { "," , Whitespace , SingleProduction , Whitespace }
func convertConcatenation(concatenation *ebnfkit.Node) xebnf.Expression {
	productions := []*ebnfkit.Node{concatenation.Children[0]}
	for _, next := range concatenation.Children[2].Children {
		productions = append(productions, next.Children[2])
	}
	if len(productions) == 1 {
		return convertSingleProduction(productions[0])
	}
	out := xebnf.Sequence{}
	for _, production := range productions {
		out = append(out, convertSingleProduction(production))
	}
	return out
}

func convertSingleProduction(production *ebnfkit.Node) xebnf.Expression {
	n := production.Children[0]
	pos := position(n.Pos)
	switch n.Name {
	case Identifier.Name():
		return &xebnf.Name{StringPos: pos, String: n.String()}
	case Terminal.Name():
		return &xebnf.Token{StringPos: pos, String: Unquote(n)}
	case Optional.Name():
		return &xebnf.Option{Lbrack: pos, Body: convertAlternation(n.Rule(Alternation.Name()))}
	case Repetition.Name():
		return &xebnf.Repetition{Lbrace: pos, Body: convertAlternation(n.Rule(Alternation.Name()))}
	case Grouping.Name():
		return &xebnf.Group{Lparen: pos, Body: convertAlternation(n.Rule(Alternation.Name()))}
	}
	return &xebnf.Bad{TokPos: pos, Error: "unexpected " + n.Kind()}
}

// Unquote returns the value of a node matched by Terminal, with escapes resolved.
func Unquote(terminal *ebnfkit.Node) string {
	w := &strings.Builder{}
	for _, char := range terminal.Children[1].Children {
		if char.Type == ebnfkit.RuleNode && char.Name == EscapeCharacter.Name() {
			w.WriteString(char.Children[1].String())
			continue
		}
		w.WriteString(char.String())
	}
	return w.String()
}

func position(pos cursor.Position) scanner.Position {
	return scanner.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
