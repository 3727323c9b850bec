// Package ebnf contains a grammar for EBNF, defined with ebnfkit's combinators.
//
// The grammar is self-describing:
//
//	Identifier       = Letter , { Letter | Digit | "_" } ;
//	Terminal         = "'" , { ( AnyCharacter - "'" - "\" ) | EscapeCharacter } , "'"
//	                 | '"' , { ( AnyCharacter - '"' - "\" ) | EscapeCharacter } , '"' ;
//	Optional         = "[" , Whitespace , Alternation , Whitespace , "]" ;
//	Repetition       = "{" , Whitespace , Alternation , Whitespace , "}" ;
//	Grouping         = "(" , Whitespace , Alternation , Whitespace , ")" ;
//	SingleProduction = Identifier | Terminal | Optional | Repetition | Grouping ;
//	Concatenation    = SingleProduction , Whitespace , { "," , Whitespace , SingleProduction , Whitespace } ;
//	Alternation      = Concatenation , Whitespace , { "|" , Whitespace , Concatenation } ;
//	Rule             = Identifier , Whitespace , "=" , Whitespace , Alternation , Whitespace , ";" , Whitespace ;
//	Grammar          = { Rule } ;
package ebnf

import (
	"io"

	"github.com/alecthomas/ebnfkit"
)

// ParseString parses an EBNF grammar.
func ParseString(ebnf string) (*ebnfkit.Node, error) {
	return parser.ParseString("", ebnf)
}

// ParseBytes parses an EBNF grammar.
func ParseBytes(ebnf []byte) (*ebnfkit.Node, error) {
	return parser.ParseBytes("", ebnf)
}

// Parse an EBNF grammar from r.
func Parse(r io.Reader) (*ebnfkit.Node, error) {
	return parser.Parse(nameOfReader(r), r)
}

// ParseSymbol parses text with any symbol of the grammar as the start symbol.
func ParseSymbol(start *ebnfkit.Rule, text string, options ...ebnfkit.Option) (*ebnfkit.Node, error) {
	p, err := ebnfkit.Build(start, options...)
	if err != nil {
		return nil, err
	}
	return p.ParseString("", text)
}

// String returns the grammar in EBNF.
func String() string {
	return parser.String()
}

func nameOfReader(r interface{}) string {
	if nr, ok := r.(interface{ Name() string }); ok {
		return nr.Name()
	}
	return ""
}
