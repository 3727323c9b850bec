package ebnf

import (
	"strings"
	"unicode"

	"github.com/alecthomas/ebnfkit"
)

// Symbols recognised by Symbol.
const Symbols = `[]{}()<>'"=|.,;`

// The symbol set of the EBNF grammar.
var (
	Letter           = ebnfkit.Lexical("Letter", ebnfkit.Class("letter", isLetter))
	Digit            = ebnfkit.Lexical("Digit", ebnfkit.Class("digit", isDigit))
	Symbol           = ebnfkit.Lexical("Symbol", ebnfkit.Class("symbol", isSymbol))
	SingleWhitespace = ebnfkit.Lexical("SingleWhitespace", ebnfkit.Class("whitespace", unicode.IsSpace))
	Whitespace       = ebnfkit.Lexical("Whitespace", ebnfkit.Repeat(SingleWhitespace))
	AnyCharacter     = ebnfkit.Lexical("AnyCharacter", ebnfkit.Any())

	Identifier = ebnfkit.Named("Identifier", ebnfkit.Sequence(
		Letter,
		ebnfkit.Repeat(ebnfkit.Choice(Letter, Digit, ebnfkit.Literal("_"))),
	))
	EscapeCharacter = ebnfkit.Named("EscapeCharacter", ebnfkit.Sequence(ebnfkit.Literal(`\`), AnyCharacter))
	Terminal        = ebnfkit.Named("Terminal", ebnfkit.Choice(quotedWith(`'`), quotedWith(`"`)))

	// Optional, Repetition, Grouping and Alternation are mutually recursive, so are defined
	// in init().
	Optional   = ebnfkit.Declare("Optional")
	Repetition = ebnfkit.Declare("Repetition")
	Grouping   = ebnfkit.Declare("Grouping")

	SingleProduction = ebnfkit.Named("SingleProduction", ebnfkit.Choice(Identifier, Terminal, Optional, Repetition, Grouping))
	Concatenation    = ebnfkit.Named("Concatenation", ebnfkit.Sequence(
		SingleProduction,
		Whitespace,
		ebnfkit.Repeat(ebnfkit.Sequence(ebnfkit.Literal(","), Whitespace, SingleProduction, Whitespace)),
	))
	Alternation = ebnfkit.Declare("Alternation")

	Rule = ebnfkit.Named("Rule", ebnfkit.Sequence(
		Identifier, Whitespace,
		ebnfkit.Literal("="), Whitespace,
		Alternation, Whitespace,
		ebnfkit.Literal(";"), Whitespace,
	))
	Grammar = ebnfkit.Named("Grammar", ebnfkit.Repeat(Rule))
)

var parser *ebnfkit.Parser

func init() {
	Optional.Define(bracketed("[", "]"))
	Repetition.Define(bracketed("{", "}"))
	Grouping.Define(bracketed("(", ")"))
	Alternation.Define(ebnfkit.Sequence(
		Concatenation,
		Whitespace,
		ebnfkit.Repeat(ebnfkit.Sequence(ebnfkit.Literal("|"), Whitespace, Concatenation)),
	))
	parser = ebnfkit.MustBuild(Grammar)
}

// Rules returns every rule in the EBNF symbol set.
func Rules() []*ebnfkit.Rule {
	return []*ebnfkit.Rule{
		Letter, Digit, Symbol, SingleWhitespace, Whitespace, AnyCharacter,
		Identifier, EscapeCharacter, Terminal,
		Optional, Repetition, Grouping,
		SingleProduction, Concatenation, Alternation,
		Rule, Grammar,
	}
}

// Lookup a rule in the symbol set by name.
func Lookup(name string) (*ebnfkit.Rule, bool) {
	for _, rule := range Rules() {
		if rule.Name() == name {
			return rule, true
		}
	}
	return nil, false
}

// q , { ( AnyCharacter - q - "\" ) | EscapeCharacter } , q
func quotedWith(quote string) ebnfkit.Expr {
	return ebnfkit.Sequence(
		ebnfkit.Literal(quote),
		ebnfkit.Repeat(ebnfkit.Choice(
			ebnfkit.Exclude(AnyCharacter, ebnfkit.Literal(quote), ebnfkit.Literal(`\`)),
			EscapeCharacter,
		)),
		ebnfkit.Literal(quote),
	)
}

// open , Whitespace , Alternation , Whitespace , close
func bracketed(open, close string) ebnfkit.Expr {
	return ebnfkit.Sequence(
		ebnfkit.Literal(open),
		Whitespace,
		Alternation,
		Whitespace,
		ebnfkit.Literal(close),
	)
}

func isLetter(rn rune) bool {
	return (rn >= 'a' && rn <= 'z') || (rn >= 'A' && rn <= 'Z')
}

func isDigit(rn rune) bool {
	return rn >= '0' && rn <= '9'
}

func isSymbol(rn rune) bool {
	return strings.ContainsRune(Symbols, rn)
}
