// Package ebnfkit builds backtracking recognisers out of combinators and uses them to turn
// text into parse trees.
//
// The combinators are:
//
//   - Literal("...") matches an exact string.
//   - Class(description, predicate) and Any() match a single character.
//   - Sequence(a, b, ...) matches each expression in turn, all or nothing.
//   - Choice(a, b, ...) matches the first alternative that succeeds (ordered choice).
//   - Repeat(a) matches zero or more times, greedily.
//   - Optional(a) matches zero or one times.
//   - Exclude(a, b, ...) matches a unless one of b, ... also matches at the same position.
//   - Named, Lexical and Declare/Define create named rules, which may be mutually recursive.
//
// A Parser evaluates a start expression against the whole of its input. Evaluation is
// driven by an explicit work stack, so deeply nested grammars and long inputs do not consume
// Go stack. Failed alternatives never move the input position; successful ones commit it.
//
// Every successful parse produces a tree of Nodes whose leaves reproduce the input exactly:
//
//	node, err := ebnfkit.MustBuild(grammar).ParseString("", input)
//	// node.String() == input
//
// The ebnf sub-package uses these combinators to define a grammar for EBNF itself.
package ebnfkit
