package ebnf

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/ebnfkit"
)

func chars(s string) []interface{} {
	out := []interface{}{}
	for _, rn := range s {
		out = append(out, string(rn))
	}
	return out
}

func escape(char string) map[string]interface{} {
	return map[string]interface{}{"EscapeCharacter": []interface{}{`\`, char}}
}

func TestSymbols(t *testing.T) {
	tests := []struct {
		name     string
		start    *ebnfkit.Rule
		input    string
		expected interface{}
	}{
		{"Letter", Letter, "A", map[string]interface{}{"Letter": "A"}},
		{"Digit", Digit, "9", map[string]interface{}{"Digit": "9"}},
		{"Symbol", Symbol, "]", map[string]interface{}{"Symbol": "]"}},
		{"SingleWhitespace", SingleWhitespace, "\n", map[string]interface{}{"SingleWhitespace": "\n"}},
		{"Whitespace", Whitespace, "     ", map[string]interface{}{"Whitespace": "     "}},
		{"EmptyWhitespace", Whitespace, "", map[string]interface{}{"Whitespace": ""}},
		{"Identifier", Identifier, "ABCD", map[string]interface{}{
			"Identifier": []interface{}{"A", []interface{}{"B", "C", "D"}},
		}},
		{"IdentifierWithDigitsAndUnderscores", Identifier, "abc9_", map[string]interface{}{
			"Identifier": []interface{}{"a", []interface{}{"b", "c", "9", "_"}},
		}},
		{"EscapeCharacter", EscapeCharacter, `\s`, escape("s")},
		{"EmptyTerminal", Terminal, "''", map[string]interface{}{
			"Terminal": []interface{}{"'", []interface{}{}, "'"},
		}},
		{"EscapedSingleQuote", Terminal, `'\''`, map[string]interface{}{
			"Terminal": []interface{}{"'", []interface{}{escape("'")}, "'"},
		}},
		{"EscapedDoubleQuote", Terminal, `"\""`, map[string]interface{}{
			"Terminal": []interface{}{`"`, []interface{}{escape(`"`)}, `"`},
		}},
		{"EscapeInWord", Terminal, `'it\'s'`, map[string]interface{}{
			"Terminal": []interface{}{"'", []interface{}{"i", "t", escape("'"), "s"}, "'"},
		}},
		{"SingleQuotedString", Terminal, "'some string'", map[string]interface{}{
			"Terminal": []interface{}{"'", chars("some string"), "'"},
		}},
		{"DoubleQuotedString", Terminal, `"some string"`, map[string]interface{}{
			"Terminal": []interface{}{`"`, chars("some string"), `"`},
		}},
		{"EscapeInString", Terminal, `'some \string'`, map[string]interface{}{
			"Terminal": []interface{}{"'", append(append(chars("some "), escape("s")), chars("tring")...), "'"},
		}},
		{"OtherQuoteInString", Terminal, `'say "hi"'`, map[string]interface{}{
			"Terminal": []interface{}{"'", chars(`say "hi"`), "'"},
		}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			node, err := ParseSymbol(test.start, test.input)
			require.NoError(t, err)
			require.Equal(t, test.input, node.String())
			require.Equal(t, test.expected, node.Export())
		})
	}
}

func TestProductions(t *testing.T) {
	identifier := func(s string) map[string]interface{} {
		node, err := ParseSymbol(Identifier, s)
		require.NoError(t, err)
		return node.Export().(map[string]interface{})
	}
	concatenation := func(s string) interface{} {
		node, err := ParseSymbol(Concatenation, s)
		require.NoError(t, err)
		return node.Export()
	}

	node, err := ParseSymbol(SingleProduction, "ident")
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"SingleProduction": []interface{}{identifier("ident")}}, node.Export())

	node, err = ParseSymbol(Alternation, "ident")
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"Alternation": []interface{}{concatenation("ident"), "", []interface{}{}},
	}, node.Export())

	node, err = ParseSymbol(Alternation, "[a], b")
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"Alternation": []interface{}{concatenation("[a], b"), "", []interface{}{}},
	}, node.Export())

	for _, input := range []string{"{a}", "[ a | b ]", "( a , 'b' )", "{ [ ( x ) ] }", "a , b , c"} {
		node, err := ParseSymbol(Concatenation, input)
		require.NoError(t, err, input)
		require.Equal(t, input, node.String())
	}
}

func TestAlternationBranches(t *testing.T) {
	input := "ident | ident2 | ident3"
	node, err := ParseSymbol(Alternation, input)
	require.NoError(t, err)
	require.Equal(t, input, node.String())

	require.Len(t, node.Children, 3)
	require.Equal(t, "Concatenation", node.Children[0].Kind())
	require.Equal(t, "ident ", node.Children[0].String())
	require.Equal(t, "", node.Children[1].String())

	branches := node.Children[2]
	require.Equal(t, ebnfkit.RepetitionNode, branches.Type)
	require.Len(t, branches.Children, 2)
	expected := []string{"ident2 ", "ident3"}
	for i, branch := range branches.Children {
		require.Len(t, branch.Children, 3)
		require.Equal(t, "|", branch.Children[0].String())
		require.Equal(t, " ", branch.Children[1].String())
		require.Equal(t, "Concatenation", branch.Children[2].Kind())
		require.Equal(t, expected[i], branch.Children[2].String())
	}
}

func TestGrammarRoundTrip(t *testing.T) {
	for _, input := range []string{"a = b;", "a=b;b='c';", "A = B | C , [ D ] ;\n\n"} {
		node, err := ParseString(input)
		require.NoError(t, err, input)
		require.Equal(t, input, node.String())
	}
}

func TestEBNFInEBNF(t *testing.T) {
	r, err := os.Open("testdata/ebnf.ebnf")
	require.NoError(t, err)
	defer r.Close()

	node, err := Parse(r)
	require.NoError(t, err)
	input, err := os.ReadFile("testdata/ebnf.ebnf")
	require.NoError(t, err)
	require.Equal(t, string(input), node.String())
	require.Equal(t, "testdata/ebnf.ebnf", node.Pos.Filename)

	rules := node.Children[0].Children
	names := []string{}
	for _, rule := range rules {
		names = append(names, rule.Rule(Identifier.Name()).String())
	}
	require.Equal(t, []string{
		"letter", "digit", "symbol", "character", "identifier", "terminal",
		"lhs", "rhs", "rule", "grammar",
	}, names)

	require.NoError(t, Verify(node, "grammar"))
}

func TestEmptyRule(t *testing.T) {
	_, err := ParseSymbol(Rule, "A = ;")
	require.Error(t, err)
	var syntaxErr *ebnfkit.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	require.Equal(t, 4, syntaxErr.Pos.Offset)
	require.Equal(t, 5, syntaxErr.Pos.Column)
	require.Equal(t, ';', syntaxErr.Found)
	require.Equal(t, []string{"Identifier", "Terminal", "Optional", "Repetition", "Grouping"}, syntaxErr.Alternatives())
	require.EqualError(t, err, "1:5: unexpected ';' (expected Identifier, Terminal, Optional, Repetition or Grouping)")
}

func TestTrailingInput(t *testing.T) {
	_, err := ParseString("a = b; ^")
	require.Error(t, err)
	require.True(t, errors.Is(err, ebnfkit.ErrTrailingInput))
	var structural *ebnfkit.StructuralError
	require.True(t, errors.As(err, &structural))
	require.Equal(t, 7, structural.Pos.Offset)
	require.NotNil(t, structural.Cause)
	require.Equal(t, "Identifier", structural.Cause.Expected)
	require.EqualError(t, err, "1:8: input not fully consumed: unexpected '^'")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"MissingSemicolon", "a = b", `1:6: unexpected end of input (expected ";")`},
		{"UnterminatedTerminal", "a = 'b;", `1:8: unexpected end of input (expected "'")`},
		{"UnclosedGroup", "a = ( b ;", `1:9: unexpected ';' (expected ")")`},
		{"SecondLine", "a = b;\nc = ;", "2:5: unexpected ';' (expected Identifier, Terminal, Optional, Repetition or Grouping)"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseString(test.input)
			require.EqualError(t, err, test.err)
		})
	}
}

func TestSelfHosting(t *testing.T) {
	lines := []string{}
	for _, line := range strings.Split(String(), "\n") {
		// Exclusion has no notation in the grammar.
		if strings.HasPrefix(line, Terminal.Name()+" =") {
			continue
		}
		node, err := ParseSymbol(Rule, line)
		require.NoError(t, err, line)
		require.Equal(t, line, node.String())
		lines = append(lines, line)
	}
	// Symbol is not reachable from Grammar.
	require.Len(t, lines, len(Rules())-2)

	text := strings.Join(lines, "\n")
	node, err := ParseString(text)
	require.NoError(t, err)
	require.Equal(t, text, node.String())
}

func TestVerify(t *testing.T) {
	node, err := ParseString(`Expr = Term , { ( "+" | "-" ) , Term } ;
Term = number | "(" , Expr , ")" ;
number = digit , { digit } ;
digit = "0" | "1" | "2" ;
`)
	require.NoError(t, err)
	require.NoError(t, Verify(node, "Expr"))

	node, err = ParseString(`Expr = Term , [ "+" , Expr ] ;`)
	require.NoError(t, err)
	err = Verify(node, "Expr")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Term")

	node, err = ParseString(`a = "x" ; a = "y" ;`)
	require.NoError(t, err)
	require.EqualError(t, Verify(node, "a"), "1:11: a declared already")
}

func TestConvert(t *testing.T) {
	node, err := ParseString(`A = "a\"" | { B } , ( 'c' ) ; B = [ A ] ;`)
	require.NoError(t, err)
	grammar, err := Convert(node)
	require.NoError(t, err)
	require.Len(t, grammar, 2)
	require.Equal(t, "A", grammar["A"].Name.String)
	require.Equal(t, 1, grammar["A"].Name.StringPos.Line)
	require.Equal(t, 31, grammar["B"].Name.StringPos.Column)

	_, err = Convert(&ebnfkit.Node{Type: ebnfkit.LeafNode})
	require.Error(t, err)
}

func TestUnquote(t *testing.T) {
	for input, expected := range map[string]string{
		`'abc'`:     "abc",
		`''`:        "",
		`'it\'s'`:   "it's",
		`"\\"`:      `\`,
		`"say \"x"`: `say "x`,
	} {
		node, err := ParseSymbol(Terminal, input)
		require.NoError(t, err, input)
		require.Equal(t, expected, Unquote(node), input)
	}
}

func TestExportGolden(t *testing.T) {
	node, err := ParseSymbol(Rule, "a=b;")
	require.NoError(t, err)
	data, err := json.MarshalIndent(node.Export(), "", "  ")
	require.NoError(t, err)
	g := goldie.New(t)
	g.Assert(t, "rule", append(data, '\n'))
}

func TestLookup(t *testing.T) {
	rule, ok := Lookup("Alternation")
	require.True(t, ok)
	require.Equal(t, Alternation, rule)
	_, ok = Lookup("Nope")
	require.False(t, ok)
}

func TestInvalidUTF8RoundTrip(t *testing.T) {
	input := []byte("a = '\xff' ; b = c ;")
	node, err := ParseBytes(input)
	require.NoError(t, err)
	require.Equal(t, string(input), node.String())

	rules := node.Children[0].Children
	require.Len(t, rules, 2)
	require.Equal(t, 10, rules[1].Pos.Offset)
	require.Equal(t, "\xff", Unquote(rules[0].Rule(Alternation.Name()).Children[0].Children[0].Children[0]))

	_, err = ParseBytes([]byte("a = b ;\xff"))
	require.EqualError(t, err, "1:8: input not fully consumed: unexpected '\uFFFD'")
}

func TestExportIsStable(t *testing.T) {
	input := `a = b | [ c ] , { 'd\'' } , ( "e" | f ) ;
g = "h" ;
`
	node, err := ParseString(input)
	require.NoError(t, err)
	first := node.Export()
	require.Equal(t, first, node.Export())
	require.Equal(t, input, node.String())

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(node.Export())
	require.NoError(t, err)
	require.Equal(t, string(a), string(b))
}
