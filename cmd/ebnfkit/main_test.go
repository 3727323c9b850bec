package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alecthomas/ebnfkit/ebnf"
)

func TestWriteFormats(t *testing.T) {
	node, err := ebnf.ParseSymbol(ebnf.Identifier, "ab")
	require.NoError(t, err)

	tests := []struct {
		format   string
		expected string
	}{
		{"json", "{\n  \"Identifier\": [\n    \"a\",\n    [\n      \"b\"\n    ]\n  ]\n}\n"},
		{"yaml", "Identifier:\n- a\n- - b\n"},
		{"text", "ab"},
	}
	for _, test := range tests {
		w := &bytes.Buffer{}
		cmd := &parseCmd{Format: test.format}
		require.NoError(t, cmd.write(w, node))
		require.Equal(t, test.expected, w.String(), test.format)
	}

	w := &bytes.Buffer{}
	require.NoError(t, (&parseCmd{Format: "repr"}).write(w, node))
	require.Contains(t, w.String(), `"Identifier"`)
}

type errorList []error

func (e errorList) Error() string { return e[0].Error() }

func TestPrintErrors(t *testing.T) {
	w := &bytes.Buffer{}
	printErrors(w, errorList{errors.New("one"), errors.New("two")})
	require.Equal(t, "one\ntwo\n", w.String())

	w.Reset()
	printErrors(w, errors.New("single"))
	require.Equal(t, "single\n", w.String())
}

func TestRailroad(t *testing.T) {
	tree, err := ebnf.ParseString(`A = B , { "x" | C } ;
B = "b" ;
C = [ "c" ] , B ;
`)
	require.NoError(t, err)
	grammar, err := ebnf.Convert(tree)
	require.NoError(t, err)
	order := productionOrder(tree)
	require.Equal(t, []string{"A", "B", "C"}, order)

	productions := countProductions(grammar, order)
	require.Equal(t, 2, productions["B"].refs)
	require.Equal(t, 3, productions["A"].size)

	html := generate(productions, order)
	require.Contains(t, html, `<h1 id="A">A</h1>`)
	require.Contains(t, html, `Diagram(Sequence(NonTerminal("B", {href:"#B"}), ZeroOrMore(Choice(0, Terminal("x"), NonTerminal("C", {href:"#C"}))))).addTo();`)
	require.Contains(t, html, `Diagram(Sequence(Optional(Terminal("c")), NonTerminal("B", {href:"#B"}))).addTo();`)
}
