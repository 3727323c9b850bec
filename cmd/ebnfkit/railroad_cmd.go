package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/go-logr/logr"
	xebnf "golang.org/x/exp/ebnf"

	"github.com/alecthomas/ebnfkit"
	"github.com/alecthomas/ebnfkit/ebnf"
)

const (
	mergeRefThreshold  = -1
	mergeSizeThreshold = 0
)

type railroadCmd struct {
	File string `arg:"" default:"-" help:"EBNF grammar (read from stdin if omitted)."`
}

func (c *railroadCmd) Help() string {
	return `
Generates an HTML page of railroad diagrams, one per production. The page
expects railroad-diagrams.{css,js} from https://github.com/tabatkins/railroad-diagrams
alongside it.
`
}

func (c *railroadCmd) Run(logger logr.Logger) error {
	r, err := open(c.File)
	if err != nil {
		return err
	}
	defer r.Close()
	tree, err := ebnf.Parse(namedReader{r, c.File})
	if err != nil {
		return err
	}
	grammar, err := ebnf.Convert(tree)
	if err != nil {
		return err
	}
	order := productionOrder(tree)
	productions := countProductions(grammar, order)
	fmt.Fprintln(os.Stdout, generate(productions, order))
	logger.Info("generated railroad diagrams", "file", c.File, "productions", len(order))
	return nil
}

type production struct {
	*xebnf.Production
	refs int
	size int
}

// Names of the productions in the order they were written.
func productionOrder(tree *ebnfkit.Node) []string {
	out := []string{}
	for _, rule := range tree.Children[0].Children {
		out = append(out, rule.Rule(ebnf.Identifier.Name()).String())
	}
	return out
}

func generate(productions map[string]*production, order []string) string {
	s := `<!DOCTYPE html>
<style>
body {
	background-color: hsl(30,20%, 95%);
}
h1 {
	font-family: sans-serif;
	font-size: 1em;
}
</style>
<link rel='stylesheet' href='railroad-diagrams.css'>
<script src='railroad-diagrams.js'></script>
<body>
`
	for _, name := range order {
		p := productions[name]
		if p.refs <= mergeRefThreshold {
			continue
		}
		s += `<h1 id="` + name + `">` + name + "</h1>\n"
		s += "<script>\n"
		s += "Diagram(" + generateExpr(productions, p.Expr) + ").addTo();\n"
		s += "</script>\n"
	}
	return s + "</body>"
}

func generateExpr(productions map[string]*production, expr xebnf.Expression) string {
	switch n := expr.(type) {
	case nil:
		return "Skip()"

	case xebnf.Alternative:
		return "Choice(0, " + generateList(productions, n) + ")"

	case xebnf.Sequence:
		return "Sequence(" + generateList(productions, n) + ")"

	case *xebnf.Name:
		p := productions[n.String]
		if p == nil || p.refs > mergeRefThreshold {
			return fmt.Sprintf("NonTerminal(%q, {href:\"#%s\"})", n.String, n.String)
		}
		return generateExpr(productions, p.Expr)

	case *xebnf.Token:
		return fmt.Sprintf("Terminal(%q)", n.String)

	case *xebnf.Group:
		return generateExpr(productions, n.Body)

	case *xebnf.Option:
		return "Optional(" + generateExpr(productions, n.Body) + ")"

	case *xebnf.Repetition:
		return "ZeroOrMore(" + generateExpr(productions, n.Body) + ")"

	default:
		panic(repr.String(n))
	}
}

func generateList(productions map[string]*production, exprs []xebnf.Expression) string {
	out := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, generateExpr(productions, expr))
	}
	return strings.Join(out, ", ")
}

// Count references to each production, and the size of each. Productions that are too
// small are inlined where they are referenced.
func countProductions(grammar xebnf.Grammar, order []string) map[string]*production {
	productions := map[string]*production{}
	for _, name := range order {
		productions[name] = &production{Production: grammar[name]}
	}
	for _, name := range order {
		productions[name].size = countExpr(productions, grammar[name].Expr)
	}
	for _, name := range order {
		if productions[name].size <= mergeSizeThreshold {
			productions[name].refs = mergeRefThreshold
		}
	}
	return productions
}

func countExpr(productions map[string]*production, expr xebnf.Expression) (size int) {
	switch n := expr.(type) {
	case nil:
	case xebnf.Alternative:
		for _, a := range n {
			size += countExpr(productions, a)
		}
	case xebnf.Sequence:
		for _, t := range n {
			size += countExpr(productions, t)
		}
	case *xebnf.Name:
		if p, ok := productions[n.String]; ok {
			p.refs++
		}
		size++
	case *xebnf.Group:
		size += countExpr(productions, n.Body)
	case *xebnf.Option:
		size += countExpr(productions, n.Body)
	case *xebnf.Repetition:
		size += countExpr(productions, n.Body)
	default:
		size++
	}
	return
}
