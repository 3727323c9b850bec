package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/go-logr/logr"
	"gopkg.in/yaml.v2"

	"github.com/alecthomas/ebnfkit"
	"github.com/alecthomas/ebnfkit/ebnf"
)

type parseCmd struct {
	Start    string `short:"s" default:"Grammar" help:"Symbol to start parsing from."`
	Format   string `short:"f" enum:"json,yaml,repr,text" default:"json" help:"Output format (${enum})."`
	Trace    bool   `help:"Trace the parse to stderr."`
	MaxSteps int    `help:"Fail parses that take more than this many steps (0 for no limit)."`
	File     string `arg:"" default:"-" help:"EBNF to parse (read from stdin if omitted)."`
}

func (c *parseCmd) Help() string {
	return `
Parses the input as EBNF, starting from the given symbol, and prints the parse
tree. The json, yaml and repr formats print the exported tree, while text
reprints the input reconstructed from the tree.
`
}

func (c *parseCmd) Run(logger logr.Logger) error {
	start, ok := ebnf.Lookup(c.Start)
	if !ok {
		return fmt.Errorf("unknown symbol %q", c.Start)
	}
	options := []ebnfkit.Option{ebnfkit.Logger(logger), ebnfkit.MaxSteps(c.MaxSteps)}
	if c.Trace {
		options = append(options, ebnfkit.Trace(os.Stderr))
	}
	parser, err := ebnfkit.Build(start, options...)
	if err != nil {
		return err
	}
	r, err := open(c.File)
	if err != nil {
		return err
	}
	defer r.Close()
	node, err := parser.Parse(c.File, r)
	if err != nil {
		return err
	}
	return c.write(os.Stdout, node)
}

func (c *parseCmd) write(w io.Writer, node *ebnfkit.Node) error {
	switch c.Format {
	case "yaml":
		data, err := yaml.Marshal(node.Export())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err

	case "repr":
		_, err := fmt.Fprintln(w, repr.String(node.Export(), repr.Indent("  ")))
		return err

	case "text":
		_, err := io.WriteString(w, node.String())
		return err

	default:
		data, err := json.MarshalIndent(node.Export(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
