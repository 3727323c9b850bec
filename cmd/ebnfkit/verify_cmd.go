package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/go-logr/logr"

	"github.com/alecthomas/ebnfkit/ebnf"
)

type verifyCmd struct {
	Start string `short:"s" required:"" help:"Start production."`
	File  string `arg:"" default:"-" help:"EBNF to verify (read from stdin if omitted)."`
}

func (c *verifyCmd) Help() string {
	return `
Checks that every production referenced by the grammar is defined, and that
every production is reachable from the start production. Productions whose
names begin with a lower case letter are lexical, and may only refer to other
lexical productions.
`
}

func (c *verifyCmd) Run(logger logr.Logger) error {
	r, err := open(c.File)
	if err != nil {
		return err
	}
	defer r.Close()
	grammar, err := ebnf.Parse(namedReader{r, c.File})
	if err != nil {
		return err
	}
	if err := ebnf.Verify(grammar, c.Start); err != nil {
		printErrors(os.Stderr, err)
		return errors.New("verification failed")
	}
	logger.Info("grammar verified", "file", c.File, "productions", len(grammar.Children[0].Children))
	return nil
}

type namedReader struct {
	io.Reader
	name string
}

func (n namedReader) Name() string { return n.name }

// golang.org/x/exp/ebnf reports all errors as a single slice.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
