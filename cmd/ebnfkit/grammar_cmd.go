package main

import (
	"fmt"

	"github.com/alecthomas/ebnfkit/ebnf"
)

type grammarCmd struct{}

func (c *grammarCmd) Run() error {
	fmt.Println(ebnf.String())
	return nil
}
