// Command ebnfkit parses and verifies EBNF grammars.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version string = "dev"
	cli     struct {
		Version kong.VersionFlag
		Debug   bool `help:"Enable debug logging."`

		Parse    parseCmd    `cmd:"" help:"Parse EBNF and print the parse tree."`
		Verify   verifyCmd   `cmd:"" help:"Check that an EBNF grammar is complete."`
		Grammar  grammarCmd  `cmd:"" help:"Print the grammar used to parse EBNF."`
		Railroad railroadCmd `cmd:"" help:"Generate railroad diagrams for an EBNF grammar."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`A command-line tool for EBNF grammars.`),
		kong.Vars{"version": version},
	)
	logger, err := newLogger(cli.Debug)
	kctx.FatalIfErrorf(err)
	err = kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}

func newLogger(debug bool) (logr.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zl, err := zapCfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}

// Open a file argument, where "-" is stdin.
func open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
