package ebnfkit

import (
	"fmt"

	"github.com/go-logr/logr"
)

// An Option to modify the behaviour of the Parser.
type Option func(p *Parser) error

// Logger sets the logger used to report the progress of each parse.
//
// Parses are logged at V(1).
func Logger(logger logr.Logger) Option {
	return func(p *Parser) error {
		p.logger = logger
		return nil
	}
}

// MaxSteps bounds the work done by a single parse. A parse that exceeds the limit fails with
// ErrStepLimit. Zero means no limit.
func MaxSteps(steps int) Option {
	return func(p *Parser) error {
		if steps < 0 {
			return fmt.Errorf("step limit must not be negative, got %d", steps)
		}
		p.maxSteps = steps
		return nil
	}
}
