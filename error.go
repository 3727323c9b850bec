package ebnfkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/v2/sets/linkedhashset"

	"github.com/alecthomas/ebnfkit/cursor"
)

var (
	// ErrTrailingInput is the cause of a StructuralError returned when the start expression
	// matched but did not consume the whole input.
	ErrTrailingInput = errors.New("input not fully consumed")
	// ErrStepLimit is the cause of a StructuralError returned when a parse exceeds MaxSteps.
	ErrStepLimit = errors.New("step limit exceeded")
	// ErrInternal indicates a defect in the engine rather than in the input.
	ErrInternal = errors.New("internal error")
)

// Error represents an error while parsing.
//
// The error will contain positional information.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Position error occurred.
	Position() cursor.Position
}

// FormatError formats an error in the form "[<filename>:]<line>:<col>: <message>"
func FormatError(pos cursor.Position, message string) string {
	return fmt.Sprintf("%s: %s", pos, message)
}

// SyntaxError is returned when the input does not match the grammar.
type SyntaxError struct {
	Pos cursor.Position
	// Description of what would have been accepted.
	Expected string
	// The character found, or cursor.EOF.
	Found rune

	alternatives []string
	// Set once a non-lexical rule has described the failure.
	labelled bool
}

var _ Error = &SyntaxError{}

func newSyntaxError(at cursor.Cursor, expected string) *SyntaxError {
	return &SyntaxError{
		Pos:          at.Position(),
		Expected:     expected,
		Found:        at.Peek(),
		alternatives: []string{expected},
	}
}

func (s *SyntaxError) Error() string { return FormatError(s.Pos, s.Message()) }

func (s *SyntaxError) Message() string { // nolint: golint
	return fmt.Sprintf("unexpected %s (expected %s)", cursor.Describe(s.Found), s.Expected)
}

func (s *SyntaxError) Position() cursor.Position { return s.Pos } // nolint: golint

// Alternatives returns each of the constructs that would have been accepted.
func (s *SyntaxError) Alternatives() []string {
	return s.alternatives
}

// Merge the failures of a set of alternatives, keeping only those that got furthest.
func mergeFailures(failures []*SyntaxError) *SyntaxError {
	var deepest []*SyntaxError
	for _, err := range failures {
		switch {
		case len(deepest) == 0 || err.Pos.Offset > deepest[0].Pos.Offset:
			deepest = []*SyntaxError{err}
		case err.Pos.Offset == deepest[0].Pos.Offset:
			deepest = append(deepest, err)
		}
	}
	if len(deepest) == 1 {
		return deepest[0]
	}
	alternatives := linkedhashset.New[string]()
	labelled := true
	for _, err := range deepest {
		alternatives.Add(err.alternatives...)
		labelled = labelled && err.labelled
	}
	merged := *deepest[0]
	merged.alternatives = alternatives.Values()
	merged.Expected = joinAlternatives(merged.alternatives)
	merged.labelled = labelled
	return &merged
}

// eg. "a, b or c"
func joinAlternatives(alternatives []string) string {
	if len(alternatives) < 2 {
		return strings.Join(alternatives, "")
	}
	last := len(alternatives) - 1
	return strings.Join(alternatives[:last], ", ") + " or " + alternatives[last]
}

// StructuralError is returned when a parse fails for a reason other than a mismatch, such as
// unconsumed trailing input.
//
// errors.Is can be used to test for ErrTrailingInput, ErrStepLimit and ErrInternal.
type StructuralError struct {
	Pos    cursor.Position
	Err    error
	Detail string
	// The deepest syntax error at Pos, if any.
	Cause *SyntaxError
}

var _ Error = &StructuralError{}

func (s *StructuralError) Error() string { return FormatError(s.Pos, s.Message()) }

func (s *StructuralError) Message() string { // nolint: golint
	if s.Detail == "" {
		return s.Err.Error()
	}
	return s.Err.Error() + ": " + s.Detail
}

func (s *StructuralError) Position() cursor.Position { return s.Pos } // nolint: golint

func (s *StructuralError) Unwrap() []error {
	out := []error{s.Err}
	if s.Cause != nil {
		out = append(out, s.Cause)
	}
	return out
}

type positionedError struct {
	message string
	pos     cursor.Position
}

func (p *positionedError) Error() string             { return FormatError(p.pos, p.message) }
func (p *positionedError) Message() string           { return p.message }
func (p *positionedError) Position() cursor.Position { return p.pos }

// Errorf creates a new Error at the given position.
func Errorf(pos cursor.Position, format string, args ...interface{}) error {
	return &positionedError{message: fmt.Sprintf(format, args...), pos: pos}
}
