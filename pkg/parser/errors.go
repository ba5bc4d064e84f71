package parser

import (
	"errors"
	"fmt"

	"github.com/raymyers/cfront/pkg/ast"
	"github.com/raymyers/cfront/pkg/lexer"
)

// UnexpectedTokenError reports a token of the wrong kind where a specific
// one was required, e.g. a missing closing delimiter.
type UnexpectedTokenError struct {
	Want  string
	Found lexer.Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("line %d: expected %s, found %s", e.Found.Line, e.Want, e.Found.Kind)
}

// MissingHandlerError reports a token with no prefix handler in expression
// position, or with a binding power but no infix handler.
type MissingHandlerError struct {
	Token lexer.Token
	Infix bool
}

func (e *MissingHandlerError) Error() string {
	if e.Infix {
		return fmt.Sprintf("line %d: token %s has precedence but no infix behavior", e.Token.Line, e.Token.Kind)
	}
	return fmt.Sprintf("line %d: unexpected token %s in expression position", e.Token.Line, e.Token.Kind)
}

// MalformedLiteralError reports numeric text that does not parse in its base
// or does not fit in 32 bits.
type MalformedLiteralError struct {
	Text string
	Line int
	Err  error
}

func (e *MalformedLiteralError) Error() string {
	return fmt.Sprintf("line %d: malformed number %q: %v", e.Line, e.Text, e.Err)
}

func (e *MalformedLiteralError) Unwrap() error { return e.Err }

// TableConflictError reports two dispatch rules registering the same token kind
type TableConflictError struct {
	Kind lexer.TokenKind
	Rule int
}

func (e *TableConflictError) Error() string {
	return fmt.Sprintf("dispatch rule %d: token kind %s already registered", e.Rule, e.Kind)
}

// ContextError is one breadcrumb: the grammatical position being parsed when
// Err occurred.
type ContextError struct {
	Context string
	Pos     ast.DebugData
	Err     error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Context, e.Pos, e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

func wrap(err error, pos ast.DebugData, context string) error {
	return &ContextError{Context: context, Pos: pos, Err: err}
}

func wrapf(err error, pos ast.DebugData, format string, args ...any) error {
	return wrap(err, pos, fmt.Sprintf(format, args...))
}

// Trail returns the breadcrumbs of err, outermost construct first
func Trail(err error) []string {
	var trail []string
	for {
		var ce *ContextError
		if !errors.As(err, &ce) {
			return trail
		}
		trail = append(trail, fmt.Sprintf("%s at %s", ce.Context, ce.Pos))
		err = ce.Err
	}
}

// Cause returns the innermost error below all breadcrumbs
func Cause(err error) error {
	for {
		var ce *ContextError
		if !errors.As(err, &ce) {
			return err
		}
		err = ce.Err
	}
}
