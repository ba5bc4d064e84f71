// Package codegen drives translation of parsed programs into target source
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raymyers/cfront/pkg/ast"
)

// ErrNotImplemented indicates a node the translator cannot express yet
var ErrNotImplemented = errors.New("not yet implemented")

// Translator turns one top-level node into target source text
type Translator interface {
	Translate(node ast.Expr) (string, error)
}

// Error attributes a translation failure to a source location
type Error struct {
	Pos ast.DebugData
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Generate translates each node in order and concatenates the results. A
// failure is reported with the location of the node that caused it, or of
// the top-level node when the translator did not say.
func Generate(nodes []ast.Expr, tr Translator) (string, error) {
	var sb strings.Builder
	for _, node := range nodes {
		text, err := tr.Translate(node)
		if err != nil {
			var located *Error
			if errors.As(err, &located) {
				return "", err
			}
			return "", &Error{Pos: node.Pos(), Err: err}
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func unsupported(node ast.Expr) error {
	return &Error{Pos: node.Pos(), Err: fmt.Errorf("%w: %T", ErrNotImplemented, node)}
}
