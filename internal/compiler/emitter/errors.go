package emitter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavsurve/pl0retro/internal/compiler/scope"
	"github.com/arnavsurve/pl0retro/internal/compiler/symbols"
	"github.com/arnavsurve/pl0retro/internal/compiler/token"
)

var (
	ErrUnresolvedIdentifier    = scope.ErrUnresolvedIdentifier
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")
	ErrInvalidCallTarget       = errors.New("invalid call target")
	ErrInvalidValueReference   = errors.New("invalid value reference")
)

// SemanticError reports a name used against its kind, or not bound at all.
// It unwraps to one of the Err* sentinels above.
type SemanticError struct {
	Err  error
	Name string
	Want []symbols.Kind // kinds acceptable at the use site
	Got  symbols.Kind   // zero when the name is unresolved
	Pos  token.Token
}

func (e *SemanticError) Error() string {
	var msg string
	if e.Got == 0 {
		msg = fmt.Sprintf("%s %q", e.Err, e.Name)
	} else {
		want := make([]string, len(e.Want))
		for i, k := range e.Want {
			want[i] = k.String()
		}
		msg = fmt.Sprintf("%s: %q is a %s, expected %s", e.Err, e.Name, e.Got, strings.Join(want, " or "))
	}
	return fmt.Sprintf("%d:%d: Semantic Error: %s", e.Pos.Line, e.Pos.Column, msg)
}

func (e *SemanticError) Unwrap() error {
	return e.Err
}
