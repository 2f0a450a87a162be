package rules

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateDefault = errors.New("default already defined")
	ErrDuplicateElse    = errors.New("else already defined")
	ErrAsyncOutcome     = errors.New("asynchronous outcome used where only synchronous outcomes are allowed")
)

// DeclarationError reports a rule declaration that was refused. The engine
// state is left exactly as it was before the call.
type DeclarationError struct {
	Decl  string // "case", "default" or "else"
	Index int    // position the declaration would have taken
	Err   error
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("%s declaration at rule %d: %v", e.Decl, e.Index, e.Err)
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}
