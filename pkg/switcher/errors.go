package switcher

import "fmt"

// ResolveError wraps a producer failure. The resolution that hit it returns
// no result.
type ResolveError struct {
	Index int    // rule position, -1 for the else outcome
	Kind  string // "case", "default" or "else"
	Err   error
}

func (e *ResolveError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s outcome failed: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s outcome at rule %d failed: %v", e.Kind, e.Index, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
