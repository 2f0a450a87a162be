package preprocessor

import "fmt"

// TableError locates a problem in a rule table.
type TableError struct {
	Table string
	Rule  int
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("rule %d of table '%s': %v", e.Rule, e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}
