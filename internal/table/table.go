// internal/table/table.go

package table

// Table is a rule list stored as configuration. Rules keep file order.
type Table struct {
	Name      string `json:"name" yaml:"name"`
	AutoBreak *bool  `json:"autoBreak,omitempty" yaml:"autoBreak,omitempty"`
	Rules     []Rule `json:"rules" yaml:"rules"`
	Else      any    `json:"else,omitempty" yaml:"else,omitempty"` // nil means no else
}

// Rule is one entry of a table. When and Operator only apply to cases; a
// nil Then is the absent marker.
type Rule struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	When     any    `json:"when,omitempty" yaml:"when,omitempty"`
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Then     any    `json:"then,omitempty" yaml:"then,omitempty"`
}

// AutoBreakEnabled returns the table setting, true when unset.
func (t *Table) AutoBreakEnabled() bool {
	return t.AutoBreak == nil || *t.AutoBreak
}

// Kind returns the rule type with the empty type read as a case.
func (r Rule) Kind() string {
	if r.Type == "" {
		return TypeCase
	}
	return r.Type
}

// Op returns the operator with the empty operator read as equality.
func (r Rule) Op() string {
	if r.Operator == "" {
		return OperatorEqual
	}
	return r.Operator
}
