package preprocessor

import (
	"fmt"

	"rgehrsitz/switchmatch/internal/table"
	"rgehrsitz/switchmatch/pkg/rules"
)

// Warning points at a rule that is valid but probably not what the author
// meant. Rules are never reordered or removed; order is part of the meaning.
type Warning struct {
	Rule    int    `json:"rule"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("rule %d: %s", w.Rule, w.Message)
}

// Lint reports unreachable and ineffective rules.
func Lint(t *table.Table) []Warning {
	var warnings []Warning
	autoBreak := t.AutoBreakEnabled()

	// literal cases seen so far, by rule index
	var literals []int

	for i, rule := range t.Rules {
		switch rule.Kind() {
		case table.TypeBreak:
			if autoBreak {
				warnings = append(warnings, Warning{Rule: i, Message: "break has no effect while autoBreak is enabled"})
			}
		case table.TypeCase:
			if autoBreak && rule.Then == nil {
				warnings = append(warnings, Warning{Rule: i, Message: "case yields no result and ends the scan"})
			}
			if rule.Op() != table.OperatorEqual {
				continue
			}
			if autoBreak {
				if prev, ok := shadowedBy(t.Rules, literals, rule.When); ok {
					warnings = append(warnings, Warning{Rule: i, Message: fmt.Sprintf("case can never match, rule %d matches the same value first", prev)})
				}
			}
			literals = append(literals, i)
		}
	}
	return warnings
}

func shadowedBy(all []table.Rule, literals []int, when any) (int, bool) {
	for _, idx := range literals {
		if rules.Equal(nil, all[idx].When, when) {
			return idx, true
		}
	}
	return 0, false
}
