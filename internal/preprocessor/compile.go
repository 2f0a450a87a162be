package preprocessor

import (
	"cmp"
	"strings"

	"github.com/rs/zerolog/log"

	"rgehrsitz/switchmatch/internal/table"
	"rgehrsitz/switchmatch/pkg/rules"
	"rgehrsitz/switchmatch/pkg/switcher"
)

// Compile validates t and builds the equivalent switcher. The table's
// autoBreak setting is applied first so opts can override it.
func Compile(t *table.Table, opts ...switcher.Option) (*switcher.Switcher[any, any], error) {
	if err := ValidateTable(t); err != nil {
		return nil, err
	}

	all := append([]switcher.Option{switcher.WithAutoBreak(t.AutoBreakEnabled())}, opts...)
	sw := switcher.New[any, any](all...)

	for i, rule := range t.Rules {
		switch rule.Kind() {
		case table.TypeCase:
			sw.AddCase(condition(rule), outcome(rule.Then))
		case table.TypeDefault:
			if err := sw.AddDefault(outcome(rule.Then)); err != nil {
				return nil, &TableError{Table: t.Name, Rule: i, Err: err}
			}
		case table.TypeBreak:
			sw.AddBreak()
		}
	}

	if t.Else != nil {
		if err := sw.SetElse(rules.Value(t.Else)); err != nil {
			return nil, &TableError{Table: t.Name, Rule: len(t.Rules), Err: err}
		}
	}

	log.Debug().Str("table", t.Name).Int("nodes", sw.Len()).Msg("Compiled table")
	return sw, nil
}

func outcome(v any) rules.Outcome[any] {
	if v == nil {
		return rules.Absent[any]()
	}
	return rules.Value(v)
}

func condition(rule table.Rule) rules.Condition[any] {
	operand := rule.When
	switch op := rule.Op(); op {
	case table.OperatorNotEqual:
		return rules.When(func(s any) bool { return !rules.Equal(nil, s, operand) })
	case table.OperatorContains:
		return rules.When(func(s any) bool { return containsValue(s, operand) })
	case table.OperatorNotContains:
		return rules.When(func(s any) bool { return !containsValue(s, operand) })
	case table.OperatorGreaterThan, table.OperatorGreaterThanOrEqual,
		table.OperatorLessThan, table.OperatorLessThanOrEqual:
		return rules.When(func(s any) bool {
			c, ok := compareValues(s, operand)
			if !ok {
				return false
			}
			switch op {
			case table.OperatorGreaterThan:
				return c > 0
			case table.OperatorGreaterThanOrEqual:
				return c >= 0
			case table.OperatorLessThan:
				return c < 0
			default:
				return c <= 0
			}
		})
	}
	return rules.Is(operand)
}

// compareValues orders two numbers or two strings. Any other pair is not
// comparable.
func compareValues(a, b any) (int, bool) {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y), true
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
	}
	return 0, false
}

// containsValue reports substring, element or key membership depending on
// the subject's shape.
func containsValue(subject, operand any) bool {
	switch s := subject.(type) {
	case string:
		sub, ok := operand.(string)
		return ok && strings.Contains(s, sub)
	case []any:
		for _, e := range s {
			if rules.Equal(nil, e, operand) {
				return true
			}
		}
	case map[string]any:
		key, ok := operand.(string)
		if ok {
			_, found := s[key]
			return found
		}
	}
	return false
}
