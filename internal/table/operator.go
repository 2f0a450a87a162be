// internal/table/operator.go

package table

const (
	TypeCase    = "case"
	TypeDefault = "default"
	TypeBreak   = "break"
)

var SupportedTypes = []string{
	TypeCase,
	TypeDefault,
	TypeBreak,
}

const (
	OperatorEqual              = "equal"
	OperatorNotEqual           = "notEqual"
	OperatorGreaterThan        = "greaterThan"
	OperatorGreaterThanOrEqual = "greaterThanOrEqual"
	OperatorLessThan           = "lessThan"
	OperatorLessThanOrEqual    = "lessThanOrEqual"
	OperatorContains           = "contains"
	OperatorNotContains        = "notContains"
)

var SupportedOperators = []string{
	OperatorEqual,
	OperatorNotEqual,
	OperatorGreaterThan,
	OperatorGreaterThanOrEqual,
	OperatorLessThan,
	OperatorLessThanOrEqual,
	OperatorContains,
	OperatorNotContains,
}

// IsOrdering reports whether op compares by order rather than equality.
func IsOrdering(op string) bool {
	switch op {
	case OperatorGreaterThan, OperatorGreaterThanOrEqual, OperatorLessThan, OperatorLessThanOrEqual:
		return true
	}
	return false
}

func IsValidOperator(op string) bool {
	return contains(SupportedOperators, op)
}

func IsValidType(typ string) bool {
	return contains(SupportedTypes, typ)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
