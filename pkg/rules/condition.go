// pkg/rules/condition.go

package rules

// ConditionKind tags the variant held by a Condition.
type ConditionKind uint8

const (
	LiteralCondition ConditionKind = iota
	PredicateCondition
)

func (k ConditionKind) String() string {
	switch k {
	case LiteralCondition:
		return "literal"
	case PredicateCondition:
		return "predicate"
	}
	return "unknown"
}

// Condition is what a case compares the subject against.
type Condition[T any] struct {
	kind      ConditionKind
	literal   T
	predicate func(T) bool
}

// Is returns a condition that matches subjects equal to v.
func Is[T any](v T) Condition[T] {
	return Condition[T]{kind: LiteralCondition, literal: v}
}

// When returns a condition that matches subjects for which p returns true.
// A nil predicate never matches.
func When[T any](p func(T) bool) Condition[T] {
	return Condition[T]{kind: PredicateCondition, predicate: p}
}

func (c Condition[T]) Kind() ConditionKind {
	return c.kind
}

// Literal returns the literal value of a literal condition.
func (c Condition[T]) Literal() (T, bool) {
	return c.literal, c.kind == LiteralCondition
}

// Matches applies the matching rule to subject.
func (c Condition[T]) Matches(subject T, eq Equaler) bool {
	if c.kind == PredicateCondition {
		return c.predicate != nil && c.predicate(subject)
	}
	return Equal(eq, subject, c.literal)
}
