package switcher

import "rgehrsitz/switchmatch/pkg/rules"

// NodeKind identifies an entry of the rule list.
type NodeKind uint8

const (
	CaseNode NodeKind = iota
	DefaultNode
	BreakNode
)

func (k NodeKind) String() string {
	switch k {
	case CaseNode:
		return "case"
	case DefaultNode:
		return "default"
	case BreakNode:
		return "break"
	}
	return "unknown"
}

type node[T, R any] struct {
	kind    NodeKind
	cond    rules.Condition[T]
	outcome rules.Outcome[R]
}

// Source tells which part of a switcher produced a resolution.
type Source uint8

const (
	SourceNone Source = iota
	SourceCase
	SourceDefault
	SourceElse
)

func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceCase:
		return "case"
	case SourceDefault:
		return "default"
	case SourceElse:
		return "else"
	}
	return "unknown"
}
