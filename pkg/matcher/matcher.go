// Package matcher implements the eager form of the conditional dispatch
// construct. A Matcher is bound to one subject and resolves its result as
// cases are declared, so the current best-known result can be read at any
// point.
//
//	v, ok := matcher.New[string, int]("b").
//		Case("a", rules.Value(1)).
//		Case("b", rules.Value(2)).
//		Default(rules.Value(0)).
//		Value()
//
// Outcomes must be synchronous; tasks are only accepted by the switcher
// package.
package matcher

import (
	"rgehrsitz/switchmatch/pkg/rules"
)

// Matcher is not safe for concurrent use.
type Matcher[T, R any] struct {
	subject T
	cfg     config

	state     State
	result    R
	hasResult bool

	// declarations counts every declaration call; used to locate errors.
	declarations int

	fallback        rules.Outcome[R]
	hasFallback     bool
	defaultDeclared bool

	elseOutcome  rules.Outcome[R]
	hasElse      bool
	elseDeclared bool
}

// New creates a Matcher for subject.
func New[T, R any](subject T, opts ...Option) *Matcher[T, R] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Matcher[T, R]{
		subject: subject,
		cfg:     cfg,
		state:   Unmatched,
	}
}

// State returns the current resolution state.
func (m *Matcher[T, R]) State() State {
	return m.state
}

// AddCase declares a case comparing the subject to v.
//
// Before any match the subject is compared to v. Once matched and not
// broken, the outcome runs without comparing, and a present result replaces
// the previous one. After a break the call is ignored.
func (m *Matcher[T, R]) AddCase(v T, outcome rules.Outcome[R]) error {
	idx := m.declarations
	if outcome.IsAsync() {
		return &rules.DeclarationError{Decl: "case", Index: idx, Err: rules.ErrAsyncOutcome}
	}
	m.declarations++

	switch m.state {
	case Broken:
		return nil
	case Unmatched:
		if !rules.Is(v).Matches(m.subject, m.cfg.eq) {
			return nil
		}
		m.state = m.state.next(onMatch)
		if m.cfg.autoBreak {
			m.state = m.state.next(onBreak)
		}
		m.cfg.logger.Debug().Int("rule", idx).Stringer("state", m.state).Msg("case matched")
	}

	if res, ok := outcome.Resolve(); ok {
		m.result = res
		m.hasResult = true
		m.cfg.logger.Debug().Int("rule", idx).Msg("result set")
	}
	return nil
}

// AddBreak ends fall-through after a match. It does nothing before a match.
func (m *Matcher[T, R]) AddBreak() {
	m.declarations++
	if m.state == Matched {
		m.cfg.logger.Debug().Int("rule", m.declarations-1).Msg("break reached")
	}
	m.state = m.state.next(onBreak)
}

// SetDefault declares the fallback used when no case matched. It is only
// recorded while the matcher is unmatched; a second declaration fails with
// rules.ErrDuplicateDefault.
func (m *Matcher[T, R]) SetDefault(outcome rules.Outcome[R]) error {
	idx := m.declarations
	if m.defaultDeclared {
		return &rules.DeclarationError{Decl: "default", Index: idx, Err: rules.ErrDuplicateDefault}
	}
	if outcome.IsAsync() {
		return &rules.DeclarationError{Decl: "default", Index: idx, Err: rules.ErrAsyncOutcome}
	}
	m.declarations++
	m.defaultDeclared = true
	if m.state == Unmatched {
		m.fallback = outcome
		m.hasFallback = true
	}
	return nil
}

// SetElse declares the last-resort outcome. It is only recorded while no
// result is present; a second declaration fails with rules.ErrDuplicateElse.
func (m *Matcher[T, R]) SetElse(outcome rules.Outcome[R]) error {
	idx := m.declarations
	if m.elseDeclared {
		return &rules.DeclarationError{Decl: "else", Index: idx, Err: rules.ErrDuplicateElse}
	}
	if outcome.IsAsync() {
		return &rules.DeclarationError{Decl: "else", Index: idx, Err: rules.ErrAsyncOutcome}
	}
	m.declarations++
	m.elseDeclared = true
	if !m.hasResult {
		m.elseOutcome = outcome
		m.hasElse = true
	}
	return nil
}

// Case is the chainable form of AddCase. It panics on a refused declaration.
func (m *Matcher[T, R]) Case(v T, outcome rules.Outcome[R]) *Matcher[T, R] {
	must(m.AddCase(v, outcome))
	return m
}

// Break is the chainable form of AddBreak.
func (m *Matcher[T, R]) Break() *Matcher[T, R] {
	m.AddBreak()
	return m
}

// Default is the chainable form of SetDefault. It panics on a refused declaration.
func (m *Matcher[T, R]) Default(outcome rules.Outcome[R]) *Matcher[T, R] {
	must(m.SetDefault(outcome))
	return m
}

// Else is the chainable form of SetElse. It panics on a refused declaration.
func (m *Matcher[T, R]) Else(outcome rules.Outcome[R]) *Matcher[T, R] {
	must(m.SetElse(outcome))
	return m
}

// Value returns the resolved result. The default runs only when nothing
// matched, and the else outcome only when the result is still absent. The
// boolean is false when nothing resolved.
//
// Value does not change the matcher; fallback producers run on every call.
func (m *Matcher[T, R]) Value() (R, bool) {
	if m.hasResult {
		return m.result, true
	}
	if m.state == Unmatched && m.hasFallback {
		if v, ok := m.fallback.Resolve(); ok {
			m.cfg.logger.Debug().Msg("default used")
			return v, true
		}
	}
	if m.hasElse {
		if v, ok := m.elseOutcome.Resolve(); ok {
			m.cfg.logger.Debug().Msg("else used")
			return v, true
		}
	}
	var zero R
	return zero, false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
