// Package switcher implements the declarative form of the conditional
// dispatch construct. Rules are only recorded when declared; each call to
// Resolve scans the whole list against a subject, so one Switcher can be
// resolved many times against different subjects, concurrently if needed.
//
// Scanning follows these steps:
//
//  1. Walk the list from the start, skipping default nodes, until a case
//     condition matches. From then on, each node's outcome is resolved in
//     turn without testing conditions.
//  2. With auto-break the scan ends at the first match. Without it, the scan
//     goes on until an outcome yields a result or a break node is reached.
//  3. If nothing matched and a default exists, scanning restarts at the
//     default node as if it had matched.
//  4. If no result was produced, the else outcome is used.
//
// Unlike the eager matcher, a Switcher accepts task outcomes and waits for
// them before deciding whether to continue.
package switcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"rgehrsitz/switchmatch/pkg/rules"
)

// Switcher holds an ordered rule list. Declarations and resolutions may be
// called from several goroutines; a resolution works on the rules declared
// before it started.
type Switcher[T, R any] struct {
	cfg config

	mu          sync.RWMutex
	nodes       []node[T, R]
	defaultIdx  int
	elseOutcome rules.Outcome[R]
	hasElse     bool
}

// Result is the outcome of one resolution.
type Result[R any] struct {
	Value R
	OK    bool
	Err   error
}

// New creates an empty Switcher.
func New[T, R any](opts ...Option) *Switcher[T, R] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Switcher[T, R]{
		cfg:        cfg,
		defaultIdx: -1,
	}
}

// AddCase appends a case.
func (s *Switcher[T, R]) AddCase(cond rules.Condition[T], outcome rules.Outcome[R]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, node[T, R]{kind: CaseNode, cond: cond, outcome: outcome})
}

// AddDefault appends the default node. A second default is refused with
// rules.ErrDuplicateDefault.
func (s *Switcher[T, R]) AddDefault(outcome rules.Outcome[R]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.defaultIdx >= 0 {
		return &rules.DeclarationError{Decl: "default", Index: len(s.nodes), Err: rules.ErrDuplicateDefault}
	}
	s.defaultIdx = len(s.nodes)
	s.nodes = append(s.nodes, node[T, R]{kind: DefaultNode, outcome: outcome})
	return nil
}

// AddBreak appends a break node. With auto-break enabled every match already
// ends the scan, so nothing is appended.
func (s *Switcher[T, R]) AddBreak() {
	if s.cfg.autoBreak {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, node[T, R]{kind: BreakNode})
}

// SetElse records the last-resort outcome. A second else is refused with
// rules.ErrDuplicateElse.
func (s *Switcher[T, R]) SetElse(outcome rules.Outcome[R]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasElse {
		return &rules.DeclarationError{Decl: "else", Index: len(s.nodes), Err: rules.ErrDuplicateElse}
	}
	s.elseOutcome = outcome
	s.hasElse = true
	return nil
}

// Case is the chainable form of AddCase.
func (s *Switcher[T, R]) Case(cond rules.Condition[T], outcome rules.Outcome[R]) *Switcher[T, R] {
	s.AddCase(cond, outcome)
	return s
}

// CaseFunc appends a case whose condition is the predicate p.
func (s *Switcher[T, R]) CaseFunc(p func(T) bool, outcome rules.Outcome[R]) *Switcher[T, R] {
	s.AddCase(rules.When(p), outcome)
	return s
}

// Default is the chainable form of AddDefault. It panics on a second default.
func (s *Switcher[T, R]) Default(outcome rules.Outcome[R]) *Switcher[T, R] {
	if err := s.AddDefault(outcome); err != nil {
		panic(err)
	}
	return s
}

// Break is the chainable form of AddBreak.
func (s *Switcher[T, R]) Break() *Switcher[T, R] {
	s.AddBreak()
	return s
}

// Else is the chainable form of SetElse. It panics on a second else.
func (s *Switcher[T, R]) Else(outcome rules.Outcome[R]) *Switcher[T, R] {
	if err := s.SetElse(outcome); err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of nodes in the rule list.
func (s *Switcher[T, R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// Nodes returns the kinds of the declared nodes in order.
func (s *Switcher[T, R]) Nodes() []NodeKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kinds := make([]NodeKind, len(s.nodes))
	for i, n := range s.nodes {
		kinds[i] = n.kind
	}
	return kinds
}

// Resolve scans the rule list against subject. The boolean is false when no
// rule and no fallback produced a result. A failing producer aborts the
// scan and its error is returned wrapped in a *ResolveError.
//
// ctx is handed to task outcomes; the scan itself never abandons a started
// producer.
func (s *Switcher[T, R]) Resolve(ctx context.Context, subject T) (R, bool, error) {
	start := time.Now()
	v, ok, src, err := s.resolve(ctx, subject)
	if s.cfg.observer != nil {
		s.cfg.observer.ObserveResolution(src, time.Since(start), err)
	}
	return v, ok, err
}

// ResolveAsync runs Resolve in its own goroutine. The returned channel
// delivers exactly one Result and is then closed.
func (s *Switcher[T, R]) ResolveAsync(ctx context.Context, subject T) <-chan Result[R] {
	ch := make(chan Result[R], 1)
	go func() {
		defer close(ch)
		v, ok, err := s.Resolve(ctx, subject)
		ch <- Result[R]{Value: v, OK: ok, Err: err}
	}()
	return ch
}

// ResolveAll resolves every subject as an independent scan, running at most
// limit scans at once (no limit when limit <= 0). Results keep the order of
// subjects. The first failure cancels the context passed to the remaining
// tasks and is returned alone.
func (s *Switcher[T, R]) ResolveAll(ctx context.Context, subjects []T, limit int) ([]Result[R], error) {
	results := make([]Result[R], len(subjects))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, subject := range subjects {
		g.Go(func() error {
			v, ok, err := s.Resolve(gctx, subject)
			if err != nil {
				return err
			}
			results[i] = Result[R]{Value: v, OK: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type listSnapshot[T, R any] struct {
	nodes       []node[T, R]
	defaultIdx  int
	elseOutcome rules.Outcome[R]
	hasElse     bool
}

func (s *Switcher[T, R]) snapshot() listSnapshot[T, R] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Nodes are only ever appended, so the prefix seen here never changes.
	return listSnapshot[T, R]{
		nodes:       s.nodes[:len(s.nodes):len(s.nodes)],
		defaultIdx:  s.defaultIdx,
		elseOutcome: s.elseOutcome,
		hasElse:     s.hasElse,
	}
}

func (s *Switcher[T, R]) resolve(ctx context.Context, subject T) (R, bool, Source, error) {
	var zero R
	snap := s.snapshot()

	res, err := s.scan(ctx, snap.nodes, subject, 0, false)
	if err != nil {
		return zero, false, SourceNone, err
	}

	if !res.matched && snap.defaultIdx >= 0 {
		s.cfg.logger.Debug().Int("rule", snap.defaultIdx).Msg("no case matched, entering default")
		res, err = s.scan(ctx, snap.nodes, subject, snap.defaultIdx, true)
		if err != nil {
			return zero, false, SourceNone, err
		}
	}

	if res.ok {
		src := SourceCase
		if snap.nodes[res.last].kind == DefaultNode {
			src = SourceDefault
		}
		s.cfg.logger.Debug().Int("rule", res.last).Stringer("source", src).Msg("resolved")
		return res.value, true, src, nil
	}

	if snap.hasElse {
		v, ok, err := snap.elseOutcome.Await(ctx)
		if err != nil {
			return zero, false, SourceNone, &ResolveError{Index: -1, Kind: "else", Err: err}
		}
		if ok {
			s.cfg.logger.Debug().Msg("else used")
			return v, true, SourceElse, nil
		}
	}

	s.cfg.logger.Debug().Bool("matched", res.matched).Msg("no result")
	return zero, false, SourceNone, nil
}

type scanResult[R any] struct {
	matched bool
	value   R
	ok      bool
	last    int // node whose outcome produced value
}

func (s *Switcher[T, R]) scan(ctx context.Context, nodes []node[T, R], subject T, start int, matched bool) (scanResult[R], error) {
	res := scanResult[R]{matched: matched, last: -1}

	for i := start; i < len(nodes); i++ {
		n := nodes[i]

		if n.kind == BreakNode {
			if res.matched {
				s.cfg.logger.Debug().Int("rule", i).Msg("break reached")
				break
			}
			continue
		}

		if !res.matched {
			if n.kind == DefaultNode || !n.cond.Matches(subject, s.cfg.eq) {
				continue
			}
			res.matched = true
			s.cfg.logger.Debug().Int("rule", i).Msg("case matched")
		}

		v, ok, err := n.outcome.Await(ctx)
		if err != nil {
			return scanResult[R]{}, &ResolveError{Index: i, Kind: n.kind.String(), Err: err}
		}
		res.value, res.ok, res.last = v, ok, i

		if s.cfg.autoBreak || ok {
			break
		}
	}

	return res, nil
}
