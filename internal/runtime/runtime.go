// runtime/runtime.go

package runtime

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"rgehrsitz/switchmatch/internal/preprocessor"
	"rgehrsitz/switchmatch/internal/table"
	"rgehrsitz/switchmatch/pkg/switcher"
)

// Runtime evaluates subjects against a compiled rule table.
type Runtime struct {
	name     string
	sw       *switcher.Switcher[any, any]
	parallel int
}

// Evaluation is the result for one subject.
type Evaluation struct {
	Subject  any  `json:"subject"`
	Value    any  `json:"value"`
	Resolved bool `json:"resolved"`
}

// LineError reports a failure on one input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// New compiles t. parallel bounds EvalAll; zero or less means unbounded.
func New(t *table.Table, parallel int, opts ...switcher.Option) (*Runtime, error) {
	opts = append([]switcher.Option{switcher.WithLogger(log.Logger)}, opts...)
	sw, err := preprocessor.Compile(t, opts...)
	if err != nil {
		return nil, err
	}
	return &Runtime{name: t.Name, sw: sw, parallel: parallel}, nil
}

// Eval resolves a single subject.
func (r *Runtime) Eval(ctx context.Context, subject any) (Evaluation, error) {
	v, ok, err := r.sw.Resolve(ctx, subject)
	if err != nil {
		return Evaluation{}, err
	}
	log.Debug().Str("table", r.name).Interface("subject", subject).Bool("resolved", ok).Msg("Evaluated subject")
	return Evaluation{Subject: subject, Value: v, Resolved: ok}, nil
}

// EvalAll resolves subjects concurrently and returns evaluations in input
// order.
func (r *Runtime) EvalAll(ctx context.Context, subjects []any) ([]Evaluation, error) {
	results, err := r.sw.ResolveAll(ctx, subjects, r.parallel)
	if err != nil {
		return nil, err
	}
	evals := make([]Evaluation, len(results))
	for i, res := range results {
		evals[i] = Evaluation{Subject: subjects[i], Value: res.Value, Resolved: res.OK}
	}
	log.Debug().Str("table", r.name).Int("subjects", len(subjects)).Msg("Evaluated batch")
	return evals, nil
}

// Stream reads one subject per line from in and hands each evaluation to
// emit, in order. Blank lines and lines starting with '#' are skipped.
func (r *Runtime) Stream(ctx context.Context, in io.Reader, emit func(Evaluation) error) error {
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		subject, err := preprocessor.ParseSubject(text)
		if err != nil {
			return &LineError{Line: line, Err: err}
		}
		eval, err := r.Eval(ctx, subject)
		if err != nil {
			return &LineError{Line: line, Err: err}
		}
		if err := emit(eval); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read subjects: %w", err)
	}
	return nil
}
