package rules

import "context"

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind uint8

const (
	// AbsentOutcome is the zero value, so an unset Outcome contributes nothing.
	AbsentOutcome OutcomeKind = iota
	LiteralOutcome
	ProducerOutcome
	TaskOutcome
)

func (k OutcomeKind) String() string {
	switch k {
	case AbsentOutcome:
		return "absent"
	case LiteralOutcome:
		return "literal"
	case ProducerOutcome:
		return "producer"
	case TaskOutcome:
		return "task"
	}
	return "unknown"
}

// Outcome is the candidate result a matched rule contributes.
type Outcome[R any] struct {
	kind    OutcomeKind
	value   R
	produce func() (R, bool)
	task    func(context.Context) (R, bool, error)
}

// Value returns an outcome that always yields v.
func Value[R any](v R) Outcome[R] {
	return Outcome[R]{kind: LiteralOutcome, value: v}
}

// Absent returns the absent marker.
func Absent[R any]() Outcome[R] {
	return Outcome[R]{}
}

// Func returns an outcome computed by f when the rule fires. f reports
// false to yield no result.
func Func[R any](f func() (R, bool)) Outcome[R] {
	if f == nil {
		return Absent[R]()
	}
	return Outcome[R]{kind: ProducerOutcome, produce: f}
}

// Lazy is Func for producers that always yield a result.
func Lazy[R any](f func() R) Outcome[R] {
	if f == nil {
		return Absent[R]()
	}
	return Func(func() (R, bool) { return f(), true })
}

// Task returns an outcome whose producer may block and may fail. Only the
// rule-list switcher accepts tasks.
func Task[R any](f func(ctx context.Context) (R, bool, error)) Outcome[R] {
	if f == nil {
		return Absent[R]()
	}
	return Outcome[R]{kind: TaskOutcome, task: f}
}

func (o Outcome[R]) Kind() OutcomeKind {
	return o.kind
}

// IsAsync reports whether the outcome must be awaited.
func (o Outcome[R]) IsAsync() bool {
	return o.kind == TaskOutcome
}

// Resolve runs handler resolution synchronously. It panics with
// ErrAsyncOutcome for task outcomes; use Await for those.
func (o Outcome[R]) Resolve() (R, bool) {
	switch o.kind {
	case LiteralOutcome:
		return o.value, true
	case ProducerOutcome:
		return o.produce()
	case TaskOutcome:
		panic(ErrAsyncOutcome)
	}
	var zero R
	return zero, false
}

// Await runs handler resolution for any outcome, blocking on tasks until
// they complete. A task failure is returned unchanged.
func (o Outcome[R]) Await(ctx context.Context) (R, bool, error) {
	if o.kind == TaskOutcome {
		return o.task(ctx)
	}
	v, ok := o.Resolve()
	return v, ok, nil
}
