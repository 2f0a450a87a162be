package runtime

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgehrsitz/switchmatch/internal/preprocessor"
	"rgehrsitz/switchmatch/internal/table"
	"rgehrsitz/switchmatch/pkg/rules"
	"rgehrsitz/switchmatch/pkg/switcher"
)

const colorsYAML = `
name: colors
rules:
  - {when: red, then: stop}
  - {when: green, then: go}
  - {when: [red, yellow], then: prepare}
else: unknown
`

func newRuntime(t *testing.T, src string, opts ...switcher.Option) *Runtime {
	t.Helper()
	tbl, err := preprocessor.ParseTable([]byte(src), preprocessor.FormatYAML)
	require.NoError(t, err)
	rt, err := New(tbl, 2, opts...)
	require.NoError(t, err)
	return rt
}

func TestRuntime_Eval(t *testing.T) {
	rt := newRuntime(t, colorsYAML)

	eval, err := rt.Eval(context.Background(), "green")
	require.NoError(t, err)
	assert.Equal(t, Evaluation{Subject: "green", Value: "go", Resolved: true}, eval)

	eval, err = rt.Eval(context.Background(), []any{"red", "yellow"})
	require.NoError(t, err)
	assert.Equal(t, "prepare", eval.Value)
}

func TestRuntime_EvalAll(t *testing.T) {
	rt := newRuntime(t, colorsYAML)

	evals, err := rt.EvalAll(context.Background(), []any{"red", "blue", "green"})
	require.NoError(t, err)
	require.Len(t, evals, 3)
	assert.Equal(t, "stop", evals[0].Value)
	assert.Equal(t, "unknown", evals[1].Value)
	assert.Equal(t, "go", evals[2].Value)
}

func TestRuntime_EvalUnresolved(t *testing.T) {
	rt := newRuntime(t, `rules: [{when: a, then: b}]`)

	eval, err := rt.Eval(context.Background(), "z")
	require.NoError(t, err)
	assert.False(t, eval.Resolved)
	assert.Nil(t, eval.Value)
}

func TestRuntime_Stream(t *testing.T) {
	rt := newRuntime(t, colorsYAML)
	in := strings.NewReader("red\n\n# comment\n\"green\"\n[red, yellow]\n")

	var got []any
	err := rt.Stream(context.Background(), in, func(e Evaluation) error {
		got = append(got, e.Value)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"stop", "go", "prepare"}, got)
}

func TestRuntime_StreamBadLine(t *testing.T) {
	rt := newRuntime(t, colorsYAML)
	in := strings.NewReader("red\n{\"open\": \n")

	err := rt.Stream(context.Background(), in, func(Evaluation) error { return nil })
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
}

func TestRuntime_StreamEmitError(t *testing.T) {
	rt := newRuntime(t, colorsYAML)
	stop := errors.New("stop")

	err := rt.Stream(context.Background(), strings.NewReader("red\ngreen\n"), func(Evaluation) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestNew_InvalidTable(t *testing.T) {
	_, err := New(&table.Table{Rules: []table.Rule{
		{Type: table.TypeDefault},
		{Type: table.TypeDefault},
	}}, 0)
	assert.ErrorIs(t, err, rules.ErrDuplicateDefault)
}
