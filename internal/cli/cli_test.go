package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestEvalText(t *testing.T) {
	out, err := execute(t, "", "eval", fixture("traffic.yaml"), "red", "blue", "[red, yellow]", "5")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "eval_text", []byte(out))
}

func TestEvalJSONFromStdin(t *testing.T) {
	out, err := execute(t, "green\nblue\n", "--format", "json", "eval", fixture("traffic.yaml"))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "eval_json", []byte(out))
}

func TestEvalAutoBreakOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fallthrough.yaml")
	writeFile(t, path, "rules:\n  - when: a\n  - when: z\n    then: fell through\n")

	out, err := execute(t, "", "eval", path, "a")
	require.NoError(t, err)
	assert.Equal(t, "\"a\" => <no match>\n", out)

	out, err = execute(t, "", "eval", "--auto-break=false", path, "a")
	require.NoError(t, err)
	assert.Equal(t, "\"a\" => \"fell through\"\n", out)
}

func TestEvalMetrics(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"eval", "--metrics", fixture("traffic.yaml"), "red", "green", "blue"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 3, strings.Count(stdout.String(), "\n"))
	assert.Contains(t, stderr.String(), `switchmatch_resolutions_total{source="case"} 2`)
	assert.Contains(t, stderr.String(), `switchmatch_resolutions_total{source="none"} 1`)
}

func TestEvalMissingTable(t *testing.T) {
	_, err := execute(t, "", "eval", fixture("nope.yaml"), "x")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEvalInvalidTable(t *testing.T) {
	_, err := execute(t, "", "eval", fixture("broken.yaml"), "x")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "default already defined")
}

func TestValidateWithWarnings(t *testing.T) {
	out, err := execute(t, "", "validate", fixture("shadowed.json"))
	require.NoError(t, err)
	assert.Equal(t, "✓ shadowed: 3 rule(s), 1 warning(s)\n", out)
}

func TestValidateJSON(t *testing.T) {
	out, err := execute(t, "", "--format", "json", "validate", fixture("shadowed.json"))
	require.NoError(t, err)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	assert.Equal(t, 3, result.Rules)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 2, result.Warnings[0].Rule)
}

func TestValidateInvalidTable(t *testing.T) {
	_, err := execute(t, "", "validate", fixture("broken.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "", "--format", "xml", "validate", fixture("shadowed.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := WrapExitError(ExitCommandError, "cannot load table", errors.New("missing"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Equal(t, "cannot load table: missing", wrapped.Error())
}
