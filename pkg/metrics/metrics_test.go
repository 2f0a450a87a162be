package metrics

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgehrsitz/switchmatch/pkg/rules"
	"rgehrsitz/switchmatch/pkg/switcher"
)

func TestCollector_CountsBySource(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	s := switcher.New[string, string](switcher.WithObserver(c)).
		Case(rules.Is("a"), rules.Value("a")).
		Case(rules.Is("boom"), rules.Task(func(ctx context.Context) (string, bool, error) {
			return "", false, errors.New("boom")
		})).
		Else(rules.Value("else"))

	ctx := context.Background()
	_, _, _ = s.Resolve(ctx, "a")
	_, _, _ = s.Resolve(ctx, "a")
	_, _, _ = s.Resolve(ctx, "z")
	_, _, _ = s.Resolve(ctx, "boom")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.resolutions.WithLabelValues("case")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("else")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.resolutions.WithLabelValues("default")))

	count, err := testutil.GatherAndCount(reg, "switchmatch_resolution_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestNewCollector_Unregistered(t *testing.T) {
	c, err := NewCollector(nil)
	require.NoError(t, err)
	c.ObserveResolution(switcher.SourceNone, 0, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("none")))
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	c.ObserveResolution(switcher.SourceDefault, 0, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	assert.Contains(t, buf.String(), `switchmatch_resolutions_total{source="default"} 1`)
	assert.Contains(t, buf.String(), "switchmatch_resolution_duration_seconds_count 1")
}
