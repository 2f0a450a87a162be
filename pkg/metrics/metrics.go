// Package metrics exports switcher resolutions as Prometheus metrics.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"rgehrsitz/switchmatch/pkg/switcher"
)

// Collector implements switcher.Observer.
type Collector struct {
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
}

var _ switcher.Observer = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "switchmatch",
				Name:      "resolutions_total",
				Help:      "Resolutions by the part of the rule list that produced the result.",
			},
			[]string{"source"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "switchmatch",
				Name:      "resolution_duration_seconds",
				Help:      "Time spent resolving a subject, including task outcomes.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}
	if reg != nil {
		for _, col := range []prometheus.Collector{c.resolutions, c.duration} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// ObserveResolution records one resolution. Failed resolutions are counted
// under the "error" source.
func (c *Collector) ObserveResolution(source switcher.Source, elapsed time.Duration, err error) {
	label := source.String()
	if err != nil {
		label = "error"
	}
	c.resolutions.WithLabelValues(label).Inc()
	c.duration.Observe(elapsed.Seconds())
}

// WriteText gathers g and writes it in the Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
