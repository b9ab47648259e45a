package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry    *prom.Registry
	generated   *prom.CounterVec
	skipped     *prom.CounterVec
	runDuration *prom.HistogramVec
	lastRun     *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers the generation metrics on
// reg, or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		generated: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wikiseo",
			Name:      "friendly_urls_generated_total",
			Help:      "Friendly URLs emitted by generator and language",
		}, []string{"generator", "language"}),
		skipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wikiseo",
			Name:      "topics_skipped_total",
			Help:      "Topics skipped during generation by reason",
		}, []string{"generator", "reason"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "wikiseo",
			Name:      "generation_duration_seconds",
			Help:      "Duration of a generator run",
			Buckets:   prom.DefBuckets,
		}, []string{"generator"}),
		lastRun: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "wikiseo",
			Name:      "generation_last_run_timestamp_seconds",
			Help:      "Unix time of the last completed generator run",
		}, []string{"generator"}),
	}
	reg.MustRegister(pr.generated, pr.skipped, pr.runDuration, pr.lastRun)
	return pr
}

func (p *PrometheusRecorder) IncGenerated(generator, language string) {
	if p == nil {
		return
	}
	p.generated.WithLabelValues(generator, language).Inc()
}

func (p *PrometheusRecorder) IncSkipped(generator string, reason SkipReason) {
	if p == nil {
		return
	}
	p.skipped.WithLabelValues(generator, string(reason)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(generator string, d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.WithLabelValues(generator).Observe(d.Seconds())
	p.lastRun.WithLabelValues(generator).SetToCurrentTime()
}

// Registry exposes the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

// WriteTextfile writes the current metrics in the node exporter textfile
// format. The file is written atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
