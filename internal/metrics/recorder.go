package metrics

import "time"

// SkipReason labels why a topic produced no friendly URLs.
type SkipReason string

const (
	SkipNoVersion     SkipReason = "no_version"
	SkipLookupFailure SkipReason = "lookup_failure"
)

// Recorder receives generation run observations. Implementations may forward
// to Prometheus; NoopRecorder is the default when metrics are not configured.
type Recorder interface {
	IncGenerated(generator, language string)
	IncSkipped(generator string, reason SkipReason)
	ObserveRunDuration(generator string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncGenerated(string, string) {}
func (NoopRecorder) IncSkipped(string, SkipReason) {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
