package bbsolver

import (
	"io"
	"log"

	"github.com/katalvlaran/lvlath-bbmdd/metrics"
)

// Option configures a Solver at construction time. Grounded on the
// functional-option shape used throughout the teacher repo (e.g.
// builder.BuilderOption, core.GraphOption): each Option is a plain function
// closing over the value to inject, applied in order after validation.
type Option[S comparable] func(*Solver[S])

// WithLogger overrides the solver's logger. A Solver built by New without
// this option logs to io.Discard, matching AggregateLoader's "silence by
// default" posture. A nil logger is ignored.
func WithLogger[S comparable](logger *log.Logger) Option[S] {
	return func(s *Solver[S]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics attaches a Prometheus recorder. A nil *metrics.Recorder is
// itself a valid no-op recorder, so this option also accepts nil as an
// explicit "disable metrics" request.
func WithMetrics[S comparable](recorder *metrics.Recorder) Option[S] {
	return func(s *Solver[S]) {
		s.metrics = recorder
	}
}

func defaultLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
