// Package obslog centralizes structured logging for the routing
// engine on top of logrus's WithFields idiom, the same pattern the
// retrieved DTN routing code itself uses for its DTLSR/epidemic
// routers: build a log.Fields map of the values relevant to one event,
// then log a short present-tense message at the appropriate level.
package obslog

import (
	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Entry scoped to one component (router, engine,
// contact manager) so call sites don't repeat the component field.
type Logger struct {
	entry *logrus.Entry
}

// New constructs a Logger for component, logging through base (or
// logrus.StandardLogger() if base is nil).
func New(base *logrus.Logger, component string) *Logger {
	if base == nil {
		base = logrus.StandardLogger()
	}

	return &Logger{entry: base.WithField("component", component)}
}

// With returns a derived Logger carrying additional fields, without
// mutating the receiver.
func (l *Logger) With(fields logrus.Fields) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

// Debug logs routine internal events: lazy-prune cursor advances,
// Pareto-set insertions, cache hits.
func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }

// Info logs call-level outcomes: a route found, a route committed.
func (l *Logger) Info(msg string) { l.entry.Info(msg) }

// Warn logs recoverable anomalies: a cached route going stale, a
// suppression set growing unexpectedly large.
func (l *Logger) Warn(msg string) { l.entry.Warn(msg) }

// Error logs failures the caller can still proceed past: a malformed
// contact plan entry skipped by a parser, for instance.
func (l *Logger) Error(msg string) { l.entry.Error(msg) }
