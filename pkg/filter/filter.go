// Package filter suppresses findings for functions the user asked not to
// hear about.
package filter

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/SamuelMarks/voidcaster/pkg/classify"
)

// Filter matches function names against exclusion globs.
type Filter struct {
	symbolGlobs []string
}

// New creates a Filter from symbol glob patterns (e.g. "debug_*").
func New(symbolGlobs []string) *Filter {
	return &Filter{symbolGlobs: symbolGlobs}
}

// Excluded reports whether findings about the named function are
// suppressed. Malformed patterns never match.
func (f *Filter) Excluded(function string) bool {
	for _, pattern := range f.symbolGlobs {
		if ok, err := doublestar.Match(pattern, function); err == nil && ok {
			return true
		}
	}
	return false
}

// Sink wraps inner so that findings about excluded functions are dropped
// before they reach it.
func (f *Filter) Sink(inner classify.Sink) classify.Sink {
	return &filteredSink{filter: f, inner: inner}
}

type filteredSink struct {
	filter *Filter
	inner  classify.Sink
}

func (s *filteredSink) MissingVoid(finding classify.MissingVoid) error {
	if s.filter.Excluded(finding.Function) {
		return nil
	}
	return s.inner.MissingVoid(finding)
}

func (s *filteredSink) SuperfluousVoid(finding classify.SuperfluousVoid) error {
	if s.filter.Excluded(finding.Function) {
		return nil
	}
	return s.inner.SuperfluousVoid(finding)
}
