// Package label models raw vision labels and their normalization into
// indexable label names.
package label

import "strings"

// Label is a single raw detection from the vision labeling provider.
type Label struct {
	name       string
	confidence float64
}

// New creates a raw label with its confidence score (0-100).
func New(name string, confidence float64) Label {
	return Label{name: name, confidence: confidence}
}

// Name returns the detected label name.
func (l Label) Name() string { return l.name }

// Confidence returns the detection confidence percentage.
func (l Label) Confidence() float64 { return l.confidence }

// Normalize filters raw labels by a minimum confidence and returns the
// surviving names, trimmed and deduplicated in first-seen order. Empty input
// yields an empty slice.
func Normalize(labels []Label, minConfidence float64) []string {
	if len(labels) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(labels))
	names := make([]string, 0, len(labels))

	for _, l := range labels {
		if l.confidence < minConfidence {
			continue
		}
		name := strings.TrimSpace(l.name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
