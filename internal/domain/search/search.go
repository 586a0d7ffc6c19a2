// Package search models the boolean query the query pipeline issues against
// the photo index.
package search

import (
	"fmt"

	"github.com/aperture-cloud/photodex/internal/domain/keyword"
)

// Mode selects the boolean combination of keywords.
type Mode string

const (
	// MatchAll requires every keyword to match (conjunction).
	MatchAll Mode = "all"
	// MatchAny requires at least one keyword to match (disjunction).
	MatchAny Mode = "any"
)

// ParseMode validates a match mode string. Empty defaults to MatchAny.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return MatchAny, nil
	case MatchAll, MatchAny:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, MatchAll, MatchAny)
	}
}

// Query is an immutable boolean predicate over photo labels, built once per
// request from a keyword set and a match mode.
type Query struct {
	keywords []string
	mode     Mode
}

// NewQuery builds a query from a keyword set. An empty set produces an empty
// query; callers must short-circuit it instead of issuing an index call.
func NewQuery(set keyword.Set, mode Mode) Query {
	if mode == "" {
		mode = MatchAny
	}
	return Query{keywords: set.Keywords(), mode: mode}
}

// Keywords returns the query keywords in order.
func (q Query) Keywords() []string { return q.keywords }

// Mode returns the boolean match mode.
func (q Query) Mode() Mode { return q.mode }

// IsEmpty reports whether the query has no keywords and must not be executed.
func (q Query) IsEmpty() bool { return len(q.keywords) == 0 }
