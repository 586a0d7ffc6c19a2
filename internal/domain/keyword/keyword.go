// Package keyword derives the canonical keyword set for a search from NLU
// slot output, degrading to the raw utterance when interpretation yields
// nothing usable.
package keyword

import (
	"strings"

	"github.com/aperture-cloud/photodex/internal/domain/intent"
)

// SlotName is the NLU slot the extractor reads keywords from.
const SlotName = "keywords"

// separator is the spoken conjunction recovered from single-value slots:
// "dog and cat" carries two keywords.
const separator = " and "

// Set is an ordered sequence of distinct, trimmed, non-empty keywords.
type Set struct {
	keywords []string
}

// Keywords returns the keywords in first-seen order.
func (s Set) Keywords() []string { return s.keywords }

// IsEmpty reports whether the set holds no searchable terms.
func (s Set) IsEmpty() bool { return len(s.keywords) == 0 }

// Len returns the number of keywords.
func (s Set) Len() int { return len(s.keywords) }

// Extract reconciles an NLU slot result into a keyword set.
//
// A list-valued "keywords" slot contributes each interpreted value in
// encounter order. A single-value slot is split on the "and" conjunction and
// commas to recover multi-keyword intent. When the slot is missing or the
// result is empty, the fallback utterance goes through the same split. An
// empty return is "no searchable terms", never an error.
func Extract(result intent.Result, fallbackUtterance string) Set {
	var acc []string

	if slot, ok := result.Slot(SlotName); ok {
		if slot.IsMulti() {
			for _, v := range slot.Values() {
				if kw := strings.TrimSpace(v); kw != "" {
					acc = append(acc, kw)
				}
			}
		} else {
			acc = splitPhrase(slot.Value())
		}
	}

	if len(acc) == 0 && fallbackUtterance != "" {
		acc = splitPhrase(fallbackUtterance)
	}

	return Set{keywords: dedupe(acc)}
}

// FromPhrase builds a keyword set directly from free text, applying the same
// split and dedupe rules as slot extraction.
func FromPhrase(phrase string) Set {
	return Set{keywords: dedupe(splitPhrase(phrase))}
}

// splitPhrase turns one phrase into keywords: every " and " becomes a comma,
// then the phrase splits on commas, with pieces trimmed and empties dropped.
// No further tokenization: "show me dog and cat" yields ["show me dog" "cat"].
func splitPhrase(phrase string) []string {
	replaced := strings.ReplaceAll(phrase, separator, ",")

	var out []string
	for _, piece := range strings.Split(replaced, ",") {
		if kw := strings.TrimSpace(piece); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// dedupe drops entries equal to an earlier entry, preserving first-seen order.
func dedupe(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(keywords))
	out := keywords[:0]
	for _, kw := range keywords {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
