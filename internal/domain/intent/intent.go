// Package intent models the outcome of interpreting one user utterance with
// the NLU service: named slots carrying interpreted values.
package intent

// Slot is a named value extracted from an utterance. A slot carries either a
// single interpreted value or, for list-valued slots, multiple values.
type Slot struct {
	value  string
	values []string
	multi  bool
}

// NewValue creates a single-value slot.
func NewValue(interpreted string) Slot {
	return Slot{value: interpreted}
}

// NewValues creates a list-valued slot.
func NewValues(interpreted []string) Slot {
	return Slot{values: interpreted, multi: true}
}

// IsMulti reports whether the slot is list-valued.
func (s Slot) IsMulti() bool { return s.multi }

// Value returns the single interpreted value.
func (s Slot) Value() string { return s.value }

// Values returns the interpreted values of a list-valued slot.
func (s Slot) Values() []string { return s.values }

// Result holds the slots recognized from one utterance. The zero value is a
// valid empty result, used when the NLU response carried no slots.
type Result struct {
	slots map[string]Slot
}

// NewResult creates a slot result.
func NewResult(slots map[string]Slot) Result {
	return Result{slots: slots}
}

// Slot looks up a slot by name.
func (r Result) Slot(name string) (Slot, bool) {
	s, ok := r.slots[name]
	return s, ok
}

// IsEmpty reports whether no slots were recognized.
func (r Result) IsEmpty() bool { return len(r.slots) == 0 }
