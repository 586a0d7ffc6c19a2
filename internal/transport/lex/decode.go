package lex

import (
	"encoding/json"
	"fmt"

	"github.com/aperture-cloud/photodex/internal/domain/intent"
)

// The NLU service answers in one of two shapes: slots under the session
// state, or — when that path is absent — under the first interpretation.
// decodeSlots probes the paths in that order; if neither yields a slot
// collection the result is empty, never an error. Contract drift in a service
// we do not control must not crash the query pipeline.

type recognizeTextResponse struct {
	SessionState    *intentHolder  `json:"sessionState"`
	Interpretations []intentHolder `json:"interpretations"`
}

type intentHolder struct {
	Intent *wireIntent `json:"intent"`
}

type wireIntent struct {
	Slots map[string]*wireSlot `json:"slots"`
}

type wireSlot struct {
	Value  *wireSlotValue `json:"value"`
	Values []wireSlot     `json:"values"`
}

type wireSlotValue struct {
	InterpretedValue string `json:"interpretedValue"`
}

func decodeSlots(raw []byte) (intent.Result, error) {
	var resp recognizeTextResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return intent.Result{}, fmt.Errorf("unmarshal: %w", err)
	}

	wire := probeSlots(&resp)
	if len(wire) == 0 {
		return intent.Result{}, nil
	}

	slots := make(map[string]intent.Slot, len(wire))
	for name, ws := range wire {
		if ws == nil {
			continue
		}
		if slot, ok := convertSlot(ws); ok {
			slots[name] = slot
		}
	}
	return intent.NewResult(slots), nil
}

// probeSlots resolves the slot collection by ordered path probing.
func probeSlots(resp *recognizeTextResponse) map[string]*wireSlot {
	if resp.SessionState != nil && resp.SessionState.Intent != nil && len(resp.SessionState.Intent.Slots) > 0 {
		return resp.SessionState.Intent.Slots
	}
	if len(resp.Interpretations) > 0 {
		if in := resp.Interpretations[0].Intent; in != nil {
			return in.Slots
		}
	}
	return nil
}

func convertSlot(ws *wireSlot) (intent.Slot, bool) {
	if len(ws.Values) > 0 {
		values := make([]string, 0, len(ws.Values))
		for _, v := range ws.Values {
			if v.Value != nil {
				values = append(values, v.Value.InterpretedValue)
			}
		}
		return intent.NewValues(values), true
	}
	if ws.Value != nil {
		return intent.NewValue(ws.Value.InterpretedValue), true
	}
	return intent.Slot{}, false
}
