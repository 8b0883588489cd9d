package labels

import (
	"codeberg.org/miketth/layerboard/pkg/kanata"
	"fmt"
)

// SlotPlan is the label plan of one key of the keyboard diagram.
type SlotPlan struct {
	Slot string
	Key  string
	Plan Plan
}

// Label is one text node to write on the diagram. Level 0 is the single
// unnumbered node of a wide key.
type Label struct {
	Slot  string `json:"slot" yaml:"slot"`
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// RenderLayer classifies every action of a layer against its source key.
// A layer shorter or longer than the source keys is rendered over the
// positions both have.
func (c *Classifier) RenderLayer(cfg *kanata.Config, layer string) ([]SlotPlan, error) {
	actions, err := cfg.Layer(layer)
	if err != nil {
		return nil, fmt.Errorf("render layer: %w", err)
	}

	if len(actions) != len(cfg.SrcKeys) {
		c.log.Warnw("layer length mismatch",
			"layer", layer,
			"actions", len(actions),
			"srckeys", len(cfg.SrcKeys),
		)
	}

	n := min(len(actions), len(cfg.SrcKeys))
	plans := make([]SlotPlan, 0, n)
	for i := 0; i < n; i++ {
		key := cfg.SrcKeys[i]
		slot, ok := SlotID(key)
		if !ok {
			c.log.Warnw("no diagram slot for key", "layer", layer, "key", key)
			continue
		}

		plans = append(plans, SlotPlan{
			Slot: slot,
			Key:  key,
			Plan: c.Classify(actions[i], key, DefaultParams()),
		})
	}

	return plans, nil
}

// Flatten lists the text nodes to write for a rendered layer. Wide keys keep
// only their level 1 label.
func Flatten(plans []SlotPlan) []Label {
	var out []Label
	for _, sp := range plans {
		if wideSlots[sp.Slot] {
			if text, ok := sp.Plan.Get(1); ok {
				out = append(out, Label{Slot: sp.Slot, Text: text})
			}
			continue
		}
		for _, a := range sp.Plan.Assignments() {
			out = append(out, Label{Slot: sp.Slot, Level: a.Level, Text: a.Text})
		}
	}
	return out
}
