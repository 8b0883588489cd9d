package labels

import (
	"codeberg.org/miketth/layerboard/pkg/kanata"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func testConfig() *kanata.Config {
	return &kanata.Config{
		SrcKeys: []string{"a", "bspc", "lalt", "f13", "1"},
		Layers: map[string][]kanata.Action{
			"base": {
				kanata.PassThrough,
				kanata.PassThrough,
				key("S-a"),
				key("x"),
				form("layer-switch", "nav"),
			},
			"nav": {
				key("lft"),
				form("tap-hold-press", "200", "200", "XX", "lctl"),
				key("ralt"),
			},
		},
		LayerOrder: []string{"base", "nav"},
	}
}

func TestRenderLayer(t *testing.T) {
	c, logs := newTestClassifier(t)

	plans, err := c.RenderLayer(testConfig(), "base")
	require.NoError(t, err)

	var slots []string
	for _, sp := range plans {
		slots = append(slots, sp.Slot)
	}
	assert.Equal(t, []string{"KeyA", "Backspace", "AltLeft", "Digit1"}, slots)
	assert.Equal(t, 1, logs.FilterMessage("no diagram slot for key").Len())

	want := []Label{
		{Slot: "KeyA", Level: 1, Text: "a"},
		{Slot: "KeyA", Level: 2, Text: "A"},
		{Slot: "Backspace", Level: 0, Text: "⌫"},
		{Slot: "AltLeft", Level: 0, Text: "A"},
		{Slot: "Digit1", Level: 1, Text: "⌨nav"},
	}
	if diff := cmp.Diff(want, Flatten(plans)); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLayer_ShortLayer(t *testing.T) {
	c, logs := newTestClassifier(t)

	plans, err := c.RenderLayer(testConfig(), "nav")
	require.NoError(t, err)

	require.Len(t, plans, 3)
	assert.Equal(t, 1, logs.FilterMessage("layer length mismatch").Len())

	// a wide key only shows level 1, which the hold action does not use
	want := []Label{
		{Slot: "KeyA", Level: 1, Text: "←"},
		{Slot: "AltLeft", Level: 0, Text: "⌥"},
	}
	if diff := cmp.Diff(want, Flatten(plans)); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLayer_UnknownLayer(t *testing.T) {
	c, _ := newTestClassifier(t)

	_, err := c.RenderLayer(testConfig(), "missing")
	require.ErrorIs(t, err, kanata.ErrUnknownLayer)
}

func TestSlotID(t *testing.T) {
	tests := map[string]string{
		"0":    "Digit0",
		"7":    "Digit7",
		"a":    "KeyA",
		"z":    "KeyZ",
		";":    "Semicolon",
		"<":    "IntlBackslash",
		"bspc": "Backspace",
		"ralt": "AltRight",
		"f12":  "F12",
	}
	for key, want := range tests {
		got, ok := SlotID(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	_, ok := SlotID("f13")
	assert.False(t, ok)
}
