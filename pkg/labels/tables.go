package labels

import "fmt"

// actionGlyphs are drawn as-is without asking the keyboard layout.
var actionGlyphs = map[string]string{
	"XX":    "",
	"lalt":  "⌥",
	"ralt":  "⌥",
	"lctl":  "⌃",
	"rctl":  "⌃",
	"lmet":  "⌘",
	"rmet":  "⌘",
	"lsft":  "⇧",
	"rsft":  "⇧",
	"tab":   "↹",
	"S-tab": "⇤",
	"home":  "⇱",
	"end":   "⇲",
	"up":    "↑",
	"down":  "↓",
	"lft":   "←",
	"rght":  "→",
	"pgup":  "⇞",
	"pgdn":  "⇟",
	"bck":   "⎗",
	"fwd":   "⎘",
	"lrld":  "↺",
	"ret":   "⏎",
	"del":   "⌦",
	"bspc":  "⌫",
	"esc":   "Esc",
	"C-a":   "all",
	"C-z":   "↶",
	"C-y":   "↷",
	"C-x":   "✀",
	"C-s":   "💾",
}

// literalGlyphMarker makes the rest of an atom a glyph, e.g. an alias to
// "🔣→" draws "→".
const literalGlyphMarker = "🔣"

const layerGlyph = "⌨"

var wheelGlyphs = map[string]string{
	"mwheel-left":  "🖰 ←",
	"mwheel-up":    "🖰 ↑",
	"mwheel-down":  "🖰 ↓",
	"mwheel-right": "🖰 →",
}

// slotIDs maps kanata key names to the element ids of the keyboard diagram.
var slotIDs = map[string]string{
	"bspc": "Backspace",
	"spc":  "Space",
	";":    "Semicolon",
	",":    "Comma",
	"<":    "IntlBackslash",
	".":    "Period",
	"/":    "Slash",
	"lalt": "AltLeft",
	"ralt": "AltRight",

	"grv":  "Backquote",
	"min":  "Minus",
	"eql":  "Equal",
	"tab":  "Tab",
	"[":    "BracketLeft",
	"]":    "BracketRight",
	"\\":   "Backslash",
	"caps": "CapsLock",
	"'":    "Quote",
	"ret":  "Enter",
	"lsft": "ShiftLeft",
	"rsft": "ShiftRight",
	"lctl": "ControlLeft",
	"rctl": "ControlRight",
	"lmet": "MetaLeft",
	"rmet": "MetaRight",
	"esc":  "Escape",
	"del":  "Delete",
}

// wideSlots have a single text node, which only takes the level 1 label.
var wideSlots = map[string]bool{
	"Backspace": true,
	"AltLeft":   true,
	"AltRight":  true,
}

func init() {
	for i := 1; i <= 12; i++ {
		actionGlyphs[fmt.Sprintf("f%d", i)] = fmt.Sprintf("F%d", i)
		slotIDs[fmt.Sprintf("f%d", i)] = fmt.Sprintf("F%d", i)
	}
	for i := 0; i <= 9; i++ {
		slotIDs[fmt.Sprint(i)] = fmt.Sprintf("Digit%d", i)
	}
	for c := 'a'; c <= 'z'; c++ {
		slotIDs[string(c)] = fmt.Sprintf("Key%c", c-'a'+'A')
	}
}

// SlotID returns the diagram element id for a source key.
func SlotID(key string) (string, bool) {
	id, ok := slotIDs[key]
	return id, ok
}
