package xkb

// Scancodes maps kanata key names to XKB keycodes (evdev code + 8). It should
// match kanata's parser/src/keys/linux.rs for the keys it lists.
var Scancodes = map[string]int{
	"esc":  9,
	"1":    10,
	"2":    11,
	"3":    12,
	"4":    13,
	"5":    14,
	"6":    15,
	"7":    16,
	"8":    17,
	"9":    18,
	"0":    19,
	"min":  20,
	"eql":  21,
	"bspc": 22,
	"tab":  23,
	"q":    24,
	"w":    25,
	"e":    26,
	"r":    27,
	"t":    28,
	"y":    29,
	"u":    30,
	"i":    31,
	"o":    32,
	"p":    33,
	"[":    34,
	"]":    35,
	"ret":  36,
	"lctl": 37,
	"a":    38,
	"s":    39,
	"d":    40,
	"f":    41,
	"g":    42,
	"h":    43,
	"j":    44,
	"k":    45,
	"l":    46,
	";":    47,
	"'":    48,
	"grv":  49,
	"lsft": 50,
	"\\":   51,
	"z":    52,
	"x":    53,
	"c":    54,
	"v":    55,
	"b":    56,
	"n":    57,
	"m":    58,
	",":    59,
	".":    60,
	"/":    61,
	"rsft": 62,
	"lalt": 64,
	"spc":  65,
	"caps": 66,
	"<":    94,
	"rctl": 105,
	"ralt": 108,
	"del":  119,
	"lmet": 133,
	"rmet": 134,
}

// symLabels overrides the text of keysyms that have none or render badly:
// dead keys become their combining mark on a dotted circle.
var symLabels = map[Keysym]string{
	VoidSymbol: "",
	0xfe53:     "◌̃",
	0xfe6e:     "◌̦",
	0xfe5c:     "◌̨",
	0xfe12:     "★",
	0xfe6f:     "¤",
	0xfe5b:     "◌̧",
	0xfe55:     "◌̆",
	0xfe5a:     "◌̌",
	0xfe56:     "◌̇",
	0xfe58:     "◌̊",
	0xfe50:     "◌̀",
	0xfe51:     "◌́",
	0xfe59:     "◌̋",
	0xfe54:     "◌̄",
	0xfe52:     "◌̂",
	0xfe57:     "◌̈",
	0xffe9:     "⌥",
	0xffe7:     "⌘",
}

// stringLabels names whitespace characters that would otherwise be invisible.
var stringLabels = map[string]string{
	" ":      "espace",
	"\u00a0": "espace insécable",
	"\u202f": "espace insécable fine",
}
