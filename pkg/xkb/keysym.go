package xkb

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type Keysym uint32

const (
	NoSymbol   Keysym = 0
	VoidSymbol Keysym = 0xffffff

	// UnknownSymbol stands in for keysym names missing from the name table.
	UnknownSymbol Keysym = 0xfffffffe

	unicodeOffset Keysym = 0x01000000
)

// Text returns the character produced by the keysym. Only Latin-1 and
// Unicode keysyms produce text; function and modifier keysyms do not.
func (k Keysym) Text() (string, bool) {
	switch {
	case k >= 0x20 && k <= 0x7e, k >= 0xa0 && k <= 0xff:
		return string(rune(k)), true
	case k >= unicodeOffset+0x20 && k <= unicodeOffset+utf8.MaxRune:
		return string(rune(k - unicodeOffset)), true
	}
	return "", false
}

// ParseKeysym resolves a keysym as written in an XKB keymap: a name, a
// single character, "Uxxxx" or a "0x" number. Legacy named keysyms outside
// Latin-1 come back as their Unicode keysym.
func ParseKeysym(name string) (Keysym, bool) {
	if sym, ok := namedKeysyms[name]; ok {
		return sym, true
	}

	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r < 0x100 {
			return Keysym(r), true
		}
		return unicodeOffset + Keysym(r), true
	}

	if hex, ok := strings.CutPrefix(name, "U"); ok && len(hex) >= 4 {
		cp, err := strconv.ParseUint(hex, 16, 32)
		if err == nil && cp <= utf8.MaxRune {
			return unicodeOffset + Keysym(cp), true
		}
	}

	if hex, ok := strings.CutPrefix(name, "0x"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			return Keysym(v), true
		}
	}

	return NoSymbol, false
}

func u(r rune) Keysym {
	return unicodeOffset + Keysym(r)
}

var namedKeysyms = map[string]Keysym{
	"NoSymbol":   NoSymbol,
	"VoidSymbol": VoidSymbol,

	"space":        0x20,
	"exclam":       0x21,
	"quotedbl":     0x22,
	"numbersign":   0x23,
	"dollar":       0x24,
	"percent":      0x25,
	"ampersand":    0x26,
	"apostrophe":   0x27,
	"parenleft":    0x28,
	"parenright":   0x29,
	"asterisk":     0x2a,
	"plus":         0x2b,
	"comma":        0x2c,
	"minus":        0x2d,
	"period":       0x2e,
	"slash":        0x2f,
	"colon":        0x3a,
	"semicolon":    0x3b,
	"less":         0x3c,
	"equal":        0x3d,
	"greater":      0x3e,
	"question":     0x3f,
	"at":           0x40,
	"bracketleft":  0x5b,
	"backslash":    0x5c,
	"bracketright": 0x5d,
	"asciicircum":  0x5e,
	"underscore":   0x5f,
	"grave":        0x60,
	"braceleft":    0x7b,
	"bar":          0x7c,
	"braceright":   0x7d,
	"asciitilde":   0x7e,

	"nobreakspace":   0xa0,
	"exclamdown":     0xa1,
	"cent":           0xa2,
	"sterling":       0xa3,
	"currency":       0xa4,
	"yen":            0xa5,
	"brokenbar":      0xa6,
	"section":        0xa7,
	"diaeresis":      0xa8,
	"copyright":      0xa9,
	"ordfeminine":    0xaa,
	"guillemotleft":  0xab,
	"guillemetleft":  0xab,
	"notsign":        0xac,
	"hyphen":         0xad,
	"registered":     0xae,
	"macron":         0xaf,
	"degree":         0xb0,
	"plusminus":      0xb1,
	"twosuperior":    0xb2,
	"threesuperior":  0xb3,
	"acute":          0xb4,
	"mu":             0xb5,
	"paragraph":      0xb6,
	"periodcentered": 0xb7,
	"cedilla":        0xb8,
	"onesuperior":    0xb9,
	"masculine":      0xba,
	"ordmasculine":   0xba,
	"guillemotright": 0xbb,
	"guillemetright": 0xbb,
	"onequarter":     0xbc,
	"onehalf":        0xbd,
	"threequarters":  0xbe,
	"questiondown":   0xbf,
	"Agrave":         0xc0,
	"Aacute":         0xc1,
	"Acircumflex":    0xc2,
	"Atilde":         0xc3,
	"Adiaeresis":     0xc4,
	"Aring":          0xc5,
	"AE":             0xc6,
	"Ccedilla":       0xc7,
	"Egrave":         0xc8,
	"Eacute":         0xc9,
	"Ecircumflex":    0xca,
	"Ediaeresis":     0xcb,
	"Igrave":         0xcc,
	"Iacute":         0xcd,
	"Icircumflex":    0xce,
	"Idiaeresis":     0xcf,
	"ETH":            0xd0,
	"Ntilde":         0xd1,
	"Ograve":         0xd2,
	"Oacute":         0xd3,
	"Ocircumflex":    0xd4,
	"Otilde":         0xd5,
	"Odiaeresis":     0xd6,
	"multiply":       0xd7,
	"Oslash":         0xd8,
	"Ugrave":         0xd9,
	"Uacute":         0xda,
	"Ucircumflex":    0xdb,
	"Udiaeresis":     0xdc,
	"Yacute":         0xdd,
	"THORN":          0xde,
	"ssharp":         0xdf,
	"agrave":         0xe0,
	"aacute":         0xe1,
	"acircumflex":    0xe2,
	"atilde":         0xe3,
	"adiaeresis":     0xe4,
	"aring":          0xe5,
	"ae":             0xe6,
	"ccedilla":       0xe7,
	"egrave":         0xe8,
	"eacute":         0xe9,
	"ecircumflex":    0xea,
	"ediaeresis":     0xeb,
	"igrave":         0xec,
	"iacute":         0xed,
	"icircumflex":    0xee,
	"idiaeresis":     0xef,
	"eth":            0xf0,
	"ntilde":         0xf1,
	"ograve":         0xf2,
	"oacute":         0xf3,
	"ocircumflex":    0xf4,
	"otilde":         0xf5,
	"odiaeresis":     0xf6,
	"division":       0xf7,
	"oslash":         0xf8,
	"ugrave":         0xf9,
	"uacute":         0xfa,
	"ucircumflex":    0xfb,
	"udiaeresis":     0xfc,
	"yacute":         0xfd,
	"thorn":          0xfe,
	"ydiaeresis":     0xff,

	"OE":                   u('Œ'),
	"oe":                   u('œ'),
	"EuroSign":             u('€'),
	"emdash":               u('—'),
	"endash":               u('–'),
	"ellipsis":             u('…'),
	"leftsinglequotemark":  u('‘'),
	"rightsinglequotemark": u('’'),
	"leftdoublequotemark":  u('“'),
	"rightdoublequotemark": u('”'),
	"singlelowquotemark":   u('‚'),
	"doublelowquotemark":   u('„'),
	"dagger":               u('†'),
	"doubledagger":         u('‡'),
	"permille":             u('‰'),
	"trademark":            u('™'),
	"notequal":             u('≠'),
	"lessthanequal":        u('≤'),
	"greaterthanequal":     u('≥'),
	"infinity":             u('∞'),
	"leftarrow":            u('←'),
	"uparrow":              u('↑'),
	"rightarrow":           u('→'),
	"downarrow":            u('↓'),

	"dead_grave":       0xfe50,
	"dead_acute":       0xfe51,
	"dead_circumflex":  0xfe52,
	"dead_tilde":       0xfe53,
	"dead_macron":      0xfe54,
	"dead_breve":       0xfe55,
	"dead_abovedot":    0xfe56,
	"dead_diaeresis":   0xfe57,
	"dead_abovering":   0xfe58,
	"dead_doubleacute": 0xfe59,
	"dead_caron":       0xfe5a,
	"dead_cedilla":     0xfe5b,
	"dead_ogonek":      0xfe5c,
	"dead_belowdot":    0xfe60,
	"dead_stroke":      0xfe63,
	"dead_belowcomma":  0xfe6e,
	"dead_currency":    0xfe6f,
	"dead_greek":       0xfe8c,

	"ISO_Level3_Shift": 0xfe03,
	"ISO_Level3_Latch": 0xfe04,
	"ISO_Level5_Shift": 0xfe11,
	"ISO_Level5_Latch": 0xfe12,
	"ISO_Left_Tab":     0xfe20,

	"BackSpace": 0xff08,
	"Tab":       0xff09,
	"Return":    0xff0d,
	"Escape":    0xff1b,
	"Delete":    0xffff,
	"Home":      0xff50,
	"Left":      0xff51,
	"Up":        0xff52,
	"Right":     0xff53,
	"Down":      0xff54,
	"Prior":     0xff55,
	"Next":      0xff56,
	"End":       0xff57,
	"Menu":      0xff67,

	"Shift_L":   0xffe1,
	"Shift_R":   0xffe2,
	"Control_L": 0xffe3,
	"Control_R": 0xffe4,
	"Caps_Lock": 0xffe5,
	"Meta_L":    0xffe7,
	"Meta_R":    0xffe8,
	"Alt_L":     0xffe9,
	"Alt_R":     0xffea,
	"Super_L":   0xffeb,
	"Super_R":   0xffec,
}
