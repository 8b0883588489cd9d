package xkb

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleKeymap = `xkb_keymap {
xkb_keycodes "evdev+aliases(qwerty)" {
	minimum = 8;
	maximum = 255;
	<ESC>                = 9;
	<AE01>               = 10;
	<BKSP>               = 22;
	<TAB>                = 23;
	<AD01>               = 24;
	<AD02>               = 25;
	<AC01>               = 38;
	<AC02>               = 39;
	<AC10>               = 47;
	<SPCE>               = 65;
	<LSGT>               = 94;
	<RALT>               = 108;
	<DELE>               = 119;
	<OLDQ>               = 200;
	indicator 1 = "Caps Lock";
	alias <AA01> = <AD01>;
	alias <QUOT> = <OLDQ>;
};

xkb_types "complete" {
	virtual_modifiers NumLock,Alt,LevelThree;
	type "ONE_LEVEL" {
		modifiers= none;
		level_name[1]= "Any";
	};
};

xkb_symbols "pc+fr(ergol)+inet(evdev)" {
	name[Group1]="French (Ergo-L)";

	key <ESC>                {	[          Escape ] };
	key <AE01>               {	[               1,          exclam ] };
	key <BKSP>               {	[       BackSpace,       BackSpace,           U232B ] };
	key <TAB>                {	[             Tab,    ISO_Left_Tab ] };
	key <AD01>               {
		type= "FOUR_LEVEL_SEMIALPHABETIC",
		symbols[Group1]= [               q,               Q,              at,     Greek_OMEGA ]
	};
	key <AD02>               {
		type= "FOUR_LEVEL_SEMIALPHABETIC",
		symbols[Group1]= [               w,               W,        NoSymbol,      dead_tilde ]
	};
	key <AC01>               {
		type= "FOUR_LEVEL_SEMIALPHABETIC",
		symbols[Group1]= [               a,               A,          eacute,          Eacute ]
	};
	key <AC02>               {	[               s,               S, { Shift_L, a } ] };
	key <AC10>               {	[ ISO_Level5_Latch,        U2009,       VoidSymbol ] };
	key <SPCE>               {	[           space,    nobreakspace,            U202F ] };
	key <RALT>               {	[           Alt_R,          Meta_R ] };
	key <DELE>               {	[          Delete,          Delete,           U2326 ] };
	key <XXXX>               {	[               x ] };
	modifier_map Shift { <LFSH>, <RTSH> };
};

xkb_geometry "pc(pc105)" {
};
};
`

func parseSample(t *testing.T) *Keymap {
	t.Helper()
	keymap, err := ParseKeymap(strings.NewReader(sampleKeymap))
	require.NoError(t, err)
	return keymap
}

func TestParseKeymap(t *testing.T) {
	keymap := parseSample(t)

	assert.Equal(t, "French (Ergo-L)", keymap.Name)
	assert.Equal(t, []Keysym{0xff1b}, keymap.SymsByLevel(9, 0))
	assert.Equal(t, []Keysym{'1'}, keymap.SymsByLevel(10, 0))
	assert.Equal(t, []Keysym{'!'}, keymap.SymsByLevel(10, 1))
	assert.Equal(t, []Keysym{'@'}, keymap.SymsByLevel(24, 2))
	assert.Equal(t, []Keysym{UnknownSymbol}, keymap.SymsByLevel(24, 3))
	assert.Empty(t, keymap.SymsByLevel(25, 2), "NoSymbol")
	assert.Equal(t, []Keysym{0xfe53}, keymap.SymsByLevel(25, 3))
	assert.Equal(t, []Keysym{0xe9}, keymap.SymsByLevel(38, 2))
	assert.Equal(t, []Keysym{0xffe1, 'a'}, keymap.SymsByLevel(39, 2))
	assert.Equal(t, []Keysym{0x1002009}, keymap.SymsByLevel(47, 1))

	assert.Nil(t, keymap.SymsByLevel(9, 1), "level past the last one")
	assert.Nil(t, keymap.SymsByLevel(9, -1))
	assert.Nil(t, keymap.SymsByLevel(999, 0), "unknown keycode")
}

func TestParseKeymap_MissingSections(t *testing.T) {
	_, err := ParseKeymap(strings.NewReader(`xkb_keymap { xkb_keycodes "x" { <A> = 1; }; };`))
	require.ErrorIs(t, err, ErrNoSection)

	_, err = ParseKeymap(strings.NewReader(`xkb_keymap { xkb_symbols "x" { }; };`))
	require.ErrorIs(t, err, ErrNoSection)
}

func TestParseKeymap_UnbalancedBraces(t *testing.T) {
	_, err := ParseKeymap(strings.NewReader(`xkb_keymap { xkb_keycodes "x" { <A> = 1;`))
	require.Error(t, err)
}

func TestLoadKeymap_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymap.xkb")
	require.NoError(t, os.WriteFile(path, []byte(sampleKeymap), 0o644))

	keymap, err := LoadKeymap(context.Background(), "ignored", "ignored", path)
	require.NoError(t, err)
	assert.Equal(t, []Keysym{'q'}, keymap.SymsByLevel(24, 0))

	_, err = LoadKeymap(context.Background(), "", "", filepath.Join(t.TempDir(), "missing.xkb"))
	require.Error(t, err)
}

func TestScancodes_EvdevPlusEight(t *testing.T) {
	// linux/input-event-codes.h
	evdev := map[string]int{
		"esc":  1,
		"bspc": 14,
		"tab":  15,
		"a":    30,
		"spc":  57,
		"del":  111,
		"lmet": 125,
	}
	for code, ev := range evdev {
		assert.Equal(t, ev+8, Scancodes[code], code)
	}
}

func TestParseKeysym(t *testing.T) {
	tests := []struct {
		name string
		want Keysym
		ok   bool
	}{
		{"a", 'a', true},
		{"é", 0xe9, true},
		{"€", 0x10020ac, true},
		{"eacute", 0xe9, true},
		{"EuroSign", 0x10020ac, true},
		{"U2009", 0x1002009, true},
		{"0xfe12", 0xfe12, true},
		{"Ugrave", 0xd9, true},
		{"Up", 0xff52, true},
		{"NoSymbol", NoSymbol, true},
		{"XF86AudioMute", NoSymbol, false},
		{"Uzzzz", NoSymbol, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKeysym(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeysym_Text(t *testing.T) {
	text, ok := Keysym('a').Text()
	assert.True(t, ok)
	assert.Equal(t, "a", text)

	text, ok = Keysym(0xe9).Text()
	assert.True(t, ok)
	assert.Equal(t, "é", text)

	text, ok = Keysym(0x1002009).Text()
	assert.True(t, ok)
	assert.Equal(t, "\u2009", text)

	for _, sym := range []Keysym{0xff1b, 0xfe53, NoSymbol, VoidSymbol, UnknownSymbol, 0x7f} {
		_, ok := sym.Text()
		assert.False(t, ok, "%#x", uint32(sym))
	}
}

func TestResolver_Lookup(t *testing.T) {
	r := NewResolver(parseSample(t), zap.NewNop().Sugar())

	tests := []struct {
		code  string
		level int
		want  string
		err   error
	}{
		{code: "a", level: 0, want: "a"},
		{code: "a", level: 1, want: "A"},
		{code: "a", level: 2, want: "é"},
		{code: "1", level: 1, want: "!"},
		{code: "w", level: 3, want: "◌̃"},
		{code: ";", level: 0, want: "★"},
		{code: ";", level: 1, want: "\u2009"},
		{code: ";", level: 2, want: ""},
		{code: "spc", level: 0, want: "espace"},
		{code: "spc", level: 1, want: "espace insécable"},
		{code: "spc", level: 2, want: "espace insécable fine"},
		{code: "bspc", level: 2, want: "⌫"},
		{code: "del", level: 2, want: "⌦"},
		{code: "ralt", level: 1, err: ErrNoCharacter},
		{code: "w", level: 2, err: ErrSymbolCount},
		{code: "s", level: 2, err: ErrSymbolCount},
		{code: "q", level: 3, err: ErrNoCharacter},
		{code: "lft", level: 0, err: ErrUnknownScancode},
	}

	for _, tt := range tests {
		got, err := r.Lookup(tt.code, tt.level)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "%s@%d", tt.code, tt.level)
			continue
		}
		if assert.NoError(t, err, "%s@%d", tt.code, tt.level) {
			assert.Equal(t, tt.want, got, "%s@%d", tt.code, tt.level)
		}
	}
}

func TestResolver_ResolveLevelLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := NewResolver(parseSample(t), zap.New(core).Sugar())

	text, ok := r.ResolveLevel("a", 1)
	assert.True(t, ok)
	assert.Equal(t, "A", text)

	_, ok = r.ResolveLevel("nope", 0)
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("cannot resolve key label").Len())
}
