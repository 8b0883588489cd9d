package xkb

import (
	"errors"
	"fmt"
	"go.uber.org/zap"
)

var (
	ErrUnknownScancode = errors.New("unknown scancode")
	ErrSymbolCount     = errors.New("unexpected symbol count")
	ErrNoCharacter     = errors.New("no character for keysym")
)

type SymbolSource interface {
	SymsByLevel(keycode, level int) []Keysym
}

// Resolver turns a kanata key code and a zero-based shift level into the
// text printed on the key by the active layout.
type Resolver struct {
	keymap SymbolSource
	log    *zap.SugaredLogger
}

func NewResolver(keymap SymbolSource, log *zap.SugaredLogger) *Resolver {
	return &Resolver{keymap: keymap, log: log}
}

func (r *Resolver) Lookup(code string, level int) (string, error) {
	scancode, ok := Scancodes[code]
	if !ok {
		return "", fmt.Errorf("%w for key %q", ErrUnknownScancode, code)
	}

	syms := r.keymap.SymsByLevel(scancode, level)
	if len(syms) != 1 {
		return "", fmt.Errorf("%w: key %q, scancode %d, level %d: %v", ErrSymbolCount, code, scancode, level, syms)
	}
	sym := syms[0]

	if label, ok := symLabels[sym]; ok {
		return label, nil
	}

	text, ok := sym.Text()
	if !ok {
		return "", fmt.Errorf("%w %#x: key %q, scancode %d, level %d", ErrNoCharacter, uint32(sym), code, scancode, level)
	}
	if label, ok := stringLabels[text]; ok {
		return label, nil
	}

	return text, nil
}

// ResolveLevel is Lookup with failures logged and reported as no result.
func (r *Resolver) ResolveLevel(code string, level int) (string, bool) {
	text, err := r.Lookup(code, level)
	if err != nil {
		r.log.Warnw("cannot resolve key label", "error", err)
		return "", false
	}
	return text, true
}
