package kanata

import (
	"codeberg.org/miketth/layerboard/pkg/kbd"
	"strings"
)

// Action is what a key does. It is one of Key, AliasRef or Form; the set is
// closed by the unexported marker method.
type Action interface {
	isAction()
	String() string
}

// Key is a literal key code or any other bare atom.
type Key string

// PassThrough stands for the source key at the same position.
const PassThrough Key = "_"

func (Key) isAction() {}

func (k Key) String() string {
	return string(k)
}

// AliasRef is a reference to a defalias entry, stored without the '@'.
type AliasRef string

func (AliasRef) isAction() {}

func (a AliasRef) String() string {
	return "@" + string(a)
}

// Form is a compound action such as (tap-hold-press 200 200 a lctl).
type Form []Action

func (Form) isAction() {}

func (f Form) String() string {
	parts := make([]string, 0, len(f))
	for _, a := range f {
		parts = append(parts, a.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Head returns the name of the form when its first element is a Key.
func (f Form) Head() (string, bool) {
	if len(f) == 0 {
		return "", false
	}
	key, ok := f[0].(Key)
	return string(key), ok
}

func (f Form) Args() []Action {
	if len(f) == 0 {
		return nil
	}
	return f[1:]
}

// Keys returns the elements of f as plain strings if every one is a Key.
func (f Form) Keys() ([]string, bool) {
	keys := make([]string, 0, len(f))
	for _, a := range f {
		key, ok := a.(Key)
		if !ok {
			return nil, false
		}
		keys = append(keys, string(key))
	}
	return keys, true
}

// FromExpr converts a parsed expression into an Action.
func FromExpr(e kbd.Expr) Action {
	switch e := e.(type) {
	case kbd.Atom:
		if name, ok := strings.CutPrefix(string(e), "@"); ok && name != "" {
			return AliasRef(name)
		}
		return Key(e)
	case kbd.List:
		form := make(Form, 0, len(e))
		for _, item := range e {
			form = append(form, FromExpr(item))
		}
		return form
	}
	return Key("")
}
