package labels

import (
	"codeberg.org/miketth/layerboard/pkg/kanata"
	"go.uber.org/zap"
	"slices"
	"strings"
)

// LevelResolver returns the text a key code prints at a zero-based shift
// level of the active layout.
type LevelResolver interface {
	ResolveLevel(code string, level int) (string, bool)
}

// NoLookup as a source level draws key codes as written.
const NoLookup = -1

// Params locate one classification step: the plan level written to, the
// layout level looked up and the text wrapped around the label.
type Params struct {
	Target int
	Source int
	Prefix string
	Suffix string

	// noAutofill stops a lookup from also filling the shifted level.
	noAutofill bool
	// noFallback drops a failed lookup instead of drawing the key code.
	noFallback bool
}

func DefaultParams() Params {
	return Params{Target: 1, Source: 0}
}

// nested returns the params of an action nested in a form, shifted by delta
// levels. Nested actions look up from the base layout level.
func (p Params) nested(delta int) Params {
	n := Params{Target: p.Target + delta, Prefix: p.Prefix, Suffix: p.Suffix}
	if p.Source == NoLookup {
		n.Source = NoLookup
	}
	return n
}

type Classifier struct {
	levels      LevelResolver
	layerLabels map[string]string
	log         *zap.SugaredLogger
}

type ClassifierOption func(*Classifier)

// WithLayerLabels replaces the default "⌨name" glyph of layer switches.
func WithLayerLabels(labels map[string]string) ClassifierOption {
	return func(c *Classifier) {
		c.layerLabels = labels
	}
}

func NewClassifier(levels LevelResolver, log *zap.SugaredLogger, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		levels: levels,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify computes the labels of a key bound to action. srcKey replaces the
// pass-through marker.
func (c *Classifier) Classify(action kanata.Action, srcKey string, p Params) Plan {
	var plan Plan
	c.classify(&plan, action, srcKey, p)
	return plan
}

func (c *Classifier) classify(plan *Plan, action kanata.Action, srcKey string, p Params) {
	if p.Target < 1 || p.Target > MaxLevel {
		c.log.Warnw("cannot label action at level", "action", action.String(), "level", p.Target)
		return
	}

	if action == kanata.PassThrough {
		action = kanata.Key(srcKey)
	}

	if glyph, ok := c.glyph(action); ok {
		if glyph != "" {
			c.emit(plan, p.Target, p.Prefix+glyph+p.Suffix)
		}
		return
	}

	switch action := action.(type) {
	case kanata.Key:
		c.classifyKey(plan, string(action), p)
	case kanata.AliasRef:
		// aliases are inlined before classification
		c.emit(plan, p.Target, p.Prefix+action.String()+p.Suffix)
	case kanata.Form:
		c.classifyForm(plan, action, srcKey, p)
	}
}

// glyph returns the fixed label of an action that needs no layout lookup.
func (c *Classifier) glyph(action kanata.Action) (string, bool) {
	switch action := action.(type) {
	case kanata.Key:
		if glyph, ok := actionGlyphs[string(action)]; ok {
			return glyph, true
		}
		if glyph, ok := strings.CutPrefix(string(action), literalGlyphMarker); ok {
			return glyph, true
		}
	case kanata.Form:
		head, ok := action.Head()
		if !ok {
			return "", false
		}
		args := action.Args()
		switch head {
		case "layer-while-held", "layer-switch":
			if len(args) != 1 {
				return "", false
			}
			name, ok := args[0].(kanata.Key)
			if !ok {
				return "", false
			}
			if glyph, ok := c.layerLabels[string(name)]; ok {
				return glyph, true
			}
			return layerGlyph + string(name), true
		case "mwheel-left", "mwheel-up", "mwheel-down", "mwheel-right":
			if len(args) != 2 {
				return "", false
			}
			return wheelGlyphs[head], true
		}
	}
	return "", false
}

// classifyKey draws a key code. A modifier prefix replaces the prefix
// inherited so far, so the innermost modifier is the one drawn.
func (c *Classifier) classifyKey(plan *Plan, code string, p Params) {
	switch {
	case code == "XX":
		return
	case strings.HasPrefix(code, "M-"):
		p.Prefix = "⌘"
		c.classifyKey(plan, code[len("M-"):], p)
		return
	case strings.HasPrefix(code, "C-"):
		p.Prefix = "^"
		c.classifyKey(plan, code[len("C-"):], p)
		return
	case strings.HasPrefix(code, "A-"):
		p.Prefix = "⌥"
		c.classifyKey(plan, code[len("A-"):], p)
		return
	case strings.HasPrefix(code, "S-"):
		if p.Source != NoLookup {
			p.Source++
		}
		c.classifyKey(plan, code[len("S-"):], p)
		return
	case strings.HasPrefix(code, "AG-"), strings.HasPrefix(code, "RA-"):
		c.classifyAltGr(plan, code[len("AG-"):], p)
		return
	}

	if p.Source == NoLookup {
		c.emit(plan, p.Target, p.Prefix+code+p.Suffix)
		return
	}

	text, ok := c.levels.ResolveLevel(code, p.Source)
	if ok && text != "" {
		c.emit(plan, p.Target, p.Prefix+text+p.Suffix)
	} else if !p.noFallback {
		c.emit(plan, p.Target, p.Prefix+code+p.Suffix)
	}

	if !p.noAutofill && p.Source%2 == 0 && p.Target%2 == 1 {
		if text, ok := c.levels.ResolveLevel(code, p.Source+1); ok {
			c.emit(plan, p.Target+1, p.Prefix+text+p.Suffix)
		}
	}
}

// classifyAltGr draws the altgr level of code at the target level and the
// altgr+shift level at the one after it.
func (c *Classifier) classifyAltGr(plan *Plan, code string, p Params) {
	if p.Source == NoLookup {
		c.classifyKey(plan, code, p)
		return
	}

	altgr := p
	altgr.Source += 2
	altgr.noAutofill = true
	c.classifyKey(plan, code, altgr)

	shifted := p
	shifted.Source += 3
	shifted.Target++
	shifted.noAutofill = true
	shifted.noFallback = true
	if shifted.Target > MaxLevel {
		c.log.Warnw("cannot label action at level", "action", "AG-"+code, "level", shifted.Target)
		return
	}
	c.classifyKey(plan, code, shifted)
}

func (c *Classifier) classifyForm(plan *Plan, form kanata.Form, srcKey string, p Params) {
	head, ok := form.Head()
	if !ok {
		c.log.Warnw("action without a name", "action", form.String())
		return
	}
	args := form.Args()

	switch head {
	case "tap-hold-press", "tap-hold-release":
		if len(args) == 4 && isKey(args[0]) && isKey(args[1]) {
			c.classify(plan, args[2], srcKey, p.nested(0))
			c.classify(plan, args[3], srcKey, p.nested(2))
			return
		}
	case "fork":
		if len(args) != 3 {
			break
		}
		mods, ok := forkModifiers(args[2])
		if !ok {
			break
		}
		left, right := p.nested(0), p.nested(1)
		switch {
		case subset(mods, "lsft", "rsft"):
			if p.Target%2 != 1 {
				c.log.Warnw("shift fork needs an odd level", "action", form.String(), "level", p.Target)
				return
			}
			c.classify(plan, args[0], srcKey, left)
			c.classify(plan, args[1], srcKey, right)
			return
		case subset(mods, "lmet", "rmet"):
			c.classify(plan, args[0], srcKey, left)
			if p.Target%2 == 1 {
				right.Prefix += "[⌘] "
				c.classify(plan, args[1], srcKey, right)
			}
			return
		}
	}

	c.log.Warnw("unknown action", "action", form.String())
	c.emit(plan, p.Target, p.Prefix+head+p.Suffix+"*")
}

func (c *Classifier) emit(plan *Plan, level int, text string) {
	if err := plan.Set(level, text); err != nil {
		c.log.Warnw("cannot set key label", "text", text, "error", err)
	}
}

func isKey(a kanata.Action) bool {
	_, ok := a.(kanata.Key)
	return ok
}

func forkModifiers(a kanata.Action) ([]string, bool) {
	form, ok := a.(kanata.Form)
	if !ok || len(form) == 0 {
		return nil, false
	}
	return form.Keys()
}

func subset(keys []string, allowed ...string) bool {
	for _, k := range keys {
		if !slices.Contains(allowed, k) {
			return false
		}
	}
	return true
}
