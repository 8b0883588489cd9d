package xkb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var ErrNoSection = errors.New("keymap section not found")

// Keymap holds the first group of symbols of every key of a compiled XKB
// keymap, indexed by keycode and level.
type Keymap struct {
	Name    string
	symbols map[int][][]Keysym
}

var (
	keycodeRe    = regexp.MustCompile(`<([^>]+)>\s*=\s*(\d+)\s*;`)
	keyAliasRe   = regexp.MustCompile(`alias\s+<([^>]+)>\s*=\s*<([^>]+)>\s*;`)
	keyStartRe   = regexp.MustCompile(`key\s+<([^>]+)>\s*\{`)
	groupSymsRe  = regexp.MustCompile(`symbols\[Group1\]\s*=\s*\[([^\]]*)\]`)
	bareSymsRe   = regexp.MustCompile(`(?:^|[{,])\s*\[([^\]]*)\]`)
	groupNameRe  = regexp.MustCompile(`name\[Group1\]\s*=\s*"([^"]*)"`)
	sectionStart = regexp.MustCompile(`(xkb_keycodes|xkb_symbols)\s*(?:"[^"]*")?\s*\{`)
)

// ParseKeymap reads the text form of a compiled keymap, as printed by
// "xkbcli compile-keymap".
func ParseKeymap(r io.Reader) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	src := string(data)

	sections := make(map[string]string)
	for _, loc := range sectionStart.FindAllStringSubmatchIndex(src, -1) {
		kind := src[loc[2]:loc[3]]
		body, ok := braceBody(src, loc[1]-1)
		if !ok {
			return nil, fmt.Errorf("%s: unbalanced braces", kind)
		}
		sections[kind] = body
	}

	keycodesSrc, ok := sections["xkb_keycodes"]
	if !ok {
		return nil, fmt.Errorf("xkb_keycodes: %w", ErrNoSection)
	}
	symbolsSrc, ok := sections["xkb_symbols"]
	if !ok {
		return nil, fmt.Errorf("xkb_symbols: %w", ErrNoSection)
	}

	codes := make(map[string]int)
	for _, m := range keycodeRe.FindAllStringSubmatch(keycodesSrc, -1) {
		code, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("keycode <%s>: %w", m[1], err)
		}
		codes[m[1]] = code
	}
	for _, m := range keyAliasRe.FindAllStringSubmatch(keycodesSrc, -1) {
		if code, ok := codes[m[2]]; ok {
			codes[m[1]] = code
		}
	}

	keymap := &Keymap{symbols: make(map[int][][]Keysym)}
	if m := groupNameRe.FindStringSubmatch(symbolsSrc); m != nil {
		keymap.Name = m[1]
	}

	for _, loc := range keyStartRe.FindAllStringSubmatchIndex(symbolsSrc, -1) {
		name := symbolsSrc[loc[2]:loc[3]]
		code, ok := codes[name]
		if !ok {
			continue
		}
		body, ok := braceBody(symbolsSrc, loc[1]-1)
		if !ok {
			return nil, fmt.Errorf("key <%s>: unbalanced braces", name)
		}
		keymap.symbols[code] = parseLevels(body)
	}

	return keymap, nil
}

// braceBody returns the text between the brace at open and its match.
func braceBody(src string, open int) (string, bool) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : i], true
			}
		}
	}
	return "", false
}

func parseLevels(body string) [][]Keysym {
	m := groupSymsRe.FindStringSubmatch(body)
	if m == nil {
		m = bareSymsRe.FindStringSubmatch(strings.TrimSpace(body))
	}
	if m == nil {
		return nil
	}

	var levels [][]Keysym
	for _, entry := range splitTopLevel(m[1]) {
		entry = strings.TrimSpace(entry)
		entry = strings.TrimSuffix(strings.TrimPrefix(entry, "{"), "}")

		var syms []Keysym
		for _, name := range strings.Split(entry, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			sym, ok := ParseKeysym(name)
			if !ok {
				sym = UnknownSymbol
			}
			if sym != NoSymbol {
				syms = append(syms, sym)
			}
		}
		levels = append(levels, syms)
	}

	return levels
}

func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// SymsByLevel returns the keysyms of a key at a zero-based shift level. A
// level the key does not define yields no keysym.
func (k *Keymap) SymsByLevel(keycode, level int) []Keysym {
	levels := k.symbols[keycode]
	if level < 0 || level >= len(levels) {
		return nil
	}
	return levels[level]
}

// LoadKeymap reads a pre-compiled keymap from path, or compiles one for the
// layout and variant with xkbcli when path is empty.
func LoadKeymap(ctx context.Context, layout, variant, path string) (*Keymap, error) {
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open keymap: %w", err)
		}
		defer file.Close()

		return ParseKeymap(file)
	}

	out, err := compileKeymap(ctx, layout, variant)
	if err != nil {
		return nil, err
	}

	return ParseKeymap(bytes.NewReader(out))
}

func compileKeymap(ctx context.Context, layout, variant string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	args := []string{"compile-keymap", "--layout", layout}
	if variant != "" {
		args = append(args, "--variant", variant)
	}

	cmd := exec.CommandContext(ctx, "xkbcli", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("xkbcli: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}
