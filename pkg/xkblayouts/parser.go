package xkblayouts

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

const DefaultRegistryPath = "/usr/share/X11/xkb/rules/evdev.xml"

var (
	ErrUnknownLayout  = errors.New("unknown keyboard layout")
	ErrUnknownVariant = errors.New("unknown keyboard layout variant")
)

func ParseLayouts(path string) (*XkbConfigRegistry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ParseRegistry(file)
}

func ParseRegistry(r io.Reader) (*XkbConfigRegistry, error) {
	registry := &XkbConfigRegistry{}
	err := xml.NewDecoder(r).Decode(registry)
	if err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	return registry, nil
}

func (r *XkbConfigRegistry) layout(name string) (*Layout, bool) {
	for i := range r.Layouts {
		if r.Layouts[i].ConfigItem.Name == name {
			return &r.Layouts[i], true
		}
	}
	return nil, false
}

// Check reports whether the registry knows the layout and variant. An empty
// variant is the layout's default one.
func (r *XkbConfigRegistry) Check(layout, variant string) error {
	l, ok := r.layout(layout)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayout, layout)
	}
	if variant == "" {
		return nil
	}

	for _, v := range l.Variants {
		if v.ConfigItem.Name == variant {
			return nil
		}
	}

	return fmt.Errorf("%w: %q for layout %q", ErrUnknownVariant, variant, layout)
}

// PrettyName returns the description shown to users, such as
// "French (Ergo-L)", or "" if the registry does not know the layout.
func (r *XkbConfigRegistry) PrettyName(layout, variant string) string {
	l, ok := r.layout(layout)
	if !ok {
		return ""
	}
	if variant == "" {
		return l.ConfigItem.Description
	}

	for _, v := range l.Variants {
		if v.ConfigItem.Name == variant {
			return v.ConfigItem.Description
		}
	}

	return ""
}

// Variants lists the variant names of a layout.
func (r *XkbConfigRegistry) Variants(layout string) []string {
	l, ok := r.layout(layout)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(l.Variants))
	for _, v := range l.Variants {
		names = append(names, v.ConfigItem.Name)
	}
	return names
}
