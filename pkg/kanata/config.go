package kanata

import (
	"errors"
	"fmt"
)

var ErrUnknownLayer = errors.New("unknown layer")

// Config is a built kanata configuration. Position i of every layer maps to
// SrcKeys[i].
type Config struct {
	SrcKeys []string
	Aliases map[string]Action
	Layers  map[string][]Action

	// LayerOrder lists layer names in the order they were first defined.
	LayerOrder []string

	// Files are the absolute paths of every file the config was read from.
	Files []string
}

func newConfig() *Config {
	return &Config{
		Aliases: make(map[string]Action),
		Layers:  make(map[string][]Action),
	}
}

func (c *Config) setLayer(name string, actions []Action) {
	if _, exists := c.Layers[name]; !exists {
		c.LayerOrder = append(c.LayerOrder, name)
	}
	c.Layers[name] = actions
}

func (c *Config) Layer(name string) ([]Action, error) {
	actions, ok := c.Layers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return actions, nil
}

type LayerLengthError struct {
	Layer string
	Got   int
	Want  int
}

func (e *LayerLengthError) Error() string {
	return fmt.Sprintf("layer %q has %d actions for %d source keys", e.Layer, e.Got, e.Want)
}

// Validate reports every layer whose length differs from the source keys.
func (c *Config) Validate() []error {
	var errs []error
	for _, name := range c.LayerOrder {
		if got := len(c.Layers[name]); got != len(c.SrcKeys) {
			errs = append(errs, &LayerLengthError{Layer: name, Got: got, Want: len(c.SrcKeys)})
		}
	}
	return errs
}
