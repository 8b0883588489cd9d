package main

import (
	"codeberg.org/miketth/layerboard/pkg/display"
	"codeberg.org/miketth/layerboard/pkg/xkblayouts"
	"context"
	"fmt"
	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

type Globals struct {
	Config       kong.ConfigFlag   `help:"Path to a TOML config file." short:"c"`
	Debug        bool              `help:"Enable debug logging."`
	KanataConfig string            `help:"Path to the kanata config file." type:"path" default:"${kanata_config}"`
	Keyboard     keyboardFlags     `embed:"" prefix:"keyboard-"`
	LayerLabels  map[string]string `help:"Glyph shown on keys switching to a layer, by layer name." mapsep:";"`
}

type keyboardFlags struct {
	Layout  string `help:"XKB layout kanata sends keys to." default:"fr"`
	Variant string `help:"XKB layout variant." default:"ergol"`
	Evdev   string `help:"Path to the XKB evdev.xml registry." type:"path" default:"${evdev_xml}"`
	Keymap  string `help:"Read a dumped XKB keymap instead of compiling one with xkbcli." type:"path"`
}

type cli struct {
	Globals

	Run  runCmd  `cmd:"" default:"withargs" help:"Show the active kanata layer."`
	Dump dumpCmd `cmd:"" help:"Print the key labels of each layer as YAML."`
}

func configPath() string {
	return filepath.Join(xdg.ConfigHome, "layerboard", "config.toml")
}

func newParser(ctx context.Context, c *cli, configFiles ...string) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("layerboard"),
		kong.Description("Shows the labels of the active kanata layer."),
		kong.UsageOnError(),
		kong.Configuration(loadTOML, configFiles...),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Vars{
			"kanata_config":   filepath.Join(xdg.ConfigHome, "kanata", "kanata.kbd"),
			"cache_dir":       filepath.Join(xdg.CacheHome, "kanata-layers"),
			"display_command": display.DefaultCommand,
			"evdev_xml":       xkblayouts.DefaultRegistryPath,
		},
	)
}

// loadTOML is a kong.ConfigurationLoader. Tables are flattened into dash
// joined flag names, so
//
//	[kanata]
//	port = 5830
//
// sets --kanata-port. A table of plain values also resolves as a whole, in
// the "key=value;key=value" form kong uses for map flags.
func loadTOML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	values := make(tomlConfig)
	values.flatten("", doc)
	return values, nil
}

type tomlConfig map[string]any

func (c tomlConfig) flatten(prefix string, table map[string]any) {
	entries := make([]string, 0, len(table))
	scalars := true

	for key, value := range table {
		name := key
		if prefix != "" {
			name = prefix + "-" + key
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(name, sub)
			scalars = false
			continue
		}

		converted := tomlValue(value)
		c[name] = converted
		entries = append(entries, key+"="+fmt.Sprint(converted))
	}

	if prefix != "" && scalars && len(entries) > 0 {
		slices.Sort(entries)
		c[prefix] = strings.Join(entries, ";")
	}
}

// tomlValue converts decoded values to what kong's mappers accept.
func tomlValue(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(tomlValue(item))
		}
		return strings.Join(items, ",")
	default:
		return v
	}
}

func (c tomlConfig) Validate(*kong.Application) error {
	return nil
}

func (c tomlConfig) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}
	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}
	return nil, nil
}
