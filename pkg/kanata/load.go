package kanata

import (
	"codeberg.org/miketth/layerboard/pkg/kbd"
	"fmt"
	"go.uber.org/zap"
)

// LoadConfig reads path and its includes, builds a fresh Config and resolves
// every alias used by its layers. Nothing is kept between calls.
func LoadConfig(path string, log *zap.SugaredLogger, opts ...kbd.Option) (*Config, error) {
	reader := kbd.NewReader(opts...)

	cfg, err := Build(reader.Sections(path), log)
	if err != nil {
		return nil, fmt.Errorf("build config %s: %w", path, err)
	}
	cfg.Files = reader.Files()

	for _, err := range cfg.Validate() {
		log.Warnw("layer length mismatch", "error", err)
	}

	resolver := NewResolver(cfg.Aliases, log)
	for name, actions := range cfg.Layers {
		resolved := make([]Action, len(actions))
		for i, action := range actions {
			resolved[i] = resolver.Resolve(action)
		}
		cfg.Layers[name] = resolved
	}

	log.Debugw("loaded config", "path", path, "layers", cfg.LayerOrder, "keys", len(cfg.SrcKeys), "aliases", len(cfg.Aliases))

	return cfg, nil
}
