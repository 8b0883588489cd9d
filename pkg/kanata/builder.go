package kanata

import (
	"codeberg.org/miketth/layerboard/pkg/kbd"
	"fmt"
	"go.uber.org/zap"
	"iter"
)

// Build assembles a Config from a sequence of sections. Read errors abort the
// build; malformed or unknown sections are logged and skipped.
func Build(sections iter.Seq2[kbd.Section, error], log *zap.SugaredLogger) (*Config, error) {
	cfg := newConfig()
	srcSeen := false

	for section, err := range sections {
		if err != nil {
			return nil, fmt.Errorf("read sections: %w", err)
		}

		args := section.Args()
		switch section.Head() {
		case "defsrc":
			if srcSeen {
				log.Debugw("defsrc redefined, keeping the last one", "file", section.Path)
			}
			srcSeen = true
			cfg.SrcKeys = srcKeys(section, log)

		case "deflayer":
			if len(args) == 0 {
				log.Warnw("deflayer without a name", "file", section.Path)
				continue
			}
			name, ok := args[0].(kbd.Atom)
			if !ok {
				log.Warnw("deflayer name is not an atom", "file", section.Path, "section", section.Body.String())
				continue
			}
			actions := make([]Action, 0, len(args)-1)
			for _, e := range args[1:] {
				actions = append(actions, FromExpr(e))
			}
			cfg.setLayer(string(name), actions)

		case "defalias":
			addAliases(cfg, section, log)

		case "defcfg", "defvar":
			// not needed for labels

		default:
			log.Warnw("unknown section", "file", section.Path, "section", section.Body.String())
		}
	}

	return cfg, nil
}

func srcKeys(section kbd.Section, log *zap.SugaredLogger) []string {
	args := section.Args()
	keys := make([]string, 0, len(args))
	for _, e := range args {
		atom, ok := e.(kbd.Atom)
		if !ok {
			log.Warnw("defsrc entry is not a key", "file", section.Path, "entry", e.String())
			atom = kbd.Atom(e.String())
		}
		keys = append(keys, string(atom))
	}
	return keys
}

func addAliases(cfg *Config, section kbd.Section, log *zap.SugaredLogger) {
	args := section.Args()
	if len(args)%2 != 0 {
		log.Warnw("defalias has a name without a definition", "file", section.Path, "name", args[len(args)-1].String())
		args = args[:len(args)-1]
	}

	for i := 0; i < len(args); i += 2 {
		name, ok := args[i].(kbd.Atom)
		if !ok {
			log.Warnw("alias name is not an atom", "file", section.Path, "name", args[i].String())
			continue
		}
		cfg.Aliases[string(name)] = FromExpr(args[i+1])
	}
}
