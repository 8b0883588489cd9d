package kanata

import (
	"go.uber.org/zap"
	"strings"
)

// Resolver inlines alias references.
type Resolver struct {
	aliases map[string]Action
	log     *zap.SugaredLogger
}

func NewResolver(aliases map[string]Action, log *zap.SugaredLogger) *Resolver {
	return &Resolver{aliases: aliases, log: log}
}

// Resolve returns action with every AliasRef replaced by its definition,
// recursively, including references nested inside forms. An unknown or
// cyclic reference is replaced by its literal "@name" Key and logged.
func (r *Resolver) Resolve(action Action) Action {
	return r.resolve(action, nil)
}

func (r *Resolver) resolve(action Action, chain []string) Action {
	switch a := action.(type) {
	case AliasRef:
		name := string(a)
		for _, seen := range chain {
			if seen == name {
				r.log.Warnw("alias cycle", "alias", a.String(), "chain", strings.Join(append(chain, name), " -> "))
				return Key(a.String())
			}
		}

		def, ok := r.aliases[name]
		if !ok {
			r.log.Warnw("unknown alias", "alias", a.String())
			return Key(a.String())
		}
		return r.resolve(def, append(chain, name))

	case Form:
		out := make(Form, len(a))
		for i, item := range a {
			out[i] = r.resolve(item, chain)
		}
		return out
	}

	return action
}
