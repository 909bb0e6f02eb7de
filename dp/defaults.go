package dp

import (
	"fmt"
	"slices"
)

// Default binds one elided key field to an initializer evaluated against the
// auxiliary context.
type Default[C any, K comparable] struct {
	// Param is the key field this initializer fills.
	Param string

	// Uses lists the names Init reads besides the context: extras, caller
	// supplied params, or defaults declared earlier.
	Uses []string

	// Init returns key with Param filled in.
	Init func(aux C, key K) (K, error)
}

// Config describes the calling convention of an evaluator.
//
// Params   – every key field, in declaration order.
// Extras   – names of the auxiliary context fields.
// Defaults – elided params, resolved in order before the first evaluation.
type Config[C any, K comparable] struct {
	Params   []string
	Extras   []string
	Defaults []Default[C, K]
}

// validate rejects malformed bindings before anything is evaluated.
func (cfg Config[C, K]) validate() error {
	if name, ok := firstDuplicate(cfg.Params); ok {
		return malformed(name, "is declared twice in", "params")
	}
	if name, ok := firstDuplicate(cfg.Extras); ok {
		return malformed(name, "is declared twice in", "extras")
	}

	isDefault := make(map[string]bool, len(cfg.Defaults))
	for _, d := range cfg.Defaults {
		isDefault[d.Param] = true
	}

	bound := make(map[string]bool, len(cfg.Defaults))
	for _, d := range cfg.Defaults {
		switch {
		case d.Param == "":
			return malformed(d.Param, "has an empty name", "")
		case bound[d.Param]:
			return malformed(d.Param, "has more than one default", "")
		case slices.Contains(cfg.Extras, d.Param):
			return malformed(d.Param, "shadows auxiliary field", d.Param)
		case !slices.Contains(cfg.Params, d.Param):
			return malformed(d.Param, "is not declared in the signature", "")
		case d.Init == nil:
			return malformed(d.Param, "has a nil initializer", "")
		}

		for _, ref := range d.Uses {
			switch {
			case ref == d.Param:
				return malformed(d.Param, "references itself as", ref)
			case slices.Contains(cfg.Extras, ref):
			case isDefault[ref] && !bound[ref]:
				return malformed(d.Param, "references a default before it is bound:", ref)
			case slices.Contains(cfg.Params, ref):
			default:
				return malformed(d.Param, "references undeclared name", ref)
			}
		}
		bound[d.Param] = true
	}
	return nil
}

// resolve runs every default initializer, in declaration order.
func (cfg Config[C, K]) resolve(aux C, key K) (K, error) {
	for _, d := range cfg.Defaults {
		next, err := d.Init(aux, key)
		if err != nil {
			return key, &DefaultError{
				Param:  d.Param,
				Reason: "could not be resolved",
				Err:    fmt.Errorf("%w: %w", ErrDefaultInit, err),
			}
		}
		key = next
	}
	return key, nil
}

func firstDuplicate(names []string) (string, bool) {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return n, true
		}
		seen[n] = struct{}{}
	}
	return "", false
}
