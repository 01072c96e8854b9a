package types

import (
	"maps"
	"slices"
)

// Typedefs maps typedef names to the types they stand for. Translate fills it as it
// meets `@typedef` annotations, and resolves names against it, so a typedef is only
// visible to annotations translated after it.
//
// A Typedefs belongs to a single scanned unit and is not safe for concurrent use.
type Typedefs struct {
	defs map[string]Type
}

func NewTypedefs() *Typedefs {
	return &Typedefs{defs: make(map[string]Type)}
}

// Register binds name to t. Registering a name twice is allowed and the last
// registration wins; shadowed reports when that happened, together with the previous type
func (d *Typedefs) Register(name string, t Type) (previous Type, shadowed bool) {
	previous, shadowed = d.defs[name]
	if shadowed {
		logger.Warn("typedef redefined", "name", name, "previous", previous.String(), "new", t.String())
	}
	d.defs[name] = t
	logger.Debug("registered typedef", "name", name, "type", t.String())
	return previous, shadowed
}

// Resolve returns the type registered under name. A nil *Typedefs resolves nothing
func (d *Typedefs) Resolve(name string) (Type, bool) {
	if d == nil {
		return nil, false
	}
	t, ok := d.defs[name]
	return t, ok
}

// Names returns the registered names, sorted
func (d *Typedefs) Names() []string {
	if d == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(d.defs))
}

func (d *Typedefs) Len() int {
	if d == nil {
		return 0
	}
	return len(d.defs)
}
