package fleet

import (
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Registry is the fixed, closed set of cart identifiers established at
// initialization. No operation adds or removes a cart at runtime.
type Registry struct {
	names []string
	index map[string]struct{}
}

// GeneratedNames produces the default "Cart 1".."Cart N" identifiers.
func GeneratedNames(count int, prefix string) []string {
	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		names = append(names, fmt.Sprintf("%s%d", prefix, i))
	}
	return names
}

// NewRegistry builds a registry from the given identifiers.
// Names are kept in natural order ("Cart 2" before "Cart 10") using numeric
// collation, so listings and reports read the way the fleet is labeled.
func NewRegistry(names []string) (*Registry, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("registry must not be empty")
	}

	r := &Registry{
		names: make([]string, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	copy(r.names, names)
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("cart identifier must not be empty")
		}
		if _, dup := r.index[name]; dup {
			return nil, fmt.Errorf("duplicate cart identifier %q", name)
		}
		r.index[name] = struct{}{}
	}

	collate.New(language.English, collate.Numeric).SortStrings(r.names)
	return r, nil
}

// Contains reports whether name is a registered cart identifier.
func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns the cart identifiers in natural order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered carts.
func (r *Registry) Len() int {
	return len(r.names)
}
