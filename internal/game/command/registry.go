package command

import (
	"fmt"
	"sort"
)

// Registry maps verbs and aliases to Verb definitions.
type Registry struct {
	verbs   map[string]*Verb // canonical name → verb
	aliases map[string]string
	order   []string
}

// NewRegistry creates a Registry populated with the given verbs.
//
// Precondition: No two verbs may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(verbs []Verb) (*Registry, error) {
	r := &Registry{
		verbs:   make(map[string]*Verb, len(verbs)),
		aliases: make(map[string]string),
	}

	for i := range verbs {
		v := &verbs[i]
		if v.Name == "" {
			return nil, fmt.Errorf("verb %d has an empty name", i)
		}
		if _, exists := r.verbs[v.Name]; exists {
			return nil, fmt.Errorf("duplicate verb name: %q", v.Name)
		}
		if _, exists := r.aliases[v.Name]; exists {
			return nil, fmt.Errorf("verb name %q conflicts with an existing alias", v.Name)
		}
		r.verbs[v.Name] = v
		r.order = append(r.order, v.Name)

		for _, alias := range v.Aliases {
			if _, exists := r.verbs[alias]; exists {
				return nil, fmt.Errorf("alias %q conflicts with verb name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, v.Name)
			}
			r.aliases[alias] = v.Name
		}
	}

	return r, nil
}

// DefaultRegistry creates a Registry with all built-in verbs.
//
// Postcondition: Returns a Registry with all built-in verbs registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinVerbs())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a verb by name or alias.
//
// Postcondition: Returns (verb, true) if found, or (nil, false).
func (r *Registry) Resolve(word string) (*Verb, bool) {
	if v, ok := r.verbs[word]; ok {
		return v, true
	}
	if canonical, ok := r.aliases[word]; ok {
		return r.verbs[canonical], true
	}
	return nil, false
}

// Verbs returns all registered verbs in registration order.
func (r *Registry) Verbs() []*Verb {
	result := make([]*Verb, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.verbs[name])
	}
	return result
}

// VerbsByCategory returns verbs grouped by category, in registration order
// within each group.
func (r *Registry) VerbsByCategory() map[string][]*Verb {
	categories := make(map[string][]*Verb)
	for _, v := range r.Verbs() {
		categories[v.Category] = append(categories[v.Category], v)
	}
	return categories
}

// Categories returns the category names present, sorted.
func (r *Registry) Categories() []string {
	var names []string
	for c := range r.VerbsByCategory() {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}
