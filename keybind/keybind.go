// Package keybind registers named actions that users can trigger from the keyboard.
package keybind

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrDuplicate  = errors.New("keybinding already registered")
	ErrNotFound   = errors.New("keybinding not found")
	ErrRestricted = errors.New("keybinding restricted to game masters")
)

// Precedence orders bindings that share a key.
type Precedence int

const (
	Priority Precedence = iota
	Normal
	Deferred
)

// Binding is a named action.
type Binding struct {
	Name       string
	Hint       string
	OnDown     func() error
	Restricted bool
	Precedence Precedence
}

// Registry holds the bindings registered by a module.
type Registry struct {
	namespace string
	bindings  map[string]Binding
	mu        sync.RWMutex
}

// NewRegistry creates a Registry for a module namespace.
func NewRegistry(namespace string) *Registry {
	r := new(Registry)
	r.namespace = namespace
	r.bindings = make(map[string]Binding)
	return r
}

// Register adds a binding.
func (r *Registry) Register(b Binding) error {
	if b.Name == "" || b.OnDown == nil {
		return fmt.Errorf("keybinding %q needs a name and an OnDown callback", b.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[b.Name]; ok {
		return fmt.Errorf("%w: %s.%s", ErrDuplicate, r.namespace, b.Name)
	}
	r.bindings[b.Name] = b
	return nil
}

// Trigger runs a binding. Restricted bindings only run for game masters.
func (r *Registry) Trigger(name string, gm bool) error {
	r.mu.RLock()
	b, ok := r.bindings[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrNotFound, r.namespace, name)
	}
	if b.Restricted && !gm {
		return fmt.Errorf("%w: %s.%s", ErrRestricted, r.namespace, name)
	}
	return b.OnDown()
}

// Bindings lists the registered bindings ordered by precedence, then name.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Precedence != out[j].Precedence {
			return out[i].Precedence < out[j].Precedence
		}
		return out[i].Name < out[j].Name
	})
	return out
}
