// Package registry maps game names to factories that validate a declared
// parameter schema before constructing a game.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lox/goofspiel/game"
)

var (
	ErrUnknownGame  = errors.New("unknown game")
	ErrDuplicate    = errors.New("game already registered")
	ErrUnknownParam = errors.New("unknown parameter")
)

// Factory builds a game from a complete set of named parameters.
type Factory func(params map[string]string) (*game.Game, error)

// Entry describes one registered game.
type Entry struct {
	ShortName string
	LongName  string
	// Defaults declares every accepted parameter and its default value.
	Defaults map[string]string
	New      Factory
}

// Registry is an explicit name -> factory table. The zero value is empty and
// ready to use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Builtin returns a registry holding every game this module implements.
func Builtin() *Registry {
	r := New()
	if err := r.Register(Goofspiel()); err != nil {
		panic(err)
	}
	return r
}

// Goofspiel is the registry entry for game.Game.
func Goofspiel() Entry {
	return Entry{
		ShortName: "goofspiel",
		LongName:  "Goofspiel",
		Defaults:  game.DefaultParams().Map(),
		New:       game.NewFromMap,
	}
}

// Register adds an entry. Names must be unique.
func (r *Registry) Register(e Entry) error {
	if e.ShortName == "" || e.New == nil {
		return fmt.Errorf("registry: entry needs a name and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	if _, ok := r.entries[e.ShortName]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, e.ShortName)
	}
	r.entries[e.ShortName] = e
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return e, nil
}

// Load builds the named game. Parameters absent from raw take the entry's
// defaults; names outside the declared schema are rejected before the
// factory runs.
func (r *Registry) Load(name string, raw map[string]string) (*game.Game, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	params := make(map[string]string, len(e.Defaults))
	for k, v := range e.Defaults {
		params[k] = v
	}
	for k, v := range raw {
		if _, ok := e.Defaults[k]; !ok {
			return nil, fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParam, name, k)
		}
		params[k] = v
	}
	return e.New(params)
}

// Names lists the registered short names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
