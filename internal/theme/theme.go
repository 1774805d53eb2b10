// Package theme owns the light/dark preference: it resolves the initial value
// from durable storage or the host environment and persists every change.
package theme

import (
	"fmt"

	"github.com/brk3/habitdash/internal/logger"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// StorageKey is the preference key the theme is persisted under.
const StorageKey = "theme"

func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Store is durable key/value storage for client preferences.
type Store interface {
	GetPreference(key string) (string, bool, error)
	PutPreference(key, value string) error
}

// Ambient reports the host environment's preferred theme, if it has one.
type Ambient func() (Theme, bool)

// State is the process-wide theme cell. Set and Toggle are the only mutators;
// each change is persisted and handed to the apply hook.
type State struct {
	store   Store
	apply   func(Theme)
	current Theme
}

// Load resolves the initial theme: stored choice, else ambient preference,
// else light. A storage read error counts as no stored value. The apply hook
// runs once with the resolved value.
func Load(store Store, ambient Ambient, apply func(Theme)) *State {
	s := &State{store: store, apply: apply, current: resolve(store, ambient)}
	if s.apply != nil {
		s.apply(s.current)
	}
	return s
}

func resolve(store Store, ambient Ambient) Theme {
	if store != nil {
		v, ok, err := store.GetPreference(StorageKey)
		switch {
		case err != nil:
			logger.Warn("Failed to read stored theme", "error", err)
		case ok:
			if t, err := Parse(v); err == nil {
				return t
			}
			logger.Warn("Ignoring invalid stored theme", "value", v)
		}
	}
	if ambient != nil {
		if t, ok := ambient(); ok {
			return t
		}
	}
	return Light
}

func (s *State) Get() Theme {
	return s.current
}

func (s *State) Toggle() Theme {
	s.Set(s.current.Opposite())
	return s.current
}

// Set changes the theme, persists it and applies it. Persistence failures are
// logged; the in-memory value still changes.
func (s *State) Set(t Theme) {
	s.current = t
	if s.store != nil {
		if err := s.store.PutPreference(StorageKey, string(t)); err != nil {
			logger.Error("Failed to persist theme", "theme", t, "error", err)
		}
	}
	if s.apply != nil {
		s.apply(t)
	}
}
