// Package ui provides the control panel, HUD and UI state store for the particle field.
package ui

import (
	"image/color"
	"sync"
)

// State is a consistent snapshot of the UI controls.
type State struct {
	Pattern string
	Color   color.RGBA
	Name    string
}

// Store holds the user-selected pattern, color and custom name. Widgets on the
// frame loop and the native name prompt both write to it.
type Store struct {
	mu     sync.Mutex
	state  State
	onName []func(name string)
}

// NewStore creates a store holding initial.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Snapshot returns the current controls.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetPattern selects a pattern by name.
func (s *Store) SetPattern(pattern string) {
	s.mu.Lock()
	s.state.Pattern = pattern
	s.mu.Unlock()
}

// SetColor sets the particle color.
func (s *Store) SetColor(c color.RGBA) {
	s.mu.Lock()
	s.state.Color = c
	s.mu.Unlock()
}

// SetName sets the custom name and notifies subscribers if it changed.
// Subscribers run on the caller's goroutine after the lock is released.
func (s *Store) SetName(name string) bool {
	s.mu.Lock()
	if s.state.Name == name {
		s.mu.Unlock()
		return false
	}
	s.state.Name = name
	subs := append([]func(string){}, s.onName...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(name)
	}
	return true
}

// OnNameChange registers fn to be called with every new custom name.
func (s *Store) OnNameChange(fn func(name string)) {
	s.mu.Lock()
	s.onName = append(s.onName, fn)
	s.mu.Unlock()
}
