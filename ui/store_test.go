package ui

import (
	"image/color"
	"testing"
)

func TestStoreSetters(t *testing.T) {
	s := NewStore(State{Pattern: "sphere", Color: color.RGBA{R: 1, A: 255}})

	s.SetPattern("wave")
	s.SetColor(color.RGBA{B: 200, A: 255})

	got := s.Snapshot()
	if got.Pattern != "wave" {
		t.Errorf("expected pattern wave, got %q", got.Pattern)
	}
	if got.Color != (color.RGBA{B: 200, A: 255}) {
		t.Errorf("unexpected color %v", got.Color)
	}
	if got.Name != "" {
		t.Errorf("name should be untouched, got %q", got.Name)
	}
}

func TestStoreNameNotifications(t *testing.T) {
	s := NewStore(State{Name: "Ada"})

	var calls []string
	s.OnNameChange(func(name string) { calls = append(calls, name) })

	if s.SetName("Ada") {
		t.Error("same name should report no change")
	}
	if !s.SetName("Grace") {
		t.Error("new name should report a change")
	}
	if !s.SetName("") {
		t.Error("clearing the name should report a change")
	}

	if len(calls) != 2 || calls[0] != "Grace" || calls[1] != "" {
		t.Errorf("expected notifications [Grace, \"\"], got %q", calls)
	}
	if s.Snapshot().Name != "" {
		t.Errorf("expected empty name, got %q", s.Snapshot().Name)
	}
}

func TestStoreSubscriberCanRead(t *testing.T) {
	s := NewStore(State{})

	// Subscribers run outside the lock
	var seen string
	s.OnNameChange(func(string) { seen = s.Snapshot().Name })
	s.SetName("Lin")

	if seen != "Lin" {
		t.Errorf("subscriber should see the new name, got %q", seen)
	}
}
