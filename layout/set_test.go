package layout

import (
	"context"
	"testing"
	"time"

	"github.com/pthm-cable/morph/config"
)

func newTestSet(t *testing.T, cfg *config.Config, name string) *Set {
	t.Helper()
	set, err := NewSet(context.Background(), NewGenerator(cfg, 1), 1, name)
	if err != nil {
		t.Fatalf("creating set: %v", err)
	}
	return set
}

func TestSetNameRegeneratesOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.Particles.Count = 2000
	set := newTestSet(t, cfg, "Ada")

	if got := set.TextGenerations(); got != 1 {
		t.Fatalf("expected 1 generation after creation, got %d", got)
	}

	before := set.All()

	if !set.SetName("Grace") {
		t.Fatal("changing the name should regenerate")
	}
	if got := set.TextGenerations(); got != 2 {
		t.Errorf("expected 2 generations, got %d", got)
	}
	if set.Name() != "Grace" {
		t.Errorf("expected name Grace, got %q", set.Name())
	}

	after := set.All()
	for _, s := range Shapes() {
		same := &before[s][0] == &after[s][0]
		if s == Text && same {
			t.Error("text layout should be a new buffer")
		}
		if s != Text && !same {
			t.Errorf("%s layout should be reference-stable across a name change", s)
		}
	}

	// Same name again is a no-op
	if set.SetName("Grace") {
		t.Error("setting the same name should not regenerate")
	}
	if got := set.TextGenerations(); got != 2 {
		t.Errorf("expected generations to stay at 2, got %d", got)
	}
}

func TestSetEmptyName(t *testing.T) {
	cfg := testConfig(t)
	cfg.Particles.Count = 1000
	set := newTestSet(t, cfg, "")

	// The prefix alone still has ink
	if set.Get(Text).IsZero() {
		t.Error("text layout for an empty name should show the prefix")
	}
	if set.Get(Shape(NumShapes)) != nil {
		t.Error("out of range shape should return nil")
	}
}

func TestSetCanceledContext(t *testing.T) {
	cfg := testConfig(t)
	cfg.Particles.Count = 100

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSet(ctx, NewGenerator(cfg, 1), 1, ""); err == nil {
		t.Error("expected an error from a canceled context")
	}
}

func TestTextWorker(t *testing.T) {
	cfg := testConfig(t)
	cfg.Particles.Count = 1000
	set := newTestSet(t, cfg, "Ada")

	w := NewTextWorker(set)
	defer w.Close()

	// Request never blocks, even when called faster than rebuilds finish
	for _, name := range []string{"B", "C", "D", "Grace"} {
		w.Request(name)
	}

	deadline := time.Now().Add(5 * time.Second)
	for set.Name() != "Grace" {
		if time.Now().After(deadline) {
			t.Fatalf("worker did not apply the latest name, have %q", set.Name())
		}
		time.Sleep(5 * time.Millisecond)
	}

	gens := set.TextGenerations()
	if gens < 2 || gens > 5 {
		t.Errorf("expected between 2 and 5 generations, got %d", gens)
	}
}

func TestTextWorkerCloseIdempotent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Particles.Count = 100
	w := NewTextWorker(newTestSet(t, cfg, ""))
	w.Close()
	w.Close()
}
