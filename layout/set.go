package layout

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Set holds one layout per shape. Static layouts are built once; the text
// layout is replaced as a whole buffer whenever the custom name changes, so a
// reader sees either the old or the new buffer, never a partial one.
type Set struct {
	gen    *Generator
	static [NumShapes]Layout
	text   atomic.Pointer[Layout]

	mu      sync.Mutex // serializes text regeneration
	name    string
	hasName bool

	textGenerations atomic.Uint64
}

// NewSet generates every static layout in parallel, each from its own
// rng derived from seed, then the text layout for name.
func NewSet(ctx context.Context, gen *Generator, seed int64, name string) (*Set, error) {
	s := &Set{gen: gen}

	eg, ctx := errgroup.WithContext(ctx)
	for _, shape := range Shapes() {
		if shape == Text {
			continue
		}
		rng := rand.New(rand.NewSource(seed + int64(shape)*7919))
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.static[shape] = gen.Static(shape, rng)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generating layouts: %w", err)
	}

	s.SetName(name)
	return s, nil
}

// Get returns the current layout for shape.
func (s *Set) Get(shape Shape) Layout {
	if shape == Text {
		if l := s.text.Load(); l != nil {
			return *l
		}
		return nil
	}
	if int(shape) >= NumShapes {
		return nil
	}
	return s.static[shape]
}

// All returns the current layouts in shape order.
func (s *Set) All() [NumShapes]Layout {
	var out [NumShapes]Layout
	for i := range out {
		out[i] = s.Get(Shape(i))
	}
	return out
}

// SetName regenerates the text layout if name differs from the current one.
// It reports whether a regeneration happened.
func (s *Set) SetName(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasName && name == s.name {
		return false
	}

	l := s.gen.TextLayout(name)
	s.text.Store(&l)
	s.name = name
	s.hasName = true
	s.textGenerations.Add(1)
	return true
}

// Name returns the custom name the text layout was built from.
func (s *Set) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// TextGenerations returns how many times the text layout has been built.
func (s *Set) TextGenerations() uint64 {
	return s.textGenerations.Load()
}

// Count returns the number of points per layout.
func (s *Set) Count() int {
	return s.gen.Count()
}
