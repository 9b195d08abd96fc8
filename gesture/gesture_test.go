package gesture

import (
	"sync"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"", None},
		{"none", None},
		{"heart", Heart},
		{"victory", Victory},
		{"middle_finger", MiddleFinger},
		{"other", Other},
		{"thumbs_up", Other},
		{"HEART", Other},
	}
	for _, tt := range tests {
		if got := ParseType(tt.name); got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	for _, typ := range []Type{None, Heart, Victory, MiddleFinger, Other} {
		if got := ParseType(typ.String()); got != typ {
			t.Errorf("round trip of %v gave %v", typ, got)
		}
	}
}

func TestDecode(t *testing.T) {
	s, err := Decode([]byte(`{"type":"victory","openness":0.7,"rotation":{"x":0.1,"y":-0.2}}`))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if s.Type != Victory || s.Openness != 0.7 || s.Rotation.X != 0.1 || s.Rotation.Y != -0.2 {
		t.Errorf("unexpected state %+v", s)
	}

	s, err = Decode([]byte(`{"type":"wave","openness":4}`))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if s.Type != Other {
		t.Errorf("unknown type should decode as other, got %v", s.Type)
	}
	if s.Openness != 1 {
		t.Errorf("openness should clamp to 1, got %f", s.Openness)
	}

	if _, err := Decode([]byte(`{"type":`)); err == nil {
		t.Error("expected an error for truncated JSON")
	}
}

func TestLatch(t *testing.T) {
	l := NewLatch(State{Openness: -1})
	s, seq := l.Snapshot()
	if s.Openness != 0 || seq != 0 {
		t.Errorf("initial state should be clamped with seq 0, got %+v seq %d", s, seq)
	}

	l.Publish(State{Type: Heart, Openness: 0.5})
	s, seq = l.Snapshot()
	if s.Type != Heart || s.Openness != 0.5 || seq != 1 {
		t.Errorf("unexpected snapshot %+v seq %d", s, seq)
	}
}

func TestLatchConcurrent(t *testing.T) {
	l := NewLatch(State{})

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				// Type and openness always travel together
				l.Publish(State{Type: Heart, Openness: 1})
				l.Publish(State{Type: None, Openness: 0})
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		s, _ := l.Snapshot()
		if (s.Type == Heart) != (s.Openness == 1) {
			t.Fatalf("torn snapshot %+v", s)
		}
	}
	wg.Wait()

	if _, seq := l.Snapshot(); seq != 2000 {
		t.Errorf("expected 2000 publishes, got %d", seq)
	}
}
