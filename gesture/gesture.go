// Package gesture defines the hand-gesture signal consumed by the morph engine
// and the sources that produce it.
package gesture

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Type is a recognized gesture classification.
type Type uint8

const (
	None Type = iota
	Heart
	Victory
	MiddleFinger
	Other
)

var typeNames = [...]string{
	None:         "none",
	Heart:        "heart",
	Victory:      "victory",
	MiddleFinger: "middle_finger",
	Other:        "other",
}

// String returns the wire name of the gesture type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "other"
}

// ParseType maps a wire name to a Type. Empty is None; anything unknown is Other.
func ParseType(name string) Type {
	if name == "" {
		return None
	}
	for i, n := range typeNames {
		if n == name {
			return Type(i)
		}
	}
	return Other
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	*t = ParseType(string(b))
	return nil
}

// Rotation holds normalized rotation inputs derived from hand position.
// X comes from hand height, Y from hand horizontal position.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is one reading of the gesture subsystem.
type State struct {
	Type     Type     `json:"type"`
	Openness float64  `json:"openness"` // Target openness in [0,1]
	Rotation Rotation `json:"rotation"`
}

// Clamp returns s with openness limited to [0,1].
func (s State) Clamp() State {
	if s.Openness < 0 {
		s.Openness = 0
	} else if s.Openness > 1 {
		s.Openness = 1
	}
	return s
}

// Decode parses one JSON gesture reading.
func Decode(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("decoding gesture: %w", err)
	}
	return s.Clamp(), nil
}

// Latch hands the latest gesture reading from a producer goroutine to the
// frame loop. The loop takes exactly one consistent snapshot per tick.
type Latch struct {
	mu    sync.Mutex
	state State
	seq   uint64
}

// NewLatch creates a latch holding initial.
func NewLatch(initial State) *Latch {
	return &Latch{state: initial.Clamp()}
}

// Publish replaces the current reading.
func (l *Latch) Publish(s State) {
	l.mu.Lock()
	l.state = s.Clamp()
	l.seq++
	l.mu.Unlock()
}

// Snapshot returns the current reading and its publish sequence number.
func (l *Latch) Snapshot() (State, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state, l.seq
}
