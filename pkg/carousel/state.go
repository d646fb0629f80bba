package carousel

import (
	"math"

	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/errors"
)

// State is the navigation state.
type State uint8

const (
	// Idle: no gesture live; the auto-advance timer runs if auto-play is on.
	Idle State = iota
	// Interacting: a swipe or wheel gesture is live; auto-advance is suspended.
	Interacting
	// Cooldown: a gesture ended; auto-advance resumes when the quiet window expires.
	Cooldown
)

var stateNames = [...]string{Idle: "idle", Interacting: "interacting", Cooldown: "cooldown"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown state %q", text)
}

// Source identifies the input that caused a navigation.
type Source uint8

const (
	SourceAPI Source = iota
	SourceClick
	SourceTimer
	SourceSwipe
	SourceWheel
)

var sourceNames = [...]string{
	SourceAPI:   "api",
	SourceClick: "click",
	SourceTimer: "timer",
	SourceSwipe: "swipe",
	SourceWheel: "wheel",
}

func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "unknown"
}

// gesture is a bit set of live interactions.
type gesture uint8

const (
	gestureTouch gesture = 1 << iota
	gestureWheel
	gestureHost
)

// Point is a position in the host's coordinate space, in device-independent
// pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the carousel's bounding region. The zero Rect is unbounded: every
// point is inside.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Unbounded reports whether r accepts every point.
func (r Rect) Unbounded() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies in r. Edges on the left and top are
// inclusive, right and bottom exclusive.
func (r Rect) Contains(p Point) bool {
	if r.Unbounded() {
		return true
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Session is the transient record of an in-progress touch gesture.
type Session struct {
	Start Point `json:"start"`
	Last  Point `json:"last"`
}

// Distance is the horizontal travel of the gesture, positive when the finger
// moved left.
func (s Session) Distance() float64 { return s.Start.X - s.Last.X }

// Resolve maps the gesture to a navigation delta: +1 for a left swipe longer
// than threshold, -1 for a right swipe, 0 otherwise.
func (s Session) Resolve(threshold float64) int {
	d := s.Distance()
	if math.Abs(d) <= threshold {
		return 0
	}
	if d > 0 {
		return 1
	}
	return -1
}

// Snapshot is a consistent copy of a controller's state.
type Snapshot struct {
	Focus       int            `json:"focus"`
	Total       int            `json:"total"`
	State       State          `json:"state"`
	AutoPlaying bool           `json:"auto_playing"`
	Hovering    bool           `json:"hovering"`
	Touch       *Session       `json:"touch,omitempty"`
	Width       float64        `json:"width"`
	Radius      float64        `json:"radius"`
	Frames      []layout.Frame `json:"frames"`
	Previous    []layout.Frame `json:"previous,omitempty"`
	Version     uint64         `json:"version"`
	Closed      bool           `json:"closed"`
}

// TimerRunning reports whether the auto-advance timer is armed in this
// snapshot's state.
func (s Snapshot) TimerRunning() bool {
	return !s.Closed && s.State == Idle && s.AutoPlaying
}

// wrap maps any integer onto [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}
