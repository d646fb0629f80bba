package layout

import (
	"math"
	"time"
)

// DefaultTransitionDuration is how long a surface should take to move cards
// from their previous frames to new targets.
const DefaultTransitionDuration = 800 * time.Millisecond

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return clamp01(t) }

// EaseOutCubic decelerates toward the target.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// Lerp interpolates between two frames of the same card. Continuous fields
// are interpolated linearly, rotation along the shorter arc; StackOrder and
// Active switch to the target at the midpoint.
func Lerp(from, to Frame, t float64) Frame {
	t = clamp01(t)
	if t == 1 {
		return to
	}
	out := Frame{
		Index:         to.Index,
		LateralOffset: mix(from.LateralOffset, to.LateralOffset, t),
		DepthOffset:   mix(from.DepthOffset, to.DepthOffset, t),
		Rotation:      from.Rotation + arc(from.Rotation, to.Rotation)*t,
		Scale:         mix(from.Scale, to.Scale, t),
		Opacity:       mix(from.Opacity, to.Opacity, t),
		Radius:        mix(from.Radius, to.Radius, t),
		StackOrder:    from.StackOrder,
		Active:        from.Active,
	}
	if t >= 0.5 {
		out.StackOrder = to.StackOrder
		out.Active = to.Active
	}
	return out
}

// Transition animates a full set of frames toward new targets.
type Transition struct {
	From     []Frame
	To       []Frame
	Duration time.Duration
	Ease     Easing
}

// NewTransition builds a transition. A nil or mismatched from slice (first
// render) starts the transition already at the target.
func NewTransition(from, to []Frame, d time.Duration) Transition {
	if len(from) != len(to) {
		from = to
	}
	return Transition{From: from, To: to, Duration: d, Ease: EaseOutCubic}
}

// Done reports whether elapsed has reached the transition's duration.
func (tr Transition) Done(elapsed time.Duration) bool {
	return elapsed >= tr.Duration
}

// At samples the transition after elapsed time.
func (tr Transition) At(elapsed time.Duration) []Frame {
	p := 1.0
	if tr.Duration > 0 {
		p = float64(elapsed) / float64(tr.Duration)
	}
	ease := tr.Ease
	if ease == nil {
		ease = Linear
	}
	p = ease(p)

	out := make([]Frame, len(tr.To))
	for i := range tr.To {
		out[i] = Lerp(tr.From[i], tr.To[i], p)
	}
	return out
}

func mix(a, b, t float64) float64 { return a*(1-t) + b*t }

// arc returns the signed rotation in degrees from a to b, in (-180, 180].
func arc(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
