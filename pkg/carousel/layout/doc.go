// Package layout places carousel cards on a ring.
//
// The layout is a pure function of (card index, focus index, card count,
// viewport width). Cards are spread evenly around a circle, the focused card
// always sits at angle 0 (front, centered), and every other card is scaled,
// faded and stacked by its circular distance from the focus.
//
// # Geometry
//
// For N cards the angular step is 2π/N and card i sits at (i−focus)·step.
// With ring radius r the card is translated by r·sin(angle) sideways and
// r·cos(angle) in depth, and rotated by the same angle about the vertical axis.
// The radius is a step function of the viewport width ([Engine.Radius]) so
// the ring never overflows narrow screens.
//
// # Emphasis
//
// The circular distance d = min(|i−focus|, N−|i−focus|) is normalized by N/2.
// The active card gets scale 1 and opacity 1; the others interpolate linearly
// toward [MinScale] and [MinOpacity] as the normalized distance approaches 1.
// Stack order (paint priority) is [ActiveStackOrder] for the active card and
// round(5·(1−normalized)) otherwise.
//
// # Transitions
//
// Frames are targets. [Transition] interpolates from the previously rendered
// frames to the new targets with an easing curve; how and when a surface
// samples the transition is up to the surface.
package layout
