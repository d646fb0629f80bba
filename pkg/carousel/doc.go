// Package carousel implements the interaction state of a 3D card carousel.
//
// A [Controller] owns the only mutable navigation state: the focus index and
// the auto-play flag. Input adapters (click, touch swipe, wheel, hover,
// resize) translate raw events into intents, the navigation state machine
// applies them, and every focus or viewport change recomputes all card
// frames with package layout.
//
// # States
//
//	Idle ──interaction start──▶ Interacting ──interaction end──▶ Cooldown
//	  ▲                                                             │
//	  └─────────────────────── cooldown expires ────────────────────┘
//
// The auto-advance timer runs only in Idle while auto-play is on. Any new
// interaction cancels a pending cooldown, so the most recent input always
// wins.
//
// # Concurrency
//
// A Controller is safe for concurrent use. Every intent and every timer
// callback runs under one lock, which gives a single linearized sequence of
// transitions regardless of which goroutine delivers an event. Surfaces
// learn about changes through [Controller.Changes] and read state with
// [Controller.Snapshot].
//
// # Lifetime
//
// [Controller.Close] cancels the auto-advance tick, a pending cooldown and
// an in-flight wheel throttle, and closes the Changes channel. Events
// delivered after Close are ignored.
package carousel
