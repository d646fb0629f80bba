// Package timers owns every deferred callback of a carousel.
//
// A carousel has three kinds of pending work: the auto-advance tick, the
// post-interaction cooldown and the wheel throttle window. Each lives in its
// own [Slot]; a slot holds at most one pending callback, and scheduling a new
// one cancels the previous one first. Slots belong to a [Group] whose Stop
// cancels everything at once when the carousel is torn down.
//
// Callbacks run on whatever goroutine the [Clock] uses. Owners serialize them
// with their own lock and must call [Slot.Claim] with the callback's token
// while holding it: a token that was superseded or cancelled in the meantime
// is rejected, so a late callback never acts on state that has moved on.
//
//	c.mu.Lock()
//	defer c.mu.Unlock()
//	if !slot.Claim(token) {
//	    return // superseded
//	}
//
// [Manual] is a deterministic clock for tests: nothing fires until Advance.
package timers
