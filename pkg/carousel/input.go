package carousel

import (
	"github.com/nekodev/skillring/pkg/errors"
)

// Input adapters. Spatial adapters report whether the event was handled;
// false means it fell outside the carousel (or the controller is closed)
// and the host should let it propagate.

// Click focuses the card the user selected. Indices outside the deck are
// ignored.
func (c *Controller) Click(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if index < 0 || index >= c.total {
		c.ignored("click", "index out of range")
		return false
	}
	c.setFocus(index, SourceClick)
	return true
}

// TouchStart opens a touch session at p and suspends auto-advance. A touch
// that starts while another session is live replaces it.
func (c *Controller) TouchStart(p Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.bounds.Contains(p) {
		return false
	}
	c.touch = &Session{Start: p, Last: p}
	c.interactionStart(gestureTouch)
	return true
}

// TouchMove records the latest touch position. It never navigates.
func (c *Controller) TouchMove(p Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if c.touch == nil {
		c.ignored("touchmove", "no touch session")
		return false
	}
	c.touch.Last = p
	return true
}

// TouchEnd closes the touch session. A swipe left beyond the minimum
// distance focuses the next card, a swipe right the previous one; shorter
// gestures only start the cooldown.
func (c *Controller) TouchEnd() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if c.touch == nil {
		c.ignored("touchend", "no touch session")
		return false
	}
	delta := c.touch.Resolve(c.minSwipe)
	c.touch = nil
	c.interactionEnd(gestureTouch, delta, SourceSwipe)
	return true
}

// TouchCancel abandons the touch session without navigating.
func (c *Controller) TouchCancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.touch == nil {
		return false
	}
	c.touch = nil
	c.interactionEnd(gestureTouch, 0, SourceSwipe)
	return true
}

// Wheel handles a wheel event at p. Scrolling down focuses the next card,
// scrolling up the previous one, at most once per throttle window; events
// inside the window are absorbed. Events with no vertical delta or outside
// the bounds are not handled.
func (c *Controller) Wheel(p Point, deltaY float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || deltaY == 0 || !c.bounds.Contains(p) {
		return false
	}
	if c.throttleSlot.Pending() {
		return true
	}

	delta := 1
	if deltaY < 0 {
		delta = -1
	}
	c.interactionStart(gestureWheel)
	c.advance(delta, SourceWheel)
	c.throttleSlot.Schedule(c.throttle, c.onThrottleExpire)
	return true
}

func (c *Controller) onThrottleExpire(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.throttleSlot.Claim(token) {
		return
	}
	c.interactionEnd(gestureWheel, 0, SourceWheel)
}

// PointerEnter pauses auto-advance while the pointer rests on the carousel.
// It does not open an interaction.
func (c *Controller) PointerEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.enter()
	}
}

// PointerLeave resumes auto-advance immediately, cutting short a pending
// cooldown. A live gesture still keeps the timer off until it ends.
func (c *Controller) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.leave()
	}
}

// PointerMove derives enter and leave from the bounds and reports whether p
// is inside them.
func (c *Controller) PointerMove(p Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	inside := c.bounds.Contains(p)
	switch {
	case inside && !c.hovering:
		c.enter()
	case !inside && c.hovering:
		c.leave()
	}
	return inside
}

func (c *Controller) enter() {
	c.hovering = true
	c.setAutoPlay(false)
	c.reconcileTimer()
	c.notify()
}

func (c *Controller) leave() {
	c.hovering = false
	if c.state == Cooldown {
		c.cooldownSlot.Cancel()
		c.setState(Idle)
	}
	c.setAutoPlay(true)
	c.reconcileTimer()
	c.notify()
}

// Resize recomputes every frame for a new viewport width. The focus index
// is unchanged, including during a live interaction.
func (c *Controller) Resize(width float64) error {
	if err := errors.ValidateWidth(width); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New(errors.ErrCodeSessionClosed, "carousel is closed")
	}
	c.width = width
	c.relayout()
	return nil
}

// SetBounds updates the bounding region used by spatial input.
func (c *Controller) SetBounds(r Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bounds = r
}

// Bounds returns the bounding region used by spatial input.
func (c *Controller) Bounds() Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds
}
