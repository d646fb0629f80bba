package carousel

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/carousel/timers"
	"github.com/nekodev/skillring/pkg/observability"
)

// Timer slot names.
const (
	slotTick     = "auto-advance"
	slotCooldown = "cooldown"
	slotThrottle = "wheel-throttle"
)

// Controller owns a carousel's navigation state.
type Controller struct {
	mu sync.Mutex

	total    int
	engine   *layout.Engine
	interval time.Duration
	cooldown time.Duration
	throttle time.Duration
	minSwipe float64
	hooks    observability.CarouselHooks
	logger   *log.Logger

	timers       *timers.Group
	tickSlot     *timers.Slot
	cooldownSlot *timers.Slot
	throttleSlot *timers.Slot

	focus       int
	state       State
	autoPlaying bool
	hovering    bool
	live        gesture
	touch       *Session
	width       float64
	bounds      Rect

	frames   []layout.Frame
	previous []layout.Frame
	version  uint64

	closed  bool
	changes chan struct{}
}

// New creates a controller for total cards and starts auto-advance if
// enabled. It fails with errors.ErrCodeEmptyContent when total is zero: an
// empty carousel has no meaningful geometry.
func New(total int, opts ...Option) (*Controller, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(total); err != nil {
		return nil, err
	}

	g := timers.NewGroup(o.clock)
	c := &Controller{
		total:        total,
		engine:       o.engine,
		interval:     o.interval,
		cooldown:     o.cooldown,
		throttle:     o.throttle,
		minSwipe:     o.minSwipe,
		hooks:        o.hooks,
		logger:       o.logger,
		timers:       g,
		tickSlot:     g.Slot(slotTick),
		cooldownSlot: g.Slot(slotCooldown),
		throttleSlot: g.Slot(slotThrottle),
		focus:        o.initial,
		state:        Idle,
		autoPlaying:  o.autoPlay,
		width:        o.width,
		bounds:       o.bounds,
		changes:      make(chan struct{}, 1),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.relayout()
	c.reconcileTimer()
	return c, nil
}

// Total returns the number of cards.
func (c *Controller) Total() int { return c.total }

// =============================================================================
// Intent API
// =============================================================================

// GoTo focuses index directly, wrapping it onto the ring. It does not change
// the auto-play flag.
func (c *Controller) GoTo(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.setFocus(wrap(index, c.total), SourceAPI)
}

// Advance moves the focus by delta positions around the ring.
func (c *Controller) Advance(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.advance(delta, SourceAPI)
}

// InteractionStart suspends auto-advance for a host-defined gesture, such as
// a keyboard drag, until the matching InteractionEnd.
func (c *Controller) InteractionStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.interactionStart(gestureHost)
}

// InteractionEnd ends a host-defined gesture, applying delta (0 for no
// move) and entering the cooldown.
func (c *Controller) InteractionEnd(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.interactionEnd(gestureHost, delta, SourceAPI)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Focus:       c.focus,
		Total:       c.total,
		State:       c.state,
		AutoPlaying: c.autoPlaying,
		Hovering:    c.hovering,
		Width:       c.width,
		Radius:      c.engine.Radius(c.width),
		Frames:      slices.Clone(c.frames),
		Previous:    slices.Clone(c.previous),
		Version:     c.version,
		Closed:      c.closed,
	}
	if c.touch != nil {
		t := *c.touch
		s.Touch = &t
	}
	return s
}

// Changes returns a channel that receives a value after state changes.
// Notifications coalesce: a reader that falls behind sees one pending value
// and should re-read the Snapshot. The channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} { return c.changes }

// Close cancels every pending timer and stops accepting input. It is safe
// to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	n := c.timers.Stop()
	c.touch = nil
	c.live = 0
	close(c.changes)
	c.logger.Debug("carousel closed", "cancelled_timers", n)
}

// =============================================================================
// State machine (callers hold c.mu)
// =============================================================================

func (c *Controller) advance(delta int, src Source) {
	c.setFocus(wrap(c.focus+delta, c.total), src)
}

func (c *Controller) setFocus(index int, src Source) {
	if index == c.focus {
		return
	}
	from := c.focus
	c.focus = index
	c.relayout()
	c.hooks.OnNavigate(from, index, src.String())
	c.logger.Debug("navigate", "from", from, "to", index, "source", src)
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	from := c.state
	c.state = s
	c.hooks.OnStateChange(from.String(), s.String())
	c.logger.Debug("state", "from", from, "to", s)
	c.notify()
}

func (c *Controller) setAutoPlay(on bool) {
	if on == c.autoPlaying {
		return
	}
	c.autoPlaying = on
	c.notify()
}

// relayout recomputes every frame for the live focus and width, keeping the
// outgoing frames as the transition origin.
func (c *Controller) relayout() {
	c.previous = c.frames
	c.frames = c.engine.Frames(c.focus, c.total, c.width)
	c.version++
	c.notify()
}

func (c *Controller) notify() {
	if c.closed {
		return
	}
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

func (c *Controller) interactionStart(g gesture) {
	c.live |= g
	c.cooldownSlot.Cancel()
	c.setState(Interacting)
	c.setAutoPlay(false)
	c.reconcileTimer()
}

func (c *Controller) interactionEnd(g gesture, delta int, src Source) {
	if c.live&g == 0 {
		c.ignored(src.String(), "no live interaction")
		return
	}
	c.live &^= g
	if delta != 0 {
		c.advance(delta, src)
	}
	if c.live != 0 {
		return
	}
	c.setState(Cooldown)
	c.setAutoPlay(false)
	c.cooldownSlot.Schedule(c.cooldown, c.onCooldownExpire)
	c.reconcileTimer()
}

func (c *Controller) onCooldownExpire(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cooldownSlot.Claim(token) || c.state != Cooldown {
		return
	}
	c.setState(Idle)
	// A pointer still resting on the carousel keeps auto-advance paused.
	c.setAutoPlay(!c.hovering)
	c.reconcileTimer()
}

func (c *Controller) onTimerTick(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tickSlot.Claim(token) {
		return
	}
	if c.state == Idle && c.autoPlaying {
		c.advance(1, SourceTimer)
	}
	c.reconcileTimer()
}

// reconcileTimer keeps the auto-advance tick armed exactly when the
// controller is open, Idle and auto-playing.
func (c *Controller) reconcileTimer() {
	want := !c.closed && c.state == Idle && c.autoPlaying
	switch {
	case want && !c.tickSlot.Pending():
		c.tickSlot.Schedule(c.interval, c.onTimerTick)
	case !want:
		c.tickSlot.Cancel()
	}
}

func (c *Controller) ignored(input, reason string) {
	c.hooks.OnInputIgnored(input, reason)
	c.logger.Debug("input ignored", "input", input, "reason", reason)
}
