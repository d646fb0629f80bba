package timers

import "time"

// Slot holds at most one pending callback. A Slot is not safe for
// concurrent use; its owner guards it with the same lock it takes inside
// the callback.
type Slot struct {
	name  string
	group *Group
	timer Timer
	token uint64
	armed bool
}

// Name returns the slot's name within its group.
func (s *Slot) Name() string { return s.name }

// Schedule arms the slot to call fire after d, cancelling any callback that
// is still pending. fire receives the token to pass to Claim. Scheduling on
// a stopped group does nothing.
func (s *Slot) Schedule(d time.Duration, fire func(token uint64)) {
	s.Cancel()
	if s.group.stopped {
		return
	}
	s.token++
	tok := s.token
	s.armed = true
	s.timer = s.group.clock.AfterFunc(d, func() { fire(tok) })
}

// Claim reports whether token belongs to the currently pending callback and,
// if so, disarms the slot. Callbacks that lose the claim must do nothing.
func (s *Slot) Claim(token uint64) bool {
	if !s.armed || token != s.token {
		return false
	}
	s.armed = false
	s.timer = nil
	return true
}

// Cancel stops the pending callback, if any, and reports whether one was
// pending.
func (s *Slot) Cancel() bool {
	if !s.armed {
		return false
	}
	s.armed = false
	s.token++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return true
}

// Pending reports whether a callback is armed.
func (s *Slot) Pending() bool { return s.armed }

// Group owns a set of named slots sharing one clock.
type Group struct {
	clock   Clock
	slots   map[string]*Slot
	order   []string
	stopped bool
}

// NewGroup returns an empty group. A nil clock means [System].
func NewGroup(clock Clock) *Group {
	if clock == nil {
		clock = System()
	}
	return &Group{clock: clock, slots: make(map[string]*Slot)}
}

// Clock returns the group's clock.
func (g *Group) Clock() Clock { return g.clock }

// Slot returns the named slot, creating it on first use.
func (g *Group) Slot(name string) *Slot {
	if s, ok := g.slots[name]; ok {
		return s
	}
	s := &Slot{name: name, group: g}
	g.slots[name] = s
	g.order = append(g.order, name)
	return s
}

// Stop cancels every pending callback and makes later Schedule calls no-ops.
// It returns the number of callbacks that were cancelled.
func (g *Group) Stop() int {
	n := 0
	for _, name := range g.order {
		if g.slots[name].Cancel() {
			n++
		}
	}
	g.stopped = true
	return n
}

// Stopped reports whether Stop has been called.
func (g *Group) Stopped() bool { return g.stopped }
