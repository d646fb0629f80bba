package carousel

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/carousel/timers"
	"github.com/nekodev/skillring/pkg/errors"
)

var epoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, total int, opts ...Option) (*Controller, *timers.Manual) {
	t.Helper()
	clk := timers.NewManual(epoch)
	c, err := New(total, append([]Option{WithClock(clk)}, opts...)...)
	if err != nil {
		t.Fatalf("New(%d) error: %v", total, err)
	}
	t.Cleanup(c.Close)
	return c, clk
}

// checkTimerInvariant asserts the auto-advance tick is armed exactly when
// the controller is Idle and auto-playing.
func checkTimerInvariant(t *testing.T, c *Controller) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	want := !c.closed && c.state == Idle && c.autoPlaying
	if got := c.tickSlot.Pending(); got != want {
		t.Errorf("tick pending = %v, want %v (state=%v autoPlaying=%v)", got, want, c.state, c.autoPlaying)
	}
}

type recordingHooks struct {
	mu          sync.Mutex
	navigations []string
	states      []string
	ignored     []string
}

func (r *recordingHooks) OnNavigate(_, _ int, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigations = append(r.navigations, source)
}

func (r *recordingHooks) OnStateChange(_, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, to)
}

func (r *recordingHooks) OnInputIgnored(input, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ignored = append(r.ignored, input)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		opts     []Option
		wantCode errors.Code
	}{
		{"no cards", 0, nil, errors.ErrCodeEmptyContent},
		{"negative cards", -3, nil, errors.ErrCodeEmptyContent},
		{"initial out of range", 4, []Option{WithInitialIndex(4)}, errors.ErrCodeInvalidIndex},
		{"zero width", 4, []Option{WithViewportWidth(0)}, errors.ErrCodeInvalidInput},
		{"zero interval", 4, []Option{WithAutoAdvanceInterval(0)}, errors.ErrCodeInvalidInput},
		{"negative swipe", 4, []Option{WithMinSwipeDistance(-1)}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.total, tt.opts...)
			if c != nil {
				c.Close()
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("New() code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestInitialState(t *testing.T) {
	c, _ := newTestController(t, 5, WithInitialIndex(2))
	s := c.Snapshot()

	if s.Focus != 2 || s.Total != 5 {
		t.Errorf("focus/total = %d/%d, want 2/5", s.Focus, s.Total)
	}
	if s.State != Idle || !s.AutoPlaying || !s.TimerRunning() {
		t.Errorf("snapshot = %+v, want idle and auto-playing", s)
	}
	if len(s.Frames) != 5 || !s.Frames[2].Active {
		t.Errorf("frames not laid out around card 2: %+v", s.Frames)
	}
	checkTimerInvariant(t, c)
}

func TestAutoAdvance(t *testing.T) {
	c, clk := newTestController(t, 3)

	clk.Advance(DefaultInterval - time.Millisecond)
	if got := c.Snapshot().Focus; got != 0 {
		t.Fatalf("advanced early: focus = %d", got)
	}

	clk.Advance(time.Millisecond)
	if got := c.Snapshot().Focus; got != 1 {
		t.Errorf("focus after one interval = %d, want 1", got)
	}

	clk.Advance(2 * DefaultInterval)
	if got := c.Snapshot().Focus; got != 0 {
		t.Errorf("focus after wrapping = %d, want 0", got)
	}
	checkTimerInvariant(t, c)
}

func TestGoToKeepsAutoPlay(t *testing.T) {
	c, clk := newTestController(t, 6)

	c.GoTo(3)
	s := c.Snapshot()
	if s.Focus != 3 || !s.AutoPlaying {
		t.Errorf("after GoTo(3): focus=%d autoPlaying=%v", s.Focus, s.AutoPlaying)
	}

	c.GoTo(-1)
	if got := c.Snapshot().Focus; got != 5 {
		t.Errorf("GoTo(-1) focus = %d, want 5 (wrapped)", got)
	}

	clk.Advance(DefaultInterval)
	if got := c.Snapshot().Focus; got != 0 {
		t.Errorf("auto-advance after GoTo: focus = %d, want 0", got)
	}
}

func TestAdvanceRoundTrip(t *testing.T) {
	for total := 2; total <= 7; total++ {
		for start := 0; start < total; start++ {
			c, _ := newTestController(t, total, WithInitialIndex(start), WithAutoPlay(false))
			c.Advance(1)
			c.Advance(-1)
			if got := c.Snapshot().Focus; got != start {
				t.Errorf("N=%d: +1/-1 from %d ended at %d", total, start, got)
			}
		}
	}
}

func TestAdvanceFullCycle(t *testing.T) {
	for total := 1; total <= 8; total++ {
		c, _ := newTestController(t, total, WithInitialIndex(total/2), WithAutoPlay(false))
		for range total {
			c.Advance(1)
		}
		if got := c.Snapshot().Focus; got != total/2 {
			t.Errorf("N=%d: full cycle ended at %d, want %d", total, got, total/2)
		}
	}
}

func TestClickScenario(t *testing.T) {
	c, _ := newTestController(t, 6)

	if !c.Click(3) {
		t.Fatal("Click(3) not handled")
	}
	s := c.Snapshot()
	if s.Focus != 3 {
		t.Fatalf("focus = %d, want 3", s.Focus)
	}

	f := s.Frames[3]
	if !near(f.Scale, 1) || !near(f.Opacity, 1) || !near(f.LateralOffset, 0) || !near(f.DepthOffset, layout.RadiusDesktop) {
		t.Errorf("card 3 frame = %+v", f)
	}
	back := s.Frames[0]
	if !near(back.Scale, layout.MinScale) || !near(back.Opacity, layout.MinOpacity) {
		t.Errorf("card 0 (opposite) frame = %+v", back)
	}
	if len(s.Previous) != 6 || !s.Previous[0].Active {
		t.Error("previous frames should hold the pre-click layout")
	}
	if !s.AutoPlaying {
		t.Error("click must not change auto-play")
	}

	if c.Click(6) || c.Click(-1) {
		t.Error("out-of-range clicks should not be handled")
	}
}

func TestResize(t *testing.T) {
	c, _ := newTestController(t, 6, WithInitialIndex(2))

	if err := c.Resize(400); err != nil {
		t.Fatalf("Resize(400): %v", err)
	}
	s := c.Snapshot()
	if s.Focus != 2 {
		t.Errorf("focus changed on resize: %d", s.Focus)
	}
	if s.Radius != layout.RadiusExtraSmall {
		t.Errorf("radius = %v, want %v", s.Radius, layout.RadiusExtraSmall)
	}
	for _, f := range s.Frames {
		if f.Radius != layout.RadiusExtraSmall {
			t.Errorf("card %d radius = %v", f.Index, f.Radius)
		}
	}

	if err := c.Resize(-5); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Resize(-5) error = %v, want INVALID_INPUT", err)
	}
}

func TestResizeDuringInteraction(t *testing.T) {
	c, _ := newTestController(t, 6)
	c.TouchStart(Point{X: 200})
	if err := c.Resize(700); err != nil {
		t.Fatal(err)
	}
	s := c.Snapshot()
	if s.State != Interacting || s.Focus != 0 || s.Radius != layout.RadiusSmall {
		t.Errorf("snapshot = state %v focus %d radius %v", s.State, s.Focus, s.Radius)
	}
}

func TestHostInteraction(t *testing.T) {
	c, clk := newTestController(t, 4)

	c.InteractionStart()
	clk.Advance(10 * time.Second)
	if s := c.Snapshot(); s.State != Interacting || s.Focus != 0 {
		t.Fatalf("during host interaction: %+v", s)
	}

	c.InteractionEnd(-1)
	if s := c.Snapshot(); s.State != Cooldown || s.Focus != 3 {
		t.Errorf("after InteractionEnd(-1): state %v focus %d", s.State, s.Focus)
	}
	checkTimerInvariant(t, c)

	clk.Advance(DefaultCooldown)
	if s := c.Snapshot(); s.State != Idle || !s.AutoPlaying {
		t.Errorf("after cooldown: state %v autoPlaying %v", s.State, s.AutoPlaying)
	}
	checkTimerInvariant(t, c)
}

func TestInteractionEndWithoutStartIsIgnored(t *testing.T) {
	rec := &recordingHooks{}
	c, _ := newTestController(t, 4, WithHooks(rec))

	c.InteractionEnd(1)
	s := c.Snapshot()
	if s.State != Idle || s.Focus != 0 {
		t.Errorf("stray InteractionEnd changed state: %+v", s)
	}
	if len(rec.ignored) != 1 {
		t.Errorf("ignored = %v, want one entry", rec.ignored)
	}
}

func TestChangesNotify(t *testing.T) {
	c, _ := newTestController(t, 4, WithAutoPlay(false))
	drain(c)

	c.GoTo(2)
	select {
	case <-c.Changes():
	default:
		t.Fatal("GoTo did not notify")
	}

	// Coalesced: many changes, one pending value.
	c.Advance(1)
	c.Advance(1)
	drain(c)
	select {
	case <-c.Changes():
		t.Error("drained channel should be empty")
	default:
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func drain(c *Controller) {
	for {
		select {
		case <-c.Changes():
		default:
			return
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _ := newTestController(t, 3)
	s := c.Snapshot()
	s.Frames[0].Scale = 42
	if c.Snapshot().Frames[0].Scale == 42 {
		t.Error("Snapshot frames alias controller state")
	}
}

func TestHooksSeeSources(t *testing.T) {
	rec := &recordingHooks{}
	c, clk := newTestController(t, 5, WithHooks(rec))

	c.Click(2)
	clk.Advance(DefaultInterval)
	c.Wheel(Point{}, 10)
	c.Advance(1)

	want := []string{"click", "timer", "wheel", "api"}
	if len(rec.navigations) != len(want) {
		t.Fatalf("navigations = %v, want %v", rec.navigations, want)
	}
	for i := range want {
		if rec.navigations[i] != want[i] {
			t.Errorf("navigations[%d] = %q, want %q", i, rec.navigations[i], want[i])
		}
	}
	if len(rec.states) == 0 || rec.states[0] != "interacting" {
		t.Errorf("states = %v", rec.states)
	}
}

func TestClose(t *testing.T) {
	c, clk := newTestController(t, 4)
	c.TouchStart(Point{X: 100})
	c.TouchEnd()
	c.Wheel(Point{}, 1)

	c.Close()
	if n := clk.Pending(); n != 0 {
		t.Errorf("%d timers still pending after Close", n)
	}

	for range c.Changes() {
		// Drain the buffered notification; the loop ends once closed.
	}

	before := c.Snapshot()
	c.GoTo(2)
	c.Advance(1)
	if c.Click(1) || c.TouchStart(Point{}) || c.Wheel(Point{}, 1) {
		t.Error("closed controller handled input")
	}
	if err := c.Resize(500); !errors.Is(err, errors.ErrCodeSessionClosed) {
		t.Errorf("Resize after Close = %v", err)
	}
	clk.Advance(time.Minute)
	after := c.Snapshot()
	if after.Focus != before.Focus || !after.Closed {
		t.Errorf("state changed after Close: %+v -> %+v", before, after)
	}

	c.Close()
}

func TestCloseWithSystemClock(t *testing.T) {
	c, err := New(3, WithAutoAdvanceInterval(5*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for c.Snapshot().Focus == 0 {
		select {
		case <-c.Changes():
		case <-deadline:
			t.Fatal("auto-advance never fired on the system clock")
		}
	}
	c.Close()
}
