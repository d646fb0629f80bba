package carousel

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/carousel/timers"
	"github.com/nekodev/skillring/pkg/errors"
	"github.com/nekodev/skillring/pkg/observability"
)

// Defaults.
const (
	DefaultInterval         = 3 * time.Second
	DefaultCooldown         = 3 * time.Second
	DefaultWheelThrottle    = 150 * time.Millisecond
	DefaultMinSwipeDistance = 50.0
	DefaultViewportWidth    = 1024.0
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	clock      timers.Clock
	engine     *layout.Engine
	width      float64
	interval   time.Duration
	cooldown   time.Duration
	throttle   time.Duration
	minSwipe   float64
	initial    int
	autoPlay   bool
	bounds     Rect
	hooks      observability.CarouselHooks
	logger     *log.Logger
	initialSet bool
}

func defaultOptions() options {
	return options{
		clock:    timers.System(),
		engine:   layout.Default(),
		width:    DefaultViewportWidth,
		interval: DefaultInterval,
		cooldown: DefaultCooldown,
		throttle: DefaultWheelThrottle,
		minSwipe: DefaultMinSwipeDistance,
		autoPlay: true,
	}
}

// WithClock sets the clock driving the auto-advance, cooldown and throttle
// timers.
func WithClock(c timers.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithEngine sets the layout engine.
func WithEngine(e *layout.Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithViewportWidth sets the initial viewport width.
func WithViewportWidth(w float64) Option {
	return func(o *options) { o.width = w }
}

// WithAutoAdvanceInterval sets the period of the auto-advance timer.
func WithAutoAdvanceInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithCooldown sets the quiet window after an interaction before
// auto-advance resumes.
func WithCooldown(d time.Duration) Option {
	return func(o *options) { o.cooldown = d }
}

// WithWheelThrottle sets the minimum time between two wheel navigations.
func WithWheelThrottle(d time.Duration) Option {
	return func(o *options) { o.throttle = d }
}

// WithMinSwipeDistance sets how far a touch must travel to count as a swipe.
func WithMinSwipeDistance(px float64) Option {
	return func(o *options) { o.minSwipe = px }
}

// WithInitialIndex sets the focus index at mount.
func WithInitialIndex(i int) Option {
	return func(o *options) {
		o.initial = i
		o.initialSet = true
	}
}

// WithAutoPlay sets whether auto-advance starts enabled.
func WithAutoPlay(on bool) Option {
	return func(o *options) { o.autoPlay = on }
}

// WithBounds sets the carousel's bounding region for spatial input.
func WithBounds(r Rect) Option {
	return func(o *options) { o.bounds = r }
}

// WithHooks overrides the globally registered observability hooks.
func WithHooks(h observability.CarouselHooks) Option {
	return func(o *options) {
		if h != nil {
			o.hooks = h
		}
	}
}

// WithLogger sets the logger for transition diagnostics (debug level).
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func (o *options) validate(total int) error {
	if total <= 0 {
		return errors.New(errors.ErrCodeEmptyContent, "carousel needs at least one card, got %d", total)
	}
	if err := errors.ValidateIndex(o.initial, total); o.initialSet && err != nil {
		return err
	}
	if err := errors.ValidateWidth(o.width); err != nil {
		return err
	}
	if o.interval <= 0 || o.cooldown <= 0 || o.throttle <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "carousel timings must be positive")
	}
	if o.minSwipe < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "minimum swipe distance cannot be negative")
	}
	if o.hooks == nil {
		o.hooks = observability.Carousel()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return nil
}
