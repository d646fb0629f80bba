package layout

import (
	"fmt"
	"math"
	"slices"
)

// Emphasis bounds for non-active cards.
const (
	MinScale   = 0.7
	MinOpacity = 0.4

	// ActiveStackOrder is the paint priority of the focused card.
	ActiveStackOrder = 10
	// maxStackOrder is the paint priority a non-active card approaches as its
	// distance from the focus shrinks.
	maxStackOrder = 5
)

// Frame is the derived visual transform of one card at one focus position.
type Frame struct {
	Index         int     `json:"index"`
	LateralOffset float64 `json:"lateral_offset"`
	DepthOffset   float64 `json:"depth_offset"`
	Rotation      float64 `json:"rotation"` // degrees about the vertical axis
	Scale         float64 `json:"scale"`
	Opacity       float64 `json:"opacity"`
	StackOrder    int     `json:"stack_order"`
	Active        bool    `json:"active"`
	Radius        float64 `json:"radius"`
}

// Breakpoint maps viewports up to MaxWidth (inclusive) to a ring radius.
type Breakpoint struct {
	MaxWidth float64 `json:"max_width" koanf:"max_width"`
	Radius   float64 `json:"radius" koanf:"radius"`
}

// Default radii.
const (
	RadiusExtraSmall = 180
	RadiusSmall      = 220
	RadiusDesktop    = 450
)

// DefaultBreakpoints returns the stock breakpoints: phones up to 480px and
// tablets up to 768px. Wider viewports use [RadiusDesktop].
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{MaxWidth: 480, Radius: RadiusExtraSmall},
		{MaxWidth: 768, Radius: RadiusSmall},
	}
}

// Engine computes frames for a fixed set of radius breakpoints.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	breakpoints []Breakpoint
	radius      float64
}

// NewEngine returns an engine that uses radius for viewports wider than every
// breakpoint. Breakpoints are sorted by MaxWidth; the caller's slice is not
// retained.
func NewEngine(radius float64, breakpoints ...Breakpoint) *Engine {
	bps := slices.Clone(breakpoints)
	slices.SortFunc(bps, func(a, b Breakpoint) int {
		switch {
		case a.MaxWidth < b.MaxWidth:
			return -1
		case a.MaxWidth > b.MaxWidth:
			return 1
		}
		return 0
	})
	return &Engine{breakpoints: bps, radius: radius}
}

var defaultEngine = NewEngine(RadiusDesktop, DefaultBreakpoints()...)

// Default returns the engine with the stock breakpoints.
func Default() *Engine { return defaultEngine }

// Breakpoints returns a copy of the engine's breakpoints in ascending order.
func (e *Engine) Breakpoints() []Breakpoint { return slices.Clone(e.breakpoints) }

// Radius returns the ring radius for a viewport width.
func (e *Engine) Radius(width float64) float64 {
	for _, bp := range e.breakpoints {
		if width <= bp.MaxWidth {
			return bp.Radius
		}
	}
	return e.radius
}

// Frame computes the frame of card when focus is the active index.
//
// It panics if total is not positive or either index is outside [0, total):
// an empty deck cannot be laid out and must be rejected before a carousel
// is created.
func (e *Engine) Frame(card, focus, total int, width float64) Frame {
	checkArgs(card, focus, total)
	return e.frame(card, focus, total, e.Radius(width))
}

// Frames computes every card's frame for the given focus.
func (e *Engine) Frames(focus, total int, width float64) []Frame {
	checkArgs(focus, focus, total)
	radius := e.Radius(width)
	frames := make([]Frame, total)
	for i := range frames {
		frames[i] = e.frame(i, focus, total, radius)
	}
	return frames
}

func (e *Engine) frame(card, focus, total int, radius float64) Frame {
	step := 2 * math.Pi / float64(total)
	angle := float64(card-focus) * step

	f := Frame{
		Index:         card,
		LateralOffset: radius * math.Sin(angle),
		DepthOffset:   radius * math.Cos(angle),
		Rotation:      angle * 180 / math.Pi,
		Radius:        radius,
	}

	if card == focus {
		f.Active = true
		f.Scale = 1
		f.Opacity = 1
		f.StackOrder = ActiveStackOrder
		return f
	}

	closeness := 1 - NormalizedDistance(card, focus, total)
	f.Scale = MinScale + (1-MinScale)*closeness
	f.Opacity = MinOpacity + (1-MinOpacity)*closeness
	f.StackOrder = int(math.Round(maxStackOrder * closeness))
	return f
}

// Compute is [Engine.Frame] on the default engine.
func Compute(card, focus, total int, width float64) Frame {
	return defaultEngine.Frame(card, focus, total, width)
}

// Distance returns the circular distance between card and focus on a ring of
// total cards. The result is in [0, total/2].
func Distance(card, focus, total int) int {
	d := card - focus
	if d < 0 {
		d = -d
	}
	return min(d, total-d)
}

// NormalizedDistance returns [Distance] divided by total/2, in [0, 1].
// A single-card ring has distance 0.
func NormalizedDistance(card, focus, total int) float64 {
	if total <= 1 {
		return 0
	}
	return float64(Distance(card, focus, total)) / (float64(total) / 2)
}

func checkArgs(card, focus, total int) {
	if total <= 0 {
		panic(fmt.Sprintf("layout: total cards must be positive, got %d", total))
	}
	if card < 0 || card >= total {
		panic(fmt.Sprintf("layout: card index %d out of range [0, %d)", card, total))
	}
	if focus < 0 || focus >= total {
		panic(fmt.Sprintf("layout: focus index %d out of range [0, %d)", focus, total))
	}
}
