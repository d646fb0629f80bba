// Package observability decouples instrumentation from the packages that
// emit events. Consumers register hooks at startup to hear about carousel
// navigation, session lifetime, cache traffic and served HTTP requests.
//
// Each category has an interface, a no-op default and a setter. The
// Prometheus implementation lives in package metrics and is registered by
// the serve command; the carousel engine itself never imports it.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := metrics.NewManager()
//	    observability.SetCarouselHooks(m)
//	    observability.SetCacheHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Carousel().OnNavigate(from, to, "wheel")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Carousel Hooks
// =============================================================================

// CarouselHooks receives events from carousel controllers. Calls are made
// while the controller holds its lock: implementations must be fast and must
// not call back into the controller.
type CarouselHooks interface {
	// OnNavigate records a focus change and the input that caused it
	// ("click", "timer", "swipe", "wheel", "api").
	OnNavigate(from, to int, source string)

	// OnStateChange records a navigation state transition
	// ("idle", "interacting", "cooldown").
	OnStateChange(from, to string)

	// OnInputIgnored records an input event that was absorbed without effect,
	// e.g. a touch end with no matching touch start.
	OnInputIgnored(input, reason string)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives lifecycle events for hosted carousel sessions.
type SessionHooks interface {
	OnSessionOpened(ctx context.Context)
	// OnSessionClosed records why a session ended ("deleted", "expired", "shutdown").
	OnSessionClosed(ctx context.Context, reason string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events for requests served by the API.
type HTTPHooks interface {
	// OnServed records a completed request. route is the matched route
	// pattern, not the raw path, to keep label cardinality bounded.
	OnServed(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCarouselHooks is a no-op implementation of CarouselHooks.
type NoopCarouselHooks struct{}

func (NoopCarouselHooks) OnNavigate(int, int, string)   {}
func (NoopCarouselHooks) OnStateChange(string, string)  {}
func (NoopCarouselHooks) OnInputIgnored(string, string) {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionOpened(context.Context)         {}
func (NoopSessionHooks) OnSessionClosed(context.Context, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnServed(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// slot holds the registered implementation of one hook interface.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] { return &slot[T]{cur: def, def: def} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set installs h; a nil interface value keeps the current hooks.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = h
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = s.def
}

var (
	carouselSlot = newSlot[CarouselHooks](NoopCarouselHooks{})
	sessionSlot  = newSlot[SessionHooks](NoopSessionHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetCarouselHooks registers carousel hooks. Controllers capture the hooks
// registered when they are created.
func SetCarouselHooks(h CarouselHooks) { carouselSlot.set(h) }

// SetSessionHooks registers session hooks.
func SetSessionHooks(h SessionHooks) { sessionSlot.set(h) }

// SetCacheHooks registers cache hooks. Instrumented caches read them on
// every operation.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks registers HTTP hooks.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

func Carousel() CarouselHooks { return carouselSlot.get() }

func Session() SessionHooks { return sessionSlot.get() }

func Cache() CacheHooks { return cacheSlot.get() }

func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores every hook to its no-op default.
func Reset() {
	carouselSlot.reset()
	sessionSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
