// Package session hosts live carousel controllers for headless clients.
//
// Each [Session] owns one [carousel.Controller], the equivalent of a mounted
// carousel in a browser tab. A [Registry] hands out sessions by ID, keeps
// track of when each was last used, and closes sessions that sit idle
// longer than the configured TTL, which cancels every timer the controller
// owns.
//
//	reg := session.NewRegistry(deck.Len(), session.Config{TTL: 10 * time.Minute})
//	go reg.Run(ctx)          // periodic sweep until ctx ends
//	defer reg.Shutdown(ctx)  // closes every remaining controller
//
//	s, err := reg.Open(ctx, carousel.WithViewportWidth(390))
//	s.Controller().Wheel(carousel.Point{}, 120)
package session

import (
	"sync"
	"time"

	"github.com/nekodev/skillring/pkg/carousel"
)

// Close reasons reported to observability hooks.
const (
	ReasonDeleted  = "deleted"
	ReasonExpired  = "expired"
	ReasonShutdown = "shutdown"
)

// DefaultTTL is how long an unused session lives.
const DefaultTTL = 10 * time.Minute

// Session is one hosted carousel.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ctrl *carousel.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

// Controller returns the session's carousel.
func (s *Session) Controller() *carousel.Controller { return s.ctrl }

// LastSeen returns when the session was last opened or looked up.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// IsExpired reports whether the session has been idle longer than ttl at
// now.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastSeen()) > ttl
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}
