package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nekodev/skillring/pkg/carousel"
	"github.com/nekodev/skillring/pkg/carousel/timers"
	"github.com/nekodev/skillring/pkg/errors"
	"github.com/nekodev/skillring/pkg/observability"
)

// Config configures a Registry.
type Config struct {
	// TTL is the idle time after which a session is closed. Zero means
	// DefaultTTL.
	TTL time.Duration
	// MaxSessions caps concurrently open sessions. Zero means no cap.
	MaxSessions int
	// Clock supplies the time for idle tracking and drives every
	// controller's timers. Nil means the system clock.
	Clock timers.Clock
	// Options are applied to every controller before per-session options.
	Options []carousel.Option
	Logger  *log.Logger
}

// Registry owns the open sessions.
type Registry struct {
	total int
	cfg   Config
	hooks observability.SessionHooks

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewRegistry creates a registry whose sessions each carry total cards.
func NewRegistry(total int, cfg Config) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = timers.System()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Registry{
		total:    total,
		cfg:      cfg,
		hooks:    observability.Session(),
		sessions: make(map[string]*Session),
	}
}

// TTL returns the idle timeout.
func (r *Registry) TTL() time.Duration { return r.cfg.TTL }

// Open creates a session with a new controller.
func (r *Registry) Open(ctx context.Context, opts ...carousel.Option) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, errors.New(errors.ErrCodeSessionClosed, "session registry is shut down")
	}
	if r.cfg.MaxSessions > 0 && len(r.sessions) >= r.cfg.MaxSessions {
		return nil, errors.New(errors.ErrCodeUnsupported, "too many open sessions (max %d)", r.cfg.MaxSessions)
	}

	all := make([]carousel.Option, 0, len(r.cfg.Options)+len(opts)+1)
	all = append(all, carousel.WithClock(r.cfg.Clock))
	all = append(all, r.cfg.Options...)
	all = append(all, opts...)
	ctrl, err := carousel.New(r.total, all...)
	if err != nil {
		return nil, err
	}

	now := r.cfg.Clock.Now()
	s := &Session{ID: uuid.NewString(), CreatedAt: now, ctrl: ctrl, lastSeen: now}
	r.sessions[s.ID] = s
	r.hooks.OnSessionOpened(ctx)
	r.cfg.Logger.Debug("session opened", "id", s.ID, "open", len(r.sessions))
	return s, nil
}

// Get returns an open session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	s.touch(r.cfg.Clock.Now())
	return s, nil
}

// Close removes a session and closes its controller.
func (r *Registry) Close(ctx context.Context, id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	r.finish(ctx, s, ReasonDeleted)
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes every session idle longer than the TTL and returns how many
// it closed.
func (r *Registry) Sweep(ctx context.Context) int {
	now := r.cfg.Clock.Now()
	var expired []*Session

	r.mu.Lock()
	for id, s := range r.sessions {
		if s.IsExpired(now, r.cfg.TTL) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		r.finish(ctx, s, ReasonExpired)
	}
	return len(expired)
}

// Run sweeps every half TTL until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.TTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ctx); n > 0 {
				r.cfg.Logger.Info("expired idle sessions", "count", n)
			}
		}
	}
}

// Shutdown closes every session and rejects later Opens.
func (r *Registry) Shutdown(ctx context.Context) {
	r.mu.Lock()
	r.closed = true
	open := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		open = append(open, s)
	}
	clear(r.sessions)
	r.mu.Unlock()

	for _, s := range open {
		r.finish(ctx, s, ReasonShutdown)
	}
}

func (r *Registry) finish(ctx context.Context, s *Session, reason string) {
	s.ctrl.Close()
	r.hooks.OnSessionClosed(ctx, reason)
	r.cfg.Logger.Debug("session closed", "id", s.ID, "reason", reason)
}
