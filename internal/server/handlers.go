package server

import (
	"net/http"
	"strconv"

	"github.com/nekodev/skillring/pkg/cache"
	"github.com/nekodev/skillring/pkg/carousel"
	"github.com/nekodev/skillring/pkg/errors"
	"github.com/nekodev/skillring/pkg/render/ring"
)

// cacheHeader reports whether a frame response came from the cache.
const cacheHeader = "X-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type cardsResponse struct {
	Hash  string `json:"hash"`
	Total int    `json:"total"`
	Cards any    `json:"cards"`
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cardsResponse{
		Hash:  s.deckHash,
		Total: s.cfg.Deck.Len(),
		Cards: s.cfg.Deck.Cards,
	})
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	s.serveFrames(w, r, "json", "application/json; charset=utf-8", func(focus int, width float64) ([]byte, error) {
		frames := s.cfg.Engine.Frames(focus, s.cfg.Deck.Len(), width)
		return ring.RenderJSON(s.cfg.Deck, frames, width)
	})
}

func (s *Server) handleFramesSVG(w http.ResponseWriter, r *http.Request) {
	s.serveFrames(w, r, "svg", "image/svg+xml", func(focus int, width float64) ([]byte, error) {
		frames := s.cfg.Engine.Frames(focus, s.cfg.Deck.Len(), width)
		dot := ring.ToDOT(s.cfg.Deck, frames, ring.Options{})
		return ring.RenderSVG(r.Context(), dot)
	})
}

// serveFrames parses the focus and width query, then serves the cached
// rendering or produces and stores a new one.
func (s *Server) serveFrames(w http.ResponseWriter, r *http.Request, format, contentType string, render func(int, float64) ([]byte, error)) {
	focus, width, err := s.parseFrameQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	store := s.frames
	if format == "svg" {
		store = s.svgs
	}
	key := s.cfg.Keyer.FramesKey(s.deckHash, cache.FramesKeyOpts{Focus: focus, Width: width, Format: format})

	ctx := r.Context()
	data, hit, err := store.Get(ctx, key)
	if err != nil {
		s.cfg.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if !hit {
		data, err = render(focus, width)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if err := store.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
			s.cfg.Logger.Warn("cache write failed", "key", key, "err", err)
		}
	}

	w.Header().Set("Content-Type", contentType)
	if hit {
		w.Header().Set(cacheHeader, "HIT")
	} else {
		w.Header().Set(cacheHeader, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) parseFrameQuery(r *http.Request) (int, float64, error) {
	q := r.URL.Query()

	focus := 0
	if v := q.Get("focus"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "focus must be an integer, got %q", v)
		}
		focus = n
	}
	if err := errors.ValidateIndex(focus, s.cfg.Deck.Len()); err != nil {
		return 0, 0, err
	}

	width := carousel.DefaultViewportWidth
	if v := q.Get("width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "width must be a number, got %q", v)
		}
		width = f
	}
	if err := errors.ValidateWidth(width); err != nil {
		return 0, 0, err
	}
	return focus, width, nil
}
