package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nekodev/skillring/pkg/carousel"
	"github.com/nekodev/skillring/pkg/errors"
	"github.com/nekodev/skillring/pkg/session"
)

// maxBodyBytes bounds session request bodies.
const maxBodyBytes = 4 << 10

// sessionView is a session's snapshot with its ID.
type sessionView struct {
	ID string `json:"id"`
	carousel.Snapshot
}

func viewOf(s *session.Session) sessionView {
	return sessionView{ID: s.ID, Snapshot: s.Controller().Snapshot()}
}

type createSessionRequest struct {
	Width *float64 `json:"width,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, &req, true); err != nil {
		s.writeError(w, err)
		return
	}

	var opts []carousel.Option
	if req.Width != nil {
		if err := errors.ValidateWidth(*req.Width); err != nil {
			s.writeError(w, err)
			return
		}
		opts = append(opts, carousel.WithViewportWidth(*req.Width))
	}

	sess, err := s.cfg.Registry.Open(r.Context(), opts...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.cfg.Registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Registry.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// eventRequest is one input event for a hosted controller. Fields beyond
// Type are read according to the event type.
type eventRequest struct {
	Type   string  `json:"type"`
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"delta_y"`
	Width  float64 `json:"width"`
}

type eventResponse struct {
	Handled  bool        `json:"handled"`
	Snapshot sessionView `json:"snapshot"`
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	sess, err := s.cfg.Registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var ev eventRequest
	if err := decodeBody(r, &ev, false); err != nil {
		s.writeError(w, err)
		return
	}

	handled, err := apply(sess.Controller(), ev)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventResponse{Handled: handled, Snapshot: viewOf(sess)})
}

// apply dispatches ev to the matching input adapter.
func apply(c *carousel.Controller, ev eventRequest) (bool, error) {
	p := carousel.Point{X: ev.X, Y: ev.Y}
	switch ev.Type {
	case "click":
		return c.Click(ev.Index), nil
	case "touchstart":
		return c.TouchStart(p), nil
	case "touchmove":
		return c.TouchMove(p), nil
	case "touchend":
		return c.TouchEnd(), nil
	case "touchcancel":
		return c.TouchCancel(), nil
	case "wheel":
		return c.Wheel(p, ev.DeltaY), nil
	case "enter":
		c.PointerEnter()
		return true, nil
	case "leave":
		c.PointerLeave()
		return true, nil
	case "move":
		return c.PointerMove(p), nil
	case "resize":
		if err := c.Resize(ev.Width); err != nil {
			return false, err
		}
		return true, nil
	case "next":
		c.Advance(1)
		return true, nil
	case "prev":
		c.Advance(-1)
		return true, nil
	case "":
		return false, errors.New(errors.ErrCodeInvalidInput, "event type is required")
	}
	return false, errors.New(errors.ErrCodeInvalidInput, "unknown event type %q", ev.Type)
}

// decodeBody reads a JSON body into v. When optional is set an empty body
// leaves v untouched.
func decodeBody(r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err == io.EOF && optional {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body")
	}
	return nil
}
