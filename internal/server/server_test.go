package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nekodev/skillring/pkg/cache"
	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/carousel/timers"
	"github.com/nekodev/skillring/pkg/content"
	"github.com/nekodev/skillring/pkg/metrics"
	"github.com/nekodev/skillring/pkg/observability"
	"github.com/nekodev/skillring/pkg/session"
)

type testEnv struct {
	srv   *Server
	clock *timers.Manual
	reg   *session.Registry
	store *cache.MemoryCache
}

func newTestEnv(t *testing.T, mutate ...func(*Config)) *testEnv {
	t.Helper()
	deck := content.Default()
	clock := timers.NewManual(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	reg := session.NewRegistry(deck.Len(), session.Config{Clock: clock})
	store := cache.NewMemoryCache(cache.DefaultMemoryEntries)

	cfg := Config{Deck: deck, Cache: store, CacheTTL: time.Hour, Registry: reg}
	for _, m := range mutate {
		m(&cfg)
	}
	t.Cleanup(func() { reg.Shutdown(context.Background()) })
	return &testEnv{srv: New(cfg), clock: clock, reg: reg, store: store}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

type snapshotBody struct {
	ID          string  `json:"id"`
	Focus       int     `json:"focus"`
	Total       int     `json:"total"`
	State       string  `json:"state"`
	AutoPlaying bool    `json:"auto_playing"`
	Hovering    bool    `json:"hovering"`
	Width       float64 `json:"width"`
	Radius      float64 `json:"radius"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decode[map[string]string](t, rec)["status"]; got != "ok" {
		t.Errorf("status field = %q, want ok", got)
	}
}

func TestCards(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/cards", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode[struct {
		Hash  string `json:"hash"`
		Total int    `json:"total"`
		Cards []struct {
			Title string `json:"title"`
		} `json:"cards"`
	}](t, rec)

	deck := content.Default()
	if body.Hash != deck.Hash() {
		t.Errorf("hash = %q, want %q", body.Hash, deck.Hash())
	}
	if body.Total != deck.Len() || len(body.Cards) != deck.Len() {
		t.Errorf("total = %d with %d cards, want %d", body.Total, len(body.Cards), deck.Len())
	}
	if body.Cards[0].Title != deck.Cards[0].Title {
		t.Errorf("first title = %q, want %q", body.Cards[0].Title, deck.Cards[0].Title)
	}
}

func TestFramesCached(t *testing.T) {
	env := newTestEnv(t)

	first := env.do(t, http.MethodGet, "/api/frames?focus=3&width=400", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", first.Code, first.Body)
	}
	if got := first.Header().Get(cacheHeader); got != "MISS" {
		t.Errorf("first %s = %q, want MISS", cacheHeader, got)
	}

	doc := decode[struct {
		Focus  int     `json:"focus"`
		Radius float64 `json:"radius"`
		Cards  []struct {
			Active bool `json:"active"`
		} `json:"cards"`
	}](t, first)
	if doc.Focus != 3 || doc.Radius != layout.RadiusExtraSmall {
		t.Errorf("focus/radius = %d/%v, want 3/%v", doc.Focus, doc.Radius, layout.RadiusExtraSmall)
	}
	if !doc.Cards[3].Active {
		t.Error("card 3 should be active")
	}

	second := env.do(t, http.MethodGet, "/api/frames?focus=3&width=400", nil)
	if got := second.Header().Get(cacheHeader); got != "HIT" {
		t.Errorf("second %s = %q, want HIT", cacheHeader, got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached body differs from the rendered one")
	}
	if env.store.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", env.store.Len())
	}
}

func TestFramesDefaults(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/frames", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := decode[struct {
		Focus  int     `json:"focus"`
		Width  float64 `json:"width"`
		Radius float64 `json:"radius"`
	}](t, rec)
	if doc.Focus != 0 || doc.Width != 1024 || doc.Radius != layout.RadiusDesktop {
		t.Errorf("defaults = %+v", doc)
	}
}

func TestFramesValidation(t *testing.T) {
	tests := []struct {
		name, query, code string
	}{
		{"focus out of range", "focus=99", "INVALID_INDEX"},
		{"negative focus", "focus=-1", "INVALID_INDEX"},
		{"focus not a number", "focus=abc", "INVALID_INPUT"},
		{"width not a number", "width=wide", "INVALID_INPUT"},
		{"zero width", "width=0", "INVALID_INPUT"},
		{"huge width", "width=1e9", "INVALID_INPUT"},
	}

	env := newTestEnv(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/frames?"+tt.query, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decode[errorResponse](t, rec).Code; got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	created := env.do(t, http.MethodPost, "/api/sessions", map[string]float64{"width": 700})
	if created.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", created.Code, created.Body)
	}
	snap := decode[snapshotBody](t, created)
	if snap.ID == "" {
		t.Fatal("session id is empty")
	}
	if got := created.Header().Get("Location"); got != "/api/sessions/"+snap.ID {
		t.Errorf("Location = %q", got)
	}
	if snap.Radius != layout.RadiusSmall || snap.State != "idle" || !snap.AutoPlaying {
		t.Errorf("initial snapshot = %+v", snap)
	}

	base := "/api/sessions/" + snap.ID
	got := env.do(t, http.MethodGet, base, nil)
	if got.Code != http.StatusOK {
		t.Fatalf("get status = %d", got.Code)
	}

	next := env.do(t, http.MethodPost, base+"/events", map[string]any{"type": "next"})
	if next.Code != http.StatusOK {
		t.Fatalf("event status = %d, body %s", next.Code, next.Body)
	}
	resp := decode[struct {
		Handled  bool         `json:"handled"`
		Snapshot snapshotBody `json:"snapshot"`
	}](t, next)
	if !resp.Handled || resp.Snapshot.Focus != 1 || resp.Snapshot.ID != snap.ID {
		t.Errorf("after next: %+v", resp)
	}

	del := env.do(t, http.MethodDelete, base, nil)
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", del.Code)
	}
	if gone := env.do(t, http.MethodGet, base, nil); gone.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", gone.Code)
	}
	if env.reg.Len() != 0 {
		t.Errorf("registry holds %d sessions", env.reg.Len())
	}
}

func TestSessionEvents(t *testing.T) {
	env := newTestEnv(t)
	created := env.do(t, http.MethodPost, "/api/sessions", nil)
	if created.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", created.Code, created.Body)
	}
	id := decode[snapshotBody](t, created).ID
	events := "/api/sessions/" + id + "/events"

	type result struct {
		Handled  bool         `json:"handled"`
		Snapshot snapshotBody `json:"snapshot"`
	}
	send := func(ev map[string]any) result {
		t.Helper()
		rec := env.do(t, http.MethodPost, events, ev)
		if rec.Code != http.StatusOK {
			t.Fatalf("%v: status = %d, body %s", ev, rec.Code, rec.Body)
		}
		return decode[result](t, rec)
	}

	if r := send(map[string]any{"type": "click", "index": 5}); !r.Handled || r.Snapshot.Focus != 5 {
		t.Errorf("click: %+v", r)
	}
	if r := send(map[string]any{"type": "click", "index": 50}); r.Handled || r.Snapshot.Focus != 5 {
		t.Errorf("out of range click: %+v", r)
	}

	send(map[string]any{"type": "touchstart", "x": 300, "y": 10})
	if r := send(map[string]any{"type": "touchmove", "x": 210, "y": 10}); r.Snapshot.State != "interacting" {
		t.Errorf("state during touch = %q", r.Snapshot.State)
	}
	r := send(map[string]any{"type": "touchend"})
	if r.Snapshot.Focus != 6 || r.Snapshot.State != "cooldown" || r.Snapshot.AutoPlaying {
		t.Errorf("after swipe: %+v", r.Snapshot)
	}

	env.clock.Advance(3 * time.Second)
	if r := send(map[string]any{"type": "enter"}); r.Snapshot.State != "idle" || !r.Snapshot.Hovering || r.Snapshot.AutoPlaying {
		t.Errorf("after cooldown and enter: %+v", r.Snapshot)
	}
	if r := send(map[string]any{"type": "leave"}); r.Snapshot.Hovering || !r.Snapshot.AutoPlaying {
		t.Errorf("after leave: %+v", r.Snapshot)
	}

	if r := send(map[string]any{"type": "wheel", "x": 1, "y": 1, "delta_y": 120}); !r.Handled || r.Snapshot.Focus != 7 {
		t.Errorf("wheel: %+v", r)
	}
	if r := send(map[string]any{"type": "resize", "width": 300}); r.Snapshot.Radius != layout.RadiusExtraSmall {
		t.Errorf("resize: %+v", r.Snapshot)
	}
	if r := send(map[string]any{"type": "prev"}); r.Snapshot.Focus != 6 {
		t.Errorf("prev: focus = %d", r.Snapshot.Focus)
	}
}

func TestSessionEventErrors(t *testing.T) {
	env := newTestEnv(t)
	id := decode[snapshotBody](t, env.do(t, http.MethodPost, "/api/sessions", nil)).ID
	events := "/api/sessions/" + id + "/events"

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"unknown type", `{"type":"shake"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing type", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad json", `{"type":`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown field", `{"type":"next","speed":3}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad resize", `{"type":"resize","width":-5}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, events, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			env.srv.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}
			if got := decode[errorResponse](t, rec).Code; got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}

	if rec := env.do(t, http.MethodPost, "/api/sessions/nope/events", map[string]any{"type": "next"}); rec.Code != http.StatusNotFound {
		t.Errorf("events on unknown session = %d, want 404", rec.Code)
	}
	if rec := env.do(t, http.MethodDelete, "/api/sessions/nope", nil); rec.Code != http.StatusNotFound {
		t.Errorf("delete unknown session = %d, want 404", rec.Code)
	}
}

func TestSessionLimits(t *testing.T) {
	env := newTestEnv(t, func(c *Config) {
		c.Registry = session.NewRegistry(c.Deck.Len(), session.Config{
			Clock:       timers.NewManual(time.Unix(0, 0)),
			MaxSessions: 1,
		})
	})
	reg := env.srv.cfg.Registry
	t.Cleanup(func() { reg.Shutdown(context.Background()) })

	if rec := env.do(t, http.MethodPost, "/api/sessions", nil); rec.Code != http.StatusCreated {
		t.Fatalf("first create = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/api/sessions", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second create = %d, want 429", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/api/sessions", map[string]float64{"width": 0}); rec.Code != http.StatusBadRequest {
		t.Errorf("zero width create = %d, want 400", rec.Code)
	}

	reg.Shutdown(context.Background())
	rec := env.do(t, http.MethodPost, "/api/sessions", nil)
	if rec.Code != http.StatusGone {
		t.Errorf("create after shutdown = %d, want 410", rec.Code)
	}
}

func TestWithoutRegistry(t *testing.T) {
	env := newTestEnv(t, func(c *Config) { c.Registry = nil })
	if rec := env.do(t, http.MethodPost, "/api/sessions", nil); rec.Code != http.StatusNotFound {
		t.Errorf("sessions without registry = %d, want 404", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/metrics", nil); rec.Code != http.StatusNotFound {
		t.Errorf("metrics without handler = %d, want 404", rec.Code)
	}
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (h *recordingHTTPHooks) OnServed(_ context.Context, method, route string, code int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
	h.codes = append(h.codes, code)
}

func TestObserveUsesRoutePatterns(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/frames?focus=2", nil)
	env.do(t, http.MethodGet, "/api/sessions/abc", nil)
	env.do(t, http.MethodGet, "/nowhere", nil)

	// chi versions differ on trailing slashes for mounted subrouters.
	want := []string{"GET /api/frames", "GET /api/sessions/{id}", "GET unmatched"}
	wantCodes := []int{200, 404, 404}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != len(want) {
		t.Fatalf("routes = %v, want %v", hooks.routes, want)
	}
	for i := range want {
		if !strings.HasPrefix(hooks.routes[i], want[i]) || hooks.codes[i] != wantCodes[i] {
			t.Errorf("request %d = %s %d, want %s %d", i, hooks.routes[i], hooks.codes[i], want[i], wantCodes[i])
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.NewManager()
	m.Register()
	t.Cleanup(observability.Reset)

	env := newTestEnv(t, func(c *Config) { c.Metrics = m.Handler() })
	env.do(t, http.MethodGet, "/healthz", nil)
	env.do(t, http.MethodGet, "/api/frames", nil)
	env.do(t, http.MethodGet, "/api/frames", nil)

	rec := env.do(t, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`skillring_http_requests_total{code="200",method="GET",route="/healthz"} 1`,
		`skillring_cache_requests_total{result="miss",type="frames"} 1`,
		`skillring_cache_requests_total{result="hit",type="frames"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
