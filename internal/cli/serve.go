package cli

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nekodev/skillring/internal/server"
	"github.com/nekodev/skillring/pkg/cache"
	"github.com/nekodev/skillring/pkg/metrics"
	"github.com/nekodev/skillring/pkg/session"
)

// HTTP server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	content string
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API serving the deck, frame documents, SVG rings and
hosted carousel sessions. Prometheus metrics are exposed at /metrics.

Rendered frames are cached in Redis when redis_addr is configured and in
memory otherwise. Idle sessions are closed after session_ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config addr)")
	cmd.Flags().StringVar(&opts.content, "content", "", "deck file (JSON or TOML)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	cfg := c.config()
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}

	m := metrics.NewManager()
	m.Register()

	store, backend, err := c.serverCache(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	deck, err := c.loadDeck(ctx, opts.content, store)
	if err != nil {
		return err
	}

	reg := session.NewRegistry(deck.Len(), session.Config{
		TTL:         cfg.SessionTTL,
		MaxSessions: cfg.MaxSessions,
		Options:     cfg.CarouselOptions(),
		Logger:      logger,
	})
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go reg.Run(sweepCtx)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: server.New(server.Config{
			Deck:     deck,
			Cache:    store,
			CacheTTL: cfg.CacheTTL,
			Registry: reg,
			Metrics:  m.Handler(),
			Logger:   logger,
		}),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	printInfo("Serving %s", StyleHighlight.Render(strconv.Itoa(deck.Len())+" cards"))
	printKeyValue("Address", StyleLink.Render("http://"+displayAddr(cfg.Addr)))
	printKeyValue("Cache", backend)
	printKeyValue("Session TTL", cfg.SessionTTL.String())
	printNextStep("Open a session", "curl -X POST http://"+displayAddr(cfg.Addr)+"/api/sessions")

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}
	reg.Shutdown(shutdownCtx)
	logger.Info("server stopped")
	return nil
}

// serverCache opens Redis when configured, otherwise an in-memory cache.
// The returned string names the backend for display.
func (c *CLI) serverCache(ctx context.Context) (cache.Cache, string, error) {
	cfg := c.config()
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(cache.DefaultMemoryEntries), "memory", nil
	}
	spin := newSpinner(ctx, "Connecting to Redis...")
	spin.Start()
	store, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, Prefix: cfg.RedisPrefix})
	if err != nil {
		spin.StopWithError("Redis unavailable at " + cfg.RedisAddr)
		return nil, "", err
	}
	spin.StopWithSuccess("Connected to Redis")
	return store, "redis " + cfg.RedisAddr, nil
}

// displayAddr turns a listen address like ":8080" into a dialable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
