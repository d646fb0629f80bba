package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nekodev/skillring/internal/config"
	"github.com/nekodev/skillring/pkg/buildinfo"
	"github.com/nekodev/skillring/pkg/cache"
	"github.com/nekodev/skillring/pkg/content"
	"github.com/nekodev/skillring/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "skillring"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// config returns the loaded configuration, or the defaults when the root
// command's pre-run has not loaded one.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.New()
	}
	return c.cfg
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "Skillring drives a 3D skill carousel",
		Long:              `Skillring lays out a deck of skill cards on a rotating ring and drives it from clicks, swipes, wheel scrolls and an auto-advance timer, in the terminal or over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (YAML); defaults to $"+config.EnvPrefix+"CONFIG")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.framesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Deck Loading
// =============================================================================

// loadDeck resolves the deck for a command: an explicit path wins, then the
// configured content file, then MongoDB, then the embedded skills deck.
// Decks read from MongoDB are kept in store (when non-nil) under the
// database's key so later runs can start without it.
func (c *CLI) loadDeck(ctx context.Context, path string, store cache.Cache) (*content.Deck, error) {
	logger := loggerFromContext(ctx)
	cfg := c.config()
	if path == "" {
		path = cfg.ContentPath
	}

	switch {
	case path != "":
		deck, err := content.FileSource{Path: path}.Load(ctx)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded deck", "path", path, "cards", deck.Len())
		return deck, nil

	case cfg.MongoURI != "":
		return c.loadMongoDeck(ctx, store)
	}

	deck, err := content.StaticSource{}.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("using embedded skills deck", "cards", deck.Len())
	return deck, nil
}

func (c *CLI) loadMongoDeck(ctx context.Context, store cache.Cache) (*content.Deck, error) {
	logger := loggerFromContext(ctx)
	cfg := c.config()
	if store == nil {
		store = cache.NewNullCache()
	}
	store = cache.Instrument(store, "deck")
	key := cacheKeyer().DeckKey(cfg.MongoURI + "/" + cfg.MongoDatabase + "/" + cfg.MongoCollection)

	prog := newProgress(logger)
	src, err := content.DialMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		if !errors.GetCode(err).Temporary() {
			return nil, err
		}
		if deck, ok := cachedDeck(ctx, store, key); ok {
			printWarning("MongoDB unavailable, using the cached deck")
			logger.Debug("dial mongo", "err", err)
			return deck, nil
		}
		return nil, err
	}
	defer func() {
		if err := src.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Debug("close mongo client", "err", err)
		}
	}()

	deck, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	prog.done("loaded deck from mongo", "cards", deck.Len(), "collection", cfg.MongoCollection)

	if data, err := json.Marshal(deck); err == nil {
		if err := store.Set(ctx, key, data, cfg.CacheTTL); err != nil {
			logger.Debug("cache deck", "err", err)
		}
	}
	return deck, nil
}

func cachedDeck(ctx context.Context, store cache.Cache, key string) (*content.Deck, bool) {
	data, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var deck content.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, false
	}
	if err := deck.Normalize(); err != nil {
		return nil, false
	}
	return &deck, true
}

// =============================================================================
// Cache
// =============================================================================

// cacheKeyer scopes CLI cache keys to the build, so an upgrade never reuses
// renderings from an older DOT generator.
func cacheKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}

// newCache opens the CLI's file cache. Without a usable cache directory it
// falls back to a null cache.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/skillring/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
