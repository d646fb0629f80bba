package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nekodev/skillring/pkg/cache"
)

func TestCacheClear(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	fc, err := cache.NewFileCache(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, key, []byte("<svg/>"), time.Hour); err != nil {
			t.Fatalf("Set(%q) error: %v", key, err)
		}
	}

	cmd := New(os.Stderr, LogInfo).cacheClearCommand()
	cmd.SetArgs([]string{})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	if _, ok, _ := fc.Get(ctx, "a"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "absent"))

	cmd := New(os.Stderr, LogInfo).cacheClearCommand()
	cmd.SetArgs([]string{})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear on missing dir error: %v", err)
	}
}

func TestCachePath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	var out bytes.Buffer
	cmd := New(os.Stderr, LogInfo).cachePathCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path error: %v", err)
	}

	want := filepath.Join(xdg, appName)
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheInfo(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	buf := captureStdout(t)

	fc, err := cache.NewFileCache(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatal(err)
	}

	cmd := New(os.Stderr, LogInfo).cacheInfoCommand()
	cmd.SetArgs([]string{})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache info error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "Entries") || !strings.Contains(out, "1") {
		t.Errorf("info output = %q", out)
	}
}
