package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"xdg default", "", filepath.Join(home, ".cache", appName)},
		{"xdg set", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCacheNoCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	if _, ok := c.(interface{ Dir() string }); ok {
		t.Error("--no-cache opened a file cache")
	}

	c, err = newCache(false)
	if err != nil {
		t.Fatalf("newCache(false) error: %v", err)
	}
	fc, ok := c.(interface{ Dir() string })
	if !ok {
		t.Fatalf("newCache(false) = %T, want a file cache", c)
	}
	if want, _ := cacheDir(); fc.Dir() != want {
		t.Errorf("cache dir = %q, want %q", fc.Dir(), want)
	}
}
