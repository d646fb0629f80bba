package content

import (
	"context"

	"github.com/nekodev/skillring/pkg/errors"
)

// Source loads a deck.
type Source interface {
	Load(ctx context.Context) (*Deck, error)
}

// StaticSource serves a deck already held in memory.
type StaticSource struct {
	Deck *Deck
}

// Load returns the wrapped deck, or the embedded default when none is set.
func (s StaticSource) Load(ctx context.Context) (*Deck, error) {
	if s.Deck == nil {
		return Default(), nil
	}
	if err := s.Deck.Validate(); err != nil {
		return nil, err
	}
	return s.Deck, nil
}

// FileSource reads a JSON or TOML deck file on every Load.
type FileSource struct {
	Path string
}

// Load reads and validates the file.
func (s FileSource) Load(ctx context.Context) (*Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "load %s", s.Path)
	}
	return LoadFile(s.Path)
}

var (
	_ Source = StaticSource{}
	_ Source = FileSource{}
	_ Source = (*MongoSource)(nil)
)
