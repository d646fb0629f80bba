package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// FramesKeyOpts identifies one rendering of a deck.
type FramesKeyOpts struct {
	Focus    int     `json:"focus"`
	Width    float64 `json:"width"`
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// FramesKey keys a rendered frame document for the deck with the
	// given content hash.
	FramesKey(deckHash string, opts FramesKeyOpts) string
	// DeckKey keys a decoded deck loaded from source.
	DeckKey(source string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FramesKey returns "frames:<format>:<hash>", where the hash covers the
// deck hash and every option.
func (DefaultKeyer) FramesKey(deckHash string, opts FramesKeyOpts) string {
	format := opts.Format
	if format == "" {
		format = "json"
	}
	return hashKey("frames:"+format, deckHash, opts.Focus, strconv.FormatFloat(opts.Width, 'f', -1, 64), opts.Detailed)
}

// DeckKey returns "deck:<hash of source>".
func (DefaultKeyer) DeckKey(source string) string {
	return hashKey("deck", source)
}

// hashKey returns prefix + ":" + the hex SHA-256 of parts encoded as a
// JSON array.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
