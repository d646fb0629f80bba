package content

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nekodev/skillring/pkg/errors"
	"github.com/nekodev/skillring/pkg/symbols"
)

// Card is the payload of one carousel slot.
type Card struct {
	Icon        symbols.Symbol `json:"icon" toml:"icon"`
	Title       string         `json:"title" toml:"title"`
	Description string         `json:"description" toml:"description"`
	Color       string         `json:"color" toml:"color"`
	ColorRGB    string         `json:"colorRgb" toml:"colorRgb"`
}

// RGB returns the card's accent color components. It prefers Color and
// falls back to ColorRGB.
func (c Card) RGB() (r, g, b uint8, ok bool) {
	if r, g, b, ok = parseHex(c.Color); ok {
		return r, g, b, true
	}
	return parseTriplet(c.ColorRGB)
}

// Deck is an ordered, non-empty sequence of cards.
type Deck struct {
	Cards []Card `json:"cards" toml:"cards"`
}

// NewDeck builds a deck from cards and validates it.
func NewDeck(cards ...Card) (*Deck, error) {
	d := &Deck{Cards: cards}
	if err := d.Normalize(); err != nil {
		return nil, err
	}
	return d, nil
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Cards)
}

// Titles returns every card title in deck order.
func (d *Deck) Titles() []string {
	out := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		out[i] = c.Title
	}
	return out
}

// Validate checks that the deck is usable by a carousel: at least one card,
// valid and unique titles, known icons and well-formed colors.
func (d *Deck) Validate() error {
	if d.Len() == 0 {
		return errors.New(errors.ErrCodeEmptyContent, "deck has no cards")
	}
	seen := make(map[string]int, len(d.Cards))
	for i, c := range d.Cards {
		if err := errors.ValidateTitle(c.Title); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidContent, err, "card %d", i)
		}
		if j, dup := seen[c.Title]; dup {
			return errors.New(errors.ErrCodeInvalidContent, "cards %d and %d share the title %q", j, i, c.Title)
		}
		seen[c.Title] = i
		if !c.Icon.Valid() {
			return errors.New(errors.ErrCodeInvalidSymbol, "card %q has an invalid icon", c.Title)
		}
		if c.Color != "" {
			if _, _, _, ok := parseHex(c.Color); !ok {
				return errors.New(errors.ErrCodeInvalidContent, "card %q: color %q is not #rgb or #rrggbb", c.Title, c.Color)
			}
		}
		if c.ColorRGB != "" {
			if _, _, _, ok := parseTriplet(c.ColorRGB); !ok {
				return errors.New(errors.ErrCodeInvalidContent, "card %q: colorRgb %q is not \"r, g, b\"", c.Title, c.ColorRGB)
			}
		}
	}
	return nil
}

// Normalize validates the deck and fills ColorRGB from Color where only the
// hex form was given.
func (d *Deck) Normalize() error {
	if err := d.Validate(); err != nil {
		return err
	}
	for i := range d.Cards {
		c := &d.Cards[i]
		if c.ColorRGB != "" {
			continue
		}
		if r, g, b, ok := parseHex(c.Color); ok {
			c.ColorRGB = fmt.Sprintf("%d, %d, %d", r, g, b)
		}
	}
	return nil
}

// Hash returns a stable content hash of the deck. Any change to a card,
// including its position, changes the hash.
func (d *Deck) Hash() string {
	data, _ := json.Marshal(d.Cards)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func parseHex(s string) (r, g, b uint8, ok bool) {
	s, found := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !found {
		return 0, 0, 0, false
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func parseTriplet(s string) (r, g, b uint8, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var out [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		out[i] = uint8(v)
	}
	return out[0], out[1], out[2], true
}
