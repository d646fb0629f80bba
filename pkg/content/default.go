package content

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed skills.json
var skillsJSON []byte

var defaultDeck = sync.OnceValue(func() *Deck {
	d, err := Decode(bytes.NewReader(skillsJSON), FormatJSON)
	if err != nil {
		panic("content: embedded skills deck: " + err.Error())
	}
	return d
})

// Default returns a copy of the embedded skills deck.
func Default() *Deck {
	d := defaultDeck()
	return &Deck{Cards: append([]Card(nil), d.Cards...)}
}
