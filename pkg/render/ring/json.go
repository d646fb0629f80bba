package ring

import (
	"encoding/json"

	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/content"
)

// Document is the JSON form of a ring at one focus position: every frame
// joined with its card's display payload.
type Document struct {
	Focus  int        `json:"focus"`
	Total  int        `json:"total"`
	Width  float64    `json:"width"`
	Radius float64    `json:"radius"`
	Cards  []jsonCard `json:"cards"`
}

type jsonCard struct {
	layout.Frame
	Title string `json:"title,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// NewDocument joins frames with deck. frames[i] describes deck.Cards[i]; a
// nil deck leaves the payload fields empty.
func NewDocument(deck *content.Deck, frames []layout.Frame, width float64) Document {
	doc := Document{Total: len(frames), Width: width, Cards: make([]jsonCard, len(frames))}
	for i, f := range frames {
		c := jsonCard{Frame: f}
		if deck != nil && f.Index < deck.Len() {
			card := deck.Cards[f.Index]
			c.Title = card.Title
			c.Icon = card.Icon.String()
			c.Color = card.Color
		}
		if f.Active {
			doc.Focus = f.Index
		}
		doc.Radius = f.Radius
		doc.Cards[i] = c
	}
	return doc
}

// RenderJSON encodes the document for frames with two-space indentation.
func RenderJSON(deck *content.Deck, frames []layout.Frame, width float64) ([]byte, error) {
	return json.MarshalIndent(NewDocument(deck, frames, width), "", "  ")
}
