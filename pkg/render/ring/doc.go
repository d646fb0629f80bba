// Package ring renders a carousel's frames as a top-down diagram.
//
// Each card becomes a node pinned at its lateral and depth offsets, so the
// ring is drawn as seen from above with the viewer at the bottom. Node size
// follows the frame's scale, fill alpha its opacity, and the active card is
// outlined in bold. Consecutive cards are joined to show the ring order.
//
//	frames := layout.Default().Frames(focus, deck.Len(), width)
//	dot := ring.ToDOT(deck, frames, ring.Options{})
//	svg, err := ring.RenderSVG(ctx, dot)
//
// [ToDOT] emits Graphviz DOT with pinned positions; [RenderSVG] lays it out
// with the neato engine via [github.com/goccy/go-graphviz].
package ring
