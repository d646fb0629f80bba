// Package pkg provides the core libraries for Skillring, a controller for a
// rotating 3D carousel of skill cards.
//
// # Overview
//
// A deck of cards sits on a ring. One card is focused and faces the viewer;
// the rest recede around the ring with smaller scale and lower opacity. The
// controller moves the focus in response to clicks, swipes, wheel scrolls and
// an auto-advance timer that pauses while the user interacts. The pkg
// directory is organized into these areas:
//
//  1. [carousel] - The interaction state machine and its input handlers
//  2. [carousel/layout] - Ring geometry: per-card frames and transitions
//  3. [carousel/timers] - Clock and single-slot timer scheduling
//  4. [content] - Card decks from JSON, TOML, MongoDB or the embedded deck
//  5. [render/ring] - Frame documents as JSON, Graphviz DOT and SVG
//  6. [session] - Hosted controllers with idle expiry
//  7. [cache] - Memory, file and Redis caches for rendered output
//
// # Architecture
//
// The typical data flow:
//
//	content.Source (file, MongoDB, embedded)
//	         ↓
//	    [content] Deck
//	         ↓
//	    [carousel] Controller  ←  clicks, touches, wheel, timers
//	         ↓
//	    [carousel/layout] Frames
//	         ↓
//	    [render/ring] JSON / DOT / SVG
//
// # Quick Start
//
//	deck, _ := content.StaticSource{}.Load(ctx)
//	ctrl, _ := carousel.New(deck.Len(), carousel.WithViewportWidth(1280))
//	defer ctrl.Close()
//
//	ctrl.Click(3)
//	snap := ctrl.Snapshot()
//	doc, _ := ring.RenderJSON(deck, snap.Frames, snap.Width)
//
// # Supporting Packages
//
// [errors] - Coded errors shared by every package, with user-facing messages.
//
// [metrics] and [observability] - Prometheus collectors and the hooks that
// feed them.
//
// [symbols] - Brand icon names mapped to terminal glyphs.
//
// [buildinfo] - Version information stamped at build time.
//
// [carousel]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/carousel
// [carousel/layout]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/carousel/layout
// [carousel/timers]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/carousel/timers
// [content]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/content
// [render/ring]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/render/ring
// [session]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/session
// [cache]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/cache
// [errors]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/errors
// [metrics]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/metrics
// [observability]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/observability
// [symbols]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/symbols
// [buildinfo]: https://pkg.go.dev/github.com/nekodev/skillring/pkg/buildinfo
package pkg
