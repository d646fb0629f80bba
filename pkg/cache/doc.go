// Package cache stores rendered frame documents keyed by what produced them.
//
// The HTTP server renders the same ring for the same deck, focus and width
// over and over; a [Cache] keeps the bytes so repeat requests skip layout
// and Graphviz. Implementations:
//
//   - [MemoryCache]: in-process map, the default for a single server.
//   - [RedisCache]: shared across server instances.
//   - [FileCache]: on-disk cache used by the CLI (see "skillring cache").
//   - [NullCache]: never stores anything.
//
// Keys come from a [Keyer] so every component agrees on their shape:
//
//	key := cache.NewDefaultKeyer().FramesKey(deck.Hash(), cache.FramesKeyOpts{
//	    Focus: 3, Width: 1024, Format: "svg",
//	})
//
// [Instrument] wraps any cache to report hits, misses and writes to the
// registered observability hooks.
package cache
