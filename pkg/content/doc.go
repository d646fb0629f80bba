// Package content holds the card payloads a carousel displays.
//
// A [Deck] is an ordered list of [Card] values. The carousel itself only
// needs the deck's length; everything else here is opaque payload passed
// through to renderers.
//
// Decks come from a [Source]:
//
//   - [StaticSource] wraps a deck already in memory, such as [Default].
//   - [FileSource] reads a JSON or TOML file, chosen by extension.
//   - [MongoSource] reads one document per card from a MongoDB collection.
//
// JSON decks are either a bare array of cards or an object with a "cards"
// array. TOML decks use an array of tables:
//
//	[[cards]]
//	icon = "SiGit"
//	title = "Git"
//	description = "Version control and collaboration."
//	color = "#f05032"
//	colorRgb = "240, 80, 50"
package content
