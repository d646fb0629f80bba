// Package symbols defines the closed set of icons a card can display.
//
// Card content refers to icons by name ("SiDocker", "FaJava", ...). Names are
// resolved to a [Symbol] once, when content is decoded, so an unknown icon is
// a content error reported at load time rather than a blank at render time.
//
// # Usage
//
//	s, err := symbols.Parse("SiPython")
//	if err != nil {
//	    return err // errors.ErrCodeInvalidSymbol
//	}
//	fmt.Println(s.Glyph(), s)
//
// Symbol implements [encoding.TextMarshaler] and [encoding.TextUnmarshaler],
// so it can be used directly as a JSON, TOML or BSON-tagged string field.
package symbols
