package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "skillring:prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FramesKey generates a prefixed frames key.
func (k *ScopedKeyer) FramesKey(deckHash string, opts FramesKeyOpts) string {
	return k.prefix + k.inner.FramesKey(deckHash, opts)
}

// DeckKey generates a prefixed deck key.
func (k *ScopedKeyer) DeckKey(source string) string {
	return k.prefix + k.inner.DeckKey(source)
}
