package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts can
// share one backend without key collisions.
//
// Example usage:
//
//	// Keys for a one-off refresh run
//	runKeyer := NewScopedKeyer(NewDefaultKeyer(), "run:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// PageKey generates a prefixed key for a fetched model page.
func (k *ScopedKeyer) PageKey(brand, model, url string) string {
	return k.prefix + k.inner.PageKey(brand, model, url)
}

// SpecKey generates a prefixed key for an extracted specification set.
func (k *ScopedKeyer) SpecKey(pageHash string) string {
	return k.prefix + k.inner.SpecKey(pageHash)
}

// ImageKey generates a prefixed key for a downloaded car photo.
func (k *ScopedKeyer) ImageKey(url string) string {
	return k.prefix + k.inner.ImageKey(url)
}

// PosterKey generates a prefixed key for an encoded poster.
func (k *ScopedKeyer) PosterKey(specHash string, opts PosterKeyOpts) string {
	return k.prefix + k.inner.PosterKey(specHash, opts)
}
