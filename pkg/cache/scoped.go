package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
//
// The CLI and server scope keys by build version so that a release that
// changes evaluation never serves results computed by an older one:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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

// CountKey generates a prefixed key for a model count.
func (k *ScopedKeyer) CountKey(fileHash, format, weightsHash string) string {
	return k.prefix + k.inner.CountKey(fileHash, format, weightsHash)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(dotHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, format)
}
