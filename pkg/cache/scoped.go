package cache

// ScopedKeyer prefixes every key from an inner keyer, so several deployments
// can share one Redis without seeing each other's entries.
//
//	keyer := cache.NewScopedKeyer(nil, "frosting:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configHash, opts)
}
