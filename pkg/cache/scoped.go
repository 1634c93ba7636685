package cache

// ScopedKeyer wraps a Keyer with a prefix so distinct callers can share one
// cache backend without colliding. The server scopes its entries per store
// backend this way, keeping them apart from plain CLI runs that use the same
// cache directory.
//
// Example usage:
//
//	// Server entries, namespaced by backend
//	serverKeyer := NewScopedKeyer(nil, "serve:redis:")
//
//	// Unscoped keys for CLI runs
//	cliKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key produced
// by inner. A nil inner falls back to the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(workspaceHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(workspaceHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
