package cache

// DefaultKeyer derives stage keys from content hashes and option values.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard content-addressed keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TreeKey keys a decoded tree by the hash of its raw input bytes.
func (k *DefaultKeyer) TreeKey(input []byte) string {
	return "tree:" + Hash(input)
}

// LayoutKey keys a drawing program by the tree hash plus every option that
// influences the layout.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts.Style, opts.Width, opts.Height, opts.Avail, opts.ScaleBar)
}

// ArtifactKey keys a rendered artifact by the layout hash plus the output
// format options.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format, opts.FontFamily, opts.Background)
}

// ScopedKeyer wraps a Keyer with a prefix so separate contexts (per-user
// server sessions, test runs) get isolated cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TreeKey(input []byte) string {
	return k.prefix + k.inner.TreeKey(input)
}

func (k *ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
