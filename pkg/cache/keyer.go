package cache

// Keyer derives cache keys.
type Keyer interface {
	// GraphKey identifies a resolved graph built from sources.
	GraphKey(sourcesHash string, opts GraphKeyOpts) string
	// ArtifactKey identifies a rendered output of a resolved graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the build options that change the resolved graph.
type GraphKeyOpts struct {
	Strict bool `json:"strict"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes the inputs of each key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey returns "graph:<sha256>".
func (DefaultKeyer) GraphKey(sourcesHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourcesHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer. A Redis instance
// shared with other tools keeps relviz entries under its own namespace
// this way.
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

func (k *ScopedKeyer) GraphKey(sourcesHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(sourcesHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
