package cache

// Keyer builds cache keys for the values sddkit caches.
type Keyer interface {
	// CountKey identifies a weighted model count: the circuit content, its
	// format and the weight table.
	CountKey(fileHash, format, weightsHash string) string

	// ArtifactKey identifies a rendered image of some DOT source.
	ArtifactKey(dotHash, format string) string
}

// DefaultKeyer hashes the key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CountKey returns "count:<sha256>" over the three components.
func (DefaultKeyer) CountKey(fileHash, format, weightsHash string) string {
	return hashKey("count", fileHash, format, weightsHash)
}

// ArtifactKey returns "artifact:<sha256>" over the DOT hash and format.
func (DefaultKeyer) ArtifactKey(dotHash, format string) string {
	return hashKey("artifact", dotHash, format)
}

var _ Keyer = DefaultKeyer{}
