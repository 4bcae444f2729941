package cache

// Keyer derives cache keys for upstream responses.
type Keyer interface {
	HTTPKey(namespace, url string) string
}

// DefaultKeyer hashes the URL so keys stay short and filesystem-safe.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:{namespace}:{sha256(url)}".
func (DefaultKeyer) HTTPKey(namespace, url string) string {
	return "http:" + namespace + ":" + Hash([]byte(url))
}
