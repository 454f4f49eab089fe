package bundle

// Metadata describes a stored bundle. It shares its primary key with the
// payload it describes: a metadata record exists exactly when the bundle
// with the same ID exists.
//
// Size is declared by the caller and is not verified against the actual
// payload length. Constraints is an opaque bitmask whose bit meanings are
// owned by the caller.
type Metadata struct {
	ID           string      `json:"id" yaml:"id"`
	Source       string      `json:"source" yaml:"source"`
	Destination  string      `json:"destination" yaml:"destination"`
	CreationTime uint64      `json:"creation_time" yaml:"creation_time"`
	Size         uint64      `json:"size" yaml:"size"`
	Constraints  Constraints `json:"constraints" yaml:"constraints"`
}

// Constraints is a 32-bit bitmask attached to each bundle. The store and
// CLI treat it as opaque; bit semantics belong to whoever writes it.
type Constraints int32

// Has reports whether every bit in mask is set.
func (c Constraints) Has(mask Constraints) bool {
	return c&mask == mask
}

// With returns c with the bits in mask set.
func (c Constraints) With(mask Constraints) Constraints {
	return c | mask
}

// Without returns c with the bits in mask cleared.
func (c Constraints) Without(mask Constraints) Constraints {
	return c &^ mask
}
