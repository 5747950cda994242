// Package raykind defines the ray-kind flag bitfield carried by every ray
// and shadow ray, and set on every BSDF/light sample.
package raykind

// Flags is a union-semantics bitfield describing how a ray came to exist and
// how it is expected to be used.
type Flags uint16

const (
	Camera Flags = 1 << iota
	Reflection
	Transmission
	Shadow
	Volume
	Diffuse
	Glossy
	Singular
)

// Has reports whether all bits of mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Any reports whether any bit of mask is set.
func (f Flags) Any(mask Flags) bool { return f&mask != 0 }
