package texture

type Format uint32

const (
	Luminance8 Format = iota
	Luminance32F
	Rgba8
	Rgba32F
)

// ColorSpace tags how a texture's stored texel values map to linear light,
// matching the TexImage color space selector in
// _examples/original_source/raymond/device/nodes/nodes.hpp.
type ColorSpace uint8

const (
	// ColorSpaceSRGB texels are IEC 61966-2-1 gamma encoded and must be
	// linearized before use in lighting math. This is the default for
	// baked 8-bit albedo/reflectance maps.
	ColorSpaceSRGB ColorSpace = iota
	// ColorSpaceLinear texels are already linear (HDR/float sources).
	ColorSpaceLinear
	// ColorSpaceNonColor texels carry non-color data (roughness, normal
	// maps, masks) and must never be gamma-decoded.
	ColorSpaceNonColor
	// ColorSpaceRaw is an alias for NonColor kept for parity with the
	// node catalog's "Raw" option; treated identically.
	ColorSpaceRaw
	// ColorSpaceXYZ texels store CIE XYZ tristimulus values and are
	// converted to linear sRGB via the D65 XYZ->RGB matrix.
	ColorSpaceXYZ
	// ColorSpaceFilmicLog texels are stored in a log2-like filmic
	// encoding; not reproduced bit-exactly, decoded as linear (documented
	// limitation, see DESIGN.md).
	ColorSpaceFilmicLog
)
