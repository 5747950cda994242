package shading

import (
	"math"

	"github.com/achilleasa/go-pathtrace/asset/scene"
	texture "github.com/achilleasa/go-pathtrace/asset/texure"
	"github.com/achilleasa/go-pathtrace/types"
)

// SceneTextureSampler implements TextureSampler against a compiled scene's
// contiguous texture atlas (asset/scene.Scene.TextureData), doing nearest
// neighbor lookups with wrap-around UVs.
//
// Grounded on asset/texure's Format enum for the per-texel byte layout.
type SceneTextureSampler struct {
	sc *scene.Scene
}

// NewSceneTextureSampler wraps sc's baked texture atlas for runtime lookups.
func NewSceneTextureSampler(sc *scene.Scene) *SceneTextureSampler {
	return &SceneTextureSampler{sc: sc}
}

func (s *SceneTextureSampler) Sample(textureIndex int32, uv types.Vec2) types.Vec3 {
	if textureIndex < 0 || int(textureIndex) >= len(s.sc.TextureMetadata) {
		return types.Vec3{}
	}
	meta := s.sc.TextureMetadata[textureIndex]
	if meta.Width == 0 || meta.Height == 0 {
		return types.Vec3{}
	}

	u := wrapUnit(uv[0])
	v := wrapUnit(uv[1])
	x := uint32(u * float32(meta.Width))
	y := uint32(v * float32(meta.Height))
	if x >= meta.Width {
		x = meta.Width - 1
	}
	if y >= meta.Height {
		y = meta.Height - 1
	}

	var texel types.Vec3
	switch meta.Format {
	case texture.Luminance8:
		off := meta.DataOffset + y*meta.Width + x
		l := float32(s.sc.TextureData[off]) / 255
		texel = types.XYZ(l, l, l)
	case texture.Luminance32F:
		off := meta.DataOffset + (y*meta.Width+x)*4
		l := readFloat32(s.sc.TextureData, off)
		texel = types.XYZ(l, l, l)
	case texture.Rgba8:
		off := meta.DataOffset + (y*meta.Width+x)*4
		r := float32(s.sc.TextureData[off+0]) / 255
		g := float32(s.sc.TextureData[off+1]) / 255
		b := float32(s.sc.TextureData[off+2]) / 255
		texel = types.XYZ(r, g, b)
	case texture.Rgba32F:
		off := meta.DataOffset + (y*meta.Width+x)*16
		r := readFloat32(s.sc.TextureData, off+0)
		g := readFloat32(s.sc.TextureData, off+4)
		b := readFloat32(s.sc.TextureData, off+8)
		texel = types.XYZ(r, g, b)
	default:
		return types.Vec3{}
	}

	return decodeColorSpace(meta.ColorSpace, texel)
}

// decodeColorSpace maps a baked texel from its storage encoding back to
// linear light, per the color space tag on its TextureMetadata.
//
// ColorSpaceSRGB applies the standard sRGB EOTF; ColorSpaceXYZ applies the
// CIE XYZ -> linear sRGB (D65) matrix. ColorSpaceLinear, ColorSpaceNonColor,
// ColorSpaceRaw and ColorSpaceFilmicLog all pass the stored value through
// unchanged: the first three are already linear-like channel data (roughness,
// normal/bump, masks) that must not receive a gamma curve, and filmic-log
// tonemapping is out of scope for this sampler (see DESIGN.md).
func decodeColorSpace(cs texture.ColorSpace, c types.Vec3) types.Vec3 {
	switch cs {
	case texture.ColorSpaceSRGB:
		return types.XYZ(srgbToLinear(c[0]), srgbToLinear(c[1]), srgbToLinear(c[2]))
	case texture.ColorSpaceXYZ:
		return xyzToLinearSRGB(c)
	default:
		return c
	}
}

// srgbToLinear applies the piecewise sRGB electro-optical transfer function.
func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow(float64((c+0.055)/1.055), 2.4))
}

// xyzToLinearSRGB converts a CIE 1931 XYZ color to linear sRGB using the
// standard D65 3x3 matrix.
func xyzToLinearSRGB(c types.Vec3) types.Vec3 {
	x, y, z := c[0], c[1], c[2]
	return types.XYZ(
		3.2404542*x-1.5371385*y-0.4985314*z,
		-0.9692660*x+1.8760108*y+0.0415560*z,
		0.0556434*x-0.2040259*y+1.0572252*z,
	)
}

func wrapUnit(x float32) float32 {
	x -= float32(math.Floor(float64(x)))
	if x < 0 {
		x += 1
	}
	return x
}

func readFloat32(data []byte, offset uint32) float32 {
	bits := uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
	return math.Float32frombits(bits)
}
