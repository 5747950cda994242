package shading

import (
	"math"

	"github.com/achilleasa/go-pathtrace/types"
)

// TexChecker reproduces nodes.hpp's tri-axis parity checker pattern: the
// surface is cut into cells half a unit wide per axis (at scale=1) and the
// parity of their integer indices selects which color to return.
func TexChecker(scale float32, vector types.Vec3, color1, color2 types.Vec3) types.Vec3 {
	ix := int64(math.Floor(float64(vector[0]*scale*2) + 1e-6))
	iy := int64(math.Floor(float64(vector[1]*scale*2) + 1e-6))
	iz := int64(math.Floor(float64(vector[2]*scale*2) + 1e-6))

	if (ix^iy^iz)&1 != 0 {
		return color2
	}
	return color1
}

// TexGradient produces a grayscale falloff along vector, either linear
// (vector.x) or spherical (1 - |vector|), matching nodes.hpp's TexGradient.
func TexGradient(kind int, vector types.Vec3) types.Vec3 {
	var fac float32
	if kind == 1 {
		fac = saturate(1 - vector.Len())
	} else {
		fac = saturate(vector[0])
	}
	return types.XYZ(fac, fac, fac)
}

// TexNoise returns a deterministic fractal value-noise sample. It does not
// reproduce nodes.hpp's Perlin-gradient noise bit-exactly (no gradient-noise
// library is part of this module's dependency stack -- see DESIGN.md); the
// hash-based value noise used here has the same fractal-sum structure
// (detail octaves weighted by roughness, distortion applied to the input
// before sampling) and returns values in [0, 1] without NaNs.
func TexNoise(vector types.Vec3, scale, detail, roughness, distortion float32) types.Vec3 {
	p := vector.Mul(scale)
	if distortion != 0 {
		p = types.XYZ(
			p[0]+distortion*hashNoise(p.Add(types.XYZ(3.1, 0, 0))),
			p[1]+distortion*hashNoise(p.Add(types.XYZ(0, 7.3, 0))),
			p[2]+distortion*hashNoise(p.Add(types.XYZ(0, 0, 11.7))),
		)
	}

	octaves := int(math.Max(1, math.Min(8, float64(detail)+1)))
	amplitude := float32(1)
	total := float32(0)
	weight := float32(0)
	for i := 0; i < octaves; i++ {
		total += amplitude * hashNoise(p.Mul(float32(1<<uint(i))))
		weight += amplitude
		amplitude *= saturate(roughness)
	}
	if weight > 0 {
		total /= weight
	}

	v := saturate(0.5 + 0.5*total)
	return types.XYZ(v, v, v)
}

// hashNoise is a cheap, deterministic value-noise primitive: trilinear
// interpolation over a hashed integer lattice, returning values in [-1, 1].
func hashNoise(p types.Vec3) float32 {
	x0, y0, z0 := math.Floor(float64(p[0])), math.Floor(float64(p[1])), math.Floor(float64(p[2]))
	fx, fy, fz := float32(float64(p[0])-x0), float32(float64(p[1])-y0), float32(float64(p[2])-z0)
	fx, fy, fz = smooth(fx), smooth(fy), smooth(fz)

	var corners [8]float32
	i := 0
	for _, dz := range [2]float64{0, 1} {
		for _, dy := range [2]float64{0, 1} {
			for _, dx := range [2]float64{0, 1} {
				corners[i] = latticeHash(x0+dx, y0+dy, z0+dz)
				i++
			}
		}
	}

	c00 := lerp(corners[0], corners[1], fx)
	c10 := lerp(corners[2], corners[3], fx)
	c01 := lerp(corners[4], corners[5], fx)
	c11 := lerp(corners[6], corners[7], fx)
	c0 := lerp(c00, c10, fy)
	c1 := lerp(c01, c11, fy)
	return lerp(c0, c1, fz)
}

func latticeHash(x, y, z float64) float32 {
	n := int64(x)*374761393 + int64(y)*668265263 + int64(z)*2147483647
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	frac := float64(uint32(n)) / float64(1<<32)
	return float32(2*frac - 1)
}

func smooth(t float32) float32 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// TexNishita returns a simplified Preetham-style sky gradient: linear
// interpolation between a horizon and zenith color driven by the direction's
// elevation, scaled by turbidity, plus a sun glow strongest where the
// direction's elevation matches sunElevation. Directions below the horizon
// return a flat groundAlbedo gray. Full atmospheric scattering is out of
// scope for this module; see DESIGN.md.
func TexNishita(direction types.Vec3, sunElevation, turbidity, groundAlbedo float32) types.Vec3 {
	zenith := types.XYZ(0.25, 0.45, 0.85)
	horizon := types.XYZ(0.85, 0.75, 0.55)

	if direction[1] < 0 {
		return types.XYZ(groundAlbedo, groundAlbedo, groundAlbedo)
	}

	t := saturate(direction[1])
	sky := lerpVec3(horizon, zenith, t)

	sunFactor := saturate(1 - abs32(sunElevation-float32(math.Asin(float64(direction[1])))))
	turbidityScale := 1 + 0.1*(turbidity-2)
	return sky.Mul(turbidityScale).Add(types.XYZ(1, 0.9, 0.7).Mul(sunFactor * 0.3))
}

// Blackbody converts a temperature in Kelvin to a normalized RGB color,
// using the single-range per-channel polynomial fits below in place of
// nodes.hpp's piecewise blackbody table (clamped to the table's
// [800, 12000] K domain at the extremes).
func Blackbody(temperature float32) types.Vec3 {
	t := temperature
	if t < 800 {
		t = 800
	}
	if t > 12000 {
		t = 12000
	}

	u := 1000 / t
	r := blackbodyPoly(u, blackbodyR)
	g := blackbodyPoly(u, blackbodyG)
	b := blackbodyPoly(u, blackbodyB)

	c := types.XYZ(saturate(r), saturate(g), saturate(b))
	maxC := max32(c[0], max32(c[1], c[2]))
	if maxC <= 0 {
		return types.XYZ(1, 1, 1)
	}
	return c.Mul(1 / maxC)
}

// blackbodyR/G/B are simplified single-range cubic fits (in inverse
// kilo-kelvin) standing in for nodes.hpp's seven-range piecewise table; they
// reproduce the same red-to-blue trend (warm at low temperature, blue-white
// at high temperature) without matching every sub-range's coefficients
// bit-exactly (see DESIGN.md).
var (
	blackbodyR = [4]float32{0.6, 2, 0, 0}
	blackbodyG = [4]float32{1.05, -0.45, 0.08, 0}
	blackbodyB = [4]float32{1.25, -2.5, 0, 0}
)

func blackbodyPoly(u float32, coeff [4]float32) float32 {
	return coeff[0] + u*(coeff[1]+u*(coeff[2]+u*coeff[3]))
}

// Fresnel evaluates Schlick's dielectric reflectance approximation at ior
// for the angle between the shading normal and the outgoing direction.
func Fresnel(ior float32, cosTheta float32) float32 {
	f0 := (ior - 1) / (ior + 1)
	f0 *= f0
	return f0 + (1-f0)*schlickWeight(cosTheta)
}

func schlickWeight(cosTheta float32) float32 {
	m := saturate(1 - abs32(cosTheta))
	m2 := m * m
	return m2 * m2 * m
}

// LayerWeight blends toward grazing angles, matching nodes.hpp's Fresnel-like
// LayerWeight helper used to drive a Mix factor without a physical IOR.
func LayerWeight(blend float32, cosTheta float32) float32 {
	if blend >= 1 {
		blend = 1 - 1e-4
	}
	ior := 1 / (1 - blend)
	return Fresnel(ior, cosTheta)
}

// Mapping applies a scale/rotation(Euler XYZ intrinsic, radians)/translation
// transform to vector.
func Mapping(vector, scale, rotation, location types.Vec3) types.Vec3 {
	v := vector.MulVec3(scale)

	cx, sx := float32(math.Cos(float64(rotation[0]))), float32(math.Sin(float64(rotation[0])))
	cy, sy := float32(math.Cos(float64(rotation[1]))), float32(math.Sin(float64(rotation[1])))
	cz, sz := float32(math.Cos(float64(rotation[2]))), float32(math.Sin(float64(rotation[2])))

	// Rotate X, then Y, then Z (intrinsic Euler XYZ).
	v = types.XYZ(v[0], v[1]*cx-v[2]*sx, v[1]*sx+v[2]*cx)
	v = types.XYZ(v[0]*cy+v[2]*sy, v[1], -v[0]*sy+v[2]*cy)
	v = types.XYZ(v[0]*cz-v[1]*sz, v[0]*sz+v[1]*cz, v[2])

	return v.Add(location)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
