// Package sampling implements the bijections and densities (C2) between the
// unit square and the sphere, hemisphere, disk and triangle, used throughout
// light and BSDF sampling.
//
// Grounded on _examples/original_source/raymond/raymond/device/utils/warp.hpp.
package sampling

import (
	"math"

	"github.com/achilleasa/go-pathtrace/types"
)

const pi = math.Pi

// EquirectSphereToSquare maps a direction vector to equirectangular (u,v)
// texture coordinates.
func EquirectSphereToSquare(v types.Vec3) types.Vec2 {
	return types.XY(
		float32((math.Atan2(float64(v[0]), float64(v[1]))-pi)/(2*pi)),
		float32(math.Acos(clamp(float64(v[2])/float64(v.Len()), -1, 1))/pi),
	)
}

// UniformSquareToSphere is a bijection from the unit square to the sphere
// with density 1/4pi.
func UniformSquareToSphere(uv types.Vec2) types.Vec3 {
	z := 1 - 2*uv[1]
	r := safeSqrt(1 - z*z)
	phi := 2 * float32(pi) * uv[0]
	s, c := sincos(phi)
	return types.XYZ(r*c, r*s, z)
}

// UniformSphereToSquare inverts UniformSquareToSphere.
func UniformSphereToSquare(v types.Vec3) types.Vec2 {
	y := (1 - v[2]) / 2
	x := float32(math.Atan2(float64(v[1]), float64(v[0]))) / (2 * float32(pi))
	if x < 0 {
		x += 1
	}
	return types.XY(x, y)
}

// UniformSquareToSpherePdf is the constant solid-angle density of the
// UniformSquareToSphere mapping.
func UniformSquareToSpherePdf() float32 {
	return 1 / (4 * float32(pi))
}

// UniformSquareToDisk maps the unit square to the unit disk (radius 1),
// uniform with respect to area.
func UniformSquareToDisk(uv types.Vec2) types.Vec2 {
	s, c := sincos(2 * float32(pi) * uv[0])
	r := float32(math.Sqrt(float64(uv[1])))
	return types.XY(r*c, r*s)
}

// UniformSquareToCosineWeightedHemisphere samples the upper hemisphere (z>0)
// with density cosTheta/pi.
func UniformSquareToCosineWeightedHemisphere(rnd types.Vec2) types.Vec3 {
	cosTheta := float32(math.Sqrt(float64(rnd[0])))
	sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))
	s, c := sincos(2 * float32(pi) * rnd[1])
	return types.XYZ(sinTheta*c, sinTheta*s, cosTheta)
}

// CosineWeightedHemispherePdf returns the density of the mapping above for
// a sampled direction w in the local shading frame.
func CosineWeightedHemispherePdf(cosTheta float32) float32 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / float32(pi)
}

// UniformSquareToTriangleBarycentric maps the unit square to barycentric
// coordinates (u,v) uniformly distributed by area; w = 1-u-v is implicit.
func UniformSquareToTriangleBarycentric(rnd types.Vec2) types.Vec2 {
	x := float32(math.Sqrt(float64(rnd[0])))
	return types.XY(1-x, x*rnd[1])
}

func sincos(x float32) (sin, cos float32) {
	s, c := math.Sincos(float64(x))
	return float32(s), float32(c)
}

func safeSqrt(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampedSmoothstep evaluates the Hermite smoothstep of x between edges lo
// and hi, clamped to [0,1]; used for spotlight cone falloff.
func ClampedSmoothstep(lo, hi, x float32) float32 {
	if hi <= lo {
		if x < hi {
			return 0
		}
		return 1
	}
	t := float32(clamp(float64((x-lo)/(hi-lo)), 0, 1))
	return t * t * (3 - 2*t)
}
