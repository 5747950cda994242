// Package microfacet implements the GGX and GTR1 normal distribution
// functions, their Smith shadowing-masking terms and VNDF sampling (C3).
//
// Grounded on _examples/original_source/raymond/device/bsdf/microfacet.hpp.
package microfacet

import (
	"math"

	"github.com/achilleasa/go-pathtrace/internal/frame"
	"github.com/achilleasa/go-pathtrace/types"
)

const pi = math.Pi

func square(x float32) float32 { return x * x }

// GTR1 evaluates the isotropic GTR1 (Berry) normal distribution function
// used by the clearcoat lobe.
func GTR1(wh types.Vec3, a float32) float32 {
	nDotH := frame.CosTheta(wh)
	a2 := square(a)
	t := 1 + (a2-1)*square(nDotH)
	return (a2 - 1) / (float32(pi) * float32(math.Log(float64(a2))) * t)
}

// SampleGTR1 importance samples the GTR1 distribution; the resulting
// microfacet normal always lies in the upper hemisphere. Its PDF is
// cosTheta(wh) * GTR1(wh, a).
func SampleGTR1(rnd types.Vec2, a float32) types.Vec3 {
	a2 := square(a)
	cosTheta := safeSqrt((1 - float32(math.Pow(float64(a2), float64(1-rnd[0])))) / (1 - a2))
	sinTheta := safeSqrt(1 - cosTheta*cosTheta)
	phi := 2 * float32(pi) * rnd[1]
	s, c := sincos(phi)
	return types.XYZ(sinTheta*c, sinTheta*s, cosTheta)
}

// SmithG1 is the isotropic GGX Smith shadowing-masking term (used by the
// clearcoat lobe). It returns 0 when w and wh lie on opposite sides of the
// surface.
func SmithG1(w, wh types.Vec3, a float32) float32 {
	if w.Dot(wh)*frame.CosTheta(w)*frame.CosTheta(wh) <= 0 {
		return 0
	}
	if frame.AbsCosTheta(w) >= 1 {
		return 1
	}
	a2TanTheta2 := square(a) * frame.TanTheta2(w)
	return 2 / (1 + float32(math.Sqrt(float64(1+a2TanTheta2))))
}

// AnisotropicSmithG1 is the anisotropic Smith shadowing-masking term for the
// GGX lobes (specular, transmission).
func AnisotropicSmithG1(w, wh types.Vec3, ax, ay float32) float32 {
	if w.Dot(wh)*frame.CosTheta(w)*frame.CosTheta(wh) <= 0 {
		return 0
	}
	if frame.AbsCosTheta(w) >= 1 {
		return 1
	}
	a2TanTheta2 := (square(ax*frame.CosPhiSinTheta(w)) + square(ay*frame.SinPhiSinTheta(w))) / frame.CosTheta2(w)
	return 2 / (1 + float32(math.Sqrt(float64(1+a2TanTheta2))))
}

// AnisotropicGGX evaluates the anisotropic GGX (Trowbridge-Reitz) normal
// distribution function.
func AnisotropicGGX(wh types.Vec3, ax, ay float32) float32 {
	nDotH := frame.CosTheta(wh)
	a := frame.CosPhiSinTheta(wh) / ax
	b := frame.SinPhiSinTheta(wh) / ay
	c := square(a) + square(b) + square(nDotH)
	return 1 / (float32(pi) * ax * ay * square(c))
}

// SampleGGXVNDF samples the distribution of visible normals for the GGX
// microfacet distribution, extended to transmission by flipping the sign of
// wo before the hemisphere transform [Heitz 2018].
func SampleGGXVNDF(rnd types.Vec2, ax, ay float32, wo types.Vec3) types.Vec3 {
	sgn := float32(1)
	if frame.CosTheta(wo) < 0 {
		sgn = -1
	}

	vh := types.XYZ(ax*wo[0], ay*wo[1], wo[2]).Mul(sgn).Normalize()

	lensq := vh[0]*vh[0] + vh[1]*vh[1]
	var t1 types.Vec3
	if lensq > 0 {
		invLen := 1 / float32(math.Sqrt(float64(lensq)))
		t1 = types.XYZ(-vh[1], vh[0], 0).Mul(invLen)
	} else {
		t1 = types.XYZ(1, 0, 0)
	}
	t2 := vh.Cross(t1)

	r := float32(math.Sqrt(float64(rnd[0])))
	phi := 2 * float32(pi) * rnd[1]
	s, c := sincos(phi)
	t1x := r * c
	t2x := r * s
	sVal := 0.5 * (1 + vh[2])
	t2x = (1-sVal)*safeSqrt(1-t1x*t1x) + sVal*t2x

	nh := t1.Mul(t1x).Add(t2.Mul(t2x)).Add(vh.Mul(safeSqrt(1 - t1x*t1x - t2x*t2x)))
	ne := types.XYZ(ax*nh[0], ay*nh[1], float32(math.Max(0, float64(nh[2])))).Normalize()
	return ne.Mul(sgn)
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
