// Package frame implements the local shading-frame scalar helpers and the
// world-space <-> shading-space basis transform (C5). It is kept free of any
// dependency on the BSDF lobes or the microfacet distributions so that both
// can depend on it without an import cycle.
//
// Grounded on _examples/original_source/raymond/device/bsdf/ShadingFrame.hpp.
package frame

import (
	"math"

	"github.com/achilleasa/go-pathtrace/types"
)

// SameHemisphere reports whether wi and wo lie on the same side of the local
// shading frame, where z is aligned with the shading normal.
func SameHemisphere(wi, wo types.Vec3) bool {
	return CosTheta(wi)*CosTheta(wo) > 0
}

func CosTheta(w types.Vec3) float32  { return w[2] }
func CosTheta2(w types.Vec3) float32 { return w[2] * w[2] }
func AbsCosTheta(w types.Vec3) float32 {
	return float32(math.Abs(float64(w[2])))
}

func SinTheta2(w types.Vec3) float32 { return 1 - CosTheta2(w) }
func SinTheta(w types.Vec3) float32  { return safeSqrt(SinTheta2(w)) }

func CosPhiSinTheta(w types.Vec3) float32 { return w[0] }
func SinPhiSinTheta(w types.Vec3) float32 { return w[1] }

func TanTheta(w types.Vec3) float32 {
	c := CosTheta(w)
	return safeSqrt(1-c*c) / c
}

func TanTheta2(w types.Vec3) float32 {
	c2 := CosTheta2(w)
	return (1 - c2) / c2
}

func safeSqrt(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

// BuildOrthonormalBasis builds a world-to-shading-frame rotation matrix with
// local z aligned to n (Duff et al.'s branchless construction).
func BuildOrthonormalBasis(n types.Vec3) types.Mat3 {
	sign := float32(1)
	if n[2] < 0 {
		sign = -1
	}
	a := -1 / (sign + n[2])
	b := n[0] * n[1] * a
	t := types.XYZ(1+sign*n[0]*n[0]*a, sign*b, -sign*n[0])
	bnorm := types.XYZ(b, sign+n[1]*n[1]*a, -n[1])

	// Rows are the basis vectors (t, bnorm, n); multiplying a world-space
	// vector by this matrix projects it into the local shading frame.
	return types.Mat3{
		t[0], t[1], t[2],
		bnorm[0], bnorm[1], bnorm[2],
		n[0], n[1], n[2],
	}
}

// ToLocal projects a world-space direction into the shading frame described
// by basis (as returned by BuildOrthonormalBasis).
func ToLocal(basis types.Mat3, w types.Vec3) types.Vec3 {
	return types.XYZ(
		basis[0]*w[0]+basis[1]*w[1]+basis[2]*w[2],
		basis[3]*w[0]+basis[4]*w[1]+basis[5]*w[2],
		basis[6]*w[0]+basis[7]*w[1]+basis[8]*w[2],
	)
}

// ToWorld projects a local-frame direction back into world space; it is the
// transpose of the ToLocal transform.
func ToWorld(basis types.Mat3, w types.Vec3) types.Vec3 {
	return types.XYZ(
		basis[0]*w[0]+basis[3]*w[1]+basis[6]*w[2],
		basis[1]*w[0]+basis[4]*w[1]+basis[7]*w[2],
		basis[2]*w[0]+basis[5]*w[1]+basis[8]*w[2],
	)
}

// Reflect reflects i about the microfacet normal wh (both pointing away from
// the surface), matching the convention wi = reflect(-wo, wh).
func Reflect(i, wh types.Vec3) types.Vec3 {
	return wh.Mul(2 * i.Dot(wh)).Sub(i)
}

// Refract mirrors the GLSL/Metal built-in refract(I, N, eta): I is the
// incident propagation direction (pointing into the surface), N is the
// microfacet normal and eta is the relative IOR (n1/n2) for a ray entering
// along I. The returned direction continues the propagation (pointing away
// from the hit point, like the BSDF's "wi" convention) and is the zero
// vector on total internal reflection.
func Refract(i, n types.Vec3, eta float32) types.Vec3 {
	cosThetaI := n.Dot(i)
	k := 1 - eta*eta*(1-cosThetaI*cosThetaI)
	if k < 0 {
		return types.Vec3{}
	}
	return i.Mul(eta).Sub(n.Mul(eta*cosThetaI + float32(math.Sqrt(float64(k)))))
}
