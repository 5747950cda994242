// Package fresnel implements the Schlick approximation and the exact
// dielectric Fresnel term used by the BSDF lobes (C4).
//
// Grounded on _examples/original_source/raymond/device/bsdf/fresnel.hpp.
package fresnel

import (
	"math"

	"github.com/achilleasa/go-pathtrace/types"
)

func saturate(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// SchlickWeight returns (1-cosTheta)^5, clamped to a sane domain.
func SchlickWeight(cosTheta float32) float32 {
	m := saturate(1 - cosTheta)
	m2 := m * m
	return m2 * m2 * m
}

// Schlick evaluates the Schlick approximation of the Fresnel term for a
// scalar reflectance at normal incidence.
func Schlick(f0, cosTheta float32) float32 {
	return f0 + (1-f0)*SchlickWeight(cosTheta)
}

// SchlickColor evaluates the Schlick approximation for an RGB reflectance.
func SchlickColor(f0 types.Vec3, cosTheta float32) types.Vec3 {
	w := SchlickWeight(cosTheta)
	return f0.Mul(1 - w).Add(types.XYZ(1, 1, 1).Mul(w))
}

// DielectricCos is the exact unpolarized dielectric Fresnel term expressed
// purely in terms of the cosine of the incident angle and the relative IOR.
func DielectricCos(cosI, eta float32) float32 {
	c := float32(math.Abs(float64(cosI)))
	g := eta*eta - 1 + c*c
	if g > 0 {
		g = float32(math.Sqrt(float64(g)))
		a := (g - c) / (g + c)
		b := (c*(g+c) - 1) / (c*(g-c) + 1)
		return 0.5 * a * a * (1 + b*b)
	}
	return 1
}

// Dielectric computes the full unpolarized dielectric Fresnel term given an
// incident direction i, a normal n and the relative IOR eta = n1/n2. It also
// returns the cosine of the transmitted direction, or -1 on total internal
// reflection.
func Dielectric(i, n types.Vec3, eta float32) (value, cosThetaT float32) {
	nDotI := n.Dot(i)
	cosThetaTSqr := 1 - eta*eta*(1-nDotI*nDotI)
	if cosThetaTSqr <= 0 {
		return 1, -1
	}

	cosThetaI := float32(math.Abs(float64(nDotI)))
	cosThetaT = float32(math.Sqrt(float64(cosThetaTSqr)))

	rs := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	rp := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)

	return 0.5 * (rs*rs + rp*rp), cosThetaT
}

// InterpolateFresnel blends a tinted specular color Cspec0 towards white as
// the Fresnel term at normal incidence (F0) rises towards full reflectance;
// this is the Disney/Cycles "specular tint" interpolation.
func InterpolateFresnel(wi, wh types.Vec3, ior, f0 float32, cspec0 types.Vec3) types.Vec3 {
	f0Norm := 1 / (1 - f0)
	fh := (DielectricCos(wi.Dot(wh), ior) - f0) * f0Norm
	return cspec0.Mul(1 - fh).Add(types.XYZ(1, 1, 1).Mul(fh))
}

// ReflectionColor computes the tinted Fresnel reflectance used by the
// specular, transmission and clearcoat lobes.
func ReflectionColor(wi, wh types.Vec3, ior float32, cspec0 types.Vec3) types.Vec3 {
	f0 := DielectricCos(1, ior)
	return InterpolateFresnel(wi, wh, ior, f0, cspec0)
}
