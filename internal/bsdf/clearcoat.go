package bsdf

import (
	"github.com/achilleasa/go-pathtrace/internal/fresnel"
	"github.com/achilleasa/go-pathtrace/internal/microfacet"
	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/types"
)

// Clearcoat implements a thin, isotropic GGX reflection layer with a fixed
// IOR of 1.5 (F0=0.04), as used by Disney's clearcoat term.
//
// Grounded on _examples/original_source/raymond/raymond/device/bsdf/lobes/Clearcoat.hpp.
type Clearcoat struct {
	Alpha  float32
	Weight float32
}

var clearcoatF0 = types.XYZ(0.04, 0.04, 0.04)

const clearcoatIor = 1.5

func (cc Clearcoat) Evaluate(wo, wi types.Vec3) (value types.Vec3, pdf float32) {
	wh := wi.Add(wo).Normalize()

	pdf = microfacet.AnisotropicGGX(wh, cc.Alpha, cc.Alpha) *
		microfacet.AnisotropicSmithG1(wo, wh, cc.Alpha, cc.Alpha) *
		absRatio(wo.Dot(wh), CosTheta(wo))
	if !(pdf > 0) {
		return types.Vec3{}, 0
	}
	pdf *= 1 / abs32(4*wo.Dot(wh))

	f := fresnel.ReflectionColor(wi, wh, clearcoatIor, clearcoatF0)
	g := microfacet.AnisotropicSmithG1(wi, wh, cc.Alpha, cc.Alpha) *
		microfacet.AnisotropicSmithG1(wo, wh, cc.Alpha, cc.Alpha)
	d := microfacet.AnisotropicGGX(wh, cc.Alpha, cc.Alpha)
	value = f.Mul(0.25 * d * g / abs32(4*CosTheta(wo)))
	return value, pdf
}

func (cc Clearcoat) Sample(rnd types.Vec2, wo types.Vec3) Sample {
	wh := microfacet.SampleGGXVNDF(rnd, cc.Alpha, cc.Alpha, wo)

	pdf := microfacet.AnisotropicGGX(wh, cc.Alpha, cc.Alpha) *
		microfacet.AnisotropicSmithG1(wo, wh, cc.Alpha, cc.Alpha) *
		absRatio(wo.Dot(wh), CosTheta(wo))
	if !(pdf > 0) {
		return InvalidSample()
	}

	wi := Reflect(wo, wh)
	if !SameHemisphere(wi, wo) {
		return InvalidSample()
	}
	pdf *= 1 / abs32(4*wo.Dot(wh))

	f := fresnel.ReflectionColor(wi, wh, clearcoatIor, clearcoatF0)
	gi := microfacet.SmithG1(wi, wh, cc.Alpha)

	return Sample{
		Wi:     wi,
		Weight: f.Mul(0.25 * cc.Weight * gi),
		Pdf:    pdf,
		Flags:  raykind.Reflection | raykind.Glossy,
	}
}
