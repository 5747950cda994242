package bsdf

import (
	"github.com/achilleasa/go-pathtrace/internal/fresnel"
	"github.com/achilleasa/go-pathtrace/internal/microfacet"
	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/types"
)

// Transmission implements the rough-dielectric (GGX glass) lobe: a Fresnel
// split between a glossy reflection branch and a refraction branch, each
// with its own roughness.
//
// Grounded on _examples/original_source/raymond/device/bsdf/lobes/Transmission.hpp.
type Transmission struct {
	ReflectionAlpha   float32
	TransmissionAlpha float32
	BaseColor         types.Vec3
	Cspec0            types.Vec3
	Ior               float32
	Weight            float32
	OnlyRefract       bool
}

func (tr Transmission) Evaluate(wo, wi types.Vec3) (value types.Vec3, pdf float32) {
	isReflection := SameHemisphere(wi, wo)
	if tr.OnlyRefract && isReflection {
		return types.Vec3{}, 0
	}

	eta := tr.Ior
	if CosTheta(wo) <= 0 {
		eta = 1 / tr.Ior
	}

	var wh types.Vec3
	if isReflection {
		wh = wi.Add(wo).Normalize()
	} else {
		wh = wi.Mul(eta).Add(wo).Normalize()
	}

	alpha := tr.TransmissionAlpha
	if isReflection {
		alpha = tr.ReflectionAlpha
	}

	pdf = microfacet.AnisotropicGGX(wh, alpha, alpha) *
		microfacet.AnisotropicSmithG1(wo, wh, alpha, alpha) *
		absRatio(wo.Dot(wh), CosTheta(wo))
	if !(pdf > 0) {
		return types.Vec3{}, 0
	}

	gi := microfacet.AnisotropicSmithG1(wi, wh, alpha, alpha)
	fr := float32(0)
	if !tr.OnlyRefract {
		fr = fresnel.DielectricCos(CosTheta(wo), eta)
	}

	if isReflection {
		pdf *= fr
		pdf *= 1 / abs32(4*wo.Dot(wh))
		f := fresnel.ReflectionColor(wi, wh, eta, tr.Cspec0)
		return f.Mul(pdf * tr.Weight * gi), pdf
	}

	pdf *= 1 - fr
	pdf *= abs32(wi.Dot(wh) / square(wi.Dot(wh)+wh.Dot(wo)/eta))
	return tr.BaseColor.Mul(pdf * tr.Weight * gi), pdf
}

func (tr Transmission) Sample(rnd types.Vec2, wo types.Vec3) Sample {
	eta := tr.Ior
	if CosTheta(wo) <= 0 {
		eta = 1 / tr.Ior
	}

	fr := float32(0)
	if !tr.OnlyRefract {
		fr = fresnel.DielectricCos(CosTheta(wo), eta)
	}
	isReflection := rnd[0] < fr

	alpha := tr.TransmissionAlpha
	if isReflection {
		alpha = tr.ReflectionAlpha
	}

	wh := microfacet.SampleGGXVNDF(rnd, alpha, alpha, wo)
	pdf := microfacet.AnisotropicGGX(wh, alpha, alpha) *
		microfacet.AnisotropicSmithG1(wo, wh, alpha, alpha) *
		absRatio(wo.Dot(wh), CosTheta(wo))

	if isReflection {
		if !(pdf > 0) {
			return InvalidSample()
		}
		wi := Reflect(wo, wh)
		if !SameHemisphere(wi, wo) {
			return InvalidSample()
		}

		pdf *= fr
		pdf *= 1 / abs32(4*wo.Dot(wh))

		f := fresnel.ReflectionColor(wi, wh, eta, tr.Cspec0)
		gi := microfacet.AnisotropicSmithG1(wi, wh, alpha, alpha)
		return Sample{
			Wi:     wi,
			Weight: f.Mul(tr.Weight * gi),
			Pdf:    pdf,
			Flags:  raykind.Reflection | raykind.Glossy,
		}
	}

	if !(pdf > 0) {
		return InvalidSample()
	}
	wi := Refract(wo.Mul(-1), wh, 1/eta)
	if wi == (types.Vec3{}) || SameHemisphere(wi, wo) {
		return InvalidSample()
	}

	pdf *= 1 - fr
	pdf *= abs32(wi.Dot(wh) / square(wi.Dot(wh)+wh.Dot(wo)/eta))

	gi := microfacet.AnisotropicSmithG1(wi, wh, alpha, alpha)
	return Sample{
		Wi:     wi,
		Weight: tr.BaseColor.Mul(tr.Weight * gi),
		Pdf:    pdf,
		Flags:  raykind.Transmission | raykind.Glossy,
	}
}
