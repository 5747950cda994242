package bsdf

import (
	"math"

	"github.com/achilleasa/go-pathtrace/internal/fresnel"
	"github.com/achilleasa/go-pathtrace/internal/microfacet"
	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/types"
)

// Specular implements the anisotropic GGX glossy reflection lobe with a
// Disney-style specular tint, sampled via the VNDF.
//
// Grounded on _examples/original_source/raymond/device/bsdf/lobes/Specular.hpp.
type Specular struct {
	AlphaX float32
	AlphaY float32
	Cspec0 types.Vec3
	Ior    float32
	Weight float32
}

func (s Specular) Evaluate(wo, wi types.Vec3) (value types.Vec3, pdf float32) {
	wh := wi.Add(wo).Normalize()

	pdf = microfacet.AnisotropicGGX(wh, s.AlphaX, s.AlphaY) *
		microfacet.AnisotropicSmithG1(wo, wh, s.AlphaX, s.AlphaY) *
		absRatio(wo.Dot(wh), CosTheta(wo))
	if !(pdf > 0) {
		return types.Vec3{}, 0
	}
	pdf *= 1 / abs32(4*wo.Dot(wh))

	f := fresnel.ReflectionColor(wi, wh, s.Ior, s.Cspec0)
	g := microfacet.AnisotropicSmithG1(wi, wh, s.AlphaX, s.AlphaY) *
		microfacet.AnisotropicSmithG1(wo, wh, s.AlphaX, s.AlphaY)
	d := microfacet.AnisotropicGGX(wh, s.AlphaX, s.AlphaY)
	value = f.Mul(d * g / abs32(4*CosTheta(wo)))
	return value, pdf
}

func (s Specular) Sample(rnd types.Vec2, wo types.Vec3) Sample {
	wh := microfacet.SampleGGXVNDF(rnd, s.AlphaX, s.AlphaY, wo)

	pdf := microfacet.AnisotropicGGX(wh, s.AlphaX, s.AlphaY) *
		microfacet.AnisotropicSmithG1(wo, wh, s.AlphaX, s.AlphaY) *
		absRatio(wo.Dot(wh), CosTheta(wo))
	if !(pdf > 0) {
		return InvalidSample()
	}

	wi := Reflect(wo, wh)
	if !SameHemisphere(wi, wo) {
		return InvalidSample()
	}

	pdf *= 1 / abs32(4*wo.Dot(wh))

	f := fresnel.ReflectionColor(wi, wh, s.Ior, s.Cspec0)
	gi := microfacet.AnisotropicSmithG1(wi, wh, s.AlphaX, s.AlphaY)

	return Sample{
		Wi:     wi,
		Weight: f.Mul(s.Weight * gi),
		Pdf:    pdf,
		Flags:  raykind.Reflection | raykind.Glossy,
	}
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func absRatio(num, den float32) float32 {
	return abs32(num / den)
}

func square(x float32) float32 { return x * x }
