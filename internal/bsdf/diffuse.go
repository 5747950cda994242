package bsdf

import (
	"math"

	"github.com/achilleasa/go-pathtrace/internal/fresnel"
	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/internal/sampling"
	"github.com/achilleasa/go-pathtrace/types"
)

// Diffuse implements the Disney diffuse term (Lambertian + retro-reflection)
// plus a sheen lobe, with optional translucency (transmissive diffuse).
//
// Grounded on _examples/original_source/raymond/raymond/device/bsdf/lobes/Diffuse.hpp.
type Diffuse struct {
	DiffuseWeight types.Vec3
	SheenWeight   types.Vec3
	Roughness     float32
	Translucent   bool
}

func (d Diffuse) components(wo, wi types.Vec3) types.Vec3 {
	nDotL := AbsCosTheta(wi)
	nDotV := AbsCosTheta(wo)
	lDotV := wi.Dot(wo)

	fl := fresnel.SchlickWeight(nDotL)
	fv := fresnel.SchlickWeight(nDotV)

	lambertian := (1 - 0.5*fv) * (1 - 0.5*fl)

	lh2 := lDotV + 1
	rr := d.Roughness * lh2
	retroReflection := rr * (fl + fv + fl*fv*(rr-1))

	wh := wo.Add(wi).Normalize()
	lDotH := float32(math.Abs(float64(wh.Dot(wi))))
	sheen := fresnel.SchlickWeight(lDotH)

	return d.DiffuseWeight.Mul(lambertian + retroReflection).Add(d.SheenWeight.Mul(float32(math.Pi) * sheen))
}

// Evaluate returns the lobe's value and solid-angle PDF for a given pair of
// local-frame directions.
func (d Diffuse) Evaluate(wo, wi types.Vec3) (value types.Vec3, pdf float32) {
	if SameHemisphere(wi, wo) == d.Translucent {
		return types.Vec3{}, 0
	}

	nDotL := AbsCosTheta(wi)
	pdf = float32(1/math.Pi) * nDotL
	value = d.components(wo, wi).Mul(pdf)
	return value, pdf
}

// Sample cosine-samples the active hemisphere (flipping to the opposite side
// when the lobe is translucent).
func (d Diffuse) Sample(rnd types.Vec2, wo types.Vec3) Sample {
	wi := sampling.UniformSquareToCosineWeightedHemisphere(rnd)
	if !SameHemisphere(wi, wo) {
		wi = wi.Mul(-1)
	}

	nDotL := AbsCosTheta(wi)
	pdf := float32(1/math.Pi) * nDotL
	if !(pdf > 0) {
		return InvalidSample()
	}

	weight := d.components(wo, wi)

	flags := raykind.Reflection | raykind.Diffuse
	if d.Translucent {
		wi = wi.Mul(-1)
		flags = raykind.Transmission | raykind.Diffuse
	}

	return Sample{Wi: wi, Weight: weight, Pdf: pdf, Flags: flags}
}
