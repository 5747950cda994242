package bsdf

import (
	"math"

	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/types"
)

// Uber is the layered material model (C7): a stochastic composition of the
// four lobes plus a null-scattering "alpha" event used for cutout
// transparency. Lobe probabilities sum to at most 1; the remainder is
// implicitly left unsampled (the material absorbs the rest).
//
// Grounded on _examples/original_source/raymond/device/bsdf/UberShader.hpp.
type Uber struct {
	Normal types.Vec3

	// LobeProbabilities holds, in order, the selection probability of
	// Diffuse, Specular, Transmission and Clearcoat.
	LobeProbabilities [4]float32
	Diffuse           Diffuse
	Specular          Specular
	Transmission      Transmission
	Clearcoat         Clearcoat

	Alpha       float32
	AlphaWeight types.Vec3

	Emission types.Vec3
	Weight   float32
}

// IsDelta reports whether the material behaves as a perfectly specular (or
// null-scattering) surface, and should therefore disable NEE.
func (u Uber) IsDelta() bool {
	if u.Alpha < 0.5 {
		return true
	}
	if u.Specular.Weight > 0.5 && (u.Specular.AlphaX < 0.1 || u.Specular.AlphaY < 0.1) {
		return true
	}
	if u.Transmission.Weight > 0.5 && (u.Transmission.ReflectionAlpha < 0.1 || u.Transmission.TransmissionAlpha < 0.1) {
		return true
	}
	return false
}

// Albedo estimates the hemispherical reflectance of the material; used for
// the denoiser-style albedo output channel.
func (u Uber) Albedo() types.Vec3 {
	value := types.Vec3{}
	if u.LobeProbabilities[0] > 0 {
		value = value.Add(u.Diffuse.DiffuseWeight).Add(u.Diffuse.SheenWeight)
	}
	if u.LobeProbabilities[1] > 0 {
		value = value.Add(u.Specular.Cspec0.Add(types.XYZ(1, 1, 1)).Mul(u.Specular.Weight / 2))
	}
	if u.LobeProbabilities[2] > 0 {
		value = value.Add(u.Transmission.Cspec0.Add(u.Transmission.BaseColor).Add(types.XYZ(2, 2, 2)).Mul(u.Transmission.Weight / 4))
	}
	if u.LobeProbabilities[3] > 0 {
		value = value.Add(types.XYZ(1, 1, 1).Mul(u.Clearcoat.Weight / 4))
	}
	value = value.Mul(u.Alpha).Add(u.AlphaWeight.Mul(1 - u.Alpha))
	return value.Add(types.XYZ(1e-3, 1e-3, 1e-3))
}

// Evaluate sums the active lobes' contributions for a world-space (wo, wi)
// pair, checking hemisphere consistency between the shading and geometric
// normals on both directions.
func (u Uber) Evaluate(wo, wi, shNormal, geoNormal types.Vec3) (value types.Vec3, pdf float32) {
	basis := BuildOrthonormalBasis(shNormal)

	woDotGeoN := wo.Dot(geoNormal)
	localWo := ToLocal(basis, wo)
	if localWo[2]*woDotGeoN < 0 {
		return types.Vec3{}, 0
	}

	wiDotGeoN := wi.Dot(geoNormal)
	localWi := ToLocal(basis, wi)
	if localWi[2]*wiDotGeoN < 0 {
		return types.Vec3{}, 0
	}

	return u.evaluateLocal(localWo, localWi)
}

func (u Uber) evaluateLocal(wo, wi types.Vec3) (value types.Vec3, pdf float32) {
	value = types.Vec3{}
	pdf = 0

	if u.LobeProbabilities[0] > 0 {
		v, p := u.Diffuse.Evaluate(wo, wi)
		value = value.Add(v)
		pdf += u.LobeProbabilities[0] * p
	}
	if u.LobeProbabilities[1] > 0 {
		v, p := u.Specular.Evaluate(wo, wi)
		value = value.Add(v)
		pdf += u.LobeProbabilities[1] * p
	}
	if u.LobeProbabilities[2] > 0 {
		v, p := u.Transmission.Evaluate(wo, wi)
		value = value.Add(v)
		pdf += u.LobeProbabilities[2] * p
	}
	if u.LobeProbabilities[3] > 0 {
		v, p := u.Clearcoat.Evaluate(wo, wi)
		value = value.Add(v)
		pdf += u.LobeProbabilities[3] * p
	}

	pdf *= u.Alpha
	value = value.Mul(u.Weight * u.Alpha)
	return value, pdf
}

// Sample draws a continuation direction from the material: a null-scattering
// event with probability (1-Alpha), otherwise a lobe selected by cumulative
// search over LobeProbabilities. rnd.X selects the event/lobe; rnd.YZ (or
// rnd.Y for lobes using a 2D draw) parameterize the lobe's own sampling.
func (u Uber) Sample(rnd [3]float32, wo, shNormal, geoNormal types.Vec3, previousFlags raykind.Flags) Sample {
	if rnd[0] < u.Alpha {
		if u.Alpha > 0 {
			rnd[0] /= u.Alpha
		}
	} else {
		return Sample{
			Wi:     wo.Mul(-1),
			Weight: u.AlphaWeight.Mul(u.Weight),
			Pdf:    1,
			Flags:  previousFlags | raykind.Singular,
		}
	}

	basis := BuildOrthonormalBasis(shNormal)

	woDotGeoN := wo.Dot(geoNormal)
	localWo := ToLocal(basis, wo)
	if localWo[2]*woDotGeoN < 0 {
		return InvalidSample()
	}

	rnd2 := types.XY(rnd[1], rnd[2])

	var selected int
	var sample Sample
	switch {
	case rnd[0] < u.LobeProbabilities[0]:
		selected = 0
		sample = u.Diffuse.Sample(rnd2, localWo)
	case rnd[0] < u.LobeProbabilities[0]+u.LobeProbabilities[1]:
		selected = 1
		sample = u.Specular.Sample(rnd2, localWo)
	case rnd[0] < u.LobeProbabilities[0]+u.LobeProbabilities[1]+u.LobeProbabilities[2]:
		selected = 2
		sample = u.Transmission.Sample(rnd2, localWo)
	case rnd[0] < u.LobeProbabilities[0]+u.LobeProbabilities[1]+u.LobeProbabilities[2]+u.LobeProbabilities[3]:
		selected = 3
		sample = u.Clearcoat.Sample(rnd2, localWo)
	default:
		// The unsampled remainder: the material absorbs the path.
		return InvalidSample()
	}

	p := u.LobeProbabilities[selected]
	if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
		return InvalidSample()
	}
	if !(sample.Pdf > 0) {
		return InvalidSample()
	}

	if p < 1 {
		// For MIS we need an accurate PDF and value for the whole
		// material, not just the sampled lobe.
		value, pdf := u.evaluateLocal(localWo, sample.Wi)
		if !(pdf > 0) {
			return InvalidSample()
		}
		sample.Weight = value.Mul(1 / pdf)
		sample.Pdf = pdf
	} else {
		sample.Pdf *= u.Alpha
		sample.Weight = sample.Weight.Mul(u.Weight * u.Alpha)
	}

	localWiZ := sample.Wi[2]
	sample.Wi = ToWorld(basis, sample.Wi)
	wiDotGeoN := sample.Wi.Dot(geoNormal)
	if localWiZ*wiDotGeoN < 0 {
		return InvalidSample()
	}

	return sample
}
