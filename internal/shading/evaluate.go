// Package shading evaluates a scene's compiled layered-material trees (C8)
// into a bsdf.Uber ready for sampling/evaluation at a surface hit.
//
// asset/compiler already lowers a material expression ("diffuse(...) +
// 0.3 * conductor(...)") into a flat, GPU-friendly tree of scene.MaterialNode
// union records; this package is the runtime counterpart that walks that
// tree for a given hit, resolving any texture references along the way, and
// folds the result into the four fixed lobe slots internal/bsdf.Uber
// understands.
//
// Grounded on asset/compiler/compiler.go's generateMaterialTree (the node
// layout this package consumes) and
// _examples/original_source/raymond/device/bsdf/UberShader.hpp (the
// stochastic mix-of-lobes composition it reproduces).
package shading

import (
	"math"

	"github.com/achilleasa/go-pathtrace/asset/material"
	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/bsdf"
	"github.com/achilleasa/go-pathtrace/internal/shadingctx"
	"github.com/achilleasa/go-pathtrace/types"
)

// TextureSampler resolves a baked texture reference (a TextureMetadata
// index into the scene's texture atlas) to a color at a given surface UV.
type TextureSampler interface {
	Sample(textureIndex int32, uv types.Vec2) types.Vec3
}

var white = types.XYZ(1, 1, 1)

// Evaluate walks the material tree rooted at rootIndex and returns the Uber
// BSDF it compiles down to for the given surface UV. It does not know the
// surface's shading frame, so it cannot apply normal/bump mapping or
// EnsureValidReflection -- used for emission-only lookups (environment
// sampling) where no reflection direction is involved. Real surface shading
// goes through EvaluateSurface instead.
//
// rnd is the shading context's stochastic-mix dimension (rnd.x): MixShader/
// AddShader nodes branch on it and rescale it in place as the tree is
// walked, so callers whose material tree may contain a combinator must pass
// a live *float32 (typically one scalar drawn from the path's own PRNG
// stream) rather than nil.
func Evaluate(nodes []scene.MaterialNode, rootIndex int32, uv types.Vec2, rnd *float32, tex TextureSampler) bsdf.Uber {
	return evalNode(nodes, rootIndex, uv, types.Vec3{}, rnd, tex)
}

// EvaluateSurface walks the material tree for a real ray-scene hit: it
// perturbs shNormal according to any NormalMap/BumpMap node encountered, then
// nudges the result back across the geometric hemisphere via
// internal/shadingctx.EnsureValidReflection before returning. The returned
// Uber's Normal field always holds the final, validated shading normal to
// use for sampling and BSDF evaluation at this hit. See Evaluate for rnd's
// role in stochastic MixShader/AddShader branching.
func EvaluateSurface(nodes []scene.MaterialNode, rootIndex int32, uv types.Vec2, shNormal, geoNormal, wo types.Vec3, rnd *float32, tex TextureSampler) bsdf.Uber {
	u := evalNode(nodes, rootIndex, uv, shNormal, rnd, tex)
	u.Normal = shadingctx.EnsureValidReflection(geoNormal, u.Normal, wo)
	return u
}

func neutralUber() bsdf.Uber {
	return bsdf.Uber{
		Alpha:             1,
		AlphaWeight:       white,
		Weight:            1,
		LobeProbabilities: [4]float32{1, 0, 0, 0},
		Diffuse:           bsdf.Diffuse{DiffuseWeight: types.XYZ(0.5, 0.5, 0.5)},
	}
}

func evalNode(nodes []scene.MaterialNode, index int32, uv types.Vec2, shNormal types.Vec3, rnd *float32, tex TextureSampler) bsdf.Uber {
	if index < 0 || int(index) >= len(nodes) {
		u := neutralUber()
		u.Normal = shNormal
		return u
	}

	node := nodes[index]
	nodeType := uint32(node.Union1[0])

	if material.IsBxdfType(nodeType) {
		u := bxdfToUber(nodes, material.BxdfType(nodeType), node, uv, tex)
		u.Normal = shNormal
		return u
	}

	switch material.OpType(nodeType) {
	case material.OpMix:
		return stochasticMix(nodes, node.Union1[1], node.Union1[2], node.Union2[0], node.Union2[1], uv, shNormal, rnd, tex)
	case material.OpMixMap:
		w := meanComponent(colorOrConst(tex, node.Union1[3], uv, types.XYZ(0.5, 0.5, 0.5)))
		return stochasticMix(nodes, node.Union1[1], node.Union1[2], 1-w, w, uv, shNormal, rnd, tex)
	case material.OpAddShader:
		return stochasticMix(nodes, node.Union1[1], node.Union1[2], 1, 1, uv, shNormal, rnd, tex)
	case material.OpBumpMap:
		u := evalNode(nodes, node.Union1[1], uv, shNormal, rnd, tex)
		u.Normal = applyBumpMap(node, uv, shNormal, tex)
		return u
	case material.OpNormalMap:
		u := evalNode(nodes, node.Union1[1], uv, shNormal, rnd, tex)
		u.Normal = applyNormalMap(node, uv, shNormal, tex)
		return u
	default:
		u := neutralUber()
		u.Normal = shNormal
		return u
	}
}

// stochasticMix implements the shading graph's MixShader/AddShader
// combinators: rather than analytically blending the two sub-Uber BSDFs'
// parameters, it branches on a single uniform read from rnd (the shading
// context's rnd.x dimension), recurses into exactly one of the two
// sub-trees, and rescales rnd in place so downstream combinators still see a
// correctly distributed uniform on [0,1).
//
// wa/wb are the branch weights (MixShader: fac-derived, need not sum to 1;
// AddShader: both 1). pb = wb/(wa+wb) is the probability of picking branch
// b; the selected branch's Weight is scaled by (wa+wb) so the estimator
// stays unbiased: E[result] = pb*(b.Weight*total) + pa*(a.Weight*total) =
// wb*b.Weight + wa*a.Weight. For AddShader (wa=wb=1, total=2) this is
// exactly "doubles the selected branch's weight"; for a MixMap texture fac
// (wa=1-w, wb=w, total=1) no multiplier applies.
//
// rnd may be nil when the caller has no live PRNG dimension to thread
// (value-only lookups); in that case the branch is chosen deterministically
// by comparing the two weights, since there is nothing to rescale.
func stochasticMix(nodes []scene.MaterialNode, aIndex, bIndex int32, wa, wb float32, uv types.Vec2, shNormal types.Vec3, rnd *float32, tex TextureSampler) bsdf.Uber {
	total := wa + wb
	if total <= 0 {
		total = 1
	}
	pb := saturate(wb / total)

	selectB := pb >= 0.5
	if rnd != nil {
		if *rnd < pb {
			selectB = true
			if pb > 0 {
				*rnd = *rnd / pb
			}
		} else {
			selectB = false
			if pb < 1 {
				*rnd = (*rnd - pb) / (1 - pb)
			}
		}
	}

	var u bsdf.Uber
	if selectB {
		u = evalNode(nodes, bIndex, uv, shNormal, rnd, tex)
	} else {
		u = evalNode(nodes, aIndex, uv, shNormal, rnd, tex)
	}
	u.Weight *= total
	return u
}

func bxdfToUber(nodes []scene.MaterialNode, t material.BxdfType, node scene.MaterialNode, uv types.Vec2, tex TextureSampler) bsdf.Uber {
	u := bsdf.Uber{Alpha: 1, AlphaWeight: white, Weight: 1}

	intIOR, extIOR := node.Union4[0], node.Union4[1]
	ior := float32(1.5)
	if extIOR > 1e-6 {
		ior = intIOR / extIOR
	}

	switch t {
	case material.BxdfDiffuse, material.BxdfTranslucent, material.BxdfVelvet, material.BxdfHair:
		reflectance := resolveColor(nodes, node.ValueInputs[0], tex, node.Union1[3], uv, node.Union2.Vec3())
		u.LobeProbabilities = [4]float32{1, 0, 0, 0}
		u.Diffuse = bsdf.Diffuse{DiffuseWeight: reflectance, Roughness: node.Union4[2]}
		if t == material.BxdfTranslucent {
			u.Diffuse.Translucent = true
		}
		if t == material.BxdfVelvet || t == material.BxdfHair {
			// Sheen-dominant lobes: fold the reflectance into the
			// sheen term (grazing-angle retro-reflection) rather
			// than the flat Lambertian term.
			u.Diffuse.SheenWeight = reflectance
			u.Diffuse.DiffuseWeight = reflectance.Mul(0.2)
		}

	case material.BxdfConductor, material.BxdfRoughtConductor, material.BxdfGlossy, material.BxdfAnisotropic:
		specularity := resolveColor(nodes, node.ValueInputs[0], tex, node.Union1[3], uv, node.Union2.Vec3())
		alpha := float32(0.001)
		if t != material.BxdfConductor {
			alpha = roughnessAt(tex, node, uv)
		}
		alphaX, alphaY := alpha, alpha
		if t == material.BxdfGlossy || t == material.BxdfAnisotropic {
			alphaX, alphaY = anisotropicAlpha(alpha, node.Union6[2])
		}
		u.LobeProbabilities = [4]float32{0, 1, 0, 0}
		u.Specular = bsdf.Specular{AlphaX: alphaX, AlphaY: alphaY, Cspec0: specularity, Ior: ior, Weight: 1}

	case material.BxdfDielectric, material.BxdfRoughDielectric, material.BxdfGlass, material.BxdfRefraction:
		specularity := resolveColor(nodes, node.ValueInputs[0], tex, node.Union1[3], uv, node.Union2.Vec3())
		transmittance := resolveColor(nodes, node.ValueInputs[1], tex, node.Union1[2], uv, node.Union3.Vec3())
		alpha := float32(0.001)
		if t != material.BxdfDielectric {
			alpha = roughnessAt(tex, node, uv)
		}
		u.LobeProbabilities = [4]float32{0, 0, 1, 0}
		u.Transmission = bsdf.Transmission{
			ReflectionAlpha:   alpha,
			TransmissionAlpha: alpha,
			BaseColor:         transmittance,
			Cspec0:            specularity,
			Ior:               ior,
			Weight:            1,
			OnlyRefract:       t == material.BxdfRefraction,
		}

	case material.BxdfTransparent:
		reflectance := resolveColor(nodes, node.ValueInputs[0], tex, node.Union1[3], uv, node.Union2.Vec3())
		u.LobeProbabilities = [4]float32{0, 0, 1, 0}
		u.Transmission = bsdf.Transmission{
			ReflectionAlpha:   0.001,
			TransmissionAlpha: 0.001,
			BaseColor:         reflectance,
			Cspec0:            types.Vec3{},
			Ior:               1,
			Weight:            1,
			OnlyRefract:       true,
		}

	case material.BxdfEmissive, material.BxdfBackground:
		radiance := resolveColor(nodes, node.ValueInputs[0], tex, node.Union1[3], uv, node.Union2.Vec3())
		scale := node.Union4[2]
		u.LobeProbabilities = [4]float32{0, 0, 0, 0}
		u.Emission = radiance.Mul(scale)

	case material.BxdfPrincipled:
		u = principledUber(nodes, node, uv, tex)

	default:
		return neutralUber()
	}

	return u
}

// anisotropicAlpha stretches a roughness value into separate tangent/
// bitangent GGX widths, matching nodes.hpp's BsdfPrincipled aspect term:
// aspect = sqrt(1 - 0.9*anisotropic), alphaX = r^2/aspect, alphaY = r^2*aspect.
func anisotropicAlpha(roughness, anisotropic float32) (alphaX, alphaY float32) {
	anisotropic = saturate(anisotropic)
	aspect := float32(1.0)
	if anisotropic > 0 {
		v := 1 - 0.9*anisotropic
		if v < 0 {
			v = 0
		}
		aspect = float32(math.Sqrt(float64(v)))
	}
	r2 := roughness * roughness
	if aspect <= 1e-4 {
		aspect = 1e-4
	}
	return r2 / aspect, r2 * aspect
}

// principledUber decomposes a Disney/Principled BSDF leaf into the Uber's
// four lobes: Diffuse (with sheen), Specular (anisotropic GGX, Principled's
// specularTint-weighted Cspec0), Transmission (weighted by the transmission
// input) and Clearcoat.
//
// Grounded on
// _examples/original_source/raymond/device/nodes/nodes.hpp's
// BsdfPrincipled::compute().
func principledUber(nodes []scene.MaterialNode, node scene.MaterialNode, uv types.Vec2, tex TextureSampler) bsdf.Uber {
	u := bsdf.Uber{Alpha: 1, AlphaWeight: white, Weight: 1}

	baseColor := resolveColor(nodes, node.ValueInputs[0], tex, node.Union1[3], uv, node.Union2.Vec3())
	roughness := roughnessAt(tex, node, uv)
	ior := node.Union4[0]
	if ior <= 0 {
		ior = 1.45
	}

	metallic := saturate(node.Union6[0])
	specularTint := saturate(node.Union6[1])
	anisotropic := saturate(node.Union6[2])
	sheen := saturate(node.Union6[3])
	sheenTint := saturate(node.Union7[0])
	clearcoat := saturate(node.Union7[1])
	clearcoatRoughness := node.Union7[2]
	transmission := saturate(node.Union7[3])

	diffuseWeight := (1 - metallic) * (1 - transmission)
	specularWeight := 1 - transmission*(1-metallic)
	transmissionWeight := (1 - metallic) * transmission

	lum := meanComponent(baseColor)
	tint := white
	if lum > 0 {
		tint = baseColor.Mul(1 / lum)
	}
	specularColor := lerpVec3(white, tint, specularTint)
	f0 := (ior - 1) / (ior + 1)
	f0 *= f0
	cspec0 := lerpVec3(specularColor.Mul(f0), baseColor, metallic)
	sheenColor := lerpVec3(white, tint, sheenTint)

	alphaX, alphaY := anisotropicAlpha(roughness, anisotropic)

	u.LobeProbabilities = [4]float32{diffuseWeight, specularWeight, transmissionWeight, clearcoat}
	if sum := diffuseWeight + specularWeight + transmissionWeight + clearcoat; sum > 1 {
		for i := range u.LobeProbabilities {
			u.LobeProbabilities[i] /= sum
		}
	}
	u.Diffuse = bsdf.Diffuse{
		DiffuseWeight: baseColor.Mul(diffuseWeight),
		SheenWeight:   sheenColor.Mul(sheen * diffuseWeight),
		Roughness:     roughness,
	}
	u.Specular = bsdf.Specular{AlphaX: alphaX, AlphaY: alphaY, Cspec0: cspec0, Ior: ior, Weight: 1}
	u.Transmission = bsdf.Transmission{
		ReflectionAlpha:   alphaX,
		TransmissionAlpha: alphaX,
		BaseColor:         baseColor,
		Cspec0:            cspec0,
		Ior:               ior,
		Weight:            1,
	}
	u.Clearcoat = bsdf.Clearcoat{Alpha: clearcoatRoughness * clearcoatRoughness, Weight: clearcoat}

	return u
}

func roughnessAt(tex TextureSampler, node scene.MaterialNode, uv types.Vec2) float32 {
	if node.Union5[0] >= 0 && tex != nil {
		return meanComponent(tex.Sample(node.Union5[0], uv))
	}
	return node.Union4[2]
}

func colorOrConst(tex TextureSampler, texIndex int32, uv types.Vec2, fallback types.Vec3) types.Vec3 {
	if texIndex >= 0 && tex != nil {
		return tex.Sample(texIndex, uv)
	}
	return fallback
}

// resolveColor prefers a value-graph child (ColorMix, TexChecker, ...) over
// a baked texture reference over the node's own constant fallback.
func resolveColor(nodes []scene.MaterialNode, valueInput int32, tex TextureSampler, texIndex int32, uv types.Vec2, fallback types.Vec3) types.Vec3 {
	if valueInput >= 0 {
		return evalValue(nodes, valueInput, uv, tex)
	}
	return colorOrConst(tex, texIndex, uv, fallback)
}

func meanComponent(c types.Vec3) float32 {
	return (c[0] + c[1] + c[2]) / 3
}

// evalValue walks a value-producing graph node (ColorMix, Math, TexChecker,
// ...) and returns its result as a color; scalar-valued nodes replicate
// their result across all three channels, matching Cycles' implicit
// float<->color socket coercion. The input "vector" every texture/math node
// samples at is (u, v, 0) -- the surface's UV extended to 3D -- since the
// shading pipeline only threads a 2D UV through to node evaluation rather
// than a full generated/object-space coordinate (documented simplification,
// see DESIGN.md).
func evalValue(nodes []scene.MaterialNode, index int32, uv types.Vec2, tex TextureSampler) types.Vec3 {
	if index < 0 || int(index) >= len(nodes) {
		return types.Vec3{}
	}
	node := nodes[index]
	vector := types.XYZ(uv[0], uv[1], 0)

	valueAt := func(slot int, fallback float32) float32 {
		if node.ValueInputs[slot] >= 0 {
			return meanComponent(evalValue(nodes, node.ValueInputs[slot], uv, tex))
		}
		return fallback
	}
	colorAt := func(slot int, fallback types.Vec3) types.Vec3 {
		if node.ValueInputs[slot] >= 0 {
			return evalValue(nodes, node.ValueInputs[slot], uv, tex)
		}
		return fallback
	}

	switch material.OpType(node.Union1[0]) {
	case material.OpValueConst:
		return node.Union2.Vec3()
	case material.OpTexImage:
		return colorOrConst(tex, node.Union1[3], uv, types.Vec3{})
	case material.OpTexChecker:
		c1 := colorAt(0, node.Union2.Vec3())
		c2 := colorAt(1, node.Union3.Vec3())
		return TexChecker(node.Union6[0], vector, c1, c2)
	case material.OpTexGradient:
		return TexGradient(int(node.Union6[0]), vector)
	case material.OpTexNoise:
		return TexNoise(vector, node.Union6[0], node.Union6[1], node.Union6[2], node.Union6[3])
	case material.OpTexNishita:
		return TexNishita(vector.Normalize(), node.Union6[0], node.Union6[1], node.Union6[2])
	case material.OpTexStub:
		return types.XYZ(0.5, 0.5, 0.5)
	case material.OpColorRamp:
		c0 := colorAt(0, types.Vec3{})
		c1 := colorAt(1, types.Vec3{})
		v := valueAt(2, 0)
		pos0, pos1 := node.Union6[0], node.Union6[1]
		t := float32(0)
		if pos1 != pos0 {
			t = saturate((v - pos0) / (pos1 - pos0))
		} else if v >= pos1 {
			t = 1
		}
		return lerpVec3(c0, c1, t)
	case material.OpColorMix:
		c1 := colorAt(0, node.Union2.Vec3())
		c2 := colorAt(1, node.Union3.Vec3())
		fac := valueAt(2, node.Union4[2])
		return ColorMixBlend(material.ColorBlendType(node.Union6[0]), c1, c2, fac, node.Union6[1] != 0)
	case material.OpMath:
		v0 := valueAt(0, node.Union2[0])
		v1 := valueAt(1, node.Union2[1])
		v2 := valueAt(2, node.Union2[2])
		r := EvalMath(material.MathOp(node.Union6[0]), v0, v1, v2, node.Union6[1] != 0)
		return types.XYZ(r, r, r)
	case material.OpHueSaturation:
		c := colorAt(0, types.Vec3{})
		return HueSaturation(c, node.Union4[0], node.Union4[1], node.Union4[2], node.Union6[0])
	case material.OpBrightnessContrast:
		c := colorAt(0, types.Vec3{})
		return BrightnessContrast(c, node.Union4[0], node.Union4[1])
	case material.OpGamma:
		c := colorAt(0, types.Vec3{})
		return Gamma(c, node.Union4[0])
	case material.OpColorInvert:
		c := colorAt(0, types.Vec3{})
		return ColorInvert(c, node.Union4[0])
	case material.OpMapRange:
		v := valueAt(0, node.Union4[2])
		r := MapRange(v, node.Union2[0], node.Union2[1], node.Union2[2], node.Union2[3], node.Union6[0] != 0)
		return types.XYZ(r, r, r)
	case material.OpFresnel:
		cosTheta := saturate(vector[2])
		r := Fresnel(node.Union4[0], cosTheta)
		return types.XYZ(r, r, r)
	case material.OpLayerWeight:
		cosTheta := saturate(vector[2])
		r := LayerWeight(node.Union4[0], cosTheta)
		return types.XYZ(r, r, r)
	case material.OpBlackbody:
		return Blackbody(node.Union4[0])
	case material.OpMapping:
		return Mapping(vector, node.Union2.Vec3(), node.Union4, node.Union3.Vec3())
	default:
		return types.Vec3{}
	}
}

// applyNormalMap decodes a tangent-space normal map texture (RGB in
// [0,1] -> vector in [-1,1]) and transforms it into world space using an
// arbitrary orthonormal basis built around the unperturbed shading normal.
// Grounded on nodes.hpp's NormalMap node; since this renderer does not carry
// per-vertex UV tangents, the basis is UV-agnostic rather than aligned to
// the texture's U axis (documented simplification, see DESIGN.md).
func applyNormalMap(node scene.MaterialNode, uv types.Vec2, shNormal types.Vec3, tex TextureSampler) types.Vec3 {
	if node.Union1[3] < 0 || tex == nil {
		return shNormal
	}
	encoded := colorOrConst(tex, node.Union1[3], uv, types.XYZ(0.5, 0.5, 1))
	tangentSpace := types.XYZ(encoded[0]*2-1, encoded[1]*2-1, encoded[2]*2-1)

	basis := bsdf.BuildOrthonormalBasis(shNormal)
	world := bsdf.ToWorld(basis, tangentSpace).Normalize()
	if world.Dot(shNormal) < 0 {
		return shNormal
	}
	return world
}

// applyBumpMap perturbs shNormal via a finite-difference height-field
// gradient sampled from a grayscale bump texture, matching the classic bump
// mapping construction (nodes.hpp's Bump node).
func applyBumpMap(node scene.MaterialNode, uv types.Vec2, shNormal types.Vec3, tex TextureSampler) types.Vec3 {
	if node.Union1[3] < 0 || tex == nil {
		return shNormal
	}
	const eps = 1.0 / 512

	h := meanComponent(colorOrConst(tex, node.Union1[3], uv, types.Vec3{}))
	hu := meanComponent(colorOrConst(tex, node.Union1[3], types.XY(uv[0]+eps, uv[1]), types.Vec3{}))
	hv := meanComponent(colorOrConst(tex, node.Union1[3], types.XY(uv[0], uv[1]+eps), types.Vec3{}))

	strength := float32(1.0)
	dhdu := (hu - h) / eps * strength
	dhdv := (hv - h) / eps * strength

	basis := bsdf.BuildOrthonormalBasis(shNormal)
	tu := bsdf.ToWorld(basis, types.XYZ(1, 0, 0))
	tv := bsdf.ToWorld(basis, types.XYZ(0, 1, 0))
	perturbed := shNormal.Sub(tu.Mul(dhdu)).Sub(tv.Mul(dhdv))
	if perturbed.Len() < 1e-6 {
		return shNormal
	}
	return perturbed.Normalize()
}
