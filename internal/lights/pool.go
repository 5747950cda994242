package lights

import (
	"github.com/achilleasa/go-pathtrace/internal/rng"
	"github.com/achilleasa/go-pathtrace/types"
)

// envDistance stands in for +Inf when shading an environment-map shadow ray;
// the wavefront tracer treats any distance past the scene's bounding radius
// as an escape.
const envDistance = 1e30

// Emitter resolves a light-hit's shader emission for MIS-weighted shadow
// rays; it is supplied by the shading-graph evaluator so that this package
// stays independent of the node DAG (C8).
type Emitter func(shaderIndex int32, position, wo types.Vec3) types.Vec3

// Pool dispatches NEE samples uniformly across every registered light
// (environment map, area, point, sun, spot and shape), applying a survival
// roulette pass to cull low-contribution samples cheaply.
//
// Grounded on _examples/original_source/raymond/device/lights/Lights.hpp.
type Pool struct {
	Env    *EnvMap
	Area   []Area
	Point  []Point
	Sun    []Sun
	Spot   []Spot
	Shape  []*Shape

	Shade Emitter

	// shapeIndexByMaterial maps an emissive material node index to the
	// Shape built from its triangles, so that a ray that hits a mesh
	// light directly (rather than through NEE) can look up the matching
	// light pdf for MIS.
	shapeIndexByMaterial map[int32]int
}

// ShapeIndexForMaterial returns the Shape index a BSDF-sampled ray landed
// on, given the material node index of the triangle it hit.
func (p *Pool) ShapeIndexForMaterial(materialNodeIndex int32) (int, bool) {
	if p.shapeIndexByMaterial == nil {
		return 0, false
	}
	idx, ok := p.shapeIndexByMaterial[materialNodeIndex]
	return idx, ok
}

// Count returns the total number of light sources, including the
// environment map when present.
func (p *Pool) Count() int {
	n := len(p.Area) + len(p.Point) + len(p.Sun) + len(p.Spot) + len(p.Shape)
	if p.Env != nil {
		n++
	}
	return n
}

// EnvmapPdf returns the MIS-counterpart PDF a BSDF sample toward wo would
// have been assigned by this pool's uniform-over-lights dispatch.
func (p *Pool) EnvmapPdf(wo types.Vec3) float32 {
	n := p.Count()
	if n == 0 || p.Env == nil {
		return 0
	}
	return p.Env.Pdf(wo) / float32(n)
}

// ShapePdf mirrors EnvmapPdf for a mesh-light instance hit directly by a
// BSDF-sampled ray.
func (p *Pool) ShapePdf(shapeIndex int, distance, cosTheta float32) float32 {
	n := p.Count()
	if n == 0 || shapeIndex >= len(p.Shape) {
		return 0
	}
	return p.Shape[shapeIndex].Pdf(distance, cosTheta) / float32(n)
}

// Sample draws one light uniformly, samples it, shades its emission through
// Shade, and applies the pool-wide MIS rescale (x numLightsTotal) and
// survival roulette.
func (p *Pool) Sample(state *rng.State, position, wo types.Vec3) Sample {
	n := p.Count()
	if n == 0 {
		return InvalidSample()
	}

	selected := state.SampleInt(n)
	rnd2 := state.Sample2()
	rndUV := types.XY(rnd2[0], rnd2[1])

	var sample Sample
	switch {
	case p.Env != nil && selected == 0:
		dir, pdf := p.Env.Sample(rndUV)
		if pdf <= 0 {
			return InvalidSample()
		}
		sample = Sample{
			IsLight:      true,
			ShaderIndex:  p.Env.ShaderIndex,
			CanBeHit:     true,
			CastsShadows: true,
			Direction:    dir,
			Distance:     envDistance,
			Pdf:          pdf,
			Weight:       types.XYZ(1/pdf, 1/pdf, 1/pdf),
		}
	default:
		idx := selected
		if p.Env != nil {
			idx--
		}
		switch {
		case idx < len(p.Area):
			sample = p.Area[idx].Sample(rndUV, position)
		case idx-len(p.Area) < len(p.Point):
			sample = p.Point[idx-len(p.Area)].Sample(rndUV, position)
		case idx-len(p.Area)-len(p.Point) < len(p.Sun):
			sample = p.Sun[idx-len(p.Area)-len(p.Point)].Sample(rndUV, position)
		case idx-len(p.Area)-len(p.Point)-len(p.Sun) < len(p.Spot):
			sample = p.Spot[idx-len(p.Area)-len(p.Point)-len(p.Sun)].Sample(rndUV, position)
		case idx-len(p.Area)-len(p.Point)-len(p.Sun)-len(p.Spot) < len(p.Shape):
			shapeIdx := idx - len(p.Area) - len(p.Point) - len(p.Sun) - len(p.Spot)
			sample = p.Shape[shapeIdx].Sample(rndUV, state.Sample1(), position)
		default:
			return InvalidSample()
		}
	}

	if sample.Pdf <= 0 {
		return InvalidSample()
	}

	if p.Shade != nil && (sample.Weight != types.Vec3{}) {
		emission := p.Shade(sample.ShaderIndex, position.Add(sample.Direction.Mul(sample.Distance)), sample.Direction.Mul(-1))
		sample.Weight = sample.Weight.MulVec3(emission)
	}

	nf := float32(n)
	sample.Weight = sample.Weight.Mul(nf)
	sample.Pdf /= nf

	survival := clampUnit(4 * mean(sample.Weight))
	if survival < 1 {
		if state.Sample1() < survival {
			sample.Weight = sample.Weight.Mul(1 / survival)
		} else {
			sample.Weight = types.Vec3{}
		}
	}

	return sample
}

func mean(c types.Vec3) float32 {
	return (c[0] + c[1] + c[2]) / 3
}

func clampUnit(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
