// Package wavefront implements the CPU path tracer (C13): a
// goroutine-parallel driver over internal/intersect, internal/shadingctx,
// internal/shading, internal/bsdf and internal/lights that satisfies the
// generation-agnostic tracer.Tracer interface.
//
// Rays are carried between bounces as a compacted generation buffer
// (raybuffer.go's rayGeneration) rather than recursion: each bounce traces
// and shades an entire generation, enqueues its next-event-estimation
// occlusion tests into a shared shadowGeneration instead of testing them
// inline, then traces that shadow generation in one bulk any-hit pass before
// the next bounce's generation is swapped in. Compaction -- dropping rays
// that missed, terminated on a zero-pdf BSDF sample or lost Russian
// roulette -- falls out of shadeRay simply not pushing a continuation ray,
// the same fetch_add append idiom rayGeneration.push uses throughout.
//
// Grounded on _examples/original_source/raymond/device/Integrator.hpp for
// the bounce loop shape (NEE + MIS + Russian roulette) and on the teacher's
// wavefront kernel pipeline (tracer/opencl/pipeline.go) for the per-stage
// "intersect, shade, accumulate" dispatch this package reproduces across
// goroutines instead of GPU kernel invocations.
package wavefront

import (
	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/bsdf"
	"github.com/achilleasa/go-pathtrace/internal/film"
	"github.com/achilleasa/go-pathtrace/internal/intersect"
	"github.com/achilleasa/go-pathtrace/internal/lights"
	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/internal/rng"
	"github.com/achilleasa/go-pathtrace/internal/sampling"
	"github.com/achilleasa/go-pathtrace/internal/shading"
	"github.com/achilleasa/go-pathtrace/internal/shadingctx"
	"github.com/achilleasa/go-pathtrace/types"
)

// Params bundles the per-render knobs an integrator call needs beyond the
// scene/camera/light data itself.
type Params struct {
	NumBounces      uint32
	MinBouncesForRR uint32
}

const maxRayDistance = 1e27

// shadeRay runs one bounce's trace+shade stage for a single in-flight path
// ray: it intersects the scene, deposits any emission/environment
// contribution straight into buf (each pixel carries at most one ray per
// generation, so this is the disjoint-pixel fast path), defers the NEE
// occlusion test by pushing a ShadowRay into shadow rather than tracing it
// inline, and -- if the path survives BSDF sampling and Russian roulette --
// pushes the bounce's continuation ray into next for the following
// generation. This is the per-ray body integrator.go's old recursive
// tracePath inlined into a single bounce, so the driver in wavefront.go can
// batch it across an entire generation between trace/shadow passes.
func shadeRay(sc *scene.Scene, pool *lights.Pool, tex shading.TextureSampler, params Params, buf *film.Buffer, pr PathRay, bounce uint32, shadow *shadowGeneration, next *rayGeneration) {
	hit, ok := intersect.Trace(sc, pr.Ray)
	if !ok {
		if pool.Env != nil {
			emission := evalEnvironment(sc, tex, pool, pr.Ray.Dir)
			weight := float32(1)
			if !pr.PrevSpecular {
				lightPdf := pool.EnvmapPdf(pr.Ray.Dir)
				weight = powerHeuristic(pr.PrevPdf, lightPdf)
			}
			buf.Accumulate(pr.PixelX, pr.PixelY, pr.Throughput.MulVec3(emission).Mul(weight))
		}
		return
	}

	surface := shadingctx.Build(sc, pr.Ray, hit)
	rndX := pr.State.Sample1()
	material := shading.EvaluateSurface(sc.MaterialNodeList, surface.MaterialNodeIndex, surface.UV, surface.Normal, surface.GeoNormal, pr.Ray.Dir.Mul(-1), &rndX, tex)

	if material.Emission != (types.Vec3{}) {
		weight := float32(1)
		if !pr.PrevSpecular {
			if shapeIdx, ok := pool.ShapeIndexForMaterial(surface.MaterialNodeIndex); ok {
				cosTheta := surface.GeoNormal.Dot(pr.Ray.Dir.Mul(-1))
				lightPdf := pool.ShapePdf(shapeIdx, hit.Distance, cosTheta)
				weight = powerHeuristic(pr.PrevPdf, lightPdf)
			}
		}
		buf.Accumulate(pr.PixelX, pr.PixelY, pr.Throughput.MulVec3(material.Emission).Mul(weight))
	}

	if !material.IsDelta() {
		contribution, shadowRay, castsShadows, ok := directLightSample(pool, pr.State, surface, material, pr.Ray.Dir.Mul(-1))
		if ok {
			contribution = pr.Throughput.MulVec3(contribution)
			if castsShadows {
				shadow.push(ShadowRay{Ray: shadowRay, Contribution: contribution, PixelX: pr.PixelX, PixelY: pr.PixelY})
			} else {
				buf.AccumulateSynchronized(pr.PixelX, pr.PixelY, contribution)
			}
		}
	}

	rnd := pr.State.Sample3()
	sample := material.Sample(rnd, pr.Ray.Dir.Mul(-1), material.Normal, surface.GeoNormal, pr.Flags)
	if sample.Pdf <= 0 || (sample.Weight == types.Vec3{}) {
		return
	}

	throughput := pr.Throughput.MulVec3(sample.Weight)
	if bounce >= params.MinBouncesForRR {
		survival := russianRouletteProbability(throughput)
		if pr.State.Sample1() >= survival {
			return
		}
		throughput = throughput.Mul(1 / survival)
	}

	next.push(PathRay{
		Ray: intersect.Ray{
			Origin: offsetOrigin(surface.Position, surface.GeoNormal, sample.Wi),
			Dir:    sample.Wi,
			TMin:   1e-4,
			TMax:   maxRayDistance,
		},
		Throughput:   throughput,
		PrevPdf:      sample.Pdf,
		PrevSpecular: sample.Flags.Has(raykind.Singular),
		Flags:        sample.Flags,
		PixelX:       pr.PixelX,
		PixelY:       pr.PixelY,
		State:        pr.State,
	})
}

// directLightSample draws one NEE sample from the light pool and evaluates
// the material's response toward it, but defers the shadow-ray occlusion
// test to the driver's later bulk any-hit pass instead of tracing it inline:
// ok reports whether there is a contribution to deposit at all, and
// castsShadows reports whether it must first survive the shadow ray in
// shadowRay (ok && !castsShadows covers lights like Sun/distant fill that
// contribute without ever being occluded).
func directLightSample(pool *lights.Pool, state *rng.State, surface shadingctx.Surface, material bsdf.Uber, wo types.Vec3) (contribution types.Vec3, shadowRay intersect.Ray, castsShadows bool, ok bool) {
	if pool.Count() == 0 {
		return types.Vec3{}, intersect.Ray{}, false, false
	}

	sample := pool.Sample(state, surface.Position, wo)
	if !sample.IsLight || sample.Pdf <= 0 || (sample.Weight == types.Vec3{}) {
		return types.Vec3{}, intersect.Ray{}, false, false
	}

	value, bsdfPdf := material.Evaluate(wo, sample.Direction, material.Normal, surface.GeoNormal)
	if (value == types.Vec3{}) {
		return types.Vec3{}, intersect.Ray{}, false, false
	}

	weight := float32(1)
	if sample.CanBeHit {
		weight = powerHeuristic(sample.Pdf, bsdfPdf)
	}
	contribution = value.MulVec3(sample.Weight).Mul(weight)

	if !sample.CastsShadows {
		return contribution, intersect.Ray{}, false, true
	}

	shadowRay = intersect.Ray{
		Origin: offsetOrigin(surface.Position, surface.GeoNormal, sample.Direction),
		Dir:    sample.Direction,
		TMin:   1e-4,
		TMax:   sample.Distance * 0.999,
	}
	return contribution, shadowRay, true, true
}

func evalEnvironment(sc *scene.Scene, tex shading.TextureSampler, pool *lights.Pool, dir types.Vec3) types.Vec3 {
	if sc.SceneEmissiveMatIndex < 0 {
		return types.Vec3{}
	}
	uv := sampling.EquirectSphereToSquare(dir)
	material := shading.Evaluate(sc.MaterialNodeList, sc.SceneEmissiveMatIndex, uv, nil, tex)
	return material.Emission
}

// offsetOrigin nudges a new ray's origin off the surface along the
// geometric normal (oriented toward the outgoing direction) to avoid
// self-intersection from floating point error.
func offsetOrigin(position, geoNormal, dir types.Vec3) types.Vec3 {
	const epsilon = 1e-3
	n := geoNormal
	if n.Dot(dir) < 0 {
		n = n.Mul(-1)
	}
	return position.Add(n.Mul(epsilon))
}

// russianRouletteProbability clamps the path's continuation probability to
// the throughput's maximum channel, matching the teacher's survival-roulette
// approach in internal/lights.Pool.Sample.
func russianRouletteProbability(throughput types.Vec3) float32 {
	p := throughput[0]
	if throughput[1] > p {
		p = throughput[1]
	}
	if throughput[2] > p {
		p = throughput[2]
	}
	if p > 0.95 {
		p = 0.95
	}
	if p < 0.05 {
		p = 0.05
	}
	return p
}

// powerHeuristic is the Veach beta=2 power heuristic used to combine BSDF-
// and light-sampling PDFs for multiple importance sampling.
func powerHeuristic(pdfA, pdfB float32) float32 {
	if pdfA <= 0 {
		return 0
	}
	a := pdfA * pdfA
	b := pdfB * pdfB
	if a+b <= 0 {
		return 0
	}
	return a / (a + b)
}
