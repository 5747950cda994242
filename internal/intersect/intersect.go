// Package intersect implements ray-scene intersection against the
// two-level BVH asset/scene.Scene stores: a top-level tree over mesh
// instances, and one bottom-level tree per mesh shared by all of its
// instances. No Go-side traversal existed anywhere in the retrieved source
// tree (only the host-side SAH builder in asset/compiler/bvh did); this
// package is a from-scratch CPU walk of that same node encoding, grounded on
// the node layout documented in asset/scene/optimized_scene.go.
package intersect

import (
	"math"

	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

// Ray is a world-space ray segment; TMin/TMax bound the search distance.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	TMin   float32
	TMax   float32
}

// Hit describes the closest intersection found along a ray.
type Hit struct {
	Distance          float32
	MeshInstanceIndex uint32
	PrimitiveIndex    uint32
	U, V              float32
}

const maxStackDepth = 64

// aabbHit returns whether ray enters the box [min,max] before tMax and
// updates the candidate entry distance; it implements the standard slab
// test against a pre-inverted ray direction.
func aabbHit(min, max, invDir, origin types.Vec3, tMax float32) (float32, bool) {
	t1 := (min[0] - origin[0]) * invDir[0]
	t2 := (max[0] - origin[0]) * invDir[0]
	tmin, tmax := minMax(t1, t2)

	t1 = (min[1] - origin[1]) * invDir[1]
	t2 = (max[1] - origin[1]) * invDir[1]
	lo, hi := minMax(t1, t2)
	tmin = fmax(tmin, lo)
	tmax = fmin(tmax, hi)

	t1 = (min[2] - origin[2]) * invDir[2]
	t2 = (max[2] - origin[2]) * invDir[2]
	lo, hi = minMax(t1, t2)
	tmin = fmax(tmin, lo)
	tmax = fmin(tmax, hi)

	if tmax < 0 || tmin > tmax || tmin > tMax {
		return 0, false
	}
	return tmin, true
}

func minMax(a, b float32) (float32, float32) {
	if a > b {
		return b, a
	}
	return a, b
}

func fmin(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func invVec3(v types.Vec3) types.Vec3 {
	inv := func(x float32) float32 {
		if x == 0 {
			return float32(math.Inf(1))
		}
		return 1 / x
	}
	return types.XYZ(inv(v[0]), inv(v[1]), inv(v[2]))
}

// intersectTriangle performs a Moller-Trumbore ray-triangle test.
func intersectTriangle(ray Ray, v0, v1, v2 types.Vec3) (dist, u, v float32, ok bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	pvec := ray.Dir.Cross(e2)
	det := e1.Dot(pvec)
	if det > -1e-8 && det < 1e-8 {
		return 0, 0, 0, false
	}
	invDet := 1 / det

	tvec := ray.Origin.Sub(v0)
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(e1)
	v = ray.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	dist = e2.Dot(qvec) * invDet
	if dist < ray.TMin || dist > ray.TMax {
		return 0, 0, 0, false
	}
	return dist, u, v, true
}

// intersectMeshBVH walks the bottom-level BVH tree for a single mesh (in
// the mesh instance's local space), starting at rootIndex, and returns the
// closest triangle hit.
func intersectMeshBVH(sc *scene.Scene, rootIndex uint32, ray Ray, anyHit bool) (Hit, bool) {
	var best Hit
	found := false
	closest := ray.TMax

	invDir := invVec3(ray.Dir)

	var stack [maxStackDepth]uint32
	sp := 0
	stack[sp] = rootIndex
	sp++

	for sp > 0 {
		sp--
		node := &sc.BvhNodeList[stack[sp]]

		if _, hit := aabbHit(node.Min, node.Max, invDir, ray.Origin, closest); !hit {
			continue
		}

		if node.LData <= 0 {
			first, count := node.GetPrimitives()
			for i := uint32(0); i < count; i++ {
				primIndex := first + i
				v0 := sc.VertexList[primIndex*3+0].Vec3()
				v1 := sc.VertexList[primIndex*3+1].Vec3()
				v2 := sc.VertexList[primIndex*3+2].Vec3()

				dist, u, v, ok := intersectTriangle(Ray{Origin: ray.Origin, Dir: ray.Dir, TMin: ray.TMin, TMax: closest}, v0, v1, v2)
				if !ok {
					continue
				}
				if anyHit {
					return Hit{Distance: dist, PrimitiveIndex: primIndex, U: u, V: v}, true
				}
				closest = dist
				best = Hit{Distance: dist, PrimitiveIndex: primIndex, U: u, V: v}
				found = true
			}
			continue
		}

		if sp+2 > maxStackDepth {
			continue
		}
		stack[sp] = uint32(node.LData)
		sp++
		stack[sp] = uint32(node.RData)
		sp++
	}

	return best, found
}

// Trace finds the closest scene intersection along ray, transforming it
// into each candidate mesh instance's local space before descending into
// the instance's bottom-level BVH.
func Trace(sc *scene.Scene, ray Ray) (Hit, bool) {
	return walkTopLevel(sc, ray, false)
}

// AnyHit performs an occlusion (shadow ray) test: it returns true as soon as
// any triangle blocks the ray before ray.TMax, without searching for the
// closest hit.
func AnyHit(sc *scene.Scene, ray Ray) bool {
	_, hit := walkTopLevel(sc, ray, true)
	return hit
}

func walkTopLevel(sc *scene.Scene, ray Ray, anyHit bool) (Hit, bool) {
	if len(sc.BvhNodeList) == 0 {
		return Hit{}, false
	}

	var best Hit
	found := false
	closest := ray.TMax

	invDir := invVec3(ray.Dir)

	var stack [maxStackDepth]uint32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		node := &sc.BvhNodeList[stack[sp]]

		if _, hit := aabbHit(node.Min, node.Max, invDir, ray.Origin, closest); !hit {
			continue
		}

		if node.LData <= 0 {
			instIndex := node.GetMeshIndex()
			mi := &sc.MeshInstanceList[instIndex]

			localOrigin := mi.Transform.MulPoint(ray.Origin)
			localDir := mi.Transform.MulDir(ray.Dir)

			localRay := Ray{Origin: localOrigin, Dir: localDir, TMin: ray.TMin, TMax: closest}
			hit, ok := intersectMeshBVH(sc, mi.BvhRoot, localRay, anyHit)
			if !ok {
				continue
			}
			if anyHit {
				return Hit{MeshInstanceIndex: instIndex, PrimitiveIndex: hit.PrimitiveIndex, Distance: hit.Distance, U: hit.U, V: hit.V}, true
			}
			closest = hit.Distance
			best = Hit{MeshInstanceIndex: instIndex, PrimitiveIndex: hit.PrimitiveIndex, Distance: hit.Distance, U: hit.U, V: hit.V}
			found = true
			continue
		}

		if sp+2 > maxStackDepth {
			continue
		}
		stack[sp] = uint32(node.LData)
		sp++
		stack[sp] = uint32(node.RData)
		sp++
	}

	return best, found
}
