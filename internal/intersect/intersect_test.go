package intersect

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

// buildSingleTriangleScene constructs the smallest possible two-level BVH
// scene: one mesh with a single triangle in the XY plane, wrapped in one
// identity-transformed instance.
func buildSingleTriangleScene() *scene.Scene {
	v0 := types.XYZ(-1, -1, 0)
	v1 := types.XYZ(1, -1, 0)
	v2 := types.XYZ(0, 1, 0)

	sc := &scene.Scene{
		VertexList: []types.Vec4{v0.Vec4(1), v1.Vec4(1), v2.Vec4(1)},
		NormalList: []types.Vec4{
			types.XYZ(0, 0, 1).Vec4(0),
			types.XYZ(0, 0, 1).Vec4(0),
			types.XYZ(0, 0, 1).Vec4(0),
		},
		UvList:        []types.Vec2{types.XY(0, 0), types.XY(1, 0), types.XY(0, 1)},
		MaterialIndex: []uint32{0},
	}

	leaf := scene.BvhNode{Min: types.XYZ(-1, -1, 0), Max: types.XYZ(1, 1, 0)}
	leaf.SetPrimitives(0, 1)
	sc.BvhNodeList = []scene.BvhNode{leaf}

	sc.MeshInstanceList = []scene.MeshInstance{
		{MeshIndex: 0, BvhRoot: 0, Transform: types.Ident4()},
	}

	top := scene.BvhNode{Min: types.XYZ(-1, -1, 0), Max: types.XYZ(1, 1, 0)}
	top.SetMeshIndex(0)
	sc.BvhNodeList = append(sc.BvhNodeList, top)

	return sc
}

func TestTraceHitsTriangle(t *testing.T) {
	sc := buildSingleTriangleScene()

	ray := Ray{Origin: types.XYZ(0, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-4, TMax: 1e6}
	hit, ok := Trace(sc, ray)
	if !ok {
		t.Fatalf("expected ray through the triangle centroid to hit")
	}
	if hit.Distance < 4.9 || hit.Distance > 5.1 {
		t.Fatalf("unexpected hit distance: %v", hit.Distance)
	}
	if hit.MeshInstanceIndex != 0 || hit.PrimitiveIndex != 0 {
		t.Fatalf("unexpected hit indices: %+v", hit)
	}
}

func TestTraceMissesOutsideTriangle(t *testing.T) {
	sc := buildSingleTriangleScene()

	ray := Ray{Origin: types.XYZ(5, 5, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-4, TMax: 1e6}
	_, ok := Trace(sc, ray)
	if ok {
		t.Fatalf("expected a ray outside the triangle's bounds to miss")
	}
}

func TestAnyHitStopsAtFirstOccluder(t *testing.T) {
	sc := buildSingleTriangleScene()

	ray := Ray{Origin: types.XYZ(0, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-4, TMax: 1e6}
	if !AnyHit(sc, ray) {
		t.Fatalf("expected shadow ray through the triangle to report an occluder")
	}
}

func TestTraceRespectsTMax(t *testing.T) {
	sc := buildSingleTriangleScene()

	ray := Ray{Origin: types.XYZ(0, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-4, TMax: 4}
	_, ok := Trace(sc, ray)
	if ok {
		t.Fatalf("expected a ray whose TMax falls short of the triangle to miss")
	}
}
