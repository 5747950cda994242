package shadingctx

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/intersect"
	"github.com/achilleasa/go-pathtrace/types"
)

// buildSingleTriangleScene mirrors internal/intersect's helper: one mesh
// with a single triangle in the XY plane, wrapped in one instance.
func buildSingleTriangleScene(transform types.Mat4) *scene.Scene {
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
		MaterialIndex: []uint32{3},
	}

	leaf := scene.BvhNode{Min: types.XYZ(-1, -1, 0), Max: types.XYZ(1, 1, 0)}
	leaf.SetPrimitives(0, 1)
	sc.BvhNodeList = []scene.BvhNode{leaf}

	sc.MeshInstanceList = []scene.MeshInstance{
		{MeshIndex: 0, BvhRoot: 0, Transform: transform},
	}

	top := scene.BvhNode{Min: types.XYZ(-1, -1, 0), Max: types.XYZ(1, 1, 0)}
	top.SetMeshIndex(0)
	sc.BvhNodeList = append(sc.BvhNodeList, top)

	return sc
}

func TestBuildResolvesCentroidHit(t *testing.T) {
	sc := buildSingleTriangleScene(types.Ident4())

	ray := intersect.Ray{Origin: types.XYZ(0, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-4, TMax: 1e6}
	hit, ok := intersect.Trace(sc, ray)
	if !ok {
		t.Fatalf("expected a hit")
	}

	surface := Build(sc, ray, hit)

	if surface.MaterialNodeIndex != 3 {
		t.Fatalf("expected material node index 3, got %d", surface.MaterialNodeIndex)
	}
	if surface.Position[2] > 1e-3 || surface.Position[2] < -1e-3 {
		t.Fatalf("expected hit position on the z=0 plane, got %v", surface.Position)
	}

	wantNormal := types.XYZ(0, 0, -1)
	if surface.Normal.Dot(wantNormal) < 0.99 {
		t.Fatalf("expected shading normal facing the camera, got %v", surface.Normal)
	}
	if surface.GeoNormal.Dot(wantNormal) < 0.99 {
		t.Fatalf("expected geometric normal facing the camera, got %v", surface.GeoNormal)
	}
	if surface.Wo.Dot(types.XYZ(0, 0, -1)) < 0.99 {
		t.Fatalf("expected Wo to point back toward the ray origin, got %v", surface.Wo)
	}
}

func TestBuildFlipsNormalsForBackfaceHit(t *testing.T) {
	sc := buildSingleTriangleScene(types.Ident4())

	ray := intersect.Ray{Origin: types.XYZ(0, 0, 5), Dir: types.XYZ(0, 0, -1), TMin: 1e-4, TMax: 1e6}
	hit, ok := intersect.Trace(sc, ray)
	if !ok {
		t.Fatalf("expected a hit from the back side")
	}

	surface := Build(sc, ray, hit)

	if surface.GeoNormal.Dot(surface.Wo) < 0 {
		t.Fatalf("expected the geometric normal to be flipped toward the viewer, got normal=%v wo=%v", surface.GeoNormal, surface.Wo)
	}
}

func TestBuildTransformsNormalByInstanceTransform(t *testing.T) {
	// A self-inverse, symmetric axis swap (X<->Z): since Transform stores
	// the instance's world-to-local matrix, transpose(Transform) applied
	// to the local normal gives the world normal. Using an involution
	// here sidesteps any forward/inverse sign ambiguity while still
	// proving the transform is actually applied.
	swapXZ := types.Mat4{
		0, 0, 1, 0,
		0, 1, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 1,
	}
	sc := buildSingleTriangleScene(swapXZ)

	ray := intersect.Ray{Origin: types.XYZ(-5, 0, 0), Dir: types.XYZ(1, 0, 0), TMin: 1e-4, TMax: 1e6}
	hit, ok := intersect.Trace(sc, ray)
	if !ok {
		t.Fatalf("expected the axis-swapped triangle to still be hit")
	}

	surface := Build(sc, ray, hit)

	if surface.GeoNormal.Dot(types.XYZ(1, 0, 0)) < 0.9 && surface.GeoNormal.Dot(types.XYZ(-1, 0, 0)) < 0.9 {
		t.Fatalf("expected the swapped triangle's normal to now lie along X, got %v", surface.GeoNormal)
	}
}

func TestEnsureValidReflectionClampsGrazingNormals(t *testing.T) {
	geoNormal := types.XYZ(0, 0, 1)
	wo := types.XYZ(0.99, 0, 0.01).Normalize()

	// A shading normal tilted far enough that the mirror reflection of wo
	// would dip below the geometric hemisphere.
	shNormal := types.XYZ(0.9, 0, 0.1).Normalize()

	adjusted := EnsureValidReflection(geoNormal, shNormal, wo)

	reflected := adjusted.Mul(2 * adjusted.Dot(wo)).Sub(wo)
	if reflected.Dot(geoNormal) < 0 {
		t.Fatalf("expected the adjusted normal to keep the reflection above the geometric hemisphere, got reflected=%v", reflected)
	}
}
