package renderer

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/material"
	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/tonemap"
	"github.com/achilleasa/go-pathtrace/tracer"
	"github.com/achilleasa/go-pathtrace/types"
)

// buildLitScene constructs a floor triangle lit by an overhead emissive
// triangle, viewed by a camera looking straight down.
func buildLitScene() *scene.Scene {
	floorV0 := types.XYZ(-5, -1, -5)
	floorV1 := types.XYZ(5, -1, -5)
	floorV2 := types.XYZ(0, -1, 5)

	lightV0 := types.XYZ(-1, 3, -1)
	lightV1 := types.XYZ(1, 3, -1)
	lightV2 := types.XYZ(0, 3, 1)

	sc := &scene.Scene{
		VertexList: []types.Vec4{
			floorV0.Vec4(1), floorV1.Vec4(1), floorV2.Vec4(1),
			lightV0.Vec4(1), lightV1.Vec4(1), lightV2.Vec4(1),
		},
		NormalList: []types.Vec4{
			types.XYZ(0, 1, 0).Vec4(0), types.XYZ(0, 1, 0).Vec4(0), types.XYZ(0, 1, 0).Vec4(0),
			types.XYZ(0, -1, 0).Vec4(0), types.XYZ(0, -1, 0).Vec4(0), types.XYZ(0, -1, 0).Vec4(0),
		},
		UvList: []types.Vec2{
			types.XY(0, 0), types.XY(1, 0), types.XY(0, 1),
			types.XY(0, 0), types.XY(1, 0), types.XY(0, 1),
		},
		MaterialIndex: []uint32{0, 1},
		MaterialNodeList: []scene.MaterialNode{
			{
				Union1: [4]int32{int32(material.BxdfDiffuse), -1, -1, -1},
				Union2: types.XYZ(0.8, 0.8, 0.8).Vec4(0),
				Union5: [1]int32{-1},
			},
			{
				Union1: [4]int32{int32(material.BxdfEmissive), -1, -1, -1},
				Union2: types.XYZ(10, 10, 10).Vec4(0),
				Union4: types.Vec3{0, 0, 1},
				Union5: [1]int32{-1},
			},
		},
		EmissivePrimitives: []scene.EmissivePrimitive{
			{Transform: types.Ident4(), PrimitiveIndex: 1, MaterialNodeIndex: 1, Type: scene.AreaLight, Area: 2},
		},
		SceneDiffuseMatIndex:  -1,
		SceneEmissiveMatIndex: -1,
	}

	floorLeaf := scene.BvhNode{Min: types.XYZ(-5, -1, -5), Max: types.XYZ(5, -1, 5)}
	floorLeaf.SetPrimitives(0, 1)
	lightLeaf := scene.BvhNode{Min: types.XYZ(-1, 3, -1), Max: types.XYZ(1, 3, 1)}
	lightLeaf.SetPrimitives(1, 1)

	meshRoot := scene.BvhNode{Min: types.XYZ(-5, -1, -5), Max: types.XYZ(5, 3, 5)}
	meshRoot.SetChildNodes(1, 2)

	sc.BvhNodeList = []scene.BvhNode{meshRoot, floorLeaf, lightLeaf}

	sc.MeshInstanceList = []scene.MeshInstance{
		{MeshIndex: 0, BvhRoot: 0, Transform: types.Ident4()},
	}

	top := scene.BvhNode{Min: types.XYZ(-5, -1, -5), Max: types.XYZ(5, 3, 5)}
	top.SetMeshIndex(0)
	sc.BvhNodeList = append(sc.BvhNodeList, top)

	cam := scene.NewCamera(60)
	cam.Position = types.XYZ(0, 5, 0)
	cam.LookAt = types.XYZ(0, -1, 0)
	cam.Up = types.XYZ(0, 0, -1)
	cam.Update()
	sc.Camera = cam

	return sc
}

func TestNewHeadlessRejectsMissingSceneOrCamera(t *testing.T) {
	if _, err := NewHeadless(nil, tracer.NewPerfectScheduler(), Options{}, tonemap.Linear); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined, got %v", err)
	}

	if _, err := NewHeadless(&scene.Scene{}, tracer.NewPerfectScheduler(), Options{}, tonemap.Linear); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined, got %v", err)
	}
}

func TestHeadlessRenderProducesLitFrame(t *testing.T) {
	sc := buildLitScene()

	opts := Options{
		FrameW:          8,
		FrameH:          8,
		NumBounces:      2,
		MinBouncesForRR: 8,
		SamplesPerPixel: 8,
		Exposure:        0,
	}

	r, err := NewHeadless(sc, tracer.NewPerfectScheduler(), opts, tonemap.Reinhard)
	if err != nil {
		t.Fatalf("NewHeadless failed: %v", err)
	}
	defer r.Close()

	if err := r.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	stats := r.Stats()
	if len(stats.Tracers) == 0 {
		t.Fatalf("expected at least one tracer stat after rendering")
	}

	img := r.Frame()
	lit := false
	for _, px := range img.Pix {
		if px > 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatalf("expected a lit floor to produce a non-black frame")
	}
}

func TestHeadlessRenderFailsWithoutTracers(t *testing.T) {
	r := &Headless{stats: FrameStats{}}
	if err := r.Render(); err != ErrNoTracers {
		t.Fatalf("expected ErrNoTracers, got %v", err)
	}
}
