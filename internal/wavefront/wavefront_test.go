package wavefront

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/material"
	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/lights"
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
	cam.SetupProjection(1)
	cam.Update()
	sc.Camera = cam

	return sc
}

func TestEnqueueProducesNonZeroRadianceUnderDirectLight(t *testing.T) {
	sc := buildLitScene()
	pool := lights.BuildPoolFromScene(sc, func(shaderIndex int32, position, wo types.Vec3) types.Vec3 {
		return types.XYZ(10, 10, 10)
	}, 4)

	tr := New("cpu-0", sc, pool, nil, Params{NumBounces: 2, MinBouncesForRR: 8}, 1)

	const w, h = 8, 8
	accum := make([]float32, w*h*3)
	frame := make([]uint8, w*h*3)
	if err := tr.Setup(w, h, accum, frame); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	done := make(chan uint32, 1)
	errCh := make(chan error, 1)
	tr.Enqueue(tracer.BlockRequest{
		BlockY:          0,
		BlockH:          h,
		SamplesPerPixel: 8,
		Exposure:        0,
		Seed:            42,
		DoneChan:        done,
		ErrChan:         errCh,
	})

	select {
	case err := <-errCh:
		t.Fatalf("unexpected tracer error: %v", err)
	case <-done:
	}

	sum := float32(0)
	for _, v := range accum {
		sum += v
	}
	if sum <= 0 {
		t.Fatalf("expected a lit floor to accumulate non-zero radiance, got sum=%v", sum)
	}
}

func TestSpeedEstimateIsPositive(t *testing.T) {
	tr := New("cpu-0", &scene.Scene{}, &lights.Pool{}, nil, Params{}, 0)
	if tr.SpeedEstimate() <= 0 {
		t.Fatalf("expected a positive speed estimate")
	}
}
