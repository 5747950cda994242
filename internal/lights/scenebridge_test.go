package lights

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/rng"
	"github.com/achilleasa/go-pathtrace/types"
)

func TestBuildPoolFromSceneGroupsAreaLightsByMaterial(t *testing.T) {
	sc := &scene.Scene{
		VertexList: []types.Vec4{
			types.XYZ(-1, -1, 2).Vec4(1),
			types.XYZ(1, -1, 2).Vec4(1),
			types.XYZ(0, 1, 2).Vec4(1),
		},
		EmissivePrimitives: []scene.EmissivePrimitive{
			{Transform: types.Ident4(), PrimitiveIndex: 0, MaterialNodeIndex: 7, Type: scene.AreaLight, Area: 2},
		},
	}

	shade := func(shaderIndex int32, position, wo types.Vec3) types.Vec3 {
		return types.XYZ(1, 1, 1)
	}

	pool := BuildPoolFromScene(sc, shade, 4)
	if len(pool.Shape) != 1 {
		t.Fatalf("expected a single mesh-light shape, got %d", len(pool.Shape))
	}
	if pool.Count() != 1 {
		t.Fatalf("expected the pool to report a single light, got %d", pool.Count())
	}

	state := rng.New(1, 0)
	sample := pool.Sample(&state, types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	if sample.Pdf <= 0 {
		t.Fatalf("expected a valid sample from the only mesh light")
	}
}

func TestBuildPoolFromSceneBuildsEnvMap(t *testing.T) {
	sc := &scene.Scene{
		EmissivePrimitives: []scene.EmissivePrimitive{
			{MaterialNodeIndex: 3, Type: scene.EnvironmentLight},
		},
	}
	shade := func(shaderIndex int32, position, wo types.Vec3) types.Vec3 {
		return types.XYZ(2, 2, 2)
	}

	pool := BuildPoolFromScene(sc, shade, 4)
	if pool.Env == nil {
		t.Fatalf("expected an environment map to be built")
	}
	if pool.Env.ShaderIndex != 3 {
		t.Fatalf("expected the env map to carry the global material index")
	}
}
