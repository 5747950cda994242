package lights

import (
	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/sampling"
	"github.com/achilleasa/go-pathtrace/types"
)

// BuildPoolFromScene groups a compiled scene's emissive primitives into the
// runtime light types Pool.Sample dispatches across: one Shape per distinct
// mesh-light material (C18), plus a single EnvMap entry for the scene's
// global environment light, when present.
//
// Grounded on asset/compiler/compiler.go's emissive-primitive generation
// pass (partitionGeometry), which is the producer of sc.EmissivePrimitives.
func BuildPoolFromScene(sc *scene.Scene, shade Emitter, envResolution int) *Pool {
	pool := &Pool{Shade: shade}

	byMaterial := map[uint32][]Triangle{}
	var materialOrder []uint32

	for _, emp := range sc.EmissivePrimitives {
		switch emp.Type {
		case scene.AreaLight:
			tri := worldTriangle(sc, emp)
			if _, seen := byMaterial[emp.MaterialNodeIndex]; !seen {
				materialOrder = append(materialOrder, emp.MaterialNodeIndex)
			}
			byMaterial[emp.MaterialNodeIndex] = append(byMaterial[emp.MaterialNodeIndex], tri)

		case scene.EnvironmentLight:
			pool.Env = BuildEnvMap(int32(emp.MaterialNodeIndex), envResolution, func(x, y int) types.Vec3 {
				dir := sampling2Sphere(x, y, envResolution)
				if shade == nil {
					return types.Vec3{}
				}
				return shade(int32(emp.MaterialNodeIndex), types.Vec3{}, dir)
			})
		}
	}

	pool.shapeIndexByMaterial = make(map[int32]int, len(materialOrder))
	for _, matIndex := range materialOrder {
		shape := BuildShape(Info{ShaderIndex: int32(matIndex), UsesMIS: true, CastsShadows: true}, byMaterial[matIndex])
		pool.shapeIndexByMaterial[int32(matIndex)] = len(pool.Shape)
		pool.Shape = append(pool.Shape, shape)
	}

	return pool
}

// worldTriangle resolves an emissive primitive's triangle vertices from the
// scene's flattened vertex list and bakes in the primitive's own transform
// (already instance-relative, see compiler.go's partitionGeometry).
func worldTriangle(sc *scene.Scene, emp scene.EmissivePrimitive) Triangle {
	base := emp.PrimitiveIndex * 3
	v0 := sc.VertexList[base+0].Vec3()
	v1 := sc.VertexList[base+1].Vec3()
	v2 := sc.VertexList[base+2].Vec3()
	return Triangle{
		V0: emp.Transform.MulPoint(v0),
		V1: emp.Transform.MulPoint(v1),
		V2: emp.Transform.MulPoint(v2),
	}
}

// sampling2Sphere maps an equirectangular texel (x, y) in a resolution x
// resolution grid back to a world direction, the inverse of
// sampling.UniformSphereToSquare.
func sampling2Sphere(x, y, resolution int) types.Vec3 {
	u := (float32(x) + 0.5) / float32(resolution)
	v := (float32(y) + 0.5) / float32(resolution)
	return sampling.UniformSquareToSphere(types.XY(u, v))
}
