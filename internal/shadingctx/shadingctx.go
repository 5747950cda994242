// Package shadingctx assembles the per-hit surface attributes (C14) a
// shading evaluation needs: world-space position, geometric and
// (interpolated, shading) normals, texture coordinates and the outgoing
// direction back toward the camera/previous vertex.
package shadingctx

import (
	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/intersect"
	"github.com/achilleasa/go-pathtrace/types"
)

// Surface holds the resolved shading inputs for a single ray-scene hit.
type Surface struct {
	Position  types.Vec3
	GeoNormal types.Vec3
	Normal    types.Vec3
	UV        types.Vec2
	Wo        types.Vec3

	MaterialNodeIndex int32
}

// Build resolves the barycentric-interpolated attributes for a hit against
// the scene's flattened vertex/normal/uv arrays, transforming the mesh-local
// normal into world space via the owning instance's inverse-transpose.
func Build(sc *scene.Scene, ray intersect.Ray, hit intersect.Hit) Surface {
	base := hit.PrimitiveIndex * 3
	v0 := sc.VertexList[base+0].Vec3()
	v1 := sc.VertexList[base+1].Vec3()
	v2 := sc.VertexList[base+2].Vec3()

	n0 := sc.NormalList[base+0].Vec3()
	n1 := sc.NormalList[base+1].Vec3()
	n2 := sc.NormalList[base+2].Vec3()

	uv0 := sc.UvList[base+0]
	uv1 := sc.UvList[base+1]
	uv2 := sc.UvList[base+2]

	u, v := hit.U, hit.V
	w := 1 - u - v

	localNormal := n0.Mul(w).Add(n1.Mul(u)).Add(n2.Mul(v)).Normalize()
	localGeoNormal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	uv := types.XY(uv0[0]*w+uv1[0]*u+uv2[0]*v, uv0[1]*w+uv1[1]*u+uv2[1]*v)

	normalMat := sc.MeshInstanceList[hit.MeshInstanceIndex].Transform.Mat3().Transpose()
	worldNormal := normalMat.Mul3x1(localNormal).Normalize()
	worldGeoNormal := normalMat.Mul3x1(localGeoNormal).Normalize()

	wo := ray.Dir.Mul(-1).Normalize()

	// Keep both normals on the same side as the outgoing direction so
	// that a ray hitting the back face of a (non-transmissive) triangle
	// still gets a consistent shading frame.
	if worldGeoNormal.Dot(wo) < 0 {
		worldGeoNormal = worldGeoNormal.Mul(-1)
		worldNormal = worldNormal.Mul(-1)
	}

	return Surface{
		Position:          ray.Origin.Add(ray.Dir.Mul(hit.Distance)),
		GeoNormal:         worldGeoNormal,
		Normal:            worldNormal,
		UV:                uv,
		Wo:                wo,
		MaterialNodeIndex: int32(sc.MaterialIndex[hit.PrimitiveIndex]),
	}
}

// EnsureValidReflection nudges a perturbed shading normal back toward the
// geometric normal whenever the two disagree enough that wo or wi would end
// up below the geometric hemisphere -- the classic "black fringe" fix for
// normal/bump mapped low-poly geometry.
func EnsureValidReflection(geoNormal, shNormal, wo types.Vec3) types.Vec3 {
	reflected := shNormal.Mul(2 * shNormal.Dot(wo)).Sub(wo)
	if reflected.Dot(geoNormal) > 0 {
		return shNormal
	}

	// Repeatedly add a quarter of the geometric normal to the shading
	// normal and renormalize until the reflected direction clears the
	// geometric hemisphere, bailing out to the geometric normal after
	// eight tries.
	n := shNormal
	for i := 0; i < 8; i++ {
		n = n.Add(geoNormal.Mul(0.25)).Normalize()
		reflected = n.Mul(2 * n.Dot(wo)).Sub(wo)
		if reflected.Dot(geoNormal) > 0 {
			return n
		}
	}
	return geoNormal
}
