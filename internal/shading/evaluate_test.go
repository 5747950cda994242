package shading

import (
	"math"
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/material"
	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

func diffuseNode(reflectance types.Vec3) scene.MaterialNode {
	return scene.MaterialNode{
		Union1:      [4]int32{int32(material.BxdfDiffuse), -1, -1, -1},
		Union2:      reflectance.Vec4(0),
		Union5:      [1]int32{-1},
		ValueInputs: [3]int32{-1, -1, -1},
	}
}

func TestEvaluateDiffuseLeaf(t *testing.T) {
	nodes := []scene.MaterialNode{diffuseNode(types.XYZ(0.8, 0.2, 0.2))}

	u := Evaluate(nodes, 0, types.XY(0, 0), nil, nil)
	if u.LobeProbabilities[0] != 1 {
		t.Fatalf("expected a pure diffuse lobe, got %v", u.LobeProbabilities)
	}
	if u.Diffuse.DiffuseWeight != types.XYZ(0.8, 0.2, 0.2) {
		t.Fatalf("unexpected diffuse reflectance: %v", u.Diffuse.DiffuseWeight)
	}
}

// mixFixture builds a conductor/diffuse OpMix tree with branch weights
// 0.3 (diffuse) / 0.7 (conductor), matching a "0.3*diffuse + 0.7*conductor"
// material expression: Union1[1] (a) indexes the diffuse leaf, Union1[2] (b)
// the conductor leaf.
func mixFixture() []scene.MaterialNode {
	conductor := scene.MaterialNode{
		Union1:      [4]int32{int32(material.BxdfConductor), -1, -1, -1},
		Union2:      types.XYZ(1, 1, 1).Vec4(0),
		Union4:      types.Vec3{material.DefaultIntIOR, material.DefaultExtIOR, 0},
		Union5:      [1]int32{-1},
		ValueInputs: [3]int32{-1, -1, -1},
	}
	diffuse := diffuseNode(types.XYZ(0.5, 0.5, 0.5))

	mix := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpMix), 1, 0, -1},
		Union2:      types.Vec4{0.3, 0.7, 0, 0},
		Union5:      [1]int32{-1},
		ValueInputs: [3]int32{-1, -1, -1},
	}
	return []scene.MaterialNode{conductor, diffuse, mix}
}

func TestEvaluateMixBranchesStochasticallyOnRnd(t *testing.T) {
	nodes := mixFixture()

	// pb = wb/(wa+wb) = 0.7/1 = 0.7: a draw below pb selects branch b
	// (the conductor, Union1[2] = 0) and rescales rnd to rnd/pb; a draw
	// at or above pb selects branch a (the diffuse, Union1[1] = 1) and
	// rescales rnd to (rnd-pb)/(1-pb). Neither branch's lobe probabilities
	// are blended with the other's -- exactly one of them is returned,
	// unmodified except for the mix's total-weight multiplier (1 here).
	rndLow := float32(0.1)
	u := Evaluate(nodes, 2, types.XY(0, 0), &rndLow, nil)
	if u.LobeProbabilities[1] != 1 || u.LobeProbabilities[0] != 0 {
		t.Fatalf("expected rnd=0.1 < pb=0.7 to select the pure conductor branch, got %v", u.LobeProbabilities)
	}
	if want := float32(0.1) / 0.7; math.Abs(float64(rndLow-want)) > 1e-5 {
		t.Fatalf("expected rnd to rescale to rnd/pb = %v, got %v", want, rndLow)
	}

	rndHigh := float32(0.9)
	u = Evaluate(nodes, 2, types.XY(0, 0), &rndHigh, nil)
	if u.LobeProbabilities[0] != 1 || u.LobeProbabilities[1] != 0 {
		t.Fatalf("expected rnd=0.9 >= pb=0.7 to select the pure diffuse branch, got %v", u.LobeProbabilities)
	}
	if want := (float32(0.9) - 0.7) / (1 - 0.7); math.Abs(float64(rndHigh-want)) > 1e-5 {
		t.Fatalf("expected rnd to rescale to (rnd-pb)/(1-pb) = %v, got %v", want, rndHigh)
	}
}

func TestEvaluateAddShaderDoublesSelectedBranchWeight(t *testing.T) {
	nodes := mixFixture()
	nodes[2].Union1[0] = int32(material.OpAddShader)

	rnd := float32(0.1)
	u := Evaluate(nodes, 2, types.XY(0, 0), &rnd, nil)
	if u.Weight != 2 {
		t.Fatalf("expected AddShader (wa=wb=1, total=2) to double the selected branch's weight, got %v", u.Weight)
	}
}

func TestEvaluateEmissiveHasNoScatteringLobes(t *testing.T) {
	emissive := scene.MaterialNode{
		Union1:      [4]int32{int32(material.BxdfEmissive), -1, -1, -1},
		Union2:      types.XYZ(5, 5, 5).Vec4(0),
		Union4:      types.Vec3{0, 0, 2},
		Union5:      [1]int32{-1},
		ValueInputs: [3]int32{-1, -1, -1},
	}
	u := Evaluate([]scene.MaterialNode{emissive}, 0, types.XY(0, 0), nil, nil)

	for i, p := range u.LobeProbabilities {
		if p != 0 {
			t.Fatalf("expected emissive bxdf to have no scattering lobes, lobe %d = %v", i, p)
		}
	}
	if u.Emission != types.XYZ(10, 10, 10) {
		t.Fatalf("expected emission = radiance * scale, got %v", u.Emission)
	}
}

func TestEvaluateOutOfBoundsIndexIsNeutral(t *testing.T) {
	u := Evaluate(nil, 0, types.XY(0, 0), nil, nil)
	if u.LobeProbabilities[0] != 1 {
		t.Fatalf("expected a neutral diffuse fallback for an invalid node index")
	}
}

func principledNode(baseColor types.Vec3) scene.MaterialNode {
	return scene.MaterialNode{
		Union1:      [4]int32{int32(material.BxdfPrincipled), -1, -1, -1},
		Union2:      baseColor.Vec4(0),
		Union4:      types.Vec3{1.45, 0, 0.4},
		Union5:      [1]int32{-1},
		ValueInputs: [3]int32{-1, -1, -1},
	}
}

func TestEvaluateSurfacePrincipledWiresClearcoatAndSheen(t *testing.T) {
	node := principledNode(types.XYZ(0.8, 0.2, 0.2))
	node.Union6 = types.Vec4{0, 0, 0.9, 0.6}  // metallic, specularTint, anisotropic, sheen
	node.Union7 = types.Vec4{0.5, 0.7, 0.3, 0} // sheenTint, clearcoat, clearcoatRoughness, transmission

	u := EvaluateSurface([]scene.MaterialNode{node}, 0, types.XY(0, 0), types.XYZ(0, 0, 1), types.XYZ(0, 0, 1), types.XYZ(0, 0, 1), nil, nil)

	if u.Clearcoat.Weight != 0.7 {
		t.Fatalf("expected BsdfPrincipled's Clearcoat param to reach bsdf.Uber.Clearcoat.Weight, got %v", u.Clearcoat.Weight)
	}
	if u.Diffuse.SheenWeight == (types.Vec3{}) {
		t.Fatalf("expected a non-zero sheen contribution from a non-zero Sheen param")
	}
	if u.Specular.AlphaX == u.Specular.AlphaY {
		t.Fatalf("expected anisotropic roughness to produce AlphaX != AlphaY, got %v == %v", u.Specular.AlphaX, u.Specular.AlphaY)
	}
}

func TestEvaluateSurfaceAppliesEnsureValidReflection(t *testing.T) {
	node := diffuseNode(types.XYZ(0.8, 0.8, 0.8))
	nodes := []scene.MaterialNode{node}

	// A shading normal bent far enough from the geometric normal that
	// reflecting wo about it lands below the true surface; EvaluateSurface
	// must bend the returned normal back until the reflection is valid.
	shNormal := types.XYZ(0.9848, 0, 0.1736).Normalize()
	geoNormal := types.XYZ(0, 0, 1)
	wo := types.XYZ(0, 0, 1)

	u := EvaluateSurface(nodes, 0, types.XY(0, 0), shNormal, geoNormal, wo, nil, nil)

	reflected := u.Normal.Mul(2 * u.Normal.Dot(wo)).Sub(wo)
	if reflected.Dot(geoNormal) <= 0 {
		t.Fatalf("expected EnsureValidReflection to correct the normal so wo's reflection clears the geometric surface, got normal %v", u.Normal)
	}
}
