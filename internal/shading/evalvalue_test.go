package shading

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/material"
	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/types"
)

// TestDiffuseReflectanceFromColorMixGraph exercises the exact path the
// review flagged as unreachable: a value-producing ColorMix node feeding a
// BxDF leaf's reflectance parameter via ValueInputs, rather than a plain
// constant or baked texture.
func TestDiffuseReflectanceFromColorMixGraph(t *testing.T) {
	red := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpValueConst), -1, -1, -1},
		Union2:      types.XYZ(1, 0, 0).Vec4(0),
		ValueInputs: [3]int32{-1, -1, -1},
	}
	white := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpValueConst), -1, -1, -1},
		Union2:      types.XYZ(1, 1, 1).Vec4(0),
		ValueInputs: [3]int32{-1, -1, -1},
	}
	half := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpValueConst), -1, -1, -1},
		Union2:      types.XYZ(0.5, 0.5, 0.5).Vec4(0),
		ValueInputs: [3]int32{-1, -1, -1},
	}
	mix := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpColorMix), -1, -1, -1},
		Union6:      types.Vec4{float32(material.BlendMix), 0, 0, 0},
		ValueInputs: [3]int32{0, 1, 2},
	}
	diffuse := scene.MaterialNode{
		Union1:      [4]int32{int32(material.BxdfDiffuse), -1, -1, -1},
		Union5:      [1]int32{-1},
		ValueInputs: [3]int32{3, -1, -1},
	}
	nodes := []scene.MaterialNode{red, white, half, mix, diffuse}

	u := Evaluate(nodes, 4, types.XY(0, 0), nil, nil)
	want := types.XYZ(1, 0.5, 0.5)
	if u.Diffuse.DiffuseWeight != want {
		t.Fatalf("expected the ColorMix graph to drive the diffuse reflectance to %v, got %v", want, u.Diffuse.DiffuseWeight)
	}
}

// TestTexCheckerGraphDrivesDiffuseReflectance exercises TexChecker reached
// through the value graph (evalValue), not just the exported helper.
func TestTexCheckerGraphDrivesDiffuseReflectance(t *testing.T) {
	black := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpValueConst), -1, -1, -1},
		Union2:      types.Vec3{}.Vec4(0),
		ValueInputs: [3]int32{-1, -1, -1},
	}
	white := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpValueConst), -1, -1, -1},
		Union2:      types.XYZ(1, 1, 1).Vec4(0),
		ValueInputs: [3]int32{-1, -1, -1},
	}
	checker := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpTexChecker), -1, -1, -1},
		Union6:      types.Vec4{1, 0, 0, 0},
		ValueInputs: [3]int32{1, 0, -1},
	}
	diffuse := scene.MaterialNode{
		Union1:      [4]int32{int32(material.BxdfDiffuse), -1, -1, -1},
		Union5:      [1]int32{-1},
		ValueInputs: [3]int32{2, -1, -1},
	}
	nodes := []scene.MaterialNode{black, white, checker, diffuse}

	atOrigin := Evaluate(nodes, 3, types.XY(0.25, 0.25), nil, nil)
	if atOrigin.Diffuse.DiffuseWeight != (types.Vec3{1, 1, 1}) {
		t.Fatalf("expected uv (0.25,0.25) to select color1 (white), got %v", atOrigin.Diffuse.DiffuseWeight)
	}
}

func TestColorRampGraphInterpolatesBetweenStops(t *testing.T) {
	black := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpValueConst), -1, -1, -1},
		ValueInputs: [3]int32{-1, -1, -1},
	}
	white := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpValueConst), -1, -1, -1},
		Union2:      types.XYZ(1, 1, 1).Vec4(0),
		ValueInputs: [3]int32{-1, -1, -1},
	}
	half := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpValueConst), -1, -1, -1},
		Union2:      types.XYZ(0.5, 0.5, 0.5).Vec4(0),
		ValueInputs: [3]int32{-1, -1, -1},
	}
	ramp := scene.MaterialNode{
		Union1:      [4]int32{int32(material.OpColorRamp), -1, -1, -1},
		Union6:      types.Vec4{0, 1, 0, 0},
		ValueInputs: [3]int32{0, 1, 2},
	}
	nodes := []scene.MaterialNode{black, white, half, ramp}

	got := evalValue(nodes, 3, types.XY(0, 0), nil)
	want := types.XYZ(0.5, 0.5, 0.5)
	if got != want {
		t.Fatalf("expected the ramp's midpoint to blend evenly to %v, got %v", want, got)
	}
}
