package shading

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/material"
	"github.com/achilleasa/go-pathtrace/types"
)

func TestColorMixOverlayMatchesBelowHalfBranch(t *testing.T) {
	color1 := types.XYZ(0.25, 0.25, 0.25)
	color2 := types.XYZ(0.75, 0.75, 0.75)

	got := ColorMixBlend(material.BlendOverlay, color1, color2, 1, false)
	for i, c := range got {
		if c < 0.374 || c > 0.376 {
			t.Fatalf("expected overlay(0.25, 0.75, fac=1) channel %d to be ~0.375 (below-0.5 branch), got %v", i, c)
		}
	}
}

func TestColorMixAddAndMultiply(t *testing.T) {
	c1 := types.XYZ(0.2, 0.2, 0.2)
	c2 := types.XYZ(0.1, 0.1, 0.1)

	add := ColorMixBlend(material.BlendAdd, c1, c2, 1, false)
	if add[0] < 0.29 || add[0] > 0.31 {
		t.Fatalf("expected add blend at fac=1 to sum the channels, got %v", add)
	}

	mul := ColorMixBlend(material.BlendMultiply, c1, c2, 1, false)
	if mul[0] < 0.019 || mul[0] > 0.021 {
		t.Fatalf("expected multiply blend at fac=1 to give 0.02, got %v", mul)
	}
}

func TestColorMixClampsWhenRequested(t *testing.T) {
	c1 := types.XYZ(0.9, 0.9, 0.9)
	c2 := types.XYZ(0.9, 0.9, 0.9)

	got := ColorMixBlend(material.BlendAdd, c1, c2, 1, true)
	for i, c := range got {
		if c > 1 {
			t.Fatalf("expected clamp=true to saturate channel %d, got %v", i, c)
		}
	}
}

func TestEvalMathOps(t *testing.T) {
	if got := EvalMath(material.MathAdd, 2, 3, 0, false); got != 5 {
		t.Fatalf("expected 2+3=5, got %v", got)
	}
	if got := EvalMath(material.MathMultiplyAdd, 2, 3, 1, false); got != 7 {
		t.Fatalf("expected 2*3+1=7, got %v", got)
	}
	if got := EvalMath(material.MathDivide, 1, 0, 0, false); got != 0 {
		t.Fatalf("expected divide by zero to return 0 (no NaN), got %v", got)
	}
}

func TestGammaZeroGuard(t *testing.T) {
	got := Gamma(types.XYZ(-1, 0.25, 2), 2)
	if got[0] != 0 {
		t.Fatalf("expected a negative base to be clamped to 0 before the power, got %v", got[0])
	}
	if got[1] < 0.0624 || got[1] > 0.0626 {
		t.Fatalf("expected 0.25^2 = 0.0625, got %v", got[1])
	}
}

func TestMapRangeClamp(t *testing.T) {
	got := MapRange(1.5, 0, 1, 0, 10, true)
	if got != 10 {
		t.Fatalf("expected a clamped MapRange to saturate at the output range's max, got %v", got)
	}
	unclamped := MapRange(1.5, 0, 1, 0, 10, false)
	if unclamped != 15 {
		t.Fatalf("expected an unclamped MapRange to extrapolate, got %v", unclamped)
	}
}
