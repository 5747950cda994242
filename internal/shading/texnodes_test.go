package shading

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/types"
)

func TestTexCheckerParity(t *testing.T) {
	color1 := types.XYZ(1, 1, 1)
	color2 := types.XYZ(0, 0, 0)

	got := TexChecker(1, types.XYZ(0.25, 0.25, 0.25), color1, color2)
	if got != color1 {
		t.Fatalf("expected (0.25,0.25,0.25) to fall in an even cell (color1), got %v", got)
	}

	got = TexChecker(1, types.XYZ(0.75, 0.25, 0.25), color1, color2)
	if got != color2 {
		t.Fatalf("expected (0.75,0.25,0.25) to fall in an odd cell (color2), got %v", got)
	}
}

func TestTexGradientLinearAndSpherical(t *testing.T) {
	linear := TexGradient(0, types.XYZ(0.3, 0, 0))
	if linear[0] < 0.29 || linear[0] > 0.31 {
		t.Fatalf("expected linear gradient to return vector.x, got %v", linear)
	}

	spherical := TexGradient(1, types.XYZ(0, 0, 0))
	if spherical[0] != 1 {
		t.Fatalf("expected spherical gradient at the origin to return 1, got %v", spherical)
	}
}

func TestTexNoiseStaysInRangeAndDeterministic(t *testing.T) {
	a := TexNoise(types.XYZ(1.23, 4.56, 7.89), 1, 3, 0.5, 0)
	b := TexNoise(types.XYZ(1.23, 4.56, 7.89), 1, 3, 0.5, 0)
	if a != b {
		t.Fatalf("expected TexNoise to be deterministic for identical inputs, got %v vs %v", a, b)
	}
	for i, c := range a {
		if c < 0 || c > 1 {
			t.Fatalf("expected TexNoise channel %d in [0,1], got %v", i, c)
		}
	}
}

func TestBlackbodyWarmToCoolTrend(t *testing.T) {
	warm := Blackbody(1500)
	cool := Blackbody(10000)

	if warm[0] <= warm[2] {
		t.Fatalf("expected a warm (low K) blackbody color to be red-dominant, got %v", warm)
	}
	if cool[2] <= cool[0] {
		t.Fatalf("expected a cool (high K) blackbody color to be blue-dominant, got %v", cool)
	}
}

func TestFresnelMonotonicTowardGrazingAngle(t *testing.T) {
	normalIncidence := Fresnel(1.5, 1.0)
	grazing := Fresnel(1.5, 0.05)
	if grazing <= normalIncidence {
		t.Fatalf("expected Fresnel reflectance to increase toward grazing angles, got normal=%v grazing=%v", normalIncidence, grazing)
	}
}

func TestMappingAppliesScaleRotationTranslation(t *testing.T) {
	v := Mapping(types.XYZ(1, 0, 0), types.XYZ(2, 2, 2), types.Vec3{}, types.XYZ(1, 0, 0))
	want := types.XYZ(3, 0, 0)
	if v != want {
		t.Fatalf("expected scale-then-translate with zero rotation to give %v, got %v", want, v)
	}
}
