package fresnel

import (
	"math"
	"testing"

	"github.com/achilleasa/go-pathtrace/types"
)

func TestDielectricCosNormalIncidence(t *testing.T) {
	eta := float32(1.5)
	got := DielectricCos(1, eta)
	want := float32(math.Pow(float64((eta-1)/(eta+1)), 2))
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Fatalf("fresnelDielectricCos(1, %v) = %v, want %v", eta, got, want)
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	// A grazing direction leaving a denser medium (eta = n1/n2 > 1) at a
	// shallow angle triggers total internal reflection.
	i := types.XYZ(1, 0, 0.01).Normalize()
	n := types.XYZ(0, 0, 1)
	value, cosThetaT := Dielectric(i, n, 1.8)
	if value != 1 {
		t.Fatalf("expected total internal reflection value of 1, got %v", value)
	}
	if cosThetaT != -1 {
		t.Fatalf("expected cosThetaT sentinel -1, got %v", cosThetaT)
	}
}

func TestSchlickWeightBounds(t *testing.T) {
	if w := SchlickWeight(1); w != 0 {
		t.Fatalf("expected schlickWeight(1) == 0, got %v", w)
	}
	if w := SchlickWeight(0); math.Abs(float64(w-1)) > 1e-6 {
		t.Fatalf("expected schlickWeight(0) == 1, got %v", w)
	}
}
