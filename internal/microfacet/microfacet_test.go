package microfacet

import (
	"math"
	"testing"

	"github.com/achilleasa/go-pathtrace/types"
)

func TestAnisotropicGGXIsotropicMatchesSmoothPeak(t *testing.T) {
	wh := types.XYZ(0, 0, 1)
	d := AnisotropicGGX(wh, 0.1, 0.1)
	if d <= 0 || math.IsNaN(float64(d)) || math.IsInf(float64(d), 0) {
		t.Fatalf("expected finite positive peak density, got %v", d)
	}
}

func TestSmithG1IsOneAtNormalIncidence(t *testing.T) {
	w := types.XYZ(0, 0, 1)
	wh := types.XYZ(0, 0, 1)
	g := AnisotropicSmithG1(w, wh, 0.2, 0.4)
	if math.Abs(float64(g-1)) > 1e-5 {
		t.Fatalf("expected G1(n,n)=1, got %v", g)
	}
}

func TestSampleGGXVNDFStaysInUpperHemisphereForUpperWo(t *testing.T) {
	wo := types.XYZ(0.2, 0.1, 0.9).Normalize()
	for i := 0; i < 32; i++ {
		rnd := types.XY(float32(i)/32, float32((i*7)%32)/32)
		wh := SampleGGXVNDF(rnd, 0.3, 0.3, wo)
		if wh[2] < -1e-4 {
			t.Fatalf("expected microfacet normal on wo's side of the surface, got %v for wo=%v", wh, wo)
		}
	}
}

func TestGTR1IntegratesPositive(t *testing.T) {
	wh := types.XYZ(0, 0, 1)
	v := GTR1(wh, 0.5)
	if v <= 0 {
		t.Fatalf("expected positive GTR1 density at normal incidence, got %v", v)
	}
}
