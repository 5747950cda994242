package sampling

import (
	"math"
	"testing"

	"github.com/achilleasa/go-pathtrace/types"
)

func TestSphereSquareRoundTrip(t *testing.T) {
	cases := []types.Vec2{
		{0.1, 0.2}, {0.5, 0.5}, {0.9, 0.01}, {0.25, 0.75},
	}
	for _, uv := range cases {
		dir := UniformSquareToSphere(uv)
		back := UniformSphereToSquare(dir)
		if math.Abs(float64(uv[0]-back[0])) > 1e-5 || math.Abs(float64(uv[1]-back[1])) > 1e-5 {
			t.Fatalf("round trip mismatch: %v -> %v -> %v", uv, dir, back)
		}
	}
}

func TestUniformSquareToSphereIsUnitLength(t *testing.T) {
	for _, uv := range []types.Vec2{{0, 0}, {0.33, 0.66}, {1, 1}} {
		dir := UniformSquareToSphere(uv)
		l := dir.Len()
		if math.Abs(float64(l)-1) > 1e-4 {
			t.Fatalf("expected unit vector, got length %f for %v", l, uv)
		}
	}
}

func TestCosineHemisphereStaysUpper(t *testing.T) {
	for _, rnd := range []types.Vec2{{0.1, 0.9}, {0.5, 0.5}, {0.99, 0.01}} {
		w := UniformSquareToCosineWeightedHemisphere(rnd)
		if w[2] < 0 {
			t.Fatalf("expected upper hemisphere sample, got z=%f", w[2])
		}
	}
}

func TestTriangleBarycentricSumsToOne(t *testing.T) {
	for _, rnd := range []types.Vec2{{0.2, 0.4}, {0.7, 0.1}} {
		uv := UniformSquareToTriangleBarycentric(rnd)
		w := 1 - uv[0] - uv[1]
		if uv[0] < -1e-6 || uv[1] < -1e-6 || w < -1e-6 {
			t.Fatalf("expected non-negative barycentric coords, got (%f, %f, %f)", uv[0], uv[1], w)
		}
	}
}
