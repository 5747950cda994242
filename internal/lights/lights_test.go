package lights

import (
	"math"
	"testing"

	"github.com/achilleasa/go-pathtrace/internal/rng"
	"github.com/achilleasa/go-pathtrace/types"
)

func TestEnvMapSampleMatchesPdf(t *testing.T) {
	res := 8
	env := BuildEnvMap(0, res, func(x, y int) types.Vec3 {
		if y < res/2 {
			return types.XYZ(10, 10, 10)
		}
		return types.XYZ(1, 1, 1)
	})

	state := rng.New(3, 0)
	for i := 0; i < 64; i++ {
		rnd2 := state.Sample2()
		dir, pdf := env.Sample(types.XY(rnd2[0], rnd2[1]))
		if pdf <= 0 {
			t.Fatalf("expected positive pdf for a non-degenerate environment")
		}
		if math.Abs(float64(dir.Len()-1)) > 1e-3 {
			t.Fatalf("sampled direction %v is not unit length", dir)
		}
		if got := env.Pdf(dir); math.Abs(float64(got-pdf)) > 1e-4 {
			t.Fatalf("Pdf(Sample()) = %v, want %v", got, pdf)
		}
	}
}

func TestPointLightDeltaPdf(t *testing.T) {
	p := Point{Info: Info{ShaderIndex: 1}, Location: types.XYZ(0, 0, 5), Color: types.XYZ(1, 1, 1)}
	s := p.Sample(types.XY(0.5, 0.5), types.XYZ(0, 0, 0))
	if s.Pdf != 1 {
		t.Fatalf("a zero-radius point light should have pdf=1, got %v", s.Pdf)
	}
	if s.Distance <= 0 {
		t.Fatalf("expected positive distance, got %v", s.Distance)
	}
}

func TestPointLightWeightFollowsInverseSquareFalloff(t *testing.T) {
	near := Point{Info: Info{ShaderIndex: 1}, Location: types.XYZ(0, 0, 2), Color: types.XYZ(1, 1, 1)}
	far := Point{Info: Info{ShaderIndex: 1}, Location: types.XYZ(0, 0, 4), Color: types.XYZ(1, 1, 1)}
	sNear := near.Sample(types.XY(0.5, 0.5), types.XYZ(0, 0, 0))
	sFar := far.Sample(types.XY(0.5, 0.5), types.XYZ(0, 0, 0))
	if sNear.Weight[0] <= sFar.Weight[0] {
		t.Fatalf("expected the nearer delta point light to weight higher than the farther one, got near=%v far=%v", sNear.Weight, sFar.Weight)
	}
	want := float32(1) / (4 * math.Pi * 2 * 2)
	if math.Abs(float64(sNear.Weight[0]-want)) > 1e-5 {
		t.Fatalf("expected weight = color/(4*pi*d^2) = %v, got %v", want, sNear.Weight[0])
	}
}

func TestSpotLightWeightFollowsInverseSquareFalloff(t *testing.T) {
	sp := Spot{
		Info:      Info{ShaderIndex: 1},
		Location:  types.XYZ(0, 0, 2),
		Direction: types.XYZ(0, 0, -1),
		Color:     types.XYZ(1, 1, 1),
		SpotSize:  float32(math.Pi),
		SpotBlend: 1,
	}
	s := sp.Sample(types.XY(0.5, 0.5), types.XYZ(0, 0, 0))
	want := float32(1) / (4 * math.Pi * 2 * 2)
	if math.Abs(float64(s.Weight[0]-want)) > 1e-5 {
		t.Fatalf("expected weight = color*falloff/(4*pi*d^2) = %v, got %v", want, s.Weight[0])
	}
}

func TestShapeLightSamplingStaysOnTriangle(t *testing.T) {
	tris := []Triangle{
		{V0: types.XYZ(-1, -1, 2), V1: types.XYZ(1, -1, 2), V2: types.XYZ(0, 1, 2)},
	}
	shape := BuildShape(Info{ShaderIndex: 2}, tris)
	state := rng.New(11, 0)
	for i := 0; i < 32; i++ {
		rnd2 := state.Sample2()
		s := shape.Sample(types.XY(rnd2[0], rnd2[1]), state.Sample1(), types.XYZ(0, 0, 0))
		if s.Pdf <= 0 {
			t.Fatalf("expected a valid sample from a light-facing triangle")
		}
	}
}

func TestPoolSampleNeverReturnsNegativePdf(t *testing.T) {
	pool := &Pool{
		Point: []Point{{Info: Info{ShaderIndex: 0}, Location: types.XYZ(0, 0, 5), Color: types.XYZ(0.01, 0.01, 0.01)}},
		Shade: func(shaderIndex int32, position, wo types.Vec3) types.Vec3 { return types.XYZ(1, 1, 1) },
	}
	state := rng.New(5, 0)
	for i := 0; i < 64; i++ {
		s := pool.Sample(&state, types.XYZ(0, 0, 0), types.XYZ(0, 0, 1))
		if s.Pdf < 0 {
			t.Fatalf("pdf must never be negative")
		}
	}
}
