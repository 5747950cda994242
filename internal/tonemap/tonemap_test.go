package tonemap

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/types"
)

func TestLinearAppliesExposureAndClamps(t *testing.T) {
	op := New(Linear, 1) // 2x exposure
	out := op.Map(types.XYZ(0.3, 2, 0))
	if out[0] < 0.59 || out[0] > 0.61 {
		t.Fatalf("expected exposure-scaled red channel ~0.6, got %v", out[0])
	}
	if out[1] != 1 {
		t.Fatalf("expected overexposed channel to clamp to 1, got %v", out[1])
	}
}

func TestReinhardCompressesHighlights(t *testing.T) {
	op := New(Reinhard, 0)
	out := op.Map(types.XYZ(1e6, 1e6, 1e6))
	if out[0] <= 0 || out[0] >= 1.01 {
		t.Fatalf("expected Reinhard to compress a huge radiance toward 1, got %v", out[0])
	}
}

func TestHableAndACESStayInRange(t *testing.T) {
	for _, kind := range []Kind{Hable, ACES} {
		op := New(kind, 0)
		out := op.Map(types.XYZ(3, 0.2, 50))
		for i, c := range out {
			if c < 0 || c > 1 {
				t.Fatalf("%v: channel %d out of [0,1] range: %v", kind, i, c)
			}
		}
	}
}

func TestKindStringMatchesName(t *testing.T) {
	cases := map[Kind]string{Linear: "linear", Reinhard: "reinhard", Hable: "hable", ACES: "aces"}
	for k, want := range cases {
		if k.String() != want {
			t.Fatalf("expected %v.String() == %q, got %q", k, want, k.String())
		}
	}
}
