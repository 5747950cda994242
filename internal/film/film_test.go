package film

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/types"
)

func TestAddSampleAccumulatesAndAverages(t *testing.T) {
	b := New(2, 2)
	b.AddSample(0, 0, types.XYZ(1, 0, 0))
	b.AddSample(0, 0, types.XYZ(0, 1, 0))

	resolved := b.Resolve()
	r, g, bl := resolved[0], resolved[1], resolved[2]
	if r != 0.5 || g != 0.5 || bl != 0 {
		t.Fatalf("expected averaged radiance (0.5, 0.5, 0), got (%v, %v, %v)", r, g, bl)
	}
}

func TestResolveLeavesUnsampledPixelsBlack(t *testing.T) {
	b := New(2, 2)
	b.AddSample(0, 0, types.XYZ(1, 1, 1))

	resolved := b.Resolve()
	if resolved[3] != 0 || resolved[4] != 0 || resolved[5] != 0 {
		t.Fatalf("expected an untouched pixel to resolve to black")
	}
}

func TestMeanMatchesResolvedPixel(t *testing.T) {
	b := New(1, 1)
	b.AddSample(0, 0, types.XYZ(1, 2, 3))
	b.AddSample(0, 0, types.XYZ(3, 2, 1))

	mean := b.Mean(0, 0)
	if mean != types.XYZ(2, 2, 2) {
		t.Fatalf("expected mean (2,2,2), got %v", mean)
	}
}

func TestResetClearsAccumulatedSamples(t *testing.T) {
	b := New(1, 1)
	b.AddSample(0, 0, types.XYZ(2, 2, 2))
	b.Reset()

	if b.SampleCount(0, 0) != 0 {
		t.Fatalf("expected sample count to be zero after reset")
	}
	resolved := b.Resolve()
	if resolved[0] != 0 {
		t.Fatalf("expected resolved radiance to be zero after reset")
	}
}
