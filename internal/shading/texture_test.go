package shading

import (
	"testing"

	"github.com/achilleasa/go-pathtrace/asset/scene"
	texture "github.com/achilleasa/go-pathtrace/asset/texure"
	"github.com/achilleasa/go-pathtrace/types"
)

func TestSceneTextureSamplerReadsRgba8(t *testing.T) {
	sc := &scene.Scene{
		TextureMetadata: []scene.TextureMetadata{
			{Format: texture.Rgba8, Width: 2, Height: 1, DataOffset: 0},
		},
		TextureData: []byte{
			255, 0, 0, 255,
			0, 255, 0, 255,
		},
	}
	sampler := NewSceneTextureSampler(sc)

	red := sampler.Sample(0, types.XY(0.1, 0.5))
	if red[0] < 0.99 || red[1] > 0.01 {
		t.Fatalf("expected the left texel to read back red, got %v", red)
	}

	green := sampler.Sample(0, types.XY(0.9, 0.5))
	if green[1] < 0.99 || green[0] > 0.01 {
		t.Fatalf("expected the right texel to read back green, got %v", green)
	}
}

func TestSceneTextureSamplerOutOfRangeIndexReturnsBlack(t *testing.T) {
	sc := &scene.Scene{}
	sampler := NewSceneTextureSampler(sc)
	if sampler.Sample(0, types.XY(0, 0)) != (types.Vec3{}) {
		t.Fatalf("expected an out-of-range texture index to sample black")
	}
}

func TestSceneTextureSamplerDecodesSRGB(t *testing.T) {
	sc := &scene.Scene{
		TextureMetadata: []scene.TextureMetadata{
			{Format: texture.Luminance8, Width: 1, Height: 1, DataOffset: 0, ColorSpace: texture.ColorSpaceSRGB},
		},
		TextureData: []byte{188}, // 188/255 ~= 0.737, an sRGB-encoded mid-gray
	}
	sampler := NewSceneTextureSampler(sc)

	l := sampler.Sample(0, types.XY(0, 0))
	if l[0] < 0.49 || l[0] > 0.51 {
		t.Fatalf("expected the sRGB decode curve to linearize ~0.737 to ~0.5, got %v", l[0])
	}
}

func TestSceneTextureSamplerNonColorPassesThrough(t *testing.T) {
	sc := &scene.Scene{
		TextureMetadata: []scene.TextureMetadata{
			{Format: texture.Luminance8, Width: 1, Height: 1, DataOffset: 0, ColorSpace: texture.ColorSpaceNonColor},
		},
		TextureData: []byte{188},
	}
	sampler := NewSceneTextureSampler(sc)

	l := sampler.Sample(0, types.XY(0, 0))
	want := float32(188) / 255
	if l[0] < want-1e-3 || l[0] > want+1e-3 {
		t.Fatalf("expected a non-color texture to bypass the sRGB curve, got %v want %v", l[0], want)
	}
}

func TestSceneTextureSamplerWrapsUV(t *testing.T) {
	sc := &scene.Scene{
		TextureMetadata: []scene.TextureMetadata{
			{Format: texture.Luminance8, Width: 1, Height: 1, DataOffset: 0},
		},
		TextureData: []byte{128},
	}
	sampler := NewSceneTextureSampler(sc)

	a := sampler.Sample(0, types.XY(1.5, -0.5))
	b := sampler.Sample(0, types.XY(0.5, 0.5))
	if a != b {
		t.Fatalf("expected wrapped UVs to sample the same texel, got %v vs %v", a, b)
	}
}
