package bsdf

import (
	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/types"
)

// Sample is the result of importance-sampling a lobe or the Uber BSDF: a
// new local-frame direction, its throughput weight (already divided by its
// own pdf for the sampled lobe, see Uber.Sample), the pdf used to reach it,
// and the ray-kind flags it should carry onward.
type Sample struct {
	Wi     types.Vec3
	Weight types.Vec3
	Pdf    float32
	Flags  raykind.Flags
}

// InvalidSample returns a zero-contribution sample, used whenever a hemisphere
// check fails or a lobe has no support for the requested direction.
func InvalidSample() Sample {
	return Sample{}
}
