// Package lights implements the environment importance map, the analytic
// light types and the light pool that dispatches between them with MIS
// bookkeeping and survival roulette (C9, C10, C11).
//
// Grounded on _examples/original_source/raymond/device/lights/Lights.hpp,
// LightSample.hpp, WorldLight.hpp and bridge/lights/*.hpp.
package lights

import "github.com/achilleasa/go-pathtrace/types"

// Info mirrors LightInfo.hpp: the per-light metadata shared by every
// analytic light type.
type Info struct {
	ShaderIndex  int32
	UsesMIS      bool
	CastsShadows bool
}

// Sample is a single light-sampling result: a direction and solid-angle PDF
// together with the unoccluded radiance contribution already divided by the
// PDF ("weight"), and the bookkeeping the integrator needs to trace and
// weight the resulting shadow ray.
type Sample struct {
	IsLight      bool
	ShaderIndex  int32
	CanBeHit     bool
	CastsShadows bool
	Weight       types.Vec3
	Pdf          float32
	Direction    types.Vec3
	Distance     float32
}

// InvalidSample is returned whenever a light cannot be sampled from the
// given shading point (e.g. the point lies behind the light's plane).
func InvalidSample() Sample {
	return Sample{}
}

// NewSample seeds a Sample with a light's static metadata.
func NewSample(info Info) Sample {
	return Sample{
		IsLight:      true,
		ShaderIndex:  info.ShaderIndex,
		CanBeHit:     info.UsesMIS,
		CastsShadows: info.CastsShadows,
	}
}
