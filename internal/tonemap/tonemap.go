// Package tonemap implements the HDR -> LDR operators (C16) applied to a
// resolved film.Buffer before it is written out as 8-bit pixels.
//
// Grounded on the teacher's TonemapSimpleReinhard pipeline stage
// (tracer/opencl/pipeline.go, tracer/opencl/resources.go) and the Exposure
// field renderer.Options already carries; this package reproduces the same
// "apply exposure, then a fixed curve" shape for Reinhard, Hable and ACES.
package tonemap

import (
	"math"

	"github.com/achilleasa/go-pathtrace/types"
)

// Operator maps an HDR radiance value to a displayable [0, 1] color.
type Operator interface {
	Map(c types.Vec3) types.Vec3
}

// Kind identifies one of the built-in operators by name.
type Kind uint8

const (
	Linear Kind = iota
	Reinhard
	Hable
	ACES
)

func (k Kind) String() string {
	switch k {
	case Reinhard:
		return "reinhard"
	case Hable:
		return "hable"
	case ACES:
		return "aces"
	default:
		return "linear"
	}
}

// New builds the Operator for kind with the given exposure scale (matching
// renderer.Options.Exposure: radiance is multiplied by 2^exposure before the
// curve is applied).
func New(kind Kind, exposure float32) Operator {
	scale := float32(math.Pow(2, float64(exposure)))
	switch kind {
	case Reinhard:
		return reinhardOp{scale: scale}
	case Hable:
		return hableOp{scale: scale}
	case ACES:
		return acesOp{scale: scale}
	default:
		return linearOp{scale: scale}
	}
}

func clamp01(c types.Vec3) types.Vec3 {
	for i := range c {
		if c[i] < 0 {
			c[i] = 0
		} else if c[i] > 1 {
			c[i] = 1
		}
	}
	return c
}

type linearOp struct{ scale float32 }

func (op linearOp) Map(c types.Vec3) types.Vec3 {
	return clamp01(c.Mul(op.scale))
}

type reinhardOp struct{ scale float32 }

func (op reinhardOp) Map(c types.Vec3) types.Vec3 {
	c = c.Mul(op.scale)
	return types.XYZ(c[0]/(1+c[0]), c[1]/(1+c[1]), c[2]/(1+c[2]))
}

// hableOp implements John Hable's Uncharted 2 filmic curve.
type hableOp struct{ scale float32 }

const (
	hableA = 0.15
	hableB = 0.50
	hableC = 0.10
	hableD = 0.20
	hableE = 0.02
	hableF = 0.30
	hableW = 11.2
)

func hableCurve(x float32) float32 {
	return ((x*(hableA*x+hableC*hableB) + hableD*hableE) / (x*(hableA*x+hableB) + hableD*hableF)) - hableE/hableF
}

func (op hableOp) Map(c types.Vec3) types.Vec3 {
	c = c.Mul(op.scale)
	whiteScale := 1 / hableCurve(hableW)
	return clamp01(types.XYZ(
		hableCurve(c[0])*whiteScale,
		hableCurve(c[1])*whiteScale,
		hableCurve(c[2])*whiteScale,
	))
}

// acesOp implements the Narkowicz fit of the ACES filmic curve.
type acesOp struct{ scale float32 }

func acesCurve(x float32) float32 {
	const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
	return (x * (a*x + b)) / (x*(c*x+d) + e)
}

func (op acesOp) Map(color types.Vec3) types.Vec3 {
	color = color.Mul(op.scale)
	return clamp01(types.XYZ(acesCurve(color[0]), acesCurve(color[1]), acesCurve(color[2])))
}
