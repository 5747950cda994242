package lights

import (
	"math"

	"github.com/achilleasa/go-pathtrace/internal/sampling"
	"github.com/achilleasa/go-pathtrace/types"
)

// Area is a rectangular or elliptical emitter placed by an affine transform;
// the local unit square (or inscribed disk, when Circular) is the emitting
// shape.
//
// Grounded on _examples/original_source/raymond/raymond/bridge/lights/AreaLight.hpp.
type Area struct {
	Info     Info
	Transform types.Mat4
	Color    types.Vec3
	Circular bool
}

func (l Area) Sample(rnd types.Vec2, position types.Vec3) Sample {
	local := types.XYZ(rnd[0]*2-1, rnd[1]*2-1, 0)
	if l.Circular {
		d := sampling.UniformSquareToDisk(rnd)
		local = types.XYZ(d[0], d[1], 0)
	}

	point := l.Transform.MulPoint(local)
	normal := l.Transform.MulDir(types.XYZ(0, 0, 1)).Normalize()

	ex := l.Transform.MulDir(types.XYZ(1, 0, 0))
	ey := l.Transform.MulDir(types.XYZ(0, 1, 0))
	area := ex.Len() * ey.Len() * 4
	if l.Circular {
		area = float32(math.Pi) * ex.Len() * ey.Len()
	}

	toLight := point.Sub(position)
	dist := toLight.Len()
	if dist <= 1e-6 {
		return InvalidSample()
	}
	dir := toLight.Mul(1 / dist)

	cosTheta := -dir.Dot(normal)
	if cosTheta <= 0 || area <= 0 {
		return InvalidSample()
	}

	pdf := (dist * dist) / (area * cosTheta)
	s := NewSample(l.Info)
	s.Direction = dir
	s.Distance = dist
	s.Pdf = pdf
	s.Weight = types.XYZ(1/pdf, 1/pdf, 1/pdf)
	return s
}

// Pdf returns the solid-angle density of hitting l via BSDF sampling from
// position along dir, given the known hit distance.
func (l Area) Pdf(position, dir types.Vec3, distance float32) float32 {
	normal := l.Transform.MulDir(types.XYZ(0, 0, 1)).Normalize()
	cosTheta := -dir.Dot(normal)
	if cosTheta <= 0 {
		return 0
	}
	ex := l.Transform.MulDir(types.XYZ(1, 0, 0))
	ey := l.Transform.MulDir(types.XYZ(0, 1, 0))
	area := ex.Len() * ey.Len() * 4
	if l.Circular {
		area = float32(math.Pi) * ex.Len() * ey.Len()
	}
	if area <= 0 {
		return 0
	}
	return (distance * distance) / (area * cosTheta)
}

// Point is a (possibly spherical, when Radius > 0) omnidirectional emitter.
//
// Grounded on _examples/original_source/raymond/raymond/bridge/lights/PointLight.hpp.
type Point struct {
	Info     Info
	Location types.Vec3
	Radius   float32
	Color    types.Vec3
}

func (l Point) Sample(rnd types.Vec2, position types.Vec3) Sample {
	target := l.Location
	if l.Radius > 0 {
		target = target.Add(sampling.UniformSquareToSphere(rnd).Mul(l.Radius))
	}

	toLight := target.Sub(position)
	dist := toLight.Len()
	if dist <= 1e-6 {
		return InvalidSample()
	}
	dir := toLight.Mul(1 / dist)

	pdf := float32(1)
	area := float32(4) * float32(math.Pi) * l.Radius * l.Radius
	if area > 0 {
		pdf = (dist * dist) / area
	}

	g := 1 / (dist * dist)
	s := NewSample(l.Info)
	s.Direction = dir
	s.Distance = dist
	s.Pdf = pdf
	s.Weight = l.Color.Mul(g / (4 * float32(math.Pi)))
	return s
}

// Sun is a directional light with angular radius acos(CosAngle), sampled
// uniformly over the visible spherical cap.
//
// Grounded on _examples/original_source/raymond/raymond/bridge/lights/SunLight.hpp.
type Sun struct {
	Info      Info
	Direction types.Vec3
	CosAngle  float32
	Color     types.Vec3
}

func (l Sun) Sample(rnd types.Vec2, position types.Vec3) Sample {
	axis := l.Direction.Mul(-1)
	cosTheta := 1 - rnd[0]*(1-l.CosAngle)
	sinTheta := float32(math.Sqrt(math.Max(0, float64(1-cosTheta*cosTheta))))
	phi := 2 * float32(math.Pi) * rnd[1]
	s, c := float32(math.Sin(float64(phi))), float32(math.Cos(float64(phi)))

	basis := buildBasis(axis)
	local := types.XYZ(sinTheta*c, sinTheta*s, cosTheta)
	dir := basis.Mul3x1(local).Normalize()

	solidAngle := 2 * float32(math.Pi) * (1 - l.CosAngle)
	pdf := float32(1)
	if solidAngle > 0 {
		pdf = 1 / solidAngle
	}

	sample := NewSample(l.Info)
	sample.Direction = dir
	sample.Distance = float32(math.Inf(1))
	sample.Pdf = pdf
	sample.Weight = l.Color.Mul(1 / pdf)
	return sample
}

// Spot is a point light masked by a cone falloff. SpotSize is the cone's
// full opening angle (half-angle SpotSize/2); the fully-lit inner cone has
// full angle SpotSize*(1-SpotBlend).
//
// Grounded on _examples/original_source/raymond/raymond/bridge/lights/SpotLight.hpp.
type Spot struct {
	Info      Info
	Location  types.Vec3
	Direction types.Vec3
	Radius    float32
	Color     types.Vec3
	SpotSize  float32
	SpotBlend float32
}

func (l Spot) Sample(rnd types.Vec2, position types.Vec3) Sample {
	target := l.Location
	if l.Radius > 0 {
		target = target.Add(sampling.UniformSquareToSphere(rnd).Mul(l.Radius))
	}

	toLight := target.Sub(position)
	dist := toLight.Len()
	if dist <= 1e-6 {
		return InvalidSample()
	}
	dir := toLight.Mul(1 / dist)

	cosOuter := float32(math.Cos(float64(l.SpotSize) / 2))
	cosInner := float32(math.Cos(float64(l.SpotSize) * float64(1-l.SpotBlend) / 2))
	cosAngle := -dir.Dot(l.Direction.Normalize())
	if cosAngle <= cosOuter {
		return InvalidSample()
	}
	falloff := float32(1)
	if cosInner > cosOuter {
		falloff = sampling.ClampedSmoothstep(cosOuter, cosInner, cosAngle)
	}

	pdf := float32(1)
	area := float32(4) * float32(math.Pi) * l.Radius * l.Radius
	if area > 0 {
		pdf = (dist * dist) / area
	}

	g := 1 / (dist * dist)
	s := NewSample(l.Info)
	s.Direction = dir
	s.Distance = dist
	s.Pdf = pdf
	s.Weight = l.Color.Mul(falloff * g / (4 * float32(math.Pi)))
	return s
}

func buildBasis(n types.Vec3) types.Mat3 {
	sign := float32(1)
	if n[2] < 0 {
		sign = -1
	}
	a := -1 / (sign + n[2])
	b := n[0] * n[1] * a
	t := types.XYZ(1+sign*n[0]*n[0]*a, sign*b, -sign*n[0])
	bnorm := types.XYZ(b, sign+n[1]*n[1]*a, -n[1])
	return types.Mat3{
		t[0], bnorm[0], n[0],
		t[1], bnorm[1], n[1],
		t[2], bnorm[2], n[2],
	}
}
