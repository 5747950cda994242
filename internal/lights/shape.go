package lights

import (
	"github.com/achilleasa/go-pathtrace/internal/sampling"
	"github.com/achilleasa/go-pathtrace/types"
)

// Triangle is a single world-space emissive triangle contributed by a
// mesh-light instance.
type Triangle struct {
	V0, V1, V2 types.Vec3
}

func (t Triangle) normal() types.Vec3 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Normalize()
}

func (t Triangle) area() float32 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Len() * 0.5
}

// Shape is a mesh-emissive light: an instance's emissive triangles are
// selected with probability proportional to their area (C18, the mesh light
// distribution builder), then sampled uniformly inside the chosen triangle.
//
// Grounded on _examples/original_source/raymond/raymond/bridge/lights/ShapeLight.hpp.
type Shape struct {
	Info Info

	Triangles []Triangle
	// cdf[i] holds the cumulative area fraction through Triangles[i];
	// cdf[len-1] == 1.
	cdf  []float32
	area float32
}

// BuildShape constructs the area-weighted triangle distribution for a
// mesh-light instance.
func BuildShape(info Info, triangles []Triangle) *Shape {
	s := &Shape{Info: info, Triangles: triangles}
	if len(triangles) == 0 {
		return s
	}
	s.cdf = make([]float32, len(triangles))
	total := float32(0)
	for i, tri := range triangles {
		total += tri.area()
		s.cdf[i] = total
	}
	s.area = total
	if total > 0 {
		for i := range s.cdf {
			s.cdf[i] /= total
		}
	}
	return s
}

func (s *Shape) selectTriangle(u float32) (int, float32) {
	lo, hi := 0, len(s.cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.cdf[mid] < u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	remapped := u
	prev := float32(0)
	if lo > 0 {
		prev = s.cdf[lo-1]
	}
	span := s.cdf[lo] - prev
	if span > 0 {
		remapped = (u - prev) / span
	}
	return lo, remapped
}

func (s *Shape) Sample(rnd types.Vec2, rndTri float32, position types.Vec3) Sample {
	if len(s.Triangles) == 0 || s.area <= 0 {
		return InvalidSample()
	}

	idx, _ := s.selectTriangle(rndTri)
	tri := s.Triangles[idx]

	bary := sampling.UniformSquareToTriangleBarycentric(rnd)
	u, v := bary[0], bary[1]
	w := 1 - u - v
	point := tri.V0.Mul(w).Add(tri.V1.Mul(u)).Add(tri.V2.Mul(v))
	normal := tri.normal()

	toLight := point.Sub(position)
	dist := toLight.Len()
	if dist <= 1e-6 {
		return InvalidSample()
	}
	dir := toLight.Mul(1 / dist)

	cosTheta := -dir.Dot(normal)
	if cosTheta <= 0 {
		return InvalidSample()
	}

	pdf := (dist * dist) / (s.area * cosTheta)
	out := NewSample(s.Info)
	out.Direction = dir
	out.Distance = dist
	out.Pdf = pdf
	out.Weight = types.XYZ(1/pdf, 1/pdf, 1/pdf)
	return out
}

// Pdf returns the area-measure-converted solid-angle density of reaching
// distance/cosTheta on this shape via BSDF sampling.
func (s *Shape) Pdf(distance, cosTheta float32) float32 {
	if s.area <= 0 || cosTheta <= 0 {
		return 0
	}
	return (distance * distance) / (s.area * cosTheta)
}
