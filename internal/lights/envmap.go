package lights

import (
	"github.com/achilleasa/go-pathtrace/internal/sampling"
	"github.com/achilleasa/go-pathtrace/types"
)

// EnvMap imports environment radiance through a hierarchical quad-mipmap
// over pixel luminance, giving O(log N) importance sampling and an O(1) PDF
// lookup at any resolution power of two.
//
// Grounded on _examples/original_source/raymond/device/lights/WorldLight.hpp.
type EnvMap struct {
	ShaderIndex int32

	// Resolution is the equirectangular map's side length; must be a
	// power of two.
	Resolution int

	// Pdfs holds, per base-resolution texel, the solid-angle sampling
	// PDF: the texel's luminance over the total luminance, divided by the
	// texel's solid angle (4*pi / Resolution^2).
	Pdfs []float32

	// Mipmap concatenates, from 1x1 up to Resolution x Resolution, the
	// four-child emission sums of each quadtree level, in row-major
	// order within each level.
	Mipmap []float32
}

// BuildEnvMap constructs the importance mipmap for an equirectangular
// environment of the given resolution, given a callback returning the
// (unnormalized) emitted radiance at texel (x, y).
func BuildEnvMap(shaderIndex int32, resolution int, emission func(x, y int) types.Vec3) *EnvMap {
	base := make([]float32, resolution*resolution)
	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			c := emission(x, y)
			base[y*resolution+x] = luminance(c)
		}
	}

	levels := [][]float32{base}
	cur := base
	curRes := resolution
	for curRes > 1 {
		nextRes := curRes / 2
		next := make([]float32, nextRes*nextRes)
		for y := 0; y < nextRes; y++ {
			for x := 0; x < nextRes; x++ {
				sum := cur[(2*y)*curRes+2*x] + cur[(2*y)*curRes+2*x+1] +
					cur[(2*y+1)*curRes+2*x] + cur[(2*y+1)*curRes+2*x+1]
				next[y*nextRes+x] = sum
			}
		}
		levels = append(levels, next)
		cur = next
		curRes = nextRes
	}

	// levels[len-1] is the 1x1 root; the mipmap is stored root-first so
	// that Sample can descend it as a quadtree.
	mipmap := make([]float32, 0, len(base)*4/3+1)
	for i := len(levels) - 1; i >= 0; i-- {
		mipmap = append(mipmap, levels[i]...)
	}

	total := mipmap[0]
	pdfs := make([]float32, resolution*resolution)
	if total > 0 {
		texelSolidAngle := 1 / (sampling.UniformSquareToSpherePdf() * float32(resolution*resolution)) // 4*pi/R^2 under the uniform-sphere parametrization
		norm := 1 / (total * texelSolidAngle)
		for i, v := range base {
			pdfs[i] = v * norm
		}
	}

	return &EnvMap{ShaderIndex: shaderIndex, Resolution: resolution, Pdfs: pdfs, Mipmap: mipmap}
}

func luminance(c types.Vec3) float32 {
	v := 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
	if v < 0 {
		return 0
	}
	return v
}

// Pdf returns the solid-angle sampling density for direction wo.
func (e *EnvMap) Pdf(wo types.Vec3) float32 {
	if e.Resolution == 0 {
		return 0
	}
	uv := sampling.UniformSphereToSquare(wo)
	x := int(uv[0]*float32(e.Resolution)) % e.Resolution
	y := int(uv[1]*float32(e.Resolution)) % e.Resolution
	if x < 0 {
		x += e.Resolution
	}
	if y < 0 {
		y += e.Resolution
	}
	return e.Pdfs[y*e.Resolution+x]
}

// Sample descends the quadtree mipmap, splitting the unit square at each
// level in proportion to the four children's emission sums, and returns the
// resulting direction together with its solid-angle PDF.
func (e *EnvMap) Sample(rnd types.Vec2) (types.Vec3, float32) {
	if e.Resolution == 0 || e.Mipmap[0] <= 0 {
		return types.Vec3{}, 0
	}

	uv := rnd
	currentResolution := 1
	shiftX, shiftY := 0, 0

	levelOffset := 0
	for currentResolution < e.Resolution {
		levelOffset += currentResolution * currentResolution
		shiftX *= 2
		shiftY *= 2
		currentResolution *= 2

		// The four children of the current texel, stored row-major in this
		// level, normalized into conditional probabilities.
		first := levelOffset + shiftY*currentResolution + shiftX
		topLeft := e.Mipmap[first]
		topRight := e.Mipmap[first+1]
		bottomLeft := e.Mipmap[first+currentResolution]
		sum := topLeft + topRight + bottomLeft + e.Mipmap[first+currentResolution+1]
		if sum <= 0 {
			return types.Vec3{}, 0
		}
		topLeft, topRight, bottomLeft = topLeft/sum, topRight/sum, bottomLeft/sum

		leftProb := topLeft + bottomLeft
		var topProb float32
		if uv[0] < leftProb {
			invProb := 1 / leftProb
			uv[0] *= invProb
			topProb = topLeft * invProb
		} else {
			invProb := 1 / (1 - leftProb)
			uv[0] = (uv[0] - leftProb) * invProb
			topProb = topRight * invProb
			shiftX++
		}

		if uv[1] < topProb {
			uv[1] /= topProb
		} else {
			uv[1] = (uv[1] - topProb) / (1 - topProb)
			shiftY++
		}
	}

	pdf := e.Pdfs[shiftY*e.Resolution+shiftX]
	finalUV := types.XY(
		(float32(shiftX)+uv[0])/float32(e.Resolution),
		(float32(shiftY)+uv[1])/float32(e.Resolution),
	)
	return sampling.UniformSquareToSphere(finalUV), pdf
}
