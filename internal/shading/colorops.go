package shading

import (
	"math"

	"github.com/achilleasa/go-pathtrace/asset/material"
	"github.com/achilleasa/go-pathtrace/types"
)

// ColorMixBlend folds color2 into color1 according to blendType, weighted by
// fac, matching each of the ten Cycles-style blend modes. Grounded on
// _examples/original_source/raymond/device/nodes/nodes.hpp's
// ColorMix::BLEND_TYPE_* switch.
func ColorMixBlend(blendType material.ColorBlendType, c1, c2 types.Vec3, fac float32, clamp bool) types.Vec3 {
	fac = saturate(fac)

	var out types.Vec3
	switch blendType {
	case material.BlendAdd:
		out = c1.Add(c2.Mul(fac))
	case material.BlendMultiply:
		out = c1.Mul(1 - fac).Add(c1.MulVec3(c2).Mul(fac))
	case material.BlendScreen:
		white := types.XYZ(1, 1, 1)
		screen := white.Sub(white.Sub(c1).MulVec3(white.Sub(c2)))
		out = lerpVec3(c1, screen, fac)
	case material.BlendOverlay:
		out = types.XYZ(
			overlayChannel(c1[0], c2[0], fac),
			overlayChannel(c1[1], c2[1], fac),
			overlayChannel(c1[2], c2[2], fac),
		)
	case material.BlendSubtract:
		out = c1.Sub(c2.Mul(fac))
	case material.BlendLighten:
		lighten := types.XYZ(max32(c1[0], c2[0]), max32(c1[1], c2[1]), max32(c1[2], c2[2]))
		out = lerpVec3(c1, lighten, fac)
	case material.BlendDarken:
		darken := types.XYZ(min32(c1[0], c2[0]), min32(c1[1], c2[1]), min32(c1[2], c2[2]))
		out = lerpVec3(c1, darken, fac)
	case material.BlendColor:
		h2, s2, _ := rgbToHsv(c2)
		_, _, v1 := rgbToHsv(c1)
		out = lerpVec3(c1, hsvToRgb(h2, s2, v1), fac)
	case material.BlendValue:
		h1, s1, _ := rgbToHsv(c1)
		_, _, v2 := rgbToHsv(c2)
		out = lerpVec3(c1, hsvToRgb(h1, s1, v2), fac)
	default: // material.BlendMix
		out = lerpVec3(c1, c2, fac)
	}

	if clamp {
		out = saturateVec3(out)
	}
	return out
}

// overlayChannel implements Blender's per-channel overlay rule: below 0.5 the
// base channel darkens the blend, at/above 0.5 it lightens it.
func overlayChannel(c1, c2, fac float32) float32 {
	if c1 < 0.5 {
		return c1 * (1 - fac + 2*fac*c2)
	}
	return 1 - (1-fac+2*fac*(1-c2))*(1-c1)
}

// HueSaturation applies a hue shift, saturation scale and value scale to c,
// blended toward the original color by (1-factor).
func HueSaturation(c types.Vec3, hue, saturation, value, factor float32) types.Vec3 {
	h, s, v := rgbToHsv(c)
	h = h + (hue - 0.5)
	for h < 0 {
		h += 1
	}
	for h >= 1 {
		h -= 1
	}
	s = saturate(s * saturation)
	v = v * value
	shifted := hsvToRgb(h, s, v)
	return lerpVec3(c, shifted, saturate(factor))
}

// BrightnessContrast applies a linear brightness/contrast adjustment, as
// used by nodes.hpp's BrightnessContrast node.
func BrightnessContrast(c types.Vec3, bright, contrast float32) types.Vec3 {
	a := 1 + contrast
	b := bright - contrast*0.5
	return types.XYZ(
		saturate(a*c[0]+b),
		saturate(a*c[1]+b),
		saturate(a*c[2]+b),
	)
}

// Gamma raises c to the power gamma, channel-wise, guarding against a
// negative base.
func Gamma(c types.Vec3, gamma float32) types.Vec3 {
	return types.XYZ(
		powSafe(c[0], gamma),
		powSafe(c[1], gamma),
		powSafe(c[2], gamma),
	)
}

func powSafe(base, exp float32) float32 {
	if base <= 0 {
		return 0
	}
	return float32(math.Pow(float64(base), float64(exp)))
}

// ColorInvert inverts c, blended toward the original by (1-factor).
func ColorInvert(c types.Vec3, factor float32) types.Vec3 {
	inverted := types.XYZ(1-c[0], 1-c[1], 1-c[2])
	return lerpVec3(c, inverted, saturate(factor))
}

// MapRange linearly remaps value from [fromMin, fromMax] to [toMin, toMax],
// optionally clamping the result to that output range.
func MapRange(value, fromMin, fromMax, toMin, toMax float32, clamp bool) float32 {
	span := fromMax - fromMin
	if span == 0 {
		return toMin
	}
	t := (value - fromMin) / span
	out := toMin + t*(toMax-toMin)
	if clamp {
		lo, hi := toMin, toMax
		if lo > hi {
			lo, hi = hi, lo
		}
		if out < lo {
			out = lo
		} else if out > hi {
			out = hi
		}
	}
	return out
}

// EvalMath applies op to one, two or three scalar operands (MultiplyAdd uses
// all three), matching nodes.hpp's Math node.
func EvalMath(op material.MathOp, v0, v1, v2 float32, clamp bool) float32 {
	var out float32
	switch op {
	case material.MathAdd:
		out = v0 + v1
	case material.MathSubtract:
		out = v0 - v1
	case material.MathMultiply:
		out = v0 * v1
	case material.MathDivide:
		if v1 != 0 {
			out = v0 / v1
		}
	case material.MathMultiplyAdd:
		out = v0*v1 + v2
	case material.MathPower:
		out = powSafe(v0, v1)
	case material.MathMinimum:
		out = min32(v0, v1)
	case material.MathMaximum:
		out = max32(v0, v1)
	case material.MathLessThan:
		if v0 < v1 {
			out = 1
		}
	case material.MathGreaterThan:
		if v0 > v1 {
			out = 1
		}
	case material.MathModulo:
		if v1 != 0 {
			out = float32(math.Mod(float64(v0), float64(v1)))
		}
	default:
		out = v0
	}
	if clamp {
		out = saturate(out)
	}
	return out
}

func lerpVec3(a, b types.Vec3, t float32) types.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func saturate(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func saturateVec3(c types.Vec3) types.Vec3 {
	return types.XYZ(saturate(c[0]), saturate(c[1]), saturate(c[2]))
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// rgbToHsv/hsvToRgb implement the standard colorspace conversion (see e.g.
// nodes.hpp's rgb_to_hsv/hsv_to_rgb helpers used by HueSaturation/ColorMix).
func rgbToHsv(c types.Vec3) (h, s, v float32) {
	r, g, b := c[0], c[1], c[2]
	cmax := max32(r, max32(g, b))
	cmin := min32(r, min32(g, b))
	delta := cmax - cmin

	v = cmax
	if cmax <= 0 {
		return 0, 0, v
	}
	s = delta / cmax
	if delta == 0 {
		return 0, s, v
	}

	switch cmax {
	case r:
		h = (g - b) / delta
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h /= 6
	return h, s, v
}

func hsvToRgb(h, s, v float32) types.Vec3 {
	if s <= 0 {
		return types.XYZ(v, v, v)
	}
	h6 := h * 6
	i := int(math.Floor(float64(h6)))
	f := h6 - float32(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch ((i % 6) + 6) % 6 {
	case 0:
		return types.XYZ(v, t, p)
	case 1:
		return types.XYZ(q, v, p)
	case 2:
		return types.XYZ(p, v, t)
	case 3:
		return types.XYZ(p, q, v)
	case 4:
		return types.XYZ(t, p, v)
	default:
		return types.XYZ(v, p, q)
	}
}
