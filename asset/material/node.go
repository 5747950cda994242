package material

import (
	"errors"
	"fmt"

	"github.com/achilleasa/go-pathtrace/types"
)

const (
	ParamReflectance   = "reflectance"
	ParamSpecularity   = "specularity"
	ParamTransmittance = "transmittance"
	ParamRadiance      = "radiance"
	ParamIntIOR        = "intIOR"
	ParamExtIOR        = "extIOR"
	ParamScale         = "scale"
	ParamRoughness     = "roughness"

	// Principled/anisotropic/velvet/hair leaf parameters.
	ParamBaseColor          = "baseColor"
	ParamIor                = "ior"
	ParamMetallic           = "metallic"
	ParamSpecularTint       = "specularTint"
	ParamAnisotropic        = "anisotropic"
	ParamSheen              = "sheen"
	ParamSheenTint          = "sheenTint"
	ParamClearcoat          = "clearcoat"
	ParamClearcoatRoughness = "clearcoatRoughness"
	ParamTransmission       = "transmission"
)

var (
	bxdfAllowedParameters = map[BxdfType]map[string]struct{}{
		BxdfEmissive: {
			ParamRadiance: struct{}{},
			ParamScale:    struct{}{},
		},
		BxdfDiffuse: {
			ParamReflectance: struct{}{},
		},
		BxdfConductor: {
			ParamSpecularity: struct{}{},
			ParamIntIOR:      struct{}{},
			ParamExtIOR:      struct{}{},
		},
		BxdfRoughtConductor: {
			ParamSpecularity: struct{}{},
			ParamIntIOR:      struct{}{},
			ParamExtIOR:      struct{}{},
			ParamRoughness:   struct{}{},
		},
		BxdfDielectric: {
			ParamSpecularity:   struct{}{},
			ParamTransmittance: struct{}{},
			ParamIntIOR:        struct{}{},
			ParamExtIOR:        struct{}{},
		},
		BxdfRoughDielectric: {
			ParamSpecularity:   struct{}{},
			ParamTransmittance: struct{}{},
			ParamIntIOR:        struct{}{},
			ParamExtIOR:        struct{}{},
			ParamRoughness:     struct{}{},
		},
		BxdfPrincipled: {
			ParamBaseColor:          struct{}{},
			ParamRoughness:          struct{}{},
			ParamMetallic:           struct{}{},
			ParamIor:                struct{}{},
			ParamSpecularTint:       struct{}{},
			ParamAnisotropic:        struct{}{},
			ParamSheen:              struct{}{},
			ParamSheenTint:          struct{}{},
			ParamClearcoat:          struct{}{},
			ParamClearcoatRoughness: struct{}{},
			ParamTransmission:       struct{}{},
		},
		BxdfGlass: {
			ParamSpecularity:   struct{}{},
			ParamTransmittance: struct{}{},
			ParamIntIOR:        struct{}{},
			ParamExtIOR:        struct{}{},
			ParamRoughness:     struct{}{},
		},
		BxdfGlossy: {
			ParamSpecularity: struct{}{},
			ParamRoughness:   struct{}{},
			ParamAnisotropic: struct{}{},
		},
		BxdfTranslucent: {
			ParamReflectance: struct{}{},
		},
		BxdfAnisotropic: {
			ParamSpecularity: struct{}{},
			ParamRoughness:   struct{}{},
			ParamAnisotropic: struct{}{},
			ParamIntIOR:      struct{}{},
			ParamExtIOR:      struct{}{},
		},
		BxdfRefraction: {
			ParamTransmittance: struct{}{},
			ParamRoughness:     struct{}{},
			ParamIntIOR:        struct{}{},
			ParamExtIOR:        struct{}{},
		},
		BxdfVelvet: {
			ParamReflectance: struct{}{},
			ParamRoughness:   struct{}{},
		},
		BxdfHair: {
			ParamReflectance: struct{}{},
			ParamRoughness:   struct{}{},
		},
		BxdfTransparent: {
			ParamReflectance: struct{}{},
		},
		BxdfBackground: {
			ParamRadiance: struct{}{},
			ParamScale:    struct{}{},
		},
	}
)

type ExprNode interface {
	Validate() error
}

type Vec3Node types.Vec3

type FloatNode float32

type MaterialNameNode string

type MaterialRefNode string

type TextureNode string

type BxdfParamNode struct {
	Name  string
	Value ExprNode
}

type BxdfParameterList []BxdfParamNode

type MixNode struct {
	Expressions [2]ExprNode
	Weights     [2]float32
}

type BumpMapNode struct {
	Expression ExprNode
	Texture    TextureNode
}

type MixMapNode struct {
	Expressions [2]ExprNode
	Texture     TextureNode
}

// AddShaderNode sums two sub-shaders (Blender/Cycles' AddShader): unlike
// MixNode it carries no weights of its own -- both branches are summed
// in full, which the stochastic evaluator reproduces by picking either
// branch with equal probability and doubling the selected branch's weight.
type AddShaderNode struct {
	Expressions [2]ExprNode
}

func (n AddShaderNode) Validate() error {
	var err error
	for argIndex, arg := range n.Expressions {
		if arg == nil {
			return fmt.Errorf("missing expression argument %d for %q", argIndex, "addShader")
		}
		err = arg.Validate()
		if err != nil {
			return fmt.Errorf("addShader argument %d: %v", argIndex, err)
		}
	}
	return nil
}

type NormalMapNode struct {
	Expression ExprNode
	Texture    TextureNode
}

type DisperseNode struct {
	Expression ExprNode
	IntIOR     Vec3Node
	ExtIOR     Vec3Node
}

type BxdfNode struct {
	Type       BxdfType
	Parameters BxdfParameterList
}

func (n Vec3Node) Validate() error {
	return nil
}

func (n FloatNode) Validate() error {
	return nil
}

func (n MaterialNameNode) Validate() error {
	if n == "" {
		return errors.New("material name cannot be empty")
	}
	return nil
}

func (n MaterialRefNode) Validate() error {
	if n == "" {
		return errors.New("material name cannot be empty")
	}
	return nil
}

func (n TextureNode) Validate() error {
	if n == "" {
		return errors.New("no texture path specified")
	}
	return nil
}

func (n BxdfParamNode) Validate() error {
	// Ensure energy conservation
	switch n.Name {
	case ParamReflectance:
		if v, isVec := n.Value.(Vec3Node); isVec && (v[0] >= 1.0 || v[1] >= 1.0 || v[2] >= 1.0) {
			return fmt.Errorf("energy conservation violation for Parameter %q; ensure that all vector components are < 1.0", n.Name)
		}
	case ParamSpecularity, ParamTransmittance:
		if v, isVec := n.Value.(Vec3Node); isVec && (v[0] > 1.0 || v[1] > 1.0 || v[2] > 1.0) {
			return fmt.Errorf("energy conservation violation for Parameter %q; ensure that all vector components are <= 1.0", n.Name)
		}
	case ParamRoughness:
		if v, isFloat := n.Value.(FloatNode); isFloat && v > 1.0 {
			return fmt.Errorf("values for Parameter %q must be in the [0, 1] range", n.Name)
		}
	case ParamIntIOR, ParamExtIOR:
		if v, isMat := n.Value.(MaterialNameNode); isMat {
			_, err := IOR(v)
			if err != nil {
				return err
			}
		}
	}

	return n.Value.Validate()
}

func (n BxdfParameterList) Validate() error {
	return nil
}

func (n BumpMapNode) Validate() error {
	if n.Expression == nil {
		return fmt.Errorf("missing expression argument for %q", "BumpMap")
	}
	err := n.Texture.Validate()
	if err != nil {
		return fmt.Errorf("BumpMap: %v", err)
	}
	return nil
}

func (n NormalMapNode) Validate() error {
	if n.Expression == nil {
		return fmt.Errorf("missing expression argument for %q", "NormalMap")
	}
	err := n.Texture.Validate()
	if err != nil {
		return fmt.Errorf("NormalMap: %v", err)
	}
	return nil
}

func (n DisperseNode) Validate() error {
	if n.Expression == nil {
		return fmt.Errorf("missing expression argument for %q", "Disperse")
	}
	if types.Vec3(n.IntIOR).MaxComponent() == 0.0 && types.Vec3(n.ExtIOR).MaxComponent() == 0.0 {
		return fmt.Errorf("Disperse: at least one of the intIOR and extIOR parameters must contain a non-zero value")
	}
	return nil
}

func (n MixMapNode) Validate() error {
	var err error
	for argIndex, arg := range n.Expressions {
		if arg == nil {
			return fmt.Errorf("missing expression argument %d for %q", argIndex, "mixMap")
		}
		err = arg.Validate()
		if err != nil {
			return fmt.Errorf("mixMap argument %d: %v", argIndex, err)
		}
	}

	err = n.Texture.Validate()
	if err != nil {
		return fmt.Errorf("MixMap: %v", err)
	}
	return nil
}

func (n MixNode) Validate() error {
	var err error
	for argIndex, arg := range n.Expressions {
		if arg == nil {
			return fmt.Errorf("missing expression argument %d for %q", argIndex, "mix")
		}
		err = arg.Validate()
		if err != nil {
			return fmt.Errorf("mix argument %d: %v", argIndex, err)
		}
		if n.Weights[argIndex] < 0 || n.Weights[argIndex] > 1.0 {
			return fmt.Errorf("mix weight %d: value must be in the [0, 1] range", argIndex)
		}
	}

	if n.Weights[0]+n.Weights[1] != 1.0 {
		return fmt.Errorf("mix weight sum must be equal to 1.0")
	}

	return nil
}

// ColorBlendType selects one of ColorMix's ten Cycles-style blend modes.
//
// Grounded on _examples/original_source/raymond/device/nodes/nodes.hpp's
// ColorMix::BLEND_TYPE_* switch.
type ColorBlendType int

const (
	BlendMix ColorBlendType = iota
	BlendAdd
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendSubtract
	BlendColor
	BlendLighten
	BlendDarken
	BlendValue
)

// ColorMixNode blends two value expressions with BlendType, weighted by
// Factor; Clamp saturates the result to [0, 1].
type ColorMixNode struct {
	BlendType ColorBlendType
	Color1    ExprNode
	Color2    ExprNode
	Factor    ExprNode
	Clamp     bool
}

func (n ColorMixNode) Validate() error {
	if n.Color1 == nil || n.Color2 == nil || n.Factor == nil {
		return fmt.Errorf("missing argument for %q", "colorMix")
	}
	for _, arg := range []ExprNode{n.Color1, n.Color2, n.Factor} {
		if err := arg.Validate(); err != nil {
			return fmt.Errorf("colorMix argument: %v", err)
		}
	}
	return nil
}

// MathOp selects one of Math's scalar operations.
//
// Grounded on nodes.hpp's Math::compute() switch.
type MathOp int

const (
	MathAdd MathOp = iota
	MathSubtract
	MathMultiply
	MathDivide
	MathMultiplyAdd
	MathPower
	MathMinimum
	MathMaximum
	MathLessThan
	MathGreaterThan
	MathModulo
)

// MathNode applies Operation to one, two or three (MultiplyAdd) scalar
// value expressions, optionally clamping the result to [0, 1].
type MathNode struct {
	Operation MathOp
	Value0    ExprNode
	Value1    ExprNode
	Value2    ExprNode
	Clamp     bool
}

func (n MathNode) Validate() error {
	if n.Value0 == nil {
		return fmt.Errorf("missing argument for %q", "math")
	}
	if err := n.Value0.Validate(); err != nil {
		return err
	}
	if n.Value1 != nil {
		if err := n.Value1.Validate(); err != nil {
			return err
		}
	}
	if n.Value2 != nil {
		if err := n.Value2.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TexCheckerNode reproduces nodes.hpp's tri-axis parity checker pattern.
type TexCheckerNode struct {
	Scale  float32
	Color1 ExprNode
	Color2 ExprNode
}

func (n TexCheckerNode) Validate() error {
	if n.Color1 == nil || n.Color2 == nil {
		return fmt.Errorf("missing argument for %q", "texChecker")
	}
	if err := n.Color1.Validate(); err != nil {
		return err
	}
	return n.Color2.Validate()
}

// TexGradientKind selects TexGradient's linear or spherical falloff.
type TexGradientKind int

const (
	GradientLinear TexGradientKind = iota
	GradientSpherical
)

// TexGradientNode produces a grayscale ramp driven by the surface UV,
// standing in for nodes.hpp's generated-coordinate gradient texture (UV is
// used as the input vector; see DESIGN.md for why).
type TexGradientNode struct {
	Kind TexGradientKind
}

func (n TexGradientNode) Validate() error { return nil }

// TexNoiseNode is the fractal noise texture; it is evaluated as hash-lattice
// value noise rather than nodes.hpp's Perlin gradient noise (see DESIGN.md).
type TexNoiseNode struct {
	Scale      float32
	Detail     float32
	Roughness  float32
	Distortion float32
}

func (n TexNoiseNode) Validate() error {
	if n.Scale == 0 {
		return fmt.Errorf("texNoise: scale must be non-zero")
	}
	return nil
}

// TexNishitaNode reproduces a simplified version of nodes.hpp's physical sky
// model (see DESIGN.md for the approximations taken).
type TexNishitaNode struct {
	SunElevation float32
	Turbidity    float32
	GroundAlbedo float32
}

func (n TexNishitaNode) Validate() error { return nil }

// TexStubKind enumerates the node kinds that nodes.hpp itself logs as
// "not supported yet" in MaterialBuilder.swift (TexMagic, TexVoronoi,
// TexMusgrave, TexBrick, TexWave, IES). They type-check and evaluate to a
// safe default, matching the original's own behaviour for these kinds.
type TexStubKind int

const (
	TexMagic TexStubKind = iota
	TexVoronoi
	TexMusgrave
	TexBrick
	TexWave
	TexIES
)

type TexStubNode struct{ Kind TexStubKind }

func (n TexStubNode) Validate() error { return nil }

// FresnelNode evaluates a dielectric Fresnel reflectance term at Ior.
type FresnelNode struct{ Ior float32 }

func (n FresnelNode) Validate() error {
	if n.Ior <= 0 {
		return fmt.Errorf("fresnel: ior must be positive")
	}
	return nil
}

// LayerWeightNode blends toward grazing angles by Blend, as used to drive a
// Fresnel-like mix factor without a physical IOR.
type LayerWeightNode struct{ Blend float32 }

func (n LayerWeightNode) Validate() error { return nil }

// BlackbodyNode converts a temperature in Kelvin to an RGB color.
type BlackbodyNode struct{ Temperature float32 }

func (n BlackbodyNode) Validate() error {
	if n.Temperature <= 0 {
		return fmt.Errorf("blackbody: temperature must be positive")
	}
	return nil
}

// MappingNode applies a scale/rotation/location transform. Since the
// shading pipeline only threads a surface UV (not full generated/object
// coordinates) through to node evaluation, Mapping transforms the UV
// treated as a vector (documented simplification, see DESIGN.md).
type MappingNode struct {
	Scale    types.Vec3
	Rotation types.Vec3
	Location types.Vec3
}

func (n MappingNode) Validate() error { return nil }

// HueSaturationNode shifts Color's hue/saturation/value, blended by Factor.
type HueSaturationNode struct {
	Hue, Saturation, Value, Factor float32
	Color                          ExprNode
}

func (n HueSaturationNode) Validate() error {
	if n.Color == nil {
		return fmt.Errorf("missing argument for %q", "hueSaturation")
	}
	return n.Color.Validate()
}

// BrightnessContrastNode applies a linear brightness/contrast adjustment.
type BrightnessContrastNode struct {
	Bright, Contrast float32
	Color            ExprNode
}

func (n BrightnessContrastNode) Validate() error {
	if n.Color == nil {
		return fmt.Errorf("missing argument for %q", "brightnessContrast")
	}
	return n.Color.Validate()
}

// GammaNode raises Color to the power Gamma.
type GammaNode struct {
	Gamma float32
	Color ExprNode
}

func (n GammaNode) Validate() error {
	if n.Color == nil {
		return fmt.Errorf("missing argument for %q", "gamma")
	}
	return n.Color.Validate()
}

// ColorInvertNode inverts Color, blended by Factor.
type ColorInvertNode struct {
	Factor float32
	Color  ExprNode
}

func (n ColorInvertNode) Validate() error {
	if n.Color == nil {
		return fmt.Errorf("missing argument for %q", "colorInvert")
	}
	return n.Color.Validate()
}

// MapRangeNode linearly remaps Value from [FromMin, FromMax] to
// [ToMin, ToMax], optionally clamping the result.
type MapRangeNode struct {
	FromMin, FromMax, ToMin, ToMax float32
	Clamp                          bool
	Value                          ExprNode
}

func (n MapRangeNode) Validate() error {
	if n.Value == nil {
		return fmt.Errorf("missing argument for %q", "mapRange")
	}
	return n.Value.Validate()
}

// ColorRampNode piecewise-linearly interpolates between Color0 (at Pos0) and
// Color1 (at Pos1) as Value sweeps between the two positions, clamping
// outside that range. A two-stop ramp rather than nodes.hpp's arbitrary
// stop list.
type ColorRampNode struct {
	Pos0, Pos1     float32
	Color0, Color1 ExprNode
	Value          ExprNode
}

func (n ColorRampNode) Validate() error {
	if n.Value == nil || n.Color0 == nil || n.Color1 == nil {
		return fmt.Errorf("missing argument for %q", "colorRamp")
	}
	return n.Value.Validate()
}

func (n BxdfNode) Validate() error {
	if n.Type == bxdfInvalid {
		return fmt.Errorf("invalid BXDF type")
	}

	// Validate list of allowed Parameter names
	var err error
	for _, Param := range n.Parameters {
		if _, isAllowed := bxdfAllowedParameters[n.Type][Param.Name]; !isAllowed {
			return fmt.Errorf("bxdf type %q does not support Parameter %q", n.Type, Param.Name)
		}

		// Validate Parameter
		if err = Param.Validate(); err != nil {
			return err
		}
	}

	return nil
}
