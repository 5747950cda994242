package material

// OpType represents a blend, modification, texture or color operator that
// is applied to one or more sub-expressions inside a material tree.
type OpType uint32

const (
	opInvalid OpType = 10000 + iota
	//
	OpMix
	OpMixMap
	OpAddShader
	OpBumpMap
	OpNormalMap
	OpDisperse
	// Value-graph nodes (C8 node catalog): these do not themselves
	// produce a bsdf.Uber, they produce a color/scalar consumed by a
	// parent node (another value node or a leaf bxdf parameter).
	OpValueConst
	OpTexImage
	OpTexChecker
	OpTexGradient
	OpTexNoise
	OpTexNishita
	OpTexStub
	OpMath
	OpColorMix
	OpColorRamp
	OpMapRange
	OpHueSaturation
	OpBrightnessContrast
	OpGamma
	OpColorInvert
	OpFresnel
	OpLayerWeight
	OpBlackbody
	OpMapping
	//
	lastOpEntry
)

// Helper function to check if a value represents an op type.
func IsOpType(t uint32) bool {
	return t > uint32(opInvalid) && t < uint32(lastOpEntry)
}

// IsValueOpType reports whether t names one of the value-producing graph
// nodes (as opposed to a bsdf-tree blend operator like Mix/MixMap).
func IsValueOpType(t uint32) bool {
	return t >= uint32(OpValueConst) && t < uint32(lastOpEntry)
}
