// Package bsdf implements the four BSDF lobes and the layered Uber BSDF that
// composes them (C6, C7), built on top of the local shading frame in
// internal/frame (C5).
//
// Grounded on _examples/original_source/raymond/device/bsdf/lobes/*.hpp and
// bsdf/UberShader.hpp.
package bsdf

import (
	"github.com/achilleasa/go-pathtrace/internal/frame"
	"github.com/achilleasa/go-pathtrace/types"
)

// The shading-frame helpers below are thin re-exports of internal/frame so
// that the lobes in this package (and callers constructing BSDF samples) can
// refer to them unqualified, the way the original lobe headers do.

func SameHemisphere(wi, wo types.Vec3) bool { return frame.SameHemisphere(wi, wo) }

func CosTheta(w types.Vec3) float32    { return frame.CosTheta(w) }
func CosTheta2(w types.Vec3) float32   { return frame.CosTheta2(w) }
func AbsCosTheta(w types.Vec3) float32 { return frame.AbsCosTheta(w) }

func SinTheta2(w types.Vec3) float32 { return frame.SinTheta2(w) }
func SinTheta(w types.Vec3) float32  { return frame.SinTheta(w) }

func CosPhiSinTheta(w types.Vec3) float32 { return frame.CosPhiSinTheta(w) }
func SinPhiSinTheta(w types.Vec3) float32 { return frame.SinPhiSinTheta(w) }

func TanTheta(w types.Vec3) float32  { return frame.TanTheta(w) }
func TanTheta2(w types.Vec3) float32 { return frame.TanTheta2(w) }

func BuildOrthonormalBasis(n types.Vec3) types.Mat3 { return frame.BuildOrthonormalBasis(n) }

func ToLocal(basis types.Mat3, w types.Vec3) types.Vec3 { return frame.ToLocal(basis, w) }
func ToWorld(basis types.Mat3, w types.Vec3) types.Vec3 { return frame.ToWorld(basis, w) }

func Reflect(i, wh types.Vec3) types.Vec3 { return frame.Reflect(i, wh) }

func Refract(i, n types.Vec3, eta float32) types.Vec3 { return frame.Refract(i, n, eta) }
