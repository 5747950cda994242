package types

import "github.com/go-gl/mathgl/mgl32"

// Mat3 and Mat4 mirror go-gl/mathgl's column-major storage so that the
// existing Mat4.Mat3() extraction in vector.go (upper-left 3x3 submatrix)
// continues to hold without modification.
type Mat3 mgl32.Mat3
type Mat4 mgl32.Mat4

// Identity matrices.
func Ident3() Mat3 { return Mat3(mgl32.Ident3()) }
func Ident4() Mat4 { return Mat4(mgl32.Ident4()) }

// Translate4 builds a homogeneous translation matrix.
func Translate4(v Vec3) Mat4 {
	return Mat4(mgl32.Translate3D(v[0], v[1], v[2]))
}

// Scale4 builds a homogeneous scale matrix.
func Scale4(v Vec3) Mat4 {
	return Mat4(mgl32.Scale3D(v[0], v[1], v[2]))
}

// RotateX4, RotateY4 and RotateZ4 build homogeneous rotation matrices for
// intrinsic Euler rotations about each axis (radians).
func RotateX4(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DX(angle)) }
func RotateY4(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DY(angle)) }
func RotateZ4(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DZ(angle)) }

// Perspective4 builds a right-handed perspective projection matrix; fov is
// the vertical field of view in radians.
func Perspective4(fovy, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovy, aspect, near, far))
}

// LookAtV builds a view matrix from an eye position, a look-at target and an
// up vector.
func LookAtV(eye, center, up Vec3) Mat4 {
	return Mat4(mgl32.LookAtV(mgl32.Vec3(eye), mgl32.Vec3(center), mgl32.Vec3(up)))
}

// Mul4 multiplies two 4x4 matrices (m * m2).
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(m2)))
}

// Mul3 multiplies two 3x3 matrices (m * m2).
func (m Mat3) Mul3(m2 Mat3) Mat3 {
	return Mat3(mgl32.Mat3(m).Mul3(mgl32.Mat3(m2)))
}

// Mul4x1 transforms a homogeneous Vec4 by this matrix.
func (m Mat4) Mul4x1(v Vec4) Vec4 {
	return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v)))
}

// MulPoint transforms a 3D point (implicit w=1) and returns its Vec3.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// MulDir transforms a 3D direction (implicit w=0) and returns its Vec3.
func (m Mat4) MulDir(d Vec3) Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// Mul3x1 transforms a Vec3 by this 3x3 matrix.
func (m Mat3) Mul3x1(v Vec3) Vec3 {
	return Vec3(mgl32.Mat3(m).Mul3x1(mgl32.Vec3(v)))
}

// Inv returns the inverse of this matrix.
func (m Mat4) Inv() Mat4 { return Mat4(mgl32.Mat4(m).Inv()) }
func (m Mat3) Inv() Mat3 { return Mat3(mgl32.Mat3(m).Inv()) }

// Transpose returns the transpose of this matrix.
func (m Mat4) Transpose() Mat4 { return Mat4(mgl32.Mat4(m).Transpose()) }
func (m Mat3) Transpose() Mat3 { return Mat3(mgl32.Mat3(m).Transpose()) }

// NormalMat3 derives the 3x3 normal transform (inverse-transpose of the
// upper-left 3x3 submatrix) for a given instance's point transform.
func (m Mat4) NormalMat3() Mat3 {
	return m.Mat3().Inv().Transpose()
}
