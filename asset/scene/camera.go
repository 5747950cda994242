package scene

import (
	"fmt"

	"github.com/achilleasa/go-pathtrace/types"
)

// Frustrum stores the ray directions for the four corners of the camera
// frustrum. Primary rays for any pixel are generated by bilinearly
// interpolating between these corner rays, avoiding a per-pixel
// unproject/matrix-multiply.
type Frustrum [4]types.Vec4

func (fr Frustrum) String() string {
	return fmt.Sprintf(
		"Frustrum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// Camera controls the scene's viewpoint and generates primary rays for the
// wavefront tracer via frustum-corner interpolation (C12).
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3
	Pitch    float32
	Yaw      float32

	ViewMat  types.Mat4
	ProjMat  types.Mat4
	Frustrum Frustrum

	// Vertical field of view, in degrees.
	FOV float32

	// Lens settings for depth-of-field sampling. ApertureRadius == 0
	// disables DOF and the lens sample is ignored.
	ApertureRadius float32
	FocalDistance  float32

	// Invert the Y axis of the frustrum corners; needed when the
	// rendered image is stored top-down.
	InvertY bool
}

// NewCamera creates a camera looking down -Z from the origin with the given
// vertical field of view.
func NewCamera(fov float32) *Camera {
	return &Camera{
		ViewMat:       types.Ident4(),
		ProjMat:       types.Ident4(),
		Position:      types.Vec3{0, 0, 0},
		LookAt:        types.Vec3{0, 0, -1},
		Up:            types.Vec3{0, 1, 0},
		FOV:           fov,
		FocalDistance: 1.0,
	}
}

// SetupProjection rebuilds the projection matrix for the given aspect ratio
// and refreshes the view matrix and frustrum corners.
func (c *Camera) SetupProjection(aspect float32) {
	c.ProjMat = types.Perspective4(c.FOV, aspect, 1, 1000)
	c.Update()
}

// Update rebuilds the view matrix and frustrum corners after Position,
// LookAt, Pitch or Yaw change.
func (c *Camera) Update() {
	dir := c.LookAt.Sub(c.Position).Normalize()
	pitchAxis := dir.Cross(c.Up)
	pitchQuat := types.QuatFromAxisAngle(pitchAxis, c.Pitch)
	yawQuat := types.QuatFromAxisAngle(c.Up, c.Yaw)

	orientQuat := pitchQuat.Mul(yawQuat).Normalize()

	dir = orientQuat.Rotate(dir)
	c.LookAt = c.Position.Add(dir.Mul(1.0))

	c.ViewMat = types.LookAtV(c.Position, c.LookAt, c.Up)
	c.updateFrustrum()
}

// InvViewProjMat returns the inverse of ProjMat * ViewMat, used to unproject
// clip-space corners back into world space.
func (c *Camera) InvViewProjMat() types.Mat4 {
	return c.ProjMat.Mul4(c.ViewMat).Inv()
}

// updateFrustrum derives a world-space ray direction for each of the four
// frustum corners by unprojecting clip-space coordinates and subtracting the
// eye position.
func (c *Camera) updateFrustrum() {
	var v types.Vec4
	invProjViewMat := c.InvViewProjMat()

	var yUp float32 = 1.0
	if c.InvertY {
		yUp = -1.0
	}

	v = invProjViewMat.Mul4x1(types.XYZW(-1, yUp, -1, 1))
	c.Frustrum[0] = v.Mul(1.0 / v[3]).Vec3().Sub(c.Position).Vec4(0)

	v = invProjViewMat.Mul4x1(types.XYZW(1, yUp, -1, 1))
	c.Frustrum[1] = v.Mul(1.0 / v[3]).Vec3().Sub(c.Position).Vec4(0)

	v = invProjViewMat.Mul4x1(types.XYZW(-1, -yUp, -1, 1))
	c.Frustrum[2] = v.Mul(1.0 / v[3]).Vec3().Sub(c.Position).Vec4(0)

	v = invProjViewMat.Mul4x1(types.XYZW(1, -yUp, -1, 1))
	c.Frustrum[3] = v.Mul(1.0 / v[3]).Vec3().Sub(c.Position).Vec4(0)
}

// PrimaryRay returns the origin and (unnormalized) direction of the primary
// ray through normalized image coordinates u, v in [0, 1], with (0, 0) at
// the top-left corner. lensSample is an optional (already disk-warped)
// offset used for depth-of-field; pass the zero value to disable it.
func (c *Camera) PrimaryRay(u, v float32, lensSample types.Vec2) (origin, dir types.Vec3) {
	top := c.Frustrum[0].Vec3().Add(c.Frustrum[1].Vec3().Sub(c.Frustrum[0].Vec3()).Mul(u))
	bottom := c.Frustrum[2].Vec3().Add(c.Frustrum[3].Vec3().Sub(c.Frustrum[2].Vec3()).Mul(u))
	dir = top.Add(bottom.Sub(top).Mul(v))

	origin = c.Position
	if c.ApertureRadius <= 0 {
		return origin, dir
	}

	// Depth-of-field: offset the ray origin on the lens disk and retarget
	// the direction through the point on the focal plane the un-jittered
	// ray would have hit.
	focalPoint := origin.Add(dir.Normalize().Mul(c.FocalDistance / frameForward(dir, c.LookAt.Sub(c.Position).Normalize())))

	right := dir.Cross(c.Up).Normalize()
	up := right.Cross(dir.Normalize())
	lensOffset := right.Mul(lensSample[0] * c.ApertureRadius).Add(up.Mul(lensSample[1] * c.ApertureRadius))

	origin = origin.Add(lensOffset)
	dir = focalPoint.Sub(origin)
	return origin, dir
}

// frameForward returns the cosine between a primary ray direction and the
// camera's forward axis, used to convert the focal distance (measured along
// the view axis) into a distance along the ray itself.
func frameForward(dir, forward types.Vec3) float32 {
	cosTheta := dir.Normalize().Dot(forward)
	if cosTheta < 1e-4 {
		return 1e-4
	}
	return cosTheta
}
