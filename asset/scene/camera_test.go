package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/go-pathtrace/types"
)

func TestCameraFrustrumIsSymmetric(t *testing.T) {
	c := NewCamera(60)
	c.SetupProjection(1.0)

	// The four corner rays should be mirror images of each other across
	// the camera's forward axis for a symmetric, un-shifted frustum.
	tl, tr := c.Frustrum[0].Vec3(), c.Frustrum[1].Vec3()
	bl, br := c.Frustrum[2].Vec3(), c.Frustrum[3].Vec3()

	if math.Abs(float64(tl[0]+tr[0])) > 1e-4 {
		t.Fatalf("expected symmetric left/right corners, got %v and %v", tl, tr)
	}
	if math.Abs(float64(tl[1]-bl[1])-float64(tr[1]-br[1])) > 1e-4 {
		t.Fatalf("expected symmetric top/bottom corners, got %v and %v", tl, bl)
	}
}

func TestCameraPrimaryRayCenterMatchesLookAt(t *testing.T) {
	c := NewCamera(60)
	c.Position = types.XYZ(0, 0, 5)
	c.LookAt = types.XYZ(0, 0, 0)
	c.SetupProjection(1.0)

	origin, dir := c.PrimaryRay(0.5, 0.5, types.Vec2{})
	if origin != c.Position {
		t.Fatalf("expected primary ray origin to be the camera position without DOF, got %v", origin)
	}

	want := c.LookAt.Sub(c.Position).Normalize()
	got := dir.Normalize()
	if math.Abs(float64(want.Dot(got))-1) > 1e-3 {
		t.Fatalf("expected center ray to align with the look direction; dot=%v", want.Dot(got))
	}
}

func TestCameraPrimaryRayCornersDiverge(t *testing.T) {
	c := NewCamera(90)
	c.SetupProjection(1.0)

	_, topLeft := c.PrimaryRay(0, 0, types.Vec2{})
	_, bottomRight := c.PrimaryRay(1, 1, types.Vec2{})

	if topLeft.Normalize() == bottomRight.Normalize() {
		t.Fatalf("expected divergent corner rays for a wide FOV camera")
	}
}

func TestCameraDepthOfFieldOffsetsOrigin(t *testing.T) {
	c := NewCamera(60)
	c.ApertureRadius = 0.5
	c.FocalDistance = 10
	c.SetupProjection(1.0)

	origin, _ := c.PrimaryRay(0.5, 0.5, types.XY(1, 0))
	if origin == c.Position {
		t.Fatalf("expected a non-zero lens sample to offset the ray origin")
	}
}
