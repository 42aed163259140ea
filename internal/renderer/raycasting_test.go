package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRayIntersectSphere(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}

	hit, dist, point := RayIntersectSphere(ray, mgl32.Vec3{0, 0, -10}, 2)
	if !hit || math.Abs(float64(dist-8)) > 1e-4 || !point.ApproxEqual(mgl32.Vec3{0, 0, -8}) {
		t.Errorf("Expected hit at 8, got %v %f %v", hit, dist, point)
	}

	if hit, _, _ := RayIntersectSphere(ray, mgl32.Vec3{0, 0, 10}, 2); hit {
		t.Error("Sphere behind the ray should not be hit")
	}

	if hit, dist, _ := RayIntersectSphere(ray, mgl32.Vec3{0, 0, 0}, 3); !hit || math.Abs(float64(dist-3)) > 1e-4 {
		t.Errorf("Origin inside the sphere should hit the far side, got %v %f", hit, dist)
	}
}

func TestScreenToRayCenter(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	ray := ScreenToRay(cam, 400, 300, 800, 600)

	if !ray.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("Center of the screen should look forward, got %v", ray.Direction)
	}

	corner := ScreenToRay(cam, 0, 0, 800, 600)
	if corner.Direction.X() >= 0 || corner.Direction.Y() <= 0 {
		t.Errorf("Top left pixel should point up and left, got %v", corner.Direction)
	}
}

func TestPickLightNearest(t *testing.T) {
	lights := []*Light{
		CreateSunlight(mgl32.Vec3{0, -1, 0}),
		CreatePointLight(mgl32.Vec3{0, 0, -20}, mgl32.Vec3{1, 1, 1}, 1, 1),
		CreatePointLight(mgl32.Vec3{0, 0, -10}, mgl32.Vec3{1, 1, 1}, 1, 1),
		CreatePointLight(mgl32.Vec3{10, 0, -5}, mgl32.Vec3{1, 1, 1}, 1, 1),
	}
	ray := Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, -1}}

	if got := PickLight(ray, lights); got != 2 {
		t.Errorf("Expected light 2, got %d", got)
	}
	if got := PickLight(Ray{Direction: mgl32.Vec3{0, 1, 0}}, lights); got != -1 {
		t.Errorf("Expected no hit, got %d", got)
	}
}
