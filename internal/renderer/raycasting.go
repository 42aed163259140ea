package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// RayIntersectSphere tests if a ray intersects a sphere
// Returns: (intersected, distance, intersection point)
func RayIntersectSphere(ray Ray, sphereCenter mgl32.Vec3, radius float32) (bool, float32, mgl32.Vec3) {
	oc := ray.Origin.Sub(sphereCenter)

	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false, 0, mgl32.Vec3{}
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	// Closest hit in front of the origin; an origin inside the sphere hits at t2
	var t float32
	switch {
	case t1 > 0:
		t = t1
	case t2 > 0:
		t = t2
	default:
		return false, 0, mgl32.Vec3{}
	}

	return true, t, ray.Origin.Add(ray.Direction.Mul(t))
}

// ScreenToRay converts a window position (origin top left) to a world space ray
func ScreenToRay(camera *Camera, screenX, screenY float32, windowWidth, windowHeight int) Ray {
	ndcX := 2.0*screenX/float32(windowWidth) - 1.0
	ndcY := 1.0 - 2.0*screenY/float32(windowHeight)

	// Any depth inside the clip volume gives the same eye-space direction
	eyeCoords := camera.Projection.Inv().Mul4x1(mgl32.Vec4{ndcX, ndcY, 0.5, 1.0})
	eyeDir := mgl32.Vec4{eyeCoords.X() / eyeCoords.W(), eyeCoords.Y() / eyeCoords.W(), eyeCoords.Z() / eyeCoords.W(), 0.0}

	worldDir := camera.GetViewMatrix().Inv().Mul4x1(eyeDir).Vec3().Normalize()
	return Ray{
		Origin:    camera.Position,
		Direction: worldDir,
	}
}

// PickLight returns the index of the nearest light whose bounding sphere
// the ray hits, or -1. Directional lights have no position and are skipped.
func PickLight(ray Ray, lights []*Light) int {
	best := -1
	var bestDist float32
	for i, l := range lights {
		if l.Range <= 0 && l.Size.Len() == 0 {
			continue
		}
		if hit, dist, _ := RayIntersectSphere(ray, l.Position, l.BoundingRadius()); hit && (best < 0 || dist < bestDist) {
			best, bestDist = i, dist
		}
	}
	return best
}
