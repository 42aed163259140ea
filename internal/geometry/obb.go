package geometry

import "github.com/go-gl/mathgl/mgl32"

// OBB is an oriented bounding box: a local-space extent placed in the world by Transform.
type OBB struct {
	Transform mgl32.Mat4 // local-to-world
	Min       mgl32.Vec3 // local-space minimum
	Max       mgl32.Vec3 // local-space maximum
}

// NewOBB places the local box [min, max] with the given transform.
func NewOBB(transform mgl32.Mat4, min, max mgl32.Vec3) OBB {
	return OBB{Transform: transform, Min: min, Max: max}
}

// Corners returns the 8 local-space corners. Bit 0 selects X, bit 1 Y, bit 2 Z.
func (o OBB) Corners() [8]mgl32.Vec3 {
	var corners [8]mgl32.Vec3
	for i := range corners {
		c := o.Min
		if i&1 != 0 {
			c[0] = o.Max[0]
		}
		if i&2 != 0 {
			c[1] = o.Max[1]
		}
		if i&4 != 0 {
			c[2] = o.Max[2]
		}
		corners[i] = c
	}
	return corners
}

// WorldCorners returns the corners transformed to world space.
func (o OBB) WorldCorners() [8]mgl32.Vec3 {
	corners := o.Corners()
	for i, c := range corners {
		corners[i] = TransformPoint(o.Transform, c)
	}
	return corners
}

// ViewSpaceAABB returns the view-space box enclosing obb as seen through view.
// It has no shared state and is safe to call from several goroutines.
func ViewSpaceAABB(obb OBB, view mgl32.Mat4) AABB {
	m := view.Mul4(obb.Transform)
	box := EmptyAABB()
	for _, c := range obb.Corners() {
		box = box.Extend(TransformPoint(m, c))
	}
	return box
}

// TransformPoint applies m to p and performs the homogeneous divide when the
// result is not affine.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if w := v.W(); w != 1 && w != 0 {
		return v.Vec3().Mul(1 / w)
	}
	return v.Vec3()
}
