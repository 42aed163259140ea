package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveZO builds a right-handed perspective projection that maps view
// depth [-near, -far] to NDC z [0, 1] (Vulkan/D3D convention). mgl32.Perspective
// maps to [-1, 1] instead.
func PerspectiveZO(fovy, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	nmf := near - far
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / nmf, -1,
		0, 0, near * far / nmf, 0,
	}
}

// Unproject maps an NDC point back through inv (an inverse projection) and
// divides by w.
func Unproject(inv mgl32.Mat4, ndc mgl32.Vec3) mgl32.Vec3 {
	v := inv.Mul4x1(ndc.Vec4(1))
	return v.Vec3().Mul(1 / v.W())
}
