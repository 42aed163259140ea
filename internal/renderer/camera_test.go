package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Speed <= 0 {
		t.Error("Camera speed should be positive")
	}

	if cam.Sensitivity <= 0 {
		t.Error("Camera sensitivity should be positive")
	}

	if math.Abs(float64(cam.AspectRatio)-800.0/600.0) > 1e-6 {
		t.Errorf("Aspect ratio should be width/height, got %f", cam.AspectRatio)
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.Front = mgl32.Vec3{0, 0, -1}
	cam.Up = mgl32.Vec3{0, 1, 0}

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(origin.Z()+5)) > 1e-5 {
		t.Errorf("World origin should be 5 units ahead, got z=%f", origin.Z())
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraDepthZeroToOne(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.SetDepthZeroToOne(true)

	near := cam.Projection.Mul4x1(mgl32.Vec4{0, 0, -cam.Near, 1})
	if math.Abs(float64(near.Z()/near.W())) > 1e-5 {
		t.Errorf("Near plane should map to depth 0, got %f", near.Z()/near.W())
	}

	cam.SetDepthZeroToOne(false)
	near = cam.Projection.Mul4x1(mgl32.Vec4{0, 0, -cam.Near, 1})
	if math.Abs(float64(near.Z()/near.W()+1)) > 1e-4 {
		t.Errorf("Near plane should map to depth -1, got %f", near.Z()/near.W())
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	vp := cam.GetViewProjection()

	zero := mgl32.Mat4{}
	if vp == zero {
		t.Error("ViewProjection should not be zero matrix")
	}
}

func TestCameraVulkanMatrices(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.SetDepthZeroToOne(true)

	proj := cam.GetProjectionMatrixVulkan()
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			want := cam.Projection.At(row, col)
			if row == 1 {
				want = -want
			}
			if proj[col][row] != want {
				t.Fatalf("Element [%d][%d] = %f, want %f", col, row, proj[col][row], want)
			}
		}
	}

	view := cam.GetViewMatrixVulkan()
	if view[3][3] != 1 {
		t.Error("View matrix should keep w = 1")
	}
}

func TestCameraVulkanUniform(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.SetDepthZeroToOne(true)

	data := cam.VulkanUniform()

	if len(data) != CameraUniformSize {
		t.Fatalf("Expected %d bytes, got %d", CameraUniformSize, len(data))
	}
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(data[off:])) }
	vp := cam.GetViewProjectionVulkan()
	// third matrix, column 2 row 3
	if got := f(128 + (2*4+3)*4); got != vp[2][3] {
		t.Errorf("View-projection element mismatch: %f vs %f", got, vp[2][3])
	}
	if f(64+(1*4+1)*4) >= 0 {
		t.Error("Vulkan projection should flip Y")
	}
}

func TestCameraUpdateVectors(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Yaw = -90
	cam.Pitch = 0

	cam.updateCameraVectors()

	frontLen := cam.Front.Len()
	if math.Abs(float64(frontLen)-1.0) > 0.01 {
		t.Errorf("Front vector should be normalized, length=%f", frontLen)
	}
	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Yaw -90 should look down -Z, got %v", cam.Front)
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 0}

	cam.LookAt(mgl32.Vec3{10, 0, 0})

	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Errorf("Camera should face +X, got %v", cam.Front)
	}
}

func TestCameraMouseMovementClampsPitch(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.InvertMouse = false

	cam.ProcessMouseMovement(0, 5000, true)

	if cam.Pitch > 89.0 {
		t.Errorf("Pitch should be clamped, got %f", cam.Pitch)
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	for _, zeroToOne := range []bool{false, true} {
		cam := NewDefaultCamera(800, 600)
		cam.Position = mgl32.Vec3{0, 0, 0}
		cam.Front = mgl32.Vec3{0, 0, -1}
		cam.Up = mgl32.Vec3{0, 1, 0}
		cam.SetDepthZeroToOne(zeroToOne)

		f := cam.CalculateFrustum()

		if !f.IntersectsSphere(mgl32.Vec3{0, 0, -10}, 1) {
			t.Errorf("zeroToOne=%v: sphere in front should be visible", zeroToOne)
		}
		if f.IntersectsSphere(mgl32.Vec3{0, 0, 10}, 1) {
			t.Errorf("zeroToOne=%v: sphere behind should be culled", zeroToOne)
		}
		if !f.IntersectsSphere(mgl32.Vec3{0, 0, 1}, 2) {
			t.Errorf("zeroToOne=%v: sphere straddling the near plane should be visible", zeroToOne)
		}
	}
}
