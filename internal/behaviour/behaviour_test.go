package behaviour

import (
	"math"
	"testing"

	"LightGrid/internal/renderer"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

type MockBehaviour struct {
	started int
	updated int
	fixed   int
}

func (m *MockBehaviour) Start()         { m.started++ }
func (m *MockBehaviour) Update(float32) { m.updated++ }
func (m *MockBehaviour) UpdateFixed()   { m.fixed++ }

func TestManagerStartsOnce(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)

	m.UpdateAll(0.016)
	m.UpdateAll(0.016)
	m.UpdateAllFixed()

	if b.started != 1 {
		t.Errorf("Start should run once, ran %d times", b.started)
	}
	if b.updated != 2 || b.fixed != 1 {
		t.Errorf("Unexpected update counts %d/%d", b.updated, b.fixed)
	}
}

func TestManagerRemove(t *testing.T) {
	m := NewBehaviourManager()
	a, b := &MockBehaviour{}, &MockBehaviour{}
	m.Add(a)
	m.Add(b)

	m.Remove(a)
	m.UpdateAll(0.016)

	if m.Len() != 1 || a.updated != 0 || b.updated != 1 {
		t.Errorf("Removed behaviour should not update")
	}

	m.Clear()
	if m.Len() != 0 {
		t.Error("Clear should remove everything")
	}
}

func TestOrbitKeepsRadius(t *testing.T) {
	light := renderer.CreatePointLight(mgl32.Vec3{5, 1, 0}, mgl32.Vec3{1, 1, 1}, 1, 3)
	o := &Orbit{Light: light, Radius: 5, Speed: 1}
	m := NewBehaviourManager()
	m.Add(o)

	for i := 0; i < 50; i++ {
		m.UpdateAll(0.1)
	}

	d := light.Position.Sub(mgl32.Vec3{0, 1, 0}).Len()
	if math.Abs(float64(d-5)) > 1e-3 {
		t.Errorf("Light should stay on the orbit, distance %f", d)
	}
	if light.Position.Y() != 1 {
		t.Errorf("Orbit should not change height")
	}
}

func TestBounceStaysInRange(t *testing.T) {
	light := renderer.CreatePointLight(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{1, 1, 1}, 1, 3)
	b := &Bounce{Light: light, Height: 2, Speed: 3}
	m := NewBehaviourManager()
	m.Add(b)

	for i := 0; i < 100; i++ {
		m.UpdateAll(0.05)
		if y := light.Position.Y(); y < 8-1e-4 || y > 12+1e-4 {
			t.Fatalf("Height out of range: %f", y)
		}
	}
}

func TestFlickerBounded(t *testing.T) {
	light := renderer.CreatePointLight(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 2, 3)
	f := &Flicker{Light: light, Amount: 0.5, Noise: perlin.NewPerlin(2, 2, 3, 42)}
	m := NewBehaviourManager()
	m.Add(f)

	for i := 0; i < 100; i++ {
		m.UpdateAllFixed()
		if light.Intensity < 1-1e-5 || light.Intensity > 3+1e-5 {
			t.Fatalf("Intensity out of range: %f", light.Intensity)
		}
	}
}
