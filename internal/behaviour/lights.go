package behaviour

import (
	"math"

	"LightGrid/internal/renderer"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// Orbit circles a light around its starting position in the XZ plane.
type Orbit struct {
	Light  *renderer.Light
	Radius float32
	Speed  float32
	center mgl32.Vec3
	time   float32
}

func (o *Orbit) Start() {
	o.center = o.Light.Position.Sub(mgl32.Vec3{o.Radius, 0, 0})
}

func (o *Orbit) Update(deltaTime float32) {
	o.time += deltaTime * o.Speed

	x := float32(math.Cos(float64(o.time))) * o.Radius
	z := float32(math.Sin(float64(o.time))) * o.Radius

	o.Light.Position[0] = o.center[0] + x
	o.Light.Position[2] = o.center[2] + z
}

func (o *Orbit) UpdateFixed() {}

// Bounce moves a light up and down around its starting height.
type Bounce struct {
	Light  *renderer.Light
	Height float32
	Speed  float32
	startY float32
	time   float32
}

func (b *Bounce) Start() {
	b.startY = b.Light.Position.Y()
}

func (b *Bounce) Update(deltaTime float32) {
	b.time += deltaTime * b.Speed
	offset := float32(math.Sin(float64(b.time))) * b.Height
	b.Light.Position[1] = b.startY + offset
}

func (b *Bounce) UpdateFixed() {}

// Flicker drives a light's intensity with 1D perlin noise. Noise is sampled on
// the fixed tick so the result does not depend on frame rate.
type Flicker struct {
	Light  *renderer.Light
	Amount float32 // 0..1 share of the base intensity that may flicker
	Step   float64
	Noise  *perlin.Perlin
	base   float32
	t      float64
}

func (f *Flicker) Start() {
	f.base = f.Light.Intensity
	if f.Noise == nil {
		f.Noise = perlin.NewPerlin(2, 2, 3, 1)
	}
	if f.Step == 0 {
		f.Step = 0.1
	}
}

func (f *Flicker) Update(float32) {}

func (f *Flicker) UpdateFixed() {
	f.t += f.Step
	n := float32(f.Noise.Noise1D(f.t)) // roughly -1..1
	f.Light.Intensity = f.base * (1 + f.Amount*mgl32.Clamp(n, -1, 1))
}
