// Package scene builds the demo light field: lights scattered over a ground
// plane with perlin noise, animated by behaviours and culled against the camera.
package scene

import (
	"math/rand"

	"LightGrid/internal/behaviour"
	"LightGrid/internal/lightgrid"
	"LightGrid/internal/logger"
	"LightGrid/internal/renderer"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type Options struct {
	Lights  int
	Seed    int64
	Extent  float32  // half size of the square field
	Height  float32  // maximum height above the plane
	Scripts []string // behaviour names assigned round robin, empty for none
	Sun     bool     // add one directional light
}

func DefaultOptions() Options {
	return Options{
		Lights:  100,
		Seed:    1,
		Extent:  150,
		Height:  20,
		Scripts: []string{"orbit", "bounce", "flicker"},
		Sun:     true,
	}
}

type Scene struct {
	Lights     []*renderer.Light
	Behaviours *behaviour.BehaviourManager

	visible []lightgrid.LightSource
}

var palette = []mgl32.Vec3{
	{1.0, 0.85, 0.6},
	{0.6, 0.8, 1.0},
	{1.0, 0.4, 0.3},
	{0.5, 1.0, 0.5},
}

// Generate places opts.Lights lights. Noise decides where lights cluster, the
// seeded rng decides their kind.
func Generate(opts Options) *Scene {
	rng := rand.New(rand.NewSource(opts.Seed))
	noise := perlin.NewPerlin(2, 2, 3, opts.Seed)
	s := &Scene{Behaviours: behaviour.NewBehaviourManager()}

	if opts.Sun {
		s.Lights = append(s.Lights, renderer.CreateSunlight(mgl32.Vec3{-0.3, -1, -0.2}))
	}

	for len(s.Lights) < opts.Lights {
		x := (rng.Float32()*2 - 1) * opts.Extent
		z := (rng.Float32()*2 - 1) * opts.Extent
		// density in [0,1]; sparse areas reject most candidates
		density := float32(noise.Noise2D(float64(x)/float64(opts.Extent)*2, float64(z)/float64(opts.Extent)*2))*0.5 + 0.5
		density = mgl32.Clamp(density, 0.05, 1)
		if rng.Float32() > density {
			continue
		}
		y := 0.5 + density*opts.Height
		pos := mgl32.Vec3{x, y, z}
		color := palette[rng.Intn(len(palette))]
		rangeSize := 2 + rng.Float32()*8

		var light *renderer.Light
		switch roll := rng.Float32(); {
		case roll < 0.6:
			light = renderer.CreatePointLight(pos, color, 1+rng.Float32(), rangeSize)
		case roll < 0.8:
			dir := mgl32.Vec3{rng.Float32() - 0.5, -1, rng.Float32() - 0.5}
			light = renderer.CreateSpotLight(pos, dir, color, 2, rangeSize*2, 15, 25+rng.Float32()*20)
		case roll < 0.9:
			light = renderer.CreateProjectorLight(pos, mgl32.Vec3{0, -1, 0}, color, 1.5, rangeSize*2, 30)
			light.CastsShadows = true
			light.ShadowRect = [4]int{rng.Intn(8) * 512, rng.Intn(8) * 512, 512, 512}
		default:
			light = renderer.CreateDecal(mgl32.Vec3{x, 0, z}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{rangeSize, 1, rangeSize})
		}
		s.Lights = append(s.Lights, light)

		if len(opts.Scripts) > 0 && light.Type != lightgrid.LightDecal {
			name := opts.Scripts[len(s.Lights)%len(opts.Scripts)]
			if b := behaviour.CreateScript(name, light); b != nil {
				s.Behaviours.Add(b)
			}
		}
	}

	logger.Log.Info("Scene generated",
		zap.Int("lights", len(s.Lights)),
		zap.Int("behaviours", s.Behaviours.Len()),
		zap.Int64("seed", opts.Seed))
	return s
}

// Update advances every behaviour. fixed also runs the fixed tick.
func (s *Scene) Update(deltaTime float32, fixed bool) {
	if fixed {
		s.Behaviours.UpdateAllFixed()
	}
	s.Behaviours.UpdateAll(deltaTime)
}

// Visible returns the lights whose bounding sphere touches the camera frustum.
// Directional lights are always visible. The returned slice is reused by the next call.
func (s *Scene) Visible(camera *renderer.Camera) []lightgrid.LightSource {
	frustum := camera.CalculateFrustum()
	s.visible = s.visible[:0]
	for _, l := range s.Lights {
		if l.Type == lightgrid.LightDirectional || frustum.IntersectsSphere(l.Position, l.BoundingRadius()) {
			s.visible = append(s.visible, l)
		}
	}
	return s.visible
}

// All returns every light as a LightSource.
func (s *Scene) All() []lightgrid.LightSource {
	out := make([]lightgrid.LightSource, len(s.Lights))
	for i, l := range s.Lights {
		out[i] = l
	}
	return out
}
