package renderer

import (
	"math"

	"LightGrid/internal/geometry"
	"LightGrid/internal/lightgrid"

	"github.com/go-gl/mathgl/mgl32"
)

var ClearColorR float32 = 0.02 // Background clear color red
var ClearColorG float32 = 0.02 // Background clear color green
var ClearColorB float32 = 0.03 // Background clear color blue

// maxConeAngle keeps cone bounds finite.
const maxConeAngle = 89.0

type Light struct {
	Type      lightgrid.LightType
	Position  mgl32.Vec3
	Direction mgl32.Vec3 // Normalized, ignored by point lights
	Color     mgl32.Vec3
	Intensity float32
	Range     float32 // Influence radius or cone length

	// Spot and projector cone half angles in degrees
	InnerAngle float32
	OuterAngle float32

	// Decal half extents; zero means Range on every axis
	Size mgl32.Vec3

	CastsShadows bool
	ShadowRect   [4]int // x, y, w, h in shadow atlas pixels
}

func CreateLight() *Light {
	return &Light{
		Type:      lightgrid.LightPoint,
		Color:     mgl32.Vec3{1.0, 1.0, 1.0}, // White light
		Intensity: 1.0,
		Range:     10.0,
		Direction: mgl32.Vec3{0, -1, 0}, // Default direction pointing down
	}
}

// CreateDirectionalLight creates a directional light (like the sun)
func CreateDirectionalLight(direction mgl32.Vec3, color mgl32.Vec3, intensity float32) *Light {
	light := CreateLight()
	light.Type = lightgrid.LightDirectional
	light.Direction = direction.Normalize()
	light.Color = color
	light.Intensity = intensity
	light.Range = 0
	return light
}

func CreatePointLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32, range_ float32) *Light {
	light := CreateLight()
	light.Position = position
	light.Color = color
	light.Intensity = intensity
	light.Range = range_
	return light
}

func CreateSpotLight(position, direction, color mgl32.Vec3, intensity, range_, inner, outer float32) *Light {
	light := CreatePointLight(position, color, intensity, range_)
	light.Type = lightgrid.LightSpot
	light.Direction = direction.Normalize()
	light.InnerAngle = inner
	light.OuterAngle = outer
	return light
}

// CreateProjectorLight creates a spot-shaped light that projects a texture
// from the shadow atlas.
func CreateProjectorLight(position, direction, color mgl32.Vec3, intensity, range_, angle float32) *Light {
	light := CreateSpotLight(position, direction, color, intensity, range_, angle, angle)
	light.Type = lightgrid.LightProjector
	return light
}

// CreateDecal creates a box-shaped decal facing direction.
func CreateDecal(position, direction, size mgl32.Vec3) *Light {
	light := CreateLight()
	light.Type = lightgrid.LightDecal
	light.Position = position
	light.Direction = direction.Normalize()
	light.Size = size
	light.Range = size.Len()
	return light
}

// CreateSunlight creates a realistic sun light
func CreateSunlight(direction mgl32.Vec3) *Light {
	return CreateDirectionalLight(direction, mgl32.Vec3{1.0, 0.95, 0.8}, 1.2)
}

func (l *Light) Kind() lightgrid.LightType  { return l.Type }
func (l *Light) WorldPosition() mgl32.Vec3  { return l.Position }
func (l *Light) WorldDirection() mgl32.Vec3 { return l.Direction }

// basis returns a rotation whose local -Z axis points along the light direction.
func (l *Light) basis() mgl32.Mat4 {
	forward := l.Direction
	if forward.Len() == 0 {
		forward = mgl32.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(forward.Dot(up))) > 0.999 {
		up = mgl32.Vec3{1, 0, 0}
	}
	right := forward.Cross(up).Normalize()
	up = right.Cross(forward)
	back := forward.Mul(-1)
	return mgl32.Mat4FromCols(right.Vec4(0), up.Vec4(0), back.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
}

// Bounds returns the world-space influence volume. Point lights use a cube
// around the sphere, cones a box around the cone and decals their own box.
func (l *Light) Bounds() geometry.OBB {
	translate := mgl32.Translate3D(l.Position.X(), l.Position.Y(), l.Position.Z())
	switch l.Type {
	case lightgrid.LightSpot, lightgrid.LightProjector:
		angle := mgl32.Clamp(l.OuterAngle, 0, maxConeAngle)
		r := l.Range * float32(math.Tan(float64(mgl32.DegToRad(angle))))
		return geometry.NewOBB(translate.Mul4(l.basis()), mgl32.Vec3{-r, -r, -l.Range}, mgl32.Vec3{r, r, 0})
	case lightgrid.LightDecal:
		half := l.Size
		if half.Len() == 0 {
			half = mgl32.Vec3{l.Range, l.Range, l.Range}
		}
		return geometry.NewOBB(translate.Mul4(l.basis()), half.Mul(-1), half)
	default:
		r := l.Range
		return geometry.NewOBB(translate, mgl32.Vec3{-r, -r, -r}, mgl32.Vec3{r, r, r})
	}
}

func (l *Light) ShaderRecord(viewPos, viewDir mgl32.Vec3, atlas lightgrid.ShadowAtlas) lightgrid.GPULight {
	if viewDir.Len() > 0 {
		viewDir = viewDir.Normalize()
	}
	rec := lightgrid.GPULight{
		Position:  viewPos,
		Type:      uint32(l.Type),
		Color:     l.Color,
		Intensity: l.Intensity,
		Direction: viewDir,
		Range:     l.Range,
	}
	if l.Type == lightgrid.LightSpot || l.Type == lightgrid.LightProjector {
		rec.CosInner = float32(math.Cos(float64(mgl32.DegToRad(l.InnerAngle))))
		rec.CosOuter = float32(math.Cos(float64(mgl32.DegToRad(l.OuterAngle))))
	}
	if l.CastsShadows {
		rec.CastsShadows = 1
		rec.ShadowRect = atlas.UVRect(l.ShadowRect[0], l.ShadowRect[1], l.ShadowRect[2], l.ShadowRect[3])
	}
	return rec
}

// BoundingRadius is the radius of a sphere around Position enclosing the light's volume.
func (l *Light) BoundingRadius() float32 {
	switch l.Type {
	case lightgrid.LightSpot, lightgrid.LightProjector:
		angle := mgl32.Clamp(l.OuterAngle, 0, maxConeAngle)
		r := l.Range * float32(math.Tan(float64(mgl32.DegToRad(angle))))
		return float32(math.Sqrt(float64(l.Range*l.Range + 2*r*r)))
	case lightgrid.LightDecal:
		if l.Size.Len() == 0 {
			return l.Range * float32(math.Sqrt(3))
		}
		return l.Size.Len()
	default:
		return l.Range * float32(math.Sqrt(3))
	}
}
