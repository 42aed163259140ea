package lightgrid

import (
	"encoding/binary"
	"math/rand"

	"LightGrid/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

type testView struct {
	view mgl32.Mat4
	proj mgl32.Mat4
}

func (v testView) GetViewMatrix() mgl32.Mat4       { return v.view }
func (v testView) GetProjectionMatrix() mgl32.Mat4 { return v.proj }

func defaultView() testView {
	return testView{
		view: mgl32.Ident4(),
		proj: geometry.PerspectiveZO(mgl32.DegToRad(60), 16.0/9.0, 0.1, 1000),
	}
}

type testLight struct {
	kind LightType
	pos  mgl32.Vec3
	dir  mgl32.Vec3
	obb  geometry.OBB
}

func boxLight(kind LightType, lo, hi mgl32.Vec3) *testLight {
	return &testLight{
		kind: kind,
		pos:  lo.Add(hi).Mul(0.5),
		dir:  mgl32.Vec3{0, 0, -1},
		obb:  geometry.NewOBB(mgl32.Ident4(), lo, hi),
	}
}

func (l *testLight) Kind() LightType            { return l.kind }
func (l *testLight) WorldPosition() mgl32.Vec3  { return l.pos }
func (l *testLight) WorldDirection() mgl32.Vec3 { return l.dir }
func (l *testLight) Bounds() geometry.OBB       { return l.obb }

func (l *testLight) ShaderRecord(viewPos, viewDir mgl32.Vec3, atlas ShadowAtlas) GPULight {
	return GPULight{
		Position:  viewPos,
		Type:      uint32(l.kind),
		Color:     [3]float32{1, 1, 1},
		Intensity: 1,
		Direction: viewDir,
		Range:     l.obb.Max.Sub(l.obb.Min).Len() / 2,
	}
}

var randomKinds = []LightType{LightPoint, LightPoint, LightSpot, LightProjector, LightDecal, LightDirectional}

func randomLights(seed int64, n int) []LightSource {
	rng := rand.New(rand.NewSource(seed))
	f := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }

	lights := make([]LightSource, n)
	for i := range lights {
		c := mgl32.Vec3{f(-30, 30), f(-15, 15), f(-120, -0.5)}
		h := mgl32.Vec3{f(0.2, 4), f(0.2, 4), f(0.2, 4)}
		lights[i] = boxLight(randomKinds[rng.Intn(len(randomKinds))], c.Sub(h), c.Add(h))
	}
	return lights
}

func decodeIndices(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out
}

type countingDrawer struct {
	lines int
	last  [2]mgl32.Vec3
}

func (d *countingDrawer) DrawLine(p0, p1 mgl32.Vec3, color mgl32.Vec4) {
	d.lines++
	d.last = [2]mgl32.Vec3{p0, p1}
}
