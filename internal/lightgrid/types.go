package lightgrid

import (
	"encoding/binary"
	"math"

	"LightGrid/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType is the shading category of a light.
type LightType uint32

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
	LightProjector
	LightDecal
)

func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	case LightProjector:
		return "projector"
	case LightDecal:
		return "decal"
	default:
		return "unknown"
	}
}

// clusteredTypes lists the categories assigned to clusters, in index order.
// Directional lights reach every pixel and are never clustered.
var clusteredTypes = [...]LightType{LightPoint, LightSpot, LightProjector, LightDecal}

// LightSource is a light handed over by the scene for one frame.
type LightSource interface {
	Kind() LightType
	WorldPosition() mgl32.Vec3
	WorldDirection() mgl32.Vec3
	// Bounds is the world-space influence volume.
	Bounds() geometry.OBB
	// ShaderRecord converts the light to its GPU form. Position and direction
	// are already in view space.
	ShaderRecord(viewPos, viewDir mgl32.Vec3, atlas ShadowAtlas) GPULight
}

// View is the camera the grid is built for.
type View interface {
	GetViewMatrix() mgl32.Mat4
	GetProjectionMatrix() mgl32.Mat4
}

// ShadowAtlas describes the shadow map atlas the light records point into.
type ShadowAtlas struct {
	Width  int
	Height int
}

// UVRect converts a pixel rectangle inside the atlas to (offset.xy, scale.xy)
// in normalized coordinates. An empty atlas yields a zero rectangle.
func (a ShadowAtlas) UVRect(x, y, w, h int) [4]float32 {
	if a.Width <= 0 || a.Height <= 0 {
		return [4]float32{}
	}
	aw, ah := float32(a.Width), float32(a.Height)
	return [4]float32{float32(x) / aw, float32(y) / ah, float32(w) / aw, float32(h) / ah}
}

// GPULightSize is the byte size of one light record.
const GPULightSize = 80

// GPULight is the std430 light record read by the shading pass.
type GPULight struct {
	Position     [3]float32 // offset  0: view space
	Type         uint32     // offset 12: LightType
	Color        [3]float32 // offset 16
	Intensity    float32    // offset 28
	Direction    [3]float32 // offset 32: view space, normalized
	Range        float32    // offset 44
	ShadowRect   [4]float32 // offset 48: atlas uv offset.xy, scale.xy
	CosInner     float32    // offset 64
	CosOuter     float32    // offset 68
	CastsShadows uint32     // offset 72
	_            uint32     // offset 76
}

// AppendTo appends the little-endian record to dst.
func (g *GPULight) AppendTo(dst []byte) []byte {
	var buf [GPULightSize]byte
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	put(0, g.Position[0])
	put(4, g.Position[1])
	put(8, g.Position[2])
	binary.LittleEndian.PutUint32(buf[12:], g.Type)
	put(16, g.Color[0])
	put(20, g.Color[1])
	put(24, g.Color[2])
	put(28, g.Intensity)
	put(32, g.Direction[0])
	put(36, g.Direction[1])
	put(40, g.Direction[2])
	put(44, g.Range)
	for i, v := range g.ShadowRect {
		put(48+4*i, v)
	}
	put(64, g.CosInner)
	put(68, g.CosOuter)
	binary.LittleEndian.PutUint32(buf[72:], g.CastsShadows)
	return append(dst, buf[:]...)
}

// ClusterRecordSize is the byte size of one packed cluster.
const ClusterRecordSize = 20

// ClusterRecord is the per-cluster entry of the light-grid buffer.
type ClusterRecord struct {
	PointCount     uint32
	SpotCount      uint32
	ProjectorCount uint32
	DecalCount     uint32
	Offset         uint32 // first entry in the light-index buffer
}

// Total is the number of light indices owned by the cluster.
func (r ClusterRecord) Total() uint32 {
	return r.PointCount + r.SpotCount + r.ProjectorCount + r.DecalCount
}

func (r *ClusterRecord) add(t LightType) {
	switch t {
	case LightPoint:
		r.PointCount++
	case LightSpot:
		r.SpotCount++
	case LightProjector:
		r.ProjectorCount++
	case LightDecal:
		r.DecalCount++
	}
}

// Put writes the record in field order, little-endian.
func (r ClusterRecord) Put(dst []byte) {
	_ = dst[ClusterRecordSize-1]
	binary.LittleEndian.PutUint32(dst[0:], r.PointCount)
	binary.LittleEndian.PutUint32(dst[4:], r.SpotCount)
	binary.LittleEndian.PutUint32(dst[8:], r.ProjectorCount)
	binary.LittleEndian.PutUint32(dst[12:], r.DecalCount)
	binary.LittleEndian.PutUint32(dst[16:], r.Offset)
}

// DecodeClusterRecords parses a packed light-grid buffer.
func DecodeClusterRecords(data []byte) []ClusterRecord {
	out := make([]ClusterRecord, len(data)/ClusterRecordSize)
	for i := range out {
		b := data[i*ClusterRecordSize:]
		out[i] = ClusterRecord{
			PointCount:     binary.LittleEndian.Uint32(b[0:]),
			SpotCount:      binary.LittleEndian.Uint32(b[4:]),
			ProjectorCount: binary.LittleEndian.Uint32(b[8:]),
			DecalCount:     binary.LittleEndian.Uint32(b[12:]),
			Offset:         binary.LittleEndian.Uint32(b[16:]),
		}
	}
	return out
}

// ClusterInfo is the CPU-side geometry of one cluster in view space.
// Corners 0-3 are the near face, 4-7 the far face, in the same winding.
type ClusterInfo struct {
	Corners [8]mgl32.Vec3
	Bounds  geometry.AABB
}

// Slice is one depth band: its cluster records and the light indices they own,
// concatenated in cluster order.
type Slice struct {
	Clusters []ClusterRecord
	Indices  []uint32
}
