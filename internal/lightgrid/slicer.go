package lightgrid

import (
	"LightGrid/internal/geometry"
	"LightGrid/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var viewForward = mgl32.Vec3{0, 0, -1}

// Slicer cuts the view frustum into clusters. Geometry is cached per
// projection matrix and only recomputed when the matrix changes.
type Slicer struct {
	cfg Config

	projection mgl32.Mat4
	built      bool
	rebuilds   int

	// view-space frustum corners at NDC (-1,-1) and (1,1)
	nearMin, nearMax mgl32.Vec3
	farMin, farMax   mgl32.Vec3
	zNear            float32

	depths   [][2]float32 // per slice: start, end (negative view z)
	clusters [][]ClusterInfo
}

// NewSlicer allocates geometry storage for cfg. cfg must be valid.
func NewSlicer(cfg Config) *Slicer {
	s := &Slicer{
		cfg:      cfg,
		depths:   make([][2]float32, cfg.CountDepth),
		clusters: make([][]ClusterInfo, cfg.CountDepth),
	}
	for i := range s.clusters {
		s.clusters[i] = make([]ClusterInfo, cfg.ClustersPerSlice())
	}
	return s
}

// Rebuild recomputes the cluster geometry for projection. It returns false,
// doing nothing, when projection equals the matrix of the last rebuild.
func (s *Slicer) Rebuild(projection mgl32.Mat4) bool {
	if s.built && projection == s.projection {
		return false
	}

	inv := projection.Inv()
	ndcNear := float32(-1)
	if s.cfg.DepthZeroToOne {
		ndcNear = 0
	}
	s.nearMin = geometry.Unproject(inv, mgl32.Vec3{-1, -1, ndcNear})
	s.nearMax = geometry.Unproject(inv, mgl32.Vec3{1, 1, ndcNear})
	s.farMin = geometry.Unproject(inv, mgl32.Vec3{-1, -1, 1})
	s.farMax = geometry.Unproject(inv, mgl32.Vec3{1, 1, 1})
	s.zNear = s.nearMin.Z()

	countX, countY := float32(s.cfg.CountX), float32(s.cfg.CountY)
	start := float32(0)
	for si := 0; si < s.cfg.CountDepth; si++ {
		end := -s.cfg.SliceMaxDepth(si)
		s.depths[si] = [2]float32{start, end}

		infos := s.clusters[si]
		for j := 0; j < s.cfg.CountY; j++ {
			ty0, ty1 := float32(j)/countY, float32(j+1)/countY
			for i := 0; i < s.cfg.CountX; i++ {
				tx0, tx1 := float32(i)/countX, float32(i+1)/countX
				infos[i+j*s.cfg.CountX] = s.cluster(start, end, [4][2]float32{
					{tx0, ty0}, {tx1, ty0}, {tx1, ty1}, {tx0, ty1},
				})
			}
		}
		start = end
	}

	s.projection = projection
	s.built = true
	s.rebuilds++

	logger.Log.Debug("Cluster slices rebuilt",
		zap.Int("slices", s.cfg.CountDepth),
		zap.Int("clustersPerSlice", s.cfg.ClustersPerSlice()),
		zap.Float32("zNear", s.zNear),
		zap.Int("rebuilds", s.rebuilds))
	return true
}

// cluster builds one sub-frustum between two view depths from four corner
// positions given as fractions of the screen.
func (s *Slicer) cluster(start, end float32, uv [4][2]float32) ClusterInfo {
	var info ClusterInfo
	for k, t := range uv {
		n, f := s.ray(t)
		info.Corners[k] = pointAtDepth(n, f, start, s.zNear)
		info.Corners[k+4] = pointAtDepth(n, f, end, s.zNear)
	}
	info.Bounds = geometry.NewAABB(info.Corners[:]...)
	return info
}

// ray returns the near and far plane points of the corner ray at screen fraction t.
func (s *Slicer) ray(t [2]float32) (mgl32.Vec3, mgl32.Vec3) {
	n := mgl32.Vec3{
		lerp(s.nearMin.X(), s.nearMax.X(), t[0]),
		lerp(s.nearMin.Y(), s.nearMax.Y(), t[1]),
		s.nearMin.Z(),
	}
	f := mgl32.Vec3{
		lerp(s.farMin.X(), s.farMax.X(), t[0]),
		lerp(s.farMin.Y(), s.farMax.Y(), t[1]),
		s.farMin.Z(),
	}
	return n, f
}

// pointAtDepth walks from the near-plane point n towards f until view z
// reaches depth.
func pointAtDepth(n, f mgl32.Vec3, depth, zNear float32) mgl32.Vec3 {
	dir := f.Sub(n).Normalize()
	cosA := dir.Dot(viewForward)
	return n.Add(dir.Mul(hypotenuseLength(depth, zNear, cosA)))
}

// hypotenuseLength is the distance along a ray with angle cos_a to the view
// axis from the near plane to depth. Depths in front of the near plane give 0.
// A ray parallel to or facing away from the view plane (cosA <= 0) also gives
// 0: the corner collapses onto the near plane instead of running to infinity.
func hypotenuseLength(depth, zNear, cosA float32) float32 {
	if cosA <= 0 {
		return 0
	}
	l := (depth - zNear) / cosA
	if l > 0 {
		l = 0
	}
	return -l
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Rebuilds counts how often geometry was actually recomputed.
func (s *Slicer) Rebuilds() int { return s.rebuilds }

// Built reports whether Rebuild has run at least once.
func (s *Slicer) Built() bool { return s.built }

// Projection returns the matrix of the last rebuild.
func (s *Slicer) Projection() mgl32.Mat4 { return s.projection }

// Clusters returns the geometry of slice si in row-major (x + y*CountX) order.
// The slice is owned by the Slicer and is overwritten by the next rebuild.
func (s *Slicer) Clusters(si int) []ClusterInfo { return s.clusters[si] }

// SliceDepths returns the start and end view z of slice si (both <= 0).
func (s *Slicer) SliceDepths(si int) (start, end float32) {
	return s.depths[si][0], s.depths[si][1]
}

// FrustumCorners returns the 8 corners of the whole slice si, near face first.
func (s *Slicer) FrustumCorners(si int) [8]mgl32.Vec3 {
	start, end := s.SliceDepths(si)
	return s.cluster(start, end, [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}).Corners
}
