package lightgrid

import (
	"LightGrid/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// ClusterAt finds the cluster holding a view-space position the way the
// shading pass does: slice from the view distance, x/y from the projected
// screen position. ok is false outside the grid.
func (g *LightGrid) ClusterAt(viewPos mgl32.Vec3) (slice, x, y int, ok bool) {
	if !g.slicer.Built() {
		return 0, 0, 0, false
	}
	depth := -viewPos.Z()
	if depth < g.cfg.Near || depth > g.cfg.Far {
		return 0, 0, 0, false
	}

	ndc := geometry.TransformPoint(g.slicer.Projection(), viewPos)
	fx := (ndc.X() + 1) / 2
	fy := (ndc.Y() + 1) / 2
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, 0, false
	}

	x = min(int(fx*float32(g.cfg.CountX)), g.cfg.CountX-1)
	y = min(int(fy*float32(g.cfg.CountY)), g.cfg.CountY-1)
	return g.cfg.SliceForDepth(depth), x, y, true
}

// ClusterLights returns the light indices assigned to cluster (slice, x, y)
// by the last AppendLights.
func (g *LightGrid) ClusterLights(slice, x, y int) []uint32 {
	s := &g.slices[slice]
	ci := x + y*g.cfg.CountX
	start := uint32(0)
	for i := 0; i < ci; i++ {
		start += s.Clusters[i].Total()
	}
	return s.Indices[start : start+s.Clusters[ci].Total()]
}
