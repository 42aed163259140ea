package lightgrid

import (
	"LightGrid/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// LineDrawer is the debug-draw primitive used to visualize clusters.
type LineDrawer interface {
	DrawLine(p0, p1 mgl32.Vec3, color mgl32.Vec4)
}

// clusterEdges connects the 8 ClusterInfo corners: near face, far face, sides.
var clusterEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DrawCluster draws one cluster's wireframe with its corners moved by transform.
func DrawCluster(d LineDrawer, info ClusterInfo, transform mgl32.Mat4, color mgl32.Vec4) {
	var pts [8]mgl32.Vec3
	for i, c := range info.Corners {
		pts[i] = geometry.TransformPoint(transform, c)
	}
	for _, e := range clusterEdges {
		d.DrawLine(pts[e[0]], pts[e[1]], color)
	}
}

// DrawSlice draws every cluster of a slice.
func DrawSlice(d LineDrawer, clusters []ClusterInfo, transform mgl32.Mat4, color mgl32.Vec4) {
	for _, info := range clusters {
		DrawCluster(d, info, transform, color)
	}
}

// DrawDebug draws the grid through transform, usually the inverse view matrix
// so the clusters appear in world space. With litOnly set only clusters that
// received lights in the last AppendLights are drawn.
func (g *LightGrid) DrawDebug(d LineDrawer, transform mgl32.Mat4, color mgl32.Vec4, litOnly bool) {
	if !g.slicer.Built() {
		return
	}
	for si := range g.slices {
		infos := g.slicer.Clusters(si)
		if !litOnly {
			DrawSlice(d, infos, transform, color)
			continue
		}
		for ci, r := range g.slices[si].Clusters {
			if r.Total() > 0 {
				DrawCluster(d, infos[ci], transform, color)
			}
		}
	}
}
