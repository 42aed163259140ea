package lightgrid

import (
	"LightGrid/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// boundsBatch is the number of lights one pool task handles.
const boundsBatch = 16

// computeBounds fills entries[i].bounds. With a pool every task owns a
// disjoint range of the pre-sized entries slice.
func (g *LightGrid) computeBounds(view mgl32.Mat4) error {
	if g.pool == nil || len(g.entries) <= boundsBatch {
		for i := range g.entries {
			g.entries[i].bounds = entryBounds(&g.entries[i], view)
		}
		return nil
	}

	group := g.pool.NewGroup()
	for lo := 0; lo < len(g.entries); lo += boundsBatch {
		part := g.entries[lo:min(lo+boundsBatch, len(g.entries))]
		group.Submit(func() {
			for i := range part {
				part[i].bounds = entryBounds(&part[i], view)
			}
		})
	}
	return group.Wait()
}

func entryBounds(e *lightEntry, view mgl32.Mat4) geometry.AABB {
	if e.kind == LightDirectional {
		return geometry.EmptyAABB()
	}
	return geometry.ViewSpaceAABB(e.source.Bounds(), view)
}
