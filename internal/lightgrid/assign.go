package lightgrid

import (
	"fmt"

	"LightGrid/internal/geometry"
	"LightGrid/internal/logger"

	"go.uber.org/zap"
)

// AppendLights records the frame's lights and assigns them to clusters.
// Light i of the list becomes record i of the light buffer and is referenced
// as index i by the clusters it touches. Within a cluster point lights come
// first, then spot, projector and decal lights, each in list order.
func (g *LightGrid) AppendLights(lights []LightSource, view View, atlas ShadowAtlas) error {
	// Staging is rebuilt below; an unfinished frame must not be uploaded against it.
	g.pending = false
	g.RebuildSlices(view.GetProjectionMatrix())

	if len(lights) > g.cfg.MaxLights {
		logger.Log.Warn("Too many lights for the light grid, dropping extras",
			zap.Int("lights", len(lights)),
			zap.Int("maxLights", g.cfg.MaxLights))
		lights = lights[:g.cfg.MaxLights]
	}

	viewMat := view.GetViewMatrix()
	g.staging = g.staging[:0]
	g.entries = g.entries[:0]
	for i := range g.byType {
		g.byType[i] = g.byType[i][:0]
	}

	for i, l := range lights {
		kind := l.Kind()
		pos := geometry.TransformPoint(viewMat, l.WorldPosition())
		dir := viewMat.Mul4x1(l.WorldDirection().Vec4(0)).Vec3()
		if dir.Len() > 0 {
			dir = dir.Normalize()
		}
		record := l.ShaderRecord(pos, dir, atlas)
		g.staging = record.AppendTo(g.staging)

		g.entries = append(g.entries, lightEntry{source: l, kind: kind, index: uint32(i)})
		if t := typeSlot(kind); t >= 0 {
			g.byType[t] = append(g.byType[t], i)
		}
	}

	if err := g.computeBounds(viewMat); err != nil {
		return fmt.Errorf("lightgrid: light bounds: %w", err)
	}

	g.assign()
	g.pending = true
	return nil
}

// assign runs every cluster against every light of each clustered type.
func (g *LightGrid) assign() {
	for si := range g.slices {
		slice := &g.slices[si]
		slice.Indices = slice.Indices[:0]
		for ci := range slice.Clusters {
			slice.Clusters[ci] = ClusterRecord{}
		}
	}

	for si := range g.slices {
		slice := &g.slices[si]
		infos := g.slicer.Clusters(si)
		for ci := range slice.Clusters {
			// Every category tests this cluster's own bounds.
			box := infos[ci].Bounds
			record := &slice.Clusters[ci]
			for t, kind := range clusteredTypes {
				for _, li := range g.byType[t] {
					e := &g.entries[li]
					if !box.Intersects(e.bounds) {
						continue
					}
					slice.Indices = append(slice.Indices, e.index)
					record.add(kind)
				}
			}
		}
	}
}

func typeSlot(kind LightType) int {
	for i, t := range clusteredTypes {
		if t == kind {
			return i
		}
	}
	return -1
}
