package lightgrid

import (
	"fmt"

	"LightGrid/internal/logger"

	"go.uber.org/zap"
)

// Upload packs the appended frame into the GPU buffers. All buffers are grown
// before anything is mapped, so an allocation failure leaves the previous
// frame's buffers untouched. A frame without clustered lights skips the
// index buffer; a frame without lights also empties the light buffer's logical range.
func (g *LightGrid) Upload() error {
	if !g.pending {
		return ErrNoFrame
	}

	indexCount := 0
	for si := range g.slices {
		indexCount += len(g.slices[si].Indices)
	}

	sliceBytes := g.cfg.ClustersPerSlice() * ClusterRecordSize
	if err := g.gridBuf.Reserve(sliceBytes * g.cfg.CountDepth); err != nil {
		return fmt.Errorf("lightgrid: cluster buffer: %w", err)
	}
	if indexCount > 0 {
		if err := g.indexBuf.Reserve(indexCount * 4); err != nil {
			return fmt.Errorf("lightgrid: index buffer: %w", err)
		}
	}
	if len(g.staging) > 0 {
		if err := g.lightBuf.Reserve(len(g.staging)); err != nil {
			return fmt.Errorf("lightgrid: light buffer: %w", err)
		}
	}

	stats, err := g.packClusters(sliceBytes)
	if err != nil {
		return err
	}
	if stats.Indices != indexCount {
		return fmt.Errorf("lightgrid: packed %d indices, slices hold %d", stats.Indices, indexCount)
	}

	if indexCount > 0 {
		if err := g.packIndices(); err != nil {
			return err
		}
	}
	if len(g.staging) > 0 {
		if err := g.lightBuf.Write(g.staging); err != nil {
			return fmt.Errorf("lightgrid: light buffer: %w", err)
		}
	} else if err := g.lightBuf.Clear(); err != nil {
		return fmt.Errorf("lightgrid: light buffer: %w", err)
	}

	stats.Lights = len(g.entries)
	for _, ids := range g.byType {
		stats.ClusteredLights += len(ids)
	}
	stats.Rebuilt = g.rebuilt
	g.stats = stats
	g.pending = false
	g.rebuilt = false

	logger.Log.Debug("Light grid uploaded",
		zap.Int("lights", stats.Lights),
		zap.Int("indices", stats.Indices),
		zap.Int("activeClusters", stats.ActiveClusters),
		zap.Int("maxPerCluster", stats.MaxPerCluster),
		zap.Int("gridBytes", g.gridBuf.LogicalSize()))
	return nil
}

// packClusters assigns running offsets and writes every slice at its byte offset.
func (g *LightGrid) packClusters(sliceBytes int) (Stats, error) {
	var stats Stats

	c, err := g.gridBuf.Map()
	if err != nil {
		return stats, fmt.Errorf("lightgrid: cluster buffer: %w", err)
	}

	scratch := make([]byte, sliceBytes)
	running := uint32(0)
	for si := range g.slices {
		clusters := g.slices[si].Clusters
		for ci := range clusters {
			r := &clusters[ci]
			r.Offset = running
			n := r.Total()
			running += n
			if n > 0 {
				stats.ActiveClusters++
			}
			if int(n) > stats.MaxPerCluster {
				stats.MaxPerCluster = int(n)
			}
			r.Put(scratch[ci*ClusterRecordSize:])
		}

		if err := c.Seek(si * sliceBytes); err != nil {
			g.gridBuf.Abort()
			return stats, fmt.Errorf("lightgrid: cluster buffer: %w", err)
		}
		if _, err := c.Write(scratch); err != nil {
			g.gridBuf.Abort()
			return stats, fmt.Errorf("lightgrid: cluster buffer: %w", err)
		}
	}

	if err := g.gridBuf.Unmap(c); err != nil {
		return stats, fmt.Errorf("lightgrid: cluster buffer: %w", err)
	}
	stats.Indices = int(running)
	return stats, nil
}

// packIndices concatenates the slices' index lists.
func (g *LightGrid) packIndices() error {
	c, err := g.indexBuf.Map()
	if err != nil {
		return fmt.Errorf("lightgrid: index buffer: %w", err)
	}
	for si := range g.slices {
		if _, err := c.WriteUint32s(g.slices[si].Indices); err != nil {
			g.indexBuf.Abort()
			return fmt.Errorf("lightgrid: index buffer: %w", err)
		}
	}
	if err := g.indexBuf.Unmap(c); err != nil {
		return fmt.Errorf("lightgrid: index buffer: %w", err)
	}
	return nil
}
