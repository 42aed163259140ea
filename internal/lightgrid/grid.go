package lightgrid

import (
	"errors"
	"fmt"
	"runtime"

	"LightGrid/internal/geometry"
	"LightGrid/internal/gpubuffer"
	"LightGrid/internal/logger"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrNoFrame is returned by Upload when AppendLights has not run since the last upload.
var ErrNoFrame = errors.New("lightgrid: upload without appended lights")

// lightEntry pairs a frame's light with its view-space bounds. index is the
// light's position in the frame's list and its record slot in the light
// buffer; it is the identifier written to the index buffer.
type lightEntry struct {
	source LightSource
	kind   LightType
	index  uint32
	bounds geometry.AABB
}

// Stats summarizes the last uploaded frame.
type Stats struct {
	Lights          int // records written
	ClusteredLights int // lights that took part in assignment
	Indices         int // entries in the light-index buffer
	ActiveClusters  int // clusters with at least one light
	MaxPerCluster   int
	Rebuilt         bool // slices were rebuilt this frame
}

// LightGrid assigns lights to view clusters and packs the result for the GPU.
// A frame is AppendLights followed by Upload. It is not safe for concurrent use.
type LightGrid struct {
	cfg    Config
	slicer *Slicer
	slices []Slice

	entries []lightEntry
	byType  [len(clusteredTypes)][]int // entry positions per clustered type
	staging []byte                     // GPULight records, in entry order

	gridBuf  *gpubuffer.Buffer
	indexBuf *gpubuffer.Buffer
	lightBuf *gpubuffer.Buffer

	pool    pond.Pool
	pending bool
	rebuilt bool
	stats   Stats
}

// New validates cfg and allocates the grid's buffers from alloc.
func New(cfg Config, alloc gpubuffer.Allocator) (*LightGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &LightGrid{
		cfg:    cfg,
		slicer: NewSlicer(cfg),
		slices: make([]Slice, cfg.CountDepth),
	}
	for i := range g.slices {
		g.slices[i].Clusters = make([]ClusterRecord, cfg.ClustersPerSlice())
	}

	var err error
	if g.gridBuf, err = gpubuffer.New(alloc, "light_grid", gpubuffer.UsageStorage, ClusterRecordSize); err != nil {
		return nil, fmt.Errorf("lightgrid: %w", err)
	}
	if g.indexBuf, err = gpubuffer.New(alloc, "light_index", gpubuffer.UsageStorage, 4); err != nil {
		return nil, fmt.Errorf("lightgrid: %w", err)
	}
	if g.lightBuf, err = gpubuffer.New(alloc, "lights", gpubuffer.UsageStorage, GPULightSize); err != nil {
		return nil, fmt.Errorf("lightgrid: %w", err)
	}

	if cfg.ParallelBounds {
		workers := cfg.BoundsWorkers
		if workers == 0 {
			workers = runtime.NumCPU()
		}
		g.pool = pond.NewPool(workers)
	}

	logger.Log.Info("Light grid created",
		zap.Int("countX", cfg.CountX),
		zap.Int("countY", cfg.CountY),
		zap.Int("countDepth", cfg.CountDepth),
		zap.Float32("near", cfg.Near),
		zap.Float32("far", cfg.Far),
		zap.Bool("parallelBounds", cfg.ParallelBounds))
	return g, nil
}

// Close stops the worker pool and releases the GPU buffers.
func (g *LightGrid) Close() {
	if g.pool != nil {
		g.pool.StopAndWait()
		g.pool = nil
	}
	g.gridBuf.Release()
	g.indexBuf.Release()
	g.lightBuf.Release()
}

// RebuildSlices refreshes the cluster geometry for projection. It is a no-op
// when the projection did not change.
func (g *LightGrid) RebuildSlices(projection mgl32.Mat4) bool {
	if g.slicer.Rebuild(projection) {
		g.rebuilt = true
		return true
	}
	return false
}

func (g *LightGrid) Config() Config  { return g.cfg }
func (g *LightGrid) Slicer() *Slicer { return g.slicer }
func (g *LightGrid) Slices() []Slice { return g.slices }
func (g *LightGrid) Stats() Stats    { return g.stats }
func (g *LightGrid) LightCount() int { return len(g.entries) }
func (g *LightGrid) IndexCount() int { return g.stats.Indices }

// GridBuffer holds CountDepth slices of row-major ClusterRecords.
func (g *LightGrid) GridBuffer() *gpubuffer.Buffer { return g.gridBuf }

// IndexBuffer holds the uint32 light indices referenced by the cluster offsets.
func (g *LightGrid) IndexBuffer() *gpubuffer.Buffer { return g.indexBuf }

// LightBuffer holds the frame's GPULight records.
func (g *LightGrid) LightBuffer() *gpubuffer.Buffer { return g.lightBuf }

// LightBounds returns the view-space bounds of light i of the current frame.
func (g *LightGrid) LightBounds(i int) geometry.AABB { return g.entries[i].bounds }
