package lightgrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("lightgrid: invalid config")

// Config fixes the grid shape. It is validated once in New and never changes
// for the lifetime of a LightGrid.
type Config struct {
	CountX     int     `json:"cluster_count_x"`
	CountY     int     `json:"cluster_count_y"`
	CountDepth int     `json:"cluster_count_depth"`
	Near       float32 `json:"cluster_near"`
	Far        float32 `json:"cluster_far"`

	// DepthZeroToOne selects the NDC depth range of the projection the grid is
	// fed: [0, 1] (Vulkan/D3D) when true, [-1, 1] (OpenGL) when false.
	DepthZeroToOne bool `json:"depth_zero_to_one"`

	// MaxLights caps the lights considered per frame; extras are dropped.
	MaxLights int `json:"max_lights"`

	// ParallelBounds computes light bounds on a worker pool.
	ParallelBounds bool `json:"parallel_bounds"`
	BoundsWorkers  int  `json:"bounds_workers"` // 0 = runtime.NumCPU()
}

// DefaultConfig returns a 16x9x24 grid between 0.1 and 1000 units.
func DefaultConfig() Config {
	return Config{
		CountX:         16,
		CountY:         9,
		CountDepth:     24,
		Near:           0.1,
		Far:            1000,
		DepthZeroToOne: true,
		MaxLights:      100,
	}
}

// Validate rejects grids that cannot be sliced.
func (c Config) Validate() error {
	if c.CountX <= 0 || c.CountY <= 0 || c.CountDepth <= 0 {
		return fmt.Errorf("%w: cluster counts must be positive, got %dx%dx%d",
			ErrInvalidConfig, c.CountX, c.CountY, c.CountDepth)
	}
	if !(c.Near > 0) {
		return fmt.Errorf("%w: near must be positive, got %g", ErrInvalidConfig, c.Near)
	}
	if !(c.Far > c.Near) {
		return fmt.Errorf("%w: far (%g) must be greater than near (%g)", ErrInvalidConfig, c.Far, c.Near)
	}
	if c.MaxLights <= 0 {
		return fmt.Errorf("%w: max lights must be positive, got %d", ErrInvalidConfig, c.MaxLights)
	}
	if c.BoundsWorkers < 0 {
		return fmt.Errorf("%w: bounds workers must not be negative, got %d", ErrInvalidConfig, c.BoundsWorkers)
	}
	return nil
}

// ClustersPerSlice is CountX * CountY.
func (c Config) ClustersPerSlice() int {
	return c.CountX * c.CountY
}

// ClusterCount is the number of clusters across all slices.
func (c Config) ClusterCount() int {
	return c.CountX * c.CountY * c.CountDepth
}

// SliceMaxDepth returns the far distance of slice s. Slices are spaced
// logarithmically so that SliceMaxDepth(CountDepth-1) == Far.
func (c Config) SliceMaxDepth(s int) float32 {
	exp := float64(s+1) / float64(c.CountDepth)
	return c.Near * float32(math.Pow(float64(c.Far/c.Near), exp))
}

// SliceForDepth returns the slice holding view distance d (positive), clamped
// to the grid.
func (c Config) SliceForDepth(d float32) int {
	if d <= c.Near {
		return 0
	}
	s := int(math.Floor(float64(c.CountDepth) * math.Log(float64(d/c.Near)) / math.Log(float64(c.Far/c.Near))))
	if s < 0 {
		return 0
	}
	if s >= c.CountDepth {
		return c.CountDepth - 1
	}
	return s
}

// LoadConfig reads a JSON config. Missing fields keep their DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("lightgrid: read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("lightgrid: parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}
