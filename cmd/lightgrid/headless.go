package main

import (
	"math"
	"time"

	"LightGrid/internal/gpubuffer"
	"LightGrid/internal/lightgrid"
	"LightGrid/internal/logger"
	"LightGrid/internal/renderer"
	"LightGrid/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const frameTime = 1.0 / 60.0

// summary aggregates the per-frame stats of a headless run.
type summary struct {
	Frames         int
	MaxIndices     int
	MaxPerCluster  int
	ActiveClusters int // last frame
	Rebuilds       int
	DeviceBytes    int // sum of the Vulkan buffer sizes after the run
	Elapsed        time.Duration
}

// runHeadless runs frames while the camera circles the field. Buffers live in
// staging memory and record the Vulkan device buffers a frame needs.
func runHeadless(cfg lightgrid.Config, s *scene.Scene, frames int) (summary, error) {
	var sum summary
	alloc := gpubuffer.NewVulkanAllocator(0)
	grid, err := lightgrid.New(cfg, alloc)
	if err != nil {
		return sum, err
	}
	defer grid.Close()

	camBuf, err := gpubuffer.New(alloc, "camera", gpubuffer.UsageUniform, renderer.CameraUniformSize)
	if err != nil {
		return sum, err
	}
	defer camBuf.Release()

	cam := newCamera(cfg)
	start := time.Now()
	for frame := 0; frame < frames; frame++ {
		angle := float64(frame) * frameTime * 0.5
		cam.Position = mgl32.Vec3{float32(math.Sin(angle)) * 60, 25, float32(math.Cos(angle)) * 60}
		cam.LookAt(mgl32.Vec3{0, 0, 0})
		s.Update(frameTime, frame%2 == 0)
		if err := camBuf.Write(cam.VulkanUniform()); err != nil {
			return sum, err
		}

		if err := grid.AppendLights(s.Visible(cam), cam, shadowAtlas); err != nil {
			return sum, err
		}
		if err := grid.Upload(); err != nil {
			logger.Log.Error("Dropping frame", zap.Int("frame", frame), zap.Error(err))
			continue
		}

		st := grid.Stats()
		logger.Log.Debug("Frame",
			zap.Int("frame", frame),
			zap.Int("lights", st.Lights),
			zap.Int("clustered", st.ClusteredLights),
			zap.Int("indices", st.Indices),
			zap.Int("active_clusters", st.ActiveClusters),
			zap.Int("max_per_cluster", st.MaxPerCluster))

		sum.Frames++
		sum.ActiveClusters = st.ActiveClusters
		if st.Indices > sum.MaxIndices {
			sum.MaxIndices = st.Indices
		}
		if st.MaxPerCluster > sum.MaxPerCluster {
			sum.MaxPerCluster = st.MaxPerCluster
		}
		if st.Rebuilt {
			sum.Rebuilds++
		}
	}
	sum.Elapsed = time.Since(start)

	logger.Log.Info("Headless run finished",
		zap.Int("frames", sum.Frames),
		zap.Int("max_indices", sum.MaxIndices),
		zap.Int("max_per_cluster", sum.MaxPerCluster),
		zap.Int("rebuilds", sum.Rebuilds),
		zap.Int("grid_bytes", grid.GridBuffer().Capacity()),
		zap.Int("index_bytes", grid.IndexBuffer().Capacity()),
		zap.Int("staging_bytes", alloc.InUse()),
		zap.Duration("elapsed", sum.Elapsed))

	for _, vs := range alloc.Storages() {
		info := vs.CreateInfo()
		logger.Log.Info("Vulkan buffer",
			zap.String("buffer", vs.Name()),
			zap.Uint64("size", uint64(info.Size)),
			zap.Uint32("usage", uint32(info.Usage)),
			zap.Int("creates", vs.Creates()))
		sum.DeviceBytes += int(info.Size)
	}
	return sum, nil
}
