package main

import (
	"LightGrid/internal/engine"
	"LightGrid/internal/geometry"
	"LightGrid/internal/lightgrid"
	"LightGrid/internal/logger"
	"LightGrid/internal/renderer"
	"LightGrid/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Binding points used by the clustered shading pass.
const (
	bindingLightGrid  = 0
	bindingLightIndex = 1
	bindingLights     = 2
)

var clusterColor = mgl32.Vec4{0.2, 0.9, 0.4, 1}

func runWindow(cfg lightgrid.Config, s *scene.Scene) error {
	if cfg.DepthZeroToOne {
		// GL 4.3 has no clip control, so the context keeps the [-1,1] depth range.
		logger.Log.Info("Using [-1,1] depth range for the OpenGL window")
		cfg.DepthZeroToOne = false
	}

	viewer := engine.NewViewer(width, height, "LightGrid")
	viewer.Camera = newCamera(cfg)
	if err := viewer.Open(); err != nil {
		return err
	}

	grid, err := lightgrid.New(cfg, renderer.GLAllocator{})
	if err != nil {
		return err
	}
	lines, err := renderer.NewLineBatch()
	if err != nil {
		grid.Close()
		return err
	}

	cam := viewer.Camera
	var clicked bool
	viewer.SetOnFrameCallback(func(deltaTime float64, fixed bool) {
		s.Update(float32(deltaTime), fixed)

		if err := grid.AppendLights(s.Visible(cam), cam, shadowAtlas); err != nil {
			logger.Log.Error("Assignment failed", zap.Error(err))
			return
		}
		if err := grid.Upload(); err != nil {
			logger.Log.Error("Dropping frame", zap.Error(err))
			return
		}
		renderer.BindBuffer(grid.GridBuffer(), bindingLightGrid)
		renderer.BindBuffer(grid.IndexBuffer(), bindingLightIndex)
		renderer.BindBuffer(grid.LightBuffer(), bindingLights)

		// Clusters live in view space; the inverse view puts them in the world.
		grid.DrawDebug(lines, cam.GetViewMatrix().Inv(), clusterColor, true)
		lines.Flush(cam.GetViewProjection())

		pressed := viewer.GetWindow().GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
		if pressed && !clicked {
			inspectLight(viewer, grid, s)
		}
		clicked = pressed
	})
	viewer.SetOnCleanupCallback(func() {
		lines.Delete()
		grid.Close()
	})

	viewer.Run()
	return nil
}

// inspectLight logs the light under the cursor and the cluster holding its center.
func inspectLight(viewer *engine.Viewer, grid *lightgrid.LightGrid, s *scene.Scene) {
	window := viewer.GetWindow()
	x, y := window.GetCursorPos()
	w, h := window.GetSize()
	cam := viewer.Camera

	ray := renderer.ScreenToRay(cam, float32(x), float32(y), w, h)
	idx := renderer.PickLight(ray, s.Lights)
	if idx < 0 {
		return
	}
	light := s.Lights[idx]
	fields := []zap.Field{
		zap.Int("light", idx),
		zap.Stringer("type", light.Type),
		zap.Float32("range", light.Range),
	}
	viewPos := geometry.TransformPoint(cam.GetViewMatrix(), light.Position)
	if slice, cx, cy, ok := grid.ClusterAt(viewPos); ok {
		fields = append(fields,
			zap.Int("slice", slice),
			zap.Int("cluster_x", cx),
			zap.Int("cluster_y", cy),
			zap.Int("cluster_lights", len(grid.ClusterLights(slice, cx, cy))))
	}
	logger.Log.Info("Picked light", fields...)
}
