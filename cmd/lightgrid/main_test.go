package main

import (
	"os"
	"path/filepath"
	"testing"

	"LightGrid/internal/lightgrid"
	"LightGrid/internal/renderer"
	"LightGrid/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHeadless(t *testing.T) {
	opts := scene.DefaultOptions()
	opts.Lights = 80
	s := scene.Generate(opts)

	sum, err := runHeadless(lightgrid.DefaultConfig(), s, 10)

	require.NoError(t, err)
	assert.Equal(t, 10, sum.Frames)
	assert.Equal(t, 1, sum.Rebuilds, "projection is fixed, so slices build once")
	assert.Positive(t, sum.MaxIndices)
	assert.Positive(t, sum.MaxPerCluster)

	cfg := lightgrid.DefaultConfig()
	assert.GreaterOrEqual(t, sum.DeviceBytes, cfg.ClusterCount()*lightgrid.ClusterRecordSize+renderer.CameraUniformSize)
}

func TestNewCameraMatchesConfig(t *testing.T) {
	cfg := lightgrid.DefaultConfig()
	cfg.Near, cfg.Far = 0.5, 300

	cam := newCamera(cfg)

	assert.Equal(t, float32(0.5), cam.Near)
	assert.Equal(t, float32(300), cam.Far)
	assert.Equal(t, cfg.DepthZeroToOne, cam.DepthZeroToOne)
}

func TestRunLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cluster_count_x": 8, "cluster_count_y": 4, "cluster_count_depth": 12}`), 0o644))

	require.NoError(t, run(runOptions{ConfigPath: path, Lights: 20, Frames: 2, Seed: 3, Scripts: "orbit"}))

	require.NoError(t, os.WriteFile(path, []byte(`{"cluster_count_x": 0}`), 0o644))
	assert.ErrorIs(t, run(runOptions{ConfigPath: path, Lights: 20, Frames: 2, Seed: 3}), lightgrid.ErrInvalidConfig)
}

func TestParseScripts(t *testing.T) {
	names, err := parseScripts(" orbit, flicker ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"orbit", "flicker"}, names)

	names, err = parseScripts("")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = parseScripts("orbit,spin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bounce, flicker, orbit")
}
