// Command lightgrid drives the clustered light grid against a generated light
// field, either headless on host memory or in an OpenGL window.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"LightGrid/internal/behaviour"
	"LightGrid/internal/lightgrid"
	"LightGrid/internal/logger"
	"LightGrid/internal/renderer"
	"LightGrid/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	width  = 1600
	height = 900
)

// shadowAtlas is the atlas size the demo's projector lights point into.
var shadowAtlas = lightgrid.ShadowAtlas{Width: 4096, Height: 4096}

func main() {
	configPath := flag.String("config", "", "JSON grid configuration file")
	lights := flag.Int("lights", 100, "number of generated lights")
	frames := flag.Int("frames", 120, "frames to run in headless mode")
	seed := flag.Int64("seed", 1, "scene seed")
	window := flag.Bool("window", false, "open an OpenGL window instead of running headless")
	debug := flag.Bool("debug", false, "enable debug logging")
	scripts := flag.String("scripts", "orbit,bounce,flicker", "comma separated light behaviours, empty for static lights")
	flag.Parse()

	logger.Init()
	if *debug {
		logger.SetDebug(true)
	}
	defer logger.Sync()

	opts := runOptions{
		ConfigPath: *configPath,
		Lights:     *lights,
		Frames:     *frames,
		Seed:       *seed,
		Window:     *window,
		Scripts:    *scripts,
	}
	if err := run(opts); err != nil {
		logger.Log.Error("lightgrid failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runOptions struct {
	ConfigPath string
	Lights     int
	Frames     int
	Seed       int64
	Window     bool
	Scripts    string
}

// parseScripts splits a comma separated behaviour list and rejects unknown names.
func parseScripts(list string) ([]string, error) {
	available := behaviour.GetAvailableScripts()
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		i := sort.SearchStrings(available, name)
		if i == len(available) || available[i] != name {
			return nil, fmt.Errorf("unknown behaviour %q, available: %s", name, strings.Join(available, ", "))
		}
		names = append(names, name)
	}
	return names, nil
}

func run(ro runOptions) error {
	scripts, err := parseScripts(ro.Scripts)
	if err != nil {
		return err
	}

	cfg := lightgrid.DefaultConfig()
	if ro.ConfigPath != "" {
		loaded, err := lightgrid.LoadConfig(ro.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := scene.DefaultOptions()
	opts.Lights = ro.Lights
	opts.Seed = ro.Seed
	opts.Scripts = scripts
	s := scene.Generate(opts)

	if ro.Window {
		return runWindow(cfg, s)
	}
	_, err = runHeadless(cfg, s, ro.Frames)
	return err
}

// newCamera builds a camera whose clip planes and depth range match cfg.
func newCamera(cfg lightgrid.Config) *renderer.Camera {
	cam := renderer.NewDefaultCamera(width, height)
	cam.Position = mgl32.Vec3{0, 25, 60}
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.SetDepthZeroToOne(cfg.DepthZeroToOne)
	cam.LookAt(mgl32.Vec3{0, 0, 0})
	return cam
}
