package behaviour

import (
	"sort"

	"LightGrid/internal/renderer"
)

// ScriptConstructor builds a behaviour bound to a light.
type ScriptConstructor func(light *renderer.Light) Behaviour

var scriptRegistry = make(map[string]ScriptConstructor)

func init() {
	RegisterScript("orbit", func(light *renderer.Light) Behaviour {
		return &Orbit{Light: light, Radius: 4.0, Speed: 1.0}
	})
	RegisterScript("bounce", func(light *renderer.Light) Behaviour {
		return &Bounce{Light: light, Height: 2.0, Speed: 2.0}
	})
	RegisterScript("flicker", func(light *renderer.Light) Behaviour {
		return &Flicker{Light: light, Amount: 0.3}
	})
}

func RegisterScript(name string, constructor ScriptConstructor) {
	scriptRegistry[name] = constructor
}

func GetAvailableScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateScript returns nil for unknown names.
func CreateScript(name string, light *renderer.Light) Behaviour {
	if constructor, exists := scriptRegistry[name]; exists {
		return constructor(light)
	}
	return nil
}
