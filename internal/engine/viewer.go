package engine

import (
	"fmt"
	"runtime"

	"LightGrid/internal/logger"
	"LightGrid/internal/renderer"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// FixedStep is the fixed update interval in seconds.
const FixedStep = 1.0 / 30.0

// Viewer owns the GLFW window, the GL 4.3 context and the fly camera.
type Viewer struct {
	Width             int32
	Height            int32
	Title             string
	Camera            *renderer.Camera
	EnableCameraInput bool // Control whether camera processes keyboard/mouse input

	window       *glfw.Window
	lastX, lastY float64
	firstMouse   bool
	fixedAccum   float64
	onFrame      func(deltaTime float64, fixed bool)
	onResize     func(width, height int32)
	onCleanup    func()
}

func NewViewer(width, height int32, title string) *Viewer {
	return &Viewer{
		Width:             width,
		Height:            height,
		Title:             title,
		EnableCameraInput: true,
		firstMouse:        true,
	}
}

// SetOnFrameCallback sets the per-frame callback. fixed is true on frames that
// crossed a FixedStep boundary.
func (v *Viewer) SetOnFrameCallback(callback func(deltaTime float64, fixed bool)) {
	v.onFrame = callback
}

func (v *Viewer) SetOnResizeCallback(callback func(width, height int32)) {
	v.onResize = callback
}

// SetOnCleanupCallback runs while the GL context is still current.
func (v *Viewer) SetOnCleanupCallback(callback func()) {
	v.onCleanup = callback
}

func (v *Viewer) GetWindow() *glfw.Window {
	return v.window
}

// Open creates the window and the context. The calling goroutine stays locked
// to its OS thread; Run must be called from the same goroutine.
func (v *Viewer) Open() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(v.Width), int(v.Height), v.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create glfw window: %w", err)
	}
	v.window = window
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return fmt.Errorf("initialize OpenGL: %w", err)
	}
	gl.ClearColor(renderer.ClearColorR, renderer.ClearColorG, renderer.ClearColorB, 1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, v.Width, v.Height)

	if v.Camera == nil {
		v.Camera = renderer.NewDefaultCamera(v.Width, v.Height)
	}
	v.lastX, v.lastY = float64(v.Width/2), float64(v.Height/2)
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	window.SetCursorPosCallback(v.mouseCallback)

	logger.Log.Info("Viewer opened",
		zap.Int32("width", v.Width),
		zap.Int32("height", v.Height),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))))
	return nil
}

// Run loops until the window closes, then tears down the context.
func (v *Viewer) Run() {
	defer glfw.Terminate()

	var lastTime = glfw.GetTime()
	for !v.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		// Check actual window size and update if it changed
		width, height := v.window.GetFramebufferSize()
		if (int32(width) != v.Width || int32(height) != v.Height) && width > 0 && height > 0 {
			v.Width, v.Height = int32(width), int32(height)
			gl.Viewport(0, 0, v.Width, v.Height)
			v.Camera.SetAspectRatio(float32(width) / float32(height))
			if v.onResize != nil {
				v.onResize(v.Width, v.Height)
			}
		}

		if v.EnableCameraInput {
			v.Camera.ProcessKeyboard(v.window, float32(deltaTime))
		}
		if v.window.GetKey(glfw.KeyEscape) == glfw.Press {
			v.window.SetShouldClose(true)
		}

		v.fixedAccum += deltaTime
		fixed := v.fixedAccum >= FixedStep
		if fixed {
			v.fixedAccum -= FixedStep
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if v.onFrame != nil {
			v.onFrame(deltaTime, fixed)
		}

		v.window.SwapBuffers()
		glfw.PollEvents()
	}

	if v.onCleanup != nil {
		v.onCleanup()
	}
	v.window.Destroy()
}

// Mouse callback function
func (v *Viewer) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	// Look around only while the right mouse button is held
	if v.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if v.firstMouse {
			v.lastX = xpos
			v.lastY = ypos
			v.firstMouse = false
			return
		}

		xoffset := xpos - v.lastX
		yoffset := v.lastY - ypos // Reversed since y-coordinates go from bottom to top
		v.lastX = xpos
		v.lastY = ypos

		v.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
	} else {
		v.firstMouse = true
	}
}
