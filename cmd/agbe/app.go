package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/agbe/cpu"
	"github.com/hexaflex/agbe/debugger"
	"github.com/hexaflex/agbe/display"
	"github.com/hexaflex/agbe/rom"
)

// App defines application context.
type App struct {
	config  *Config         // Application configuration.
	window  *glfw.Window    // OpenGL/GLFW context.
	cpu     *cpu.CPU        // The execution engine.
	display *display.Display // Framebuffer renderer.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.cpu = cpu.New(printTrace)
	a.cpu.SetDiagnostics(config.PrintTrace)
	a.display = display.New(a.cpu)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occurred during initialization.
func (a *App) Run() error {
	log.Println(Version())

	header, image, err := rom.Load(a.config.Image)
	if err != nil {
		return err
	}

	log.Printf("title: %s", header.Title)
	log.Printf("game code: %s  maker code: %s", header.GameCode, header.MakerCode)
	log.Printf("entry point: %08x", header.EntryPoint)

	a.cpu.Initialize(image)

	if a.config.Debug || a.config.Script != "" {
		return a.debug()
	}

	// Free run: execute until the program fails or runs off the
	// supported surface, then show whatever it drew.
	if err := a.runProgram(); err != nil {
		log.Println(err)
	}

	return a.show()
}

// debug hands control to the line-command debugger, either running a
// script or an interactive session on stdin.
func (a *App) debug() error {
	dbg := debugger.New(a.cpu, os.Stdout)

	if a.config.Script != "" {
		script, err := os.ReadFile(a.config.Script)
		if err != nil {
			return errors.Wrapf(err, "failed to read script %q", a.config.Script)
		}
		return dbg.RunScript(string(script))
	}

	return dbg.Repl(os.Stdin, true)
}

// runProgram steps the engine until a decode or execution failure.
// The supported programs have no halt instruction; they end by
// reaching code the engine does not implement.
func (a *App) runProgram() error {
	for {
		if err := a.cpu.Step(); err != nil {
			return err
		}
	}
}

// show opens a window and renders the framebuffer until it is closed.
func (a *App) show() error {
	if err := a.initGL(); err != nil {
		return err
	}
	defer a.dispose()

	if err := a.display.Startup(); err != nil {
		return err
	}

	for !a.window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
		glfw.WaitEvents()
	}

	return nil
}

// dispose ensures openGL/GLFW resources are cleaned up.
func (a *App) dispose() {
	a.display.Shutdown()

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	if key == glfw.KeyEscape {
		a.window.SetShouldClose(true)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	width := display.Width * a.config.ScaleFactor
	height := display.Height * a.config.ScaleFactor

	a.window, err = glfw.CreateWindow(width, height, fmt.Sprintf("%s %s", AppName, AppVersion), nil, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// printTrace prints instruction trace data. This can be toggled
// through the engine's diagnostics switch.
func printTrace(addr uint32, instr fmt.Stringer) {
	fmt.Printf("%08x  %s\n", addr, instr)
}
