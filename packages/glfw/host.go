// Package glfw hosts the demos in a GLFW window. It owns the main thread:
// window events, the per-frame callback queue, tasks posted from other
// goroutines and the window title used as a status line.
package glfw

import (
	"fmt"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/leonkasovan/gldemo/packages/render"
	"github.com/leonkasovan/gldemo/packages/render/glcore"
)

func init() {
	// GLFW and GL calls are only valid on the main thread.
	runtime.LockOSThread()
}

type Key = glfw.Key

const (
	Key1      = glfw.Key1
	Key7      = glfw.Key7
	KeySpace  = glfw.KeySpace
	KeyEscape = glfw.KeyEscape
)

// Options describes the window to open.
type Options struct {
	ID     string
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Host is a single window surface plus the main-thread queues serving it.
type Host struct {
	opts   Options
	win    *glfw.Window
	ctx    *glcore.Context
	tasks  TaskQueue
	frames FrameQueue
	damage Damage
	fps    FPS
	status string
	onKey  func(Key)
}

// Open initializes GLFW, opens the window with an OpenGL 3.3 core context
// and loads the GL entry points.
func Open(opts Options) (*Host, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := glcore.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	h := &Host{opts: opts, win: win}
	h.ctx = glcore.New(opts.ID, func() (int, int) { return win.GetFramebufferSize() })
	h.ctx.OnDraw = h.damage.Mark
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press && h.onKey != nil {
			h.onKey(key)
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		h.ctx.Viewport(0, 0, width, height)
	})

	version, glsl, renderer, _ := glcore.Version()
	render.Logger().Info("opened surface", "id", opts.ID, "gl", version, "glsl", glsl, "renderer", renderer)
	return h, nil
}

// Context returns the render context of the surface named id.
func (h *Host) Context(id string) (render.Context, error) {
	if h == nil || h.ctx == nil || id != h.opts.ID {
		return nil, fmt.Errorf("%w: %q", render.ErrContextUnavailable, id)
	}
	return h.ctx, nil
}

// Now is the host clock in milliseconds.
func (h *Host) Now() float64 { return glfw.GetTime() * 1000 }

// RequestFrame schedules f for the next frame.
func (h *Host) RequestFrame(f func()) { h.frames.Request(f) }

// Post runs f on the main thread before the next frame. Safe for
// concurrent use.
func (h *Host) Post(f func()) {
	h.tasks.Post(f)
	glfw.PostEmptyEvent()
}

// SetStatus shows s after the window title. Call from the main thread.
func (h *Host) SetStatus(s string) {
	if s == h.status {
		return
	}
	h.status = s
	h.win.SetTitle(h.opts.Title + s)
}

func (h *Host) Status() string { return h.status }

func (h *Host) OnKey(f func(Key)) { h.onKey = f }

func (h *Host) FPS() float64 { return h.fps.Rate() }

// Quit asks Run to return after the current frame.
func (h *Host) Quit() { h.win.SetShouldClose(true) }

// Run is the main loop. It returns when the window is closed.
func (h *Host) Run() {
	for !h.win.ShouldClose() {
		glfw.PollEvents()
		h.tasks.Run()
		ran := h.frames.Run()
		if h.damage.Take() {
			h.win.SwapBuffers()
			h.fps.Update(glfw.GetTime())
		}
		if ran == 0 {
			// Nothing animating; sleep until an event or a posted task.
			glfw.WaitEventsTimeout(0.1)
		}
	}
}

// Close releases the window and terminates GLFW.
func (h *Host) Close() {
	h.tasks.Run()
	h.ctx.Close()
	h.win.Destroy()
	glfw.Terminate()
}
