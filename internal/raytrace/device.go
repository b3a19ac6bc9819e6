// Package raytrace owns the GPU-resident buffers that mirror the
// LevelMesh's CPU state (grounded in the teacher's framebuffer/window
// lifecycle patterns, internal/engine/framebuffer and
// internal/engine/window) and drives the multi-pass Monte Carlo ray
// tracing pipeline that turns them into per-tile radiance.
package raytrace

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// OpenGL calls must be made from the main thread.
	runtime.LockOSThread()
}

// Device owns a headless OpenGL context used purely as a resource-lifetime
// host for the GPU buffers the bake driver uploads; it never presents a
// window, matching the bake tool's non-interactive operation.
type Device struct {
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// OpenDevice creates a hidden 1x1 window and an OpenGL context bound to
// it, adapted from the interactive window constructor but with
// sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN instead of
// sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE, since the bake tool never
// presents a frame.
func OpenDevice() (*Device, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	win, err := sdl.CreateWindow(
		"lightbake",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		1, 1,
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(ctx)
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}

	return &Device{sdlWindow: win, glContext: ctx}, nil
}

// Close tears down the context and hidden window.
func (d *Device) Close() {
	if d.glContext != nil {
		sdl.GLDeleteContext(d.glContext)
	}
	if d.sdlWindow != nil {
		d.sdlWindow.Destroy()
	}
	sdl.Quit()
}
