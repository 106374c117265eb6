//go:build !windows

package main

// Portable host. There is no desktop compositor to drive here, so the
// surface state runs directly against a GLFW window: same frame path, same
// resize semantics.

import (
	"os"
	"runtime"

	"github.com/compozit/winhost"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func main() {
	log := winhost.NewDefaultLogger("winhost", os.Getenv("WINHOST_DEBUG") != "")

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		log.Errorf("glfw init: %v", err)
		os.Exit(1)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(800, 600, "winhost", nil, nil)
	if err != nil {
		log.Errorf("create window: %v", err)
		os.Exit(1)
	}

	width, height := window.GetFramebufferSize()
	state, err := winhost.NewSurfaceState(
		winhost.NewWebGPUBackend(),
		winhost.GLFWTarget{Window: window},
		uint32(width), uint32(height),
	)
	if err != nil {
		log.Errorf("surface state: %v", err)
		os.Exit(1)
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		state.Resize(uint32(w), uint32(h))
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := state.Render(); err != nil {
			log.Errorf("render: %v", err)
		}
	}
}
