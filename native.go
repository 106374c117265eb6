package winhost

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowHandle is an opaque native window identifier.
type WindowHandle uintptr

// SurfaceTarget identifies where a presentable surface binds. Concrete
// targets are platform-specific; the GPU backend knows how to translate each
// one into a native surface descriptor.
type SurfaceTarget interface {
	isSurfaceTarget()
}

// WindowTarget binds a surface directly to a native window.
type WindowTarget struct {
	HWND      uintptr
	HInstance uintptr
}

func (WindowTarget) isSurfaceTarget() {}

// GLFWTarget binds a surface to a GLFW window, the portable host path.
type GLFWTarget struct {
	Window *glfw.Window
}

func (GLFWTarget) isSurfaceTarget() {}

// Platform supplies the native collaborators the controller drives: device
// creation, window queries and process control. Implementations live in
// platform-tagged files; tests substitute fakes.
type Platform interface {
	CreateDevice3D() (Device3D, error)
	ClientSize(h WindowHandle) (width, height uint32, err error)
	// Acknowledge marks a paint request as handled so the system stops
	// reposting it.
	Acknowledge(h WindowHandle)
	// Quit ends the message loop.
	Quit()
}

// Device3D is the hardware 3D device at the root of the device stack.
type Device3D interface {
	// RemovedReason reports nil while the device is usable and the removal
	// reason once the system has invalidated it.
	RemovedReason() error
	Device2D() (Device2D, error)
	Release()
}

// Device2D exists only as the interop bridge between the 3D device and the
// desktop composition device.
type Device2D interface {
	DesktopDevice() (DesktopDevice, error)
	Release()
}

// DesktopDevice creates and commits the compositor visual tree.
type DesktopDevice interface {
	// CreateTarget binds a composition target to a window. A window admits
	// one live target at a time; creating a second fails until the first is
	// released.
	CreateTarget(h WindowHandle) (CompositionTarget, error)
	CreateVisual() (Visual, error)
	// Commit publishes all pending visual-tree changes atomically.
	Commit() error
	Release()
}

type CompositionTarget interface {
	SetRoot(v Visual) error
	Release()
}

type Visual interface {
	AddChild(child Visual) error
	// SurfaceTarget resolves where a presentable surface bound to this
	// visual's content should attach.
	SurfaceTarget() SurfaceTarget
	Release()
}
