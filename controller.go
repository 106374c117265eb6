// Package winhost hosts a GPU-cleared surface inside a composited native
// window: it builds the device stack and compositor visual tree lazily on
// the first paint, keeps the surface in sync with resize notifications,
// presents vsync-locked frames, and rebuilds everything after device loss.
package winhost

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	// Logger receives diagnostics; nil discards them.
	Logger Logger
	// ClearColor is the per-frame clear. The zero vector selects
	// DefaultClearColor.
	ClearColor mgl32.Vec4
}

// Controller owns one window's device stack, visual tree and surface state,
// and routes the window's messages. All methods run on the message-loop
// thread.
type Controller struct {
	log      Logger
	platform Platform
	backend  Backend
	clear    mgl32.Vec4

	hwnd     WindowHandle
	attached bool

	device  Device3D
	desktop DesktopDevice
	target  CompositionTarget
	surface *SurfaceState
}

func NewController(platform Platform, backend Backend, opts *Options) *Controller {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = NewNopLogger()
	}
	clear := opts.ClearColor
	if clear == (mgl32.Vec4{}) {
		clear = DefaultClearColor
	}
	return &Controller{
		log:      log,
		platform: platform,
		backend:  backend,
		clear:    clear,
	}
}

// Attach associates the controller with its window handle. It happens exactly
// once, before any message is dispatched; attaching a different handle
// afterwards panics.
func (c *Controller) Attach(h WindowHandle) {
	if c.attached {
		if c.hwnd != h {
			panic("winhost: controller already attached to a different window")
		}
		return
	}
	c.hwnd = h
	c.attached = true
}

// Dispatch routes one window message. It reports whether the message was
// consumed; unconsumed messages (including anything arriving before Attach)
// fall through to the platform default handler.
func (c *Controller) Dispatch(code MessageCode, wparam, lparam uintptr) bool {
	if !c.attached {
		return false
	}
	switch code {
	case MsgPaint:
		if err := c.Paint(); err != nil {
			// Treat every paint failure as device loss: drop the stack and
			// let the next paint rebuild it.
			c.log.Errorf("paint failed: %v", err)
			c.clearDeviceStack()
		}
		// Acknowledged even after a failure, otherwise the system reposts
		// the paint in a tight loop while the device is gone.
		c.platform.Acknowledge(c.hwnd)
		return true
	case MsgSize:
		c.Resize(uint32(Loword(uint32(lparam))), uint32(Hiword(uint32(lparam))))
		return true
	case MsgDestroy:
		c.platform.Quit()
		return true
	}
	return false
}

// Paint verifies the device stack is alive (building it if absent) and
// renders one frame. Errors propagate to the dispatch boundary.
func (c *Controller) Paint() error {
	if c.device != nil {
		c.log.Debugf("paint: checking device liveness")
		if err := c.device.RemovedReason(); err != nil {
			return fmt.Errorf("device removed: %w", err)
		}
	} else {
		c.log.Debugf("paint: building device stack")
		if err := c.createResources(); err != nil {
			return err
		}
	}
	if c.surface != nil {
		return c.surface.Render()
	}
	return nil
}

// Resize forwards the new client size to the surface state. Before the first
// paint there is nothing to reconfigure and the notification is dropped.
func (c *Controller) Resize(width, height uint32) {
	if c.surface == nil {
		return
	}
	c.surface.Resize(width, height)
}

// createResources builds the full device stack: 3D device, 2D interop
// bridge, desktop composition device, target and visual tree, then the
// surface state, and finally commits the compositor transaction.
func (c *Controller) createResources() error {
	if c.device != nil {
		panic("winhost: device stack already present")
	}

	device, err := c.platform.CreateDevice3D()
	if err != nil {
		return fmt.Errorf("create 3d device: %w", err)
	}
	// Installed before the downstream steps. A failure below leaves the
	// stack inconsistent until the dispatch boundary clears it.
	c.device = device

	device2d, err := device.Device2D()
	if err != nil {
		return fmt.Errorf("derive 2d device: %w", err)
	}
	desktop, err := device2d.DesktopDevice()
	device2d.Release()
	if err != nil {
		return fmt.Errorf("derive desktop composition device: %w", err)
	}

	// The window admits one composition target at a time; a leftover from a
	// previous stack must go first or the new one fails as occupied.
	if c.target != nil {
		c.target.Release()
		c.target = nil
	}
	target, err := desktop.CreateTarget(c.hwnd)
	if err != nil {
		return fmt.Errorf("create composition target: %w", err)
	}
	c.target = target

	root, err := desktop.CreateVisual()
	if err != nil {
		return fmt.Errorf("create root visual: %w", err)
	}
	if err := target.SetRoot(root); err != nil {
		return fmt.Errorf("set root visual: %w", err)
	}
	content, err := desktop.CreateVisual()
	if err != nil {
		return fmt.Errorf("create content visual: %w", err)
	}
	if err := root.AddChild(content); err != nil {
		return fmt.Errorf("add content visual: %w", err)
	}

	width, height, err := c.platform.ClientSize(c.hwnd)
	if err != nil {
		return fmt.Errorf("query client size: %w", err)
	}
	surface, err := NewSurfaceState(c.backend, content.SurfaceTarget(), width, height)
	if err != nil {
		return fmt.Errorf("create surface state: %w", err)
	}
	surface.clear = ColorFromVec(c.clear)
	c.surface = surface

	if err := desktop.Commit(); err != nil {
		return fmt.Errorf("commit visual tree: %w", err)
	}
	if c.desktop != nil {
		c.desktop.Release()
	}
	c.desktop = desktop
	return nil
}

// clearDeviceStack drops the 3D device so the next paint rebuilds everything
// downstream of it. The composition target stays referenced so the rebuild
// can release it before creating its replacement.
func (c *Controller) clearDeviceStack() {
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
}
