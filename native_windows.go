//go:build windows

package winhost

import (
	"fmt"

	"github.com/compozit/winhost/internal/d3d"
	"github.com/compozit/winhost/internal/win32"
)

// windowsPlatform implements Platform over the Direct3D and
// DirectComposition bindings.
type windowsPlatform struct {
	hinstance uintptr
}

func NewWindowsPlatform() (Platform, error) {
	hinst, err := win32.ModuleHandle()
	if err != nil {
		return nil, err
	}
	return &windowsPlatform{hinstance: hinst}, nil
}

func (p *windowsPlatform) CreateDevice3D() (Device3D, error) {
	dev, err := d3d.CreateDevice()
	if err != nil {
		return nil, err
	}
	return &winDevice3D{dev: dev, hinstance: p.hinstance}, nil
}

func (p *windowsPlatform) ClientSize(h WindowHandle) (uint32, uint32, error) {
	return win32.ClientSize(uintptr(h))
}

func (p *windowsPlatform) Acknowledge(h WindowHandle) {
	win32.Acknowledge(uintptr(h))
}

func (p *windowsPlatform) Quit() {
	win32.Quit()
}

type winDevice3D struct {
	dev       *d3d.Device
	hinstance uintptr
}

func (d *winDevice3D) RemovedReason() error {
	return d.dev.RemovedReason()
}

func (d *winDevice3D) Device2D() (Device2D, error) {
	dxgi, err := d.dev.DXGI()
	if err != nil {
		return nil, fmt.Errorf("query dxgi device: %w", err)
	}
	defer dxgi.Release()
	dev, err := d3d.CreateDevice2D(dxgi)
	if err != nil {
		return nil, err
	}
	return &winDevice2D{dev: dev, hinstance: d.hinstance}, nil
}

func (d *winDevice3D) Release() {
	d.dev.Release()
}

type winDevice2D struct {
	dev       *d3d.Device2D
	hinstance uintptr
}

func (d *winDevice2D) DesktopDevice() (DesktopDevice, error) {
	desktop, err := d3d.CreateDesktopDevice(d.dev)
	if err != nil {
		return nil, err
	}
	return &winDesktopDevice{dev: desktop, hinstance: d.hinstance}, nil
}

func (d *winDevice2D) Release() {
	d.dev.Release()
}

type winDesktopDevice struct {
	dev       *d3d.DesktopDevice
	hinstance uintptr
	hwnd      uintptr // recorded by CreateTarget; visuals bind surfaces through the window
}

func (d *winDesktopDevice) CreateTarget(h WindowHandle) (CompositionTarget, error) {
	target, err := d.dev.CreateTargetForHwnd(uintptr(h), true)
	if err != nil {
		return nil, err
	}
	d.hwnd = uintptr(h)
	return &winTarget{target: target}, nil
}

func (d *winDesktopDevice) CreateVisual() (Visual, error) {
	visual, err := d.dev.CreateVisual()
	if err != nil {
		return nil, err
	}
	return &winVisual{visual: visual, hwnd: d.hwnd, hinstance: d.hinstance}, nil
}

func (d *winDesktopDevice) Commit() error {
	return d.dev.Commit()
}

func (d *winDesktopDevice) Release() {
	d.dev.Release()
}

type winTarget struct {
	target *d3d.Target
}

func (t *winTarget) SetRoot(v Visual) error {
	return t.target.SetRoot(v.(*winVisual).visual)
}

func (t *winTarget) Release() {
	t.target.Release()
}

type winVisual struct {
	visual    *d3d.Visual
	hwnd      uintptr
	hinstance uintptr
}

func (v *winVisual) AddChild(child Visual) error {
	return v.visual.AddVisual(child.(*winVisual).visual, false, nil)
}

// SurfaceTarget resolves to the redirection-free window itself: the GPU
// binding exposes window surface sources only, so the swapchain reaches the
// compositor through the window while this visual tree stays in charge of
// layering.
func (v *winVisual) SurfaceTarget() SurfaceTarget {
	return WindowTarget{HWND: v.hwnd, HInstance: v.hinstance}
}

func (v *winVisual) Release() {
	v.visual.Release()
}

// Win32Host adapts a Controller to the native message callback.
type Win32Host struct {
	Controller *Controller
}

func (h Win32Host) Attach(hwnd uintptr) {
	h.Controller.Attach(WindowHandle(hwnd))
}

func (h Win32Host) Dispatch(msg uint32, wparam, lparam uintptr) bool {
	return h.Controller.Dispatch(MessageCode(msg), wparam, lparam)
}
