//go:build windows

package d3d

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	dcomp                         = windows.NewLazySystemDLL("dcomp.dll")
	procDCompositionCreateDevice2 = dcomp.NewProc("DCompositionCreateDevice2")
)

var iidDesktopDevice = windows.GUID{
	Data1: 0x5f4633fe, Data2: 0x1e08, Data3: 0x4cb8,
	Data4: [8]byte{0x8c, 0x75, 0xce, 0x24, 0x33, 0x3f, 0x56, 0x02},
}

// DesktopDevice is an IDCompositionDesktopDevice.
type DesktopDevice struct {
	vtbl *desktopDeviceVtbl
}

type desktopDeviceVtbl struct {
	iUnknownVtbl
	// IDCompositionDevice2
	Commit                  uintptr
	WaitForCommitCompletion uintptr
	GetFrameStatistics      uintptr
	CreateVisual            uintptr
	CreateSurfaceFactory    uintptr
	CreateSurface           uintptr
	CreateVirtualSurface    uintptr
	// IDCompositionDesktopDevice
	CreateTargetForHwnd     uintptr
	CreateSurfaceFromHandle uintptr
	CreateSurfaceFromHwnd   uintptr
}

// CreateDesktopDevice creates the desktop composition device on top of the
// 2D device.
func CreateDesktopDevice(dev *Device2D) (*DesktopDevice, error) {
	var out *DesktopDevice
	hr, _, _ := procDCompositionCreateDevice2.Call(
		uintptr(unsafe.Pointer(dev)),
		uintptr(unsafe.Pointer(&iidDesktopDevice)),
		uintptr(unsafe.Pointer(&out)),
	)
	if failed(hr) {
		return nil, ErrorCode{Name: "DCompositionCreateDevice2", Code: uint32(hr)}
	}
	return out, nil
}

// CreateTargetForHwnd binds a composition target to a window. A window
// admits one live target at a time.
func (d *DesktopDevice) CreateTargetForHwnd(hwnd uintptr, topmost bool) (*Target, error) {
	var out *Target
	t := uintptr(0)
	if topmost {
		t = 1
	}
	hr, _, _ := syscall.SyscallN(d.vtbl.CreateTargetForHwnd,
		uintptr(unsafe.Pointer(d)), hwnd, t, uintptr(unsafe.Pointer(&out)))
	if failed(hr) {
		return nil, ErrorCode{Name: "CreateTargetForHwnd", Code: uint32(hr)}
	}
	return out, nil
}

func (d *DesktopDevice) CreateVisual() (*Visual, error) {
	var out *Visual
	hr, _, _ := syscall.SyscallN(d.vtbl.CreateVisual,
		uintptr(unsafe.Pointer(d)), uintptr(unsafe.Pointer(&out)))
	if failed(hr) {
		return nil, ErrorCode{Name: "CreateVisual", Code: uint32(hr)}
	}
	return out, nil
}

// Commit publishes all pending composition changes atomically.
func (d *DesktopDevice) Commit() error {
	hr, _, _ := syscall.SyscallN(d.vtbl.Commit, uintptr(unsafe.Pointer(d)))
	if failed(hr) {
		return ErrorCode{Name: "Commit", Code: uint32(hr)}
	}
	return nil
}

func (d *DesktopDevice) Release() {
	releaseCOM(unsafe.Pointer(d))
}

// Target is an IDCompositionTarget.
type Target struct {
	vtbl *targetVtbl
}

type targetVtbl struct {
	iUnknownVtbl
	SetRoot uintptr
}

func (t *Target) SetRoot(v *Visual) error {
	hr, _, _ := syscall.SyscallN(t.vtbl.SetRoot,
		uintptr(unsafe.Pointer(t)), uintptr(unsafe.Pointer(v)))
	if failed(hr) {
		return ErrorCode{Name: "SetRoot", Code: uint32(hr)}
	}
	return nil
}

func (t *Target) Release() {
	releaseCOM(unsafe.Pointer(t))
}

// Visual is an IDCompositionVisual2. Only the methods the host drives are
// bound; the rest of the vtable exists for layout.
type Visual struct {
	vtbl *visualVtbl
}

type visualVtbl struct {
	iUnknownVtbl
	// IDCompositionVisual. The float overload of each Set* pair precedes the
	// animation overload.
	SetOffsetX                 uintptr
	SetOffsetXAnimation        uintptr
	SetOffsetY                 uintptr
	SetOffsetYAnimation        uintptr
	SetTransform               uintptr
	SetTransformObject         uintptr
	SetTransformParent         uintptr
	SetEffect                  uintptr
	SetBitmapInterpolationMode uintptr
	SetBorderMode              uintptr
	SetClip                    uintptr
	SetClipObject              uintptr
	SetContent                 uintptr
	AddVisual                  uintptr
	RemoveVisual               uintptr
	RemoveAllVisuals           uintptr
	SetCompositeMode           uintptr
	// IDCompositionVisual2
	SetOpacityMode        uintptr
	SetBackFaceVisibility uintptr
}

// AddVisual inserts child into this visual's children, ordered relative to
// reference (nil reference with insertAbove false appends at the bottom).
func (v *Visual) AddVisual(child *Visual, insertAbove bool, reference *Visual) error {
	above := uintptr(0)
	if insertAbove {
		above = 1
	}
	hr, _, _ := syscall.SyscallN(v.vtbl.AddVisual,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(child)),
		above,
		uintptr(unsafe.Pointer(reference)),
	)
	if failed(hr) {
		return ErrorCode{Name: "AddVisual", Code: uint32(hr)}
	}
	return nil
}

func (v *Visual) Release() {
	releaseCOM(unsafe.Pointer(v))
}
