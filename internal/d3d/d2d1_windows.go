//go:build windows

package d3d

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	d2d1                 = windows.NewLazySystemDLL("d2d1.dll")
	procD2D1CreateDevice = d2d1.NewProc("D2D1CreateDevice")
)

// Device2D is an ID2D1Device. The host never draws with it; it exists only
// to derive the desktop composition device.
type Device2D struct {
	vtbl *iUnknownVtbl
}

// CreateDevice2D derives a 2D device from the 3D device's DXGI interface,
// with default creation properties.
func CreateDevice2D(dxgi *DXGIDevice) (*Device2D, error) {
	var dev *Device2D
	hr, _, _ := procD2D1CreateDevice.Call(
		uintptr(unsafe.Pointer(dxgi)),
		0, // creation properties: defaults
		uintptr(unsafe.Pointer(&dev)),
	)
	if failed(hr) {
		return nil, ErrorCode{Name: "D2D1CreateDevice", Code: uint32(hr)}
	}
	return dev, nil
}

func (d *Device2D) Release() {
	releaseCOM(unsafe.Pointer(d))
}
