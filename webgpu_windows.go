//go:build windows

package winhost

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

func windowSurfaceDescriptor(t WindowTarget) (*wgpu.SurfaceDescriptor, error) {
	return &wgpu.SurfaceDescriptor{
		WindowsHWND: &wgpu.SurfaceDescriptorFromWindowsHWND{
			Hinstance: unsafe.Pointer(t.HInstance),
			Hwnd:      unsafe.Pointer(t.HWND),
		},
	}, nil
}
