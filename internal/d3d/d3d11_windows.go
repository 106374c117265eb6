//go:build windows

package d3d

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	d3d11                 = windows.NewLazySystemDLL("d3d11.dll")
	procD3D11CreateDevice = d3d11.NewProc("D3D11CreateDevice")
)

const (
	driverTypeHardware      = 1    // D3D_DRIVER_TYPE_HARDWARE
	createDeviceBGRASupport = 0x20 // D3D11_CREATE_DEVICE_BGRA_SUPPORT
	sdkVersion              = 7    // D3D11_SDK_VERSION
)

var iidDXGIDevice = windows.GUID{
	Data1: 0x54ec77fa, Data2: 0x1377, Data3: 0x44e6,
	Data4: [8]byte{0x8c, 0x32, 0x88, 0xfd, 0x5f, 0x44, 0xc8, 0x4c},
}

// Device is an ID3D11Device.
type Device struct {
	vtbl *deviceVtbl
}

type deviceVtbl struct {
	iUnknownVtbl
	CreateBuffer                         uintptr
	CreateTexture1D                      uintptr
	CreateTexture2D                      uintptr
	CreateTexture3D                      uintptr
	CreateShaderResourceView             uintptr
	CreateUnorderedAccessView            uintptr
	CreateRenderTargetView               uintptr
	CreateDepthStencilView               uintptr
	CreateInputLayout                    uintptr
	CreateVertexShader                   uintptr
	CreateGeometryShader                 uintptr
	CreateGeometryShaderWithStreamOutput uintptr
	CreatePixelShader                    uintptr
	CreateHullShader                     uintptr
	CreateDomainShader                   uintptr
	CreateComputeShader                  uintptr
	CreateClassLinkage                   uintptr
	CreateBlendState                     uintptr
	CreateDepthStencilState              uintptr
	CreateRasterizerState                uintptr
	CreateSamplerState                   uintptr
	CreateQuery                          uintptr
	CreatePredicate                      uintptr
	CreateCounter                        uintptr
	CreateDeferredContext                uintptr
	OpenSharedResource                   uintptr
	CheckFormatSupport                   uintptr
	CheckMultisampleQualityLevels        uintptr
	CheckCounterInfo                     uintptr
	CheckCounter                         uintptr
	CheckFeatureSupport                  uintptr
	GetPrivateData                       uintptr
	SetPrivateData                       uintptr
	SetPrivateDataInterface              uintptr
	GetFeatureLevel                      uintptr
	GetCreationFlags                     uintptr
	GetDeviceRemovedReason               uintptr
	GetImmediateContext                  uintptr
	SetExceptionMode                     uintptr
	GetExceptionMode                     uintptr
}

// CreateDevice creates a hardware 3D device with BGRA support, the flag 2D
// and composition interop require.
func CreateDevice() (*Device, error) {
	var dev *Device
	hr, _, _ := procD3D11CreateDevice.Call(
		0, // adapter: default
		driverTypeHardware,
		0, // software rasterizer module
		createDeviceBGRASupport,
		0, // feature levels: default list
		0,
		sdkVersion,
		uintptr(unsafe.Pointer(&dev)),
		0, // chosen feature level
		0, // immediate context
	)
	if failed(hr) {
		return nil, ErrorCode{Name: "D3D11CreateDevice", Code: uint32(hr)}
	}
	return dev, nil
}

// RemovedReason reports nil while the device is healthy and the removal
// reason once the system has invalidated it.
func (d *Device) RemovedReason() error {
	hr, _, _ := syscall.SyscallN(d.vtbl.GetDeviceRemovedReason, uintptr(unsafe.Pointer(d)))
	if failed(hr) {
		return ErrorCode{Name: "GetDeviceRemovedReason", Code: uint32(hr)}
	}
	return nil
}

// DXGI queries the device's IDXGIDevice interface.
func (d *Device) DXGI() (*DXGIDevice, error) {
	var out *DXGIDevice
	hr, _, _ := syscall.SyscallN(d.vtbl.QueryInterface,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&iidDXGIDevice)),
		uintptr(unsafe.Pointer(&out)),
	)
	if failed(hr) {
		return nil, ErrorCode{Name: "QueryInterface(IDXGIDevice)", Code: uint32(hr)}
	}
	return out, nil
}

func (d *Device) Release() {
	releaseCOM(unsafe.Pointer(d))
}

// DXGIDevice is an IDXGIDevice, used only as the bridge argument when
// deriving the 2D device.
type DXGIDevice struct {
	vtbl *iUnknownVtbl
}

func (d *DXGIDevice) Release() {
	releaseCOM(unsafe.Pointer(d))
}
