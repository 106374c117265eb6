//go:build windows

package d3d

import (
	"fmt"
	"syscall"
	"unsafe"
)

// ErrorCode is a failed HRESULT from a native call.
type ErrorCode struct {
	Name string
	Code uint32
}

func (e ErrorCode) Error() string {
	return fmt.Sprintf("%s: %#x", e.Name, e.Code)
}

func failed(hr uintptr) bool {
	return int32(hr) < 0
}

// iUnknownVtbl is the layout every COM interface starts with.
type iUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type iUnknown struct {
	vtbl *iUnknownVtbl
}

func releaseCOM(obj unsafe.Pointer) {
	u := (*iUnknown)(obj)
	syscall.SyscallN(u.vtbl.Release, uintptr(obj))
}
