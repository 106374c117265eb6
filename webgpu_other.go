//go:build !windows

package winhost

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

func windowSurfaceDescriptor(WindowTarget) (*wgpu.SurfaceDescriptor, error) {
	return nil, errors.New("native window surface targets require windows")
}
