package winhost

import (
	"github.com/go-gl/mathgl/mgl32"
)

// The interface set below mirrors the WebGPU object model so the frame path
// can be driven against a real GPU or against fakes in tests. Implementations
// are not safe for concurrent use; the host drives everything from the
// message-loop thread.

type PowerPreference uint32

const (
	PowerPreferenceNone PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceHighPerformance
)

type TextureFormat uint32

const (
	TextureFormatUndefined TextureFormat = iota
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8UnormSrgb
	TextureFormatRGBA8Unorm
	TextureFormatRGBA8UnormSrgb
)

// SRGBVariant returns the sRGB-encoded counterpart of f. Formats that are
// already sRGB, or have no such counterpart, come back unchanged.
func (f TextureFormat) SRGBVariant() TextureFormat {
	switch f {
	case TextureFormatBGRA8Unorm:
		return TextureFormatBGRA8UnormSrgb
	case TextureFormatRGBA8Unorm:
		return TextureFormatRGBA8UnormSrgb
	default:
		return f
	}
}

type PresentMode uint32

const (
	PresentModeFifo PresentMode = iota
	PresentModeImmediate
	PresentModeMailbox
)

type AlphaMode uint32

const (
	AlphaModeAuto AlphaMode = iota
	AlphaModeOpaque
	AlphaModePremultiplied
	AlphaModeUnpremultiplied
	AlphaModeInherit
)

type TextureUsage uint32

const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

type LoadOp uint32

const (
	LoadOpClear LoadOp = iota
	LoadOpLoad
)

type StoreOp uint32

const (
	StoreOpStore StoreOp = iota
	StoreOpDiscard
)

// Color is a normalized RGBA value used for render-pass clears.
type Color struct {
	R, G, B, A float64
}

// ColorFromVec converts a color vector to a pass clear value.
func ColorFromVec(v mgl32.Vec4) Color {
	return Color{R: float64(v.X()), G: float64(v.Y()), B: float64(v.Z()), A: float64(v.W())}
}

// SurfaceConfig describes how a presentable surface is configured. It always
// mirrors the latest known client size of the hosting window.
type SurfaceConfig struct {
	Usage               TextureUsage
	Format              TextureFormat
	Width               uint32
	Height              uint32
	PresentMode         PresentMode
	AlphaMode           AlphaMode
	DesiredFrameLatency uint32
}

// Capabilities reports what a surface supports on a given adapter, in the
// adapter's preference order.
type Capabilities struct {
	Formats    []TextureFormat
	AlphaModes []AlphaMode
}

// AdapterOptions constrains adapter selection.
type AdapterOptions struct {
	CompatibleSurface    Surface
	PowerPreference      PowerPreference
	ForceFallbackAdapter bool
}

// Backend is the entry point to a GPU implementation, owning instance-level
// state. One backend outlives every device-stack rebuild.
type Backend interface {
	CreateSurface(target SurfaceTarget) (Surface, error)
	RequestAdapter(opts *AdapterOptions) (Adapter, error)
}

type Adapter interface {
	// RequestDevice opens a logical device with no optional features and
	// returns it together with its submission queue.
	RequestDevice() (Device, Queue, error)
}

type Device interface {
	CreateCommandEncoder() (CommandEncoder, error)
}

type Queue interface {
	Submit(cmd CommandBuffer)
}

type Surface interface {
	Capabilities(adapter Adapter) Capabilities
	Configure(adapter Adapter, device Device, cfg *SurfaceConfig)
	// Acquire returns the next presentable texture. The caller releases it
	// after presenting.
	Acquire() (Texture, error)
	Present()
}

type Texture interface {
	CreateView(format TextureFormat) (TextureView, error)
	Release()
}

type TextureView interface {
	Release()
}

// ColorAttachment describes the single color target of a render pass.
type ColorAttachment struct {
	View  TextureView
	Load  LoadOp
	Store StoreOp
	Clear Color
}

type CommandEncoder interface {
	BeginRenderPass(att *ColorAttachment) RenderPass
	Finish() (CommandBuffer, error)
}

type RenderPass interface {
	End() error
}

// CommandBuffer is an opaque recorded command sequence; only the queue that
// produced the encoder can interpret it.
type CommandBuffer any
