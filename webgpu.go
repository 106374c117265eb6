package winhost

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
)

// WebGPUBackend implements Backend over the wgpu-native bindings. One
// backend owns the process-wide instance and survives every device-stack
// rebuild.
type WebGPUBackend struct {
	instance *wgpu.Instance
}

func NewWebGPUBackend() *WebGPUBackend {
	return &WebGPUBackend{instance: wgpu.CreateInstance(nil)}
}

func (b *WebGPUBackend) CreateSurface(target SurfaceTarget) (Surface, error) {
	desc, err := surfaceDescriptor(target)
	if err != nil {
		return nil, err
	}
	return &webgpuSurface{surface: b.instance.CreateSurface(desc)}, nil
}

func surfaceDescriptor(target SurfaceTarget) (*wgpu.SurfaceDescriptor, error) {
	switch t := target.(type) {
	case GLFWTarget:
		return wgpuglfw.GetSurfaceDescriptor(t.Window), nil
	case WindowTarget:
		return windowSurfaceDescriptor(t)
	default:
		return nil, fmt.Errorf("unsupported surface target %T", target)
	}
}

func (b *WebGPUBackend) RequestAdapter(opts *AdapterOptions) (Adapter, error) {
	wopts := &wgpu.RequestAdapterOptions{
		PowerPreference:      wgpuPowerPreference(opts.PowerPreference),
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	}
	if opts.CompatibleSurface != nil {
		ws, ok := opts.CompatibleSurface.(*webgpuSurface)
		if !ok {
			return nil, fmt.Errorf("incompatible surface type %T", opts.CompatibleSurface)
		}
		wopts.CompatibleSurface = ws.surface
	}
	adapter, err := b.instance.RequestAdapter(wopts)
	if err != nil {
		return nil, err
	}
	return &webgpuAdapter{adapter: adapter}, nil
}

type webgpuAdapter struct {
	adapter *wgpu.Adapter
}

func (a *webgpuAdapter) RequestDevice() (Device, Queue, error) {
	device, err := a.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "winhost device",
	})
	if err != nil {
		return nil, nil, err
	}
	return &webgpuDevice{device: device}, &webgpuQueue{queue: device.GetQueue()}, nil
}

type webgpuDevice struct {
	device *wgpu.Device
}

func (d *webgpuDevice) CreateCommandEncoder() (CommandEncoder, error) {
	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	return &webgpuEncoder{encoder: encoder}, nil
}

type webgpuQueue struct {
	queue *wgpu.Queue
}

func (q *webgpuQueue) Submit(cmd CommandBuffer) {
	q.queue.Submit(cmd.(*wgpu.CommandBuffer))
}

type webgpuSurface struct {
	surface *wgpu.Surface
}

func (s *webgpuSurface) Capabilities(adapter Adapter) Capabilities {
	caps := s.surface.GetCapabilities(adapter.(*webgpuAdapter).adapter)
	out := Capabilities{}
	for _, f := range caps.Formats {
		if g, ok := formatFromWGPU(f); ok {
			out.Formats = append(out.Formats, g)
		}
	}
	for _, m := range caps.AlphaModes {
		out.AlphaModes = append(out.AlphaModes, alphaModeFromWGPU(m))
	}
	return out
}

func (s *webgpuSurface) Configure(adapter Adapter, device Device, cfg *SurfaceConfig) {
	// DesiredFrameLatency has no binding equivalent; Fifo pacing covers it.
	s.surface.Configure(adapter.(*webgpuAdapter).adapter, device.(*webgpuDevice).device, &wgpu.SurfaceConfiguration{
		Usage:       wgpuUsage(cfg.Usage),
		Format:      wgpuFormat(cfg.Format),
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: wgpuPresentMode(cfg.PresentMode),
		AlphaMode:   wgpuAlphaMode(cfg.AlphaMode),
	})
}

func (s *webgpuSurface) Acquire() (Texture, error) {
	texture, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	return &webgpuTexture{texture: texture}, nil
}

func (s *webgpuSurface) Present() {
	s.surface.Present()
}

type webgpuTexture struct {
	texture *wgpu.Texture
}

func (t *webgpuTexture) CreateView(format TextureFormat) (TextureView, error) {
	view, err := t.texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          wgpuFormat(format),
		Dimension:       wgpu.TextureViewDimension2D,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return nil, err
	}
	return &webgpuView{view: view}, nil
}

func (t *webgpuTexture) Release() {
	t.texture.Release()
}

type webgpuView struct {
	view *wgpu.TextureView
}

func (v *webgpuView) Release() {
	v.view.Release()
}

type webgpuEncoder struct {
	encoder *wgpu.CommandEncoder
}

func (e *webgpuEncoder) BeginRenderPass(att *ColorAttachment) RenderPass {
	pass := e.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    att.View.(*webgpuView).view,
			LoadOp:  wgpuLoadOp(att.Load),
			StoreOp: wgpuStoreOp(att.Store),
			ClearValue: wgpu.Color{
				R: att.Clear.R,
				G: att.Clear.G,
				B: att.Clear.B,
				A: att.Clear.A,
			},
		}},
	})
	return &webgpuPass{pass: pass}
}

func (e *webgpuEncoder) Finish() (CommandBuffer, error) {
	return e.encoder.Finish(nil)
}

type webgpuPass struct {
	pass *wgpu.RenderPassEncoder
}

func (p *webgpuPass) End() error {
	return p.pass.End()
}

func wgpuPowerPreference(p PowerPreference) wgpu.PowerPreference {
	switch p {
	case PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	case PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	default:
		var undefined wgpu.PowerPreference
		return undefined
	}
}

func wgpuFormat(f TextureFormat) wgpu.TextureFormat {
	switch f {
	case TextureFormatBGRA8Unorm:
		return wgpu.TextureFormatBGRA8Unorm
	case TextureFormatBGRA8UnormSrgb:
		return wgpu.TextureFormatBGRA8UnormSrgb
	case TextureFormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	case TextureFormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	default:
		return wgpu.TextureFormatUndefined
	}
}

func formatFromWGPU(f wgpu.TextureFormat) (TextureFormat, bool) {
	switch f {
	case wgpu.TextureFormatBGRA8Unorm:
		return TextureFormatBGRA8Unorm, true
	case wgpu.TextureFormatBGRA8UnormSrgb:
		return TextureFormatBGRA8UnormSrgb, true
	case wgpu.TextureFormatRGBA8Unorm:
		return TextureFormatRGBA8Unorm, true
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return TextureFormatRGBA8UnormSrgb, true
	default:
		return TextureFormatUndefined, false
	}
}

func wgpuPresentMode(m PresentMode) wgpu.PresentMode {
	switch m {
	case PresentModeImmediate:
		return wgpu.PresentModeImmediate
	case PresentModeMailbox:
		return wgpu.PresentModeMailbox
	default:
		return wgpu.PresentModeFifo
	}
}

func wgpuAlphaMode(m AlphaMode) wgpu.CompositeAlphaMode {
	switch m {
	case AlphaModeOpaque:
		return wgpu.CompositeAlphaModeOpaque
	case AlphaModePremultiplied:
		return wgpu.CompositeAlphaModePremultiplied
	case AlphaModeUnpremultiplied:
		return wgpu.CompositeAlphaModeUnpremultiplied
	case AlphaModeInherit:
		return wgpu.CompositeAlphaModeInherit
	default:
		return wgpu.CompositeAlphaModeAuto
	}
}

func alphaModeFromWGPU(m wgpu.CompositeAlphaMode) AlphaMode {
	switch m {
	case wgpu.CompositeAlphaModeOpaque:
		return AlphaModeOpaque
	case wgpu.CompositeAlphaModePremultiplied:
		return AlphaModePremultiplied
	case wgpu.CompositeAlphaModeUnpremultiplied:
		return AlphaModeUnpremultiplied
	case wgpu.CompositeAlphaModeInherit:
		return AlphaModeInherit
	default:
		return AlphaModeAuto
	}
}

func wgpuUsage(u TextureUsage) wgpu.TextureUsage {
	var out wgpu.TextureUsage
	if u&TextureUsageCopySrc != 0 {
		out |= wgpu.TextureUsageCopySrc
	}
	if u&TextureUsageCopyDst != 0 {
		out |= wgpu.TextureUsageCopyDst
	}
	if u&TextureUsageTextureBinding != 0 {
		out |= wgpu.TextureUsageTextureBinding
	}
	if u&TextureUsageStorageBinding != 0 {
		out |= wgpu.TextureUsageStorageBinding
	}
	if u&TextureUsageRenderAttachment != 0 {
		out |= wgpu.TextureUsageRenderAttachment
	}
	return out
}

func wgpuLoadOp(op LoadOp) wgpu.LoadOp {
	if op == LoadOpLoad {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func wgpuStoreOp(op StoreOp) wgpu.StoreOp {
	if op == StoreOpDiscard {
		return wgpu.StoreOpDiscard
	}
	return wgpu.StoreOpStore
}
