package winhost

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultClearColor is the fixed per-frame clear, red at half alpha so the
// compositor's blending is visible at a glance.
var DefaultClearColor = mgl32.Vec4{1, 0, 0, 0.5}

// SurfaceState owns the logical GPU device, its queue and the presentable
// surface bound to one window. It is rebuilt from scratch whenever the
// device stack is rebuilt.
type SurfaceState struct {
	adapter Adapter
	device  Device
	queue   Queue
	surface Surface
	config  SurfaceConfig
	clear   Color
}

// NewSurfaceState creates a surface bound to target and configures it at the
// given size. The adapter must be compatible with the surface; fallback
// (software) adapters are prohibited. The surface must support BGRA8UnormSrgb
// or creation fails. The call blocks until the device is ready.
func NewSurfaceState(backend Backend, target SurfaceTarget, width, height uint32) (*SurfaceState, error) {
	surface, err := backend.CreateSurface(target)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}

	adapter, err := backend.RequestAdapter(&AdapterOptions{
		CompatibleSurface:    surface,
		PowerPreference:      PowerPreferenceNone,
		ForceFallbackAdapter: false,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	device, queue, err := adapter.RequestDevice()
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	caps := surface.Capabilities(adapter)
	format := TextureFormatUndefined
	for _, f := range caps.Formats {
		if f == TextureFormatBGRA8UnormSrgb {
			format = f
			break
		}
	}
	if format == TextureFormatUndefined {
		return nil, fmt.Errorf("surface does not support BGRA8UnormSrgb (formats: %v)", caps.Formats)
	}
	if len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface reported no alpha modes")
	}

	s := &SurfaceState{
		adapter: adapter,
		device:  device,
		queue:   queue,
		surface: surface,
		config: SurfaceConfig{
			Usage:               TextureUsageRenderAttachment,
			Format:              format,
			Width:               width,
			Height:              height,
			PresentMode:         PresentModeFifo,
			AlphaMode:           caps.AlphaModes[0],
			DesiredFrameLatency: 0,
		},
		clear: ColorFromVec(DefaultClearColor),
	}
	s.surface.Configure(s.adapter, s.device, &s.config)
	return s, nil
}

// Resize reconfigures the surface in place at the new client size. Zero
// extents are recorded too, so the configuration always mirrors the latest
// delivered size; Render skips such frames.
func (s *SurfaceState) Resize(width, height uint32) {
	s.config.Width = width
	s.config.Height = height
	s.surface.Configure(s.adapter, s.device, &s.config)
}

// Render acquires the next surface texture, records a single pass clearing
// it to the fixed color, submits and presents. Acquire failures propagate to
// the caller as device loss.
func (s *SurfaceState) Render() error {
	if s.surface == nil {
		panic("winhost: render without a configured surface")
	}
	if s.config.Width == 0 || s.config.Height == 0 {
		// A minimized window reports a 0x0 client area; there is no frame
		// to produce for it.
		return nil
	}

	texture, err := s.surface.Acquire()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer texture.Release()

	view, err := texture.CreateView(s.config.Format.SRGBVariant())
	if err != nil {
		return fmt.Errorf("create texture view: %w", err)
	}
	defer view.Release()

	encoder, err := s.device.CreateCommandEncoder()
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	pass := encoder.BeginRenderPass(&ColorAttachment{
		View:  view,
		Load:  LoadOpClear,
		Store: StoreOpStore,
		Clear: s.clear,
	})
	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}
	cmd, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}

	s.queue.Submit(cmd)
	s.surface.Present()
	return nil
}
