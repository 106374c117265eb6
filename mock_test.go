package winhost

import (
	"errors"
)

// Mock GPU backend. Records every surface, adapter request, render pass and
// submission so tests can assert on the frame path without a GPU.

type mockBackend struct {
	formats    []TextureFormat
	alphaModes []AlphaMode

	surfaceErr error
	adapterErr error
	deviceErr  error

	surfaces        []*mockSurface
	lastAdapterOpts *AdapterOptions
	submits         int
	passes          []ColorAttachment
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		formats:    []TextureFormat{TextureFormatBGRA8Unorm, TextureFormatBGRA8UnormSrgb},
		alphaModes: []AlphaMode{AlphaModePremultiplied, AlphaModeOpaque},
	}
}

func (b *mockBackend) CreateSurface(target SurfaceTarget) (Surface, error) {
	if b.surfaceErr != nil {
		return nil, b.surfaceErr
	}
	s := &mockSurface{backend: b, target: target}
	b.surfaces = append(b.surfaces, s)
	return s, nil
}

func (b *mockBackend) RequestAdapter(opts *AdapterOptions) (Adapter, error) {
	b.lastAdapterOpts = opts
	if b.adapterErr != nil {
		return nil, b.adapterErr
	}
	return &mockAdapter{backend: b}, nil
}

type mockAdapter struct {
	backend *mockBackend
}

func (a *mockAdapter) RequestDevice() (Device, Queue, error) {
	if a.backend.deviceErr != nil {
		return nil, nil, a.backend.deviceErr
	}
	return &mockGPUDevice{backend: a.backend}, &mockQueue{backend: a.backend}, nil
}

type mockGPUDevice struct {
	backend *mockBackend
}

func (d *mockGPUDevice) CreateCommandEncoder() (CommandEncoder, error) {
	return &mockEncoder{backend: d.backend}, nil
}

type mockQueue struct {
	backend *mockBackend
}

func (q *mockQueue) Submit(cmd CommandBuffer) {
	q.backend.submits++
}

type mockSurface struct {
	backend *mockBackend
	target  SurfaceTarget

	config      SurfaceConfig
	configures  int
	acquireErr  error
	acquires    int
	presents    int
	viewFormats []TextureFormat
}

func (s *mockSurface) Capabilities(Adapter) Capabilities {
	return Capabilities{Formats: s.backend.formats, AlphaModes: s.backend.alphaModes}
}

func (s *mockSurface) Configure(_ Adapter, _ Device, cfg *SurfaceConfig) {
	s.config = *cfg
	s.configures++
}

func (s *mockSurface) Acquire() (Texture, error) {
	if s.acquireErr != nil {
		return nil, s.acquireErr
	}
	s.acquires++
	return &mockTexture{surface: s}, nil
}

func (s *mockSurface) Present() {
	s.presents++
}

type mockTexture struct {
	surface  *mockSurface
	released bool
}

func (t *mockTexture) CreateView(format TextureFormat) (TextureView, error) {
	t.surface.viewFormats = append(t.surface.viewFormats, format)
	return &mockView{}, nil
}

func (t *mockTexture) Release() {
	t.released = true
}

type mockView struct {
	released bool
}

func (v *mockView) Release() {
	v.released = true
}

type mockEncoder struct {
	backend *mockBackend
}

func (e *mockEncoder) BeginRenderPass(att *ColorAttachment) RenderPass {
	e.backend.passes = append(e.backend.passes, *att)
	return &mockPass{}
}

func (e *mockEncoder) Finish() (CommandBuffer, error) {
	return struct{}{}, nil
}

type mockPass struct {
	ended bool
}

func (p *mockPass) End() error {
	p.ended = true
	return nil
}

// Mock native collaborators. The platform enforces composition-target
// exclusivity per window the way the real compositor does, so ordering bugs
// surface as errors instead of passing silently.

var errTargetOccupied = errors.New("composition target already bound to window")

type mockPlatform struct {
	clientW uint32
	clientH uint32

	createErr error
	created   int
	acks      int
	quits     int

	devices     []*mockDevice3D
	bridges     []*mockDevice2D
	desktops    []*mockDesktop
	liveTargets map[WindowHandle]*mockCompTarget
}

func newMockPlatform() *mockPlatform {
	return &mockPlatform{
		clientW:     800,
		clientH:     600,
		liveTargets: map[WindowHandle]*mockCompTarget{},
	}
}

func (p *mockPlatform) CreateDevice3D() (Device3D, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.created++
	d := &mockDevice3D{platform: p}
	p.devices = append(p.devices, d)
	return d, nil
}

func (p *mockPlatform) ClientSize(WindowHandle) (uint32, uint32, error) {
	return p.clientW, p.clientH, nil
}

func (p *mockPlatform) Acknowledge(WindowHandle) {
	p.acks++
}

func (p *mockPlatform) Quit() {
	p.quits++
}

type mockDevice3D struct {
	platform *mockPlatform
	removed  error
	released bool
}

func (d *mockDevice3D) RemovedReason() error {
	return d.removed
}

func (d *mockDevice3D) Device2D() (Device2D, error) {
	b := &mockDevice2D{platform: d.platform}
	d.platform.bridges = append(d.platform.bridges, b)
	return b, nil
}

func (d *mockDevice3D) Release() {
	d.released = true
}

type mockDevice2D struct {
	platform *mockPlatform
	released bool
}

func (d *mockDevice2D) DesktopDevice() (DesktopDevice, error) {
	m := &mockDesktop{platform: d.platform}
	d.platform.desktops = append(d.platform.desktops, m)
	return m, nil
}

func (d *mockDevice2D) Release() {
	d.released = true
}

type mockDesktop struct {
	platform *mockPlatform
	visuals  []*mockVisual
	commits  int
	released bool
}

func (d *mockDesktop) CreateTarget(h WindowHandle) (CompositionTarget, error) {
	if t, ok := d.platform.liveTargets[h]; ok && !t.released {
		return nil, errTargetOccupied
	}
	t := &mockCompTarget{}
	d.platform.liveTargets[h] = t
	return t, nil
}

func (d *mockDesktop) CreateVisual() (Visual, error) {
	v := &mockVisual{}
	d.visuals = append(d.visuals, v)
	return v, nil
}

func (d *mockDesktop) Commit() error {
	d.commits++
	return nil
}

func (d *mockDesktop) Release() {
	d.released = true
}

type mockCompTarget struct {
	root     Visual
	released bool
}

func (t *mockCompTarget) SetRoot(v Visual) error {
	t.root = v
	return nil
}

func (t *mockCompTarget) Release() {
	t.released = true
}

type mockVisual struct {
	children []Visual
	released bool
}

func (v *mockVisual) AddChild(child Visual) error {
	v.children = append(v.children, child)
	return nil
}

func (v *mockVisual) SurfaceTarget() SurfaceTarget {
	return mockSurfaceTarget{}
}

func (v *mockVisual) Release() {
	v.released = true
}

type mockSurfaceTarget struct{}

func (mockSurfaceTarget) isSurfaceTarget() {}
