package winhost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHwnd = WindowHandle(0x1234)

func newTestController() (*Controller, *mockPlatform, *mockBackend) {
	platform := newMockPlatform()
	backend := newMockBackend()
	c := NewController(platform, backend, nil)
	c.Attach(testHwnd)
	return c, platform, backend
}

func packSize(width, height uint16) uintptr {
	return uintptr(uint32(width) | uint32(height)<<16)
}

func TestController_FirstPaintBuildsStack(t *testing.T) {
	c, platform, backend := newTestController()

	require.True(t, c.Dispatch(MsgPaint, 0, 0))

	assert.Equal(t, 1, platform.created, "one 3d device")
	require.Len(t, platform.desktops, 1)
	desktop := platform.desktops[0]
	assert.Equal(t, 1, desktop.commits, "visual tree committed once")

	require.Len(t, platform.bridges, 1)
	assert.True(t, platform.bridges[0].released, "2d bridge released after derivation")

	// Root visual installed on the target, content visual under the root.
	target := platform.liveTargets[testHwnd]
	require.NotNil(t, target)
	require.Len(t, desktop.visuals, 2)
	assert.Same(t, Visual(desktop.visuals[0]), target.root)
	require.Len(t, desktop.visuals[0].children, 1)
	assert.Same(t, Visual(desktop.visuals[1]), desktop.visuals[0].children[0])

	// Surface configured at the client size and one frame presented.
	require.Len(t, backend.surfaces, 1)
	surface := backend.surfaces[0]
	assert.Equal(t, uint32(800), surface.config.Width)
	assert.Equal(t, uint32(600), surface.config.Height)
	assert.Equal(t, 1, surface.presents)
	assert.Equal(t, 1, platform.acks, "paint acknowledged")
}

func TestController_PaintFailureStillAcknowledges(t *testing.T) {
	c, platform, _ := newTestController()
	platform.createErr = errors.New("no hardware device")

	require.True(t, c.Dispatch(MsgPaint, 0, 0))

	assert.Nil(t, c.device)
	assert.Equal(t, 1, platform.acks, "failed paints are acknowledged too")
}

func TestController_DeviceLossRebuilds(t *testing.T) {
	c, platform, backend := newTestController()

	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	firstTarget := platform.liveTargets[testHwnd]

	platform.devices[0].removed = errors.New("device hung")
	require.True(t, c.Dispatch(MsgPaint, 0, 0))

	assert.Nil(t, c.device, "stack dropped at the dispatch boundary")
	assert.True(t, platform.devices[0].released)
	assert.Equal(t, 2, platform.acks)

	// Next paint rebuilds everything and presents again.
	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	assert.Equal(t, 2, platform.created)
	assert.True(t, firstTarget.released, "old target released before the new one")
	assert.True(t, platform.desktops[0].released, "old desktop device released")
	require.Len(t, backend.surfaces, 2)
	assert.Equal(t, 1, backend.surfaces[1].presents)
}

func TestController_RepeatedCreateFailuresStayConsistent(t *testing.T) {
	c, platform, backend := newTestController()

	// The 3d device comes up but everything downstream fails.
	backend.adapterErr = errors.New("adapter unavailable")
	for i := 0; i < 3; i++ {
		require.True(t, c.Dispatch(MsgPaint, 0, 0))
		assert.Nil(t, c.device, "no half-built stack survives a failed paint")
	}
	assert.Equal(t, 3, platform.created)
	for _, d := range platform.devices {
		assert.True(t, d.released)
	}

	backend.adapterErr = nil
	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	require.NotNil(t, c.device)
	assert.Equal(t, 1, backend.surfaces[len(backend.surfaces)-1].presents)
}

func TestController_CreateResourcesPanicsWhenStackPresent(t *testing.T) {
	c, _, _ := newTestController()
	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	require.NotNil(t, c.device)

	require.Panics(t, func() {
		_ = c.createResources()
	})
}

func TestController_SingleCompositionTargetPerWindow(t *testing.T) {
	c, platform, _ := newTestController()

	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	for i := 0; i < 3; i++ {
		platform.devices[len(platform.devices)-1].removed = errors.New("removed")
		require.True(t, c.Dispatch(MsgPaint, 0, 0)) // loss detected
		require.True(t, c.Dispatch(MsgPaint, 0, 0)) // rebuild; fails if the old target were still live
	}
	assert.False(t, platform.liveTargets[testHwnd].released, "exactly one live target remains")
}

func TestController_ResizeBeforeFirstPaint(t *testing.T) {
	c, _, backend := newTestController()

	require.True(t, c.Dispatch(MsgSize, 0, packSize(400, 300)))
	assert.Empty(t, backend.surfaces, "nothing to reconfigure yet")
}

func TestController_ResizeUpdatesConfigBeforeNextPaint(t *testing.T) {
	c, _, backend := newTestController()
	require.True(t, c.Dispatch(MsgPaint, 0, 0))

	require.True(t, c.Dispatch(MsgSize, 0, packSize(400, 300)))

	surface := backend.surfaces[0]
	assert.Equal(t, uint32(400), surface.config.Width)
	assert.Equal(t, uint32(300), surface.config.Height)

	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	assert.Equal(t, 2, surface.presents)
}

func TestController_DestroyQuits(t *testing.T) {
	c, platform, _ := newTestController()
	require.True(t, c.Dispatch(MsgDestroy, 0, 0))
	assert.Equal(t, 1, platform.quits)
}

func TestController_UnknownMessageFallsThrough(t *testing.T) {
	c, _, _ := newTestController()
	assert.False(t, c.Dispatch(MessageCode(0x0200), 0, 0)) // mouse move
}

func TestController_DispatchBeforeAttach(t *testing.T) {
	c := NewController(newMockPlatform(), newMockBackend(), nil)
	assert.False(t, c.Dispatch(MsgPaint, 0, 0))
}

func TestController_AttachTwice(t *testing.T) {
	c, _, _ := newTestController()

	assert.NotPanics(t, func() { c.Attach(testHwnd) })
	require.Panics(t, func() { c.Attach(WindowHandle(0x9999)) })
}

func TestController_FullSession(t *testing.T) {
	c, platform, backend := newTestController()

	// Open at 800x600; the first paint builds the stack and presents.
	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	surface := backend.surfaces[0]
	assert.Equal(t, uint32(800), surface.config.Width)
	assert.Equal(t, 1, surface.presents)

	// Resize lands before the next paint.
	require.True(t, c.Dispatch(MsgSize, 0, packSize(400, 300)))
	assert.Equal(t, uint32(400), surface.config.Width)
	assert.Equal(t, uint32(300), surface.config.Height)
	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	assert.Equal(t, 2, surface.presents)

	// Device removal: the next paint detects it, the one after rebuilds.
	platform.devices[0].removed = errors.New("device reset")
	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	require.True(t, c.Dispatch(MsgPaint, 0, 0))
	require.Len(t, backend.surfaces, 2)
	assert.Equal(t, 1, backend.surfaces[1].presents)

	// Close.
	require.True(t, c.Dispatch(MsgDestroy, 0, 0))
	assert.Equal(t, 1, platform.quits)
}
