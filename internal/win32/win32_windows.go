//go:build windows

package win32

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/sys/windows"
)

// Handler receives routed window messages. Dispatch reports whether the
// message was consumed; unconsumed messages fall through to DefWindowProc.
type Handler interface {
	Attach(hwnd uintptr)
	Dispatch(msg uint32, wparam, lparam uintptr) bool
}

const (
	csHRedraw = 0x0002
	csVRedraw = 0x0001

	wsOverlapped  = 0x00000000
	wsCaption     = 0x00C00000
	wsSysMenu     = 0x00080000
	wsMinimizeBox = 0x00020000
	wsSizeBox     = 0x00040000
	wsVisible     = 0x10000000

	// No GDI redirection surface: every pixel the window shows comes from
	// the composition tree.
	wsExNoRedirectionBitmap = 0x00200000

	cwUseDefault = 0x80000000

	idcArrow = 32512

	coinitMultithreaded = 0x0
)

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2, the pseudo-handle (-4).
var dpiAwarenessPerMonitorV2 = ^uintptr(3)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	ole32    = windows.NewLazySystemDLL("ole32.dll")

	procRegisterClassExW              = user32.NewProc("RegisterClassExW")
	procCreateWindowExW               = user32.NewProc("CreateWindowExW")
	procDefWindowProcW                = user32.NewProc("DefWindowProcW")
	procGetMessageW                   = user32.NewProc("GetMessageW")
	procTranslateMessage              = user32.NewProc("TranslateMessage")
	procDispatchMessageW              = user32.NewProc("DispatchMessageW")
	procPostQuitMessage               = user32.NewProc("PostQuitMessage")
	procGetClientRect                 = user32.NewProc("GetClientRect")
	procValidateRect                  = user32.NewProc("ValidateRect")
	procLoadCursorW                   = user32.NewProc("LoadCursorW")
	procSetProcessDpiAwarenessContext = user32.NewProc("SetProcessDpiAwarenessContext")
	procGetModuleHandleW              = kernel32.NewProc("GetModuleHandleW")
	procCoInitializeEx                = ole32.NewProc("CoInitializeEx")
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     uintptr
	hIcon         uintptr
	hCursor       uintptr
	hbrBackground uintptr
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       uintptr
}

type point struct {
	x, y int32
}

type message struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      point
}

type rect struct {
	left, top, right, bottom int32
}

// winMap associates window handles with their handlers. The wndproc fires
// during CreateWindowEx, before the handle is returned to the creator, so a
// window under construction is found through pending instead.
var (
	winMap    sync.Map
	pendingMu sync.Mutex
	pending   Handler
)

var wndProcCallback = windows.NewCallback(wndProc)

func wndProc(hwnd uintptr, msg uint32, wparam, lparam uintptr) uintptr {
	v, ok := winMap.Load(hwnd)
	if !ok {
		pendingMu.Lock()
		p := pending
		pendingMu.Unlock()
		if p == nil {
			return defWindowProc(hwnd, msg, wparam, lparam)
		}
		// First message for the window under construction: associate the
		// handle before anything else is routed.
		p.Attach(hwnd)
		winMap.Store(hwnd, p)
		v = p
	}
	if v.(Handler).Dispatch(msg, wparam, lparam) {
		return 0
	}
	return defWindowProc(hwnd, msg, wparam, lparam)
}

func defWindowProc(hwnd uintptr, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := procDefWindowProcW.Call(hwnd, uintptr(msg), wparam, lparam)
	return r
}

// Options configures the hosted window. Zero width/height let the system
// pick defaults.
type Options struct {
	Title  string
	Width  int
	Height int
}

// NewWindow registers a dedicated window class and creates a visible,
// resizable, redirection-free window routed to h. The calling goroutine is
// locked to its OS thread; the same goroutine must run the message loop.
func NewWindow(h Handler, opts Options) (uintptr, error) {
	runtime.LockOSThread()

	hinst, err := ModuleHandle()
	if err != nil {
		return 0, err
	}
	cursor, _, cursorErr := procLoadCursorW.Call(0, idcArrow)
	if cursor == 0 {
		return 0, fmt.Errorf("LoadCursorW: %w", cursorErr)
	}

	// Unique per window so repeated hosts in one process never collide on
	// registration.
	className, err := windows.UTF16PtrFromString("winhost-" + uuid.NewString())
	if err != nil {
		return 0, err
	}
	wc := wndClassEx{
		cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
		style:         csHRedraw | csVRedraw,
		lpfnWndProc:   wndProcCallback,
		hInstance:     hinst,
		hCursor:       cursor,
		lpszClassName: className,
	}
	if atom, _, regErr := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		return 0, fmt.Errorf("RegisterClassExW: %w", regErr)
	}

	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return 0, err
	}
	width := uintptr(cwUseDefault)
	height := uintptr(cwUseDefault)
	if opts.Width > 0 && opts.Height > 0 {
		width = uintptr(opts.Width)
		height = uintptr(opts.Height)
	}

	pendingMu.Lock()
	pending = h
	pendingMu.Unlock()
	defer func() {
		pendingMu.Lock()
		pending = nil
		pendingMu.Unlock()
	}()

	hwnd, _, createErr := procCreateWindowExW.Call(
		wsExNoRedirectionBitmap,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		wsOverlapped|wsCaption|wsSysMenu|wsMinimizeBox|wsVisible|wsSizeBox,
		cwUseDefault, cwUseDefault,
		width, height,
		0, // parent
		0, // menu
		hinst,
		0, // creation parameter
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowExW: %w", createErr)
	}
	return hwnd, nil
}

// Run pumps messages until a quit request, blocking the calling goroutine.
// Must run on the thread that created the window.
func Run() error {
	var m message
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		case 0:
			return nil
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// ClientSize reads the window's current client-area extent.
func ClientSize(hwnd uintptr) (uint32, uint32, error) {
	var r rect
	ret, _, err := procGetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return 0, 0, fmt.Errorf("GetClientRect: %w", err)
	}
	return uint32(r.right - r.left), uint32(r.bottom - r.top), nil
}

// Acknowledge validates the client area so the system stops reposting paint
// requests.
func Acknowledge(hwnd uintptr) {
	procValidateRect.Call(hwnd, 0)
}

// Quit posts the quit request that ends Run.
func Quit() {
	procPostQuitMessage.Call(0)
}

// ModuleHandle returns the executable's instance handle.
func ModuleHandle() (uintptr, error) {
	h, _, err := procGetModuleHandleW.Call(0)
	if h == 0 {
		return 0, fmt.Errorf("GetModuleHandleW: %w", err)
	}
	return h, nil
}

// InitProcess performs the one-time process setup: multithreaded COM and
// per-monitor-v2 DPI awareness.
func InitProcess() error {
	hr, _, _ := procCoInitializeEx.Call(0, coinitMultithreaded)
	if int32(hr) < 0 {
		return fmt.Errorf("CoInitializeEx: %#x", hr)
	}
	if r, _, err := procSetProcessDpiAwarenessContext.Call(dpiAwarenessPerMonitorV2); r == 0 {
		return fmt.Errorf("SetProcessDpiAwarenessContext: %w", err)
	}
	return nil
}
