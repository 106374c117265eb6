// Package win32 owns the native window: class registration, window
// creation without GDI redirection, the blocking message loop, and the
// one-time process setup (COM, DPI awareness).
package win32
