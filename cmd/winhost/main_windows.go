//go:build windows

package main

import (
	"os"

	"github.com/compozit/winhost"
	"github.com/compozit/winhost/internal/win32"
)

func main() {
	log := winhost.NewDefaultLogger("winhost", os.Getenv("WINHOST_DEBUG") != "")

	if err := win32.InitProcess(); err != nil {
		log.Errorf("process setup: %v", err)
		os.Exit(1)
	}
	platform, err := winhost.NewWindowsPlatform()
	if err != nil {
		log.Errorf("platform: %v", err)
		os.Exit(1)
	}
	ctrl := winhost.NewController(platform, winhost.NewWebGPUBackend(), &winhost.Options{
		Logger: log,
	})
	if _, err := win32.NewWindow(winhost.Win32Host{Controller: ctrl}, win32.Options{
		Title:  "winhost",
		Width:  800,
		Height: 600,
	}); err != nil {
		log.Errorf("create window: %v", err)
		os.Exit(1)
	}
	if err := win32.Run(); err != nil {
		log.Errorf("message loop: %v", err)
		os.Exit(1)
	}
}
