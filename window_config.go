package main

import "github.com/stewi1014/glmandel/navigation"

type WindowConfig struct {
	Title string

	// Fullscreen opens a borderless window covering the primary monitor.
	// Otherwise a window of Width x Height is opened.
	Fullscreen    bool
	Width, Height int

	// VSync limits presentation to the monitor refresh rate.
	VSync bool

	// Debug enables OpenGL debug output.
	Debug bool

	Navigation navigation.Config
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:      "Mandelbrot",
		Fullscreen: true,
		Width:      800,
		Height:     600,
		VSync:      true,
		Debug:      false,
		Navigation: navigation.DefaultConfig(),
	}
}
