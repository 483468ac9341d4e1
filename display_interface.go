// display_interface.go - Display backend contract for the 128x64 monochrome panel

/*
 ██████  ██    ██ ███████ ██████  ████████  ██████  ███    ██ ███████     ███████ ███    ██  ██████  ██ ███    ██ ███████
██    ██ ██    ██ ██      ██   ██    ██    ██    ██ ████   ██ ██          ██      ████   ██ ██       ██ ████   ██ ██
██    ██ ██    ██ █████   ██████     ██    ██    ██ ██ ██  ██ █████       █████   ██ ██  ██ ██   ███ ██ ██ ██  ██ █████
██    ██  ██  ██  ██      ██   ██    ██    ██    ██ ██  ██ ██ ██          ██      ██  ██ ██ ██    ██ ██ ██  ██ ██ ██
 ██████    ████   ███████ ██   ██    ██     ██████  ██   ████ ███████     ███████ ██   ████  ██████  ██ ██   ████ ███████

(c) 2024 - 2026 Overtone Synthesis Project
https://github.com/overtonesynth/OvertoneEngine
License: GPLv3 or later
*/

package main

import "fmt"

// DisplayError provides context for display operations that can fail.
type DisplayError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *DisplayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("display %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("display %s failed: %s", e.Operation, e.Details)
}

// DisplayBackend is the frame-buffered pixel contract the renderer
// draws through. Coordinates outside the panel are silently clipped.
// Nothing is visible until Present.
type DisplayBackend interface {
	Clear()
	Pixel(x, y int, on bool)
	Rect(x, y, w, h int, on bool)
	FillRect(x, y, w, h int, on bool)
	Circle(cx, cy, r int, on bool)
	Text(x, y int, s string, size int)
	Present() error

	// Lifecycle
	Start() error
	Stop() error
	Close() error
}

// Predefined display backend types
const (
	DISPLAY_BACKEND_BUFFER   = iota // In-memory framebuffer only
	DISPLAY_BACKEND_EBITEN          // Scaled desktop window
	DISPLAY_BACKEND_TERMINAL        // Character cells in a terminal
)

// NewDisplayBackend creates a display backend of the given type at the
// panel's native 128x64 geometry.
func NewDisplayBackend(backend int) (DisplayBackend, error) {
	switch backend {
	case DISPLAY_BACKEND_BUFFER:
		return NewBufferDisplay(), nil
	case DISPLAY_BACKEND_EBITEN:
		return NewEbitenDisplay()
	case DISPLAY_BACKEND_TERMINAL:
		return NewTerminalDisplay()
	}
	return nil, &DisplayError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}
