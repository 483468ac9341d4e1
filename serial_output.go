// serial_output.go - Serial-port style edit logging

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

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// SerialOutput mirrors the original instrument's serial debug prints.
// Control-path only; the tick never logs.
type SerialOutput struct {
	mu      sync.Mutex
	enabled bool
	w       io.Writer
}

// NewSerialOutput creates a serial logger writing to stdout.
func NewSerialOutput(enabled bool) *SerialOutput {
	return &SerialOutput{enabled: enabled, w: os.Stdout}
}

// SetEnabled switches logging on or off at runtime.
func (s *SerialOutput) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

// Logf writes one line when enabled.
func (s *SerialOutput) Logf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}
	fmt.Fprintf(s.w, format+"\n", args...)
}
