// encoder.go - Rotary encoder contract

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

import "sync/atomic"

// Encoder exposes the detented rotary control: a monotonic position
// counter (rollover is the driver's concern, not ours) and the raw
// button level. Debouncing belongs to the ControlFSM, not here.
type Encoder interface {
	Position() int
	Button() bool
}

// SimEncoder is a software encoder. Display backends feed it from
// keyboard or wheel input; tests drive it directly.
type SimEncoder struct {
	position atomic.Int64
	button   atomic.Bool
}

func NewSimEncoder() *SimEncoder { return &SimEncoder{} }

// Turn advances the detent counter by delta (negative for
// counter-clockwise).
func (e *SimEncoder) Turn(delta int) {
	e.position.Add(int64(delta))
}

func (e *SimEncoder) SetButton(down bool) {
	e.button.Store(down)
}

func (e *SimEncoder) Position() int {
	return int(e.position.Load())
}

func (e *SimEncoder) Button() bool {
	return e.button.Load()
}
