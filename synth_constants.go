// synth_constants.go - Compile-time configuration for the Overtone Engine

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

import "math"

const (
	// Deliberately low sample rate: one tick produces one DAC frame and
	// the tick must complete within 1/SAMPLE_RATE seconds.
	SAMPLE_RATE = 1000

	NUM_SAMPLES   = 256 // Sine table length; sampleIndex wraps here
	NUM_HARMONICS = 7   // Fundamental plus six partials
	NUM_CV_INPUTS = 4   // External control voltage inputs
)

// Display geometry (128x64 monochrome)
const (
	DISPLAY_WIDTH  = 128
	DISPLAY_HEIGHT = 64
)

// Button debounce thresholds in milliseconds, measured from the last
// accepted press. A held button crossing LONG_PRESS_MS fires a long
// press; anything shorter released after SHORT_PRESS_MS is a short
// press. Presses inside the short window are dropped as bounce.
const (
	SHORT_PRESS_MS = 300
	LONG_PRESS_MS  = 1000
)

// Main loop cadence. Rendering and input run at roughly 10 Hz; the
// audio tick runs independently at SAMPLE_RATE Hz.
const UI_FRAME_MS = 100

// DAC code ranges
const (
	DAC_8BIT_MAX  = 255  // Left/right pair
	DAC_12BIT_MAX = 4095 // Stereo sum and per-partial outputs
)

const TWO_PI = float32(2 * math.Pi)

// Selectable base frequencies (committed by the frequency menu)
var baseFrequencies = [4]float32{220.0, 440.0, 880.0, 1760.0}

var scaleNames = [4]string{"Major", "Minor", "Natural Harmonic", "Pentatonic"}

var waveformNames = [4]string{"Sine", "Saw", "Triangle", "Pulse"}

var cvModeNames = [5]string{"None", "Linear FM", "Exponential FM", "Amplitude", "Pitch (1V/oct)"}

// Scale ratio tables. A scale commit copies the selected row verbatim
// into harmonicAmplitudes; the values above 1.0 are intentional and
// preserved bit-for-bit from the original instrument.
var scaleTables = [4][NUM_HARMONICS]float32{
	{1.0, 1.122, 1.26, 1.335, 1.5, 1.682, 1.888},  // Major
	{1.0, 1.122, 1.189, 1.335, 1.5, 1.587, 1.782}, // Minor
	{1.0, 1.125, 1.25, 1.375, 1.5, 1.625, 1.75},   // Natural harmonic
	{1.0, 1.125, 1.25, 1.5, 1.75, 2.0, 2.25},      // Pentatonic
}
