// audio_lut.go - Sine lookup table for the sample tick

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

// sineTable holds NUM_SAMPLES precomputed values of sin over [0,2π).
// Built once at init and read-only afterwards; the tick never calls
// math.Sin.
var sineTable [NUM_SAMPLES]float32

func init() {
	for i := 0; i < NUM_SAMPLES; i++ {
		sineTable[i] = float32(math.Sin(2 * math.Pi * float64(i) / NUM_SAMPLES))
	}
}

// sineLookup returns sin(2π·cycle) for cycle in [0,1) using linear
// interpolation between adjacent table entries.
//
//go:nosplit
func sineLookup(cycle float32) float32 {
	pos := cycle * NUM_SAMPLES
	idx := int(pos)
	frac := pos - float32(idx)
	idx &= NUM_SAMPLES - 1
	next := (idx + 1) & (NUM_SAMPLES - 1)
	return sineTable[idx] + frac*(sineTable[next]-sineTable[idx])
}

// sampleSine evaluates sin(2π·sampleIndex·freq/SAMPLE_RATE). The cycle
// count is reduced in float64 before the table lookup so that exact
// integer cycle counts land exactly on table entry zero.
func sampleSine(sampleIndex int, freq float32) float32 {
	cycles := float64(sampleIndex) * float64(freq) / SAMPLE_RATE
	cycles -= math.Floor(cycles)
	return sineLookup(float32(cycles))
}

// exp2f is the float32 power-of-two used by the exponential CV laws.
func exp2f(x float32) float32 {
	return float32(math.Exp2(float64(x)))
}
