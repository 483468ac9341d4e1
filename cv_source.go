// cv_source.go - Control voltage input contract

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

import "sync"

// CVSource samples the four control voltage inputs, normalized to
// [0,1]. Implementations saturate out-of-range readings; the engine
// clamps again at the boundary so a misbehaving source stays silent
// rather than fatal.
type CVSource interface {
	Read() [NUM_CV_INPUTS]float32
}

// FixedCVSource is a settable CV source. It stands in for the ADC
// bank on hosts without one and doubles as the scripted source in
// tests.
type FixedCVSource struct {
	mu     sync.Mutex
	levels [NUM_CV_INPUTS]float32
}

func NewFixedCVSource() *FixedCVSource { return &FixedCVSource{} }

// Set stores one input level, saturated to [0,1].
func (s *FixedCVSource) Set(i int, v float32) {
	i = wrapIndex(i, NUM_CV_INPUTS)
	s.mu.Lock()
	s.levels[i] = clampf(v, 0, 1)
	s.mu.Unlock()
}

func (s *FixedCVSource) Read() [NUM_CV_INPUTS]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels
}
