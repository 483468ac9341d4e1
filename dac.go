// dac.go - Frame to DAC code conversion

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

// DACFrame is one Frame converted to converter codes: the 8-bit
// left/right pair and the eight 12-bit channels (stereo sum plus the
// seven partials). Addressing is positional - the hardware's
// sequential converter wiring is opaque to the core.
type DACFrame struct {
	Left   uint8
	Right  uint8
	Stereo uint16
	Wave   [NUM_HARMONICS]uint16
}

// dacCode8 maps a nominal [-1,1] sample onto the 8-bit range,
// saturating anything outside.
func dacCode8(x float32) uint8 {
	v := math.Round(float64(x+1) * 127.5)
	if v < 0 {
		return 0
	}
	if v > DAC_8BIT_MAX {
		return DAC_8BIT_MAX
	}
	return uint8(v)
}

// dacCode12 maps a nominal [-1,1] sample onto the 12-bit range,
// saturating anything outside. The additive stereo sum routinely
// exceeds unit range; this is where it clips.
func dacCode12(x float32) uint16 {
	v := math.Round(float64(x+1) * 2047.5)
	if v < 0 {
		return 0
	}
	if v > DAC_12BIT_MAX {
		return DAC_12BIT_MAX
	}
	return uint16(v)
}

// ConvertFrame applies the per-channel DAC laws to a whole frame.
func ConvertFrame(f Frame) DACFrame {
	d := DACFrame{
		Left:   dacCode8(f.Left),
		Right:  dacCode8(f.Right),
		Stereo: dacCode12(f.Stereo),
	}
	for i, w := range f.Wave {
		d.Wave[i] = dacCode12(w)
	}
	return d
}
