// display_views.go - View functions and renderer orchestration

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
	"math"
	"math/rand"
)

const (
	MAX_PARTICLES = 50
	MAX_RIPPLES   = 10

	RIPPLE_DECAY     = 0.05 // Life lost per frame
	RIPPLE_MIN_SPEED = 0.1
	RIPPLE_MAX_SPEED = 0.4
)

type particle struct {
	x, y   float32
	dx, dy float32
}

type ripple struct {
	x, y      int
	radius    float32
	speed     float32
	amplitude float32
	life      float32
}

// Renderer owns the visual state that persists across frames
// (particle positions, ripple phases) and dispatches one view
// function per redraw based on the snapshot's mode. View state never
// feeds back into audio.
type Renderer struct {
	disp DisplayBackend
	rng  *rand.Rand

	particles [MAX_PARTICLES]particle
	ripples   [MAX_RIPPLES]ripple
}

// NewRenderer seeds the particle field and ripple pool the way the
// original panel bring-up does.
func NewRenderer(disp DisplayBackend, seed int64) *Renderer {
	r := &Renderer{
		disp: disp,
		rng:  rand.New(rand.NewSource(seed)),
	}
	for i := range r.particles {
		r.particles[i] = particle{
			x:  float32(r.rng.Intn(DISPLAY_WIDTH)),
			y:  float32(r.rng.Intn(DISPLAY_HEIGHT)),
			dx: float32(r.rng.Intn(3) - 1),
			dy: float32(r.rng.Intn(3) - 1),
		}
	}
	for i := range r.ripples {
		r.ripples[i] = ripple{
			x:         r.rng.Intn(DISPLAY_WIDTH),
			y:         r.rng.Intn(DISPLAY_HEIGHT),
			speed:     r.rippleSpeed(),
			amplitude: 0,
			life:      1.0,
		}
	}
	return r
}

func (r *Renderer) rippleSpeed() float32 {
	return RIPPLE_MIN_SPEED + r.rng.Float32()*(RIPPLE_MAX_SPEED-RIPPLE_MIN_SPEED)
}

// Splash draws the centered boot title and presents it.
func (r *Renderer) Splash() error {
	r.disp.Clear()
	r.disp.Text(15, 24, "OVERTONE ENGINE", 1)
	return r.disp.Present()
}

// Render draws exactly one view for the snapshot's current mode.
// popup selects the edit cursor for menu screens.
func (r *Renderer) Render(snap SynthSnapshot, popup bool) error {
	r.disp.Clear()
	switch snap.CurrentMode {
	case PARTICLE_DISPLAY:
		r.drawParticles(snap)
	case XY_DISPLAY:
		if popup {
			r.drawMenu(snap, popup)
		} else {
			r.drawXYOscilloscope(snap)
		}
	case RIPPLE_DISPLAY:
		r.drawRippleEffect(snap)
	case OSCILLOSCOPE_DISPLAY:
		r.drawWaveformOscilloscope(snap)
	case DEFAULT_VIEW:
		r.drawDefaultView(snap)
	default:
		r.drawMenu(snap, popup)
	}
	return r.disp.Present()
}

// combinedSample is the static preview trace: the sum of the seven
// partials as pure sine components across one screen width.
func combinedSample(amps [NUM_HARMONICS]float32, x int) float32 {
	var s float32
	for i := 0; i < NUM_HARMONICS; i++ {
		s += amps[i] * float32(math.Sin(2*math.Pi*float64(i+1)*float64(x)/DISPLAY_WIDTH))
	}
	return s
}

func (r *Renderer) drawTrace(amps [NUM_HARMONICS]float32) {
	for x := 0; x < DISPLAY_WIDTH; x++ {
		y := DISPLAY_HEIGHT/2 + int(combinedSample(amps, x)*16)
		r.disp.Pixel(x, y, true)
	}
}

func (r *Renderer) drawDefaultView(snap SynthSnapshot) {
	r.drawTrace(snap.HarmonicAmplitudes)

	for i := 0; i < NUM_HARMONICS; i++ {
		cursor := ""
		if i == snap.HarmonicIndex {
			cursor = " <-"
		}
		r.disp.Text(0, i*8, fmt.Sprintf("H%d: %.1f%s", i+1, snap.HarmonicAmplitudes[i], cursor), 1)
	}
	r.disp.Text(0, 56, fmt.Sprintf("Scale: %s", snap.CurrentScale), 1)
	r.disp.Text(64, 56, fmt.Sprintf("Freq: %.1f", snap.BaseFrequency), 1)
}

func (r *Renderer) drawAmplitudeBars(snap SynthSnapshot) {
	for i := 0; i < NUM_HARMONICS; i++ {
		barHeight := int(snap.HarmonicAmplitudes[i] * DISPLAY_HEIGHT)
		if barHeight > DISPLAY_HEIGHT {
			barHeight = DISPLAY_HEIGHT
		}
		r.disp.FillRect(i*18, DISPLAY_HEIGHT-barHeight, 16, barHeight, true)
		r.disp.Text(i*18, DISPLAY_HEIGHT-barHeight-8, fmt.Sprintf("%d", i+1), 1)
	}
}

// menuRow prints one selectable row with the cursor style the popup
// and menu screens share: "> " prefix while editing, " <-" suffix
// while browsing.
func (r *Renderer) menuRow(y int, selected, popup bool, label string) {
	switch {
	case popup && selected:
		r.disp.Text(0, y, "> "+label, 1)
	case popup:
		r.disp.Text(0, y, "  "+label, 1)
	case selected:
		r.disp.Text(0, y, label+" <-", 1)
	default:
		r.disp.Text(0, y, label, 1)
	}
}

func (r *Renderer) drawMenu(snap SynthSnapshot, popup bool) {
	mode := snap.CurrentMode
	idx := wrapIndex(snap.MenuIndex, mode.entryCount())

	switch mode {
	case SCALE_MENU:
		r.disp.Text(0, 0, "Select Scale:", 1)
		for i := 0; i < NUM_SCALES; i++ {
			r.menuRow((i+1)*8, i == idx, popup, scaleNames[i])
		}
	case FREQUENCY_MENU:
		r.disp.Text(0, 0, "Select Base Freq:", 1)
		for i := range baseFrequencies {
			r.menuRow((i+1)*8, i == idx, popup, fmt.Sprintf("%.1f", baseFrequencies[i]))
		}
	case HARMONIC_MENU:
		r.disp.Text(0, 0, "Select Harmonic:", 1)
		for i := 0; i < NUM_HARMONICS; i++ {
			r.menuRow((i+1)*8, i == idx, popup, fmt.Sprintf("H%d", i+1))
		}
	case MODULATION_MENU:
		r.disp.Text(0, 0, fmt.Sprintf("Modulate H%d with:", snap.HarmonicIndex+1), 1)
		for i := 0; i < NUM_HARMONICS; i++ {
			label := fmt.Sprintf("H%d: %.1f", i+1, snap.ModulationMatrix[i][snap.HarmonicIndex])
			r.menuRow((i+1)*8, i == idx, popup, label)
		}
	case PANNING_MENU:
		r.disp.Text(0, 0, fmt.Sprintf("Panning H%d", snap.HarmonicIndex+1), 1)
		for i := 0; i < NUM_HARMONICS; i++ {
			label := fmt.Sprintf("H%d: %.1f", i+1, snap.HarmonicPanning[i])
			r.menuRow((i+1)*8, i == idx, popup, label)
		}
	case CV_MENU:
		r.disp.Text(0, 0, "CV Assignments:", 1)
		for i := 0; i < NUM_CV_INPUTS; i++ {
			label := fmt.Sprintf("CV%d: %s", i+1, snap.CVAssignments[i])
			r.menuRow((i+1)*8, i == idx, popup, label)
		}
	case AMPLITUDE_MENU:
		r.disp.Text(0, 0, "Amplitude Control:", 1)
		r.drawAmplitudeBars(snap)
	case WAVEFORM_MENU:
		r.disp.Text(0, 0, "Select Waveform:", 1)
		for i := 0; i < NUM_WAVEFORMS; i++ {
			r.menuRow((i+1)*8, i == idx, popup, waveformNames[i])
		}
	case XY_DISPLAY:
		r.disp.Text(0, 0, "XY Oscilloscope:", 1)
		onOff := "Off"
		if snap.XYSwapped {
			onOff = "On"
		}
		r.menuRow(8, idx == 0, popup, fmt.Sprintf("Swap Channels: %s", onOff))
		r.menuRow(16, idx == 1, popup, fmt.Sprintf("Bias X: %.1f", snap.XYBiasX))
		r.menuRow(24, idx == 2, popup, fmt.Sprintf("Bias Y: %.1f", snap.XYBiasY))
	}
}

func (r *Renderer) drawParticles(snap SynthSnapshot) {
	for i := range r.particles {
		p := &r.particles[i]
		amp := snap.HarmonicAmplitudes[i%NUM_HARMONICS]
		p.x += p.dx * amp * 2
		p.y += p.dy * amp * 2

		if p.x < 0 || p.x >= DISPLAY_WIDTH {
			p.dx = -p.dx
			p.x = clampf(p.x, 0, DISPLAY_WIDTH-1)
		}
		if p.y < 0 || p.y >= DISPLAY_HEIGHT {
			p.dy = -p.dy
			p.y = clampf(p.y, 0, DISPLAY_HEIGHT-1)
		}
		r.disp.Pixel(int(p.x), int(p.y), true)
	}
}

func (r *Renderer) drawXYOscilloscope(snap SynthSnapshot) {
	for i := 0; i < NUM_SAMPLES; i++ {
		phase := 2 * math.Pi * float64(i) / NUM_SAMPLES
		xs := float32(math.Sin(phase))
		ys := float32(math.Cos(phase))

		x := int((xs + snap.XYBiasX) * (DISPLAY_WIDTH / 2))
		y := int((ys + snap.XYBiasY) * (DISPLAY_HEIGHT / 2))
		x += DISPLAY_WIDTH / 2
		y += DISPLAY_HEIGHT / 2

		if snap.XYSwapped {
			x, y = y, x
		}
		r.disp.Pixel(x, y, true)
	}
}

func (r *Renderer) drawRippleEffect(snap SynthSnapshot) {
	for i := range r.ripples {
		rp := &r.ripples[i]

		rp.radius += rp.speed
		rp.life -= RIPPLE_DECAY

		if rp.life <= 0 {
			rp.radius = 0
			rp.x = r.rng.Intn(DISPLAY_WIDTH)
			rp.y = r.rng.Intn(DISPLAY_HEIGHT)
			rp.speed = r.rippleSpeed()
			rp.amplitude = snap.HarmonicAmplitudes[r.rng.Intn(NUM_HARMONICS)]
			rp.life = 1.0
		}

		r.disp.Circle(rp.x, rp.y, int(rp.radius), rp.life > 0.5)
	}
}

func (r *Renderer) drawWaveformOscilloscope(snap SynthSnapshot) {
	r.drawTrace(snap.HarmonicAmplitudes)
}
