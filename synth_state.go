// synth_state.go - Authoritative state model shared by the tick and the control loop

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

// Waveform selects the oscillator shape shared by all seven partials.
type Waveform int

const (
	WAVE_SINE Waveform = iota
	WAVE_SAW
	WAVE_TRIANGLE
	WAVE_PULSE
)

const NUM_WAVEFORMS = 4

func (w Waveform) String() string {
	return waveformNames[int(w)%NUM_WAVEFORMS]
}

// CVMode is the routing assignment of one control voltage input.
type CVMode int

const (
	CV_NONE CVMode = iota
	CV_LIN_FM
	CV_EXP_FM
	CV_AMPLITUDE
	CV_PITCH_1V_OCT
)

const NUM_CV_MODES = 5

func (m CVMode) String() string {
	return cvModeNames[int(m)%NUM_CV_MODES]
}

// Scale tags one of the four ratio tables.
type Scale int

const (
	SCALE_MAJOR Scale = iota
	SCALE_MINOR
	SCALE_NATURAL_HARMONIC
	SCALE_PENTATONIC
)

const NUM_SCALES = 4

func (s Scale) String() string {
	return scaleNames[int(s)%NUM_SCALES]
}

// MenuMode enumerates every screen the renderer can be asked to draw:
// the eight edit menus, the four alternate displays and the default
// combined-waveform view.
type MenuMode int

const (
	SCALE_MENU MenuMode = iota
	FREQUENCY_MENU
	HARMONIC_MENU
	MODULATION_MENU
	PANNING_MENU
	CV_MENU
	AMPLITUDE_MENU
	WAVEFORM_MENU
	PARTICLE_DISPLAY
	XY_DISPLAY
	RIPPLE_DISPLAY
	OSCILLOSCOPE_DISPLAY
	DEFAULT_VIEW
)

// IsMenu reports whether the mode is one of the edit menus rather
// than a pure display mode. XY_DISPLAY carries an options popup of
// its own and is reachable from the menu ring as well.
func (m MenuMode) IsMenu() bool {
	return m >= SCALE_MENU && m <= WAVEFORM_MENU
}

// entryCount is the number of selectable rows the menu presents.
// menuIndex is reduced modulo this before every use.
func (m MenuMode) entryCount() int {
	switch m {
	case SCALE_MENU, FREQUENCY_MENU, WAVEFORM_MENU:
		return 4
	case HARMONIC_MENU, MODULATION_MENU, PANNING_MENU, AMPLITUDE_MENU:
		return NUM_HARMONICS
	case CV_MENU:
		return NUM_CV_INPUTS
	case XY_DISPLAY:
		return 3 // swap, bias X, bias Y
	default:
		return 1
	}
}

// SynthState is the single shared object between the audio tick and
// the control loop. The control path is the sole writer of every field
// except sampleIndex and, while a CV input is routed to Amplitude, the
// amplitude array; those two are written by the tick alone. Every
// writer takes the write lock: control-path commits for their
// composite writes, and the tick for its whole body - the portable
// rendition of the original firmware's timer-masked critical section.
// Snapshot is the only read-lock user.
type SynthState struct {
	mu sync.RWMutex

	baseFrequency      float32
	baseFrequencyIndex int
	harmonicAmplitudes [NUM_HARMONICS]float32
	harmonicPanning    [NUM_HARMONICS]float32
	// modulationMatrix[j][i] is the depth from partial j into partial i.
	// The diagonal is permitted and acts as self-FM.
	modulationMatrix [NUM_HARMONICS][NUM_HARMONICS]float32
	currentScale     Scale
	currentWaveform  Waveform
	cvAssignments    [NUM_CV_INPUTS]CVMode
	harmonicIndex    int
	currentMode      MenuMode
	menuIndex        int
	xySwapped        bool
	xyBiasX          float32
	xyBiasY          float32
	sampleIndex      int
}

// SynthSnapshot is a plain value copy of SynthState taken under the
// read lock. The renderer works exclusively from snapshots so no lock
// is ever held across display I/O.
type SynthSnapshot struct {
	BaseFrequency      float32
	BaseFrequencyIndex int
	HarmonicAmplitudes [NUM_HARMONICS]float32
	HarmonicPanning    [NUM_HARMONICS]float32
	ModulationMatrix   [NUM_HARMONICS][NUM_HARMONICS]float32
	CurrentScale       Scale
	CurrentWaveform    Waveform
	CVAssignments      [NUM_CV_INPUTS]CVMode
	HarmonicIndex      int
	CurrentMode        MenuMode
	MenuIndex          int
	XYSwapped          bool
	XYBiasX            float32
	XYBiasY            float32
	SampleIndex        int
}

// NewSynthState returns the power-on state: fundamental at full
// amplitude, everything centered, A4 base pitch, default view.
func NewSynthState() *SynthState {
	st := &SynthState{
		baseFrequency:      baseFrequencies[1],
		baseFrequencyIndex: 1,
		currentScale:       SCALE_MAJOR,
		currentWaveform:    WAVE_SINE,
		currentMode:        DEFAULT_VIEW,
	}
	st.harmonicAmplitudes[0] = 1.0
	for i := range st.harmonicPanning {
		st.harmonicPanning[i] = 0.5
	}
	return st
}

func (st *SynthState) Snapshot() SynthSnapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return SynthSnapshot{
		BaseFrequency:      st.baseFrequency,
		BaseFrequencyIndex: st.baseFrequencyIndex,
		HarmonicAmplitudes: st.harmonicAmplitudes,
		HarmonicPanning:    st.harmonicPanning,
		ModulationMatrix:   st.modulationMatrix,
		CurrentScale:       st.currentScale,
		CurrentWaveform:    st.currentWaveform,
		CVAssignments:      st.cvAssignments,
		HarmonicIndex:      st.harmonicIndex,
		CurrentMode:        st.currentMode,
		MenuIndex:          st.menuIndex,
		XYSwapped:          st.xySwapped,
		XYBiasX:            st.xyBiasX,
		XYBiasY:            st.xyBiasY,
		SampleIndex:        st.sampleIndex,
	}
}

// ApplyScale commits a scale choice. The scale's seven ratios are
// written directly over harmonicAmplitudes, ratios above 1.0 included.
// This overwrite is the original instrument's documented behavior and
// is preserved; the amplitude array is dual-purposed while a scale is
// active.
func (st *SynthState) ApplyScale(s Scale) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.currentScale = s
	st.harmonicAmplitudes = scaleTables[int(s)%NUM_SCALES]
}

// SetBaseFrequencyIndex commits one of the four configured base
// frequencies.
func (st *SynthState) SetBaseFrequencyIndex(k int) {
	k = wrapIndex(k, len(baseFrequencies))
	st.mu.Lock()
	defer st.mu.Unlock()
	st.baseFrequencyIndex = k
	st.baseFrequency = baseFrequencies[k]
}

// AdjustAmplitude bumps one partial's amplitude, clamped to [0,1].
func (st *SynthState) AdjustAmplitude(i int, delta float32) {
	i = wrapIndex(i, NUM_HARMONICS)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.harmonicAmplitudes[i] = clampf(st.harmonicAmplitudes[i]+delta, 0, 1)
}

// AdjustPanning bumps one partial's pan position, clamped to [0,1].
func (st *SynthState) AdjustPanning(i int, delta float32) {
	i = wrapIndex(i, NUM_HARMONICS)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.harmonicPanning[i] = clampf(st.harmonicPanning[i]+delta, 0, 1)
}

// AdjustModulation bumps the modulation depth from partial src into
// partial dst, clamped to [0,1].
func (st *SynthState) AdjustModulation(src, dst int, delta float32) {
	src = wrapIndex(src, NUM_HARMONICS)
	dst = wrapIndex(dst, NUM_HARMONICS)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.modulationMatrix[src][dst] = clampf(st.modulationMatrix[src][dst]+delta, 0, 1)
}

// CycleCVAssignment steps one CV input's routing tag through the five
// modes, wrapping in either direction.
func (st *SynthState) CycleCVAssignment(i, step int) {
	i = wrapIndex(i, NUM_CV_INPUTS)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cvAssignments[i] = CVMode(wrapIndex(int(st.cvAssignments[i])+step, NUM_CV_MODES))
}

func (st *SynthState) SetWaveform(w Waveform) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.currentWaveform = Waveform(wrapIndex(int(w), NUM_WAVEFORMS))
}

func (st *SynthState) SetHarmonicIndex(i int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.harmonicIndex = wrapIndex(i, NUM_HARMONICS)
}

func (st *SynthState) SetMode(m MenuMode) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.currentMode = m
}

func (st *SynthState) SetMenuIndex(i int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.menuIndex = i
}

func (st *SynthState) ToggleXYSwap() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.xySwapped = !st.xySwapped
}

// AdjustXYBias bumps the oscilloscope bias on axis 0 (X) or 1 (Y),
// clamped to [-1,1].
func (st *SynthState) AdjustXYBias(axis int, delta float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if axis == 0 {
		st.xyBiasX = clampf(st.xyBiasX+delta, -1, 1)
	} else {
		st.xyBiasY = clampf(st.xyBiasY+delta, -1, 1)
	}
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// wrapIndex reduces i modulo n into [0,n), handling negative i.
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
