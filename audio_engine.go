// audio_engine.go - The sample tick: harmonic synthesis model evaluation

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

// Frame is one tick's worth of output: the 8-bit stereo pair, the
// mixed stereo sum and the seven per-partial samples, all nominally
// in [-1,1]. The additive sum may exceed unit range; clipping happens
// at DAC conversion, not here.
type Frame struct {
	Left   float32
	Right  float32
	Stereo float32
	Wave   [NUM_HARMONICS]float32
}

// AudioEngine evaluates the harmonic synthesis model once per tick.
// It allocates nothing and blocks only on the state lock, which is
// held by commits for a handful of field writes at most; a tick has
// no failure mode visible to callers.
type AudioEngine struct {
	state *SynthState
}

func NewAudioEngine(state *SynthState) *AudioEngine {
	return &AudioEngine{state: state}
}

// partialFrequency returns the instantaneous frequency of partial i:
// the harmonic series frequency, plus the additive cross-modulation
// offset from every partial, then the CV routings applied in fixed
// CV-index order. Amplitude routing writes back into the amplitude
// array; cv values are already in [0,1] so the write keeps the [0,1]
// invariant without an explicit clamp. Caller holds the state lock.
func partialFrequency(st *SynthState, i int, cv [NUM_CV_INPUTS]float32) float32 {
	f := st.baseFrequency * float32(i+1)
	for j := 0; j < NUM_HARMONICS; j++ {
		f += st.modulationMatrix[j][i] * st.harmonicAmplitudes[j]
	}
	for c := 0; c < NUM_CV_INPUTS; c++ {
		switch st.cvAssignments[c] {
		case CV_LIN_FM:
			f += cv[c] * st.baseFrequency
		case CV_EXP_FM:
			f *= exp2f(cv[c])
		case CV_AMPLITUDE:
			st.harmonicAmplitudes[i] *= cv[c]
		case CV_PITCH_1V_OCT:
			f *= exp2f(cv[c] - 1)
		case CV_NONE:
		}
	}
	return f
}

// waveformSample evaluates the selected oscillator shape for partial
// frequency f at the current sample index. Saw, triangle and pulse
// deliberately use the sample index as a partial-independent phase
// proxy rather than f; that periodicity is a preserved property of
// the original instrument.
func waveformSample(w Waveform, sampleIndex int, f float32) float32 {
	switch w {
	case WAVE_SINE:
		return sampleSine(sampleIndex, f)
	case WAVE_SAW:
		return 2*float32(sampleIndex%NUM_SAMPLES)/NUM_SAMPLES - 1
	case WAVE_TRIANGLE:
		return 2*abs32(2*float32(sampleIndex%NUM_SAMPLES)/NUM_SAMPLES-1) - 1
	case WAVE_PULSE:
		if sampleIndex%NUM_SAMPLES < NUM_SAMPLES/2 {
			return 1
		}
		return -1
	}
	return 0
}

// Tick produces one Frame from the current state and one CV reading.
// Out-of-range CV values are silently saturated to [0,1]. The whole
// body runs under the state write lock, the portable rendition of the
// original firmware masking the timer interrupt for the full ISR: the
// tick writes sampleIndex and, when an Amplitude routing is active,
// the amplitude array, and concurrent snapshots must never observe
// those mid-update.
func (e *AudioEngine) Tick(cv [NUM_CV_INPUTS]float32) Frame {
	for c := range cv {
		cv[c] = clampf(cv[c], 0, 1)
	}

	st := e.state
	st.mu.Lock()
	defer st.mu.Unlock()

	var frame Frame
	idx := st.sampleIndex
	for i := 0; i < NUM_HARMONICS; i++ {
		f := partialFrequency(st, i, cv)
		s := st.harmonicAmplitudes[i] * waveformSample(st.currentWaveform, idx, f)

		pan := st.harmonicPanning[i]
		frame.Left += s * (1 - pan)
		frame.Right += s * pan
		frame.Stereo += s
		frame.Wave[i] = s
	}
	st.sampleIndex = (idx + 1) % NUM_SAMPLES
	return frame
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
