// audio_engine_test.go - Sample tick and CV routing tests

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
	"math"
	"testing"
)

// The sine table is linearly interpolated, so allow a little slack
// against math.Sin.
const sineTolerance = 1e-3

func almostEqual(a, b, tol float32) bool {
	return abs32(a-b) <= tol
}

func TestTickSilenceWhenAllAmplitudesZero(t *testing.T) {
	state := NewSynthState()
	state.AdjustAmplitude(0, -1.0)
	engine := NewAudioEngine(state)

	for n := 0; n < NUM_SAMPLES; n++ {
		frame := engine.Tick([NUM_CV_INPUTS]float32{})
		if frame.Left != 0 || frame.Right != 0 || frame.Stereo != 0 {
			t.Fatalf("tick %d: expected silence, got L=%v R=%v S=%v",
				n, frame.Left, frame.Right, frame.Stereo)
		}
		for i, w := range frame.Wave {
			if w != 0 {
				t.Fatalf("tick %d: partial %d nonzero: %v", n, i, w)
			}
		}
	}
}

func TestTickPureFundamental(t *testing.T) {
	state := NewSynthState() // amp[0]=1, others 0, 440 Hz, sine, centered
	engine := NewAudioEngine(state)

	first := engine.Tick([NUM_CV_INPUTS]float32{})
	if first.Stereo != 0 {
		t.Fatalf("sample index 0 should be a zero crossing, got %v", first.Stereo)
	}

	second := engine.Tick([NUM_CV_INPUTS]float32{})
	want := float32(math.Sin(2 * math.Pi * 440.0 / SAMPLE_RATE))
	if !almostEqual(second.Wave[0], want, sineTolerance) {
		t.Errorf("partial 0 at index 1: got %v, want %v", second.Wave[0], want)
	}
	for i := 1; i < NUM_HARMONICS; i++ {
		if second.Wave[i] != 0 {
			t.Errorf("partial %d should be silent, got %v", i, second.Wave[i])
		}
	}
	if !almostEqual(second.Left, second.Right, 1e-6) {
		t.Errorf("centered pan should split equally: L=%v R=%v", second.Left, second.Right)
	}
	if !almostEqual(second.Left+second.Right, second.Stereo, 1e-6) {
		t.Errorf("L+R=%v does not match stereo sum %v", second.Left+second.Right, second.Stereo)
	}
}

func TestSampleSineIntegerCycleIsExactZero(t *testing.T) {
	// 250 samples of 440 Hz at 1 kHz is exactly 110 cycles.
	if got := sampleSine(250, 440); got != 0 {
		t.Errorf("sampleSine(250, 440) = %v, want exact 0", got)
	}
	if got := sampleSine(0, 440); got != 0 {
		t.Errorf("sampleSine(0, 440) = %v, want exact 0", got)
	}
}

func TestSampleSineMatchesMathSin(t *testing.T) {
	for idx := 0; idx < NUM_SAMPLES; idx++ {
		want := float32(math.Sin(2 * math.Pi * float64(idx) * 220.0 / SAMPLE_RATE))
		got := sampleSine(idx, 220)
		if !almostEqual(got, want, sineTolerance) {
			t.Fatalf("index %d: got %v, want %v", idx, got, want)
		}
	}
}

func TestPanLawHardRight(t *testing.T) {
	state := NewSynthState()
	for n := 0; n < 5; n++ {
		state.AdjustPanning(0, 0.1)
	}
	if p := state.Snapshot().HarmonicPanning[0]; p != 1.0 {
		t.Fatalf("pan setup failed: %v", p)
	}
	engine := NewAudioEngine(state)

	engine.Tick([NUM_CV_INPUTS]float32{}) // index 0 is a zero crossing
	frame := engine.Tick([NUM_CV_INPUTS]float32{})
	if frame.Wave[0] == 0 {
		t.Fatal("expected a nonzero sample at index 1")
	}
	if frame.Left != 0 {
		t.Errorf("hard right pan leaked into left: %v", frame.Left)
	}
	if !almostEqual(frame.Right, frame.Wave[0], 1e-6) {
		t.Errorf("right channel %v should carry the full sample %v", frame.Right, frame.Wave[0])
	}
}

func TestPanLawHardLeft(t *testing.T) {
	state := NewSynthState()
	// Five -0.1 steps from 0.5 stop a float32 ulp short of zero; the
	// sixth trips the clamp floor.
	for n := 0; n < 6; n++ {
		state.AdjustPanning(0, -0.1)
	}
	if p := state.Snapshot().HarmonicPanning[0]; p != 0.0 {
		t.Fatalf("pan setup failed: %v", p)
	}
	engine := NewAudioEngine(state)

	engine.Tick([NUM_CV_INPUTS]float32{})
	frame := engine.Tick([NUM_CV_INPUTS]float32{})
	if frame.Right != 0 {
		t.Errorf("hard left pan leaked into right: %v", frame.Right)
	}
	if !almostEqual(frame.Left, frame.Wave[0], 1e-6) {
		t.Errorf("left channel %v should carry the full sample %v", frame.Left, frame.Wave[0])
	}
}

func TestStereoSumInvariants(t *testing.T) {
	state := NewSynthState()
	state.ApplyScale(SCALE_MINOR)
	state.AdjustPanning(2, 0.3)
	state.AdjustPanning(5, -0.2)
	state.AdjustModulation(1, 3, 0.5)
	engine := NewAudioEngine(state)

	for n := 0; n < NUM_SAMPLES; n++ {
		frame := engine.Tick([NUM_CV_INPUTS]float32{})
		var sum float32
		for _, w := range frame.Wave {
			sum += w
		}
		if !almostEqual(frame.Stereo, sum, 1e-4) {
			t.Fatalf("tick %d: stereo %v != partial sum %v", n, frame.Stereo, sum)
		}
		if !almostEqual(frame.Left+frame.Right, frame.Stereo, 1e-4) {
			t.Fatalf("tick %d: L+R=%v != stereo %v", n, frame.Left+frame.Right, frame.Stereo)
		}
	}
}

func TestPartialFrequencyHarmonicSeries(t *testing.T) {
	state := NewSynthState()
	var noCV [NUM_CV_INPUTS]float32
	for i := 0; i < NUM_HARMONICS; i++ {
		want := 440.0 * float32(i+1)
		if got := partialFrequency(state, i, noCV); got != want {
			t.Errorf("partial %d: got %v Hz, want %v Hz", i, got, want)
		}
	}
}

func TestPartialFrequencyModulationOffset(t *testing.T) {
	state := NewSynthState()
	state.AdjustModulation(0, 2, 0.5) // depth 0.5 from partial 0 into partial 2
	var noCV [NUM_CV_INPUTS]float32

	// amp[0] is 1.0, so the offset into partial 2 is 0.5 Hz.
	want := float32(440*3 + 0.5)
	if got := partialFrequency(state, 2, noCV); !almostEqual(got, want, 1e-3) {
		t.Errorf("modulated partial 2: got %v Hz, want %v Hz", got, want)
	}
	// Other partials stay on the series.
	if got := partialFrequency(state, 1, noCV); got != 880 {
		t.Errorf("partial 1 should be unmodulated: got %v Hz", got)
	}
}

func TestCVLinearFM(t *testing.T) {
	state := NewSynthState()
	state.CycleCVAssignment(0, int(CV_LIN_FM))
	cv := [NUM_CV_INPUTS]float32{0.5}

	want := float32(440 + 0.5*440)
	if got := partialFrequency(state, 0, cv); !almostEqual(got, want, 1e-3) {
		t.Errorf("linear FM: got %v Hz, want %v Hz", got, want)
	}
}

func TestCVExponentialFMDoubles(t *testing.T) {
	state := NewSynthState()
	state.CycleCVAssignment(0, int(CV_EXP_FM))
	cv := [NUM_CV_INPUTS]float32{1.0}

	if got := partialFrequency(state, 0, cv); !almostEqual(got, 880, 1e-2) {
		t.Errorf("exponential FM at full scale: got %v Hz, want 880 Hz", got)
	}
}

func TestCVPitch1VOct(t *testing.T) {
	state := NewSynthState()
	state.CycleCVAssignment(0, int(CV_PITCH_1V_OCT))

	// Full scale is unity, zero is an octave down.
	if got := partialFrequency(state, 0, [NUM_CV_INPUTS]float32{1.0}); !almostEqual(got, 440, 1e-2) {
		t.Errorf("1V/oct at full scale: got %v Hz, want 440 Hz", got)
	}
	if got := partialFrequency(state, 0, [NUM_CV_INPUTS]float32{0.0}); !almostEqual(got, 220, 1e-2) {
		t.Errorf("1V/oct at zero: got %v Hz, want 220 Hz", got)
	}
}

func TestCVAmplitudeWriteback(t *testing.T) {
	state := NewSynthState()
	state.CycleCVAssignment(0, int(CV_AMPLITUDE))
	engine := NewAudioEngine(state)

	engine.Tick([NUM_CV_INPUTS]float32{0.5})
	if got := state.Snapshot().HarmonicAmplitudes[0]; got != 0.5 {
		t.Fatalf("after one tick: amp[0]=%v, want 0.5", got)
	}
	// The scaling compounds tick over tick.
	engine.Tick([NUM_CV_INPUTS]float32{0.5})
	if got := state.Snapshot().HarmonicAmplitudes[0]; got != 0.25 {
		t.Fatalf("after two ticks: amp[0]=%v, want 0.25", got)
	}
}

func TestTickClampsOutOfRangeCV(t *testing.T) {
	state := NewSynthState()
	state.CycleCVAssignment(0, int(CV_AMPLITUDE))
	engine := NewAudioEngine(state)

	// A CV above full scale saturates to 1.0 and must not boost.
	engine.Tick([NUM_CV_INPUTS]float32{4.2})
	if got := state.Snapshot().HarmonicAmplitudes[0]; got != 1.0 {
		t.Errorf("saturated CV changed amplitude: %v", got)
	}
}

func TestWaveformShapes(t *testing.T) {
	cases := []struct {
		w    Waveform
		idx  int
		want float32
	}{
		{WAVE_SAW, 0, -1},
		{WAVE_SAW, NUM_SAMPLES / 2, 0},
		{WAVE_TRIANGLE, 0, 1},
		{WAVE_TRIANGLE, NUM_SAMPLES / 2, -1},
		{WAVE_PULSE, 0, 1},
		{WAVE_PULSE, NUM_SAMPLES/2 - 1, 1},
		{WAVE_PULSE, NUM_SAMPLES / 2, -1},
		{WAVE_PULSE, NUM_SAMPLES - 1, -1},
	}
	for _, c := range cases {
		if got := waveformSample(c.w, c.idx, 440); got != c.want {
			t.Errorf("%s at index %d: got %v, want %v", c.w, c.idx, got, c.want)
		}
	}
}

func TestSawIsPeriodicInSampleIndex(t *testing.T) {
	for idx := 0; idx < NUM_SAMPLES; idx++ {
		a := waveformSample(WAVE_SAW, idx, 440)
		b := waveformSample(WAVE_SAW, idx+NUM_SAMPLES, 440)
		if a != b {
			t.Fatalf("saw not periodic at index %d: %v vs %v", idx, a, b)
		}
	}
}

// The tick runs concurrently with snapshots and control-path commits;
// under the race detector this exercises the locking of the fields the
// tick writes (sampleIndex, amplitude writeback).
func TestTickConcurrentWithControlPath(t *testing.T) {
	state := NewSynthState()
	state.CycleCVAssignment(0, int(CV_AMPLITUDE))
	engine := NewAudioEngine(state)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 0; n < 2000; n++ {
			engine.Tick([NUM_CV_INPUTS]float32{0.9})
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		snap := state.Snapshot()
		if snap.SampleIndex < 0 || snap.SampleIndex >= NUM_SAMPLES {
			t.Fatalf("sample index out of range: %d", snap.SampleIndex)
		}
		for i, a := range snap.HarmonicAmplitudes {
			if a < 0 || a > 1 {
				t.Fatalf("partial %d amplitude out of range: %v", i, a)
			}
		}
		state.AdjustPanning(3, 0.01)
	}
}

func TestSampleIndexWrapsAtTableLength(t *testing.T) {
	state := NewSynthState()
	engine := NewAudioEngine(state)

	for n := 0; n < NUM_SAMPLES; n++ {
		engine.Tick([NUM_CV_INPUTS]float32{})
	}
	if got := state.Snapshot().SampleIndex; got != 0 {
		t.Errorf("after %d ticks sample index = %d, want 0", NUM_SAMPLES, got)
	}
}

func BenchmarkTick(b *testing.B) {
	state := NewSynthState()
	state.ApplyScale(SCALE_MAJOR)
	state.CycleCVAssignment(0, int(CV_EXP_FM))
	engine := NewAudioEngine(state)
	cv := [NUM_CV_INPUTS]float32{0.3, 0, 0, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Tick(cv)
	}
}

func BenchmarkSampleSine(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sampleSine(i, 440)
	}
}
