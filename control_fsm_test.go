// control_fsm_test.go - Encoder/button state machine tests with a fake clock

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

import "testing"

type fsmHarness struct {
	state *SynthState
	enc   *SimEncoder
	fsm   *ControlFSM
	ms    int64
}

func newFSMHarness() *fsmHarness {
	h := &fsmHarness{
		state: NewSynthState(),
		enc:   NewSimEncoder(),
		ms:    10_000, // far enough from zero that the first press debounces clean
	}
	h.fsm = NewControlFSM(h.state, h.enc, nil, func() int64 { return h.ms })
	return h
}

// advance moves the fake clock and polls once, like the UI loop would.
func (h *fsmHarness) advance(ms int64) {
	h.ms += ms
	h.fsm.Update()
}

// shortPress taps the button for one poll interval.
func (h *fsmHarness) shortPress() {
	h.enc.SetButton(true)
	h.advance(UI_FRAME_MS)
	h.enc.SetButton(false)
	h.advance(UI_FRAME_MS)
}

// longPress holds the button across the long threshold.
func (h *fsmHarness) longPress() {
	h.enc.SetButton(true)
	h.advance(UI_FRAME_MS)
	h.advance(LONG_PRESS_MS)
	h.enc.SetButton(false)
	h.advance(UI_FRAME_MS)
}

func (h *fsmHarness) turn(delta int) {
	h.enc.Turn(delta)
	h.advance(UI_FRAME_MS)
}

func TestLongPressEntersScaleMenu(t *testing.T) {
	h := newFSMHarness()

	h.longPress()
	if got := h.state.Snapshot().CurrentMode; got != SCALE_MENU {
		t.Fatalf("after long press: mode %d, want scale menu", got)
	}
	if h.fsm.InPopup() {
		t.Error("long press must not open a popup")
	}
}

func TestLongPressWalksMenuRing(t *testing.T) {
	h := newFSMHarness()

	h.longPress()
	want := []MenuMode{
		FREQUENCY_MENU, HARMONIC_MENU, MODULATION_MENU, PANNING_MENU,
		CV_MENU, AMPLITUDE_MENU, WAVEFORM_MENU, XY_DISPLAY, SCALE_MENU,
	}
	for _, m := range want {
		h.advance(SHORT_PRESS_MS + 1) // clear the debounce window
		h.longPress()
		if got := h.state.Snapshot().CurrentMode; got != m {
			t.Fatalf("menu ring: got mode %d, want %d", got, m)
		}
		if got := h.state.Snapshot().MenuIndex; got != 0 {
			t.Fatalf("menu index should reset on ring advance, got %d", got)
		}
	}
}

func TestShortPressOpensPopupAndCommits(t *testing.T) {
	h := newFSMHarness()

	h.longPress()
	h.advance(SHORT_PRESS_MS + 1)
	h.shortPress()
	if !h.fsm.InPopup() {
		t.Fatal("short press in menu should open the popup")
	}

	// One detent clockwise commits the next scale immediately.
	h.turn(1)
	snap := h.state.Snapshot()
	if snap.CurrentScale != SCALE_MINOR {
		t.Errorf("popup detent: got scale %s, want Minor", snap.CurrentScale)
	}
	if snap.HarmonicAmplitudes != scaleTables[SCALE_MINOR] {
		t.Errorf("popup detent did not commit amplitudes: %v", snap.HarmonicAmplitudes)
	}
}

func TestShortPressInPopupReturnsToDefaultView(t *testing.T) {
	h := newFSMHarness()

	h.longPress()
	h.advance(SHORT_PRESS_MS + 1)
	h.shortPress() // menu -> popup
	h.advance(SHORT_PRESS_MS + 1)
	h.shortPress() // popup -> default view

	if h.fsm.InPopup() {
		t.Error("popup should be closed")
	}
	if got := h.state.Snapshot().CurrentMode; got != DEFAULT_VIEW {
		t.Errorf("after leaving popup: mode %d, want default view", got)
	}
}

func TestDefaultViewEncoderCyclesDisplayModes(t *testing.T) {
	h := newFSMHarness()

	want := []MenuMode{PARTICLE_DISPLAY, XY_DISPLAY, RIPPLE_DISPLAY, OSCILLOSCOPE_DISPLAY, DEFAULT_VIEW}
	for _, m := range want {
		h.turn(1)
		if got := h.state.Snapshot().CurrentMode; got != m {
			t.Fatalf("display cycle: got mode %d, want %d", got, m)
		}
	}

	// Counter-clockwise wraps the other way.
	h.turn(-1)
	if got := h.state.Snapshot().CurrentMode; got != OSCILLOSCOPE_DISPLAY {
		t.Errorf("reverse cycle: got mode %d, want oscilloscope", got)
	}
}

func TestDefaultViewShortPressCyclesHarmonic(t *testing.T) {
	h := newFSMHarness()

	for want := 1; want < NUM_HARMONICS; want++ {
		h.advance(SHORT_PRESS_MS + 1)
		h.shortPress()
		if got := h.state.Snapshot().HarmonicIndex; got != want {
			t.Fatalf("harmonic cycle: got %d, want %d", got, want)
		}
	}
	h.advance(SHORT_PRESS_MS + 1)
	h.shortPress()
	if got := h.state.Snapshot().HarmonicIndex; got != 0 {
		t.Errorf("harmonic cycle should wrap to 0, got %d", got)
	}
}

func TestBounceInsideDebounceWindowIsDropped(t *testing.T) {
	h := newFSMHarness()

	h.shortPress() // accepted, harmonic 0 -> 1

	// A second tap well inside the 300ms window must be ignored.
	h.enc.SetButton(true)
	h.advance(10)
	h.enc.SetButton(false)
	h.advance(10)

	if got := h.state.Snapshot().HarmonicIndex; got != 1 {
		t.Errorf("bounced press changed state: harmonic %d, want 1", got)
	}
}

func TestLongPressFiresOnceWhileHeld(t *testing.T) {
	h := newFSMHarness()

	h.enc.SetButton(true)
	h.advance(UI_FRAME_MS)
	h.advance(LONG_PRESS_MS)
	if got := h.state.Snapshot().CurrentMode; got != SCALE_MENU {
		t.Fatal("long press did not fire while held")
	}

	// Keep holding well past a second threshold; no further event and
	// no short press on release.
	h.advance(LONG_PRESS_MS * 2)
	h.enc.SetButton(false)
	h.advance(UI_FRAME_MS)

	snap := h.state.Snapshot()
	if snap.CurrentMode != SCALE_MENU {
		t.Errorf("held long press re-fired: mode %d", snap.CurrentMode)
	}
	if h.fsm.InPopup() {
		t.Error("release after a long press must not count as a short press")
	}
}

func TestMenuEncoderMovesSelection(t *testing.T) {
	h := newFSMHarness()

	h.longPress() // scale menu, 4 entries
	h.turn(1)
	h.turn(1)
	if got := h.state.Snapshot().MenuIndex; got != 2 {
		t.Fatalf("menu selection: got %d, want 2", got)
	}
	h.turn(3) // wraps modulo 4
	if got := h.state.Snapshot().MenuIndex; got != 1 {
		t.Errorf("menu selection wrap: got %d, want 1", got)
	}
	// Browsing never commits.
	if got := h.state.Snapshot().CurrentScale; got != SCALE_MAJOR {
		t.Errorf("browsing committed a scale: %s", got)
	}
}

func TestPopupAmplitudeAdjust(t *testing.T) {
	h := newFSMHarness()

	// Walk the ring to the amplitude menu.
	h.longPress()
	for i := 0; i < 6; i++ {
		h.advance(SHORT_PRESS_MS + 1)
		h.longPress()
	}
	if got := h.state.Snapshot().CurrentMode; got != AMPLITUDE_MENU {
		t.Fatalf("setup: mode %d, want amplitude menu", got)
	}

	h.turn(2) // select partial 2
	h.advance(SHORT_PRESS_MS + 1)
	h.shortPress() // open popup

	h.turn(3) // three detents up
	got := h.state.Snapshot().HarmonicAmplitudes[2]
	if !almostEqual(got, 0.3, 1e-6) {
		t.Errorf("amplitude cell: got %v, want 0.3", got)
	}
	h.turn(-1)
	got = h.state.Snapshot().HarmonicAmplitudes[2]
	if !almostEqual(got, 0.2, 1e-6) {
		t.Errorf("amplitude cell after decrement: got %v, want 0.2", got)
	}
}

func TestXYOptionsPopup(t *testing.T) {
	h := newFSMHarness()

	// The XY options screen is the last stop on the menu ring.
	h.longPress()
	for i := 0; i < 8; i++ {
		h.advance(SHORT_PRESS_MS + 1)
		h.longPress()
	}
	if got := h.state.Snapshot().CurrentMode; got != XY_DISPLAY {
		t.Fatalf("setup: mode %d, want XY options", got)
	}

	h.advance(SHORT_PRESS_MS + 1)
	h.shortPress() // popup on the swap cell
	h.turn(1)
	if !h.state.Snapshot().XYSwapped {
		t.Error("swap cell did not toggle")
	}
}
