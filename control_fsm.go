// control_fsm.go - Encoder and button events to state edits and screen selection

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

// displayModes is the DefaultView round-robin: the five render-only
// modes, in rotation order.
var displayModes = [...]MenuMode{
	DEFAULT_VIEW,
	PARTICLE_DISPLAY,
	XY_DISPLAY,
	RIPPLE_DISPLAY,
	OSCILLOSCOPE_DISPLAY,
}

// menuRing is the circuit a long press walks while in Menu. The XY
// options screen rides along at the end so its swap/bias cells stay
// reachable.
var menuRing = [...]MenuMode{
	SCALE_MENU,
	FREQUENCY_MENU,
	HARMONIC_MENU,
	MODULATION_MENU,
	PANNING_MENU,
	CV_MENU,
	AMPLITUDE_MENU,
	WAVEFORM_MENU,
	XY_DISPLAY,
}

// ControlFSM folds encoder motion and button events into SynthState
// edits and screen selection. Three contexts: DefaultView (pick a
// display mode), Menu (pick a cell), Popup (adjust the cell). Runs
// only on the cooperative main loop; it never touches the tick path.
type ControlFSM struct {
	state  *SynthState
	enc    Encoder
	serial *SerialOutput
	now    func() int64 // wall-clock milliseconds

	inMenu  bool
	inPopup bool

	// Per-context last encoder positions; the applied delta is always
	// new minus last.
	lastViewPos  int
	lastMenuPos  int
	lastPopupPos int

	displayModeIndex int
	menuRingIndex    int

	// Button edge tracking
	buttonWasDown bool
	pressStart    int64
	longFired     bool
	lastAccepted  int64
}

// NewControlFSM wires the state machine to an encoder and a
// millisecond clock. serial may be nil to silence edit logging.
func NewControlFSM(state *SynthState, enc Encoder, serial *SerialOutput, now func() int64) *ControlFSM {
	pos := enc.Position()
	return &ControlFSM{
		state:        state,
		enc:          enc,
		serial:       serial,
		now:          now,
		lastViewPos:  pos,
		lastMenuPos:  pos,
		lastPopupPos: pos,
	}
}

// InPopup reports whether the popup cursor should be drawn.
func (f *ControlFSM) InPopup() bool { return f.inPopup }

// Update polls the encoder once. Called at the main loop cadence.
func (f *ControlFSM) Update() {
	f.updateEncoder()
	f.updateButton()
}

func (f *ControlFSM) updateEncoder() {
	pos := f.enc.Position()
	switch {
	case f.inPopup:
		delta := pos - f.lastPopupPos
		f.lastPopupPos = pos
		if delta != 0 {
			f.adjustCell(delta)
		}
	case f.inMenu:
		delta := pos - f.lastMenuPos
		f.lastMenuPos = pos
		if delta != 0 {
			mode := f.state.Snapshot().CurrentMode
			idx := wrapIndex(f.state.Snapshot().MenuIndex+delta, mode.entryCount())
			f.state.SetMenuIndex(idx)
		}
	default:
		delta := pos - f.lastViewPos
		f.lastViewPos = pos
		if delta != 0 {
			f.displayModeIndex = wrapIndex(f.displayModeIndex+delta, len(displayModes))
			f.state.SetMode(displayModes[f.displayModeIndex])
		}
	}
}

// updateButton runs the two-threshold debounce. A press held past
// LONG_PRESS_MS fires once while still down; a shorter press fires on
// release. Either way the event is accepted only when SHORT_PRESS_MS
// has elapsed since the last accepted press; bounce inside the window
// is dropped.
func (f *ControlFSM) updateButton() {
	now := f.now()
	down := f.enc.Button()
	defer func() { f.buttonWasDown = down }()

	if down && !f.buttonWasDown {
		f.pressStart = now
		f.longFired = false
		return
	}
	if down && now-f.pressStart >= LONG_PRESS_MS && !f.longFired {
		if now-f.lastAccepted > SHORT_PRESS_MS {
			f.longFired = true
			f.lastAccepted = now
			f.longPress()
		}
		return
	}
	if !down && f.buttonWasDown && !f.longFired {
		if now-f.lastAccepted > SHORT_PRESS_MS {
			f.lastAccepted = now
			f.shortPress()
		}
	}
}

func (f *ControlFSM) shortPress() {
	switch {
	case f.inPopup:
		// Leave the popup back to the default view.
		f.inPopup = false
		f.displayModeIndex = 0
		f.state.SetMode(DEFAULT_VIEW)
		f.lastViewPos = f.enc.Position()
	case f.inMenu:
		// Open the popup for the current menu.
		f.inMenu = false
		f.inPopup = true
		f.lastPopupPos = f.enc.Position()
	default:
		// Step the partial being edited.
		snap := f.state.Snapshot()
		next := wrapIndex(snap.HarmonicIndex+1, NUM_HARMONICS)
		f.state.SetHarmonicIndex(next)
		f.logf("Selected harmonic: %d", next)
	}
}

func (f *ControlFSM) longPress() {
	switch {
	case f.inPopup:
		// No long press action inside a popup.
	case f.inMenu:
		// Walk to the next menu in the ring.
		f.menuRingIndex = wrapIndex(f.menuRingIndex+1, len(menuRing))
		f.state.SetMode(menuRing[f.menuRingIndex])
		f.state.SetMenuIndex(0)
		f.lastMenuPos = f.enc.Position()
	default:
		// Enter the menu system at its first screen.
		f.inMenu = true
		f.menuRingIndex = 0
		f.state.SetMode(menuRing[0])
		f.state.SetMenuIndex(0)
		f.lastMenuPos = f.enc.Position()
	}
}

// adjustCell applies the menu-specific commit rule once per detent.
// Continuous cells move by ±0.1; discrete cells step their selection
// and commit immediately so the audible state tracks the cursor.
func (f *ControlFSM) adjustCell(delta int) {
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for n := 0; n < delta; n++ {
		f.commitStep(step)
	}
}

func (f *ControlFSM) commitStep(step int) {
	snap := f.state.Snapshot()
	mode := snap.CurrentMode
	idx := wrapIndex(snap.MenuIndex, mode.entryCount())

	switch mode {
	case SCALE_MENU:
		idx = wrapIndex(idx+step, NUM_SCALES)
		f.state.SetMenuIndex(idx)
		f.state.ApplyScale(Scale(idx))
		f.logf("Scale: %s", Scale(idx))
	case FREQUENCY_MENU:
		idx = wrapIndex(idx+step, len(baseFrequencies))
		f.state.SetMenuIndex(idx)
		f.state.SetBaseFrequencyIndex(idx)
		f.logf("Base frequency: %.1f Hz", baseFrequencies[idx])
	case HARMONIC_MENU:
		idx = wrapIndex(idx+step, NUM_HARMONICS)
		f.state.SetMenuIndex(idx)
		f.state.SetHarmonicIndex(idx)
	case MODULATION_MENU:
		f.state.AdjustModulation(idx, snap.HarmonicIndex, float32(step)*0.1)
	case PANNING_MENU:
		f.state.AdjustPanning(idx, float32(step)*0.1)
	case CV_MENU:
		f.state.CycleCVAssignment(idx, step)
	case AMPLITUDE_MENU:
		f.state.AdjustAmplitude(idx, float32(step)*0.1)
		f.logf("Harmonic %d amplitude: %.2f", idx, f.state.Snapshot().HarmonicAmplitudes[idx])
	case WAVEFORM_MENU:
		idx = wrapIndex(idx+step, NUM_WAVEFORMS)
		f.state.SetMenuIndex(idx)
		f.state.SetWaveform(Waveform(idx))
		f.logf("Waveform: %s", Waveform(idx))
	case XY_DISPLAY:
		switch idx {
		case 0:
			f.state.ToggleXYSwap()
		case 1:
			f.state.AdjustXYBias(0, float32(step)*0.1)
		case 2:
			f.state.AdjustXYBias(1, float32(step)*0.1)
		}
	}
}

func (f *ControlFSM) logf(format string, args ...any) {
	if f.serial != nil {
		f.serial.Logf(format, args...)
	}
}
