// machine.go - Wires the engine, control surface and peripherals into one instrument

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
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Machine owns the two loops of the instrument: the sample tick at
// SAMPLE_RATE and the UI poll at the frame cadence. The tick loop
// never blocks on the UI loop; they meet only through SynthState's
// lock and the sink.
type Machine struct {
	State    *SynthState
	Engine   *AudioEngine
	FSM      *ControlFSM
	Renderer *Renderer
	Sink     SampleSink
	CV       CVSource
	Serial   *SerialOutput
}

// NewMachine assembles an instrument around the given peripherals.
func NewMachine(disp DisplayBackend, sink SampleSink, cv CVSource, enc Encoder, serial *SerialOutput, seed int64) *Machine {
	state := NewSynthState()
	now := func() int64 { return time.Now().UnixMilli() }
	return &Machine{
		State:    state,
		Engine:   NewAudioEngine(state),
		FSM:      NewControlFSM(state, enc, serial, now),
		Renderer: NewRenderer(disp, seed),
		Sink:     sink,
		CV:       cv,
		Serial:   serial,
	}
}

// Run drives both loops until ctx is cancelled or a peripheral fails.
// The boot splash is shown before the first tick.
func (m *Machine) Run(ctx context.Context) error {
	if err := m.Sink.Start(); err != nil {
		return err
	}
	defer m.Sink.Close()

	if err := m.Renderer.Splash(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tick := time.NewTicker(time.Second / SAMPLE_RATE)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick.C:
				frame := m.Engine.Tick(m.CV.Read())
				if err := m.Sink.WriteFrame(frame); err != nil {
					return err
				}
			}
		}
	})

	g.Go(func() error {
		tick := time.NewTicker(UI_FRAME_MS * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick.C:
				m.FSM.Update()
				if err := m.Renderer.Render(m.State.Snapshot(), m.FSM.InPopup()); err != nil {
					return err
				}
			}
		}
	})

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}
