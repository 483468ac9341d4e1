// audio_interface.go - Sample sink contract and backend selection

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

import "fmt"

// SampleSink accepts one frame per tick, converts it to DAC codes and
// forwards it to whatever is listening. WriteFrame is called from the
// timer context: implementations must not block and must not allocate
// on the hot path.
type SampleSink interface {
	WriteFrame(Frame) error
	Start() error
	Stop() error
	Close() error
}

// Predefined audio backend types
const (
	AUDIO_BACKEND_NULL = iota // Convert and discard
	AUDIO_BACKEND_OTO         // Monitor through the host sound device
)

// NewSampleSink creates a sample sink using the specified backend.
func NewSampleSink(backend int) (SampleSink, error) {
	switch backend {
	case AUDIO_BACKEND_NULL:
		return NewNullSink(), nil
	case AUDIO_BACKEND_OTO:
		return NewOtoSink(SAMPLE_RATE)
	}
	return nil, fmt.Errorf("unknown audio backend type: %d", backend)
}

// NullSink performs the DAC conversion step and drops the result.
type NullSink struct {
	frames uint64
}

func NewNullSink() *NullSink { return &NullSink{} }

func (n *NullSink) WriteFrame(f Frame) error {
	_ = ConvertFrame(f)
	n.frames++
	return nil
}

func (n *NullSink) Start() error { return nil }
func (n *NullSink) Stop() error  { return nil }
func (n *NullSink) Close() error { return nil }

// CaptureSink retains a bounded history of raw and converted frames.
// Used by the headless build and by tests to observe tick output.
type CaptureSink struct {
	Frames    []Frame
	DACFrames []DACFrame
	limit     int
}

// NewCaptureSink creates a capture sink holding at most limit frames;
// older frames are discarded first.
func NewCaptureSink(limit int) *CaptureSink {
	if limit <= 0 {
		limit = NUM_SAMPLES
	}
	return &CaptureSink{
		Frames:    make([]Frame, 0, limit),
		DACFrames: make([]DACFrame, 0, limit),
		limit:     limit,
	}
}

func (c *CaptureSink) WriteFrame(f Frame) error {
	if len(c.Frames) == c.limit {
		copy(c.Frames, c.Frames[1:])
		c.Frames = c.Frames[:c.limit-1]
		copy(c.DACFrames, c.DACFrames[1:])
		c.DACFrames = c.DACFrames[:c.limit-1]
	}
	c.Frames = append(c.Frames, f)
	c.DACFrames = append(c.DACFrames, ConvertFrame(f))
	return nil
}

func (c *CaptureSink) Start() error { return nil }
func (c *CaptureSink) Stop() error  { return nil }
func (c *CaptureSink) Close() error { return nil }
