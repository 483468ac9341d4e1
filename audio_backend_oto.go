//go:build !headless

// audio_backend_oto.go - OTO v3 monitor output for the stereo bus

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
	"sync"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// MONITOR_RATE is the soundcard rate the monitor context opens at. The
// engine ticks at SAMPLE_RATE; each frame is held for MONITOR_RATE /
// SAMPLE_RATE device samples (zero-order hold), which is faithful to
// what the hardware DAC outputs between updates.
const MONITOR_RATE = 44100

// OtoSink plays the stereo bus through the host soundcard so the
// engine is audible without instrument hardware. WriteFrame pushes
// held replicas into a ring; the oto callback drains it lock-free on
// the device thread, repeating the last sample on underrun.
type OtoSink struct {
	ctx    *oto.Context
	player *oto.Player
	rate   int // engine tick rate

	ringMu   sync.Mutex
	ring     []float32 // interleaved L,R
	readPos  int
	writePos int
	filled   int
	lastL    float32
	lastR    float32
	holdAcc  float64

	started bool
	mutex   sync.Mutex
}

// NewOtoSink opens a stereo float32 context at the monitor rate.
func NewOtoSink(engineRate int) (*OtoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   MONITOR_RATE,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	s := &OtoSink{
		ctx:  ctx,
		rate: engineRate,
		// Half a second of headroom between the tick producer and the
		// device consumer.
		ring: make([]float32, MONITOR_RATE),
	}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

// WriteFrame holds one engine frame for its share of device samples.
// The fractional remainder carries over so the long-run rate ratio is
// exact.
func (s *OtoSink) WriteFrame(f Frame) error {
	s.ringMu.Lock()
	defer s.ringMu.Unlock()

	s.holdAcc += float64(MONITOR_RATE) / float64(s.rate)
	replicas := int(math.Floor(s.holdAcc))
	s.holdAcc -= float64(replicas)

	l := clampf(f.Left, -1, 1)
	r := clampf(f.Right, -1, 1)
	s.lastL, s.lastR = l, r

	for n := 0; n < replicas; n++ {
		if s.filled+2 > len(s.ring) {
			// Producer ran ahead of the device; drop the overflow.
			break
		}
		s.ring[s.writePos] = l
		s.ring[s.writePos+1] = r
		s.writePos = (s.writePos + 2) % len(s.ring)
		s.filled += 2
	}
	return nil
}

// Read is the oto callback. p is interleaved float32 LE stereo.
func (s *OtoSink) Read(p []byte) (int, error) {
	numSamples := len(p) / 4
	samples := (*[1 << 28]float32)(unsafe.Pointer(&p[0]))[:numSamples:numSamples]

	s.ringMu.Lock()
	for i := 0; i+1 < numSamples; i += 2 {
		if s.filled >= 2 {
			samples[i] = s.ring[s.readPos]
			samples[i+1] = s.ring[s.readPos+1]
			s.readPos = (s.readPos + 2) % len(s.ring)
			s.filled -= 2
		} else {
			samples[i] = s.lastL
			samples[i+1] = s.lastR
		}
	}
	s.ringMu.Unlock()
	return len(p), nil
}

func (s *OtoSink) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.started && s.player != nil {
		s.player.Play()
		s.started = true
	}
	return nil
}

func (s *OtoSink) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.started && s.player != nil {
		s.player.Pause()
		s.started = false
	}
	return nil
}

func (s *OtoSink) Close() error {
	_ = s.Stop()
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.player != nil {
		err := s.player.Close()
		s.player = nil
		return err
	}
	return nil
}
