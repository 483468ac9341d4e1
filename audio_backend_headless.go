//go:build headless

package main

// OtoSink under the headless tag discards frames so builds without a
// soundcard still link.
type OtoSink struct {
	started bool
}

func NewOtoSink(engineRate int) (*OtoSink, error) {
	return &OtoSink{}, nil
}

func (s *OtoSink) WriteFrame(f Frame) error {
	return nil
}

func (s *OtoSink) Start() error {
	s.started = true
	return nil
}

func (s *OtoSink) Stop() error {
	s.started = false
	return nil
}

func (s *OtoSink) Close() error {
	s.started = false
	return nil
}
