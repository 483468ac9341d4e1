//go:build headless

package main

// EbitenDisplay under the headless tag draws into the in-memory
// framebuffer only. The done channel never closes; shutdown comes
// from signals instead of a window.
type EbitenDisplay struct {
	*BufferDisplay
	done chan struct{}
}

func NewEbitenDisplay() (*EbitenDisplay, error) {
	return &EbitenDisplay{
		BufferDisplay: NewBufferDisplay(),
		done:          make(chan struct{}),
	}, nil
}

func (ed *EbitenDisplay) SetEncoder(enc *SimEncoder) {}

func (ed *EbitenDisplay) Done() <-chan struct{} { return ed.done }
