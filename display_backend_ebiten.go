//go:build !headless

// display_backend_ebiten.go - Ebiten window frontend for the panel framebuffer

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
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const EBITEN_SCALE = 6

// EbitenDisplay shows the panel framebuffer in a scaled desktop window
// and maps keyboard and mouse wheel onto the simulated encoder:
// arrows or wheel turn, space or enter is the button. Drawing goes
// through the embedded BufferDisplay; the ebiten loop only reads the
// presented front buffer.
type EbitenDisplay struct {
	*BufferDisplay

	mu      sync.RWMutex
	running bool
	window  *ebiten.Image
	pixels  []byte
	enc     *SimEncoder

	vsyncChan chan struct{}
	done      chan struct{}
}

func NewEbitenDisplay() (*EbitenDisplay, error) {
	return &EbitenDisplay{
		BufferDisplay: NewBufferDisplay(),
		pixels:        make([]byte, DISPLAY_WIDTH*DISPLAY_HEIGHT*4),
		vsyncChan:     make(chan struct{}, 1),
		done:          make(chan struct{}),
	}, nil
}

// SetEncoder routes window input to the simulated encoder. May be nil
// for display-only use.
func (ed *EbitenDisplay) SetEncoder(enc *SimEncoder) {
	ed.mu.Lock()
	ed.enc = enc
	ed.mu.Unlock()
}

func (ed *EbitenDisplay) Start() error {
	ed.mu.Lock()
	if ed.running {
		ed.mu.Unlock()
		return nil
	}
	ed.running = true
	ed.done = make(chan struct{})
	ed.mu.Unlock()

	ebiten.SetWindowSize(DISPLAY_WIDTH*EBITEN_SCALE, DISPLAY_HEIGHT*EBITEN_SCALE)
	ebiten.SetWindowTitle("Overtone Engine (c) 2024 - 2026 Overtone Synthesis Project")
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		defer func() {
			ed.mu.Lock()
			ed.running = false
			done := ed.done
			ed.mu.Unlock()
			select {
			case <-done:
			default:
				close(done)
			}
		}()
		if err := ebiten.RunGame(ed); err != nil {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	<-ed.vsyncChan
	return nil
}

func (ed *EbitenDisplay) Stop() error {
	ed.mu.Lock()
	ed.running = false
	ed.mu.Unlock()
	return nil
}

func (ed *EbitenDisplay) Close() error {
	return ed.Stop()
}

// Done is closed when the window exits.
func (ed *EbitenDisplay) Done() <-chan struct{} {
	ed.mu.RLock()
	defer ed.mu.RUnlock()
	return ed.done
}

func (ed *EbitenDisplay) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	ed.mu.RLock()
	running := ed.running
	enc := ed.enc
	ed.mu.RUnlock()
	if !running {
		return ebiten.Termination
	}
	if enc == nil {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		enc.Turn(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		enc.Turn(-1)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		if wy > 0 {
			enc.Turn(1)
		} else {
			enc.Turn(-1)
		}
	}

	down := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyEnter)
	enc.SetButton(down)
	return nil
}

func (ed *EbitenDisplay) Draw(screen *ebiten.Image) {
	if ed.window == nil {
		ed.window = ebiten.NewImage(DISPLAY_WIDTH, DISPLAY_HEIGHT)
	}

	front := ed.FrontBuffer()
	for y := 0; y < DISPLAY_HEIGHT; y++ {
		for x := 0; x < DISPLAY_WIDTH; x++ {
			off := (y*DISPLAY_WIDTH + x) * 4
			var v byte
			if front[y][x] {
				v = 0xFF
			}
			ed.pixels[off] = v
			ed.pixels[off+1] = v
			ed.pixels[off+2] = v
			ed.pixels[off+3] = 0xFF
		}
	}
	ed.window.WritePixels(ed.pixels)
	screen.DrawImage(ed.window, nil)

	select {
	case ed.vsyncChan <- struct{}{}:
	default:
	}
}

func (ed *EbitenDisplay) Layout(_, _ int) (int, int) {
	return DISPLAY_WIDTH, DISPLAY_HEIGHT
}
