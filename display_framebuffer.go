// display_framebuffer.go - In-memory monochrome framebuffer backend

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
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BufferDisplay implements DisplayBackend on a plain bit buffer. It is
// the headless backend for tests and the backing store the windowed
// and terminal frontends draw from. Pending pixels become visible in
// the front buffer only on Present, mirroring the SSD1305-style
// display RAM handoff.
type BufferDisplay struct {
	mu      sync.RWMutex
	pending [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool
	front   [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool
	frames  uint64
}

func NewBufferDisplay() *BufferDisplay { return &BufferDisplay{} }

func (b *BufferDisplay) Clear() {
	b.mu.Lock()
	b.pending = [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool{}
	b.mu.Unlock()
}

func (b *BufferDisplay) Pixel(x, y int, on bool) {
	b.mu.Lock()
	b.setPixel(x, y, on)
	b.mu.Unlock()
}

// setPixel clips silently; callers hold the lock.
func (b *BufferDisplay) setPixel(x, y int, on bool) {
	if x < 0 || x >= DISPLAY_WIDTH || y < 0 || y >= DISPLAY_HEIGHT {
		return
	}
	b.pending[y][x] = on
}

func (b *BufferDisplay) Rect(x, y, w, h int, on bool) {
	b.mu.Lock()
	for i := 0; i < w; i++ {
		b.setPixel(x+i, y, on)
		b.setPixel(x+i, y+h-1, on)
	}
	for j := 0; j < h; j++ {
		b.setPixel(x, y+j, on)
		b.setPixel(x+w-1, y+j, on)
	}
	b.mu.Unlock()
}

func (b *BufferDisplay) FillRect(x, y, w, h int, on bool) {
	b.mu.Lock()
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			b.setPixel(x+i, y+j, on)
		}
	}
	b.mu.Unlock()
}

// Circle draws an outline with the midpoint algorithm.
func (b *BufferDisplay) Circle(cx, cy, r int, on bool) {
	if r < 0 {
		return
	}
	b.mu.Lock()
	x, y := r, 0
	err := 1 - r
	for x >= y {
		b.setPixel(cx+x, cy+y, on)
		b.setPixel(cx+y, cy+x, on)
		b.setPixel(cx-y, cy+x, on)
		b.setPixel(cx-x, cy+y, on)
		b.setPixel(cx-x, cy-y, on)
		b.setPixel(cx-y, cy-x, on)
		b.setPixel(cx+y, cy-x, on)
		b.setPixel(cx+x, cy-y, on)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
	b.mu.Unlock()
}

// Text renders s at (x,y) with the 7x13 bitmap face, scaled by size.
// (x,y) is the top-left corner of the text cell, matching the
// setCursor convention of the original panel driver.
func (b *BufferDisplay) Text(x, y int, s string, size int) {
	if size < 1 {
		size = 1
	}
	face := basicfont.Face7x13
	bounds, _ := font.BoundString(face, s)
	w := (bounds.Max.X - bounds.Min.X).Ceil() + 1
	h := face.Height
	if w <= 0 || len(s) == 0 {
		return
	}
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	b.mu.Lock()
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if img.AlphaAt(i, j).A < 0x80 {
				continue
			}
			for sy := 0; sy < size; sy++ {
				for sx := 0; sx < size; sx++ {
					b.setPixel(x+i*size+sx, y+j*size+sy, true)
				}
			}
		}
	}
	b.mu.Unlock()
}

func (b *BufferDisplay) Present() error {
	b.mu.Lock()
	b.front = b.pending
	b.frames++
	b.mu.Unlock()
	return nil
}

func (b *BufferDisplay) Start() error { return nil }
func (b *BufferDisplay) Stop() error  { return nil }
func (b *BufferDisplay) Close() error { return nil }

// PixelAt reads the presented front buffer.
func (b *BufferDisplay) PixelAt(x, y int) bool {
	if x < 0 || x >= DISPLAY_WIDTH || y < 0 || y >= DISPLAY_HEIGHT {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.front[y][x]
}

// FrameCount returns how many frames have been presented.
func (b *BufferDisplay) FrameCount() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frames
}

// LitPixels counts set pixels in the presented front buffer.
func (b *BufferDisplay) LitPixels() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for y := 0; y < DISPLAY_HEIGHT; y++ {
		for x := 0; x < DISPLAY_WIDTH; x++ {
			if b.front[y][x] {
				n++
			}
		}
	}
	return n
}

// FrontBuffer copies the presented front buffer.
func (b *BufferDisplay) FrontBuffer() [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.front
}
