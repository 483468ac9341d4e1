// display_backend_terminal.go - ANSI terminal frontend for the panel framebuffer

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
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// TerminalDisplay renders the panel as half-block characters, two
// pixels per character cell, so the 128x64 panel fits a 128x32
// terminal. Raw-mode stdin feeds the simulated encoder: arrows turn,
// space is a short press, m a long press, q quits.
type TerminalDisplay struct {
	*BufferDisplay

	mu       sync.Mutex
	running  bool
	oldState *term.State
	enc      *SimEncoder
	done     chan struct{}
	stop     chan struct{}
}

func NewTerminalDisplay() (*TerminalDisplay, error) {
	return &TerminalDisplay{
		BufferDisplay: NewBufferDisplay(),
		done:          make(chan struct{}),
		stop:          make(chan struct{}),
	}, nil
}

// SetEncoder routes terminal keys to the simulated encoder.
func (td *TerminalDisplay) SetEncoder(enc *SimEncoder) {
	td.mu.Lock()
	td.enc = enc
	td.mu.Unlock()
}

// Done is closed when the user quits with q or Ctrl-C.
func (td *TerminalDisplay) Done() <-chan struct{} { return td.done }

func (td *TerminalDisplay) Start() error {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.running {
		return nil
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return &DisplayError{Operation: "terminal setup", Details: "raw mode", Err: err}
		}
		td.oldState = oldState
		go td.readKeys()
	}

	// Hide cursor, clear once.
	os.Stdout.WriteString("\x1b[?25l\x1b[2J")
	td.running = true
	return nil
}

func (td *TerminalDisplay) Stop() error {
	td.mu.Lock()
	defer td.mu.Unlock()
	if !td.running {
		return nil
	}
	td.running = false
	close(td.stop)

	os.Stdout.WriteString("\x1b[?25h\x1b[2J\x1b[H")
	if td.oldState != nil {
		err := term.Restore(int(os.Stdin.Fd()), td.oldState)
		td.oldState = nil
		return err
	}
	return nil
}

func (td *TerminalDisplay) Close() error { return td.Stop() }

// Present swaps buffers, then repaints the whole panel. 100ms frames
// at this size are cheap enough that damage tracking is not worth it.
func (td *TerminalDisplay) Present() error {
	if err := td.BufferDisplay.Present(); err != nil {
		return err
	}
	td.mu.Lock()
	running := td.running
	td.mu.Unlock()
	if !running {
		return nil
	}

	front := td.FrontBuffer()
	var sb strings.Builder
	sb.Grow(DISPLAY_WIDTH*DISPLAY_HEIGHT/2 + 64)
	sb.WriteString("\x1b[H")
	for y := 0; y < DISPLAY_HEIGHT; y += 2 {
		for x := 0; x < DISPLAY_WIDTH; x++ {
			top := front[y][x]
			bot := front[y+1][x]
			switch {
			case top && bot:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bot:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	_, err := os.Stdout.WriteString(sb.String())
	return err
}

// pulseButton holds the simulated button down long enough for the
// poll loop to see the edge, then releases it.
func (td *TerminalDisplay) pulseButton(enc *SimEncoder, hold time.Duration) {
	enc.SetButton(true)
	time.AfterFunc(hold, func() { enc.SetButton(false) })
}

func (td *TerminalDisplay) readKeys() {
	buf := make([]byte, 8)
	for {
		select {
		case <-td.stop:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}

		td.mu.Lock()
		enc := td.enc
		td.mu.Unlock()

		for i := 0; i < n; i++ {
			b := buf[i]
			switch {
			case b == 'q' || b == 3: // q or Ctrl-C
				select {
				case <-td.done:
				default:
					close(td.done)
				}
				return
			case enc == nil:
				continue
			case b == 0x1b && i+2 < n && buf[i+1] == '[':
				switch buf[i+2] {
				case 'A', 'C': // up, right
					enc.Turn(1)
				case 'B', 'D': // down, left
					enc.Turn(-1)
				}
				i += 2
			case b == ' ' || b == '\r' || b == '\n':
				td.pulseButton(enc, 2*UI_FRAME_MS*time.Millisecond)
			case b == 'm':
				td.pulseButton(enc, (LONG_PRESS_MS+2*UI_FRAME_MS)*time.Millisecond)
			case b == '+' || b == '=':
				enc.Turn(1)
			case b == '-':
				enc.Turn(-1)
			}
		}
	}
}
