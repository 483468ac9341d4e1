// main.go - Main entry point for the Overtone Engine instrument

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
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;20;147;255m ██████  ██    ██ ███████ ██████  ████████  ██████  ███    ██ ███████\033[0m\n\033[38;2;50;147;255m██    ██ ██    ██ ██      ██   ██    ██    ██    ██ ████   ██ ██\033[0m\n\033[38;2;80;147;255m██    ██ ██    ██ █████   ██████     ██    ██    ██ ██ ██  ██ █████\033[0m\n\033[38;2;110;147;255m██    ██  ██  ██  ██      ██   ██    ██    ██    ██ ██  ██ ██ ██\033[0m\n\033[38;2;140;147;255m ██████    ████   ███████ ██   ██    ██     ██████  ██   ████ ███████\033[0m")
	fmt.Println("\nA seven-partial additive synthesis engine with CV modulation and an encoder-driven panel.")
	fmt.Println("(c) 2024 - 2026 Overtone Synthesis Project")
	fmt.Println("https://github.com/overtonesynth/OvertoneEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	var (
		displayName string
		audioName   string
		seed        int64
		quiet       bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&displayName, "display", "ebiten", "Display backend: ebiten|terminal|none")
	flagSet.StringVar(&audioName, "audio", "oto", "Audio backend: oto|none")
	flagSet.Int64Var(&seed, "seed", 0, "Visualisation RNG seed (0 = time-based)")
	flagSet.BoolVar(&quiet, "quiet", false, "Disable serial-style edit logging")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./overtone_engine [-display ebiten|terminal|none] [-audio oto|none] [-seed N] [-quiet]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if displayName != "terminal" {
		boilerPlate()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	enc := NewSimEncoder()
	serial := NewSerialOutput(!quiet && displayName != "terminal")

	var (
		disp DisplayBackend
		done <-chan struct{}
		err  error
	)
	switch displayName {
	case "ebiten":
		ed, e := NewEbitenDisplay()
		if e != nil {
			fmt.Printf("Failed to initialize display: %v\n", e)
			os.Exit(1)
		}
		ed.SetEncoder(enc)
		disp, done = ed, ed.Done()
	case "terminal":
		td, e := NewTerminalDisplay()
		if e != nil {
			fmt.Printf("Failed to initialize display: %v\n", e)
			os.Exit(1)
		}
		td.SetEncoder(enc)
		disp, done = td, td.Done()
	case "none":
		disp, err = NewDisplayBackend(DISPLAY_BACKEND_BUFFER)
		if err != nil {
			fmt.Printf("Failed to initialize display: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown display backend: %s\n", displayName)
		os.Exit(1)
	}
	if err := disp.Start(); err != nil {
		fmt.Printf("Failed to start display: %v\n", err)
		os.Exit(1)
	}
	defer disp.Close()

	var sink SampleSink
	switch audioName {
	case "oto":
		sink, err = NewSampleSink(AUDIO_BACKEND_OTO)
	case "none":
		sink, err = NewSampleSink(AUDIO_BACKEND_NULL)
	default:
		fmt.Printf("Unknown audio backend: %s\n", audioName)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}

	machine := NewMachine(disp, sink, NewFixedCVSource(), enc, serial, seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
		case <-doneOrNever(done):
		}
		cancel()
	}()

	if err := machine.Run(ctx); err != nil {
		fmt.Printf("Engine stopped: %v\n", err)
		os.Exit(1)
	}
}

// doneOrNever lets the signal goroutine select on a display quit
// channel that may not exist.
func doneOrNever(done <-chan struct{}) <-chan struct{} {
	if done != nil {
		return done
	}
	return make(chan struct{})
}
