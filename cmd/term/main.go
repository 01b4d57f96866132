// Command term is a terminal reference client: it drives the recording
// engine from real keyboard edges via tcell, renders ghost and recording
// target positions as a character grid, and plays a short tone on ability
// cast. It exists to exercise dispatch.InputEdges and dispatch.EffectHandlers
// against a real input/render surface, not as the shipped game client.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"arenic/internal/engine"
	"arenic/internal/recording"
	"arenic/internal/telemetry"
)

const playerEntity = "player"

func main() {
	stdlog := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(stdlog); err != nil {
		stdlog.Fatalf("arenic term: %v", err)
	}
}

func run(stdlog *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	audioReady := initAudio(stdlog)
	defer func() {
		if audioReady {
			speaker.Close()
		}
	}()

	eng := engine.New(engine.Deps{Logger: telemetry.WrapLogger(stdlog)})
	eng.Enqueue(recording.Command{Type: recording.CmdStartRecording, Entity: playerEntity, Arena: 0})

	view := &view{screen: screen}
	edges := newKeyEdges()
	handlers := &renderHandlers{view: view, audioReady: audioReady}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quit := edges.record(ev, eng); quit {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			result, err := eng.Step(ctx, 50*time.Millisecond, edges, handlers)
			if err != nil {
				return err
			}
			edges.clear()
			view.draw(eng, result)
		}
	}
}

func initAudio(stdlog *log.Logger) bool {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		stdlog.Printf("audio unavailable: %v", err)
		return false
	}
	return true
}

func playAbilityTone() {
	sampleRate := beep.SampleRate(44100)
	duration := sampleRate.N(60 * time.Millisecond)
	tone, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(duration, tone))
}
