package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/evo-terrain/pcg"
	"github.com/lixenwraith/evo-terrain/preset"
	"github.com/lixenwraith/evo-terrain/quantize"
	"github.com/lixenwraith/evo-terrain/render"
)

// seedable is implemented by the coherent noise generators
type seedable interface {
	SetSeed(pcg.Vec2)
	Seed() pcg.Vec2
}

// Viewer draws a generated map and regenerates it on demand
type Viewer struct {
	screen        tcell.Screen
	width, height int

	setup   preset.Setup
	gen     *pcg.Generator
	quant   *quantize.Quantizer
	palette render.Palette
	buf     *render.Buffer
	rng     *rand.Rand

	heights   [][]float64
	tiles     [][]quantize.TileType
	showTiles bool
}

func NewViewer(screen tcell.Screen, setup preset.Setup) *Viewer {
	v := &Viewer{
		screen:    screen,
		setup:     setup,
		gen:       setup.Generator(),
		quant:     setup.Quantizer(),
		palette:   render.DefaultPalette(),
		buf:       render.NewBuffer(0, 0),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		showTiles: true,
	}
	v.width, v.height = screen.Size()
	v.regenerate()
	return v
}

func (v *Viewer) regenerate() {
	v.heights = v.gen.GenerateNoiseArray()
	v.tiles = v.quant.Quantize(v.heights)
	log.Printf("islandgen: preview generated in %v", v.gen.Elapsed())
}

// Reseed moves the noise to a fresh offset and drops the cached map
func (v *Viewer) Reseed() {
	if s, ok := v.gen.NoiseGenerator().(seedable); ok {
		s.SetSeed(pcg.Vec2{X: v.rng.Float64() * 9999, Y: v.rng.Float64() * 9999})
	}
	v.gen.VoidCache()
	v.regenerate()
}

func (v *Viewer) draw() {
	v.screen.Clear()

	// Bottom row is the status line
	v.buf.Resize(v.width, max(0, v.height-1))
	if v.showTiles {
		render.TileCells(v.buf, v.tiles, v.palette)
	} else {
		render.HeightCells(v.buf, v.heights)
	}
	render.Draw(v.screen, v.buf)

	rng := v.gen.Range()
	line := fmt.Sprintf(" %s %dx%d range %.3f..%.3f %v  [r]eseed [t]oggle [q]uit",
		v.setup.Name, v.setup.Width, v.setup.Height, rng.Min, rng.Max, v.gen.Elapsed().Round(time.Millisecond))
	if s, ok := v.gen.NoiseGenerator().(seedable); ok {
		seed := s.Seed()
		line += fmt.Sprintf("  seed %.0f,%.0f", seed.X, seed.Y)
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	for x, r := range []rune(line) {
		if x >= v.width {
			break
		}
		v.screen.SetContent(x, v.height-1, r, nil, style)
	}

	v.screen.Show()
}

// handleInput applies one event and reports whether the viewer keeps running
func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.Reseed()
			case 't':
				v.showTiles = !v.showTiles
			}
		}

	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}

	v.draw()
	return true
}

func (v *Viewer) run() {
	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if !v.handleInput(ev) {
			return
		}
	}
}

func doPreview(cmd *cobra.Command, args []string) error {
	setup, err := loadSetup(cmd)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	// Restore the terminal even if generation or drawing panics
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPREVIEW CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
		screen.Fini()
	}()

	NewViewer(screen, setup).run()
	return nil
}
