package main

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/evo-terrain/pcg"
	"github.com/lixenwraith/evo-terrain/preset"
	"github.com/lixenwraith/evo-terrain/quantize"
	"github.com/lixenwraith/evo-terrain/render"
)

const (
	viewHeight = "height"
	viewTiles  = "tiles"
)

type mapDocument struct {
	Name      string                    `json:"name"`
	Width     int                       `json:"width"`
	Height    int                       `json:"height"`
	Seed      int64                     `json:"seed"`
	Range     pcg.NormalizingValues     `json:"range"`
	Histogram map[quantize.TileType]int `json:"histogram"`
	Heights   [][]float64               `json:"heights,omitempty"`
	Tiles     [][]quantize.TileType     `json:"tiles,omitempty"`
}

func doGenerate(cmd *cobra.Command, args []string) error {
	setup, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	setup = resize(setup, width, height)

	view, _ := cmd.Flags().GetString("view")
	view = strings.ToLower(view)
	if view != viewHeight && view != viewTiles {
		return fmt.Errorf("unknown view %q, want %s or %s", view, viewHeight, viewTiles)
	}

	gen := setup.Generator()
	heights, err := gen.GenerateNoiseArrayContext(cmd.Context())
	if err != nil {
		return err
	}
	tiles := setup.Quantizer().Quantize(heights)

	out, _ := cmd.Flags().GetString("out")
	if out == "-" {
		cols, _ := cmd.Flags().GetInt("cols")
		noColor, _ := cmd.Flags().GetBool("no-color")
		w := cmd.OutOrStdout()
		buf := render.NewBuffer(textSize(w, cols, setup.Width, setup.Height))
		if view == viewTiles {
			render.TileCells(buf, tiles, render.DefaultPalette())
		} else {
			render.HeightCells(buf, heights)
		}
		return render.Text(w, buf, !noColor && isTerminal(w))
	}

	switch strings.ToLower(filepath.Ext(out)) {
	case ".png":
		var img image.Image
		if view == viewTiles {
			img = render.TileImage(tiles, render.DefaultPalette())
		} else {
			img = render.HeightImage(heights)
		}
		err = writeFile(out, func(w io.Writer) error { return render.WritePNG(w, img) })
	case ".json":
		doc := mapDocument{
			Name:      setup.Name,
			Width:     setup.Width,
			Height:    setup.Height,
			Seed:      setup.NoiseConfig.Seed,
			Range:     gen.Range(),
			Histogram: quantize.Histogram(tiles),
		}
		if view == viewTiles {
			doc.Tiles = tiles
		} else {
			doc.Heights = heights
		}
		err = writeFile(out, func(w io.Writer) error { return json.NewEncoder(w).Encode(doc) })
	default:
		return fmt.Errorf("unsupported output %q, want .png, .json or -", out)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%dx%d %s, %v)\n", out, setup.Width, setup.Height, view, gen.Elapsed())
	return nil
}

// resize applies --width/--height; a single given side keeps the aspect ratio
func resize(setup preset.Setup, width, height int) preset.Setup {
	if width <= 0 && height <= 0 {
		return setup
	}
	if width <= 0 {
		width = max(1, setup.Width*height/setup.Height)
	}
	if height <= 0 {
		height = max(1, setup.Height*width/setup.Width)
	}
	return setup.Scaled(width, height)
}

// textSize picks a cell grid; terminal cells are about twice as tall as wide
func textSize(w io.Writer, cols, mapWidth, mapHeight int) (int, int) {
	if cols <= 0 {
		cols = 80
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
				cols = tw
			}
		}
	}
	cols = min(cols, mapWidth)
	rows := max(1, cols*mapHeight/mapWidth/2)
	return cols, rows
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
