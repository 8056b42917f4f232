package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/lixenwraith/evo-terrain/quantize"
)

// HeightImage renders a [y][x] height grid one pixel per sample
func HeightImage(grid [][]float64) *image.Gray {
	h := len(grid)
	w := 0
	if h > 0 {
		w = len(grid[0])
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y, row := range grid {
		for x, v := range row {
			img.SetGray(x, y, color.Gray{Y: Gray(v).R})
		}
	}
	return img
}

// TileImage renders tiles one pixel per tile
func TileImage(tiles [][]quantize.TileType, palette Palette) *image.RGBA {
	h := len(tiles)
	w := 0
	if h > 0 {
		w = len(tiles[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y, row := range tiles {
		for x, t := range row {
			img.SetRGBA(x, y, palette.Color(t).RGBA())
		}
	}
	return img
}

// WritePNG encodes img with best-speed compression
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
