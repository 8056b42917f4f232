package render

import (
	"github.com/lixenwraith/evo-terrain/quantize"
)

// sampleIndex maps a destination index onto a source axis of length n
func sampleIndex(i, dst, n int) int {
	if dst <= 0 || n <= 0 {
		return 0
	}
	j := i * n / dst
	if j >= n {
		j = n - 1
	}
	return j
}

// HeightCells fills buf with a nearest-neighbour downsample of grid
// grid is indexed [y][x] and may be ragged; each row is sampled by its own length
// Shading uses both the ramp rune and the gray foreground
func HeightCells(buf *Buffer, grid [][]float64) {
	gh := len(grid)
	if gh == 0 {
		buf.Clear(RGBBlack)
		return
	}
	for y := 0; y < buf.height; y++ {
		row := grid[sampleIndex(y, buf.height, gh)]
		for x := 0; x < buf.width; x++ {
			if len(row) == 0 {
				buf.lines[y][x] = blankCell
				continue
			}
			h := row[sampleIndex(x, buf.width, len(row))]
			g := Gray(h)
			buf.lines[y][x] = Cell{Rune: Shade(h), Fg: g, Bg: g.Scale(0.35)}
		}
	}
}

// TileCells fills buf with a nearest-neighbour downsample of tiles colored by palette
func TileCells(buf *Buffer, tiles [][]quantize.TileType, palette Palette) {
	th := len(tiles)
	if th == 0 {
		buf.Clear(RGBBlack)
		return
	}
	for y := 0; y < buf.height; y++ {
		row := tiles[sampleIndex(y, buf.height, th)]
		for x := 0; x < buf.width; x++ {
			if len(row) == 0 {
				buf.lines[y][x] = blankCell
				continue
			}
			t := row[sampleIndex(x, buf.width, len(row))]
			bg := palette.Color(t)
			buf.lines[y][x] = Cell{Rune: Glyph(t), Fg: bg.Blend(RGBWhite, 0.4), Bg: bg}
		}
	}
}
