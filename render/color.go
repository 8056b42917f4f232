package render

import (
	"image/color"

	"github.com/lixenwraith/evo-terrain/quantize"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Blend performs alpha blending: result = src*alpha + c*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
	}
}

// Scale multiplies each channel by factor, clamped to [0,1]
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// RGBA converts to the image/color model, fully opaque
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Lerp interpolates from a to b by t
func Lerp(a, b RGB, t float64) RGB {
	return a.Blend(b, t)
}

// Gray maps a normalized height to a gray level; out of range heights clamp
func Gray(h float64) RGB {
	if h != h || h <= 0 {
		return RGBBlack
	}
	if h >= 1 {
		return RGBWhite
	}
	v := uint8(h*255 + 0.5)
	return RGB{v, v, v}
}

// Palette assigns a color to each tile category
type Palette map[quantize.TileType]RGB

// DefaultPalette is the island color scheme
func DefaultPalette() Palette {
	return Palette{
		quantize.None:      RGBBlack,
		quantize.Water:     {20, 50, 120},
		quantize.Shallow:   {40, 110, 170},
		quantize.Beach:     {220, 205, 140},
		quantize.Plain:     {150, 190, 90},
		quantize.Grassland: {80, 160, 60},
		quantize.Forest:    {30, 100, 40},
		quantize.Mountain:  {120, 110, 100},
		quantize.Snow:      {240, 245, 250},
	}
}

// Color returns the tile color, black for unmapped tiles
func (p Palette) Color(t quantize.TileType) RGB {
	if c, ok := p[t]; ok {
		return c
	}
	return RGBBlack
}

// glyphs used for tile cells; plain text output relies on them alone
var glyphs = map[quantize.TileType]rune{
	quantize.None:      ' ',
	quantize.Water:     '~',
	quantize.Shallow:   '-',
	quantize.Beach:     '.',
	quantize.Plain:     ',',
	quantize.Grassland: '"',
	quantize.Forest:    '&',
	quantize.Mountain:  '^',
	quantize.Snow:      '*',
}

// Glyph returns the rune drawn for a tile
func Glyph(t quantize.TileType) rune {
	if r, ok := glyphs[t]; ok {
		return r
	}
	return '?'
}

// shade ramp for height cells, dark to bright
var shades = []rune(" .:-=+*#%@")

// Shade returns the ramp rune for a normalized height
func Shade(h float64) rune {
	if h != h || h <= 0 {
		return shades[0]
	}
	i := int(h * float64(len(shades)))
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}
