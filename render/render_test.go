package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evo-terrain/quantize"
)

func TestNewBuffer(t *testing.T) {
	width, height := 80, 24
	buf := NewBuffer(width, height)

	if buf.Width() != width {
		t.Errorf("Expected width %d, got %d", width, buf.Width())
	}
	if buf.Height() != height {
		t.Errorf("Expected height %d, got %d", height, buf.Height())
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell, ok := buf.GetCell(x, y)
			if !ok {
				t.Fatalf("Expected cell at (%d, %d) to exist", x, y)
			}
			if cell != blankCell {
				t.Errorf("Expected blank cell at (%d, %d), got %+v", x, y, cell)
			}
		}
	}
}

func TestGetSetCell(t *testing.T) {
	buf := NewBuffer(10, 10)
	cell := Cell{Rune: 'A', Fg: RGB{255, 0, 0}, Bg: RGBBlack}

	if !buf.SetCell(5, 5, cell) {
		t.Error("Expected SetCell to succeed")
	}
	if got, ok := buf.GetCell(5, 5); !ok || got != cell {
		t.Errorf("Expected %+v, got %+v (ok=%v)", cell, got, ok)
	}

	if buf.SetCell(-1, 5, cell) {
		t.Error("Expected SetCell to fail for negative x")
	}
	if buf.SetCell(5, 100, cell) {
		t.Error("Expected SetCell to fail for y out of bounds")
	}
	if _, ok := buf.GetCell(10, 0); ok {
		t.Error("Expected GetCell to fail for x out of bounds")
	}
}

func TestResizePreservesContent(t *testing.T) {
	buf := NewBuffer(4, 4)
	buf.SetCell(1, 1, Cell{Rune: 'K'})
	buf.SetCell(3, 3, Cell{Rune: 'L'})

	buf.Resize(2, 6)
	if buf.Width() != 2 || buf.Height() != 6 {
		t.Fatalf("Expected 2x6, got %dx%d", buf.Width(), buf.Height())
	}
	if c, _ := buf.GetCell(1, 1); c.Rune != 'K' {
		t.Errorf("Expected preserved 'K', got %q", c.Rune)
	}
	if c, _ := buf.GetCell(1, 5); c != blankCell {
		t.Errorf("Expected new row to be blank, got %+v", c)
	}

	buf.Clear(RGB{1, 2, 3})
	if c, _ := buf.GetCell(1, 1); c.Rune != ' ' || c.Bg != (RGB{1, 2, 3}) {
		t.Errorf("Expected cleared cell, got %+v", c)
	}
}

func TestColorMath(t *testing.T) {
	if got := RGBBlack.Blend(RGBWhite, 0.5); got != (RGB{128, 128, 128}) {
		t.Errorf("Blend half: got %+v", got)
	}
	if got := RGBBlack.Blend(RGBWhite, 2); got != RGBWhite {
		t.Errorf("Blend saturates at src, got %+v", got)
	}
	if got := Lerp(RGBWhite, RGBBlack, 0); got != RGBWhite {
		t.Errorf("Lerp at 0 returns a, got %+v", got)
	}
	if got := (RGB{200, 100, 50}).Scale(0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("Scale half: got %+v", got)
	}

	grays := map[float64]uint8{-1: 0, 0: 0, 0.5: 128, 1: 255, 3: 255}
	for h, want := range grays {
		if got := Gray(h); got != (RGB{want, want, want}) {
			t.Errorf("Gray(%g): expected %d, got %+v", h, want, got)
		}
	}

	if Shade(0) != ' ' || Shade(1) != '@' || Shade(0.55) != '+' {
		t.Errorf("Unexpected shade ramp: %q %q %q", Shade(0), Shade(1), Shade(0.55))
	}
}

func TestPaletteCoversTiles(t *testing.T) {
	p := DefaultPalette()
	for _, tt := range quantize.TileTypes() {
		if _, ok := p[tt]; !ok {
			t.Errorf("Palette missing %s", tt)
		}
		if Glyph(tt) == '?' {
			t.Errorf("Glyph missing for %s", tt)
		}
	}
	if p.Color(quantize.TileType(99)) != RGBBlack {
		t.Error("Expected unknown tile to render black")
	}
}

func TestHeightCellsDownsample(t *testing.T) {
	grid := [][]float64{
		{0.0, 0.1, 0.2, 0.3},
		{0.1, 0.2, 0.3, 0.4},
		{0.2, 0.3, 1.0, 0.5},
		{0.3, 0.4, 0.5, 0.6},
	}
	buf := NewBuffer(2, 2)
	HeightCells(buf, grid)

	c, _ := buf.GetCell(1, 1)
	if c.Fg != RGBWhite || c.Rune != '@' {
		t.Errorf("Expected cell (1,1) to sample grid[2][2]=1.0, got %+v", c)
	}
	c, _ = buf.GetCell(0, 0)
	if c.Fg != RGBBlack || c.Rune != ' ' {
		t.Errorf("Expected cell (0,0) to sample 0.0, got %+v", c)
	}

	HeightCells(buf, nil)
	if c, _ := buf.GetCell(0, 0); c.Rune != ' ' {
		t.Errorf("Expected empty grid to clear, got %+v", c)
	}
}

func TestTileCells(t *testing.T) {
	tiles := [][]quantize.TileType{
		{quantize.Water, quantize.Beach},
		{quantize.Forest, quantize.Snow},
	}
	p := DefaultPalette()
	buf := NewBuffer(4, 4)
	TileCells(buf, tiles, p)

	c, _ := buf.GetCell(3, 0)
	if c.Rune != '.' || c.Bg != p[quantize.Beach] {
		t.Errorf("Expected beach at (3,0), got %+v", c)
	}
	c, _ = buf.GetCell(0, 3)
	if c.Rune != '&' || c.Bg != p[quantize.Forest] {
		t.Errorf("Expected forest at (0,3), got %+v", c)
	}
}

func TestCellsRaggedGrid(t *testing.T) {
	grid := [][]float64{
		{0.0, 0.0, 0.0, 1.0},
		{1.0},
		{},
	}
	buf := NewBuffer(4, 3)
	HeightCells(buf, grid)

	if c, _ := buf.GetCell(3, 0); c.Rune != '@' {
		t.Errorf("Expected full row to sample its last column, got %+v", c)
	}
	if c, _ := buf.GetCell(3, 1); c.Rune != '@' {
		t.Errorf("Expected short row to stretch its single sample, got %+v", c)
	}
	if c, _ := buf.GetCell(2, 2); c != blankCell {
		t.Errorf("Expected empty row to stay blank, got %+v", c)
	}

	tiles := [][]quantize.TileType{
		{quantize.Water, quantize.Water, quantize.Water, quantize.Snow},
		{quantize.Forest},
	}
	tbuf := NewBuffer(4, 2)
	TileCells(tbuf, tiles, DefaultPalette())
	if c, _ := tbuf.GetCell(3, 1); c.Rune != '&' {
		t.Errorf("Expected short tile row to stretch, got %+v", c)
	}
	if c, _ := tbuf.GetCell(3, 0); c.Rune != '*' {
		t.Errorf("Expected snow at (3,0), got %+v", c)
	}
}

func TestTextPlainAndColor(t *testing.T) {
	buf := NewBuffer(2, 1)
	buf.SetCell(0, 0, Cell{Rune: 'x', Fg: RGB{1, 2, 3}, Bg: RGB{4, 5, 6}})
	buf.SetCell(1, 0, Cell{Rune: 'y', Fg: RGB{1, 2, 3}, Bg: RGB{4, 5, 6}})

	var plain bytes.Buffer
	if err := Text(&plain, buf, false); err != nil {
		t.Fatal(err)
	}
	if plain.String() != "xy\n" {
		t.Errorf("Unexpected plain output %q", plain.String())
	}

	var ansi bytes.Buffer
	if err := Text(&ansi, buf, true); err != nil {
		t.Fatal(err)
	}
	want := "\x1b[38;2;1;2;3m\x1b[48;2;4;5;6mxy\x1b[0m\n"
	if ansi.String() != want {
		t.Errorf("Unexpected ansi output %q, want %q", ansi.String(), want)
	}
}

func TestImages(t *testing.T) {
	grid := [][]float64{{0, 0.5, 1}, {1, 1, 0}}
	img := HeightImage(grid)
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", b)
	}
	if img.GrayAt(1, 0).Y != 128 || img.GrayAt(2, 1).Y != 0 {
		t.Errorf("Unexpected gray levels %d %d", img.GrayAt(1, 0).Y, img.GrayAt(2, 1).Y)
	}

	p := DefaultPalette()
	timg := TileImage([][]quantize.TileType{{quantize.Snow}}, p)
	if timg.RGBAAt(0, 0) != p[quantize.Snow].RGBA() {
		t.Errorf("Unexpected tile pixel %+v", timg.RGBAAt(0, 0))
	}

	var out bytes.Buffer
	if err := WritePNG(&out, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&out)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
}

func TestDrawClipsToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	buf := NewBuffer(6, 3)
	buf.SetCell(1, 1, Cell{Rune: '^', Fg: RGB{10, 20, 30}, Bg: RGBBlack})
	buf.SetCell(5, 2, Cell{Rune: '!'})

	Draw(screen, buf)
	screen.Show()

	mainc, _, style, _ := screen.GetContent(1, 1)
	if mainc != '^' {
		t.Errorf("Expected '^', got %q", mainc)
	}
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("Expected fg rgb(10,20,30), got %v", fg)
	}
}
