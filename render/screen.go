package render

import (
	"github.com/gdamore/tcell/v2"
)

// ToTcell converts RGB to a tcell true color
func (c RGB) ToTcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style returns the tcell style for a cell
func Style(c Cell) tcell.Style {
	return tcell.StyleDefault.Foreground(c.Fg.ToTcell()).Background(c.Bg.ToTcell())
}

// Draw copies buf onto screen at the origin, clipped to the screen size
// Caller is responsible for Show
func Draw(screen tcell.Screen, buf *Buffer) {
	sw, sh := screen.Size()
	for y := 0; y < min(sh, buf.height); y++ {
		for x := 0; x < min(sw, buf.width); x++ {
			c := buf.lines[y][x]
			screen.SetContent(x, y, c.Rune, nil, Style(c))
		}
	}
}
