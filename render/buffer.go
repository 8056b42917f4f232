package render

// Cell is a single terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

var blankCell = Cell{Rune: ' ', Fg: RGBWhite, Bg: RGBBlack}

// Buffer is a 2D grid of cells, independent of any screen
type Buffer struct {
	width  int
	height int
	lines  [][]Cell
}

// NewBuffer creates a blank buffer with the given dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height
func (b *Buffer) Height() int {
	return b.height
}

// Resize resizes the buffer, preserving existing content where possible
func (b *Buffer) Resize(newWidth, newHeight int) {
	newWidth = max(newWidth, 0)
	newHeight = max(newHeight, 0)

	newLines := make([][]Cell, newHeight)
	for y := 0; y < newHeight; y++ {
		newLines[y] = make([]Cell, newWidth)
		for x := 0; x < newWidth; x++ {
			if y < b.height && x < b.width {
				newLines[y][x] = b.lines[y][x]
			} else {
				newLines[y][x] = blankCell
			}
		}
	}

	b.width = newWidth
	b.height = newHeight
	b.lines = newLines
}

// GetCell returns the cell at the given position
func (b *Buffer) GetCell(x, y int) (Cell, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}, false
	}
	return b.lines[y][x], true
}

// SetCell sets the cell at the given position, false when out of bounds
func (b *Buffer) SetCell(x, y int, cell Cell) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	b.lines[y][x] = cell
	return true
}

// Clear fills the buffer with blanks on bg
func (b *Buffer) Clear(bg RGB) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.lines[y][x] = Cell{Rune: ' ', Fg: RGBWhite, Bg: bg}
		}
	}
}
