package render

import (
	"bufio"
	"io"
)

var (
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B;m
	csiBgRGB = []byte("\x1b[48;2;") // followed by R;G;B;m
	csiSGR0  = []byte("\x1b[0m")
)

// Text writes the buffer row by row; with color, 24-bit SGR sequences are
// emitted only when fg or bg changes and every row ends with a reset
func Text(w io.Writer, buf *Buffer, color bool) error {
	bw := bufio.NewWriter(w)

	for y := 0; y < buf.height; y++ {
		var lastFg, lastBg RGB
		lastValid := false

		for x := 0; x < buf.width; x++ {
			c := buf.lines[y][x]
			if color {
				if !lastValid || c.Fg != lastFg {
					writeRGB(bw, csiFgRGB, c.Fg)
				}
				if !lastValid || c.Bg != lastBg {
					writeRGB(bw, csiBgRGB, c.Bg)
				}
				lastFg, lastBg, lastValid = c.Fg, c.Bg, true
			}

			r := c.Rune
			if r == 0 {
				r = ' '
			}
			if r < 0x80 {
				bw.WriteByte(byte(r))
			} else {
				bw.WriteRune(r)
			}
		}

		if color {
			bw.Write(csiSGR0)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func writeRGB(w *bufio.Writer, prefix []byte, c RGB) {
	w.Write(prefix)
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
	w.WriteByte('m')
}

// writeInt writes a channel value without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	w.WriteByte(byte(n/100) + '0')
	w.WriteByte(byte(n/10%10) + '0')
	w.WriteByte(byte(n%10) + '0')
}
