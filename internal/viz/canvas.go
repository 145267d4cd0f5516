// Package viz renders the particle sphere in the terminal: a braille
// canvas, a small rotatable camera, and a bubbletea live view.
package viz

import "strings"

// Braille patterns encode 2x4 sub-pixels per character cell, offset
// from U+2800.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a monochrome braille drawing surface. Coordinates are in
// sub-pixels: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] |= brailleBits[y%4][x%2]
}

// Line draws from (x0,y0) to (x1,y1) with Bresenham stepping.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}
