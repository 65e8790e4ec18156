package viz

import (
	"image"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Sample redraws the canvas from img. Each dot covers a block of source
// pixels and is lit when the brightest pixel in the block reaches
// threshold (0-255 luminance).
func (c *Canvas) Sample(img *image.RGBA, threshold uint8) {
	c.Clear()
	b := img.Bounds()
	sw, sh := c.Width*2, c.Height*4
	iw, ih := b.Dx(), b.Dy()
	if iw == 0 || ih == 0 {
		return
	}

	for sy := 0; sy < sh; sy++ {
		y0 := b.Min.Y + sy*ih/sh
		y1 := b.Min.Y + (sy+1)*ih/sh
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for sx := 0; sx < sw; sx++ {
			x0 := b.Min.X + sx*iw/sw
			x1 := b.Min.X + (sx+1)*iw/sw
			if x1 <= x0 {
				x1 = x0 + 1
			}
			if blockMax(img, x0, y0, x1, y1) >= threshold {
				c.Set(sx, sy)
			}
		}
	}
}

func blockMax(img *image.RGBA, x0, y0, x1, y1 int) uint8 {
	var best uint8
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := img.RGBAAt(x, y)
			if l := luminance(p.R, p.G, p.B); l > best {
				best = l
			}
		}
	}
	return best
}

func luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		b.WriteString(string(row))
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
