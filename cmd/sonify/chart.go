package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cwbudde/algo-sonify/sonify"
	"github.com/cwbudde/algo-sonify/theme"
	"github.com/cwbudde/algo-sonify/waveform"
)

const (
	glyphTrace  = '•'
	glyphAxis   = '─'
	glyphLegend = '■'
)

type cell struct {
	r     rune
	color theme.RGB
}

// chart is a sonify.RenderSink that rasterizes a frame into a grid of
// terminal cells and writes it with 24-bit ANSI colours.
type chart struct {
	cols, rows int
	theme      theme.Theme

	frameW, frameH float64
	cells          []cell
}

func newChart(cols, rows int) *chart {
	c := &chart{}
	c.resize(cols, rows)
	return c
}

func (c *chart) resize(cols, rows int) {
	c.cols = max(cols, 8)
	c.rows = max(rows, 4)
	c.cells = make([]cell, c.cols*c.rows)
}

// begin clears the grid and draws the zero line for f.
func (c *chart) begin(f sonify.Frame, th theme.Theme) {
	c.theme = th
	c.frameW = float64(max(f.Width, 1))
	c.frameH = float64(max(f.Height, 1))
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	mid := c.row(0)
	for x := range c.cols {
		c.set(x, mid, glyphAxis, th.Grid)
	}
}

func (c *chart) col(x float64) int {
	return int(math.Round(x / c.frameW * float64(c.cols-1)))
}

func (c *chart) row(y float64) int {
	return int(math.Round((c.frameH/2 - y) / c.frameH * float64(c.rows-1)))
}

func (c *chart) set(x, y int, r rune, color theme.RGB) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = cell{r: r, color: color}
}

func (c *chart) text(x, y int, s string, color theme.RGB) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, color)
	}
}

func (c *chart) DrawPolyline(key waveform.Type, pts []sonify.Point) {
	color := c.theme.SignalColor(key).Blend(c.theme.BG)
	if len(pts) == 1 {
		c.set(c.col(pts[0].X), c.row(pts[0].Y), glyphTrace, color)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.line(c.col(pts[i-1].X), c.row(pts[i-1].Y), c.col(pts[i].X), c.row(pts[i].Y), color)
	}
}

// line is Bresenham between two cells.
func (c *chart) line(x0, y0, x1, y1 int, color theme.RGB) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, glyphTrace, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *chart) DrawLegendEntry(label string, key waveform.Type, slot int) {
	c.set(1, slot, glyphLegend, c.theme.SignalColor(key).Blend(c.theme.BG))
	c.text(3, slot, label, c.theme.Text)
}

func (c *chart) DrawTimeBadge(t float64) {
	s := fmt.Sprintf("t=%.2f", t)
	c.text(c.cols-len(s)-1, 0, s, c.theme.Text)
}

// flush writes the grid followed by the status lines.
func (c *chart) flush(w io.Writer, status ...string) error {
	var sb strings.Builder
	sb.WriteString("\x1b[H")
	bg := c.theme.BG
	fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm", bg.R, bg.G, bg.B)
	var last theme.RGB
	for y := range c.rows {
		first := true
		for x := range c.cols {
			cl := c.cells[y*c.cols+x]
			if first || cl.color != last {
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm", cl.color.R, cl.color.G, cl.color.B)
				last, first = cl.color, false
			}
			sb.WriteRune(cl.r)
		}
		sb.WriteString("\r\n")
	}
	tx := c.theme.Text
	fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm", tx.R, tx.G, tx.B)
	for _, s := range status {
		sb.WriteString(s)
		sb.WriteString("\x1b[K\r\n")
	}
	sb.WriteString("\x1b[0m")
	_, err := io.WriteString(w, sb.String())
	return err
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
