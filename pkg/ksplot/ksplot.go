// 17 Oct 2026

// Package ksplot draws paralog Ks against ortholog Ks as a PNG. Points
// below the diagonal are quartets where the paralogs are closer than
// the orthologs.
package ksplot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/andrew-torda/geneconv/pkg/kaks"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Point is one quartet. X is paralog Ks, Y the smaller ortholog Ks.
type Point struct {
	X, Y float64
	Conv bool
}

// Options for the plot. Zero values get defaults.
type Options struct {
	Width, Height int
	Max           float64 // axis maximum, bigger values are clipped
	Title         string
	FontSize      float64
}

const (
	dfltSize     = 600
	dfltFontSize = 12
	margin       = 60
	dotHalf      = 2
)

var (
	ConvClr   = color.RGBA{200, 0, 0, 255}
	NoConvClr = color.RGBA{0, 60, 200, 255}
	axisClr   = color.Black
	diagClr   = color.RGBA{160, 160, 160, 255}
)

// AxisMax is the largest coordinate that is not saturated. If there
// is none, it is 1.
func AxisMax(pts []Point) float64 {
	m := 0.0
	for _, p := range pts {
		for _, v := range [2]float64{p.X, p.Y} {
			if v < kaks.Saturated && !math.IsNaN(v) && v > m {
				m = v
			}
		}
	}
	if m == 0 {
		m = 1
	}
	return m
}

// plot holds what we need while drawing.
type plot struct {
	img    *image.RGBA
	max    float64
	x0, y0 int // origin in pixels
	w, h   int // axis lengths in pixels
}

// toPix maps data to pixel coordinates, clipping to the axes.
func (p *plot) toPix(x, y float64) (int, int) {
	clip := func(v float64) float64 {
		if math.IsNaN(v) || v < 0 {
			return 0
		}
		return min(v, p.max)
	}
	px := p.x0 + int(math.Round(clip(x)/p.max*float64(p.w)))
	py := p.y0 - int(math.Round(clip(y)/p.max*float64(p.h)))
	return px, py
}

// line draws from (x1,y1) to (x2,y2) in pixels by stepping along the
// longer direction.
func (p *plot) line(x1, y1, x2, y2 int, c color.Color) {
	dx, dy := x2-x1, y2-y1
	n := max(abs(dx), abs(dy))
	if n == 0 {
		p.img.Set(x1, y1, c)
		return
	}
	for i := 0; i <= n; i++ {
		x := x1 + int(math.Round(float64(i*dx)/float64(n)))
		y := y1 + int(math.Round(float64(i*dy)/float64(n)))
		p.img.Set(x, y, c)
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func (p *plot) dot(px, py int, c color.Color) {
	r := image.Rect(px-dotHalf, py-dotHalf, px+dotHalf+1, py+dotHalf+1)
	draw.Draw(p.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// labeller puts text on the image with freetype.
type labeller struct {
	ctx *freetype.Context
}

func newLabeller(img *image.RGBA, size float64) (*labeller, error) {
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(font)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(axisClr))
	return &labeller{ctx: ctx}, nil
}

// text draws s with its baseline starting at x, y.
func (l *labeller) text(s string, x, y int) (fixed.Point26_6, error) {
	return l.ctx.DrawString(s, freetype.Pt(x, y))
}

// Write draws the points and writes the PNG.
func Write(w io.Writer, pts []Point, opts Options) error {
	width, height := opts.Width, opts.Height
	if width <= 2*margin {
		width = dfltSize
	}
	if height <= 2*margin {
		height = dfltSize
	}
	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = dfltFontSize
	}
	p := plot{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		max: opts.Max,
		x0:  margin,
		y0:  height - margin,
		w:   width - 2*margin,
		h:   height - 2*margin,
	}
	if p.max <= 0 {
		p.max = AxisMax(pts)
	}
	draw.Draw(p.img, p.img.Bounds(), image.White, image.Point{}, draw.Src)

	p.line(p.x0, p.y0, p.x0+p.w, p.y0, axisClr)
	p.line(p.x0, p.y0, p.x0, p.y0-p.h, axisClr)
	p.line(p.x0, p.y0, p.x0+p.w, p.y0-p.h, diagClr)

	for _, pt := range pts {
		c := NoConvClr
		if pt.Conv {
			c = ConvClr
		}
		px, py := p.toPix(pt.X, pt.Y)
		p.dot(px, py, c)
	}

	lbl, err := newLabeller(p.img, fontSize)
	if err != nil {
		return err
	}
	fs := int(fontSize)
	labels := []struct {
		s    string
		x, y int
	}{
		{"0", p.x0 - fs, p.y0 + fs},
		{fmt.Sprintf("%.2f", p.max), p.x0 + p.w - 2*fs, p.y0 + fs + 2},
		{fmt.Sprintf("%.2f", p.max), 2, p.y0 - p.h + fs/2},
		{"Ks paralogs", p.x0 + p.w/2 - 3*fs, height - fs},
		{"Ks orthologs (smaller)", 2, p.y0 - p.h - fs},
		{opts.Title, p.x0 + p.w/3, fs + 4},
	}
	for _, l := range labels {
		if l.s == "" {
			continue
		}
		if _, err := lbl.text(l.s, l.x, l.y); err != nil {
			return fmt.Errorf("drawing label %q: %w", l.s, err)
		}
	}
	return png.Encode(w, p.img)
}
