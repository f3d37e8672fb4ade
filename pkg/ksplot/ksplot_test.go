package ksplot_test

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	. "github.com/andrew-torda/geneconv/pkg/ksplot"
)

func countClr(t *testing.T, b []byte, c color.RGBA) (n, w, h int) {
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	bnd := img.Bounds()
	for y := bnd.Min.Y; y < bnd.Max.Y; y++ {
		for x := bnd.Min.X; x < bnd.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if uint8(r>>8) == c.R && uint8(g>>8) == c.G && uint8(bl>>8) == c.B && uint8(a>>8) == c.A {
				n++
			}
		}
	}
	return n, bnd.Dx(), bnd.Dy()
}

func TestWrite(t *testing.T) {
	pts := []Point{
		{X: 0.1, Y: 0.5, Conv: true},
		{X: 0.6, Y: 0.4},
		{X: 5, Y: 5}, // saturated, clipped to the corner
	}
	var b bytes.Buffer
	if err := Write(&b, pts, Options{Width: 400, Height: 300, Max: 1, Title: "test"}); err != nil {
		t.Fatal(err)
	}
	nRed, w, h := countClr(t, b.Bytes(), ConvClr)
	if w != 400 || h != 300 {
		t.Fatalf("size got %d x %d", w, h)
	}
	if nRed == 0 {
		t.Fatal("no converted point drawn")
	}
	if nBlue, _, _ := countClr(t, b.Bytes(), NoConvClr); nBlue == 0 {
		t.Fatal("no unconverted points drawn")
	}

	b.Reset()
	if err := Write(&b, pts[1:], Options{}); err != nil {
		t.Fatal(err)
	}
	if nRed, w, _ = countClr(t, b.Bytes(), ConvClr); nRed != 0 || w != 600 {
		t.Fatal("red pixels without conversion, or wrong default size", nRed, w)
	}
}

func TestAxisMax(t *testing.T) {
	if m := AxisMax(nil); m != 1 {
		t.Fatal("empty got", m)
	}
	pts := []Point{{X: 0.3, Y: 0.2}, {X: math.Inf(1), Y: 0.7}, {X: math.NaN(), Y: 0}, {X: 5, Y: 0.1}}
	if m := AxisMax(pts); m != 0.7 {
		t.Fatal("got", m)
	}
}
