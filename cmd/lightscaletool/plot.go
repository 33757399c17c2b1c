package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/vearutop/lightscale"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	plotBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	plotAxis       = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	plotGrid       = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	plotReference  = color.RGBA{R: 0x30, G: 0x70, B: 0xd0, A: 0xff}
	plotApprox     = color.RGBA{R: 0xe0, G: 0x50, B: 0x20, A: 0xff}
	plotText       = color.RGBA{A: 0xff}
)

const (
	plotMarginLeft   = 48
	plotMarginRight  = 16
	plotMarginTop    = 28
	plotMarginBottom = 32
	plotMinSize      = 160
)

// plotArea maps curve coordinates into image pixels.
type plotArea struct {
	rect       image.Rectangle
	maxX       float64
	minY, maxY float64
}

func (a plotArea) point(x, y float64) (float32, float32) {
	px := float64(a.rect.Min.X) + x/a.maxX*float64(a.rect.Dx())
	py := float64(a.rect.Max.Y) - (y-a.minY)/(a.maxY-a.minY)*float64(a.rect.Dy())
	return float32(px), float32(py)
}

// renderPlot draws the exact transfer curve, the segment approximation and the
// breakpoints of s.
func renderPlot(s *lightscale.Scale, width, height int) (*image.RGBA, error) {
	if width < plotMinSize || height < plotMinSize {
		return nil, fmt.Errorf("%w: plot must be at least %dx%d", errUsage, plotMinSize, plotMinSize)
	}
	cfg := s.Config()
	if cfg.MaxIn == 0 {
		return nil, errors.New("plot: scale has no input range")
	}
	area := plotArea{
		rect: image.Rect(plotMarginLeft, plotMarginTop, width-plotMarginRight, height-plotMarginBottom),
		maxX: float64(cfg.MaxIn),
		maxY: float64(cfg.MaxOut),
	}
	for x := uint(0); x <= cfg.MaxIn; x++ {
		v := float64(s.Raw(x))
		area.minY = math.Min(area.minY, v)
		area.maxY = math.Max(area.maxY, v)
	}
	if area.maxY <= area.minY {
		area.maxY = area.minY + 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(plotBackground), image.Point{}, draw.Src)

	for i := 1; i < 4; i++ {
		f := float64(i) / 4
		strokeLine(img, area, plotGrid, 1, [][2]float64{{f * area.maxX, area.minY}, {f * area.maxX, area.maxY}})
		strokeLine(img, area, plotGrid, 1, [][2]float64{{0, area.minY + f*(area.maxY-area.minY)}, {area.maxX, area.minY + f*(area.maxY-area.minY)}})
	}
	strokeLine(img, area, plotAxis, 1.5, [][2]float64{{0, area.maxY}, {0, area.minY}, {area.maxX, area.minY}})

	steps := area.rect.Dx()
	ref := make([][2]float64, 0, steps+1)

	for i := 0; i <= steps; i++ {
		x := float64(i) / float64(steps) * area.maxX
		ref = append(ref, [2]float64{x, lightscale.Reference(cfg, x)})
	}
	strokeLine(img, area, plotReference, 2, ref)

	approx := make([][2]float64, 0, cfg.MaxIn+1)
	for x := uint(0); x <= cfg.MaxIn; x++ {
		approx = append(approx, [2]float64{float64(x), float64(s.Raw(x))})
	}
	strokeLine(img, area, plotApprox, 1.5, approx)

	for _, x := range s.Breakpoints() {
		px, py := area.point(float64(x), cfg.Output(x))
		fillRect(img, plotApprox, px-2.5, py-2.5, px+2.5, py+2.5)
	}
	label(img, plotText, 8, 16, fmt.Sprintf("max in %d, max out %d, gamma %.3g, invert %t, %d segments",
		cfg.MaxIn, cfg.MaxOut, cfg.Gamma, cfg.InvertOut, s.Len()))
	label(img, plotText, area.rect.Min.X-4, area.rect.Max.Y+16, "0")
	label(img, plotText, area.rect.Max.X-24, area.rect.Max.Y+16, fmt.Sprintf("%d", cfg.MaxIn))
	label(img, plotText, 4, area.rect.Min.Y+10, fmt.Sprintf("%.0f", area.maxY))
	label(img, plotText, 4, area.rect.Max.Y, fmt.Sprintf("%.0f", area.minY))
	return img, nil
}

// strokeLine draws a polyline as a chain of quads, the rasterizer clamps
// overlapping coverage.
func strokeLine(img *image.RGBA, area plotArea, c color.RGBA, width float32, pts [][2]float64) {
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	hw := width / 2
	for i := 1; i < len(pts); i++ {
		x0, y0 := area.point(pts[i-1][0], pts[i-1][1])
		x1, y1 := area.point(pts[i][0], pts[i][1])

		dx, dy := x1-x0, y1-y0

		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw

		r.MoveTo(x0+nx, y0+ny)
		r.LineTo(x1+nx, y1+ny)
		r.LineTo(x1-nx, y1-ny)
		r.LineTo(x0-nx, y0-ny)
		r.ClosePath()
	}
	r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

func fillRect(img *image.RGBA, c color.RGBA, x0, y0, x1, y1 float32) {
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

func label(img *image.RGBA, c color.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func writePlotFile(path string, s *lightscale.Scale, width, height int) error {
	img, err := renderPlot(s, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode plot: %w", err)
	}
	return f.Close()
}
