// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package paint rasterizes a solved box tree into a pixmap: backgrounds,
// borders, images, shaped text, shadows and compositing of transformed or
// filtered layers.
package paint

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/layout"
	"github.com/rasterly/rasterly/style"
)

// Canvas draws into a pixmap. Coordinates are device pixels; all drawing is
// source-over.
type Canvas struct {
	pix *rasterly.Pixmap
}

// NewCanvas wraps a pixmap for drawing.
func NewCanvas(p *rasterly.Pixmap) *Canvas {
	return &Canvas{pix: p}
}

// Pixmap returns the underlying pixel buffer.
func (c *Canvas) Pixmap() *rasterly.Pixmap { return c.pix }

// corner radii in top-left, top-right, bottom-right, bottom-left order.
type radii [4]float32

func (r radii) isZero() bool {
	return r[0] == 0 && r[1] == 0 && r[2] == 0 && r[3] == 0
}

// clampTo shrinks radii so adjacent corners never overlap.
func (r radii) clampTo(w, h float32) radii {
	limit := min32(w, h) / 2
	for i := range r {
		if r[i] < 0 {
			r[i] = 0
		}
		if r[i] > limit {
			r[i] = limit
		}
	}
	return r
}

func resolveRadii(br style.BorderRadius, s *style.Sizing, rect layout.Rect) radii {
	px := func(l style.Length) float32 {
		if l.IsUnset() || l.IsAuto() {
			return 0
		}
		return l.ToPx(s, rect.Width)
	}
	r := radii{px(br.TopLeft), px(br.TopRight), px(br.BottomRight), px(br.BottomLeft)}
	return r.clampTo(rect.Width, rect.Height)
}

// FillRect fills an axis-aligned, optionally rounded rectangle with a solid
// color, anti-aliased at edges and corners.
func (c *Canvas) FillRect(rect layout.Rect, r radii, col rasterly.RGBA) {
	if col.IsTransparent() || rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	mask, origin := rectMask(rect, r, c.pix.Width(), c.pix.Height())
	if mask == nil {
		return
	}
	c.fillMask(mask, origin, col)
}

// StrokeBorder fills the ring between the border box and the padding box.
func (c *Canvas) StrokeBorder(rect layout.Rect, r radii, widths [4]float32, col rasterly.RGBA) {
	if col.IsTransparent() {
		return
	}
	top, right, bottom, left := widths[0], widths[1], widths[2], widths[3]
	if top <= 0 && right <= 0 && bottom <= 0 && left <= 0 {
		return
	}

	outer, origin := rectMask(rect, r, c.pix.Width(), c.pix.Height())
	if outer == nil {
		return
	}
	innerRect := rect.Inset(top, right, bottom, left)
	if innerRect.Width > 0 && innerRect.Height > 0 {
		// Inner radii shrink by the adjoining border widths.
		inner := radii{
			max32(0, r[0]-max32(top, left)),
			max32(0, r[1]-max32(top, right)),
			max32(0, r[2]-max32(bottom, right)),
			max32(0, r[3]-max32(bottom, left)),
		}.clampTo(innerRect.Width, innerRect.Height)
		subtractMask(outer, origin, innerRect, inner)
	}
	c.fillMask(outer, origin, col)
}

// rectMask rasterizes a rounded rectangle into an alpha mask clipped to the
// canvas bounds. origin is the mask's top-left in canvas coordinates.
func rectMask(rect layout.Rect, r radii, canvasW, canvasH int) (*image.Alpha, image.Point) {
	x0 := int(math.Floor(float64(rect.X)))
	y0 := int(math.Floor(float64(rect.Y)))
	x1 := int(math.Ceil(float64(rect.Right())))
	y1 := int(math.Ceil(float64(rect.Bottom())))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, canvasW), min(y1, canvasH)
	if x1 <= x0 || y1 <= y0 {
		return nil, image.Point{}
	}

	ras := vector.NewRasterizer(x1-x0, y1-y0)
	addRoundedRect(ras, rect.X-float32(x0), rect.Y-float32(y0), rect.Width, rect.Height, r)
	mask := image.NewAlpha(image.Rect(0, 0, x1-x0, y1-y0))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, image.Pt(x0, y0)
}

// subtractMask removes a rounded rectangle's coverage from an existing mask.
func subtractMask(mask *image.Alpha, origin image.Point, rect layout.Rect, r radii) {
	b := mask.Bounds()
	ras := vector.NewRasterizer(b.Dx(), b.Dy())
	addRoundedRect(ras, rect.X-float32(origin.X), rect.Y-float32(origin.Y), rect.Width, rect.Height, r)
	hole := image.NewAlpha(b)
	ras.Draw(hole, b, image.Opaque, image.Point{})
	for i, a := range hole.Pix {
		if v := mask.Pix[i]; v > a {
			mask.Pix[i] = v - a
		} else {
			mask.Pix[i] = 0
		}
	}
}

// quarter-circle cubic Bezier approximation constant.
const kappa = 0.55228475

func addRoundedRect(ras *vector.Rasterizer, x, y, w, h float32, r radii) {
	tl, tr, br, bl := r[0], r[1], r[2], r[3]

	ras.MoveTo(x+tl, y)
	ras.LineTo(x+w-tr, y)
	if tr > 0 {
		ras.CubeTo(x+w-tr+tr*kappa, y, x+w, y+tr-tr*kappa, x+w, y+tr)
	}
	ras.LineTo(x+w, y+h-br)
	if br > 0 {
		ras.CubeTo(x+w, y+h-br+br*kappa, x+w-br+br*kappa, y+h, x+w-br, y+h)
	}
	ras.LineTo(x+bl, y+h)
	if bl > 0 {
		ras.CubeTo(x+bl-bl*kappa, y+h, x, y+h-bl+bl*kappa, x, y+h-bl)
	}
	ras.LineTo(x, y+tl)
	if tl > 0 {
		ras.CubeTo(x, y+tl-tl*kappa, x+tl-tl*kappa, y, x+tl, y)
	}
	ras.ClosePath()
}

// fillMask blends a solid color through an alpha mask at origin.
func (c *Canvas) fillMask(mask *image.Alpha, origin image.Point, col rasterly.RGBA) {
	b := mask.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
		for x, a := range row {
			if a == 0 {
				continue
			}
			p := col
			p.A = uint8(uint32(col.A) * uint32(a) / 255)
			c.pix.BlendPixel(origin.X+x, origin.Y+y, p)
		}
	}
}

// DrawImage scales src into the content rectangle per the object-fit rule.
func (c *Canvas) DrawImage(src image.Image, rect layout.Rect, fit style.ObjectFit) {
	if src == nil || rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return
	}

	dst := c.pix.Image()
	dr := image.Rect(
		int(math.Round(float64(rect.X))),
		int(math.Round(float64(rect.Y))),
		int(math.Round(float64(rect.Right()))),
		int(math.Round(float64(rect.Bottom()))),
	)
	if dr.Intersect(dst.Bounds()).Empty() {
		return
	}

	sr := sb
	switch fit {
	case style.ObjectFitContain:
		dr = containRect(dr, sb)
	case style.ObjectFitCover:
		sr = coverCrop(dr, sb)
	case style.ObjectFitNone:
		// Center unscaled; clip to the content rectangle.
		cx := (dr.Min.X + dr.Max.X) / 2
		cy := (dr.Min.Y + dr.Max.Y) / 2
		unscaled := image.Rect(cx-sb.Dx()/2, cy-sb.Dy()/2, cx-sb.Dx()/2+sb.Dx(), cy-sb.Dy()/2+sb.Dy())
		visible := unscaled.Intersect(dr)
		xdraw.Draw(dst, visible, src, sb.Min.Add(visible.Min.Sub(unscaled.Min)), xdraw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, dr, src, sr, xdraw.Over, nil)
}

// containRect shrinks dr to the largest rectangle with src's aspect ratio
// that fits inside it, centered.
func containRect(dr image.Rectangle, sb image.Rectangle) image.Rectangle {
	dw, dh := float64(dr.Dx()), float64(dr.Dy())
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	scale := math.Min(dw/sw, dh/sh)
	w := int(math.Round(sw * scale))
	h := int(math.Round(sh * scale))
	x := dr.Min.X + (dr.Dx()-w)/2
	y := dr.Min.Y + (dr.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// coverCrop returns the centered source crop whose aspect ratio matches dr,
// so scaling it fills dr completely.
func coverCrop(dr image.Rectangle, sb image.Rectangle) image.Rectangle {
	dw, dh := float64(dr.Dx()), float64(dr.Dy())
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	scale := math.Max(dw/sw, dh/sh)
	w := int(math.Round(dw / scale))
	h := int(math.Round(dh / scale))
	x := sb.Min.X + (sb.Dx()-w)/2
	y := sb.Min.Y + (sb.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Composite blends a layer onto the canvas under an affine transform and a
// uniform opacity. Identity transforms take a direct row blend; everything
// else inverse-maps destination pixels with bilinear sampling.
func (c *Canvas) Composite(layer *rasterly.Pixmap, m rasterly.Affine, opacity float32) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	if m.IsIdentity() {
		c.blendDirect(layer, 0, 0, opacity)
		return
	}
	if tx, ty, ok := integerTranslation(m); ok {
		c.blendDirect(layer, tx, ty, opacity)
		return
	}

	inv, ok := m.Invert()
	if !ok {
		return
	}

	// Destination bounds: the transformed corners of the layer.
	w, h := float32(layer.Width()), float32(layer.Height())
	corners := []rasterly.Point{
		m.TransformPoint(rasterly.Point{}),
		m.TransformPoint(rasterly.Point{X: w}),
		m.TransformPoint(rasterly.Point{Y: h}),
		m.TransformPoint(rasterly.Point{X: w, Y: h}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX, maxX = min32(minX, p.X), max32(maxX, p.X)
		minY, maxY = min32(minY, p.Y), max32(maxY, p.Y)
	}

	x0 := max(int(math.Floor(float64(minX))), 0)
	y0 := max(int(math.Floor(float64(minY))), 0)
	x1 := min(int(math.Ceil(float64(maxX))), c.pix.Width())
	y1 := min(int(math.Ceil(float64(maxY))), c.pix.Height())

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			src := inv.TransformPoint(rasterly.Point{X: float32(x) + 0.5, Y: float32(y) + 0.5})
			col, ok := sampleBilinear(layer, src.X-0.5, src.Y-0.5)
			if !ok || col.A == 0 {
				continue
			}
			if opacity < 1 {
				col.A = uint8(float32(col.A) * opacity)
			}
			c.pix.BlendPixel(x, y, col)
		}
	}
}

func (c *Canvas) blendDirect(layer *rasterly.Pixmap, dx, dy int, opacity float32) {
	for y := 0; y < layer.Height(); y++ {
		for x := 0; x < layer.Width(); x++ {
			col := layer.GetPixel(x, y)
			if col.A == 0 {
				continue
			}
			if opacity < 1 {
				col.A = uint8(float32(col.A) * opacity)
			}
			c.pix.BlendPixel(x+dx, y+dy, col)
		}
	}
}

func integerTranslation(m rasterly.Affine) (int, int, bool) {
	if m.A != 1 || m.B != 0 || m.C != 0 || m.D != 1 {
		return 0, 0, false
	}
	tx, ty := math.Round(float64(m.X)), math.Round(float64(m.Y))
	if math.Abs(float64(m.X)-tx) > 1e-3 || math.Abs(float64(m.Y)-ty) > 1e-3 {
		return 0, 0, false
	}
	return int(tx), int(ty), true
}

// sampleBilinear reads a bilinearly interpolated pixel; coordinates outside
// the layer contribute transparency.
func sampleBilinear(p *rasterly.Pixmap, fx, fy float32) (rasterly.RGBA, bool) {
	if fx < -1 || fy < -1 || fx > float32(p.Width()) || fy > float32(p.Height()) {
		return rasterly.Transparent, false
	}
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	c00 := p.GetPixel(x0, y0)
	c10 := p.GetPixel(x0+1, y0)
	c01 := p.GetPixel(x0, y0+1)
	c11 := p.GetPixel(x0+1, y0+1)

	lerp := func(a, b uint8, t float32) float32 {
		return float32(a) + (float32(b)-float32(a))*t
	}
	mix := func(f func(rasterly.RGBA) uint8) uint8 {
		top := lerp(f(c00), f(c10), ax)
		bot := lerp(f(c01), f(c11), ax)
		return uint8(top + (bot-top)*ay + 0.5)
	}
	return rasterly.RGBA{
		R: mix(func(c rasterly.RGBA) uint8 { return c.R }),
		G: mix(func(c rasterly.RGBA) uint8 { return c.G }),
		B: mix(func(c rasterly.RGBA) uint8 { return c.B }),
		A: mix(func(c rasterly.RGBA) uint8 { return c.A }),
	}, true
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
