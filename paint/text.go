// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

package paint

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/text"
)

// glyphPainter rasterizes glyph outlines. The sfnt buffer is reused across
// glyphs; a glyphPainter must not be shared between goroutines.
type glyphPainter struct {
	buf sfnt.Buffer
}

// drawRun paints one shaped run at the given pen origin (baseline left).
func (g *glyphPainter) drawRun(c *Canvas, run []text.Glyph, source *text.Source, size float32, penX, penY float32, col rasterly.RGBA) {
	f := source.Outline()
	if f == nil {
		return
	}
	ppem := fixed.Int26_6(size * 64)

	x := penX
	for _, glyph := range run {
		g.drawGlyph(c, f, ppem, glyph, x, penY, col)
		x += glyph.Advance
	}
}

func (g *glyphPainter) drawGlyph(c *Canvas, f *sfnt.Font, ppem fixed.Int26_6, glyph text.Glyph, penX, penY float32, col rasterly.RGBA) {
	segs, err := f.LoadGlyph(&g.buf, sfnt.GlyphIndex(glyph.GID), ppem, nil)
	if err != nil || len(segs) == 0 {
		return
	}

	// Glyph origin in device space. Shaper offsets are y-up; the canvas
	// and sfnt outlines are y-down.
	ox := penX + glyph.X
	oy := penY - glyph.Y

	minX, minY, maxX, maxY := segmentBounds(segs)
	x0 := int(math.Floor(float64(ox + minX)))
	y0 := int(math.Floor(float64(oy + minY)))
	x1 := int(math.Ceil(float64(ox + maxX)))
	y1 := int(math.Ceil(float64(oy + maxY)))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.pix.Width()), min(y1, c.pix.Height())
	if x1 <= x0 || y1 <= y0 {
		return
	}

	ras := vector.NewRasterizer(x1-x0, y1-y0)
	dx := ox - float32(x0)
	dy := oy - float32(y0)
	for _, seg := range segs {
		p := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			ras.MoveTo(fx(p[0].X)+dx, fx(p[0].Y)+dy)
		case sfnt.SegmentOpLineTo:
			ras.LineTo(fx(p[0].X)+dx, fx(p[0].Y)+dy)
		case sfnt.SegmentOpQuadTo:
			ras.QuadTo(fx(p[0].X)+dx, fx(p[0].Y)+dy, fx(p[1].X)+dx, fx(p[1].Y)+dy)
		case sfnt.SegmentOpCubeTo:
			ras.CubeTo(fx(p[0].X)+dx, fx(p[0].Y)+dy, fx(p[1].X)+dx, fx(p[1].Y)+dy,
				fx(p[2].X)+dx, fx(p[2].Y)+dy)
		}
	}
	ras.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, x1-x0, y1-y0))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	c.fillMask(mask, image.Pt(x0, y0), col)
}

func segmentBounds(segs sfnt.Segments) (minX, minY, maxX, maxY float32) {
	minX, minY = math.MaxFloat32, math.MaxFloat32
	maxX, maxY = -math.MaxFloat32, -math.MaxFloat32
	for _, seg := range segs {
		pts := 1
		switch seg.Op {
		case sfnt.SegmentOpQuadTo:
			pts = 2
		case sfnt.SegmentOpCubeTo:
			pts = 3
		}
		for i := 0; i < pts; i++ {
			x, y := fx(seg.Args[i].X), fx(seg.Args[i].Y)
			minX, maxX = min32(minX, x), max32(maxX, x)
			minY, maxY = min32(minY, y), max32(maxY, y)
		}
	}
	return minX, minY, maxX, maxY
}

func fx(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
