package paint

import (
	"math"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/filter"
	"github.com/rasterly/rasterly/layout"
	"github.com/rasterly/rasterly/style"
	"github.com/rasterly/rasterly/text"
)

// Painter rasterizes a solved box tree.
type Painter struct {
	glyphs glyphPainter

	// root and viewport are per-render: the root's background propagates
	// to the whole canvas, and a layered root covers the viewport rather
	// than its content extent.
	root     *layout.Tree
	viewport layout.Size
}

// NewPainter creates a painter. A painter can be reused across renders but
// not shared between goroutines.
func NewPainter() *Painter {
	return &Painter{}
}

// Paint draws the tree into a fresh pixmap of the given device size.
func (p *Painter) Paint(t *layout.Tree, width, height int) *rasterly.Pixmap {
	pix := rasterly.NewPixmap(width, height)
	if t != nil {
		p.root = t
		p.viewport = layout.Size{Width: float32(width), Height: float32(height)}
		p.paintBox(NewCanvas(pix), t, t.Layout.X, t.Layout.Y)
	}
	return pix
}

// paintBox draws one box and its subtree. x, y are the border-box origin in
// the canvas's coordinate space.
func (p *Painter) paintBox(c *Canvas, t *layout.Tree, x, y float32) {
	st := &t.Context.Style
	opacity := st.ResolvedOpacity()

	// Transforms, filters and group opacity render the subtree into its
	// own layer and composite it back.
	if len(st.Filter) > 0 || !st.Transform.IsEmpty() || opacity < 1 {
		p.paintLayered(c, t, x, y, opacity)
		return
	}
	p.paintInto(c, t, x, y)
}

// paintInto draws the box directly onto the canvas with no layer
// indirection.
func (p *Painter) paintInto(c *Canvas, t *layout.Tree, x, y float32) {
	st := &t.Context.Style
	s := paintSizing(t)
	border := layout.Rect{X: x, Y: y, Width: t.Layout.Width, Height: t.Layout.Height}
	r := resolveRadii(st.BorderRadius, s, border)

	for _, shadow := range st.BoxShadow {
		if !shadow.Inset {
			p.paintShadow(c, t, border, r, shadow)
		}
	}

	if !st.BackgroundColor.IsUnset() {
		bgRect, bgRadii := border, r
		if t == p.root {
			// The root's background color propagates to the canvas.
			bgRect = layout.Rect{
				Width:  float32(c.pix.Width()),
				Height: float32(c.pix.Height()),
			}
			bgRadii = radii{}
		}
		c.FillRect(bgRect, bgRadii, st.BackgroundColor.Resolve(t.Context.CurrentColor()))
	}
	if st.BackgroundImage != "" {
		if img := t.Context.Image(st.BackgroundImage); img != nil {
			c.DrawImage(img, border, style.ObjectFitCover)
		}
	}

	if !st.BorderColor.IsUnset() {
		c.StrokeBorder(border, r, borderWidths(st.BorderWidth, s, border.Width),
			st.BorderColor.Resolve(t.Context.CurrentColor()))
	}

	content := t.ContentBox(border)

	switch {
	case t.HasInlineContent():
		p.paintInlineContent(c, t, content)
	case len(t.Children) > 0:
		for _, child := range t.Children {
			p.paintBox(c, child, x+child.Layout.X, y+child.Layout.Y)
		}
	default:
		if img, ok := t.Node.(*layout.ImageNode); ok {
			if src := t.Context.Image(img.Src); src != nil {
				c.DrawImage(src, content, st.ObjectFit)
			}
		}
	}
}

// paintLayered renders the subtree into an offscreen layer, applies blur,
// and composites it under the box's transform and opacity.
func (p *Painter) paintLayered(c *Canvas, t *layout.Tree, x, y, opacity float32) {
	st := &t.Context.Style
	s := paintSizing(t)

	// Pad the layer so blur has room to spill.
	pad := 0
	for _, f := range st.Filter {
		radius := f.Blur.OrZero().ToPx(s, t.Layout.Width)
		if ext := filter.BlurFilter.Extent(radius); ext > pad {
			pad = ext
		}
	}

	base := layout.Size{Width: t.Layout.Width, Height: t.Layout.Height}
	if t == p.root {
		// A layered root covers the viewport, so opacity and filters on
		// the root apply to the whole image.
		base = p.viewport
	}
	w := int(math.Ceil(float64(base.Width))) + 2*pad
	h := int(math.Ceil(float64(base.Height))) + 2*pad
	if w <= 0 || h <= 0 {
		return
	}
	layer := rasterly.NewPixmap(w, h)
	p.paintInto(NewCanvas(layer), t, float32(pad), float32(pad))

	for _, f := range st.Filter {
		radius := f.Blur.OrZero().ToPx(s, t.Layout.Width)
		filter.Blur(layer, radius, filter.BlurFilter)
	}

	// Transform about the origin point, then place the layer at the box
	// position. Row-vector convention: leftmost matrix applies first.
	m := rasterly.Translation(-float32(pad), -float32(pad))
	if !st.Transform.IsEmpty() {
		ox, oy := transformOrigin(st, s, t.Layout)
		m = m.
			Multiply(rasterly.Translation(-ox, -oy)).
			Multiply(st.Transform.ToAffine(s, t.Layout.Width, t.Layout.Height)).
			Multiply(rasterly.Translation(ox, oy))
	}
	m = m.Multiply(rasterly.Translation(x, y))

	c.Composite(layer, m, opacity)
}

// paintShadow rasterizes the border-box silhouette, blurs it, and blends it
// tinted underneath the box.
func (p *Painter) paintShadow(c *Canvas, t *layout.Tree, border layout.Rect, r radii, shadow style.BoxShadow) {
	s := paintSizing(t)
	col := shadow.Color.Resolve(t.Context.CurrentColor())
	if col.IsTransparent() {
		return
	}

	offX := shadow.OffsetX.OrZero().ToPx(s, border.Width)
	offY := shadow.OffsetY.OrZero().ToPx(s, border.Height)
	blur := shadow.BlurRadius.OrZero().ToPx(s, border.Width)
	spread := shadow.Spread.OrZero().ToPx(s, border.Width)

	shadowW := border.Width + 2*spread
	shadowH := border.Height + 2*spread
	if shadowW <= 0 || shadowH <= 0 {
		return
	}

	pad := filter.BlurShadow.Extent(blur)
	w := int(math.Ceil(float64(shadowW))) + 2*pad
	h := int(math.Ceil(float64(shadowH))) + 2*pad

	mask := shadowMask(w, h, layout.Rect{
		X: float32(pad), Y: float32(pad), Width: shadowW, Height: shadowH,
	}, r.clampTo(shadowW, shadowH))
	filter.BlurAlpha(mask, w, h, blur, filter.BlurShadow)

	originX := int(math.Round(float64(border.X + offX - spread - float32(pad))))
	originY := int(math.Round(float64(border.Y + offY - spread - float32(pad))))
	for my := 0; my < h; my++ {
		for mx := 0; mx < w; mx++ {
			a := mask[my*w+mx]
			if a == 0 {
				continue
			}
			px := col
			px.A = uint8(uint32(col.A) * uint32(a) / 255)
			c.pix.BlendPixel(originX+mx, originY+my, px)
		}
	}
}

// shadowMask rasterizes a rounded rectangle silhouette into a w*h alpha
// buffer.
func shadowMask(w, h int, rect layout.Rect, r radii) []uint8 {
	mask, _ := rectMask(rect, r, w, h)
	out := make([]uint8, w*h)
	if mask == nil {
		return out
	}
	b := mask.Bounds()
	for y := 0; y < b.Dy(); y++ {
		copy(out[y*w:y*w+b.Dx()], mask.Pix[y*mask.Stride:y*mask.Stride+b.Dx()])
	}
	return out
}

// paintInlineContent lays out and draws the box's inline formatting
// context: glyph runs per line plus recursive paint of inline-level boxes.
func (p *Painter) paintInlineContent(c *Canvas, t *layout.Tree, content layout.Rect) {
	para, owners := t.LayoutInline(layout.Size{Width: content.Width, Height: content.Height})
	if para.IsEmpty() {
		return
	}
	spans := para.Spans()

	lineTop := content.Y
	for i, line := range para.Lines() {
		items := para.LineItems(i)
		baseline := lineTop + baselineOffset(spans, items, line.Height)

		for _, item := range items {
			itemX := content.X + item.X
			if item.Box != nil {
				owner := owners[item.Box.ID]
				// Inline boxes sit on the baseline.
				owner.Layout = layout.Rect{Width: item.Box.Width, Height: item.Box.Height}
				p.paintBox(c, owner, itemX, baseline-item.Box.Height)
				continue
			}
			span := spans[item.Span]
			p.glyphs.drawRun(c, item.Glyphs, span.Source, span.Size, itemX, baseline, span.Color)
		}
		lineTop += line.Height
	}
}

// baselineOffset positions the baseline within a line: the text block
// (ascent + descent) is centered, half the leading above and below.
func baselineOffset(spans []text.Span, items []text.LineItem, lineHeight float32) float32 {
	var ascent, descent float32
	for _, item := range items {
		if item.Box != nil {
			continue
		}
		m := spans[item.Span].Source.Metrics(spans[item.Span].Size)
		ascent = max32(ascent, m.Ascent)
		descent = max32(descent, m.Descent)
	}
	if ascent == 0 {
		// Box-only line.
		return lineHeight
	}
	leading := lineHeight - (ascent + descent)
	return leading/2 + ascent
}

func paintSizing(t *layout.Tree) *style.Sizing {
	return t.Context.Sizing.WithFontSize(t.Context.Inherited.FontSize)
}

func borderWidths(e style.Edges, s *style.Sizing, basis float32) [4]float32 {
	px := func(l style.Length) float32 {
		l = l.OrZero()
		if l.IsAuto() {
			return 0
		}
		return l.ToPx(s, basis)
	}
	return [4]float32{px(e.Top), px(e.Right), px(e.Bottom), px(e.Left)}
}

func transformOrigin(st *style.Style, s *style.Sizing, box layout.Rect) (float32, float32) {
	ox := box.Width / 2
	oy := box.Height / 2
	if !st.TransformOrigin[0].IsUnset() {
		ox = st.TransformOrigin[0].ToPx(s, box.Width)
	}
	if !st.TransformOrigin[1].IsUnset() {
		oy = st.TransformOrigin[1].ToPx(s, box.Height)
	}
	return ox, oy
}
