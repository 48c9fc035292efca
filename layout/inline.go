package layout

import (
	"math"

	"github.com/rasterly/rasterly/style"
	"github.com/rasterly/rasterly/text"
)

// inlineConstraint derives the width limit and height constraint for
// breaking an inline formatting context, from the known dimensions, the
// offered space, the viewport and any line clamp.
func inlineConstraint(ctx *Context, avail AvailSize, known KnownSize) (float32, text.HeightConstraint) {
	maxWidth := float32(math.MaxFloat32)
	switch {
	case known.HasWidth:
		maxWidth = known.Width
	case avail.Width.IsMinContent():
		maxWidth = 0
	default:
		if w, ok := avail.Width.Definite(); ok {
			maxWidth = w
		}
	}

	// A height cap cuts breaking short; the viewport bounds it even
	// without an explicit clamp, to avoid laying out lines that can never
	// be seen.
	clamp := ctx.Style.LineClamp
	viewportH := float32(ctx.Sizing.Viewport.DeviceHeight())

	capHeight := float32(0)
	hasHeight := false
	if viewportH > 0 {
		capHeight = viewportH
		hasHeight = true
	}
	if !clamp.MaxHeight.IsUnset() {
		h := clamp.MaxHeight.ToPx(ctx.sizing(), viewportH)
		if !hasHeight || h < capHeight {
			capHeight = h
		}
		hasHeight = true
	}

	switch {
	case hasHeight && clamp.MaxLines > 0:
		return maxWidth, text.MaxHeightAndLines(capHeight, clamp.MaxLines)
	case hasHeight:
		return maxWidth, text.MaxHeight(capHeight)
	case clamp.MaxLines > 0:
		return maxWidth, text.MaxLines(clamp.MaxLines)
	default:
		return maxWidth, text.Unbounded()
	}
}

// buildParagraph assembles the paragraph for the box's inline formatting
// context: one styled span per text item, one placeholder box per
// inline-level object, measured under the offered space. The returned trees
// map box IDs back to their owners.
func (t *Tree) buildParagraph(avail AvailSize) (*text.Paragraph, []*Tree) {
	items := t.InlineItems()
	b := text.NewParagraphBuilder(t.Context.Shaper)
	var owners []*Tree

	for _, item := range items {
		switch item.Content.Kind {
		case InlineText:
			run := item.Content.Text
			if item.Owner.Context.Inherited.WhiteSpace.Collapses() {
				run = text.CollapseWhiteSpace(run)
			}
			b.PushSpan(item.Owner.Context.Span())
			b.PushText(run)
			b.PopSpan()
		case InlineBox:
			size := item.Owner.Node.Measure(item.Owner.Context, avail, KnownSize{})
			b.PushInlineBox(text.Box{
				ID:     len(owners),
				Width:  size.Width,
				Height: size.Height,
			})
			owners = append(owners, item.Owner)
		}
	}
	return b.Build(), owners
}

// MeasureInline returns the intrinsic size of the box's inline formatting
// context under the given constraints. Re-justification and alignment are
// skipped; they do not affect measurement.
func (t *Tree) MeasureInline(avail AvailSize, known KnownSize) Size {
	maxWidth, hc := inlineConstraint(t.Context, avail, known)
	p, _ := t.buildParagraph(avail)
	p.Break(breakWidth(t.Context, maxWidth), hc)
	w, h := p.Measure(maxWidth)
	return Size{Width: w, Height: h}
}

// LayoutInline produces the final paragraph for painting the box's inline
// formatting context at its solved content size: lines are broken under the
// box height and line clamp, re-justified per text-wrap style, and aligned.
func (t *Tree) LayoutInline(size Size) (*text.Paragraph, []*Tree) {
	p, owners := t.buildParagraph(AvailSize{
		Width:  Definite(size.Width),
		Height: Definite(size.Height),
	})

	clamp := t.Context.Style.LineClamp
	var hc text.HeightConstraint
	if clamp.MaxLines > 0 {
		hc = text.MaxHeightAndLines(size.Height, clamp.MaxLines)
	} else {
		hc = text.MaxHeight(size.Height)
	}

	width := breakWidth(t.Context, size.Width)
	p.Break(width, hc)

	switch t.Context.Inherited.TextWrap {
	case style.TextWrapBalance:
		p.Balance(size.Width)
	case style.TextWrapPretty:
		p.Pretty(size.Width)
	}

	p.Align(size.Width, alignment(t.Context.Inherited.TextAlign))
	return p, owners
}

func alignment(a style.TextAlign) text.Alignment {
	switch a {
	case style.TextAlignCenter:
		return text.AlignCenter
	case style.TextAlignEnd:
		return text.AlignEnd
	case style.TextAlignJustify:
		return text.AlignJustify
	default:
		return text.AlignStart
	}
}
