package layout

import (
	"math"

	"github.com/rasterly/rasterly/style"
	"github.com/rasterly/rasterly/text"
)

// InlineKind classifies what a node contributes to inline flow.
type InlineKind uint8

const (
	// InlineNone means the node does not participate in inline content.
	InlineNone InlineKind = iota
	// InlineText contributes a run of text.
	InlineText
	// InlineBox contributes a fixed-size inline-level object.
	InlineBox
)

// InlineContent is a node's contribution to inline flow.
type InlineContent struct {
	Kind InlineKind
	Text string
}

// Node is one element of the input tree. The variant set is closed:
// Container, Text and Image cover the supported content kinds, and the
// pipeline type-switches over them during paint.
type Node interface {
	// Style returns the declared style, or nil for an all-default node.
	Style() *style.Style
	// Children returns child nodes; nil for leaves.
	Children() []Node
	// InlineContent returns what the node contributes to inline flow.
	InlineContent(ctx *Context) InlineContent
	// Measure returns the node's intrinsic content size.
	Measure(ctx *Context, avail AvailSize, known KnownSize) Size
}

// ContainerNode groups children under a shared style.
type ContainerNode struct {
	Styles *style.Style
	Kids   []Node
}

func (n *ContainerNode) Style() *style.Style { return n.Styles }

func (n *ContainerNode) Children() []Node { return n.Kids }

func (n *ContainerNode) InlineContent(*Context) InlineContent {
	return InlineContent{Kind: InlineNone}
}

func (n *ContainerNode) Measure(*Context, AvailSize, KnownSize) Size {
	return Size{}
}

// TextNode renders a run of text.
type TextNode struct {
	Styles *style.Style
	Text   string
}

func (n *TextNode) Style() *style.Style { return n.Styles }

func (n *TextNode) Children() []Node { return nil }

func (n *TextNode) InlineContent(ctx *Context) InlineContent {
	return InlineContent{
		Kind: InlineText,
		Text: text.ApplyCase(n.Text, caseTransform(ctx.Inherited.TextTransform)),
	}
}

// Measure shapes and breaks the text under the given constraints.
func (n *TextNode) Measure(ctx *Context, avail AvailSize, known KnownSize) Size {
	maxWidth, hc := inlineConstraint(ctx, avail, known)

	b := text.NewParagraphBuilder(ctx.Shaper)
	b.PushSpan(ctx.Span())
	b.PushText(n.InlineContent(ctx).Text)
	b.PopSpan()
	p := b.Build()

	p.Break(breakWidth(ctx, maxWidth), hc)
	w, h := p.Measure(maxWidth)
	return Size{Width: w, Height: h}
}

// ImageNode renders a fetched image, sized by style or by its intrinsic
// dimensions.
type ImageNode struct {
	Styles *style.Style
	// Src is the resource URL; the fetched pixels come from the render's
	// resource map.
	Src string
}

func (n *ImageNode) Style() *style.Style { return n.Styles }

func (n *ImageNode) Children() []Node { return nil }

func (n *ImageNode) InlineContent(*Context) InlineContent {
	return InlineContent{Kind: InlineBox}
}

// Measure sizes the image from its declared style, falling back to the
// intrinsic pixel dimensions of the fetched resource, preserving aspect
// ratio when only one axis is declared.
func (n *ImageNode) Measure(ctx *Context, avail AvailSize, known KnownSize) Size {
	var intrinsic Size
	if img := ctx.Image(n.Src); img != nil {
		b := img.Bounds()
		intrinsic = Size{Width: float32(b.Dx()), Height: float32(b.Dy())}
	}

	s := n.Styles
	if s == nil {
		return intrinsic
	}

	basisW := availBasis(avail.Width)
	basisH := availBasis(avail.Height)

	w, hasW := resolveSize(s.Width, ctx, basisW)
	h, hasH := resolveSize(s.Height, ctx, basisH)

	switch {
	case hasW && hasH:
		return Size{Width: w, Height: h}
	case hasW:
		if intrinsic.Width > 0 {
			return Size{Width: w, Height: w * intrinsic.Height / intrinsic.Width}
		}
		return Size{Width: w}
	case hasH:
		if intrinsic.Height > 0 {
			return Size{Width: h * intrinsic.Width / intrinsic.Height, Height: h}
		}
		return Size{Height: h}
	default:
		return intrinsic
	}
}

func resolveSize(l style.Length, ctx *Context, basis float32) (float32, bool) {
	l = l.OrAuto()
	if l.IsAuto() {
		return 0, false
	}
	return l.ToPx(ctx.sizing(), basis), true
}

func availBasis(a Avail) float32 {
	if v, ok := a.Definite(); ok {
		return v
	}
	return 0
}

// breakWidth is the width lines are broken against: nowrap styles break
// against an unbounded width and overflow instead of wrapping.
func breakWidth(ctx *Context, maxWidth float32) float32 {
	if !ctx.Inherited.WhiteSpace.Wraps() {
		return math.MaxFloat32
	}
	return maxWidth
}

func caseTransform(t style.TextTransform) text.CaseTransform {
	switch t {
	case style.TextTransformUppercase:
		return text.CaseUpper
	case style.TextTransformLowercase:
		return text.CaseLower
	case style.TextTransformCapitalize:
		return text.CaseTitle
	default:
		return text.CaseNone
	}
}
