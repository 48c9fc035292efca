package layout

import (
	"github.com/rasterly/rasterly/style"
)

// Engine solves box geometry for a built tree: it assigns every box's
// Layout rectangle within the given viewport size. Full flexbox/grid
// solvers can be plugged in; FlowEngine is the built-in block-flow solver.
type Engine interface {
	Solve(t *Tree, viewport Size)
}

// FlowEngine is a block-flow layout solver: block boxes fill their
// containing width and stack vertically; flex containers lay blockified
// children out on a single row with gaps, without grow or shrink.
type FlowEngine struct{}

// NewFlowEngine creates the built-in block-flow solver.
func NewFlowEngine() *FlowEngine { return &FlowEngine{} }

// Solve lays out the tree within the viewport.
func (e *FlowEngine) Solve(t *Tree, viewport Size) {
	size := e.layoutBox(t, viewport)
	t.Layout = Rect{Width: size.Width, Height: size.Height}
}

// layoutBox sizes one box within its containing block and positions its
// children. It returns the box's border-box size; the caller places it.
func (e *FlowEngine) layoutBox(t *Tree, containing Size) Size {
	ctx := t.Context
	s := ctx.sizing()
	st := &ctx.Style

	padT, padR, padB, padL := edgesPx(st.Padding, s, containing.Width)
	bdT, bdR, bdB, bdL := edgesPx(st.BorderWidth, s, containing.Width)
	insetX := padL + padR + bdL + bdR
	insetY := padT + padB + bdT + bdB

	width, hasWidth := resolveSize(st.Width, ctx, containing.Width)
	height, hasHeight := resolveSize(st.Height, ctx, containing.Height)

	// Block boxes fill the containing width unless sized explicitly.
	if !hasWidth {
		width = containing.Width
	}
	width = clampSize(width, st.MinWidth, st.MaxWidth, ctx, containing.Width)
	contentW := max32(0, width-insetX)

	availH := containing.Height - insetY
	if hasHeight {
		availH = height - insetY
	}

	var contentH float32
	switch {
	case t.ConstructsInlineLayout():
		size := t.MeasureInline(
			AvailSize{Width: Definite(contentW), Height: Definite(max32(0, availH))},
			KnownSize{},
		)
		contentH = size.Height
	case len(t.Children) > 0:
		contentH = e.layoutChildren(t, Size{Width: contentW, Height: max32(0, availH)},
			padL+bdL, padT+bdT)
	case t.Node != nil:
		size := t.Node.Measure(ctx,
			AvailSize{Width: Definite(contentW), Height: Definite(max32(0, availH))},
			knownFrom(contentW, hasWidth),
		)
		if !hasWidth && size.Width > 0 && size.Width+insetX < width {
			// Replaced leaves do not stretch; shrink to content.
			if _, isText := t.Node.(*TextNode); !isText {
				width = size.Width + insetX
			}
		}
		contentH = size.Height
	}

	if !hasHeight {
		height = contentH + insetY
	}
	height = clampSize(height, st.MinHeight, st.MaxHeight, ctx, containing.Height)

	return Size{Width: width, Height: height}
}

// layoutChildren stacks block children vertically, or on a single row for
// flex containers, and returns the resulting content height.
func (e *FlowEngine) layoutChildren(t *Tree, content Size, originX, originY float32) float32 {
	ctx := t.Context
	s := ctx.sizing()

	gap := float32(0)
	if !ctx.Style.Gap.IsUnset() {
		gap = ctx.Style.Gap.ToPx(s, content.Width)
	}

	if ctx.Style.Display == style.DisplayFlex {
		x := originX
		var rowH float32
		for i, child := range t.Children {
			mT, mR, mB, mL := edgesPx(child.Context.Style.Margin, s, content.Width)
			size := e.layoutBox(child, content)
			if i > 0 {
				x += gap
			}
			child.Layout = Rect{X: x + mL, Y: originY + mT, Width: size.Width, Height: size.Height}
			x += mL + size.Width + mR
			rowH = max32(rowH, mT+size.Height+mB)
		}
		return rowH
	}

	y := originY
	for i, child := range t.Children {
		mT, mR, mB, mL := edgesPx(child.Context.Style.Margin, s, content.Width)
		inner := Size{Width: max32(0, content.Width-mL-mR), Height: content.Height}
		size := e.layoutBox(child, inner)
		if i > 0 {
			y += gap
		}
		child.Layout = Rect{X: originX + mL, Y: y + mT, Width: size.Width, Height: size.Height}
		y += mT + size.Height + mB
	}
	return y - originY
}

func knownFrom(w float32, has bool) KnownSize {
	if !has {
		return KnownSize{}
	}
	return KnownSize{Width: w, HasWidth: true}
}

func clampSize(v float32, minL, maxL style.Length, ctx *Context, basis float32) float32 {
	s := ctx.sizing()
	if !maxL.IsUnset() && !maxL.IsAuto() {
		v = min32(v, maxL.ToPx(s, basis))
	}
	if !minL.IsUnset() && !minL.IsAuto() {
		v = max32(v, minL.ToPx(s, basis))
	}
	return v
}

// edgesPx resolves a per-side length set against a percentage basis.
// Unset and auto sides resolve to zero.
func edgesPx(e style.Edges, s *style.Sizing, basis float32) (top, right, bottom, left float32) {
	px := func(l style.Length) float32 {
		l = l.OrZero()
		if l.IsAuto() {
			return 0
		}
		return l.ToPx(s, basis)
	}
	return px(e.Top), px(e.Right), px(e.Bottom), px(e.Left)
}

// PaddingBox returns the box's padding-box rectangle in its own coordinate
// space (border removed from the border box).
func (t *Tree) PaddingBox(borderBox Rect) Rect {
	s := t.Context.sizing()
	bdT, bdR, bdB, bdL := edgesPx(t.Context.Style.BorderWidth, s, borderBox.Width)
	return borderBox.Inset(bdT, bdR, bdB, bdL)
}

// ContentBox returns the box's content-box rectangle (border and padding
// removed from the border box).
func (t *Tree) ContentBox(borderBox Rect) Rect {
	s := t.Context.sizing()
	bdT, bdR, bdB, bdL := edgesPx(t.Context.Style.BorderWidth, s, borderBox.Width)
	padT, padR, padB, padL := edgesPx(t.Context.Style.Padding, s, borderBox.Width)
	return borderBox.Inset(bdT+padT, bdR+padR, bdB+padB, bdL+padL)
}
