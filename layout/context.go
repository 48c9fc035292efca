package layout

import (
	"image"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/resources"
	"github.com/rasterly/rasterly/style"
	"github.com/rasterly/rasterly/text"
)

// Context carries everything a node needs during tree building, measurement
// and paint: the resolved style state at this point in the tree plus the
// render-wide collaborators.
type Context struct {
	// Style is the node's declared style after tree fixups (blockify,
	// anonymous wrapping mutate Display).
	Style style.Style
	// Inherited is the cascade state seen by this node's children.
	Inherited style.InheritedStyle

	// Sizing resolves lengths for this render.
	Sizing *style.Sizing
	// Fonts resolves font families to sources.
	Fonts *text.Collection
	// Shaper shapes text runs.
	Shaper *text.Shaper
	// Images holds the fetched resources for this render.
	Images resources.Map
}

// NewContext creates the root context for a viewport with default
// collaborators.
func NewContext(vp rasterly.Viewport) *Context {
	return &Context{
		Inherited: style.DefaultInherited(vp),
		Sizing:    style.NewSizing(vp),
		Fonts:     text.NewCollection(),
		Shaper:    text.NewShaper(),
	}
}

// Image returns the fetched image for src, or nil.
func (c *Context) Image(src string) image.Image {
	return c.Images.Image(src)
}

// CurrentColor is the resolved currentColor at this node.
func (c *Context) CurrentColor() rasterly.RGBA {
	return c.Inherited.Color
}

// FontSize is the computed font size at this node.
func (c *Context) FontSize() float32 {
	return c.Inherited.FontSize
}

// sizing returns the sizing context adjusted to this node's font size, so
// em units resolve against the local computed value.
func (c *Context) sizing() *style.Sizing {
	return c.Sizing.WithFontSize(c.Inherited.FontSize)
}

// Span builds the text span for this node's inherited text style.
func (c *Context) Span() text.Span {
	s := c.sizing()
	return text.Span{
		Source:        c.Fonts.Match(c.Inherited.FontFamily),
		Size:          c.Inherited.FontSize,
		LineHeight:    c.Inherited.LineHeightPx(c.Sizing),
		LetterSpacing: c.Inherited.LetterSpacing.ToPx(s, c.Inherited.FontSize),
		Color:         c.Inherited.Color,
	}
}

// child derives the context seen by children of a node declaring decl.
func (c *Context) child(decl style.Style) *Context {
	out := *c
	out.Style = decl
	out.Inherited = decl.Inherit(c.Inherited, c.Sizing)
	return &out
}
