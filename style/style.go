package style

import "github.com/rasterly/rasterly"

// Display determines how a node participates in layout.
type Display uint8

const (
	// DisplayBlock lays the node out as a block-level box.
	DisplayBlock Display = iota
	// DisplayInline lets the node participate in inline flow.
	DisplayInline
	// DisplayFlex lays children out on a flex line; children are
	// blockified.
	DisplayFlex
	// DisplayNone removes the node from layout entirely.
	DisplayNone
)

// IsInline reports whether the display participates in inline flow.
func (d Display) IsInline() bool { return d == DisplayInline }

// BlockifiesChildren reports whether children of this display are forced
// to block-level boxes regardless of their own display.
func (d Display) BlockifiesChildren() bool { return d == DisplayFlex }

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayInline:
		return "inline"
	case DisplayFlex:
		return "flex"
	case DisplayNone:
		return "none"
	}
	return "unknown"
}

// TextAlign positions line contents within the paragraph width.
type TextAlign uint8

const (
	TextAlignStart TextAlign = iota
	TextAlignCenter
	TextAlignEnd
	TextAlignJustify
)

// TextTransform applies a case mapping to text before shaping.
type TextTransform uint8

const (
	TextTransformNone TextTransform = iota
	TextTransformUppercase
	TextTransformLowercase
	TextTransformCapitalize
)

// TextWrapStyle selects the line-breaking strategy.
type TextWrapStyle uint8

const (
	// TextWrapAuto uses greedy first-fit breaking.
	TextWrapAuto TextWrapStyle = iota
	// TextWrapBalance re-breaks to minimize the spread of line widths.
	TextWrapBalance
	// TextWrapPretty re-breaks to avoid a short last line.
	TextWrapPretty
)

// WhiteSpace controls whitespace collapsing and whether text may wrap.
type WhiteSpace uint8

const (
	// WhiteSpaceNormal collapses runs of whitespace and allows wrapping.
	WhiteSpaceNormal WhiteSpace = iota
	// WhiteSpaceNoWrap collapses whitespace but forbids wrapping.
	WhiteSpaceNoWrap
	// WhiteSpacePre preserves whitespace and forbids wrapping.
	WhiteSpacePre
	// WhiteSpacePreWrap preserves whitespace and allows wrapping.
	WhiteSpacePreWrap
)

// Collapses reports whether whitespace runs collapse to a single space.
func (w WhiteSpace) Collapses() bool {
	return w == WhiteSpaceNormal || w == WhiteSpaceNoWrap
}

// Wraps reports whether line breaking is permitted.
func (w WhiteSpace) Wraps() bool {
	return w == WhiteSpaceNormal || w == WhiteSpacePreWrap
}

// ObjectFit controls how replaced content is scaled into its box.
type ObjectFit uint8

const (
	ObjectFitFill ObjectFit = iota
	ObjectFitContain
	ObjectFitCover
	ObjectFitNone
)

// LineClamp limits a paragraph's height. The zero value is unconstrained.
type LineClamp struct {
	// MaxLines caps the number of lines; 0 means no cap.
	MaxLines int
	// MaxHeight caps the summed line heights in pixels; unset means no cap.
	MaxHeight Length
}

// IsConstrained reports whether any limit is in effect.
func (lc LineClamp) IsConstrained() bool {
	return lc.MaxLines > 0 || !lc.MaxHeight.IsUnset()
}

// Edges holds a per-side set of lengths, used for padding, margin and
// border widths.
type Edges struct {
	Top    Length
	Right  Length
	Bottom Length
	Left   Length
}

// UniformEdges sets all four sides to the same length.
func UniformEdges(l Length) Edges {
	return Edges{Top: l, Right: l, Bottom: l, Left: l}
}

// IsUnset reports whether no side was declared.
func (e Edges) IsUnset() bool {
	return e.Top.IsUnset() && e.Right.IsUnset() && e.Bottom.IsUnset() && e.Left.IsUnset()
}

// BorderRadius holds per-corner radii.
type BorderRadius struct {
	TopLeft     Length
	TopRight    Length
	BottomRight Length
	BottomLeft  Length
}

// IsZero reports whether every corner is unset or zero.
func (r BorderRadius) IsZero() bool {
	zero := func(l Length) bool {
		return l.IsUnset() || (l.Unit == UnitPx && l.Value == 0)
	}
	return zero(r.TopLeft) && zero(r.TopRight) && zero(r.BottomRight) && zero(r.BottomLeft)
}

// BoxShadow describes a single drop shadow.
type BoxShadow struct {
	OffsetX    Length
	OffsetY    Length
	BlurRadius Length
	Spread     Length
	Color      Color
	Inset      bool
}

// Style is the declared property set of a node. Zero values mean "unset";
// inherited properties fall back to the parent via Inherit, the rest fall
// back to per-property initial values at use sites.
type Style struct {
	Display Display

	Width     Length
	Height    Length
	MinWidth  Length
	MinHeight Length
	MaxWidth  Length
	MaxHeight Length

	Padding Edges
	Margin  Edges

	BorderWidth  Edges
	BorderColor  Color
	BorderRadius BorderRadius

	BackgroundColor Color
	BackgroundImage string

	Color         Color
	FontSize      Length
	FontFamily    string
	FontWeight    uint16
	LineHeight    Length
	LetterSpacing Length

	TextAlign     TextAlign
	TextTransform TextTransform
	TextWrap      TextWrapStyle
	WhiteSpace    WhiteSpace
	LineClamp     LineClamp

	ObjectFit ObjectFit

	Gap Length

	Transform       Transforms
	TransformOrigin [2]Length

	BoxShadow []BoxShadow
	Filter    []Filter

	Opacity float32 // 0 means unset; resolved via ResolvedOpacity
}

// ResolvedOpacity returns the effective opacity, treating unset as fully
// opaque.
func (s *Style) ResolvedOpacity() float32 {
	if s.Opacity <= 0 {
		return 1
	}
	if s.Opacity > 1 {
		return 1
	}
	return s.Opacity
}

// InheritedStyle is the subset of properties that propagate from parent to
// child through the box tree.
type InheritedStyle struct {
	Color         rasterly.RGBA
	FontSize      float32
	FontFamily    string
	FontWeight    uint16
	LineHeight    Length
	LetterSpacing Length
	TextAlign     TextAlign
	TextTransform TextTransform
	TextWrap      TextWrapStyle
	WhiteSpace    WhiteSpace
}

// DefaultInherited returns the root inherited values for a viewport.
func DefaultInherited(vp rasterly.Viewport) InheritedStyle {
	size := vp.FontSize
	if size <= 0 {
		size = rasterly.DefaultFontSize
	}
	return InheritedStyle{
		Color:      rasterly.Black,
		FontSize:   size,
		FontWeight: 400,
	}
}

// Inherit computes the inherited values seen by the children of a node
// with the given declared style. Declared values override the parent's;
// unset values pass through.
func (s *Style) Inherit(parent InheritedStyle, sizing *Sizing) InheritedStyle {
	out := parent

	if !s.Color.IsUnset() {
		out.Color = s.Color.Resolve(parent.Color)
	}
	if !s.FontSize.IsUnset() {
		fs := sizing.WithFontSize(parent.FontSize)
		out.FontSize = s.FontSize.ToPx(fs, parent.FontSize)
	}
	if s.FontFamily != "" {
		out.FontFamily = s.FontFamily
	}
	if s.FontWeight != 0 {
		out.FontWeight = s.FontWeight
	}
	if !s.LineHeight.IsUnset() {
		out.LineHeight = s.LineHeight
	}
	if !s.LetterSpacing.IsUnset() {
		out.LetterSpacing = s.LetterSpacing
	}
	if s.TextAlign != TextAlignStart {
		out.TextAlign = s.TextAlign
	}
	if s.TextTransform != TextTransformNone {
		out.TextTransform = s.TextTransform
	}
	if s.TextWrap != TextWrapAuto {
		out.TextWrap = s.TextWrap
	}
	if s.WhiteSpace != WhiteSpaceNormal {
		out.WhiteSpace = s.WhiteSpace
	}
	return out
}

// LineHeightPx resolves the inherited line height against the current font
// size, defaulting to the standard scale factor when unset.
func (in InheritedStyle) LineHeightPx(sizing *Sizing) float32 {
	if in.LineHeight.IsUnset() {
		return in.FontSize * rasterly.DefaultLineHeightScale
	}
	fs := sizing.WithFontSize(in.FontSize)
	return in.LineHeight.ToPx(fs, in.FontSize)
}
