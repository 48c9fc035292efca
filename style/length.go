package style

import (
	"github.com/rasterly/rasterly"
)

// Pixel conversion factors for absolute physical units (CSS Values 4 §6.2).
const (
	pxPerCm = 96.0 / 2.54
	pxPerMm = pxPerCm / 10.0
	pxPerQ  = pxPerCm / 40.0
	pxPerIn = 2.54 * pxPerCm
	pxPerPt = pxPerIn / 72.0
	pxPerPc = pxPerIn / 6.0
)

// Sizing is the context required to resolve any Length: the viewport
// (dimensions, root font size, device pixel ratio), the current computed
// font size, and the calc arena for the render. Immutable per node during
// resolution; derived top-down.
type Sizing struct {
	Viewport rasterly.Viewport
	// FontSize is the current computed font size in pixels, for em units.
	FontSize float32
	// Arena stores mixed px/percent calc values resolved during this render.
	Arena *CalcArena
}

// NewSizing creates a sizing context for a viewport with a fresh calc arena.
func NewSizing(vp rasterly.Viewport) *Sizing {
	return &Sizing{
		Viewport: vp,
		FontSize: vp.FontSize,
		Arena:    NewCalcArena(),
	}
}

// WithFontSize returns a copy of the sizing context with a new current font
// size. The viewport and arena are shared.
func (s *Sizing) WithFontSize(fontSize float32) *Sizing {
	copied := *s
	copied.FontSize = fontSize
	return &copied
}

// Unit identifies the interpretation of a Length value.
type Unit uint8

const (
	// UnitUnset marks a length that was never declared. Use OrAuto or
	// OrZero to choose what "unset" means at each use site.
	UnitUnset Unit = iota
	// UnitAuto sizes based on content.
	UnitAuto
	// UnitPx is a pixel value.
	UnitPx
	// UnitPercent is relative to the parent container (stored as 0-100).
	UnitPercent
	// UnitRem is relative to the root font size.
	UnitRem
	// UnitEm is relative to the current font size.
	UnitEm
	// UnitVh is relative to the viewport height (0-100).
	UnitVh
	// UnitVw is relative to the viewport width (0-100).
	UnitVw
	// UnitCm is centimeters.
	UnitCm
	// UnitMm is millimeters.
	UnitMm
	// UnitIn is inches.
	UnitIn
	// UnitQ is quarter-millimeters.
	UnitQ
	// UnitPt is points.
	UnitPt
	// UnitPc is picas.
	UnitPc
	// UnitCalc marks a calc() expression; the Calc field carries it.
	UnitCalc
)

// Calc holds a calc() expression in one of its two lifecycle states: the
// symbolic formula as parsed, or the resolved linear form after the sizing
// context has been folded in.
type Calc struct {
	// Resolved selects between Formula (false) and Linear (true).
	Resolved bool
	Formula  CalcFormula
	Linear   CalcLinear
}

func (c *Calc) toLinear(s *Sizing) CalcLinear {
	if c.Resolved {
		return c.Linear
	}
	return c.Formula.Resolve(s)
}

// Length is a CSS length-percentage value: a tagged union over pixels,
// percentages, font-relative, viewport-relative and absolute physical units,
// plus calc() expressions and the auto sentinel. The zero value is "unset".
type Length struct {
	Unit  Unit
	Value float32
	// Calc is non-nil if and only if Unit is UnitCalc.
	Calc *Calc
}

// Auto returns the auto sentinel.
func Auto() Length { return Length{Unit: UnitAuto} }

// Px returns a pixel length.
func Px(v float32) Length { return Length{Unit: UnitPx, Value: v} }

// Percent returns a percentage length (0-100).
func Percent(v float32) Length { return Length{Unit: UnitPercent, Value: v} }

// Rem returns a root-font-relative length.
func Rem(v float32) Length { return Length{Unit: UnitRem, Value: v} }

// Em returns a font-relative length.
func Em(v float32) Length { return Length{Unit: UnitEm, Value: v} }

// Vh returns a viewport-height-relative length (0-100).
func Vh(v float32) Length { return Length{Unit: UnitVh, Value: v} }

// Vw returns a viewport-width-relative length (0-100).
func Vw(v float32) Length { return Length{Unit: UnitVw, Value: v} }

// Zero returns a zero pixel length.
func Zero() Length { return Px(0) }

// IsUnset reports whether the length was never declared.
func (l Length) IsUnset() bool { return l.Unit == UnitUnset }

// IsAuto reports whether the length is the auto sentinel.
func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// OrAuto resolves an unset length to auto.
func (l Length) OrAuto() Length {
	if l.IsUnset() {
		return Auto()
	}
	return l
}

// OrZero resolves an unset length to zero pixels.
func (l Length) OrZero() Length {
	if l.IsUnset() {
		return Zero()
	}
	return l
}

// Or resolves an unset length to the given fallback.
func (l Length) Or(fallback Length) Length {
	if l.IsUnset() {
		return fallback
	}
	return l
}

// Negate returns the length with its sign flipped. Auto stays auto.
func (l Length) Negate() Length {
	switch l.Unit {
	case UnitUnset, UnitAuto:
		return l
	case UnitCalc:
		c := &Calc{Resolved: l.Calc.Resolved}
		if l.Calc.Resolved {
			c.Linear = l.Calc.Linear.Neg()
		} else {
			c.Formula = l.Calc.Formula.Neg()
		}
		return Length{Unit: UnitCalc, Calc: c}
	default:
		l.Value = -l.Value
		return l
	}
}

// toPxPreDPR resolves the length to pixels without device-pixel-ratio
// scaling. Calc linear values are already in device pixels.
func (l Length) toPxPreDPR(s *Sizing, basis float32) float32 {
	vp := s.Viewport
	switch l.Unit {
	case UnitUnset, UnitAuto:
		return 0
	case UnitPx:
		return l.Value
	case UnitPercent:
		return l.Value / 100 * basis
	case UnitRem:
		return l.Value * vp.FontSize
	case UnitEm:
		return l.Value * s.FontSize
	case UnitVh:
		return l.Value * float32(vp.Height) / 100
	case UnitVw:
		return l.Value * float32(vp.Width) / 100
	case UnitCm:
		return l.Value * pxPerCm
	case UnitMm:
		return l.Value * pxPerMm
	case UnitIn:
		return l.Value * pxPerIn
	case UnitQ:
		return l.Value * pxPerQ
	case UnitPt:
		return l.Value * pxPerPt
	case UnitPc:
		return l.Value * pxPerPc
	case UnitCalc:
		return l.Calc.toLinear(s).Resolve(basis)
	default:
		return 0
	}
}

// ToPx resolves the length to device pixels against a percentage basis.
// Device-pixel-ratio is applied to absolute units (px, physical units, rem)
// but not to percentage, viewport-relative or em units, which already track
// device scale through their reference values.
func (l Length) ToPx(s *Sizing, basis float32) float32 {
	v := l.toPxPreDPR(s, basis)
	switch l.Unit {
	case UnitUnset, UnitAuto, UnitPercent, UnitVh, UnitVw, UnitEm, UnitCalc:
		return v
	default:
		return v * s.Viewport.DevicePixelRatio
	}
}

// ToComputed collapses context-dependent units into simpler forms: em
// becomes px, and a calc formula resolves to px, percent, or the linear
// calc form. The px collapse divides out the device-pixel-ratio so that a
// later ToPx applies it exactly once.
func (l Length) ToComputed(s *Sizing) Length {
	switch l.Unit {
	case UnitEm:
		return Px(l.Value * s.FontSize)
	case UnitCalc:
		if l.Calc.Resolved {
			return l
		}
		linear := l.Calc.Formula.Resolve(s)
		if isNearZero(linear.Percent) {
			return Px(linear.Px / s.Viewport.DevicePixelRatio)
		}
		if isNearZero(linear.Px) {
			return Percent(linear.Percent * 100)
		}
		return Length{Unit: UnitCalc, Calc: &Calc{Resolved: true, Linear: linear}}
	default:
		return l
	}
}

// DimensionKind tags the resolved form handed to the layout engine.
type DimensionKind uint8

const (
	// DimensionAuto sizes to content.
	DimensionAuto DimensionKind = iota
	// DimensionLength is a definite device-pixel value.
	DimensionLength
	// DimensionPercent is a fraction of the containing basis.
	DimensionPercent
	// DimensionCalc is a mixed px/percent value registered in the arena.
	DimensionCalc
)

// Dimension is the layout engine's view of a resolved Length: auto, a
// definite pixel value, a percentage fraction, or a calc arena handle.
type Dimension struct {
	Kind  DimensionKind
	Value float32
	Ref   CalcRef
}

// DimensionPx returns a definite pixel dimension.
func DimensionPx(v float32) Dimension {
	return Dimension{Kind: DimensionLength, Value: v}
}

// Resolve evaluates the dimension against a percentage basis. Auto resolves
// to 0; the caller decides what auto means before resolving.
func (d Dimension) Resolve(arena *CalcArena, basis float32) float32 {
	switch d.Kind {
	case DimensionLength:
		return d.Value
	case DimensionPercent:
		return d.Value * basis
	case DimensionCalc:
		return arena.Resolve(d.Ref, basis)
	default:
		return 0
	}
}

// ToDimension resolves the length into the layout engine's representation.
// A calc whose resolved percent term is ~0 collapses to a definite length;
// one whose px term is ~0 collapses to a percentage; mixed values register
// in the arena and travel as a handle.
func (l Length) ToDimension(s *Sizing) Dimension {
	vp := s.Viewport
	switch l.Unit {
	case UnitUnset, UnitAuto:
		return Dimension{Kind: DimensionAuto}
	case UnitPercent:
		return Dimension{Kind: DimensionPercent, Value: l.Value / 100}
	case UnitRem:
		return DimensionPx(l.Value * vp.FontSize * vp.DevicePixelRatio)
	case UnitEm:
		return DimensionPx(l.Value * s.FontSize)
	case UnitVh:
		return DimensionPx(float32(vp.Height) * l.Value / 100)
	case UnitVw:
		return DimensionPx(float32(vp.Width) * l.Value / 100)
	case UnitCalc:
		linear := l.Calc.toLinear(s)
		if isNearZero(linear.Percent) {
			return DimensionPx(linear.Px)
		}
		if isNearZero(linear.Px) {
			return Dimension{Kind: DimensionPercent, Value: linear.Percent}
		}
		return Dimension{Kind: DimensionCalc, Ref: s.Arena.Register(linear)}
	default:
		return DimensionPx(l.ToPx(s, float32(vp.Width)))
	}
}

// ParseLength parses a CSS length-percentage value, including calc()
// expressions. A calc() that reduces to a plain number becomes a pixel
// length.
func ParseLength(input string) (Length, error) {
	tz := newTokenizer(input)
	l, err := parseLength(tz)
	if err != nil {
		return Length{}, err
	}
	if err := tz.expectEOF(); err != nil {
		return Length{}, err
	}
	return l, nil
}

func parseLength(tz *tokenizer) (Length, error) {
	t := tz.next()
	switch t.typ {
	case tokenIdent:
		if caseInsensitiveEqual(t.value, "auto") {
			return Auto(), nil
		}
		return Length{}, unexpected(t)
	case tokenFunction:
		if !caseInsensitiveEqual(t.value, "calc") {
			return Length{}, unexpected(t)
		}
		v, err := parseCalcSum(tz)
		if err != nil {
			return Length{}, err
		}
		if err := tz.expectCloseParen(); err != nil {
			return Length{}, err
		}
		if v.isNumber {
			return Px(v.number), nil
		}
		return Length{Unit: UnitCalc, Calc: &Calc{Formula: v.formula}}, nil
	case tokenDimension:
		return lengthForUnit(t)
	case tokenPercentage:
		return Percent(t.num * 100), nil
	case tokenNumber:
		return Px(t.num), nil
	default:
		return Length{}, unexpected(t)
	}
}

var unitNames = map[string]Unit{
	"px": UnitPx, "em": UnitEm, "rem": UnitRem,
	"vw": UnitVw, "vh": UnitVh,
	"cm": UnitCm, "mm": UnitMm, "in": UnitIn,
	"q": UnitQ, "pt": UnitPt, "pc": UnitPc,
}

func lengthForUnit(t token) (Length, error) {
	u, ok := unitNames[t.unit]
	if !ok {
		return Length{}, unexpected(t)
	}
	return Length{Unit: u, Value: t.num}, nil
}
