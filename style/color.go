package style

import (
	"strconv"

	"github.com/rasterly/rasterly"
)

// ColorKind tags a declared color value.
type ColorKind uint8

const (
	// ColorUnset marks a color that was never declared.
	ColorUnset ColorKind = iota
	// ColorValue is a concrete RGBA color.
	ColorValue
	// ColorCurrent resolves to the inherited currentColor.
	ColorCurrent
)

// Color is a declared color: a concrete value, the currentColor keyword, or
// unset.
type Color struct {
	Kind  ColorKind
	Value rasterly.RGBA
}

// NewColor wraps a concrete RGBA value.
func NewColor(c rasterly.RGBA) Color {
	return Color{Kind: ColorValue, Value: c}
}

// CurrentColor returns the currentColor keyword value.
func CurrentColor() Color {
	return Color{Kind: ColorCurrent}
}

// IsUnset reports whether the color was never declared.
func (c Color) IsUnset() bool { return c.Kind == ColorUnset }

// Resolve returns the concrete color, substituting current for the
// currentColor keyword and for unset values.
func (c Color) Resolve(current rasterly.RGBA) rasterly.RGBA {
	if c.Kind == ColorValue {
		return c.Value
	}
	return current
}

// Or returns the color, or fallback if unset.
func (c Color) Or(fallback Color) Color {
	if c.IsUnset() {
		return fallback
	}
	return c
}

var namedColors = map[string]rasterly.RGBA{
	"black":   rasterly.Black,
	"white":   rasterly.White,
	"red":     rasterly.RGB(255, 0, 0),
	"green":   rasterly.RGB(0, 128, 0),
	"blue":    rasterly.RGB(0, 0, 255),
	"yellow":  rasterly.RGB(255, 255, 0),
	"cyan":    rasterly.RGB(0, 255, 255),
	"magenta": rasterly.RGB(255, 0, 255),
	"gray":    rasterly.RGB(128, 128, 128),
	"grey":    rasterly.RGB(128, 128, 128),
	"orange":  rasterly.RGB(255, 165, 0),
}

// ParseColor parses a CSS color value: #rgb/#rgba/#rrggbb/#rrggbbaa hex
// notation, rgb()/rgba() functions, the transparent and currentcolor
// keywords, and a small set of named colors.
func ParseColor(input string) (Color, error) {
	tz := newTokenizer(input)
	c, err := parseColor(tz)
	if err != nil {
		return Color{}, err
	}
	if err := tz.expectEOF(); err != nil {
		return Color{}, err
	}
	return c, nil
}

func parseColor(tz *tokenizer) (Color, error) {
	t := tz.next()
	switch t.typ {
	case tokenHash:
		c, ok := parseHexColor(t.value)
		if !ok {
			return Color{}, unexpected(t)
		}
		return NewColor(c), nil
	case tokenIdent:
		switch {
		case caseInsensitiveEqual(t.value, "transparent"):
			return NewColor(rasterly.Transparent), nil
		case caseInsensitiveEqual(t.value, "currentcolor"):
			return CurrentColor(), nil
		}
		if c, ok := namedColors[lowerASCII(t.value)]; ok {
			return NewColor(c), nil
		}
		return Color{}, unexpected(t)
	case tokenFunction:
		if caseInsensitiveEqual(t.value, "rgb") || caseInsensitiveEqual(t.value, "rgba") {
			return parseRGBFunction(tz)
		}
		return Color{}, unexpected(t)
	default:
		return Color{}, unexpected(t)
	}
}

func parseRGBFunction(tz *tokenizer) (Color, error) {
	channel := func() (uint8, error) {
		t := tz.next()
		if t.typ != tokenNumber {
			return 0, unexpected(t)
		}
		return clampChannel(t.num), nil
	}

	r, err := channel()
	if err != nil {
		return Color{}, err
	}
	tz.tryComma()
	g, err := channel()
	if err != nil {
		return Color{}, err
	}
	tz.tryComma()
	b, err := channel()
	if err != nil {
		return Color{}, err
	}

	a := uint8(255)
	if tz.peek().typ != tokenCloseParen {
		tz.tryComma()
		tz.tryDelim('/')
		t := tz.next()
		switch t.typ {
		case tokenNumber:
			a = clampChannel(t.num * 255)
		case tokenPercentage:
			a = clampChannel(t.num * 255)
		default:
			return Color{}, unexpected(t)
		}
	}
	if err := tz.expectCloseParen(); err != nil {
		return Color{}, err
	}
	return NewColor(rasterly.RGBA{R: r, G: g, B: b, A: a}), nil
}

func parseHexColor(hex string) (rasterly.RGBA, bool) {
	expand := func(s string) string {
		out := make([]byte, 0, len(s)*2)
		for i := 0; i < len(s); i++ {
			out = append(out, s[i], s[i])
		}
		return string(out)
	}

	switch len(hex) {
	case 3, 4:
		hex = expand(hex)
	case 6, 8:
	default:
		return rasterly.RGBA{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return rasterly.RGBA{}, false
	}
	if len(hex) == 6 {
		return rasterly.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 255,
		}, true
	}
	return rasterly.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}

func clampChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
