package rasterly

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 255], non-premultiplied.
type RGBA struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black       = RGBA{0, 0, 0, 255}
	White       = RGBA{255, 255, 255, 255}
	Transparent = RGBA{0, 0, 0, 0}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// IsOpaque reports whether the color is fully opaque.
func (c RGBA) IsOpaque() bool {
	return c.A == 255
}

// IsTransparent reports whether the color is fully transparent.
func (c RGBA) IsTransparent() bool {
	return c.A == 0
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a uint8) RGBA {
	c.A = a
	return c
}

// Over composites c over dst using non-premultiplied source-over blending.
func (c RGBA) Over(dst RGBA) RGBA {
	if c.A == 255 {
		return c
	}
	if c.A == 0 {
		return dst
	}

	sa := uint32(c.A)
	da := uint32(dst.A) * (255 - sa) / 255
	oa := sa + da
	if oa == 0 {
		return Transparent
	}

	blend := func(s, d uint8) uint8 {
		return uint8((uint32(s)*sa + uint32(d)*da) / oa)
	}

	return RGBA{
		R: blend(c.R, dst.R),
		G: blend(c.G, dst.G),
		B: blend(c.B, dst.B),
		A: uint8(oa),
	}
}
