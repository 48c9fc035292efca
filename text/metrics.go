package text

import (
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
)

// Metrics are a font's vertical metrics at a given pixel size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the em box.
	Ascent float32
	// Descent is the distance from the baseline to the bottom, positive
	// downward.
	Descent float32
	// Height is the recommended baseline-to-baseline distance.
	Height float32
}

// Metrics returns the font's vertical metrics at the given pixel size.
func (s *Source) Metrics(size float32) Metrics {
	var buf sfnt.Buffer
	m, err := s.outlined.Metrics(&buf, floatToFixed(size), xfont.HintingNone)
	if err != nil {
		// Degenerate fallback: approximate from the size.
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, Height: size}
	}
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		Height:  fixedToFloat(m.Height),
	}
}
