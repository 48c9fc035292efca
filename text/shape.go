// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Glyph is a single positioned glyph produced by shaping. Positions are in
// pixels, relative to the start of the run.
type Glyph struct {
	// GID is the glyph index in its source font.
	GID uint16
	// Cluster is the rune index in the shaped text this glyph maps to.
	Cluster int
	// X and Y are offsets from the pen position.
	X, Y float32
	// Advance is the horizontal pen advance.
	Advance float32
}

// Shaper converts text into positioned glyphs using HarfBuzz shaping via
// go-text/typesetting. It supports kerning, ligatures and complex scripts.
//
// Shaper is safe for concurrent use. HarfbuzzShaper instances hold mutable
// buffers and are pooled; font.Face is not concurrent-safe and is created
// per call around the shared read-only font.Font.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a shaper backed by go-text/typesetting's HarfBuzz
// implementation.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Shape shapes a run of text at the given pixel size and returns positioned
// glyphs. Letter spacing is added to every glyph advance after shaping.
func (s *Shaper) Shape(text string, source *Source, size, letterSpacing float32) []Glyph {
	if text == "" || source == nil {
		return nil
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(source.shaped),
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	if len(output.Glyphs) == 0 {
		return nil
	}

	glyphs := make([]Glyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		glyphs[i] = Glyph{
			GID:     uint16(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       fixedToFloat(g.XOffset),
			Y:       fixedToFloat(g.YOffset),
			Advance: fixedToFloat(g.Advance) + letterSpacing,
		}
	}
	return glyphs
}

// detectScript inspects the runes and returns the script of the first
// non-space character. For mixed-script text, split runs by script before
// shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
