// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Source is a loaded font file. One Source serves every size; shaping and
// rasterization share its parsed forms. Source is heavyweight and should be
// shared across the application.
//
// Source is safe for concurrent use: both parsed forms are read-only after
// construction (sfnt.Font methods take a per-call buffer).
type Source struct {
	data []byte

	// shaped is the go-text form used for shaping. font.Font is read-only
	// and safe for concurrent use; font.Face is not, so faces are created
	// per shaping call.
	shaped *font.Font

	// outlined is the x/image form used for glyph outlines and metrics.
	outlined *sfnt.Font

	name string
}

// NewSource parses TTF or OTF font data. The data slice is copied and can be
// reused after this call.
func NewSource(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	shaped, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}

	outlined, err := sfnt.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}

	s := &Source{
		data:     dataCopy,
		shaped:   shaped.Font,
		outlined: outlined,
	}
	s.name = sourceName(outlined)
	return s, nil
}

// NewSourceFromFile loads a Source from a font file path.
func NewSourceFromFile(path string) (*Source, error) {
	// #nosec G304 -- font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewSource(data)
}

// Name returns the font family name, or "Unknown Font" when the name table
// has no usable entry.
func (s *Source) Name() string { return s.name }

// Outline returns the parsed form used for glyph outlines and metrics.
func (s *Source) Outline() *sfnt.Font { return s.outlined }

func sourceName(f *sfnt.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

var (
	defaultSourceOnce sync.Once
	defaultSource     *Source
)

// DefaultSource returns the built-in fallback font (Go Regular). It parses
// once and is shared.
func DefaultSource() *Source {
	defaultSourceOnce.Do(func() {
		s, err := NewSource(goregular.TTF)
		if err != nil {
			// The embedded font is known-good; a parse failure here is a
			// build corruption.
			panic("text: failed to parse embedded fallback font: " + err.Error())
		}
		defaultSource = s
	})
	return defaultSource
}

// Collection resolves font family names to loaded sources, falling back to
// the default source for unknown families.
//
// Collection is safe for concurrent use after all Add calls complete.
type Collection struct {
	mu       sync.RWMutex
	byName   map[string]*Source
	fallback *Source
}

// NewCollection creates a collection whose fallback is the built-in font.
func NewCollection() *Collection {
	return &Collection{
		byName:   make(map[string]*Source),
		fallback: DefaultSource(),
	}
}

// Add registers a source under its family name and returns it for chaining.
// The first added source also becomes the fallback.
func (c *Collection) Add(s *Source) *Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.byName) == 0 {
		c.fallback = s
	}
	c.byName[foldName(s.Name())] = s
	return s
}

// Match returns the source registered under the family name, or the fallback
// when the family is unknown or empty.
func (c *Collection) Match(family string) *Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if family != "" {
		if s, ok := c.byName[foldName(family)]; ok {
			return s
		}
	}
	return c.fallback
}

func foldName(name string) string {
	b := []byte(name)
	for i, ch := range b {
		if 'A' <= ch && ch <= 'Z' {
			b[i] = ch + 'a' - 'A'
		}
	}
	return string(b)
}
