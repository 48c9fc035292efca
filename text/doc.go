// Package text provides font loading, HarfBuzz shaping and inline paragraph
// layout: styled spans and inline boxes are assembled into a paragraph,
// broken into lines under width and height constraints, and aligned.
//
// The shaping pipeline is built on go-text/typesetting; glyph outlines and
// metrics come from golang.org/x/image/font/sfnt.
package text
