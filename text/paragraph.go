package text

import (
	"unicode"

	"github.com/rasterly/rasterly"
)

// Span is the styling applied to a run of text within a paragraph.
type Span struct {
	Source *Source
	// Size is the font size in pixels.
	Size float32
	// LineHeight is the height this span contributes to any line it
	// appears on, in pixels.
	LineHeight float32
	// LetterSpacing is extra advance added after each glyph, in pixels.
	LetterSpacing float32
	Color         rasterly.RGBA
}

// Box is a fixed-size inline-level object embedded in a paragraph, such as
// an image or an inline-block container. ID is caller-defined and round-trips
// through layout untouched.
type Box struct {
	ID     int
	Width  float32
	Height float32
}

type breakKind uint8

const (
	breakNone breakKind = iota
	breakSoft
)

// cluster is the atomic unit of line breaking: the glyphs mapping to one
// grapheme-ish unit of source text, or an inline box, or a hard newline.
type cluster struct {
	// span indexes Paragraph.spans; -1 for boxes.
	span int
	// box indexes Paragraph.boxes when span is -1.
	box int

	glyphs  []Glyph
	advance float32

	// r is the representative rune, used for break classification.
	r         rune
	runeIndex int

	isSpace   bool
	isNewline bool
	// breakBefore marks a soft wrap opportunity before this cluster.
	breakBefore breakKind
}

// ParagraphBuilder assembles a paragraph from styled text runs and inline
// boxes. Calls must be balanced: every PushSpan needs a matching PopSpan,
// and PushText requires an active span. Violations are caller bugs and
// panic.
type ParagraphBuilder struct {
	shaper   *Shaper
	spans    []Span
	stack    []int
	runes    []rune
	clusters []cluster
	boxes    []Box
}

// NewParagraphBuilder creates a builder that shapes text with the given
// shaper.
func NewParagraphBuilder(shaper *Shaper) *ParagraphBuilder {
	return &ParagraphBuilder{shaper: shaper}
}

// PushSpan makes s the active style for subsequent PushText calls until the
// matching PopSpan.
func (b *ParagraphBuilder) PushSpan(s Span) {
	b.spans = append(b.spans, s)
	b.stack = append(b.stack, len(b.spans)-1)
}

// PopSpan deactivates the most recent span. It panics when no span is
// active.
func (b *ParagraphBuilder) PopSpan() {
	if len(b.stack) == 0 {
		panic("text: PopSpan without a matching PushSpan")
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// PushText shapes s with the active span and appends it to the paragraph.
// Newlines become hard line breaks. It panics when no span is active.
func (b *ParagraphBuilder) PushText(s string) {
	if len(b.stack) == 0 {
		panic("text: PushText without an active span")
	}
	if s == "" {
		return
	}
	spanIdx := b.stack[len(b.stack)-1]
	span := b.spans[spanIdx]

	start := 0
	runes := []rune(s)
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && runes[i] != '\n' {
			continue
		}
		if i > start {
			b.pushSegment(string(runes[start:i]), spanIdx, span)
		}
		if i < len(runes) {
			b.clusters = append(b.clusters, cluster{
				span:      spanIdx,
				r:         '\n',
				runeIndex: len(b.runes),
				isNewline: true,
			})
			b.runes = append(b.runes, '\n')
		}
		start = i + 1
	}
}

// pushSegment shapes a newline-free run and groups its glyphs into clusters.
func (b *ParagraphBuilder) pushSegment(s string, spanIdx int, span Span) {
	glyphs := b.shaper.Shape(s, span.Source, span.Size, span.LetterSpacing)
	runes := []rune(s)
	base := len(b.runes)

	for start := 0; start < len(glyphs); {
		end := start + 1
		for end < len(glyphs) && glyphs[end].Cluster == glyphs[start].Cluster {
			end++
		}

		var advance float32
		for _, g := range glyphs[start:end] {
			advance += g.Advance
		}

		r := rune(0)
		if idx := glyphs[start].Cluster; idx >= 0 && idx < len(runes) {
			r = runes[idx]
		}

		b.clusters = append(b.clusters, cluster{
			span:      spanIdx,
			glyphs:    glyphs[start:end],
			advance:   advance,
			r:         r,
			runeIndex: base + glyphs[start].Cluster,
			isSpace:   unicode.IsSpace(r),
		})
		start = end
	}

	b.runes = append(b.runes, runes...)
}

// PushInlineBox embeds a fixed-size inline object at the current position.
func (b *ParagraphBuilder) PushInlineBox(box Box) {
	b.boxes = append(b.boxes, box)
	b.clusters = append(b.clusters, cluster{
		span:      -1,
		box:       len(b.boxes) - 1,
		advance:   box.Width,
		r:         objectReplacement,
		runeIndex: len(b.runes),
	})
	b.runes = append(b.runes, objectReplacement)
}

// Build finalizes the paragraph and computes soft break opportunities. The
// builder must not be reused afterwards.
func (b *ParagraphBuilder) Build() *Paragraph {
	clusters := b.clusters
	for i := 1; i < len(clusters); i++ {
		if clusters[i].isNewline || clusters[i-1].isNewline {
			continue
		}
		if canBreakBetween(clusters[i-1].r, clusters[i].r) {
			clusters[i].breakBefore = breakSoft
		}
	}
	return &Paragraph{
		spans:    b.spans,
		boxes:    b.boxes,
		clusters: clusters,
		text:     b.runes,
	}
}

// Line is one laid-out line: a half-open cluster range with its computed
// metrics and alignment placement.
type Line struct {
	start, end int

	// Advance is the line width excluding trailing whitespace.
	Advance float32
	// Height is the tallest line height among the line's spans and boxes.
	Height float32
	// Offset is the horizontal placement from alignment.
	Offset float32
	// WordSpacing is extra advance per space cluster from justification.
	WordSpacing float32

	// hard marks lines terminated by a newline rather than wrapping.
	hard bool
}

// Paragraph is shaped, breakable text: a flat sequence of clusters plus the
// lines produced by the most recent breaking pass.
type Paragraph struct {
	spans    []Span
	boxes    []Box
	clusters []cluster
	text     []rune
	lines    []Line
}

// IsEmpty reports whether the paragraph has no content.
func (p *Paragraph) IsEmpty() bool { return len(p.clusters) == 0 }

// Text returns the paragraph's rune sequence, with inline boxes as object
// replacement characters.
func (p *Paragraph) Text() string { return string(p.text) }

// Lines returns the lines from the most recent breaking pass.
func (p *Paragraph) Lines() []Line { return p.lines }

// Spans returns the styled spans referenced by the paragraph's items.
func (p *Paragraph) Spans() []Span { return p.spans }

// LineItem is a contiguous run of one span's glyphs, or one inline box,
// positioned within a line.
type LineItem struct {
	// Span indexes Spans(); -1 when the item is a box.
	Span int
	// Box is non-nil when the item is an inline box.
	Box *Box
	// Glyphs are the run's glyphs for text items.
	Glyphs []Glyph
	// X is the pen position at the start of the item, including the line's
	// alignment offset and justification.
	X float32
}

// LineItems flattens line i into positioned runs for painting. Trailing
// whitespace is kept but contributes no visible glyph width.
func (p *Paragraph) LineItems(i int) []LineItem {
	line := p.lines[i]
	var items []LineItem
	x := line.Offset
	splitNext := false

	for ci := line.start; ci < line.end; ci++ {
		c := &p.clusters[ci]
		if c.isNewline {
			continue
		}
		if c.span == -1 {
			items = append(items, LineItem{Span: -1, Box: &p.boxes[c.box], X: x})
			x += c.advance
			splitNext = true
			continue
		}

		// Merge consecutive clusters of the same span into one run. A run
		// cannot continue across justification gaps: glyph positions within
		// a run are pen-relative and know nothing of word spacing.
		n := len(items)
		if !splitNext && n > 0 && items[n-1].Box == nil && items[n-1].Span == c.span {
			items[n-1].Glyphs = append(items[n-1].Glyphs, c.glyphs...)
		} else {
			run := make([]Glyph, len(c.glyphs))
			copy(run, c.glyphs)
			items = append(items, LineItem{Span: c.span, Glyphs: run, X: x})
		}
		splitNext = false

		x += c.advance
		if c.isSpace && line.WordSpacing != 0 {
			x += line.WordSpacing
			splitNext = true
		}
	}
	return items
}
