// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import "math"

// Breaker performs greedy first-fit line breaking over a paragraph's
// clusters. Lines are accumulated by repeated BreakNext calls; the last
// broken line can be taken back with Revert; Finish commits the result to
// the paragraph. Content not covered by any committed line is truncated.
type Breaker struct {
	p     *Paragraph
	pos   int
	lines []Line
}

// BreakLines starts a fresh breaking pass, discarding any previous lines.
func (p *Paragraph) BreakLines() *Breaker {
	p.lines = nil
	return &Breaker{p: p}
}

// BreakNext breaks the next line against maxWidth and returns its advance
// and height. ok is false when no content remains.
func (p *Breaker) BreakNext(maxWidth float32) (advance, height float32, ok bool) {
	clusters := p.p.clusters
	if p.pos >= len(clusters) {
		return 0, 0, false
	}

	start := p.pos
	end := len(clusters)
	hard := false
	var width float32
	lastBreak := -1

	for i := start; i < len(clusters); i++ {
		c := &clusters[i]

		// A newline terminates the line and is consumed with it.
		if c.isNewline {
			end = i + 1
			hard = true
			break
		}

		if c.breakBefore == breakSoft {
			lastBreak = i
		}

		// Trailing whitespace hangs: it never forces a wrap.
		if !c.isSpace && width+c.advance > maxWidth && i > start {
			if lastBreak > start {
				end = lastBreak
			} else {
				// No opportunity fits; fall back to a character break.
				end = i
			}
			break
		}

		width += c.advance
	}

	line := Line{start: start, end: end, hard: hard}
	line.Advance = p.p.lineAdvance(start, end)
	line.Height = p.p.lineHeight(start, end)

	p.lines = append(p.lines, line)

	// The next line starts after any soft-wrap whitespace.
	p.pos = end
	if !hard {
		for p.pos < len(clusters) && clusters[p.pos].isSpace && !clusters[p.pos].isNewline {
			p.pos++
		}
	}

	return line.Advance, line.Height, true
}

// Revert takes back the most recently broken line. Its content is left
// uncommitted and will be truncated by Finish.
func (p *Breaker) Revert() {
	if len(p.lines) == 0 {
		return
	}
	p.lines = p.lines[:len(p.lines)-1]
}

// Finish commits the broken lines to the paragraph.
func (p *Breaker) Finish() {
	p.p.lines = p.lines
}

// lineAdvance sums cluster advances over [start, end), excluding trailing
// whitespace.
func (p *Paragraph) lineAdvance(start, end int) float32 {
	for end > start && (p.clusters[end-1].isSpace || p.clusters[end-1].isNewline) {
		end--
	}
	var w float32
	for i := start; i < end; i++ {
		w += p.clusters[i].advance
	}
	return w
}

// lineHeight is the tallest contribution over [start, end): span line
// heights for text and box heights for inline boxes.
func (p *Paragraph) lineHeight(start, end int) float32 {
	var h float32
	for i := start; i < end; i++ {
		c := &p.clusters[i]
		if c.span == -1 {
			h = max32(h, p.boxes[c.box].Height)
		} else {
			h = max32(h, p.spans[c.span].LineHeight)
		}
	}
	return h
}

// HeightConstraint bounds how many lines a breaking pass may produce, by
// line count, by summed line height, or both. The zero value is unbounded.
type HeightConstraint struct {
	// MaxLines caps the number of lines; 0 means no cap.
	MaxLines int
	// MaxHeight caps the summed line heights; 0 means no cap. When the
	// line that crosses the cap has been broken, it is reverted, so the
	// committed lines always fit.
	MaxHeight float32

	hasHeight bool
}

// Unbounded returns a constraint with no limits.
func Unbounded() HeightConstraint { return HeightConstraint{} }

// MaxLines caps the number of lines.
func MaxLines(n int) HeightConstraint {
	return HeightConstraint{MaxLines: n}
}

// MaxHeight caps the summed line heights in pixels.
func MaxHeight(h float32) HeightConstraint {
	return HeightConstraint{MaxHeight: h, hasHeight: true}
}

// MaxHeightAndLines caps both the summed line heights and the line count.
func MaxHeightAndLines(h float32, n int) HeightConstraint {
	return HeightConstraint{MaxHeight: h, MaxLines: n, hasHeight: true}
}

// IsUnbounded reports whether the constraint imposes no limit.
func (hc HeightConstraint) IsUnbounded() bool {
	return hc.MaxLines == 0 && !hc.hasHeight
}

// BreakAll breaks every line against maxWidth with no height limit.
func (p *Paragraph) BreakAll(maxWidth float32) {
	p.Break(maxWidth, Unbounded())
}

// Break runs a full breaking pass against maxWidth under a height
// constraint. Content beyond the constraint is truncated.
func (p *Paragraph) Break(maxWidth float32, hc HeightConstraint) {
	b := p.BreakLines()

	switch {
	case hc.IsUnbounded():
		for {
			if _, _, ok := b.BreakNext(maxWidth); !ok {
				break
			}
		}
	case hc.MaxLines > 0 && !hc.hasHeight:
		for i := 0; i < hc.MaxLines; i++ {
			if _, _, ok := b.BreakNext(maxWidth); !ok {
				break
			}
		}
	default:
		var total float32
		count := 0
		for total < hc.MaxHeight {
			if hc.MaxLines > 0 && count >= hc.MaxLines {
				break
			}
			_, h, ok := b.BreakNext(maxWidth)
			if !ok {
				break
			}
			count++
			total += h
		}
		if total > hc.MaxHeight {
			b.Revert()
		}
	}

	b.Finish()
}

// Measure returns the paragraph's content size from the committed lines:
// the widest line advance rounded up and clamped to maxWidth, and the sum
// of line heights rounded up.
func (p *Paragraph) Measure(maxWidth float32) (width, height float32) {
	var maxAdvance, total float32
	for _, line := range p.lines {
		maxAdvance = max32(maxAdvance, line.Advance)
		total += line.Height
	}
	width = float32(math.Ceil(float64(maxAdvance)))
	if width > maxWidth {
		width = maxWidth
	}
	return width, float32(math.Ceil(float64(total)))
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
