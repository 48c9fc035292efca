package text

// Alignment positions line contents within the paragraph width.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignJustify
)

// Align positions every committed line within maxWidth. Justify distributes
// the remaining space across the spaces of every line except the last and
// any line ended by a hard break.
func (p *Paragraph) Align(maxWidth float32, a Alignment) {
	for i := range p.lines {
		line := &p.lines[i]
		line.Offset = 0
		line.WordSpacing = 0

		free := maxWidth - line.Advance
		if free <= 0 {
			continue
		}

		switch a {
		case AlignCenter:
			line.Offset = free / 2
		case AlignEnd:
			line.Offset = free
		case AlignJustify:
			if i == len(p.lines)-1 || line.hard {
				continue
			}
			if n := p.spaceCount(line); n > 0 {
				line.WordSpacing = free / float32(n)
			}
		}
	}
}

// spaceCount counts the justifiable spaces of a line, excluding trailing
// whitespace.
func (p *Paragraph) spaceCount(line *Line) int {
	end := line.end
	for end > line.start && (p.clusters[end-1].isSpace || p.clusters[end-1].isNewline) {
		end--
	}
	n := 0
	for i := line.start; i < end; i++ {
		if p.clusters[i].isSpace {
			n++
		}
	}
	return n
}
