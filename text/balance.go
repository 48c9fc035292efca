package text

// Balance re-breaks the paragraph at the narrowest width that still fits in
// the line count of the current pass, evening out line lengths. The
// paragraph must already be broken against maxWidth.
func (p *Paragraph) Balance(maxWidth float32) {
	target := len(p.lines)
	if target <= 1 {
		return
	}

	// The widest unbreakable cluster bounds how narrow a line can get.
	var lo float32
	for i := range p.clusters {
		lo = max32(lo, p.clusters[i].advance)
	}
	hi := maxWidth
	best := maxWidth

	for i := 0; i < 16 && hi-lo > 0.5; i++ {
		mid := (lo + hi) / 2
		p.BreakAll(mid)
		if len(p.lines) <= target {
			best = mid
			hi = mid
		} else {
			lo = mid
		}
	}

	p.BreakAll(best)
}

// prettyLastLineRatio is the fraction of the paragraph width below which a
// last line is considered orphan-like.
const prettyLastLineRatio = 0.3

// Pretty re-breaks the paragraph at a slightly narrower width when the last
// line is very short, pulling a word down to avoid an orphan. Line count is
// preserved; when no narrower width helps, the original break is restored.
// The paragraph must already be broken against maxWidth.
func (p *Paragraph) Pretty(maxWidth float32) {
	target := len(p.lines)
	if target <= 1 {
		return
	}

	last := p.lines[target-1].Advance
	if last >= maxWidth*prettyLastLineRatio {
		return
	}

	bestWidth := maxWidth
	bestLast := last
	step := maxWidth * 0.025

	for w := maxWidth - step; w >= maxWidth*0.8; w -= step {
		p.BreakAll(w)
		if len(p.lines) != target {
			break
		}
		if adv := p.lines[len(p.lines)-1].Advance; adv > bestLast {
			bestLast = adv
			bestWidth = w
		}
	}

	p.BreakAll(bestWidth)
}
