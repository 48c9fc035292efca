package text

import (
	"testing"
	"unicode"
)

// syntheticParagraph builds a paragraph without shaping: every letter is 10
// wide, every space 5, and lines are lineHeight tall. Good enough to test
// breaking in isolation from fonts.
func syntheticParagraph(s string, lineHeight float32) *Paragraph {
	spans := []Span{{Size: 10, LineHeight: lineHeight}}
	runes := []rune(s)
	clusters := make([]cluster, 0, len(runes))

	for i, r := range runes {
		c := cluster{span: 0, r: r, runeIndex: i, advance: 10}
		switch {
		case r == '\n':
			c.isNewline = true
			c.advance = 0
		case unicode.IsSpace(r):
			c.isSpace = true
			c.advance = 5
		}
		clusters = append(clusters, c)
	}
	for i := 1; i < len(clusters); i++ {
		if clusters[i].isNewline || clusters[i-1].isNewline {
			continue
		}
		if canBreakBetween(clusters[i-1].r, clusters[i].r) {
			clusters[i].breakBefore = breakSoft
		}
	}
	return &Paragraph{spans: spans, clusters: clusters, text: runes}
}

func lineTexts(p *Paragraph) []string {
	var out []string
	for _, line := range p.lines {
		var s []rune
		for i := line.start; i < line.end; i++ {
			c := p.clusters[i]
			if c.isNewline {
				continue
			}
			s = append(s, c.r)
		}
		out = append(out, string(s))
	}
	return out
}

func TestBreakAllSingleLine(t *testing.T) {
	p := syntheticParagraph("hello world", 12)
	p.BreakAll(1000)
	if len(p.Lines()) != 1 {
		t.Fatalf("got %d lines, want 1", len(p.Lines()))
	}
	// 10 letters + one space.
	if got := p.Lines()[0].Advance; got != 105 {
		t.Errorf("advance = %v, want 105", got)
	}
}

func TestBreakAtWordBoundary(t *testing.T) {
	p := syntheticParagraph("hello world", 12)
	p.BreakAll(60)
	got := lineTexts(p)
	want := []string{"hello ", "world"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("lines = %q, want %q", got, want)
	}
	// Trailing space does not count toward the advance.
	if p.Lines()[0].Advance != 50 {
		t.Errorf("line 0 advance = %v, want 50", p.Lines()[0].Advance)
	}
}

func TestCharacterFallbackForLongWords(t *testing.T) {
	p := syntheticParagraph("abcdefghij", 12)
	p.BreakAll(35)
	got := lineTexts(p)
	// 3 letters fit per 35px line.
	want := []string{"abc", "def", "ghi", "j"}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHardNewlines(t *testing.T) {
	p := syntheticParagraph("ab\ncd\n\nef", 12)
	p.BreakAll(1000)
	got := lineTexts(p)
	want := []string{"ab", "cd", "", "ef"}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	// Even the blank line has the span's line height.
	if p.Lines()[2].Height != 12 {
		t.Errorf("blank line height = %v, want 12", p.Lines()[2].Height)
	}
}

func TestMaxLinesTruncates(t *testing.T) {
	p := syntheticParagraph("aa bb cc dd ee", 10)
	p.Break(25, MaxLines(2))
	if got := len(p.Lines()); got != 2 {
		t.Fatalf("got %d lines, want 2", got)
	}
	got := lineTexts(p)
	if got[0] != "aa " || got[1] != "bb " {
		t.Errorf("lines = %q", got)
	}
}

func TestMaxHeightReverts(t *testing.T) {
	p := syntheticParagraph("aa bb cc dd ee", 10)
	// Each line is 10 tall; a cap of 25 admits two lines, and the third
	// break that crosses the cap is reverted.
	p.Break(25, MaxHeight(25))
	if got := len(p.Lines()); got != 2 {
		t.Fatalf("got %d lines, want 2", got)
	}
}

func TestMaxHeightExactFit(t *testing.T) {
	p := syntheticParagraph("aa bb", 10)
	p.Break(25, MaxHeight(20))
	if got := len(p.Lines()); got != 2 {
		t.Fatalf("got %d lines, want 2", got)
	}
}

func TestMaxHeightAndLines(t *testing.T) {
	p := syntheticParagraph("aa bb cc dd ee", 10)
	p.Break(25, MaxHeightAndLines(100, 3))
	if got := len(p.Lines()); got != 3 {
		t.Fatalf("got %d lines, want 3", got)
	}
}

func TestBreakerRevert(t *testing.T) {
	p := syntheticParagraph("aa bb cc", 10)
	b := p.BreakLines()
	if _, _, ok := b.BreakNext(25); !ok {
		t.Fatal("first break failed")
	}
	if _, _, ok := b.BreakNext(25); !ok {
		t.Fatal("second break failed")
	}
	b.Revert()
	b.Finish()
	if got := len(p.Lines()); got != 1 {
		t.Fatalf("got %d lines after revert, want 1", got)
	}
}

func TestBreakNextExhausted(t *testing.T) {
	p := syntheticParagraph("aa", 10)
	b := p.BreakLines()
	if _, _, ok := b.BreakNext(1000); !ok {
		t.Fatal("first break failed")
	}
	if _, _, ok := b.BreakNext(1000); ok {
		t.Error("expected exhaustion")
	}
	b.Finish()
}

func TestMeasure(t *testing.T) {
	p := syntheticParagraph("hello world", 12.5)
	p.BreakAll(60)
	w, h := p.Measure(60)
	if w != 50 {
		t.Errorf("width = %v, want 50", w)
	}
	// Two lines of 12.5, summed then rounded up.
	if h != 25 {
		t.Errorf("height = %v, want 25", h)
	}
}

func TestMeasureClampsToMaxWidth(t *testing.T) {
	p := syntheticParagraph("abcdefghij", 10)
	p.BreakAll(35)
	w, _ := p.Measure(35)
	if w > 35 {
		t.Errorf("width = %v, want <= 35", w)
	}
}

func TestAlign(t *testing.T) {
	p := syntheticParagraph("hello world", 12)
	p.BreakAll(60)

	p.Align(60, AlignCenter)
	if got := p.Lines()[0].Offset; got != 5 {
		t.Errorf("center offset = %v, want 5", got)
	}
	p.Align(60, AlignEnd)
	if got := p.Lines()[0].Offset; got != 10 {
		t.Errorf("end offset = %v, want 10", got)
	}
	p.Align(60, AlignStart)
	if got := p.Lines()[0].Offset; got != 0 {
		t.Errorf("start offset = %v, want 0", got)
	}
}

func TestAlignJustify(t *testing.T) {
	p := syntheticParagraph("aa bb cc dd", 10)
	p.BreakAll(50)
	p.Align(50, AlignJustify)

	lines := p.Lines()
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want >= 2", len(lines))
	}
	// Lines before the last stretch to fill; the last never does.
	first := lines[0]
	if first.WordSpacing <= 0 {
		t.Errorf("first line word spacing = %v, want > 0", first.WordSpacing)
	}
	if last := lines[len(lines)-1]; last.WordSpacing != 0 {
		t.Errorf("last line word spacing = %v, want 0", last.WordSpacing)
	}
}

func TestBalanceKeepsLineCount(t *testing.T) {
	p := syntheticParagraph("one two three four five six seven", 10)
	p.BreakAll(200)
	before := len(p.Lines())
	if before < 2 {
		t.Fatalf("fixture should wrap, got %d lines", before)
	}

	spread := func() float32 {
		lines := p.Lines()
		lo, hi := lines[0].Advance, lines[0].Advance
		for _, l := range lines {
			if l.Advance < lo {
				lo = l.Advance
			}
			if l.Advance > hi {
				hi = l.Advance
			}
		}
		return hi - lo
	}
	beforeSpread := spread()

	p.Balance(200)
	if got := len(p.Lines()); got != before {
		t.Fatalf("balance changed line count: %d -> %d", before, got)
	}
	if got := spread(); got > beforeSpread {
		t.Errorf("balance increased spread: %v -> %v", beforeSpread, got)
	}
}

func TestPrettyAvoidsShortLastLine(t *testing.T) {
	// At width 185 the last line holds a single short word.
	p := syntheticParagraph("aaaa bbbb cccc dddd ee", 10)
	p.BreakAll(185)
	lines := len(p.Lines())
	if lines < 2 {
		t.Fatalf("fixture should wrap, got %d lines", lines)
	}
	shortBefore := p.Lines()[lines-1].Advance

	p.Pretty(185)
	if got := len(p.Lines()); got != lines {
		t.Fatalf("pretty changed line count: %d -> %d", lines, got)
	}
	if got := p.Lines()[len(p.Lines())-1].Advance; got < shortBefore {
		t.Errorf("pretty shortened the last line: %v -> %v", shortBefore, got)
	}
}
