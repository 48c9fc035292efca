package text

import (
	"testing"

	"github.com/rasterly/rasterly"
)

func TestBuilderPanicsWithoutSpan(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for PushText without a span")
		}
	}()
	b := NewParagraphBuilder(NewShaper())
	b.PushText("hello")
}

func TestBuilderPanicsOnUnbalancedPop(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unmatched PopSpan")
		}
	}()
	b := NewParagraphBuilder(NewShaper())
	b.PopSpan()
}

func TestBuilderEmpty(t *testing.T) {
	b := NewParagraphBuilder(NewShaper())
	p := b.Build()
	if !p.IsEmpty() {
		t.Error("empty builder should build an empty paragraph")
	}
	p.BreakAll(100)
	if len(p.Lines()) != 0 {
		t.Errorf("empty paragraph has %d lines", len(p.Lines()))
	}
}

func TestBuilderShapesText(t *testing.T) {
	b := NewParagraphBuilder(NewShaper())
	b.PushSpan(Span{
		Source:     DefaultSource(),
		Size:       16,
		LineHeight: 20,
		Color:      rasterly.Black,
	})
	b.PushText("Hello, world")
	b.PopSpan()
	p := b.Build()

	if p.IsEmpty() {
		t.Fatal("paragraph should have content")
	}
	p.BreakAll(10000)
	if got := len(p.Lines()); got != 1 {
		t.Fatalf("got %d lines, want 1", got)
	}
	if p.Lines()[0].Advance <= 0 {
		t.Error("shaped line should have positive advance")
	}
	if p.Lines()[0].Height != 20 {
		t.Errorf("line height = %v, want 20", p.Lines()[0].Height)
	}

	items := p.LineItems(0)
	if len(items) == 0 {
		t.Fatal("no line items")
	}
	for _, it := range items {
		if it.Box != nil {
			t.Error("unexpected box item")
		}
		if len(it.Glyphs) == 0 {
			t.Error("text item with no glyphs")
		}
	}
}

func TestBuilderInlineBox(t *testing.T) {
	b := NewParagraphBuilder(NewShaper())
	b.PushSpan(Span{Source: DefaultSource(), Size: 16, LineHeight: 18})
	b.PushText("a")
	b.PushInlineBox(Box{ID: 7, Width: 30, Height: 40})
	b.PushText("b")
	b.PopSpan()
	p := b.Build()

	p.BreakAll(10000)
	if got := len(p.Lines()); got != 1 {
		t.Fatalf("got %d lines, want 1", got)
	}
	// The box is taller than the text line height.
	if p.Lines()[0].Height != 40 {
		t.Errorf("line height = %v, want 40", p.Lines()[0].Height)
	}

	var box *Box
	for _, it := range p.LineItems(0) {
		if it.Box != nil {
			box = it.Box
		}
	}
	if box == nil || box.ID != 7 || box.Width != 30 {
		t.Errorf("box item = %+v", box)
	}
}

func TestBuilderHardBreaks(t *testing.T) {
	b := NewParagraphBuilder(NewShaper())
	b.PushSpan(Span{Source: DefaultSource(), Size: 16, LineHeight: 18})
	b.PushText("one\ntwo")
	b.PopSpan()
	p := b.Build()

	p.BreakAll(10000)
	if got := len(p.Lines()); got != 2 {
		t.Fatalf("got %d lines, want 2", got)
	}
}

func TestBuilderNestedSpans(t *testing.T) {
	red := rasterly.RGB(255, 0, 0)
	b := NewParagraphBuilder(NewShaper())
	b.PushSpan(Span{Source: DefaultSource(), Size: 16, LineHeight: 18, Color: rasterly.Black})
	b.PushText("black ")
	b.PushSpan(Span{Source: DefaultSource(), Size: 16, LineHeight: 18, Color: red})
	b.PushText("red")
	b.PopSpan()
	b.PushText(" black")
	b.PopSpan()
	p := b.Build()

	if got := len(p.Spans()); got != 2 {
		t.Fatalf("got %d spans, want 2", got)
	}
	p.BreakAll(10000)

	items := p.LineItems(0)
	if len(items) < 3 {
		t.Fatalf("got %d items, want >= 3", len(items))
	}
	if c := p.Spans()[items[1].Span].Color; c != red {
		t.Errorf("middle item color = %v, want %v", c, red)
	}
}

func TestShape(t *testing.T) {
	s := NewShaper()
	glyphs := s.Shape("Affine", DefaultSource(), 16, 0)
	if len(glyphs) == 0 {
		t.Fatal("no glyphs")
	}
	var advance float32
	for _, g := range glyphs {
		advance += g.Advance
	}
	if advance <= 0 {
		t.Error("total advance should be positive")
	}

	if got := s.Shape("", DefaultSource(), 16, 0); got != nil {
		t.Error("empty text should shape to nil")
	}
	if got := s.Shape("a", nil, 16, 0); got != nil {
		t.Error("nil source should shape to nil")
	}
}

func TestShapeLetterSpacing(t *testing.T) {
	s := NewShaper()
	plain := s.Shape("abc", DefaultSource(), 16, 0)
	spaced := s.Shape("abc", DefaultSource(), 16, 2)
	if len(plain) != len(spaced) {
		t.Fatalf("glyph counts differ: %d vs %d", len(plain), len(spaced))
	}
	var a, b float32
	for i := range plain {
		a += plain[i].Advance
		b += spaced[i].Advance
	}
	want := a + 2*float32(len(plain))
	if b < want-0.01 || b > want+0.01 {
		t.Errorf("spaced advance = %v, want %v", b, want)
	}
}
