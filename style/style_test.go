package style

import (
	"testing"

	"github.com/rasterly/rasterly"
)

func TestInheritDefaults(t *testing.T) {
	vp := rasterly.NewViewport(200, 100).WithFontSize(16)
	in := DefaultInherited(vp)
	if in.Color != rasterly.Black || in.FontSize != 16 || in.FontWeight != 400 {
		t.Errorf("defaults = %+v", in)
	}
}

func TestInheritOverrides(t *testing.T) {
	vp := rasterly.NewViewport(200, 100).WithFontSize(16).WithDevicePixelRatio(1)
	s := NewSizing(vp)
	parent := DefaultInherited(vp)

	decl := &Style{
		Color:     NewColor(rasterly.RGB(255, 0, 0)),
		FontSize:  Em(2),
		TextAlign: TextAlignCenter,
	}
	out := decl.Inherit(parent, s)

	if out.Color != rasterly.RGB(255, 0, 0) {
		t.Errorf("color = %v", out.Color)
	}
	// 2em of the parent's 16px.
	if out.FontSize != 32 {
		t.Errorf("font size = %v, want 32", out.FontSize)
	}
	if out.TextAlign != TextAlignCenter {
		t.Errorf("text align = %v", out.TextAlign)
	}
	// Unset properties pass through.
	if out.FontWeight != 400 || out.WhiteSpace != WhiteSpaceNormal {
		t.Errorf("passthrough = %+v", out)
	}
}

func TestInheritCurrentColor(t *testing.T) {
	vp := rasterly.NewViewport(200, 100)
	s := NewSizing(vp)
	parent := DefaultInherited(vp)
	parent.Color = rasterly.RGB(0, 0, 255)

	decl := &Style{Color: CurrentColor()}
	out := decl.Inherit(parent, s)
	if out.Color != parent.Color {
		t.Errorf("currentcolor = %v, want parent %v", out.Color, parent.Color)
	}
}

func TestLineHeightPx(t *testing.T) {
	vp := rasterly.NewViewport(200, 100).WithFontSize(16).WithDevicePixelRatio(1)
	s := NewSizing(vp)

	in := DefaultInherited(vp)
	if got := in.LineHeightPx(s); !approxEqual(got, 16*rasterly.DefaultLineHeightScale) {
		t.Errorf("default line height = %v", got)
	}

	in.LineHeight = Px(24)
	if got := in.LineHeightPx(s); got != 24 {
		t.Errorf("px line height = %v, want 24", got)
	}

	in.LineHeight = Em(1.5)
	in.FontSize = 20
	if got := in.LineHeightPx(s); !approxEqual(got, 30) {
		t.Errorf("em line height = %v, want 30", got)
	}
}

func TestWhiteSpaceModes(t *testing.T) {
	tests := []struct {
		ws        WhiteSpace
		collapses bool
		wraps     bool
	}{
		{WhiteSpaceNormal, true, true},
		{WhiteSpaceNoWrap, true, false},
		{WhiteSpacePre, false, false},
		{WhiteSpacePreWrap, false, true},
	}
	for _, tt := range tests {
		if tt.ws.Collapses() != tt.collapses || tt.ws.Wraps() != tt.wraps {
			t.Errorf("%v: collapses=%v wraps=%v", tt.ws, tt.ws.Collapses(), tt.ws.Wraps())
		}
	}
}

func TestDisplayBlockify(t *testing.T) {
	if !DisplayFlex.BlockifiesChildren() {
		t.Error("flex should blockify children")
	}
	if DisplayBlock.BlockifiesChildren() {
		t.Error("block should not blockify children")
	}
	if !DisplayInline.IsInline() {
		t.Error("inline should be inline")
	}
}

func TestResolvedOpacity(t *testing.T) {
	s := &Style{}
	if s.ResolvedOpacity() != 1 {
		t.Error("unset opacity should be 1")
	}
	s.Opacity = 0.5
	if s.ResolvedOpacity() != 0.5 {
		t.Error("declared opacity should pass through")
	}
	s.Opacity = 3
	if s.ResolvedOpacity() != 1 {
		t.Error("opacity should clamp to 1")
	}
}

func TestLineClamp(t *testing.T) {
	if (LineClamp{}).IsConstrained() {
		t.Error("zero clamp should be unconstrained")
	}
	if !(LineClamp{MaxLines: 2}).IsConstrained() {
		t.Error("line cap should constrain")
	}
	if !(LineClamp{MaxHeight: Px(40)}).IsConstrained() {
		t.Error("height cap should constrain")
	}
}
