package rasterly

import (
	"image/color"
	"testing"
)

func TestOverOpaqueAndTransparent(t *testing.T) {
	dst := RGB(10, 20, 30)
	if got := White.Over(dst); got != White {
		t.Errorf("opaque over = %+v, want source", got)
	}
	if got := Transparent.Over(dst); got != dst {
		t.Errorf("transparent over = %+v, want destination", got)
	}
}

func TestOverHalfAlpha(t *testing.T) {
	src := RGBA{R: 255, G: 0, B: 0, A: 128}
	dst := RGB(0, 0, 255)
	got := src.Over(dst)
	if got.A != 255 {
		t.Errorf("alpha = %d, want 255", got.A)
	}
	if got.R < 120 || got.R > 135 || got.B < 120 || got.B > 135 {
		t.Errorf("blend = %+v, want ≈half red half blue", got)
	}
}

func TestColorRoundTrip(t *testing.T) {
	tests := []RGBA{
		Black,
		White,
		{R: 12, G: 34, B: 56, A: 78},
	}
	for _, c := range tests {
		if got := FromColor(c.Color()); got != c {
			t.Errorf("FromColor(Color()) = %+v, want %+v", got, c)
		}
	}
}

func TestFromColorStandard(t *testing.T) {
	got := FromColor(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	want := RGB(1, 2, 3)
	if got != want {
		t.Errorf("FromColor = %+v, want %+v", got, want)
	}
}
