package rasterly

import "testing"

func TestPixmapSetGetPixel(t *testing.T) {
	pm := NewPixmap(4, 3)
	c := RGBA{R: 10, G: 20, B: 30, A: 255}
	pm.SetPixel(2, 1, c)

	if got := pm.GetPixel(2, 1); got != c {
		t.Errorf("GetPixel(2,1) = %+v, want %+v", got, c)
	}
	if got := pm.GetPixel(0, 0); got != Transparent {
		t.Errorf("GetPixel(0,0) = %+v, want transparent", got)
	}
}

func TestPixmapOutOfBounds(t *testing.T) {
	pm := NewPixmap(2, 2)
	// Writes outside the buffer must be ignored, reads return transparent.
	pm.SetPixel(-1, 0, White)
	pm.SetPixel(2, 0, White)
	pm.SetPixel(0, 2, White)
	if got := pm.GetPixel(-1, 0); got != Transparent {
		t.Errorf("GetPixel(-1,0) = %+v, want transparent", got)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := pm.GetPixel(x, y); got != Transparent {
				t.Errorf("GetPixel(%d,%d) = %+v after OOB writes, want transparent", x, y, got)
			}
		}
	}
}

func TestPixmapZeroDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {-3, 4}} {
		pm := NewPixmap(dims[0], dims[1])
		if len(pm.Data()) != 0 {
			t.Errorf("NewPixmap(%d,%d) data length = %d, want 0", dims[0], dims[1], len(pm.Data()))
		}
	}
}

func TestPixmapFill(t *testing.T) {
	pm := NewPixmap(3, 3)
	c := RGB(200, 100, 50)
	pm.Fill(c)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := pm.GetPixel(x, y); got != c {
				t.Errorf("GetPixel(%d,%d) = %+v, want %+v", x, y, got, c)
			}
		}
	}
}

func TestPixmapBlendPixel(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.SetPixel(0, 0, White)
	pm.BlendPixel(0, 0, RGBA{R: 0, G: 0, B: 0, A: 128})
	got := pm.GetPixel(0, 0)
	if got.A != 255 {
		t.Errorf("blended alpha = %d, want 255", got.A)
	}
	if got.R < 120 || got.R > 135 {
		t.Errorf("blended red = %d, want ≈127", got.R)
	}
}

func TestPixmapImageSharesBuffer(t *testing.T) {
	pm := NewPixmap(2, 2)
	img := pm.Image()
	pm.SetPixel(1, 1, RGB(9, 8, 7))
	i := img.PixOffset(1, 1)
	if img.Pix[i] != 9 || img.Pix[i+1] != 8 || img.Pix[i+2] != 7 {
		t.Error("Image() does not share the pixel buffer")
	}
}
