package rasterly

import "testing"

func TestNewViewportDefaults(t *testing.T) {
	v := NewViewport(800, 600)
	if v.Width != 800 || v.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", v.Width, v.Height)
	}
	if v.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %v, want %v", v.FontSize, DefaultFontSize)
	}
	if v.DevicePixelRatio != 1.0 {
		t.Errorf("DevicePixelRatio = %v, want 1.0", v.DevicePixelRatio)
	}
}

func TestViewportDeviceDimensions(t *testing.T) {
	v := NewViewport(100, 50).WithDevicePixelRatio(2)
	if v.DeviceWidth() != 200 || v.DeviceHeight() != 100 {
		t.Errorf("device dims = %dx%d, want 200x100", v.DeviceWidth(), v.DeviceHeight())
	}

	// Non-positive DPR falls back to 1.
	v.DevicePixelRatio = 0
	if v.DeviceWidth() != 100 {
		t.Errorf("DeviceWidth with zero DPR = %d, want 100", v.DeviceWidth())
	}
}

func TestViewportWithFontSize(t *testing.T) {
	v := NewViewport(0, 0).WithFontSize(20)
	if v.FontSize != 20 {
		t.Errorf("FontSize = %v, want 20", v.FontSize)
	}
	// Zero dimensions mean unconstrained axes.
	if v.Width != 0 || v.Height != 0 {
		t.Errorf("unconstrained viewport dims = %dx%d, want 0x0", v.Width, v.Height)
	}
}
