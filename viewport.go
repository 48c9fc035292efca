package rasterly

// DefaultFontSize is the root font size in pixels used when none is given.
const DefaultFontSize float32 = 16.0

// DefaultLineHeightScale is the multiplier applied to the font size when a
// style declares no explicit line height.
const DefaultLineHeightScale float32 = 1.2

// Viewport describes the output surface a render targets. Width and Height
// are in device-independent pixels; a zero dimension means "unconstrained"
// and the corresponding axis is sized to content.
type Viewport struct {
	// Width of the viewport in pixels, 0 if unconstrained.
	Width int
	// Height of the viewport in pixels, 0 if unconstrained.
	Height int
	// FontSize is the root font size in pixels, used for rem units.
	FontSize float32
	// DevicePixelRatio scales absolute units to device pixels.
	DevicePixelRatio float32
}

// NewViewport creates a viewport with the default font size and a device
// pixel ratio of 1.
func NewViewport(width, height int) Viewport {
	return Viewport{
		Width:            width,
		Height:           height,
		FontSize:         DefaultFontSize,
		DevicePixelRatio: 1.0,
	}
}

// WithFontSize returns a copy of the viewport with the given root font size.
func (v Viewport) WithFontSize(size float32) Viewport {
	v.FontSize = size
	return v
}

// WithDevicePixelRatio returns a copy of the viewport with the given device
// pixel ratio.
func (v Viewport) WithDevicePixelRatio(dpr float32) Viewport {
	v.DevicePixelRatio = dpr
	return v
}

// DeviceWidth returns the viewport width in device pixels.
func (v Viewport) DeviceWidth() int {
	return int(float32(v.Width) * v.dpr())
}

// DeviceHeight returns the viewport height in device pixels.
func (v Viewport) DeviceHeight() int {
	return int(float32(v.Height) * v.dpr())
}

func (v Viewport) dpr() float32 {
	if v.DevicePixelRatio <= 0 {
		return 1.0
	}
	return v.DevicePixelRatio
}
