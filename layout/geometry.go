package layout

// Size is a width/height pair in device pixels.
type Size struct {
	Width  float32
	Height float32
}

// Rect is an axis-aligned rectangle in device pixels.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Inset shrinks the rectangle by per-side amounts.
func (r Rect) Inset(top, right, bottom, left float32) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  max32(0, r.Width-left-right),
		Height: max32(0, r.Height-top-bottom),
	}
}

type availKind uint8

const (
	availDefinite availKind = iota
	availMinContent
	availMaxContent
)

// Avail is the space offered to a node along one axis: a definite amount,
// or a min-content / max-content sizing request.
type Avail struct {
	kind  availKind
	value float32
}

// Definite offers a fixed amount of space.
func Definite(v float32) Avail { return Avail{kind: availDefinite, value: v} }

// MinContent requests the smallest size the content can take.
func MinContent() Avail { return Avail{kind: availMinContent} }

// MaxContent requests the size the content takes with no wrapping.
func MaxContent() Avail { return Avail{kind: availMaxContent} }

// Definite returns the offered amount when the space is definite.
func (a Avail) Definite() (float32, bool) {
	return a.value, a.kind == availDefinite
}

// IsMinContent reports whether this is a min-content request.
func (a Avail) IsMinContent() bool { return a.kind == availMinContent }

// AvailSize is the two-axis available space.
type AvailSize struct {
	Width  Avail
	Height Avail
}

// KnownSize carries dimensions already fixed by the caller, if any.
type KnownSize struct {
	Width     float32
	Height    float32
	HasWidth  bool
	HasHeight bool
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
