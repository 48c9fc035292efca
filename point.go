package rasterly

// Point represents a 2D point or vector.
type Point struct {
	X, Y float32
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the point scaled by s.
func (p Point) Scale(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}
