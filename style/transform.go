package style

import (
	"math"

	"github.com/rasterly/rasterly"
)

// Angle is a CSS angle stored in degrees.
type Angle float32

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float32 { return float32(a) }

// Radians returns the angle in radians.
func (a Angle) Radians() float32 {
	return float32(float64(a) * math.Pi / 180)
}

func parseAngle(tz *tokenizer) (Angle, error) {
	t := tz.next()
	switch t.typ {
	case tokenNumber:
		// Unitless zero, per CSS Transforms.
		if t.num == 0 {
			return 0, nil
		}
		return 0, unexpected(t)
	case tokenDimension:
		switch t.unit {
		case "deg":
			return Angle(t.num), nil
		case "rad":
			return Angle(float64(t.num) * 180 / math.Pi), nil
		case "grad":
			return Angle(t.num * 360 / 400), nil
		case "turn":
			return Angle(t.num * 360), nil
		}
		return 0, unexpected(t)
	default:
		return 0, unexpected(t)
	}
}

// TransformKind discriminates Transform operations.
type TransformKind uint8

const (
	TransformTranslate TransformKind = iota
	TransformScale
	TransformRotate
	TransformSkew
	TransformMatrix
)

// Transform is a single CSS transform operation.
type Transform struct {
	Kind TransformKind

	// X and Y are the translation offsets for Translate.
	X, Y Length
	// ScaleX and ScaleY are the factors for Scale.
	ScaleX, ScaleY float32
	// Angle is the rotation angle for Rotate.
	Angle Angle
	// SkewX and SkewY are the angles for Skew.
	SkewX, SkewY Angle
	// Matrix carries the raw values for Matrix.
	Matrix rasterly.Affine
}

// Translate returns a translation operation.
func Translate(x, y Length) Transform {
	return Transform{Kind: TransformTranslate, X: x, Y: y}
}

// Scale returns a scaling operation.
func Scale(x, y float32) Transform {
	return Transform{Kind: TransformScale, ScaleX: x, ScaleY: y}
}

// Rotate returns a rotation operation.
func Rotate(a Angle) Transform {
	return Transform{Kind: TransformRotate, Angle: a}
}

// Skew returns a skew operation.
func Skew(x, y Angle) Transform {
	return Transform{Kind: TransformSkew, SkewX: x, SkewY: y}
}

// Matrix returns a raw matrix operation.
func Matrix(m rasterly.Affine) Transform {
	return Transform{Kind: TransformMatrix, Matrix: m}
}

// Transforms is an ordered list of transform operations.
type Transforms []Transform

// IsEmpty reports whether no operations are declared.
func (ts Transforms) IsEmpty() bool { return len(ts) == 0 }

// ToAffine composes the operations into a single matrix. Operations are
// folded in reverse declaration order so that the first declared transform
// is applied to points last, matching CSS semantics under the row-vector
// convention.
func (ts Transforms) ToAffine(s *Sizing, boxWidth, boxHeight float32) rasterly.Affine {
	m := rasterly.Identity()
	for i := len(ts) - 1; i >= 0; i-- {
		t := ts[i]
		switch t.Kind {
		case TransformTranslate:
			m = m.Multiply(rasterly.Translation(
				t.X.ToPx(s, boxWidth),
				t.Y.ToPx(s, boxHeight),
			))
		case TransformScale:
			m = m.Multiply(rasterly.Scaling(t.ScaleX, t.ScaleY))
		case TransformRotate:
			m = m.Multiply(rasterly.Rotation(t.Angle.Radians()))
		case TransformSkew:
			m = m.Multiply(rasterly.Skewing(t.SkewX.Radians(), t.SkewY.Radians()))
		case TransformMatrix:
			m = m.Multiply(t.Matrix)
		}
	}
	return m
}

// ParseTransforms parses a CSS transform list: translate, translateX,
// translateY, scale, scaleX, scaleY, rotate, skew, skewX, skewY, matrix.
// The "none" keyword yields an empty list.
func ParseTransforms(input string) (Transforms, error) {
	tz := newTokenizer(input)

	if t := tz.peek(); t.typ == tokenIdent && caseInsensitiveEqual(t.value, "none") {
		tz.next()
		if err := tz.expectEOF(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var out Transforms
	for tz.peek().typ != tokenEOF {
		t, err := parseTransform(tz)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseTransform(tz *tokenizer) (Transform, error) {
	t := tz.next()
	if t.typ != tokenFunction {
		return Transform{}, unexpected(t)
	}

	finish := func(op Transform, err error) (Transform, error) {
		if err != nil {
			return Transform{}, err
		}
		if err := tz.expectCloseParen(); err != nil {
			return Transform{}, err
		}
		return op, nil
	}

	switch lowerASCII(t.value) {
	case "translate":
		x, err := parseLength(tz)
		if err != nil {
			return Transform{}, err
		}
		if err := tz.expectComma(); err != nil {
			return Transform{}, err
		}
		y, err := parseLength(tz)
		return finish(Translate(x, y), err)
	case "translatex":
		x, err := parseLength(tz)
		return finish(Translate(x, Zero()), err)
	case "translatey":
		y, err := parseLength(tz)
		return finish(Translate(Zero(), y), err)
	case "scale":
		x, err := parseScaleFactor(tz)
		if err != nil {
			return Transform{}, err
		}
		y := x
		if tz.tryComma() {
			y, err = parseScaleFactor(tz)
			if err != nil {
				return Transform{}, err
			}
		}
		return finish(Scale(x, y), nil)
	case "scalex":
		x, err := parseScaleFactor(tz)
		return finish(Scale(x, 1), err)
	case "scaley":
		y, err := parseScaleFactor(tz)
		return finish(Scale(1, y), err)
	case "rotate":
		a, err := parseAngle(tz)
		return finish(Rotate(a), err)
	case "skew":
		x, err := parseAngle(tz)
		if err != nil {
			return Transform{}, err
		}
		y := Angle(0)
		if tz.tryComma() {
			y, err = parseAngle(tz)
			if err != nil {
				return Transform{}, err
			}
		}
		return finish(Skew(x, y), nil)
	case "skewx":
		x, err := parseAngle(tz)
		return finish(Skew(x, 0), err)
	case "skewy":
		y, err := parseAngle(tz)
		return finish(Skew(0, y), err)
	case "matrix":
		var vals [6]float32
		for i := range vals {
			if i > 0 {
				tz.tryComma()
			}
			n := tz.next()
			if n.typ != tokenNumber {
				return Transform{}, unexpected(n)
			}
			vals[i] = n.num
		}
		m := rasterly.Affine{
			A: vals[0], B: vals[1], C: vals[2],
			D: vals[3], X: vals[4], Y: vals[5],
		}
		return finish(Matrix(m), nil)
	default:
		return Transform{}, unexpected(t)
	}
}

// parseScaleFactor accepts a number or a percentage (100% = 1).
func parseScaleFactor(tz *tokenizer) (float32, error) {
	t := tz.next()
	switch t.typ {
	case tokenNumber:
		return t.num, nil
	case tokenPercentage:
		return t.num, nil
	default:
		return 0, unexpected(t)
	}
}

// Filter is a single CSS filter operation. Only blur is supported.
type Filter struct {
	Blur Length
}

// ParseFilters parses a CSS filter list of blur() functions. The "none"
// keyword yields an empty list.
func ParseFilters(input string) ([]Filter, error) {
	tz := newTokenizer(input)

	if t := tz.peek(); t.typ == tokenIdent && caseInsensitiveEqual(t.value, "none") {
		tz.next()
		if err := tz.expectEOF(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var out []Filter
	for tz.peek().typ != tokenEOF {
		t := tz.next()
		if t.typ != tokenFunction || !caseInsensitiveEqual(t.value, "blur") {
			return nil, unexpected(t)
		}
		radius, err := parseLength(tz)
		if err != nil {
			return nil, err
		}
		if err := tz.expectCloseParen(); err != nil {
			return nil, err
		}
		out = append(out, Filter{Blur: radius})
	}
	return out, nil
}
