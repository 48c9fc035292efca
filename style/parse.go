package style

import (
	"fmt"
	"strings"
)

// ParseEdges parses a 1-4 value per-side shorthand in top/right/bottom/left
// order, with the usual mirroring for omitted sides.
func ParseEdges(input string) (Edges, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 || len(fields) > 4 {
		return Edges{}, fmt.Errorf("style: edge shorthand needs 1 to 4 values, got %d", len(fields))
	}
	vals := make([]Length, len(fields))
	for i, f := range fields {
		l, err := ParseLength(f)
		if err != nil {
			return Edges{}, err
		}
		vals[i] = l
	}
	switch len(vals) {
	case 1:
		return UniformEdges(vals[0]), nil
	case 2:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	default:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
}

// ParseBorderRadius parses a 1-4 value corner shorthand in
// top-left/top-right/bottom-right/bottom-left order.
func ParseBorderRadius(input string) (BorderRadius, error) {
	e, err := ParseEdges(input)
	if err != nil {
		return BorderRadius{}, err
	}
	return BorderRadius{
		TopLeft:     e.Top,
		TopRight:    e.Right,
		BottomRight: e.Bottom,
		BottomLeft:  e.Left,
	}, nil
}

// ParseDisplay parses a display keyword.
func ParseDisplay(input string) (Display, error) {
	switch strings.TrimSpace(lowerASCII(input)) {
	case "block":
		return DisplayBlock, nil
	case "inline":
		return DisplayInline, nil
	case "flex":
		return DisplayFlex, nil
	case "none":
		return DisplayNone, nil
	}
	return DisplayBlock, fmt.Errorf("style: unknown display %q", input)
}

// ParseTextAlign parses a text-align keyword.
func ParseTextAlign(input string) (TextAlign, error) {
	switch strings.TrimSpace(lowerASCII(input)) {
	case "start", "left":
		return TextAlignStart, nil
	case "center":
		return TextAlignCenter, nil
	case "end", "right":
		return TextAlignEnd, nil
	case "justify":
		return TextAlignJustify, nil
	}
	return TextAlignStart, fmt.Errorf("style: unknown text-align %q", input)
}

// ParseTextTransform parses a text-transform keyword.
func ParseTextTransform(input string) (TextTransform, error) {
	switch strings.TrimSpace(lowerASCII(input)) {
	case "none":
		return TextTransformNone, nil
	case "uppercase":
		return TextTransformUppercase, nil
	case "lowercase":
		return TextTransformLowercase, nil
	case "capitalize":
		return TextTransformCapitalize, nil
	}
	return TextTransformNone, fmt.Errorf("style: unknown text-transform %q", input)
}

// ParseTextWrap parses a text-wrap keyword.
func ParseTextWrap(input string) (TextWrapStyle, error) {
	switch strings.TrimSpace(lowerASCII(input)) {
	case "auto", "wrap":
		return TextWrapAuto, nil
	case "balance":
		return TextWrapBalance, nil
	case "pretty":
		return TextWrapPretty, nil
	}
	return TextWrapAuto, fmt.Errorf("style: unknown text-wrap %q", input)
}

// ParseWhiteSpace parses a white-space keyword.
func ParseWhiteSpace(input string) (WhiteSpace, error) {
	switch strings.TrimSpace(lowerASCII(input)) {
	case "normal":
		return WhiteSpaceNormal, nil
	case "nowrap":
		return WhiteSpaceNoWrap, nil
	case "pre":
		return WhiteSpacePre, nil
	case "pre-wrap":
		return WhiteSpacePreWrap, nil
	}
	return WhiteSpaceNormal, fmt.Errorf("style: unknown white-space %q", input)
}

// ParseObjectFit parses an object-fit keyword.
func ParseObjectFit(input string) (ObjectFit, error) {
	switch strings.TrimSpace(lowerASCII(input)) {
	case "fill":
		return ObjectFitFill, nil
	case "contain":
		return ObjectFitContain, nil
	case "cover":
		return ObjectFitCover, nil
	case "none":
		return ObjectFitNone, nil
	}
	return ObjectFitFill, fmt.Errorf("style: unknown object-fit %q", input)
}

// ParseBoxShadow parses a comma-separated list of shadows. Each shadow is
// "[inset] <x> <y> [blur [spread]] <color>"; the color may come first or
// last.
func ParseBoxShadow(input string) ([]BoxShadow, error) {
	if strings.TrimSpace(lowerASCII(input)) == "none" {
		return nil, nil
	}
	var out []BoxShadow
	for _, part := range splitShadows(input) {
		shadow, err := parseOneShadow(part)
		if err != nil {
			return nil, err
		}
		out = append(out, shadow)
	}
	return out, nil
}

// splitShadows splits on top-level commas, ignoring commas inside
// function notation such as rgb(...).
func splitShadows(input string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range input {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, input[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, input[start:])
}

func parseOneShadow(input string) (BoxShadow, error) {
	var s BoxShadow
	var lengths []Length
	hasColor := false

	for _, tok := range splitShadowTokens(input) {
		low := lowerASCII(tok)
		if low == "inset" {
			s.Inset = true
			continue
		}
		if l, err := ParseLength(tok); err == nil && !l.IsAuto() {
			lengths = append(lengths, l)
			continue
		}
		c, err := ParseColor(tok)
		if err != nil {
			return BoxShadow{}, fmt.Errorf("style: bad box-shadow component %q", tok)
		}
		if hasColor {
			return BoxShadow{}, fmt.Errorf("style: box-shadow has multiple colors")
		}
		s.Color = c
		hasColor = true
	}

	if len(lengths) < 2 || len(lengths) > 4 {
		return BoxShadow{}, fmt.Errorf("style: box-shadow needs 2 to 4 lengths, got %d", len(lengths))
	}
	s.OffsetX = lengths[0]
	s.OffsetY = lengths[1]
	if len(lengths) > 2 {
		s.BlurRadius = lengths[2]
	}
	if len(lengths) > 3 {
		s.Spread = lengths[3]
	}
	return s, nil
}

// splitShadowTokens splits on whitespace but keeps function notation
// (including its arguments) as a single token.
func splitShadowTokens(input string) []string {
	var toks []string
	depth := 0
	start := -1
	for i, r := range input {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case (r == ' ' || r == '\t') && depth == 0:
			if start >= 0 {
				toks = append(toks, input[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, input[start:])
	}
	return toks
}
