package text

// breakClass is a simplified UAX #14 line breaking class.
type breakClass uint8

const (
	breakOther breakClass = iota
	breakSpace
	breakZero
	breakOpen
	breakClose
	breakHyphen
	breakIdeographic
	breakObject // inline box placeholder
)

func classifyRune(r rune) breakClass {
	switch r {
	case ' ', '\t':
		return breakSpace
	case '​':
		return breakZero
	case objectReplacement:
		return breakObject
	case '(', '[', '{', '“', '‘':
		return breakOpen
	case ')', ']', '}', '”', '’':
		return breakClose
	case '-', '‐', '‑', '–', '—':
		return breakHyphen
	}
	if isCJKRune(r) {
		return breakIdeographic
	}
	return breakOther
}

func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Extension B
		(r >= 0x3040 && r <= 0x309F) || // Hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // Katakana
		(r >= 0xAC00 && r <= 0xD7AF) || // Hangul Syllables
		(r >= 0xFF00 && r <= 0xFFEF) // Fullwidth forms
}

// objectReplacement stands in for an inline box in the paragraph's rune
// sequence, so breaking rules see boxes as ideograph-like objects.
const objectReplacement = '￼'

// canBreakBetween reports whether a soft break is allowed between prev and
// curr.
func canBreakBetween(prev, curr rune) bool {
	prevClass := classifyRune(prev)
	currClass := classifyRune(curr)

	// No break before closing or after opening punctuation.
	if currClass == breakClose {
		return false
	}
	if prevClass == breakOpen {
		return false
	}

	// Break after spaces, zero-width spaces, and hyphen runs.
	if prevClass == breakSpace || prevClass == breakZero {
		return true
	}
	if prevClass == breakHyphen && currClass != breakHyphen {
		return true
	}

	// CJK ideographs and inline boxes break on both sides.
	if currClass == breakIdeographic || currClass == breakObject {
		return true
	}
	if (prevClass == breakIdeographic || prevClass == breakObject) && currClass != breakClose {
		return true
	}

	return false
}
