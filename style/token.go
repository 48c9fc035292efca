// Package style provides CSS-like value parsing and computed-value
// resolution: lengths with calc() expressions, colors, transforms, and the
// declared/inherited property sets consumed by the layout packages.
package style

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenType represents the type of a CSS value token.
type tokenType int

const (
	tokenEOF tokenType = iota
	tokenIdent
	tokenFunction // ident followed by '('
	tokenNumber
	tokenPercentage
	tokenDimension // number followed by a unit ident
	tokenHash      // '#' followed by hex digits
	tokenDelim
	tokenComma
	tokenCloseParen
)

// token represents a single CSS value token.
type token struct {
	typ   tokenType
	value string  // ident/function/hash text
	num   float32 // numeric value for number/percentage/dimension
	unit  string  // unit for dimension tokens
	delim rune    // delimiter character for delim tokens
	pos   int     // byte offset in the source
}

func (t token) String() string {
	switch t.typ {
	case tokenEOF:
		return "<eof>"
	case tokenIdent:
		return fmt.Sprintf("%q", t.value)
	case tokenFunction:
		return fmt.Sprintf("%s(", t.value)
	case tokenNumber:
		return fmt.Sprintf("%g", t.num)
	case tokenPercentage:
		return fmt.Sprintf("%g%%", t.num*100)
	case tokenDimension:
		return fmt.Sprintf("%g%s", t.num, t.unit)
	case tokenHash:
		return "#" + t.value
	case tokenComma:
		return ","
	case tokenCloseParen:
		return ")"
	default:
		return string(t.delim)
	}
}

// ParseError reports an unexpected token while parsing a CSS value. The
// declaration carrying the value must be treated as invalid as a whole;
// partially parsed values are never applied.
type ParseError struct {
	// Pos is the byte offset of the offending token.
	Pos int
	// Token is the printable form of the offending token.
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("style: unexpected token %s at offset %d", e.Token, e.Pos)
}

func unexpected(t token) error {
	return &ParseError{Pos: t.pos, Token: t.String()}
}

// tokenizer produces CSS value tokens from a string. It understands the
// subset of CSS Syntax Level 3 needed for property values: identifiers,
// functions, numbers, percentages, dimensions, hash colors and delimiters.
// Whitespace separates tokens and is never emitted.
type tokenizer struct {
	input string
	pos   int
	// peeked holds a lookahead token when valid is true.
	peeked token
	valid  bool
}

func newTokenizer(input string) *tokenizer {
	return &tokenizer{input: input}
}

// next returns the next token, consuming it.
func (tz *tokenizer) next() token {
	if tz.valid {
		tz.valid = false
		return tz.peeked
	}
	return tz.scan()
}

// peek returns the next token without consuming it.
func (tz *tokenizer) peek() token {
	if !tz.valid {
		tz.peeked = tz.scan()
		tz.valid = true
	}
	return tz.peeked
}

// tryDelim consumes the next token if it is the given delimiter.
func (tz *tokenizer) tryDelim(d rune) bool {
	t := tz.peek()
	if t.typ == tokenDelim && t.delim == d {
		tz.next()
		return true
	}
	return false
}

// expectCloseParen consumes a ')' or fails.
func (tz *tokenizer) expectCloseParen() error {
	t := tz.next()
	if t.typ != tokenCloseParen {
		return unexpected(t)
	}
	return nil
}

// expectComma consumes a ',' or fails.
func (tz *tokenizer) expectComma() error {
	t := tz.next()
	if t.typ != tokenComma {
		return unexpected(t)
	}
	return nil
}

// tryComma consumes a ',' if present.
func (tz *tokenizer) tryComma() bool {
	if tz.peek().typ == tokenComma {
		tz.next()
		return true
	}
	return false
}

// expectEOF fails unless the input is exhausted.
func (tz *tokenizer) expectEOF() error {
	t := tz.peek()
	if t.typ != tokenEOF {
		return unexpected(t)
	}
	return nil
}

func (tz *tokenizer) scan() token {
	tz.skipWhitespace()
	start := tz.pos
	r, size := tz.peekRune()

	switch {
	case r == 0:
		return token{typ: tokenEOF, pos: start}
	case r == ',':
		tz.pos += size
		return token{typ: tokenComma, pos: start}
	case r == ')':
		tz.pos += size
		return token{typ: tokenCloseParen, pos: start}
	case r == '#':
		tz.pos += size
		return token{typ: tokenHash, value: tz.consumeName(), pos: start}
	case tz.startsNumber():
		return tz.scanNumeric(start)
	case tz.startsIdent():
		name := tz.consumeName()
		if next, _ := tz.peekRune(); next == '(' {
			tz.pos++
			return token{typ: tokenFunction, value: name, pos: start}
		}
		return token{typ: tokenIdent, value: name, pos: start}
	default:
		tz.pos += size
		return token{typ: tokenDelim, delim: r, pos: start}
	}
}

// startsIdent reports whether the input at the current position begins an
// identifier. A lone '-' is a delimiter, not an identifier, so a '-' only
// starts an identifier when followed by another name-start code point.
func (tz *tokenizer) startsIdent() bool {
	r, size := tz.peekRune()
	if r != '-' {
		return isNameStart(r)
	}
	if tz.pos+size >= len(tz.input) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(tz.input[tz.pos+size:])
	return isNameStart(next)
}

// startsNumber reports whether the input at the current position begins a
// numeric token, per CSS Syntax §4.3.10. A leading sign or dot only counts
// when followed by a digit.
func (tz *tokenizer) startsNumber() bool {
	rest := tz.input[tz.pos:]
	if rest == "" {
		return false
	}
	i := 0
	if rest[0] == '+' || rest[0] == '-' {
		i++
	}
	if i < len(rest) && rest[i] == '.' {
		i++
	}
	return i < len(rest) && rest[i] >= '0' && rest[i] <= '9'
}

func (tz *tokenizer) scanNumeric(start int) token {
	num := tz.consumeNumber()
	r, _ := tz.peekRune()
	switch {
	case r == '%':
		tz.pos++
		return token{typ: tokenPercentage, num: num / 100, pos: start}
	case isNameStart(r):
		return token{typ: tokenDimension, num: num, unit: strings.ToLower(tz.consumeName()), pos: start}
	default:
		return token{typ: tokenNumber, num: num, pos: start}
	}
}

func (tz *tokenizer) consumeNumber() float32 {
	start := tz.pos
	if r, size := tz.peekRune(); r == '+' || r == '-' {
		tz.pos += size
	}
	tz.consumeDigits()
	if r, _ := tz.peekRune(); r == '.' {
		tz.pos++
		tz.consumeDigits()
	}
	if r, _ := tz.peekRune(); r == 'e' || r == 'E' {
		// Scientific notation: e[+-]?digits.
		mark := tz.pos
		tz.pos++
		if r, size := tz.peekRune(); r == '+' || r == '-' {
			tz.pos += size
		}
		if r, _ := tz.peekRune(); r < '0' || r > '9' {
			tz.pos = mark
		} else {
			tz.consumeDigits()
		}
	}
	var v float64
	fmt.Sscanf(tz.input[start:tz.pos], "%g", &v)
	return float32(v)
}

func (tz *tokenizer) consumeDigits() {
	for {
		r, size := tz.peekRune()
		if r < '0' || r > '9' {
			return
		}
		tz.pos += size
	}
}

func (tz *tokenizer) consumeName() string {
	start := tz.pos
	for {
		r, size := tz.peekRune()
		if !isName(r) {
			break
		}
		tz.pos += size
	}
	return tz.input[start:tz.pos]
}

func (tz *tokenizer) skipWhitespace() {
	for {
		r, size := tz.peekRune()
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' && r != '\f' {
			return
		}
		tz.pos += size
	}
}

// peekRune returns the rune at the current position without consuming it,
// or 0 at end of input.
func (tz *tokenizer) peekRune() (rune, int) {
	if tz.pos >= len(tz.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(tz.input[tz.pos:])
}

func isNameStart(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || r >= 0x80
}

func isName(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r)
}
