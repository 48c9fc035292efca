// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

package style

import (
	"sync"
	"sync/atomic"
)

// calcZeroEpsilon is the collapse threshold: a resolved calc() whose px or
// percent coefficient is within this of zero is folded into a plain length
// or percentage.
const calcZeroEpsilon = 1e-6

// CalcFormula is the symbolic form of a calc() expression before sizing is
// known: one additive coefficient per unit. Addition, subtraction, negation
// and scalar multiplication operate coefficient-wise; no other operators
// survive parsing.
type CalcFormula struct {
	Px      float32
	Percent float32 // fraction, 1.0 == 100%
	Rem     float32
	Em      float32
	Vh      float32
	Vw      float32
	Cm      float32
	Mm      float32
	In      float32
	Q       float32
	Pt      float32
	Pc      float32
}

// Neg returns the formula with every coefficient negated.
func (f CalcFormula) Neg() CalcFormula {
	return f.Scale(-1)
}

// Add returns the coefficient-wise sum of two formulas.
func (f CalcFormula) Add(rhs CalcFormula) CalcFormula {
	return CalcFormula{
		Px:      f.Px + rhs.Px,
		Percent: f.Percent + rhs.Percent,
		Rem:     f.Rem + rhs.Rem,
		Em:      f.Em + rhs.Em,
		Vh:      f.Vh + rhs.Vh,
		Vw:      f.Vw + rhs.Vw,
		Cm:      f.Cm + rhs.Cm,
		Mm:      f.Mm + rhs.Mm,
		In:      f.In + rhs.In,
		Q:       f.Q + rhs.Q,
		Pt:      f.Pt + rhs.Pt,
		Pc:      f.Pc + rhs.Pc,
	}
}

// Sub returns the coefficient-wise difference of two formulas.
func (f CalcFormula) Sub(rhs CalcFormula) CalcFormula {
	return f.Add(rhs.Neg())
}

// Scale returns the formula with every coefficient multiplied by factor.
func (f CalcFormula) Scale(factor float32) CalcFormula {
	return CalcFormula{
		Px:      f.Px * factor,
		Percent: f.Percent * factor,
		Rem:     f.Rem * factor,
		Em:      f.Em * factor,
		Vh:      f.Vh * factor,
		Vw:      f.Vw * factor,
		Cm:      f.Cm * factor,
		Mm:      f.Mm * factor,
		In:      f.In * factor,
		Q:       f.Q * factor,
		Pt:      f.Pt * factor,
		Pc:      f.Pc * factor,
	}
}

// Resolve folds every unit coefficient except percentage into a single
// device-pixel coefficient using the sizing context. Device-pixel-ratio is
// applied to absolute units and rem, but not to em or viewport units, which
// are already expressed in device pixels by their definitions here.
func (f CalcFormula) Resolve(s *Sizing) CalcLinear {
	vp := s.Viewport
	dpr := vp.DevicePixelRatio
	return CalcLinear{
		Px: f.Px*dpr +
			f.Rem*vp.FontSize*dpr +
			f.Em*s.FontSize +
			f.Vh*float32(vp.Height)/100 +
			f.Vw*float32(vp.Width)/100 +
			f.Cm*pxPerCm*dpr +
			f.Mm*pxPerMm*dpr +
			f.In*pxPerIn*dpr +
			f.Q*pxPerQ*dpr +
			f.Pt*pxPerPt*dpr +
			f.Pc*pxPerPc*dpr,
		Percent: f.Percent,
	}
}

// CalcLinear is the fully-resolved two-term form of a calc() expression:
// px + percent*basis.
type CalcLinear struct {
	Px      float32
	Percent float32
}

// Neg returns the linear form with both terms negated.
func (l CalcLinear) Neg() CalcLinear {
	return CalcLinear{Px: -l.Px, Percent: -l.Percent}
}

// Resolve evaluates the linear form against a percentage basis.
func (l CalcLinear) Resolve(basis float32) float32 {
	return l.Px + l.Percent*basis
}

// arenaGeneration stamps each arena so refs cannot be resolved against a
// foreign arena.
var arenaGeneration atomic.Uint32

// CalcArena stores resolved linear calc expressions and hands out lightweight
// CalcRef handles, so a mixed px/percent value can be threaded through a
// layout engine's numeric representation without carrying the expression
// itself. An arena lives for a single render's sizing-resolution pass.
//
// Mutation is a single-writer append during resolution; a plain mutex
// suffices.
type CalcArena struct {
	mu     sync.Mutex
	gen    uint32
	values []CalcLinear
}

// NewCalcArena creates an empty arena with a fresh generation stamp.
func NewCalcArena() *CalcArena {
	return &CalcArena{gen: arenaGeneration.Add(1)}
}

// CalcRef is an opaque handle to a linear calc expression registered in a
// CalcArena. A ref is only valid against the arena that produced it; the
// generation stamp is checked on resolve.
type CalcRef struct {
	gen   uint32
	index uint32
}

// IsZero reports whether the ref is the zero handle.
func (r CalcRef) IsZero() bool {
	return r == CalcRef{}
}

// Register stores a linear expression and returns its handle.
func (a *CalcArena) Register(l CalcLinear) CalcRef {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values = append(a.values, l)
	return CalcRef{gen: a.gen, index: uint32(len(a.values))}
}

// Resolve evaluates the referenced expression against a percentage basis.
// A zero ref, a ref from a different arena, or an out-of-range index all
// resolve to 0 rather than failing.
func (a *CalcArena) Resolve(ref CalcRef, basis float32) float32 {
	if ref.gen != a.gen || ref.index == 0 {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if int(ref.index) > len(a.values) {
		return 0
	}
	return a.values[ref.index-1].Resolve(basis)
}

// Len returns the number of registered expressions.
func (a *CalcArena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.values)
}

// calcValue is the intermediate result of evaluating a calc() sub-expression:
// either a unitless number or a unit-bearing formula. The two only combine
// through multiplication and division.
type calcValue struct {
	isNumber bool
	number   float32
	formula  CalcFormula
}

func calcNumber(v float32) calcValue {
	return calcValue{isNumber: true, number: v}
}

func calcFromFormula(f CalcFormula) calcValue {
	return calcValue{formula: f}
}

// parseCalcSum parses the top level of the calc grammar:
// sum → product (('+' | '-') product)*.
func parseCalcSum(tz *tokenizer) (calcValue, error) {
	value, err := parseCalcProduct(tz)
	if err != nil {
		return calcValue{}, err
	}

	for {
		var sub bool
		switch {
		case tz.tryDelim('+'):
		case tz.tryDelim('-'):
			sub = true
		default:
			return value, nil
		}

		rhs, err := parseCalcProduct(tz)
		if err != nil {
			return calcValue{}, err
		}

		// Numbers only combine with numbers, formulas with formulas.
		switch {
		case value.isNumber && rhs.isNumber:
			if sub {
				value.number -= rhs.number
			} else {
				value.number += rhs.number
			}
		case !value.isNumber && !rhs.isNumber:
			if sub {
				value.formula = value.formula.Sub(rhs.formula)
			} else {
				value.formula = value.formula.Add(rhs.formula)
			}
		default:
			return calcValue{}, unexpected(tz.peek())
		}
	}
}

// parseCalcProduct parses product → factor (('*' | '/') factor)*.
// Multiplying two unit-bearing operands and dividing by a unit-bearing or
// zero operand are errors.
func parseCalcProduct(tz *tokenizer) (calcValue, error) {
	value, err := parseCalcFactor(tz)
	if err != nil {
		return calcValue{}, err
	}

	for {
		var div bool
		switch {
		case tz.tryDelim('*'):
		case tz.tryDelim('/'):
			div = true
		default:
			return value, nil
		}

		rhs, err := parseCalcFactor(tz)
		if err != nil {
			return calcValue{}, err
		}

		if div {
			if !rhs.isNumber || rhs.number == 0 {
				return calcValue{}, unexpected(tz.peek())
			}
			if value.isNumber {
				value.number /= rhs.number
			} else {
				value.formula = value.formula.Scale(1 / rhs.number)
			}
			continue
		}

		switch {
		case value.isNumber && rhs.isNumber:
			value.number *= rhs.number
		case value.isNumber:
			value = calcFromFormula(rhs.formula.Scale(value.number))
		case rhs.isNumber:
			value.formula = value.formula.Scale(rhs.number)
		default:
			return calcValue{}, unexpected(tz.peek())
		}
	}
}

// parseCalcFactor parses factor → ('+' | '-')? (number | percentage |
// dimension | 'calc(' sum ')').
func parseCalcFactor(tz *tokenizer) (calcValue, error) {
	if tz.tryDelim('+') {
		return parseCalcFactor(tz)
	}
	if tz.tryDelim('-') {
		v, err := parseCalcFactor(tz)
		if err != nil {
			return calcValue{}, err
		}
		if v.isNumber {
			v.number = -v.number
		} else {
			v.formula = v.formula.Neg()
		}
		return v, nil
	}
	if tz.tryDelim('(') {
		v, err := parseCalcSum(tz)
		if err != nil {
			return calcValue{}, err
		}
		if err := tz.expectCloseParen(); err != nil {
			return calcValue{}, err
		}
		return v, nil
	}

	t := tz.next()
	switch t.typ {
	case tokenNumber:
		return calcNumber(t.num), nil
	case tokenPercentage:
		return calcFromFormula(CalcFormula{Percent: t.num}), nil
	case tokenDimension:
		f, ok := formulaForUnit(t.unit, t.num)
		if !ok {
			return calcValue{}, unexpected(t)
		}
		return calcFromFormula(f), nil
	case tokenFunction:
		if caseInsensitiveEqual(t.value, "calc") {
			v, err := parseCalcSum(tz)
			if err != nil {
				return calcValue{}, err
			}
			if err := tz.expectCloseParen(); err != nil {
				return calcValue{}, err
			}
			return v, nil
		}
		return calcValue{}, unexpected(t)
	default:
		return calcValue{}, unexpected(t)
	}
}

func formulaForUnit(unit string, v float32) (CalcFormula, bool) {
	switch unit {
	case "px":
		return CalcFormula{Px: v}, true
	case "em":
		return CalcFormula{Em: v}, true
	case "rem":
		return CalcFormula{Rem: v}, true
	case "vw":
		return CalcFormula{Vw: v}, true
	case "vh":
		return CalcFormula{Vh: v}, true
	case "cm":
		return CalcFormula{Cm: v}, true
	case "mm":
		return CalcFormula{Mm: v}, true
	case "in":
		return CalcFormula{In: v}, true
	case "q":
		return CalcFormula{Q: v}, true
	case "pt":
		return CalcFormula{Pt: v}, true
	case "pc":
		return CalcFormula{Pc: v}, true
	default:
		return CalcFormula{}, false
	}
}

func caseInsensitiveEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func isNearZero(v float32) bool {
	return abs32(v) <= calcZeroEpsilon
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
