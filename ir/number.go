package ir

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxExponent bounds the decimal exponent of a literal given an exact value.
const maxExponent = 10000

// exponentInRange reports whether lit's exponent, if any, is within
// maxExponent, so that its exact value stays small.
func exponentInRange(lit string) bool {
	i := strings.IndexAny(lit, "eE")
	if i < 0 {
		return true
	}
	e, err := strconv.Atoi(lit[i+1:])
	return err == nil && e >= -maxExponent && e <= maxExponent
}

// Rat returns the exact value of a number node. JSON number literals are
// decimal so every one of them has an exact rational value.
func (y *Node) Rat() (*big.Rat, bool) {
	if y.Type != NumberType {
		return nil, false
	}
	if y.Int64 != nil {
		return new(big.Rat).SetInt64(*y.Int64), true
	}
	if y.Number != "" && exponentInRange(y.Number) {
		r, ok := new(big.Rat).SetString(y.Number)
		if ok {
			return r, true
		}
	}
	if y.Float64 != nil {
		if math.IsInf(*y.Float64, 0) || math.IsNaN(*y.Float64) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(*y.Float64), true
	}
	return nil, false
}

// IsInteger reports whether y is a number with an integral value, so 1.0 is
// an integer.
func (y *Node) IsInteger() bool {
	if y.Type != NumberType {
		return false
	}
	if y.Int64 != nil {
		return true
	}
	r, ok := y.Rat()
	return ok && r.IsInt()
}

// Int returns the value of y as an int if it is an integer that fits.
func (y *Node) Int() (int, bool) {
	if y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		if *y.Int64 > math.MaxInt || *y.Int64 < math.MinInt {
			return 0, false
		}
		return int(*y.Int64), true
	}
	r, ok := y.Rat()
	if !ok || !r.IsInt() {
		return 0, false
	}
	n := r.Num()
	if !n.IsInt64() {
		return 0, false
	}
	v := n.Int64()
	if v > math.MaxInt || v < math.MinInt {
		return 0, false
	}
	return int(v), true
}

// CompareNumbers compares two number nodes by value.
func CompareNumbers(a, b *Node) (int, error) {
	ra, ok := a.Rat()
	if !ok {
		return 0, ErrNotNumber
	}
	rb, ok := b.Rat()
	if !ok {
		return 0, ErrNotNumber
	}
	return ra.Cmp(rb), nil
}

// canonicalNumber gives equal numbers the same text, e.g. 1, 1.0 and 1e0
// all map to "1".
func canonicalNumber(y *Node) string {
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	r, ok := y.Rat()
	if !ok {
		return y.Number
	}
	return r.RatString()
}
