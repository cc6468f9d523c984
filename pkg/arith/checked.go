// Package arith provides the checked-integer and interval arithmetic the
// rest of the compiler builds on: a saturating integer type and the
// convex/discrete domain types used to represent a CSP variable's range of
// possible values.
package arith

import "fmt"

// MaxValue and MinValue are the saturation sentinels for CheckedInt. They sit
// well inside the int32 range so that a handful of further additions or
// subtractions against a saturated value cannot wrap around and look finite
// again.
const (
	MaxValue int32 = 1 << 30
	MinValue int32 = -(1 << 30)
)

// CheckedInt wraps an int32 so that arithmetic which would otherwise
// overflow instead saturates to MaxValue/MinValue and stays saturated under
// further arithmetic.
type CheckedInt struct {
	v int32
}

// NewCheckedInt clamps v into [MinValue, MaxValue].
func NewCheckedInt(v int32) CheckedInt {
	return CheckedInt{v: clamp(v)}
}

func clamp(v int32) int32 {
	if v > MaxValue {
		return MaxValue
	}
	if v < MinValue {
		return MinValue
	}
	return v
}

// Int returns the underlying int32. Callers that need a non-saturated value
// (e.g. when emitting a literal to the SAT backend) are responsible for
// checking IsSaturated first.
func (c CheckedInt) Int() int32 { return c.v }

// IsSaturated reports whether c sits exactly on a saturation sentinel.
func (c CheckedInt) IsSaturated() bool {
	return c.v == MaxValue || c.v == MinValue
}

func addSat(a, b int32) int32 {
	sum := int64(a) + int64(b)
	if sum > int64(MaxValue) {
		return MaxValue
	}
	if sum < int64(MinValue) {
		return MinValue
	}
	return int32(sum)
}

func mulSat(a, b int32) int32 {
	prod := int64(a) * int64(b)
	if prod > int64(MaxValue) {
		return MaxValue
	}
	if prod < int64(MinValue) {
		return MinValue
	}
	return int32(prod)
}

// Add returns a+b, saturating on overflow.
func (c CheckedInt) Add(o CheckedInt) CheckedInt {
	return CheckedInt{v: addSat(c.v, o.v)}
}

// Sub returns a-b, saturating on overflow.
func (c CheckedInt) Sub(o CheckedInt) CheckedInt {
	return CheckedInt{v: addSat(c.v, -o.v)}
}

// Neg returns -a; negating a saturated value yields the opposite sentinel.
func (c CheckedInt) Neg() CheckedInt {
	return CheckedInt{v: clamp(-c.v)}
}

// Mul returns a*b, saturating on overflow.
func (c CheckedInt) Mul(o CheckedInt) CheckedInt {
	return CheckedInt{v: mulSat(c.v, o.v)}
}

// MulScalar returns a*k, saturating on overflow.
func (c CheckedInt) MulScalar(k int32) CheckedInt {
	return CheckedInt{v: mulSat(c.v, k)}
}

func (c CheckedInt) Cmp(o CheckedInt) int {
	switch {
	case c.v < o.v:
		return -1
	case c.v > o.v:
		return 1
	default:
		return 0
	}
}

func (c CheckedInt) Less(o CheckedInt) bool    { return c.v < o.v }
func (c CheckedInt) LessEq(o CheckedInt) bool  { return c.v <= o.v }
func (c CheckedInt) Greater(o CheckedInt) bool { return c.v > o.v }
func (c CheckedInt) Eq(o CheckedInt) bool      { return c.v == o.v }

func (c CheckedInt) String() string { return fmt.Sprintf("%d", c.v) }

func Min(a, b CheckedInt) CheckedInt {
	if a.Less(b) {
		return a
	}
	return b
}

func Max(a, b CheckedInt) CheckedInt {
	if a.Greater(b) {
		return a
	}
	return b
}
