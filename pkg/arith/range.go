package arith

// Range represents a non-empty closed interval [Low, High] of CheckedInt, or
// the empty range (signalled by Low > High). It is the convex-hull
// approximation of a Domain and is what LinearSum.Range() and expression
// range inference use to decide feasibility and to size auxiliary
// variables.
type Range struct {
	Low, High CheckedInt
}

// NewRange builds the interval [low, high]. If low > high the result is an
// empty range (its bounds are kept as given).
func NewRange(low, high int32) Range {
	return Range{Low: NewCheckedInt(low), High: NewCheckedInt(high)}
}

// Single returns the single-point range [v, v].
func Single(v int32) Range {
	return NewRange(v, v)
}

// IsEmpty reports whether r contains no values.
func (r Range) IsEmpty() bool {
	return r.Low.Greater(r.High)
}

// Contains reports whether v lies within r.
func (r Range) Contains(v CheckedInt) bool {
	return !r.IsEmpty() && r.Low.LessEq(v) && v.LessEq(r.High)
}

// Union returns the convex hull of r and o (not their set union, which may
// not be an interval).
func (r Range) Union(o Range) Range {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Range{Low: Min(r.Low, o.Low), High: Max(r.High, o.High)}
}

// Intersect returns the intersection of r and o, which is always an
// interval (possibly empty).
func (r Range) Intersect(o Range) Range {
	if r.IsEmpty() || o.IsEmpty() {
		return Range{Low: NewCheckedInt(1), High: NewCheckedInt(0)}
	}
	lo := Max(r.Low, o.Low)
	hi := Min(r.High, o.High)
	return Range{Low: lo, High: hi}
}

// Add returns the smallest interval containing {x+y : x in r, y in o}.
func (r Range) Add(o Range) Range {
	if r.IsEmpty() || o.IsEmpty() {
		return Range{Low: NewCheckedInt(1), High: NewCheckedInt(0)}
	}
	return Range{Low: r.Low.Add(o.Low), High: r.High.Add(o.High)}
}

// Sub returns the smallest interval containing {x-y : x in r, y in o}.
func (r Range) Sub(o Range) Range {
	return r.Add(o.Negate())
}

// Negate returns the smallest interval containing {-x : x in r}.
func (r Range) Negate() Range {
	if r.IsEmpty() {
		return r
	}
	return Range{Low: r.High.Neg(), High: r.Low.Neg()}
}

// MulConst returns the smallest interval containing {x*k : x in r}, flipping
// endpoints when k is negative.
func (r Range) MulConst(k int32) Range {
	if r.IsEmpty() {
		return r
	}
	a := r.Low.MulScalar(k)
	b := r.High.MulScalar(k)
	if k < 0 {
		return Range{Low: b, High: a}
	}
	return Range{Low: a, High: b}
}

// Mul returns the smallest interval containing {x*y : x in r, y in o}. The
// extrema of a bilinear product over a box are always attained at a corner,
// so it suffices to take the min/max of the four corner products.
func (r Range) Mul(o Range) Range {
	if r.IsEmpty() || o.IsEmpty() {
		return Range{Low: NewCheckedInt(1), High: NewCheckedInt(0)}
	}
	corners := [4]CheckedInt{
		r.Low.Mul(o.Low),
		r.Low.Mul(o.High),
		r.High.Mul(o.Low),
		r.High.Mul(o.High),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		lo = Min(lo, c)
		hi = Max(hi, c)
	}
	return Range{Low: lo, High: hi}
}
