package arith

import "sort"

// Domain is a finite, sorted, duplicate-free set of CheckedInt values. An
// empty Domain signals infeasibility of whatever variable it is attached
// to.
type Domain struct {
	values []int32 // ascending, unique
}

// NewDomainRange builds the domain {low, low+1, ..., high}. If low > high
// the result is the empty domain.
func NewDomainRange(low, high int32) Domain {
	if low > high {
		return Domain{}
	}
	vs := make([]int32, 0, high-low+1)
	for v := low; v <= high; v++ {
		vs = append(vs, v)
	}
	return Domain{values: vs}
}

// NewDomainValues builds a domain from an arbitrary slice of values,
// sorting and deduplicating them.
func NewDomainValues(values []int32) Domain {
	vs := append([]int32(nil), values...)
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	out := vs[:0]
	for i, v := range vs {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return Domain{values: out}
}

// Enumerate returns the ascending, unique values of d. The caller must not
// mutate the returned slice.
func (d Domain) Enumerate() []int32 { return d.values }

// Size returns the number of distinct values in d.
func (d Domain) Size() int { return len(d.values) }

// IsInfeasible reports whether d has no values.
func (d Domain) IsInfeasible() bool { return len(d.values) == 0 }

// Min and Max panic on an empty domain; callers must check IsInfeasible
// first, mirroring the invariant that a CSP variable's domain is non-empty
// at creation and stays that way except transiently during normalization
// (where infeasibility is surfaced through the clause-contradiction path,
// never a crash).
func (d Domain) Min() int32 { return d.values[0] }
func (d Domain) Max() int32 { return d.values[len(d.values)-1] }

// AsRange returns the convex hull of d.
func (d Domain) AsRange() Range {
	if d.IsInfeasible() {
		return Range{Low: NewCheckedInt(1), High: NewCheckedInt(0)}
	}
	return NewRange(d.Min(), d.Max())
}

// Contains reports whether v is a member of d.
func (d Domain) Contains(v int32) bool {
	i := sort.Search(len(d.values), func(i int) bool { return d.values[i] >= v })
	return i < len(d.values) && d.values[i] == v
}

// IndexOf returns the position of v in the sorted enumeration, or -1.
func (d Domain) IndexOf(v int32) int {
	i := sort.Search(len(d.values), func(i int) bool { return d.values[i] >= v })
	if i < len(d.values) && d.values[i] == v {
		return i
	}
	return -1
}

// Union returns the set union of d and o.
func (d Domain) Union(o Domain) Domain {
	merged := make([]int32, 0, len(d.values)+len(o.values))
	merged = append(merged, d.values...)
	merged = append(merged, o.values...)
	return NewDomainValues(merged)
}

// Intersect returns the set intersection of d and o.
func (d Domain) Intersect(o Domain) Domain {
	var out []int32
	i, j := 0, 0
	for i < len(d.values) && j < len(o.values) {
		switch {
		case d.values[i] < o.values[j]:
			i++
		case d.values[i] > o.values[j]:
			j++
		default:
			out = append(out, d.values[i])
			i++
			j++
		}
	}
	return Domain{values: out}
}

// RefineLowerBound intersects d with [lb, +inf).
func (d Domain) RefineLowerBound(lb int32) Domain {
	i := sort.Search(len(d.values), func(i int) bool { return d.values[i] >= lb })
	return Domain{values: append([]int32(nil), d.values[i:]...)}
}

// RefineUpperBound intersects d with (-inf, ub].
func (d Domain) RefineUpperBound(ub int32) Domain {
	i := sort.Search(len(d.values), func(i int) bool { return d.values[i] > ub })
	return Domain{values: append([]int32(nil), d.values[:i]...)}
}

// mapUnary applies f to every value of d, producing a (not necessarily
// sorted or unique, hence re-normalized) resulting domain.
func (d Domain) mapUnary(f func(int32) int32) Domain {
	vs := make([]int32, len(d.values))
	for i, v := range d.values {
		vs[i] = f(v)
	}
	return NewDomainValues(vs)
}

// Negate returns {-v : v in d}.
func (d Domain) Negate() Domain {
	return d.mapUnary(func(v int32) int32 { return -v })
}

// AddConst returns {v+k : v in d}.
func (d Domain) AddConst(k int32) Domain {
	return d.mapUnary(func(v int32) int32 { return v + k })
}

// MulConst returns {v*k : v in d}.
func (d Domain) MulConst(k int32) Domain {
	return d.mapUnary(func(v int32) int32 { return v * k })
}

// Add returns the pointwise sum domain {a+b : a in d, b in o}.
func (d Domain) Add(o Domain) Domain {
	vs := make([]int32, 0, len(d.values)*len(o.values))
	for _, a := range d.values {
		for _, b := range o.values {
			vs = append(vs, a+b)
		}
	}
	return NewDomainValues(vs)
}

// Mul returns the pointwise product domain {a*b : a in d, b in o}.
func (d Domain) Mul(o Domain) Domain {
	vs := make([]int32, 0, len(d.values)*len(o.values))
	for _, a := range d.values {
		for _, b := range o.values {
			vs = append(vs, a*b)
		}
	}
	return NewDomainValues(vs)
}

// Abs returns {|v| : v in d}.
func (d Domain) Abs() Domain {
	return d.mapUnary(func(v int32) int32 {
		if v < 0 {
			return -v
		}
		return v
	})
}

func (d Domain) Clone() Domain {
	return Domain{values: append([]int32(nil), d.values...)}
}
