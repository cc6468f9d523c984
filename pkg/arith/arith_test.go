package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedIntSaturates(t *testing.T) {
	tests := []struct {
		name string
		a, b int32
		want int32
	}{
		{"ordinary add", 3, 4, 7},
		{"saturates high", MaxValue - 1, 10, MaxValue},
		{"saturates low", MinValue + 1, -10, MinValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCheckedInt(tt.a).Add(NewCheckedInt(tt.b))
			assert.Equal(t, tt.want, got.Int())
		})
	}
}

func TestCheckedIntRoundTrip(t *testing.T) {
	// (a+b)-b == a for non-saturated values.
	a := NewCheckedInt(17)
	b := NewCheckedInt(-42)
	got := a.Add(b).Sub(b)
	assert.Equal(t, a.Int(), got.Int())
}

func TestCheckedIntSaturationSticky(t *testing.T) {
	sat := NewCheckedInt(MaxValue)
	require.True(t, sat.IsSaturated())
	assert.True(t, sat.Add(NewCheckedInt(1)).IsSaturated())
	assert.Equal(t, MaxValue, sat.Add(NewCheckedInt(1)).Int())
}

func TestRangeMul(t *testing.T) {
	a := NewRange(-2, 3)
	b := NewRange(-1, 4)
	got := a.Mul(b)
	// Brute force over the small grid to confirm tightness.
	lo, hi := int32(1<<30), int32(-(1 << 30))
	for x := int32(-2); x <= 3; x++ {
		for y := int32(-1); y <= 4; y++ {
			p := x * y
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
	}
	assert.Equal(t, lo, got.Low.Int())
	assert.Equal(t, hi, got.High.Int())
}

func TestRangeMulConstFlipsOnNegative(t *testing.T) {
	r := NewRange(1, 5)
	got := r.MulConst(-2)
	assert.Equal(t, int32(-10), got.Low.Int())
	assert.Equal(t, int32(-2), got.High.Int())
}

func TestDomainEnumerateSortedUnique(t *testing.T) {
	d := NewDomainValues([]int32{3, 1, 2, 1, 3})
	assert.Equal(t, []int32{1, 2, 3}, d.Enumerate())
}

func TestDomainRefineBounds(t *testing.T) {
	d := NewDomainRange(1, 10)
	d = d.RefineLowerBound(4)
	d = d.RefineUpperBound(7)
	assert.Equal(t, []int32{4, 5, 6, 7}, d.Enumerate())
}

func TestDomainInfeasibleWhenEmpty(t *testing.T) {
	d := NewDomainRange(5, 1)
	assert.True(t, d.IsInfeasible())
}

func TestDomainIntersectUnion(t *testing.T) {
	d1 := NewDomainValues([]int32{1, 2, 3, 4})
	d2 := NewDomainValues([]int32{3, 4, 5, 6})
	assert.Equal(t, []int32{3, 4}, d1.Intersect(d2).Enumerate())
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, d1.Union(d2).Enumerate())
}
