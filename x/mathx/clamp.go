package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// SignExtend interprets the low `bits` bits of v as two's complement.
func SignExtend[T constraints.Signed](v T, bits uint) T {
	sign := T(1) << (bits - 1)
	v &= sign<<1 - 1
	if v&sign != 0 {
		return v - sign<<1
	}
	return v
}
