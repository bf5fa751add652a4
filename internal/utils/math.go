package utils

import (
	"fmt"
	"math/bits"

	"github.com/osse101/questledger/internal/domain"
)

// CheckedAdd returns a+b or domain.ErrArithmeticOverflow if the sum does not fit in a uint64
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d", domain.ErrArithmeticOverflow, a, b)
	}
	return sum, nil
}

// CheckedSub returns a-b or domain.ErrArithmeticOverflow if b > a
func CheckedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, fmt.Errorf("%w: %d - %d", domain.ErrArithmeticOverflow, a, b)
	}
	return diff, nil
}

// MulDivFloor returns floor(a*b/denominator) using a 128-bit intermediate product,
// so only a quotient that does not fit in a uint64 is an overflow.
func MulDivFloor(a, b, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, fmt.Errorf("%w: division by zero", domain.ErrArithmeticOverflow)
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= denominator {
		return 0, fmt.Errorf("%w: %d * %d / %d", domain.ErrArithmeticOverflow, a, b, denominator)
	}
	quo, _ := bits.Div64(hi, lo, denominator)
	return quo, nil
}

// BasisPointsOf returns floor(amount*bps/10000)
func BasisPointsOf(amount, bps uint64) (uint64, error) {
	return MulDivFloor(amount, bps, domain.BasisPoints)
}
