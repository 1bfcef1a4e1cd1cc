package utils

import (
	"errors"
	"math/bits"
)

// BasisPointsDenominator is the integer unit for all probability and payout math.
const BasisPointsDenominator = 10000

// ErrOverflow is returned when an unsigned computation would wrap.
var ErrOverflow = errors.New("arithmetic overflow")

// CheckedAdd returns a+b or ErrOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// CheckedSub returns a-b or ErrOverflow when b > a.
func CheckedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

// MulDivFloor computes floor(a*b/d) with a 128-bit intermediate.
// The quotient must fit in 64 bits.
func MulDivFloor(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return 0, ErrOverflow
	}
	q, _ := bits.Div64(hi, lo, d)
	return q, nil
}

// MulDivCeil computes ceil(a*b/d) with a 128-bit intermediate.
func MulDivCeil(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return 0, ErrOverflow
	}
	q, rem := bits.Div64(hi, lo, d)
	if rem == 0 {
		return q, nil
	}
	return CheckedAdd(q, 1)
}

// ApplyBasisPoints returns floor(amount*bp/10000), truncating toward zero.
func ApplyBasisPoints(amount uint64, bp uint64) (uint64, error) {
	return MulDivFloor(amount, bp, BasisPointsDenominator)
}

// SaturatingAddUint8 adds two bytes, pinning at 255.
func SaturatingAddUint8(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}
