package stream

import "math"

const mantissaBits = 56

// EncodeReal converts v to the GDSII 8-byte real: sign bit, 7-bit excess-64
// base-16 exponent and a 56-bit mantissa in [1/16, 1).
func EncodeReal(v float64) uint64 {
	if v == 0 || math.IsNaN(v) {
		return 0
	}
	var sign uint64
	if v < 0 {
		sign = 1 << 63
		v = -v
	}
	exp := 0
	for v >= 1 {
		v /= 16
		exp++
	}
	for v < 1.0/16 {
		v *= 16
		exp--
	}
	mant := uint64(math.Round(math.Ldexp(v, mantissaBits)))
	if mant >= 1<<mantissaBits {
		mant >>= 4
		exp++
	}
	switch {
	case exp+64 > 127:
		return sign | 0x7F<<56 | (1<<mantissaBits - 1)
	case exp+64 < 0:
		return 0
	}
	return sign | uint64(exp+64)<<56 | mant
}

// DecodeReal is the inverse of EncodeReal.
func DecodeReal(b uint64) float64 {
	mant := b & (1<<mantissaBits - 1)
	if mant == 0 {
		return 0
	}
	exp := int(b>>56&0x7F) - 64
	v := math.Ldexp(float64(mant), 4*exp-mantissaBits)
	if b>>63 == 1 {
		v = -v
	}
	return v
}
