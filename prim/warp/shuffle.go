package warp

import "github.com/amdrake/go-prim/prim"

// This file provides the lane shuffle collectives. All shuffles take the
// per-lane values of a warp and return a new slice; the input is not
// modified. The width must be a power of two. Lanes whose source falls
// outside the slice keep their own value, which can only happen in a
// trailing partial subsection.

func checkWidth(width int) {
	if width < 1 || width&(width-1) != 0 {
		panic("warp: width must be a positive power of two")
	}
}

// Shuffle returns, for every lane, the value of lane src of its subsection.
// src is taken modulo width.
func Shuffle[T prim.Lanes](values []T, src, width int) []T {
	checkWidth(width)
	src %= width
	if src < 0 {
		src += width
	}
	result := make([]T, len(values))
	for lane := range values {
		target := lane&^(width-1) + src
		if target < len(values) {
			result[lane] = values[target]
		} else {
			result[lane] = values[lane]
		}
	}
	return result
}

// ShuffleUp returns, for every lane, the value of the lane delta places
// below it. Lanes within delta of the subsection start keep their own value.
func ShuffleUp[T prim.Lanes](values []T, delta, width int) []T {
	checkWidth(width)
	result := make([]T, len(values))
	for lane := range values {
		target := lane - delta
		if delta >= 0 && target >= lane&^(width-1) {
			result[lane] = values[target]
		} else {
			result[lane] = values[lane]
		}
	}
	return result
}

// ShuffleDown returns, for every lane, the value of the lane delta places
// above it. Lanes within delta of the subsection end keep their own value.
func ShuffleDown[T prim.Lanes](values []T, delta, width int) []T {
	checkWidth(width)
	result := make([]T, len(values))
	for lane := range values {
		target := lane + delta
		if delta >= 0 && target < lane&^(width-1)+width && target < len(values) {
			result[lane] = values[target]
		} else {
			result[lane] = values[lane]
		}
	}
	return result
}

// ShuffleXor returns, for every lane, the value of the lane whose index
// differs from its own in the bits of mask. mask must be less than width so
// that partners stay within one subsection.
func ShuffleXor[T prim.Lanes](values []T, mask, width int) []T {
	checkWidth(width)
	if mask < 0 || mask >= width {
		panic("warp: xor mask must be in [0, width)")
	}
	result := make([]T, len(values))
	for lane := range values {
		target := lane ^ mask
		if target < len(values) {
			result[lane] = values[target]
		} else {
			result[lane] = values[lane]
		}
	}
	return result
}
