// Copyright 2026 go-prim Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prim

import (
	"math"
	"unsafe"
)

// This file provides the order-preserving bit-key codec used by radix
// operations. Every key type is mapped to an unsigned bit pattern such that
// unsigned comparison of bit keys matches the natural ordering of the keys:
//
//   - unsigned integers: identity
//   - signed integers: flip the sign bit
//   - floats: flip all bits when negative, otherwise set the sign bit
//
// For descending order the encoding is complemented within the key width.
// Narrow keys occupy the low KeyBits bits of the uint64 container.

const (
	signBit32 = uint32(1) << 31
	signBit64 = uint64(1) << 63
)

// KeyBits returns the number of significant bits in the bit-key encoding of K.
func KeyBits[K Lanes]() int {
	var zero K
	return int(unsafe.Sizeof(zero)) * 8
}

// KeyMask returns a mask covering the low KeyBits bits of K.
func KeyMask[K Lanes]() uint64 {
	bits := KeyBits[K]()
	if bits >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<bits - 1
}

// MaxBitKey returns the bit key that sorts after every encoded key of type K,
// in both ascending and descending order. It is used to pad incomplete tiles
// so that out-of-range slots gather at the end of a sorted tile.
func MaxBitKey[K Lanes]() uint64 {
	return KeyMask[K]()
}

// Digit extracts the digit of width mask starting at the given bit.
func Digit(bitKey uint64, bit int, mask uint64) int {
	return int((bitKey >> uint(bit)) & mask)
}

// Encode converts a key to its order-preserving bit key.
// Decode(Encode(k, d), d) == k bit-exactly for every representable k,
// including NaN payloads and signed zeros.
func Encode[K Lanes](key K, descending bool) uint64 {
	var bits uint64
	switch k := any(key).(type) {
	case uint8:
		bits = uint64(k)
	case uint16:
		bits = uint64(k)
	case uint32:
		bits = uint64(k)
	case uint64:
		bits = k
	case int8:
		bits = uint64(uint8(k) ^ 0x80)
	case int16:
		bits = uint64(uint16(k) ^ 0x8000)
	case int32:
		bits = uint64(uint32(k) ^ signBit32)
	case int64:
		bits = uint64(k) ^ signBit64
	case float32:
		b := math.Float32bits(k)
		if b&signBit32 != 0 {
			b = ^b
		} else {
			b |= signBit32
		}
		bits = uint64(b)
	case float64:
		b := math.Float64bits(k)
		if b&signBit64 != 0 {
			b = ^b
		} else {
			b |= signBit64
		}
		bits = b
	default:
		panic("prim: unsupported key type")
	}
	if descending {
		bits ^= KeyMask[K]()
	}
	return bits
}

// Decode converts a bit key back to the key it encodes.
func Decode[K Lanes](bits uint64, descending bool) K {
	if descending {
		bits ^= KeyMask[K]()
	}
	var key K
	switch p := any(&key).(type) {
	case *uint8:
		*p = uint8(bits)
	case *uint16:
		*p = uint16(bits)
	case *uint32:
		*p = uint32(bits)
	case *uint64:
		*p = bits
	case *int8:
		*p = int8(uint8(bits) ^ 0x80)
	case *int16:
		*p = int16(uint16(bits) ^ 0x8000)
	case *int32:
		*p = int32(uint32(bits) ^ signBit32)
	case *int64:
		*p = int64(bits ^ signBit64)
	case *float32:
		b := uint32(bits)
		if b&signBit32 != 0 {
			b &^= signBit32
		} else {
			b = ^b
		}
		*p = math.Float32frombits(b)
	case *float64:
		if bits&signBit64 != 0 {
			bits &^= signBit64
		} else {
			bits = ^bits
		}
		*p = math.Float64frombits(bits)
	default:
		panic("prim: unsupported key type")
	}
	return key
}

// CanEncode reports whether K is one of the key types the codec supports.
// Named types with a supported underlying type are not recognized.
func CanEncode[K Lanes]() bool {
	var zero K
	switch any(zero).(type) {
	case uint8, uint16, uint32, uint64, int8, int16, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}
