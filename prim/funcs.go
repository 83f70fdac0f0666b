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

	"golang.org/x/exp/constraints"
)

// Binary operators for reductions and scans. They are ordinary functions so
// they can be passed as the op argument of the device operations.

// Plus returns a + b.
func Plus[T Lanes](a, b T) T {
	return a + b
}

// Minimum returns the smaller of a and b.
func Minimum[T constraints.Ordered](a, b T) T {
	if b < a {
		return b
	}
	return a
}

// Maximum returns the larger of a and b.
func Maximum[T constraints.Ordered](a, b T) T {
	if b > a {
		return b
	}
	return a
}

// MaxValue returns the maximum representable value for the type.
func MaxValue[T Lanes]() T {
	var maxVal T
	switch any(maxVal).(type) {
	case float32:
		maxVal = T(any(float32(math.MaxFloat32)).(float32))
	case float64:
		maxVal = T(any(float64(math.MaxFloat64)).(float64))
	case int8:
		maxVal = T(any(int8(math.MaxInt8)).(int8))
	case int16:
		maxVal = T(any(int16(math.MaxInt16)).(int16))
	case int32:
		maxVal = T(any(int32(math.MaxInt32)).(int32))
	case int64:
		maxVal = T(any(int64(math.MaxInt64)).(int64))
	case uint8:
		maxVal = T(any(uint8(math.MaxUint8)).(uint8))
	case uint16:
		maxVal = T(any(uint16(math.MaxUint16)).(uint16))
	case uint32:
		maxVal = T(any(uint32(math.MaxUint32)).(uint32))
	case uint64:
		maxVal = T(any(uint64(math.MaxUint64)).(uint64))
	}
	return maxVal
}

// MinValue returns the minimum representable value for the type.
// For floats this is the negative value of largest magnitude, not the
// smallest positive value.
func MinValue[T Lanes]() T {
	var minVal T
	switch any(minVal).(type) {
	case float32:
		minVal = T(any(float32(-math.MaxFloat32)).(float32))
	case float64:
		minVal = T(any(float64(-math.MaxFloat64)).(float64))
	case int8:
		minVal = T(any(int8(math.MinInt8)).(int8))
	case int16:
		minVal = T(any(int16(math.MinInt16)).(int16))
	case int32:
		minVal = T(any(int32(math.MinInt32)).(int32))
	case int64:
		minVal = T(any(int64(math.MinInt64)).(int64))
	}
	return minVal
}
