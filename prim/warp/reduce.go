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

package warp

import "github.com/amdrake/go-prim/prim"

// Reduce folds the lanes of every subsection with a butterfly of xor
// shuffles. Lane 0 of each subsection holds the lane-order fold; the other
// lanes hold the same value only when op is commutative. The number of
// lanes must be a multiple of width, since a partial subsection would pair
// lanes with themselves.
func Reduce[T prim.Lanes](values []T, op func(a, b T) T, width int) []T {
	checkWidth(width)
	if len(values)%width != 0 {
		panic("warp: lane count must be a multiple of width")
	}
	result := make([]T, len(values))
	copy(result, values)
	for mask := 1; mask < width; mask <<= 1 {
		partner := ShuffleXor(result, mask, width)
		for lane := range result {
			result[lane] = op(result[lane], partner[lane])
		}
	}
	return result
}
