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

// Scans run one shuffle round per doubling of reach, log2(width) rounds in
// total. The lane guard keeps lanes near the subsection start from applying
// the operator to their own value, since ShuffleUp hands it back unchanged
// there.

// InclusiveScan returns, for every lane, the operator folded over the lanes
// of its subsection up to and including itself.
func InclusiveScan[T prim.Lanes](values []T, op func(a, b T) T, width int) []T {
	checkWidth(width)
	result := make([]T, len(values))
	copy(result, values)
	for delta := 1; delta < width; delta <<= 1 {
		shifted := ShuffleUp(result, delta, width)
		for lane := range result {
			if lane-lane&^(width-1) >= delta {
				result[lane] = op(shifted[lane], result[lane])
			}
		}
	}
	return result
}

// ExclusiveScan returns, for every lane, initial folded with the lanes of
// its subsection strictly below itself. The first lane of each subsection
// receives initial.
func ExclusiveScan[T prim.Lanes](values []T, initial T, op func(a, b T) T, width int) []T {
	inclusive := InclusiveScan(values, op, width)
	result := make([]T, len(values))
	for lane := range result {
		if lane&(width-1) == 0 {
			result[lane] = initial
		} else {
			result[lane] = op(initial, inclusive[lane-1])
		}
	}
	return result
}
