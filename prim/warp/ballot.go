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

// Ballot packs the predicate of every lane into a mask, bit i for lane i.
// Panics if there are more than 64 lanes.
func Ballot(preds []bool) uint64 {
	if len(preds) > 64 {
		panic("warp: ballot over more than 64 lanes")
	}
	var mask uint64
	for lane, p := range preds {
		if p {
			mask |= uint64(1) << lane
		}
	}
	return mask
}

// BitCount returns the number of set bits in a ballot mask.
func BitCount(mask uint64) int {
	return count64(mask)
}

// MaskedBitCount returns the number of set bits strictly below the given
// lane, which is the lane's rank among the lanes voting in the mask.
func MaskedBitCount(mask uint64, lane int) int {
	if lane <= 0 {
		return 0
	}
	if lane >= 64 {
		return count64(mask)
	}
	return count64(mask & (uint64(1)<<lane - 1))
}
