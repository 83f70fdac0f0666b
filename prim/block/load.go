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

package block

// Tiled loads. src holds the elements remaining in the input from the tile
// offset onward; a short src marks an incomplete trailing tile whose
// out-of-range slots receive the fill value.

// LoadBlocked fills dst in blocked arrangement: element ranks match input
// order. It returns the number of valid elements copied from src.
func LoadBlocked[T any](dst, src []T, fill T) int {
	valid := min(len(dst), len(src))
	copy(dst, src[:valid])
	for i := valid; i < len(dst); i++ {
		dst[i] = fill
	}
	return valid
}

// LoadStriped fills dst in striped arrangement: thread t's i-th register
// receives the element of rank i*blockSize + t. It returns the number of
// valid elements copied from src. len(dst) must be a multiple of blockSize.
func LoadStriped[T any](dst, src []T, blockSize int, fill T) int {
	if blockSize < 1 || len(dst)%blockSize != 0 {
		panic("block: tile size must be a multiple of the block size")
	}
	itemsPerThread := len(dst) / blockSize
	valid := min(len(dst), len(src))
	for t := 0; t < blockSize; t++ {
		for i := 0; i < itemsPerThread; i++ {
			rank := i*blockSize + t
			if rank < valid {
				dst[t*itemsPerThread+i] = src[rank]
			} else {
				dst[t*itemsPerThread+i] = fill
			}
		}
	}
	return valid
}
