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

// Layout exchanges between the blocked and striped arrangements.
// Both are bijections on the tile and inverses of each other.

// BlockedToStriped rearranges a tile from blocked to striped arrangement.
// dst and src must have the same length, a multiple of blockSize, and must
// not overlap.
func BlockedToStriped[T any](dst, src []T, blockSize int) {
	itemsPerThread := exchangeItems(len(dst), len(src), blockSize)
	for t := 0; t < blockSize; t++ {
		for i := 0; i < itemsPerThread; i++ {
			dst[t*itemsPerThread+i] = src[i*blockSize+t]
		}
	}
}

// StripedToBlocked rearranges a tile from striped to blocked arrangement.
// dst and src must have the same length, a multiple of blockSize, and must
// not overlap.
func StripedToBlocked[T any](dst, src []T, blockSize int) {
	itemsPerThread := exchangeItems(len(dst), len(src), blockSize)
	for t := 0; t < blockSize; t++ {
		for i := 0; i < itemsPerThread; i++ {
			dst[i*blockSize+t] = src[t*itemsPerThread+i]
		}
	}
}

func exchangeItems(dstLen, srcLen, blockSize int) int {
	if dstLen != srcLen {
		panic("block: exchange length mismatch")
	}
	if blockSize < 1 || dstLen%blockSize != 0 {
		panic("block: tile size must be a multiple of the block size")
	}
	return dstLen / blockSize
}
