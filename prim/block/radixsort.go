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

import (
	"github.com/amdrake/go-prim/prim"
)

// SortBits stably sorts a tile of bit keys, and any values alongside them,
// by the key bits in [beginBit, endBit). One split per bit partitions clear
// bits before set bits; the ranks come from the block exclusive scan, so
// elements with equal window bits keep their order. values may be nil for a
// keys-only sort.
func SortBits[V any](bitKeys []uint64, values []V, beginBit, endBit, warpSize, itemsPerThread int) {
	n := len(bitKeys)
	if values != nil && len(values) != n {
		panic("block: sort value length mismatch")
	}
	if n <= 1 || beginBit >= endBit {
		return
	}

	ones := make([]uint32, n)
	onesBefore := make([]uint32, n)
	keysTmp := make([]uint64, n)
	var valuesTmp []V
	if values != nil {
		valuesTmp = make([]V, n)
	}

	for bit := beginBit; bit < endBit; bit++ {
		for j, k := range bitKeys {
			ones[j] = uint32(k >> uint(bit) & 1)
		}
		onesTotal := ExclusiveScan(onesBefore, ones, 0, prim.Plus, warpSize, itemsPerThread)
		zerosTotal := uint32(n) - onesTotal

		for j, k := range bitKeys {
			var rank uint32
			if ones[j] != 0 {
				rank = zerosTotal + onesBefore[j]
			} else {
				rank = uint32(j) - onesBefore[j]
			}
			keysTmp[rank] = k
			if values != nil {
				valuesTmp[rank] = values[j]
			}
		}
		copy(bitKeys, keysTmp)
		if values != nil {
			copy(values, valuesTmp)
		}
	}
}

// Sort stably sorts a tile of keys in ascending order.
func Sort[K prim.Lanes](keys []K, warpSize, itemsPerThread int) {
	SortPairs[K, prim.Empty](keys, nil, warpSize, itemsPerThread)
}

// SortPairs stably sorts a tile of keys in ascending order and moves the
// values alongside them. values may be nil.
func SortPairs[K prim.Lanes, V any](keys []K, values []V, warpSize, itemsPerThread int) {
	n := len(keys)
	if n <= 1 {
		return
	}
	bitKeys := make([]uint64, n)
	for j, k := range keys {
		bitKeys[j] = prim.Encode(k, false)
	}
	SortBits(bitKeys, values, 0, prim.KeyBits[K](), warpSize, itemsPerThread)
	for j, b := range bitKeys {
		keys[j] = prim.Decode[K](b, false)
	}
}
