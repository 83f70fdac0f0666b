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

package device

import (
	"github.com/amdrake/go-prim/prim"
	"github.com/amdrake/go-prim/prim/block"
	"github.com/amdrake/go-prim/prim/warp"
)

// batchPartition folds the input tiles into at most MaxGridBlocks batches
// of consecutive tiles. Every batch owns at least one tile, and only the
// last tile of the input can be short. The histogram and scatter passes
// must agree on the partition, so both derive it from the same value.
type batchPartition struct {
	itemsPerBlock int
	blocks        int
	batches       int
	blocksPerFull int
	fullBatches   int
}

func newBatchPartition(n int, cfg prim.Config) batchPartition {
	ipb := cfg.ItemsPerBlock()
	blocks := (n + ipb - 1) / ipb
	p := batchPartition{
		itemsPerBlock: ipb,
		blocks:        blocks,
		batches:       min(blocks, cfg.MaxGridBlocks),
	}
	if p.batches == 0 {
		return p
	}
	p.blocksPerFull = (blocks + p.batches - 1) / p.batches
	p.fullBatches = blocks % p.batches
	if p.fullBatches == 0 {
		p.fullBatches = p.batches
	}
	return p
}

// batchBlocks returns the tile range [first, first+count) a batch owns.
func (p batchPartition) batchBlocks(batch int) (first, count int) {
	if batch < p.fullBatches {
		return batch * p.blocksPerFull, p.blocksPerFull
	}
	return batch*(p.blocksPerFull-1) + p.fullBatches, p.blocksPerFull - 1
}

// batchSpan returns the element range [lo, hi) a batch owns in an input of
// n elements.
func (p batchPartition) batchSpan(batch, n int) (lo, hi int) {
	first, count := p.batchBlocks(batch)
	lo = first * p.itemsPerBlock
	hi = min(lo+count*p.itemsPerBlock, n)
	return lo, hi
}

// fillDigitCounts counts one batch's keys per digit of the current window
// and stores the radixSize-wide count row at batchCounts[batch*radixSize:].
// Counting is cooperative within each warp row: every lane intersects the
// per-bit ballots down to the mask of lanes holding its own digit, and only
// the lowest lane of that mask adds the mask population, so each digit
// group contributes exactly once and no two lanes write the same counter.
//
// The striped load makes validity a lane prefix within each warp row, so a
// lane past the input either sees an empty mask or a nonzero rank in it,
// and never adds to a counter.
func fillDigitCounts[K prim.Lanes](batch int, keysIn []K, batchCounts []uint32, bit, bits int, descending bool, cfg prim.Config, part batchPartition) {
	radixSize := cfg.RadixSize()
	mask := uint64(1)<<uint(bits) - 1
	warps := cfg.BlockSize / cfg.WarpSize

	warpCounts := make([][]uint32, warps)
	for w := range warpCounts {
		warpCounts[w] = make([]uint32, radixSize)
	}

	tile := make([]K, part.itemsPerBlock)
	digits := make([]int, cfg.WarpSize)
	preds := make([]bool, cfg.WarpSize)
	bitBallots := make([]uint64, cfg.RadixBits)

	first, count := part.batchBlocks(batch)
	for b := first; b < first+count; b++ {
		offset := b * part.itemsPerBlock
		var fill K
		valid := block.LoadStriped(tile, keysIn[offset:], cfg.BlockSize, fill)

		for w := 0; w < warps; w++ {
			for i := 0; i < cfg.ItemsPerThread; i++ {
				for l := 0; l < cfg.WarpSize; l++ {
					t := w*cfg.WarpSize + l
					key := tile[t*cfg.ItemsPerThread+i]
					digits[l] = prim.Digit(prim.Encode(key, descending), bit, mask)
					preds[l] = i*cfg.BlockSize+t < valid
				}
				// A narrowed final window is handled by the digit mask:
				// the high-bit ballots come out empty and intersect away
				// nothing, so the round count stays fixed.
				validMask := warp.Ballot(preds)
				for bb := 0; bb < cfg.RadixBits; bb++ {
					for l := range preds {
						preds[l] = digits[l]&(1<<uint(bb)) != 0
					}
					bitBallots[bb] = warp.Ballot(preds)
				}
				for l := 0; l < cfg.WarpSize; l++ {
					m := validMask
					for bb := 0; bb < cfg.RadixBits; bb++ {
						if digits[l]&(1<<uint(bb)) != 0 {
							m &= bitBallots[bb]
						} else {
							m &^= bitBallots[bb]
						}
					}
					if warp.MaskedBitCount(m, l) == 0 {
						warpCounts[w][digits[l]] += uint32(warp.BitCount(m))
					}
				}
			}
		}
	}

	for d := 0; d < radixSize; d++ {
		var sum uint32
		for w := 0; w < warps; w++ {
			sum += warpCounts[w][d]
		}
		batchCounts[batch*radixSize+d] = sum
	}
}

// scanBatches turns the per-batch counts of one digit into exclusive
// offsets of each batch within the digit, in place, and stores the digit
// total in digitCounts[digit]. The scan group covers every batch because
// MaxGridBlocks is bounded by ScanBlockSize*ScanItemsPerThread.
func scanBatches(digit int, batchCounts, digitCounts []uint32, cfg prim.Config, part batchPartition) {
	radixSize := cfg.RadixSize()
	tile := make([]uint32, cfg.ScanBlockSize*cfg.ScanItemsPerThread)
	for b := 0; b < part.batches; b++ {
		tile[b] = batchCounts[b*radixSize+digit]
	}
	total := block.ExclusiveScan(tile, tile, 0, prim.Plus, cfg.WarpSize, cfg.ScanItemsPerThread)
	for b := 0; b < part.batches; b++ {
		batchCounts[b*radixSize+digit] = tile[b]
	}
	digitCounts[digit] = total
}

// scanDigits turns the digit totals into global digit start positions, in
// place. One lane per digit; the radix size never exceeds the block size.
func scanDigits(digitCounts []uint32, cfg prim.Config) {
	block.ExclusiveScan(digitCounts, digitCounts, 0, prim.Plus, cfg.WarpSize, 1)
}

// sortAndScatter sorts each tile of one batch by the current digit window
// and writes every element to its final position for this pass:
//
//	dst = pos - starts[digit] + blockStarts[digit]
//
// where pos is the element's rank in the sorted tile, starts[digit] the
// rank of the digit's first element in the tile, and blockStarts[digit]
// the global write position of the digit for this tile. Short tiles are
// padded with the bit key that sorts after every real key; the pads gather
// at the end of the sorted tile and the pos < valid guard drops them.
//
// After each tile the write positions advance by the number of valid
// elements of each digit. ends[digit] can point into the padding only for
// the all-ones digit, hence the clamp to valid-1.
func sortAndScatter[K prim.Lanes, V any](batch int, keysIn, keysOut []K, valuesIn, valuesOut []V, batchCounts, digitCounts []uint32, bit, bits int, descending bool, cfg prim.Config, part batchPartition) {
	radixSize := cfg.RadixSize()
	mask := uint64(1)<<uint(bits) - 1
	ipb := part.itemsPerBlock
	maxKey := prim.MaxBitKey[K]()
	hasValues := valuesIn != nil

	blockStarts := make([]int, radixSize)
	for d := range blockStarts {
		blockStarts[d] = int(digitCounts[d]) + int(batchCounts[batch*radixSize+d])
	}

	tileKeys := make([]uint64, ipb)
	stripedKeys := make([]uint64, ipb)
	digits := make([]int, ipb)
	heads := make([]bool, ipb)
	tails := make([]bool, ipb)
	starts := make([]int, radixSize)
	ends := make([]int, radixSize)
	var tileVals, stripedVals []V
	if hasValues {
		tileVals = make([]V, ipb)
		stripedVals = make([]V, ipb)
	}

	first, count := part.batchBlocks(batch)
	for b := first; b < first+count; b++ {
		offset := b * ipb
		valid := min(ipb, len(keysIn)-offset)

		for j := 0; j < valid; j++ {
			tileKeys[j] = prim.Encode(keysIn[offset+j], descending)
		}
		for j := valid; j < ipb; j++ {
			tileKeys[j] = maxKey
		}
		if hasValues {
			copy(tileVals[:valid], valuesIn[offset:offset+valid])
		}

		block.SortBits(tileKeys, tileVals, bit, bit+bits, cfg.WarpSize, cfg.ItemsPerThread)

		for j, bk := range tileKeys {
			digits[j] = prim.Digit(bk, bit, mask)
		}
		block.FlagHeadsAndTails(heads, tails, digits)
		for d := 0; d < radixSize; d++ {
			starts[d] = valid
			ends[d] = valid
		}
		for j, d := range digits {
			if heads[j] {
				starts[d] = j
			}
			if tails[j] {
				ends[d] = j
			}
		}

		block.BlockedToStriped(stripedKeys, tileKeys, cfg.BlockSize)
		if hasValues {
			block.BlockedToStriped(stripedVals, tileVals, cfg.BlockSize)
		}
		for t := 0; t < cfg.BlockSize; t++ {
			for i := 0; i < cfg.ItemsPerThread; i++ {
				pos := i*cfg.BlockSize + t
				if pos >= valid {
					continue
				}
				bk := stripedKeys[t*cfg.ItemsPerThread+i]
				d := prim.Digit(bk, bit, mask)
				dst := pos - starts[d] + blockStarts[d]
				keysOut[dst] = prim.Decode[K](bk, descending)
				if hasValues {
					valuesOut[dst] = stripedVals[t*cfg.ItemsPerThread+i]
				}
			}
		}

		for d := 0; d < radixSize; d++ {
			if starts[d] < valid {
				blockStarts[d] += min(valid-1, ends[d]) - starts[d] + 1
			}
		}
	}
}
