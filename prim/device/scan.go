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
	"fmt"
	"time"

	"github.com/amdrake/go-prim/prim"
	"github.com/amdrake/go-prim/prim/block"
)

// ScanScratchSize returns the scratch bytes ExclusiveScan and
// InclusiveScan need for n elements of type T. Zero for n <= 0; panics
// when opts carry an invalid configuration.
func ScanScratchSize[T prim.Lanes](n int, opts Options) int {
	return partialsScratchSize[T](n, opts)
}

// ExclusiveScan writes into out, for every element of in, initial folded
// with all earlier elements; out[0] receives initial. op must be
// associative. out must have the length of in and may be in itself for an
// in-place scan. An empty input needs no scratch; otherwise scratch must
// hold at least ScanScratchSize[T](len(in), opts) bytes or the scan
// panics. The error return carries kernel failures only.
func ExclusiveScan[T prim.Lanes](in, out []T, initial T, op func(a, b T) T, scratch []byte, opts Options) error {
	return runScan(in, out, initial, true, op, scratch, opts)
}

// InclusiveScan writes into out, for every element of in, the fold of in
// up to and including that element. Constraints match ExclusiveScan.
func InclusiveScan[T prim.Lanes](in, out []T, op func(a, b T) T, scratch []byte, opts Options) error {
	var zero T
	return runScan(in, out, zero, false, op, scratch, opts)
}

// runScan is the three-launch scan: per-batch reductions, one group
// scanning the partials into carries, then a per-batch rescan seeded with
// the carry. The middle scan is exclusive with the caller's initial for
// the exclusive form; the inclusive form scans the partials inclusively
// and batch b takes partials[b-1] as carry, so no identity value is
// needed.
func runScan[T prim.Lanes](in, out []T, initial T, exclusive bool, op func(a, b T) T, scratch []byte, opts Options) error {
	opts = opts.withDefaults()
	if err := opts.Config.Validate(); err != nil {
		return err
	}
	n := len(in)
	if len(out) != n {
		panic("device: scan output length mismatch")
	}
	if n == 0 {
		return nil
	}
	if len(scratch) < ScanScratchSize[T](n, opts) {
		panic("device: scratch buffer too small")
	}
	cfg := opts.Config
	part := newBatchPartition(n, cfg)
	partials := carve[T](newArena(scratch), part.batches)

	start := time.Now()
	err := opts.Grid.Launch(part.batches, func(batch int) {
		partials[batch] = reduceBatch(in, batch, op, cfg, part)
	})
	if err == nil {
		err = opts.Grid.Launch(1, func(int) {
			if exclusive {
				block.ExclusiveScan(partials, partials, initial, op, cfg.WarpSize, cfg.ScanItemsPerThread)
			} else {
				block.InclusiveScan(partials, partials, op, cfg.WarpSize, cfg.ScanItemsPerThread)
			}
		})
	}
	if err == nil {
		err = opts.Grid.Launch(part.batches, func(batch int) {
			lo, hi := part.batchSpan(batch, n)
			if exclusive {
				carry := partials[batch]
				for off := lo; off < hi; off += part.itemsPerBlock {
					end := min(off+part.itemsPerBlock, hi)
					total := block.ExclusiveScan(out[off:end], in[off:end], carry, op, cfg.WarpSize, cfg.ItemsPerThread)
					carry = op(carry, total)
				}
				return
			}
			var carry T
			hasCarry := batch > 0
			if hasCarry {
				carry = partials[batch-1]
			}
			for off := lo; off < hi; off += part.itemsPerBlock {
				end := min(off+part.itemsPerBlock, hi)
				total := block.InclusiveScan(out[off:end], in[off:end], op, cfg.WarpSize, cfg.ItemsPerThread)
				if hasCarry {
					for j := off; j < end; j++ {
						out[j] = op(carry, out[j])
					}
					carry = op(carry, total)
				} else {
					carry = total
					hasCarry = true
				}
			}
		})
	}
	if err != nil {
		return fmt.Errorf("device: scan: %w", err)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("device scan",
			"n", n,
			"batches", part.batches,
			"exclusive", exclusive,
			"elapsed", time.Since(start))
	}
	return nil
}
