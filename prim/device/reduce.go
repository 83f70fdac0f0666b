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
	"unsafe"

	"github.com/amdrake/go-prim/prim"
	"github.com/amdrake/go-prim/prim/block"
)

// partialsScratchSize sizes the per-batch partial results table shared by
// the reduction and scan entry points. Panics on an invalid configuration.
func partialsScratchSize[T prim.Lanes](n int, opts Options) int {
	if n <= 0 {
		return 0
	}
	opts = opts.withDefaults()
	if err := opts.Config.Validate(); err != nil {
		panic(err)
	}
	part := newBatchPartition(n, opts.Config)
	var v T
	return scratchAlign + chunkSize(part.batches, int(unsafe.Sizeof(v)))
}

// ReduceScratchSize returns the scratch bytes Reduce, Sum, Min, and Max
// need for n elements of type T. Zero for n <= 0; panics when opts carry
// an invalid configuration.
func ReduceScratchSize[T prim.Lanes](n int, opts Options) int {
	return partialsScratchSize[T](n, opts)
}

// reduceBatch folds the elements a batch owns, tile by tile in input
// order, so the grouping depends only on the configuration.
func reduceBatch[T prim.Lanes](values []T, batch int, op func(a, b T) T, cfg prim.Config, part batchPartition) T {
	lo, hi := part.batchSpan(batch, len(values))
	acc := block.Reduce(values[lo:min(lo+part.itemsPerBlock, hi)], op, cfg.WarpSize)
	for off := lo + part.itemsPerBlock; off < hi; off += part.itemsPerBlock {
		acc = op(acc, block.Reduce(values[off:min(off+part.itemsPerBlock, hi)], op, cfg.WarpSize))
	}
	return acc
}

// Reduce folds values with op, applied as op(initial, fold(values)), and
// returns the result. op must be associative; the grouping of
// applications is fixed by the configuration, not by the data. An empty
// input returns initial and needs no scratch; otherwise scratch must hold
// at least ReduceScratchSize[T](len(values), opts) bytes or Reduce
// panics. The error return carries kernel failures only.
func Reduce[T prim.Lanes](values []T, initial T, op func(a, b T) T, scratch []byte, opts Options) (T, error) {
	opts = opts.withDefaults()
	if err := opts.Config.Validate(); err != nil {
		return initial, err
	}
	n := len(values)
	if n == 0 {
		return initial, nil
	}
	if len(scratch) < ReduceScratchSize[T](n, opts) {
		panic("device: scratch buffer too small")
	}
	cfg := opts.Config
	part := newBatchPartition(n, cfg)
	partials := carve[T](newArena(scratch), part.batches)

	start := time.Now()
	err := opts.Grid.Launch(part.batches, func(batch int) {
		partials[batch] = reduceBatch(values, batch, op, cfg, part)
	})
	if err == nil {
		err = opts.Grid.Launch(1, func(int) {
			partials[0] = block.Reduce(partials, op, cfg.WarpSize)
		})
	}
	if err != nil {
		return initial, fmt.Errorf("device: reduce: %w", err)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("device reduce",
			"n", n,
			"batches", part.batches,
			"elapsed", time.Since(start))
	}
	return op(initial, partials[0]), nil
}

// Sum returns the sum of values, zero for an empty input.
func Sum[T prim.Lanes](values []T, scratch []byte, opts Options) (T, error) {
	var zero T
	return Reduce(values, zero, prim.Plus[T], scratch, opts)
}

// Min returns the smallest value, or the maximum representable value of T
// for an empty input.
func Min[T prim.Lanes](values []T, scratch []byte, opts Options) (T, error) {
	return Reduce(values, prim.MaxValue[T](), prim.Minimum[T], scratch, opts)
}

// Max returns the largest value, or the minimum representable value of T
// for an empty input.
func Max[T prim.Lanes](values []T, scratch []byte, opts Options) (T, error) {
	return Reduce(values, prim.MinValue[T](), prim.Maximum[T], scratch, opts)
}

// ArgMin returns the index and value of the smallest element, taking the
// earliest index when several elements compare equal. The empty input
// returns index -1 and the zero value.
func ArgMin[T prim.Lanes](values []T, opts Options) (prim.KeyValuePair[int, T], error) {
	return argReduce(values, opts, func(a, b T) bool { return b < a })
}

// ArgMax returns the index and value of the largest element, taking the
// earliest index when several elements compare equal. The empty input
// returns index -1 and the zero value.
func ArgMax[T prim.Lanes](values []T, opts Options) (prim.KeyValuePair[int, T], error) {
	return argReduce(values, opts, func(a, b T) bool { return b > a })
}

// argReduce runs the two-launch reduction over index and value pairs. The
// pair partials live in a regular allocation rather than the scratch
// arena. better reports whether b should displace a; batches fold in
// index order, so requiring strict improvement keeps the earliest index.
func argReduce[T prim.Lanes](values []T, opts Options, better func(a, b T) bool) (prim.KeyValuePair[int, T], error) {
	out := prim.KeyValuePair[int, T]{Key: -1}
	opts = opts.withDefaults()
	if err := opts.Config.Validate(); err != nil {
		return out, err
	}
	n := len(values)
	if n == 0 {
		return out, nil
	}
	part := newBatchPartition(n, opts.Config)
	partials := make([]prim.KeyValuePair[int, T], part.batches)

	start := time.Now()
	err := opts.Grid.Launch(part.batches, func(batch int) {
		lo, hi := part.batchSpan(batch, n)
		best := prim.KeyValuePair[int, T]{Key: lo, Value: values[lo]}
		for j := lo + 1; j < hi; j++ {
			if better(best.Value, values[j]) {
				best = prim.KeyValuePair[int, T]{Key: j, Value: values[j]}
			}
		}
		partials[batch] = best
	})
	if err == nil {
		err = opts.Grid.Launch(1, func(int) {
			best := partials[0]
			for _, p := range partials[1:] {
				if better(best.Value, p.Value) {
					best = p
				}
			}
			partials[0] = best
		})
	}
	if err != nil {
		return out, fmt.Errorf("device: arg reduce: %w", err)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("device arg reduce",
			"n", n,
			"batches", part.batches,
			"elapsed", time.Since(start))
	}
	return partials[0], nil
}
