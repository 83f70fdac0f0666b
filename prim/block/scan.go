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
	"github.com/amdrake/go-prim/prim/warp"
)

// threadTotals folds each thread's run of itemsPerThread elements.
// The tail thread may own fewer elements; an empty thread cannot occur.
func threadTotals[T prim.Lanes](src []T, op func(a, b T) T, itemsPerThread int) []T {
	nThreads := (len(src) + itemsPerThread - 1) / itemsPerThread
	totals := make([]T, nThreads)
	for t := 0; t < nThreads; t++ {
		start := t * itemsPerThread
		end := min(start+itemsPerThread, len(src))
		acc := src[start]
		for j := start + 1; j < end; j++ {
			acc = op(acc, src[j])
		}
		totals[t] = acc
	}
	return totals
}

// warpPrefixes turns per-thread totals into per-warp inclusive scans plus an
// inclusive scan over the warp totals. The second scan runs in a single
// logical warp, which bounds the group at warpSize*warpSize threads.
func warpPrefixes[T prim.Lanes](totals []T, op func(a, b T) T, warpSize int) (threadIncl, warpIncl []T) {
	threadIncl = warp.InclusiveScan(totals, op, warpSize)
	warps := (len(totals) + warpSize - 1) / warpSize
	warpTotals := make([]T, warps)
	for w := range warpTotals {
		last := min((w+1)*warpSize, len(totals)) - 1
		warpTotals[w] = threadIncl[last]
	}
	width := 1
	for width < warps {
		width <<= 1
	}
	warpIncl = warp.InclusiveScan(warpTotals, op, width)
	return threadIncl, warpIncl
}

// ExclusiveScan writes to dst, for every element of src, initial folded with
// all earlier elements, and returns the fold of src itself. dst may be src.
// An empty src returns the zero value.
func ExclusiveScan[T prim.Lanes](dst, src []T, initial T, op func(a, b T) T, warpSize, itemsPerThread int) T {
	if len(dst) != len(src) {
		panic("block: scan destination length mismatch")
	}
	if itemsPerThread < 1 {
		panic("block: items per thread must be at least 1")
	}
	if len(src) == 0 {
		var zero T
		return zero
	}
	totals := threadTotals(src, op, itemsPerThread)
	threadIncl, warpIncl := warpPrefixes(totals, op, warpSize)

	for t := 0; t < len(totals); t++ {
		acc := initial
		if w := t / warpSize; w > 0 {
			acc = op(acc, warpIncl[w-1])
		}
		if t%warpSize > 0 {
			acc = op(acc, threadIncl[t-1])
		}
		start := t * itemsPerThread
		end := min(start+itemsPerThread, len(src))
		for j := start; j < end; j++ {
			v := src[j]
			dst[j] = acc
			acc = op(acc, v)
		}
	}
	return warpIncl[len(warpIncl)-1]
}

// InclusiveScan writes to dst, for every element of src, the fold of src up
// to and including that element, and returns the fold of src. dst may be src.
func InclusiveScan[T prim.Lanes](dst, src []T, op func(a, b T) T, warpSize, itemsPerThread int) T {
	if len(dst) != len(src) {
		panic("block: scan destination length mismatch")
	}
	if itemsPerThread < 1 {
		panic("block: items per thread must be at least 1")
	}
	if len(src) == 0 {
		var zero T
		return zero
	}
	totals := threadTotals(src, op, itemsPerThread)
	threadIncl, warpIncl := warpPrefixes(totals, op, warpSize)

	for t := 0; t < len(totals); t++ {
		var acc T
		hasAcc := false
		if w := t / warpSize; w > 0 {
			acc = warpIncl[w-1]
			hasAcc = true
		}
		if t%warpSize > 0 {
			if hasAcc {
				acc = op(acc, threadIncl[t-1])
			} else {
				acc = threadIncl[t-1]
				hasAcc = true
			}
		}
		start := t * itemsPerThread
		end := min(start+itemsPerThread, len(src))
		for j := start; j < end; j++ {
			v := src[j]
			if hasAcc {
				acc = op(acc, v)
			} else {
				acc = v
				hasAcc = true
			}
			dst[j] = acc
		}
	}
	return warpIncl[len(warpIncl)-1]
}
