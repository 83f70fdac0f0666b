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
	"log/slog"
	"time"
	"unsafe"

	"github.com/amdrake/go-prim/prim"
	"github.com/amdrake/go-prim/prim/grid"
)

// Options configure the device operations. The zero value uses
// DefaultConfig, covers the full key width ascending, and runs every
// kernel group sequentially on the calling goroutine.
type Options struct {
	// Descending orders keys from largest to smallest.
	Descending bool

	// BeginBit and EndBit bound the half-open window of key bits the sort
	// orders by. EndBit 0 means the full key width. Keys that agree on the
	// window keep their relative input order. Reductions and scans ignore
	// these fields.
	BeginBit int
	EndBit   int

	// Config tunes the group shapes. The zero value means DefaultConfig.
	Config prim.Config

	// Grid distributes kernel groups over its workers. nil runs groups
	// one after another on the calling goroutine; the results are the
	// same either way.
	Grid *grid.Grid

	// Logger, when set, receives a Debug record per device operation.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Config == (prim.Config{}) {
		o.Config = prim.DefaultConfig()
	}
	return o
}

// Sorter sorts keys of type K, optionally carrying one value of type V
// alongside every key. Use prim.Empty as V for a keys-only sorter.
// Construct with NewSorter; the zero value is not usable. A sorter is
// stateless between calls and safe for concurrent use with distinct
// buffers.
type Sorter[K prim.Lanes, V any] struct {
	cfg        prim.Config
	descending bool
	beginBit   int
	endBit     int
	grid       *grid.Grid
	logger     *slog.Logger
}

// NewSorter validates the options and returns a sorter.
func NewSorter[K prim.Lanes, V any](opts Options) (*Sorter[K, V], error) {
	opts = opts.withDefaults()
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if !prim.CanEncode[K]() {
		var key K
		return nil, fmt.Errorf("device: key type %T has no bit-key encoding", key)
	}
	keyBits := prim.KeyBits[K]()
	if opts.EndBit == 0 {
		opts.EndBit = keyBits
	}
	if opts.BeginBit < 0 || opts.BeginBit >= opts.EndBit || opts.EndBit > keyBits {
		return nil, fmt.Errorf("device: bit window [%d, %d) outside key width %d", opts.BeginBit, opts.EndBit, keyBits)
	}
	return &Sorter[K, V]{
		cfg:        opts.Config,
		descending: opts.Descending,
		beginBit:   opts.BeginBit,
		endBit:     opts.EndBit,
		grid:       opts.Grid,
		logger:     opts.Logger,
	}, nil
}

// ScratchSize returns the scratch bytes Sort and SortPass need for n keys.
// It depends only on n and the construction options, never on key values,
// so one buffer can be reused across calls of the same or smaller length.
// Zero for n <= 0.
func (s *Sorter[K, V]) ScratchSize(n int) int {
	if n <= 0 {
		return 0
	}
	part := newBatchPartition(n, s.cfg)
	radixSize := s.cfg.RadixSize()
	var key K
	size := scratchAlign
	size += chunkSize(part.batches*radixSize, int(unsafe.Sizeof(uint32(0))))
	size += chunkSize(radixSize, int(unsafe.Sizeof(uint32(0))))
	size += chunkSize(n, int(unsafe.Sizeof(key)))
	return size
}

// Sort sorts keysIn into keysOut and moves valuesIn into valuesOut
// alongside the keys. Pass nil for both value slices when no values are
// carried. Equal keys keep their input order.
//
// keysOut must not alias keysIn. All slices must have equal length and
// scratch must hold at least ScratchSize(len(keysIn)) bytes; length and
// scratch violations panic. The inputs are read only. A multi-pass sort
// parks intermediate runs in keysOut before the final pass lands there.
// The error return carries kernel failures only.
func (s *Sorter[K, V]) Sort(keysIn, keysOut []K, valuesIn, valuesOut []V, scratch []byte) error {
	n := len(keysIn)
	checkPairs(n, keysOut, valuesIn, valuesOut)
	if n == 0 {
		return nil
	}
	if len(scratch) < s.ScratchSize(n) {
		panic("device: scratch buffer too small")
	}

	part := newBatchPartition(n, s.cfg)
	radixSize := s.cfg.RadixSize()
	a := newArena(scratch)
	batchCounts := carve[uint32](a, part.batches*radixSize)
	digitCounts := carve[uint32](a, radixSize)
	keysTmp := carve[K](a, n)

	hasValues := valuesIn != nil
	passes := (s.endBit - s.beginBit + s.cfg.RadixBits - 1) / s.cfg.RadixBits
	var valuesTmp []V
	if hasValues && passes > 1 {
		valuesTmp = make([]V, n)
	}

	// Alternate the pass outputs so that the last pass writes the caller's
	// buffers: an odd number of passes starts there, an even number starts
	// in the scratch keys.
	ping, pingVals := keysOut, valuesOut
	pong, pongVals := keysTmp, valuesTmp
	if passes%2 == 0 {
		ping, pong = pong, ping
		pingVals, pongVals = pongVals, pingVals
	}

	from, fromVals := keysIn, valuesIn
	for pass, bit := 0, s.beginBit; bit < s.endBit; pass, bit = pass+1, bit+s.cfg.RadixBits {
		bits := min(s.cfg.RadixBits, s.endBit-bit)
		to, toVals := ping, pingVals
		if pass%2 == 1 {
			to, toVals = pong, pongVals
		}
		if err := s.runPass(from, to, fromVals, toVals, batchCounts, digitCounts, bit, bits, part); err != nil {
			return err
		}
		from, fromVals = to, toVals
	}
	return nil
}

// SortPass runs a single counting pass over the key bit window
// [bit, bit+bits), ordering keys by that window only. Keys that agree on
// the window keep their relative input order, so chaining passes from the
// least significant window upward reproduces Sort. Length, aliasing, and
// scratch constraints match Sort; bits must be in [1, Config.RadixBits]
// and the window must lie inside the sorter's bit window.
func (s *Sorter[K, V]) SortPass(keysIn, keysOut []K, valuesIn, valuesOut []V, bit, bits int, scratch []byte) error {
	n := len(keysIn)
	checkPairs(n, keysOut, valuesIn, valuesOut)
	if bits < 1 || bits > s.cfg.RadixBits {
		panic("device: pass width outside radix bits")
	}
	if bit < s.beginBit || bit+bits > s.endBit {
		panic("device: pass window outside sort window")
	}
	if n == 0 {
		return nil
	}
	if len(scratch) < s.ScratchSize(n) {
		panic("device: scratch buffer too small")
	}
	part := newBatchPartition(n, s.cfg)
	a := newArena(scratch)
	batchCounts := carve[uint32](a, part.batches*s.cfg.RadixSize())
	digitCounts := carve[uint32](a, s.cfg.RadixSize())
	return s.runPass(keysIn, keysOut, valuesIn, valuesOut, batchCounts, digitCounts, bit, bits, part)
}

// runPass launches the four kernels of one pass. Each launch is a full
// barrier, which is the only ordering the kernels rely on.
func (s *Sorter[K, V]) runPass(keysIn, keysOut []K, valuesIn, valuesOut []V, batchCounts, digitCounts []uint32, bit, bits int, part batchPartition) error {
	start := time.Now()
	cfg := s.cfg
	err := s.grid.Launch(part.batches, func(batch int) {
		fillDigitCounts(batch, keysIn, batchCounts, bit, bits, s.descending, cfg, part)
	})
	if err == nil {
		err = s.grid.Launch(cfg.RadixSize(), func(digit int) {
			scanBatches(digit, batchCounts, digitCounts, cfg, part)
		})
	}
	if err == nil {
		err = s.grid.Launch(1, func(int) {
			scanDigits(digitCounts, cfg)
		})
	}
	if err == nil {
		err = s.grid.Launch(part.batches, func(batch int) {
			sortAndScatter(batch, keysIn, keysOut, valuesIn, valuesOut, batchCounts, digitCounts, bit, bits, s.descending, cfg, part)
		})
	}
	if err != nil {
		return fmt.Errorf("device: sort pass at bit %d: %w", bit, err)
	}
	if s.logger != nil {
		s.logger.Debug("radix sort pass",
			"bit", bit,
			"bits", bits,
			"batches", part.batches,
			"elapsed", time.Since(start))
	}
	return nil
}

func checkPairs[K prim.Lanes, V any](n int, keysOut []K, valuesIn, valuesOut []V) {
	if len(keysOut) != n {
		panic("device: key output length mismatch")
	}
	if (valuesIn == nil) != (valuesOut == nil) {
		panic("device: values must be both nil or both set")
	}
	if valuesIn != nil && (len(valuesIn) != n || len(valuesOut) != n) {
		panic("device: value length mismatch")
	}
}
