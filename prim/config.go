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

package prim

import "fmt"

// Config holds the tuning parameters shared by the device-wide operations.
// The zero value is not valid; start from DefaultConfig.
type Config struct {
	// WarpSize is the number of lanes in a warp. It must be a power of two
	// between 1 and 64 because ballots are carried in a uint64 mask.
	WarpSize int

	// BlockSize is the number of threads cooperating in one group.
	// It must be a multiple of WarpSize, and the number of warps per group
	// (BlockSize / WarpSize) must not exceed WarpSize so that warp totals
	// can be scanned by a single warp.
	BlockSize int

	// ItemsPerThread is the number of elements each thread owns in a tile.
	// A group processes BlockSize * ItemsPerThread elements per tile.
	ItemsPerThread int

	// RadixBits is the number of key bits sorted per pass. The radix size
	// (1 << RadixBits) must not exceed BlockSize.
	RadixBits int

	// ScanBlockSize and ScanItemsPerThread shape the group that scans
	// per-batch digit counts. Their product bounds MaxGridBlocks.
	ScanBlockSize      int
	ScanItemsPerThread int

	// MaxGridBlocks caps the number of groups launched per pass. Work is
	// folded into at most this many batches of consecutive tiles.
	MaxGridBlocks int
}

// DefaultConfig returns the tuning used when no configuration is given.
func DefaultConfig() Config {
	return Config{
		WarpSize:           64,
		BlockSize:          256,
		ItemsPerThread:     4,
		RadixBits:          8,
		ScanBlockSize:      256,
		ScanItemsPerThread: 4,
		MaxGridBlocks:      1024,
	}
}

// ItemsPerBlock returns the tile width in elements.
func (c Config) ItemsPerBlock() int {
	return c.BlockSize * c.ItemsPerThread
}

// RadixSize returns the number of digit values per pass.
func (c Config) RadixSize() int {
	return 1 << c.RadixBits
}

// Validate checks the configuration invariants. Device operations reject
// invalid configurations before doing any work.
func (c Config) Validate() error {
	if c.WarpSize < 1 || c.WarpSize > 64 || c.WarpSize&(c.WarpSize-1) != 0 {
		return fmt.Errorf("prim: warp size %d must be a power of two in [1, 64]", c.WarpSize)
	}
	if c.BlockSize < 1 || c.BlockSize%c.WarpSize != 0 {
		return fmt.Errorf("prim: block size %d must be a positive multiple of warp size %d", c.BlockSize, c.WarpSize)
	}
	if c.BlockSize/c.WarpSize > c.WarpSize {
		return fmt.Errorf("prim: block size %d exceeds %d warps of %d lanes", c.BlockSize, c.WarpSize, c.WarpSize)
	}
	if c.ItemsPerThread < 1 {
		return fmt.Errorf("prim: items per thread %d must be at least 1", c.ItemsPerThread)
	}
	if c.RadixBits < 1 || c.RadixBits > 16 {
		return fmt.Errorf("prim: radix bits %d must be in [1, 16]", c.RadixBits)
	}
	if c.RadixSize() > c.BlockSize {
		return fmt.Errorf("prim: radix size %d exceeds block size %d", c.RadixSize(), c.BlockSize)
	}
	if c.ScanBlockSize < 1 || c.ScanBlockSize%c.WarpSize != 0 {
		return fmt.Errorf("prim: scan block size %d must be a positive multiple of warp size %d", c.ScanBlockSize, c.WarpSize)
	}
	if c.ScanBlockSize/c.WarpSize > c.WarpSize {
		return fmt.Errorf("prim: scan block size %d exceeds %d warps of %d lanes", c.ScanBlockSize, c.WarpSize, c.WarpSize)
	}
	if c.ScanItemsPerThread < 1 {
		return fmt.Errorf("prim: scan items per thread %d must be at least 1", c.ScanItemsPerThread)
	}
	if c.MaxGridBlocks < 1 {
		return fmt.Errorf("prim: max grid blocks %d must be at least 1", c.MaxGridBlocks)
	}
	if c.MaxGridBlocks > c.ScanBlockSize*c.ScanItemsPerThread {
		return fmt.Errorf("prim: max grid blocks %d exceeds scan capacity %d", c.MaxGridBlocks, c.ScanBlockSize*c.ScanItemsPerThread)
	}
	return nil
}
