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

// Package prim provides device-style parallel primitives with cooperative
// lane, group, and device scopes.
//
// It follows the layered design of GPU primitive libraries: lane collectives
// (package warp) compose into cooperative-group collectives (package block),
// which compose into device-wide operations (package device) such as radix
// sort, reductions, and prefix scans. Work is distributed over a persistent
// worker pool (package grid); launching a kernel and waiting for it is the
// only synchronization between groups.
//
// Basic usage:
//
//	import (
//		"github.com/amdrake/go-prim/prim"
//		"github.com/amdrake/go-prim/prim/device"
//		"github.com/amdrake/go-prim/prim/grid"
//	)
//
//	g := grid.New(0)
//	defer g.Close()
//
//	sorter, err := device.NewSorter[uint32, prim.Empty](device.Options{Grid: g})
//	if err != nil {
//		return err
//	}
//	scratch := make([]byte, sorter.ScratchSize(len(keys)))
//	err = sorter.Sort(keys, out, nil, nil, scratch)
package prim

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be carried in lanes.
type Lanes interface {
	Floats | Integers
}

// Empty is the value type of a keys-only operation. It occupies no storage
// and is never moved.
type Empty struct{}

// KeyValuePair carries a key together with its associated value.
// Reductions that track positions, such as ArgMin, use Key for the index.
type KeyValuePair[K, V any] struct {
	Key   K
	Value V
}
