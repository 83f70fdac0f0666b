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
	"unsafe"

	"github.com/amdrake/go-prim/prim"
)

// scratchAlign is the alignment of every typed region carved out of a
// scratch buffer. Regions never share a cache line, so groups writing
// neighbouring regions do not contend.
const scratchAlign = 64

func alignUp(n int) int {
	return (n + scratchAlign - 1) &^ (scratchAlign - 1)
}

// chunkSize returns the aligned scratch footprint of n elements of size
// elemSize, including the leading padding that rounds the region start up.
func chunkSize(n, elemSize int) int {
	return alignUp(n * elemSize)
}

// arena carves typed regions out of a caller-provided byte buffer.
// Regions start at scratchAlign-aligned addresses; the buffer itself may
// start anywhere, the arena skips ahead to the first aligned byte.
type arena struct {
	buf []byte
	off int
}

func newArena(scratch []byte) *arena {
	a := &arena{buf: scratch}
	if len(scratch) > 0 {
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(scratch)))
		a.off = int((scratchAlign - addr%scratchAlign) % scratchAlign)
	}
	return a
}

// carve returns the next n elements of type T from the arena. T is
// restricted to lane types: reinterpreting raw bytes as a type containing
// Go pointers would hide those pointers from the garbage collector.
// Panics when the buffer cannot hold the region, which means the caller
// sized the buffer with the wrong length or operation.
func carve[T prim.Lanes](a *arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	start := a.off
	a.off += chunkSize(n, size)
	if a.off > len(a.buf) {
		panic("device: scratch buffer too small")
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(a.buf[start:]))), n)
}
