package warp

import (
	"math/bits"
	"os"
	"strconv"
)

// Population counting backs every ballot query, so it is dispatched once at
// startup: the math/bits path compiles to a hardware instruction on CPUs
// that have one, with a portable tree reduction as fallback. The first
// available implementation in the table wins.

type count64Impl struct {
	name      string
	fn        func(uint64) int
	available bool
}

var count64Impls = []count64Impl{
	{"popcnt", count64Bits, hasPopCount && !noPopCountEnv()},
	{"tree", count64Tree, true},
}

var count64 = selectCount64().fn

func selectCount64() count64Impl {
	for _, impl := range count64Impls {
		if impl.available {
			return impl
		}
	}
	panic("warp: no population count implementation available")
}

// PopCountImpl returns the name of the selected population count
// implementation, "popcnt" or "tree".
func PopCountImpl() string {
	return selectCount64().name
}

// NoPopCountEnv checks if the PRIM_NO_POPCNT environment variable is set.
// When set, ballots are counted with the tree reduction regardless of CPU
// capabilities. This is useful for testing and debugging.
func NoPopCountEnv() bool {
	return noPopCountEnv()
}

func noPopCountEnv() bool {
	val := os.Getenv("PRIM_NO_POPCNT")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func count64Bits(mask uint64) int {
	return bits.OnesCount64(mask)
}

// count64Tree folds pair, nibble, and byte counts, then sums the bytes with
// one multiply.
func count64Tree(mask uint64) int {
	mask -= (mask >> 1) & 0x5555555555555555
	mask = mask&0x3333333333333333 + (mask>>2)&0x3333333333333333
	mask = (mask + mask>>4) & 0x0f0f0f0f0f0f0f0f
	return int((mask * 0x0101010101010101) >> 56)
}
