package block

import (
	"github.com/amdrake/go-prim/prim"
	"github.com/amdrake/go-prim/prim/warp"
)

// Reduce folds a tile with the given operator and returns the result.
// Full warps use the butterfly reduction; a partial trailing warp and the
// per-warp results are folded serially in warp order, so the grouping is
// deterministic for a fixed warp size. An empty tile returns the zero value.
func Reduce[T prim.Lanes](values []T, op func(a, b T) T, warpSize int) T {
	if len(values) == 0 {
		var zero T
		return zero
	}
	full := len(values) / warpSize * warpSize

	var acc T
	hasAcc := false
	if full > 0 {
		reduced := warp.Reduce(values[:full], op, warpSize)
		for w := 0; w < full; w += warpSize {
			if hasAcc {
				acc = op(acc, reduced[w])
			} else {
				acc = reduced[w]
				hasAcc = true
			}
		}
	}
	for j := full; j < len(values); j++ {
		if hasAcc {
			acc = op(acc, values[j])
		} else {
			acc = values[j]
			hasAcc = true
		}
	}
	return acc
}
