package warp

import (
	"math/rand"
	"testing"

	"github.com/amdrake/go-prim/prim"
)

// TestInclusiveScan checks per-subsection prefix sums against a serial
// reference across widths and lane counts.
func TestInclusiveScan(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, width := range testWidths {
		for _, n := range []int{width, 2 * width, 4 * width, width + width/2} {
			if n == 0 {
				continue
			}
			values := randLanes(rng, n)
			got := InclusiveScan(values, prim.Plus, width)
			for lane := range values {
				var want int32
				for j := lane &^ (width - 1); j <= lane; j++ {
					want += values[j]
				}
				if got[lane] != want {
					t.Fatalf("InclusiveScan(width=%d, n=%d) lane %d = %d, want %d",
						width, n, lane, got[lane], want)
				}
			}
		}
	}
}

// TestExclusiveScan checks the shifted form with an initial value.
func TestExclusiveScan(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, width := range testWidths {
		values := randLanes(rng, 2*width)
		got := ExclusiveScan(values, int32(100), prim.Plus, width)
		for lane := range values {
			want := int32(100)
			for j := lane &^ (width - 1); j < lane; j++ {
				want += values[j]
			}
			if got[lane] != want {
				t.Fatalf("ExclusiveScan(width=%d) lane %d = %d, want %d",
					width, lane, got[lane], want)
			}
		}
	}
}

// TestScanMaxOperator checks scans with a non-additive operator.
func TestScanMaxOperator(t *testing.T) {
	values := []int32{3, 1, 4, 1, 5, 9, 2, 6}
	got := InclusiveScan(values, prim.Maximum, 8)
	want := []int32{3, 3, 4, 4, 5, 9, 9, 9}
	for lane := range got {
		if got[lane] != want[lane] {
			t.Errorf("running max lane %d = %d, want %d", lane, got[lane], want[lane])
		}
	}
}

// TestReduce checks the butterfly reduction against serial folds.
func TestReduce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, width := range testWidths {
		values := randLanes(rng, 3*width)
		got := Reduce(values, prim.Plus, width)
		for sub := 0; sub < len(values); sub += width {
			var want int32
			for j := sub; j < sub+width; j++ {
				want += values[j]
			}
			for lane := sub; lane < sub+width; lane++ {
				if got[lane] != want {
					t.Fatalf("Reduce(width=%d) lane %d = %d, want %d", width, lane, got[lane], want)
				}
			}
		}
	}
}

// TestReduceRejectsPartialWarp checks the multiple-of-width requirement.
func TestReduceRejectsPartialWarp(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Reduce accepted a partial subsection")
		}
	}()
	Reduce([]int32{1, 2, 3}, prim.Plus, 4)
}
