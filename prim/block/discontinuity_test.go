package block

import "testing"

// TestFlagHeadsAndTails checks run boundary flags.
func TestFlagHeadsAndTails(t *testing.T) {
	values := []int{7, 7, 3, 3, 3, 9, 7}
	heads := make([]bool, len(values))
	tails := make([]bool, len(values))
	FlagHeadsAndTails(heads, tails, values)

	wantHeads := []bool{true, false, true, false, false, true, true}
	wantTails := []bool{false, true, false, false, true, true, true}
	for i := range values {
		if heads[i] != wantHeads[i] {
			t.Errorf("heads[%d] = %v, want %v", i, heads[i], wantHeads[i])
		}
		if tails[i] != wantTails[i] {
			t.Errorf("tails[%d] = %v, want %v", i, tails[i], wantTails[i])
		}
	}
}

// TestFlagSingleRun checks one run spanning the whole tile.
func TestFlagSingleRun(t *testing.T) {
	values := []uint8{5, 5, 5, 5}
	heads := make([]bool, 4)
	tails := make([]bool, 4)
	FlagHeadsAndTails(heads, tails, values)
	for i := range values {
		wantHead := i == 0
		wantTail := i == 3
		if heads[i] != wantHead || tails[i] != wantTail {
			t.Errorf("index %d = (head %v, tail %v), want (%v, %v)",
				i, heads[i], tails[i], wantHead, wantTail)
		}
	}
}

// TestFlagEmpty checks the empty tile.
func TestFlagEmpty(t *testing.T) {
	FlagHeadsAndTails[int](nil, nil, nil)
}
