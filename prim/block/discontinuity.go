package block

// FlagHeadsAndTails marks the boundaries of runs of equal values: heads[i]
// is set when values[i] differs from its predecessor and tails[i] when it
// differs from its successor. The first element is always a head and the
// last always a tail. All three slices must have the same length.
func FlagHeadsAndTails[T comparable](heads, tails []bool, values []T) {
	n := len(values)
	if len(heads) != n || len(tails) != n {
		panic("block: flag length mismatch")
	}
	if n == 0 {
		return
	}
	heads[0] = true
	for i := 1; i < n; i++ {
		heads[i] = values[i] != values[i-1]
		tails[i-1] = heads[i]
	}
	tails[n-1] = true
}
