// Package warp provides lane-scope collectives: shuffles, ballots,
// population counts, scans, and reductions over groups of lanes.
//
// A warp is a group of lanes that exchange values without going through
// memory owned by other groups. Here each collective is a pure function
// over a slice of per-lane values, so a whole warp step is computed at
// once. The width argument selects a logical warp size; it must be a
// power of two, and a slice longer than width is treated as consecutive
// independent subsections of width lanes each.
//
// # Shuffles
//
// Shuffle selects an absolute source lane within each subsection. ShuffleUp
// and ShuffleDown shift by a delta and keep the lane's own value where the
// source would cross a subsection boundary. ShuffleXor exchanges values
// between lanes whose indices differ in the given bit pattern.
//
// # Ballots
//
// Ballot packs one predicate per lane into a uint64 mask, so a warp holds at
// most 64 lanes. BitCount and MaskedBitCount count mask bits; the masked form
// counts only bits below the calling lane, which yields the lane's rank among
// the voters.
//
// # Scans and reductions
//
// InclusiveScan and ExclusiveScan run log2(width) shuffle rounds per
// subsection. Reduce uses a butterfly of xor shuffles; lane 0 of each
// subsection ends up with the lane-order fold, and commutative operators
// see it in every lane.
//
// # Example
//
//	votes := warp.Ballot([]bool{true, false, true, true})
//	rank := warp.MaskedBitCount(votes, 3) // lanes 0 and 2 voted before lane 3
package warp
