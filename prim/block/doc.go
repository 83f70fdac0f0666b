// Package block provides cooperative-group collectives over one tile of
// values: scans, reductions, tiled loads, layout exchanges, run boundary
// flags, and a bounded stable radix sort.
//
// A group of BlockSize threads owns ItemsPerThread consecutive elements
// each, so a tile holds BlockSize * ItemsPerThread elements. Collectives
// here take the tile as one flat slice in register file order: the elements
// of thread t occupy positions t*ItemsPerThread through
// (t+1)*ItemsPerThread - 1.
//
// Two arrangements of a tile appear throughout:
//
//   - blocked: thread t's i-th register holds element rank t*ItemsPerThread + i,
//     so the flat slice is in element order
//   - striped: thread t's i-th register holds element rank i*BlockSize + t
//
// Scans compose hierarchically: each thread folds its own items serially,
// warps scan the thread totals with shuffle rounds, one warp scans the warp
// totals, and every element combines its three prefixes. The composition is
// deterministic for a fixed warp size and items per thread.
package block
