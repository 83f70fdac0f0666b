// Package device provides device-wide operations: radix sort, reductions,
// and prefix scans over whole input slices.
//
// Work is split into tiles of Config.BlockSize * Config.ItemsPerThread
// elements, and consecutive tiles are folded into at most
// Config.MaxGridBlocks batches. Each launched group owns one batch and
// walks its tiles in order; launches are the only synchronization between
// groups.
//
// # Sort pipeline
//
// One sorting pass over a digit window runs four launches:
//
//  1. histogram: every batch counts its keys per digit value without
//     atomics, using ballot intersection within each warp
//  2. batch scan: for every digit, the per-batch counts become exclusive
//     offsets of the batch within the digit, and the digit totals drop out
//  3. digit scan: the digit totals become global digit start positions
//  4. sort and scatter: every batch sorts each of its tiles by the digit
//     window and writes elements to their final positions for this pass
//
// Passes proceed from the least significant digit window upward, ping-pong
// between the output and a scratch buffer, and land the final pass in the
// caller's output. Keys are compared through an order-preserving bit-key
// encoding; each pass encodes on load and decodes on store, so the buffers
// between passes hold plain keys.
//
// # Scratch
//
// Device operations follow a query-then-execute contract: ask for the
// scratch size for an input length, provide a byte buffer at least that
// large, then execute. Scratch buffers may be reused across calls and
// operations as long as the size still fits.
//
// # Example
//
//	sorter, err := device.NewSorter[uint64, prim.Empty](device.Options{Grid: g})
//	if err != nil {
//		return err
//	}
//	scratch := make([]byte, sorter.ScratchSize(len(keys)))
//	if err := sorter.Sort(keys, out, nil, nil, scratch); err != nil {
//		return err
//	}
package device
