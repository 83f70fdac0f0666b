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

// Command primbench times the device operations on random data and checks
// the results against serial references.
//
// Usage:
//
//	primbench -op sort -type uint64 -n 1000000 -workers 8
//	primbench -op sort -parallel 4 -repeat 3
//	primbench -op reduce -type float64 -n 500000
//	primbench -op scan -type int64 -n 1000000 -debug
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amdrake/go-prim/prim"
	"github.com/amdrake/go-prim/prim/device"
	"github.com/amdrake/go-prim/prim/grid"
)

var (
	op       = flag.String("op", "sort", "operation to run: sort, reduce, or scan")
	n        = flag.Int("n", 1_000_000, "number of elements")
	elemType = flag.String("type", "uint64", "element type: uint32, uint64, int64, or float64")
	workers  = flag.Int("workers", 0, "grid workers, 0 means GOMAXPROCS")
	seed     = flag.Int64("seed", 1, "random seed")
	verify   = flag.Bool("verify", true, "check results against a serial reference")
	repeat   = flag.Int("repeat", 1, "times to repeat the operation")
	parallel = flag.Int("parallel", 1, "concurrent sorters sharing the grid (sort only)")
	debug    = flag.Bool("debug", false, "log every kernel launch round")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("primbench: ")

	g := grid.New(*workers)
	defer g.Close()

	var logger *slog.Logger
	if *debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	opts := device.Options{Grid: g, Logger: logger}

	var err error
	switch *elemType {
	case "uint32":
		err = run[uint32](opts)
	case "uint64":
		err = run[uint64](opts)
	case "int64":
		err = run[int64](opts)
	case "float64":
		err = run[float64](opts)
	default:
		err = fmt.Errorf("unknown -type %q", *elemType)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run[T prim.Lanes](opts device.Options) error {
	switch *op {
	case "sort":
		return runSort[T](opts)
	case "reduce":
		return runReduce[T](opts)
	case "scan":
		return runScan[T](opts)
	default:
		return fmt.Errorf("unknown -op %q", *op)
	}
}

func runSort[T prim.Lanes](opts device.Options) error {
	sorter, err := device.NewSorter[T, prim.Empty](opts)
	if err != nil {
		return err
	}
	var eg errgroup.Group
	for w := 0; w < *parallel; w++ {
		w := w
		eg.Go(func() error {
			rng := rand.New(rand.NewSource(*seed + int64(w)))
			keys := randomValues[T](rng, *n)
			out := make([]T, len(keys))
			scratch := make([]byte, sorter.ScratchSize(len(keys)))
			for r := 0; r < *repeat; r++ {
				start := time.Now()
				if err := sorter.Sort(keys, out, nil, nil, scratch); err != nil {
					return err
				}
				report(fmt.Sprintf("sort %s w%d", *elemType, w), r, start)
			}
			if *verify {
				want := slices.Clone(keys)
				slices.Sort(want)
				if !slices.Equal(out, want) {
					return fmt.Errorf("sort verification failed (worker %d)", w)
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

func runReduce[T prim.Lanes](opts device.Options) error {
	rng := rand.New(rand.NewSource(*seed))
	values := randomValues[T](rng, *n)
	scratch := make([]byte, device.ReduceScratchSize[T](len(values), opts))
	var got T
	for r := 0; r < *repeat; r++ {
		start := time.Now()
		var err error
		got, err = device.Sum(values, scratch, opts)
		if err != nil {
			return err
		}
		report("reduce "+*elemType, r, start)
	}
	if *verify {
		var want T
		for _, v := range values {
			want += v
		}
		if !closeEnough(got, want) {
			return fmt.Errorf("reduce verification failed: got %v, want %v", got, want)
		}
	}
	return nil
}

func runScan[T prim.Lanes](opts device.Options) error {
	rng := rand.New(rand.NewSource(*seed))
	values := randomValues[T](rng, *n)
	out := make([]T, len(values))
	scratch := make([]byte, device.ScanScratchSize[T](len(values), opts))
	for r := 0; r < *repeat; r++ {
		start := time.Now()
		if err := device.ExclusiveScan(values, out, 0, prim.Plus[T], scratch, opts); err != nil {
			return err
		}
		report("scan "+*elemType, r, start)
	}
	if *verify {
		var acc T
		for i, v := range values {
			if !closeEnough(out[i], acc) {
				return fmt.Errorf("scan verification failed at %d: got %v, want %v", i, out[i], acc)
			}
			acc += v
		}
	}
	return nil
}

func report(name string, rep int, start time.Time) {
	elapsed := time.Since(start)
	log.Printf("%s n=%d rep=%d: %v (%.1f Melem/s)", name, *n, rep, elapsed.Round(time.Microsecond), float64(*n)/elapsed.Seconds()/1e6)
}

func randomValues[T prim.Lanes](rng *rand.Rand, n int) []T {
	values := make([]T, n)
	for i := range values {
		switch p := any(&values[i]).(type) {
		case *uint32:
			*p = rng.Uint32()
		case *uint64:
			*p = rng.Uint64()
		case *int64:
			*p = int64(rng.Uint64())
		case *float64:
			*p = rng.Float64()
		default:
			panic("unsupported element type")
		}
	}
	return values
}

func closeEnough[T prim.Lanes](got, want T) bool {
	switch g := any(got).(type) {
	case float64:
		w := any(want).(float64)
		return math.Abs(g-w) <= 1e-9*math.Max(1, math.Abs(w))
	default:
		return got == want
	}
}
