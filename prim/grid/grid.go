// Copyright 2026 The go-prim Authors. SPDX-License-Identifier: Apache-2.0

// Package grid runs cooperative groups on a persistent worker pool. A Grid
// is created once and reused across many kernel launches, so launching does
// not spawn goroutines.
//
// Launch runs one kernel invocation per group and returns only after every
// group has finished. That return is the only synchronization between
// groups: writes made by the kernel are visible to the caller, and to any
// later launch, once Launch returns. Kernels must therefore write to
// disjoint locations within a single launch.
//
// Usage:
//
//	g := grid.New(runtime.GOMAXPROCS(0))
//	defer g.Close()
//
//	for pass := range passes {
//	    if err := g.Launch(batches, func(batch int) {
//	        processBatch(pass, batch)
//	    }); err != nil {
//	        return err
//	    }
//	}
package grid

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Grid is a persistent worker pool that distributes groups to workers.
type Grid struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents one worker's share of a launch.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a grid with the specified number of workers. Workers are
// spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Grid {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	g := &Grid{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for n := 0; n < numWorkers; n++ {
		go g.worker()
	}

	return g
}

// worker is the main loop for each persistent worker goroutine.
func (g *Grid) worker() {
	for item := range g.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the grid.
// A nil grid has no workers.
func (g *Grid) NumWorkers() int {
	if g == nil {
		return 0
	}
	return g.numWorkers
}

// Close shuts down the grid. All pending work will complete.
// Calling Close multiple times is safe.
func (g *Grid) Close() {
	g.closeOnce.Do(func() {
		g.closed.Store(true)
		close(g.workC)
	})
}

// launchState collects the first panic raised by any group of a launch.
type launchState struct {
	once    sync.Once
	group   int
	value   any
	stalled atomic.Bool
}

func (s *launchState) run(group int, kernel func(group int)) {
	defer func() {
		if r := recover(); r != nil {
			s.once.Do(func() {
				s.group = group
				s.value = r
			})
			s.stalled.Store(true)
		}
	}()
	kernel(group)
}

func (s *launchState) err() error {
	if s.value == nil {
		return nil
	}
	return fmt.Errorf("grid: kernel panicked in group %d: %v", s.group, s.value)
}

// Launch runs kernel once for every group in [0, groups) and waits for all
// invocations to finish. Groups are handed to workers through an atomic
// cursor, so assignment order is not deterministic; kernels must not depend
// on it. A nil or closed grid runs the groups sequentially in the caller's
// goroutine.
//
// If any invocation panics, Launch recovers it, stops handing out further
// groups, and returns a single error once the started invocations finish.
// The contents of any output the kernel was writing are unspecified after
// an error.
func (g *Grid) Launch(groups int, kernel func(group int)) error {
	if groups <= 0 {
		return nil
	}

	var state launchState

	if g == nil || g.closed.Load() || g.numWorkers == 1 || groups == 1 {
		for i := 0; i < groups; i++ {
			if state.stalled.Load() {
				break
			}
			state.run(i, kernel)
		}
		return state.err()
	}

	workers := min(g.numWorkers, groups)

	var nextIdx atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for n := 0; n < workers; n++ {
		g.workC <- workItem{
			fn: func() {
				for !state.stalled.Load() {
					idx := int(nextIdx.Add(1)) - 1
					if idx >= groups {
						return
					}
					state.run(idx, kernel)
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
	return state.err()
}
