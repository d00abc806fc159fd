// Package automaton implements the Simulation State and Step Driver that
// tie every other package together: per-rank bring-up, the per-generation
// halo/kernel/reduce/stop loop, and teardown.
package automaton

import (
	"github.com/mpol1t/glider/internal/halo"
	"github.com/mpol1t/glider/internal/rng"
	"github.com/mpol1t/glider/internal/tile"
	"github.com/mpol1t/glider/internal/topology"
)

// Rank holds one process's share of the Simulation State: its descriptor,
// generation buffer pair, halo exchanger and local PRNG.
type Rank struct {
	Descriptor topology.Descriptor
	Buffers    *tile.Pair
	Exchanger  *halo.Exchanger
	RNG        *rng.Generator
}
