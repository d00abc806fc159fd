// Package rng derives per-rank PRNG seeds from one global seed and fills a
// tile's interior with a Bernoulli(rho) distribution.
//
// Grounded on original_source/src/automaton.c's random_seeds (host rand()
// fan-out) and random_augmented_population.
package rng

import "github.com/mpol1t/glider/internal/tile"

// lcgMultiplier/lcgIncrement are the parameters of the classic Numerical
// Recipes 32-bit linear congruential generator; the modulus 2^32 is implicit
// in uint32 wrap-around. Any uniform
// generator is permitted by spec; this one is documented and reproducible.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
)

// Generator is a minimal, reproducible 32-bit LCG PRNG.
type Generator struct {
	state uint32
}

// NewGenerator seeds a Generator. The seed is used as-is, including zero.
func NewGenerator(seed uint32) *Generator {
	return &Generator{state: seed}
}

// Uint32 returns the next 32-bit draw and advances the generator.
func (g *Generator) Uint32() uint32 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return g.state
}

// Float64 returns a draw uniform on [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.Uint32()) / float64(1<<32)
}

// FanOut derives p per-rank seeds from one global seed: a host generator is
// seeded with seed, and rank r receives the r-th draw. For p == 1 the
// global seed is used directly, with no derivation round.
func FanOut(seed uint32, p int) []uint32 {
	if p == 1 {
		return []uint32{seed}
	}

	host := NewGenerator(seed)
	seeds := make([]uint32, p)
	for r := 0; r < p; r++ {
		seeds[r] = host.Uint32()
	}
	return seeds
}

// FillBernoulli fills t's interior independently at random: cell (i, j) is
// alive iff a draw from [0, 1) is less than rho. The halo is left zeroed
// (callers construct tiles via tile.NewPair, which already zero-fills).
// Returns the number of live cells placed.
func FillBernoulli(t *tile.Tile, g *Generator, rho float64) int {
	live := 0
	for i := 1; i <= t.H; i++ {
		for j := 1; j <= t.W; j++ {
			var v tile.Cell
			if g.Float64() < rho {
				v = 1
				live++
			}
			t.Set(i, j, v)
		}
	}
	return live
}
