// Package kernel implements the outer-totalistic stencil update: the
// 5-cell cross-shaped neighbourhood sum and the local full-tile sweep.
//
// Grounded on original_source/src/population_utils.h's compute_state_sum /
// update_cell / update_population.
package kernel

import "github.com/mpol1t/glider/internal/tile"

// Next returns the next state of a cell given the sum of itself and its
// four rook-adjacent neighbours. The rule is deliberately asymmetric and
// distinct from Conway's Life: only totals 2, 4 and 5 produce a live cell.
func Next(sum int) bool {
	return sum == 2 || sum == 4 || sum == 5
}

// Sweep advances every interior cell of cur into next and returns the
// number of cells that came out alive. Halo cells are read but never
// written; cur and next must have identical shape.
func Sweep(cur, next *tile.Tile) int {
	live := 0

	for i := 1; i <= cur.H; i++ {
		for j := 1; j <= cur.W; j++ {
			sum := int(cur.Get(i, j)) +
				int(cur.Get(i-1, j)) +
				int(cur.Get(i+1, j)) +
				int(cur.Get(i, j-1)) +
				int(cur.Get(i, j+1))

			var v tile.Cell
			if Next(sum) {
				v = 1
				live++
			}
			next.Set(i, j, v)
		}
	}

	return live
}
