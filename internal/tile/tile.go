// Package tile owns the augmented per-process sub-lattice: a tile's
// interior plus its one-cell halo border, and the pair of generation
// buffers the kernel alternates between.
package tile

// Cell holds a single lattice site: 0 (dead) or 1 (alive).
type Cell = byte

// Tile is a (H+2) x (W+2) row-major augmented sub-lattice. Interior indices
// run 1..H by 1..W; index 0 and H+1 (resp. W+1) are the halo border.
type Tile struct {
	H, W   int
	stride int
	data   []Cell
}

// New allocates a zero-filled augmented tile for an H x W interior.
func New(h, w int) *Tile {
	stride := w + 2
	return &Tile{
		H:      h,
		W:      w,
		stride: stride,
		data:   make([]Cell, (h+2)*stride),
	}
}

// Get returns the augmented-index cell at (i, j), where i in [0, H+1] and
// j in [0, W+1].
func (t *Tile) Get(i, j int) Cell {
	return t.data[i*t.stride+j]
}

// Set writes the augmented-index cell at (i, j).
func (t *Tile) Set(i, j int, v Cell) {
	t.data[i*t.stride+j] = v
}

// ZeroHalo clears every halo cell, leaving the interior untouched. Called
// once at allocation time; the halo exchange only ever overwrites a halo
// cell it has a real neighbour for, so cells on a boundary without a
// neighbour stay zero for the lifetime of the run.
func (t *Tile) ZeroHalo() {
	top, bottom := 0, t.H+1
	for j := 0; j < t.stride; j++ {
		t.data[top*t.stride+j] = 0
		t.data[bottom*t.stride+j] = 0
	}
	for i := 1; i <= t.H; i++ {
		t.data[i*t.stride+0] = 0
		t.data[i*t.stride+t.W+1] = 0
	}
}

// TopRow copies the first interior row (i=1) into dst, which must have
// length W.
func (t *Tile) TopRow(dst []Cell) { t.copyRow(1, dst) }

// BottomRow copies the last interior row (i=H) into dst.
func (t *Tile) BottomRow(dst []Cell) { t.copyRow(t.H, dst) }

// LeftCol copies the first interior column (j=1) into dst, which must have
// length H.
func (t *Tile) LeftCol(dst []Cell) { t.copyCol(1, dst) }

// RightCol copies the last interior column (j=W) into dst.
func (t *Tile) RightCol(dst []Cell) { t.copyCol(t.W, dst) }

func (t *Tile) copyRow(i int, dst []Cell) {
	copy(dst, t.data[i*t.stride+1:i*t.stride+1+t.W])
}

func (t *Tile) copyCol(j int, dst []Cell) {
	for i := 0; i < t.H; i++ {
		dst[i] = t.data[(i+1)*t.stride+j]
	}
}

// SetTopHalo scatters src (length W) into the row above the interior (i=0).
func (t *Tile) SetTopHalo(src []Cell) { t.setRow(0, src) }

// SetBottomHalo scatters src into the row below the interior (i=H+1).
func (t *Tile) SetBottomHalo(src []Cell) { t.setRow(t.H+1, src) }

// SetLeftHalo scatters src (length H) into the column left of the interior
// (j=0).
func (t *Tile) SetLeftHalo(src []Cell) { t.setCol(0, src) }

// SetRightHalo scatters src into the column right of the interior (j=W+1).
func (t *Tile) SetRightHalo(src []Cell) { t.setCol(t.W+1, src) }

func (t *Tile) setRow(i int, src []Cell) {
	copy(t.data[i*t.stride+1:i*t.stride+1+t.W], src)
}

func (t *Tile) setCol(j int, src []Cell) {
	for i := 0; i < t.H; i++ {
		t.data[(i+1)*t.stride+j] = src[i]
	}
}

// Interior copies the H x W interior out in row-major order, with no halo
// border, ready for a bitmap dump.
func (t *Tile) Interior() []Cell {
	out := make([]Cell, t.H*t.W)
	for i := 0; i < t.H; i++ {
		copy(out[i*t.W:(i+1)*t.W], t.data[(i+1)*t.stride+1:(i+1)*t.stride+1+t.W])
	}
	return out
}

// Pair owns the two generation buffers a rank alternates between. The
// current/next designation rotates by flipping an index rather than by
// swapping raw pointers, so both buffers keep a stable owning slot.
type Pair struct {
	bufs [2]*Tile
	cur  int
}

// NewPair allocates both generation buffers for an H x W interior.
func NewPair(h, w int) *Pair {
	p := &Pair{bufs: [2]*Tile{New(h, w), New(h, w)}}
	p.bufs[0].ZeroHalo()
	p.bufs[1].ZeroHalo()
	return p
}

// Current returns the buffer holding this generation's state.
func (p *Pair) Current() *Tile { return p.bufs[p.cur] }

// Next returns the buffer the next generation will be written into.
func (p *Pair) Next() *Tile { return p.bufs[1-p.cur] }

// Swap rotates current/next. The kernel sweep fully overwrites every
// interior cell of Next each generation, so no re-zeroing is needed here.
func (p *Pair) Swap() { p.cur = 1 - p.cur }
