// Package pbm writes a tile's interior as a portable-bitmap (P1) file,
// grounded on original_source/src/io.h's to_pbm.
package pbm

import (
	"bufio"
	"fmt"
	"os"
)

const pixelsPerLine = 32

// Write encodes an H x W interior (row-major, one byte per cell, 1 meaning
// alive) as a P1 bitmap to path. Alive maps to pixel value 0 (ink), dead to
// 1 (paper); pixels wrap every 32 per line, matching to_pbm exactly.
func Write(path string, interior []byte, h, w int) error {
	if len(interior) != h*w {
		return fmt.Errorf("pbm: interior length %d does not match %dx%d", len(interior), h, w)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pbm: %w", err)
	}
	defer f.Close()

	out := bufio.NewWriter(f)

	fmt.Fprintf(out, "P1\n")
	fmt.Fprintf(out, "%d %d\n", w, h)

	cursor := 0
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			cursor++

			value := 1
			if interior[i*w+j] == 1 {
				value = 0
			}

			switch {
			case cursor == 1:
				fmt.Fprintf(out, "%d", value)
			case cursor < pixelsPerLine:
				fmt.Fprintf(out, " %d", value)
			default:
				fmt.Fprintf(out, " %d\n", value)
				cursor = 0
			}
		}
	}
	if cursor != 0 {
		fmt.Fprintf(out, "\n")
	}

	return out.Flush()
}

// Path builds the filename pattern cell_<row>_<col>.pbm for a process's mesh
// coordinates.
func Path(dir string, row, col int) string {
	return fmt.Sprintf("%s/cell_%d_%d.pbm", dir, row, col)
}
