package topology_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mpol1t/glider/internal/topology"
)

var _ = Describe("Dims", func() {
	It("picks the closest-to-square divisor pair", func() {
		rows, cols := topology.Dims(1)
		Expect(rows).To(Equal(1))
		Expect(cols).To(Equal(1))

		rows, cols = topology.Dims(4)
		Expect(rows).To(Equal(2))
		Expect(cols).To(Equal(2))

		rows, cols = topology.Dims(9)
		Expect(rows).To(Equal(3))
		Expect(cols).To(Equal(3))

		rows, cols = topology.Dims(8)
		Expect(rows).To(Equal(2))
		Expect(cols).To(Equal(4))
	})

	It("falls back to a 1xP strip for a prime count", func() {
		rows, cols := topology.Dims(7)
		Expect(rows).To(Equal(1))
		Expect(cols).To(Equal(7))
	})
})

var _ = Describe("NewDescriptor", func() {
	It("rejects a lattice too small to tile", func() {
		_, err := topology.NewDescriptor(0, 4, 1)
		Expect(err).To(HaveOccurred())

		var cfgErr *topology.ConfigError
		Expect(err).To(BeAssignableToTypeOf(cfgErr))
	})

	It("wraps columns but not rows at a 2x2 mesh edge", func() {
		d, err := topology.NewDescriptor(0, 4, 4)
		Expect(err).NotTo(HaveOccurred())

		Expect(d.Row).To(Equal(0))
		Expect(d.Col).To(Equal(0))
		Expect(d.Up).To(Equal(topology.NoRank))
		Expect(d.Down).NotTo(Equal(topology.NoRank))
		Expect(d.Left).NotTo(Equal(topology.NoRank)) // wraps to the last column
		Expect(d.Right).NotTo(Equal(topology.NoRank))
		Expect(d.HasNeighbour(topology.Up)).To(BeFalse())
		Expect(d.HasNeighbour(topology.Left)).To(BeTrue())
	})

	It("covers the full lattice across every rank", func() {
		const n = 17
		const p = 6

		rows, cols := topology.Dims(p)
		var total int
		for r := 0; r < p; r++ {
			d, err := topology.NewDescriptor(r, p, n)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Rows).To(Equal(rows))
			Expect(d.Cols).To(Equal(cols))
			total += d.H * d.W
		}

		Expect(total).To(Equal(n * n))
	})

	It("absorbs the division remainder on the trailing row and column", func() {
		d, err := topology.NewDescriptor(3, 4, 5) // 2x2 mesh, n=5: base 2, last gets 3
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Row).To(Equal(1))
		Expect(d.Col).To(Equal(1))
		Expect(d.H).To(Equal(3))
		Expect(d.W).To(Equal(3))
	})
})
