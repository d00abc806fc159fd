package rng_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mpol1t/glider/internal/rng"
	"github.com/mpol1t/glider/internal/tile"
)

var _ = Describe("FanOut", func() {
	It("uses the global seed directly for a single process", func() {
		seeds := rng.FanOut(42, 1)
		Expect(seeds).To(Equal([]uint32{42}))
	})

	It("is a deterministic function of (seed, p)", func() {
		a := rng.FanOut(7, 4)
		b := rng.FanOut(7, 4)
		Expect(a).To(Equal(b))
		Expect(a).To(HaveLen(4))
	})

	It("derives different seeds per rank", func() {
		seeds := rng.FanOut(7, 4)
		seen := map[uint32]bool{}
		for _, s := range seeds {
			Expect(seen[s]).To(BeFalse())
			seen[s] = true
		}
	})
})

var _ = Describe("Generator", func() {
	It("is a pure function of its seed", func() {
		a := rng.NewGenerator(123)
		b := rng.NewGenerator(123)
		for i := 0; i < 10; i++ {
			Expect(a.Uint32()).To(Equal(b.Uint32()))
		}
	})
})

var _ = Describe("FillBernoulli", func() {
	It("leaves the halo at zero and fills the interior deterministically", func() {
		t1 := tile.New(4, 4)
		rng.FillBernoulli(t1, rng.NewGenerator(99), 0.5)

		t2 := tile.New(4, 4)
		rng.FillBernoulli(t2, rng.NewGenerator(99), 0.5)

		for i := 0; i <= 5; i++ {
			for j := 0; j <= 5; j++ {
				Expect(t1.Get(i, j)).To(Equal(t2.Get(i, j)))
			}
		}
		for j := 0; j <= 5; j++ {
			Expect(t1.Get(0, j)).To(Equal(byte(0)))
		}
	})

	It("produces no live cells at rho=0", func() {
		t := tile.New(8, 8)
		live := rng.FillBernoulli(t, rng.NewGenerator(1), 0)
		Expect(live).To(Equal(0))
	})
})
