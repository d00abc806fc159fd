package sink_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mpol1t/glider/internal/sink"
)

var _ = Describe("SlogLogger", func() {
	It("does not panic emitting worker placement, verbose or not", func() {
		quiet := sink.NewSlogLogger(false)
		loud := sink.NewSlogLogger(true)

		Expect(func() { quiet.WorkerPlacement(0, 0, 0, 4, 4) }).NotTo(Panic())
		Expect(func() { loud.WorkerPlacement(0, 0, 0, 4, 4) }).NotTo(Panic())
	})

	It("does not panic emitting the three core record kinds", func() {
		l := sink.NewSlogLogger(false)
		Expect(func() { l.Configuration(768, 0.49, 0, 7680) }).NotTo(Panic())
		Expect(func() { l.Interval(100, 42) }).NotTo(Panic())
		Expect(func() { l.StopReason(100, "collapse") }).NotTo(Panic())
	})
})

var _ = Describe("FileDumper", func() {
	It("writes a bitmap at the conventional path", func() {
		dir := GinkgoT().TempDir()
		d := sink.NewFileDumper(dir)

		interior := []byte{1, 0, 0, 1}
		Expect(d.Dump(1, 2, interior, 2, 2)).To(Succeed())

		_, err := os.Stat(filepath.Join(dir, "cell_1_2.pbm"))
		Expect(err).NotTo(HaveOccurred())
	})
})
