package pbm_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mpol1t/glider/internal/pbm"
)

var _ = Describe("Write", func() {
	It("encodes a 3x3 interior with a single live centre cell exactly", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "cell_0_0.pbm")

		// hand-fed interior, only the centre alive: [[0,0,0],[0,1,0],[0,0,0]]
		interior := []byte{0, 0, 0, 0, 1, 0, 0, 0, 0}
		Expect(pbm.Write(path, interior, 3, 3)).To(Succeed())

		got, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(got)).To(Equal("P1\n3 3\n1 1 1 1 0 1 1 1 1\n"))
	})

	It("wraps at 32 pixels per line", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "cell_0_0.pbm")

		interior := make([]byte, 40) // single row, all dead
		Expect(pbm.Write(path, interior, 1, 40)).To(Succeed())

		got, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		lines := splitLines(string(got))
		Expect(lines).To(HaveLen(4)) // header x2 + two wrapped pixel lines
	})

	It("is idempotent", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "cell_1_2.pbm")

		interior := []byte{1, 0, 1, 1}
		Expect(pbm.Write(path, interior, 2, 2)).To(Succeed())
		first, _ := os.ReadFile(path)

		Expect(pbm.Write(path, interior, 2, 2)).To(Succeed())
		second, _ := os.ReadFile(path)

		Expect(first).To(Equal(second))
	})
})

var _ = Describe("Path", func() {
	It("follows the cell_<row>_<col>.pbm pattern", func() {
		Expect(pbm.Path("/tmp", 2, 3)).To(Equal("/tmp/cell_2_3.pbm"))
	})
})

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}
