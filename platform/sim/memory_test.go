package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Memory", func() {
	var m *Memory

	BeforeEach(func() {
		m = NewMemory(64 * KB)
	})

	It("should read zero from untouched memory", func() {
		data, err := m.Read(0x100, 8)

		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal(make([]byte, 8)))
	})

	It("should read back writes that cross units", func() {
		data := []byte{1, 2, 3, 4, 5, 6, 7, 8}

		Expect(m.Write(memoryUnitSize-4, data)).To(Succeed())

		read, err := m.Read(memoryUnitSize-4, 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(Equal(data))
	})

	It("should reject accesses beyond the capacity", func() {
		_, err := m.Read(64*KB-4, 8)
		Expect(err).To(HaveOccurred())

		Expect(m.Write(64*KB, []byte{1})).NotTo(Succeed())
	})
})
