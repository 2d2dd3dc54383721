package scenario

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cmu"
	"github.com/sarchlab/cmu/hooking"
	"github.com/sarchlab/cmu/platform/sim"
)

var _ = Describe("Scenarios", func() {
	It("should list every scenario by name", func() {
		var names []string
		for _, s := range All() {
			names = append(names, s.Name)
			Expect(s.Description).NotTo(BeEmpty())
		}

		Expect(names).To(Equal([]string{
			"dma-in",
			"dma-out",
			"missing-clean",
			"missing-dsb",
			"missing-isb",
			"patch-code",
			"power-down",
		}))
	})

	It("should look scenarios up", func() {
		s, err := Lookup("missing-isb")

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Negative).To(BeTrue())

		_, err = Lookup("nope")
		Expect(err).To(MatchError(ContainSubstring(`unknown scenario "nope"`)))
	})

	DescribeTable("should pass on the default platform",
		func(name string) {
			s, err := Lookup(name)
			Expect(err).NotTo(HaveOccurred())

			res := Run(s, sim.DefaultConfig())

			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Passed()).To(BeTrue())
			Expect(res.Name).To(Equal(name))
		},
		Entry(nil, "patch-code"),
		Entry(nil, "dma-out"),
		Entry(nil, "dma-in"),
		Entry(nil, "power-down"),
		Entry(nil, "missing-clean"),
		Entry(nil, "missing-isb"),
		Entry(nil, "missing-dsb"),
	)

	DescribeTable("should pass with other cache geometries",
		func(config sim.Config) {
			for _, s := range All() {
				res := Run(s, config)
				Expect(res.Err).NotTo(HaveOccurred(), s.Name)
			}
		},
		Entry("64-byte lines", sim.DefaultConfig().WithLineSize(64)),
		Entry("small direct-mapped caches",
			sim.DefaultConfig().WithDCache(1024, 1).WithICache(1024, 1)),
		Entry("shallow write buffer",
			sim.DefaultConfig().WithWriteBufferDepth(1).WithPrefetchLines(1)),
	)

	It("should restore the installed platform", func() {
		prev := cmu.CurrentPlatform()

		s, _ := Lookup("dma-out")
		Run(s, sim.DefaultConfig())

		Expect(cmu.CurrentPlatform()).To(BeIdenticalTo(prev))
	})

	It("should report the platform activity", func() {
		s, _ := Lookup("patch-code")
		counter := hooking.NewPosCounter()

		res := Run(s, sim.DefaultConfig(), counter)

		Expect(res.Stats.DataBarriers).To(Equal(uint64(2)))
		Expect(res.Stats.InstructionBarriers).To(Equal(uint64(1)))
		Expect(counter.Count(sim.HookPosWriteBack)).To(Equal(uint64(1)))
	})

	It("should turn a bus fault into an error", func() {
		s, _ := Lookup("dma-out")

		res := Run(s, sim.DefaultConfig().WithMemorySize(4096))

		Expect(res.Passed()).To(BeFalse())
		Expect(res.Err).To(MatchError(ContainSubstring("aborted")))
	})

	It("should describe mismatches", func() {
		err := compare("device read", 0x40, []byte{1, 2}, []byte{1, 3})

		var m *Mismatch
		Expect(err).To(BeAssignableToTypeOf(m))
		Expect(err.Error()).To(Equal("device read at 0x40: want 01 02, got 01 03"))
		Expect(compare("same", 0, []byte{1}, []byte{1})).To(Succeed())
	})
})
