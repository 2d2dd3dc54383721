package cmu

import (
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Maintenance operations", func() {
	var (
		mockCtrl *gomock.Controller
		p        *MockPlatform
		prev     Platform
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		p = NewMockPlatform(mockCtrl)
		p.EXPECT().LineSize().Return(uintptr(32)).AnyTimes()
		prev = SetPlatform(p)
	})

	AfterEach(func() {
		SetPlatform(prev)
		mockCtrl.Finish()
	})

	Context("instruction cache", func() {
		It("should invalidate the whole cache, then issue both barriers", func() {
			gomock.InOrder(
				p.EXPECT().InvalidateICacheAll(),
				p.EXPECT().DataBarrier(),
				p.EXPECT().InstructionBarrier(),
			)

			InvalidateICache()
		})

		It("should invalidate every covered line, then issue both barriers", func() {
			gomock.InOrder(
				p.EXPECT().InvalidateICacheLine(uintptr(0x1000)),
				p.EXPECT().InvalidateICacheLine(uintptr(0x1020)),
				p.EXPECT().InvalidateICacheLine(uintptr(0x1040)),
				p.EXPECT().DataBarrier(),
				p.EXPECT().InstructionBarrier(),
			)

			InvalidateICacheRange(0x1010, 0x40)
		})

		It("should do nothing for an empty range", func() {
			InvalidateICacheRange(0x1010, 0)
		})

		It("should cover the last line of the address space", func() {
			gomock.InOrder(
				p.EXPECT().InvalidateICacheLine(^uintptr(0)-0x1f),
				p.EXPECT().DataBarrier(),
				p.EXPECT().InstructionBarrier(),
			)

			InvalidateICacheRange(^uintptr(0)-3, 4)
		})
	})

	Context("whole data cache", func() {
		It("should clean, then issue a data barrier", func() {
			gomock.InOrder(
				p.EXPECT().CleanDCacheAll(),
				p.EXPECT().DataBarrier(),
			)

			CleanDCache()
		})

		It("should flush, then issue a data barrier", func() {
			gomock.InOrder(
				p.EXPECT().FlushDCacheAll(),
				p.EXPECT().DataBarrier(),
			)

			FlushDCache()
		})

		It("should invalidate, then issue a data barrier", func() {
			gomock.InOrder(
				p.EXPECT().InvalidateDCacheAll(),
				p.EXPECT().DataBarrier(),
			)

			InvalidateDCache()
		})
	})

	Context("data cache ranges", func() {
		It("should clean exactly the lines of an aligned range", func() {
			gomock.InOrder(
				p.EXPECT().CleanDCacheLine(uintptr(0x2000)),
				p.EXPECT().CleanDCacheLine(uintptr(0x2020)),
				p.EXPECT().DataBarrier(),
			)

			CleanDCacheRange(0x2000, 0x40)
		})

		It("should flush a range inside one line as that line", func() {
			gomock.InOrder(
				p.EXPECT().FlushDCacheLine(uintptr(0x2000)),
				p.EXPECT().DataBarrier(),
			)

			FlushDCacheRange(0x2004, 8)
		})

		It("should invalidate both lines a range straddles", func() {
			gomock.InOrder(
				p.EXPECT().InvalidateDCacheLine(uintptr(0x2000)),
				p.EXPECT().InvalidateDCacheLine(uintptr(0x2020)),
				p.EXPECT().DataBarrier(),
			)

			InvalidateDCacheRange(0x201f, 2)
		})

		It("should step one line at a time over a large range", func() {
			var visited []uintptr
			p.EXPECT().CleanDCacheLine(gomock.Any()).
				Do(func(addr uintptr) { visited = append(visited, addr) }).
				Times(128)
			p.EXPECT().DataBarrier().Times(1)

			CleanDCacheRange(0x10000, 4096)

			for i, addr := range visited {
				Expect(addr).To(Equal(uintptr(0x10000 + i*32)))
			}
		})

		It("should cover the last line of the address space", func() {
			top := ^uintptr(0) - 0x1f

			gomock.InOrder(
				p.EXPECT().CleanDCacheLine(top),
				p.EXPECT().DataBarrier(),
			)

			CleanDCacheRange(^uintptr(0)-0x1e, 0x1e)
		})

		It("should cover a range that ends exactly at the top", func() {
			top := ^uintptr(0) - 0x1f

			gomock.InOrder(
				p.EXPECT().FlushDCacheLine(top-0x20),
				p.EXPECT().FlushDCacheLine(top),
				p.EXPECT().DataBarrier(),
			)

			FlushDCacheRange(top-0x20, 0x40)
		})

		DescribeTable("empty ranges do nothing",
			func(op func(base, size uintptr)) {
				op(0x2010, 0)
			},
			Entry("clean", CleanDCacheRange),
			Entry("flush", FlushDCacheRange),
			Entry("invalidate", InvalidateDCacheRange),
		)
	})

	Context("dispatch", func() {
		It("should run whole-cache operations", func() {
			gomock.InOrder(
				p.EXPECT().FlushDCacheAll(),
				p.EXPECT().DataBarrier(),
			)

			Do(OpFlushDCache, 0x1234, 0x10)
		})

		It("should run ranged operations", func() {
			gomock.InOrder(
				p.EXPECT().InvalidateDCacheLine(uintptr(0x1220)),
				p.EXPECT().InvalidateDCacheLine(uintptr(0x1240)),
				p.EXPECT().DataBarrier(),
			)

			Do(OpInvalidateDCacheRange, 0x1234, 0x10)
		})
	})

	Context("slices", func() {
		It("should allocate line-aligned buffers", func() {
			buf := MakeLineAlignedBuffer(40)

			addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
			Expect(addr % 32).To(BeZero())
			Expect(buf).To(HaveLen(40))
			Expect(cap(buf)).To(Equal(64))
			Expect(IsLineAligned(buf)).To(BeTrue())
		})

		It("should detect buffers that share lines", func() {
			buf := MakeLineAlignedBuffer(64)

			Expect(IsLineAligned(buf[1:])).To(BeFalse())
			Expect(IsLineAligned(buf[:40:40])).To(BeFalse())
			Expect(IsLineAligned(buf[:0])).To(BeTrue())
		})

		It("should clean the lines of a slice", func() {
			buf := MakeLineAlignedBuffer(40)
			base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))

			gomock.InOrder(
				p.EXPECT().CleanDCacheLine(base),
				p.EXPECT().CleanDCacheLine(base+32),
				p.EXPECT().DataBarrier(),
			)

			CleanDCacheSlice(buf)
		})

		It("should invalidate the instruction lines of a slice", func() {
			buf := MakeLineAlignedBuffer(16)
			base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))

			gomock.InOrder(
				p.EXPECT().InvalidateICacheLine(base),
				p.EXPECT().DataBarrier(),
				p.EXPECT().InstructionBarrier(),
			)

			InvalidateICacheSlice(buf)
		})

		It("should do nothing for an empty slice", func() {
			FlushDCacheSlice(nil)
			InvalidateDCacheSlice([]byte{})
		})
	})

	Context("platform installation", func() {
		It("should return the installed platform", func() {
			Expect(CurrentPlatform()).To(BeIdenticalTo(p))
		})

		It("should report the line span of the installed platform", func() {
			start, end := LineSpan(0x1001, 0x20)

			Expect(start).To(Equal(uintptr(0x1000)))
			Expect(end).To(Equal(uintptr(0x1040)))
		})

		It("should reject a nil platform", func() {
			Expect(func() { SetPlatform(nil) }).To(Panic())
		})

		It("should reject a line size that is not a power of two", func() {
			odd := NewMockPlatform(mockCtrl)
			odd.EXPECT().LineSize().Return(uintptr(24)).AnyTimes()

			Expect(func() { SetPlatform(odd) }).To(Panic())
			Expect(CurrentPlatform()).To(BeIdenticalTo(p))
		})
	})
})
