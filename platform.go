package cmu

// A Platform provides the raw cache maintenance instructions of a CPU.
//
// The per-line primitives act on the single line that contains addr. Callers
// in this package always pass line-aligned addresses. None of the primitives
// needs to issue a barrier; barrier placement is handled by the operations of
// this package.
type Platform interface {
	// LineSize returns the cache line size in bytes. It must be a power of
	// two and must not change after the platform is installed.
	LineSize() uintptr

	// DataBarrier waits until all previous memory accesses and cache
	// maintenance instructions are complete and visible to every bus master.
	DataBarrier()

	// InstructionBarrier discards instructions the core has already fetched,
	// so that the following instructions are fetched again.
	InstructionBarrier()

	InvalidateICacheLine(addr uintptr)
	CleanDCacheLine(addr uintptr)
	FlushDCacheLine(addr uintptr)
	InvalidateDCacheLine(addr uintptr)

	InvalidateICacheAll()
	CleanDCacheAll()
	FlushDCacheAll()
	InvalidateDCacheAll()
}

var platform = defaultPlatform()

// SetPlatform installs p as the platform all operations run on and returns
// the previously installed one. It is meant for board bring-up code and
// tests. It must not race with any maintenance operation.
func SetPlatform(p Platform) Platform {
	if p == nil {
		panic("cmu: nil platform")
	}

	if !isPowerOfTwo(p.LineSize()) {
		panic("cmu: line size must be a power of two")
	}

	prev := platform
	platform = p

	return prev
}

// CurrentPlatform returns the installed platform.
func CurrentPlatform() Platform {
	return platform
}

func isPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}
