package cmu

// CleanDCache writes every dirty line of the data cache back to memory. The
// lines stay valid.
func CleanDCache() {
	p := platform
	p.CleanDCacheAll()
	p.DataBarrier()
}

// FlushDCache writes every dirty line of the data cache back to memory and
// then discards all lines. Use it before powering the cache down or handing
// the whole memory to another master.
func FlushDCache() {
	p := platform
	p.FlushDCacheAll()
	p.DataBarrier()
}

// InvalidateDCache discards every line of the data cache without writing
// anything back. Dirty data that was never cleaned is lost, including the
// caller's own stack, so it is only safe where nothing in the cache is live,
// for example right after the cache is enabled.
func InvalidateDCache() {
	p := platform
	p.InvalidateDCacheAll()
	p.DataBarrier()
}

// CleanDCacheRange writes the dirty data cache lines that hold any byte of
// [base, base+size) back to memory. Call it before another bus master reads
// the range. A zero size does nothing.
func CleanDCacheRange(base, size uintptr) {
	p := platform
	if forEachLine(p, base, size, p.CleanDCacheLine) {
		p.DataBarrier()
	}
}

// FlushDCacheRange cleans and then discards the data cache lines that hold
// any byte of [base, base+size). A zero size does nothing.
func FlushDCacheRange(base, size uintptr) {
	p := platform
	if forEachLine(p, base, size, p.FlushDCacheLine) {
		p.DataBarrier()
	}
}

// InvalidateDCacheRange discards the data cache lines that hold any byte of
// [base, base+size) without writing them back. Call it after another bus
// master wrote the range and before this core reads it. A zero size does
// nothing.
//
// Bytes outside the range that share a line with its first or last byte are
// discarded as well.
func InvalidateDCacheRange(base, size uintptr) {
	p := platform
	if forEachLine(p, base, size, p.InvalidateDCacheLine) {
		p.DataBarrier()
	}
}
