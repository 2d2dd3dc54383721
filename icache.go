package cmu

// InvalidateICache discards every line of the instruction cache.
//
// Call it after code has been placed in memory by any means the instruction
// cache cannot observe, such as a relocation or a DMA transfer. Code written
// by this core through the data cache must be cleaned to memory first.
func InvalidateICache() {
	p := platform
	p.InvalidateICacheAll()
	p.DataBarrier()
	p.InstructionBarrier()
}

// InvalidateICacheRange discards the instruction cache lines that hold any
// byte of [base, base+size). A zero size does nothing.
func InvalidateICacheRange(base, size uintptr) {
	p := platform
	if !forEachLine(p, base, size, p.InvalidateICacheLine) {
		return
	}

	p.DataBarrier()
	p.InstructionBarrier()
}
