// Package cmu keeps the instruction and data caches of a CPU coherent with
// main memory when software changes what memory holds behind the caches.
//
// Use it after loading or patching code, around DMA transfers, and before
// entering a low-power state:
//
//	// Another bus master is going to read buf.
//	cmu.CleanDCacheRange(base, size)
//
//	// Another bus master wrote into buf.
//	cmu.InvalidateDCacheRange(base, size)
//
//	// Code was copied to entry and made visible in memory.
//	cmu.InvalidateICacheRange(entry, size)
//
// Every operation finishes with a data synchronization barrier, and the
// instruction cache operations also with an instruction synchronization
// barrier, so the maintenance is complete when the call returns.
//
// Ranged operations cover whole cache lines. An invalidation therefore also
// discards the bytes that share a line with the edges of the range. Buffers
// handed to DMA engines should be allocated with MakeLineAlignedBuffer.
//
// The cache is a single piece of hardware, so the operations are plain
// functions. The instructions they issue come from a Platform, chosen at
// build time: arm64 builds tagged baremetal use the ARMv8 instructions, other
// builds assume caches that the hardware keeps coherent. None of the
// operations is safe to call concurrently on the same core, and none
// coordinates with other cores.
package cmu
