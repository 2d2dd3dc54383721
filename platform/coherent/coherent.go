// Package coherent provides the platform for CPUs whose caches are kept
// coherent with memory and with other bus masters by the hardware, as on
// amd64.
//
// Such CPUs snoop DMA traffic and their own stores into the instruction
// stream, so no line needs to be cleaned or invalidated. The barriers are
// still ordering points.
package coherent

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Platform is the no-op maintenance platform.
type Platform struct {
	fence atomic.Uint64
}

// New creates a coherent platform.
func New() *Platform {
	return &Platform{}
}

// LineSize returns the cache line size the Go toolchain assumes for the
// target architecture.
func (p *Platform) LineSize() uintptr {
	return unsafe.Sizeof(cpu.CacheLinePad{})
}

// DataBarrier is a full memory fence. Atomic read-modify-write operations are
// sequentially consistent in Go.
func (p *Platform) DataBarrier() {
	p.fence.Add(1)
}

// InstructionBarrier is a fence as well. Coherent CPUs detect modified code on
// their own.
func (p *Platform) InstructionBarrier() {
	p.fence.Add(1)
}

// Barriers returns the number of barriers issued so far.
func (p *Platform) Barriers() uint64 {
	return p.fence.Load()
}

func (p *Platform) InvalidateICacheLine(addr uintptr) {}
func (p *Platform) CleanDCacheLine(addr uintptr)      {}
func (p *Platform) FlushDCacheLine(addr uintptr)      {}
func (p *Platform) InvalidateDCacheLine(addr uintptr) {}

func (p *Platform) InvalidateICacheAll() {}
func (p *Platform) CleanDCacheAll()      {}
func (p *Platform) FlushDCacheAll()      {}
func (p *Platform) InvalidateDCacheAll() {}
