// Package sim provides a simulated memory system that implements
// cmu.Platform, so that cache maintenance code can be exercised and observed
// on any host.
//
// The system has one core with a write-back, write-allocate data cache and a
// read-only instruction cache, a main memory, and a DMA engine that accesses
// memory directly. Lines written back from the data cache wait in a write
// buffer until a data barrier drains it, and the core keeps a few instruction
// lines prefetched until an instruction barrier discards them. Forgetting
// either barrier therefore shows up as stale data, the way it does on
// hardware.
package sim

import (
	"log"

	"github.com/sarchlab/cmu"
	"github.com/sarchlab/cmu/hooking"
)

// Stats counts what happened on the platform.
type Stats struct {
	LineOps             uint64
	CacheOps            uint64
	DataBarriers        uint64
	InstructionBarriers uint64
	WriteBacks          uint64
	DiscardedDirtyLines uint64
	Evictions           uint64
	DCacheHits          uint64
	DCacheMisses        uint64
	ICacheHits          uint64
	ICacheMisses        uint64
}

// Platform is the simulated memory system.
type Platform struct {
	hooking.HookableBase

	config      Config
	lineSize    uint64
	memory      *Memory
	dcache      *cacheArray
	icache      *cacheArray
	writeBuffer *writeBuffer
	core        *Core
	dma         *DMAEngine
	stats       Stats
}

var _ cmu.Platform = (*Platform)(nil)

// New builds a platform. It panics if the configuration is invalid.
func New(config Config) *Platform {
	if err := config.Validate(); err != nil {
		log.Panicf("cannot build simulated platform: %v", err)
	}

	p := &Platform{
		config:   config,
		lineSize: uint64(config.LineSize),
		memory:   NewMemory(config.MemorySize),
	}

	p.dcache = newCacheArray(config.DCacheSize, config.DCacheWays,
		config.LineSize)
	p.icache = newCacheArray(config.ICacheSize, config.ICacheWays,
		config.LineSize)
	p.writeBuffer = newWriteBuffer(config.WriteBufferDepth, p.memory)
	p.core = &Core{platform: p}
	p.dma = &DMAEngine{memory: p.memory}

	return p
}

// Config returns the configuration the platform was built with.
func (p *Platform) Config() Config {
	return p.config
}

// Memory returns the main memory.
func (p *Platform) Memory() *Memory {
	return p.memory
}

// Core returns the core whose caches are simulated.
func (p *Platform) Core() *Core {
	return p.core
}

// DMA returns the DMA engine.
func (p *Platform) DMA() *DMAEngine {
	return p.dma
}

// Stats returns the counters collected so far.
func (p *Platform) Stats() Stats {
	return p.stats
}

// ResetStats clears the counters.
func (p *Platform) ResetStats() {
	p.stats = Stats{}
}

func (p *Platform) alignLine(addr uint64) uint64 {
	return addr &^ (p.lineSize - 1)
}

// Resident tells if the data cache holds the line of addr.
func (p *Platform) Resident(addr uint64) bool {
	return p.dcache.dir.lookup(p.alignLine(addr)) != nil
}

// Dirty tells if the data cache holds a modified copy of the line of addr.
func (p *Platform) Dirty(addr uint64) bool {
	b := p.dcache.dir.lookup(p.alignLine(addr))
	return b != nil && b.IsDirty
}

// InstructionResident tells if the instruction cache holds the line of addr.
func (p *Platform) InstructionResident(addr uint64) bool {
	return p.icache.dir.lookup(p.alignLine(addr)) != nil
}

// ResidentLines returns the addresses of the lines in the data cache.
func (p *Platform) ResidentLines() []uint64 {
	return p.dcache.lineAddrs()
}

// PendingWriteBacks returns the number of lines waiting in the write buffer.
func (p *Platform) PendingWriteBacks() int {
	return p.writeBuffer.size()
}

// LineSize returns the line size of both caches.
func (p *Platform) LineSize() uintptr {
	return uintptr(p.lineSize)
}

// DataBarrier drains the write buffer to memory.
func (p *Platform) DataBarrier() {
	n := p.writeBuffer.drain()

	p.stats.DataBarriers++
	p.invoke(HookPosDataBarrier, BarrierEvent{Drained: n})
}

// InstructionBarrier discards the instructions the core has prefetched.
func (p *Platform) InstructionBarrier() {
	n := p.core.discardPrefetched()

	p.stats.InstructionBarriers++
	p.invoke(HookPosInstructionBarrier, BarrierEvent{Drained: n})
}

func (p *Platform) InvalidateICacheLine(addr uintptr) {
	lineAddr := p.alignLine(uint64(addr))

	b := p.icache.dir.lookup(lineAddr)
	state := stateOf(b)

	if b != nil {
		b.IsValid = false
	}

	p.lineDone(cmu.OpInvalidateICacheRange, lineAddr, state)
}

func (p *Platform) CleanDCacheLine(addr uintptr) {
	lineAddr := p.alignLine(uint64(addr))

	b := p.dcache.dir.lookup(lineAddr)
	state := stateOf(b)

	if b != nil {
		p.clean(b)
	}

	p.lineDone(cmu.OpCleanDCacheRange, lineAddr, state)
}

func (p *Platform) FlushDCacheLine(addr uintptr) {
	lineAddr := p.alignLine(uint64(addr))

	b := p.dcache.dir.lookup(lineAddr)
	state := stateOf(b)

	if b != nil {
		p.clean(b)
		p.invalidate(b)
	}

	p.lineDone(cmu.OpFlushDCacheRange, lineAddr, state)
}

func (p *Platform) InvalidateDCacheLine(addr uintptr) {
	lineAddr := p.alignLine(uint64(addr))

	b := p.dcache.dir.lookup(lineAddr)
	state := stateOf(b)

	if b != nil {
		p.invalidate(b)
	}

	p.lineDone(cmu.OpInvalidateDCacheRange, lineAddr, state)
}

func stateOf(b *block) LineState {
	if b == nil {
		return LineState{}
	}

	return LineState{Valid: b.IsValid, Dirty: b.IsDirty}
}

func (p *Platform) InvalidateICacheAll() {
	lines := len(p.icache.dir.validBlocks())
	p.icache.dir.reset()

	p.cacheDone(cmu.OpInvalidateICache, lines)
}

func (p *Platform) CleanDCacheAll() {
	blocks := p.dcache.dir.validBlocks()
	for _, b := range blocks {
		p.clean(b)
	}

	p.cacheDone(cmu.OpCleanDCache, len(blocks))
}

func (p *Platform) FlushDCacheAll() {
	blocks := p.dcache.dir.validBlocks()
	for _, b := range blocks {
		p.clean(b)
		p.invalidate(b)
	}

	p.cacheDone(cmu.OpFlushDCache, len(blocks))
}

func (p *Platform) InvalidateDCacheAll() {
	blocks := p.dcache.dir.validBlocks()
	for _, b := range blocks {
		p.invalidate(b)
	}

	p.cacheDone(cmu.OpInvalidateDCache, len(blocks))
}

func (p *Platform) lineDone(op cmu.Op, lineAddr uint64, state LineState) {
	lines := 0
	if state.Valid {
		lines = 1
	}

	p.stats.LineOps++
	p.invokeWithDetail(HookPosLineMaintenance, MaintenanceEvent{
		Op:    op,
		Addr:  lineAddr,
		Lines: lines,
	}, state)
}

func (p *Platform) cacheDone(op cmu.Op, lines int) {
	p.stats.CacheOps++
	p.invoke(HookPosCacheMaintenance, MaintenanceEvent{
		Op:    op,
		Lines: lines,
	})
}

// clean posts a dirty line to the write buffer and keeps it valid.
func (p *Platform) clean(b *block) {
	if !b.IsDirty {
		return
	}

	p.writeBack(b, WriteBackByMaintenance)
}

// invalidate drops a line. Dirty data is lost.
func (p *Platform) invalidate(b *block) {
	if b.IsDirty {
		p.stats.DiscardedDirtyLines++
	}

	b.IsValid = false
	b.IsDirty = false
}

func (p *Platform) writeBack(b *block, cause WriteBackCause) {
	data := p.dcache.lineData(b)
	p.writeBuffer.post(b.Tag, data)
	b.IsDirty = false

	p.stats.WriteBacks++

	if p.NumHooks() > 0 {
		p.invokeWithDetail(HookPosWriteBack,
			WriteBackEvent{Addr: b.Tag, Cause: cause},
			append([]byte(nil), data...))
	}
}

// dataLine returns the data cache line of lineAddr, filling it on a miss.
func (p *Platform) dataLine(lineAddr uint64) (*block, []byte) {
	dir := p.dcache.dir

	b := dir.lookup(lineAddr)
	if b != nil {
		p.stats.DCacheHits++
		dir.visit(b)

		return b, p.dcache.lineData(b)
	}

	p.stats.DCacheMisses++

	b = dir.findVictim(lineAddr)
	if b.IsValid {
		p.stats.Evictions++

		if b.IsDirty {
			p.writeBack(b, WriteBackByEviction)
		}
	}

	data := p.dcache.lineData(b)
	if posted, ok := p.writeBuffer.forward(lineAddr); ok {
		copy(data, posted)
	} else {
		copy(data, p.memory.mustRead(lineAddr, p.lineSize))
	}

	b.Tag = lineAddr
	b.IsValid = true
	b.IsDirty = false
	dir.visit(b)

	return b, data
}

// instructionLine returns the instruction cache line of lineAddr, filling it
// from memory on a miss. The instruction cache does not see the data cache
// or the write buffer.
func (p *Platform) instructionLine(lineAddr uint64) []byte {
	dir := p.icache.dir

	b := dir.lookup(lineAddr)
	if b != nil {
		p.stats.ICacheHits++
		dir.visit(b)

		return p.icache.lineData(b)
	}

	p.stats.ICacheMisses++

	b = dir.findVictim(lineAddr)
	data := p.icache.lineData(b)
	copy(data, p.memory.mustRead(lineAddr, p.lineSize))

	b.Tag = lineAddr
	b.IsValid = true
	dir.visit(b)

	return data
}
