// Package armv8 implements cache maintenance for AArch64 cores running at
// EL1, such as a bare-metal kernel or bootloader.
//
// Ranged operations use the by-address instructions to the point of
// coherence (DC IVAC, DC CVAC, DC CIVAC) and to the point of unification for
// the instruction cache (IC IVAU). Whole data cache operations walk every set
// and way of each data or unified cache level below the level of coherence.
package armv8

// sysOps is the set of system instructions the platform is built on.
type sysOps interface {
	readCTR() uint64
	readCLIDR() uint64
	// readCCSIDR selects a cache with CSSELR_EL1 and reads its geometry.
	readCCSIDR(csselr uint64) uint64

	dcIVAC(addr uintptr)
	dcCVAC(addr uintptr)
	dcCIVAC(addr uintptr)
	dcISW(setWay uint64)
	dcCSW(setWay uint64)
	dcCISW(setWay uint64)
	icIVAU(addr uintptr)
	icIALLU()

	dsb()
	isb()
}

// Platform issues the AArch64 cache maintenance instructions.
type Platform struct {
	ops      sysOps
	lineSize uintptr
	levels   []setWayGeometry
}

func newPlatform(ops sysOps) *Platform {
	p := &Platform{ops: ops}

	data, instruction := minLineSizes(ops.readCTR())
	p.lineSize = min(data, instruction)

	clidr := ops.readCLIDR()
	loc := min(levelOfCoherence(clidr), maxCacheLevels)
	for level := 0; level < loc; level++ {
		ctype := cacheType(clidr, level)
		if ctype == cacheTypeNone {
			break
		}

		if !hasDataCache(ctype) {
			continue
		}

		ccsidr := ops.readCCSIDR(csselr(level))
		p.levels = append(p.levels, decodeCCSIDR(level, ccsidr))
	}

	return p
}

// LineSize returns the smaller of the minimum data and instruction cache line
// sizes. Stepping by it reaches every line of both caches.
func (p *Platform) LineSize() uintptr {
	return p.lineSize
}

// DataBarrier issues DSB SY.
func (p *Platform) DataBarrier() {
	p.ops.dsb()
}

// InstructionBarrier issues ISB.
func (p *Platform) InstructionBarrier() {
	p.ops.isb()
}

func (p *Platform) InvalidateICacheLine(addr uintptr) {
	p.ops.icIVAU(addr)
}

func (p *Platform) CleanDCacheLine(addr uintptr) {
	p.ops.dcCVAC(addr)
}

func (p *Platform) FlushDCacheLine(addr uintptr) {
	p.ops.dcCIVAC(addr)
}

func (p *Platform) InvalidateDCacheLine(addr uintptr) {
	p.ops.dcIVAC(addr)
}

// InvalidateICacheAll issues IC IALLU.
func (p *Platform) InvalidateICacheAll() {
	p.ops.icIALLU()
}

func (p *Platform) CleanDCacheAll() {
	p.eachSetWay(p.ops.dcCSW)
}

func (p *Platform) FlushDCacheAll() {
	p.eachSetWay(p.ops.dcCISW)
}

func (p *Platform) InvalidateDCacheAll() {
	p.eachSetWay(p.ops.dcISW)
}

// eachSetWay runs op on every set and way, innermost level first. Each level
// is completed with a DSB before the next one, so a line written back from an
// inner level has reached the outer one before that is walked.
func (p *Platform) eachSetWay(op func(setWay uint64)) {
	for i, g := range p.levels {
		if i > 0 {
			p.ops.dsb()
		}

		for way := 0; way < g.ways; way++ {
			for set := 0; set < g.sets; set++ {
				op(g.operand(set, way))
			}
		}
	}
}
