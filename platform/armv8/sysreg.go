package armv8

import "math/bits"

// Fields of CTR_EL0.
const (
	ctrIminLineShift = 0
	ctrDminLineShift = 16
	ctrLineMask      = 0xf
)

// Fields of CLIDR_EL1.
const (
	clidrCtypeBits = 3
	clidrCtypeMask = 0x7
	clidrLoCShift  = 24
	clidrLoCMask   = 0x7
	maxCacheLevels = 7
)

// Cache types reported by CLIDR_EL1.Ctype<n>.
const (
	cacheTypeNone        = 0
	cacheTypeInstruction = 1
	cacheTypeData        = 2
	cacheTypeSeparate    = 3
	cacheTypeUnified     = 4
)

// Fields of CCSIDR_EL1, without FEAT_CCIDX.
const (
	ccsidrLineSizeMask = 0x7
	ccsidrAssocShift   = 3
	ccsidrAssocMask    = 0x3ff
	ccsidrNumSetsShift = 13
	ccsidrNumSetsMask  = 0x7fff
)

// minLineSizes returns the smallest data and instruction cache line sizes in
// bytes, as encoded in CTR_EL0. The fields hold log2 of the number of words.
func minLineSizes(ctr uint64) (data, instruction uintptr) {
	data = 4 << ((ctr >> ctrDminLineShift) & ctrLineMask)
	instruction = 4 << ((ctr >> ctrIminLineShift) & ctrLineMask)

	return data, instruction
}

// levelOfCoherence returns the number of cache levels that must be maintained
// to make data visible at the point of coherence.
func levelOfCoherence(clidr uint64) int {
	return int((clidr >> clidrLoCShift) & clidrLoCMask)
}

// cacheType returns the Ctype field of the zero-based level.
func cacheType(clidr uint64, level int) uint64 {
	return (clidr >> (clidrCtypeBits * uint(level))) & clidrCtypeMask
}

func hasDataCache(ctype uint64) bool {
	switch ctype {
	case cacheTypeData, cacheTypeSeparate, cacheTypeUnified:
		return true
	default:
		return false
	}
}

// csselr returns the CSSELR_EL1 value that selects the data or unified cache
// of the zero-based level.
func csselr(level int) uint64 {
	return uint64(level) << 1
}

// setWayGeometry describes one data or unified cache level for set/way
// maintenance.
type setWayGeometry struct {
	level      int
	sets       int
	ways       int
	setShift   uint
	wayShift   uint
	lineLength uintptr
}

func decodeCCSIDR(level int, ccsidr uint64) setWayGeometry {
	log2Line := uint(ccsidr&ccsidrLineSizeMask) + 4
	ways := int((ccsidr>>ccsidrAssocShift)&ccsidrAssocMask) + 1
	sets := int((ccsidr>>ccsidrNumSetsShift)&ccsidrNumSetsMask) + 1

	return setWayGeometry{
		level:      level,
		sets:       sets,
		ways:       ways,
		setShift:   log2Line,
		wayShift:   uint(bits.LeadingZeros32(uint32(ways - 1))),
		lineLength: 1 << log2Line,
	}
}

// operand returns the DC ISW/CSW/CISW operand for a set and a way. A direct
// mapped cache has no way bits; the shift is 32 and way is always 0 there.
func (g setWayGeometry) operand(set, way int) uint64 {
	return uint64(way)<<g.wayShift |
		uint64(set)<<g.setShift |
		uint64(g.level)<<1
}
