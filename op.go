package cmu

import (
	"fmt"
	"strings"
)

// Op identifies one of the eight maintenance operations.
type Op int

// The maintenance operations. The instruction cache holds no dirty state, so
// it has no clean or flush operation.
const (
	OpInvalidateICache Op = iota
	OpInvalidateICacheRange
	OpCleanDCache
	OpFlushDCache
	OpCleanDCacheRange
	OpFlushDCacheRange
	OpInvalidateDCache
	OpInvalidateDCacheRange
	numOps
)

var opNames = [numOps]string{
	"invalidate-icache",
	"invalidate-icache-range",
	"clean-dcache",
	"flush-dcache",
	"clean-dcache-range",
	"flush-dcache-range",
	"invalidate-dcache",
	"invalidate-dcache-range",
}

// AllOps returns every operation in declaration order.
func AllOps() []Op {
	ops := make([]Op, 0, numOps)
	for op := Op(0); op < numOps; op++ {
		ops = append(ops, op)
	}

	return ops
}

func (op Op) String() string {
	if op < 0 || op >= numOps {
		return fmt.Sprintf("Op(%d)", int(op))
	}

	return opNames[op]
}

// ParseOp returns the operation with the given name, as printed by String.
func ParseOp(name string) (Op, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for op, n := range opNames {
		if n == name {
			return Op(op), nil
		}
	}

	return 0, fmt.Errorf("unknown cache maintenance operation %q", name)
}

// IsRanged tells if the operation takes an address range.
func (op Op) IsRanged() bool {
	switch op {
	case OpInvalidateICacheRange,
		OpCleanDCacheRange,
		OpFlushDCacheRange,
		OpInvalidateDCacheRange:
		return true
	default:
		return false
	}
}

// IsInstruction tells if the operation acts on the instruction cache.
func (op Op) IsInstruction() bool {
	return op == OpInvalidateICache || op == OpInvalidateICacheRange
}

// Do runs op. Whole-cache operations ignore base and size.
func Do(op Op, base, size uintptr) {
	switch op {
	case OpInvalidateICache:
		InvalidateICache()
	case OpInvalidateICacheRange:
		InvalidateICacheRange(base, size)
	case OpCleanDCache:
		CleanDCache()
	case OpFlushDCache:
		FlushDCache()
	case OpCleanDCacheRange:
		CleanDCacheRange(base, size)
	case OpFlushDCacheRange:
		FlushDCacheRange(base, size)
	case OpInvalidateDCache:
		InvalidateDCache()
	case OpInvalidateDCacheRange:
		InvalidateDCacheRange(base, size)
	default:
		panic(fmt.Sprintf("unknown cache maintenance operation %d", int(op)))
	}
}
