package sim

import (
	"github.com/sarchlab/cmu"
	"github.com/sarchlab/cmu/hooking"
)

// Hook positions of the simulated platform.
var (
	// HookPosLineMaintenance is reached once per line primitive. The item is
	// a MaintenanceEvent naming the ranged operation the primitive belongs to
	// and the detail a LineState.
	HookPosLineMaintenance = &hooking.HookPos{Name: "LineMaintenance"}

	// HookPosCacheMaintenance is reached once per whole-cache primitive. The
	// item is a MaintenanceEvent.
	HookPosCacheMaintenance = &hooking.HookPos{Name: "CacheMaintenance"}

	// HookPosDataBarrier and HookPosInstructionBarrier carry a BarrierEvent.
	HookPosDataBarrier        = &hooking.HookPos{Name: "DataBarrier"}
	HookPosInstructionBarrier = &hooking.HookPos{Name: "InstructionBarrier"}

	// HookPosWriteBack is reached when a dirty line leaves the data cache
	// for the write buffer. The item is a WriteBackEvent and the detail a
	// copy of the line data.
	HookPosWriteBack = &hooking.HookPos{Name: "WriteBack"}
)

// A MaintenanceEvent describes one maintenance primitive.
type MaintenanceEvent struct {
	Op cmu.Op

	// Addr is the line address of a line primitive.
	Addr uint64

	// Lines is the number of valid lines the primitive acted on.
	Lines int
}

// LineState is the Detail of a line maintenance hook: the state of the line
// before the primitive acted on it.
type LineState struct {
	Valid bool
	Dirty bool
}

// A BarrierEvent describes one barrier.
type BarrierEvent struct {
	// Drained is the number of lines the data barrier pushed to memory, or
	// the number of prefetched lines the instruction barrier discarded.
	Drained int
}

// A WriteBackEvent describes a line posted to the write buffer.
type WriteBackEvent struct {
	Addr  uint64
	Cause WriteBackCause
}

// WriteBackCause tells why a dirty line was written back.
type WriteBackCause int

// The causes of a write-back.
const (
	WriteBackByMaintenance WriteBackCause = iota
	WriteBackByEviction
)

func (c WriteBackCause) String() string {
	switch c {
	case WriteBackByMaintenance:
		return "maintenance"
	case WriteBackByEviction:
		return "eviction"
	default:
		return "unknown"
	}
}

func (p *Platform) invoke(pos *hooking.HookPos, item any) {
	p.invokeWithDetail(pos, item, nil)
}

func (p *Platform) invokeWithDetail(pos *hooking.HookPos, item, detail any) {
	if p.NumHooks() == 0 {
		return
	}

	p.InvokeHook(hooking.HookCtx{
		Domain: p,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
