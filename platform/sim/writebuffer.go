package sim

// A pendingWrite is a line that left the data cache but has not reached
// memory.
type pendingWrite struct {
	addr uint64
	data []byte
}

// A writeBuffer holds written-back lines on their way to memory. Other bus
// masters only see them once they are drained.
type writeBuffer struct {
	depth   int
	memory  *Memory
	pending []pendingWrite
}

func newWriteBuffer(depth int, memory *Memory) *writeBuffer {
	return &writeBuffer{
		depth:  depth,
		memory: memory,
	}
}

// post queues a line. If the buffer is full, the oldest line is written to
// memory first.
func (wb *writeBuffer) post(addr uint64, data []byte) {
	if len(wb.pending) == wb.depth {
		wb.retireOldest()
	}

	wb.pending = append(wb.pending, pendingWrite{
		addr: addr,
		data: append([]byte(nil), data...),
	})
}

func (wb *writeBuffer) retireOldest() {
	w := wb.pending[0]
	wb.memory.mustWrite(w.addr, w.data)
	wb.pending = wb.pending[1:]
}

// drain writes every queued line to memory in order and returns how many
// lines were written.
func (wb *writeBuffer) drain() int {
	n := len(wb.pending)
	for len(wb.pending) > 0 {
		wb.retireOldest()
	}

	wb.pending = nil

	return n
}

// forward returns the newest queued copy of the line at addr. The core reads
// its own posted writes before they reach memory.
func (wb *writeBuffer) forward(addr uint64) ([]byte, bool) {
	for i := len(wb.pending) - 1; i >= 0; i-- {
		if wb.pending[i].addr == addr {
			return wb.pending[i].data, true
		}
	}

	return nil, false
}

func (wb *writeBuffer) size() int {
	return len(wb.pending)
}
