package sim

// A DMAEngine is a bus master that reads and writes memory directly. It does
// not see the data cache or the write buffer, and the caches do not see its
// writes.
type DMAEngine struct {
	memory *Memory
}

// Read copies n bytes starting at addr out of memory.
func (d *DMAEngine) Read(addr uint64, n int) ([]byte, error) {
	return d.memory.Read(addr, uint64(n))
}

// Write copies data into memory starting at addr.
func (d *DMAEngine) Write(addr uint64, data []byte) error {
	return d.memory.Write(addr, data)
}
