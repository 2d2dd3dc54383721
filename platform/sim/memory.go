package sim

import "fmt"

const memoryUnitSize = 4096

// A Memory is the main memory shared by all bus masters.
//
// Memory is allocated in units of 4 KiB when first touched. Untouched memory
// reads as zero.
type Memory struct {
	capacity uint64
	units    map[uint64][]byte
}

// NewMemory creates a memory of the given capacity in bytes.
func NewMemory(capacity uint64) *Memory {
	return &Memory{
		capacity: capacity,
		units:    make(map[uint64][]byte),
	}
}

// Capacity returns the size of the memory in bytes.
func (m *Memory) Capacity() uint64 {
	return m.capacity
}

func (m *Memory) checkRange(addr, length uint64) error {
	if addr >= m.capacity || length > m.capacity-addr {
		return fmt.Errorf("access [0x%x, 0x%x) beyond memory capacity 0x%x",
			addr, addr+length, m.capacity)
	}

	return nil
}

func (m *Memory) unit(addr uint64) []byte {
	base := addr - addr%memoryUnitSize

	u, ok := m.units[base]
	if !ok {
		u = make([]byte, memoryUnitSize)
		m.units[base] = u
	}

	return u
}

// Read returns a copy of length bytes starting at addr.
func (m *Memory) Read(addr, length uint64) ([]byte, error) {
	if err := m.checkRange(addr, length); err != nil {
		return nil, err
	}

	res := make([]byte, length)
	done := uint64(0)

	for done < length {
		curr := addr + done
		offset := curr % memoryUnitSize
		n := min(length-done, memoryUnitSize-offset)

		copy(res[done:done+n], m.unit(curr)[offset:offset+n])
		done += n
	}

	return res, nil
}

// Write stores data starting at addr.
func (m *Memory) Write(addr uint64, data []byte) error {
	length := uint64(len(data))
	if err := m.checkRange(addr, length); err != nil {
		return err
	}

	done := uint64(0)

	for done < length {
		curr := addr + done
		offset := curr % memoryUnitSize
		n := min(length-done, memoryUnitSize-offset)

		copy(m.unit(curr)[offset:offset+n], data[done:done+n])
		done += n
	}

	return nil
}

func (m *Memory) mustRead(addr, length uint64) []byte {
	data, err := m.Read(addr, length)
	if err != nil {
		panic(err)
	}

	return data
}

func (m *Memory) mustWrite(addr uint64, data []byte) {
	if err := m.Write(addr, data); err != nil {
		panic(err)
	}
}
