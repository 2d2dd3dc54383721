package sim

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/arch/arm64/arm64asm"
)

// A Core is the CPU that owns the simulated caches. All of its data accesses
// go through the data cache and all of its instruction fetches go through the
// prefetch buffer and the instruction cache.
//
// Accesses outside memory panic, like a bus fault would stop the CPU.
type Core struct {
	platform   *Platform
	prefetched []prefetchedLine
}

type prefetchedLine struct {
	addr uint64
	data []byte
}

// Load reads n bytes starting at addr.
func (c *Core) Load(addr uint64, n int) []byte {
	res := make([]byte, 0, n)

	c.eachLine(addr, n, func(b *block, line []byte, from, to uint64) {
		res = append(res, line[from:to]...)
	})

	return res
}

// Store writes data starting at addr. The written lines become dirty.
func (c *Core) Store(addr uint64, data []byte) {
	done := uint64(0)

	c.eachLine(addr, len(data), func(b *block, line []byte, from, to uint64) {
		copy(line[from:to], data[done:])
		done += to - from
		b.IsDirty = true
	})
}

// LoadUint32 reads a little-endian 32-bit word.
func (c *Core) LoadUint32(addr uint64) uint32 {
	return binary.LittleEndian.Uint32(c.Load(addr, 4))
}

// StoreUint32 writes a little-endian 32-bit word.
func (c *Core) StoreUint32(addr uint64, v uint32) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	c.Store(addr, buf)
}

func (c *Core) eachLine(
	addr uint64,
	n int,
	fn func(b *block, line []byte, from, to uint64),
) {
	p := c.platform
	end := addr + uint64(n)

	for curr := addr; curr < end; {
		lineAddr := p.alignLine(curr)
		lineEnd := min(lineAddr+p.lineSize, end)

		b, line := p.dataLine(lineAddr)
		fn(b, line, curr-lineAddr, lineEnd-lineAddr)

		curr = lineEnd
	}
}

// Fetch returns the 32-bit instruction word at addr, which must be 4-byte
// aligned.
func (c *Core) Fetch(addr uint64) uint32 {
	if addr%4 != 0 {
		panic(fmt.Sprintf("misaligned instruction fetch at 0x%x", addr))
	}

	p := c.platform
	lineAddr := p.alignLine(addr)

	line := c.prefetchedLine(lineAddr)
	if line == nil {
		line = c.prefetch(lineAddr)
	}

	return binary.LittleEndian.Uint32(line[addr-lineAddr:])
}

// FetchInst fetches and decodes the A64 instruction at addr.
func (c *Core) FetchInst(addr uint64) (arm64asm.Inst, error) {
	word := c.Fetch(addr)

	raw := make([]byte, 4)
	binary.LittleEndian.PutUint32(raw, word)

	inst, err := arm64asm.Decode(raw)
	if err != nil {
		return arm64asm.Inst{}, fmt.Errorf(
			"decode instruction 0x%08x at 0x%x: %w", word, addr, err)
	}

	return inst, nil
}

func (c *Core) prefetchedLine(lineAddr uint64) []byte {
	for _, l := range c.prefetched {
		if l.addr == lineAddr {
			return l.data
		}
	}

	return nil
}

// prefetch copies a line from the instruction cache into the prefetch buffer,
// dropping the oldest prefetched line if the buffer is full.
func (c *Core) prefetch(lineAddr uint64) []byte {
	p := c.platform
	data := append([]byte(nil), p.instructionLine(lineAddr)...)

	if len(c.prefetched) == p.config.PrefetchLines {
		c.prefetched = c.prefetched[1:]
	}

	c.prefetched = append(c.prefetched, prefetchedLine{
		addr: lineAddr,
		data: data,
	})

	return data
}

func (c *Core) discardPrefetched() int {
	n := len(c.prefetched)
	c.prefetched = nil

	return n
}
