package sim

import (
	"fmt"
	"math/bits"
)

// Size units.
const (
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
)

// Config describes the simulated memory system.
type Config struct {
	LineSize         int
	DCacheSize       int
	DCacheWays       int
	ICacheSize       int
	ICacheWays       int
	MemorySize       uint64
	WriteBufferDepth int
	PrefetchLines    int
}

// DefaultConfig returns a configuration modelled after an ARM11 MPCore: 32-byte
// lines, 16 KiB 4-way data and instruction caches.
func DefaultConfig() Config {
	return Config{
		LineSize:         32,
		DCacheSize:       int(16 * KB),
		DCacheWays:       4,
		ICacheSize:       int(16 * KB),
		ICacheWays:       4,
		MemorySize:       16 * MB,
		WriteBufferDepth: 8,
		PrefetchLines:    2,
	}
}

// WithLineSize sets the cache line size of both caches.
func (c Config) WithLineSize(lineSize int) Config {
	c.LineSize = lineSize
	return c
}

// WithDCache sets the size and associativity of the data cache.
func (c Config) WithDCache(size, ways int) Config {
	c.DCacheSize = size
	c.DCacheWays = ways

	return c
}

// WithICache sets the size and associativity of the instruction cache.
func (c Config) WithICache(size, ways int) Config {
	c.ICacheSize = size
	c.ICacheWays = ways

	return c
}

// WithMemorySize sets the size of the backing memory.
func (c Config) WithMemorySize(size uint64) Config {
	c.MemorySize = size
	return c
}

// WithWriteBufferDepth sets how many written-back lines can wait for a data
// barrier before the oldest one is forced out to memory.
func (c Config) WithWriteBufferDepth(depth int) Config {
	c.WriteBufferDepth = depth
	return c
}

// WithPrefetchLines sets how many instruction lines the core keeps fetched
// ahead of execution.
func (c Config) WithPrefetchLines(lines int) Config {
	c.PrefetchLines = lines
	return c
}

// Validate checks that the configuration describes a buildable system.
func (c Config) Validate() error {
	if c.LineSize < 4 || bits.OnesCount(uint(c.LineSize)) != 1 {
		return fmt.Errorf("line size %d is not a power of two of at least 4",
			c.LineSize)
	}

	if err := validateCache("data", c.DCacheSize, c.DCacheWays,
		c.LineSize); err != nil {
		return err
	}

	if err := validateCache("instruction", c.ICacheSize, c.ICacheWays,
		c.LineSize); err != nil {
		return err
	}

	if c.MemorySize == 0 || c.MemorySize%uint64(c.LineSize) != 0 {
		return fmt.Errorf("memory size %d is not a multiple of the line size",
			c.MemorySize)
	}

	if c.WriteBufferDepth < 1 {
		return fmt.Errorf("write buffer depth must be at least 1")
	}

	if c.PrefetchLines < 1 {
		return fmt.Errorf("prefetch buffer must hold at least 1 line")
	}

	return nil
}

func validateCache(name string, size, ways, lineSize int) error {
	if ways < 1 {
		return fmt.Errorf("%s cache must have at least 1 way", name)
	}

	if size <= 0 || size%(ways*lineSize) != 0 {
		return fmt.Errorf(
			"%s cache size %d is not a multiple of %d ways of %d-byte lines",
			name, size, ways, lineSize)
	}

	return nil
}
