package sim

// A cacheArray holds the tags and the data of one cache.
type cacheArray struct {
	dir  *directory
	data [][]byte
}

func newCacheArray(size, ways, lineSize int) *cacheArray {
	numSets := size / (ways * lineSize)

	c := &cacheArray{
		dir:  newDirectory(numSets, ways, uint64(lineSize)),
		data: make([][]byte, numSets*ways),
	}

	for i := range c.data {
		c.data[i] = make([]byte, lineSize)
	}

	return c
}

func (c *cacheArray) lineData(b *block) []byte {
	return c.data[b.SetID*c.dir.numWays+b.WayID]
}

// lineAddrs returns the addresses of all valid lines.
func (c *cacheArray) lineAddrs() []uint64 {
	blocks := c.dir.validBlocks()
	addrs := make([]uint64, 0, len(blocks))

	for _, b := range blocks {
		addrs = append(addrs, b.Tag)
	}

	return addrs
}
