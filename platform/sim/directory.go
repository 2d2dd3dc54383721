package sim

// A block is the bookkeeping of one cache line.
type block struct {
	Tag     uint64
	SetID   int
	WayID   int
	IsValid bool
	IsDirty bool
}

// A set is a list of blocks where a certain piece of memory can be stored at.
type set struct {
	blocks   []*block
	lruQueue []int
}

// A directory stores the information about what is stored in a cache.
type directory struct {
	numSets  int
	numWays  int
	lineSize uint64
	sets     []set
}

func newDirectory(numSets, numWays int, lineSize uint64) *directory {
	d := &directory{
		numSets:  numSets,
		numWays:  numWays,
		lineSize: lineSize,
	}

	d.reset()

	return d
}

// reset marks all the blocks invalid and restores the initial LRU order.
func (d *directory) reset() {
	d.sets = make([]set, d.numSets)

	for i := range d.sets {
		for j := 0; j < d.numWays; j++ {
			d.sets[i].blocks = append(d.sets[i].blocks, &block{
				SetID: i,
				WayID: j,
			})
			d.sets[i].lruQueue = append(d.sets[i].lruQueue, j)
		}
	}
}

func (d *directory) setOf(lineAddr uint64) *set {
	setID := int(lineAddr / d.lineSize % uint64(d.numSets))
	return &d.sets[setID]
}

// lookup returns the valid block that holds lineAddr, or nil.
func (d *directory) lookup(lineAddr uint64) *block {
	for _, b := range d.setOf(lineAddr).blocks {
		if b.IsValid && b.Tag == lineAddr {
			return b
		}
	}

	return nil
}

// visit moves the block to the most recently used end of its set.
func (d *directory) visit(b *block) {
	s := &d.sets[b.SetID]
	queue := s.lruQueue[:0]

	for _, way := range s.lruQueue {
		if way != b.WayID {
			queue = append(queue, way)
		}
	}

	s.lruQueue = append(queue, b.WayID)
}

// findVictim returns the block to replace for lineAddr, preferring an invalid
// block over the least recently used one.
func (d *directory) findVictim(lineAddr uint64) *block {
	s := d.setOf(lineAddr)

	for _, way := range s.lruQueue {
		if !s.blocks[way].IsValid {
			return s.blocks[way]
		}
	}

	return s.blocks[s.lruQueue[0]]
}

// validBlocks returns all valid blocks, set by set and way by way.
func (d *directory) validBlocks() []*block {
	var blocks []*block

	for i := range d.sets {
		for _, b := range d.sets[i].blocks {
			if b.IsValid {
				blocks = append(blocks, b)
			}
		}
	}

	return blocks
}
