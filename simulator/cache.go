package simulator

// Default cache shape: 4 sets of 2 blocks
const (
	DEFAULT_NUM_SETS       = 4
	DEFAULT_BLOCKS_PER_SET = 2
)

// A single cache block holding one word
type CacheBlock struct {
	Tag      uint8  // which memory line occupies this block
	Data     uint32 // the cached word
	Valid    bool
	LastUsed uint64 // access counter value of the last touch, for LRU
}

// A set of blocks. An address maps to exactly one set and may occupy any
// of its blocks, up to Capacity
type CacheSet struct {
	Blocks   []CacheBlock
	Capacity int
}

// Set-associative cache over the 256 word address space. A single logical
// access counter shared by the whole cache orders blocks for LRU
// replacement; it advances on every read and write, hit or miss
type Cache struct {
	Sets          map[uint8]*CacheSet
	NumSets       int
	BlocksPerSet  int
	AccessCounter uint64
	Hits          uint32
	Misses        uint32
}

// Creates a new, empty cache with `numSets` sets of `blocksPerSet`
// blocks each
func NewCache(numSets, blocksPerSet int) *Cache {
	sets := make(map[uint8]*CacheSet)
	for i := 0; i < numSets; i++ {
		sets[uint8(i)] = &CacheSet{
			Blocks:   make([]CacheBlock, 0, blocksPerSet),
			Capacity: blocksPerSet,
		}
	}
	return &Cache{
		Sets:         sets,
		NumSets:      numSets,
		BlocksPerSet: blocksPerSet,
	}
}

// Splits an address into its tag and set index. Addresses interleave
// across sets: consecutive addresses land in consecutive sets
func (cache *Cache) TagAndSet(addr uint8) (uint8, uint8) {
	setIdx := addr % uint8(cache.NumSets)
	tag := addr / uint8(cache.NumSets)
	return tag, setIdx
}

// Looks up `addr`. On a hit, returns the cached word, refreshes the block
// recency and counts a hit. On a miss, counts a miss and returns (0, false)
// without touching the cache contents; the caller fills the cache via
// Write afterwards
func (cache *Cache) Read(addr uint8) (uint32, bool) {
	cache.AccessCounter++
	tag, setIdx := cache.TagAndSet(addr)

	if set, ok := cache.Sets[setIdx]; ok {
		for i := range set.Blocks {
			block := &set.Blocks[i]
			if block.Valid && block.Tag == tag {
				block.LastUsed = cache.AccessCounter
				cache.Hits++
				return block.Data, true
			}
		}
	}

	cache.Misses++
	return 0, false
}

// Stores `data` for `addr`. Updates a matching block in place, appends a
// new block while the set has room, and otherwise replaces the least
// recently used block in the set
func (cache *Cache) Write(addr uint8, data uint32) {
	cache.AccessCounter++
	tag, setIdx := cache.TagAndSet(addr)

	set, ok := cache.Sets[setIdx]
	if !ok {
		set = &CacheSet{
			Blocks:   make([]CacheBlock, 0, cache.BlocksPerSet),
			Capacity: cache.BlocksPerSet,
		}
		cache.Sets[setIdx] = set
	}

	// update in place if the line is already cached
	for i := range set.Blocks {
		block := &set.Blocks[i]
		if block.Valid && block.Tag == tag {
			block.Data = data
			block.LastUsed = cache.AccessCounter
			return
		}
	}

	newBlock := CacheBlock{
		Tag:      tag,
		Data:     data,
		Valid:    true,
		LastUsed: cache.AccessCounter,
	}

	if len(set.Blocks) < set.Capacity {
		set.Blocks = append(set.Blocks, newBlock)
		return
	}

	// set is full, evict the least recently used block. Ties resolve to
	// the first block found with the minimum
	lruIdx := 0
	minLastUsed := ^uint64(0)
	for i := range set.Blocks {
		if set.Blocks[i].LastUsed < minLastUsed {
			minLastUsed = set.Blocks[i].LastUsed
			lruIdx = i
		}
	}
	set.Blocks[lruIdx] = newBlock
}

// Returns the fraction of read accesses that hit, in [0, 1]. Returns 0
// before any read has happened
func (cache *Cache) HitRate() float64 {
	total := cache.Hits + cache.Misses
	if total == 0 {
		return 0.0
	}
	return float64(cache.Hits) / float64(total)
}
