package simulator

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Tells instruction words and data words apart in memory. Only used for
// display purposes, the CPU itself does not care
type WordKind int

const (
	KIND_INSTRUCTION WordKind = iota
	KIND_DATA
)

// Sparse backing memory: 256 word-sized addresses, each holding a 32 bit
// value and a kind tag. Entries only exist once something is stored there
type Memory struct {
	Data  map[uint8]uint32   // address -> word
	Kinds map[uint8]WordKind // address -> kind of the stored word
}

// Creates a new, empty memory
func NewMemory() *Memory {
	return &Memory{
		Data:  make(map[uint8]uint32),
		Kinds: make(map[uint8]WordKind),
	}
}

// Returns the word at `addr` and whether the address is mapped
func (mem *Memory) Word(addr uint8) (uint32, bool) {
	word, ok := mem.Data[addr]
	return word, ok
}

// Returns true if `addr` holds a word
func (mem *Memory) Contains(addr uint8) bool {
	_, ok := mem.Data[addr]
	return ok
}

// Stores `word` at `addr`, tagging it with `kind`. Overwrites any
// previous entry
func (mem *Memory) SetWord(addr uint8, word uint32, kind WordKind) {
	mem.Data[addr] = word
	mem.Kinds[addr] = kind
}

// Returns the kind tag of the word at `addr` and whether one exists
func (mem *Memory) Kind(addr uint8) (WordKind, bool) {
	kind, ok := mem.Kinds[addr]
	return kind, ok
}

// Loads data words from a reader. Each line holds a hex address and a
// binary 32 bit word, e.g. "0x28 00000000000000000000000000001010".
// Malformed lines are skipped, duplicate addresses are overwritten
func (mem *Memory) LoadData(r io.Reader) error {
	return mem.loadWords(r, KIND_DATA)
}

// Loads instruction words from a reader, same format as LoadData
func (mem *Memory) LoadInstructions(r io.Reader) error {
	return mem.loadWords(r, KIND_INSTRUCTION)
}

func (mem *Memory) loadWords(r io.Reader, kind WordKind) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) != 2 {
			continue
		}
		addr, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "0x"), 16, 8)
		if err != nil {
			continue
		}
		word, err := strconv.ParseUint(parts[1], 2, 32)
		if err != nil {
			continue
		}
		mem.SetWord(uint8(addr), uint32(word), kind)
	}
	return scanner.Err()
}
