package simulator

import (
	"strings"
	"testing"
)

func TestMemoryIsSparse(t *testing.T) {
	mem := NewMemory()
	if mem.Contains(0) {
		t.Error("fresh memory should be empty")
	}
	if _, ok := mem.Word(0x10); ok {
		t.Error("unmapped address should report no word")
	}

	mem.SetWord(0x10, 7, KIND_DATA)
	word, ok := mem.Word(0x10)
	if !ok || word != 7 {
		t.Errorf("got (%d, %v), want (7, true)", word, ok)
	}
	if kind, ok := mem.Kind(0x10); !ok || kind != KIND_DATA {
		t.Error("kind tag lost")
	}
}

func TestMemorySetWordOverwrites(t *testing.T) {
	mem := NewMemory()
	mem.SetWord(5, 1, KIND_INSTRUCTION)
	mem.SetWord(5, 2, KIND_DATA)

	word, _ := mem.Word(5)
	kind, _ := mem.Kind(5)
	if word != 2 || kind != KIND_DATA {
		t.Errorf("got word %d kind %v, want 2 KIND_DATA", word, kind)
	}
}

func TestLoadData(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	input := strings.Join([]string{
		"0x00 00000000000000000000000000001010", // 10 at address 0
		"0x28 101",                              // 5 at address 0x28
		"",                                      // blank, skipped
		"0x28 110",                              // duplicate, overwrites
		"0xZZ 101",                              // bad address, skipped
		"0x01 12345",                            // not binary, skipped
		"0x02",                                  // missing word, skipped
		"0x03 1 extra",                          // too many fields, skipped
	}, "\n")

	mem := NewMemory()
	err := mem.LoadData(strings.NewReader(input))
	assert(err == nil)
	assert(len(mem.Data) == 2)

	word, ok := mem.Word(0x00)
	assert(ok && word == 10)
	word, ok = mem.Word(0x28)
	assert(ok && word == 6)

	kind, ok := mem.Kind(0x28)
	assert(ok && kind == KIND_DATA)
}

func TestLoadInstructionsTagsKind(t *testing.T) {
	mem := NewMemory()
	err := mem.LoadInstructions(strings.NewReader("0x00 00100000000000010000000000001010\n"))
	if err != nil {
		t.Fatal(err)
	}
	kind, ok := mem.Kind(0)
	if !ok || kind != KIND_INSTRUCTION {
		t.Error("loaded word should be tagged as an instruction")
	}
}
