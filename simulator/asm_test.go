package simulator

import (
	"errors"
	"strings"
	"testing"
)

func TestAssembleLine(t *testing.T) {
	tests := []struct {
		line string
		want Instruction
	}{
		{"ADD R3, R1, R2", EncodeRType(OPCODE_RTYPE, 1, 2, 3, 0, FUNCT_ADD)},
		{"SUB R6, R4, R5", EncodeRType(OPCODE_RTYPE, 4, 5, 6, 0, FUNCT_SUB)},
		{"SLT R9, R7, R8", EncodeRType(OPCODE_RTYPE, 7, 8, 9, 0, FUNCT_SLT)},
		{"ADDI R1, R0, 10", EncodeIType(OPCODE_ADDI, 0, 1, 10)},
		{"addi r1, r0, -3", EncodeIType(OPCODE_ADDI, 0, 1, -3&0xFFFF)},
		{"BEQ R1, R2, -4", EncodeIType(OPCODE_BEQ, 1, 2, -4&0xFFFF)},
		{"LW R2, 4(R0)", EncodeIType(OPCODE_LW, 0, 2, 4)},
		{"SW R2, 8(R3)", EncodeIType(OPCODE_SW, 3, 2, 8)},
		{"sw r31, 0(r31)  # trailing comment", EncodeIType(OPCODE_SW, 31, 31, 0)},
	}

	for _, test := range tests {
		got, err := AssembleLine(test.line)
		if err != nil {
			t.Errorf("AssembleLine(%q): %v", test.line, err)
			continue
		}
		if got != test.want {
			t.Errorf("AssembleLine(%q) = 0x%08X, want 0x%08X", test.line, uint32(got), uint32(test.want))
		}
	}
}

func TestAssembleLineErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"NOP", ErrUnknownMnemonic},
		{"ADD R1, R2", ErrBadOperand},
		{"ADD R1, R2, R32", ErrBadOperand},
		{"ADD R1, R2, X3", ErrBadOperand},
		{"ADDI R1, R0, 70000", ErrBadOperand},
		{"ADDI R1, R0, -40000", ErrBadOperand},
		{"LW R1, 4", ErrBadOperand},
		{"LW R1, 4(R0", ErrBadOperand},
	}

	for _, test := range tests {
		_, err := AssembleLine(test.line)
		if !errors.Is(err, test.want) {
			t.Errorf("AssembleLine(%q) err = %v, want %v", test.line, err, test.want)
		}
	}
}

func TestAssembleRoundTrip(t *testing.T) {
	lines := []string{
		"ADD R3, R1, R2",
		"ADDI R1, R0, 10",
		"BEQ R1, R2, -4",
		"LW R2, 4(R0)",
		"SW R2, 8(R3)",
	}
	for _, line := range lines {
		word, err := AssembleLine(line)
		if err != nil {
			t.Fatalf("AssembleLine(%q): %v", line, err)
		}
		if got := Disassemble(word); got != line {
			t.Errorf("round trip of %q gave %q", line, got)
		}
	}
}

func TestAssembleProgram(t *testing.T) {
	source := `
# sums 10 and 20 into R3
ADDI R1, R0, 10
ADDI R2, R0, 20  ; second operand
ADD R3, R1, R2

SW R3, 0x28(R0)
`
	words, err := Assemble(strings.NewReader(source))
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 4 {
		t.Fatalf("assembled %d words, want 4", len(words))
	}

	sim := NewSimulation(4, 2)
	sim.LoadProgram(words)
	sim.RunToHalt(100)
	if sim.CPU.Regs[3] != 30 {
		t.Errorf("R3 = %d, want 30", sim.CPU.Regs[3])
	}
	if word, ok := sim.Memory.Word(0x28); !ok || word != 30 {
		t.Errorf("memory[0x28] = %d (%v), want 30", word, ok)
	}
}

func TestAssembleReportsLineNumbers(t *testing.T) {
	_, err := Assemble(strings.NewReader("ADD R3, R1, R2\nBOGUS R1\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want a line 2 error", err)
	}
}
