package simulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrUnknownMnemonic = errors.New("asm: unknown mnemonic")
	ErrBadOperand      = errors.New("asm: bad operand")
)

// Builds an R-type instruction word from its fields
func EncodeRType(opcode, rs, rt, rd, shamt, funct uint8) Instruction {
	return Instruction(uint32(opcode&0x3f)<<26 | uint32(rs&0x1f)<<21 |
		uint32(rt&0x1f)<<16 | uint32(rd&0x1f)<<11 |
		uint32(shamt&0x1f)<<6 | uint32(funct&0x3f))
}

// Builds an I-type instruction word from its fields
func EncodeIType(opcode, rs, rt uint8, imm uint16) Instruction {
	return Instruction(uint32(opcode&0x3f)<<26 | uint32(rs&0x1f)<<21 |
		uint32(rt&0x1f)<<16 | uint32(imm))
}

// Assembles a whole program, one instruction per line. Blank lines and
// lines starting with "#" or ";" are skipped; trailing comments are
// allowed. Words are returned in source order, for loading at address 0
func Assemble(r io.Reader) ([]Instruction, error) {
	var words []Instruction
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}
		word, err := AssembleLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Assembles a single instruction, e.g. "ADD R3, R1, R2" or "LW R2, 4(R0)".
// Mnemonics and register names are case-insensitive
func AssembleLine(line string) (Instruction, error) {
	fields := strings.Fields(strings.ReplaceAll(stripComment(line), ",", " "))
	if len(fields) == 0 {
		return 0, ErrUnknownMnemonic
	}
	mnemonic, operands := strings.ToUpper(fields[0]), fields[1:]

	switch mnemonic {
	case "ADD":
		return assembleRType(FUNCT_ADD, operands)
	case "SUB":
		return assembleRType(FUNCT_SUB, operands)
	case "SLT":
		return assembleRType(FUNCT_SLT, operands)
	case "ADDI":
		rt, rs, imm, err := parseRegRegImm(operands)
		if err != nil {
			return 0, err
		}
		return EncodeIType(OPCODE_ADDI, rs, rt, imm), nil
	case "BEQ":
		rs, rt, imm, err := parseRegRegImm(operands)
		if err != nil {
			return 0, err
		}
		return EncodeIType(OPCODE_BEQ, rs, rt, imm), nil
	case "LW":
		rt, rs, imm, err := parseRegMem(operands)
		if err != nil {
			return 0, err
		}
		return EncodeIType(OPCODE_LW, rs, rt, imm), nil
	case "SW":
		rt, rs, imm, err := parseRegMem(operands)
		if err != nil {
			return 0, err
		}
		return EncodeIType(OPCODE_SW, rs, rt, imm), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMnemonic, mnemonic)
}

// "ADD rd, rs, rt"
func assembleRType(funct uint8, operands []string) (Instruction, error) {
	if len(operands) != 3 {
		return 0, fmt.Errorf("%w: want 3 operands, got %d", ErrBadOperand, len(operands))
	}
	rd, err := parseRegister(operands[0])
	if err != nil {
		return 0, err
	}
	rs, err := parseRegister(operands[1])
	if err != nil {
		return 0, err
	}
	rt, err := parseRegister(operands[2])
	if err != nil {
		return 0, err
	}
	return EncodeRType(OPCODE_RTYPE, rs, rt, rd, 0, funct), nil
}

// "ADDI ra, rb, imm" / "BEQ ra, rb, imm"
func parseRegRegImm(operands []string) (uint8, uint8, uint16, error) {
	if len(operands) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: want 3 operands, got %d", ErrBadOperand, len(operands))
	}
	ra, err := parseRegister(operands[0])
	if err != nil {
		return 0, 0, 0, err
	}
	rb, err := parseRegister(operands[1])
	if err != nil {
		return 0, 0, 0, err
	}
	imm, err := parseImmediate(operands[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return ra, rb, imm, nil
}

// "LW rt, offset(rs)" / "SW rt, offset(rs)"
func parseRegMem(operands []string) (uint8, uint8, uint16, error) {
	if len(operands) != 2 {
		return 0, 0, 0, fmt.Errorf("%w: want 2 operands, got %d", ErrBadOperand, len(operands))
	}
	rt, err := parseRegister(operands[0])
	if err != nil {
		return 0, 0, 0, err
	}
	mem := operands[1]
	open := strings.IndexByte(mem, '(')
	if open < 0 || !strings.HasSuffix(mem, ")") {
		return 0, 0, 0, fmt.Errorf("%w: %q is not offset(reg)", ErrBadOperand, mem)
	}
	imm, err := parseImmediate(mem[:open])
	if err != nil {
		return 0, 0, 0, err
	}
	rs, err := parseRegister(mem[open+1 : len(mem)-1])
	if err != nil {
		return 0, 0, 0, err
	}
	return rt, rs, imm, nil
}

// Parses "R0".."R31" (case-insensitive)
func parseRegister(tok string) (uint8, error) {
	if len(tok) < 2 || (tok[0] != 'R' && tok[0] != 'r') {
		return 0, fmt.Errorf("%w: %q is not a register", ErrBadOperand, tok)
	}
	n, err := strconv.ParseUint(tok[1:], 10, 8)
	if err != nil || n > 31 {
		return 0, fmt.Errorf("%w: %q is not a register", ErrBadOperand, tok)
	}
	return uint8(n), nil
}

// Parses a 16 bit immediate, signed or unsigned spelling
func parseImmediate(tok string) (uint16, error) {
	v, err := strconv.ParseInt(tok, 0, 32)
	if err != nil || v < -0x8000 || v > 0xffff {
		return 0, fmt.Errorf("%w: %q is not a 16 bit immediate", ErrBadOperand, tok)
	}
	return uint16(v), nil
}

func stripComment(line string) string {
	if idx := strings.IndexAny(line, "#;"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}
