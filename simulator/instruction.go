package simulator

import "fmt"

// A 32 bit instruction word
type Instruction uint32

// Opcode values understood by the CPU
const (
	OPCODE_RTYPE uint8 = 0x00 // ADD/SUB/SLT, selected by the funct field
	OPCODE_BEQ   uint8 = 0x04 // Branch if equal
	OPCODE_ADDI  uint8 = 0x08 // Add immediate
	OPCODE_LW    uint8 = 0x23 // Load word
	OPCODE_SW    uint8 = 0x2B // Store word
)

// Funct values of R-type instructions (opcode 0x00)
const (
	FUNCT_ADD uint8 = 0x20
	FUNCT_SUB uint8 = 0x22
	FUNCT_SLT uint8 = 0x2A
)

// Return the opcode in bits [31:26]
func (op Instruction) Opcode() uint8 {
	return uint8(uint32(op) >> 26)
}

// Return register index in bits [25:21]
func (op Instruction) Rs() uint8 {
	return uint8((uint32(op) >> 21) & 0x1f)
}

// Return register index in bits [20:16]
func (op Instruction) Rt() uint8 {
	return uint8((uint32(op) >> 16) & 0x1f)
}

// Return register index in bits [15:11]
func (op Instruction) Rd() uint8 {
	return uint8((uint32(op) >> 11) & 0x1f)
}

// Shift immediate values are stored in bits [10:6]
func (op Instruction) Shamt() uint8 {
	return uint8((uint32(op) >> 6) & 0x1f)
}

// Return bits [5:0] of the instruction
func (op Instruction) Funct() uint8 {
	return uint8(uint32(op) & 0x3f)
}

// Return immediate value in bits [15:0]
func (op Instruction) Imm() uint16 {
	return uint16(uint32(op) & 0xffff)
}

// Return immediate value in bits [15:0] as a sign-extended 32 bit value
func (op Instruction) ImmSE() uint32 {
	v := int16(uint32(op) & 0xffff) // sign-extend v
	return uint32(v)
}

// Mnemonics of all instructions the decoder can classify
type Mnemonic int

const (
	MNE_UNKNOWN       Mnemonic = iota // unrecognized opcode
	MNE_UNKNOWN_FUNCT                 // opcode 0x00 with an unrecognized funct
	MNE_ADD
	MNE_SUB
	MNE_SLT
	MNE_ADDI
	MNE_BEQ
	MNE_LW
	MNE_SW
)

// A fully decoded instruction word. Decoding never fails: words the CPU
// does not implement decode to MNE_UNKNOWN or MNE_UNKNOWN_FUNCT, keeping
// the raw opcode/funct values for display
type Decoded struct {
	Word     Instruction
	Mnemonic Mnemonic
	Opcode   uint8
	Rs       uint8
	Rt       uint8
	Rd       uint8
	Shamt    uint8
	Funct    uint8
	Imm      uint16
}

// Decodes an instruction word into its fields and mnemonic
func Decode(word Instruction) Decoded {
	d := Decoded{
		Word:   word,
		Opcode: word.Opcode(),
		Rs:     word.Rs(),
		Rt:     word.Rt(),
		Rd:     word.Rd(),
		Shamt:  word.Shamt(),
		Funct:  word.Funct(),
		Imm:    word.Imm(),
	}

	switch d.Opcode {
	case OPCODE_RTYPE:
		switch d.Funct {
		case FUNCT_ADD:
			d.Mnemonic = MNE_ADD
		case FUNCT_SUB:
			d.Mnemonic = MNE_SUB
		case FUNCT_SLT:
			d.Mnemonic = MNE_SLT
		default:
			d.Mnemonic = MNE_UNKNOWN_FUNCT
		}
	case OPCODE_ADDI:
		d.Mnemonic = MNE_ADDI
	case OPCODE_BEQ:
		d.Mnemonic = MNE_BEQ
	case OPCODE_LW:
		d.Mnemonic = MNE_LW
	case OPCODE_SW:
		d.Mnemonic = MNE_SW
	default:
		d.Mnemonic = MNE_UNKNOWN
	}
	return d
}

// Returns the assembly representation of the decoded word, e.g.
// "ADD R3, R1, R2" or "LW R2, 4(R0)". Unrecognized words render their
// raw opcode/funct values
func (d Decoded) String() string {
	switch d.Mnemonic {
	case MNE_ADD:
		return fmt.Sprintf("ADD R%d, R%d, R%d", d.Rd, d.Rs, d.Rt)
	case MNE_SUB:
		return fmt.Sprintf("SUB R%d, R%d, R%d", d.Rd, d.Rs, d.Rt)
	case MNE_SLT:
		return fmt.Sprintf("SLT R%d, R%d, R%d", d.Rd, d.Rs, d.Rt)
	case MNE_ADDI:
		return fmt.Sprintf("ADDI R%d, R%d, %d", d.Rt, d.Rs, int16(d.Imm))
	case MNE_BEQ:
		return fmt.Sprintf("BEQ R%d, R%d, %d", d.Rs, d.Rt, int16(d.Imm))
	case MNE_LW:
		return fmt.Sprintf("LW R%d, %d(R%d)", d.Rt, int16(d.Imm), d.Rs)
	case MNE_SW:
		return fmt.Sprintf("SW R%d, %d(R%d)", d.Rt, int16(d.Imm), d.Rs)
	case MNE_UNKNOWN_FUNCT:
		return fmt.Sprintf("R-type 0x%X", d.Funct)
	default:
		return fmt.Sprintf("Unknown 0x%X", d.Opcode)
	}
}

// Disassembles an instruction word
func Disassemble(word Instruction) string {
	return Decode(word).String()
}
