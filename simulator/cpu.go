package simulator

// CPU state: register file, program counter, cycle count and the halted
// flag. All 32 registers are freely readable and writable, including R0
type CPU struct {
	Regs   [32]uint32 // general purpose registers
	PC     uint8      // the program counter register
	Cycle  uint32     // executed instruction count
	Halted bool
	Tracer Tracer // receives one event per executed instruction, may be nil
}

// Creates a new CPU state: PC 0, all registers 0, running
func NewCPU() *CPU {
	return &CPU{}
}

// Resets the CPU back to its initial state, keeping the tracer
func (cpu *CPU) Reset() {
	*cpu = CPU{Tracer: cpu.Tracer}
}

// Executes the instruction at the program counter. Loads go through the
// cache first and fall back to memory, stores write through to both.
// Does nothing when halted; halts once no word exists at the new PC
func (cpu *CPU) Step(mem *Memory, cache *Cache) {
	if cpu.Halted {
		return
	}

	// fetch instruction at PC; an unmapped fetch executes as word 0,
	// which decodes to an unsupported R-type
	pc := cpu.PC
	word, _ := mem.Word(pc)

	d := Decode(Instruction(word))
	ev := TraceEvent{PC: pc, Word: d.Word, Asm: d.String()}

	switch d.Mnemonic {
	case MNE_ADD:
		cpu.opADD(d, &ev)
	case MNE_SUB:
		cpu.opSUB(d, &ev)
	case MNE_SLT:
		cpu.opSLT(d, &ev)
	case MNE_ADDI:
		cpu.opADDI(d, &ev)
	case MNE_BEQ:
		cpu.opBEQ(d, &ev)
	case MNE_LW:
		cpu.opLW(d, mem, cache, &ev)
	case MNE_SW:
		cpu.opSW(d, mem, cache, &ev)
	default:
		// unsupported opcode or funct: no effect, PC still advances
		ev.Unsupported = true
		cpu.PC++
	}

	cpu.Cycle++
	ev.Cycle = cpu.Cycle

	// program execution is complete once the PC runs off the loaded words
	if !mem.Contains(cpu.PC) {
		cpu.Halted = true
	}

	if cpu.Tracer != nil {
		cpu.Tracer(ev)
	}
}

// ADD: rd = rs + rt (wrapping)
func (cpu *CPU) opADD(d Decoded, ev *TraceEvent) {
	cpu.Regs[d.Rd] = cpu.Regs[d.Rs] + cpu.Regs[d.Rt]
	ev.writeReg(d.Rd, cpu.Regs[d.Rd])
	cpu.PC++
}

// SUB: rd = rs - rt (wrapping)
func (cpu *CPU) opSUB(d Decoded, ev *TraceEvent) {
	cpu.Regs[d.Rd] = cpu.Regs[d.Rs] - cpu.Regs[d.Rt]
	ev.writeReg(d.Rd, cpu.Regs[d.Rd])
	cpu.PC++
}

// SLT: rd = 1 if rs < rt (signed comparison), else 0
func (cpu *CPU) opSLT(d Decoded, ev *TraceEvent) {
	cpu.Regs[d.Rd] = oneIfTrue(int32(cpu.Regs[d.Rs]) < int32(cpu.Regs[d.Rt]))
	ev.writeReg(d.Rd, cpu.Regs[d.Rd])
	cpu.PC++
}

// ADDI: rt = rs + sign-extended immediate (wrapping)
func (cpu *CPU) opADDI(d Decoded, ev *TraceEvent) {
	cpu.Regs[d.Rt] = cpu.Regs[d.Rs] + d.Word.ImmSE()
	ev.writeReg(d.Rt, cpu.Regs[d.Rt])
	cpu.PC++
}

// BEQ: branch by the immediate if rs == rt. Backward branches compute the
// target in signed 16 bit arithmetic truncated to 8 bits; forward branches
// use wrapping 8 bit arithmetic
func (cpu *CPU) opBEQ(d Decoded, ev *TraceEvent) {
	imm := int16(d.Imm)
	taken := cpu.Regs[d.Rs] == cpu.Regs[d.Rt]
	ev.Taken = taken

	if imm < 0 {
		if taken {
			cpu.PC = uint8(int16(cpu.PC) + 1 + imm)
		} else {
			cpu.PC++
		}
	} else {
		if taken {
			cpu.PC = cpu.PC + 1 + uint8(imm)
		} else {
			cpu.PC++
		}
	}
}

// LW: rt = MEM[rs + offset], cache first. A miss fills the cache from
// memory; an unmapped address reads as 0 and is created on first touch
func (cpu *CPU) opLW(d Decoded, mem *Memory, cache *Cache, ev *TraceEvent) {
	addr := uint8(cpu.Regs[d.Rs] + d.Word.ImmSE())
	ev.MemAccess = true
	ev.Addr = addr

	if data, hit := cache.Read(addr); hit {
		cpu.Regs[d.Rt] = data
		ev.CacheHit = true
	} else if data, ok := mem.Word(addr); ok {
		cpu.Regs[d.Rt] = data
		cache.Write(addr, data)
	} else {
		mem.SetWord(addr, 0, KIND_DATA)
		cache.Write(addr, 0)
		cpu.Regs[d.Rt] = 0
	}

	ev.Value = cpu.Regs[d.Rt]
	ev.writeReg(d.Rt, cpu.Regs[d.Rt])
	cpu.PC++
}

// SW: MEM[rs + offset] = rt, written through to the cache
func (cpu *CPU) opSW(d Decoded, mem *Memory, cache *Cache, ev *TraceEvent) {
	addr := uint8(cpu.Regs[d.Rs] + d.Word.ImmSE())
	data := cpu.Regs[d.Rt]

	mem.SetWord(addr, data, KIND_DATA)
	cache.Write(addr, data)

	ev.MemAccess = true
	ev.MemWrite = true
	ev.Addr = addr
	ev.Value = data
	cpu.PC++
}

// Returns the disassembly of the instruction at the current PC, or "None"
// if the address is unmapped
func (cpu *CPU) CurrentInstruction(mem *Memory) string {
	if word, ok := mem.Word(cpu.PC); ok {
		return Disassemble(Instruction(word))
	}
	return "None"
}

func (ev *TraceEvent) writeReg(reg uint8, val uint32) {
	ev.WroteReg = true
	ev.Reg = reg
	ev.RegValue = val
}
