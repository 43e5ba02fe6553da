package simulator

// One executed instruction, as reported to trace listeners. The CPU emits
// one event per Step; front ends may render or discard them, correctness
// never depends on this channel
type TraceEvent struct {
	Cycle uint32      // cycle count after the instruction committed
	PC    uint8       // address the instruction was fetched from
	Word  Instruction // the raw instruction word
	Asm   string      // disassembly of the word

	// register write, if any
	WroteReg bool
	Reg      uint8
	RegValue uint32

	// memory reference, if any (LW/SW)
	MemAccess bool
	MemWrite  bool
	Addr      uint8
	Value     uint32
	CacheHit  bool

	Taken       bool // BEQ only: branch was taken
	Unsupported bool // unrecognized opcode or funct
}

// Receives trace events. A nil Tracer discards them
type Tracer func(ev TraceEvent)

// A bounded in-order record of the most recent trace events, for display
type TraceLog struct {
	Events []TraceEvent
	Max    int
}

// Returns a trace log keeping the last `max` events
func NewTraceLog(max int) *TraceLog {
	return &TraceLog{Max: max}
}

// Appends an event, dropping the oldest one when full
func (tl *TraceLog) Append(ev TraceEvent) {
	tl.Events = append(tl.Events, ev)
	if len(tl.Events) > tl.Max {
		tl.Events = tl.Events[len(tl.Events)-tl.Max:]
	}
}

// Returns the most recent event and whether one exists
func (tl *TraceLog) Last() (TraceEvent, bool) {
	if len(tl.Events) == 0 {
		return TraceEvent{}, false
	}
	return tl.Events[len(tl.Events)-1], true
}
