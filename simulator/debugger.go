package simulator

// Pauses a running simulation on interesting addresses: breakpoints on the
// PC, watchpoints on memory reads/writes. Consulted by the front end run
// loops, the CPU itself never blocks
type Debugger struct {
	Breakpoints      []uint8 // all breakpoint addresses
	ReadWatchpoints  []uint8 // all read watchpoints
	WriteWatchpoints []uint8 // all write watchpoints
}

func NewDebugger() *Debugger {
	return &Debugger{}
}

// Adds a breakpoint for when the instruction at `addr` is about to be
// executed
func (debugger *Debugger) AddBreakpoint(addr uint8) {
	// check if that breakpoint already exists
	for _, breakpoint := range debugger.Breakpoints {
		if breakpoint == addr {
			return
		}
	}
	debugger.Breakpoints = append(debugger.Breakpoints, addr)
}

// Deletes a breakpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteBreakpoint(addr uint8) {
	for idx, breakpoint := range debugger.Breakpoints {
		if breakpoint == addr {
			debugger.Breakpoints = append(debugger.Breakpoints[:idx], debugger.Breakpoints[idx+1:]...)
			return
		}
	}
}

// Adds a memory read watchpoint for `addr`
func (debugger *Debugger) AddReadWatchpoint(addr uint8) {
	for _, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			return
		}
	}
	debugger.ReadWatchpoints = append(debugger.ReadWatchpoints, addr)
}

// Adds a memory write watchpoint for `addr`
func (debugger *Debugger) AddWriteWatchpoint(addr uint8) {
	for _, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			return
		}
	}
	debugger.WriteWatchpoints = append(debugger.WriteWatchpoints, addr)
}

// Deletes a memory read watchpoint at `addr`. Does nothing if it doesn't
// exist
func (debugger *Debugger) DeleteReadWatchpoint(addr uint8) {
	for idx, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			debugger.ReadWatchpoints = append(
				debugger.ReadWatchpoints[:idx],
				debugger.ReadWatchpoints[idx+1:]...,
			)
			return
		}
	}
}

// Deletes a memory write watchpoint at `addr`. Does nothing if it doesn't
// exist
func (debugger *Debugger) DeleteWriteWatchpoint(addr uint8) {
	for idx, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			debugger.WriteWatchpoints = append(
				debugger.WriteWatchpoints[:idx],
				debugger.WriteWatchpoints[idx+1:]...,
			)
			return
		}
	}
}

// Returns true if a breakpoint exists for `pc`
func (debugger *Debugger) HasBreakpoint(pc uint8) bool {
	for _, breakpoint := range debugger.Breakpoints {
		if breakpoint == pc {
			return true
		}
	}
	return false
}

// Returns true if the executed instruction touched a watched address
func (debugger *Debugger) WatchTriggered(ev TraceEvent) bool {
	if !ev.MemAccess {
		return false
	}
	watchpoints := debugger.ReadWatchpoints
	if ev.MemWrite {
		watchpoints = debugger.WriteWatchpoints
	}
	for _, watchpoint := range watchpoints {
		if watchpoint == ev.Addr {
			return true
		}
	}
	return false
}
