package simulator

// Bundles one independent simulation run: CPU, backing memory and cache are
// created together and reset together. Whoever drives the simulation owns
// this context; nothing in the package is global, so any number of
// simulations can coexist
type Simulation struct {
	CPU      *CPU
	Memory   *Memory
	Cache    *Cache
	Debugger *Debugger
	Trace    *TraceLog

	numSets      int
	blocksPerSet int
}

// Creates a fresh simulation with the given cache shape. The CPU traces
// into Simulation.Trace by default
func NewSimulation(numSets, blocksPerSet int) *Simulation {
	sim := &Simulation{
		CPU:          NewCPU(),
		Memory:       NewMemory(),
		Cache:        NewCache(numSets, blocksPerSet),
		Debugger:     NewDebugger(),
		Trace:        NewTraceLog(64),
		numSets:      numSets,
		blocksPerSet: blocksPerSet,
	}
	sim.CPU.Tracer = sim.Trace.Append
	return sim
}

// Executes a single step. Returns the trace event of the executed
// instruction, or false if the CPU was already halted
func (sim *Simulation) Step() (TraceEvent, bool) {
	if sim.CPU.Halted {
		return TraceEvent{}, false
	}
	sim.CPU.Step(sim.Memory, sim.Cache)
	ev, _ := sim.Trace.Last()
	return ev, true
}

// Steps until the CPU halts, giving up after `maxSteps` steps so runaway
// programs terminate. Returns the number of steps executed
func (sim *Simulation) RunToHalt(maxSteps int) int {
	steps := 0
	for !sim.CPU.Halted && steps < maxSteps {
		sim.CPU.Step(sim.Memory, sim.Cache)
		steps++
	}
	return steps
}

// Discards all state: registers, PC, memory, cache contents and counters,
// trace. Breakpoints and watchpoints survive a reset
func (sim *Simulation) Reset() {
	sim.CPU.Reset()
	sim.Memory = NewMemory()
	sim.Cache = NewCache(sim.numSets, sim.blocksPerSet)
	sim.Trace = NewTraceLog(sim.Trace.Max)
	sim.CPU.Tracer = sim.Trace.Append
}

// Places `words` in memory as instructions at addresses 0, 1, 2, ...
func (sim *Simulation) LoadProgram(words []Instruction) {
	for i, word := range words {
		sim.Memory.SetWord(uint8(i), uint32(word), KIND_INSTRUCTION)
	}
}
