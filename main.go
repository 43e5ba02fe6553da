package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/m8vm/cpusim/simulator"
)

func main() {
	// parse arguments
	programPath := flag.String("program", "", "path to the instruction word file")
	dataPath := flag.String("data", "", "path to the data word file")
	asmPath := flag.String("asm", "", "path to an assembly file, loaded at address 0")
	numSets := flag.Int("sets", simulator.DEFAULT_NUM_SETS, "number of cache sets")
	blocksPerSet := flag.Int("blocks", simulator.DEFAULT_BLOCKS_PER_SET, "cache blocks per set")
	gui := flag.Bool("gui", false, "run the graphical front end")
	maxSteps := flag.Int("max-steps", 10000, "stop after this many steps")
	flag.Parse()

	sim := simulator.NewSimulation(*numSets, *blocksPerSet)
	load := func(sim *simulator.Simulation) {
		if *dataPath != "" {
			loadWords(sim, *dataPath, (*simulator.Memory).LoadData)
		}
		if *programPath != "" {
			loadWords(sim, *programPath, (*simulator.Memory).LoadInstructions)
		}
		if *asmPath != "" {
			loadAssembly(sim, *asmPath)
		}
	}
	load(sim)

	if *gui {
		screen := simulator.NewScreen(sim)
		screen.OnReset = load
		if err := screen.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	// terminal mode: run to halt, tracing every instruction
	sim.CPU.Tracer = func(ev simulator.TraceEvent) {
		sim.Trace.Append(ev)
		line := fmt.Sprintf("cycle %d pc 0x%02X: %s", ev.Cycle, ev.PC, ev.Asm)
		if ev.MemAccess && !ev.MemWrite {
			if ev.CacheHit {
				line += " (cache hit)"
			} else {
				line += " (cache miss)"
			}
		}
		log.Print(line)
	}
	steps := sim.RunToHalt(*maxSteps)
	if !sim.CPU.Halted {
		log.Printf("giving up after %d steps", steps)
	}
	printFinalState(sim)
}

func loadWords(sim *simulator.Simulation, path string, load func(*simulator.Memory, io.Reader) error) {
	file, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()
	if err := load(sim.Memory, file); err != nil {
		log.Fatalf("loading %q: %v", path, err)
	}
}

func loadAssembly(sim *simulator.Simulation, path string) {
	file, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()
	words, err := simulator.Assemble(file)
	if err != nil {
		log.Fatalf("assembling %q: %v", path, err)
	}
	sim.LoadProgram(words)
}

func printFinalState(sim *simulator.Simulation) {
	cpu := sim.CPU
	cache := sim.Cache

	fmt.Printf("\nFinal CPU state:\n")
	fmt.Printf("  PC: 0x%02X\n", cpu.PC)
	fmt.Printf("  Cycle: %d\n", cpu.Cycle)
	fmt.Printf("  Halted: %v\n", cpu.Halted)

	fmt.Printf("\nRegisters (non-zero):\n")
	for i, val := range cpu.Regs {
		if val != 0 {
			fmt.Printf("  R%d: %d\n", i, val)
		}
	}

	fmt.Printf("\nCache statistics:\n")
	fmt.Printf("  Hits: %d\n", cache.Hits)
	fmt.Printf("  Misses: %d\n", cache.Misses)
	fmt.Printf("  Hit rate: %.2f%%\n", cache.HitRate()*100)

	fmt.Printf("\nData words in memory:\n")
	addrs := make([]int, 0, len(sim.Memory.Data))
	for addr := range sim.Memory.Data {
		addrs = append(addrs, int(addr))
	}
	sort.Ints(addrs)
	for _, a := range addrs {
		addr := uint8(a)
		if kind, ok := sim.Memory.Kind(addr); ok && kind == simulator.KIND_DATA {
			fmt.Printf("  0x%02X: %d\n", addr, sim.Memory.Data[addr])
		}
	}
}
