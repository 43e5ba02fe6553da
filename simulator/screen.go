package simulator

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	SCREEN_WIDTH  = 960
	SCREEN_HEIGHT = 640
)

var screenColor = color.RGBA{0x18, 0x18, 0x20, 0xff}

// Interactive front end for a simulation, implements ebiten.Game. Space
// steps once, Enter toggles the auto-run mode, R resets. Auto-run pauses
// on debugger breakpoints and watchpoints
type Screen struct {
	Sim          *Simulation
	Running      bool              // auto-run mode
	StepInterval int               // frames between automatic steps
	OnReset      func(*Simulation) // reloads the program after a reset

	frame int
}

// Returns a front end for `sim`, stepping 4 times per second in auto-run
// mode
func NewScreen(sim *Simulation) *Screen {
	return &Screen{Sim: sim, StepInterval: 15}
}

// Opens the window and runs the front end until it is closed
func (s *Screen) Run() error {
	ebiten.SetWindowSize(SCREEN_WIDTH, SCREEN_HEIGHT)
	ebiten.SetWindowTitle("CPU simulator")
	return ebiten.RunGame(s)
}

func (s *Screen) Update() error {
	s.frame++

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Running = false
		s.Sim.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Running = !s.Running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Running = false
		s.Sim.Reset()
		if s.OnReset != nil {
			s.OnReset(s.Sim)
		}
	}

	if s.Running && s.frame%s.StepInterval == 0 {
		s.autoStep()
	}
	return nil
}

// One auto-run step, pausing on halt, watchpoints and breakpoints
func (s *Screen) autoStep() {
	ev, ok := s.Sim.Step()
	if !ok || s.Sim.CPU.Halted {
		s.Running = false
		return
	}
	if s.Sim.Debugger.WatchTriggered(ev) || s.Sim.Debugger.HasBreakpoint(s.Sim.CPU.PC) {
		s.Running = false
	}
}

func (s *Screen) Draw(screen *ebiten.Image) {
	screen.Fill(screenColor)
	ebitenutil.DebugPrintAt(screen, s.statusText(), 8, 8)
	ebitenutil.DebugPrintAt(screen, s.registerText(), 8, 88)
	ebitenutil.DebugPrintAt(screen, s.cacheText(), 360, 88)
	ebitenutil.DebugPrintAt(screen, s.memoryText(), 8, 280)
	ebitenutil.DebugPrintAt(screen, s.traceText(), 520, 280)
}

func (s *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return SCREEN_WIDTH, SCREEN_HEIGHT
}

func (s *Screen) statusText() string {
	cpu := s.Sim.CPU
	state := "running"
	if cpu.Halted {
		state = "halted"
	} else if s.Running {
		state = "auto-run"
	}
	return fmt.Sprintf(
		"PC 0x%02X  cycle %d  %s\nnext: %s\n[space] step  [enter] run/pause  [r] reset",
		cpu.PC, cpu.Cycle, state, cpu.CurrentInstruction(s.Sim.Memory),
	)
}

// Registers in an 8 row by 4 column grid
func (s *Screen) registerText() string {
	var b strings.Builder
	b.WriteString("Registers\n")
	for row := 0; row < 8; row++ {
		for col := 0; col < 4; col++ {
			i := col*8 + row
			fmt.Fprintf(&b, "R%-2d %08X   ", i, s.Sim.CPU.Regs[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Cache contents per set and block, plus the hit/miss counters
func (s *Screen) cacheText() string {
	cache := s.Sim.Cache
	var b strings.Builder
	fmt.Fprintf(&b, "Cache  hits %d  misses %d  rate %.2f%%\n",
		cache.Hits, cache.Misses, cache.HitRate()*100)
	for setIdx := 0; setIdx < cache.NumSets; setIdx++ {
		fmt.Fprintf(&b, "set %d:\n", setIdx)
		set := cache.Sets[uint8(setIdx)]
		for blockIdx := 0; blockIdx < cache.BlocksPerSet; blockIdx++ {
			if set != nil && blockIdx < len(set.Blocks) && set.Blocks[blockIdx].Valid {
				block := set.Blocks[blockIdx]
				fmt.Fprintf(&b, "  block %d: tag 0x%02X data %d\n",
					blockIdx, block.Tag, block.Data)
			} else {
				fmt.Fprintf(&b, "  block %d: empty\n", blockIdx)
			}
		}
	}
	return b.String()
}

// All mapped memory words in address order, instructions disassembled
func (s *Screen) memoryText() string {
	mem := s.Sim.Memory
	addrs := make([]int, 0, len(mem.Data))
	for addr := range mem.Data {
		addrs = append(addrs, int(addr))
	}
	sort.Ints(addrs)

	var b strings.Builder
	b.WriteString("Memory\n")
	for _, a := range addrs {
		addr := uint8(a)
		word := mem.Data[addr]
		marker := "  "
		if addr == s.Sim.CPU.PC && !s.Sim.CPU.Halted {
			marker = "> "
		}
		if kind, ok := mem.Kind(addr); ok && kind == KIND_INSTRUCTION {
			fmt.Fprintf(&b, "%s0x%02X  %s\n", marker, addr, Disassemble(Instruction(word)))
		} else {
			fmt.Fprintf(&b, "%s0x%02X  %d\n", marker, addr, word)
		}
	}
	return b.String()
}

// The most recent executed instructions, newest last
func (s *Screen) traceText() string {
	var b strings.Builder
	b.WriteString("Trace\n")
	events := s.Sim.Trace.Events
	if len(events) > 16 {
		events = events[len(events)-16:]
	}
	for _, ev := range events {
		fmt.Fprintf(&b, "%4d 0x%02X  %s", ev.Cycle, ev.PC, ev.Asm)
		if ev.MemAccess && !ev.MemWrite {
			if ev.CacheHit {
				b.WriteString("  (hit)")
			} else {
				b.WriteString("  (miss)")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
