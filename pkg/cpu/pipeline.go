package cpu

import (
	"errors"
	"fmt"
	"io"

	"github.com/harimsng/riscv-processor/pkg/inst"
)

// Simulation halts when x9 holds 10 at the end of a cycle.
const (
	haltReg   = 9
	haltValue = 10
)

// ErrCycleLimit reports that the configured cycle ceiling was reached
// before the program terminated.
var ErrCycleLimit = errors.New("cycle limit reached")

// pipelineReg is one inter-stage latch: the raw instruction, its PC, the
// sign-extended immediate, the staged memory/store data word, the two
// register-file read values, the register indices, the ALU result and zero
// flag, and the control bundle. An all-zero latch is a bubble.
type pipelineReg struct {
	ir      inst.Word
	pc      uint64
	imm     int64
	data    uint64
	d1, d2  uint64
	rs1     uint8
	rs2     uint8
	rd      uint8
	aluRes  uint64
	aluZero bool
	cu      inst.Control
}

// Core is the five-stage pipelined datapath. Each inter-stage latch is a
// read-view/write-view pair: within a cycle every stage reads only the
// read view (last cycle's output) and writes only the write view; cycleEnd
// is the single place the views rotate. The IF latch has no read view and
// the WB latch no write view.
type Core struct {
	State

	ifW pipelineReg

	idR, idW pipelineReg

	exR, exW pipelineReg

	memR, memW pipelineReg

	wbR pipelineReg

	fwd selectors

	// Trace, when non-nil, receives one line per simulated cycle.
	Trace io.Writer
}

// New returns a core with zeroed machine state and an empty pipeline.
func New() *Core {
	return &Core{}
}

// fetch reads the instruction word at the current PC into the IF write
// view. The PC itself advances in cycleEnd.
func (c *Core) fetch() error {
	w, err := c.InstWord(c.PC)
	if err != nil {
		return err
	}
	c.ifW = pipelineReg{ir: w, pc: c.PC}
	return nil
}

// decode extracts the register indices and immediate, reads the register
// file unless an EX-to-ID forwarding selector overrides, generates the
// control bundle, and precomputes the branch target into the latch PC
// slot.
func (c *Core) decode() {
	c.idW = c.idR

	d := inst.Decode(c.idR.ir)
	c.idW.rs1 = d.Rs1
	c.idW.rs2 = d.Rs2
	c.idW.rd = d.Rd
	if c.fwd.exID&fwdD1 == 0 {
		c.idW.d1 = c.Reg(d.Rs1)
	}
	if c.fwd.exID&fwdD2 == 0 {
		c.idW.d2 = c.Reg(d.Rs2)
	}
	c.idW.cu = inst.ControlFor(d)
	c.idW.imm = d.Imm

	if c.idW.cu.Branch {
		// jalr targets are register-relative, everything else is
		// PC-relative. The packed immediate carries an implicit low zero
		// bit, hence the extra shift.
		base := c.idW.pc
		if d.Compressed == inst.FamilyJALR {
			base = c.idW.d1
		}
		c.idW.pc = base + uint64(d.Imm<<1)
	}
}

// execute runs the ALU over the forwarded operands and stages d2 for a
// subsequent store.
func (c *Core) execute() {
	c.exW = c.exR

	ctrl := aluControl(c.exR.cu.ALUOp, c.exR.ir.Funct3(), c.exR.ir.Funct7(), c.exR.cu.Funct7)
	c.exW.data = c.exR.d2
	d1 := int64(c.exR.d1)
	d2 := int64(c.exR.d2)
	if c.exR.cu.ALUSrc {
		d2 = c.exR.imm
	}
	res, zero := aluCompute(ctrl, d1, d2)
	c.exW.aluRes = uint64(res)
	c.exW.aluZero = zero
}

// memAccess performs the data memory store and/or load selected by the
// control bundle. The ALU result is used directly as a word index.
func (c *Core) memAccess() error {
	c.memW = c.memR

	if c.memR.cu.MemWrite {
		if err := c.StoreData(c.memR.aluRes, c.memR.data); err != nil {
			return err
		}
	}
	if c.memR.cu.MemRead {
		v, err := c.LoadData(c.memR.aluRes)
		if err != nil {
			return err
		}
		c.memW.data = v
	}
	return nil
}

// writeBack commits the retired instruction's result to the register file.
func (c *Core) writeBack() {
	if !c.wbR.cu.RegWrite || c.wbR.rd == 0 {
		return
	}
	v := c.wbR.aluRes
	if c.wbR.cu.MemToReg {
		v = c.wbR.data
	}
	c.SetReg(c.wbR.rd, v)
}

// cycleEnd is the per-cycle barrier: late forwarding into the ID write
// view, latch rotation, branch resolution against the newly loaded EX read
// view, early forwarding for the next cycle, and the ExitPC update.
func (c *Core) cycleEnd() {
	c.lateForward()

	c.idR = c.ifW
	c.exR = c.idW
	c.memR = c.exW
	c.wbR = c.memW

	if (c.exR.aluZero || c.exR.cu.Link) && c.exR.cu.Branch {
		c.PC = c.exR.pc
		c.idR = pipelineReg{} // squash the instruction behind the branch
	} else {
		c.PC += 4
	}

	c.earlyForward()
	c.ExitPC = c.wbR.pc
}

// Step simulates one clock cycle. It reports true once the termination
// condition holds, after setting the PC to the final reported value.
// Stage order within the cycle: WB first so the oldest instruction's
// register write is visible to decode's register read.
func (c *Core) Step() (done bool, err error) {
	c.writeBack()
	if err := c.fetch(); err != nil {
		return false, err
	}
	c.decode()
	c.execute()
	if err := c.memAccess(); err != nil {
		return false, err
	}
	c.cycleEnd()
	c.Cycles++

	if c.Trace != nil {
		c.traceCycle()
	}

	if c.Regs[haltReg] == haltValue {
		c.PC = c.ExitPC
		return true, nil
	}
	return false, nil
}

// Run steps the core until the program terminates, a memory access faults,
// or the cycle ceiling is hit. maxCycles <= 0 disables the ceiling.
func (c *Core) Run(maxCycles int64) error {
	for {
		done, err := c.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if maxCycles > 0 && c.Cycles >= maxCycles {
			return fmt.Errorf("%w after %d cycles", ErrCycleLimit, maxCycles)
		}
	}
}

// traceCycle writes a one-line snapshot of the pipeline occupancy after
// the latch rotation: the instruction each stage will process next cycle.
func (c *Core) traceCycle() {
	fmt.Fprintf(c.Trace, "cycle %4d  pc=%-6d ID[%s]  EX[%s]  MEM[%s]  WB[%s]\n",
		c.Cycles, c.PC,
		inst.Disassemble(c.idR.ir),
		inst.Disassemble(c.exR.ir),
		inst.Disassemble(c.memR.ir),
		inst.Disassemble(c.wbR.ir))
}
