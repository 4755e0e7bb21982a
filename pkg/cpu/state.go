package cpu

import (
	"errors"
	"fmt"

	"github.com/harimsng/riscv-processor/pkg/inst"
)

// Memory capacities, in 32-bit words for instructions and 64-bit words for
// data. Data memory is indexed directly by the ALU result as a word index,
// not a byte address.
const (
	InstMemSize = 32 * 1024
	DataMemSize = 32 * 1024
)

// Failure classes for accesses the original left undefined. The core
// bounds-checks and halts with one of these instead.
var (
	ErrInstOutOfRange = errors.New("instruction fetch out of range")
	ErrDataOutOfRange = errors.New("data memory access out of range")
	ErrProgramTooBig  = errors.New("program exceeds instruction memory")
)

// State is the architectural machine state: the register file, program
// counter, both memories, and the cycle counter. ExitPC is the PC held in
// the WB read view at the end of the latest cycle; when the program halts,
// that is the slot after the terminating instruction, and it is the final
// reported PC.
type State struct {
	Regs    [32]uint64
	PC      uint64
	Cycles  int64
	ExitPC  uint64
	InstMem [InstMemSize]uint32
	DataMem [DataMemSize]uint64
}

// Reg reads architectural register i.
func (s *State) Reg(i uint8) uint64 {
	return s.Regs[i&0x1F]
}

// SetReg writes architectural register i. Writes to x0 are dropped.
func (s *State) SetReg(i uint8, v uint64) {
	if i&0x1F == 0 {
		return
	}
	s.Regs[i&0x1F] = v
}

// InstWord fetches the instruction word addressed by pc (byte address,
// word-aligned by construction since the PC only moves in steps of 4).
func (s *State) InstWord(pc uint64) (inst.Word, error) {
	idx := pc / 4
	if idx >= InstMemSize {
		return 0, fmt.Errorf("%w: pc=%d", ErrInstOutOfRange, pc)
	}
	return inst.Word(s.InstMem[idx]), nil
}

// LoadData reads the data word at the given word index.
func (s *State) LoadData(idx uint64) (uint64, error) {
	if idx >= DataMemSize {
		return 0, fmt.Errorf("%w: index=%d", ErrDataOutOfRange, idx)
	}
	return s.DataMem[idx], nil
}

// StoreData writes the data word at the given word index.
func (s *State) StoreData(idx uint64, v uint64) error {
	if idx >= DataMemSize {
		return fmt.Errorf("%w: index=%d", ErrDataOutOfRange, idx)
	}
	s.DataMem[idx] = v
	return nil
}

// LoadProgram copies an instruction image into instruction memory starting
// at word 0. Entries past the image remain zero, which decode as benign
// rd=0 loads; the termination scheme relies on that.
func (s *State) LoadProgram(words []uint32) error {
	if len(words) > InstMemSize {
		return fmt.Errorf("%w: %d words", ErrProgramTooBig, len(words))
	}
	copy(s.InstMem[:], words)
	return nil
}
