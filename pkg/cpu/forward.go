package cpu

// Forwarding selector bits: which of the two operand slots a path rewrites.
const (
	fwdD1 = 0x2
	fwdD2 = 0x4
)

// selectors holds the four forwarding path masks, recomputed every cycle
// from the latch read views. The unit has no other state.
type selectors struct {
	wbEX  uint8
	memEX uint8
	memID uint8
	exID  uint8
}

// pairSelector builds the mask for one producer/consumer pair: fwdD1 if
// the consumer's rs1 matches the producer's rd, fwdD2 for rs2. A producer
// that does not write, or writes x0, forwards nothing.
func pairSelector(regWrite bool, rd, rs1, rs2 uint8) uint8 {
	if !regWrite || rd == 0 {
		return 0
	}
	var m uint8
	if rs1 == rd {
		m |= fwdD1
	}
	if rs2 == rd {
		m |= fwdD2
	}
	return m
}

// earlyForward recomputes the selectors against the freshly rotated read
// views and rewrites the EX operands in place. The ID-side register
// indices are taken straight from the raw word in the IF/ID latch, since
// decode has not extracted them yet. WB is applied before MEM so the
// fresher MEM value wins when both paths fire.
func (c *Core) earlyForward() {
	idRs1 := c.idR.ir.Rs1()
	idRs2 := c.idR.ir.Rs2()

	c.fwd.wbEX = pairSelector(c.wbR.cu.RegWrite, c.wbR.rd, c.exR.rs1, c.exR.rs2)
	c.fwd.memEX = pairSelector(c.memR.cu.RegWrite, c.memR.rd, c.exR.rs1, c.exR.rs2)
	c.fwd.memID = pairSelector(c.memR.cu.RegWrite, c.memR.rd, idRs1, 0) & fwdD1
	c.fwd.exID = pairSelector(c.exR.cu.RegWrite, c.exR.rd, idRs1, idRs2)

	if c.fwd.wbEX&fwdD1 != 0 {
		c.exR.d1 = c.wbR.aluRes
	}
	if c.fwd.wbEX&fwdD2 != 0 {
		c.exR.d2 = c.wbR.aluRes
	}
	if c.fwd.memEX&fwdD1 != 0 {
		c.exR.d1 = c.memR.aluRes
	}
	if c.fwd.memEX&fwdD2 != 0 {
		c.exR.d2 = c.memR.aluRes
	}
}

// lateForward runs at the top of cycleEnd, before the latch rotation. It
// patches the ID write view with results produced this cycle (EX beats
// MEM for d1; the MEM path only routes d1), then resolves the link return
// address or the pre-branch equality flag.
func (c *Core) lateForward() {
	if c.fwd.memID&fwdD1 != 0 {
		c.idW.d1 = c.memR.aluRes
	}
	if c.fwd.exID&fwdD1 != 0 {
		c.idW.d1 = c.exW.aluRes
	}
	if c.fwd.exID&fwdD2 != 0 {
		c.idW.d2 = c.exW.aluRes
	}

	if c.idW.cu.Link {
		// The ALU will compute d1 + 0 next cycle, writing the return
		// address into rd. The branch target already sits in the latch PC.
		c.idW.d1 = c.idR.pc + 4
		c.idW.imm = 0
	} else {
		c.idW.aluZero = c.idW.d1 == c.idW.d2
	}
}
