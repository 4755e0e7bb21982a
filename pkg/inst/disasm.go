package inst

import "fmt"

// branchMnemonics maps funct3 to the SB-type mnemonic. The datapath only
// evaluates equality, but the disassembler names what the image encodes.
var branchMnemonics = [8]string{"beq", "bne", "", "", "blt", "bge", "bltu", "bgeu"}

var opMnemonics = map[uint8]string{ // funct3 -> mnemonic, R-type and op-imm
	0: "add",
	6: "or",
	7: "and",
}

// RegName returns the numeric register name ("x0".."x31").
func RegName(i uint8) string {
	return fmt.Sprintf("x%d", i&0x1F)
}

// Disassemble renders an instruction word as assembly text for the
// recognized subset. Unrecognized words render as a raw .word directive.
func Disassemble(w Word) string {
	d := Decode(w)
	switch d.Compressed {
	case FamilyLoad:
		if d.Funct3 == 3 {
			return fmt.Sprintf("ld %s, %d(%s)", RegName(d.Rd), d.Imm, RegName(d.Rs1))
		}
	case FamilyOpImm:
		switch d.Funct3 {
		case 0:
			return fmt.Sprintf("addi %s, %s, %d", RegName(d.Rd), RegName(d.Rs1), d.Imm)
		case 6:
			return fmt.Sprintf("ori %s, %s, %d", RegName(d.Rd), RegName(d.Rs1), d.Imm)
		case 7:
			return fmt.Sprintf("andi %s, %s, %d", RegName(d.Rd), RegName(d.Rs1), d.Imm)
		}
	case FamilyStore:
		if d.Funct3 == 3 {
			return fmt.Sprintf("sd %s, %d(%s)", RegName(d.Rs2), d.Imm, RegName(d.Rs1))
		}
	case FamilyOp:
		name := opMnemonics[d.Funct3]
		if d.Funct3 == 0 && d.Funct7&0x20 != 0 {
			name = "sub"
		}
		if name != "" {
			return fmt.Sprintf("%s %s, %s, %s", name, RegName(d.Rd), RegName(d.Rs1), RegName(d.Rs2))
		}
	case FamilyBranch:
		if name := branchMnemonics[d.Funct3]; name != "" {
			return fmt.Sprintf("%s %s, %s, %d", name, RegName(d.Rs1), RegName(d.Rs2), d.Imm<<1)
		}
	case FamilyJALR:
		return fmt.Sprintf("jalr %s, %d(%s)", RegName(d.Rd), d.Imm, RegName(d.Rs1))
	case FamilyJAL:
		return fmt.Sprintf("jal %s, %d", RegName(d.Rd), d.Imm<<1)
	}
	return fmt.Sprintf(".word 0x%08X", uint32(w))
}
