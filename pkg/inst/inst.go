package inst

// Word is one raw 32-bit RV64I instruction as fetched from instruction
// memory. Field accessors extract the fixed-position encoding fields; the
// caller ignores fields its format does not use.
type Word uint32

// Opcode returns the 7-bit opcode field.
func (w Word) Opcode() uint8 { return uint8(w & 0x7F) }

// Rd returns the destination register index.
func (w Word) Rd() uint8 { return uint8((w >> 7) & 0x1F) }

// Funct3 returns the 3-bit funct3 field.
func (w Word) Funct3() uint8 { return uint8((w >> 12) & 0x07) }

// Rs1 returns the first source register index.
func (w Word) Rs1() uint8 { return uint8((w >> 15) & 0x1F) }

// Rs2 returns the second source register index.
func (w Word) Rs2() uint8 { return uint8((w >> 20) & 0x1F) }

// Funct7 returns the 7-bit funct7 field.
func (w Word) Funct7() uint8 { return uint8((w >> 25) & 0x7F) }

// Compressed returns the 4-bit instruction-family key derived from the
// opcode: ((opcode & 0x70) >> 4) + ((opcode & 0x0C) >> 2). It discriminates
// the encoding variant and drives control-signal generation.
func (w Word) Compressed() uint8 {
	op := w.Opcode()
	return ((op & 0x70) >> 4) + ((op & 0x0C) >> 2)
}

// Compressed opcode values for the recognized instruction families.
const (
	FamilyLoad   = 0 // ld (I-type)
	FamilyOpImm  = 1 // addi/andi/ori/... (I-type)
	FamilyStore  = 2 // sd (S-type)
	FamilyOp     = 3 // add/sub/and/or (R-type)
	FamilyU      = 5 // U-type (unused: lui and auipc derive keys 4 and 2)
	FamilyBranch = 6 // beq/... (SB-type)
	FamilyJALR   = 7 // jalr (I-type)
	FamilyJAL    = 9 // jal (UJ-type)
)

// Variant identifies the encoding format of an instruction word.
type Variant uint8

const (
	VariantR Variant = iota
	VariantI
	VariantS
	VariantSB
	VariantU
	VariantUJ
	VariantNone // unrecognized family
)

// VariantOf maps a compressed opcode to its encoding variant.
func VariantOf(compressed uint8) Variant {
	switch compressed {
	case FamilyOp:
		return VariantR
	case FamilyLoad, FamilyOpImm, FamilyJALR:
		return VariantI
	case FamilyStore:
		return VariantS
	case FamilyBranch:
		return VariantSB
	case FamilyU:
		return VariantU
	case FamilyJAL:
		return VariantUJ
	}
	return VariantNone
}

// Decoded is the eagerly decoded form of one instruction word: the raw
// word, its family and variant, the three register indices, the funct
// fields, and the sign-extended immediate assembled per the variant.
type Decoded struct {
	Word       Word
	Compressed uint8
	Variant    Variant
	Rd         uint8
	Rs1        uint8
	Rs2        uint8
	Funct3     uint8
	Funct7     uint8
	Imm        int64
}

// Decode extracts all fields of w. Register and funct fields are read from
// their fixed R-type positions regardless of variant; the immediate is
// assembled and sign-extended per the variant's packing rules.
func Decode(w Word) Decoded {
	d := Decoded{
		Word:       w,
		Compressed: w.Compressed(),
		Rd:         w.Rd(),
		Rs1:        w.Rs1(),
		Rs2:        w.Rs2(),
		Funct3:     w.Funct3(),
		Funct7:     w.Funct7(),
	}
	d.Variant = VariantOf(d.Compressed)
	d.Imm = Immediate(w, d.Variant)
	return d
}

// Immediate assembles the sign-extended immediate for the given variant.
//
//	I:  imm[11:0]  = inst[31:20]
//	S:  imm[11:0]  = inst[31:25] . inst[11:7]
//	SB: imm[11:0]  = inst[31] . inst[7] . inst[30:25] . inst[11:8]
//	UJ: imm[19:0]  = inst[31] . inst[19:12] . inst[20] . inst[30:21]
//
// SB and UJ yield the packed value; branch targets are formed later as
// base + (imm << 1).
func Immediate(w Word, v Variant) int64 {
	u := uint64(w)
	switch v {
	case VariantI:
		return signExtend(u>>20&0xFFF, 12)
	case VariantS:
		return signExtend(u>>20&0xFE0|u>>7&0x1F, 12)
	case VariantSB:
		imm := u >> 8 & 0x0F   // imm[4:1] -> bits 3:0
		imm |= u >> 21 & 0x3F0 // imm[10:5] -> bits 9:4
		imm |= u << 3 & 0x400  // imm[11] (inst[7]) -> bit 10
		imm |= u >> 20 & 0x800 // imm[12] (inst[31]) -> bit 11
		return signExtend(imm, 12)
	case VariantUJ:
		imm := u >> 21 & 0x3FF   // imm[10:1] -> bits 9:0
		imm |= u >> 10 & 0x400   // imm[11] (inst[20]) -> bit 10
		imm |= u >> 1 & 0x7F800  // imm[19:12] -> bits 18:11
		imm |= u >> 12 & 0x80000 // imm[20] (inst[31]) -> bit 19
		return signExtend(imm, 20)
	}
	return 0
}

// signExtend interprets the low bits of v as a two's-complement value of
// the given width.
func signExtend(v uint64, bits uint) int64 {
	shift := 64 - bits
	return int64(v<<shift) >> shift
}
