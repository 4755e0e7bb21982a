package cpu

import "testing"

func TestALUControl(t *testing.T) {
	tests := []struct {
		name        string
		aluOp       uint8
		funct3      uint8
		funct7      uint8
		funct7Valid bool
		want        uint8
	}{
		{"loads and jumps add", 0, 7, 0x7F, true, aluAdd},
		{"branches subtract", 1, 0, 0, false, aluSub},
		{"r-type add", 2, 0, 0x00, true, aluAdd},
		{"r-type sub", 2, 0, 0x20, true, aluSub},
		{"funct7 ignored without flag", 2, 0, 0x20, false, aluAdd},
		{"funct7 bit6 alone is not sub", 2, 0, 0x40, true, aluAdd},
		{"or", 2, 6, 0, true, aluOr},
		{"and", 2, 7, 0, true, aluAnd},
		{"unimplemented funct3 falls back", 2, 4, 0, true, aluAnd},
	}
	for _, tc := range tests {
		if got := aluControl(tc.aluOp, tc.funct3, tc.funct7, tc.funct7Valid); got != tc.want {
			t.Errorf("%s: aluControl = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestALUCompute(t *testing.T) {
	tests := []struct {
		name     string
		control  uint8
		d1, d2   int64
		want     int64
		wantZero bool
	}{
		{"and", aluAnd, 0xFF, 0x0F, 0x0F, false},
		{"and to zero", aluAnd, 0xF0, 0x0F, 0, true},
		{"or", aluOr, 0xF0, 0x0F, 0xFF, false},
		{"add", aluAdd, 5, 7, 12, false},
		{"add negative", aluAdd, -5, 3, -2, false},
		{"sub", aluSub, 7, 7, 0, true},
		{"sub borrow", aluSub, 3, 5, -2, false},
	}
	for _, tc := range tests {
		res, zero := aluCompute(tc.control, tc.d1, tc.d2)
		if res != tc.want || zero != tc.wantZero {
			t.Errorf("%s: aluCompute = (%d, %v), want (%d, %v)", tc.name, res, zero, tc.want, tc.wantZero)
		}
	}
}
