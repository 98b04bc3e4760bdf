package alu

import (
	"fmt"
	"testing"

	"github.com/dbernard/digisim/core"
)

func buildALUCircuit(t *testing.T) *core.Circuit {
	t.Helper()
	reg := core.NewRegistry()
	Register(reg)
	c, err := core.Build(reg, Kind)
	if err != nil {
		t.Fatalf("Build(%q): %v", Kind, err)
	}
	return c
}

func aluInputs(op Op, a, b int) map[string]int {
	in := map[string]int{}
	code := EncodeOpcode(op)
	for i, bit := range code {
		in[fmt.Sprintf("in%d", i+1)] = bit
	}
	for i := 0; i < 8; i++ {
		in[fmt.Sprintf("in%d", 5+i)] = (a >> uint(7-i)) & 1
	}
	for i := 0; i < 8; i++ {
		in[fmt.Sprintf("in%d", 13+i)] = (b >> uint(7-i)) & 1
	}
	return in
}

func dataByte(out map[string]int) int {
	v := 0
	for i := 0; i < 8; i++ {
		v |= out[fmt.Sprintf("out%d", i+1)] << uint(7-i)
	}
	return v
}

func sumByte(out map[string]int) int {
	v := 0
	for i := 0; i < 8; i++ {
		v |= out[fmt.Sprintf("out%d", i+1)] << uint(i)
	}
	return v
}

func TestALUNotOrAnd(t *testing.T) {
	c := buildALUCircuit(t)

	out, err := core.RunDefault(c, aluInputs(OpNot, 0b00001111, 0))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := dataByte(out); got != 0b11110000 {
		t.Errorf("NOT(0b00001111) = %08b, want %08b", got, 0b11110000)
	}
	if out["out9"] != 0 {
		t.Errorf("NOT flag = %d, want 0", out["out9"])
	}

	out, err = core.RunDefault(c, aluInputs(OpOr, 0b10100000, 0b00001010))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := dataByte(out); got != 0b10101010 {
		t.Errorf("OR = %08b, want %08b", got, 0b10101010)
	}

	out, err = core.RunDefault(c, aluInputs(OpAnd, 0b11110000, 0b10100000))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := dataByte(out); got != 0b10100000 {
		t.Errorf("AND = %08b, want %08b", got, 0b10100000)
	}
}

func TestALUComparisonsOnlyPopulateOut1(t *testing.T) {
	c := buildALUCircuit(t)

	tests := []struct {
		op     Op
		a, b   int
		wantFl int
	}{
		{OpEq, 5, 5, 1},
		{OpEq, 5, 6, 0},
		{OpNeq, 5, 6, 1},
		{OpNeq, 5, 5, 0},
		{OpGt, 200, 100, 1},
		{OpGt, 100, 200, 0},
		{OpLt, 100, 200, 1},
		{OpLt, 200, 100, 0},
		{OpGte, 100, 100, 1},
		{OpGte, 99, 100, 0},
		{OpLte, 100, 100, 1},
		{OpLte, 101, 100, 0},
	}
	for _, tt := range tests {
		out, err := core.RunDefault(c, aluInputs(tt.op, tt.a, tt.b))
		if err != nil {
			t.Fatalf("Run(%s): %v", tt.op, err)
		}
		if out["out9"] != 0 {
			t.Errorf("%s(%d,%d) flag(out9) = %d, want 0 (comparison ops only populate out1)", tt.op, tt.a, tt.b, out["out9"])
		}
		for i := 1; i <= 8; i++ {
			key := fmt.Sprintf("out%d", i)
			if i == 1 {
				if out[key] != tt.wantFl {
					t.Errorf("%s(%d,%d) out1 = %d, want %d", tt.op, tt.a, tt.b, out[key], tt.wantFl)
				}
				continue
			}
			if out[key] != 0 {
				t.Errorf("%s(%d,%d) %s = %d, want 0 (comparison ops only populate out1)", tt.op, tt.a, tt.b, key, out[key])
			}
		}
	}
}

func TestALUAdd(t *testing.T) {
	c := buildALUCircuit(t)

	out, err := core.RunDefault(c, aluInputs(OpAdd, 0b00001111, 0b00000001))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sumByte(out); got != 0b00010000 {
		t.Errorf("ADD(0b00001111, 0b00000001) sum = %08b, want %08b", got, 0b00010000)
	}
	if out["out9"] != 0 {
		t.Errorf("ADD carry = %d, want 0", out["out9"])
	}

	out, err = core.RunDefault(c, aluInputs(OpAdd, 255, 1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sumByte(out); got != 0 {
		t.Errorf("ADD(255,1) sum = %d, want 0 (wraparound)", got)
	}
	if out["out9"] != 1 {
		t.Errorf("ADD(255,1) carry = %d, want 1", out["out9"])
	}
}

func TestALUOnlySelectedSegmentDrivesOutput(t *testing.T) {
	c := buildALUCircuit(t)
	// NOT(0xFF) is 0, while OR8 and AND8 of 0xFF, 0xFF would both be 0xFF:
	// a zero merged result confirms neither unselected segment leaked in.
	out, err := core.RunDefault(c, aluInputs(OpNot, 0b11111111, 0b11111111))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := dataByte(out); got != 0 {
		t.Errorf("NOT(0xFF) = %08b, want 0", got)
	}
}

func TestALUSettlesWithinDefaultCycles(t *testing.T) {
	c := buildALUCircuit(t)
	initial := aluInputs(OpAdd, 200, 100)
	if _, err := core.RunDefault(c, initial); err != nil {
		t.Fatalf("Run: %v", err)
	}
	settled, err := core.Settled(c, initial)
	if err != nil {
		t.Fatalf("Settled: %v", err)
	}
	if !settled {
		t.Fatalf("ALU did not settle within %d cycles", core.DefaultCycles)
	}
}

func TestEncodeOpcodeMatchesOpValue(t *testing.T) {
	for op := OpNot; op <= OpAdd; op++ {
		code := EncodeOpcode(op)
		v := code[0]<<3 | code[1]<<2 | code[2]<<1 | code[3]
		if v != int(op) {
			t.Errorf("EncodeOpcode(%s) = %v, decodes to %d, want %d", op, code, v, int(op))
		}
	}
}

func TestBuildReturnsUsableSpecAndEncoder(t *testing.T) {
	reg := core.NewRegistry()
	spec, encode := Build(reg)
	c, err := core.BuildSpec(reg, spec)
	if err != nil {
		t.Fatalf("BuildSpec: %v", err)
	}
	in := map[string]int{}
	for i, bit := range encode(OpAdd) {
		in[fmt.Sprintf("in%d", i+1)] = bit
	}
	for i := 0; i < 8; i++ {
		in[fmt.Sprintf("in%d", 5+i)] = (1 >> uint(7-i)) & 1
	}
	for i := 0; i < 8; i++ {
		in[fmt.Sprintf("in%d", 13+i)] = (1 >> uint(7-i)) & 1
	}
	out, err := core.RunDefault(c, in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sumByte(out); got != 2 {
		t.Errorf("ADD(1,1) via Build = %d, want 2", got)
	}
}
