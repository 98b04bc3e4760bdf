package core

import (
	"errors"
	"testing"
)

func errorsAs(err error, target interface{}) bool {
	return errors.As(err, target)
}

// nandSpec mirrors the original NAND = NOT(AND) composite: one AND child,
// one NOT child, one internal wire.
func nandSpec() *CompositeSpec {
	return &CompositeSpec{
		Children: []ChildGroup{
			{Kind: "AND", Names: []string{"a1"}},
			{Kind: "NOT", Names: []string{"n1"}},
		},
		Ports: []PortDecl{
			{Name: "in1", Alias: &Ref{Child: "a1", Port: "in1"}},
			{Name: "in2", Alias: &Ref{Child: "a1", Port: "in2"}},
			{Name: "out1", Alias: &Ref{Child: "n1", Port: "out1"}},
		},
		Wires: []WireDecl{
			{From: Ref{Child: "a1", Port: "out1"}, To: Ref{Child: "n1", Port: "in1"}},
		},
	}
}

// xorSpec mirrors the original XOR composite: two Bridges fan out each
// input to a NAND and an OR; a final AND combines them. The Bridges are
// load-bearing (see spec.md §4.4) so that both NAND and OR see the same
// snapshot of each input after the same number of cycles.
func xorSpec() *CompositeSpec {
	return &CompositeSpec{
		Children: []ChildGroup{
			{Kind: "NAND", Names: []string{"na1"}},
			{Kind: "OR", Names: []string{"o1"}},
			{Kind: "AND", Names: []string{"a1"}},
			{Kind: "BRIDGE", Names: []string{"b1", "b2"}},
		},
		Ports: []PortDecl{
			{Name: "in1", Alias: &Ref{Child: "b1", Port: "in1"}},
			{Name: "in2", Alias: &Ref{Child: "b2", Port: "in1"}},
			{Name: "out1", Alias: &Ref{Child: "a1", Port: "out1"}},
		},
		Wires: []WireDecl{
			{From: Ref{Child: "b1", Port: "out1"}, To: Ref{Child: "na1", Port: "in1"}},
			{From: Ref{Child: "b1", Port: "out1"}, To: Ref{Child: "o1", Port: "in2"}},
			{From: Ref{Child: "b2", Port: "out1"}, To: Ref{Child: "na1", Port: "in2"}},
			{From: Ref{Child: "b2", Port: "out1"}, To: Ref{Child: "o1", Port: "in1"}},
			{From: Ref{Child: "na1", Port: "out1"}, To: Ref{Child: "a1", Port: "in1"}},
			{From: Ref{Child: "o1", Port: "out1"}, To: Ref{Child: "a1", Port: "in2"}},
		},
	}
}

func xorRegistry() *Registry {
	reg := NewRegistry()
	reg.RegisterComposite("NAND", nandSpec())
	reg.RegisterComposite("XOR", xorSpec())
	return reg
}

func TestXorTruthTable(t *testing.T) {
	tests := []struct {
		a, b, out int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 1},
		{1, 1, 0},
	}
	for _, tt := range tests {
		reg := xorRegistry()
		c, err := Build(reg, "XOR")
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		out, err := RunDefault(c, map[string]int{"in1": tt.a, "in2": tt.b})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if out["out1"] != tt.out {
			t.Errorf("XOR(%d,%d) = %d, want %d", tt.a, tt.b, out["out1"], tt.out)
		}
	}
}

func TestXorSettlesAndIsDeterministic(t *testing.T) {
	reg := xorRegistry()
	initial := map[string]int{"in1": 1, "in2": 0}

	c1, err := Build(reg, "XOR")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out1, err := RunDefault(c1, initial)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	c2, err := Build(reg, "XOR")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out2, err := RunDefault(c2, initial)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out1["out1"] != out2["out1"] {
		t.Fatalf("non-deterministic: %d vs %d", out1["out1"], out2["out1"])
	}

	settled, err := Settled(c1, initial)
	if err != nil {
		t.Fatalf("Settled: %v", err)
	}
	if !settled {
		t.Fatalf("XOR did not settle within %d cycles", DefaultCycles)
	}
}

func TestAliasingSharesIdentity(t *testing.T) {
	reg := xorRegistry()
	c, err := Build(reg, "NAND")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a1Ports := c.Top.childPorts["a1"]
	if c.Top.ports["in1"] != a1Ports["in1"] {
		t.Fatalf("external port in1 does not share identity with a1.in1")
	}
}

func TestBadPortName(t *testing.T) {
	spec := &CompositeSpec{
		Children: []ChildGroup{{Kind: "AND", Names: []string{"a1"}}},
		Ports: []PortDecl{
			{Name: "bogus1", Alias: &Ref{Child: "a1", Port: "in1"}},
		},
	}
	_, err := spec.Build(NewRegistry())
	if err == nil {
		t.Fatal("expected BadPortNameError")
	}
	var target *BadPortNameError
	if !errorsAs(err, &target) {
		t.Fatalf("expected BadPortNameError, got %v", err)
	}
}

func TestDuplicateChild(t *testing.T) {
	spec := &CompositeSpec{
		Children: []ChildGroup{
			{Kind: "AND", Names: []string{"a1"}},
			{Kind: "OR", Names: []string{"a1"}},
		},
	}
	_, err := spec.Build(NewRegistry())
	if err == nil {
		t.Fatal("expected DuplicateChildError")
	}
	var target *DuplicateChildError
	if !errorsAs(err, &target) {
		t.Fatalf("expected DuplicateChildError, got %v", err)
	}
}

func TestUnknownChildAlias(t *testing.T) {
	spec := &CompositeSpec{
		Children: []ChildGroup{{Kind: "AND", Names: []string{"a1"}}},
		Ports: []PortDecl{
			{Name: "out1", Alias: &Ref{Child: "ghost", Port: "out1"}},
		},
	}
	_, err := spec.Build(NewRegistry())
	if err == nil {
		t.Fatal("expected UnknownChildError")
	}
	var target *UnknownChildError
	if !errorsAs(err, &target) {
		t.Fatalf("expected UnknownChildError, got %v", err)
	}
}

func TestUnknownPortAlias(t *testing.T) {
	spec := &CompositeSpec{
		Children: []ChildGroup{{Kind: "AND", Names: []string{"a1"}}},
		Ports: []PortDecl{
			{Name: "out1", Alias: &Ref{Child: "a1", Port: "out9"}},
		},
	}
	_, err := spec.Build(NewRegistry())
	if err == nil {
		t.Fatal("expected UnknownPortError")
	}
	var target *UnknownPortError
	if !errorsAs(err, &target) {
		t.Fatalf("expected UnknownPortError, got %v", err)
	}
}

func TestRuntimeInputError(t *testing.T) {
	reg := xorRegistry()
	c, err := Build(reg, "XOR")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, err = RunDefault(c, map[string]int{"inNope": 1})
	if err == nil {
		t.Fatal("expected RuntimeInputError")
	}
	var target *RuntimeInputError
	if !errorsAs(err, &target) {
		t.Fatalf("expected RuntimeInputError, got %v", err)
	}
}
