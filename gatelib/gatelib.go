// Package gatelib is the derived gate library of spec.md §4.6: composites
// built on top of the core engine's four primitives (NOT, AND, OR, BRIDGE),
// grounded on original_source/lib/circuit.py's NAND/NOR/XOR/XNOR/HADD/ADD
// family. Nothing here is a primitive; every gate in this package is
// data — a core.CompositeSpec — registered under a name so it can be
// referenced as a child kind by other composites, including itself at
// wider bit-widths (see bus.go).
package gatelib

import "github.com/dbernard/digisim/core"

// Fixed (width-independent) composite kinds. These are registered once by
// Register and then reused as building blocks by the width-parameterized
// generators in bus.go.
const (
	KindAONB      = "AONB"      // a OR NOT b
	KindAANB      = "AANB"      // a AND NOT b
	KindNAND      = "NAND"
	KindNOR       = "NOR"
	KindXOR       = "XOR"
	KindXNOR      = "XNOR"
	KindAND3      = "AND3"
	KindOR3       = "OR3"
	KindNOT3      = "NOT3"
	KindAND4      = "AND4"
	KindOR4       = "OR4"
	KindHalfAdder = "HALF_ADDER"
	KindFullAdder = "FULL_ADDER"
	KindEQ        = "EQ" // 1-bit equality: NOT(XOR(a,b))
	KindCmpSeg    = "CMP_SEG"
)

// Register installs the fixed-width derived gates into reg, in dependency
// order (each later gate's spec references an earlier one by Kind name).
// It is idempotent: calling it more than once, or alongside other
// registration helpers that depend on the same gates, is harmless.
func Register(reg *core.Registry) {
	if reg.HasComposite(KindNAND) {
		return
	}

	reg.RegisterComposite(KindAONB, aonbSpec())
	reg.RegisterComposite(KindAANB, aanbSpec())

	reg.RegisterComposite(KindNOR, norSpec())
	reg.RegisterComposite(KindNAND, nandSpec())
	reg.RegisterComposite(KindXOR, xorSpec())
	reg.RegisterComposite(KindXNOR, xnorSpec())

	reg.RegisterComposite(KindAND3, and3Spec())
	reg.RegisterComposite(KindOR3, or3Spec())
	reg.RegisterComposite(KindNOT3, not3Spec())
	reg.RegisterComposite(KindAND4, and4Spec())
	reg.RegisterComposite(KindOR4, or4Spec())

	reg.RegisterComposite(KindHalfAdder, halfAdderSpec())
	reg.RegisterComposite(KindFullAdder, fullAdderSpec())

	reg.RegisterComposite(KindEQ, eqSpec())
	reg.RegisterComposite(KindCmpSeg, cmpSegSpec())
}

func ref(child, port string) *core.Ref {
	return &core.Ref{Child: child, Port: port}
}

// aonbSpec: out1 = in1 OR NOT(in2).
func aonbSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: "NOT", Names: []string{"n1"}},
			{Kind: "OR", Names: []string{"o1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("o1", "in1")},
			{Name: "in2", Alias: ref("n1", "in1")},
			{Name: "out1", Alias: ref("o1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "n1", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in2"}},
		},
	}
}

// aanbSpec: out1 = in1 AND NOT(in2).
func aanbSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: "NOT", Names: []string{"n1"}},
			{Kind: "AND", Names: []string{"a1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("a1", "in1")},
			{Name: "in2", Alias: ref("n1", "in1")},
			{Name: "out1", Alias: ref("a1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "n1", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in2"}},
		},
	}
}

// norSpec: out1 = NOT(in1 OR in2), per original_source NOR.
func norSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: "OR", Names: []string{"o1"}},
			{Kind: "NOT", Names: []string{"n1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("o1", "in1")},
			{Name: "in2", Alias: ref("o1", "in2")},
			{Name: "out1", Alias: ref("n1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "o1", Port: "out1"}, To: core.Ref{Child: "n1", Port: "in1"}},
		},
	}
}

// nandSpec: out1 = NOT(in1 AND in2), per original_source NAND.
func nandSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: "AND", Names: []string{"a1"}},
			{Kind: "NOT", Names: []string{"n1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("a1", "in1")},
			{Name: "in2", Alias: ref("a1", "in2")},
			{Name: "out1", Alias: ref("n1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "a1", Port: "out1"}, To: core.Ref{Child: "n1", Port: "in1"}},
		},
	}
}

// xorSpec mirrors original_source XOR: two Bridges fan each input out to a
// NAND and an OR, whose outputs a final AND combines. The Bridges are load
// bearing per spec.md §4.4 — they keep both downstream gates seeing the
// same snapshot of each input after the same number of cycles.
func xorSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: KindNAND, Names: []string{"na1"}},
			{Kind: "OR", Names: []string{"o1"}},
			{Kind: "AND", Names: []string{"a1"}},
			{Kind: "BRIDGE", Names: []string{"b1", "b2"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("b1", "in1")},
			{Name: "in2", Alias: ref("b2", "in1")},
			{Name: "out1", Alias: ref("a1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "b1", Port: "out1"}, To: core.Ref{Child: "na1", Port: "in1"}},
			{From: core.Ref{Child: "b1", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in2"}},
			{From: core.Ref{Child: "b2", Port: "out1"}, To: core.Ref{Child: "na1", Port: "in2"}},
			{From: core.Ref{Child: "b2", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in1"}},
			{From: core.Ref{Child: "na1", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in1"}},
			{From: core.Ref{Child: "o1", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in2"}},
		},
	}
}

// xnorSpec mirrors original_source XNOR: Bridges fan each input to an AND
// and a NOR, combined by a final OR.
func xnorSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: "AND", Names: []string{"a1"}},
			{Kind: KindNOR, Names: []string{"n1"}},
			{Kind: "OR", Names: []string{"o1"}},
			{Kind: "BRIDGE", Names: []string{"b1", "b2"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("b1", "in1")},
			{Name: "in2", Alias: ref("b2", "in1")},
			{Name: "out1", Alias: ref("o1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "b1", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in1"}},
			{From: core.Ref{Child: "b2", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in2"}},
			{From: core.Ref{Child: "a1", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in2"}},
			{From: core.Ref{Child: "b2", Port: "out1"}, To: core.Ref{Child: "n1", Port: "in2"}},
			{From: core.Ref{Child: "b1", Port: "out1"}, To: core.Ref{Child: "n1", Port: "in1"}},
			{From: core.Ref{Child: "n1", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in1"}},
		},
	}
}

// and3Spec: out1 = in1 AND in2 AND in3.
func and3Spec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{{Kind: "AND", Names: []string{"a1", "a2"}}},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("a1", "in1")},
			{Name: "in2", Alias: ref("a2", "in1")},
			{Name: "in3", Alias: ref("a2", "in2")},
			{Name: "out1", Alias: ref("a1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "a2", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in2"}},
		},
	}
}

// or3Spec: out1 = in1 OR in2 OR in3.
func or3Spec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{{Kind: "OR", Names: []string{"o1", "o2"}}},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("o1", "in1")},
			{Name: "in2", Alias: ref("o1", "in2")},
			{Name: "in3", Alias: ref("o2", "in2")},
			{Name: "out1", Alias: ref("o2", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "o1", Port: "out1"}, To: core.Ref{Child: "o2", Port: "in1"}},
		},
	}
}

// not3Spec: out1 = NOT(in1) AND NOT(in2) AND NOT(in3).
func not3Spec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: "NOT", Names: []string{"n1", "n2", "n3"}},
			{Kind: KindAND3, Names: []string{"a3"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("n1", "in1")},
			{Name: "in2", Alias: ref("n2", "in1")},
			{Name: "in3", Alias: ref("n3", "in1")},
			{Name: "out1", Alias: ref("a3", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "n1", Port: "out1"}, To: core.Ref{Child: "a3", Port: "in1"}},
			{From: core.Ref{Child: "n2", Port: "out1"}, To: core.Ref{Child: "a3", Port: "in2"}},
			{From: core.Ref{Child: "n3", Port: "out1"}, To: core.Ref{Child: "a3", Port: "in3"}},
		},
	}
}

// and4Spec: out1 = in1 AND in2 AND in3 AND in4.
func and4Spec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: KindAND3, Names: []string{"a3"}},
			{Kind: "AND", Names: []string{"a1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("a3", "in1")},
			{Name: "in2", Alias: ref("a3", "in2")},
			{Name: "in3", Alias: ref("a3", "in3")},
			{Name: "in4", Alias: ref("a1", "in2")},
			{Name: "out1", Alias: ref("a1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "a3", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in1"}},
		},
	}
}

// or4Spec: out1 = in1 OR in2 OR in3 OR in4.
func or4Spec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: KindOR3, Names: []string{"o3"}},
			{Kind: "OR", Names: []string{"o1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("o3", "in1")},
			{Name: "in2", Alias: ref("o3", "in2")},
			{Name: "in3", Alias: ref("o3", "in3")},
			{Name: "in4", Alias: ref("o1", "in2")},
			{Name: "out1", Alias: ref("o1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "o3", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in1"}},
		},
	}
}

// halfAdderSpec: out1 = sum = in1 XOR in2, out2 = carry = in1 AND in2.
// Grounded on original_source HADD, simplified from its ONAND-based
// wiring to a direct XOR+AND pair — same truth table, fewer gates.
func halfAdderSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: KindXOR, Names: []string{"x1"}},
			{Kind: "AND", Names: []string{"a1"}},
			{Kind: "BRIDGE", Names: []string{"b1", "b2"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("b1", "in1")},
			{Name: "in2", Alias: ref("b2", "in1")},
			{Name: "out1", Alias: ref("x1", "out1")},
			{Name: "out2", Alias: ref("a1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "b1", Port: "out1"}, To: core.Ref{Child: "x1", Port: "in1"}},
			{From: core.Ref{Child: "b2", Port: "out1"}, To: core.Ref{Child: "x1", Port: "in2"}},
			{From: core.Ref{Child: "b1", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in1"}},
			{From: core.Ref{Child: "b2", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in2"}},
		},
	}
}

// fullAdderSpec: in1, in2 are the addend bits, in3 is carry-in; out1 is
// sum, out2 is carry-out. Built from two half adders and an OR, the
// textbook construction — grounded on original_source ADD's role, though
// original wires it via UP_TOT/UP_OOT majority helpers; this is the same
// truth table with one idiom fewer.
func fullAdderSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: KindHalfAdder, Names: []string{"ha1", "ha2"}},
			{Kind: "OR", Names: []string{"o1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("ha1", "in1")},
			{Name: "in2", Alias: ref("ha1", "in2")},
			{Name: "in3", Alias: ref("ha2", "in2")},
			{Name: "out1", Alias: ref("ha2", "out1")},
			{Name: "out2", Alias: ref("o1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "ha1", Port: "out1"}, To: core.Ref{Child: "ha2", Port: "in1"}},
			{From: core.Ref{Child: "ha1", Port: "out2"}, To: core.Ref{Child: "o1", Port: "in1"}},
			{From: core.Ref{Child: "ha2", Port: "out2"}, To: core.Ref{Child: "o1", Port: "in2"}},
		},
	}
}

// eqSpec: 1-bit equality, out1 = NOT(in1 XOR in2). Matches original_source
// EQ directly (XOR then NOT, rather than an XNOR alias).
func eqSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: KindXOR, Names: []string{"x1"}},
			{Kind: "NOT", Names: []string{"n1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("x1", "in1")},
			{Name: "in2", Alias: ref("x1", "in2")},
			{Name: "out1", Alias: ref("n1", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "x1", Port: "out1"}, To: core.Ref{Child: "n1", Port: "in1"}},
		},
	}
}

// cmpSegSpec is the per-bit magnitude-compare cell the original calls SEG:
// in1, in2 are one bit position of a and b; in3 is "already decided
// greater" carried down from a more significant bit. out1 is "a >= b at or
// above this bit", out2 is "a > b at or above this bit" (the carry fed
// into the next, less significant bit's cell). Grounded directly on
// original_source SEG (AONB/AANB fed by the carry-in via a final OR pair).
func cmpSegSpec() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: KindAONB, Names: []string{"A1"}},
			{Kind: KindAANB, Names: []string{"a1"}},
			{Kind: "OR", Names: []string{"o1", "o2"}},
			{Kind: "BRIDGE", Names: []string{"b1", "b2", "b3"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: ref("b1", "in1")},
			{Name: "in2", Alias: ref("b2", "in1")},
			{Name: "in3", Alias: ref("b3", "in1")},
			{Name: "out1", Alias: ref("o1", "out1")},
			{Name: "out2", Alias: ref("o2", "out1")},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "b1", Port: "out1"}, To: core.Ref{Child: "A1", Port: "in1"}},
			{From: core.Ref{Child: "b1", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in1"}},
			{From: core.Ref{Child: "b2", Port: "out1"}, To: core.Ref{Child: "A1", Port: "in2"}},
			{From: core.Ref{Child: "b2", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in2"}},
			{From: core.Ref{Child: "A1", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in1"}},
			{From: core.Ref{Child: "b3", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in2"}},
			{From: core.Ref{Child: "a1", Port: "out1"}, To: core.Ref{Child: "o2", Port: "in1"}},
			{From: core.Ref{Child: "b3", Port: "out1"}, To: core.Ref{Child: "o2", Port: "in2"}},
		},
	}
}
