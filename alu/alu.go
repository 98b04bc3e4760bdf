// Package alu builds the 8-bit arithmetic/logic unit of SPEC_FULL.md §4.7
// as a core.CompositeSpec over gatelib's width-8 operations, grounded on
// original_source's ALU/`*_SEG` classes: opcode-select bits gate which of
// ten operation segments drives the shared output bus, and a wide OR merge
// stands in for a multiplexer because at most one segment is ever non-zero.
package alu

import (
	"fmt"

	"github.com/dbernard/digisim/core"
	"github.com/dbernard/digisim/gatelib"
)

// Op identifies one of the ALU's ten operations. Values match the 4-bit
// opcode pattern the original hardwires into each `*_SEG` class's gating
// logic, MSB-first.
type Op int

const (
	OpNot Op = iota
	OpOr
	OpAnd
	OpEq
	OpNeq
	OpGt
	OpLt
	OpGte
	OpLte
	OpAdd
)

func (op Op) String() string {
	switch op {
	case OpNot:
		return "NOT"
	case OpOr:
		return "OR"
	case OpAnd:
		return "AND"
	case OpEq:
		return "EQ"
	case OpNeq:
		return "NEQ"
	case OpGt:
		return "GT"
	case OpLt:
		return "LT"
	case OpGte:
		return "GTE"
	case OpLte:
		return "LTE"
	case OpAdd:
		return "ADD"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// EncodeOpcode returns op's 4-bit select pattern, MSB-first, as the values
// to drive onto an ALU instance's in1..in4 opcode ports.
func EncodeOpcode(op Op) [4]int {
	v := int(op)
	return [4]int{(v >> 3) & 1, (v >> 2) & 1, (v >> 1) & 1, v & 1}
}

// Kind is the registered composite name for the top-level ALU.
const Kind = "ALU"

// falseGateKind is the always-0 gadget the segment builders use to
// hardwire unused output positions. Grounded on original_source's `F`
// class (`AND(x, NOT(x))`); here the AND's second input is left unwired
// at 0 rather than fed x, so its output is always 0 without needing a
// dedicated "constant" primitive.
const falseGateKind = "ALU_FALSE_GATE"

// Register installs the ALU and its segment machinery into reg. It is
// idempotent.
func Register(reg *core.Registry) {
	if reg.HasComposite(Kind) {
		return
	}
	gatelib.RegisterWidth8(reg)

	reg.RegisterComposite(falseGateKind, buildFalseGate())

	reg.RegisterComposite("NOT8_SEG", broadcastSegSpec(gatelib.Kind8Not, true))
	reg.RegisterComposite("OR8_SEG", broadcastSegSpec(gatelib.Kind8Or, true))
	reg.RegisterComposite("AND8_SEG", broadcastSegSpec(gatelib.Kind8And, true))

	reg.RegisterComposite("EQ8_SEG", compareSegSpec(gatelib.Kind8Eq))
	reg.RegisterComposite("NEQ8_SEG", compareSegSpec(gatelib.Kind8Neq))
	reg.RegisterComposite("GT8_SEG", compareSegSpec(gatelib.Kind8Gt))
	reg.RegisterComposite("LT8_SEG", compareSegSpec(gatelib.Kind8Lt))
	reg.RegisterComposite("GTE8_SEG", compareSegSpec(gatelib.Kind8Gte))
	reg.RegisterComposite("LTE8_SEG", compareSegSpec(gatelib.Kind8Lte))

	reg.RegisterComposite("ADD8_SEG", addSegSpec())

	reg.RegisterComposite(Kind, buildALU())
}

// buildFalseGate wires in1 into a NOT whose output feeds the AND's in1; the
// AND's in2 is left unwired at the arena's zero default, so out1 is always
// 0 regardless of in1's value and unused SEG output positions have a
// concrete gate output as their source.
func buildFalseGate() *core.CompositeSpec {
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: "NOT", Names: []string{"n1"}},
			{Kind: "AND", Names: []string{"a1"}},
		},
		Ports: []core.PortDecl{
			{Name: "in1", Alias: &core.Ref{Child: "n1", Port: "in1"}},
			{Name: "out1", Alias: &core.Ref{Child: "a1", Port: "out1"}},
		},
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "n1", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in1"}},
		},
	}
}

// segFrame holds the common shape shared by every SEG wrapper: 4 opcode
// bits and an AND4 child named "sel" selecting whether this segment is
// active (each opcode bit is consulted directly or through a NOT depending
// on whether the op's code has a 0 or 1 in that position); sel's out1 is
// what any real result gets ANDed against before reaching the segment's
// own outputs. The caller supplies the underlying op's kind and wires its data
// inputs/outputs separately.
type segFrame struct {
	spec *core.CompositeSpec
}

// newSegFrame lays down the opcode decode logic for op: one NOT per opcode
// bit that should read as 0, feeding a shared AND4 "sel" gate. Matches the
// original's per-SEG pattern of wiring in1..in4 (optionally through NOT)
// into a 4-input AND.
func newSegFrame(op Op) *segFrame {
	code := EncodeOpcode(op)
	spec := &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: "BRIDGE", Names: []string{"ob1", "ob2", "ob3", "ob4"}},
			{Kind: "AND4", Names: []string{"sel"}},
		},
	}
	spec.Ports = append(spec.Ports,
		core.PortDecl{Name: "in1", Alias: &core.Ref{Child: "ob1", Port: "in1"}},
		core.PortDecl{Name: "in2", Alias: &core.Ref{Child: "ob2", Port: "in1"}},
		core.PortDecl{Name: "in3", Alias: &core.Ref{Child: "ob3", Port: "in1"}},
		core.PortDecl{Name: "in4", Alias: &core.Ref{Child: "ob4", Port: "in1"}},
	)

	bridges := [4]string{"ob1", "ob2", "ob3", "ob4"}
	for i, bit := range code {
		selPin := fmt.Sprintf("in%d", i+1)
		if bit == 1 {
			spec.Wires = append(spec.Wires, core.WireDecl{
				From: core.Ref{Child: bridges[i], Port: "out1"},
				To:   core.Ref{Child: "sel", Port: selPin},
			})
		} else {
			notName := fmt.Sprintf("notb%d", i+1)
			spec.Children = append(spec.Children, core.ChildGroup{Kind: "NOT", Names: []string{notName}})
			spec.Wires = append(spec.Wires,
				core.WireDecl{From: core.Ref{Child: bridges[i], Port: "out1"}, To: core.Ref{Child: notName, Port: "in1"}},
				core.WireDecl{From: core.Ref{Child: notName, Port: "out1"}, To: core.Ref{Child: "sel", Port: selPin}},
			)
		}
	}
	return &segFrame{spec: spec}
}

// broadcastSegSpec builds a SEG wrapper for an 8-bit-wide bitwise op
// (NOT8/OR8/AND8): the op's real 8-bit result is ANDed bitwise against the
// segment's "sel" line, and out9 is hardwired to 0 via the false gate. If
// unary is true the op is treated as a 1-operand, 8-bit-input gate
// (NOT8's shape); otherwise it takes two 8-bit operands.
func broadcastSegSpec(opKind string, unary bool) *core.CompositeSpec {
	f := newSegFrame(opFor(opKind))
	spec := f.spec

	spec.Children = append(spec.Children,
		core.ChildGroup{Kind: opKind, Names: []string{"op"}},
		core.ChildGroup{Kind: "AND", Names: bitMaskNames(8)},
		core.ChildGroup{Kind: falseGateKind, Names: []string{"zero"}},
	)

	opInPorts, aPorts, _ := operandPortNames(unary)
	for i := range aPorts {
		spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("in%d", 5+i), Alias: &core.Ref{Child: "op", Port: opInPorts[i]}})
	}
	if !unary {
		for i := 8; i < len(opInPorts); i++ {
			spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("in%d", 13+(i-8)), Alias: &core.Ref{Child: "op", Port: opInPorts[i]}})
		}
	} else {
		// A unary op (NOT) only consumes A's 8 bits; B's positions still
		// arrive over the ALU's shared 20-wide bus (every segment is fanned
		// the same 20 inputs), so they need a place to land even though
		// this segment never reads them.
		for i := 0; i < 8; i++ {
			spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("in%d", 13+i)})
		}
	}

	for i := 0; i < 8; i++ {
		maskName := bitMaskNames(8)[i]
		spec.Wires = append(spec.Wires,
			core.WireDecl{From: core.Ref{Child: "op", Port: fmt.Sprintf("out%d", i+1)}, To: core.Ref{Child: maskName, Port: "in1"}},
			core.WireDecl{From: core.Ref{Child: "sel", Port: "out1"}, To: core.Ref{Child: maskName, Port: "in2"}},
		)
		spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("out%d", i+1), Alias: &core.Ref{Child: maskName, Port: "out1"}})
	}

	spec.Wires = append(spec.Wires, core.WireDecl{From: core.Ref{Child: "op", Port: opInPorts[0]}, To: core.Ref{Child: "zero", Port: "in1"}})
	spec.Ports = append(spec.Ports, core.PortDecl{Name: "out9", Alias: &core.Ref{Child: "zero", Port: "out1"}})

	return spec
}

// compareSegSpec builds a SEG wrapper for a 1-bit comparison op (EQ8,
// NEQ8, GT8, LT8, GTE8, LTE8): the 1-bit result is ANDed against "sel" and
// placed on out1; out2..out9 are hardwired to 0 via the false gate, since
// the original never populates them for comparisons.
func compareSegSpec(opKind string) *core.CompositeSpec {
	f := newSegFrame(opFor(opKind))
	spec := f.spec

	spec.Children = append(spec.Children,
		core.ChildGroup{Kind: opKind, Names: []string{"op"}},
		core.ChildGroup{Kind: "AND", Names: []string{"mask"}},
		core.ChildGroup{Kind: falseGateKind, Names: []string{"zero"}},
	)

	for i := 0; i < 16; i++ {
		spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("in%d", 5+i), Alias: &core.Ref{Child: "op", Port: fmt.Sprintf("in%d", i+1)}})
	}

	spec.Wires = append(spec.Wires,
		core.WireDecl{From: core.Ref{Child: "op", Port: "out1"}, To: core.Ref{Child: "mask", Port: "in1"}},
		core.WireDecl{From: core.Ref{Child: "sel", Port: "out1"}, To: core.Ref{Child: "mask", Port: "in2"}},
	)
	spec.Ports = append(spec.Ports, core.PortDecl{Name: "out1", Alias: &core.Ref{Child: "mask", Port: "out1"}})

	spec.Wires = append(spec.Wires, core.WireDecl{From: core.Ref{Child: "op", Port: "in1"}, To: core.Ref{Child: "zero", Port: "in1"}})
	for i := 2; i <= 9; i++ {
		spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("out%d", i), Alias: &core.Ref{Child: "zero", Port: "out1"}})
	}

	return spec
}

// addSegSpec builds the ADD8_SEG wrapper: both the 8-bit sum and the
// carry-out are real, ANDed against "sel" across all 9 positions. Grounded
// on original_source ADD8_SEG's 9-wide AND bank (the one segment that uses
// its full output width for data).
func addSegSpec() *core.CompositeSpec {
	f := newSegFrame(OpAdd)
	spec := f.spec

	spec.Children = append(spec.Children,
		core.ChildGroup{Kind: gatelib.Kind8Add, Names: []string{"op"}},
		core.ChildGroup{Kind: "AND", Names: bitMaskNames(9)},
	)

	for i := 0; i < 16; i++ {
		spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("in%d", 5+i), Alias: &core.Ref{Child: "op", Port: fmt.Sprintf("in%d", i+1)}})
	}

	for i := 0; i < 9; i++ {
		maskName := bitMaskNames(9)[i]
		spec.Wires = append(spec.Wires,
			core.WireDecl{From: core.Ref{Child: "op", Port: fmt.Sprintf("out%d", i+1)}, To: core.Ref{Child: maskName, Port: "in1"}},
			core.WireDecl{From: core.Ref{Child: "sel", Port: "out1"}, To: core.Ref{Child: maskName, Port: "in2"}},
		)
		spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("out%d", i+1), Alias: &core.Ref{Child: maskName, Port: "out1"}})
	}

	return spec
}

func bitMaskNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("m%d", i+1)
	}
	return names
}

// operandPortNames returns the underlying op child's own port names for
// its operand(s): opIns is every in-port the op exposes (8 for a unary
// 8-bit op, 16 for a binary one); aPorts/bPorts split that into the A and
// B halves (bPorts empty when unary).
func operandPortNames(unary bool) (opIns, aPorts, bPorts []string) {
	n := 8
	if !unary {
		n = 16
	}
	opIns = make([]string, n)
	for i := range opIns {
		opIns[i] = fmt.Sprintf("in%d", i+1)
	}
	aPorts = opIns[:8]
	if !unary {
		bPorts = opIns[8:]
	}
	return
}

// opFor recovers which Op a gatelib width-8 kind corresponds to, so
// newSegFrame can compute its opcode pattern without the caller having to
// pass both the kind name and the Op redundantly.
func opFor(kind string) Op {
	switch kind {
	case gatelib.Kind8Not:
		return OpNot
	case gatelib.Kind8Or:
		return OpOr
	case gatelib.Kind8And:
		return OpAnd
	case gatelib.Kind8Eq:
		return OpEq
	case gatelib.Kind8Neq:
		return OpNeq
	case gatelib.Kind8Gt:
		return OpGt
	case gatelib.Kind8Lt:
		return OpLt
	case gatelib.Kind8Gte:
		return OpGte
	case gatelib.Kind8Lte:
		return OpLte
	default:
		panic(fmt.Sprintf("alu: unrecognized op kind %q", kind))
	}
}

// buildALU wires the top-level ALU: 20 external inputs (4 opcode + 2x8
// operand bits) fanned via Bridges to all ten segments, whose 9 outputs
// each are OR-reduced positionally into the ALU's own out1..out9.
func buildALU() *core.CompositeSpec {
	segKinds := []string{
		"NOT8_SEG", "OR8_SEG", "AND8_SEG",
		"EQ8_SEG", "NEQ8_SEG", "GT8_SEG", "LT8_SEG", "GTE8_SEG", "LTE8_SEG",
		"ADD8_SEG",
	}
	segNames := make([]string, len(segKinds))
	for i, k := range segKinds {
		segNames[i] = fmt.Sprintf("seg_%s", k)
	}

	spec := &core.CompositeSpec{}
	bridgeNames := busNames20()
	spec.Children = append(spec.Children, core.ChildGroup{Kind: "BRIDGE", Names: bridgeNames})
	for i, k := range segKinds {
		spec.Children = append(spec.Children, core.ChildGroup{Kind: k, Names: []string{segNames[i]}})
	}

	for i := 0; i < 20; i++ {
		spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("in%d", i+1), Alias: &core.Ref{Child: bridgeNames[i], Port: "in1"}})
	}
	for i := 0; i < 20; i++ {
		from := core.Ref{Child: bridgeNames[i], Port: "out1"}
		for _, seg := range segNames {
			spec.Wires = append(spec.Wires, core.WireDecl{From: from, To: core.Ref{Child: seg, Port: fmt.Sprintf("in%d", i+1)}})
		}
	}

	for pos := 1; pos <= 9; pos++ {
		orNames := make([]string, len(segNames)-1)
		for i := range orNames {
			orNames[i] = fmt.Sprintf("merge%d_%d", pos, i+1)
		}
		spec.Children = append(spec.Children, core.ChildGroup{Kind: "OR", Names: orNames})

		cur := core.Ref{Child: segNames[0], Port: fmt.Sprintf("out%d", pos)}
		for i, orName := range orNames {
			spec.Wires = append(spec.Wires,
				core.WireDecl{From: cur, To: core.Ref{Child: orName, Port: "in1"}},
				core.WireDecl{From: core.Ref{Child: segNames[i+1], Port: fmt.Sprintf("out%d", pos)}, To: core.Ref{Child: orName, Port: "in2"}},
			)
			cur = core.Ref{Child: orName, Port: "out1"}
		}
		spec.Ports = append(spec.Ports, core.PortDecl{Name: fmt.Sprintf("out%d", pos), Alias: &cur})
	}

	return spec
}

func busNames20() []string {
	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("ib%d", i+1)
	}
	return names
}

// Build registers the ALU (and everything it depends on) into reg and
// returns its CompositeSpec along with EncodeOpcode, matching
// SPEC_FULL.md §4.7's described shape for driving the ALU from Go code.
func Build(reg *core.Registry) (*core.CompositeSpec, func(Op) [4]int) {
	Register(reg)
	return buildALU(), EncodeOpcode
}
