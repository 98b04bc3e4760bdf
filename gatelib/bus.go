package gatelib

import (
	"fmt"

	"github.com/dbernard/digisim/core"
)

// bitName returns the conventional 1-based port name for bit i (0 = most
// significant), matching the NOT8/AND8/OR8/EQ8/ADD8 naming in
// original_source/lib/circuit.py.
func bitName(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i+1)
}

// NotN returns a width-n composite spec that applies NOT bitwise to
// in1..inN, producing out1..outN. Grounded on original_source NOT8.
func NotN(n int) *core.CompositeSpec {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("n%d", i+1)
	}
	ports := make([]core.PortDecl, 0, 2*n)
	for i := 0; i < n; i++ {
		ports = append(ports,
			core.PortDecl{Name: bitName("in", i), Alias: ref(names[i], "in1")},
			core.PortDecl{Name: bitName("out", i), Alias: ref(names[i], "out1")},
		)
	}
	return &core.CompositeSpec{
		Children: []core.ChildGroup{{Kind: "NOT", Names: names}},
		Ports:    ports,
	}
}

// binaryBitwiseN builds a width-n bitwise composite over a single two-input
// kind (AND, OR, or any registered 1-bit gate), one child per bit position.
// Shared by AndN and OrN.
func binaryBitwiseN(kind string, n int, childPrefix string) *core.CompositeSpec {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", childPrefix, i+1)
	}
	ports := make([]core.PortDecl, 0, 3*n)
	for i := 0; i < n; i++ {
		ports = append(ports,
			core.PortDecl{Name: bitName("in", i), Alias: ref(names[i], "in1")},
			core.PortDecl{Name: bitName("in", n+i), Alias: ref(names[i], "in2")},
			core.PortDecl{Name: bitName("out", i), Alias: ref(names[i], "out1")},
		)
	}
	return &core.CompositeSpec{
		Children: []core.ChildGroup{{Kind: kind, Names: names}},
		Ports:    ports,
	}
}

// AndN: bitwise AND across n-bit buses a and b, out1..outN. Grounded on
// original_source AND8.
func AndN(n int) *core.CompositeSpec {
	return binaryBitwiseN("AND", n, "a")
}

// OrN: bitwise OR across n-bit buses a and b, out1..outN. Grounded on
// original_source OR8_s (the bitwise variant, distinct from OR8's reduce).
func OrN(n int) *core.CompositeSpec {
	return binaryBitwiseN("OR", n, "o")
}

// andReduceChain builds a linear AND-reduction chain over n pre-existing
// child output refs, returning the Children/Wires/final-output-ref needed
// to fold them left to right into a single bit. Used by EqN and GtN.
func andReduceChain(bits []core.Ref, startIdx int) ([]core.ChildGroup, []core.WireDecl, core.Ref) {
	if len(bits) == 1 {
		return nil, nil, bits[0]
	}
	var children []core.ChildGroup
	var wires []core.WireDecl
	cur := bits[0]
	idx := startIdx
	for i := 1; i < len(bits); i++ {
		name := fmt.Sprintf("red%d", idx)
		idx++
		children = append(children, core.ChildGroup{Kind: "AND", Names: []string{name}})
		wires = append(wires,
			core.WireDecl{From: cur, To: core.Ref{Child: name, Port: "in1"}},
			core.WireDecl{From: bits[i], To: core.Ref{Child: name, Port: "in2"}},
		)
		cur = core.Ref{Child: name, Port: "out1"}
	}
	return children, wires, cur
}

// EqN: 1-bit equality of two n-bit buses a, b: out1 = 1 iff every bit
// position matches. Grounded on original_source EQ8 (per-bit EQ, AND-
// reduced across all positions).
func EqN(n int) *core.CompositeSpec {
	eqNames := make([]string, n)
	for i := range eqNames {
		eqNames[i] = fmt.Sprintf("e%d", i+1)
	}
	ports := make([]core.PortDecl, 0, 2*n+1)
	bits := make([]core.Ref, n)
	for i := 0; i < n; i++ {
		ports = append(ports,
			core.PortDecl{Name: bitName("in", i), Alias: ref(eqNames[i], "in1")},
			core.PortDecl{Name: bitName("in", n+i), Alias: ref(eqNames[i], "in2")},
		)
		bits[i] = core.Ref{Child: eqNames[i], Port: "out1"}
	}
	redChildren, redWires, final := andReduceChain(bits, 1)

	children := []core.ChildGroup{{Kind: KindEQ, Names: eqNames}}
	children = append(children, redChildren...)
	ports = append(ports, core.PortDecl{Name: "out1", Alias: &final})

	return &core.CompositeSpec{Children: children, Ports: ports, Wires: redWires}
}

// NeqN: 1-bit inequality of two n-bit buses: out1 = NOT(EqN). Grounded on
// original_source NEQ8.
func NeqN(n int) *core.CompositeSpec {
	eq := EqN(n)
	eq.Children = append(eq.Children, core.ChildGroup{Kind: "NOT", Names: []string{"notEq"}})
	// redirect EqN's external out1 alias to feed the new NOT, then expose
	// the NOT's output as this composite's out1.
	for i, p := range eq.Ports {
		if p.Name == "out1" {
			eq.Wires = append(eq.Wires, core.WireDecl{From: *p.Alias, To: core.Ref{Child: "notEq", Port: "in1"}})
			eq.Ports[i].Alias = ref("notEq", "out1")
			break
		}
	}
	return eq
}

// AddN builds an n-bit ripple-carry adder. Inputs are MSB-first (in1 is
// the most significant bit of a, matching in8 being LSB for n=8); the
// sum outputs are LSB-first (out1 is the least significant sum bit,
// out(n) the most significant), and a final out(n+1) carries the final
// carry-out. This input/output bit-order mismatch is deliberate — it
// matches original_source ADD8 exactly (out1 pairs with the LSB full
// adder A8, out8 with the MSB adder, out9 with the MSB adder's carry).
func AddN(n int) *core.CompositeSpec {
	adderNames := make([]string, n)
	for i := range adderNames {
		adderNames[i] = fmt.Sprintf("fa%d", i+1)
	}
	ports := make([]core.PortDecl, 0, 2*n+n+1)
	var wires []core.WireDecl

	for i := 0; i < n; i++ {
		ports = append(ports,
			core.PortDecl{Name: bitName("in", i), Alias: ref(adderNames[i], "in1")},
		)
	}
	// second bus: external names in(N+1)..in(2N) (MSB-first b), matching
	// ADD8's flat in1..in16 convention in original_source.
	for i := 0; i < n; i++ {
		ports = append(ports,
			core.PortDecl{Name: bitName("in", n+i), Alias: ref(adderNames[i], "in2")},
		)
	}

	// carry chain: LSB adder (index n-1) has no carry-in (wired to 0 by
	// leaving it unaliased and unwired — arena zero-init supplies 0);
	// each more significant adder's carry-in is the carry-out of the adder
	// one position less significant.
	for i := 0; i < n-1; i++ {
		wires = append(wires, core.WireDecl{
			From: core.Ref{Child: adderNames[i+1], Port: "out2"},
			To:   core.Ref{Child: adderNames[i], Port: "in3"},
		})
	}

	// sum outputs: out1 is LSB (last adder, index n-1), out(n) is MSB
	// (first adder, index 0).
	for i := 0; i < n; i++ {
		adder := adderNames[n-1-i]
		ports = append(ports, core.PortDecl{Name: bitName("out", i), Alias: ref(adder, "out1")})
	}
	// final carry-out, from the MSB adder (index 0).
	ports = append(ports, core.PortDecl{Name: fmt.Sprintf("out%d", n+1), Alias: ref(adderNames[0], "out2")})

	return &core.CompositeSpec{
		Children: []core.ChildGroup{{Kind: KindFullAdder, Names: adderNames}},
		Ports:    ports,
		Wires:    wires,
	}
}

// GtN builds an n-bit magnitude comparator: out1 = 1 iff bus a > bus b,
// MSB-first inputs (in1 is a's MSB, in(2n) is b's LSB). Grounded on
// original_source GT8: each bit position's CMP_SEG cell contributes an
// "a_i >= b_i, or a more significant bit already decided it" signal on
// out1 (AONB OR carry-in), chained MSB to LSB via out2 (AANB OR carry-in);
// AND-reducing every position's out1 gives "a >= b at every position",
// which ANDed with NEQ(a,b) excludes the all-equal case and leaves exactly
// a > b. The previous revision of this function exposed the out2 carry
// chain directly, which is "a_i=1,b_i=0 somewhere above" rather than the
// correct result — out1/AONB was dead. Fixed to match GT8's AND8+NEQ+AND
// wiring.
func GtN(n int, neqKind string) *core.CompositeSpec {
	segNames := make([]string, n)
	for i := range segNames {
		segNames[i] = fmt.Sprintf("seg%d", i+1)
	}
	bridgeNames := busNames("b", 2*n)

	ports := make([]core.PortDecl, 0, 2*n+1)
	for i := 0; i < 2*n; i++ {
		ports = append(ports, core.PortDecl{Name: bitName("in", i), Alias: ref(bridgeNames[i], "in1")})
	}

	var wires []core.WireDecl
	for i := 0; i < n; i++ {
		wires = append(wires,
			core.WireDecl{From: core.Ref{Child: bridgeNames[i], Port: "out1"}, To: core.Ref{Child: segNames[i], Port: "in1"}},
			core.WireDecl{From: core.Ref{Child: bridgeNames[n+i], Port: "out1"}, To: core.Ref{Child: segNames[i], Port: "in2"}},
		)
	}
	for i := 0; i < 2*n; i++ {
		wires = append(wires, core.WireDecl{
			From: core.Ref{Child: bridgeNames[i], Port: "out1"},
			To:   core.Ref{Child: "neq", Port: bitName("in", i)},
		})
	}
	// MSB segment (index 0) has carry-in tied to 0: leave in3 unaliased
	// and unwired.
	for i := 1; i < n; i++ {
		wires = append(wires, core.WireDecl{
			From: core.Ref{Child: segNames[i-1], Port: "out2"},
			To:   core.Ref{Child: segNames[i], Port: "in3"},
		})
	}

	bits := make([]core.Ref, n)
	for i := 0; i < n; i++ {
		bits[i] = core.Ref{Child: segNames[i], Port: "out1"}
	}
	redChildren, redWires, reduced := andReduceChain(bits, 1)
	wires = append(wires, redWires...)

	wires = append(wires,
		core.WireDecl{From: reduced, To: core.Ref{Child: "final", Port: "in1"}},
		core.WireDecl{From: core.Ref{Child: "neq", Port: "out1"}, To: core.Ref{Child: "final", Port: "in2"}},
	)
	ports = append(ports, core.PortDecl{Name: "out1", Alias: ref("final", "out1")})

	children := []core.ChildGroup{
		{Kind: KindCmpSeg, Names: segNames},
		{Kind: "BRIDGE", Names: bridgeNames},
		{Kind: neqKind, Names: []string{"neq"}},
		{Kind: "AND", Names: []string{"final"}},
	}
	children = append(children, redChildren...)

	return &core.CompositeSpec{
		Children: children,
		Ports:    ports,
		Wires:    wires,
	}
}

// LtN: a < b, derived as NEQ(a,b) AND NOT(GT(a,b)). Grounded on
// original_source LT8, which composes NEQ8 and GT8 this way.
func LtN(n int, neqKind, gtKind string) *core.CompositeSpec {
	ports := busCompareFanoutPorts(n)
	ports = append(ports, core.PortDecl{Name: "out1", Alias: ref("a1", "out1")})
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: neqKind, Names: []string{"neq"}},
			{Kind: gtKind, Names: []string{"gt"}},
			{Kind: "NOT", Names: []string{"notGt"}},
			{Kind: "AND", Names: []string{"a1"}},
			{Kind: "BRIDGE", Names: busNames("b", 2*n)},
		},
		Ports: ports,
		Wires: busCompareFanoutWires(n, []string{"neq", "gt"}, []core.WireDecl{
			{From: core.Ref{Child: "gt", Port: "out1"}, To: core.Ref{Child: "notGt", Port: "in1"}},
			{From: core.Ref{Child: "neq", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in1"}},
			{From: core.Ref{Child: "notGt", Port: "out1"}, To: core.Ref{Child: "a1", Port: "in2"}},
		}),
	}
}

// GteN: a >= b, derived as EQ(a,b) OR GT(a,b). Grounded on original_source
// GTE8.
func GteN(n int, eqKind, gtKind string) *core.CompositeSpec {
	ports := busCompareFanoutPorts(n)
	ports = append(ports, core.PortDecl{Name: "out1", Alias: ref("o1", "out1")})
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: eqKind, Names: []string{"eq"}},
			{Kind: gtKind, Names: []string{"gt"}},
			{Kind: "OR", Names: []string{"o1"}},
			{Kind: "BRIDGE", Names: busNames("b", 2*n)},
		},
		Ports: ports,
		Wires: busCompareFanoutWires(n, []string{"eq", "gt"}, []core.WireDecl{
			{From: core.Ref{Child: "eq", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in1"}},
			{From: core.Ref{Child: "gt", Port: "out1"}, To: core.Ref{Child: "o1", Port: "in2"}},
		}),
	}
}

// LteN: a <= b, derived as NOT(GT(a,b)). Grounded on original_source LTE8.
func LteN(n int, gtKind string) *core.CompositeSpec {
	ports := busCompareFanoutPortsDirect(n, []string{"gt"})
	ports = append(ports, core.PortDecl{Name: "out1", Alias: ref("notGt", "out1")})
	return &core.CompositeSpec{
		Children: []core.ChildGroup{
			{Kind: gtKind, Names: []string{"gt"}},
			{Kind: "NOT", Names: []string{"notGt"}},
		},
		Ports: ports,
		Wires: []core.WireDecl{
			{From: core.Ref{Child: "gt", Port: "out1"}, To: core.Ref{Child: "notGt", Port: "in1"}},
		},
	}
}

func busNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return names
}

// busCompareFanoutPorts exposes 2n external in-ports (a's n bits then b's
// n bits) aliased onto 2n Bridges named b1..b(2n), used by LtN/GteN to fan
// the same bus out to two comparator children without duplicating port
// declarations.
func busCompareFanoutPorts(n int) []core.PortDecl {
	ports := make([]core.PortDecl, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		ports = append(ports, core.PortDecl{Name: fmt.Sprintf("in%d", i+1), Alias: ref(fmt.Sprintf("b%d", i+1), "in1")})
	}
	return ports
}

// busCompareFanoutWires wires each of the 2n Bridges' outputs to the
// matching input of both named consumer children (each consumer must
// expose inK for k in 1..2n), then appends extra wiring specific to the
// caller (e.g. connecting the consumers to a combiner gate).
func busCompareFanoutWires(n int, consumers []string, extra []core.WireDecl) []core.WireDecl {
	wires := make([]core.WireDecl, 0, 2*n*len(consumers)+len(extra))
	for i := 0; i < 2*n; i++ {
		from := core.Ref{Child: fmt.Sprintf("b%d", i+1), Port: "out1"}
		for _, c := range consumers {
			wires = append(wires, core.WireDecl{From: from, To: core.Ref{Child: c, Port: fmt.Sprintf("in%d", i+1)}})
		}
	}
	return append(wires, extra...)
}

// busCompareFanoutPortsDirect aliases 2n external in-ports straight onto a
// single consumer child's in1..in(2n), with no Bridge fan-out (used when
// there is exactly one consumer, e.g. LteN's GT child).
func busCompareFanoutPortsDirect(n int, consumer []string) []core.PortDecl {
	ports := make([]core.PortDecl, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		ports = append(ports, core.PortDecl{Name: fmt.Sprintf("in%d", i+1), Alias: ref(consumer[0], fmt.Sprintf("in%d", i+1))})
	}
	return ports
}
