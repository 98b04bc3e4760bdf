package core

// EvalFunc computes a primitive gate's outputs from its inputs. It reads
// inputs positionally (ordered per the gate's Inputs list) and returns
// outputs positionally (ordered per the gate's Outputs list). It never
// reads its own outputs and never fails. Each call returns a newly
// allocated output slice.
type EvalFunc func(ins []int) []int

// GateDef is a gate catalogue entry: a name's input/output port names and
// the evaluator that computes one from the other.
type GateDef struct {
	Inputs  []string
	Outputs []string
	Eval    EvalFunc
}

// primitive is a stateless boolean element built directly from a GateDef,
// as opposed to a Composite built from children and wires.
type primitive struct {
	arena *arena
	ins   []int
	outs  []int
	eval  EvalFunc
	ports map[string]int
}

func newPrimitive(a *arena, def GateDef) *primitive {
	p := &primitive{
		arena: a,
		ins:   make([]int, len(def.Inputs)),
		outs:  make([]int, len(def.Outputs)),
		eval:  def.Eval,
		ports: make(map[string]int, len(def.Inputs)+len(def.Outputs)),
	}
	for i, name := range def.Inputs {
		h := a.alloc(RoleInput, name)
		p.ins[i] = h
		p.ports[name] = h
	}
	for i, name := range def.Outputs {
		h := a.alloc(RoleOutput, name)
		p.outs[i] = h
		p.ports[name] = h
	}
	return p
}

func (p *primitive) Step() {
	values := make([]int, len(p.ins))
	for i, h := range p.ins {
		values[i] = p.arena.get(h).Value
	}
	results := p.eval(values)
	for i, h := range p.outs {
		p.arena.get(h).Value = results[i]
	}
}

func (p *primitive) Ports() map[string]int {
	return p.ports
}

// builtinGates are the four primitives spec.md §4.1 names. Bridge exists
// solely to introduce a one-cycle evaluation barrier at fan-out points
// (see §4.4); it must never be optimised into a direct wire.
func builtinGates() map[string]GateDef {
	return map[string]GateDef{
		"NOT": {
			Inputs:  []string{"in1"},
			Outputs: []string{"out1"},
			Eval: func(ins []int) []int {
				return []int{1 - ins[0]}
			},
		},
		"AND": {
			Inputs:  []string{"in1", "in2"},
			Outputs: []string{"out1"},
			Eval: func(ins []int) []int {
				if ins[0] == 1 && ins[1] == 1 {
					return []int{1}
				}
				return []int{0}
			},
		},
		"OR": {
			Inputs:  []string{"in1", "in2"},
			Outputs: []string{"out1"},
			Eval: func(ins []int) []int {
				if ins[0] == 1 || ins[1] == 1 {
					return []int{1}
				}
				return []int{0}
			},
		},
		"BRIDGE": {
			Inputs:  []string{"in1"},
			Outputs: []string{"out1"},
			Eval: func(ins []int) []int {
				return []int{ins[0]}
			},
		},
	}
}
