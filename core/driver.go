package core

import "github.com/pkg/errors"

// DefaultCycles is the default propagation bound: large enough to exceed
// the ALU's combinational depth (~30-40 gate levels) several times over.
const DefaultCycles = 100

// Run applies initial to the circuit's top-level external ports and
// advances cycles propagation steps, then returns every external port's
// final value. initial is re-applied at the start of every cycle (spec.md
// §4.4 phase 1), so primary inputs are never clobbered by intermediate
// wiring while the circuit settles. A key in initial that does not name
// an external port of the top-level circuit is a RuntimeInputError.
//
// Run never fails to terminate and never raises once initial has been
// validated: a well-formed circuit cannot error mid-propagation. Whether
// it has settled within cycles is something the caller observes by
// comparing outputs against one extra cycle (see Settled).
func Run(c *Circuit, initial map[string]int, cycles int) (map[string]int, error) {
	for name := range initial {
		if _, ok := c.Top.ports[name]; !ok {
			return nil, errors.WithStack(&RuntimeInputError{Name: name})
		}
	}

	for i := 0; i < cycles; i++ {
		applyInitial(c, initial)
		c.Top.Step()
	}

	return snapshot(c), nil
}

// RunDefault runs with DefaultCycles.
func RunDefault(c *Circuit, initial map[string]int) (map[string]int, error) {
	return Run(c, initial, DefaultCycles)
}

// Settled reports whether one more propagation cycle changes the value of
// any external port (inputs included), i.e. whether c has reached a fixed
// point under the given
// initial assignment. It runs one extra cycle as a side effect.
func Settled(c *Circuit, initial map[string]int) (bool, error) {
	before := snapshot(c)
	applyInitial(c, initial)
	c.Top.Step()
	after := snapshot(c)
	for name, v := range before {
		if after[name] != v {
			return false, nil
		}
	}
	return true, nil
}

func applyInitial(c *Circuit, initial map[string]int) {
	for name, value := range initial {
		h := c.Top.ports[name]
		c.arena().get(h).Value = value
	}
}

func snapshot(c *Circuit) map[string]int {
	out := make(map[string]int, len(c.Top.ports))
	for name, h := range c.Top.ports {
		out[name] = c.arena().get(h).Value
	}
	return out
}
