package core

// PortRole distinguishes an element's input ports from its output ports.
type PortRole int

const (
	RoleInput PortRole = iota
	RoleOutput
)

func (r PortRole) String() string {
	if r == RoleInput {
		return "input"
	}
	return "output"
}

// Port is a named single-bit signal holder attached to an element. Its
// value is always 0 or 1; equality between ports is by identity (pointer),
// never by value.
type Port struct {
	Name  string
	Role  PortRole
	Value int
}

// arena is the backing store for every Port in a circuit, per the "ports
// as shared nodes instead of inheritance" design note: a single top-level
// slice, indexed by handle, so aliasing is two handles pointing at the same
// index rather than a copy. Every Element stores handles into an arena it
// shares with the rest of its circuit.
type arena struct {
	ports []*Port
}

func newArena() *arena {
	return &arena{}
}

// alloc creates a fresh port and returns its handle.
func (a *arena) alloc(role PortRole, name string) int {
	h := len(a.ports)
	a.ports = append(a.ports, &Port{Name: name, Role: role})
	return h
}

func (a *arena) get(h int) *Port {
	return a.ports[h]
}

// refresh re-asserts a port's current value. It is a no-op under the
// propagation rules of spec.md §4.4 phase 4 (nothing else can have
// written a fresh primary input's value between phases 1 and 4 within the
// same cycle), preserved rather than removed per the spec's own open
// question on this step: the behaviour is kept and documented, not
// guessed at.
func (p *Port) refresh() {
	p.Value = p.Value //nolint:staticcheck // intentional no-op, see comment above
}
