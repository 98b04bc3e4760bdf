package core

import "github.com/pkg/errors"

// Registry is the gate catalogue and composite builder of spec.md §6: a
// name registers either a primitive gate definition or a composite
// circuit spec, and child groups reference elements by that name.
type Registry struct {
	gates      map[string]GateDef
	composites map[string]*CompositeSpec
}

// NewRegistry returns a Registry pre-loaded with the four primitives of
// spec.md §4.1 (NOT, AND, OR, BRIDGE).
func NewRegistry() *Registry {
	return &Registry{
		gates:      builtinGates(),
		composites: make(map[string]*CompositeSpec),
	}
}

// RegisterGate adds or replaces a primitive gate definition.
func (r *Registry) RegisterGate(name string, def GateDef) {
	r.gates[name] = def
}

// RegisterComposite adds or replaces a named composite spec so it can be
// referenced as a child kind by other composites. It is idempotent:
// registering the same name twice with an identical spec is harmless,
// which lets derived-library builders call each other's registration
// helpers freely without worrying about build order.
func (r *Registry) RegisterComposite(name string, spec *CompositeSpec) {
	r.composites[name] = spec
}

// HasComposite reports whether name is already registered, so callers can
// register-once when wiring a shared dependency (e.g. several gates built
// on top of a common half adder).
func (r *Registry) HasComposite(name string) bool {
	_, ok := r.composites[name]
	return ok
}

func (r *Registry) build(kind string, a *arena) (Element, error) {
	if def, ok := r.gates[kind]; ok {
		return newPrimitive(a, def), nil
	}
	if spec, ok := r.composites[kind]; ok {
		return spec.build(r, a)
	}
	return nil, errors.Errorf("unknown element kind %q", kind)
}

// Circuit is a built, runnable top-level composite: the arena it owns and
// the composite whose external ports the driver reads and writes.
type Circuit struct {
	Top *Composite
}

// Build constructs the named composite kind as a top-level circuit, with
// its own arena.
func Build(reg *Registry, topKind string) (*Circuit, error) {
	a := newArena()
	elem, err := reg.build(topKind, a)
	if err != nil {
		return nil, errors.Wrapf(err, "building top-level circuit %q", topKind)
	}
	top, ok := elem.(*Composite)
	if !ok {
		return nil, errors.Errorf("top-level circuit %q must be a composite, not a primitive gate", topKind)
	}
	return &Circuit{Top: top}, nil
}

// BuildSpec constructs spec directly as a top-level circuit without
// requiring it to be registered under a name first.
func BuildSpec(reg *Registry, spec *CompositeSpec) (*Circuit, error) {
	top, err := spec.Build(reg)
	if err != nil {
		return nil, errors.Wrap(err, "building top-level circuit")
	}
	return &Circuit{Top: top}, nil
}

// PortNames returns the circuit's external port names, for callers that
// want to validate or enumerate them without reading values.
func (c *Circuit) PortNames() []string {
	names := make([]string, 0, len(c.Top.ports))
	for name := range c.Top.ports {
		names = append(names, name)
	}
	return names
}

// Get reads the current value of an external port.
func (c *Circuit) Get(name string) (int, error) {
	h, ok := c.Top.ports[name]
	if !ok {
		return 0, &UnknownPortError{Name: name}
	}
	return c.arena().get(h).Value, nil
}

func (c *Circuit) arena() *arena {
	return c.Top.arena
}
