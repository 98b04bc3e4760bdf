package core

import "github.com/pkg/errors"

// Ref names a port either on a declared child ("Child" set) or on the
// enclosing composite's own owned (unaliased) port ("Child" empty). Wire
// endpoints and port aliases are both expressed this way, since an
// aliased external port and the child port it aliases are the same arena
// slot.
type Ref struct {
	Child string
	Port  string
}

// ChildGroup instantiates one element of kind Kind per name in Names, in
// the declared order. Kind names either a registered gate or a registered
// composite.
type ChildGroup struct {
	Kind  string
	Names []string
}

// PortDecl declares one external port of a composite. If Alias is nil a
// fresh port is created (owned by the composite); otherwise the external
// port is the aliased child's port (shared identity, not a copy).
type PortDecl struct {
	Name  string
	Alias *Ref
}

// WireDecl installs one directed copy link between two ports.
type WireDecl struct {
	From Ref
	To   Ref
}

// CompositeSpec is the declarative circuit format of spec.md §6: an
// ordered list of child groups (preserving kind-then-name declaration
// order), an ordered list of external port declarations, and an ordered
// list of wires. Ordering is part of the contract — it is the propagation
// order of §4.4, not merely cosmetic.
type CompositeSpec struct {
	Children []ChildGroup
	Ports    []PortDecl
	Wires    []WireDecl
}

// Composite is a built instance of a CompositeSpec: children in
// construction order, wires in declaration order, and a name->handle map
// of its external ports.
type Composite struct {
	arena       *arena
	children    []Element
	childPorts  map[string]map[string]int
	wires       []wire
	ports       map[string]int
	freshInputs []int
}

type wire struct {
	arena *arena
	from  int
	to    int
}

func (w wire) step() {
	w.arena.get(w.to).Value = w.arena.get(w.from).Value
}

// Step runs phases 2-4 of spec.md §4.4 (children, then wires, then the
// fresh-primary-input refresh). Phase 1 (applying the driver's initial
// overrides) is scoped to the top-level circuit and run by the driver
// before calling Step on the top composite; a non-top composite never has
// an initial map of its own, so omitting phase 1 here changes nothing.
func (c *Composite) Step() {
	for _, ch := range c.children {
		ch.Step()
	}
	for _, w := range c.wires {
		w.step()
	}
	for _, h := range c.freshInputs {
		c.arena.get(h).refresh()
	}
}

// Ports returns this composite's external ports by name, so it can itself
// be used as a child of an enclosing composite.
func (c *Composite) Ports() map[string]int {
	return c.ports
}

func (c *Composite) resolve(ref Ref) (int, error) {
	if ref.Child == "" {
		h, ok := c.ports[ref.Port]
		if !ok {
			return 0, &UnknownPortError{Name: ref.Port}
		}
		return h, nil
	}
	ports, ok := c.childPorts[ref.Child]
	if !ok {
		return 0, &UnknownChildError{Name: ref.Child}
	}
	h, ok := ports[ref.Port]
	if !ok {
		return 0, &UnknownPortError{Name: ref.Child + "." + ref.Port}
	}
	return h, nil
}

// Build constructs a Composite from spec, resolving child kinds and
// nested composite kinds against reg, in the three strict phases of
// spec.md §4.3: instantiate children, resolve external ports, install
// wires.
func (spec *CompositeSpec) Build(reg *Registry) (*Composite, error) {
	return spec.build(reg, newArena())
}

func (spec *CompositeSpec) build(reg *Registry, a *arena) (*Composite, error) {
	c := &Composite{
		arena:      a,
		childPorts: make(map[string]map[string]int),
		ports:      make(map[string]int),
	}

	// Phase 1: instantiate children, in declared kind order then declared
	// name order within a kind.
	for _, group := range spec.Children {
		for _, name := range group.Names {
			if _, exists := c.childPorts[name]; exists {
				return nil, &DuplicateChildError{Name: name}
			}
			elem, err := reg.build(group.Kind, a)
			if err != nil {
				return nil, errors.Wrapf(err, "building child %q (kind %q)", name, group.Kind)
			}
			c.children = append(c.children, elem)
			c.childPorts[name] = elem.Ports()
		}
	}

	// Phase 2: resolve external ports.
	for _, pd := range spec.Ports {
		role, err := portRole(pd.Name)
		if err != nil {
			return nil, err
		}
		if pd.Alias != nil {
			h, err := c.resolve(*pd.Alias)
			if err != nil {
				return nil, errors.Wrapf(err, "resolving alias for port %q", pd.Name)
			}
			c.ports[pd.Name] = h
			continue
		}
		h := a.alloc(role, pd.Name)
		c.ports[pd.Name] = h
		if role == RoleInput {
			c.freshInputs = append(c.freshInputs, h)
		}
	}

	// Phase 3: install internal wires.
	for _, wd := range spec.Wires {
		from, err := c.resolve(wd.From)
		if err != nil {
			return nil, errors.Wrap(err, "resolving wire source")
		}
		to, err := c.resolve(wd.To)
		if err != nil {
			return nil, errors.Wrap(err, "resolving wire sink")
		}
		c.wires = append(c.wires, wire{arena: a, from: from, to: to})
	}

	return c, nil
}

func portRole(name string) (PortRole, error) {
	switch {
	case hasPrefix(name, "in"):
		return RoleInput, nil
	case hasPrefix(name, "out"):
		return RoleOutput, nil
	default:
		return 0, &BadPortNameError{Name: name}
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
