// Package circuitfile loads declarative circuit definitions from YAML,
// decoding directly into core.CompositeSpec. Grounded on the teacher's and
// the wider example pack's ghodss/yaml usage (e.g.
// operator-framework-operator-lifecycle-manager's manifest loaders, which
// read a file with ioutil.ReadFile and convert with yaml.Unmarshal): YAML
// sequences preserve the declaration order spec.md §6 requires, which a
// plain YAML map would not.
package circuitfile

import (
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/dbernard/digisim/core"
)

// Document is the on-disk shape of a circuit file: a named top-level
// composite plus any other composites it (transitively) depends on, so a
// single file is self-contained.
type Document struct {
	Top        string       `json:"top"`
	Composites []NamedSpec  `json:"composites"`
}

// NamedSpec pairs a registrable composite name with its declaration.
type NamedSpec struct {
	Name string     `json:"name"`
	Spec RawSpec    `json:"spec"`
}

// RawSpec mirrors core.CompositeSpec field-for-field in a YAML-friendly
// shape: ordered slices throughout, since spec.md §4.3/§4.4 treat
// declaration order as part of the contract, not cosmetic.
type RawSpec struct {
	Children []RawChildGroup `json:"children"`
	Ports    []RawPortDecl   `json:"ports"`
	Wires    []RawWireDecl   `json:"wires"`
}

type RawChildGroup struct {
	Kind  string   `json:"kind"`
	Names []string `json:"names"`
}

type RawRef struct {
	Child string `json:"child"`
	Port  string `json:"port"`
}

type RawPortDecl struct {
	Name  string   `json:"name"`
	Alias *RawRef  `json:"alias,omitempty"`
}

type RawWireDecl struct {
	From RawRef `json:"from"`
	To   RawRef `json:"to"`
}

// Load reads and parses a circuit file at path into a Document.
func Load(path string) (*Document, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading circuit file %q", path)
	}
	return Parse(data)
}

// Parse decodes YAML (or JSON, which is a YAML subset) bytes into a
// Document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing circuit file")
	}
	return &doc, nil
}

// RegisterInto installs every composite the document declares into reg,
// under its given name, in file order. A composite may reference a child
// kind declared later in the file: core.Registry resolves child kinds when
// a circuit is built, not at registration time.
func (d *Document) RegisterInto(reg *core.Registry) {
	for _, ns := range d.Composites {
		reg.RegisterComposite(ns.Name, ns.Spec.toCore())
	}
}

// Build registers the document's composites into reg and builds its Top
// composite as a runnable circuit.
func (d *Document) Build(reg *core.Registry) (*core.Circuit, error) {
	if d.Top == "" {
		return nil, errors.New("circuit file has no top-level composite name")
	}
	d.RegisterInto(reg)
	c, err := core.Build(reg, d.Top)
	if err != nil {
		return nil, errors.Wrapf(err, "building top-level circuit %q", d.Top)
	}
	return c, nil
}

func (s RawSpec) toCore() *core.CompositeSpec {
	spec := &core.CompositeSpec{}
	for _, c := range s.Children {
		spec.Children = append(spec.Children, core.ChildGroup{Kind: c.Kind, Names: c.Names})
	}
	for _, p := range s.Ports {
		spec.Ports = append(spec.Ports, core.PortDecl{Name: p.Name, Alias: p.Alias.toCore()})
	}
	for _, w := range s.Wires {
		spec.Wires = append(spec.Wires, core.WireDecl{From: w.From.toCore0(), To: w.To.toCore0()})
	}
	return spec
}

func (r *RawRef) toCore() *core.Ref {
	if r == nil {
		return nil
	}
	return &core.Ref{Child: r.Child, Port: r.Port}
}

func (r RawRef) toCore0() core.Ref {
	return core.Ref{Child: r.Child, Port: r.Port}
}
