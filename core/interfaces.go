package core

// Element is a primitive gate or a composite circuit: the two element
// kinds spec.md's data model composes circuits out of. Step runs one
// propagation cycle; Ports exposes the element's own named ports (input
// and output) by arena handle, so a parent composite can alias into them.
type Element interface {
	Step()
	Ports() map[string]int
}
