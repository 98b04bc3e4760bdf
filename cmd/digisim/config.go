package main

import "github.com/dbernard/digisim/core"

// defaultCycles is the CLI's --cycles flag default: the engine's own
// core.DefaultCycles.
const defaultCycles = core.DefaultCycles
