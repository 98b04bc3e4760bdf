package gatelib

import "github.com/dbernard/digisim/core"

// Width-8 composite kind names, matching original_source's NOT8/AND8/OR8/
// EQ8/NEQ8/ADD8/GT8/LT8/GTE8/LTE8 class names directly — the ALU package
// references these by name as its segment building blocks.
const (
	Kind8Not = "NOT8"
	Kind8And = "AND8"
	Kind8Or  = "OR8"
	Kind8Eq  = "EQ8"
	Kind8Neq = "NEQ8"
	Kind8Add = "ADD8"
	Kind8Gt  = "GT8"
	Kind8Lt  = "LT8"
	Kind8Gte = "GTE8"
	Kind8Lte = "LTE8"
)

// RegisterWidth8 installs the fixed-width derived gates (Register) and
// then the width-8 bus operations on top of them, in dependency order.
// Idempotent, like Register.
func RegisterWidth8(reg *core.Registry) {
	Register(reg)
	if reg.HasComposite(Kind8Not) {
		return
	}

	reg.RegisterComposite(Kind8Not, NotN(8))
	reg.RegisterComposite(Kind8And, AndN(8))
	reg.RegisterComposite(Kind8Or, OrN(8))
	reg.RegisterComposite(Kind8Eq, EqN(8))
	reg.RegisterComposite(Kind8Neq, NeqN(8))
	reg.RegisterComposite(Kind8Add, AddN(8))
	reg.RegisterComposite(Kind8Gt, GtN(8, Kind8Neq))
	reg.RegisterComposite(Kind8Lt, LtN(8, Kind8Neq, Kind8Gt))
	reg.RegisterComposite(Kind8Gte, GteN(8, Kind8Eq, Kind8Gt))
	reg.RegisterComposite(Kind8Lte, LteN(8, Kind8Gt))
}
