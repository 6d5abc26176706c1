// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

// Operator describes a binary operation usable in Apply. Unlike rudd, whose
// Operator is a fixed Boolean truth table, polydd operators are evaluated
// procedurally so they generalize to any per-variable domain size, following
// the multi-valued operator catalogue of the TeDDy library.
type Operator int

const (
	OPand Operator = iota
	OPor
	OPxor
	OPnand
	OPnor
	OPpiConj // projective conjunction: absorbing at 0, otherwise min(a,b)
	OPequalTo
	OPnotEqualTo
	OPless
	OPlessEqual
	OPgreater
	OPgreaterEqual
	OPmin
	OPmax
	OPplusMod    // (a + b) mod P
	OPmultMod    // (a * b) mod P
)

var opnames = [...]string{
	OPand:          "and",
	OPor:           "or",
	OPxor:          "xor",
	OPnand:         "nand",
	OPnor:          "nor",
	OPpiConj:       "pi-conj",
	OPequalTo:      "equal-to",
	OPnotEqualTo:   "not-equal-to",
	OPless:         "less",
	OPlessEqual:    "less-equal",
	OPgreater:      "greater",
	OPgreaterEqual: "greater-equal",
	OPmin:          "min",
	OPmax:          "max",
	OPplusMod:      "plus-mod",
	OPmultMod:      "mult-mod",
}

func (op Operator) String() string {
	return opnames[op]
}

var opCommutative = [...]bool{
	OPand: true, OPor: true, OPxor: true, OPnand: true, OPnor: true,
	OPpiConj: true, OPequalTo: true, OPnotEqualTo: true, OPless: false,
	OPlessEqual: false, OPgreater: false, OPgreaterEqual: false,
	OPmin: true, OPmax: true, OPplusMod: true, OPmultMod: true,
}

// IsCommutative reports whether op(a, b) == op(b, a) for every a, b; Apply
// uses this to normalize operand order before a cache probe, doubling the
// effective cache hit rate for commutative operators.
func (op Operator) IsCommutative() bool {
	return opCommutative[op]
}

// absorbing returns the declared absorbing value for op, if it has one:
// and/pi-conj/min/mult-mod absorb at 0, or absorbs at 1, every other
// operator declares none.
func (op Operator) absorbing() (Value, bool) {
	switch op {
	case OPand, OPpiConj, OPmin, OPmultMod:
		return 0, true
	case OPor:
		return 1, true
	default:
		return 0, false
	}
}

// evalTerminal applies op to a pair of operand values, either of which may
// be Nondetermined (standing in for an operand that is still an internal
// node). The operator's absorbing value, if it declares one, short-circuits
// without examining the other operand; failing that, a Nondetermined operand
// makes the whole result Nondetermined, which tells Apply to keep recursing.
// Only when neither rule fires does the operator actually compute.
//
// Undefined is checked first and is always absorbing, independent of any
// operator-declared absorbing value: it represents "no value in this
// domain", which no operator below is defined to consume.
func (op Operator) evalTerminal(a, b Value, p int32) Value {
	if a == Undefined || b == Undefined {
		return Undefined
	}
	if abs, ok := op.absorbing(); ok {
		if a == abs || b == abs {
			return abs
		}
	}
	if a == Nondetermined || b == Nondetermined {
		return Nondetermined
	}
	switch op {
	case OPand:
		return boolVal(a != 0 && b != 0)
	case OPor:
		return boolVal(a != 0 || b != 0)
	case OPxor:
		return boolVal(a != 0 != (b != 0))
	case OPnand:
		return boolVal(!(a != 0 && b != 0))
	case OPnor:
		return boolVal(!(a != 0 || b != 0))
	case OPpiConj:
		// Absorbing 0 already handled above; otherwise a plain min.
		return minVal(a, b)
	case OPequalTo:
		return boolVal(a == b)
	case OPnotEqualTo:
		return boolVal(a != b)
	case OPless:
		return boolVal(a < b)
	case OPlessEqual:
		return boolVal(a <= b)
	case OPgreater:
		return boolVal(a > b)
	case OPgreaterEqual:
		return boolVal(a >= b)
	case OPmin:
		return minVal(a, b)
	case OPmax:
		return maxVal(a, b)
	case OPplusMod:
		return Value((uint32(a) + uint32(b)) % uint32(p))
	case OPmultMod:
		return Value((uint32(a) * uint32(b)) % uint32(p))
	}
	panic("polydd: unknown operator")
}

func boolVal(b bool) Value {
	if b {
		return 1
	}
	return 0
}

func minVal(a, b Value) Value {
	if a < b {
		return a
	}
	return b
}

func maxVal(a, b Value) Value {
	if a > b {
		return a
	}
	return b
}
