// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import "testing"

func TestEvalTerminalCommutative(t *testing.T) {
	for op := OPand; op <= OPmultMod; op++ {
		if !op.IsCommutative() {
			continue
		}
		for a := Value(0); a < 3; a++ {
			for b := Value(0); b < 3; b++ {
				ab := op.evalTerminal(a, b, 3)
				ba := op.evalTerminal(b, a, 3)
				if ab != ba {
					t.Errorf("%v(%d, %d) = %v but %v(%d, %d) = %v", op, a, b, ab, op, b, a, ba)
				}
			}
		}
	}
}

func TestEvalTerminalAbsorbing(t *testing.T) {
	cases := []struct {
		op  Operator
		abs Value
	}{
		{OPand, 0}, {OPpiConj, 0}, {OPmin, 0}, {OPmultMod, 0}, {OPor, 1},
	}
	for _, c := range cases {
		if got := c.op.evalTerminal(c.abs, Nondetermined, 2); got != c.abs {
			t.Errorf("%v with absorbing lhs should resolve without recursing, got %v", c.op, got)
		}
		if got := c.op.evalTerminal(Nondetermined, c.abs, 2); got != c.abs {
			t.Errorf("%v with absorbing rhs should resolve without recursing, got %v", c.op, got)
		}
	}
}

func TestEvalTerminalNondeterminedPropagates(t *testing.T) {
	// A non-absorbing operand next to an unresolved one cannot fix the
	// result, so the operator must ask for recursion.
	if got := OPand.evalTerminal(1, Nondetermined, 2); got != Nondetermined {
		t.Errorf("and(1, nondetermined) = %v, want nondetermined", got)
	}
	if got := OPxor.evalTerminal(Nondetermined, 0, 2); got != Nondetermined {
		t.Errorf("xor(nondetermined, 0) = %v, want nondetermined", got)
	}
}

func TestEvalTerminalUndefinedAbsorbs(t *testing.T) {
	for op := OPand; op <= OPmultMod; op++ {
		if got := op.evalTerminal(Undefined, 1, 2); got != Undefined {
			t.Errorf("%v(undefined, 1) = %v, want undefined", op, got)
		}
	}
}

func TestEvalTerminalTable(t *testing.T) {
	cases := []struct {
		op   Operator
		a, b Value
		want Value
	}{
		{OPand, 1, 1, 1}, {OPand, 1, 0, 0},
		{OPor, 0, 0, 0}, {OPor, 0, 1, 1},
		{OPxor, 1, 1, 0}, {OPxor, 1, 0, 1},
		{OPnand, 1, 1, 0}, {OPnor, 0, 0, 1},
		{OPpiConj, 2, 1, 1},
		{OPequalTo, 2, 2, 1}, {OPnotEqualTo, 2, 2, 0},
		{OPless, 1, 2, 1}, {OPlessEqual, 2, 2, 1},
		{OPgreater, 2, 1, 1}, {OPgreaterEqual, 1, 2, 0},
		{OPmin, 2, 1, 1}, {OPmax, 2, 1, 2},
		{OPplusMod, 2, 2, 1}, {OPmultMod, 2, 2, 1},
	}
	for _, c := range cases {
		if got := c.op.evalTerminal(c.a, c.b, 3); got != c.want {
			t.Errorf("%v(%d, %d) = %v, want %v", c.op, c.a, c.b, got, c.want)
		}
	}
}
