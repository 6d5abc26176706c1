// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reliability

import (
	"math/big"

	"github.com/polydd/polydd"
)

// DPBD returns the direct partial Boolean derivative of the structure
// function sf with respect to component i: a diagram that evaluates to a
// nonzero value exactly where flipping component i changes sf's output, and
// to 0 everywhere else. Component i must have domain 2; the output may take
// any number of states, since the derivative compares the two restrictions
// with OPnotEqualTo rather than only detecting a 0-to-1 transition.
func DPBD(core *polydd.Manager, sf *polydd.Node, i int) *polydd.Node {
	r0 := core.Ref(core.Restrict(sf, i, 0))
	r1 := core.Ref(core.Restrict(sf, i, 1))
	res := core.Apply(polydd.OPnotEqualTo, r0.Node(), r1.Node())
	r0.Release()
	r1.Release()
	return res
}

// DPBDs returns DPBD(core, sf, i) for every variable i of core.
func DPBDs(core *polydd.Manager, sf *polydd.Node) []*polydd.Node {
	out := make([]*polydd.Node, core.Varnum())
	for i := range out {
		out[i] = DPBD(core, sf, i)
	}
	return out
}

// StructuralImportance returns the fraction of the 2^(n-1) assignments to
// the other n-1 variables for which dpbd (a DPBD diagram, which no longer
// depends on the variable it was built for) is nonzero. Requires every
// variable of core to have domain 2. The halving accounts for the
// derivative's own variable being unconstrained: CountSatisfying counts
// every satisfying assignment once per value of that variable.
func StructuralImportance(core *polydd.Manager, dpbd *polydd.Node) float64 {
	n := core.Varnum()
	if n < 1 {
		return 0
	}
	sc := core.CountSatisfying(dpbd, func(v polydd.Value) bool { return v != 0 })
	half := new(big.Int).Rsh(sc, 1)
	total := new(big.Int).Lsh(big.NewInt(1), uint(n-1))
	result, _ := new(big.Float).Quo(
		new(big.Float).SetInt(half),
		new(big.Float).SetInt(total),
	).Float64()
	return result
}

// BirnbaumImportance returns the probability that dpbd (a DPBD diagram,
// treated as its own binary structure function) evaluates to a nonzero
// value under ps, i.e. the availability of the derivative itself.
func BirnbaumImportance(core *polydd.Manager, dpbd *polydd.Node, ps [][]float64) float64 {
	rel := New(core)
	rel.CalculateProbabilities(ps, dpbd)
	return rel.Availability(1)
}

// CriticalityImportance returns the probability that a component's failure
// is critical to the system's failure: its Birnbaum importance scaled by
// qi / unavailability, where qi is the probability that the component is
// itself in the failed (state-0) configuration and unavailability is the
// system's overall unavailability.
func CriticalityImportance(core *polydd.Manager, dpbd *polydd.Node, ps [][]float64, unavailability float64, qi float64) float64 {
	if unavailability == 0 {
		return 0
	}
	bi := BirnbaumImportance(core, dpbd, ps)
	return bi * (qi / unavailability)
}
