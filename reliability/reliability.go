// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package reliability computes state probabilities, availability and
// importance measures for a multi-state system whose structure function is
// represented as a polydd diagram. It never reaches into the core's unique
// tables, pool, or apply cache; it relies only on the contract polydd
// exports for external collaborators, namely the per-node float64 data slot
// (Node.Data/SetData) and the level-order traversals
// (Manager.LevelOrderTopDown).
package reliability

import (
	"math/big"

	"github.com/polydd/polydd"
)

// Manager computes reliability measures for diagrams built with one
// underlying polydd.Manager.
type Manager struct {
	core  *polydd.Manager
	probs map[polydd.Value]float64
}

// New wraps core in a reliability Manager. core is never mutated by this
// package beyond the per-node Data slot reserved for external
// collaborators.
func New(core *polydd.Manager) *Manager {
	return &Manager{core: core}
}

// CalculateProbabilities computes, for every terminal value reachable from
// root, the probability that the structure function it represents
// evaluates to that value, given per-component per-state probabilities ps
// (ps[i][k] is the probability that component i is in state k). It zeroes
// every node's data slot, seeds the root at 1.0, then pushes each node's
// accumulated probability mass down into its sons weighted by ps, in an
// order where a node is only visited once every node that can reach it
// already has been (Manager.LevelOrderTopDown).
func (m *Manager) CalculateProbabilities(ps [][]float64, root *polydd.Node) {
	m.core.LevelOrderTopDown(root, func(n *polydd.Node) {
		n.SetData(0)
	})
	root.SetData(1.0)

	probs := make(map[polydd.Value]float64)
	m.core.LevelOrderTopDown(root, func(n *polydd.Node) {
		if n.IsTerminal() {
			probs[n.Value()] += n.Data()
			return
		}
		i := n.Index()
		n.ForEachSon(func(value int, son *polydd.Node) {
			son.SetData(son.Data() + n.Data()*ps[i][value])
		})
	})
	m.probs = probs
}

// Probability returns P(system state == v). CalculateProbabilities must
// have been called first.
func (m *Manager) Probability(v polydd.Value) float64 {
	return m.probs[v]
}

// Availability returns P(system state >= j).
func (m *Manager) Availability(j polydd.Value) float64 {
	var a float64
	for v, p := range m.probs {
		if v >= j {
			a += p
		}
	}
	return a
}

// Unavailability returns P(system state < j), i.e. 1 - Availability(j).
func (m *Manager) Unavailability(j polydd.Value) float64 {
	return 1 - m.Availability(j)
}

// StateProbabilities returns [P(state==0), ..., P(state==states-1)].
func (m *Manager) StateProbabilities(states int) []float64 {
	out := make([]float64, states)
	for v := 0; v < states; v++ {
		out[v] = m.probs[polydd.Value(v)]
	}
	return out
}

// CountSatisfying exposes polydd.Manager.CountSatisfying for callers that
// only hold a reliability.Manager.
func (m *Manager) CountSatisfying(n *polydd.Node, ok func(polydd.Value) bool) *big.Int {
	return m.core.CountSatisfying(n, ok)
}
